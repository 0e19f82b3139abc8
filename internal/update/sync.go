package update

import (
	"context"
	"strings"
	"sync"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/sandeepkv93/todosync/internal/gateway"
	"github.com/sandeepkv93/todosync/internal/model"
)

func requestContext(timeout time.Duration) (context.Context, context.CancelFunc) {
	if timeout <= 0 {
		return context.WithCancel(context.Background())
	}
	return context.WithTimeout(context.Background(), timeout)
}

func (m Model) startReload() (Model, tea.Cmd) {
	if !m.HasIdentity() {
		return m, nil
	}
	m.Loading = true
	tick := m.spin()
	return m, tea.Batch(m.reloadCmd(), tick)
}

func (m Model) reloadCmd() tea.Cmd {
	gw, userID, timeout := m.gateway, m.UserID, m.requestTimeout
	return func() tea.Msg {
		ctx, cancel := requestContext(timeout)
		defer cancel()
		tasks, err := gw.List(ctx, userID)
		return TodosLoadedMsg{Tasks: tasks, Err: err}
	}
}

func (m Model) onTodosLoaded(msg TodosLoadedMsg) Model {
	m.Loading = false
	if msg.Err != nil {
		return m.setError(model.ErrorLoadFailed, msg.Err)
	}
	m.Tasks = append([]model.Task{}, msg.Tasks...)
	m.resyncEditors()
	m.logger.Debug("todos loaded", "count", len(m.Tasks))
	return m
}

// resyncEditors gives every task an editor, drops editors of vanished tasks
// and resyncs mirrors whose authoritative value changed.
func (m *Model) resyncEditors() {
	live := make(map[int]ItemEditor, len(m.Tasks))
	for _, t := range m.Tasks {
		if ed, ok := m.Editors[t.ID]; ok {
			live[t.ID] = ed.Sync(t)
			continue
		}
		live[t.ID] = NewItemEditor(t)
	}
	m.Editors = live
}

func (m *Model) putEditor(ed ItemEditor) {
	next := make(map[int]ItemEditor, len(m.Editors)+1)
	for id, e := range m.Editors {
		next[id] = e
	}
	next[ed.ID] = ed
	m.Editors = next
}

func (m *Model) dropEditor(id int) {
	next := make(map[int]ItemEditor, len(m.Editors))
	for eid, e := range m.Editors {
		if eid != id {
			next[eid] = e
		}
	}
	m.Editors = next
}

func (m *Model) acquirePrimary(id int) {
	m.Primary = LoadingMarker{ID: id, Active: true}
}

// releasePrimary clears the marker only while it still names id.
func (m *Model) releasePrimary(id int) {
	if m.Primary.Is(id) {
		m.Primary = LoadingMarker{}
	}
}

func (m *Model) focusInput() {
	m.Focus = FocusInput
}

func (m Model) addTodo(text string) (Model, tea.Cmd) {
	if !m.HasIdentity() || m.inputDisabled() {
		return m, nil
	}
	title := strings.TrimSpace(text)
	if title == "" {
		return m.setError(model.ErrorEmptyTitle, nil), nil
	}
	placeholder := model.Task{ID: model.PlaceholderID, UserID: m.UserID, Title: title}
	m.Placeholder = &placeholder
	m.acquirePrimary(model.PlaceholderID)

	gw, userID, timeout := m.gateway, m.UserID, m.requestTimeout
	create := func() tea.Msg {
		ctx, cancel := requestContext(timeout)
		defer cancel()
		task, err := gw.Create(ctx, title, userID, false)
		return TodoAddedMsg{Title: title, Task: task, Err: err}
	}
	tick := m.spin()
	return m, tea.Batch(create, tick)
}

func (m Model) onTodoAdded(msg TodoAddedMsg) Model {
	m.Placeholder = nil
	m.releasePrimary(model.PlaceholderID)
	if msg.Err != nil {
		m.headerInput.SetValue(msg.Title)
		m.headerInput.CursorEnd()
		return m.setError(model.ErrorAddFailed, msg.Err)
	}
	tasks := make([]model.Task, 0, len(m.Tasks)+1)
	tasks = append(tasks, m.Tasks...)
	m.Tasks = append(tasks, msg.Task)
	m.putEditor(NewItemEditor(msg.Task))
	m.headerInput.SetValue("")
	m.logger.Debug("todo added", "id", msg.Task.ID)
	return m
}

func (m Model) removeCmd(id int, bulk bool) tea.Cmd {
	gw, timeout := m.gateway, m.requestTimeout
	return func() tea.Msg {
		ctx, cancel := requestContext(timeout)
		defer cancel()
		return TodoDeletedMsg{ID: id, Bulk: bulk, Err: gw.Remove(ctx, id)}
	}
}

func (m Model) deleteTodo(id int) (Model, tea.Cmd) {
	if !m.HasIdentity() || m.ItemLoading(id) || model.IndexOf(m.Tasks, id) < 0 {
		return m, nil
	}
	m.acquirePrimary(id)
	tick := m.spin()
	return m, tea.Batch(m.removeCmd(id, false), tick)
}

// clearCompleted removes every completed todo with independent requests.
// Each result is applied on its own as it arrives; nothing is rolled back.
func (m Model) clearCompleted() (Model, tea.Cmd) {
	if !m.HasIdentity() {
		return m, nil
	}
	var cmds []tea.Cmd
	for _, t := range m.Tasks {
		if t.Completed {
			cmds = append(cmds, m.removeCmd(t.ID, true))
		}
	}
	if len(cmds) == 0 {
		return m, nil
	}
	return m, tea.Batch(cmds...)
}

func (m Model) onTodoDeleted(msg TodoDeletedMsg) Model {
	if !msg.Bulk {
		m.releasePrimary(msg.ID)
	}
	if msg.Err != nil {
		return m.setError(model.ErrorDeleteFailed, msg.Err)
	}
	m.Tasks = model.Without(m.Tasks, msg.ID)
	m.dropEditor(msg.ID)
	m.focusInput()
	m.logger.Debug("todo deleted", "id", msg.ID, "bulk", msg.Bulk)
	return m
}

func (m Model) toggleAll() (Model, tea.Cmd) {
	if !m.HasIdentity() || m.Updating || len(m.Tasks) == 0 {
		return m, nil
	}
	allCompleted := model.AllCompleted(m.Tasks)
	var targets []int
	for _, t := range m.Tasks {
		if allCompleted || !t.Completed {
			targets = append(targets, t.ID)
		}
	}
	m.Updating = true
	m.BulkLoadingIDs = make(map[int]bool, len(targets))
	for _, id := range targets {
		m.BulkLoadingIDs[id] = true
	}
	tick := m.spin()
	return m, tea.Batch(patchAllCmd(m.gateway, m.requestTimeout, targets, !allCompleted), tick)
}

// patchAllCmd runs every patch concurrently and reports once all have settled.
func patchAllCmd(gw gateway.Gateway, timeout time.Duration, ids []int, completed bool) tea.Cmd {
	return func() tea.Msg {
		results := make([]PatchResult, len(ids))
		var wg sync.WaitGroup
		for i, id := range ids {
			wg.Add(1)
			go func() {
				defer wg.Done()
				ctx, cancel := requestContext(timeout)
				defer cancel()
				task, err := gw.Patch(ctx, id, model.CompletedPatch(completed))
				results[i] = PatchResult{ID: id, Task: task, Err: err}
			}()
		}
		wg.Wait()
		return ToggleAllDoneMsg{Results: results}
	}
}

func (m Model) onToggleAllDone(msg ToggleAllDoneMsg) (Model, tea.Cmd) {
	m.Updating = false
	m.BulkLoadingIDs = make(map[int]bool)
	var failed error
	for _, r := range msg.Results {
		if r.Err != nil {
			m.logger.Debug("toggle all patch failed", "id", r.ID, "err", r.Err)
			failed = r.Err
		}
	}
	if failed != nil {
		return m.setError(model.ErrorUpdateFailed, failed), nil
	}
	return m.startReload()
}

func (m Model) toggleTodo(id int) (Model, tea.Cmd) {
	ed, ok := m.Editors[id]
	if !m.HasIdentity() || m.Loading || !ok || m.ItemLoading(id) {
		return m, nil
	}
	ed, out := ed.ToggleCheck()
	m.putEditor(ed)
	return m.applyItemOutcome(id, out, nil)
}

func (m Model) onTodoToggled(msg TodoToggledMsg) (Model, tea.Cmd) {
	ed, ok := m.Editors[msg.ID]
	if !ok {
		m.releasePrimary(msg.ID)
		m.logger.Debug("discarding toggle result", "id", msg.ID)
		return m, nil
	}
	ed, out := ed.ToggleSettled(msg.Requested, msg.Task, msg.Err)
	m.putEditor(ed)
	return m.applyItemOutcome(msg.ID, out, msg.Err)
}

func (m Model) startEdit(id int) Model {
	idx := model.IndexOf(m.Tasks, id)
	ed, ok := m.Editors[id]
	if idx < 0 || !ok || m.ItemLoading(id) {
		return m
	}
	m.putEditor(ed.EnterEdit(m.Tasks[idx].Title))
	return m
}

func (m Model) commitEdit(id int) (Model, tea.Cmd) {
	ed, ok := m.Editors[id]
	if !ok {
		return m, nil
	}
	ed, out := ed.CommitEdit()
	m.putEditor(ed)
	return m.applyItemOutcome(id, out, nil)
}

func (m Model) cancelEdit(id int) Model {
	if ed, ok := m.Editors[id]; ok {
		m.putEditor(ed.CancelEdit())
	}
	return m
}

func (m Model) onTodoRenamed(msg TodoRenamedMsg) (Model, tea.Cmd) {
	ed, ok := m.Editors[msg.ID]
	if !ok {
		m.releasePrimary(msg.ID)
		m.logger.Debug("discarding rename result", "id", msg.ID)
		return m, nil
	}
	ed, out := ed.EditSettled(msg.Err)
	m.putEditor(ed)
	if msg.Err == nil {
		if idx := model.IndexOf(m.Tasks, msg.ID); idx >= 0 {
			tasks := append([]model.Task{}, m.Tasks...)
			tasks[idx].Title = msg.Title
			m.Tasks = tasks
		}
	}
	return m.applyItemOutcome(msg.ID, out, msg.Err)
}

// applyItemOutcome carries out what an editor asked for.
func (m Model) applyItemOutcome(id int, out ItemOutcome, cause error) (Model, tea.Cmd) {
	var cmds []tea.Cmd
	if out.Acquire {
		m.acquirePrimary(id)
		cmds = append(cmds, m.spin())
	}
	if out.Patch != nil {
		cmds = append(cmds, m.patchCmd(id, *out.Patch))
	}
	if out.Err != "" {
		m = m.setError(out.Err, cause)
	}
	if out.Release {
		m.releasePrimary(id)
	}
	if out.Delete {
		var cmd tea.Cmd
		m, cmd = m.deleteTodo(id)
		cmds = append(cmds, cmd)
	}
	if out.Reload {
		var cmd tea.Cmd
		m, cmd = m.startReload()
		cmds = append(cmds, cmd)
	}
	return m, tea.Batch(cmds...)
}

func (m Model) patchCmd(id int, patch model.TaskPatch) tea.Cmd {
	gw, timeout := m.gateway, m.requestTimeout
	return func() tea.Msg {
		ctx, cancel := requestContext(timeout)
		defer cancel()
		task, err := gw.Patch(ctx, id, patch)
		if patch.Title != nil {
			return TodoRenamedMsg{ID: id, Title: *patch.Title, Task: task, Err: err}
		}
		requested := patch.Completed != nil && *patch.Completed
		return TodoToggledMsg{ID: id, Requested: requested, Task: task, Err: err}
	}
}
