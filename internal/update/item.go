package update

import (
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/sandeepkv93/todosync/internal/model"
)

// ItemEditor holds the local state of one rendered todo.
type ItemEditor struct {
	ID        int
	Checked   bool
	Editing   bool
	LocalBusy bool

	// completed is the last authoritative value Checked was synced from.
	completed bool
	draft     textinput.Model
}

// ItemOutcome tells the controller what an editor transition needs from it.
// The editor never touches controller state itself.
type ItemOutcome struct {
	// Acquire sets the primary loading marker to the editor's id.
	Acquire bool
	// Patch is sent through the gateway when non-nil.
	Patch *model.TaskPatch
	// Delete delegates to the controller's delete.
	Delete  bool
	Err     model.ErrorKind
	Reload  bool
	Release bool
}

func NewItemEditor(t model.Task) ItemEditor {
	draft := textinput.New()
	draft.Prompt = ""
	draft.Placeholder = "Empty todo will be deleted"
	draft.CharLimit = 256
	draft.Width = 48
	return ItemEditor{
		ID:        t.ID,
		Checked:   t.Completed,
		completed: t.Completed,
		draft:     draft,
	}
}

// Sync resyncs the mirror when the authoritative completed value has changed.
func (e ItemEditor) Sync(t model.Task) ItemEditor {
	if t.Completed != e.completed {
		e.completed = t.Completed
		e.Checked = t.Completed
	}
	return e
}

func (e ItemEditor) Draft() string {
	return e.draft.Value()
}

func (e ItemEditor) ToggleCheck() (ItemEditor, ItemOutcome) {
	e.Checked = !e.Checked
	patch := model.CompletedPatch(e.Checked)
	return e, ItemOutcome{Acquire: true, Patch: &patch}
}

// ToggleSettled applies the outcome of the patch sent by ToggleCheck.
func (e ItemEditor) ToggleSettled(requested bool, server model.Task, err error) (ItemEditor, ItemOutcome) {
	if err != nil {
		e.Checked = !requested
		return e, ItemOutcome{Err: model.ErrorUpdateFailed, Release: true}
	}
	if server.Completed != e.Checked {
		e.Checked = server.Completed
	}
	return e, ItemOutcome{Reload: true, Release: true}
}

func (e ItemEditor) EnterEdit(title string) ItemEditor {
	e.Editing = true
	e.draft.SetValue(title)
	e.draft.CursorEnd()
	e.draft.Focus()
	return e
}

// UpdateDraft forwards a key press to the draft input.
func (e ItemEditor) UpdateDraft(msg tea.KeyMsg) (ItemEditor, tea.Cmd) {
	if msg.Type == tea.KeyRunes {
		e.draft.SetValue(e.draft.Value() + string(msg.Runes))
		e.draft.CursorEnd()
		return e, nil
	}
	var cmd tea.Cmd
	e.draft, cmd = e.draft.Update(msg)
	return e, cmd
}

// CommitEdit is reached by both submission and focus loss. An empty draft
// stays in edit mode until the delete it asks for removes the item.
func (e ItemEditor) CommitEdit() (ItemEditor, ItemOutcome) {
	if !e.Editing || e.LocalBusy {
		return e, ItemOutcome{}
	}
	title := strings.TrimSpace(e.draft.Value())
	if title == "" {
		return e, ItemOutcome{Delete: true}
	}
	e.LocalBusy = true
	e.draft.SetValue(title)
	patch := model.TitlePatch(title)
	return e, ItemOutcome{Acquire: true, Patch: &patch}
}

// EditSettled applies the outcome of the title patch sent by CommitEdit.
func (e ItemEditor) EditSettled(err error) (ItemEditor, ItemOutcome) {
	e.Editing = false
	e.LocalBusy = false
	e.draft.Blur()
	if err != nil {
		return e, ItemOutcome{Err: model.ErrorUpdateFailed, Release: true}
	}
	return e, ItemOutcome{Reload: true, Release: true}
}

// CancelEdit discards the draft. A commit already in flight is left to settle.
func (e ItemEditor) CancelEdit() ItemEditor {
	if e.LocalBusy {
		return e
	}
	e.Editing = false
	e.draft.SetValue("")
	e.draft.Blur()
	return e
}

func (e ItemEditor) View() string {
	return e.draft.View()
}
