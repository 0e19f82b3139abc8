package update

import (
	tea "github.com/charmbracelet/bubbletea"
	"github.com/sandeepkv93/todosync/internal/model"
)

func (m Model) handleKey(msg tea.KeyMsg) (Model, tea.Cmd) {
	keyStr := msg.String()
	if keyStr == "ctrl+c" {
		return m.quit()
	}
	if !m.HasIdentity() {
		if keyStr == m.Keys.Quit {
			return m.quit()
		}
		return m, nil
	}
	if m.Palette.Active {
		if keyStr == m.Keys.Help {
			m.HelpVisible = !m.HelpVisible
			return m, nil
		}
		return m.handlePaletteKey(msg)
	}
	if id, ok := m.editingID(); ok {
		return m.handleEditKey(id, msg)
	}
	if m.Focus == FocusInput {
		return m.handleInputKey(msg)
	}
	return m.handleListKey(msg)
}

func (m Model) editingID() (int, bool) {
	for id, ed := range m.Editors {
		if ed.Editing {
			return id, true
		}
	}
	return 0, false
}

func (m Model) handleInputKey(msg tea.KeyMsg) (Model, tea.Cmd) {
	switch msg.String() {
	case "enter":
		return m.addTodo(m.headerInput.Value())
	case "tab", "down":
		if len(m.VisibleTasks()) > 0 {
			m.Focus = FocusList
		}
		return m, nil
	}
	if m.inputDisabled() {
		return m, nil
	}
	if msg.Type == tea.KeyRunes {
		m.headerInput.SetValue(m.headerInput.Value() + string(msg.Runes))
		m.headerInput.CursorEnd()
		return m, nil
	}
	var cmd tea.Cmd
	m.headerInput, cmd = m.headerInput.Update(msg)
	return m, cmd
}

func (m Model) handleEditKey(id int, msg tea.KeyMsg) (Model, tea.Cmd) {
	switch msg.String() {
	case "enter", "tab":
		return m.commitEdit(id)
	case "esc":
		return m.cancelEdit(id), nil
	case "up", "down":
		// Moving away counts as leaving the field.
		next, cmd := m.commitEdit(id)
		next = next.moveCursor(msg.String() == "down")
		return next, cmd
	}
	ed := m.Editors[id]
	if ed.LocalBusy {
		return m, nil
	}
	ed, cmd := ed.UpdateDraft(msg)
	m.putEditor(ed)
	return m, cmd
}

func (m Model) moveCursor(down bool) Model {
	if down {
		if m.Cursor < len(m.VisibleTasks())-1 {
			m.Cursor++
		}
		return m
	}
	if m.Cursor == 0 {
		m.focusInput()
		return m
	}
	m.Cursor--
	return m
}

func (m Model) handleListKey(msg tea.KeyMsg) (Model, tea.Cmd) {
	selected, hasSelection := m.selectedTask()
	switch msg.String() {
	case m.Keys.Quit:
		return m.quit()
	case m.Keys.Help:
		m.HelpVisible = !m.HelpVisible
		return m, nil
	case ":":
		return m.openPalette(), nil
	case "j", "down":
		return m.moveCursor(true), nil
	case "k", "up":
		return m.moveCursor(false), nil
	case "i", "a", "esc":
		m.focusInput()
		return m, nil
	case " ", "space":
		if hasSelection {
			return m.toggleTodo(selected.ID)
		}
	case "enter", "e":
		if hasSelection {
			return m.startEdit(selected.ID), nil
		}
	case "d":
		if hasSelection {
			return m.deleteTodo(selected.ID)
		}
	case "A":
		return m.toggleAll()
	case "C":
		return m.clearCompleted()
	case "1":
		m.Filter = model.FilterAll
	case "2":
		m.Filter = model.FilterActive
	case "3":
		m.Filter = model.FilterCompleted
	case "f":
		m.Filter = m.Filter.Next()
	case "r":
		if !m.Loading {
			return m.startReload()
		}
	case "x":
		return m.dismissError(), nil
	}
	return m, nil
}
