package update

import (
	"fmt"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/sandeepkv93/todosync/internal/commands"
	"github.com/sandeepkv93/todosync/internal/model"
)

func (m Model) openPalette() Model {
	m.Palette.Active = true
	m.Palette.Input = ""
	m.commandInput.SetValue("")
	m.commandInput.Focus()
	m.Status = StatusBar{Text: "command palette active", IsError: false}
	return m
}

func (m Model) closePalette() Model {
	m.Palette.Active = false
	m.Palette.Input = ""
	m.commandInput.SetValue("")
	m.commandInput.Blur()
	return m
}

func (m Model) handlePaletteKey(msg tea.KeyMsg) (Model, tea.Cmd) {
	switch msg.String() {
	case "esc":
		m = m.closePalette()
		m.Status = StatusBar{Text: "command palette closed", IsError: false}
		return m, nil
	case "enter":
		m.Palette.Input = m.commandInput.Value()
		return m.executePaletteCommand()
	}
	if msg.Type == tea.KeyRunes {
		m.commandInput.SetValue(m.commandInput.Value() + string(msg.Runes))
		m.Palette.Input = m.commandInput.Value()
		return m, nil
	}
	var cmd tea.Cmd
	m.commandInput, cmd = m.commandInput.Update(msg)
	m.Palette.Input = m.commandInput.Value()
	return m, cmd
}

func (m Model) executePaletteCommand() (Model, tea.Cmd) {
	raw := strings.TrimSpace(m.Palette.Input)
	cmd, err := commands.Parse(raw)
	if err != nil {
		m = m.closePalette()
		return m.flashStatus(err.Error(), true)
	}

	var out tea.Cmd
	res, err := commands.Execute(cmd, commands.Handlers{
		Add: func(a commands.AddArgs) (commands.Result, error) {
			if m.inputDisabled() {
				return commands.Result{}, &commands.CommandError{Code: commands.ErrCodeInvalidArgument, Message: "another change is still saving"}
			}
			if strings.TrimSpace(a.Title) == "" {
				m = m.setError(model.ErrorEmptyTitle, nil)
				return commands.Result{Message: model.ErrorEmptyTitle.Message()}, nil
			}
			m, out = m.addTodo(a.Title)
			return commands.Result{Message: fmt.Sprintf("adding todo: %s", strings.TrimSpace(a.Title))}, nil
		},
		Filter: func(a commands.FilterArgs) (commands.Result, error) {
			m.Filter = a.Filter
			return commands.Result{Message: fmt.Sprintf("showing %s", strings.ToLower(a.Filter.Label()))}, nil
		},
		Delete: func(a commands.DeleteArgs) (commands.Result, error) {
			if model.IndexOf(m.Tasks, a.ID) < 0 {
				return commands.Result{}, &commands.CommandError{Code: commands.ErrCodeInvalidArgument, Message: fmt.Sprintf("no todo #%d", a.ID)}
			}
			m, out = m.deleteTodo(a.ID)
			return commands.Result{Message: fmt.Sprintf("deleting todo #%d", a.ID)}, nil
		},
		Clear: func() (commands.Result, error) {
			n := len(model.FilterCompleted.Apply(m.Tasks))
			m, out = m.clearCompleted()
			return commands.Result{Message: fmt.Sprintf("clearing %d completed todo(s)", n)}, nil
		},
		ToggleAll: func() (commands.Result, error) {
			if m.Updating {
				return commands.Result{}, &commands.CommandError{Code: commands.ErrCodeInvalidArgument, Message: "toggle all already running"}
			}
			m, out = m.toggleAll()
			return commands.Result{Message: "toggling all todos"}, nil
		},
		Reload: func() (commands.Result, error) {
			m, out = m.startReload()
			return commands.Result{Message: "reloading"}, nil
		},
		Dismiss: func() (commands.Result, error) {
			m = m.dismissError()
			return commands.Result{Message: "error dismissed"}, nil
		},
	})
	m = m.closePalette()
	var expire tea.Cmd
	if err != nil {
		m, expire = m.flashStatus(err.Error(), true)
	} else {
		m, expire = m.flashStatus(res.Message, false)
	}
	return m, tea.Batch(out, expire)
}

// flashStatus shows text on the status line and clears it after the error timeout.
func (m Model) flashStatus(text string, isErr bool) (Model, tea.Cmd) {
	m.Status = StatusBar{Text: text, IsError: isErr}
	if m.statusTimeout <= 0 {
		return m, nil
	}
	return m, tea.Tick(m.statusTimeout, func(time.Time) tea.Msg { return ClearStatusMsg{Text: text} })
}
