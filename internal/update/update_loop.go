package update

import (
	"fmt"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/sandeepkv93/todosync/internal/views"
)

const appTitle = "todos"

// Init loads the list. Without a user id nothing is requested.
func (m Model) Init() tea.Cmd {
	if !m.HasIdentity() {
		return nil
	}
	return tea.Batch(m.reloadCmd(), m.loader.Tick, waitForExpiryCmd(m.alerts))
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	next, cmd := m.update(msg)
	next.syncBubbleData()
	return next, cmd
}

func (m Model) update(msg tea.Msg) (Model, tea.Cmd) {
	switch typed := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(typed)
	case tea.WindowSizeMsg:
		m.listViewport.Width = typed.Width
		m.listViewport.Height = max(typed.Height-12, 3)
		m.helpModel.Width = typed.Width
		return m, nil
	case spinner.TickMsg:
		if !m.busy() && m.Placeholder == nil {
			m.spinning = false
			return m, nil
		}
		var cmd tea.Cmd
		m.loader, cmd = m.loader.Update(typed)
		return m, cmd
	case TodosLoadedMsg:
		return m.onTodosLoaded(typed), nil
	case TodoAddedMsg:
		return m.onTodoAdded(typed), nil
	case TodoDeletedMsg:
		return m.onTodoDeleted(typed), nil
	case TodoToggledMsg:
		return m.onTodoToggled(typed)
	case TodoRenamedMsg:
		return m.onTodoRenamed(typed)
	case ToggleAllDoneMsg:
		return m.onToggleAllDone(typed)
	case ErrorExpiredMsg:
		return m.onErrorExpired(typed)
	case ClearStatusMsg:
		if m.Status.Text == typed.Text {
			m.Status = StatusBar{}
		}
		return m, nil
	}
	return m, nil
}

func (m Model) View() string {
	if m.Quitting {
		return ""
	}
	if !m.HasIdentity() {
		return views.RenderApp(views.AppData{
			Title: appTitle,
			List:  views.RenderIdentityNotice(),
			Keys:  fmt.Sprintf("keys: %s quit", m.Keys.Quit),
		})
	}
	status := ""
	if m.Status.Text != "" {
		if m.Status.IsError {
			status = fmt.Sprintf("status: error: %s", m.Status.Text)
		} else {
			status = fmt.Sprintf("status: %s", m.Status.Text)
		}
	}
	return views.RenderApp(views.AppData{
		Title:   appTitle,
		Header:  m.renderHeader(),
		List:    m.renderList(),
		Footer:  m.renderFooter(),
		Banner:  views.RenderErrorBanner(m.ErrorMessage()),
		Status:  status,
		Palette: m.renderCommandPalette(),
		Help:    m.renderHelpIfVisible(),
		Keys:    m.renderKeysLine(),
	})
}

// ErrorMessage is the banner text, or "" when the slot is empty.
func (m Model) ErrorMessage() string {
	if m.Err == "" {
		return ""
	}
	return m.Err.Message()
}
