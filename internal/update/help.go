package update

import (
	"fmt"

	"github.com/charmbracelet/bubbles/key"
	"github.com/sandeepkv93/todosync/internal/views"
)

type KeyBinding struct {
	Key    string
	Action string
}

type helpKeyMap struct {
	short []key.Binding
	full  [][]key.Binding
}

func (k helpKeyMap) ShortHelp() []key.Binding  { return k.short }
func (k helpKeyMap) FullHelp() [][]key.Binding { return k.full }

func (m Model) renderHelpIfVisible() string {
	if !m.HelpVisible {
		return ""
	}
	return m.renderHelpView()
}

func (m Model) renderHelpView() string {
	bindings := m.helpBindings()
	var plain []string
	for _, kb := range m.modeBindings() {
		plain = append(plain, fmt.Sprintf("- %s: %s", kb.Key, kb.Action))
	}
	return views.RenderHelpPanel(views.HelpPanelData{
		Mode:     m.mode(),
		Bindings: plain,
		HelpView: m.helpModel.View(helpKeyMap{
			short: bindings,
			full:  [][]key.Binding{bindings},
		}),
	})
}

func (m Model) mode() string {
	if m.Palette.Active {
		return "command"
	}
	if _, ok := m.editingID(); ok {
		return "edit"
	}
	return string(m.Focus)
}

func (m Model) globalBindings() []KeyBinding {
	return []KeyBinding{
		{Key: ":", Action: "open command palette"},
		{Key: m.Keys.Help, Action: "toggle help panel"},
		{Key: m.Keys.Quit, Action: "quit app"},
	}
}

func (m Model) modeBindings() []KeyBinding {
	switch m.mode() {
	case "command":
		return []KeyBinding{
			{Key: "enter", Action: "run command"},
			{Key: "esc", Action: "close palette"},
		}
	case "edit":
		return []KeyBinding{
			{Key: "enter/tab", Action: "save title (empty deletes)"},
			{Key: "esc", Action: "discard changes"},
		}
	case string(FocusInput):
		return []KeyBinding{
			{Key: "enter", Action: "add todo"},
			{Key: "tab", Action: "move to list"},
		}
	default:
		return []KeyBinding{
			{Key: "j/k", Action: "move cursor"},
			{Key: "space", Action: "toggle completed"},
			{Key: "enter/e", Action: "edit title"},
			{Key: "d", Action: "delete"},
			{Key: "A", Action: "toggle all"},
			{Key: "C", Action: "clear completed"},
			{Key: "1/2/3/f", Action: "filter all/active/completed, cycle"},
			{Key: "r", Action: "reload"},
			{Key: "x", Action: "dismiss error"},
			{Key: "i", Action: "back to input"},
		}
	}
}

func (m Model) helpBindings() []key.Binding {
	out := make([]key.Binding, 0, len(m.globalBindings())+len(m.modeBindings()))
	for _, kb := range m.globalBindings() {
		out = append(out, key.NewBinding(key.WithKeys(kb.Key), key.WithHelp(kb.Key, kb.Action)))
	}
	for _, kb := range m.modeBindings() {
		out = append(out, key.NewBinding(key.WithKeys(kb.Key), key.WithHelp(kb.Key, kb.Action)))
	}
	return out
}
