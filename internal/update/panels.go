package update

import (
	"github.com/sandeepkv93/todosync/internal/model"
	"github.com/sandeepkv93/todosync/internal/views"
)

func (m Model) renderCommandPalette() string {
	return views.RenderCommandPalette(m.Palette.Active, m.commandInput.View())
}

func (m Model) renderHeader() string {
	return views.RenderHeader(views.HeaderData{
		ShowToggleAll: len(m.Tasks) > 0,
		AllCompleted:  model.AllCompleted(m.Tasks),
		InputView:     m.headerInput.View(),
		Disabled:      m.inputDisabled(),
	})
}

func (m Model) renderList() string {
	visible := m.VisibleTasks()
	rows := make([]views.TodoRowData, 0, len(visible)+1)
	for i, t := range visible {
		row := views.TodoRowData{
			ID:       t.ID,
			Title:    t.Title,
			Checked:  t.Completed,
			Loading:  m.ItemLoading(t.ID),
			Selected: m.Focus == FocusList && i == m.Cursor,
		}
		if ed, ok := m.Editors[t.ID]; ok {
			row.Checked = ed.Checked
			row.Editing = ed.Editing
			row.EditView = ed.View()
		}
		rows = append(rows, row)
	}
	if m.Placeholder != nil {
		rows = append(rows, views.TodoRowData{
			ID:          m.Placeholder.ID,
			Title:       m.Placeholder.Title,
			Loading:     true,
			Placeholder: true,
		})
	}
	list := views.RenderTodoList(views.ListData{
		Rows:        rows,
		SpinnerView: m.loader.View(),
		Loading:     m.Loading,
		EmptyText:   "nothing to show",
	})
	if len(rows) <= m.listViewport.Height {
		return list
	}
	vp := m.listViewport
	vp.SetContent(list)
	if m.Cursor >= vp.Height {
		vp.SetYOffset(m.Cursor - vp.Height + 1)
	}
	return vp.View()
}

func (m Model) renderFooter() string {
	if len(m.Tasks) == 0 {
		return ""
	}
	labels := make([]string, 0, len(model.Filters))
	for _, f := range model.Filters {
		labels = append(labels, f.Label())
	}
	return views.RenderFooter(views.FooterData{
		ActiveCount:  model.ActiveCount(m.Tasks),
		Filters:      labels,
		ActiveFilter: m.Filter.Label(),
		HasCompleted: model.HasCompleted(m.Tasks),
	})
}

func (m Model) renderKeysLine() string {
	switch m.mode() {
	case "command":
		return "keys: enter run | esc close"
	case "edit":
		return "keys: enter save | esc cancel"
	case string(FocusInput):
		return "keys: enter add | tab list | ctrl+c quit"
	default:
		return "keys: space toggle | e edit | d delete | A all | C clear | f filter | : cmd | ? help | q quit"
	}
}
