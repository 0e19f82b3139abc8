package views

import (
	"fmt"
	"strings"
)

type HeaderData struct {
	ShowToggleAll bool
	AllCompleted  bool
	InputView     string
	Disabled      bool
}

type TodoRowData struct {
	ID          int
	Title       string
	Checked     bool
	Editing     bool
	EditView    string
	Loading     bool
	Selected    bool
	Placeholder bool
}

type ListData struct {
	Rows        []TodoRowData
	SpinnerView string
	Loading     bool
	EmptyText   string
}

type FooterData struct {
	ActiveCount  int
	Filters      []string
	ActiveFilter string
	HasCompleted bool
}

type HelpPanelData struct {
	Mode     string
	Bindings []string
	HelpView string
}

func RenderHeader(data HeaderData) string {
	toggle := "   "
	if data.ShowToggleAll {
		if data.AllCompleted {
			toggle = cursorStyle.Render("[v]")
		} else {
			toggle = mutedStyle.Render("[v]")
		}
	}
	input := data.InputView
	if data.Disabled {
		input = mutedStyle.Render(input)
	}
	return toggle + " " + input
}

func RenderTodoList(data ListData) string {
	if len(data.Rows) == 0 {
		if data.Loading {
			return data.SpinnerView + " loading todos"
		}
		return mutedStyle.Render(data.EmptyText)
	}
	var b strings.Builder
	for _, row := range data.Rows {
		b.WriteString(renderRow(row, data.SpinnerView))
		b.WriteString("\n")
	}
	return strings.TrimSuffix(b.String(), "\n")
}

func renderRow(row TodoRowData, spinnerView string) string {
	cursor := "  "
	if row.Selected {
		cursor = cursorStyle.Render("> ")
	}
	box := "[ ]"
	if row.Checked {
		box = "[x]"
	}
	title := row.Title
	switch {
	case row.Editing:
		title = row.EditView
	case row.Checked:
		title = doneStyle.Render(title)
	}
	line := fmt.Sprintf("%s%s %s", cursor, box, title)
	if row.Loading {
		line += " " + spinnerView
	}
	return line
}

func RenderFooter(data FooterData) string {
	noun := "items"
	if data.ActiveCount == 1 {
		noun = "item"
	}
	links := make([]string, 0, len(data.Filters))
	for _, f := range data.Filters {
		if f == data.ActiveFilter {
			links = append(links, activeFilter.Render(f))
			continue
		}
		links = append(links, f)
	}
	clear := mutedStyle.Render("Clear completed")
	if data.HasCompleted {
		clear = "Clear completed"
	}
	return fmt.Sprintf("%d %s left | %s | %s", data.ActiveCount, noun, strings.Join(links, " "), clear)
}

// RenderErrorBanner returns "" when there is nothing to show.
func RenderErrorBanner(message string) string {
	if strings.TrimSpace(message) == "" {
		return ""
	}
	return bannerStyle.Render(message + "  " + mutedStyle.Render("[x] dismiss"))
}

func RenderCommandPalette(active bool, inputView string) string {
	if !active {
		return ""
	}
	return fmt.Sprintf("command: %s", inputView)
}

func RenderHelpPanel(data HelpPanelData) string {
	return fmt.Sprintf("help (%s):\n%s\n%s",
		strings.ToLower(data.Mode),
		strings.Join(data.Bindings, "\n"),
		data.HelpView,
	)
}

const identityNotice = `# User id required

This client works with the todos of a single user. Set one before starting:

- flag: ` + "`--user-id 970`" + `
- environment: ` + "`TODOSYNC_USER_ID=970`" + `
- config file: ` + "`user_id: 970`" + `

Press **q** to quit.`

// RenderIdentityNotice is shown in place of the list when no user id is configured.
func RenderIdentityNotice() string {
	return RenderMarkdown(identityNotice)
}
