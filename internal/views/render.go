package views

import (
	"strings"

	"github.com/charmbracelet/glamour"
	"github.com/charmbracelet/lipgloss"
)

type AppData struct {
	Title   string
	Header  string
	List    string
	Footer  string
	Banner  string
	Status  string
	Palette string
	Help    string
	Keys    string
}

var (
	titleStyle   = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("168")).Padding(0, 1)
	statusStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("10"))
	errorStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("9"))
	panelStyle   = lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).Padding(0, 1)
	bannerStyle  = lipgloss.NewStyle().Border(lipgloss.ThickBorder()).BorderForeground(lipgloss.Color("9")).Foreground(lipgloss.Color("9")).Padding(0, 1)
	footerStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("8"))
	mutedStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("8"))
	doneStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("8")).Strikethrough(true)
	cursorStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("12")).Bold(true)
	activeFilter = lipgloss.NewStyle().Underline(true).Foreground(lipgloss.Color("168"))
)

const panelWidth = 64

func RenderApp(data AppData) string {
	body := strings.TrimRight(strings.Join(nonEmpty(data.Header, data.List, data.Footer), "\n"), "\n")
	lines := []string{
		titleStyle.Render(data.Title),
		panelStyle.Width(panelWidth).Render(body),
	}
	if data.Banner != "" {
		lines = append(lines, data.Banner)
	}
	if data.Status != "" {
		status := statusStyle.Render(data.Status)
		if strings.Contains(strings.ToLower(data.Status), "error") {
			status = errorStyle.Render(data.Status)
		}
		lines = append(lines, status)
	}
	if data.Palette != "" {
		lines = append(lines, data.Palette)
	}
	if data.Help != "" {
		lines = append(lines, panelStyle.Width(panelWidth).Render(data.Help))
	}
	if data.Keys != "" {
		lines = append(lines, footerStyle.Render(data.Keys))
	}
	return strings.Join(lines, "\n")
}

func RenderMarkdown(md string) string {
	if strings.TrimSpace(md) == "" {
		return ""
	}
	r, err := glamour.NewTermRenderer(glamour.WithStandardStyle("dark"), glamour.WithWordWrap(panelWidth-4))
	if err != nil {
		return md
	}
	out, err := r.Render(md)
	if err != nil {
		return md
	}
	return strings.TrimSpace(out)
}

func nonEmpty(parts ...string) []string {
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if strings.TrimSpace(p) != "" {
			out = append(out, p)
		}
	}
	return out
}
