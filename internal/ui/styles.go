package ui

import (
	"strings"

	"github.com/charmbracelet/glamour"
	"github.com/charmbracelet/lipgloss"
)

// renderMarkdown renders the task list with glamour. The dark style is fixed
// so the renderer never queries the terminal background.
func renderMarkdown(width int, content string) (string, error) {
	if content == "" {
		return "", nil
	}
	r, err := glamour.NewTermRenderer(
		glamour.WithStandardStyle("dark"),
		glamour.WithWordWrap(width),
	)
	if err != nil {
		return "", err
	}
	out, err := r.Render(content)
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(out), nil
}

var (
	colorPrimary   = lipgloss.Color("#7AA2F7")
	colorSecondary = lipgloss.Color("#9ECE6A")
	colorMuted     = lipgloss.Color("#666666")
	colorHighlight = lipgloss.Color("#1A1B26")
	colorDanger    = lipgloss.Color("#F7768E")
	colorBorder    = lipgloss.Color("#444444")
	colorMarker    = lipgloss.Color("#E0AF68")
)

var (
	appStyle = lipgloss.NewStyle().Padding(1, 2)

	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(colorPrimary)

	navStyle = lipgloss.NewStyle().
			Foreground(colorMuted)

	weekdayStyle = lipgloss.NewStyle().
			Foreground(colorMuted).
			Width(cellWidth).
			Align(lipgloss.Right)

	dayStyle = lipgloss.NewStyle().
			Width(cellWidth).
			Align(lipgloss.Right)

	selectedDayStyle = dayStyle.
				Background(colorPrimary).
				Foreground(colorHighlight).
				Bold(true)

	cursorDayStyle = dayStyle.
			Underline(true).
			Bold(true)

	todayStyle = dayStyle.
			Foreground(colorSecondary)

	markerStyle = lipgloss.NewStyle().
			Foreground(colorMarker)

	paneStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(colorBorder).
			Padding(0, 1)

	paneHeaderStyle = lipgloss.NewStyle().
			Foreground(colorSecondary).
			Bold(true)

	mutedStyle = lipgloss.NewStyle().
			Foreground(colorMuted)

	successStyle = lipgloss.NewStyle().
			Foreground(colorSecondary)

	errorStyle = lipgloss.NewStyle().
			Foreground(colorDanger)
)

const (
	cellWidth         = 4
	defaultPaneWidth  = 48
	defaultInputWidth = 40
)
