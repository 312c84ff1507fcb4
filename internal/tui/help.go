package tui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
)

type helpKey struct {
	key  string
	desc string
}

var helpKeys = []helpKey{
	{"j/k ↑/↓", "Navigate sessions"},
	{"r", "Refresh now"},
	{"x", "Revert selected session to Claude"},
	{"y", "Copy selected session id"},
	{"?", "Toggle help"},
	{"q / Ctrl+c", "Quit"},
}

// renderHelp renders the help overlay content.
func renderHelp(width int) string {
	maxWidth := 60
	if width-4 < maxWidth {
		maxWidth = width - 4
	}
	if maxWidth < 30 {
		maxWidth = 30
	}

	lines := []string{overlayTitleStyle.Render("Keyboard Shortcuts")}
	for _, k := range helpKeys {
		keyCol := lipgloss.NewStyle().
			Width(14).
			Foreground(colorWhite).
			Bold(true).
			Render(k.key)
		descCol := lipgloss.NewStyle().
			Foreground(colorDim).
			Render(k.desc)
		lines = append(lines, "  "+keyCol+descCol)
	}
	lines = append(lines, "",
		lipgloss.NewStyle().Foreground(colorDim).Render("Switching models is done from the menu bar or `omcbar switch`."))

	return overlayStyle.Width(maxWidth).Render(strings.Join(lines, "\n"))
}
