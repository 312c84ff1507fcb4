package tui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
)

func renderStatusBar(m *Model, width int) string {
	if m.err != nil {
		return renderErrorBar(m.err.Error(), width)
	}

	left := " " + getKeyHints(m)
	right := ""
	if m.notice != "" {
		right = noticeStyle.Render(m.notice) + " "
	}

	gap := width - lipgloss.Width(left) - lipgloss.Width(right)
	if gap < 1 {
		gap = 1
	}

	return statusBarStyle.Width(width).Render(left + strings.Repeat(" ", gap) + right)
}

func getKeyHints(m *Model) string {
	if m.showHelp {
		return keyHint("Esc", "close help")
	}

	hints := keyHint("q", "quit") + "  " + keyHint("?", "help") + "  " +
		keyHint("j/k", "navigate") + "  " + keyHint("r", "refresh") + "  " + keyHint("y", "copy id")
	if v := m.list.Selected(); v != nil && v.Switched {
		hints += "  " + keyHint("x", "revert")
	}
	return hints
}

func keyHint(k, desc string) string {
	if k == "" {
		return hintStyle.Render(desc)
	}
	return keyStyle.Render(k) + " " + hintStyle.Render(desc)
}

func renderErrorBar(msg string, width int) string {
	return statusBarStyle.
		Background(colorRed).
		Width(width).
		Render(" " + msg)
}
