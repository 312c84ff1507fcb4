package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/oh-my-claude/menubar/internal/models"
)

func renderHeader(sessions []models.SessionView, spin string, width int) string {
	dot := lipgloss.NewStyle().Foreground(colorOrange).Render("●")
	name := lipgloss.NewStyle().Bold(true).Render("oh-my-claude")

	switched, offline := 0, 0
	for _, v := range sessions {
		if v.Switched {
			switched++
		}
		if !v.Healthy {
			offline++
		}
	}

	left := fmt.Sprintf(" %s %s  %s", dot, name, renderCounts(len(sessions), switched, offline))
	right := spin + " "

	gap := width - lipgloss.Width(left) - lipgloss.Width(right)
	if gap < 1 {
		gap = 1
	}

	return headerStyle.Width(width).Render(left + strings.Repeat(" ", gap) + right)
}

func renderCounts(total, switched, offline int) string {
	if total == 0 {
		return badgeIdleStyle.Render("no sessions")
	}
	s := badgeActiveStyle.Render(fmt.Sprintf("%d sessions", total))
	if switched > 0 {
		s += "  " + sessionSwitchedStyle.Render(fmt.Sprintf("%d switched", switched))
	}
	if offline > 0 {
		s += "  " + warnStyle.Render(fmt.Sprintf("%d offline", offline))
	}
	return s
}
