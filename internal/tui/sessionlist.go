package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"

	"github.com/oh-my-claude/menubar/internal/menu"
	"github.com/oh-my-claude/menubar/internal/models"
)

// SessionList is a scrollable list of sessions with a cursor.
type SessionList struct {
	sessions     []models.SessionView
	cursor       int
	scrollOffset int
	height       int
}

// NewSessionList creates an empty list.
func NewSessionList() *SessionList {
	return &SessionList{height: 10}
}

// SetSessions replaces the rows, keeping the cursor on the same session
// when it is still present.
func (sl *SessionList) SetSessions(sessions []models.SessionView) {
	selected := ""
	if v := sl.Selected(); v != nil {
		selected = v.SessionID
	}

	sl.sessions = sessions
	sl.cursor = 0
	for i, v := range sessions {
		if v.SessionID == selected {
			sl.cursor = i
			break
		}
	}
	sl.ensureVisible()
}

// SetHeight sets the number of visible rows.
func (sl *SessionList) SetHeight(h int) {
	if h < 1 {
		h = 1
	}
	sl.height = h
	sl.ensureVisible()
}

// MoveUp moves the cursor up.
func (sl *SessionList) MoveUp() {
	if sl.cursor > 0 {
		sl.cursor--
		sl.ensureVisible()
	}
}

// MoveDown moves the cursor down.
func (sl *SessionList) MoveDown() {
	if sl.cursor < len(sl.sessions)-1 {
		sl.cursor++
		sl.ensureVisible()
	}
}

// Selected returns the session under the cursor.
func (sl *SessionList) Selected() *models.SessionView {
	if sl.cursor < 0 || sl.cursor >= len(sl.sessions) {
		return nil
	}
	return &sl.sessions[sl.cursor]
}

func (sl *SessionList) ensureVisible() {
	if sl.cursor < sl.scrollOffset {
		sl.scrollOffset = sl.cursor
	}
	if sl.cursor >= sl.scrollOffset+sl.height {
		sl.scrollOffset = sl.cursor - sl.height + 1
	}
	if sl.scrollOffset < 0 {
		sl.scrollOffset = 0
	}
}

// View renders the list.
func (sl *SessionList) View(width int) string {
	if len(sl.sessions) == 0 {
		return lipgloss.NewStyle().Foreground(colorDim).Render("  " + menu.NoSessionsTitle)
	}

	var lines []string
	end := sl.scrollOffset + sl.height
	if end > len(sl.sessions) {
		end = len(sl.sessions)
	}

	for i := sl.scrollOffset; i < end; i++ {
		v := sl.sessions[i]
		row := fmt.Sprintf("%s %s  %-24s %s", sessionBadge(v), v.ShortID(), v.CurrentModel(menu.NativeModel), v.ProjectName)

		// 2 for indent prefix
		maxWidth := width - 2
		if maxWidth > 0 {
			row = ansi.Truncate(row, maxWidth, "…")
		}

		line := sessionStyle(v).Render(row)
		if i == sl.cursor {
			line = selectedItemStyle.Width(width).Render(row)
		}
		lines = append(lines, "  "+line)
	}

	if sl.scrollOffset > 0 {
		lines = append([]string{sessionProjectStyle.Render("  ▲ more")}, lines...)
	}
	if end < len(sl.sessions) {
		lines = append(lines, sessionProjectStyle.Render("  ▼ more"))
	}

	return strings.Join(lines, "\n")
}

func sessionBadge(v models.SessionView) string {
	switch {
	case !v.Healthy:
		return "[!]"
	case v.Switched:
		return "[→]"
	default:
		return "[ ]"
	}
}

func sessionStyle(v models.SessionView) lipgloss.Style {
	switch {
	case !v.Healthy:
		return sessionOfflineStyle
	case v.Switched:
		return sessionSwitchedStyle
	default:
		return sessionNativeStyle
	}
}
