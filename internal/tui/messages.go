package tui

import "github.com/oh-my-claude/menubar/internal/models"

// SessionsLoadedMsg carries the result of a listing pass. Seq orders
// passes so a slow pass cannot overwrite a newer one.
type SessionsLoadedMsg struct {
	Seq      uint64
	Sessions []models.SessionView
}

// ActionDoneMsg signals a revert completed.
type ActionDoneMsg struct {
	SessionID string
	Message   string
}

// ErrorMsg carries an error to display.
type ErrorMsg struct {
	Err error
}

// TickMsg triggers a periodic refresh.
type TickMsg struct{}

// ClearErrorMsg clears the error display.
type ClearErrorMsg struct{}
