// Package tui implements the live session view for the omcbar CLI.
package tui

import (
	"context"
	"time"

	tea "github.com/charmbracelet/bubbletea"
)

// Run launches the session view and blocks until the user quits or ctx is
// done.
func Run(ctx context.Context, surface Surface, interval time.Duration) error {
	p := tea.NewProgram(
		NewModel(ctx, surface, interval),
		tea.WithAltScreen(),
		tea.WithContext(ctx),
	)
	_, err := p.Run()
	return err
}
