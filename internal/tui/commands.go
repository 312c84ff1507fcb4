package tui

import (
	"context"
	"fmt"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/oh-my-claude/menubar/internal/models"
)

// Surface is the subset of the command surface the view needs.
type Surface interface {
	ListSessions(ctx context.Context) []models.SessionView
	RevertModel(ctx context.Context, controlPort int, sessionID string) (*models.SwitchResponse, error)
}

func loadSessionsCmd(ctx context.Context, surface Surface, seq uint64) tea.Cmd {
	return func() tea.Msg {
		return SessionsLoadedMsg{Seq: seq, Sessions: surface.ListSessions(ctx)}
	}
}

func revertCmd(ctx context.Context, surface Surface, v models.SessionView) tea.Cmd {
	return func() tea.Msg {
		resp, err := surface.RevertModel(ctx, v.ControlPort, v.SessionID)
		if err != nil {
			return ErrorMsg{Err: fmt.Errorf("failed to revert %s: %w", v.ShortID(), err)}
		}
		msg := resp.Message
		if msg == "" {
			msg = "reverted"
		}
		return ActionDoneMsg{SessionID: v.SessionID, Message: msg}
	}
}

func pollTick(d time.Duration) tea.Cmd {
	return tea.Tick(d, func(_ time.Time) tea.Msg {
		return TickMsg{}
	})
}

func clearErrorAfter(d time.Duration) tea.Cmd {
	return tea.Tick(d, func(_ time.Time) tea.Msg {
		return ClearErrorMsg{}
	})
}
