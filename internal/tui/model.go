package tui

import (
	"context"
	"fmt"
	"time"

	"github.com/atotto/clipboard"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/oh-my-claude/menubar/internal/models"
)

const defaultInterval = 2 * time.Second

// Model is the root Bubbletea model for the session view.
type Model struct {
	ctx      context.Context
	surface  Surface
	interval time.Duration
	copy     func(string) error

	sessions []models.SessionView
	list     *SessionList
	spinner  spinner.Model
	loading  bool
	// loadSeq is the last pass started, shownSeq the last one displayed.
	loadSeq  uint64
	shownSeq uint64

	showHelp bool
	err      error
	notice   string
	width    int
	height   int
}

// NewModel creates the initial model.
func NewModel(ctx context.Context, surface Surface, interval time.Duration) Model {
	if interval <= 0 {
		interval = defaultInterval
	}
	return Model{
		ctx:      ctx,
		surface:  surface,
		interval: interval,
		copy:     clipboard.WriteAll,
		list:     NewSessionList(),
		spinner:  spinner.New(spinner.WithSpinner(spinner.MiniDot)),
		loading:  true,
		loadSeq:  1,
		width:    80,
		height:   24,
	}
}

// Init starts the first load and the refresh timer.
func (m Model) Init() tea.Cmd {
	return tea.Batch(
		loadSessionsCmd(m.ctx, m.surface, m.loadSeq),
		pollTick(m.interval),
		m.spinner.Tick,
	)
}

// Update handles messages.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		// header + blank + status bar
		m.list.SetHeight(m.height - 3)
		return m, nil

	case SessionsLoadedMsg:
		if msg.Seq <= m.shownSeq {
			return m, nil
		}
		m.shownSeq = msg.Seq
		if msg.Seq >= m.loadSeq {
			m.loading = false
		}
		m.sessions = msg.Sessions
		m.list.SetSessions(msg.Sessions)
		return m, nil

	case TickMsg:
		// A pass still in flight covers this tick.
		if m.loading {
			return m, pollTick(m.interval)
		}
		return m, tea.Batch(m.load(), pollTick(m.interval))

	case ActionDoneMsg:
		m.notice = msg.Message
		return m, m.load()

	case ErrorMsg:
		m.err = msg.Err
		return m, clearErrorAfter(5 * time.Second)

	case ClearErrorMsg:
		m.err = nil
		return m, nil

	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd

	case tea.KeyMsg:
		return m.handleKey(msg)
	}
	return m, nil
}

// load starts a new listing pass.
func (m *Model) load() tea.Cmd {
	m.loadSeq++
	m.loading = true
	return loadSessionsCmd(m.ctx, m.surface, m.loadSeq)
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if m.showHelp {
		if key.Matches(msg, sessionKeys.Help) || msg.String() == "esc" {
			m.showHelp = false
			return m, nil
		}
		if key.Matches(msg, sessionKeys.Quit) {
			return m, tea.Quit
		}
		return m, nil
	}

	switch {
	case key.Matches(msg, sessionKeys.Quit):
		return m, tea.Quit
	case key.Matches(msg, sessionKeys.Help):
		m.showHelp = true
	case key.Matches(msg, sessionKeys.Up):
		m.list.MoveUp()
	case key.Matches(msg, sessionKeys.Down):
		m.list.MoveDown()
	case key.Matches(msg, sessionKeys.Refresh):
		return m, m.load()
	case key.Matches(msg, sessionKeys.Revert):
		v := m.list.Selected()
		if v == nil || !v.Switched {
			return m, nil
		}
		m.notice = "reverting " + v.ShortID() + "..."
		return m, revertCmd(m.ctx, m.surface, *v)
	case key.Matches(msg, sessionKeys.Copy):
		v := m.list.Selected()
		if v == nil {
			return m, nil
		}
		if err := m.copy(v.SessionID); err != nil {
			m.err = fmt.Errorf("failed to copy session id: %w", err)
			return m, clearErrorAfter(5 * time.Second)
		}
		m.notice = "copied " + v.ShortID()
	}
	return m, nil
}

// View renders the model.
func (m Model) View() string {
	spin := ""
	if m.loading {
		spin = m.spinner.View()
	}

	body := m.list.View(m.width)
	if m.showHelp {
		body = lipgloss.Place(m.width, m.height-2, lipgloss.Center, lipgloss.Center, renderHelp(m.width))
	}

	return lipgloss.JoinVertical(lipgloss.Left,
		renderHeader(m.sessions, spin, m.width),
		"",
		body,
		renderStatusBar(&m, m.width),
	)
}
