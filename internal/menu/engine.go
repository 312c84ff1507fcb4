package menu

import (
	"fmt"
	"slices"
	"strings"
	"sync"

	"go.uber.org/zap"

	"github.com/oh-my-claude/menubar/internal/models"
)

// Menu titles.
const (
	HeaderTitle     = "oh-my-claude"
	NoSessionsTitle = "No sessions running"
	NativeModel     = "Claude (native)"
	RevertTitle     = "Revert to Claude"
	QuitTitle       = "Quit"
	OfflineSuffix   = " (offline)"
)

// Result tells whether a reconcile replaced the menu.
type Result int

const (
	Unchanged Result = iota
	Rebuilt
)

func (r Result) String() string {
	if r == Rebuilt {
		return "rebuilt"
	}
	return "unchanged"
}

// Engine owns the last installed fingerprint and the identifier allocator.
// It rebuilds the host menu only when the session data changed: a rebuild
// closes any submenu the user has open.
type Engine struct {
	host    Host
	catalog models.Catalog
	ids     *IDAllocator
	logger  *zap.Logger

	mu          sync.Mutex
	fingerprint string
	installed   bool
}

// Option configures an Engine.
type Option func(*Engine)

// WithLogger sets the logger.
func WithLogger(l *zap.Logger) Option {
	return func(e *Engine) {
		e.logger = l
	}
}

// NewEngine creates an engine that installs menus on host, offering the
// models in catalog for every session.
func NewEngine(host Host, catalog models.Catalog, opts ...Option) *Engine {
	e := &Engine{
		host:    host,
		catalog: catalog.Clone(),
		ids:     &IDAllocator{},
		logger:  zap.NewNop(),
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Catalog returns a copy of the provider catalog offered in the menu.
func (e *Engine) Catalog() models.Catalog {
	return e.catalog.Clone()
}

// Reconcile installs a new menu for views if they differ from the last
// installed state. The fingerprint is only recorded after the host accepted
// the menu, so a failed install is retried on the next call.
func (e *Engine) Reconcile(views []models.SessionView) (Result, error) {
	ordered := orderViews(views)
	fp := Fingerprint(ordered)

	e.mu.Lock()
	defer e.mu.Unlock()

	if e.installed && fp == e.fingerprint {
		return Unchanged, nil
	}

	m := e.build(ordered)
	if err := e.host.SetMenu(m); err != nil {
		return Unchanged, fmt.Errorf("failed to install menu: %w", err)
	}

	e.fingerprint = fp
	e.installed = true
	e.logger.Debug("menu rebuilt",
		zap.Int("sessions", len(ordered)),
		zap.Uint64("ids_issued", e.ids.Issued()))
	return Rebuilt, nil
}

// orderViews returns normalized copies sorted by session ID, so a registry
// that merely reorders its entries does not trigger a rebuild.
func orderViews(views []models.SessionView) []models.SessionView {
	out := make([]models.SessionView, len(views))
	copy(out, views)
	for i := range out {
		out[i].Normalize()
	}
	slices.SortStableFunc(out, func(a, b models.SessionView) int {
		return strings.Compare(a.SessionID, b.SessionID)
	})
	return out
}

func (e *Engine) build(views []models.SessionView) *Menu {
	m := &Menu{Tooltip: tooltip(views)}

	m.Items = append(m.Items, &Item{
		ID:    e.ids.Next(TagHeader),
		Title: HeaderTitle,
	})

	if len(views) == 0 {
		m.Items = append(m.Items, &Item{
			ID:    e.ids.Next(TagNoSessions),
			Title: NoSessionsTitle,
		})
	}
	for _, v := range views {
		m.Items = append(m.Items, e.sessionGroup(v))
	}

	m.Items = append(m.Items, &Item{
		ID:      e.ids.Next(TagQuit),
		Title:   QuitTitle,
		Tooltip: "Quit the oh-my-claude menu bar",
		Enabled: true,
	})
	return m
}

func (e *Engine) sessionGroup(v models.SessionView) *Item {
	title := fmt.Sprintf("%s - %s", v.ShortID(), v.CurrentModel(NativeModel))
	if !v.Healthy {
		title += OfflineSuffix
	}

	group := &Item{
		ID:      e.ids.Next(TagSession + ":" + v.SessionID),
		Title:   title,
		Tooltip: v.ProjectName,
		Enabled: true,
	}

	for _, p := range e.catalog {
		for _, model := range p.Models {
			group.Children = append(group.Children, &Item{
				ID:      e.ids.Next(SwitchAction(v.ControlPort, v.SessionID, p.Name, model.ID)),
				Title:   fmt.Sprintf("%s / %s", p.Name, model.Label),
				Enabled: true,
			})
		}
	}

	if v.Switched {
		group.Children = append(group.Children, &Item{
			ID:      e.ids.Next(RevertAction(v.ControlPort, v.SessionID)),
			Title:   RevertTitle,
			Enabled: true,
		})
	}
	return group
}

func tooltip(views []models.SessionView) string {
	switched := 0
	for _, v := range views {
		if v.Switched {
			switched++
		}
	}
	noun := "sessions"
	if len(views) == 1 {
		noun = "session"
	}
	return fmt.Sprintf("%s - %d %s, %d switched", HeaderTitle, len(views), noun, switched)
}
