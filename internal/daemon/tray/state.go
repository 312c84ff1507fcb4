// Package tray implements the system tray icon and menu for the daemon.
package tray

import (
	"errors"
	"sync"

	"go.uber.org/zap"

	"github.com/oh-my-claude/menubar/internal/menu"
)

// ErrNotReady is returned by SetMenu before the tray has started.
var ErrNotReady = errors.New("tray not ready")

// entry is one native menu item.
type entry interface {
	Hide()
	Disable()
	Clicked() <-chan struct{}
}

// backend creates native menu items. Items cannot be removed once added,
// only hidden.
type backend interface {
	AddItem(title, tooltip string) entry
	AddSubItem(parent entry, title, tooltip string) entry
	SetTooltip(tooltip string)
}

// generation is the set of native items created for one menu.
type generation struct {
	entries []entry
	done    chan struct{}
}

func (g *generation) retire() {
	close(g.done)
	for _, e := range g.entries {
		e.Hide()
	}
}

// Host installs menus into the tray. Each SetMenu creates a fresh
// generation of items and hides the previous one, so identifiers from an
// old menu never collide with the new one.
type Host struct {
	dispatch func(id string)
	logger   *zap.Logger

	mu      sync.Mutex
	backend backend
	current *generation
}

// Option configures a Host.
type Option func(*Host)

// WithLogger sets the logger.
func WithLogger(l *zap.Logger) Option {
	return func(h *Host) {
		h.logger = l
	}
}

// New creates a host that reports clicked item identifiers to dispatch.
func New(dispatch func(id string), opts ...Option) *Host {
	h := &Host{
		dispatch: dispatch,
		logger:   zap.NewNop(),
	}
	for _, opt := range opts {
		opt(h)
	}
	return h
}

func (h *Host) attach(b backend) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.backend = b
}

// SetMenu replaces the displayed menu.
func (h *Host) SetMenu(m *menu.Menu) error {
	h.mu.Lock()
	defer h.mu.Unlock()

	if h.backend == nil {
		return ErrNotReady
	}

	gen := &generation{done: make(chan struct{})}
	for _, item := range m.Items {
		h.add(gen, nil, item)
	}
	h.backend.SetTooltip(m.Tooltip)

	if h.current != nil {
		h.current.retire()
	}
	h.current = gen

	h.logger.Debug("menu installed", zap.Int("items", len(gen.entries)))
	return nil
}

func (h *Host) add(gen *generation, parent entry, item *menu.Item) {
	var e entry
	if parent == nil {
		e = h.backend.AddItem(item.Title, item.Tooltip)
	} else {
		e = h.backend.AddSubItem(parent, item.Title, item.Tooltip)
	}
	gen.entries = append(gen.entries, e)

	if !item.Enabled {
		e.Disable()
	}
	if item.IsGroup() {
		for _, child := range item.Children {
			h.add(gen, e, child)
		}
		return
	}
	if item.Enabled {
		go h.forward(e.Clicked(), item.ID, gen.done)
	}
}

func (h *Host) forward(clicks <-chan struct{}, id string, done <-chan struct{}) {
	for {
		select {
		case <-done:
			return
		case <-clicks:
			h.logger.Debug("menu click", zap.String("id", id))
			h.dispatch(id)
		}
	}
}
