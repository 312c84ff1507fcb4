// Package reconciler drives the periodic session reconciliation loop.
package reconciler

import (
	"context"
	"time"

	"go.uber.org/zap"

	"github.com/oh-my-claude/menubar/internal/daemon/watcher"
	"github.com/oh-my-claude/menubar/internal/menu"
	"github.com/oh-my-claude/menubar/internal/models"
)

// DefaultInterval is the period between passes.
const DefaultInterval = 2 * time.Second

// Lister produces the current session views.
type Lister interface {
	List(ctx context.Context) []models.SessionView
}

// Applier compares views against the installed menu and rebuilds as needed.
type Applier interface {
	Reconcile(views []models.SessionView) (menu.Result, error)
}

// Reconciler runs a pass on every tick, on Trigger and on registry events.
type Reconciler struct {
	lister   Lister
	applier  Applier
	interval time.Duration
	events   <-chan watcher.Event
	logger   *zap.Logger
	trigger  chan struct{}
}

// Option configures a Reconciler.
type Option func(*Reconciler)

// WithInterval sets the tick period.
func WithInterval(d time.Duration) Option {
	return func(r *Reconciler) {
		if d > 0 {
			r.interval = d
		}
	}
}

// WithEvents makes registry watcher events trigger a pass.
func WithEvents(events <-chan watcher.Event) Option {
	return func(r *Reconciler) {
		r.events = events
	}
}

// WithLogger sets the logger.
func WithLogger(l *zap.Logger) Option {
	return func(r *Reconciler) {
		r.logger = l
	}
}

// New creates a reconciler.
func New(lister Lister, applier Applier, opts ...Option) *Reconciler {
	r := &Reconciler{
		lister:   lister,
		applier:  applier,
		interval: DefaultInterval,
		logger:   zap.NewNop(),
		trigger:  make(chan struct{}, 1),
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Trigger requests an extra pass without blocking. Requests made while one
// is already pending are merged.
func (r *Reconciler) Trigger() {
	select {
	case r.trigger <- struct{}{}:
	default:
	}
}

// Refresh is a Trigger adapter for hooks that receive a context.
func (r *Reconciler) Refresh(context.Context) {
	r.Trigger()
}

// Reconcile performs one pass. It is safe to call concurrently; the engine
// serializes the compare-and-rebuild step.
func (r *Reconciler) Reconcile(ctx context.Context) error {
	views := r.lister.List(ctx)
	res, err := r.applier.Reconcile(views)
	if err != nil {
		return err
	}
	if res == menu.Rebuilt {
		r.logger.Debug("menu rebuilt", zap.Int("sessions", len(views)))
	}
	return nil
}

// Run performs an immediate pass and then loops until ctx is done.
func (r *Reconciler) Run(ctx context.Context) error {
	ticker := time.NewTicker(r.interval)
	defer ticker.Stop()

	r.pass(ctx, "start")
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
			r.pass(ctx, "tick")
		case <-r.trigger:
			r.pass(ctx, "trigger")
		case ev, ok := <-r.events:
			if !ok {
				r.events = nil
				continue
			}
			r.logger.Debug("registry event", zap.Stringer("type", ev.Type))
			r.pass(ctx, "registry")
		}
	}
}

func (r *Reconciler) pass(ctx context.Context, reason string) {
	if err := r.Reconcile(ctx); err != nil {
		// The fingerprint was not stored, so the next pass retries.
		r.logger.Warn("reconcile failed", zap.String("reason", reason), zap.Error(err))
	}
}
