// Package sessions combines registry entries with live control API status.
package sessions

import (
	"context"
	"strings"
	"time"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/oh-my-claude/menubar/internal/models"
)

// UnknownProject is shown when a session has no working directory.
const UnknownProject = "unknown"

const defaultConcurrency = 8

// Source lists the live registry entries.
type Source interface {
	Read() []models.RegistryEntry
}

// StatusClient is the subset of the control client used for polling.
type StatusClient interface {
	Status(ctx context.Context, controlPort int, sessionID string) (*models.StatusResponse, error)
	Health(ctx context.Context, controlPort int) (*models.HealthResponse, error)
}

// Aggregator produces one SessionView per live registry entry.
type Aggregator struct {
	source      Source
	client      StatusClient
	concurrency int
	budget      time.Duration
	logger      *zap.Logger
}

// Option configures an Aggregator.
type Option func(*Aggregator)

// WithConcurrency caps the number of sessions polled at once.
func WithConcurrency(n int) Option {
	return func(a *Aggregator) {
		if n > 0 {
			a.concurrency = n
		}
	}
}

// WithBudget bounds the status and health probe of a single session. The
// deadline starts when the session is picked up by a worker, so sessions
// queued behind slow ones keep their full budget. Zero means no deadline
// beyond the client's per-call timeout.
func WithBudget(d time.Duration) Option {
	return func(a *Aggregator) {
		a.budget = d
	}
}

// WithLogger sets the logger.
func WithLogger(l *zap.Logger) Option {
	return func(a *Aggregator) {
		a.logger = l
	}
}

// NewAggregator creates an aggregator over a registry source and client.
func NewAggregator(source Source, client StatusClient, opts ...Option) *Aggregator {
	a := &Aggregator{
		source:      source,
		client:      client,
		concurrency: defaultConcurrency,
		logger:      zap.NewNop(),
	}
	for _, opt := range opts {
		opt(a)
	}
	return a
}

// List reads the registry and queries every live session concurrently.
// A failure for one session never affects the others; the result always
// holds exactly one view per live entry, in registry order.
func (a *Aggregator) List(ctx context.Context) []models.SessionView {
	entries := a.source.Read()
	views := make([]models.SessionView, len(entries))
	if len(entries) == 0 {
		return views
	}

	var g errgroup.Group
	g.SetLimit(a.concurrency)
	for i, entry := range entries {
		i, entry := i, entry
		g.Go(func() error {
			views[i] = a.view(ctx, entry)
			return nil
		})
	}
	_ = g.Wait()

	return views
}

func (a *Aggregator) view(ctx context.Context, entry models.RegistryEntry) models.SessionView {
	v := models.NewSessionView(entry, ProjectName(entry.Cwd))

	if a.budget > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, a.budget)
		defer cancel()
	}

	status, err := a.client.Status(ctx, entry.ControlPort, entry.SessionID)
	if err == nil {
		v.Switched = status.Switched
		v.Provider = status.Provider
		v.Model = status.Model
		v.Healthy = true
		return v
	}

	a.logger.Debug("status failed, probing health",
		zap.String("session", entry.SessionID),
		zap.Int("control_port", entry.ControlPort),
		zap.Error(err))

	_, healthErr := a.client.Health(ctx, entry.ControlPort)
	v.Healthy = healthErr == nil
	return v
}

// ProjectName returns the last path segment of cwd, or UnknownProject.
func ProjectName(cwd string) string {
	trimmed := strings.TrimRight(cwd, `/\`)
	if trimmed == "" {
		return UnknownProject
	}
	if i := strings.LastIndexAny(trimmed, `/\`); i >= 0 {
		trimmed = trimmed[i+1:]
	}
	if trimmed == "" {
		return UnknownProject
	}
	return trimmed
}
