// Package registry reads the proxy session registry written by running proxies.
package registry

import (
	"encoding/json"
	"os"

	"go.uber.org/zap"

	"github.com/oh-my-claude/menubar/internal/models"
)

// Prober reports whether a process with the given PID exists.
type Prober func(pid int) bool

// Registry reads proxy-sessions.json and filters out dead sessions.
// It never writes to the file.
type Registry struct {
	path   string
	alive  Prober
	logger *zap.Logger
}

// Option configures a Registry.
type Option func(*Registry)

// WithProber replaces the OS liveness probe.
func WithProber(p Prober) Option {
	return func(r *Registry) {
		r.alive = p
	}
}

// WithLogger sets the logger used for diagnostics.
func WithLogger(l *zap.Logger) Option {
	return func(r *Registry) {
		r.logger = l
	}
}

// New creates a registry reader for the file at path.
func New(path string, opts ...Option) *Registry {
	r := &Registry{
		path:   path,
		alive:  ProcessAlive,
		logger: zap.NewNop(),
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Path returns the registry file location.
func (r *Registry) Path() string {
	return r.path
}

// Read returns the live entries in file order. A missing or unparseable
// file yields an empty result, never an error.
func (r *Registry) Read() []models.RegistryEntry {
	data, err := os.ReadFile(r.path)
	if err != nil {
		if !os.IsNotExist(err) {
			r.logger.Debug("registry unreadable", zap.String("path", r.path), zap.Error(err))
		}
		return []models.RegistryEntry{}
	}

	var entries []models.RegistryEntry
	if err := json.Unmarshal(data, &entries); err != nil {
		r.logger.Debug("registry malformed", zap.String("path", r.path), zap.Error(err))
		return []models.RegistryEntry{}
	}

	live := make([]models.RegistryEntry, 0, len(entries))
	for _, e := range entries {
		if e.SessionID == "" {
			continue // Not addressable
		}
		if !r.alive(e.PID) {
			r.logger.Debug("skipping dead session", zap.String("session", e.SessionID), zap.Int("pid", e.PID))
			continue
		}
		live = append(live, e)
	}
	return live
}
