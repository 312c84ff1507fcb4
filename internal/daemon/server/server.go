// Package server assembles the menu-bar daemon: registry, control client,
// aggregator, menu engine, action router, registry watcher and reconciler.
package server

import (
	"context"
	"errors"
	"os"
	"syscall"

	"go.uber.org/zap"

	"github.com/oh-my-claude/menubar/internal/actions"
	"github.com/oh-my-claude/menubar/internal/config"
	"github.com/oh-my-claude/menubar/internal/control"
	"github.com/oh-my-claude/menubar/internal/daemon/reconciler"
	"github.com/oh-my-claude/menubar/internal/daemon/watcher"
	"github.com/oh-my-claude/menubar/internal/menu"
	"github.com/oh-my-claude/menubar/internal/models"
	"github.com/oh-my-claude/menubar/internal/registry"
	"github.com/oh-my-claude/menubar/internal/sessions"
)

// Server is the daemon's reconciliation pipeline.
type Server struct {
	settings   *models.Settings
	logger     *zap.Logger
	registry   *registry.Registry
	client     *control.Client
	aggregator *sessions.Aggregator
	engine     *menu.Engine
	router     *actions.Router
	reconciler *reconciler.Reconciler
	watcher    *watcher.Watcher
}

// Option configures a Server.
type Option func(*serverOptions)

type serverOptions struct {
	logger *zap.Logger
	quit   func()
	prober registry.Prober
}

// WithLogger sets the logger.
func WithLogger(l *zap.Logger) Option {
	return func(o *serverOptions) {
		o.logger = l
	}
}

// WithQuit sets what the "Quit" menu entry does. By default the process
// sends itself SIGINT.
func WithQuit(fn func()) Option {
	return func(o *serverOptions) {
		o.quit = fn
	}
}

// WithProber replaces the registry's process liveness probe.
func WithProber(p registry.Prober) Option {
	return func(o *serverOptions) {
		o.prober = p
	}
}

// New creates a server that installs menus into host.
func New(settings *models.Settings, host menu.Host, opts ...Option) (*Server, error) {
	o := serverOptions{logger: zap.NewNop(), quit: RequestShutdown}
	for _, opt := range opts {
		opt(&o)
	}
	settings.ApplyDefaults()

	registryPath, err := config.RegistryPath(settings)
	if err != nil {
		return nil, err
	}

	regOpts := []registry.Option{registry.WithLogger(o.logger.Named("registry"))}
	if o.prober != nil {
		regOpts = append(regOpts, registry.WithProber(o.prober))
	}

	s := &Server{
		settings: settings,
		logger:   o.logger,
		registry: registry.New(registryPath, regOpts...),
		client:   control.New(control.WithTimeout(settings.RequestTimeout)),
	}
	s.aggregator = sessions.NewAggregator(s.registry, s.client,
		sessions.WithConcurrency(settings.MaxConcurrency),
		sessions.WithBudget(2*s.client.Timeout()),
		sessions.WithLogger(o.logger.Named("sessions")),
	)
	s.engine = menu.NewEngine(host, settings.Catalog(), menu.WithLogger(o.logger.Named("menu")))

	var recOpts []reconciler.Option
	if w, err := watcher.New(registryPath, watcher.WithLogger(o.logger.Named("watcher"))); err != nil {
		o.logger.Warn("registry watcher unavailable", zap.Error(err))
	} else {
		s.watcher = w
		recOpts = append(recOpts, reconciler.WithEvents(w.Events()))
	}
	s.reconciler = reconciler.New(s.aggregator, s.engine, append(recOpts,
		reconciler.WithInterval(settings.PollInterval),
		reconciler.WithLogger(o.logger.Named("reconciler")),
	)...)

	s.router = actions.NewRouter(s.client,
		actions.WithWorkers(settings.ActionWorkers, settings.ActionQueueSize),
		actions.WithRefresh(s.reconciler.Refresh),
		actions.WithQuit(o.quit),
		actions.WithLogger(o.logger.Named("actions")),
	)
	return s, nil
}

// RegistryPath returns the registry file being followed.
func (s *Server) RegistryPath() string {
	return s.registry.Path()
}

// Dispatch routes a clicked menu identifier. It never blocks.
func (s *Server) Dispatch(id string) {
	s.router.Dispatch(id)
}

// Serve runs the pipeline until ctx is done.
func (s *Server) Serve(ctx context.Context) error {
	s.router.Start(ctx)
	defer s.router.Stop()

	if s.watcher != nil {
		if err := s.watcher.Start(); err != nil {
			// Polling alone still picks up registry changes.
			s.logger.Warn("not watching registry", zap.String("path", s.registry.Path()), zap.Error(err))
		}
		defer s.watcher.Stop()
	}

	s.logger.Info("daemon started",
		zap.String("registry", s.registry.Path()),
		zap.Duration("poll_interval", s.settings.PollInterval),
		zap.Int("pid", os.Getpid()),
	)

	err := s.reconciler.Run(ctx)
	if errors.Is(err, context.Canceled) {
		return nil
	}
	return err
}

// RequestShutdown sends SIGINT to the current process to trigger a graceful shutdown.
func RequestShutdown() {
	p, err := os.FindProcess(os.Getpid())
	if err != nil {
		return
	}
	_ = p.Signal(syscall.SIGINT)
}
