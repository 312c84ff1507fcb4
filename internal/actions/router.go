package actions

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/oh-my-claude/menubar/internal/models"
)

// ErrQueueFull is returned by Enqueue when the worker queue has no room.
var ErrQueueFull = errors.New("action queue full")

// ErrUnsupported is returned by Execute for actions it cannot perform.
var ErrUnsupported = errors.New("unsupported action")

const (
	defaultWorkers   = 2
	defaultQueueSize = 16
)

// Client is the subset of the control client used for actions.
type Client interface {
	Switch(ctx context.Context, controlPort int, sessionID, provider, model string) (*models.SwitchResponse, error)
	Revert(ctx context.Context, controlPort int, sessionID string) (*models.SwitchResponse, error)
}

type job struct {
	requestID string
	action    Action
}

// Router decodes menu clicks and runs them on a bounded worker pool, so a
// slow control API never blocks the goroutine delivering clicks.
type Router struct {
	client    Client
	refresh   func(ctx context.Context)
	quit      func()
	logger    *zap.Logger
	workers   int
	queueSize int

	queue chan job
	wg    sync.WaitGroup

	mu      sync.Mutex
	started bool
	cancel  context.CancelFunc
}

// Option configures a Router.
type Option func(*Router)

// WithRefresh sets the hook run after a successful switch or revert.
func WithRefresh(fn func(ctx context.Context)) Option {
	return func(r *Router) {
		r.refresh = fn
	}
}

// WithQuit sets the hook run for the quit action.
func WithQuit(fn func()) Option {
	return func(r *Router) {
		r.quit = fn
	}
}

// WithWorkers sets the worker count and queue capacity.
func WithWorkers(workers, queueSize int) Option {
	return func(r *Router) {
		if workers > 0 {
			r.workers = workers
		}
		if queueSize > 0 {
			r.queueSize = queueSize
		}
	}
}

// WithLogger sets the logger.
func WithLogger(l *zap.Logger) Option {
	return func(r *Router) {
		r.logger = l
	}
}

// NewRouter creates a router. Call Start before dispatching clicks.
func NewRouter(client Client, opts ...Option) *Router {
	r := &Router{
		client:    client,
		logger:    zap.NewNop(),
		workers:   defaultWorkers,
		queueSize: defaultQueueSize,
	}
	for _, opt := range opts {
		opt(r)
	}
	r.queue = make(chan job, r.queueSize)
	return r
}

// Start launches the worker pool. Workers exit when ctx is done or Stop is
// called.
func (r *Router) Start(ctx context.Context) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.started {
		return
	}
	r.started = true

	ctx, r.cancel = context.WithCancel(ctx)
	for i := 0; i < r.workers; i++ {
		r.wg.Add(1)
		go r.work(ctx)
	}
}

// Stop cancels the workers and waits for them to exit. Queued actions that
// have not started are dropped.
func (r *Router) Stop() {
	r.mu.Lock()
	cancel := r.cancel
	r.mu.Unlock()
	if cancel != nil {
		cancel()
	}
	r.wg.Wait()
}

// Dispatch handles a clicked identifier without blocking. Quit runs
// immediately; switch and revert are queued; anything else is ignored.
func (r *Router) Dispatch(id string) {
	action, ok := Decode(id)
	if !ok {
		r.logger.Debug("ignoring menu identifier", zap.String("id", id))
		return
	}

	if action.Kind == KindQuit {
		r.logger.Info("quit requested")
		if r.quit != nil {
			r.quit()
		}
		return
	}

	if err := r.Enqueue(action); err != nil {
		r.logger.Warn("dropping action", zap.Stringer("action", action), zap.Error(err))
	}
}

// Enqueue queues an action for a worker.
func (r *Router) Enqueue(action Action) error {
	j := job{requestID: uuid.NewString(), action: action}
	select {
	case r.queue <- j:
		r.logger.Debug("action queued", zap.String("request_id", j.requestID), zap.Stringer("action", action))
		return nil
	default:
		return ErrQueueFull
	}
}

func (r *Router) work(ctx context.Context) {
	defer r.wg.Done()
	for {
		select {
		case <-ctx.Done():
			return
		case j := <-r.queue:
			_, _ = r.execute(ctx, j.requestID, j.action)
		}
	}
}

// Execute performs a switch or revert synchronously and, on success, runs
// the refresh hook. Failures are logged and returned; the menu is left as is.
func (r *Router) Execute(ctx context.Context, action Action) (*models.SwitchResponse, error) {
	return r.execute(ctx, uuid.NewString(), action)
}

func (r *Router) execute(ctx context.Context, requestID string, action Action) (*models.SwitchResponse, error) {
	log := r.logger.With(zap.String("request_id", requestID), zap.Stringer("action", action))

	var (
		resp *models.SwitchResponse
		err  error
	)
	switch action.Kind {
	case KindSwitch:
		resp, err = r.client.Switch(ctx, action.ControlPort, action.SessionID, action.Provider, action.Model)
	case KindRevert:
		resp, err = r.client.Revert(ctx, action.ControlPort, action.SessionID)
	default:
		return nil, fmt.Errorf("%w: %s", ErrUnsupported, action.Kind)
	}
	if err != nil {
		log.Error("action failed", zap.Error(err))
		return nil, fmt.Errorf("%s: %w", action, err)
	}

	if resp.Warning != "" {
		log.Warn("action completed with warning", zap.String("warning", resp.Warning))
	} else {
		log.Info("action completed", zap.Bool("switched", resp.Switched))
	}

	if r.refresh != nil {
		r.refresh(ctx)
	}
	return resp, nil
}
