// Package watcher reports changes to the session registry file.
package watcher

import (
	"path/filepath"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
	"go.uber.org/zap"
)

// DefaultDebounce collapses bursts of writes to the registry file.
const DefaultDebounce = 100 * time.Millisecond

// EventType represents the type of registry change.
type EventType int

// Event types for registry changes.
const (
	EventRegistryChanged EventType = iota
	EventRegistryRemoved
)

func (t EventType) String() string {
	switch t {
	case EventRegistryChanged:
		return "changed"
	case EventRegistryRemoved:
		return "removed"
	default:
		return "unknown"
	}
}

// Event represents a debounced change to the registry file.
type Event struct {
	Type EventType
	Path string
}

// Watcher watches the directory holding the registry file. The file itself
// is replaced by rename on every write, so watching it directly would lose
// the watch after the first update.
type Watcher struct {
	fsWatcher  *fsnotify.Watcher
	path       string
	debounce   time.Duration
	logger     *zap.Logger
	eventsChan chan Event
	done       chan struct{}
	stopOnce   sync.Once

	debounceMu sync.Mutex
	timer      *time.Timer
	pending    fsnotify.Op
}

// Option configures a Watcher.
type Option func(*Watcher)

// WithDebounce sets the debounce window.
func WithDebounce(d time.Duration) Option {
	return func(w *Watcher) {
		if d > 0 {
			w.debounce = d
		}
	}
}

// WithLogger sets the logger.
func WithLogger(l *zap.Logger) Option {
	return func(w *Watcher) {
		w.logger = l
	}
}

// New creates a watcher for the registry file at path.
func New(path string, opts ...Option) (*Watcher, error) {
	fsWatcher, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}

	w := &Watcher{
		fsWatcher:  fsWatcher,
		path:       filepath.Clean(path),
		debounce:   DefaultDebounce,
		logger:     zap.NewNop(),
		eventsChan: make(chan Event, 16),
		done:       make(chan struct{}),
	}
	for _, opt := range opts {
		opt(w)
	}
	return w, nil
}

// Events returns the channel for receiving events.
func (w *Watcher) Events() <-chan Event {
	return w.eventsChan
}

// Start begins watching. The registry directory must exist.
func (w *Watcher) Start() error {
	dir := filepath.Dir(w.path)
	if err := w.fsWatcher.Add(dir); err != nil {
		return err
	}
	w.logger.Debug("watching registry", zap.String("dir", dir), zap.String("file", filepath.Base(w.path)))

	go w.processEvents()
	return nil
}

// Stop stops the watcher. It is safe to call more than once.
func (w *Watcher) Stop() {
	w.stopOnce.Do(func() {
		close(w.done)
		_ = w.fsWatcher.Close()

		w.debounceMu.Lock()
		if w.timer != nil {
			w.timer.Stop()
		}
		w.debounceMu.Unlock()
	})
}

func (w *Watcher) processEvents() {
	for {
		select {
		case <-w.done:
			return
		case event, ok := <-w.fsWatcher.Events:
			if !ok {
				return
			}
			w.handleEvent(event)
		case err, ok := <-w.fsWatcher.Errors:
			if !ok {
				return
			}
			w.logger.Warn("watcher error", zap.Error(err))
		}
	}
}

func (w *Watcher) handleEvent(event fsnotify.Event) {
	if filepath.Clean(event.Name) != w.path {
		return
	}
	// Atomic writes (write tmp, rename onto target) show up as Create or
	// Rename on the target.
	if event.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Rename|fsnotify.Remove) == 0 {
		return
	}

	w.debounceMu.Lock()
	defer w.debounceMu.Unlock()

	w.pending = event.Op
	if w.timer != nil {
		w.timer.Stop()
	}
	w.timer = time.AfterFunc(w.debounce, w.fire)
}

func (w *Watcher) fire() {
	w.debounceMu.Lock()
	op := w.pending
	w.timer = nil
	w.debounceMu.Unlock()

	ev := Event{Type: EventRegistryChanged, Path: w.path}
	if op&fsnotify.Remove != 0 {
		ev.Type = EventRegistryRemoved
	}
	w.logger.Debug("registry event", zap.Stringer("type", ev.Type), zap.Stringer("op", op))

	select {
	case w.eventsChan <- ev:
	case <-w.done:
	default:
		// A pending event already covers this change.
	}
}
