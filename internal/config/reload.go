package config

import (
	"sync"
	"time"

	"github.com/dshills/caret/internal/config/watcher"
	"github.com/dshills/caret/internal/notify"
)

// Logger receives reload diagnostics.
type Logger interface {
	Debug(msg string, args ...any)
	Warn(msg string, args ...any)
}

type nopLogger struct{}

func (nopLogger) Debug(string, ...any) {}
func (nopLogger) Warn(string, ...any)  {}

// ReloaderOption configures a Reloader.
type ReloaderOption func(*Reloader)

// WithReloadLogger sets the logger.
func WithReloadLogger(l Logger) ReloaderOption {
	return func(r *Reloader) {
		if l != nil {
			r.logger = l
		}
	}
}

// WithDebounce sets the watcher's quiet period.
func WithDebounce(d time.Duration) ReloaderOption {
	return func(r *Reloader) {
		r.debounce = d
	}
}

// WithLoadOptions passes options through to every Load.
func WithLoadOptions(opts ...LoadOption) ReloaderOption {
	return func(r *Reloader) {
		r.loadOpts = append(r.loadOpts, opts...)
	}
}

// Reloader keeps a Config in sync with its file.
type Reloader struct {
	path     string
	logger   Logger
	debounce time.Duration
	loadOpts []LoadOption

	mu      sync.RWMutex
	current Config
	closed  bool

	watcher *watcher.FileWatcher
	sub     *notify.Subscription
	changes notify.List[Config]
}

// NewReloader loads path and starts watching it. The initial load must
// succeed.
func NewReloader(path string, opts ...ReloaderOption) (*Reloader, error) {
	r := &Reloader{
		path:     path,
		logger:   nopLogger{},
		debounce: watcher.DefaultDebounce,
	}
	for _, opt := range opts {
		opt(r)
	}

	cfg, err := Load(path, r.loadOpts...)
	if err != nil {
		return nil, err
	}
	r.current = cfg

	w, err := watcher.New(path, watcher.WithDebounce(r.debounce), watcher.WithLogger(r.logger))
	if err != nil {
		return nil, err
	}
	r.watcher = w
	r.sub = w.OnChange(r.handleChange)
	return r, nil
}

// Current returns the most recent valid configuration.
func (r *Reloader) Current() Config {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.current
}

// Subscribe registers fn for configurations loaded after a change.
func (r *Reloader) Subscribe(fn func(Config)) *notify.Subscription {
	return r.changes.Subscribe(fn)
}

// Reload reads the file now. On error the current configuration is kept.
func (r *Reloader) Reload() error {
	r.mu.RLock()
	closed := r.closed
	r.mu.RUnlock()
	if closed {
		return ErrReloaderClosed
	}

	cfg, err := Load(r.path, r.loadOpts...)
	if err != nil {
		return err
	}

	r.mu.Lock()
	r.current = cfg
	r.mu.Unlock()

	r.changes.Notify(cfg)
	return nil
}

// Close stops watching.
func (r *Reloader) Close() error {
	r.mu.Lock()
	if r.closed {
		r.mu.Unlock()
		return nil
	}
	r.closed = true
	r.mu.Unlock()

	r.sub.Unsubscribe()
	err := r.watcher.Close()
	r.changes.Close()
	return err
}

// handleChange reloads after a debounced file event. A removed file
// falls back to defaults plus environment.
func (r *Reloader) handleChange(ev watcher.Event) {
	r.logger.Debug("config: %s changed (%s)", ev.Path, ev.Op)
	if err := r.Reload(); err != nil {
		r.logger.Warn("config: reload failed, keeping previous settings: %v", err)
	}
}
