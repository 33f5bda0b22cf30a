package editor

import (
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/dshills/caret/internal/engine/cursor"
	"github.com/dshills/caret/internal/input/mouse"
	"github.com/dshills/caret/internal/input/repeat"
	"github.com/dshills/caret/internal/notify"
	rcursor "github.com/dshills/caret/internal/renderer/cursor"
	"github.com/dshills/caret/internal/renderer/viewport"
	"github.com/dshills/caret/internal/sched"
)

// Config holds the editor's tunables.
type Config struct {
	// DoubleClick is the maximum gap between presses of a multi-click.
	DoubleClick time.Duration

	// RepeatDelay is how long a navigation key is held before repeating.
	RepeatDelay time.Duration

	// RepeatInterval is the time between repeats.
	RepeatInterval time.Duration

	// Cursor configures blinking.
	Cursor rcursor.Config

	// Margin is the space kept between cursor and window edge.
	Margin float32

	// Tolerance is the ULP distance under which scroll targets are equal.
	Tolerance uint32
}

// DefaultConfig returns the default editor configuration.
func DefaultConfig() Config {
	return Config{
		DoubleClick:    mouse.DefaultDoubleClickTime,
		RepeatDelay:    repeat.DefaultDelay,
		RepeatInterval: repeat.DefaultInterval,
		Cursor:         rcursor.DefaultConfig(),
		Margin:         viewport.DefaultMargin,
		Tolerance:      viewport.DefaultTolerance,
	}
}

// Option configures an Editor.
type Option func(*Editor)

// WithGeometry sets the visible window provider.
func WithGeometry(g Geometry) Option {
	return func(e *Editor) {
		e.geom = g
	}
}

// WithScrollBars sets the horizontal and vertical scroll bars. Either may
// be nil to disable scrolling on that axis.
func WithScrollBars(h, v viewport.Bar) Option {
	return func(e *Editor) {
		e.hbar, e.vbar = h, v
	}
}

// WithLogger sets the diagnostics logger.
func WithLogger(l Logger) Option {
	return func(e *Editor) {
		if l != nil {
			e.logger = l
		}
	}
}

// WithConfig sets the initial configuration.
func WithConfig(cfg Config) Option {
	return func(e *Editor) {
		e.cfg = cfg
	}
}

// WithID sets the instance id. By default a random id is generated.
func WithID(id uuid.UUID) Option {
	return func(e *Editor) {
		e.id = id
	}
}

// Editor is the interaction controller for one text region.
type Editor struct {
	id     uuid.UUID
	logger Logger
	cfg    Config

	buf  Buffer
	geom Geometry
	hbar viewport.Bar
	vbar viewport.Bar

	reconciler viewport.Reconciler
	blinker    *rcursor.Blinker
	repeat     *repeat.Driver

	// mu serialises handlers and guards the fields below.
	mu        sync.Mutex
	clicks    *mouse.ClickTracker
	clipboard string
	focused   bool
	closed    bool
	drag      dragState
	// layoutQueued is set while a reconcile callback is registered.
	layoutQueued bool
	changed      ChangeKind

	guard   guard
	changes notify.List[Change]
}

// New creates an editor over buf. Timers for blinking and key repeat run
// on s.
func New(buf Buffer, s sched.Scheduler, opts ...Option) *Editor {
	e := &Editor{
		logger: nopLogger{},
		cfg:    DefaultConfig(),
		buf:    buf,
	}
	for _, opt := range opts {
		opt(e)
	}
	if e.id == uuid.Nil {
		e.id = uuid.New()
	}

	e.clicks = mouse.NewClickTracker(e.cfg.DoubleClick)
	e.reconciler = viewport.Reconciler{Margin: e.cfg.Margin, Tolerance: e.cfg.Tolerance}
	e.repeat = repeat.NewDriver(s,
		repeat.WithDelay(e.cfg.RepeatDelay),
		repeat.WithInterval(e.cfg.RepeatInterval),
	)
	e.blinker = rcursor.NewBlinker(s, e.cfg.Cursor)
	e.blinker.SetOnToggle(e.blinkToggled)
	return e
}

// ID returns the instance id.
func (e *Editor) ID() uuid.UUID {
	return e.id
}

// Config returns the current configuration.
func (e *Editor) Config() Config {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.cfg
}

// ApplyConfig updates timing, blinking and scrolling settings in place.
func (e *Editor) ApplyConfig(cfg Config) {
	e.run(func() {
		e.cfg = cfg
		e.clicks.SetMaxTime(cfg.DoubleClick)
		e.repeat.SetTiming(cfg.RepeatDelay, cfg.RepeatInterval)
		e.reconciler = viewport.Reconciler{Margin: cfg.Margin, Tolerance: cfg.Tolerance}
		e.blinker.SetConfig(cfg.Cursor)
		e.logger.Debug("editor config applied")
	})
}

// Blinker returns the cursor blink controller.
func (e *Editor) Blinker() *rcursor.Blinker {
	return e.blinker
}

// Subscribe registers an observer for change notifications.
func (e *Editor) Subscribe(fn func(Change)) *notify.Subscription {
	return e.changes.Subscribe(fn)
}

// Clipboard returns the editor-local clipboard.
func (e *Editor) Clipboard() string {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.clipboard
}

// Cursor returns the buffer's cursor.
func (e *Editor) Cursor() cursor.Cursor {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.buf.Cursor()
}

// Selection returns the buffer's selection, if any.
func (e *Editor) Selection() (cursor.Selection, bool) {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.buf.Selection()
}

// Focused returns whether the editor has focus.
func (e *Editor) Focused() bool {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.focused
}

// CursorVisible returns whether the cursor should be drawn now.
func (e *Editor) CursorVisible() bool {
	e.mu.Lock()
	focused := e.focused
	e.mu.Unlock()
	return focused && e.blinker.Visible()
}

// OnFocus starts blinking with a fresh phase.
func (e *Editor) OnFocus() {
	e.run(func() {
		if e.focused {
			return
		}
		e.focused = true
		e.blinker.Focus()
		e.changed |= ChangeFocus
	})
}

// OnFocusLost stops blinking, hides the cursor and ends any drag or key
// repeat.
func (e *Editor) OnFocusLost() {
	e.repeat.Stop()
	e.run(func() {
		if !e.focused {
			return
		}
		e.focused = false
		e.drag = dragState{}
		e.blinker.Blur()
		e.changed |= ChangeFocus
	})
}

// Close stops all timers and observers. Later calls into the editor are
// no-ops.
func (e *Editor) Close() {
	e.repeat.Stop()
	e.mu.Lock()
	if e.closed {
		e.mu.Unlock()
		return
	}
	e.closed = true
	e.focused = false
	e.mu.Unlock()

	e.blinker.Close()
	e.changes.Close()
	e.logger.Debug("editor closed")
}

// touched resets the blink phase and schedules scrolling the cursor into
// view after the next layout (must hold lock).
func (e *Editor) touched() {
	e.blinker.Reset()
	if e.layoutQueued {
		return
	}
	e.layoutQueued = true
	e.buf.OnNextLayout(e.afterLayout)
}
