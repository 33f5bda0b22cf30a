// Package cursor provides the text cursor's blink animation.
//
// A Blinker has two states. While Blinking, a periodic scheduler callback
// toggles visibility every BlinkRate; the first tick after a (re)start
// forces the cursor visible instead of toggling. While Paused the timer is
// suspended and the cursor is hidden.
//
// The scheduler callback holds only a weak reference to its Blinker, so an
// abandoned Blinker is collected and its registration removes itself.
package cursor

import (
	"runtime"
	"sync"
	"time"
	"weak"

	"github.com/dshills/caret/internal/sched"
)

// DefaultBlinkRate is the interval between visibility toggles.
const DefaultBlinkRate = 500 * time.Millisecond

// Style represents the visual appearance of the cursor.
type Style uint8

const (
	// StyleBar is a vertical line cursor.
	StyleBar Style = iota
	// StyleBlock is a filled block cursor.
	StyleBlock
	// StyleUnderline is an underscore cursor.
	StyleUnderline
)

// String returns the style name.
func (s Style) String() string {
	switch s {
	case StyleBar:
		return "bar"
	case StyleBlock:
		return "block"
	case StyleUnderline:
		return "underline"
	default:
		return "unknown"
	}
}

// ParseStyle parses a style name, defaulting to StyleBar.
func ParseStyle(s string) Style {
	switch s {
	case "block":
		return StyleBlock
	case "underline":
		return StyleUnderline
	default:
		return StyleBar
	}
}

// Config holds cursor configuration.
type Config struct {
	// Style is the visual appearance of the cursor.
	Style Style

	// BlinkEnabled enables cursor blinking. When false a focused cursor
	// stays solid.
	BlinkEnabled bool

	// BlinkRate is the blink interval.
	BlinkRate time.Duration
}

// DefaultConfig returns the default cursor configuration.
func DefaultConfig() Config {
	return Config{
		Style:        StyleBar,
		BlinkEnabled: true,
		BlinkRate:    DefaultBlinkRate,
	}
}

// State is the blink state machine state.
type State uint8

const (
	// StatePaused means the timer is suspended and the cursor hidden.
	StatePaused State = iota
	// StateBlinking means the timer is running.
	StateBlinking
)

// String returns the state name.
func (s State) String() string {
	if s == StateBlinking {
		return "blinking"
	}
	return "paused"
}

// Blinker drives cursor visibility.
type Blinker struct {
	mu sync.Mutex

	sched   sched.Scheduler
	config  Config
	state   State
	visible bool
	handle  sched.Handle
	closed  bool

	onToggle func(visible bool)
}

// NewBlinker creates a paused Blinker on the given scheduler.
func NewBlinker(s sched.Scheduler, config Config) *Blinker {
	if config.BlinkRate <= 0 {
		config.BlinkRate = DefaultBlinkRate
	}
	b := &Blinker{
		sched:  s,
		config: config,
	}
	b.handle = b.register()
	return b
}

// register adds the blink callback. The callback and the cleanup never
// reference b directly.
func (b *Blinker) register() sched.Handle {
	wp := weak.Make(b)
	s := b.sched
	h := s.Register(b.config.BlinkRate, sched.Unlimited, func(t sched.Tick) bool {
		target := wp.Value()
		if target == nil {
			return false
		}
		return target.tick(t)
	})
	runtime.AddCleanup(b, func(h sched.Handle) { s.Cancel(h) }, h)
	return h
}

// SetOnToggle sets a callback invoked after every visibility change.
// It runs without the Blinker's lock held.
func (b *Blinker) SetOnToggle(fn func(visible bool)) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.onToggle = fn
}

// Visible returns whether the cursor should be drawn.
func (b *Blinker) Visible() bool {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.visible
}

// State returns the current state.
func (b *Blinker) State() State {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.state
}

// Config returns the current configuration.
func (b *Blinker) Config() Config {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.config
}

// Handle returns the scheduler registration.
func (b *Blinker) Handle() sched.Handle {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.handle
}

// Focus enters Blinking with a fresh phase and shows the cursor.
func (b *Blinker) Focus() {
	b.mu.Lock()
	changed := b.startLocked()
	fn := b.onToggle
	b.mu.Unlock()
	b.notify(fn, changed, true)
}

// Blur enters Paused and hides the cursor.
func (b *Blinker) Blur() {
	b.mu.Lock()
	changed := b.pauseLocked()
	fn := b.onToggle
	b.mu.Unlock()
	b.notify(fn, changed, false)
}

// Reset restarts the blink phase if Blinking, so the cursor is solid for a
// full period. It is a no-op while Paused.
func (b *Blinker) Reset() {
	b.mu.Lock()
	if b.state != StateBlinking {
		b.mu.Unlock()
		return
	}
	b.pauseLocked()
	b.startLocked()
	fn := b.onToggle
	b.mu.Unlock()
	// Pausing and restarting always ends visible. Report it so a cursor
	// hidden mid-blink is redrawn.
	b.notify(fn, true, true)
}

// SetConfig applies a new configuration, re-registering the timer if the
// rate changed.
func (b *Blinker) SetConfig(config Config) {
	if config.BlinkRate <= 0 {
		config.BlinkRate = DefaultBlinkRate
	}

	b.mu.Lock()
	if b.closed {
		b.mu.Unlock()
		return
	}
	old := b.config
	b.config = config
	blinking := b.state == StateBlinking
	if blinking {
		b.pauseLocked()
	}
	if old.BlinkRate != config.BlinkRate {
		b.sched.Cancel(b.handle)
		b.handle = b.register()
	}
	changed := false
	if blinking {
		changed = b.startLocked()
	}
	fn := b.onToggle
	b.mu.Unlock()
	b.notify(fn, changed, true)
}

// Close cancels the timer. The Blinker stays Paused afterwards.
func (b *Blinker) Close() {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.closed {
		return
	}
	b.closed = true
	b.state = StatePaused
	b.visible = false
	b.sched.Cancel(b.handle)
}

// startLocked enters Blinking (must hold lock).
func (b *Blinker) startLocked() bool {
	if b.closed {
		return false
	}
	changed := !b.visible
	b.state = StateBlinking
	b.visible = true
	if b.config.BlinkEnabled {
		b.sched.Start(b.handle)
	}
	return changed
}

// pauseLocked enters Paused (must hold lock).
func (b *Blinker) pauseLocked() bool {
	changed := b.visible
	b.state = StatePaused
	b.visible = false
	b.sched.Pause(b.handle)
	return changed
}

func (b *Blinker) tick(t sched.Tick) bool {
	b.mu.Lock()
	if b.closed {
		b.mu.Unlock()
		return false
	}
	if b.state != StateBlinking {
		b.mu.Unlock()
		return true
	}
	prev := b.visible
	if t.First() {
		b.visible = true
	} else {
		b.visible = !b.visible
	}
	visible := b.visible
	fn := b.onToggle
	b.mu.Unlock()

	b.notify(fn, prev != visible, visible)
	return true
}

func (b *Blinker) notify(fn func(bool), changed, visible bool) {
	if fn != nil && changed {
		fn(visible)
	}
}
