// Package repeat turns a held navigation key into a stream of synthetic
// presses: one immediately, one after an initial delay, then one per
// interval until release.
package repeat

import (
	"sync"
	"time"

	"github.com/dshills/caret/internal/input/key"
	"github.com/dshills/caret/internal/sched"
)

// Default timing.
const (
	DefaultDelay    = 600 * time.Millisecond
	DefaultInterval = 40 * time.Millisecond
)

// Action is the command bound to a key press.
type Action func()

// Option configures a Driver.
type Option func(*Driver)

// WithDelay sets the hold time before repeating starts.
func WithDelay(d time.Duration) Option {
	return func(dr *Driver) {
		if d > 0 {
			dr.delay = d
		}
	}
}

// WithInterval sets the time between repeats.
func WithInterval(d time.Duration) Option {
	return func(dr *Driver) {
		if d > 0 {
			dr.interval = d
		}
	}
}

// Driver repeats at most one held key at a time.
type Driver struct {
	mu       sync.Mutex
	sched    sched.Scheduler
	delay    time.Duration
	interval time.Duration

	held    key.Key
	delayH  sched.Handle
	repeatH sched.Handle

	// gen invalidates callbacks belonging to a released or replaced key.
	gen uint64
}

// NewDriver creates a driver on the given scheduler.
func NewDriver(s sched.Scheduler, opts ...Option) *Driver {
	d := &Driver{
		sched:    s,
		delay:    DefaultDelay,
		interval: DefaultInterval,
	}
	for _, opt := range opts {
		opt(d)
	}
	return d
}

// Delay returns the configured initial delay.
func (d *Driver) Delay() time.Duration {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.delay
}

// Interval returns the configured repeat interval.
func (d *Driver) Interval() time.Duration {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.interval
}

// SetTiming changes delay and interval for subsequent presses.
// Non-positive values leave the current setting unchanged.
func (d *Driver) SetTiming(delay, interval time.Duration) {
	d.mu.Lock()
	defer d.mu.Unlock()
	if delay > 0 {
		d.delay = delay
	}
	if interval > 0 {
		d.interval = interval
	}
}

// Press fires action once and, for repeatable keys, arms the repeat.
// Any repeat already in progress is stopped first.
func (d *Driver) Press(k key.Key, action Action) {
	if action == nil {
		return
	}

	d.mu.Lock()
	d.cancelLocked()
	if k.IsRepeatable() {
		d.held = k
		gen := d.gen
		d.delayH = d.sched.Register(d.delay, 1, func(sched.Tick) bool {
			return d.afterDelay(gen, action)
		})
		d.sched.Start(d.delayH)
	}
	d.mu.Unlock()

	action()
}

// Release stops repeating if k is the held key.
func (d *Driver) Release(k key.Key) {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.held == k {
		d.cancelLocked()
	}
}

// Stop cancels any repeat in progress.
func (d *Driver) Stop() {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.cancelLocked()
}

// Held returns the key currently repeating, or key.KeyNone.
func (d *Driver) Held() key.Key {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.held
}

func (d *Driver) afterDelay(gen uint64, action Action) bool {
	d.mu.Lock()
	if d.gen != gen {
		d.mu.Unlock()
		return false
	}
	d.delayH = 0
	d.repeatH = d.sched.Register(d.interval, sched.Unlimited, func(sched.Tick) bool {
		return d.repeat(gen, action)
	})
	d.sched.Start(d.repeatH)
	d.mu.Unlock()

	action()
	return true
}

func (d *Driver) repeat(gen uint64, action Action) bool {
	d.mu.Lock()
	live := d.gen == gen
	d.mu.Unlock()
	if !live {
		return false
	}
	action()
	return true
}

// cancelLocked drops both registrations (must hold lock).
func (d *Driver) cancelLocked() {
	d.gen++
	if d.delayH != 0 {
		d.sched.Cancel(d.delayH)
		d.delayH = 0
	}
	if d.repeatH != 0 {
		d.sched.Cancel(d.repeatH)
		d.repeatH = 0
	}
	d.held = key.KeyNone
}
