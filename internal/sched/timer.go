package sched

import (
	"sync"
	"time"
)

// Timer is a Scheduler backed by runtime timers.
// Callbacks run on timer goroutines.
type Timer struct {
	mu     sync.Mutex
	regs   map[Handle]*timerEntry
	next   Handle
	closed bool
	logger Logger
}

// Logger receives scheduler diagnostics.
type Logger interface {
	Debug(msg string, args ...any)
}

// TimerOption configures a Timer.
type TimerOption func(*Timer)

// WithLogger sets the diagnostics logger.
func WithLogger(l Logger) TimerOption {
	return func(t *Timer) {
		t.logger = l
	}
}

type timerEntry struct {
	period time.Duration
	limit  uint32
	fn     Func

	count   uint32
	running bool
	first   bool
	last    time.Time

	// gen invalidates timers armed by a previous run.
	gen   uint64
	timer *time.Timer
}

// NewTimer creates a timer-backed scheduler.
func NewTimer(opts ...TimerOption) *Timer {
	t := &Timer{regs: make(map[Handle]*timerEntry)}
	for _, opt := range opts {
		opt(t)
	}
	return t
}

// Register implements Scheduler.
func (t *Timer) Register(period time.Duration, limit uint32, fn Func) Handle {
	t.mu.Lock()
	defer t.mu.Unlock()

	t.next++
	h := t.next
	if t.closed || fn == nil {
		return h
	}
	t.regs[h] = &timerEntry{
		period: normalizePeriod(period),
		limit:  limit,
		fn:     fn,
	}
	return h
}

// Start implements Scheduler.
func (t *Timer) Start(h Handle) {
	t.mu.Lock()
	defer t.mu.Unlock()

	e := t.regs[h]
	if e == nil || e.running {
		return
	}
	e.running = true
	e.first = true
	e.gen++
	t.arm(h, e)
}

// Pause implements Scheduler.
func (t *Timer) Pause(h Handle) {
	t.mu.Lock()
	defer t.mu.Unlock()

	if e := t.regs[h]; e != nil {
		e.stop()
	}
}

// Cancel implements Scheduler.
func (t *Timer) Cancel(h Handle) {
	t.mu.Lock()
	defer t.mu.Unlock()

	if e := t.regs[h]; e != nil {
		e.stop()
		delete(t.regs, h)
	}
}

// Active returns true if the registration exists and is running.
func (t *Timer) Active(h Handle) bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	e := t.regs[h]
	return e != nil && e.running
}

// Close cancels every registration. Registrations made after Close never fire.
func (t *Timer) Close() {
	t.mu.Lock()
	defer t.mu.Unlock()

	for h, e := range t.regs {
		e.stop()
		delete(t.regs, h)
	}
	t.closed = true
}

// arm schedules the next tick (must hold lock).
func (t *Timer) arm(h Handle, e *timerEntry) {
	gen := e.gen
	e.timer = time.AfterFunc(e.period, func() {
		t.fire(h, gen)
	})
}

func (t *Timer) fire(h Handle, gen uint64) {
	t.mu.Lock()
	e := t.regs[h]
	if e == nil || !e.running || e.gen != gen {
		t.mu.Unlock()
		return
	}

	now := time.Now()
	e.count++
	tick := Tick{Count: e.count}
	if !e.first {
		tick.Elapsed = now.Sub(e.last)
		if tick.Elapsed <= 0 {
			tick.Elapsed = time.Nanosecond
		}
	}
	e.first = false
	e.last = now
	fn := e.fn
	t.mu.Unlock()

	keep := fn(tick)

	t.mu.Lock()
	defer t.mu.Unlock()

	if t.regs[h] != e {
		return
	}
	if !keep || exhausted(e.limit, e.count) {
		e.stop()
		delete(t.regs, h)
		if t.logger != nil {
			t.logger.Debug("sched: deregistered %d after %d ticks", h, e.count)
		}
		return
	}
	// The callback may have paused or restarted this registration.
	if e.running && e.gen == gen {
		t.arm(h, e)
	}
}

func (e *timerEntry) stop() {
	e.running = false
	e.gen++
	if e.timer != nil {
		e.timer.Stop()
		e.timer = nil
	}
}
