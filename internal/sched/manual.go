package sched

import (
	"sync"
	"time"
)

// Manual is a Scheduler driven by an explicit virtual clock.
// Ticks fire only from Advance, on the caller's goroutine, in due order.
type Manual struct {
	mu   sync.Mutex
	now  time.Time
	regs map[Handle]*manualEntry
	next Handle
}

type manualEntry struct {
	period time.Duration
	limit  uint32
	fn     Func

	count   uint32
	running bool
	first   bool
	due     time.Time
	last    time.Time
}

// NewManual creates a manual scheduler whose clock starts at start.
func NewManual(start time.Time) *Manual {
	return &Manual{
		now:  start,
		regs: make(map[Handle]*manualEntry),
	}
}

// Now returns the virtual time.
func (m *Manual) Now() time.Time {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.now
}

// Register implements Scheduler.
func (m *Manual) Register(period time.Duration, limit uint32, fn Func) Handle {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.next++
	if fn != nil {
		m.regs[m.next] = &manualEntry{
			period: normalizePeriod(period),
			limit:  limit,
			fn:     fn,
		}
	}
	return m.next
}

// Start implements Scheduler.
func (m *Manual) Start(h Handle) {
	m.mu.Lock()
	defer m.mu.Unlock()

	e := m.regs[h]
	if e == nil || e.running {
		return
	}
	e.running = true
	e.first = true
	e.due = m.now.Add(e.period)
}

// Pause implements Scheduler.
func (m *Manual) Pause(h Handle) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if e := m.regs[h]; e != nil {
		e.running = false
	}
}

// Cancel implements Scheduler.
func (m *Manual) Cancel(h Handle) {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.regs, h)
}

// Active returns true if the registration exists and is running.
func (m *Manual) Active(h Handle) bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	e := m.regs[h]
	return e != nil && e.running
}

// Registered returns true if the registration still exists.
func (m *Manual) Registered(h Handle) bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.regs[h] != nil
}

// Len returns the number of live registrations.
func (m *Manual) Len() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.regs)
}

// Advance moves the clock forward by d, firing every tick that falls due
// on the way. Ticks due at the same instant fire in registration order.
func (m *Manual) Advance(d time.Duration) {
	m.mu.Lock()
	target := m.now.Add(d)
	m.mu.Unlock()

	for {
		m.mu.Lock()
		h, e := m.nextDue(target)
		if e == nil {
			m.now = target
			m.mu.Unlock()
			return
		}

		m.now = e.due
		e.count++
		tick := Tick{Count: e.count}
		if !e.first {
			tick.Elapsed = m.now.Sub(e.last)
		}
		e.first = false
		e.last = m.now
		e.due = m.now.Add(e.period)
		fn := e.fn
		m.mu.Unlock()

		keep := fn(tick)

		m.mu.Lock()
		if m.regs[h] == e && (!keep || exhausted(e.limit, e.count)) {
			delete(m.regs, h)
		}
		m.mu.Unlock()
	}
}

// nextDue finds the earliest running entry due at or before target (must hold lock).
func (m *Manual) nextDue(target time.Time) (Handle, *manualEntry) {
	var (
		bestH Handle
		best  *manualEntry
	)
	for h, e := range m.regs {
		if !e.running || e.due.After(target) {
			continue
		}
		if best == nil || e.due.Before(best.due) || (e.due.Equal(best.due) && h < bestH) {
			bestH, best = h, e
		}
	}
	return bestH, best
}
