package sched

import "time"

// Handle identifies a registration. The zero Handle is never issued.
type Handle uint64

// Unlimited registers a callback with no invocation limit.
const Unlimited uint32 = 0

// minPeriod is used for non-positive periods.
const minPeriod = time.Millisecond

// Tick describes one invocation of a registered callback.
type Tick struct {
	// Elapsed is the time since the previous tick of the current run.
	// It is zero for the first tick after Start.
	Elapsed time.Duration

	// Count is the number of invocations so far, including this one.
	Count uint32
}

// First returns true for the first tick after a (re)start.
func (t Tick) First() bool {
	return t.Elapsed == 0
}

// Func is a periodic callback. Returning false deregisters it.
type Func func(t Tick) bool

// Scheduler manages periodic callback registrations.
type Scheduler interface {
	// Register adds a paused registration. limit caps the total number of
	// invocations; Unlimited means no cap.
	Register(period time.Duration, limit uint32, fn Func) Handle

	// Start resumes a registration with a fresh phase. Starting a running
	// registration is a no-op.
	Start(h Handle)

	// Pause suspends a registration without removing it.
	Pause(h Handle)

	// Cancel removes a registration.
	Cancel(h Handle)
}

func normalizePeriod(d time.Duration) time.Duration {
	if d <= 0 {
		return minPeriod
	}
	return d
}

// exhausted reports whether a registration reached its invocation limit.
func exhausted(limit, count uint32) bool {
	return limit != Unlimited && count >= limit
}
