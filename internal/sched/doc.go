// Package sched provides periodic callbacks for cursor blinking and key
// repeat.
//
// A Scheduler owns registrations. Each registration has a period, an
// optional invocation limit and a callback:
//
//	h := s.Register(500*time.Millisecond, sched.Unlimited, func(t sched.Tick) bool {
//	    // t.Elapsed is 0 on the first tick after Start
//	    return true // false deregisters
//	})
//	s.Start(h)
//	s.Pause(h)
//
// Registrations start paused. The first tick after each Start fires one
// period later and reports zero elapsed time, so callers can distinguish a
// fresh phase from a steady-state tick.
//
// Two implementations are provided: Timer runs callbacks on runtime timers
// and Manual advances a virtual clock under test or from a host frame loop.
// Neither holds its lock while a callback runs, so callbacks may register,
// start, pause and cancel freely.
package sched
