package editor

import (
	"sync"

	"github.com/dshills/caret/internal/engine/cursor"
)

// guard tracks whether a handler holds the editor lock and collects work
// that arrives meanwhile.
type guard struct {
	mu        sync.Mutex
	inHandler bool
	deferred  []func()
	blink     bool
}

// enter marks a handler as running.
func (g *guard) enter() {
	g.mu.Lock()
	g.inHandler = true
	g.mu.Unlock()
}

// deferIfBusy queues fn if a handler is running and reports whether it did.
func (g *guard) deferIfBusy(fn func()) bool {
	g.mu.Lock()
	defer g.mu.Unlock()
	if !g.inHandler {
		return false
	}
	g.deferred = append(g.deferred, fn)
	return true
}

// markBlinkIfBusy records a blink change for the running handler to
// publish and reports whether a handler was running.
func (g *guard) markBlinkIfBusy() bool {
	g.mu.Lock()
	defer g.mu.Unlock()
	if g.inHandler {
		g.blink = true
	}
	return g.inHandler
}

// drain runs deferred work until none is left, then leaves the handler.
// Work deferred by the deferred work itself is picked up by the same loop.
func (g *guard) drain() (blink bool) {
	for {
		g.mu.Lock()
		if len(g.deferred) == 0 {
			g.inHandler = false
			blink, g.blink = g.blink, false
			g.mu.Unlock()
			return blink
		}
		fn := g.deferred[0]
		g.deferred = g.deferred[1:]
		g.mu.Unlock()
		fn()
	}
}

type snapshot struct {
	cursor cursor.Cursor
	sel    cursor.Selection
	hasSel bool
}

func (e *Editor) snapshot() snapshot {
	sel, ok := e.buf.Selection()
	return snapshot{cursor: e.buf.Cursor(), sel: sel, hasSel: ok}
}

// run executes fn as a handler: under the editor lock, with deferred
// layout work drained before unlocking and change notifications published
// after.
func (e *Editor) run(fn func()) {
	e.mu.Lock()
	if e.closed {
		e.mu.Unlock()
		return
	}
	e.guard.enter()
	before := e.snapshot()

	fn()

	blink := e.guard.drain()
	after := e.snapshot()
	kinds := e.changed
	e.changed = 0
	if after.cursor != before.cursor {
		kinds |= ChangeCursor
	}
	if after.hasSel != before.hasSel || after.sel != before.sel {
		kinds |= ChangeSelection
	}
	if blink {
		kinds |= ChangeBlink
	}
	e.mu.Unlock()

	e.publish(kinds)
}

// afterLayout is the one-shot post-layout callback.
func (e *Editor) afterLayout() {
	if e.guard.deferIfBusy(e.reconcileLocked) {
		return
	}
	e.run(e.reconcileLocked)
}

// blinkToggled receives blink visibility changes.
func (e *Editor) blinkToggled(bool) {
	if e.guard.markBlinkIfBusy() {
		return
	}
	e.publish(ChangeBlink)
}
