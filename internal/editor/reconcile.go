package editor

import (
	"github.com/dshills/caret/internal/input/mouse"
	"github.com/dshills/caret/internal/renderer/viewport"
)

// reconcileLocked scrolls the cursor into view (must hold lock).
func (e *Editor) reconcileLocked() {
	e.layoutQueued = false
	if e.closed || e.geom == nil {
		return
	}
	r, ok := e.buf.Bounds(e.buf.Cursor())
	if !ok {
		return
	}

	res := e.reconciler.Reconcile(viewport.Input{
		Bounds:     r,
		Frame:      e.geom.Viewport(),
		Horizontal: e.hbar,
		Vertical:   e.vbar,
	})
	if res.Pushed() {
		e.changed |= ChangeScroll
		e.logger.Debug("editor: scrolled to %g,%g", res.Horizontal.Target, res.Vertical.Target)
	}
}

// toLayout converts a window point to layout space by adding the scroll
// offsets.
func (e *Editor) toLayout(p mouse.Point) mouse.Point {
	if e.hbar != nil {
		p.X += e.hbar.Target()
	}
	if e.vbar != nil {
		p.Y += e.vbar.Target()
	}
	return p
}
