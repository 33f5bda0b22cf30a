package editor

import (
	"github.com/dshills/caret/internal/engine/cursor"
	"github.com/dshills/caret/internal/input/mouse"
)

// dragState remembers the gesture a left-button drag extends.
type dragState struct {
	active      bool
	granularity mouse.Granularity
	// anchor is the range the gesture selected first; the drag keeps it
	// selected while following the pointer.
	anchor cursor.Selection
}

// OnPress handles a pointer press. Only the left button places the cursor
// or selects; the press is classified as a single, double or triple click.
func (e *Editor) OnPress(ev mouse.Event) {
	if ev.Button != mouse.ButtonLeft {
		return
	}
	e.run(func() {
		count := e.clicks.Record(ev.Timestamp)
		p := e.toLayout(ev.Position)
		c := e.buf.Resolve(p)
		off, ok := c.Offset()
		if !ok {
			return
		}

		g := mouse.Granularity(count)
		anchor := e.applyGesture(c, e.buf.HitTest(p), off, g, ev.Extend())
		e.drag = dragState{active: true, granularity: g, anchor: anchor}
		e.logger.Debug("editor: %s click at %d", g, off)

		if e.buf.Cursor().IsPosition() {
			e.touched()
		}
	})
}

// applyGesture updates cursor and selection for a classified press and
// returns the drag anchor (must hold lock). Word and line gestures select
// around hit, the cluster under the pointer; carets go to c.
func (e *Editor) applyGesture(c, hit cursor.Cursor, off int, g mouse.Granularity, extend bool) cursor.Selection {
	sel, hasSel := e.buf.Selection()

	var rng cursor.Selection
	switch g {
	case mouse.GranularityWord:
		r, ok := e.buf.WordRange(hit)
		if !ok {
			return e.placeCaret(c, off)
		}
		rng = r
	case mouse.GranularityLine:
		r, ok := e.buf.LineRange(hit)
		if !ok {
			return e.placeCaret(c, off)
		}
		rng = r
	default:
		if !extend {
			return e.placeCaret(c, off)
		}
		if !hasSel {
			e.buf.SetCursor(c)
			return cursor.NewSelection(off, off)
		}
		rng = cursor.NewSelection(off, off)
	}

	if extend && hasSel {
		a := anchorOf(sel, e.buf.Cursor())
		e.extendTo(a, rng)
		return cursor.NewSelection(a, a)
	}
	e.buf.SetSelection(rng)
	e.buf.SetCursor(cursor.At(rng.End))
	return rng
}

// placeCaret clears the selection and moves the cursor (must hold lock).
func (e *Editor) placeCaret(c cursor.Cursor, off int) cursor.Selection {
	e.buf.ClearSelection()
	e.buf.SetCursor(c)
	return cursor.NewSelection(off, off)
}

// extendTo selects from anchor to whichever edge of rng lies away from it
// and puts the cursor on that edge (must hold lock).
func (e *Editor) extendTo(anchor int, rng cursor.Selection) {
	head := rng.End
	if rng.End <= anchor {
		head = rng.Start
	}
	e.buf.SetSelection(cursor.NewSelection(anchor, head))
	e.buf.SetCursor(cursor.At(head))
}

// anchorOf returns the selection end opposite the cursor.
func anchorOf(sel cursor.Selection, c cursor.Cursor) int {
	if off, ok := c.Offset(); ok && off == sel.Start {
		return sel.End
	}
	return sel.Start
}

// OnDrag extends the selection while the left button is held, using the
// granularity of the press that started the drag.
func (e *Editor) OnDrag(ev mouse.Event) {
	e.run(func() {
		if !e.drag.active {
			return
		}
		p := e.toLayout(ev.Position)
		c := e.buf.Resolve(p)
		off, ok := c.Offset()
		if !ok {
			return
		}

		head := cursor.NewSelection(off, off)
		switch e.drag.granularity {
		case mouse.GranularityWord:
			if r, ok := e.buf.WordRange(e.buf.HitTest(p)); ok {
				head = r
			}
		case mouse.GranularityLine:
			if r, ok := e.buf.LineRange(e.buf.HitTest(p)); ok {
				head = r
			}
		}

		a := e.drag.anchor
		union := a.Union(head)
		e.buf.SetSelection(union)
		if head.Start < a.Start {
			e.buf.SetCursor(cursor.At(union.Start))
		} else {
			e.buf.SetCursor(cursor.At(union.End))
		}
		e.touched()
	})
}

// OnRelease ends a drag.
func (e *Editor) OnRelease(ev mouse.Event) {
	if ev.Button != mouse.ButtonLeft {
		return
	}
	e.run(func() {
		e.drag.active = false
	})
}

// HandleMouse routes a pointer event by its action.
func (e *Editor) HandleMouse(ev mouse.Event) {
	switch ev.Action {
	case mouse.ActionPress:
		e.OnPress(ev)
	case mouse.ActionDrag:
		e.OnDrag(ev)
	case mouse.ActionRelease:
		e.OnRelease(ev)
	}
}
