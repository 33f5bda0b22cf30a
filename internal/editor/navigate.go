package editor

import (
	"github.com/dshills/caret/internal/engine/cursor"
	"github.com/dshills/caret/internal/input/key"
)

// direction is a navigation command.
type direction uint8

const (
	dirLeft direction = iota
	dirRight
	dirUp
	dirDown
	dirHome
	dirEnd
)

var keyDirections = map[key.Key]direction{
	key.KeyLeft:  dirLeft,
	key.KeyRight: dirRight,
	key.KeyUp:    dirUp,
	key.KeyDown:  dirDown,
	key.KeyHome:  dirHome,
	key.KeyEnd:   dirEnd,
}

// MoveLeft moves the cursor one cluster back.
func (e *Editor) MoveLeft(extend bool) { e.run(func() { e.moveLocked(dirLeft, extend) }) }

// MoveRight moves the cursor one cluster forward.
func (e *Editor) MoveRight(extend bool) { e.run(func() { e.moveLocked(dirRight, extend) }) }

// MoveUp moves the cursor to the previous line.
func (e *Editor) MoveUp(extend bool) { e.run(func() { e.moveLocked(dirUp, extend) }) }

// MoveDown moves the cursor to the next line.
func (e *Editor) MoveDown(extend bool) { e.run(func() { e.moveLocked(dirDown, extend) }) }

// MoveHome moves the cursor to the start of its line.
func (e *Editor) MoveHome(extend bool) { e.run(func() { e.moveLocked(dirHome, extend) }) }

// MoveEnd moves the cursor to the end of its line.
func (e *Editor) MoveEnd(extend bool) { e.run(func() { e.moveLocked(dirEnd, extend) }) }

// OnNavigationKey handles a navigation key press. Arrow keys repeat while
// held; Home and End fire once. It returns false for other keys.
func (e *Editor) OnNavigationKey(ev key.Event) bool {
	dir, ok := keyDirections[ev.Key]
	if !ok {
		return false
	}
	extend := ev.Extend()
	e.repeat.Press(ev.Key, func() {
		e.run(func() { e.moveLocked(dir, extend) })
	})
	return true
}

// OnNavigationKeyUp stops the repeat for a released key.
func (e *Editor) OnNavigationKeyUp(ev key.Event) {
	e.repeat.Release(ev.Key)
}

// moveLocked applies one navigation step (must hold lock).
//
// Without extend, an existing selection collapses to its edge in the
// direction of travel and the cursor does not also step. With extend, the
// selection grows or shrinks from its anchor.
func (e *Editor) moveLocked(dir direction, extend bool) {
	if e.absentLocked() {
		return
	}
	sel, hasSel := e.buf.Selection()
	c := e.buf.Cursor()

	if hasSel && !extend {
		e.buf.ClearSelection()
		switch dir {
		case dirLeft, dirUp:
			c = sel.StartCursor()
		case dirRight, dirDown:
			c = sel.EndCursor()
		case dirHome:
			c = e.buf.LineStart(sel.StartCursor())
		case dirEnd:
			c = e.buf.LineEnd(sel.EndCursor())
		}
		if c.IsPosition() {
			e.buf.SetCursor(c)
		}
		e.touched()
		return
	}

	off, ok := c.Offset()
	if !ok {
		return
	}
	next := e.step(dir, c)
	nextOff, ok := next.Offset()
	if !ok || nextOff == off {
		return
	}

	if extend {
		anchor := off
		if hasSel {
			anchor = anchorOf(sel, c)
		}
		e.buf.SetSelection(cursor.NewSelection(anchor, nextOff))
	}
	e.buf.SetCursor(next)
	e.touched()
}

func (e *Editor) step(dir direction, c cursor.Cursor) cursor.Cursor {
	switch dir {
	case dirLeft:
		return e.buf.Prev(c)
	case dirRight:
		return e.buf.Next(c)
	case dirUp:
		return e.buf.Up(c)
	case dirDown:
		return e.buf.Down(c)
	case dirHome:
		return e.buf.LineStart(c)
	case dirEnd:
		return e.buf.LineEnd(c)
	}
	return cursor.Absent()
}
