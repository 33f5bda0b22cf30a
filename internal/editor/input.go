package editor

import (
	"github.com/dshills/caret/internal/engine/cursor"
	"github.com/dshills/caret/internal/input/key"
)

// absentLocked reports whether the cursor is Absent (must hold lock).
func (e *Editor) absentLocked() bool {
	return e.buf.Cursor().Kind() == cursor.KindAbsent
}

// OnCharacter handles decoded character input. A selection is removed
// first; then backspace deletes before the cursor, delete removes after it
// and printable characters are inserted. Backspace and delete with a
// selection only remove the selection. Nothing happens while the cursor
// is Absent.
func (e *Editor) OnCharacter(ev key.CharEvent) {
	e.run(func() {
		if e.absentLocked() {
			return
		}
		hadSel := e.deleteSelectionLocked()
		c := e.buf.Cursor()

		switch {
		case ev.Backspace:
			if !hadSel {
				c = e.buf.DeleteBefore(c)
				e.changed |= ChangeText
			}
		case ev.Delete:
			if !hadSel {
				c = e.buf.DeleteAfter(c)
				e.changed |= ChangeText
			}
		default:
			if text := ev.Text(); text != "" {
				c = e.buf.Insert(c, text)
				e.changed |= ChangeText
			}
		}
		e.buf.SetCursor(c)
		e.touched()
	})
}

// InsertText inserts s at the cursor, replacing any selection.
func (e *Editor) InsertText(s string) {
	e.run(func() {
		if e.absentLocked() {
			return
		}
		e.deleteSelectionLocked()
		c := e.buf.Insert(e.buf.Cursor(), s)
		e.buf.SetCursor(c)
		if s != "" {
			e.changed |= ChangeText
		}
		e.touched()
	})
}

// SetText replaces the document if the buffer supports it.
func (e *Editor) SetText(s string) bool {
	t, ok := e.buf.(Texter)
	if !ok {
		return false
	}
	e.run(func() {
		t.SetText(s)
		e.drag = dragState{}
		e.changed |= ChangeText
		e.touched()
	})
	return true
}

// Text returns the document if the buffer supports it.
func (e *Editor) Text() string {
	t, ok := e.buf.(Texter)
	if !ok {
		return ""
	}
	e.mu.Lock()
	defer e.mu.Unlock()
	return t.Text()
}
