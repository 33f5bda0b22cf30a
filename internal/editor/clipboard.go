package editor

// Copy puts the selected text on the clipboard. Without a selection it
// does nothing.
func (e *Editor) Copy() {
	e.run(func() {
		sel, ok := e.buf.Selection()
		if !ok {
			return
		}
		e.clipboard = e.buf.TextOf(sel)
		e.changed |= ChangeClipboard
	})
}

// Cut moves the selected text to the clipboard. Without a selection it
// does nothing.
func (e *Editor) Cut() {
	e.run(func() {
		sel, ok := e.buf.Selection()
		if !ok {
			return
		}
		c, removed := e.buf.DeleteRange(sel)
		e.clipboard = removed
		e.buf.ClearSelection()
		e.buf.SetCursor(c)
		e.changed |= ChangeClipboard | ChangeText
		e.touched()
	})
}

// Paste replaces the selection, if any, with the clipboard. An empty
// clipboard still removes the selection and counts as an edit. Nothing
// happens while the cursor is Absent.
func (e *Editor) Paste() {
	e.run(func() {
		if e.absentLocked() {
			return
		}
		e.deleteSelectionLocked()
		c := e.buf.Insert(e.buf.Cursor(), e.clipboard)
		e.buf.SetCursor(c)
		if e.clipboard != "" {
			e.changed |= ChangeText
		}
		e.touched()
	})
}

// SelectAll selects the whole document and moves the cursor to its end.
// It does nothing on an empty document.
func (e *Editor) SelectAll() {
	e.run(func() {
		rng, ok := e.buf.SelectAll()
		if !ok {
			return
		}
		e.buf.SetSelection(rng)
		e.buf.SetCursor(rng.EndCursor())
		e.touched()
	})
}

// SetClipboard replaces the clipboard content.
func (e *Editor) SetClipboard(s string) {
	e.run(func() {
		e.clipboard = s
		e.changed |= ChangeClipboard
	})
}

// deleteSelectionLocked removes the selected text and reports whether
// there was any (must hold lock).
func (e *Editor) deleteSelectionLocked() bool {
	sel, ok := e.buf.Selection()
	if !ok {
		return false
	}
	c, _ := e.buf.DeleteRange(sel)
	e.buf.ClearSelection()
	e.buf.SetCursor(c)
	e.changed |= ChangeText
	return true
}
