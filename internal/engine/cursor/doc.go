// Package cursor provides the addressing values shared by the text buffer
// and the editing controller.
//
// A Cursor is a tagged address into a text buffer:
//
//   - Absent: the buffer has no focus, there is nothing to address
//   - Empty: the buffer has no valid position (for example a zero-length document)
//   - Position: a character offset, counted in runes from the start of the buffer
//
// Commands must test the tag before using an offset:
//
//	if off, ok := c.Offset(); ok {
//	    // use off
//	}
//
// A Selection is a half-open character range [Start, End). Selections are
// only constructed through NewSelection, which orders the endpoints so that
// Start <= End always holds, no matter which end the user dragged from.
//
// Thread Safety:
//
// Cursor, Selection and Range are immutable value types and safe for
// concurrent use.
package cursor
