// Package buffer provides the reference text buffer used by the editor.
//
// A Buffer stores a single editable text region and answers the editor's
// questions about it: where a pointer lands, where the next grapheme or
// line is, which word or line surrounds an offset, and where the cursor
// box sits after layout.
//
// Offsets are rune offsets. Navigation and deletion move by grapheme
// cluster, so a combining sequence or an emoji with modifiers is one step.
//
// Layout is lazy. Edits mark the geometry stale and a call to Layout
// recomputes it, then runs every callback queued with OnNextLayout since
// the previous pass:
//
//	buf := buffer.NewBufferFromString("hello world")
//	buf.OnNextLayout(func() {
//	    r, _ := buf.Bounds(buf.Cursor())
//	    // scroll r into view
//	})
//	buf.Layout()
//
// Geometry comes from a Metrics implementation: CellMetrics for terminal
// cells and FaceMetrics for a font.Face.
//
// All Buffer methods are safe for concurrent use. Layout callbacks run
// without the buffer lock held and may call back into the buffer.
package buffer
