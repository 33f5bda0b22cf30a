package editor

import (
	"github.com/dshills/caret/internal/engine/cursor"
	"github.com/dshills/caret/internal/input/mouse"
	"github.com/dshills/caret/internal/renderer/viewport"
)

// Buffer is the text model the editor drives.
//
// Navigation methods return a non-Position cursor at a document boundary.
// Bounds are in layout space: the same space as the Geometry's frame.
type Buffer interface {
	Resolve(p mouse.Point) cursor.Cursor
	// HitTest returns the cursor before the cluster under p.
	HitTest(p mouse.Point) cursor.Cursor

	Next(c cursor.Cursor) cursor.Cursor
	Prev(c cursor.Cursor) cursor.Cursor
	Up(c cursor.Cursor) cursor.Cursor
	Down(c cursor.Cursor) cursor.Cursor
	LineStart(c cursor.Cursor) cursor.Cursor
	LineEnd(c cursor.Cursor) cursor.Cursor

	WordRange(c cursor.Cursor) (cursor.Selection, bool)
	LineRange(c cursor.Cursor) (cursor.Selection, bool)

	Selection() (cursor.Selection, bool)
	SetSelection(s cursor.Selection)
	ClearSelection()
	Cursor() cursor.Cursor
	SetCursor(c cursor.Cursor)
	Bounds(c cursor.Cursor) (viewport.Rect, bool)

	Insert(c cursor.Cursor, s string) cursor.Cursor
	DeleteBefore(c cursor.Cursor) cursor.Cursor
	DeleteAfter(c cursor.Cursor) cursor.Cursor
	DeleteRange(s cursor.Selection) (cursor.Cursor, string)
	TextOf(s cursor.Selection) string
	SelectAll() (cursor.Selection, bool)

	// OnNextLayout queues fn to run once after the next layout pass.
	OnNextLayout(fn func())
}

// Texter is implemented by buffers that expose and replace their content.
type Texter interface {
	Text() string
	SetText(s string)
}

// Geometry reports the visible window onto the buffer.
type Geometry interface {
	Viewport() viewport.Frame
}

// GeometryFunc adapts a function to Geometry.
type GeometryFunc func() viewport.Frame

// Viewport implements Geometry.
func (f GeometryFunc) Viewport() viewport.Frame { return f() }

// Logger receives editor diagnostics.
type Logger interface {
	Debug(msg string, args ...any)
}

type nopLogger struct{}

func (nopLogger) Debug(string, ...any) {}
