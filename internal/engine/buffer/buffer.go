package buffer

import (
	"strings"
	"sync"

	"github.com/dshills/caret/internal/engine/cursor"
)

// Buffer is an editable text region with lazily computed layout.
type Buffer struct {
	mu       sync.Mutex
	text     []rune
	cursor   cursor.Cursor
	sel      cursor.Selection
	hasSel   bool
	revision uint64

	metrics  Metrics
	tabWidth int

	// Layout state, rebuilt when stale.
	lines  []lineLayout
	stale  bool
	width  float32
	passes uint64

	cbMu    sync.Mutex
	pending []func()
}

// NewBuffer creates a new empty buffer.
func NewBuffer(opts ...Option) *Buffer {
	b := &Buffer{
		cursor:   cursor.Empty(),
		metrics:  CellMetrics{},
		tabWidth: 4,
		stale:    true,
	}
	for _, opt := range opts {
		opt(b)
	}
	return b
}

// NewBufferFromString creates a buffer with initial content and the
// cursor at the start.
func NewBufferFromString(s string, opts ...Option) *Buffer {
	b := NewBuffer(opts...)
	b.text = []rune(normalizeLineEndings(s))
	b.cursor = b.cursorAtLocked(0)
	return b
}

// normalizeLineEndings converts CRLF and CR to LF.
func normalizeLineEndings(s string) string {
	if !strings.ContainsRune(s, '\r') {
		return s
	}
	s = strings.ReplaceAll(s, "\r\n", "\n")
	return strings.ReplaceAll(s, "\r", "\n")
}

// Read Operations

// Text returns the full buffer content.
func (b *Buffer) Text() string {
	b.mu.Lock()
	defer b.mu.Unlock()
	return string(b.text)
}

// Len returns the length in runes.
func (b *Buffer) Len() int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return len(b.text)
}

// IsEmpty returns true if the buffer has no content.
func (b *Buffer) IsEmpty() bool {
	return b.Len() == 0
}

// Revision increases with every content change.
func (b *Buffer) Revision() uint64 {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.revision
}

// TabWidth returns the tab width in space advances.
func (b *Buffer) TabWidth() int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.tabWidth
}

// SetMetrics replaces the layout metrics. Geometry is recomputed on the
// next layout pass.
func (b *Buffer) SetMetrics(m Metrics) {
	if m == nil {
		return
	}
	b.mu.Lock()
	defer b.mu.Unlock()
	b.metrics = m
	b.stale = true
}

// TextOf returns the text covered by s, clamped to the buffer.
func (b *Buffer) TextOf(s cursor.Selection) string {
	b.mu.Lock()
	defer b.mu.Unlock()
	s = s.Clamp(len(b.text))
	return string(b.text[s.Start:s.End])
}

// Cursor and Selection

// Cursor returns the stored cursor.
func (b *Buffer) Cursor() cursor.Cursor {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.cursor
}

// SetCursor stores c, clamped to the buffer. In an empty buffer any
// position becomes Empty.
func (b *Buffer) SetCursor(c cursor.Cursor) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.cursor = b.normalizeLocked(c)
}

// Selection returns the current selection, if any. An empty range never
// counts as a selection.
func (b *Buffer) Selection() (cursor.Selection, bool) {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.sel, b.hasSel
}

// SetSelection stores s clamped to the buffer. An empty range clears the
// selection.
func (b *Buffer) SetSelection(s cursor.Selection) {
	b.mu.Lock()
	defer b.mu.Unlock()
	s = s.Clamp(len(b.text))
	b.sel, b.hasSel = s, !s.IsEmpty()
}

// ClearSelection removes the selection.
func (b *Buffer) ClearSelection() {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.sel, b.hasSel = cursor.Selection{}, false
}

// SelectAll returns the whole-document range, or false if the buffer is empty.
// It does not change the stored selection.
func (b *Buffer) SelectAll() (cursor.Selection, bool) {
	b.mu.Lock()
	defer b.mu.Unlock()
	if len(b.text) == 0 {
		return cursor.Selection{}, false
	}
	return cursor.NewSelection(0, len(b.text)), true
}

// Write Operations

// Insert inserts s at c and returns the cursor after the inserted text.
// An Empty cursor inserts at the start; an Absent cursor is a no-op.
func (b *Buffer) Insert(c cursor.Cursor, s string) cursor.Cursor {
	b.mu.Lock()
	defer b.mu.Unlock()

	off, ok := b.editOffsetLocked(c)
	if !ok {
		return c
	}
	runes := []rune(normalizeLineEndings(s))
	if len(runes) == 0 {
		return b.cursorAtLocked(off)
	}

	text := make([]rune, 0, len(b.text)+len(runes))
	text = append(text, b.text[:off]...)
	text = append(text, runes...)
	text = append(text, b.text[off:]...)
	b.replaceLocked(text)
	return b.cursorAtLocked(off + len(runes))
}

// DeleteBefore removes the grapheme cluster before c and returns the cursor
// at the deletion point. At the start of the buffer it returns c unchanged.
func (b *Buffer) DeleteBefore(c cursor.Cursor) cursor.Cursor {
	b.mu.Lock()
	defer b.mu.Unlock()

	off, ok := c.Offset()
	if !ok || off <= 0 {
		return c
	}
	off = min(off, len(b.text))
	start := b.prevStopLocked(off)
	b.deleteLocked(start, off)
	return b.cursorAtLocked(start)
}

// DeleteAfter removes the grapheme cluster after c. At the end of the
// buffer it returns c unchanged.
func (b *Buffer) DeleteAfter(c cursor.Cursor) cursor.Cursor {
	b.mu.Lock()
	defer b.mu.Unlock()

	off, ok := c.Offset()
	if !ok || off >= len(b.text) {
		return c
	}
	end := b.nextStopLocked(off)
	b.deleteLocked(off, end)
	return b.cursorAtLocked(off)
}

// DeleteRange removes the text covered by s and returns the cursor at the
// deletion point together with the removed text.
func (b *Buffer) DeleteRange(s cursor.Selection) (cursor.Cursor, string) {
	b.mu.Lock()
	defer b.mu.Unlock()

	s = s.Clamp(len(b.text))
	if s.IsEmpty() {
		return b.cursorAtLocked(s.Start), ""
	}
	removed := string(b.text[s.Start:s.End])
	b.deleteLocked(s.Start, s.End)
	return b.cursorAtLocked(s.Start), removed
}

// SetText replaces the whole content, clears the selection and moves the
// cursor to the start.
func (b *Buffer) SetText(s string) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.replaceLocked([]rune(normalizeLineEndings(s)))
	b.cursor = b.cursorAtLocked(0)
}

// Layout callbacks

// OnNextLayout queues fn to run once after the next layout pass.
// It may be called from any goroutine, including from a layout callback,
// in which case fn waits for the following pass.
func (b *Buffer) OnNextLayout(fn func()) {
	if fn == nil {
		return
	}
	b.cbMu.Lock()
	defer b.cbMu.Unlock()
	b.pending = append(b.pending, fn)
}

// PendingLayout returns the number of queued layout callbacks.
func (b *Buffer) PendingLayout() int {
	b.cbMu.Lock()
	defer b.cbMu.Unlock()
	return len(b.pending)
}

// Layout recomputes stale geometry and runs the queued layout callbacks.
// It returns the number of callbacks run.
func (b *Buffer) Layout() int {
	b.mu.Lock()
	b.layoutLocked()
	b.passes++
	b.mu.Unlock()

	b.cbMu.Lock()
	fns := b.pending
	b.pending = nil
	b.cbMu.Unlock()

	for _, fn := range fns {
		fn()
	}
	return len(fns)
}

// Passes returns how many layout passes have run.
func (b *Buffer) Passes() uint64 {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.passes
}

// internal helpers (must hold lock)

func (b *Buffer) replaceLocked(text []rune) {
	b.text = text
	b.revision++
	b.stale = true
	b.sel, b.hasSel = cursor.Selection{}, false
	b.cursor = b.normalizeLocked(b.cursor)
}

func (b *Buffer) deleteLocked(start, end int) {
	text := make([]rune, 0, len(b.text)-(end-start))
	text = append(text, b.text[:start]...)
	text = append(text, b.text[end:]...)
	b.replaceLocked(text)
}

func (b *Buffer) cursorAtLocked(off int) cursor.Cursor {
	if len(b.text) == 0 {
		return cursor.Empty()
	}
	return cursor.At(min(max(off, 0), len(b.text)))
}

func (b *Buffer) normalizeLocked(c cursor.Cursor) cursor.Cursor {
	switch c.Kind() {
	case cursor.KindPosition:
		off, _ := c.Offset()
		return b.cursorAtLocked(off)
	case cursor.KindEmpty:
		return b.cursorAtLocked(0)
	default:
		return c
	}
}

// editOffsetLocked returns where an edit at c applies.
func (b *Buffer) editOffsetLocked(c cursor.Cursor) (int, bool) {
	switch c.Kind() {
	case cursor.KindPosition:
		off, _ := c.Offset()
		return min(off, len(b.text)), true
	case cursor.KindEmpty:
		return 0, true
	default:
		return 0, false
	}
}
