package buffer

import (
	"sort"

	"github.com/rivo/uniseg"

	"github.com/dshills/caret/internal/engine/cursor"
	"github.com/dshills/caret/internal/input/mouse"
	"github.com/dshills/caret/internal/renderer/viewport"
)

// lineLayout is the geometry of one line.
type lineLayout struct {
	// start and end are rune offsets; end excludes the newline.
	start, end int
	// stops are grapheme cluster boundaries, including start and end.
	stops []int
	// xs are the horizontal positions of stops.
	xs  []float32
	top float32
}

// layoutLocked rebuilds line geometry if stale (must hold lock).
func (b *Buffer) layoutLocked() {
	if !b.stale {
		return
	}
	lh := b.lineHeightLocked()
	b.lines = b.lines[:0]
	b.width = 0

	start := 0
	for i := 0; i <= len(b.text); i++ {
		if i < len(b.text) && b.text[i] != '\n' {
			continue
		}
		ll := b.layoutLine(start, i, float32(len(b.lines))*lh)
		b.lines = append(b.lines, ll)
		b.width = max(b.width, ll.xs[len(ll.xs)-1])
		start = i + 1
	}
	b.stale = false
}

func (b *Buffer) layoutLine(start, end int, top float32) lineLayout {
	ll := lineLayout{
		start: start,
		end:   end,
		stops: []int{start},
		xs:    []float32{0},
		top:   top,
	}
	if start == end {
		return ll
	}

	var x float32
	off := start
	g := uniseg.NewGraphemes(string(b.text[start:end]))
	for g.Next() {
		cluster := g.Str()
		if cluster == "\t" {
			x += float32(b.tabWidth) * b.metrics.Advance(" ")
		} else {
			x += b.metrics.Advance(cluster)
		}
		off += len(g.Runes())
		ll.stops = append(ll.stops, off)
		ll.xs = append(ll.xs, x)
	}
	return ll
}

func (b *Buffer) lineHeightLocked() float32 {
	if lh := b.metrics.LineHeight(); lh > 0 {
		return lh
	}
	return 1
}

// lineIndexLocked returns the line containing off (must hold lock, layout fresh).
func (b *Buffer) lineIndexLocked(off int) int {
	i := sort.Search(len(b.lines), func(i int) bool {
		return b.lines[i].end >= off
	})
	if i >= len(b.lines) {
		i = len(b.lines) - 1
	}
	return i
}

// stopIndex returns the last stop at or before off.
func (ll lineLayout) stopIndex(off int) int {
	i := sort.SearchInts(ll.stops, off)
	if i < len(ll.stops) && ll.stops[i] == off {
		return i
	}
	return max(i-1, 0)
}

// nearestStop returns the boundary closest to x.
func (ll lineLayout) nearestStop(x float32) int {
	for i := 1; i < len(ll.stops); i++ {
		if x < (ll.xs[i-1]+ll.xs[i])/2 {
			return ll.stops[i-1]
		}
	}
	return ll.stops[len(ll.stops)-1]
}

// glyphStop returns the boundary starting the cluster under x, or the line
// end when x lies past the last cluster.
func (ll lineLayout) glyphStop(x float32) int {
	for i := 1; i < len(ll.stops); i++ {
		if x < ll.xs[i] {
			return ll.stops[i-1]
		}
	}
	return ll.stops[len(ll.stops)-1]
}

func (ll lineLayout) xAt(off int) float32 {
	return ll.xs[ll.stopIndex(off)]
}

// prevStopLocked returns the boundary before off, crossing newlines.
func (b *Buffer) prevStopLocked(off int) int {
	b.layoutLocked()
	ll := b.lines[b.lineIndexLocked(off)]
	if off <= ll.start {
		return max(off-1, 0)
	}
	i := ll.stopIndex(off)
	if ll.stops[i] == off {
		return ll.stops[i-1]
	}
	return ll.stops[i]
}

// nextStopLocked returns the boundary after off, crossing newlines.
func (b *Buffer) nextStopLocked(off int) int {
	b.layoutLocked()
	ll := b.lines[b.lineIndexLocked(off)]
	if off >= ll.end {
		return min(off+1, len(b.text))
	}
	return ll.stops[ll.stopIndex(off)+1]
}

// positionLocked extracts a Position offset clamped to the buffer.
func (b *Buffer) positionLocked(c cursor.Cursor) (int, bool) {
	off, ok := c.Offset()
	if !ok {
		return 0, false
	}
	return min(off, len(b.text)), true
}

// Geometry queries

// Resolve maps a point in content coordinates to a cursor at the nearest
// cluster boundary. Points left of or above the content resolve to Absent;
// points below the last line snap to it. An empty buffer resolves to Empty.
func (b *Buffer) Resolve(p mouse.Point) cursor.Cursor {
	return b.resolve(p, lineLayout.nearestStop)
}

// HitTest maps a point to a cursor before the cluster under it, the
// position word and line gestures select around. Edge cases match Resolve.
func (b *Buffer) HitTest(p mouse.Point) cursor.Cursor {
	return b.resolve(p, lineLayout.glyphStop)
}

func (b *Buffer) resolve(p mouse.Point, pick func(lineLayout, float32) int) cursor.Cursor {
	if p.X != p.X || p.Y != p.Y || p.X < 0 || p.Y < 0 {
		return cursor.Absent()
	}

	b.mu.Lock()
	defer b.mu.Unlock()

	if len(b.text) == 0 {
		return cursor.Empty()
	}
	b.layoutLocked()
	last := len(b.lines) - 1
	li := last
	if row := p.Y / b.lineHeightLocked(); row < float32(last) {
		li = int(row)
	}
	return cursor.At(pick(b.lines[li], p.X))
}

// Bounds returns the cursor box for c in content coordinates. The box spans
// the cluster at c, or one space advance at the end of a line.
func (b *Buffer) Bounds(c cursor.Cursor) (viewport.Rect, bool) {
	b.mu.Lock()
	defer b.mu.Unlock()

	var off int
	switch c.Kind() {
	case cursor.KindPosition:
		off, _ = b.positionLocked(c)
	case cursor.KindEmpty:
		off = 0
	default:
		return viewport.Rect{}, false
	}

	b.layoutLocked()
	ll := b.lines[b.lineIndexLocked(off)]
	i := ll.stopIndex(off)
	x := ll.xs[i]
	w := b.metrics.Advance(" ")
	if i+1 < len(ll.xs) {
		w = ll.xs[i+1] - x
	}
	return viewport.Rect{
		Left:   x,
		Right:  x + w,
		Top:    ll.top,
		Bottom: ll.top + b.lineHeightLocked(),
	}, true
}

// Extent returns the laid-out content size.
func (b *Buffer) Extent() (width, height float32) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.layoutLocked()
	return b.width, float32(len(b.lines)) * b.lineHeightLocked()
}

// LineCount returns the number of lines. An empty buffer has one line.
func (b *Buffer) LineCount() int {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.layoutLocked()
	return len(b.lines)
}

// LineText returns the text of a line without its newline.
func (b *Buffer) LineText(line int) string {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.layoutLocked()
	if line < 0 || line >= len(b.lines) {
		return ""
	}
	ll := b.lines[line]
	return string(b.text[ll.start:ll.end])
}

// Glyph is one laid-out grapheme cluster.
type Glyph struct {
	// Offset is the cluster's first rune offset.
	Offset int
	// X and Advance are the cluster's horizontal position and size.
	X       float32
	Advance float32
	Text    string
}

// LineGlyphs returns the clusters of a line in order. Out-of-range lines
// have none.
func (b *Buffer) LineGlyphs(line int) []Glyph {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.layoutLocked()
	if line < 0 || line >= len(b.lines) {
		return nil
	}
	ll := b.lines[line]
	glyphs := make([]Glyph, 0, len(ll.stops)-1)
	for i := 0; i+1 < len(ll.stops); i++ {
		glyphs = append(glyphs, Glyph{
			Offset:  ll.stops[i],
			X:       ll.xs[i],
			Advance: ll.xs[i+1] - ll.xs[i],
			Text:    string(b.text[ll.stops[i]:ll.stops[i+1]]),
		})
	}
	return glyphs
}

// OffsetToPoint converts a rune offset to line/column.
func (b *Buffer) OffsetToPoint(off int) Point {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.layoutLocked()
	off = min(max(off, 0), len(b.text))
	li := b.lineIndexLocked(off)
	return Point{Line: li, Column: off - b.lines[li].start}
}

// PointToOffset converts line/column to a rune offset, clamping both.
func (b *Buffer) PointToOffset(p Point) int {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.layoutLocked()
	li := min(max(p.Line, 0), len(b.lines)-1)
	ll := b.lines[li]
	return ll.start + min(max(p.Column, 0), ll.end-ll.start)
}

// Navigation. Each returns Absent at a document boundary or for a
// non-Position input.

// Next returns the cursor one grapheme cluster forward.
func (b *Buffer) Next(c cursor.Cursor) cursor.Cursor {
	b.mu.Lock()
	defer b.mu.Unlock()
	off, ok := b.positionLocked(c)
	if !ok || off >= len(b.text) {
		return cursor.Absent()
	}
	return cursor.At(b.nextStopLocked(off))
}

// Prev returns the cursor one grapheme cluster back.
func (b *Buffer) Prev(c cursor.Cursor) cursor.Cursor {
	b.mu.Lock()
	defer b.mu.Unlock()
	off, ok := b.positionLocked(c)
	if !ok || off <= 0 {
		return cursor.Absent()
	}
	return cursor.At(b.prevStopLocked(off))
}

// Up returns the cursor on the previous line nearest the same x position.
func (b *Buffer) Up(c cursor.Cursor) cursor.Cursor {
	return b.vertical(c, -1)
}

// Down returns the cursor on the next line nearest the same x position.
func (b *Buffer) Down(c cursor.Cursor) cursor.Cursor {
	return b.vertical(c, 1)
}

func (b *Buffer) vertical(c cursor.Cursor, dir int) cursor.Cursor {
	b.mu.Lock()
	defer b.mu.Unlock()
	off, ok := b.positionLocked(c)
	if !ok {
		return cursor.Absent()
	}
	b.layoutLocked()
	li := b.lineIndexLocked(off)
	target := li + dir
	if target < 0 || target >= len(b.lines) {
		return cursor.Absent()
	}
	x := b.lines[li].xAt(off)
	return cursor.At(b.lines[target].nearestStop(x))
}

// LineStart returns the cursor at the start of c's line.
func (b *Buffer) LineStart(c cursor.Cursor) cursor.Cursor {
	b.mu.Lock()
	defer b.mu.Unlock()
	off, ok := b.positionLocked(c)
	if !ok {
		return cursor.Absent()
	}
	b.layoutLocked()
	return cursor.At(b.lines[b.lineIndexLocked(off)].start)
}

// LineEnd returns the cursor at the end of c's line, before the newline.
func (b *Buffer) LineEnd(c cursor.Cursor) cursor.Cursor {
	b.mu.Lock()
	defer b.mu.Unlock()
	off, ok := b.positionLocked(c)
	if !ok {
		return cursor.Absent()
	}
	b.layoutLocked()
	return cursor.At(b.lines[b.lineIndexLocked(off)].end)
}
