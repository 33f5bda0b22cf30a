package cursor

import "fmt"

// Selection represents a half-open range of selected characters.
// Start <= End always holds; build selections with NewSelection.
// Selection is an immutable value type.
type Selection struct {
	Start int
	End   int
}

// NewSelection creates a selection between two arbitrary endpoints,
// ordering them so the smaller one becomes Start.
func NewSelection(a, b int) Selection {
	if a < 0 {
		a = 0
	}
	if b < 0 {
		b = 0
	}
	if b < a {
		a, b = b, a
	}
	return Selection{Start: a, End: b}
}

// Between creates a selection spanning two Position cursors.
// It returns false if either cursor is not a Position.
func Between(anchor, head Cursor) (Selection, bool) {
	a, ok := anchor.Offset()
	if !ok {
		return Selection{}, false
	}
	b, ok := head.Offset()
	if !ok {
		return Selection{}, false
	}
	return NewSelection(a, b), true
}

// IsEmpty returns true if the selection covers no characters.
func (s Selection) IsEmpty() bool {
	return s.Start == s.End
}

// Len returns the number of selected characters.
func (s Selection) Len() int {
	return s.End - s.Start
}

// Contains returns true if offset lies in [Start, End).
func (s Selection) Contains(offset int) bool {
	return offset >= s.Start && offset < s.End
}

// StartCursor returns a cursor at the start edge.
func (s Selection) StartCursor() Cursor {
	return At(s.Start)
}

// EndCursor returns a cursor at the end edge.
func (s Selection) EndCursor() Cursor {
	return At(s.End)
}

// Union returns the smallest selection covering both s and other.
func (s Selection) Union(other Selection) Selection {
	start, end := s.Start, s.End
	if other.Start < start {
		start = other.Start
	}
	if other.End > end {
		end = other.End
	}
	return Selection{Start: start, End: end}
}

// Clamp returns a selection clamped to [0, maxOffset].
func (s Selection) Clamp(maxOffset int) Selection {
	start, end := s.Start, s.End
	if start > maxOffset {
		start = maxOffset
	}
	if end > maxOffset {
		end = maxOffset
	}
	return NewSelection(start, end)
}

// String returns a string representation of the selection.
func (s Selection) String() string {
	return fmt.Sprintf("Selection(%d, %d)", s.Start, s.End)
}
