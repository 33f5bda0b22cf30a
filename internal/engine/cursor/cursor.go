package cursor

import "fmt"

// Kind tags the variant held by a Cursor.
type Kind uint8

const (
	// KindAbsent means there is no buffer focus.
	KindAbsent Kind = iota
	// KindEmpty means the buffer has no valid position.
	KindEmpty
	// KindPosition means the cursor addresses a character offset.
	KindPosition
)

// String returns the kind name.
func (k Kind) String() string {
	switch k {
	case KindEmpty:
		return "empty"
	case KindPosition:
		return "position"
	default:
		return "absent"
	}
}

// Cursor represents an insertion point in a text buffer.
// The zero value is Absent.
// Cursor is an immutable value type.
type Cursor struct {
	kind   Kind
	offset int
}

// Absent returns a cursor with no buffer focus.
func Absent() Cursor {
	return Cursor{kind: KindAbsent}
}

// Empty returns a cursor for a buffer without a valid position.
func Empty() Cursor {
	return Cursor{kind: KindEmpty}
}

// At returns a cursor at the given character offset.
// Negative offsets clamp to 0.
func At(offset int) Cursor {
	if offset < 0 {
		offset = 0
	}
	return Cursor{kind: KindPosition, offset: offset}
}

// Kind returns the cursor variant.
func (c Cursor) Kind() Kind {
	return c.kind
}

// IsPosition returns true if the cursor addresses a character offset.
func (c Cursor) IsPosition() bool {
	return c.kind == KindPosition
}

// Offset returns the character offset and true for a Position cursor.
// For Absent and Empty cursors it returns 0, false.
func (c Cursor) Offset() (int, bool) {
	if c.kind != KindPosition {
		return 0, false
	}
	return c.offset, true
}

// Clamp returns a Position cursor clamped to [0, maxOffset].
// Non-position cursors are returned unchanged.
func (c Cursor) Clamp(maxOffset int) Cursor {
	if c.kind != KindPosition {
		return c
	}
	if c.offset > maxOffset {
		return At(maxOffset)
	}
	return c
}

// Equal returns true if both cursors have the same kind and offset.
func (c Cursor) Equal(other Cursor) bool {
	return c == other
}

// String returns a string representation of the cursor.
func (c Cursor) String() string {
	if c.kind == KindPosition {
		return fmt.Sprintf("Cursor(%d)", c.offset)
	}
	return fmt.Sprintf("Cursor(%s)", c.kind)
}
