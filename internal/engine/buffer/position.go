package buffer

import "fmt"

// Point is a line and column position (0-indexed, column in runes).
type Point struct {
	Line   int
	Column int
}

// String returns a 1-indexed representation.
func (p Point) String() string {
	return fmt.Sprintf("%d:%d", p.Line+1, p.Column+1)
}

// Compare returns -1, 0 or 1.
func (p Point) Compare(other Point) int {
	switch {
	case p.Line < other.Line:
		return -1
	case p.Line > other.Line:
		return 1
	case p.Column < other.Column:
		return -1
	case p.Column > other.Column:
		return 1
	default:
		return 0
	}
}
