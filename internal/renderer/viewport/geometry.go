package viewport

import "fmt"

// Vec is a 2D offset in layout units.
type Vec struct {
	X, Y float32
}

// Add returns v + o.
func (v Vec) Add(o Vec) Vec {
	return Vec{X: v.X + o.X, Y: v.Y + o.Y}
}

// Rect is an axis-aligned box in layout units.
type Rect struct {
	Left, Right, Top, Bottom float32
}

// Translate returns r moved by d.
func (r Rect) Translate(d Vec) Rect {
	return Rect{
		Left:   r.Left + d.X,
		Right:  r.Right + d.X,
		Top:    r.Top + d.Y,
		Bottom: r.Bottom + d.Y,
	}
}

// Width returns the horizontal extent.
func (r Rect) Width() float32 { return r.Right - r.Left }

// Height returns the vertical extent.
func (r Rect) Height() float32 { return r.Bottom - r.Top }

// String returns a debug representation.
func (r Rect) String() string {
	return fmt.Sprintf("[%g,%g]x[%g,%g]", r.Left, r.Right, r.Top, r.Bottom)
}

// Frame describes the visible window onto the content.
type Frame struct {
	// Origin is the window's position in layout space.
	Origin Vec
	// ContentOffset is the content's offset inside the window (padding).
	ContentOffset Vec
	// Width and Height are the visible size.
	Width, Height float32
}

// Local converts r from layout space into window-content space.
func (f Frame) Local(r Rect) Rect {
	o := f.Origin.Add(f.ContentOffset)
	return r.Translate(Vec{X: -o.X, Y: -o.Y})
}

// Axis identifies a scroll direction.
type Axis uint8

const (
	// Horizontal is the x axis.
	Horizontal Axis = iota
	// Vertical is the y axis.
	Vertical
)

// String returns the axis name.
func (a Axis) String() string {
	if a == Vertical {
		return "vertical"
	}
	return "horizontal"
}
