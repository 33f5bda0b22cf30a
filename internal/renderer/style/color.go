package style

import (
	"fmt"

	"github.com/lucasb-eyer/go-colorful"
)

// Color is a true colour or the terminal's default colour.
type Color struct {
	R, G, B uint8
	// Default indicates the terminal's default colour.
	Default bool
}

// ColorDefault represents the terminal's default colour.
var ColorDefault = Color{Default: true}

// ColorFromRGB creates a true colour from RGB components.
func ColorFromRGB(r, g, b uint8) Color {
	return Color{R: r, G: g, B: b}
}

// ColorFromHex parses "#rrggbb" or "#rgb". An empty string is the
// default colour.
func ColorFromHex(hex string) (Color, error) {
	if hex == "" {
		return ColorDefault, nil
	}
	c, err := colorful.Hex(expandShortHex(hex))
	if err != nil {
		return Color{}, fmt.Errorf("invalid hex color %q: %w", hex, err)
	}
	return fromColorful(c), nil
}

// MustHex is like ColorFromHex but panics on error. For constants.
func MustHex(hex string) Color {
	c, err := ColorFromHex(hex)
	if err != nil {
		panic(err)
	}
	return c
}

func expandShortHex(hex string) string {
	if len(hex) != 4 || hex[0] != '#' {
		return hex
	}
	return string([]byte{'#', hex[1], hex[1], hex[2], hex[2], hex[3], hex[3]})
}

// IsDefault returns true if this is the default colour.
func (c Color) IsDefault() bool {
	return c.Default
}

// String returns "#RRGGBB" or "default".
func (c Color) String() string {
	if c.Default {
		return "default"
	}
	return fmt.Sprintf("#%02X%02X%02X", c.R, c.G, c.B)
}

// Blend mixes c towards other by amount in [0, 1], in Lab space so the
// midpoint looks even. Blending with the default colour returns whichever
// side amount is nearer.
func (c Color) Blend(other Color, amount float64) Color {
	if c.Default || other.Default {
		if amount < 0.5 {
			return c
		}
		return other
	}
	return fromColorful(c.colorful().BlendLab(other.colorful(), amount).Clamped())
}

// Lighten moves c towards white by amount.
func (c Color) Lighten(amount float64) Color {
	return c.Blend(Color{R: 255, G: 255, B: 255}, amount)
}

// Darken moves c towards black by amount.
func (c Color) Darken(amount float64) Color {
	return c.Blend(Color{}, amount)
}

// Luminance returns the perceived lightness in [0, 1].
func (c Color) Luminance() float64 {
	if c.Default {
		return 0
	}
	l, _, _ := c.colorful().Lab()
	return l
}

func (c Color) colorful() colorful.Color {
	return colorful.Color{R: float64(c.R) / 255, G: float64(c.G) / 255, B: float64(c.B) / 255}
}

func fromColorful(c colorful.Color) Color {
	r, g, b := c.RGB255()
	return Color{R: r, G: g, B: b}
}
