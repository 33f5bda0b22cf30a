package buffer

import (
	"unicode"
	"unicode/utf8"

	"golang.org/x/image/font"
	"golang.org/x/image/math/fixed"
	"golang.org/x/text/width"
)

// Metrics measures grapheme clusters for layout.
type Metrics interface {
	// Advance is the horizontal size of a grapheme cluster.
	Advance(cluster string) float32
	// LineHeight is the vertical distance between baselines.
	LineHeight() float32
}

// CellMetrics lays text out on a terminal grid. One unit is one cell.
// East Asian wide and fullwidth characters take two cells.
type CellMetrics struct{}

// Advance implements Metrics.
func (CellMetrics) Advance(cluster string) float32 {
	r, _ := utf8.DecodeRuneInString(cluster)
	switch width.LookupRune(r).Kind() {
	case width.EastAsianWide, width.EastAsianFullwidth:
		return 2
	}
	return 1
}

// LineHeight implements Metrics.
func (CellMetrics) LineHeight() float32 {
	return 1
}

// FaceMetrics lays text out in pixels using a font face's advances.
type FaceMetrics struct {
	Face font.Face
}

// Advance implements Metrics. Runes the face lacks measure as U+FFFD.
func (m FaceMetrics) Advance(cluster string) float32 {
	r, _ := utf8.DecodeRuneInString(cluster)
	adv, ok := m.Face.GlyphAdvance(r)
	if !ok {
		adv, _ = m.Face.GlyphAdvance(unicode.ReplacementChar)
	}
	return fixedToFloat(adv)
}

// LineHeight implements Metrics.
func (m FaceMetrics) LineHeight() float32 {
	return fixedToFloat(m.Face.Metrics().Height)
}

func fixedToFloat(v fixed.Int26_6) float32 {
	return float32(v) / 64
}
