package style

import "fmt"

// DefaultSpacing is the theme's spacing constant, in layout units.
const DefaultSpacing = 8

// Layer is a style layer. Higher layers are applied last.
type Layer uint8

const (
	LayerBase Layer = iota
	LayerSelection
	LayerCursor
	LayerCount
)

// String returns the layer name.
func (l Layer) String() string {
	switch l {
	case LayerBase:
		return "base"
	case LayerSelection:
		return "selection"
	case LayerCursor:
		return "cursor"
	default:
		return "unknown"
	}
}

// Theme is the demo's visual configuration.
type Theme struct {
	// Spacing is the margin kept between the cursor and the window edge.
	Spacing float32

	Text      Style
	Selection Style
	Cursor    Style
	Gutter    Style
}

// DefaultTheme returns the built-in theme.
func DefaultTheme() Theme {
	sel := MustHex("#264f78")
	return Theme{
		Spacing:   DefaultSpacing,
		Text:      DefaultStyle(),
		Selection: DefaultStyle().WithBackground(sel),
		Cursor:    DefaultStyle().WithBackground(MustHex("#e0e0e0")).WithForeground(MustHex("#1e1e1e")),
		Gutter:    Style{Foreground: MustHex("#858585"), Background: ColorDefault},
	}
}

// Colors holds hex overrides for a theme. Empty fields keep the default.
type Colors struct {
	Cursor     string
	Selection  string
	Foreground string
	Background string
}

// NewTheme builds a theme from spacing and hex colours.
func NewTheme(spacing float32, c Colors) (Theme, error) {
	t := DefaultTheme()
	if spacing >= 0 {
		t.Spacing = spacing
	}

	parse := func(name, hex string, apply func(Color)) error {
		if hex == "" {
			return nil
		}
		col, err := ColorFromHex(hex)
		if err != nil {
			return fmt.Errorf("theme %s: %w", name, err)
		}
		apply(col)
		return nil
	}

	if err := parse("foreground", c.Foreground, func(col Color) { t.Text.Foreground = col }); err != nil {
		return Theme{}, err
	}
	if err := parse("background", c.Background, func(col Color) { t.Text.Background = col }); err != nil {
		return Theme{}, err
	}
	if err := parse("selection", c.Selection, func(col Color) {
		t.Selection = DefaultStyle().WithBackground(col)
		if col.Luminance() > 0.6 {
			t.Selection.Foreground = col.Darken(0.8)
		}
	}); err != nil {
		return Theme{}, err
	}
	if err := parse("cursor", c.Cursor, func(col Color) {
		fg := col.Darken(0.85)
		if col.Luminance() < 0.4 {
			fg = col.Lighten(0.85)
		}
		t.Cursor = Style{Foreground: fg, Background: col}
	}); err != nil {
		return Theme{}, err
	}
	t.Gutter.Background = t.Text.Background
	return t, nil
}

// Resolve returns the style of a cell given the layers that cover it.
func (t Theme) Resolve(selected, cursor bool) Style {
	s := t.Text
	if selected {
		s = s.Merge(t.Selection)
	}
	if cursor {
		s = s.Merge(t.Cursor)
	}
	return s
}
