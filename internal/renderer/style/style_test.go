package style

import "testing"

func TestColorFromHex(t *testing.T) {
	tests := []struct {
		in      string
		want    Color
		wantErr bool
	}{
		{"", ColorDefault, false},
		{"#ff8000", ColorFromRGB(255, 128, 0), false},
		{"#F80", ColorFromRGB(255, 136, 0), false},
		{"ff8000", Color{}, true},
		{"#zzzzzz", Color{}, true},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ColorFromHex(tt.in)
			if (err != nil) != tt.wantErr {
				t.Fatalf("err = %v, wantErr %v", err, tt.wantErr)
			}
			if !tt.wantErr && got != tt.want {
				t.Errorf("ColorFromHex(%q) = %v, want %v", tt.in, got, tt.want)
			}
		})
	}
}

func TestColorString(t *testing.T) {
	if got := ColorFromRGB(1, 171, 255).String(); got != "#01ABFF" {
		t.Errorf("String = %q", got)
	}
	if got := ColorDefault.String(); got != "default" {
		t.Errorf("String = %q", got)
	}
}

func TestBlend(t *testing.T) {
	black, white := ColorFromRGB(0, 0, 0), ColorFromRGB(255, 255, 255)
	if got := black.Blend(white, 0); got != black {
		t.Errorf("Blend(0) = %v", got)
	}
	if got := black.Blend(white, 1); got != white {
		t.Errorf("Blend(1) = %v", got)
	}
	mid := black.Blend(white, 0.5)
	if mid.R < 100 || mid.R > 140 || mid.R != mid.G || mid.G != mid.B {
		t.Errorf("Blend(0.5) = %v, want a mid grey", mid)
	}
	if got := ColorDefault.Blend(white, 0.2); got != ColorDefault {
		t.Errorf("default Blend(0.2) = %v", got)
	}
	if white.Darken(1) != black || black.Lighten(1) != white {
		t.Error("Darken/Lighten endpoints")
	}
}

func TestMerge(t *testing.T) {
	red := ColorFromRGB(255, 0, 0)
	blue := ColorFromRGB(0, 0, 255)
	base := Style{Foreground: red, Background: ColorDefault, Attributes: AttrBold}
	over := Style{Foreground: ColorDefault, Background: blue, Attributes: AttrUnderline}

	got := base.Merge(over)
	want := Style{Foreground: red, Background: blue, Attributes: AttrBold | AttrUnderline}
	if got != want {
		t.Errorf("Merge = %+v, want %+v", got, want)
	}
}

func TestNewTheme(t *testing.T) {
	th, err := NewTheme(3, Colors{Selection: "#336699", Background: "#101010", Cursor: "#ffffff"})
	if err != nil {
		t.Fatalf("NewTheme: %v", err)
	}
	if th.Spacing != 3 {
		t.Errorf("Spacing = %v", th.Spacing)
	}
	if th.Selection.Background != MustHex("#336699") {
		t.Errorf("selection = %v", th.Selection.Background)
	}
	if th.Cursor.Foreground.Luminance() > 0.3 {
		t.Errorf("cursor text on white should be dark, got %v", th.Cursor.Foreground)
	}
	if th.Gutter.Background != MustHex("#101010") {
		t.Errorf("gutter background = %v", th.Gutter.Background)
	}

	if _, err := NewTheme(8, Colors{Foreground: "red"}); err == nil {
		t.Error("expected error for non-hex colour")
	}
	if th, _ := NewTheme(-1, Colors{}); th.Spacing != DefaultSpacing {
		t.Errorf("negative spacing should keep default, got %v", th.Spacing)
	}
}

func TestResolveLayers(t *testing.T) {
	th := DefaultTheme()
	if got := th.Resolve(false, false); got != th.Text {
		t.Errorf("plain = %+v", got)
	}
	if got := th.Resolve(true, false); got.Background != th.Selection.Background {
		t.Errorf("selected background = %v", got.Background)
	}
	if got := th.Resolve(true, true); got.Background != th.Cursor.Background {
		t.Errorf("cursor should win over selection, got %v", got.Background)
	}
	if LayerCursor.String() != "cursor" || Layer(9).String() != "unknown" {
		t.Error("Layer.String")
	}
}
