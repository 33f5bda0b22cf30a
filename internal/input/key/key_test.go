package key

import "testing"

func TestKeyString(t *testing.T) {
	tests := []struct {
		key      Key
		expected string
	}{
		{KeyNone, "None"},
		{KeyLeft, "Left"},
		{KeyRight, "Right"},
		{KeyHome, "Home"},
		{KeyEnd, "End"},
		{KeyBackspace, "Backspace"},
		{KeyRune, "Rune"},
	}

	for _, tt := range tests {
		t.Run(tt.expected, func(t *testing.T) {
			if got := tt.key.String(); got != tt.expected {
				t.Errorf("Key.String() = %q, want %q", got, tt.expected)
			}
		})
	}
}

func TestKeyRepeatable(t *testing.T) {
	repeatable := []Key{KeyLeft, KeyRight, KeyUp, KeyDown}
	single := []Key{KeyHome, KeyEnd, KeyBackspace, KeyRune, KeyNone}

	for _, k := range repeatable {
		if !k.IsRepeatable() {
			t.Errorf("%s.IsRepeatable() = false, want true", k)
		}
		if !k.IsNavigation() {
			t.Errorf("%s.IsNavigation() = false, want true", k)
		}
	}
	for _, k := range single {
		if k.IsRepeatable() {
			t.Errorf("%s.IsRepeatable() = true, want false", k)
		}
	}
	if !KeyHome.IsNavigation() || !KeyEnd.IsNavigation() {
		t.Error("Home and End should be navigation keys")
	}
}

func TestFromName(t *testing.T) {
	tests := []struct {
		name string
		want Key
	}{
		{"left", KeyLeft},
		{"Home", KeyHome},
		{"ESC", KeyEscape},
		{"nope", KeyNone},
	}
	for _, tt := range tests {
		if got := FromName(tt.name); got != tt.want {
			t.Errorf("FromName(%q) = %v, want %v", tt.name, got, tt.want)
		}
	}
}

func TestModifierString(t *testing.T) {
	tests := []struct {
		mod  Modifier
		want string
	}{
		{ModNone, ""},
		{ModShift, "Shift"},
		{ModCtrl.With(ModShift), "Ctrl+Shift"},
		{ModMeta.With(ModAlt), "Alt+Meta"},
	}
	for _, tt := range tests {
		if got := tt.mod.String(); got != tt.want {
			t.Errorf("Modifier(%d).String() = %q, want %q", tt.mod, got, tt.want)
		}
	}
}

func TestModifierHasCommand(t *testing.T) {
	if ModShift.HasCommand() {
		t.Error("Shift is not a command modifier")
	}
	if !ModCtrl.HasCommand() || !ModMeta.HasCommand() {
		t.Error("Ctrl and Meta are command modifiers")
	}
}

func TestCharNormalizesCarriageReturn(t *testing.T) {
	ev := Char('\r')
	if ev.Rune != '\n' || !ev.Newline {
		t.Errorf("Char('\\r') = %+v, want newline", ev)
	}
	if ev.Text() != "\n" {
		t.Errorf("Text() = %q, want newline", ev.Text())
	}
}

func TestCharEventText(t *testing.T) {
	tests := []struct {
		name string
		ev   CharEvent
		want string
	}{
		{"letter", Char('a'), "a"},
		{"tab", Char('\t'), "\t"},
		{"control", Char(0x07), ""},
		{"backspace", Backspace(), ""},
		{"delete", DeleteForward(), ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.ev.Text(); got != tt.want {
				t.Errorf("Text() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestFromEvent(t *testing.T) {
	tests := []struct {
		name string
		ev   Event
		want CharEvent
		ok   bool
	}{
		{"rune", Event{Key: KeyRune, Rune: 'x'}, Char('x'), true},
		{"shift rune", Event{Key: KeyRune, Rune: 'X', Modifiers: ModShift}, Char('X'), true},
		{"ctrl rune", Event{Key: KeyRune, Rune: 'c', Modifiers: ModCtrl}, CharEvent{}, false},
		{"enter", Event{Key: KeyEnter}, Char('\n'), true},
		{"backspace", Event{Key: KeyBackspace}, Backspace(), true},
		{"delete", Event{Key: KeyDelete}, DeleteForward(), true},
		{"left", Event{Key: KeyLeft}, CharEvent{}, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := FromEvent(tt.ev)
			if got != tt.want || ok != tt.ok {
				t.Errorf("FromEvent() = %+v, %v; want %+v, %v", got, ok, tt.want, tt.ok)
			}
		})
	}
}

func TestEventString(t *testing.T) {
	ev := Event{Key: KeyLeft, Modifiers: ModShift}
	if got := ev.String(); got != "Shift+Left" {
		t.Errorf("String() = %q", got)
	}
	if !ev.Extend() {
		t.Error("Shift+Left should extend")
	}
}
