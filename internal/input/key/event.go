package key

import (
	"time"
	"unicode"
)

// Event represents a key press or release.
type Event struct {
	// Key identifies the key.
	Key Key

	// Rune is the character for KeyRune events.
	Rune rune

	// Modifiers contains the active modifier keys.
	Modifiers Modifier

	// Timestamp is when the event occurred.
	Timestamp time.Time
}

// NewEvent creates a key event with the current timestamp.
func NewEvent(k Key, mods Modifier) Event {
	return Event{
		Key:       k,
		Modifiers: mods,
		Timestamp: time.Now(),
	}
}

// Extend returns true if the event should extend the selection.
func (e Event) Extend() bool {
	return e.Modifiers.HasShift()
}

// String returns a representation like "Shift+Left".
func (e Event) String() string {
	name := e.Key.String()
	if e.Key == KeyRune {
		name = string(e.Rune)
	}
	if mods := e.Modifiers.String(); mods != "" {
		return mods + "+" + name
	}
	return name
}

// CharEvent is decoded character input.
// Exactly one of Rune, Backspace, Delete is meaningful; Newline marks a
// line break and is also reported as Rune '\n'.
type CharEvent struct {
	Rune      rune
	Backspace bool
	Delete    bool
	Newline   bool
}

// Char creates a character event, normalizing carriage return to newline.
func Char(r rune) CharEvent {
	if r == '\r' {
		r = '\n'
	}
	return CharEvent{Rune: r, Newline: r == '\n'}
}

// Backspace creates a backspace event.
func Backspace() CharEvent {
	return CharEvent{Backspace: true}
}

// DeleteForward creates a forward-delete event.
func DeleteForward() CharEvent {
	return CharEvent{Delete: true}
}

// Text returns the text the event inserts, or "" for deletions and
// non-printable characters.
func (c CharEvent) Text() string {
	if c.Backspace || c.Delete {
		return ""
	}
	if c.Newline || c.Rune == '\r' {
		return "\n"
	}
	if c.Rune == '\t' || unicode.IsPrint(c.Rune) {
		return string(c.Rune)
	}
	return ""
}

// FromEvent decodes a key press into character input.
// It returns false for navigation keys and shortcuts.
func FromEvent(e Event) (CharEvent, bool) {
	switch e.Key {
	case KeyBackspace:
		return Backspace(), true
	case KeyDelete:
		return DeleteForward(), true
	case KeyEnter:
		return Char('\n'), true
	case KeyTab:
		return Char('\t'), true
	case KeyRune:
		if e.Modifiers.HasCommand() || e.Rune == 0 {
			return CharEvent{}, false
		}
		return Char(e.Rune), true
	}
	return CharEvent{}, false
}
