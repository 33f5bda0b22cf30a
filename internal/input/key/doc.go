// Package key provides keyboard event types for the editing controller.
//
// This package defines the types the controller consumes from an input
// source:
//
//   - Key: identifies a keyboard key (navigation keys, editing keys, or runes)
//   - Modifier: modifier keys held during an event (Ctrl, Alt, Shift, Meta)
//   - Event: a key press or release with modifiers and timestamp
//   - CharEvent: decoded character input with backspace/newline/delete flags
//
// # Navigation keys
//
// Left, Right, Up and Down are repeatable: holding them produces a synthetic
// stream of presses (see package repeat). Home and End fire once per press.
package key
