// Package mouse provides pointer input types and click classification for
// the editing controller.
//
// # Core Types
//
// Event represents a raw pointer event with position, button, modifiers,
// action type and timestamp:
//
//	event := mouse.Event{
//	    Position:  mouse.Point{X: 100, Y: 50},
//	    Button:    mouse.ButtonLeft,
//	    Modifiers: key.ModNone,
//	    Action:    mouse.ActionPress,
//	    Timestamp: time.Now(),
//	}
//
// # Click Classification
//
// ClickTracker turns a sequence of left-button presses into a click count
// and a selection granularity:
//
//   - Single click: positions the cursor (Shift extends the selection)
//   - Double click: selects the word under the pointer
//   - Triple click: selects the line under the pointer
//
// Presses separated by more than the double-click window (300ms by default)
// start a new sequence. A fourth rapid press wraps back to a single click
// instead of escalating further.
//
// # Thread Safety
//
// ClickTracker is not safe for concurrent use; the editor guards it with its
// own lock.
package mouse
