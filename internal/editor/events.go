package editor

import "strings"

// ChangeKind is a set of things that changed during one operation.
type ChangeKind uint16

const (
	// ChangeText means the buffer content changed.
	ChangeText ChangeKind = 1 << iota
	// ChangeCursor means the cursor moved.
	ChangeCursor
	// ChangeSelection means the selection changed.
	ChangeSelection
	// ChangeClipboard means the clipboard was overwritten.
	ChangeClipboard
	// ChangeScroll means a scroll bar target was pushed.
	ChangeScroll
	// ChangeFocus means focus was gained or lost.
	ChangeFocus
	// ChangeBlink means cursor visibility toggled.
	ChangeBlink
)

var changeNames = []struct {
	kind ChangeKind
	name string
}{
	{ChangeText, "text"},
	{ChangeCursor, "cursor"},
	{ChangeSelection, "selection"},
	{ChangeClipboard, "clipboard"},
	{ChangeScroll, "scroll"},
	{ChangeFocus, "focus"},
	{ChangeBlink, "blink"},
}

// Has returns true if all kinds in k are set.
func (c ChangeKind) Has(k ChangeKind) bool {
	return c&k == k
}

// String returns the set kinds joined with "|".
func (c ChangeKind) String() string {
	if c == 0 {
		return "none"
	}
	var parts []string
	for _, n := range changeNames {
		if c&n.kind != 0 {
			parts = append(parts, n.name)
		}
	}
	return strings.Join(parts, "|")
}

// Change is a change notification.
type Change struct {
	Kinds ChangeKind
}

// publish notifies observers. Nested notifications from inside an
// observer are dropped.
func (e *Editor) publish(kinds ChangeKind) {
	if kinds == 0 {
		return
	}
	if !e.changes.Notify(Change{Kinds: kinds}) {
		e.logger.Debug("editor: nested %s notification skipped", kinds)
	}
}
