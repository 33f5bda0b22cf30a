package buffer

import (
	"unicode"
	"unicode/utf8"

	"github.com/rivo/uniseg"

	"github.com/dshills/caret/internal/engine/cursor"
)

// WordRange returns the word containing c. A cursor at the end of a word
// belongs to that word when nothing follows it on the line. It returns
// false on whitespace, on an empty line and for non-Position cursors.
func (b *Buffer) WordRange(c cursor.Cursor) (cursor.Selection, bool) {
	b.mu.Lock()
	defer b.mu.Unlock()

	off, ok := b.positionLocked(c)
	if !ok {
		return cursor.Selection{}, false
	}
	b.layoutLocked()
	ll := b.lines[b.lineIndexLocked(off)]
	if ll.start == ll.end {
		return cursor.Selection{}, false
	}

	rest := string(b.text[ll.start:ll.end])
	state := -1
	pos := ll.start
	var word string
	for rest != "" {
		word, rest, state = uniseg.FirstWordInString(rest, state)
		n := utf8.RuneCountInString(word)
		start, end := pos, pos+n
		pos = end
		if off >= end && !(end == ll.end && off == end) {
			continue
		}
		if isBlank(word) {
			return cursor.Selection{}, false
		}
		return cursor.NewSelection(start, end), true
	}
	return cursor.Selection{}, false
}

// LineRange returns the line containing c without its newline. It returns
// false on an empty line and for non-Position cursors.
func (b *Buffer) LineRange(c cursor.Cursor) (cursor.Selection, bool) {
	b.mu.Lock()
	defer b.mu.Unlock()

	off, ok := b.positionLocked(c)
	if !ok {
		return cursor.Selection{}, false
	}
	b.layoutLocked()
	ll := b.lines[b.lineIndexLocked(off)]
	if ll.start == ll.end {
		return cursor.Selection{}, false
	}
	return cursor.NewSelection(ll.start, ll.end), true
}

func isBlank(s string) bool {
	for _, r := range s {
		if !unicode.IsSpace(r) {
			return false
		}
	}
	return true
}
