// Package backend connects the editor to a display and an input source.
//
// A Backend draws styled cells and reports input as editor-level events:
// key presses, decoded characters, mouse gestures with press, drag and
// release already inferred, pastes, focus changes and resizes.
package backend

import (
	"sync"

	"github.com/dshills/caret/internal/input/key"
	"github.com/dshills/caret/internal/input/mouse"
	rcursor "github.com/dshills/caret/internal/renderer/cursor"
	"github.com/dshills/caret/internal/renderer/style"
)

// EventType identifies the kind of backend event.
type EventType uint8

const (
	EventNone EventType = iota
	EventKey
	EventMouse
	EventWheel
	EventResize
	EventPaste
	EventFocus
	// EventInterrupt is posted by PostInterrupt to wake the event loop.
	EventInterrupt
)

// String returns the event type name.
func (t EventType) String() string {
	switch t {
	case EventKey:
		return "key"
	case EventMouse:
		return "mouse"
	case EventWheel:
		return "wheel"
	case EventResize:
		return "resize"
	case EventPaste:
		return "paste"
	case EventFocus:
		return "focus"
	case EventInterrupt:
		return "interrupt"
	default:
		return "none"
	}
}

// Event is an input event.
type Event struct {
	Type EventType

	// Key is set for EventKey.
	Key key.Event

	// Mouse is set for EventMouse. Position is in cells.
	Mouse mouse.Event

	// WheelX and WheelY are scroll steps for EventWheel.
	WheelX, WheelY int

	// Width and Height are set for EventResize.
	Width, Height int

	// Text is the pasted text for EventPaste.
	Text string

	// Focused is set for EventFocus.
	Focused bool

	// Data carries the PostInterrupt payload.
	Data any
}

// Cell is one styled character cell.
type Cell struct {
	Rune  rune
	Style style.Style
}

// EmptyCell returns a blank default-styled cell.
func EmptyCell() Cell {
	return Cell{Rune: ' ', Style: style.DefaultStyle()}
}

// Backend is a display and input source.
type Backend interface {
	Init() error
	Shutdown()

	Size() (width, height int)

	SetCell(x, y int, c Cell)
	Clear()
	Show()

	ShowCursor(x, y int)
	HideCursor()
	SetCursorStyle(s rcursor.Style)

	// PollEvent blocks for the next event. It returns EventNone after
	// Shutdown.
	PollEvent() Event

	// PostInterrupt wakes PollEvent with an EventInterrupt carrying data.
	// It is safe to call from any goroutine.
	PostInterrupt(data any)

	Beep()
}

// NullBackend is an in-memory backend for tests.
type NullBackend struct {
	mu            sync.Mutex
	width, height int
	cells         [][]Cell
	cursorX       int
	cursorY       int
	cursorVisible bool
	cursorStyle   rcursor.Style
	shows         int
	beeps         int
	events        chan Event
	done          chan struct{}
	once          sync.Once
}

// NewNullBackend creates a null backend with the given dimensions.
func NewNullBackend(width, height int) *NullBackend {
	return &NullBackend{
		width:  width,
		height: height,
		events: make(chan Event, 100),
		done:   make(chan struct{}),
	}
}

func (b *NullBackend) Init() error {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.cells = make([][]Cell, b.height)
	for i := range b.cells {
		b.cells[i] = make([]Cell, b.width)
		for j := range b.cells[i] {
			b.cells[i][j] = EmptyCell()
		}
	}
	return nil
}

func (b *NullBackend) Shutdown() {
	b.once.Do(func() { close(b.done) })
}

func (b *NullBackend) Size() (int, int) {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.width, b.height
}

func (b *NullBackend) SetCell(x, y int, c Cell) {
	b.mu.Lock()
	defer b.mu.Unlock()
	if x >= 0 && x < b.width && y >= 0 && y < len(b.cells) {
		b.cells[y][x] = c
	}
}

// Cell returns the cell at x, y.
func (b *NullBackend) Cell(x, y int) Cell {
	b.mu.Lock()
	defer b.mu.Unlock()
	if x >= 0 && x < b.width && y >= 0 && y < len(b.cells) {
		return b.cells[y][x]
	}
	return EmptyCell()
}

// Line returns row y as a string with trailing blanks removed.
func (b *NullBackend) Line(y int) string {
	b.mu.Lock()
	defer b.mu.Unlock()
	if y < 0 || y >= len(b.cells) {
		return ""
	}
	rs := make([]rune, 0, b.width)
	for _, c := range b.cells[y] {
		rs = append(rs, c.Rune)
	}
	end := len(rs)
	for end > 0 && rs[end-1] == ' ' {
		end--
	}
	return string(rs[:end])
}

func (b *NullBackend) Clear() {
	b.mu.Lock()
	defer b.mu.Unlock()
	for y := range b.cells {
		for x := range b.cells[y] {
			b.cells[y][x] = EmptyCell()
		}
	}
}

func (b *NullBackend) Show() {
	b.mu.Lock()
	b.shows++
	b.mu.Unlock()
}

// Shows returns how many frames were presented.
func (b *NullBackend) Shows() int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.shows
}

func (b *NullBackend) ShowCursor(x, y int) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.cursorX, b.cursorY = x, y
	b.cursorVisible = true
}

func (b *NullBackend) HideCursor() {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.cursorVisible = false
}

func (b *NullBackend) SetCursorStyle(s rcursor.Style) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.cursorStyle = s
}

// CursorPosition returns the terminal cursor position.
func (b *NullBackend) CursorPosition() (x, y int, visible bool) {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.cursorX, b.cursorY, b.cursorVisible
}

// CursorStyle returns the last cursor style set.
func (b *NullBackend) CursorStyle() rcursor.Style {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.cursorStyle
}

func (b *NullBackend) PollEvent() Event {
	select {
	case ev := <-b.events:
		return ev
	case <-b.done:
		return Event{Type: EventNone}
	}
}

// Inject queues an input event. Events are dropped when the queue is full.
func (b *NullBackend) Inject(ev Event) {
	if ev.Type == EventResize {
		b.mu.Lock()
		b.width, b.height = ev.Width, ev.Height
		b.mu.Unlock()
		_ = b.Init()
	}
	select {
	case b.events <- ev:
	default:
	}
}

func (b *NullBackend) PostInterrupt(data any) {
	b.Inject(Event{Type: EventInterrupt, Data: data})
}

func (b *NullBackend) Beep() {
	b.mu.Lock()
	b.beeps++
	b.mu.Unlock()
}

// Beeps returns how many times Beep was called.
func (b *NullBackend) Beeps() int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.beeps
}
