package backend

import (
	"strings"
	"sync"
	"time"

	"github.com/gdamore/tcell/v2"

	"github.com/dshills/caret/internal/input/key"
	"github.com/dshills/caret/internal/input/mouse"
	rcursor "github.com/dshills/caret/internal/renderer/cursor"
	"github.com/dshills/caret/internal/renderer/style"
)

// Terminal implements Backend using tcell.
type Terminal struct {
	screen tcell.Screen
	mu     sync.Mutex

	// Owned by the PollEvent goroutine.
	mouse   mouseTracker
	pasting bool
	paste   strings.Builder
}

// NewTerminal creates a backend on the controlling terminal.
func NewTerminal() (*Terminal, error) {
	screen, err := tcell.NewScreen()
	if err != nil {
		return nil, err
	}
	return NewTerminalWithScreen(screen), nil
}

// NewTerminalWithScreen creates a backend on an existing screen, such as
// tcell's simulation screen.
func NewTerminalWithScreen(screen tcell.Screen) *Terminal {
	return &Terminal{screen: screen}
}

func (t *Terminal) Init() error {
	t.mu.Lock()
	defer t.mu.Unlock()

	if err := t.screen.Init(); err != nil {
		return err
	}
	t.screen.EnableMouse()
	t.screen.EnablePaste()
	t.screen.EnableFocus()
	return nil
}

func (t *Terminal) Shutdown() {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.screen.Fini()
}

func (t *Terminal) Size() (int, int) {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.screen.Size()
}

func (t *Terminal) SetCell(x, y int, c Cell) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.screen.SetContent(x, y, c.Rune, nil, convertStyle(c.Style))
}

func (t *Terminal) Clear() {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.screen.Clear()
}

func (t *Terminal) Show() {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.screen.Show()
}

func (t *Terminal) ShowCursor(x, y int) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.screen.ShowCursor(x, y)
}

func (t *Terminal) HideCursor() {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.screen.HideCursor()
}

// SetCursorStyle sets a steady cursor shape. Blinking is driven by the
// editor, not the terminal.
func (t *Terminal) SetCursorStyle(s rcursor.Style) {
	t.mu.Lock()
	defer t.mu.Unlock()

	cs := tcell.CursorStyleSteadyBar
	switch s {
	case rcursor.StyleBlock:
		cs = tcell.CursorStyleSteadyBlock
	case rcursor.StyleUnderline:
		cs = tcell.CursorStyleSteadyUnderline
	}
	t.screen.SetCursorStyle(cs)
}

// PollEvent blocks for the next event. Bracketed pastes are collected and
// reported as a single EventPaste.
func (t *Terminal) PollEvent() Event {
	for {
		ev := t.screen.PollEvent()
		if ev == nil {
			return Event{Type: EventNone}
		}
		if out, ok := t.convertEvent(ev); ok {
			return out
		}
	}
}

func (t *Terminal) PostInterrupt(data any) {
	_ = t.screen.PostEvent(tcell.NewEventInterrupt(data)) // best-effort; queue may be full
}

func (t *Terminal) Beep() {
	t.mu.Lock()
	defer t.mu.Unlock()
	_ = t.screen.Beep() // best-effort; terminal may not support beep
}

func (t *Terminal) convertEvent(ev tcell.Event) (Event, bool) {
	switch e := ev.(type) {
	case *tcell.EventKey:
		kev := convertKey(e)
		if t.pasting {
			t.collectPaste(kev)
			return Event{}, false
		}
		if kev.Key == key.KeyNone {
			return Event{}, false
		}
		return Event{Type: EventKey, Key: kev}, true

	case *tcell.EventMouse:
		x, y := e.Position()
		return t.mouse.convert(x, y, e.Buttons(), convertMod(e.Modifiers()), e.When())

	case *tcell.EventResize:
		w, h := e.Size()
		return Event{Type: EventResize, Width: w, Height: h}, true

	case *tcell.EventPaste:
		if e.Start() {
			t.pasting = true
			t.paste.Reset()
			return Event{}, false
		}
		t.pasting = false
		return Event{Type: EventPaste, Text: t.paste.String()}, true

	case *tcell.EventFocus:
		return Event{Type: EventFocus, Focused: e.Focused}, true

	case *tcell.EventInterrupt:
		return Event{Type: EventInterrupt, Data: e.Data()}, true
	}
	return Event{}, false
}

func (t *Terminal) collectPaste(ev key.Event) {
	switch ev.Key {
	case key.KeyRune:
		t.paste.WriteRune(ev.Rune)
	case key.KeyEnter:
		t.paste.WriteByte('\n')
	case key.KeyTab:
		t.paste.WriteByte('\t')
	}
}

// mouseTracker infers press, drag and release from tcell's button state,
// which only reports which buttons are currently down.
type mouseTracker struct {
	held  mouse.Button
	lastX int
	lastY int
}

func (m *mouseTracker) convert(x, y int, buttons tcell.ButtonMask, mods key.Modifier, when time.Time) (Event, bool) {
	if dx, dy := wheelDelta(buttons); dx != 0 || dy != 0 {
		return Event{Type: EventWheel, WheelX: dx, WheelY: dy}, true
	}

	ev := mouse.Event{
		Position:  mouse.Point{X: float32(x), Y: float32(y)},
		Modifiers: mods,
		Timestamp: when,
	}
	btn := convertMouseButton(buttons)
	moved := x != m.lastX || y != m.lastY
	m.lastX, m.lastY = x, y

	switch {
	case m.held == mouse.ButtonNone && btn != mouse.ButtonNone:
		m.held = btn
		ev.Button, ev.Action = btn, mouse.ActionPress
	case m.held != mouse.ButtonNone && btn == mouse.ButtonNone:
		ev.Button, ev.Action = m.held, mouse.ActionRelease
		m.held = mouse.ButtonNone
	case m.held != mouse.ButtonNone:
		if !moved {
			return Event{}, false
		}
		ev.Button, ev.Action = m.held, mouse.ActionDrag
	default:
		if !moved {
			return Event{}, false
		}
		ev.Action = mouse.ActionMove
	}
	return Event{Type: EventMouse, Mouse: ev}, true
}

func wheelDelta(b tcell.ButtonMask) (dx, dy int) {
	if b&tcell.WheelUp != 0 {
		dy--
	}
	if b&tcell.WheelDown != 0 {
		dy++
	}
	if b&tcell.WheelLeft != 0 {
		dx--
	}
	if b&tcell.WheelRight != 0 {
		dx++
	}
	return dx, dy
}

func convertMouseButton(b tcell.ButtonMask) mouse.Button {
	switch {
	case b&tcell.Button1 != 0:
		return mouse.ButtonLeft
	case b&tcell.Button3 != 0:
		return mouse.ButtonMiddle
	case b&tcell.Button2 != 0:
		return mouse.ButtonRight
	default:
		return mouse.ButtonNone
	}
}

// convertKey maps a tcell key event. Control letters become runes with
// ModCtrl so shortcuts can be matched uniformly.
func convertKey(e *tcell.EventKey) key.Event {
	ev := key.Event{Modifiers: convertMod(e.Modifiers()), Timestamp: e.When()}

	switch k := e.Key(); k {
	case tcell.KeyRune:
		ev.Key, ev.Rune = key.KeyRune, e.Rune()
	case tcell.KeyEscape:
		ev.Key = key.KeyEscape
	case tcell.KeyEnter:
		ev.Key = key.KeyEnter
	case tcell.KeyTab:
		ev.Key = key.KeyTab
	case tcell.KeyBackspace, tcell.KeyBackspace2:
		ev.Key = key.KeyBackspace
	case tcell.KeyDelete:
		ev.Key = key.KeyDelete
	case tcell.KeyHome:
		ev.Key = key.KeyHome
	case tcell.KeyEnd:
		ev.Key = key.KeyEnd
	case tcell.KeyPgUp:
		ev.Key = key.KeyPageUp
	case tcell.KeyPgDn:
		ev.Key = key.KeyPageDown
	case tcell.KeyUp:
		ev.Key = key.KeyUp
	case tcell.KeyDown:
		ev.Key = key.KeyDown
	case tcell.KeyLeft:
		ev.Key = key.KeyLeft
	case tcell.KeyRight:
		ev.Key = key.KeyRight
	default:
		if k >= tcell.KeyCtrlA && k <= tcell.KeyCtrlZ {
			ev.Key = key.KeyRune
			ev.Rune = rune('a' + (k - tcell.KeyCtrlA))
			ev.Modifiers |= key.ModCtrl
		}
	}
	return ev
}

func convertMod(m tcell.ModMask) key.Modifier {
	var result key.Modifier
	if m&tcell.ModShift != 0 {
		result |= key.ModShift
	}
	if m&tcell.ModCtrl != 0 {
		result |= key.ModCtrl
	}
	if m&tcell.ModAlt != 0 {
		result |= key.ModAlt
	}
	if m&tcell.ModMeta != 0 {
		result |= key.ModMeta
	}
	return result
}

func convertStyle(s style.Style) tcell.Style {
	ts := tcell.StyleDefault
	if !s.Foreground.IsDefault() {
		ts = ts.Foreground(convertColor(s.Foreground))
	}
	if !s.Background.IsDefault() {
		ts = ts.Background(convertColor(s.Background))
	}
	if s.Attributes.Has(style.AttrBold) {
		ts = ts.Bold(true)
	}
	if s.Attributes.Has(style.AttrDim) {
		ts = ts.Dim(true)
	}
	if s.Attributes.Has(style.AttrUnderline) {
		ts = ts.Underline(true)
	}
	if s.Attributes.Has(style.AttrReverse) {
		ts = ts.Reverse(true)
	}
	return ts
}

func convertColor(c style.Color) tcell.Color {
	return tcell.NewRGBColor(int32(c.R), int32(c.G), int32(c.B))
}
