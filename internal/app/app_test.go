package app

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"

	"github.com/dshills/caret/internal/config"
	"github.com/dshills/caret/internal/engine/cursor"
	"github.com/dshills/caret/internal/input/key"
	"github.com/dshills/caret/internal/input/mouse"
	rcursor "github.com/dshills/caret/internal/renderer/cursor"
	"github.com/dshills/caret/internal/renderer/backend"
	"github.com/dshills/caret/internal/sched"
)

func newTestApp(t *testing.T, opts Options, width, height int) (*Application, *backend.NullBackend) {
	t.Helper()
	if opts.ConfigPath == "" {
		opts.ConfigPath = filepath.Join(t.TempDir(), "config.toml")
		opts.NoWatch = true
	}
	if opts.Scheduler == nil {
		opts.Scheduler = sched.NewManual(time.Unix(1000, 0))
	}
	be := backend.NewNullBackend(width, height)
	app, err := New(opts, be)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	t.Cleanup(app.Close)
	return app, be
}

// runEvents queues events followed by a quit request and runs the loop to
// completion.
func runEvents(t *testing.T, app *Application, be *backend.NullBackend, events ...backend.Event) {
	t.Helper()
	for _, ev := range events {
		be.Inject(ev)
	}
	app.Quit()
	if err := app.Run(); !errors.Is(err, ErrQuit) {
		t.Fatalf("Run = %v, want ErrQuit", err)
	}
}

func keyEvent(k key.Key, mods key.Modifier) backend.Event {
	return backend.Event{Type: backend.EventKey, Key: key.Event{Key: k, Modifiers: mods}}
}

func runeEvent(r rune, mods key.Modifier) backend.Event {
	return backend.Event{Type: backend.EventKey, Key: key.Event{Key: key.KeyRune, Rune: r, Modifiers: mods}}
}

func pressEvent(x, y float32, at time.Time) backend.Event {
	return backend.Event{Type: backend.EventMouse, Mouse: mouse.Event{
		Position:  mouse.Point{X: x, Y: y},
		Button:    mouse.ButtonLeft,
		Action:    mouse.ActionPress,
		Timestamp: at,
	}}
}

func releaseEvent(x, y float32, at time.Time) backend.Event {
	ev := pressEvent(x, y, at)
	ev.Mouse.Action = mouse.ActionRelease
	return ev
}

func TestRender(t *testing.T) {
	app, be := newTestApp(t, Options{Text: "hello\nworld"}, 20, 5)
	runEvents(t, app, be)

	want := []string{"hello", "world", "", "", "[scratch]  1:1"}
	var got []string
	for y := 0; y < 5; y++ {
		got = append(got, be.Line(y))
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("screen mismatch (-want +got):\n%s", diff)
	}
	if x, y, visible := be.CursorPosition(); x != 0 || y != 0 || !visible {
		t.Errorf("cursor = %d,%d visible=%v", x, y, visible)
	}
	if be.CursorStyle() != rcursor.StyleBar {
		t.Errorf("cursor style = %v", be.CursorStyle())
	}
	if be.Shows() == 0 {
		t.Error("no frame shown")
	}
}

func TestTyping(t *testing.T) {
	app, be := newTestApp(t, Options{}, 20, 5)
	runEvents(t, app, be,
		runeEvent('a', 0),
		runeEvent('b', 0),
		keyEvent(key.KeyEnter, 0),
		runeEvent('c', 0),
		keyEvent(key.KeyLeft, 0),
		keyEvent(key.KeyBackspace, 0),
		backend.Event{Type: backend.EventPaste, Text: "xy"},
	)

	if got := app.Editor().Text(); got != "abxyc" {
		t.Errorf("Text = %q", got)
	}
	if be.Line(0) != "abxyc" {
		t.Errorf("row 0 = %q", be.Line(0))
	}
	if x, y, _ := be.CursorPosition(); x != 4 || y != 0 {
		t.Errorf("cursor = %d,%d, want 4,0", x, y)
	}
}

func TestShortcuts(t *testing.T) {
	app, be := newTestApp(t, Options{Text: "copy me"}, 40, 5)
	runEvents(t, app, be,
		runeEvent('a', key.ModCtrl),
		runeEvent('c', key.ModCtrl),
		keyEvent(key.KeyEnd, 0),
		runeEvent('v', key.ModCtrl),
	)

	if got := app.Editor().Clipboard(); got != "copy me" {
		t.Errorf("Clipboard = %q", got)
	}
	if got := app.Editor().Text(); got != "copy mecopy me" {
		t.Errorf("Text = %q", got)
	}
	if !strings.Contains(be.Line(4), "clip 7") {
		t.Errorf("status = %q", be.Line(4))
	}
}

func TestCtrlQQuits(t *testing.T) {
	app, be := newTestApp(t, Options{}, 20, 5)
	be.Inject(runeEvent('q', key.ModCtrl))
	if err := app.Run(); !errors.Is(err, ErrQuit) {
		t.Fatalf("Run = %v, want ErrQuit", err)
	}
}

func TestCursorScrollsIntoView(t *testing.T) {
	var lines []string
	for i := 0; i < 50; i++ {
		lines = append(lines, fmt.Sprintf("line%02d", i))
	}
	app, be := newTestApp(t, Options{Text: strings.Join(lines, "\n")}, 20, 11)

	var events []backend.Event
	for i := 0; i < 30; i++ {
		events = append(events, keyEvent(key.KeyDown, 0))
	}
	runEvents(t, app, be, events...)

	// Ten rows cannot hold the cursor plus two full margins, so the
	// leftover 4.5 rows go below line 30.
	if got, want := app.vbar.Target(), float32(31+4.5-10); got < want-0.001 || got > want+0.001 {
		t.Errorf("vertical target = %v, want %v", got, want)
	}
	if be.Line(0) != "line25" {
		t.Errorf("row 0 = %q", be.Line(0))
	}
	if x, y, _ := be.CursorPosition(); x != 0 || y != 5 {
		t.Errorf("cursor = %d,%d, want 0,5", x, y)
	}
	if !strings.Contains(be.Line(10), "31:1") {
		t.Errorf("status = %q", be.Line(10))
	}
}

func TestPageAndWheelScroll(t *testing.T) {
	var lines []string
	for i := 0; i < 40; i++ {
		lines = append(lines, fmt.Sprintf("%d", i))
	}
	app, be := newTestApp(t, Options{Text: strings.Join(lines, "\n")}, 10, 6)
	runEvents(t, app, be,
		keyEvent(key.KeyPageDown, 0),
		backend.Event{Type: backend.EventWheel, WheelY: 1},
	)

	if got := app.vbar.Target(); got != 5+wheelStep {
		t.Errorf("vertical target = %v, want %d", got, 5+wheelStep)
	}
	if be.Line(0) != "8" {
		t.Errorf("row 0 = %q", be.Line(0))
	}
	if _, _, visible := be.CursorPosition(); visible {
		t.Error("cursor scrolled out of view should be hidden")
	}
}

func TestMouseClick(t *testing.T) {
	t0 := time.Unix(2000, 0)
	app, be := newTestApp(t, Options{Text: "hello world\nsecond line"}, 40, 5)
	runEvents(t, app, be,
		pressEvent(2, 1, t0),
		releaseEvent(2, 1, t0),
	)
	if off, _ := app.Editor().Cursor().Offset(); off != 14 {
		t.Errorf("click offset = %d, want 14", off)
	}
	if x, y, _ := be.CursorPosition(); x != 2 || y != 1 {
		t.Errorf("cursor = %d,%d, want 2,1", x, y)
	}
}

func TestMouseDoubleClick(t *testing.T) {
	t0 := time.Unix(2000, 0)
	t1 := t0.Add(100 * time.Millisecond)
	app, be := newTestApp(t, Options{Text: "hello world\nsecond line"}, 40, 5)
	runEvents(t, app, be,
		pressEvent(2, 1, t0),
		releaseEvent(2, 1, t0),
		pressEvent(2, 1, t1),
		releaseEvent(2, 1, t1),
	)

	sel, ok := app.Editor().Selection()
	if !ok || sel != cursor.NewSelection(12, 18) {
		t.Errorf("double click selection = %v, %v; want 12..18", sel, ok)
	}
	if !strings.Contains(be.Line(4), "sel 6") {
		t.Errorf("status = %q", be.Line(4))
	}
	if st := be.Cell(0, 1).Style; st != app.theme.Resolve(true, false) {
		t.Errorf("selected cell style = %+v", st)
	}
	if st := be.Cell(0, 0).Style; st != app.theme.Resolve(false, false) {
		t.Errorf("unselected cell style = %+v", st)
	}
}

func TestStatusRowIgnoresPress(t *testing.T) {
	app, be := newTestApp(t, Options{Text: "abc"}, 20, 3)
	runEvents(t, app, be, pressEvent(2, 2, time.Unix(1, 0)))
	if off, _ := app.Editor().Cursor().Offset(); off != 0 {
		t.Errorf("press on status row moved cursor to %d", off)
	}
}

func TestFocus(t *testing.T) {
	app, be := newTestApp(t, Options{Text: "abc"}, 20, 5)
	runEvents(t, app, be, backend.Event{Type: backend.EventFocus, Focused: false})
	if app.Editor().Focused() {
		t.Error("editor still focused")
	}
	if _, _, visible := be.CursorPosition(); visible {
		t.Error("cursor visible without focus")
	}
}

func TestResize(t *testing.T) {
	app, be := newTestApp(t, Options{Text: "abcdef"}, 20, 5)
	runEvents(t, app, be, backend.Event{Type: backend.EventResize, Width: 4, Height: 3})

	if be.Line(0) != "abcd" {
		t.Errorf("row 0 = %q", be.Line(0))
	}
	if f := app.frame(); f.Width != 4 || f.Height != 2 {
		t.Errorf("frame = %+v", f)
	}
}

func TestConfigInterrupt(t *testing.T) {
	app, be := newTestApp(t, Options{Text: "abc"}, 20, 5)

	cfg := config.Default()
	cfg.Cursor.Style = "block"
	cfg.Input.DoubleClickMS = 450
	runEvents(t, app, be, backend.Event{Type: backend.EventInterrupt, Data: cfg})

	if be.CursorStyle() != rcursor.StyleBlock {
		t.Errorf("cursor style = %v, want block", be.CursorStyle())
	}
	if got := app.Editor().Config().DoubleClick; got != 450*time.Millisecond {
		t.Errorf("DoubleClick = %v", got)
	}
	if app.Status() != "config reloaded" {
		t.Errorf("Status = %q", app.Status())
	}
	// The block cursor is painted into its cell.
	if c := be.Cell(0, 0); c.Rune != 'a' || c.Style != app.theme.Resolve(false, true) {
		t.Errorf("cursor cell = %+v", c)
	}
}

func TestLiveReload(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.toml")
	if err := os.WriteFile(path, []byte("[input]\ndouble_click_ms = 300\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	app, _ := newTestApp(t, Options{ConfigPath: path}, 20, 5)
	if app.reloader == nil {
		t.Fatal("reloader not started")
	}

	done := make(chan error, 1)
	go func() { done <- app.Run() }()

	if err := os.WriteFile(path, []byte("[input]\ndouble_click_ms = 450\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	deadline := time.Now().Add(5 * time.Second)
	for app.Editor().Config().DoubleClick != 450*time.Millisecond {
		if time.Now().After(deadline) {
			t.Fatal("config change not applied")
		}
		time.Sleep(10 * time.Millisecond)
	}

	app.Quit()
	select {
	case err := <-done:
		if !errors.Is(err, ErrQuit) {
			t.Errorf("Run = %v", err)
		}
	case <-time.After(5 * time.Second):
		t.Fatal("Run did not return")
	}
}

func TestOpenFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "notes.txt")
	if err := os.WriteFile(path, []byte("one\r\ntwo\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	app, be := newTestApp(t, Options{FilePath: path}, 20, 5)
	runEvents(t, app, be)
	if got := app.Editor().Text(); got != "one\ntwo\n" {
		t.Errorf("Text = %q", got)
	}
	if !strings.HasPrefix(be.Line(4), "notes.txt") {
		t.Errorf("status = %q", be.Line(4))
	}

	app, be = newTestApp(t, Options{FilePath: filepath.Join(dir, "new.txt")}, 20, 5)
	runEvents(t, app, be)
	if app.Status() != "new file" || !strings.HasSuffix(be.Line(4), "new file") {
		t.Errorf("status = %q", be.Line(4))
	}
}

func TestOpenFileError(t *testing.T) {
	dir := t.TempDir()
	_, err := New(Options{
		ConfigPath: filepath.Join(dir, "config.toml"),
		NoWatch:    true,
		FilePath:   dir,
		Scheduler:  sched.NewManual(time.Unix(0, 0)),
	}, backend.NewNullBackend(10, 5))

	var opErr *OperationError
	if !errors.As(err, &opErr) || opErr.Op != "open" {
		t.Fatalf("err = %v, want open OperationError", err)
	}
	if !errors.Is(err, ErrInitialization) {
		t.Error("error should wrap ErrInitialization")
	}
}

func TestBadConfig(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.toml")
	if err := os.WriteFile(path, []byte("[cursor]\nstyle = \"beam\"\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	_, err := New(Options{ConfigPath: path, NoWatch: true}, backend.NewNullBackend(10, 5))

	var initErr *InitError
	if !errors.As(err, &initErr) || initErr.Component != "config" {
		t.Fatalf("err = %v, want config InitError", err)
	}
	if !errors.Is(err, config.ErrInvalidConfig) {
		t.Error("error should wrap ErrInvalidConfig")
	}
}

func TestStartupScript(t *testing.T) {
	dir := t.TempDir()
	script := filepath.Join(dir, "init.lua")
	src := `editor.insert("hi")
editor.line_start(true)
`
	if err := os.WriteFile(script, []byte(src), 0o644); err != nil {
		t.Fatal(err)
	}

	app, be := newTestApp(t, Options{ScriptPath: script}, 20, 5)
	runEvents(t, app, be)
	if got := app.Editor().Text(); got != "hi" {
		t.Errorf("Text = %q", got)
	}
	if sel, ok := app.Editor().Selection(); !ok || sel != cursor.NewSelection(0, 2) {
		t.Errorf("Selection = %v, %v", sel, ok)
	}

	bad := filepath.Join(dir, "bad.lua")
	if err := os.WriteFile(bad, []byte("error('boom')"), 0o644); err != nil {
		t.Fatal(err)
	}
	_, err := New(Options{
		ConfigPath: filepath.Join(dir, "config.toml"),
		NoWatch:    true,
		ScriptPath: bad,
		Scheduler:  sched.NewManual(time.Unix(0, 0)),
	}, backend.NewNullBackend(10, 5))
	if err == nil || !strings.Contains(err.Error(), "boom") {
		t.Errorf("err = %v, want script error", err)
	}
}

func TestRunTwice(t *testing.T) {
	app, be := newTestApp(t, Options{}, 10, 5)

	done := make(chan error, 1)
	go func() { done <- app.Run() }()

	deadline := time.Now().Add(5 * time.Second)
	for be.Shows() == 0 {
		if time.Now().After(deadline) {
			t.Fatal("loop did not start")
		}
		time.Sleep(time.Millisecond)
	}
	if err := app.Run(); !errors.Is(err, ErrAlreadyRunning) {
		t.Errorf("second Run = %v", err)
	}
	app.Quit()
	if err := <-done; !errors.Is(err, ErrQuit) {
		t.Errorf("Run = %v", err)
	}
}

func TestShutdownEndsRun(t *testing.T) {
	app, be := newTestApp(t, Options{}, 10, 5)
	be.Shutdown()
	if err := app.Run(); err != nil {
		t.Errorf("Run after backend shutdown = %v, want nil", err)
	}
}
