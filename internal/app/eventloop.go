package app

import (
	"github.com/dshills/caret/internal/config"
	"github.com/dshills/caret/internal/input/key"
	"github.com/dshills/caret/internal/input/mouse"
	"github.com/dshills/caret/internal/renderer/backend"
	"github.com/dshills/caret/internal/renderer/viewport"
)

// wheelStep is how many rows or columns one wheel notch scrolls.
const wheelStep = 3

// Run initializes the backend and processes events until Quit or until the
// backend shuts down. It returns ErrQuit on a quit request.
func (app *Application) Run() error {
	app.mu.Lock()
	if app.running {
		app.mu.Unlock()
		return ErrAlreadyRunning
	}
	app.running = true
	app.mu.Unlock()

	defer func() {
		app.mu.Lock()
		app.running = false
		app.mu.Unlock()
	}()

	if err := app.backend.Init(); err != nil {
		return &InitError{Component: "backend", Err: err}
	}
	defer app.backend.Shutdown()

	app.backend.SetCursorStyle(app.editor.Config().Cursor.Style)
	app.resize(app.backend.Size())
	app.editor.OnFocus()
	app.redraw()

	for {
		ev := app.backend.PollEvent()
		if ev.Type == backend.EventNone {
			return nil
		}
		if err := app.handleEvent(ev); err != nil {
			return err
		}
		app.redraw()
	}
}

// handleEvent dispatches one backend event.
func (app *Application) handleEvent(ev backend.Event) error {
	switch ev.Type {
	case backend.EventKey:
		return app.handleKey(ev.Key)
	case backend.EventMouse:
		app.handleMouse(ev.Mouse)
	case backend.EventWheel:
		app.hbar.ScrollBy(float32(ev.WheelX * wheelStep))
		app.vbar.ScrollBy(float32(ev.WheelY * wheelStep))
	case backend.EventResize:
		app.resize(ev.Width, ev.Height)
	case backend.EventPaste:
		app.editor.InsertText(ev.Text)
	case backend.EventFocus:
		if ev.Focused {
			app.editor.OnFocus()
		} else {
			app.editor.OnFocusLost()
		}
	case backend.EventInterrupt:
		return app.handleInterrupt(ev.Data)
	}
	return nil
}

func (app *Application) handleInterrupt(data any) error {
	switch v := data.(type) {
	case quitRequest:
		return ErrQuit
	case config.Config:
		app.applyConfig(v)
	}
	return nil
}

// handleKey runs control shortcuts and routes the rest to the editor.
func (app *Application) handleKey(ev key.Event) error {
	if ev.Key == key.KeyRune && ev.Modifiers.HasCtrl() {
		switch ev.Rune {
		case 'q':
			return ErrQuit
		case 'c':
			app.editor.Copy()
		case 'x':
			app.editor.Cut()
		case 'v':
			app.editor.Paste()
		case 'a':
			app.editor.SelectAll()
		case 'r':
			app.reloadConfig()
		}
		return nil
	}

	switch ev.Key {
	case key.KeyEscape:
		return nil
	case key.KeyPageUp:
		app.vbar.ScrollBy(-float32(app.editHeight()))
		return nil
	case key.KeyPageDown:
		app.vbar.ScrollBy(float32(app.editHeight()))
		return nil
	}

	// Terminals send no key releases and repeat held keys themselves.
	if app.editor.OnNavigationKey(ev) {
		app.editor.OnNavigationKeyUp(ev)
		return nil
	}
	if ch, ok := key.FromEvent(ev); ok {
		app.editor.OnCharacter(ch)
	}
	return nil
}

// handleMouse forwards pointer events on the edit surface. The status row
// does not start gestures, but drags and releases over it still count.
func (app *Application) handleMouse(ev mouse.Event) {
	if ev.Action == mouse.ActionPress && int(ev.Position.Y) >= app.editHeight() {
		return
	}
	app.editor.HandleMouse(ev)
}

func (app *Application) reloadConfig() {
	if app.reloader == nil {
		cfg, err := config.Load(app.configPath)
		if err != nil {
			app.logger.Warn("config: reload failed: %v", err)
			app.setStatus("config error: " + err.Error())
			return
		}
		app.applyConfig(cfg)
		return
	}
	// Subscribers receive the new config through an interrupt.
	if err := app.reloader.Reload(); err != nil {
		app.logger.Warn("config: reload failed: %v", err)
		app.setStatus("config error: " + err.Error())
	}
}

// applyConfig switches to cfg. A theme error keeps the previous theme.
func (app *Application) applyConfig(cfg config.Config) {
	if app.opts.LogLevel != "" {
		cfg.Logging.Level = app.opts.LogLevel
	}
	theme, err := themeFromConfig(cfg)
	if err != nil {
		app.logger.Warn("config: %v", err)
		theme = app.theme
	}

	app.mu.Lock()
	app.cfg = cfg
	app.theme = theme
	app.status = "config reloaded"
	app.mu.Unlock()

	app.logger.SetLevel(ParseLogLevel(cfg.Logging.Level))
	app.editor.ApplyConfig(editorConfig(cfg, theme))
	app.backend.SetCursorStyle(app.editor.Config().Cursor.Style)
	app.logger.Info("config applied")
}

// requestRedraw wakes the event loop once for any number of calls made
// before the next redraw. Safe from any goroutine. The redrawRequest
// payload needs no handling: every event is followed by a redraw.
func (app *Application) requestRedraw() {
	if app.redrawPending.CompareAndSwap(false, true) {
		app.backend.PostInterrupt(redrawRequest{})
	}
}

func (app *Application) resize(width, height int) {
	app.mu.Lock()
	app.width, app.height = width, height
	app.mu.Unlock()
	app.updateOverflow()
}

// frame is the edit surface: the whole screen except the status row.
func (app *Application) frame() viewport.Frame {
	app.mu.Lock()
	defer app.mu.Unlock()
	return viewport.Frame{
		Width:  float32(app.width),
		Height: float32(max(app.height-statusRows, 0)),
	}
}

func (app *Application) editHeight() int {
	app.mu.Lock()
	defer app.mu.Unlock()
	return max(app.height-statusRows, 0)
}
