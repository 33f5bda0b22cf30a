// Package app wires the editor into a terminal demo. It loads and watches
// the configuration, owns the buffer, scroll bars and editor, and runs the
// event loop that turns backend events into editor calls and redraws.
package app

import (
	"errors"
	"io"
	"os"
	"path/filepath"
	"sync"
	"sync/atomic"

	"github.com/dshills/caret/internal/config"
	"github.com/dshills/caret/internal/editor"
	"github.com/dshills/caret/internal/engine/buffer"
	"github.com/dshills/caret/internal/notify"
	"github.com/dshills/caret/internal/plugin/lua"
	rcursor "github.com/dshills/caret/internal/renderer/cursor"
	"github.com/dshills/caret/internal/renderer/backend"
	"github.com/dshills/caret/internal/renderer/style"
	"github.com/dshills/caret/internal/renderer/viewport"
	"github.com/dshills/caret/internal/sched"
)

// Options configures the application.
type Options struct {
	// ConfigPath is the configuration file. Empty uses config.DefaultPath.
	ConfigPath string

	// FilePath is a file to load into the buffer. A missing file starts
	// an empty buffer.
	FilePath string

	// Text is the initial content when FilePath is empty.
	Text string

	// ScriptPath is a Lua script run against the editor at startup.
	ScriptPath string

	// LogLevel overrides the configured log level.
	LogLevel string

	// NoWatch disables live config reload.
	NoWatch bool

	// Scheduler drives blinking and key repeat. Nil uses a sched.Timer.
	Scheduler sched.Scheduler
}

// statusRows is the number of rows below the edit surface.
const statusRows = 1

// Interrupt payloads.
type (
	quitRequest   struct{}
	redrawRequest struct{}
)

// Application is the demo: one editor over one buffer in a terminal.
type Application struct {
	opts Options

	logger  *Logger
	logFile io.Closer

	backend backend.Backend
	sched   sched.Scheduler
	timer   *sched.Timer

	configPath string
	cfg        config.Config
	reloader   *config.Reloader
	theme      style.Theme

	buf    *buffer.Buffer
	hbar   *viewport.Track
	vbar   *viewport.Track
	editor *editor.Editor
	script *lua.State
	subs   []*notify.Subscription

	mu      sync.Mutex
	width   int
	height  int
	status  string
	running bool
	closed  bool

	redrawPending atomic.Bool
}

// New creates the application on be.
func New(opts Options, be backend.Backend) (*Application, error) {
	app := &Application{opts: opts, backend: be}
	if err := app.bootstrap(); err != nil {
		app.Close()
		return nil, err
	}
	return app, nil
}

// bootstrap initializes components in dependency order.
func (app *Application) bootstrap() error {
	// 1. Config and logging
	app.configPath = app.opts.ConfigPath
	if app.configPath == "" {
		app.configPath = config.DefaultPath()
	}
	cfg, err := config.Load(app.configPath)
	if err != nil {
		return &InitError{Component: "config", Err: err}
	}
	if app.opts.LogLevel != "" {
		cfg.Logging.Level = app.opts.LogLevel
	}

	logger, logFile, err := OpenLogFile(cfg.Logging.File, ParseLogLevel(cfg.Logging.Level))
	if err != nil {
		return &InitError{Component: "logging", Err: err}
	}
	app.logger, app.logFile = logger, logFile

	if !app.opts.NoWatch {
		app.reloader, err = config.NewReloader(app.configPath,
			config.WithReloadLogger(logger.WithComponent("config")))
		if err != nil {
			logger.Warn("config: not watching %s: %v", app.configPath, err)
		}
	}
	app.cfg = cfg

	theme, err := themeFromConfig(cfg)
	if err != nil {
		return &InitError{Component: "theme", Err: err}
	}
	app.theme = theme

	// 2. Scheduler
	app.sched = app.opts.Scheduler
	if app.sched == nil {
		app.timer = sched.NewTimer(sched.WithLogger(logger.WithComponent("sched")))
		app.sched = app.timer
	}

	// 3. Buffer, scroll bars and editor
	if err := app.loadBuffer(); err != nil {
		return &InitError{Component: "buffer", Err: err}
	}
	app.hbar = viewport.NewTrack(0)
	app.vbar = viewport.NewTrack(0)
	app.hbar.OnScroll(func(float32) { app.requestRedraw() })
	app.vbar.OnScroll(func(float32) { app.requestRedraw() })

	app.editor = editor.New(app.buf, app.sched,
		editor.WithGeometry(editor.GeometryFunc(app.frame)),
		editor.WithScrollBars(app.hbar, app.vbar),
		editor.WithLogger(logger.WithComponent("editor")),
		editor.WithConfig(editorConfig(cfg, theme)),
	)
	app.logger = logger.WithField("editor", app.editor.ID())
	app.subs = append(app.subs, app.editor.Subscribe(func(editor.Change) { app.requestRedraw() }))

	if app.reloader != nil {
		app.subs = append(app.subs, app.reloader.Subscribe(func(c config.Config) {
			app.backend.PostInterrupt(c)
		}))
	}

	// 4. Scripting
	app.script, err = lua.NewState(lua.WithLogger(logger.WithComponent("lua")))
	if err != nil {
		return &InitError{Component: "lua", Err: err}
	}
	lua.BindEditor(app.script, app.editor)
	if app.opts.ScriptPath != "" {
		if err := app.script.DoFile(app.opts.ScriptPath); err != nil {
			return &InitError{Component: "lua", Err: NewOperationError("run", app.opts.ScriptPath, err)}
		}
	}

	app.logger.Info("started (config %s)", app.configPath)
	return nil
}

func (app *Application) loadBuffer() error {
	if app.opts.FilePath == "" {
		app.buf = buffer.NewBufferFromString(app.opts.Text)
		return nil
	}
	data, err := os.ReadFile(app.opts.FilePath)
	switch {
	case errors.Is(err, os.ErrNotExist):
		app.buf = buffer.NewBuffer()
		app.status = "new file"
	case err != nil:
		return NewOperationError("open", app.opts.FilePath, err)
	default:
		app.buf = buffer.NewBufferFromString(string(data))
	}
	return nil
}

// editorConfig maps the file configuration onto the editor's tunables.
// The scroll margin comes from the theme's spacing.
func editorConfig(cfg config.Config, theme style.Theme) editor.Config {
	return editor.Config{
		DoubleClick:    cfg.Input.DoubleClick(),
		RepeatDelay:    cfg.Input.RepeatDelay(),
		RepeatInterval: cfg.Input.RepeatInterval(),
		Cursor: rcursor.Config{
			Style:        rcursor.ParseStyle(cfg.Cursor.Style),
			BlinkEnabled: cfg.Cursor.BlinkEnabled,
			BlinkRate:    cfg.Cursor.BlinkRate(),
		},
		Margin:    theme.Spacing,
		Tolerance: uint32(cfg.Scroll.ULPTolerance),
	}
}

func themeFromConfig(cfg config.Config) (style.Theme, error) {
	return style.NewTheme(float32(cfg.Scroll.Margin), style.Colors{
		Cursor:     cfg.Theme.Cursor,
		Selection:  cfg.Theme.Selection,
		Foreground: cfg.Theme.Foreground,
		Background: cfg.Theme.Background,
	})
}

// Editor returns the editor.
func (app *Application) Editor() *editor.Editor {
	return app.editor
}

// Config returns the configuration in effect.
func (app *Application) Config() config.Config {
	app.mu.Lock()
	defer app.mu.Unlock()
	return app.cfg
}

// Logger returns the application logger.
func (app *Application) Logger() *Logger {
	return app.logger
}

// Status returns the status line message.
func (app *Application) Status() string {
	app.mu.Lock()
	defer app.mu.Unlock()
	return app.status
}

func (app *Application) setStatus(s string) {
	app.mu.Lock()
	app.status = s
	app.mu.Unlock()
}

// Quit asks the event loop to return ErrQuit. Safe from any goroutine.
func (app *Application) Quit() {
	app.backend.PostInterrupt(quitRequest{})
}

// Close releases everything New created. It is safe to call more than once.
func (app *Application) Close() {
	app.mu.Lock()
	if app.closed {
		app.mu.Unlock()
		return
	}
	app.closed = true
	app.mu.Unlock()

	for _, sub := range app.subs {
		sub.Unsubscribe()
	}
	if app.editor != nil {
		app.editor.Close()
	}
	if app.script != nil {
		_ = app.script.Close()
	}
	if app.reloader != nil {
		_ = app.reloader.Close()
	}
	if app.timer != nil {
		app.timer.Close()
	}
	if app.logger != nil {
		app.logger.Info("closed")
	}
	if app.logFile != nil {
		_ = app.logFile.Close()
	}
}

// fileName is the label shown in the status line.
func (app *Application) fileName() string {
	if app.opts.FilePath == "" {
		return "[scratch]"
	}
	return filepath.Base(app.opts.FilePath)
}
