package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/lucasb-eyer/go-colorful"

	"github.com/dshills/caret/internal/config/loader"
)

// EnvPrefix is the prefix of environment variables that override the
// config file.
const EnvPrefix = "CARET_"

// EnvConfigPath names the config file. It is not itself a setting.
const EnvConfigPath = "CARET_CONFIG"

// Config holds every setting, grouped the way the TOML file is.
type Config struct {
	Input   InputConfig   `toml:"input" yaml:"input"`
	Cursor  CursorConfig  `toml:"cursor" yaml:"cursor"`
	Scroll  ScrollConfig  `toml:"scroll" yaml:"scroll"`
	Theme   ThemeConfig   `toml:"theme" yaml:"theme"`
	Logging LoggingConfig `toml:"logging" yaml:"logging"`
}

// InputConfig holds pointer and keyboard timing.
type InputConfig struct {
	// DoubleClickMS is the maximum gap between presses of a multi-click.
	DoubleClickMS int `toml:"double_click_ms" yaml:"double_click_ms"`

	// RepeatDelayMS is how long an arrow key is held before it repeats.
	RepeatDelayMS int `toml:"repeat_delay_ms" yaml:"repeat_delay_ms"`

	// RepeatIntervalMS is the time between repeats.
	RepeatIntervalMS int `toml:"repeat_interval_ms" yaml:"repeat_interval_ms"`
}

// CursorConfig holds cursor appearance.
type CursorConfig struct {
	// BlinkMS is the blink half-period.
	BlinkMS int `toml:"blink_ms" yaml:"blink_ms"`

	// BlinkEnabled turns blinking on.
	BlinkEnabled bool `toml:"blink_enabled" yaml:"blink_enabled"`

	// Style is "bar", "block" or "underline".
	Style string `toml:"style" yaml:"style"`
}

// ScrollConfig holds scroll-into-view tuning.
type ScrollConfig struct {
	// Margin is the space kept between the cursor and the window edge.
	Margin float64 `toml:"margin" yaml:"margin"`

	// ULPTolerance is the distance in float32 ULPs under which two
	// scroll targets count as equal.
	ULPTolerance int `toml:"ulp_tolerance" yaml:"ulp_tolerance"`
}

// ThemeConfig holds hex colours. Empty means the terminal default.
type ThemeConfig struct {
	Cursor     string `toml:"cursor" yaml:"cursor"`
	Selection  string `toml:"selection" yaml:"selection"`
	Foreground string `toml:"foreground" yaml:"foreground"`
	Background string `toml:"background" yaml:"background"`
}

// LoggingConfig holds diagnostics settings.
type LoggingConfig struct {
	// Level is "debug", "info", "warn" or "error".
	Level string `toml:"level" yaml:"level"`

	// File is where logs go. Empty disables logging.
	File string `toml:"file" yaml:"file"`
}

// Default returns the built-in configuration.
func Default() Config {
	return Config{
		Input: InputConfig{
			DoubleClickMS:    300,
			RepeatDelayMS:    600,
			RepeatIntervalMS: 40,
		},
		Cursor: CursorConfig{
			BlinkMS:      500,
			BlinkEnabled: true,
			Style:        "bar",
		},
		Scroll: ScrollConfig{
			Margin:       8,
			ULPTolerance: 8,
		},
		Theme: ThemeConfig{
			Cursor:    "#e0e0e0",
			Selection: "#264f78",
		},
		Logging: LoggingConfig{
			Level: "info",
		},
	}
}

// DoubleClick returns the multi-click window.
func (c InputConfig) DoubleClick() time.Duration {
	return time.Duration(c.DoubleClickMS) * time.Millisecond
}

// RepeatDelay returns the key repeat delay.
func (c InputConfig) RepeatDelay() time.Duration {
	return time.Duration(c.RepeatDelayMS) * time.Millisecond
}

// RepeatInterval returns the key repeat interval.
func (c InputConfig) RepeatInterval() time.Duration {
	return time.Duration(c.RepeatIntervalMS) * time.Millisecond
}

// BlinkRate returns the blink half-period.
func (c CursorConfig) BlinkRate() time.Duration {
	return time.Duration(c.BlinkMS) * time.Millisecond
}

var validLevels = map[string]bool{"debug": true, "info": true, "warn": true, "error": true}

var validStyles = map[string]bool{"bar": true, "block": true, "underline": true}

// Validate checks every setting. The error wraps ErrInvalidConfig and
// names the first offending key.
func (c Config) Validate() error {
	switch {
	case c.Input.DoubleClickMS <= 0 || c.Input.DoubleClickMS > 5000:
		return invalid("input.double_click_ms", c.Input.DoubleClickMS, "must be in 1..5000")
	case c.Input.RepeatDelayMS <= 0:
		return invalid("input.repeat_delay_ms", c.Input.RepeatDelayMS, "must be positive")
	case c.Input.RepeatIntervalMS <= 0:
		return invalid("input.repeat_interval_ms", c.Input.RepeatIntervalMS, "must be positive")
	case c.Cursor.BlinkMS <= 0:
		return invalid("cursor.blink_ms", c.Cursor.BlinkMS, "must be positive")
	case !validStyles[c.Cursor.Style]:
		return invalid("cursor.style", c.Cursor.Style, "must be bar, block or underline")
	case c.Scroll.Margin < 0:
		return invalid("scroll.margin", c.Scroll.Margin, "must not be negative")
	case c.Scroll.ULPTolerance < 0 || c.Scroll.ULPTolerance > 1<<16:
		return invalid("scroll.ulp_tolerance", c.Scroll.ULPTolerance, "must be in 0..65536")
	case !validLevels[strings.ToLower(c.Logging.Level)]:
		return invalid("logging.level", c.Logging.Level, "must be debug, info, warn or error")
	}

	colours := []struct {
		key, value string
	}{
		{"theme.cursor", c.Theme.Cursor},
		{"theme.selection", c.Theme.Selection},
		{"theme.foreground", c.Theme.Foreground},
		{"theme.background", c.Theme.Background},
	}
	for _, col := range colours {
		if col.value == "" {
			continue
		}
		if _, err := colorful.Hex(col.value); err != nil {
			return invalid(col.key, col.value, "must be a #rrggbb colour")
		}
	}
	return nil
}

func invalid(key string, value any, msg string) error {
	return fmt.Errorf("%w: %s = %v: %s", ErrInvalidConfig, key, value, msg)
}

// LoadOption configures Load.
type LoadOption func(*loadOptions)

type loadOptions struct {
	fs        loader.FileSystem
	envPrefix string
	required  bool
}

// WithFS reads the config file from fsys.
func WithFS(fsys loader.FileSystem) LoadOption {
	return func(o *loadOptions) {
		o.fs = fsys
	}
}

// WithEnvPrefix changes the environment variable prefix. An empty prefix
// disables environment overrides.
func WithEnvPrefix(prefix string) LoadOption {
	return func(o *loadOptions) {
		o.envPrefix = prefix
	}
}

// WithRequired makes a missing config file an error.
func WithRequired(required bool) LoadOption {
	return func(o *loadOptions) {
		o.required = required
	}
}

// Load builds a Config from the defaults, the file at path (if path is
// non-empty and the file exists) and the environment, in that order, then
// validates it. Files ending in .yaml or .yml are YAML; anything else is
// TOML.
func Load(path string, opts ...LoadOption) (Config, error) {
	o := loadOptions{fs: loader.DefaultFS(), envPrefix: EnvPrefix}
	for _, opt := range opts {
		opt(&o)
	}

	cfg := Default()
	if path != "" {
		found, err := fileLoader(o.fs, path).LoadInto(&cfg)
		if err != nil {
			return Config{}, err
		}
		if !found && o.required {
			return Config{}, fmt.Errorf("%w: %s", ErrFileNotFound, path)
		}
	}

	if o.envPrefix != "" {
		env := loader.NewEnvLoader(o.envPrefix, o.envPrefix+"CONFIG")
		if _, err := env.LoadInto(&cfg); err != nil {
			return Config{}, err
		}
	}

	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

type fileSource interface {
	LoadInto(v any) (bool, error)
}

func fileLoader(fsys loader.FileSystem, path string) fileSource {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return loader.NewYAMLLoaderWithFS(fsys, path)
	default:
		return loader.NewTOMLLoaderWithFS(fsys, path)
	}
}

// DefaultPath returns the config file location: $CARET_CONFIG if set,
// otherwise caret/config.toml under the user config directory.
func DefaultPath() string {
	if p := os.Getenv(EnvConfigPath); p != "" {
		return p
	}
	if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
		return filepath.Join(xdg, "caret", "config.toml")
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".config", "caret", "config.toml")
}
