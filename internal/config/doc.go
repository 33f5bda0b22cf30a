// Package config provides caret's settings.
//
// Settings come from three sources, later ones overriding earlier ones:
//
//	┌─────────────────────────────┐
//	│  3. Environment Variables   │  ← CARET_INPUT_DOUBLE_CLICK_MS=400
//	├─────────────────────────────┤
//	│  2. Config File             │  ← ~/.config/caret/config.toml or .yaml
//	├─────────────────────────────┤
//	│  1. Built-in Defaults       │  ← Lowest priority
//	└─────────────────────────────┘
//
// # Sub-packages
//
//   - loader: TOML and YAML file and environment variable decoding
//   - watcher: fsnotify-based change detection for live reload
//
// # Live reload
//
// A Reloader watches the config file and republishes a validated Config to
// its subscribers on every change. A change that fails to load or validate
// is logged and the previous Config stays in effect.
package config
