package loader

import (
	"os"
	"sort"
	"strconv"
	"strings"

	"github.com/pelletier/go-toml/v2"
)

// EnvLoader maps prefixed environment variables onto config sections.
// CARET_INPUT_DOUBLE_CLICK_MS becomes input.double_click_ms.
type EnvLoader struct {
	prefix  string
	ignore  map[string]bool
	environ func() []string
}

// NewEnvLoader creates a loader for variables starting with prefix
// (including the trailing underscore, e.g. "CARET_"). Variables named in
// ignore are skipped.
func NewEnvLoader(prefix string, ignore ...string) *EnvLoader {
	l := &EnvLoader{
		prefix:  prefix,
		ignore:  make(map[string]bool, len(ignore)),
		environ: os.Environ,
	}
	for _, name := range ignore {
		l.ignore[name] = true
	}
	return l
}

// Load reads the environment into a nested map keyed by section.
// Empty values are kept as empty strings.
func (l *EnvLoader) Load() map[string]any {
	config := make(map[string]any)
	for _, env := range l.environ() {
		name, value, ok := strings.Cut(env, "=")
		if !ok || !strings.HasPrefix(name, l.prefix) || l.ignore[name] {
			continue
		}
		section, key, ok := l.envToPath(name)
		if !ok {
			continue
		}
		sec, _ := config[section].(map[string]any)
		if sec == nil {
			sec = make(map[string]any)
			config[section] = sec
		}
		sec[key] = parseValue(value)
	}
	return config
}

// Names returns the matching variable names in sorted order.
func (l *EnvLoader) Names() []string {
	var names []string
	for _, env := range l.environ() {
		name, _, ok := strings.Cut(env, "=")
		if !ok || !strings.HasPrefix(name, l.prefix) || l.ignore[name] {
			continue
		}
		if _, _, ok := l.envToPath(name); ok {
			names = append(names, name)
		}
	}
	sort.Strings(names)
	return names
}

// LoadInto decodes the environment onto v. It reports whether any
// variable applied.
func (l *EnvLoader) LoadInto(v any) (bool, error) {
	data := l.Load()
	if len(data) == 0 {
		return false, nil
	}
	doc, err := toml.Marshal(data)
	if err != nil {
		return false, &ParseError{Path: "environment", Message: err.Error(), Err: err}
	}
	if err := toml.Unmarshal(doc, v); err != nil {
		return false, &ParseError{Path: "environment", Message: err.Error(), Err: err}
	}
	return true, nil
}

// envToPath splits CARET_SCROLL_ULP_TOLERANCE into ("scroll", "ulp_tolerance").
func (l *EnvLoader) envToPath(env string) (section, key string, ok bool) {
	name := strings.ToLower(strings.TrimPrefix(env, l.prefix))
	section, key, ok = strings.Cut(name, "_")
	if !ok || section == "" || key == "" {
		return "", "", false
	}
	return section, key, true
}

// parseValue converts the string to a bool, integer or float when it
// reads as one.
func parseValue(s string) any {
	if s == "" {
		return s
	}

	switch strings.ToLower(s) {
	case "true", "yes", "on":
		return true
	case "false", "no", "off":
		return false
	}

	if i, err := strconv.ParseInt(s, 10, 64); err == nil {
		return i
	}

	// Only with a decimal point, so integers stay integers.
	if strings.Contains(s, ".") {
		if f, err := strconv.ParseFloat(s, 64); err == nil {
			return f
		}
	}

	return s
}
