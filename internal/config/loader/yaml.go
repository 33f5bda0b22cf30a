package loader

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"regexp"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"
)

// YAMLLoader decodes a YAML file onto a struct. Fields are matched by
// their yaml tags.
type YAMLLoader struct {
	fs     FileSystem
	path   string
	strict bool
}

// NewYAMLLoaderWithFS creates a YAML loader with a custom file system.
// Unknown keys are errors.
func NewYAMLLoaderWithFS(fsys FileSystem, path string) *YAMLLoader {
	return &YAMLLoader{fs: fsys, path: path, strict: true}
}

// SetStrict controls whether unknown keys are rejected.
func (l *YAMLLoader) SetStrict(strict bool) {
	l.strict = strict
}

// LoadInto decodes the file onto v. It reports false, with no error, if
// the file does not exist.
func (l *YAMLLoader) LoadInto(v any) (bool, error) {
	data, err := l.fs.ReadFile(l.path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return false, nil
		}
		return false, fmt.Errorf("reading config file %s: %w", l.path, err)
	}
	return true, l.Decode(l.path, data, v)
}

// Decode decodes YAML data onto v, attributing errors to source. An empty
// document leaves v unchanged.
func (l *YAMLLoader) Decode(source string, data []byte, v any) error {
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(l.strict)
	if err := dec.Decode(v); err != nil && !errors.Is(err, io.EOF) {
		return newYAMLParseError(source, err)
	}
	return nil
}

var yamlLine = regexp.MustCompile(`line (\d+): `)

// newYAMLParseError extracts the first line number yaml.v3 reports. Type
// errors carry one message per problem; the first is kept.
func newYAMLParseError(source string, err error) *ParseError {
	msg := err.Error()
	var te *yaml.TypeError
	if errors.As(err, &te) && len(te.Errors) > 0 {
		msg = te.Errors[0]
	}
	msg = strings.TrimPrefix(msg, "yaml: ")

	pe := &ParseError{Path: source, Message: msg, Err: err}
	if m := yamlLine.FindStringSubmatchIndex(msg); m != nil {
		pe.Line, _ = strconv.Atoi(msg[m[2]:m[3]])
		pe.Message = msg[m[1]:]
	}
	return pe
}
