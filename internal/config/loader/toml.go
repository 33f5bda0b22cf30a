package loader

import (
	"bytes"
	"errors"
	"fmt"
	"io/fs"

	"github.com/pelletier/go-toml/v2"
)

// TOMLLoader decodes a TOML file onto a struct.
type TOMLLoader struct {
	fs     FileSystem
	path   string
	strict bool
}

// NewTOMLLoader creates a TOML loader for path. Unknown keys are errors.
func NewTOMLLoader(path string) *TOMLLoader {
	return NewTOMLLoaderWithFS(DefaultFS(), path)
}

// NewTOMLLoaderWithFS creates a TOML loader with a custom file system.
func NewTOMLLoaderWithFS(fsys FileSystem, path string) *TOMLLoader {
	return &TOMLLoader{
		fs:     fsys,
		path:   path,
		strict: true,
	}
}

// SetStrict controls whether unknown keys are rejected.
func (l *TOMLLoader) SetStrict(strict bool) {
	l.strict = strict
}

// Path returns the file the loader reads.
func (l *TOMLLoader) Path() string {
	return l.path
}

// LoadInto decodes the file onto v. It reports false, with no error, if
// the file does not exist.
func (l *TOMLLoader) LoadInto(v any) (bool, error) {
	data, err := l.fs.ReadFile(l.path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return false, nil
		}
		return false, fmt.Errorf("reading config file %s: %w", l.path, err)
	}
	return true, l.decode(l.path, data, v)
}

// Decode decodes TOML data onto v, attributing errors to source.
func (l *TOMLLoader) Decode(source string, data []byte, v any) error {
	return l.decode(source, data, v)
}

func (l *TOMLLoader) decode(source string, data []byte, v any) error {
	dec := toml.NewDecoder(bytes.NewReader(data))
	if l.strict {
		dec.DisallowUnknownFields()
	}
	if err := dec.Decode(v); err != nil {
		return newParseError(source, err)
	}
	return nil
}

// newParseError converts a go-toml error into a ParseError with a
// position when the decoder supplies one.
func newParseError(source string, err error) *ParseError {
	pe := &ParseError{Path: source, Message: err.Error(), Err: err}

	var de *toml.DecodeError
	if errors.As(err, &de) {
		pe.Line, pe.Column = de.Position()
		return pe
	}
	var se *toml.StrictMissingError
	if errors.As(err, &se) && len(se.Errors) > 0 {
		pe.Line, pe.Column = se.Errors[0].Position()
		pe.Message = "unknown key " + joinKey(se.Errors[0].Key())
	}
	return pe
}

func joinKey(k toml.Key) string {
	var buf bytes.Buffer
	for i, part := range k {
		if i > 0 {
			buf.WriteByte('.')
		}
		buf.WriteString(part)
	}
	return buf.String()
}
