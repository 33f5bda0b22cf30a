package config

import (
	"errors"

	"github.com/dshills/caret/internal/config/loader"
)

// Errors returned by configuration operations.
var (
	// ErrInvalidConfig indicates a setting is out of range or malformed.
	ErrInvalidConfig = errors.New("invalid configuration")

	// ErrFileNotFound indicates an explicitly requested config file doesn't exist.
	ErrFileNotFound = errors.New("config file not found")

	// ErrReloaderClosed indicates the reloader was used after Close.
	ErrReloaderClosed = errors.New("config reloader closed")
)

// ParseError represents an error while parsing a configuration source.
type ParseError = loader.ParseError
