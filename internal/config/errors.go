package config

import (
	"errors"
	"fmt"
)

// Errors returned by configuration operations.
var (
	// ErrFileNotFound indicates an explicitly requested file doesn't exist.
	ErrFileNotFound = errors.New("config file not found")

	// ErrUnknownSetting indicates a key that jumptrail doesn't recognize.
	ErrUnknownSetting = errors.New("unknown setting")

	// ErrInvalidCapacity indicates a history capacity below one.
	ErrInvalidCapacity = errors.New("capacity must be at least 1")

	// ErrUnknownEvaluator indicates an unsupported evaluator name.
	ErrUnknownEvaluator = errors.New("unknown evaluator")

	// ErrMissingScript indicates the lua evaluator was chosen without a script.
	ErrMissingScript = errors.New("lua evaluator requires a script")

	// ErrInvalidProximity indicates a proximity window outside 0..MaxUint32.
	ErrInvalidProximity = errors.New("proximity_lines must be between 0 and 4294967295")

	// ErrInvalidLogLevel indicates an unsupported logging level.
	ErrInvalidLogLevel = errors.New("invalid log level")
)

// ValidationError describes a setting that failed validation.
type ValidationError struct {
	// Path is the dotted setting path, e.g. "history.capacity".
	Path string
	// Value is the rejected value.
	Value any
	// Err is one of the sentinel errors above.
	Err error
}

// Error implements the error interface.
func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s = %v: %v", e.Path, e.Value, e.Err)
}

// Unwrap returns the underlying sentinel error.
func (e *ValidationError) Unwrap() error {
	return e.Err
}
