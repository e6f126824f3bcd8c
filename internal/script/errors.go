package script

import "errors"

// Errors for Lua state operations.
var (
	// ErrStateClosed is returned when operating on a closed state.
	ErrStateClosed = errors.New("lua state is closed")

	// ErrExecutionTimeout is returned when a call exceeds its timeout.
	ErrExecutionTimeout = errors.New("lua execution timeout")

	// ErrNoFunction is returned when a script lacks the evaluator function.
	ErrNoFunction = errors.New("lua function not defined")

	// ErrNotReloadable is returned when reloading a script not loaded from a file.
	ErrNotReloadable = errors.New("lua script has no file to reload")
)
