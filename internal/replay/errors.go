package replay

import (
	"errors"
	"fmt"
)

// Replay errors.
var (
	// ErrUnknownCommand indicates a command name that is not recognised.
	ErrUnknownCommand = errors.New("unknown command")

	// ErrArgumentCount indicates a command given the wrong number of arguments.
	ErrArgumentCount = errors.New("wrong number of arguments")
)

// CommandError reports a failing script line.
type CommandError struct {
	Line    int
	Command string
	Err     error
}

func (e *CommandError) Error() string {
	return fmt.Sprintf("line %d: %s: %v", e.Line, e.Command, e.Err)
}

func (e *CommandError) Unwrap() error {
	return e.Err
}
