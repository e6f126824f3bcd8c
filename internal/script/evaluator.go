package script

import (
	"fmt"
	"sync"

	lua "github.com/yuin/gopher-lua"

	"github.com/dshills/jumptrail/internal/location"
	"github.com/dshills/jumptrail/internal/logging"
)

// DefaultFunction is the global Lua function an Evaluator calls.
const DefaultFunction = "can_replace"

// Evaluator implements history.Evaluator[location.Location] with a Lua
// function.
type Evaluator struct {
	mu     sync.RWMutex
	state  *State
	closed bool

	fn        string
	path      string // empty unless loaded from a file
	stateOpts []StateOption
	logger    *logging.Logger
}

// EvaluatorOption configures an Evaluator.
type EvaluatorOption func(*evaluatorConfig)

type evaluatorConfig struct {
	fn        string
	logger    *logging.Logger
	stateOpts []StateOption
}

// WithFunction sets the Lua function name to call.
func WithFunction(name string) EvaluatorOption {
	return func(c *evaluatorConfig) {
		if name != "" {
			c.fn = name
		}
	}
}

// WithEvaluatorLogger sets the logger for script errors and print output.
func WithEvaluatorLogger(l *logging.Logger) EvaluatorOption {
	return func(c *evaluatorConfig) {
		if l != nil {
			c.logger = l
		}
	}
}

// WithStateOptions passes options to the underlying State.
func WithStateOptions(opts ...StateOption) EvaluatorOption {
	return func(c *evaluatorConfig) {
		c.stateOpts = append(c.stateOpts, opts...)
	}
}

// NewEvaluator compiles source and returns an evaluator calling its
// can_replace function.
func NewEvaluator(source string, opts ...EvaluatorOption) (*Evaluator, error) {
	e := newEvaluator("", opts)
	state, err := e.compile("<string>", func(s *State) error { return s.DoString(source) })
	if err != nil {
		return nil, err
	}
	e.state = state
	return e, nil
}

// LoadEvaluator runs the Lua file at path and returns an evaluator calling
// its can_replace function. The file can later be reloaded with Reload or
// Watch.
func LoadEvaluator(path string, opts ...EvaluatorOption) (*Evaluator, error) {
	e := newEvaluator(path, opts)
	state, err := e.load()
	if err != nil {
		return nil, err
	}
	e.state = state
	return e, nil
}

func newEvaluator(path string, opts []EvaluatorOption) *Evaluator {
	cfg := evaluatorConfig{fn: DefaultFunction, logger: logging.NullLogger}
	for _, opt := range opts {
		opt(&cfg)
	}
	logger := cfg.logger.WithComponent("script")

	return &Evaluator{
		fn:        cfg.fn,
		path:      path,
		stateOpts: append([]StateOption{WithLogger(logger)}, cfg.stateOpts...),
		logger:    logger,
	}
}

func (e *Evaluator) load() (*State, error) {
	return e.compile(e.path, func(s *State) error { return s.DoFile(e.path) })
}

// compile builds a fresh state with run and checks that it defines the
// evaluator function.
func (e *Evaluator) compile(source string, run func(*State) error) (*State, error) {
	state := NewState(e.stateOpts...)
	if err := run(state); err != nil {
		state.Close()
		return nil, fmt.Errorf("loading %s: %w", source, err)
	}
	if !state.HasFunction(e.fn) {
		state.Close()
		return nil, fmt.Errorf("%s: %w: %s", source, ErrNoFunction, e.fn)
	}
	return state, nil
}

// Reload re-reads the script file. On failure the previous script stays
// in effect and the error is returned.
func (e *Evaluator) Reload() error {
	if e.path == "" {
		return ErrNotReloadable
	}
	state, err := e.load()
	if err != nil {
		return err
	}

	e.mu.Lock()
	defer e.mu.Unlock()
	if e.closed {
		state.Close()
		return ErrStateClosed
	}
	old := e.state
	e.state = state
	old.Close()
	e.logger.Info("reloaded %s", e.path)
	return nil
}

// CanReplace calls the Lua function with both locations.
// Script errors are logged and treated as false.
func (e *Evaluator) CanReplace(incoming, existing location.Location) bool {
	e.mu.RLock()
	defer e.mu.RUnlock()

	ret, err := e.state.Call(e.fn, table(e.state, incoming), table(e.state, existing))
	if err != nil {
		e.logger.Warn("%s(%s, %s) failed: %v", e.fn, incoming, existing, err)
		return false
	}
	if len(ret) == 0 {
		return false
	}
	return lua.LVAsBool(ret[0])
}

// Close releases the Lua state.
func (e *Evaluator) Close() error {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.closed = true
	return e.state.Close()
}

// table converts loc to the 1-indexed table passed to scripts.
func table(s *State, loc location.Location) *lua.LTable {
	return s.NewTable(map[string]lua.LValue{
		"path":   lua.LString(loc.Path),
		"line":   lua.LNumber(float64(loc.Point.Line) + 1),
		"column": lua.LNumber(float64(loc.Point.Column) + 1),
	})
}
