package app

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/dshills/jumptrail/internal/config"
	"github.com/dshills/jumptrail/internal/history"
	"github.com/dshills/jumptrail/internal/location"
	"github.com/dshills/jumptrail/internal/logging"
	"github.com/dshills/jumptrail/internal/script"
)

// bootstrapper handles component initialization with cleanup on failure.
type bootstrapper struct {
	app  *Application
	opts Options

	eval history.Evaluator[location.Location]
}

func newBootstrapper(app *Application, opts Options) *bootstrapper {
	return &bootstrapper{app: app, opts: opts}
}

// bootstrap initializes all components in dependency order.
func (b *bootstrapper) bootstrap() error {
	steps := []func() error{
		b.initConfig,
		b.initLogger,
		b.initEvaluator,
		b.initJumplist,
	}
	for _, step := range steps {
		if err := step(); err != nil {
			b.cleanup()
			return err
		}
	}
	return nil
}

func (b *bootstrapper) initConfig() error {
	cfg, err := config.Load(b.opts.ConfigPath)
	if err != nil {
		return &InitError{Component: "config", Err: err}
	}
	if b.opts.LogLevel != "" {
		cfg.Logging.Level = b.opts.LogLevel
		if err := cfg.Validate(); err != nil {
			return &InitError{Component: "config", Err: err}
		}
	}
	b.app.config = cfg
	return nil
}

// initLogger creates the logger. Every line carries a session id so
// output from concurrent runs can be told apart.
func (b *bootstrapper) initLogger() error {
	b.app.session = uuid.NewString()
	b.app.logger = logging.New(logging.Config{
		Level:  b.app.config.LogLevel(),
		Output: b.opts.LogOutput,
		Prefix: "jumptrail",
	}).WithField("session", b.app.session[:8])
	return nil
}

func (b *bootstrapper) initEvaluator() error {
	h := b.app.config.History

	switch h.Evaluator {
	case config.EvaluatorProximity:
		b.eval = location.ProximityEvaluator{Lines: uint32(h.ProximityLines)}
	case config.EvaluatorExact:
		b.eval = location.ExactEvaluator{}
	case config.EvaluatorNone:
		b.eval = history.Never[location.Location]()
	case config.EvaluatorLua:
		e, err := script.LoadEvaluator(h.Script, script.WithEvaluatorLogger(b.app.logger))
		if err != nil {
			return &InitError{Component: "evaluator", Err: err}
		}
		b.app.closers = append(b.app.closers, e.Close)
		b.eval = e

		if h.WatchScript {
			ctx, cancel := context.WithCancel(context.Background())
			b.app.closers = append(b.app.closers, func() error { cancel(); return nil })
			if err := e.Watch(ctx); err != nil {
				return &InitError{Component: "evaluator", Err: err}
			}
			b.app.logger.Info("watching %s", h.Script)
		}
	default:
		return &InitError{Component: "evaluator", Err: fmt.Errorf("%w: %q", config.ErrUnknownEvaluator, h.Evaluator)}
	}

	b.app.logger.Debug("using %s evaluator", h.Evaluator)
	return nil
}

func (b *bootstrapper) initJumplist() error {
	h := b.app.config.History

	opts := []location.Option{location.WithLogger(b.app.logger)}
	if h.Circular {
		opts = append(opts, location.WithCircular())
	}
	b.app.jumplist = location.NewJumplist(h.Capacity, b.eval, opts...)
	return nil
}

// cleanup releases whatever was initialized before a failure.
func (b *bootstrapper) cleanup() {
	for i := len(b.app.closers) - 1; i >= 0; i-- {
		_ = b.app.closers[i]()
	}
	b.app.closers = nil
}
