// Package app wires configuration, logging, the replace evaluator and the
// jump list together and exposes the ways of driving it.
package app

import (
	"context"
	"io"
	"os"
	"sync"

	"github.com/gdamore/tcell/v2"

	"github.com/dshills/jumptrail/internal/config"
	"github.com/dshills/jumptrail/internal/location"
	"github.com/dshills/jumptrail/internal/logging"
	"github.com/dshills/jumptrail/internal/replay"
	"github.com/dshills/jumptrail/internal/view"
)

// Options configures the application.
type Options struct {
	// ConfigPath is the path to a TOML or YAML configuration file.
	// Empty means defaults and environment only.
	ConfigPath string

	// LogLevel overrides the configured logging level when set.
	LogLevel string

	// LogOutput receives log lines. Defaults to stderr.
	LogOutput io.Writer
}

// Application owns the jump list and the resources behind it.
type Application struct {
	mu sync.Mutex

	config   *config.Config
	logger   *logging.Logger
	jumplist *location.Jumplist
	session  string

	// closers run on Shutdown in reverse order.
	closers []func() error

	opts   Options
	closed bool
}

// New creates an Application from opts.
func New(opts Options) (*Application, error) {
	if opts.LogOutput == nil {
		opts.LogOutput = os.Stderr
	}
	app := &Application{opts: opts}
	if err := newBootstrapper(app, opts).bootstrap(); err != nil {
		return nil, err
	}
	return app, nil
}

// Config returns the effective configuration.
func (app *Application) Config() *config.Config {
	return app.config
}

// Session returns the id attached to this application's log lines.
func (app *Application) Session() string {
	return app.session
}

// Logger returns the application logger.
func (app *Application) Logger() *logging.Logger {
	return app.logger
}

// Jumplist returns the jump list.
func (app *Application) Jumplist() *location.Jumplist {
	return app.jumplist
}

// Replay runs a command script from r against the jump list.
func (app *Application) Replay(ctx context.Context, r io.Reader, w io.Writer) error {
	app.mu.Lock()
	defer app.mu.Unlock()
	if app.closed {
		return ErrShutdown
	}

	app.logger.Debug("replay started")
	if err := replay.Run(ctx, app.jumplist, r, w); err != nil {
		app.logger.Error("replay failed: %v", err)
		return err
	}
	app.logger.Debug("replay finished with %d entries", app.jumplist.Len())
	return nil
}

// Interactive reads commands from r one at a time, prompting on w, until
// end of input.
func (app *Application) Interactive(ctx context.Context, r io.Reader, w io.Writer) error {
	app.mu.Lock()
	defer app.mu.Unlock()
	if app.closed {
		return ErrShutdown
	}
	return replay.Interactive(ctx, app.jumplist, r, w, "jumptrail> ")
}

// Browse shows the jump list on screen until the user quits.
// The screen must already be initialized.
func (app *Application) Browse(screen tcell.Screen) error {
	app.mu.Lock()
	defer app.mu.Unlock()
	if app.closed {
		return ErrShutdown
	}
	return view.NewPanel(app.jumplist).Run(screen)
}

// Shutdown releases resources. It is safe to call more than once.
func (app *Application) Shutdown() {
	app.mu.Lock()
	defer app.mu.Unlock()
	if app.closed {
		return
	}
	app.closed = true

	for i := len(app.closers) - 1; i >= 0; i-- {
		if err := app.closers[i](); err != nil {
			app.logger.Warn("shutdown: %v", err)
		}
	}
	app.closers = nil
}
