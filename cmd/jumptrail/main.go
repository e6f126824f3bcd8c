// Package main is the entry point for jumptrail.
package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/gdamore/tcell/v2"
	"golang.org/x/term"

	"github.com/dshills/jumptrail/internal/app"
)

// Version information (set via ldflags during build).
var (
	version = "dev"
	commit  = "unknown"
	date    = "unknown"
)

type options struct {
	app    app.Options
	script string
	browse bool
}

func main() {
	os.Exit(run())
}

func run() int {
	opts := parseFlags()

	application, err := app.New(opts.app)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: failed to initialize: %v\n", err)
		return 1
	}
	defer application.Shutdown()

	if err := drive(application, opts); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return 1
	}

	if opts.browse {
		if err := browse(application); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			return 1
		}
	}
	return 0
}

// drive feeds commands to the application from the script file, from a
// pipe, or from an interactive prompt when stdin is a terminal.
func drive(application *app.Application, opts options) error {
	switch {
	case opts.script == "-":
		return replayWithSignals(application, os.Stdin)

	case opts.script != "":
		f, err := os.Open(opts.script)
		if err != nil {
			return err
		}
		defer f.Close()
		return replayWithSignals(application, f)

	case term.IsTerminal(int(os.Stdin.Fd())):
		if opts.browse {
			return nil
		}
		return application.Interactive(context.Background(), os.Stdin, os.Stdout)

	default:
		return replayWithSignals(application, os.Stdin)
	}
}

func replayWithSignals(application *app.Application, r io.Reader) error {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()
	return application.Replay(ctx, r, os.Stdout)
}

func browse(application *app.Application) error {
	screen, err := tcell.NewScreen()
	if err != nil {
		return fmt.Errorf("failed to create terminal: %w", err)
	}
	if err := screen.Init(); err != nil {
		return fmt.Errorf("failed to initialize terminal: %w", err)
	}
	defer screen.Fini()
	return application.Browse(screen)
}

func parseFlags() options {
	var opts options
	var showVersion bool

	flag.StringVar(&opts.app.ConfigPath, "config", "", "Path to configuration file (TOML or YAML)")
	flag.StringVar(&opts.app.ConfigPath, "c", "", "Path to configuration file (shorthand)")
	flag.StringVar(&opts.script, "script", "", "Replay script to run (- for stdin)")
	flag.StringVar(&opts.script, "s", "", "Replay script to run (shorthand)")
	flag.BoolVar(&opts.browse, "browse", false, "Browse the jump list in the terminal afterwards")
	flag.BoolVar(&opts.browse, "b", false, "Browse the jump list (shorthand)")
	flag.StringVar(&opts.app.LogLevel, "log-level", "", "Log level (debug, info, warn, error)")
	flag.BoolVar(&showVersion, "version", false, "Show version information")
	flag.BoolVar(&showVersion, "v", false, "Show version information (shorthand)")

	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, "jumptrail - bounded jump list with pluggable de-duplication\n\n")
		fmt.Fprintf(os.Stderr, "Usage: jumptrail [options]\n\n")
		fmt.Fprintf(os.Stderr, "Options:\n")
		flag.PrintDefaults()
		fmt.Fprintf(os.Stderr, "\nExamples:\n")
		fmt.Fprintf(os.Stderr, "  jumptrail                        Interactive prompt\n")
		fmt.Fprintf(os.Stderr, "  jumptrail -s jumps.txt           Replay a script\n")
		fmt.Fprintf(os.Stderr, "  jumptrail -s jumps.txt -b        Replay, then browse\n")
		fmt.Fprintf(os.Stderr, "  cat jumps.txt | jumptrail        Replay from a pipe\n")
	}

	flag.Parse()

	if showVersion {
		fmt.Printf("jumptrail %s\n", version)
		fmt.Printf("Commit: %s\n", commit)
		fmt.Printf("Built: %s\n", date)
		os.Exit(0)
	}

	if flag.NArg() > 0 {
		fmt.Fprintf(os.Stderr, "Error: unexpected arguments: %v\n", flag.Args())
		flag.Usage()
		os.Exit(2)
	}

	return opts
}
