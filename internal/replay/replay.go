package replay

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"sort"
	"strings"

	"github.com/dshills/jumptrail/internal/location"
)

// None is printed for absent results.
const None = "<none>"

// command executes one script command against a jump list and returns the
// line to print.
type command struct {
	args int
	run  func(jl *location.Jumplist, args []string) (string, error)
}

var commands = map[string]command{
	"visit":   {args: 1, run: visit},
	"amend":   {args: 1, run: amend},
	"back":    {run: move((*location.Jumplist).Back)},
	"forward": {run: move((*location.Jumplist).Forward)},
	"current": {run: move((*location.Jumplist).Current)},
	"drop":    {run: move((*location.Jumplist).Drop)},
	"peek":    {run: peek},
	"list":    {run: list},
	"len":     {run: length},
	"check":   {run: check},
}

// Commands returns the names of all commands, sorted.
func Commands() []string {
	names := make([]string, 0, len(commands))
	for name := range commands {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Run executes the script read from r against jl, writing one line per
// command to w. It stops at the first failing command and returns a
// *CommandError. The context is checked before each line.
func Run(ctx context.Context, jl *location.Jumplist, r io.Reader, w io.Writer) error {
	scanner := bufio.NewScanner(r)
	lineNum := 0
	for scanner.Scan() {
		lineNum++
		if err := ctx.Err(); err != nil {
			return err
		}

		out, name, err := Exec(jl, scanner.Text())
		if err != nil {
			return &CommandError{Line: lineNum, Command: name, Err: err}
		}
		if name == "" {
			continue
		}
		if _, err := fmt.Fprintln(w, out); err != nil {
			return fmt.Errorf("writing output: %w", err)
		}
	}
	if err := scanner.Err(); err != nil {
		return fmt.Errorf("reading script: %w", err)
	}
	return nil
}

// Exec executes a single script line and returns its output and the
// command name. Blank and comment-only lines return an empty name.
func Exec(jl *location.Jumplist, line string) (out, name string, err error) {
	fields := strings.Fields(stripComment(line))
	if len(fields) == 0 {
		return "", "", nil
	}

	name, args := strings.ToLower(fields[0]), fields[1:]
	cmd, ok := commands[name]
	if !ok {
		return "", name, ErrUnknownCommand
	}
	if len(args) != cmd.args {
		return "", name, fmt.Errorf("%w: want %d, got %d", ErrArgumentCount, cmd.args, len(args))
	}
	out, err = cmd.run(jl, args)
	return out, name, err
}

// stripComment removes a # comment. A # only starts a comment at the
// beginning of the line or after whitespace, so paths may contain it.
func stripComment(line string) string {
	for i := 0; i < len(line); i++ {
		if line[i] == '#' && (i == 0 || line[i-1] == ' ' || line[i-1] == '\t') {
			return line[:i]
		}
	}
	return line
}

// parseArg parses a location argument; "-" means no location.
func parseArg(arg string) (*location.Location, error) {
	if arg == "-" {
		return nil, nil
	}
	loc, err := location.Parse(arg)
	if err != nil {
		return nil, err
	}
	return &loc, nil
}

func visit(jl *location.Jumplist, args []string) (string, error) {
	loc, err := parseArg(args[0])
	if err != nil {
		return "", err
	}
	if loc == nil {
		dropped, ok := jl.Record(nil)
		return "dropped " + format(dropped, ok), nil
	}
	evicted, ok := jl.Record(loc)
	if !ok {
		return "ok", nil
	}
	return "evicted " + evicted.String(), nil
}

func amend(jl *location.Jumplist, args []string) (string, error) {
	loc, err := parseArg(args[0])
	if err != nil {
		return "", err
	}
	if loc == nil {
		dropped, ok := jl.Amend(nil)
		return "dropped " + format(dropped, ok), nil
	}
	prev, ok := jl.Amend(loc)
	return "was " + format(prev, ok), nil
}

func move(fn func(*location.Jumplist) (location.Location, bool)) func(*location.Jumplist, []string) (string, error) {
	return func(jl *location.Jumplist, _ []string) (string, error) {
		return format(fn(jl)), nil
	}
}

func peek(jl *location.Jumplist, _ []string) (string, error) {
	back := format(jl.PeekBack())
	forward := format(jl.PeekForward())
	return back + " " + forward, nil
}

func list(jl *location.Jumplist, _ []string) (string, error) {
	entries := jl.Entries()
	if len(entries) == 0 {
		return None, nil
	}
	pos := jl.Position()
	parts := make([]string, len(entries))
	for i, loc := range entries {
		parts[i] = loc.String()
		if i == pos {
			parts[i] = "*" + parts[i]
		}
	}
	return strings.Join(parts, " "), nil
}

func length(jl *location.Jumplist, _ []string) (string, error) {
	return fmt.Sprintf("%d/%d", jl.Len(), jl.Cap()), nil
}

func check(jl *location.Jumplist, _ []string) (string, error) {
	if !jl.Healthy() {
		return "unhealthy", nil
	}
	return "ok", nil
}

func format(loc location.Location, ok bool) string {
	if !ok {
		return None
	}
	return loc.String()
}
