package replay

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/dshills/jumptrail/internal/location"
)

// Interactive reads commands from r like Run, but reports failing commands
// to w and keeps going. prompt is written before each line. It returns at
// end of input or on "quit" or "exit".
func Interactive(ctx context.Context, jl *location.Jumplist, r io.Reader, w io.Writer, prompt string) error {
	scanner := bufio.NewScanner(r)
	for {
		if err := ctx.Err(); err != nil {
			return err
		}
		if _, err := io.WriteString(w, prompt); err != nil {
			return fmt.Errorf("writing prompt: %w", err)
		}
		if !scanner.Scan() {
			break
		}

		line := scanner.Text()
		switch strings.ToLower(strings.TrimSpace(line)) {
		case "quit", "exit":
			return nil
		case "help":
			line = ""
			if _, err := fmt.Fprintln(w, strings.Join(Commands(), " ")); err != nil {
				return fmt.Errorf("writing output: %w", err)
			}
		}

		out, name, err := Exec(jl, line)
		switch {
		case err != nil:
			out = fmt.Sprintf("error: %s: %v", name, err)
		case name == "":
			continue
		}
		if _, err := fmt.Fprintln(w, out); err != nil {
			return fmt.Errorf("writing output: %w", err)
		}
	}
	if err := scanner.Err(); err != nil {
		return fmt.Errorf("reading input: %w", err)
	}
	return nil
}
