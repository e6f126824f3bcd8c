package script

import (
	"bytes"
	"context"
	"errors"
	"math"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/dshills/jumptrail/internal/history"
	"github.com/dshills/jumptrail/internal/location"
	"github.com/dshills/jumptrail/internal/logging"
)

var _ history.Evaluator[location.Location] = (*Evaluator)(nil)

const sameFileScript = `
function can_replace(incoming, existing)
  return incoming.path == existing.path and math.abs(incoming.line - existing.line) <= 3
end
`

func TestEvaluatorCanReplace(t *testing.T) {
	e, err := NewEvaluator(sameFileScript)
	if err != nil {
		t.Fatalf("NewEvaluator() error = %v", err)
	}
	defer e.Close()

	tests := []struct {
		name     string
		incoming location.Location
		existing location.Location
		want     bool
	}{
		{"near", location.New("a.go", 10, 0), location.New("a.go", 12, 4), true},
		{"far", location.New("a.go", 10, 0), location.New("a.go", 20, 0), false},
		{"other file", location.New("a.go", 10, 0), location.New("b.go", 10, 0), false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := e.CanReplace(tt.incoming, tt.existing); got != tt.want {
				t.Errorf("CanReplace(%s, %s) = %v, want %v", tt.incoming, tt.existing, got, tt.want)
			}
		})
	}
}

func TestEvaluatorSeesOneIndexedFields(t *testing.T) {
	e, err := NewEvaluator(`
function can_replace(incoming, existing)
  return incoming.line == 1 and incoming.column == 1 and existing.path == "x/y.go"
end
`)
	if err != nil {
		t.Fatalf("NewEvaluator() error = %v", err)
	}
	defer e.Close()

	if !e.CanReplace(location.New("a.go", 0, 0), location.New("x/y.go", 5, 5)) {
		t.Error("script should see line 1 column 1 for the zero point")
	}
}

func TestEvaluatorLargestPoint(t *testing.T) {
	e, err := NewEvaluator(`
function can_replace(incoming, existing)
  return incoming.line == 4294967296 and incoming.column == 4294967296
end
`)
	if err != nil {
		t.Fatalf("NewEvaluator() error = %v", err)
	}
	defer e.Close()

	big := location.New("a.go", math.MaxUint32, math.MaxUint32)
	if !e.CanReplace(big, location.New("a.go", 0, 0)) {
		t.Error("script should see line and column 4294967296 without wrapping")
	}
}

func TestEvaluatorWithFunction(t *testing.T) {
	e, err := NewEvaluator(`function always() return true end`, WithFunction("always"))
	if err != nil {
		t.Fatalf("NewEvaluator() error = %v", err)
	}
	defer e.Close()

	if !e.CanReplace(location.New("a.go", 0, 0), location.New("b.go", 0, 0)) {
		t.Error("CanReplace() = false, want true")
	}
}

func TestNewEvaluatorErrors(t *testing.T) {
	if _, err := NewEvaluator(`x = 1`); !errors.Is(err, ErrNoFunction) {
		t.Errorf("NewEvaluator() without function error = %v, want ErrNoFunction", err)
	}
	if _, err := NewEvaluator(`can_replace = 3`); !errors.Is(err, ErrNoFunction) {
		t.Errorf("NewEvaluator() with non-function error = %v, want ErrNoFunction", err)
	}
	if _, err := NewEvaluator(`function (`); err == nil {
		t.Error("NewEvaluator() with syntax error should fail")
	}
}

func TestEvaluatorErrorMeansNoReplace(t *testing.T) {
	var out bytes.Buffer
	logger := logging.New(logging.Config{Level: logging.LevelWarn, Output: &out})

	e, err := NewEvaluator(`function can_replace(a, b) error("broken") end`, WithEvaluatorLogger(logger))
	if err != nil {
		t.Fatalf("NewEvaluator() error = %v", err)
	}
	defer e.Close()

	if e.CanReplace(location.New("a.go", 0, 0), location.New("a.go", 0, 0)) {
		t.Error("CanReplace() = true after script error, want false")
	}
	if !strings.Contains(out.String(), "broken") || !strings.Contains(out.String(), "[WARN]") {
		t.Errorf("log output = %q, want warning with script error", out.String())
	}
}

func TestEvaluatorTimeoutMeansNoReplace(t *testing.T) {
	e, err := NewEvaluator(`function can_replace(a, b) while true do end end`,
		WithStateOptions(WithExecutionTimeout(50*time.Millisecond)))
	if err != nil {
		t.Fatalf("NewEvaluator() error = %v", err)
	}
	defer e.Close()

	if e.CanReplace(location.New("a.go", 0, 0), location.New("a.go", 0, 0)) {
		t.Error("CanReplace() = true after timeout, want false")
	}
}

func TestLoadEvaluator(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "jumps.lua")
	if err := os.WriteFile(path, []byte(sameFileScript), 0o644); err != nil {
		t.Fatal(err)
	}

	e, err := LoadEvaluator(path)
	if err != nil {
		t.Fatalf("LoadEvaluator() error = %v", err)
	}
	defer e.Close()

	if !e.CanReplace(location.New("a.go", 1, 0), location.New("a.go", 2, 0)) {
		t.Error("CanReplace() = false, want true")
	}

	if _, err := LoadEvaluator(filepath.Join(dir, "missing.lua")); err == nil {
		t.Error("LoadEvaluator() on missing file should fail")
	}
}

func TestEvaluatorDrivesJumplist(t *testing.T) {
	e, err := NewEvaluator(sameFileScript)
	if err != nil {
		t.Fatalf("NewEvaluator() error = %v", err)
	}
	defer e.Close()

	jl := location.NewJumplist(5, e)
	for _, loc := range []location.Location{
		location.New("a.go", 10, 0),
		location.New("b.go", 1, 0),
		location.New("a.go", 11, 0),
	} {
		jl.Record(&loc)
	}

	got := jl.Entries()
	if len(got) != 2 || got[0].Path != "b.go" || got[1].Point.Line != 11 {
		t.Errorf("Entries() = %v, want [b.go:2:1 a.go:12:1]", got)
	}
}

func TestEvaluatorReload(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "jumps.lua")
	write := func(body string) {
		t.Helper()
		if err := os.WriteFile(path, []byte(body), 0o644); err != nil {
			t.Fatal(err)
		}
	}
	a, b := location.New("a.go", 0, 0), location.New("b.go", 0, 0)

	write(`function can_replace(i, e) return false end`)
	e, err := LoadEvaluator(path)
	if err != nil {
		t.Fatalf("LoadEvaluator() error = %v", err)
	}
	defer e.Close()

	write(`function can_replace(i, e) return true end`)
	if err := e.Reload(); err != nil {
		t.Fatalf("Reload() error = %v", err)
	}
	if !e.CanReplace(a, b) {
		t.Error("CanReplace() after Reload() = false, want true")
	}

	write(`x = 1`)
	if err := e.Reload(); !errors.Is(err, ErrNoFunction) {
		t.Errorf("Reload() of broken script error = %v, want ErrNoFunction", err)
	}
	if !e.CanReplace(a, b) {
		t.Error("failed Reload() should keep the previous script")
	}
}

func TestEvaluatorReloadNeedsFile(t *testing.T) {
	e, err := NewEvaluator(sameFileScript)
	if err != nil {
		t.Fatalf("NewEvaluator() error = %v", err)
	}
	defer e.Close()

	if err := e.Reload(); !errors.Is(err, ErrNotReloadable) {
		t.Errorf("Reload() error = %v, want ErrNotReloadable", err)
	}
	if err := e.Watch(context.Background()); !errors.Is(err, ErrNotReloadable) {
		t.Errorf("Watch() error = %v, want ErrNotReloadable", err)
	}
}

func TestEvaluatorWatch(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "jumps.lua")
	if err := os.WriteFile(path, []byte(`function can_replace(i, e) return false end`), 0o644); err != nil {
		t.Fatal(err)
	}

	e, err := LoadEvaluator(path)
	if err != nil {
		t.Fatalf("LoadEvaluator() error = %v", err)
	}
	defer e.Close()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	if err := e.Watch(ctx); err != nil {
		t.Fatalf("Watch() error = %v", err)
	}

	if err := os.WriteFile(path, []byte(`function can_replace(i, e) return true end`), 0o644); err != nil {
		t.Fatal(err)
	}

	a, b := location.New("a.go", 0, 0), location.New("b.go", 0, 0)
	deadline := time.Now().Add(5 * time.Second)
	for !e.CanReplace(a, b) {
		if time.Now().After(deadline) {
			t.Fatal("script change was not picked up")
		}
		time.Sleep(20 * time.Millisecond)
	}
}
