package script

import (
	"bytes"
	"errors"
	"strings"
	"testing"
	"time"

	lua "github.com/yuin/gopher-lua"

	"github.com/dshills/jumptrail/internal/logging"
)

func TestStateDoString(t *testing.T) {
	s := NewState()
	defer s.Close()

	if err := s.DoString(`x = 1 + 1`); err != nil {
		t.Fatalf("DoString() error = %v", err)
	}

	num, ok := s.GetGlobal("x").(lua.LNumber)
	if !ok {
		t.Fatalf("x is not a number, got %T", s.GetGlobal("x"))
	}
	if float64(num) != 2 {
		t.Errorf("x = %v, want 2", num)
	}
}

func TestStateDoStringSyntaxError(t *testing.T) {
	s := NewState()
	defer s.Close()

	if err := s.DoString(`invalid lua code !!!`); err == nil {
		t.Error("DoString() with invalid code should return error")
	}
}

func TestStateSandbox(t *testing.T) {
	s := NewState()
	defer s.Close()

	for _, name := range []string{"dofile", "loadfile", "load", "loadstring", "require", "io", "os", "debug"} {
		if v := s.GetGlobal(name); v != lua.LNil {
			t.Errorf("%s should be nil in sandbox, got %s", name, v.Type())
		}
	}
	for _, name := range []string{"string", "table", "math", "pairs"} {
		if v := s.GetGlobal(name); v == lua.LNil {
			t.Errorf("%s should be available", name)
		}
	}
}

func TestStatePrintGoesToLogger(t *testing.T) {
	var out bytes.Buffer
	logger := logging.New(logging.Config{Level: logging.LevelInfo, Output: &out})

	s := NewState(WithLogger(logger))
	defer s.Close()

	if err := s.DoString(`print("hello", 42)`); err != nil {
		t.Fatalf("DoString() error = %v", err)
	}
	if !strings.Contains(out.String(), "lua: hello\t42") {
		t.Errorf("log output = %q, want print text", out.String())
	}
}

func TestStateCall(t *testing.T) {
	s := NewState()
	defer s.Close()

	if err := s.DoString(`function add(a, b) return a + b, "done" end`); err != nil {
		t.Fatalf("DoString() error = %v", err)
	}

	ret, err := s.Call("add", lua.LNumber(2), lua.LNumber(3))
	if err != nil {
		t.Fatalf("Call() error = %v", err)
	}
	if len(ret) != 2 {
		t.Fatalf("Call() returned %d values, want 2", len(ret))
	}
	if ret[0] != lua.LNumber(5) || ret[1] != lua.LString("done") {
		t.Errorf("Call() = %v, want [5 done]", ret)
	}
	if top := s.L.GetTop(); top != 0 {
		t.Errorf("stack top after Call() = %d, want 0", top)
	}
}

func TestStateCallNoResults(t *testing.T) {
	s := NewState()
	defer s.Close()

	if err := s.DoString(`function noop() end`); err != nil {
		t.Fatalf("DoString() error = %v", err)
	}
	ret, err := s.Call("noop")
	if err != nil {
		t.Fatalf("Call() error = %v", err)
	}
	if ret == nil || len(ret) != 0 {
		t.Errorf("Call() = %v, want empty slice", ret)
	}
}

func TestStateCallErrors(t *testing.T) {
	s := NewState()
	defer s.Close()

	if _, err := s.Call("missing"); !errors.Is(err, ErrNoFunction) {
		t.Errorf("Call(missing) error = %v, want ErrNoFunction", err)
	}

	if err := s.DoString(`function boom() error("bang") end`); err != nil {
		t.Fatalf("DoString() error = %v", err)
	}
	_, err := s.Call("boom")
	if err == nil || !strings.Contains(err.Error(), "bang") {
		t.Errorf("Call(boom) error = %v, want bang", err)
	}
	if top := s.L.GetTop(); top != 0 {
		t.Errorf("stack top after failed Call() = %d, want 0", top)
	}
}

func TestStateCallTimeout(t *testing.T) {
	s := NewState(WithExecutionTimeout(50 * time.Millisecond))
	defer s.Close()

	if err := s.DoString(`function spin() while true do end end`); err != nil {
		t.Fatalf("DoString() error = %v", err)
	}

	start := time.Now()
	_, err := s.Call("spin")
	if !errors.Is(err, ErrExecutionTimeout) {
		t.Fatalf("Call(spin) error = %v, want ErrExecutionTimeout", err)
	}
	if elapsed := time.Since(start); elapsed > 2*time.Second {
		t.Errorf("Call(spin) took %s", elapsed)
	}

	// The state stays usable after a timeout.
	if err := s.DoString(`function one() return 1 end`); err != nil {
		t.Fatalf("DoString() after timeout error = %v", err)
	}
	if ret, err := s.Call("one"); err != nil || len(ret) != 1 {
		t.Errorf("Call(one) after timeout = %v, %v", ret, err)
	}
}

func TestStateClose(t *testing.T) {
	s := NewState()
	if err := s.Close(); err != nil {
		t.Fatalf("Close() error = %v", err)
	}
	if !s.IsClosed() {
		t.Error("IsClosed() should be true after Close()")
	}
	if err := s.Close(); err != nil {
		t.Errorf("second Close() error = %v", err)
	}
	if err := s.DoString(`x = 1`); !errors.Is(err, ErrStateClosed) {
		t.Errorf("DoString() after Close() error = %v, want ErrStateClosed", err)
	}
	if _, err := s.Call("f"); !errors.Is(err, ErrStateClosed) {
		t.Errorf("Call() after Close() error = %v, want ErrStateClosed", err)
	}
	if v := s.GetGlobal("x"); v != lua.LNil {
		t.Errorf("GetGlobal() after Close() = %v, want nil", v)
	}
}

func TestStateSetGlobal(t *testing.T) {
	s := NewState()
	defer s.Close()

	s.SetGlobal("limit", lua.LNumber(7))
	if err := s.DoString(`doubled = limit * 2`); err != nil {
		t.Fatalf("DoString() error = %v", err)
	}
	if v := s.GetGlobal("doubled"); v != lua.LNumber(14) {
		t.Errorf("doubled = %v, want 14", v)
	}
}
