package lua

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"
	"time"

	glua "github.com/yuin/gopher-lua"
)

type recordLogger struct {
	mu    sync.Mutex
	lines []string
}

func (r *recordLogger) Info(msg string, args ...any) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.lines = append(r.lines, fmt.Sprintf(msg, args...))
}

func newState(t *testing.T, opts ...StateOption) *State {
	t.Helper()
	s, err := NewState(opts...)
	if err != nil {
		t.Fatalf("NewState: %v", err)
	}
	t.Cleanup(func() { _ = s.Close() })
	return s
}

func TestDoString(t *testing.T) {
	s := newState(t)
	if err := s.DoString(`x = 1 + 1`); err != nil {
		t.Fatalf("DoString: %v", err)
	}
	if v := s.GetGlobal("x"); v != glua.LNumber(2) {
		t.Errorf("x = %v", v)
	}
	if err := s.DoString(`this is not lua`); err == nil {
		t.Error("expected syntax error")
	}
}

func TestDoFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "init.lua")
	if err := os.WriteFile(path, []byte(`greeting = "hi" .. "!"`), 0o644); err != nil {
		t.Fatal(err)
	}
	s := newState(t)
	if err := s.DoFile(path); err != nil {
		t.Fatalf("DoFile: %v", err)
	}
	if v := s.GetGlobal("greeting"); v.String() != "hi!" {
		t.Errorf("greeting = %v", v)
	}
}

func TestUnsafeGlobalsRemoved(t *testing.T) {
	s := newState(t)
	for _, name := range []string{"dofile", "loadfile", "load", "require", "io", "os", "debug"} {
		if v := s.GetGlobal(name); v != glua.LNil {
			t.Errorf("%s = %v, want nil", name, v)
		}
	}
	if v := s.GetGlobal("string"); v == glua.LNil {
		t.Error("string library missing")
	}
}

func TestPrintGoesToLogger(t *testing.T) {
	log := &recordLogger{}
	s := newState(t, WithLogger(log))
	if err := s.DoString(`print("a", 1, true)`); err != nil {
		t.Fatalf("DoString: %v", err)
	}
	if len(log.lines) != 1 || log.lines[0] != "lua: a\t1\ttrue" {
		t.Errorf("lines = %q", log.lines)
	}
}

func TestCall(t *testing.T) {
	s := newState(t)
	if err := s.DoString(`
function add(a, b) return a + b, "done" end
function nothing() end
notfn = 3
`); err != nil {
		t.Fatal(err)
	}

	got, err := s.Call("add", glua.LNumber(2), glua.LNumber(3))
	if err != nil {
		t.Fatalf("Call: %v", err)
	}
	if len(got) != 2 || got[0] != glua.LNumber(5) || got[1].String() != "done" {
		t.Errorf("results = %v", got)
	}

	got, err = s.Call("nothing")
	if err != nil || got == nil || len(got) != 0 {
		t.Errorf("nothing = %v, %v", got, err)
	}

	if _, err := s.Call("notfn"); err == nil || !strings.Contains(err.Error(), "not a function") {
		t.Errorf("notfn err = %v", err)
	}
	if _, err := s.Call("missing"); err == nil {
		t.Error("missing function should fail")
	}
}

func TestExecutionTimeout(t *testing.T) {
	s := newState(t, WithExecutionTimeout(50*time.Millisecond))
	err := s.DoString(`while true do end`)
	if !errors.Is(err, ErrExecutionTimeout) {
		t.Fatalf("err = %v, want ErrExecutionTimeout", err)
	}
	if err := s.DoString(`y = 1`); err != nil {
		t.Errorf("state unusable after timeout: %v", err)
	}
}

func TestClosedState(t *testing.T) {
	s := newState(t)
	if err := s.Close(); err != nil {
		t.Fatal(err)
	}
	if err := s.Close(); err != nil {
		t.Errorf("second Close: %v", err)
	}
	if err := s.DoString(`x = 1`); !errors.Is(err, ErrStateClosed) {
		t.Errorf("DoString = %v", err)
	}
	if _, err := s.Call("f"); !errors.Is(err, ErrStateClosed) {
		t.Errorf("Call = %v", err)
	}
	if v := s.GetGlobal("x"); v != glua.LNil {
		t.Errorf("GetGlobal = %v", v)
	}
}
