package input

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/vovakirdan/ghostchase/internal/core"
	"github.com/vovakirdan/ghostchase/internal/fault"
)

func drain(t *testing.T, s *Stream) []core.Action {
	t.Helper()
	var actions []core.Action
	for {
		a, err := s.Next()
		if errors.Is(err, ErrEndOfInput) {
			return actions
		}
		if err != nil {
			t.Fatalf("Next failed: %v", err)
		}
		actions = append(actions, a)
	}
}

func TestStreamMapsCommands(t *testing.T) {
	s := NewStream(strings.NewReader("wasdqx"), "test", DefaultKeymap())

	got := drain(t, s)
	expected := []core.Action{
		core.ActionUp, core.ActionLeft, core.ActionDown, core.ActionRight,
		core.ActionQuit, core.ActionNone,
	}

	if len(got) != len(expected) {
		t.Fatalf("got %d actions, expected %d", len(got), len(expected))
	}
	for i := range expected {
		if got[i] != expected[i] {
			t.Errorf("action %d = %v, expected %v", i, got[i], expected[i])
		}
	}
}

func TestStreamSkipsWhitespace(t *testing.T) {
	plain := drain(t, NewStream(strings.NewReader("wasdq"), "a", DefaultKeymap()))
	spaced := drain(t, NewStream(strings.NewReader("w\na\ns\nd\nq\n"), "b", DefaultKeymap()))
	noisy := drain(t, NewStream(strings.NewReader(" \tw\r\n\va\fs  d\n\nq"), "c", DefaultKeymap()))

	for _, other := range [][]core.Action{spaced, noisy} {
		if len(other) != len(plain) {
			t.Fatalf("whitespace changed the command count: %d vs %d", len(other), len(plain))
		}
		for i := range plain {
			if other[i] != plain[i] {
				t.Errorf("action %d = %v, expected %v", i, other[i], plain[i])
			}
		}
	}
}

func TestStreamEndOfInputIsSticky(t *testing.T) {
	s := NewStream(strings.NewReader("\n\n"), "blank", DefaultKeymap())

	for i := 0; i < 3; i++ {
		if _, err := s.Next(); !errors.Is(err, ErrEndOfInput) {
			t.Fatalf("call %d: expected ErrEndOfInput, got %v", i, err)
		}
	}
	if s.Consumed() != 2 {
		t.Errorf("Consumed() = %d, expected 2", s.Consumed())
	}
}

func TestStreamCustomKeymap(t *testing.T) {
	keys := Keymap{Up: 'k', Left: 'h', Down: 'j', Right: 'l', Quit: 'x'}
	got := drain(t, NewStream(strings.NewReader("khjlxw"), "vi", keys))

	expected := []core.Action{
		core.ActionUp, core.ActionLeft, core.ActionDown, core.ActionRight,
		core.ActionQuit, core.ActionNone,
	}
	for i := range expected {
		if got[i] != expected[i] {
			t.Errorf("action %d = %v, expected %v", i, got[i], expected[i])
		}
	}
}

func TestOpenFailures(t *testing.T) {
	dir := t.TempDir()

	_, err := Open(filepath.Join(dir, "missing"), DefaultKeymap())
	if fault.ExitCode(err) != 39 {
		t.Errorf("missing input: expected exit 39, got %d (%v)", fault.ExitCode(err), err)
	}

	// A directory opens but cannot be streamed.
	s, err := Open(dir, DefaultKeymap())
	if err != nil {
		t.Fatalf("opening a directory should succeed: %v", err)
	}
	defer s.Close()

	_, err = s.Next()
	if fault.KindOf(err) != fault.KindRead {
		t.Errorf("expected read failure, got %v", err)
	}
	if fault.ExitCode(err) != 40 {
		t.Errorf("expected exit 40, got %d", fault.ExitCode(err))
	}
}

func TestOpenFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "moves.txt")
	if err := os.WriteFile(path, []byte("dd\nq\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	s, err := Open(path, DefaultKeymap())
	if err != nil {
		t.Fatalf("Open failed: %v", err)
	}
	if s.Name() != path {
		t.Errorf("Name() = %q, expected %q", s.Name(), path)
	}

	got := drain(t, s)
	if len(got) != 3 || got[2] != core.ActionQuit {
		t.Errorf("unexpected actions %v", got)
	}
	if err := s.Close(); err != nil {
		t.Errorf("Close failed: %v", err)
	}
}

func TestOpenStdin(t *testing.T) {
	for _, path := range []string{"", "-"} {
		s, err := Open(path, DefaultKeymap())
		if err != nil {
			t.Fatalf("Open(%q) failed: %v", path, err)
		}
		if s.Name() != StdinName {
			t.Errorf("Name() = %q, expected %q", s.Name(), StdinName)
		}
		if err := s.Close(); err != nil {
			t.Errorf("closing stdin stream should be a no-op: %v", err)
		}
	}
}

func TestKeymapValidate(t *testing.T) {
	if err := DefaultKeymap().Validate(); err != nil {
		t.Fatalf("default keymap should be valid: %v", err)
	}

	tests := []struct {
		name string
		keys Keymap
	}{
		{"duplicate", Keymap{Up: 'w', Left: 'w', Down: 's', Right: 'd', Quit: 'q'}},
		{"newline", Keymap{Up: 'w', Left: 'a', Down: 's', Right: 'd', Quit: '\n'}},
		{"space", Keymap{Up: ' ', Left: 'a', Down: 's', Right: 'd', Quit: 'q'}},
		{"unset", Keymap{Up: 'w', Left: 'a', Down: 's', Right: 'd'}},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if err := tc.keys.Validate(); err == nil {
				t.Error("expected validation error")
			}
		})
	}
}
