package tui

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/ghostchase/internal/core"
	"github.com/vovakirdan/ghostchase/internal/engine"
	"github.com/vovakirdan/ghostchase/internal/fault"
	_ "github.com/vovakirdan/ghostchase/internal/ghost"
	"github.com/vovakirdan/ghostchase/internal/input"
	"github.com/vovakirdan/ghostchase/internal/session"
	"github.com/vovakirdan/ghostchase/internal/storage"
)

func runeKey(r rune) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{r}}
}

func writeLevel(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("cannot write level: %v", err)
	}
	return path
}

func press(t *testing.T, m PlayModel, msgs ...tea.KeyMsg) PlayModel {
	t.Helper()
	for _, msg := range msgs {
		next, _ := m.Update(msg)
		var ok bool
		m, ok = next.(PlayModel)
		if !ok {
			t.Fatalf("Update returned %T", next)
		}
	}
	return m
}

func TestPlayKeyMapAction(t *testing.T) {
	keys := NewPlayKeyMap(input.DefaultKeymap())

	tests := []struct {
		name   string
		msg    tea.KeyMsg
		action core.Action
		ok     bool
	}{
		{"w", runeKey('w'), core.ActionUp, true},
		{"arrow left", tea.KeyMsg{Type: tea.KeyLeft}, core.ActionLeft, true},
		{"s", runeKey('s'), core.ActionDown, true},
		{"arrow right", tea.KeyMsg{Type: tea.KeyRight}, core.ActionRight, true},
		{"wait", runeKey('.'), core.ActionNone, true},
		{"quit", runeKey('q'), core.ActionQuit, true},
		{"ctrl+c", tea.KeyMsg{Type: tea.KeyCtrlC}, core.ActionQuit, true},
		{"unbound", runeKey('x'), core.ActionNone, false},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			a, ok := keys.Action(tc.msg)
			if a != tc.action || ok != tc.ok {
				t.Errorf("Action() = %v, %v; expected %v, %v", a, ok, tc.action, tc.ok)
			}
		})
	}
}

func TestPlayKeyMapCustomKeys(t *testing.T) {
	keys := NewPlayKeyMap(input.Keymap{Up: 'k', Left: 'h', Down: 'j', Right: 'l', Quit: 'x'})

	if a, ok := keys.Action(runeKey('h')); !ok || a != core.ActionLeft {
		t.Errorf("h should move left, got %v %v", a, ok)
	}
	if _, ok := keys.Action(runeKey('a')); ok {
		t.Error("default key should not be bound when remapped")
	}
}

func TestPlayModelWinsLevels(t *testing.T) {
	dir := t.TempDir()
	first := writeLevel(t, dir, "one.txt", "P.\n")
	empty := writeLevel(t, dir, "empty.txt", "P \n")
	last := writeLevel(t, dir, "two.txt", ".P\n")

	var transcript bytes.Buffer
	m := NewPlayModel(PlayOptions{
		Levels: []string{first, empty, last},
		Keys:   input.DefaultKeymap(),
		Sink:   &transcript,
	})

	m = press(t, m, runeKey('x'), runeKey('d'))
	if m.engine.Number() != 3 {
		t.Fatalf("expected to skip the empty level onto level 3, at %d", m.engine.Number())
	}

	m = press(t, m, tea.KeyMsg{Type: tea.KeyLeft})
	if !m.done || m.Err() != nil {
		t.Fatalf("session should be done without error, err %v", m.Err())
	}

	sum := m.Summary()
	if sum.Won() != 3 || sum.Outcome != "won" || sum.Input != "keyboard" {
		t.Errorf("summary = %+v", sum)
	}
	if sum.Levels[0].Steps != 1 {
		t.Errorf("unbound key should not count as a turn, steps %d", sum.Levels[0].Steps)
	}
	if !strings.Contains(transcript.String(), "// level 3 | step 1 | remaining 0 | won") {
		t.Errorf("transcript missing final frame: %q", transcript.String())
	}
	if !strings.Contains(m.View(), "All 3 levels cleared") {
		t.Errorf("view should announce the win:\n%s", m.View())
	}

	_, cmd := m.Update(runeKey('d'))
	if cmd == nil {
		t.Error("any key after the end should quit")
	}
}

func TestPlayModelCaught(t *testing.T) {
	path := writeLevel(t, t.TempDir(), "ghost.txt", "P.I\n")

	m := NewPlayModel(PlayOptions{Levels: []string{path}, Keys: input.DefaultKeymap()})
	m = press(t, m, runeKey('.'), runeKey('.'))

	if m.engine.State() != engine.StateCaught {
		t.Fatalf("state = %v, expected caught", m.engine.State())
	}
	if !strings.Contains(m.View(), "Caught!") {
		t.Errorf("view should announce the loss:\n%s", m.View())
	}
}

func TestPlayModelQuit(t *testing.T) {
	path := writeLevel(t, t.TempDir(), "one.txt", "P.\n")

	m := NewPlayModel(PlayOptions{Levels: []string{path}, Keys: input.DefaultKeymap()})
	next, cmd := m.Update(runeKey('q'))
	if cmd == nil {
		t.Fatal("quit should end the program")
	}
	if got := next.(PlayModel).Summary().Outcome; got != "quit" {
		t.Errorf("outcome = %q", got)
	}
}

func TestPlayModelLoadFailure(t *testing.T) {
	m := NewPlayModel(PlayOptions{
		Levels: []string{filepath.Join(t.TempDir(), "missing.txt")},
		Keys:   input.DefaultKeymap(),
	})
	if fault.ExitCode(m.Err()) != fault.ExitOpen {
		t.Errorf("exit code = %d, expected %d", fault.ExitCode(m.Err()), fault.ExitOpen)
	}
	if !strings.Contains(m.View(), "missing.txt") {
		t.Errorf("view should show the error, got %q", m.View())
	}
}

type memRecorder struct {
	runs []session.Summary
}

func (r *memRecorder) SaveRun(sum session.Summary) error {
	r.runs = append(r.runs, sum)
	return nil
}

func TestPlayModelRecordsRun(t *testing.T) {
	path := writeLevel(t, t.TempDir(), "one.txt", "P.\n")
	rec := &memRecorder{}

	m := NewPlayModel(PlayOptions{Levels: []string{path}, Keys: input.DefaultKeymap(), Recorder: rec})
	m = press(t, m, runeKey('d'), runeKey('d'))

	if len(rec.runs) != 1 {
		t.Fatalf("recorded %d runs, expected exactly 1", len(rec.runs))
	}
	if rec.runs[0].Policy != session.DefaultPolicy {
		t.Errorf("policy = %q", rec.runs[0].Policy)
	}
}

func TestPlayModelTooSmall(t *testing.T) {
	path := writeLevel(t, t.TempDir(), "wide.txt", "P"+strings.Repeat(".", 60)+"\n")

	m := NewPlayModel(PlayOptions{Levels: []string{path}, Keys: input.DefaultKeymap()})
	next, _ := m.Update(tea.WindowSizeMsg{Width: 20, Height: 10})
	if !strings.Contains(next.(PlayModel).View(), "Terminal too small") {
		t.Error("expected a too-small notice")
	}
}

func TestRenderScreenKeepsRunes(t *testing.T) {
	scr := core.NewScreen(3, 2)
	scr.SetCell(0, 0, 'W', core.ColorBlue)
	scr.SetCell(1, 0, 'P', core.ColorBrightYellow)
	scr.SetCell(2, 1, 'I', core.ColorRed)

	out := RenderScreen(scr)
	for _, r := range "WPI" {
		if !strings.ContainsRune(out, r) {
			t.Errorf("rendered screen lost %q: %q", r, out)
		}
	}
	if strings.Count(out, "\n") != 1 {
		t.Errorf("expected 2 rows, got %q", out)
	}
}

type fakeHistory struct {
	runs   []storage.RunEntry
	levels map[int64][]storage.LevelEntry
}

func (f fakeHistory) RecentRuns(int) ([]storage.RunEntry, error) {
	return f.runs, nil
}

func (f fakeHistory) RunLevels(id int64) ([]storage.LevelEntry, error) {
	return f.levels[id], nil
}

func TestHistoryModel(t *testing.T) {
	store := fakeHistory{
		runs: []storage.RunEntry{
			{ID: 2, Policy: "chase", Outcome: "caught", Levels: 1, CreatedAt: time.Now()},
			{ID: 1, Policy: "greedy", Outcome: "won", Levels: 2, Won: 2, CreatedAt: time.Now()},
		},
		levels: map[int64][]storage.LevelEntry{
			2: {{RunID: 2, Number: 1, Path: "maze.txt", State: "caught"}},
			1: {
				{RunID: 1, Number: 1, Path: "a.txt", State: "won"},
				{RunID: 1, Number: 2, Path: "b.txt", State: "won"},
			},
		},
	}

	m := NewHistoryModel(store, 100, 40)
	if len(m.levels) != 1 || m.levels[0].Path != "maze.txt" {
		t.Fatalf("first run's levels not loaded: %+v", m.levels)
	}

	next, _ := m.Update(tea.KeyMsg{Type: tea.KeyDown})
	m = next.(HistoryModel)
	if len(m.levels) != 2 {
		t.Errorf("moving down should load run #1, got %+v", m.levels)
	}
	if !strings.Contains(m.View(), "b.txt") {
		t.Error("view should list the selected run's levels")
	}

	next, cmd := m.Update(runeKey('q'))
	if cmd == nil || next.(HistoryModel).View() != "" {
		t.Error("q should quit")
	}
}

func TestHistoryModelEmpty(t *testing.T) {
	m := NewHistoryModel(fakeHistory{}, 80, 24)
	if !strings.Contains(m.View(), "No runs recorded yet") {
		t.Errorf("unexpected view:\n%s", m.View())
	}
}
