package main

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/vovakirdan/ghostchase/internal/fault"
)

const roomLevel = "WWWWWWW\nW.....W\nW..P..W\nW.....W\nWWWWWWW\n"

type result struct {
	code   int
	stdout string
	stderr string
}

func invoke(t *testing.T, stdin string, args ...string) result {
	t.Helper()
	var stdout, stderr bytes.Buffer
	code := run(args, strings.NewReader(stdin), &stdout, &stderr)
	return result{code: code, stdout: stdout.String(), stderr: stderr.String()}
}

// isolate keeps user and working-directory config files out of the test.
func isolate(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	t.Setenv("HOME", dir)
	t.Chdir(dir)
	return dir
}

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("cannot write %s: %v", name, err)
	}
	return path
}

func TestExitCodes(t *testing.T) {
	dir := isolate(t)
	room := writeFile(t, dir, "room.txt", roomLevel)
	noPlayer := writeFile(t, dir, "noplayer.txt", "W..W\n")
	twoPlayers := writeFile(t, dir, "two.txt", "P.P\n")
	empty := writeFile(t, dir, "empty.txt", "\n\n")

	tests := []struct {
		name  string
		stdin string
		args  []string
		code  int
	}{
		{"quit", "q", []string{room}, fault.ExitOK},
		{"missing level", "q", []string{filepath.Join(dir, "nope.txt")}, fault.ExitOpen},
		{"directory level", "q", []string{dir}, fault.ExitRead},
		{"no player", "q", []string{noPlayer}, fault.ExitInvalid},
		{"two players", "q", []string{twoPlayers}, fault.ExitInvalid},
		{"empty level", "q", []string{empty}, fault.ExitInvalid},
		{"input exhausted", "wa\n", []string{room}, fault.ExitInvalid},
		{"missing input file", "", []string{"--input", filepath.Join(dir, "nope.txt"), room}, fault.ExitOpen},
		{"directory input", "", []string{"--input", dir, room}, fault.ExitRead},
		{"no levels", "q", nil, fault.ExitUsage},
		{"unknown flag", "q", []string{"--bogus", room}, fault.ExitUsage},
		{"unknown policy", "q", []string{"--policy", "teleport", room}, fault.ExitUsage},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			res := invoke(t, tc.stdin, tc.args...)
			if res.code != tc.code {
				t.Fatalf("exit code = %d, expected %d (stderr %q)", res.code, tc.code, res.stderr)
			}
			if tc.code == fault.ExitOK && res.stderr != "" {
				t.Errorf("stderr should be empty on success, got %q", res.stderr)
			}
			if tc.code != fault.ExitOK && res.stderr == "" {
				t.Error("stderr should explain the failure")
			}
		})
	}
}

func TestQuitOnlyTranscript(t *testing.T) {
	dir := isolate(t)
	room := writeFile(t, dir, "room.txt", roomLevel)

	res := invoke(t, "q", room)
	if res.code != 0 {
		t.Fatalf("exit code = %d: %s", res.code, res.stderr)
	}
	if len(res.stdout) <= len(roomLevel) {
		t.Errorf("transcript (%d bytes) should exceed the level (%d bytes)", len(res.stdout), len(roomLevel))
	}
	if !strings.HasPrefix(res.stdout, roomLevel) {
		t.Errorf("initial frame should reproduce the level, got %q", res.stdout)
	}
}

func TestNewlinesIgnored(t *testing.T) {
	dir := isolate(t)
	room := writeFile(t, dir, "room.txt", roomLevel)

	compact := invoke(t, "wasdq", room)
	spaced := invoke(t, "w\na\ns\nd\nq\n", room)
	if compact.code != 0 || spaced.code != 0 {
		t.Fatalf("exit codes %d %d", compact.code, spaced.code)
	}
	if compact.stdout != spaced.stdout {
		t.Errorf("transcripts differ:\n%s\n---\n%s", compact.stdout, spaced.stdout)
	}
}

func TestInputFile(t *testing.T) {
	dir := isolate(t)
	room := writeFile(t, dir, "room.txt", roomLevel)
	moves := writeFile(t, dir, "moves.txt", "wasdq")

	fromFile := invoke(t, "", "--input", moves, room)
	fromStdin := invoke(t, "wasdq", room)
	if fromFile.code != 0 {
		t.Fatalf("exit code = %d: %s", fromFile.code, fromFile.stderr)
	}
	if fromFile.stdout != fromStdin.stdout {
		t.Error("input file and stdin should produce the same transcript")
	}
}

func TestTwoLevelsLargerTranscript(t *testing.T) {
	dir := isolate(t)
	line := writeFile(t, dir, "line.txt", "P..\n")

	once := invoke(t, "dd", line)
	twice := invoke(t, "dddd", line, line)
	if once.code != 0 || twice.code != 0 {
		t.Fatalf("exit codes %d %d", once.code, twice.code)
	}
	if len(twice.stdout) <= len(once.stdout) {
		t.Errorf("two levels %d bytes, one level %d bytes", len(twice.stdout), len(once.stdout))
	}
}

func TestFramesBeforeFailureAreFlushed(t *testing.T) {
	dir := isolate(t)
	line := writeFile(t, dir, "line.txt", "P.\n")

	res := invoke(t, "d", line, filepath.Join(dir, "missing.txt"))
	if res.code != fault.ExitOpen {
		t.Fatalf("exit code = %d", res.code)
	}
	if !strings.Contains(res.stdout, "remaining 0 | won") {
		t.Errorf("first level's frames should be written, got %q", res.stdout)
	}
}

func TestCaughtExitsZero(t *testing.T) {
	dir := isolate(t)
	trap := writeFile(t, dir, "trap.txt", "P.I\n")

	res := invoke(t, "xx", trap)
	if res.code != 0 || res.stderr != "" {
		t.Fatalf("exit code = %d, stderr %q", res.code, res.stderr)
	}
	if !strings.HasSuffix(res.stdout, "I. \n// level 1 | step 2 | remaining 1 | caught\n") {
		t.Errorf("unexpected final frame in %q", res.stdout)
	}
}

func TestConfigRemapsKeysAndGlyphs(t *testing.T) {
	dir := isolate(t)
	cfg := writeFile(t, dir, "ghostchase.toml", `
[glyphs]
wall = "#"
player = "@"
collectibles = "o"

[keys]
up = "k"
left = "h"
down = "j"
right = "l"
quit = "x"
`)
	level := writeFile(t, dir, "hash.txt", "#@o#\n")

	res := invoke(t, "l", "--config", cfg, level)
	if res.code != 0 {
		t.Fatalf("exit code = %d: %s", res.code, res.stderr)
	}
	if !strings.HasSuffix(res.stdout, "# @#\n// level 1 | step 1 | remaining 0 | won\n") {
		t.Errorf("unexpected transcript %q", res.stdout)
	}
}

func TestLogLevelDebug(t *testing.T) {
	dir := isolate(t)
	room := writeFile(t, dir, "room.txt", roomLevel)

	res := invoke(t, "q", "--log-level", "debug", room)
	if res.code != 0 {
		t.Fatalf("exit code = %d", res.code)
	}
	if !strings.Contains(res.stderr, "level loaded") {
		t.Errorf("debug log should mention level loads, got %q", res.stderr)
	}

	bad := invoke(t, "q", "--log-level", "loud", room)
	if bad.code != fault.ExitUsage {
		t.Errorf("bad log level exit code = %d", bad.code)
	}
}

func TestCheckCommand(t *testing.T) {
	dir := isolate(t)
	room := writeFile(t, dir, "room.txt", roomLevel)
	bad := writeFile(t, dir, "bad.txt", "...\n")

	ok := invoke(t, "", "check", room)
	if ok.code != 0 {
		t.Fatalf("exit code = %d: %s", ok.code, ok.stderr)
	}
	if !strings.Contains(ok.stdout, "7x5  collectibles 14  ghosts 0") {
		t.Errorf("unexpected check output %q", ok.stdout)
	}

	mixed := invoke(t, "", "check", bad, room)
	if mixed.code != fault.ExitInvalid {
		t.Errorf("exit code = %d, expected %d", mixed.code, fault.ExitInvalid)
	}
	if !strings.Contains(mixed.stdout, "FAIL  "+bad) || !strings.Contains(mixed.stdout, "ok    "+room) {
		t.Errorf("every file should be reported, got %q", mixed.stdout)
	}
}

func TestPoliciesCommand(t *testing.T) {
	isolate(t)

	res := invoke(t, "", "policies")
	if res.code != 0 {
		t.Fatalf("exit code = %d", res.code)
	}
	for _, id := range []string{"chase", "greedy"} {
		if !strings.Contains(res.stdout, id) {
			t.Errorf("policies output should list %q: %q", id, res.stdout)
		}
	}
}

func TestJournalAndHistory(t *testing.T) {
	dir := isolate(t)
	line := writeFile(t, dir, "line.txt", "P.\n")
	db := filepath.Join(dir, "runs.db")

	play := invoke(t, "d", "--db", db, "--policy", "greedy", line)
	if play.code != 0 || play.stderr != "" {
		t.Fatalf("exit code = %d, stderr %q", play.code, play.stderr)
	}

	hist := invoke(t, "", "history", "--db", db)
	if hist.code != 0 {
		t.Fatalf("history exit code = %d: %s", hist.code, hist.stderr)
	}
	if !strings.Contains(hist.stdout, "greedy") || !strings.Contains(hist.stdout, "won") {
		t.Errorf("history should list the run, got %q", hist.stdout)
	}

	stats := invoke(t, "", "history", "--db", db, "--stats")
	if !strings.Contains(stats.stdout, line) || !strings.Contains(stats.stdout, "1 steps") {
		t.Errorf("stats should list the level, got %q", stats.stdout)
	}

	one := invoke(t, "", "history", "--db", db, "--level", line)
	if !strings.Contains(one.stdout, "Wins:    1") {
		t.Errorf("level stats should count the win, got %q", one.stdout)
	}

	cleared := invoke(t, "", "history", "--db", db, "--clear")
	if cleared.code != 0 {
		t.Fatalf("clear exit code = %d", cleared.code)
	}
	after := invoke(t, "", "history", "--db", db)
	if !strings.Contains(after.stdout, "No runs recorded yet.") {
		t.Errorf("journal should be empty after --clear, got %q", after.stdout)
	}
}
