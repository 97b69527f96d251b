package session

import (
	"github.com/vovakirdan/ghostchase/internal/engine"
	"github.com/vovakirdan/ghostchase/internal/fault"
)

// LevelResult is the outcome of one level that was loaded.
type LevelResult struct {
	Number    int
	Path      string
	State     engine.State
	Steps     int
	Frames    int
	Collected int
	Total     int
}

// ResultOf captures the current outcome of the level played by e.
func ResultOf(e *engine.Engine, path string) LevelResult {
	return LevelResult{
		Number:    e.Number(),
		Path:      path,
		State:     e.State(),
		Steps:     e.Steps(),
		Frames:    e.Frames(),
		Collected: e.Level().Collected(),
		Total:     e.Level().Total,
	}
}

// Summary describes a whole run.
type Summary struct {
	Policy   string
	Input    string
	Levels   []LevelResult
	Outcome  string // final level state, or the fault kind of a failed run
	ExitCode int
	Err      string
}

// Won returns how many levels were won.
func (s Summary) Won() int {
	n := 0
	for _, r := range s.Levels {
		if r.State == engine.StateWon {
			n++
		}
	}
	return n
}

// Steps returns the number of turns played across all levels.
func (s Summary) Steps() int {
	n := 0
	for _, r := range s.Levels {
		n += r.Steps
	}
	return n
}

// Finish sets the outcome fields from the error that ended the run.
func (s *Summary) Finish(err error) {
	s.ExitCode = fault.ExitCode(err)
	if err != nil {
		s.Outcome = fault.KindOf(err).String()
		s.Err = err.Error()
		return
	}
	if n := len(s.Levels); n > 0 {
		s.Outcome = s.Levels[n-1].State.String()
	}
}
