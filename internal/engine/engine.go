// Package engine runs the turns of a single level.
//
// An Engine owns one parsed level, applies one command per turn, advances
// the ghosts through a movement policy and writes a frame to the transcript
// sink whenever the board changed.
package engine

import (
	"io"

	"github.com/vovakirdan/ghostchase/internal/core"
	"github.com/vovakirdan/ghostchase/internal/fault"
	"github.com/vovakirdan/ghostchase/internal/level"
	"github.com/vovakirdan/ghostchase/internal/registry"
)

// Engine is the turn state machine of one level.
type Engine struct {
	lvl    *level.Level
	policy registry.Policy
	sink   io.Writer
	number int // 1-based position of the level in the session

	state  State
	steps  int
	frames int
	screen *core.Screen
}

// New creates an engine for lvl. Frames are written to sink, which the
// caller owns. number is the level's 1-based position in its session.
func New(lvl *level.Level, policy registry.Policy, sink io.Writer, number int) *Engine {
	return &Engine{
		lvl:    lvl,
		policy: policy,
		sink:   sink,
		number: number,
		state:  StateActive,
		screen: core.NewScreen(lvl.Grid.W, lvl.Grid.H),
	}
}

// Start writes the initial frame. A level with nothing to collect is won
// on the spot and its initial frame is also its last.
func (e *Engine) Start() error {
	if e.lvl.Remaining == 0 {
		e.state = StateWon
	}
	return e.emit()
}

// Step applies one command and advances every ghost.
// Calls after the level concluded are ignored.
func (e *Engine) Step(a core.Action) (State, error) {
	if e.state.Terminal() {
		return e.state, nil
	}
	e.steps++

	if a == core.ActionQuit {
		e.state = StateQuit
		return e.state, e.emit()
	}

	changed := e.movePlayer(a)
	if e.moveGhosts() {
		changed = true
	}

	switch {
	case e.lvl.GhostAt(e.lvl.Player.Pos):
		e.state = StateCaught
	case e.lvl.Remaining == 0:
		e.state = StateWon
	}

	if changed || e.state.Terminal() {
		return e.state, e.emit()
	}
	return e.state, nil
}

// Exhaust records that the command input ended. It only affects an active level.
func (e *Engine) Exhaust() {
	if e.state == StateActive {
		e.state = StateInputExhausted
	}
}

// movePlayer applies a directional action. Returns true if the player moved.
func (e *Engine) movePlayer(a core.Action) bool {
	d, ok := a.Dir()
	if !ok {
		return false
	}

	g := e.lvl.Grid
	next := e.lvl.Player.Pos.Step(d)
	if !g.Passable(next) {
		return false
	}

	e.lvl.Player.Pos = next
	if g.Consume(next) {
		e.lvl.Remaining--
	}
	return true
}

// moveGhosts asks the policy for each ghost's next tile, in source order.
// Returns true if any ghost moved.
func (e *Engine) moveGhosts() bool {
	moved := false
	g := e.lvl.Grid
	for i := range e.lvl.Ghosts {
		gh := &e.lvl.Ghosts[i]
		next := e.policy.Next(g, gh.Pos, e.lvl.Player.Pos)
		if next == gh.Pos || next.Manhattan(gh.Pos) != 1 || !g.Passable(next) {
			continue
		}
		gh.Pos = next
		moved = true
	}
	return moved
}

func (e *Engine) emit() error {
	if _, err := io.WriteString(e.sink, e.Frame()); err != nil {
		return fault.New(fault.KindWrite, "write frame", e.lvl.Name, err)
	}
	e.frames++
	return nil
}

// State returns the current level state.
func (e *Engine) State() State {
	return e.state
}

// Level returns the level being played.
func (e *Engine) Level() *level.Level {
	return e.lvl
}

// Number returns the level's position in its session.
func (e *Engine) Number() int {
	return e.number
}

// Steps returns how many turns have been applied.
func (e *Engine) Steps() int {
	return e.steps
}

// Frames returns how many frames have been written.
func (e *Engine) Frames() int {
	return e.frames
}

// Snapshot is a copy of the mutable level state.
type Snapshot struct {
	Level     int
	Step      int
	State     State
	Player    core.Coord
	Ghosts    []core.Coord
	Remaining int
}

// Snapshot returns the current positions and counters.
func (e *Engine) Snapshot() Snapshot {
	ghosts := make([]core.Coord, len(e.lvl.Ghosts))
	for i, gh := range e.lvl.Ghosts {
		ghosts[i] = gh.Pos
	}
	return Snapshot{
		Level:     e.number,
		Step:      e.steps,
		State:     e.state,
		Player:    e.lvl.Player.Pos,
		Ghosts:    ghosts,
		Remaining: e.lvl.Remaining,
	}
}
