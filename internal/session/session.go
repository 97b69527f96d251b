// Package session plays an ordered list of levels against one command stream
// and one transcript sink.
package session

import (
	"errors"
	"fmt"
	"io"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/ghostchase/internal/core"
	"github.com/vovakirdan/ghostchase/internal/engine"
	"github.com/vovakirdan/ghostchase/internal/fault"
	"github.com/vovakirdan/ghostchase/internal/input"
	"github.com/vovakirdan/ghostchase/internal/level"
	"github.com/vovakirdan/ghostchase/internal/registry"
)

// DefaultPolicy is used when Options.Policy is empty.
const DefaultPolicy = "chase"

// Commands is the source of turn commands.
// *input.Stream is the production implementation.
type Commands interface {
	Next() (core.Action, error)
}

// Recorder receives the summary of every run, successful or not.
type Recorder interface {
	SaveRun(sum Summary) error
}

// Options configures a Session.
type Options struct {
	Levels   []string      // level paths in play order
	Loader   *level.Loader // nil means the default glyph set
	Policy   string        // ghost policy ID
	Input    string        // command source name, for the summary
	Recorder Recorder      // optional
	Logger   *log.Logger   // optional
}

// Session drives the levels of one process invocation.
type Session struct {
	opts   Options
	loader *level.Loader
	cmds   Commands
	sink   io.Writer
	log    *log.Logger
}

// New validates opts and creates a session. cmds and sink are used by
// reference for every level and are never closed by the session.
func New(opts Options, cmds Commands, sink io.Writer) (*Session, error) {
	if len(opts.Levels) == 0 {
		return nil, errors.New("session: no levels given")
	}
	if opts.Policy == "" {
		opts.Policy = DefaultPolicy
	}
	if !registry.Exists(opts.Policy) {
		return nil, fmt.Errorf("session: unknown ghost policy %q", opts.Policy)
	}

	loader := opts.Loader
	if loader == nil {
		loader = level.NewLoader(level.DefaultGlyphs())
	}
	logger := opts.Logger
	if logger == nil {
		logger = log.New(io.Discard)
	}

	return &Session{
		opts:   opts,
		loader: loader,
		cmds:   cmds,
		sink:   sink,
		log:    logger,
	}, nil
}

// Run plays the levels in order.
// Won advances to the next level. Quit and Caught end the session without
// error. A loader failure, a write failure or the command input ending
// while a level is still active ends it with a fault error.
func (s *Session) Run() (sum Summary, err error) {
	sum = Summary{
		Policy: s.opts.Policy,
		Input:  s.opts.Input,
		Levels: make([]LevelResult, 0, len(s.opts.Levels)),
	}
	defer func() {
		sum.Finish(err)
		s.record(sum)
	}()

	for i, path := range s.opts.Levels {
		res, err := s.playLevel(i+1, path)
		if res != nil {
			sum.Levels = append(sum.Levels, *res)
		}
		if err != nil {
			return sum, err
		}

		switch res.State {
		case engine.StateQuit:
			s.log.Debug("session quit", "level", res.Number)
			return sum, nil
		case engine.StateCaught:
			s.log.Debug("player caught", "level", res.Number, "step", res.Steps)
			return sum, nil
		}
	}
	return sum, nil
}

// playLevel loads and plays one level. The result is nil when the level
// could not be loaded.
func (s *Session) playLevel(number int, path string) (*LevelResult, error) {
	lvl, err := s.loader.Load(path)
	if err != nil {
		s.log.Debug("cannot load level", "level", number, "path", path, "err", err)
		return nil, err
	}
	s.log.Debug("level loaded",
		"level", number,
		"path", path,
		"width", lvl.Grid.W,
		"height", lvl.Grid.H,
		"ghosts", len(lvl.Ghosts),
		"collectibles", lvl.Total,
	)

	policy, err := registry.Create(s.opts.Policy)
	if err != nil {
		return nil, err
	}

	eng := engine.New(lvl, policy, s.sink, number)
	res := &LevelResult{}
	defer func() { *res = ResultOf(eng, path) }()

	if err := eng.Start(); err != nil {
		return res, err
	}

	for !eng.State().Terminal() {
		a, err := s.cmds.Next()
		if errors.Is(err, input.ErrEndOfInput) {
			eng.Exhaust()
			s.log.Debug("command input ended", "level", number, "step", eng.Steps())
			return res, fault.New(fault.KindExhausted, "play level", path, err)
		}
		if err != nil {
			return res, err
		}

		state, err := eng.Step(a)
		if err != nil {
			return res, err
		}
		s.log.Debug("turn", "level", number, "step", eng.Steps(), "action", a, "state", state)
	}

	s.log.Debug("level concluded", "level", number, "state", eng.State(), "steps", eng.Steps())
	return res, nil
}

func (s *Session) record(sum Summary) {
	if s.opts.Recorder == nil {
		return
	}
	if err := s.opts.Recorder.SaveRun(sum); err != nil {
		s.log.Error("cannot record run", "err", err)
	}
}
