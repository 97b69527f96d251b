package tui

import (
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/vovakirdan/ghostchase/internal/engine"
	"github.com/vovakirdan/ghostchase/internal/input"
	"github.com/vovakirdan/ghostchase/internal/level"
	"github.com/vovakirdan/ghostchase/internal/registry"
	"github.com/vovakirdan/ghostchase/internal/session"
)

// PlayOptions configures an interactive play session.
type PlayOptions struct {
	Levels   []string
	Loader   *level.Loader
	Policy   string
	Keys     input.Keymap
	Recorder session.Recorder // optional
	Sink     io.Writer        // optional transcript copy
}

var (
	titleStyle  = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("229"))
	statusStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("245"))
	helpStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("241"))
	wonStyle    = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("10"))
	lostStyle   = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("9"))
	boardStyle  = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("240"))
)

// PlayModel is the Bubble Tea model for playing levels one key per turn.
type PlayModel struct {
	opts    PlayOptions
	keys    PlayKeyMap
	help    help.Model
	engine  *engine.Engine
	current int // index into opts.Levels
	summary session.Summary
	err     error
	done    bool // every level concluded or the session failed
	width   int
	height  int
}

// NewPlayModel creates the model and loads the first level.
func NewPlayModel(opts PlayOptions) PlayModel {
	if opts.Loader == nil {
		opts.Loader = level.NewLoader(level.DefaultGlyphs())
	}
	if opts.Sink == nil {
		opts.Sink = io.Discard
	}
	if opts.Policy == "" {
		opts.Policy = session.DefaultPolicy
	}

	h := help.New()
	h.ShowAll = false

	m := PlayModel{
		opts: opts,
		keys: NewPlayKeyMap(opts.Keys),
		help: h,
		summary: session.Summary{
			Policy: opts.Policy,
			Input:  "keyboard",
		},
	}
	m.load(0)
	return m
}

// load starts level i. Finishes the session when there is none or it fails.
func (m *PlayModel) load(i int) {
	m.current = i
	if i >= len(m.opts.Levels) {
		m.finish(nil)
		return
	}

	path := m.opts.Levels[i]
	lvl, err := m.opts.Loader.Load(path)
	if err != nil {
		m.finish(err)
		return
	}
	policy, err := registry.Create(m.opts.Policy)
	if err != nil {
		m.finish(err)
		return
	}

	m.engine = engine.New(lvl, policy, m.opts.Sink, i+1)
	if err := m.engine.Start(); err != nil {
		m.finish(err)
		return
	}
	if m.engine.State() == engine.StateWon {
		m.conclude()
	}
}

// conclude records the current level and moves on when it was won.
func (m *PlayModel) conclude() {
	m.summary.Levels = append(m.summary.Levels,
		session.ResultOf(m.engine, m.opts.Levels[m.current]))

	switch m.engine.State() {
	case engine.StateWon:
		if m.current+1 < len(m.opts.Levels) {
			m.load(m.current + 1)
			return
		}
		m.finish(nil)
	default:
		m.finish(nil)
	}
}

func (m *PlayModel) finish(err error) {
	if m.done {
		return
	}
	m.done = true
	m.err = err
	m.summary.Finish(err)
	if m.opts.Recorder != nil {
		//nolint:errcheck // Best-effort save, the result is still shown
		m.opts.Recorder.SaveRun(m.summary)
	}
}

// Init initializes the model.
func (m PlayModel) Init() tea.Cmd {
	return nil
}

// Update handles messages and updates the model state.
func (m PlayModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.help.Width = msg.Width
		return m, nil
	}

	return m, nil
}

// handleKey plays one turn per bound key.
func (m PlayModel) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if m.done {
		return m, tea.Quit
	}

	if key.Matches(msg, m.keys.Help) {
		m.help.ShowAll = !m.help.ShowAll
		return m, nil
	}

	a, ok := m.keys.Action(msg)
	if !ok {
		return m, nil
	}

	if _, err := m.engine.Step(a); err != nil {
		m.finish(err)
		return m, tea.Quit
	}
	if m.engine.State().Terminal() {
		m.conclude()
	}
	if m.engine.State() == engine.StateQuit {
		return m, tea.Quit
	}
	return m, nil
}

// View renders the current state to a string for display.
func (m PlayModel) View() string {
	if m.engine == nil {
		if m.err != nil {
			return lostStyle.Render(m.err.Error()) + "\n"
		}
		return ""
	}

	var b strings.Builder

	lvl := m.engine.Level()
	title := fmt.Sprintf("GHOSTCHASE  level %d/%d  %s", m.engine.Number(), len(m.opts.Levels), lvl.Name)
	b.WriteString(titleStyle.Render(title))
	b.WriteString("\n")

	scr := m.engine.Render()
	if m.width > 0 && (scr.Width()+2 > m.width || scr.Height()+6 > m.height) {
		b.WriteString(lostStyle.Render(fmt.Sprintf(
			"Terminal too small: board needs %dx%d", scr.Width()+2, scr.Height()+6)))
		b.WriteString("\n")
	} else {
		b.WriteString(boardStyle.Render(RenderScreen(scr)))
		b.WriteString("\n")
	}

	b.WriteString(statusStyle.Render(fmt.Sprintf("collected %d/%d  step %d  ghosts %d",
		lvl.Collected(), lvl.Total, m.engine.Steps(), len(lvl.Ghosts))))
	b.WriteString("\n")

	if msg := m.outcome(); msg != "" {
		b.WriteString(msg)
		b.WriteString("\n")
	}

	b.WriteString(helpStyle.Render(m.help.View(m.keys)))
	return b.String()
}

func (m PlayModel) outcome() string {
	if !m.done {
		return ""
	}
	switch {
	case m.err != nil:
		return lostStyle.Render(m.err.Error())
	case m.engine.State() == engine.StateCaught:
		return lostStyle.Render("Caught! Press any key to exit.")
	case m.engine.State() == engine.StateWon:
		return wonStyle.Render(fmt.Sprintf("All %d levels cleared! Press any key to exit.", len(m.opts.Levels)))
	}
	return ""
}

// Summary returns the run summary.
func (m PlayModel) Summary() session.Summary {
	return m.summary
}

// Err returns the error that ended the session, if any.
func (m PlayModel) Err() error {
	return m.err
}

// Play runs the interactive session until it ends or the player quits.
func Play(opts PlayOptions) (session.Summary, error) {
	if len(opts.Levels) == 0 {
		return session.Summary{}, errors.New("tui: no levels given")
	}

	model := NewPlayModel(opts)
	if model.Err() != nil {
		return model.Summary(), model.Err()
	}

	p := tea.NewProgram(model, tea.WithAltScreen())

	finalModel, err := p.Run()
	if err != nil {
		return model.Summary(), err
	}

	m, ok := finalModel.(PlayModel)
	if !ok {
		return model.Summary(), nil
	}
	return m.Summary(), m.Err()
}
