package tui

import (
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/ghostchase/internal/core"
	"github.com/vovakirdan/ghostchase/internal/input"
)

// PlayKeyMap defines the key bindings of the play screen.
// Movement keys come from the configured keymap, with arrow keys as aliases.
type PlayKeyMap struct {
	Up    key.Binding
	Left  key.Binding
	Down  key.Binding
	Right key.Binding
	Wait  key.Binding
	Quit  key.Binding
	Help  key.Binding
}

// ShortHelp returns key bindings for the short help view.
func (k PlayKeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Up, k.Left, k.Down, k.Right, k.Quit, k.Help}
}

// FullHelp returns key bindings for the full help view.
func (k PlayKeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Up, k.Left, k.Down, k.Right},
		{k.Wait, k.Quit, k.Help},
	}
}

// NewPlayKeyMap builds the bindings for a command keymap.
func NewPlayKeyMap(km input.Keymap) PlayKeyMap {
	move := func(b byte, arrow, desc string) key.Binding {
		return key.NewBinding(
			key.WithKeys(string(b), arrow),
			key.WithHelp(string(b)+"/"+arrow, desc),
		)
	}

	return PlayKeyMap{
		Up:    move(km.Up, "up", "up"),
		Left:  move(km.Left, "left", "left"),
		Down:  move(km.Down, "down", "down"),
		Right: move(km.Right, "right", "right"),
		Wait: key.NewBinding(
			key.WithKeys("."),
			key.WithHelp(".", "wait a turn"),
		),
		Quit: key.NewBinding(
			key.WithKeys(string(km.Quit), "ctrl+c"),
			key.WithHelp(string(km.Quit), "quit"),
		),
		Help: key.NewBinding(
			key.WithKeys("?"),
			key.WithHelp("?", "more keys"),
		),
	}
}

// Action translates a key message to a turn command.
// ok is false for keys that should not consume a turn.
func (k PlayKeyMap) Action(msg tea.KeyMsg) (a core.Action, ok bool) {
	switch {
	case key.Matches(msg, k.Quit):
		return core.ActionQuit, true
	case key.Matches(msg, k.Up):
		return core.ActionUp, true
	case key.Matches(msg, k.Left):
		return core.ActionLeft, true
	case key.Matches(msg, k.Down):
		return core.ActionDown, true
	case key.Matches(msg, k.Right):
		return core.ActionRight, true
	case key.Matches(msg, k.Wait):
		return core.ActionNone, true
	}
	return core.ActionNone, false
}
