package input

import (
	"fmt"

	"github.com/vovakirdan/ghostchase/internal/core"
)

// Keymap assigns one command character to each action.
type Keymap struct {
	Up    byte
	Left  byte
	Down  byte
	Right byte
	Quit  byte
}

// DefaultKeymap returns the w/a/s/d/q bindings.
func DefaultKeymap() Keymap {
	return Keymap{Up: 'w', Left: 'a', Down: 's', Right: 'd', Quit: 'q'}
}

// Map translates a command character to an action.
// Unbound characters map to ActionNone.
func (k Keymap) Map(b byte) core.Action {
	switch b {
	case k.Up:
		return core.ActionUp
	case k.Left:
		return core.ActionLeft
	case k.Down:
		return core.ActionDown
	case k.Right:
		return core.ActionRight
	case k.Quit:
		return core.ActionQuit
	default:
		return core.ActionNone
	}
}

// Key returns the character bound to a. ok is false for ActionNone.
func (k Keymap) Key(a core.Action) (b byte, ok bool) {
	switch a {
	case core.ActionUp:
		return k.Up, true
	case core.ActionLeft:
		return k.Left, true
	case core.ActionDown:
		return k.Down, true
	case core.ActionRight:
		return k.Right, true
	case core.ActionQuit:
		return k.Quit, true
	default:
		return 0, false
	}
}

// Validate rejects whitespace bindings and characters bound twice.
func (k Keymap) Validate() error {
	seen := make(map[byte]core.Action)
	for _, a := range []core.Action{core.ActionUp, core.ActionLeft, core.ActionDown, core.ActionRight, core.ActionQuit} {
		b, _ := k.Key(a)
		if IsSpace(b) || b == 0 {
			return fmt.Errorf("keymap: %s cannot be bound to whitespace %q", a, b)
		}
		if prev, ok := seen[b]; ok {
			return fmt.Errorf("keymap: %q bound to both %s and %s", b, prev, a)
		}
		seen[b] = a
	}
	return nil
}

// IsSpace reports whether b is an ASCII whitespace character.
// Whitespace is never a command.
func IsSpace(b byte) bool {
	switch b {
	case ' ', '\t', '\n', '\r', '\v', '\f':
		return true
	default:
		return false
	}
}
