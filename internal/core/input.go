package core

// Action represents a semantic command, abstracted from the raw input byte.
// The command stream and the interactive key mapper both produce Actions.
type Action int

const (
	ActionNone  Action = iota // consumed character with no game meaning
	ActionUp                  // w
	ActionLeft                // a
	ActionDown                // s
	ActionRight               // d
	ActionQuit                // q
)

// String returns a human-readable name for the action.
func (a Action) String() string {
	switch a {
	case ActionNone:
		return "None"
	case ActionUp:
		return "Up"
	case ActionLeft:
		return "Left"
	case ActionDown:
		return "Down"
	case ActionRight:
		return "Right"
	case ActionQuit:
		return "Quit"
	default:
		return "Unknown"
	}
}

// Dir returns the movement direction for a directional action.
// ok is false for ActionNone and ActionQuit.
func (a Action) Dir() (d Dir, ok bool) {
	switch a {
	case ActionUp:
		return DirUp, true
	case ActionLeft:
		return DirLeft, true
	case ActionDown:
		return DirDown, true
	case ActionRight:
		return DirRight, true
	default:
		return 0, false
	}
}
