package engine

// State is the lifecycle state of one level.
type State int

const (
	StateActive         State = iota // level in progress
	StateWon                         // every collectible consumed
	StateQuit                        // quit command received
	StateCaught                      // a ghost reached the player
	StateInputExhausted              // command input ended while active
)

// String returns the name used in frame comments.
func (s State) String() string {
	switch s {
	case StateActive:
		return "active"
	case StateWon:
		return "won"
	case StateQuit:
		return "quit"
	case StateCaught:
		return "caught"
	case StateInputExhausted:
		return "input exhausted"
	default:
		return "unknown"
	}
}

// Terminal reports whether the level has concluded.
func (s State) Terminal() bool {
	return s != StateActive
}

// Success reports whether the state ends the level without a fatal error.
func (s State) Success() bool {
	switch s {
	case StateWon, StateQuit, StateCaught:
		return true
	default:
		return false
	}
}
