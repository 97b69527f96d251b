package level

import "fmt"

// Validation codes reported for structurally invalid levels.
const (
	CodeEmptyLevel      = "EMPTY_LEVEL"
	CodeNoPlayer        = "NO_PLAYER"
	CodeMultiplePlayers = "MULTIPLE_PLAYERS"
)

// ValidationError contains details about a structural level failure.
type ValidationError struct {
	Code    string
	Message string
}

func (e ValidationError) Error() string {
	return fmt.Sprintf("[%s] %s", e.Code, e.Message)
}
