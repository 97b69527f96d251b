// Package fault classifies the fatal errors of a ghostchase session and maps
// them to process exit codes.
package fault

import (
	"errors"
	"fmt"
)

// Kind identifies which class of fatal failure ended a session.
type Kind int

const (
	KindUnknown   Kind = iota
	KindOpen           // source could not be opened for reading
	KindRead           // source opened but could not be streamed
	KindFormat         // level content is structurally invalid
	KindExhausted      // command input ended before a level resolved
	KindWrite          // transcript sink rejected a frame
)

// Exit codes reported at the process boundary.
const (
	ExitOK      = 0
	ExitUsage   = 1
	ExitOpen    = 39
	ExitRead    = 40
	ExitInvalid = 41
)

// String returns a human-readable name for the kind.
func (k Kind) String() string {
	switch k {
	case KindOpen:
		return "open failure"
	case KindRead:
		return "read failure"
	case KindFormat:
		return "format error"
	case KindExhausted:
		return "input exhausted"
	case KindWrite:
		return "write failure"
	default:
		return "unknown"
	}
}

// ExitCode returns the process status for the kind.
func (k Kind) ExitCode() int {
	switch k {
	case KindOpen:
		return ExitOpen
	case KindRead, KindWrite:
		return ExitRead
	case KindFormat, KindExhausted:
		return ExitInvalid
	default:
		return ExitUsage
	}
}

// Error is a classified fatal error.
type Error struct {
	Kind Kind
	Op   string // what was being attempted, e.g. "open level"
	Path string // source the operation concerned, may be empty
	Err  error
}

func (e *Error) Error() string {
	msg := e.Op
	if e.Path != "" {
		msg = fmt.Sprintf("%s %q", msg, e.Path)
	}
	if e.Err != nil {
		msg = fmt.Sprintf("%s: %v", msg, e.Err)
	}
	return msg
}

// Unwrap returns the underlying cause.
func (e *Error) Unwrap() error {
	return e.Err
}

// New builds a classified error.
func New(kind Kind, op, path string, err error) *Error {
	return &Error{Kind: kind, Op: op, Path: path, Err: err}
}

// KindOf returns the kind of the first fault.Error in err's chain.
func KindOf(err error) Kind {
	var fe *Error
	if errors.As(err, &fe) {
		return fe.Kind
	}
	return KindUnknown
}

// ExitCode maps any error to a process exit status.
// nil is success; errors without a classification are usage errors.
func ExitCode(err error) int {
	if err == nil {
		return ExitOK
	}
	return KindOf(err).ExitCode()
}
