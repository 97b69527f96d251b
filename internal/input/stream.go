// Package input provides the command stream: the shared source of control
// characters read one turn at a time.
package input

import (
	"bufio"
	"errors"
	"io"
	"os"

	"github.com/vovakirdan/ghostchase/internal/core"
	"github.com/vovakirdan/ghostchase/internal/fault"
)

// StdinName is the display name used for standard input.
const StdinName = "<stdin>"

// ErrEndOfInput is returned by Next once the source is exhausted.
// It is a terminal condition, not a failure by itself.
var ErrEndOfInput = errors.New("end of command input")

// Stream yields one command per call from an input source.
// It is blind to line boundaries: whitespace is skipped and never forms a turn.
type Stream struct {
	r      *bufio.Reader
	name   string
	keys   Keymap
	closer io.Closer
	read   int // characters consumed, whitespace included
	done   bool
}

// NewStream wraps r. name identifies the source in error messages.
func NewStream(r io.Reader, name string, keys Keymap) *Stream {
	return &Stream{
		r:    bufio.NewReader(r),
		name: name,
		keys: keys,
	}
}

// Open returns a stream over the file at path, or standard input when path is
// empty or "-". Failing to open is a fault.KindOpen error.
func Open(path string, keys Keymap) (*Stream, error) {
	if path == "" || path == "-" {
		return NewStream(os.Stdin, StdinName, keys), nil
	}

	f, err := os.Open(path)
	if err != nil {
		return nil, fault.New(fault.KindOpen, "open command input", path, err)
	}
	s := NewStream(f, path, keys)
	s.closer = f
	return s, nil
}

// Name returns the source name.
func (s *Stream) Name() string {
	return s.name
}

// Consumed returns how many characters have been read so far.
func (s *Stream) Consumed() int {
	return s.read
}

// Next returns the next command.
// Characters without a binding come back as ActionNone. At end of input it
// returns ErrEndOfInput, and keeps doing so. A source that cannot be streamed
// (a directory, for instance) fails with a fault.KindRead error.
func (s *Stream) Next() (core.Action, error) {
	if s.done {
		return core.ActionNone, ErrEndOfInput
	}

	for {
		b, err := s.r.ReadByte()
		if err == io.EOF {
			s.done = true
			return core.ActionNone, ErrEndOfInput
		}
		if err != nil {
			return core.ActionNone, fault.New(fault.KindRead, "read command input", s.name, err)
		}
		s.read++

		if IsSpace(b) {
			continue
		}
		return s.keys.Map(b), nil
	}
}

// Close releases the underlying file if the stream opened one.
// Standard input is left open.
func (s *Stream) Close() error {
	if s.closer == nil {
		return nil
	}
	err := s.closer.Close()
	s.closer = nil
	return err
}
