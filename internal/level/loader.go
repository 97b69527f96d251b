package level

import (
	"io"
	"os"

	"github.com/vovakirdan/ghostchase/internal/fault"
)

// Loader turns level sources into validated levels.
type Loader struct {
	glyphs Glyphs
}

// NewLoader creates a loader for the given symbol set.
func NewLoader(glyphs Glyphs) *Loader {
	return &Loader{glyphs: glyphs}
}

// Glyphs returns the symbol set the loader parses with.
func (l *Loader) Glyphs() Glyphs {
	return l.glyphs
}

// Load opens, reads and parses one level file.
// The three failure stages stay distinguishable: fault.KindOpen when the path
// cannot be opened, fault.KindRead when it opens but cannot be streamed (a
// directory, for instance), fault.KindFormat when the content is invalid.
func (l *Loader) Load(path string) (*Level, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fault.New(fault.KindOpen, "open level", path, err)
	}
	defer f.Close()

	data, err := io.ReadAll(f)
	if err != nil {
		return nil, fault.New(fault.KindRead, "read level", path, err)
	}

	return Parse(path, data, l.glyphs)
}
