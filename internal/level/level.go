package level

import "github.com/vovakirdan/ghostchase/internal/core"

// Player is the controllable token.
type Player struct {
	Pos   core.Coord
	Glyph rune
}

// Ghost is an adversarial token.
type Ghost struct {
	Index int // order of appearance in the level source
	Glyph rune
	Pos   core.Coord
}

// Level is one playable board with its entities and objective counter.
// Entities are created once by Parse and afterwards only move.
type Level struct {
	Name      string
	Grid      *Grid
	Player    Player
	Ghosts    []Ghost
	Remaining int // collectibles still on the board
	Total     int // collectibles at load time
}

// Collected returns how many collectibles have been consumed.
func (l *Level) Collected() int {
	return l.Total - l.Remaining
}

// GhostAt reports whether any ghost stands on c.
func (l *Level) GhostAt(c core.Coord) bool {
	for _, gh := range l.Ghosts {
		if gh.Pos == c {
			return true
		}
	}
	return false
}
