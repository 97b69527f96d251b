// Package level holds the board model of one ghostchase level and the loader
// that builds it from a plain-text level source.
package level

import (
	"fmt"
	"strings"
)

// Tile is the static content of one grid cell.
type Tile uint8

const (
	TileWall Tile = iota
	TileFloor
	TileCollectible
	TilePlayerStart
	TileGhostStart
)

// String returns the tile name.
func (t Tile) String() string {
	switch t {
	case TileWall:
		return "Wall"
	case TileFloor:
		return "Floor"
	case TileCollectible:
		return "Collectible"
	case TilePlayerStart:
		return "PlayerStart"
	case TileGhostStart:
		return "GhostStart"
	default:
		return "Unknown"
	}
}

// Glyphs is the symbol set of the level-file convention.
// Characters outside the set are obstacles and keep their own glyph.
type Glyphs struct {
	Wall         rune
	Floor        rune
	Collectibles string // every rune is a collectible glyph
	Player       rune
	Ghosts       string // every rune is a ghost start glyph
}

// DefaultGlyphs returns the conventional symbol set.
func DefaultGlyphs() Glyphs {
	return Glyphs{
		Wall:         'W',
		Floor:        ' ',
		Collectibles: ".",
		Player:       'P',
		Ghosts:       "IBYC",
	}
}

// Classify returns the tile a source character denotes.
func (g Glyphs) Classify(r rune) Tile {
	switch {
	case r == g.Player:
		return TilePlayerStart
	case r == g.Floor:
		return TileFloor
	case strings.ContainsRune(g.Ghosts, r):
		return TileGhostStart
	case strings.ContainsRune(g.Collectibles, r):
		return TileCollectible
	default:
		return TileWall
	}
}

// Validate checks that no glyph has two meanings.
func (g Glyphs) Validate() error {
	if g.Collectibles == "" {
		return fmt.Errorf("glyphs: at least one collectible glyph is required")
	}
	if g.Ghosts == "" {
		return fmt.Errorf("glyphs: at least one ghost glyph is required")
	}

	seen := make(map[rune]string)
	claim := func(r rune, role string) error {
		if r == '\n' || r == '\r' {
			return fmt.Errorf("glyphs: %s glyph cannot be a line break", role)
		}
		if prev, ok := seen[r]; ok {
			return fmt.Errorf("glyphs: %q used for both %s and %s", r, prev, role)
		}
		seen[r] = role
		return nil
	}

	if err := claim(g.Wall, "wall"); err != nil {
		return err
	}
	if err := claim(g.Floor, "floor"); err != nil {
		return err
	}
	if err := claim(g.Player, "player"); err != nil {
		return err
	}
	for _, r := range g.Collectibles {
		if err := claim(r, "collectible"); err != nil {
			return err
		}
	}
	for _, r := range g.Ghosts {
		if err := claim(r, "ghost"); err != nil {
			return err
		}
	}
	return nil
}
