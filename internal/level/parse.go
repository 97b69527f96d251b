package level

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/vovakirdan/ghostchase/internal/core"
	"github.com/vovakirdan/ghostchase/internal/fault"
)

// Parse builds a Level from raw level bytes.
// Rows are newline-delimited (a trailing \r is dropped), the column count is
// the longest row and shorter rows are padded with floor. Trailing empty lines
// are not rows. Structural failures are returned as fault.KindFormat errors
// wrapping a ValidationError.
func Parse(name string, data []byte, glyphs Glyphs) (*Level, error) {
	rows := splitRows(data)

	width := 0
	for _, row := range rows {
		if len(row) > width {
			width = len(row)
		}
	}
	if len(rows) == 0 || width == 0 {
		return nil, invalid(name, CodeEmptyLevel, "level has no rows")
	}

	lvl := &Level{
		Name: name,
		Grid: NewGrid(width, len(rows), glyphs.Floor),
	}

	var players []core.Coord
	for y, row := range rows {
		for x, r := range row {
			c := core.C(x, y)
			switch tile := glyphs.Classify(r); tile {
			case TilePlayerStart:
				players = append(players, c)
				lvl.Player = Player{Pos: c, Glyph: r}
			case TileGhostStart:
				lvl.Ghosts = append(lvl.Ghosts, Ghost{
					Index: len(lvl.Ghosts),
					Glyph: r,
					Pos:   c,
				})
			default:
				// Start tiles stay floor in the grid; entities carry their glyph.
				lvl.Grid.Set(c, Cell{Tile: tile, Glyph: r})
			}
		}
	}

	switch {
	case len(players) == 0:
		return nil, invalid(name, CodeNoPlayer,
			fmt.Sprintf("no player tile %q found", glyphs.Player))
	case len(players) > 1:
		at := make([]string, len(players))
		for i, p := range players {
			at[i] = p.String()
		}
		return nil, invalid(name, CodeMultiplePlayers,
			fmt.Sprintf("%d player tiles %q found at %s, expected exactly one",
				len(players), glyphs.Player, strings.Join(at, " ")))
	}

	lvl.Total = lvl.Grid.Collectibles()
	lvl.Remaining = lvl.Total
	return lvl, nil
}

// splitRows splits level bytes into rune rows.
func splitRows(data []byte) [][]rune {
	lines := bytes.Split(data, []byte("\n"))

	rows := make([][]rune, 0, len(lines))
	for _, line := range lines {
		line = bytes.TrimSuffix(line, []byte("\r"))
		rows = append(rows, []rune(string(line)))
	}

	// Drop trailing empty lines, including the one after the final newline.
	for len(rows) > 0 && len(rows[len(rows)-1]) == 0 {
		rows = rows[:len(rows)-1]
	}
	return rows
}

func invalid(name, code, msg string) error {
	return fault.New(fault.KindFormat, "parse level", name, ValidationError{
		Code:    code,
		Message: msg,
	})
}
