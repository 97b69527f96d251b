package engine

import (
	"fmt"
	"strings"

	"github.com/vovakirdan/ghostchase/internal/core"
	"github.com/vovakirdan/ghostchase/internal/level"
)

// ghostColors cycles by ghost index.
var ghostColors = [...]core.Color{
	core.ColorRed,
	core.ColorMagenta,
	core.ColorCyan,
	core.ColorOrange,
}

// Render draws the board onto the engine's screen buffer and returns it.
// Tiles go first, then the player, then ghosts in source order, so a ghost
// that caught the player covers it.
func (e *Engine) Render() *core.Screen {
	scr := e.screen
	g := e.lvl.Grid

	for y := 0; y < g.H; y++ {
		for x := 0; x < g.W; x++ {
			cell := g.Cells[y*g.W+x]
			scr.SetCell(x, y, cell.Glyph, tileColor(cell))
		}
	}

	p := e.lvl.Player
	scr.SetCell(p.Pos.X, p.Pos.Y, p.Glyph, core.ColorBrightYellow)

	for _, gh := range e.lvl.Ghosts {
		scr.SetCell(gh.Pos.X, gh.Pos.Y, gh.Glyph, ghostColors[gh.Index%len(ghostColors)])
	}
	return scr
}

// Status returns the frame comment line without its trailing newline.
func (e *Engine) Status() string {
	return fmt.Sprintf("// level %d | step %d | remaining %d | %s",
		e.number, e.steps, e.lvl.Remaining, e.state)
}

// Frame renders one transcript frame: every grid row at full width followed
// by the status comment, each line newline-terminated.
func (e *Engine) Frame() string {
	scr := e.Render()

	var sb strings.Builder
	sb.Grow((scr.Width() + 1) * (scr.Height() + 1))
	sb.WriteString(scr.String())
	sb.WriteByte('\n')
	sb.WriteString(e.Status())
	sb.WriteByte('\n')
	return sb.String()
}

func tileColor(c level.Cell) core.Color {
	switch c.Tile {
	case level.TileWall:
		return core.ColorBlue
	case level.TileCollectible:
		return core.ColorWhite
	default:
		return core.ColorDefault
	}
}
