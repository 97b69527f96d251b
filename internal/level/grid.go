package level

import "github.com/vovakirdan/ghostchase/internal/core"

// Cell is one grid position: its tile and the glyph it renders as.
type Cell struct {
	Tile  Tile
	Glyph rune
}

// Grid is the board as a rectangular grid of cells.
// Cells are stored in row-major order: index = y*W + x.
type Grid struct {
	W     int    // columns
	H     int    // rows
	Cells []Cell // flat array of cells, length W*H
	floor rune
}

// NewGrid creates a grid of the given size filled with floor.
func NewGrid(w, h int, floor rune) *Grid {
	g := &Grid{
		W:     w,
		H:     h,
		Cells: make([]Cell, w*h),
		floor: floor,
	}
	for i := range g.Cells {
		g.Cells[i] = Cell{Tile: TileFloor, Glyph: floor}
	}
	return g
}

// Index converts a coordinate to a flat array index.
// The coordinate must be in bounds.
func (g *Grid) Index(c core.Coord) int {
	return c.Y*g.W + c.X
}

// CoordOf converts a flat array index back to a coordinate.
func (g *Grid) CoordOf(i int) core.Coord {
	return core.C(i%g.W, i/g.W)
}

// InBounds returns true if the coordinate is within the grid boundaries.
func (g *Grid) InBounds(c core.Coord) bool {
	return c.X >= 0 && c.X < g.W && c.Y >= 0 && c.Y < g.H
}

// At returns the cell at the given coordinate.
// Out-of-bounds coordinates read as wall.
func (g *Grid) At(c core.Coord) Cell {
	if !g.InBounds(c) {
		return Cell{Tile: TileWall}
	}
	return g.Cells[g.Index(c)]
}

// Set replaces the cell at the given coordinate.
func (g *Grid) Set(c core.Coord, cell Cell) {
	if g.InBounds(c) {
		g.Cells[g.Index(c)] = cell
	}
}

// Passable reports whether a token may stand on c.
// Walls and everything outside the grid block movement.
func (g *Grid) Passable(c core.Coord) bool {
	return g.At(c).Tile != TileWall
}

// Consume turns a collectible at c into floor.
// Returns true if a collectible was there.
func (g *Grid) Consume(c core.Coord) bool {
	if g.At(c).Tile != TileCollectible {
		return false
	}
	g.Cells[g.Index(c)] = Cell{Tile: TileFloor, Glyph: g.floor}
	return true
}

// Collectibles returns the number of collectible cells.
func (g *Grid) Collectibles() int {
	count := 0
	for _, cell := range g.Cells {
		if cell.Tile == TileCollectible {
			count++
		}
	}
	return count
}
