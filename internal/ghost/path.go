// Package ghost implements the ghost movement policies.
package ghost

import (
	"github.com/vovakirdan/ghostchase/internal/core"
	"github.com/vovakirdan/ghostchase/internal/level"
)

// Unreachable marks tiles with no path to the field's source.
const Unreachable = -1

// DistanceField holds breadth-first step counts from one source tile to every
// passable tile of a grid. The search runs over an explicit FIFO of tile
// indices, so memory grows with the tile count and never with call depth.
type DistanceField struct {
	grid   *level.Grid
	source core.Coord
	dist   []int
	queue  []int
}

// Compute fills the field for grid g from source.
// A field that already describes the same grid and source is reused: walls
// never change during a level, so passability and distances stay valid.
func (f *DistanceField) Compute(g *level.Grid, source core.Coord) {
	if f.grid == g && f.source == source && len(f.dist) == len(g.Cells) {
		return
	}
	f.grid = g
	f.source = source

	n := len(g.Cells)
	if cap(f.dist) < n {
		f.dist = make([]int, n)
		f.queue = make([]int, 0, n)
	}
	f.dist = f.dist[:n]
	for i := range f.dist {
		f.dist[i] = Unreachable
	}
	f.queue = f.queue[:0]

	if !g.Passable(source) {
		return
	}

	start := g.Index(source)
	f.dist[start] = 0
	f.queue = append(f.queue, start)

	// head walks the queue instead of reslicing so the backing array is reused.
	for head := 0; head < len(f.queue); head++ {
		cur := f.queue[head]
		c := g.CoordOf(cur)
		for _, d := range core.Dirs {
			next := c.Step(d)
			if !g.Passable(next) {
				continue
			}
			ni := g.Index(next)
			if f.dist[ni] != Unreachable {
				continue
			}
			f.dist[ni] = f.dist[cur] + 1
			f.queue = append(f.queue, ni)
		}
	}
}

// Dist returns the step count from the source to c, or Unreachable.
func (f *DistanceField) Dist(c core.Coord) int {
	if f.grid == nil || !f.grid.InBounds(c) {
		return Unreachable
	}
	return f.dist[f.grid.Index(c)]
}

// Reached returns how many tiles the last search visited.
func (f *DistanceField) Reached() int {
	return len(f.queue)
}
