package ghost

import (
	"github.com/vovakirdan/ghostchase/internal/core"
	"github.com/vovakirdan/ghostchase/internal/level"
	"github.com/vovakirdan/ghostchase/internal/registry"
)

// Greedy moves straight toward the player without searching.
// It can be trapped behind walls, which makes it the easier opponent.
type Greedy struct{}

func init() {
	registry.Register("greedy", func() registry.Policy {
		return Greedy{}
	})
}

// ID returns the policy identifier.
func (Greedy) ID() string {
	return "greedy"
}

// Title returns the display name.
func (Greedy) Title() string {
	return "Greedy (closes Manhattan distance, no pathfinding)"
}

// Next steps onto the passable neighbour that most reduces the Manhattan
// distance to the player, ties in Up, Left, Down, Right order. If no
// neighbour is closer the ghost stays.
func (Greedy) Next(g *level.Grid, ghost, player core.Coord) core.Coord {
	best := ghost
	bestDist := ghost.Manhattan(player)

	for _, d := range core.Dirs {
		next := ghost.Step(d)
		if !g.Passable(next) {
			continue
		}
		if dist := next.Manhattan(player); dist < bestDist {
			best = next
			bestDist = dist
		}
	}
	return best
}
