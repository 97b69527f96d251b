package ghost

import (
	"github.com/vovakirdan/ghostchase/internal/core"
	"github.com/vovakirdan/ghostchase/internal/level"
	"github.com/vovakirdan/ghostchase/internal/registry"
)

// Chase follows a shortest path to the player.
type Chase struct {
	field DistanceField
}

// NewChase creates a chase policy.
func NewChase() *Chase {
	return &Chase{}
}

func init() {
	registry.Register("chase", func() registry.Policy {
		return NewChase()
	})
}

// ID returns the policy identifier.
func (p *Chase) ID() string {
	return "chase"
}

// Title returns the display name.
func (p *Chase) Title() string {
	return "Chase (shortest path to the player)"
}

// Next steps onto the neighbour closest to the player by path length.
// Ties go to the first direction in Up, Left, Down, Right order. A ghost on
// the player, or with no path to it, stays.
func (p *Chase) Next(g *level.Grid, ghost, player core.Coord) core.Coord {
	if ghost == player {
		return ghost
	}

	p.field.Compute(g, player)

	best := ghost
	bestDist := p.field.Dist(ghost)
	if bestDist == Unreachable {
		return ghost
	}

	for _, d := range core.Dirs {
		next := ghost.Step(d)
		if !g.Passable(next) {
			continue
		}
		dist := p.field.Dist(next)
		if dist != Unreachable && dist < bestDist {
			best = next
			bestDist = dist
		}
	}
	return best
}
