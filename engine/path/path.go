// Package path finds shortest routes on the unbounded 4-connected grid.
package path

import (
	"github.com/zyedidia/generic/mapset"

	"github.com/nathoo/scrapcore/engine/world"
	"github.com/nathoo/scrapcore/types"
)

// DefaultBudget is the number of node expansions after which a search gives up.
const DefaultBudget = 1000

// Grid reports which tiles can be entered.
type Grid interface {
	Walkable(x, y int) bool
}

var steps = [4]types.Position{{X: 0, Y: -1}, {X: 1, Y: 0}, {X: 0, Y: 1}, {X: -1, Y: 0}}

// Find runs a breadth-first search from start to goal. The returned path
// excludes start and ends with goal. ok is false when the goal is not reached
// within budget expansions; that is "no path", not an error.
func Find(g Grid, start, goal types.Position, budget int) (route []types.Position, ok bool) {
	if start == goal {
		return []types.Position{}, true
	}
	if !g.Walkable(goal.X, goal.Y) {
		return nil, false
	}

	visited := mapset.New[string]()
	visited.Put(world.Key(start))
	parent := map[types.Position]types.Position{}
	queue := []types.Position{start}
	expanded := 0

	for len(queue) > 0 && expanded < budget {
		cur := queue[0]
		queue = queue[1:]
		expanded++

		for _, d := range steps {
			next := types.Position{X: cur.X + d.X, Y: cur.Y + d.Y}
			key := world.Key(next)
			if visited.Has(key) || !g.Walkable(next.X, next.Y) {
				continue
			}
			visited.Put(key)
			parent[next] = cur
			if next == goal {
				return unwind(parent, start, goal), true
			}
			queue = append(queue, next)
		}
	}
	return nil, false
}

func unwind(parent map[types.Position]types.Position, start, goal types.Position) []types.Position {
	var rev []types.Position
	for p := goal; p != start; p = parent[p] {
		rev = append(rev, p)
	}
	route := make([]types.Position, len(rev))
	for i, p := range rev {
		route[len(rev)-1-i] = p
	}
	return route
}
