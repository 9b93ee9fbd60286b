package grid

import (
	"github.com/zyedidia/generic/mapset"
)

// Reachable returns the set of cells a search starting at start can enter:
// start itself plus every traversable cell connected to it through other
// traversable cells. Exit cells are included but not expanded, matching a
// search that stops on the first exit it steps onto.
//
// The grid is not modified. Time and memory are O(rows×cols).
func (g *Grid) Reachable(start Position) mapset.Set[Position] {
	seen := mapset.New[Position]()
	if !g.Contains(start) {
		return seen
	}

	queue := []Position{start}
	seen.Put(start)
	for len(queue) > 0 {
		cur := queue[0]
		queue = queue[1:]
		if g.At(cur) == Exit {
			continue
		}
		for _, n := range g.Neighbors(cur) {
			if !g.IsTraversable(n.Row, n.Col) || seen.Has(n) {
				continue
			}
			seen.Put(n)
			queue = append(queue, n)
		}
	}
	return seen
}

// ExitReachable reports whether any exit cell is connected to start.
func (g *Grid) ExitReachable(start Position) bool {
	found := false
	g.Reachable(start).Each(func(p Position) {
		if g.At(p) == Exit {
			found = true
		}
	})
	return found
}
