package wfc

import (
	"fmt"
	"sort"
)

// collapseAt observes the cell at c: it weighs the remaining candidates
// against the four neighbors, draws one, and narrows the uncollapsed
// neighbors to tiles compatible with the draw. Propagation stops at the
// immediate neighbors; nothing is undone.
func (g *MapGenerator) collapseAt(c Coord) Event {
	cell := &g.cells[g.index(c)]
	if cell.Collapsed() {
		panic(fmt.Sprintf("wfc: cell %s is already collapsed", c))
	}

	universe := g.model.Tiles()
	cell.materialize(universe)

	probabilities := make(map[TileID]int, cell.candidates.Size())
	for _, id := range cell.Candidates() {
		probabilities[id] = 1
	}

	adjacent(c, g.width, g.height, func(d Direction, n Coord) {
		other := &g.cells[g.index(n)]
		reverse := d.Opposite()

		options := universe
		eliminates := false
		if !other.Unconstrained() {
			options = other.Candidates()
			eliminates = len(options) > 0
		}

		seen := make(map[TileID]bool, len(probabilities))
		for _, option := range options {
			for _, id := range g.model.Neighbors(option, reverse) {
				if _, ok := probabilities[id]; ok {
					probabilities[id] += g.model.Weight(option, reverse, id)
					seen[id] = true
				}
			}
		}
		if eliminates {
			for id := range probabilities {
				if !seen[id] {
					delete(probabilities, id)
				}
			}
		}
	})

	if len(probabilities) == 0 {
		cell.exhaust()
		return Event{Coord: c, Tile: g.fallback, Contradiction: true}
	}

	ids := make([]TileID, 0, len(probabilities))
	for id := range probabilities {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool {
		return ids[i] < ids[j]
	})

	chosen := ids[0]
	if len(ids) > 1 {
		weights := make([]int, len(ids))
		for i, id := range ids {
			weights[i] = probabilities[id]
		}
		chosen = ids[weightedPick(g.rng, weights)]
	}

	cell.fix(chosen)
	adjacent(c, g.width, g.height, func(d Direction, n Coord) {
		other := &g.cells[g.index(n)]
		if other.Collapsed() {
			return
		}
		other.restrict(universe, g.model.Neighbors(chosen, d))
	})

	return Event{Coord: c, Tile: chosen, Candidates: len(ids)}
}
