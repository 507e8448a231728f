package wfc

import (
	"fmt"
	"sort"
)

// Neighbors holds the weighted neighbor counts of one tile, per direction.
type Neighbors [4]map[TileID]int

// Model is a directional adjacency-frequency table learned from a sample.
// Weight(a, d, b) is the number of times a cell holding a had a cell holding
// b one step away in direction d. Unobserved entries are absent.
type Model struct {
	tiles     map[TileID]*Neighbors
	universe  []TileID // sorted
	neighbors map[TileID][4][]TileID
}

// Train scans grid once and builds the adjacency model.
// grid is indexed [y][x]; every row must have the same width.
func Train(grid [][]TileID) (*Model, error) {
	if len(grid) == 0 || len(grid[0]) == 0 {
		return nil, ErrEmptyGrid
	}
	w, h := len(grid[0]), len(grid)
	for y, row := range grid {
		if len(row) != w {
			return nil, fmt.Errorf("%w: row %d has %d cells, want %d", ErrNonRectangular, y, len(row), w)
		}
		for x, id := range row {
			if id < 0 {
				return nil, fmt.Errorf("%w: %d at %s", ErrNegativeTile, id, C(x, y))
			}
		}
	}

	m := &Model{tiles: make(map[TileID]*Neighbors)}
	for y, row := range grid {
		for x, id := range row {
			entry := m.entry(id)
			adjacent(C(x, y), w, h, func(d Direction, n Coord) {
				entry[d][grid[n.Y][n.X]]++
			})
		}
	}
	m.index()
	return m, nil
}

// entry returns the neighbor table for id, creating it on first use.
func (m *Model) entry(id TileID) *Neighbors {
	if e, ok := m.tiles[id]; ok {
		return e
	}
	e := &Neighbors{}
	for d := range e {
		e[d] = make(map[TileID]int)
	}
	m.tiles[id] = e
	return e
}

// index precomputes the sorted universe and per-direction neighbor lists.
func (m *Model) index() {
	m.universe = make([]TileID, 0, len(m.tiles))
	m.neighbors = make(map[TileID][4][]TileID, len(m.tiles))
	for id, e := range m.tiles {
		m.universe = append(m.universe, id)
		var lists [4][]TileID
		for d, counts := range e {
			lists[d] = sortedKeys(counts)
		}
		m.neighbors[id] = lists
	}
	sort.Slice(m.universe, func(i, j int) bool {
		return m.universe[i] < m.universe[j]
	})
}

// Tiles returns every trained tile id in ascending order.
// The returned slice must not be modified.
func (m *Model) Tiles() []TileID {
	return m.universe
}

// Len returns the number of distinct trained tiles.
func (m *Model) Len() int {
	return len(m.universe)
}

// Has reports whether id was observed in training.
func (m *Model) Has(id TileID) bool {
	_, ok := m.tiles[id]
	return ok
}

// FreeTile returns preferred when it was not trained, otherwise the
// smallest id above every trained tile.
func (m *Model) FreeTile(preferred TileID) TileID {
	if !m.Has(preferred) {
		return preferred
	}
	return m.universe[len(m.universe)-1] + 1
}

// Weight returns how often b was seen in direction d from a.
func (m *Model) Weight(a TileID, d Direction, b TileID) int {
	e, ok := m.tiles[a]
	if !ok || d > West {
		return 0
	}
	return e[d][b]
}

// Neighbors returns the ids seen in direction d from a, ascending.
// The returned slice must not be modified.
func (m *Model) Neighbors(a TileID, d Direction) []TileID {
	lists, ok := m.neighbors[a]
	if !ok || d > West {
		return nil
	}
	return lists[d]
}

// Observations returns the sum of all weights recorded in direction d.
func (m *Model) Observations(d Direction) int {
	total := 0
	for _, e := range m.tiles {
		for _, n := range e[d] {
			total += n
		}
	}
	return total
}

// ModelStats summarizes a trained model.
type ModelStats struct {
	Tiles        int
	Observations [4]int // indexed by Direction
	// DeadEnds counts (tile, direction) pairs with no recorded neighbor.
	// Generating next to such a tile in that direction can only contradict.
	DeadEnds int
}

// Stats returns summary counts for the model.
func (m *Model) Stats() ModelStats {
	s := ModelStats{Tiles: len(m.universe)}
	for _, d := range Directions {
		s.Observations[d] = m.Observations(d)
	}
	for _, id := range m.universe {
		for _, d := range Directions {
			if len(m.neighbors[id][d]) == 0 {
				s.DeadEnds++
			}
		}
	}
	return s
}

func sortedKeys(m map[TileID]int) []TileID {
	keys := make([]TileID, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Slice(keys, func(i, j int) bool {
		return keys[i] < keys[j]
	})
	return keys
}
