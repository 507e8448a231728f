package wfc

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCollapseAt_PanicsOnCollapsedCell(t *testing.T) {
	m, err := Train([][]TileID{{0, 1}, {1, 0}})
	require.NoError(t, err)
	g, err := NewMapGenerator(NewRNG(1), 2, 2, m)
	require.NoError(t, err)

	require.True(t, g.Step())
	assert.PanicsWithValue(t, "wfc: cell (1,0) is already collapsed", func() {
		g.collapseAt(C(1, 0))
	})
}

func TestCollapseAt_SingletonNeedsNoRandomness(t *testing.T) {
	m, err := Train([][]TileID{{0, 1}, {1, 0}})
	require.NoError(t, err)
	g, err := NewMapGenerator(NewRNG(1), 2, 2, m)
	require.NoError(t, err)

	g.cells[g.index(C(0, 0))].restrict(m.Tiles(), []TileID{1})
	rng := &countingSource{}
	g.rng = rng

	ev := g.collapseAt(C(0, 0))
	assert.Equal(t, TileID(1), ev.Tile)
	assert.Equal(t, 1, ev.Candidates)
	assert.Zero(t, rng.calls)
}

func TestCollapseAt_EmptyNeighborDoesNotEliminate(t *testing.T) {
	// 0 never has anything to its west, so an east neighbor fixed to 0
	// leaves (1,0) with no candidates.
	m, err := Train([][]TileID{{0, 1}})
	require.NoError(t, err)
	g, err := NewMapGenerator(NewRNG(3), 3, 1, m)
	require.NoError(t, err)

	g.cells[g.index(C(1, 0))].restrict(m.Tiles(), nil)
	require.Empty(t, g.cells[g.index(C(1, 0))].Candidates())

	ev := g.collapseAt(C(0, 0))
	assert.False(t, ev.Contradiction)
	assert.NotEqual(t, g.fallback, ev.Tile)
	assert.Contains(t, m.Tiles(), ev.Tile)
	assert.Equal(t, 2, ev.Candidates, "every trained tile stays a candidate")
}

func TestCollapseAt_ExhaustedNeighborDoesNotEliminate(t *testing.T) {
	m, err := Train([][]TileID{{0, 1}})
	require.NoError(t, err)
	g, err := NewMapGenerator(NewRNG(8), 3, 1, m)
	require.NoError(t, err)

	g.cells[g.index(C(1, 0))].exhaust()

	for i := 0; i < 20; i++ {
		g.cells[g.index(C(0, 0))] = Domain{}
		ev := g.collapseAt(C(0, 0))
		require.False(t, ev.Contradiction)
		require.Equal(t, 2, ev.Candidates)
	}
}

func TestDomain(t *testing.T) {
	universe := []TileID{0, 1, 2, 3}
	var d Domain

	assert.True(t, d.Unconstrained())
	assert.Equal(t, 4, d.Size(len(universe)))
	assert.True(t, d.Has(3))
	assert.Nil(t, d.Candidates())

	d.restrict(universe, []TileID{3, 1, 9})
	assert.False(t, d.Unconstrained())
	assert.Equal(t, []TileID{1, 3}, d.Candidates())
	assert.False(t, d.Has(0))

	d.restrict(universe, []TileID{0})
	assert.Empty(t, d.Candidates())
	assert.Equal(t, 0, d.Size(len(universe)))
	assert.False(t, d.Collapsed())

	d.fix(2)
	assert.True(t, d.Collapsed())
	assert.Equal(t, []TileID{2}, d.Candidates())
}

func TestWeightedPick(t *testing.T) {
	// Zero weights are never drawn.
	r := NewRNG(99)
	for i := 0; i < 200; i++ {
		idx := weightedPick(r, []int{0, 5, 0, 1})
		assert.Contains(t, []int{1, 3}, idx)
	}
}

type countingSource struct {
	calls int
}

func (s *countingSource) Intn(n int) int {
	s.calls++
	return 0
}
