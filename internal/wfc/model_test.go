package wfc_test

import (
	"errors"
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vovakirdan/tilesynth/internal/wfc"
)

const (
	tileA wfc.TileID = 0
	tileB wfc.TileID = 1
)

// TestTrain_Errors verifies that Train rejects empty or ragged inputs.
func TestTrain_Errors(t *testing.T) {
	cases := []struct {
		name string
		grid [][]wfc.TileID
		err  error
	}{
		{"NilGrid", nil, wfc.ErrEmptyGrid},
		{"EmptyRows", [][]wfc.TileID{}, wfc.ErrEmptyGrid},
		{"EmptyCols", [][]wfc.TileID{{}}, wfc.ErrEmptyGrid},
		{"NonRectangular", [][]wfc.TileID{{1, 2}, {3}}, wfc.ErrNonRectangular},
		{"LongerRow", [][]wfc.TileID{{1}, {2, 3}}, wfc.ErrNonRectangular},
		{"NegativeTile", [][]wfc.TileID{{1, -1}}, wfc.ErrNegativeTile},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			m, err := wfc.Train(tc.grid)
			assert.Nil(t, m)
			assert.ErrorIs(t, err, tc.err)
			assert.True(t, errors.Is(err, wfc.ErrInvalidTrainingData), "every shape error is InvalidTrainingData")
		})
	}
}

// TestTrain_Checkerboard checks the 2×2 [[A,B],[B,A]] weights by hand.
func TestTrain_Checkerboard(t *testing.T) {
	m, err := wfc.Train([][]wfc.TileID{
		{tileA, tileB},
		{tileB, tileA},
	})
	require.NoError(t, err)

	assert.Equal(t, []wfc.TileID{tileA, tileB}, m.Tiles())
	assert.Equal(t, 2, m.Len())

	// (0,0)=A has B at (0,1) to its north and at (1,0) to its east.
	assert.Equal(t, 1, m.Weight(tileA, wfc.North, tileB))
	assert.Equal(t, 1, m.Weight(tileA, wfc.East, tileB))
	assert.Equal(t, 1, m.Weight(tileA, wfc.South, tileB))
	assert.Equal(t, 1, m.Weight(tileA, wfc.West, tileB))
	assert.Equal(t, 1, m.Weight(tileB, wfc.North, tileA))
	assert.Equal(t, 1, m.Weight(tileB, wfc.West, tileA))

	// Same-tile adjacency never occurs in a checkerboard.
	for _, d := range wfc.Directions {
		assert.Zero(t, m.Weight(tileA, d, tileA), "A %s A", d)
		assert.Zero(t, m.Weight(tileB, d, tileB), "B %s B", d)
		assert.Equal(t, 2, m.Observations(d), "observations %s", d)
	}

	assert.Equal(t, []wfc.TileID{tileB}, m.Neighbors(tileA, wfc.North))
	assert.Nil(t, m.Neighbors(wfc.TileID(7), wfc.North))
	assert.Zero(t, m.Weight(wfc.TileID(7), wfc.North, tileA))
}

// TestTrain_BruteForceRecount compares trained weights with a direct recount
// over random grids, including non-square ones.
func TestTrain_BruteForceRecount(t *testing.T) {
	r := rand.New(rand.NewSource(7))
	for iter := 0; iter < 20; iter++ {
		w, h := 1+r.Intn(6), 1+r.Intn(6)
		grid := make([][]wfc.TileID, h)
		for y := range grid {
			grid[y] = make([]wfc.TileID, w)
			for x := range grid[y] {
				grid[y][x] = wfc.TileID(r.Intn(4))
			}
		}

		m, err := wfc.Train(grid)
		require.NoError(t, err)

		want := make(map[[3]int]int)
		for y := 0; y < h; y++ {
			for x := 0; x < w; x++ {
				for _, d := range wfc.Directions {
					n := wfc.C(x, y).Step(d)
					if n.X < 0 || n.X >= w || n.Y < 0 || n.Y >= h {
						continue
					}
					want[[3]int{int(grid[y][x]), int(d), int(grid[n.Y][n.X])}]++
				}
			}
		}

		for _, a := range m.Tiles() {
			for _, d := range wfc.Directions {
				for _, b := range m.Tiles() {
					assert.Equal(t, want[[3]int{int(a), int(d), int(b)}], m.Weight(a, d, b),
						"grid %dx%d weight(%d,%s,%d)", w, h, a, d, b)
				}
			}
		}

		// Every north observation is also a south observation seen from the
		// other cell, and likewise east/west.
		assert.Equal(t, m.Observations(wfc.North), m.Observations(wfc.South))
		assert.Equal(t, m.Observations(wfc.East), m.Observations(wfc.West))
		assert.Equal(t, w*(h-1), m.Observations(wfc.North))
		assert.Equal(t, (w-1)*h, m.Observations(wfc.East))
	}
}

func TestTrain_Deterministic(t *testing.T) {
	grid := [][]wfc.TileID{
		{3, 3, 1, 2},
		{3, 1, 1, 2},
		{0, 0, 1, 2},
	}
	a, err := wfc.Train(grid)
	require.NoError(t, err)
	b, err := wfc.Train(grid)
	require.NoError(t, err)

	assert.Equal(t, a.Tiles(), b.Tiles())
	for _, id := range a.Tiles() {
		for _, d := range wfc.Directions {
			assert.Equal(t, a.Neighbors(id, d), b.Neighbors(id, d))
		}
	}
}

func TestModelStats(t *testing.T) {
	// A single row has no north or south neighbors at all.
	m, err := wfc.Train([][]wfc.TileID{{tileA, tileB}})
	require.NoError(t, err)

	s := m.Stats()
	assert.Equal(t, 2, s.Tiles)
	assert.Equal(t, 1, s.Observations[wfc.East])
	assert.Equal(t, 1, s.Observations[wfc.West])
	assert.Zero(t, s.Observations[wfc.North])
	// A: north, south, west. B: north, east, south.
	assert.Equal(t, 6, s.DeadEnds)
}

func TestDirection(t *testing.T) {
	for _, d := range wfc.Directions {
		assert.Equal(t, d, d.Opposite().Opposite())
		dx, dy := d.Delta()
		ox, oy := d.Opposite().Delta()
		assert.Equal(t, 0, dx+ox)
		assert.Equal(t, 0, dy+oy)
	}
	assert.Equal(t, wfc.C(0, 1), wfc.C(0, 0).Step(wfc.North))
	assert.Equal(t, wfc.C(-1, 0), wfc.C(0, 0).Step(wfc.West))
	assert.Equal(t, "south", wfc.South.String())
	assert.Equal(t, "(2,3)", wfc.C(2, 3).String())
}

func TestModel_FreeTile(t *testing.T) {
	m, err := wfc.Train([][]wfc.TileID{{0, 7}, {99, 3}})
	require.NoError(t, err)

	assert.Equal(t, wfc.TileID(5), m.FreeTile(5), "untrained id is kept")
	assert.Equal(t, wfc.TileID(100), m.FreeTile(99), "trained id moves above the largest tile")
	assert.False(t, m.Has(m.FreeTile(0)))
}
