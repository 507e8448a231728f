package wfc_test

import (
	"bytes"
	"math/rand"
	"testing"

	"github.com/charmbracelet/log"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vovakirdan/tilesynth/internal/wfc"
)

// islands is a small coast map: 0 water, 1 sand, 2 grass, 3 tree.
var islands = [][]wfc.TileID{
	{0, 0, 0, 0, 0, 0, 0, 0},
	{0, 1, 1, 1, 0, 0, 1, 0},
	{0, 1, 2, 1, 0, 1, 1, 0},
	{0, 1, 2, 2, 1, 1, 2, 1},
	{0, 1, 3, 2, 2, 2, 3, 1},
	{0, 1, 2, 3, 2, 2, 1, 0},
	{0, 0, 1, 1, 1, 1, 0, 0},
	{0, 0, 0, 0, 0, 0, 0, 0},
}

func trainIslands(t *testing.T) *wfc.Model {
	t.Helper()
	m, err := wfc.Train(islands)
	require.NoError(t, err)
	return m
}

// recorder collects every event reported by a generator.
type recorder struct {
	events []wfc.Event
}

func (r *recorder) OnCollapse(ev wfc.Event) {
	r.events = append(r.events, ev)
}

func TestNewMapGenerator_Errors(t *testing.T) {
	m := trainIslands(t)
	rng := wfc.NewRNG(1)

	_, err := wfc.NewMapGenerator(rng, 0, 3, m)
	assert.ErrorIs(t, err, wfc.ErrInvalidDimensions)
	_, err = wfc.NewMapGenerator(rng, 3, -1, m)
	assert.ErrorIs(t, err, wfc.ErrInvalidDimensions)
	_, err = wfc.NewMapGenerator(rng, 3, 3, nil)
	assert.ErrorIs(t, err, wfc.ErrNilModel)
	_, err = wfc.NewMapGenerator(nil, 3, 3, m)
	assert.ErrorIs(t, err, wfc.ErrNilSource)
	_, err = wfc.NewMapGenerator(rng, 3, 3, m, wfc.WithFallback(2))
	assert.ErrorIs(t, err, wfc.ErrFallbackTrained)

	withSentinel, err := wfc.Train([][]wfc.TileID{{0, wfc.DefaultFallback}})
	require.NoError(t, err)
	_, err = wfc.NewMapGenerator(rng, 3, 3, withSentinel)
	assert.ErrorIs(t, err, wfc.ErrFallbackTrained)
}

func TestMapGenerator_InitialState(t *testing.T) {
	g, err := wfc.NewMapGenerator(wfc.NewRNG(1), 4, 3, trainIslands(t))
	require.NoError(t, err)

	assert.Equal(t, wfc.StateReady, g.State())
	assert.False(t, g.Done())
	assert.Equal(t, 12, g.Remaining())
	assert.Equal(t, 4, g.Width())
	assert.Equal(t, 3, g.Height())
	assert.Equal(t, wfc.OrderScan, g.Order())
	assert.Equal(t, wfc.DefaultFallback, g.Fallback())

	out := g.Output()
	require.Len(t, out, 3)
	for _, row := range out {
		require.Len(t, row, 4)
		for _, id := range row {
			assert.Equal(t, wfc.Unresolved, id)
		}
	}
	assert.Nil(t, g.Candidates(wfc.C(0, 0)), "unconstrained before any step")
	assert.Equal(t, wfc.Unresolved, g.At(wfc.C(9, 9)))
}

func TestMapGenerator_ScanOrder(t *testing.T) {
	rec := &recorder{}
	g, err := wfc.NewMapGenerator(wfc.NewRNG(5), 3, 2, trainIslands(t), wfc.WithObserver(rec))
	require.NoError(t, err)
	g.Run()

	want := []wfc.Coord{
		wfc.C(2, 0), wfc.C(1, 0), wfc.C(0, 0),
		wfc.C(2, 1), wfc.C(1, 1), wfc.C(0, 1),
	}
	require.Len(t, rec.events, len(want))
	for i, ev := range rec.events {
		assert.Equal(t, want[i], ev.Coord, "step %d", i)
	}
}

func TestMapGenerator_FullCoverage(t *testing.T) {
	for _, order := range []wfc.Order{wfc.OrderScan, wfc.OrderEntropy} {
		t.Run(order.String(), func(t *testing.T) {
			g, err := wfc.NewMapGenerator(wfc.NewRNG(11), 7, 5, trainIslands(t), wfc.WithOrder(order))
			require.NoError(t, err)

			for i := 0; i < 7*5; i++ {
				require.True(t, g.Step(), "step %d", i)
			}
			assert.Equal(t, wfc.StateDone, g.State())
			assert.Zero(t, g.Remaining())

			out := g.Output()
			for y, row := range out {
				for x, id := range row {
					assert.NotEqual(t, wfc.Unresolved, id, "cell (%d,%d)", x, y)
					assert.True(t, g.Collapsed(wfc.C(x, y)))
				}
			}

			// Further steps are no-ops.
			assert.False(t, g.Step())
			assert.Zero(t, g.Run())
			assert.Equal(t, out, g.Output())
			assert.Equal(t, 7*5, g.Stats().Steps)
		})
	}
}

func TestMapGenerator_Determinism(t *testing.T) {
	m := trainIslands(t)
	for _, order := range []wfc.Order{wfc.OrderScan, wfc.OrderEntropy} {
		t.Run(order.String(), func(t *testing.T) {
			run := func(seed uint64) [][]wfc.TileID {
				g, err := wfc.NewMapGenerator(wfc.NewRNG(seed), 12, 9, m, wfc.WithOrder(order))
				require.NoError(t, err)
				g.Run()
				return g.Output()
			}
			assert.Equal(t, run(2024), run(2024))

			// math/rand sources are just as reproducible.
			runStd := func() [][]wfc.TileID {
				g, err := wfc.NewMapGenerator(rand.New(rand.NewSource(9)), 12, 9, m, wfc.WithOrder(order))
				require.NoError(t, err)
				g.Run()
				return g.Output()
			}
			assert.Equal(t, runStd(), runStd())
		})
	}
}

func TestMapGenerator_SingleAssignment(t *testing.T) {
	rec := &recorder{}
	g, err := wfc.NewMapGenerator(wfc.NewRNG(77), 10, 6, trainIslands(t), wfc.WithObserver(rec))
	require.NoError(t, err)

	seen := make(map[wfc.Coord]wfc.TileID)
	for g.Step() {
		ev := rec.events[len(rec.events)-1]
		_, dup := seen[ev.Coord]
		require.False(t, dup, "cell %s visited twice", ev.Coord)
		seen[ev.Coord] = ev.Tile

		// Earlier cells keep the value they were given.
		for c, id := range seen {
			require.Equal(t, id, g.At(c), "cell %s changed", c)
			if id != g.Fallback() {
				require.Equal(t, []wfc.TileID{id}, g.Candidates(c))
			}
		}
	}
	assert.Len(t, seen, 60)
}

// TestMapGenerator_AdjacentPairsTrained checks that every adjacent output
// pair was observed in training unless one side is the fallback.
func TestMapGenerator_AdjacentPairsTrained(t *testing.T) {
	m := trainIslands(t)
	for _, order := range []wfc.Order{wfc.OrderScan, wfc.OrderEntropy} {
		for seed := uint64(1); seed <= 10; seed++ {
			g, err := wfc.NewMapGenerator(wfc.NewRNG(seed), 9, 7, m, wfc.WithOrder(order))
			require.NoError(t, err)
			g.Run()

			out := g.Output()
			for y, row := range out {
				for x, id := range row {
					if id == g.Fallback() {
						continue
					}
					for _, d := range []wfc.Direction{wfc.North, wfc.East} {
						n := wfc.C(x, y).Step(d)
						other := g.At(n)
						if other == wfc.Unresolved || other == g.Fallback() {
							continue
						}
						assert.Positive(t, m.Weight(id, d, other),
							"order %s seed %d: %d %s of %d at (%d,%d)", order, seed, other, d, id, x, y)
					}
				}
			}
		}
	}
}

func TestMapGenerator_Checkerboard(t *testing.T) {
	m, err := wfc.Train([][]wfc.TileID{
		{tileA, tileB},
		{tileB, tileA},
	})
	require.NoError(t, err)

	same := [][]wfc.TileID{{tileA, tileB}, {tileB, tileA}}
	swapped := [][]wfc.TileID{{tileB, tileA}, {tileA, tileB}}
	for seed := uint64(1); seed <= 8; seed++ {
		g, err := wfc.NewMapGenerator(wfc.NewRNG(seed), 2, 2, m)
		require.NoError(t, err)
		assert.Equal(t, 4, g.Run())

		out := g.Output()
		assert.True(t, assert.ObjectsAreEqual(same, out) || assert.ObjectsAreEqual(swapped, out),
			"seed %d produced %v", seed, out)
		assert.Zero(t, g.Stats().Contradictions)
	}
}

func TestMapGenerator_PropagationNarrowsNeighbors(t *testing.T) {
	m, err := wfc.Train([][]wfc.TileID{
		{tileA, tileB},
		{tileB, tileA},
	})
	require.NoError(t, err)

	g, err := wfc.NewMapGenerator(wfc.NewRNG(3), 2, 2, m)
	require.NoError(t, err)
	require.True(t, g.Step())

	first := g.At(wfc.C(1, 0))
	other := tileA
	if first == tileA {
		other = tileB
	}
	assert.Equal(t, []wfc.TileID{other}, g.Candidates(wfc.C(0, 0)))
	assert.Equal(t, []wfc.TileID{other}, g.Candidates(wfc.C(1, 1)))
	assert.Nil(t, g.Candidates(wfc.C(0, 1)), "diagonal cell is not touched")
}

func TestMapGenerator_Contradiction(t *testing.T) {
	// One row: nothing is ever observed north or south of any tile, so the
	// second cell of a vertical output always runs out of candidates.
	m, err := wfc.Train([][]wfc.TileID{{tileA, tileB}})
	require.NoError(t, err)

	var buf bytes.Buffer
	rec := &recorder{}
	g, err := wfc.NewMapGenerator(wfc.NewRNG(4), 1, 2, m,
		wfc.WithObserver(rec),
		wfc.WithLogger(log.New(&buf)),
		wfc.WithFallback(42),
	)
	require.NoError(t, err)

	require.NotPanics(t, func() { g.Run() })

	assert.NotEqual(t, wfc.TileID(42), g.At(wfc.C(0, 0)))
	assert.Equal(t, wfc.TileID(42), g.At(wfc.C(0, 1)))
	assert.Equal(t, 1, g.Stats().Contradictions)
	require.Len(t, rec.events, 2)
	assert.False(t, rec.events[0].Contradiction)
	assert.True(t, rec.events[1].Contradiction)
	assert.Contains(t, buf.String(), "contradiction")
	assert.Empty(t, g.Candidates(wfc.C(0, 1)))
}

func TestMapGenerator_ContradictionInRow(t *testing.T) {
	// A has nothing to its west, so whatever the first draw is, a later
	// cell in a three-wide row must fall back.
	m, err := wfc.Train([][]wfc.TileID{{tileA, tileB}})
	require.NoError(t, err)

	for seed := uint64(1); seed <= 6; seed++ {
		g, err := wfc.NewMapGenerator(wfc.NewRNG(seed), 3, 1, m)
		require.NoError(t, err)
		g.Run()

		assert.GreaterOrEqual(t, g.Stats().Contradictions, 1, "seed %d", seed)
		assert.Contains(t, g.Output()[0], wfc.DefaultFallback, "seed %d", seed)
	}
}

func TestMapGenerator_EntropyVisitsConstrainedFirst(t *testing.T) {
	m, err := wfc.Train([][]wfc.TileID{
		{tileA, tileB},
		{tileB, tileA},
	})
	require.NoError(t, err)

	rec := &recorder{}
	g, err := wfc.NewMapGenerator(wfc.NewRNG(8), 5, 5, m,
		wfc.WithOrder(wfc.OrderEntropy), wfc.WithObserver(rec))
	require.NoError(t, err)
	require.True(t, g.Step())
	require.True(t, g.Step())

	a, b := rec.events[0].Coord, rec.events[1].Coord
	dist := abs(a.X-b.X) + abs(a.Y-b.Y)
	assert.Equal(t, 1, dist, "second visit %s should neighbor first %s", b, a)
}

func TestParseOrder(t *testing.T) {
	o, err := wfc.ParseOrder("")
	require.NoError(t, err)
	assert.Equal(t, wfc.OrderScan, o)

	o, err = wfc.ParseOrder(" Entropy ")
	require.NoError(t, err)
	assert.Equal(t, wfc.OrderEntropy, o)

	_, err = wfc.ParseOrder("spiral")
	assert.ErrorIs(t, err, wfc.ErrUnknownOrder)
}

func TestSimpleRNG(t *testing.T) {
	r1 := wfc.NewRNG(12345)
	r2 := wfc.NewRNG(12345)
	for i := 0; i < 100; i++ {
		require.Equal(t, r1.Next(), r2.Next(), "step %d", i)
	}

	r := wfc.NewRNG(0)
	for i := 0; i < 1000; i++ {
		n := r.Intn(7)
		assert.GreaterOrEqual(t, n, 0)
		assert.Less(t, n, 7)
	}
	assert.Zero(t, r.Intn(0))
}

func abs(x int) int {
	if x < 0 {
		return -x
	}
	return x
}
