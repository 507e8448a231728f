package wfc

import (
	"errors"
	"fmt"
	"strings"
)

// ErrUnknownOrder indicates an unrecognized visitation order name.
var ErrUnknownOrder = errors.New("wfc: unknown visitation order")

// Order selects how a generator picks the next cell to collapse.
// A generator uses exactly one order for its whole run.
type Order uint8

const (
	// OrderScan visits a fixed sequence decided at construction: row 0 from
	// the last column to the first, then row 1, and so on.
	OrderScan Order = iota
	// OrderEntropy visits the unvisited cell with the fewest candidates,
	// breaking ties at random.
	OrderEntropy
)

// String returns the configuration name of the order.
func (o Order) String() string {
	switch o {
	case OrderScan:
		return "scan"
	case OrderEntropy:
		return "entropy"
	default:
		return "unknown"
	}
}

// ParseOrder maps a configuration name to an Order. Empty means OrderScan.
func ParseOrder(s string) (Order, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "scan":
		return OrderScan, nil
	case "entropy":
		return OrderEntropy, nil
	default:
		return OrderScan, fmt.Errorf("%w: %q", ErrUnknownOrder, s)
	}
}

// visitor yields the coordinates a generator collapses, one per step.
type visitor interface {
	next(g *MapGenerator) (Coord, bool)
	remaining() int
}

// scanQueue is consumed from the end. It is filled with (x, h-1-y) for each
// row y and column x, so the first cell popped is (w-1, 0).
type scanQueue struct {
	coords []Coord
}

func newScanQueue(w, h int) *scanQueue {
	coords := make([]Coord, 0, w*h)
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			coords = append(coords, C(x, h-(y+1)))
		}
	}
	return &scanQueue{coords: coords}
}

func (q *scanQueue) next(_ *MapGenerator) (Coord, bool) {
	if len(q.coords) == 0 {
		return Coord{}, false
	}
	last := len(q.coords) - 1
	c := q.coords[last]
	q.coords = q.coords[:last]
	return c, true
}

func (q *scanQueue) remaining() int {
	return len(q.coords)
}

// entropyQueue re-ranks the uncollapsed cells before every step.
type entropyQueue struct {
	left int
}

func (q *entropyQueue) next(g *MapGenerator) (Coord, bool) {
	if q.left == 0 {
		return Coord{}, false
	}
	universe := g.model.Len()
	best := -1
	var ties []Coord
	for y := 0; y < g.height; y++ {
		for x := 0; x < g.width; x++ {
			cell := &g.cells[g.index(C(x, y))]
			if cell.Collapsed() {
				continue
			}
			size := cell.Size(universe)
			if best < 0 || size < best {
				best = size
				ties = ties[:0]
			}
			if size == best {
				ties = append(ties, C(x, y))
			}
		}
	}
	if len(ties) == 0 {
		q.left = 0
		return Coord{}, false
	}
	q.left--
	if len(ties) == 1 {
		return ties[0], true
	}
	return ties[g.rng.Intn(len(ties))], true
}

func (q *entropyQueue) remaining() int {
	return q.left
}
