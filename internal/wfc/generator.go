package wfc

import (
	"github.com/charmbracelet/log"
)

// State is the lifecycle state of a MapGenerator.
type State uint8

const (
	// StateReady means at least one cell is still waiting to be collapsed.
	StateReady State = iota
	// StateDone means every cell has been visited. A generator never leaves it.
	StateDone
)

// String returns the string representation of a state.
func (s State) String() string {
	switch s {
	case StateReady:
		return "ready"
	case StateDone:
		return "done"
	default:
		return "unknown"
	}
}

// Event describes the outcome of one Step.
type Event struct {
	Coord         Coord
	Tile          TileID
	Candidates    int  // candidates left when the tile was drawn
	Contradiction bool // Tile is the fallback because no candidate survived
}

// Observer receives every collapse performed by a generator.
type Observer interface {
	OnCollapse(ev Event)
}

// ObserverFunc adapts a function to the Observer interface.
type ObserverFunc func(ev Event)

// OnCollapse calls f(ev).
func (f ObserverFunc) OnCollapse(ev Event) {
	f(ev)
}

// Stats counts what a generator has done so far.
type Stats struct {
	Steps          int
	Contradictions int
}

// Option configures a MapGenerator.
type Option func(*MapGenerator)

// WithFallback sets the tile emitted for contradicted cells.
func WithFallback(id TileID) Option {
	return func(g *MapGenerator) {
		g.fallback = id
	}
}

// WithOrder selects the visitation order.
func WithOrder(o Order) Option {
	return func(g *MapGenerator) {
		g.orderKind = o
	}
}

// WithLogger reports collapses at debug level and contradictions at warn level.
func WithLogger(l *log.Logger) Option {
	return func(g *MapGenerator) {
		g.logger = l
	}
}

// WithObserver registers an observer called after every step.
func WithObserver(o Observer) Option {
	return func(g *MapGenerator) {
		g.observer = o
	}
}

// MapGenerator fills a width×height output grid from a trained model,
// collapsing one cell per Step. It is not safe for concurrent use.
type MapGenerator struct {
	width     int
	height    int
	model     *Model
	rng       Source
	cells     []Domain // row-major, index = y*width + x
	output    [][]TileID
	order     visitor
	orderKind Order
	fallback  TileID
	logger    *log.Logger
	observer  Observer
	stats     Stats
}

// NewMapGenerator creates a generator. The visitation order is fixed here.
func NewMapGenerator(rng Source, width, height int, model *Model, opts ...Option) (*MapGenerator, error) {
	if width <= 0 || height <= 0 {
		return nil, ErrInvalidDimensions
	}
	if model == nil {
		return nil, ErrNilModel
	}
	if rng == nil {
		return nil, ErrNilSource
	}

	g := &MapGenerator{
		width:    width,
		height:   height,
		model:    model,
		rng:      rng,
		cells:    make([]Domain, width*height),
		output:   make([][]TileID, height),
		fallback: DefaultFallback,
	}
	for _, opt := range opts {
		opt(g)
	}
	if model.Has(g.fallback) {
		return nil, ErrFallbackTrained
	}

	for y := range g.output {
		row := make([]TileID, width)
		for x := range row {
			row[x] = Unresolved
		}
		g.output[y] = row
	}

	switch g.orderKind {
	case OrderEntropy:
		g.order = &entropyQueue{left: width * height}
	default:
		g.orderKind = OrderScan
		g.order = newScanQueue(width, height)
	}
	return g, nil
}

// index converts a coordinate to a flat cell index.
func (g *MapGenerator) index(c Coord) int {
	return c.Y*g.width + c.X
}

// Step collapses the next cell and writes its tile to the output.
// It returns false, doing nothing, once every cell has been visited.
func (g *MapGenerator) Step() bool {
	c, ok := g.order.next(g)
	if !ok {
		return false
	}
	ev := g.collapseAt(c)
	g.output[c.Y][c.X] = ev.Tile
	g.stats.Steps++
	if ev.Contradiction {
		g.stats.Contradictions++
	}

	if g.logger != nil {
		if ev.Contradiction {
			g.logger.Warn("contradiction", "x", c.X, "y", c.Y, "fallback", ev.Tile)
		} else {
			g.logger.Debug("collapsed", "x", c.X, "y", c.Y, "tile", ev.Tile, "candidates", ev.Candidates)
		}
	}
	if g.observer != nil {
		g.observer.OnCollapse(ev)
	}
	return true
}

// Run steps until the generator is done and returns the number of steps taken.
func (g *MapGenerator) Run() int {
	n := 0
	for g.Step() {
		n++
	}
	return n
}

// State returns StateDone once every cell has been visited.
func (g *MapGenerator) State() State {
	if g.order.remaining() == 0 {
		return StateDone
	}
	return StateReady
}

// Done reports whether every cell has been visited.
func (g *MapGenerator) Done() bool {
	return g.State() == StateDone
}

// Remaining returns the number of cells still to visit.
func (g *MapGenerator) Remaining() int {
	return g.order.remaining()
}

// Width returns the output width.
func (g *MapGenerator) Width() int {
	return g.width
}

// Height returns the output height.
func (g *MapGenerator) Height() int {
	return g.height
}

// Order returns the visitation order in use.
func (g *MapGenerator) Order() Order {
	return g.orderKind
}

// Fallback returns the contradiction tile.
func (g *MapGenerator) Fallback() TileID {
	return g.fallback
}

// Stats returns step and contradiction counts.
func (g *MapGenerator) Stats() Stats {
	return g.stats
}

// At returns the output tile at c, or Unresolved if c is out of bounds
// or not yet visited.
func (g *MapGenerator) At(c Coord) TileID {
	if !inBounds(c, g.width, g.height) {
		return Unresolved
	}
	return g.output[c.Y][c.X]
}

// Output returns a copy of the output grid, indexed [y][x].
func (g *MapGenerator) Output() [][]TileID {
	out := make([][]TileID, len(g.output))
	for y, row := range g.output {
		out[y] = append([]TileID(nil), row...)
	}
	return out
}

// Candidates returns the remaining candidates at c in ascending order.
// It returns nil while the cell is unconstrained or when c is out of bounds.
func (g *MapGenerator) Candidates(c Coord) []TileID {
	if !inBounds(c, g.width, g.height) {
		return nil
	}
	return g.cells[g.index(c)].Candidates()
}

// Collapsed reports whether the cell at c has been visited.
func (g *MapGenerator) Collapsed(c Coord) bool {
	if !inBounds(c, g.width, g.height) {
		return false
	}
	return g.cells[g.index(c)].Collapsed()
}
