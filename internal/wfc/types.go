// Package wfc implements a wave function collapse tile synthesizer.
// A Model is trained from a sample grid of tile ids and a MapGenerator uses
// it to fill an output grid one cell per Step.
// This package is UI-agnostic and deterministic for a given random source.
package wfc

import "fmt"

// TileID identifies a tile kind. Trained ids are non-negative.
type TileID int

const (
	// Unresolved marks an output cell that has not been visited yet.
	Unresolved TileID = -1

	// DefaultFallback is emitted for cells whose candidates ran out.
	DefaultFallback TileID = 99
)

// Direction is one of the four cardinal directions.
type Direction uint8

const (
	North Direction = iota
	East
	South
	West
)

// Directions lists every direction in compass order.
var Directions = [4]Direction{North, East, South, West}

// String returns the string representation of a direction.
func (d Direction) String() string {
	switch d {
	case North:
		return "north"
	case East:
		return "east"
	case South:
		return "south"
	case West:
		return "west"
	default:
		return "unknown"
	}
}

// Delta returns the (dx, dy) offset for one step in this direction.
// North increases Y: grids are indexed [y][x] and row y+1 is north of row y.
func (d Direction) Delta() (dx, dy int) {
	switch d {
	case North:
		return 0, 1
	case East:
		return 1, 0
	case South:
		return 0, -1
	case West:
		return -1, 0
	default:
		return 0, 0
	}
}

// Opposite returns the opposite direction.
func (d Direction) Opposite() Direction {
	switch d {
	case North:
		return South
	case East:
		return West
	case South:
		return North
	case West:
		return East
	default:
		return d
	}
}

// Coord is a cell position; X is the column and Y the row.
type Coord struct {
	X int
	Y int
}

// C is a convenience constructor for Coord.
func C(x, y int) Coord {
	return Coord{X: x, Y: y}
}

// String returns a string representation of the coordinate.
func (c Coord) String() string {
	return fmt.Sprintf("(%d,%d)", c.X, c.Y)
}

// Step returns the coordinate one step in the given direction.
func (c Coord) Step(d Direction) Coord {
	dx, dy := d.Delta()
	return Coord{X: c.X + dx, Y: c.Y + dy}
}

// inBounds reports whether c lies inside a w×h grid.
func inBounds(c Coord, w, h int) bool {
	return c.X >= 0 && c.X < w && c.Y >= 0 && c.Y < h
}

// adjacent calls fn for every in-bounds neighbor of c, in compass order.
// Training and generation both go through here so they share one convention.
func adjacent(c Coord, w, h int, fn func(d Direction, n Coord)) {
	for _, d := range Directions {
		n := c.Step(d)
		if inBounds(n, w, h) {
			fn(d, n)
		}
	}
}
