// Package wfc implements the constraint propagation ("wave function
// collapse") engine used to generate tile grids.
//
// The package is UI-agnostic and deterministic for a given random source.
// It does not read files, log or render; hosts feed it an already parsed
// Catalog and poll the render bridge once per tick.
package wfc

import "fmt"

// TileCode identifies a tile variant. It keys into a Catalog.
type TileCode uint32

// Dir is one of the four axis-aligned neighbour directions.
type Dir uint8

const (
	DirTop Dir = iota
	DirRight
	DirBottom
	DirLeft
)

// Dirs lists all directions in propagation order.
var Dirs = [4]Dir{DirTop, DirRight, DirBottom, DirLeft}

// String returns the string representation of a direction.
func (d Dir) String() string {
	switch d {
	case DirTop:
		return "top"
	case DirRight:
		return "right"
	case DirBottom:
		return "bottom"
	case DirLeft:
		return "left"
	default:
		return "unknown"
	}
}

// Delta returns the (dx, dy) offset for one step in this direction.
// Y grows upward: the top neighbour of (x, y) is (x, y+1).
func (d Dir) Delta() (dx, dy int) {
	switch d {
	case DirTop:
		return 0, 1
	case DirRight:
		return 1, 0
	case DirBottom:
		return 0, -1
	case DirLeft:
		return -1, 0
	default:
		return 0, 0
	}
}

// Opposite returns the opposite direction.
func (d Dir) Opposite() Dir {
	switch d {
	case DirTop:
		return DirBottom
	case DirRight:
		return DirLeft
	case DirBottom:
		return DirTop
	case DirLeft:
		return DirRight
	default:
		return d
	}
}

// Position is a cell coordinate on the grid.
type Position struct {
	X int
	Y int
}

// P is a convenience constructor for Position.
func P(x, y int) Position {
	return Position{X: x, Y: y}
}

// String returns a string representation of the position.
func (p Position) String() string {
	return fmt.Sprintf("(%d,%d)", p.X, p.Y)
}

// Step returns the neighbouring position in the given direction.
func (p Position) Step(d Dir) Position {
	dx, dy := d.Delta()
	return Position{X: p.X + dx, Y: p.Y + dy}
}
