package wfc

import "fmt"

// Cell is one grid slot: either collapsed to a value or still holding a
// non-empty set of candidates.
type Cell struct {
	Pos        Position
	value      TileCode
	collapsed  bool
	candidates TileSet
	reported   bool
}

// Value returns the collapsed value and whether the cell is collapsed.
func (c Cell) Value() (TileCode, bool) {
	return c.value, c.collapsed
}

// Collapsed reports whether the cell has a value.
func (c Cell) Collapsed() bool {
	return c.collapsed
}

// Candidates returns a copy of the remaining candidates.
// The set is frozen once the cell collapses.
func (c Cell) Candidates() TileSet {
	return c.candidates.Clone()
}

// Reported reports whether the render bridge has emitted this cell.
func (c Cell) Reported() bool {
	return c.reported
}

// Grid is a fixed-size matrix of cells plus the bookkeeping propagation
// needs: the worklist and the set of uncollapsed positions.
// Cells are stored in row-major order: index = y*Width + x.
type Grid struct {
	width   int
	height  int
	catalog *Catalog
	cells   []Cell
	work    *Worklist

	// open holds the indices of uncollapsed cells; slot maps a cell index
	// to its place in open, or -1 once collapsed.
	open []int
	slot []int
}

// NewGrid creates a grid where every cell may still become any tile of
// the catalog.
func NewGrid(width, height int, catalog *Catalog) (*Grid, error) {
	if width <= 0 || height <= 0 {
		return nil, fmt.Errorf("%w: %dx%d", ErrInvalidSize, width, height)
	}
	if catalog == nil || catalog.Len() == 0 {
		return nil, ErrEmptyCatalog
	}

	n := width * height
	g := &Grid{
		width:   width,
		height:  height,
		catalog: catalog,
		cells:   make([]Cell, n),
		work:    NewWorklist(width, height),
		open:    make([]int, n),
		slot:    make([]int, n),
	}
	domain := catalog.Domain()
	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			i := y*width + x
			g.cells[i] = Cell{
				Pos:        P(x, y),
				candidates: domain.Clone(),
			}
			g.open[i] = i
			g.slot[i] = i
		}
	}
	return g, nil
}

// Width returns the number of columns.
func (g *Grid) Width() int { return g.width }

// Height returns the number of rows.
func (g *Grid) Height() int { return g.height }

// Catalog returns the catalog the grid was built from.
func (g *Grid) Catalog() *Catalog { return g.catalog }

// InBounds returns true if p lies inside the grid.
func (g *Grid) InBounds(p Position) bool {
	return p.X >= 0 && p.X < g.width && p.Y >= 0 && p.Y < g.height
}

func (g *Grid) index(p Position) int {
	return p.Y*g.width + p.X
}

// at returns the cell at p. Callers guarantee p is in bounds.
func (g *Grid) at(p Position) *Cell {
	if !g.InBounds(p) {
		panic(fmt.Errorf("%w: %s in %dx%d grid", ErrOutOfBounds, p, g.width, g.height))
	}
	return &g.cells[g.index(p)]
}

// Cell returns a copy of the cell at (x, y).
func (g *Grid) Cell(x, y int) (Cell, error) {
	p := P(x, y)
	if !g.InBounds(p) {
		return Cell{}, fmt.Errorf("%w: %s in %dx%d grid", ErrOutOfBounds, p, g.width, g.height)
	}
	c := g.cells[g.index(p)]
	c.candidates = c.candidates.Clone()
	return c, nil
}

// Remaining returns the number of uncollapsed cells.
func (g *Grid) Remaining() int {
	return len(g.open)
}

// Complete reports whether every cell has collapsed.
func (g *Grid) Complete() bool {
	return len(g.open) == 0
}

// openAt returns the i-th uncollapsed position, 0 <= i < Remaining().
func (g *Grid) openAt(i int) Position {
	return g.cells[g.open[i]].Pos
}

// Collapse fixes the cell at p to value and queues it for propagation.
// It works regardless of how many candidates the cell still has, so it
// serves both for seeding and for cascading collapses.
func (g *Grid) Collapse(p Position, value TileCode) error {
	if !g.InBounds(p) {
		return fmt.Errorf("%w: %s in %dx%d grid", ErrOutOfBounds, p, g.width, g.height)
	}
	if !g.catalog.Has(value) {
		return fmt.Errorf("%w: %d", ErrUnknownTileCode, value)
	}
	c := g.at(p)
	if c.collapsed {
		return fmt.Errorf("%w: %s", ErrAlreadyCollapsed, p)
	}

	c.value = value
	c.collapsed = true
	g.removeOpen(g.index(p))
	g.work.Push(p)
	return nil
}

// removeOpen drops cell index i from the uncollapsed set by swapping the
// last entry into its slot.
func (g *Grid) removeOpen(i int) {
	s := g.slot[i]
	last := len(g.open) - 1
	moved := g.open[last]
	g.open[s] = moved
	g.slot[moved] = s
	g.open = g.open[:last]
	g.slot[i] = -1
}

// Forbidden returns, per direction, the codes that may not appear in the
// neighbouring cell. A collapsed cell yields its catalog rule unchanged.
// An uncollapsed cell yields the intersection over its candidates: a code
// is only ruled out if every tile the cell could still become forbids it.
// The result is a copy the caller may keep.
func (g *Grid) Forbidden(p Position) (Constraint, error) {
	if !g.InBounds(p) {
		return Constraint{}, fmt.Errorf("%w: %s in %dx%d grid", ErrOutOfBounds, p, g.width, g.height)
	}
	f, err := g.forbidden(p)
	if err != nil {
		return Constraint{}, err
	}
	return f.clone(), nil
}

// forbidden is Forbidden without the copy. The sets may alias the
// catalog and are only read.
func (g *Grid) forbidden(p Position) (Constraint, error) {
	c := g.at(p)
	if c.collapsed {
		return g.catalog.mustLookup(c.value).Forbidden, nil
	}
	if len(c.candidates) == 0 {
		return Constraint{}, &ContradictionError{Pos: p}
	}

	acc := g.catalog.mustLookup(c.candidates[0]).Forbidden
	for _, code := range c.candidates[1:] {
		acc = acc.Intersect(g.catalog.mustLookup(code).Forbidden)
	}
	return acc, nil
}

// Restrict removes the forbidden codes from the candidates of the cell at
// p. Collapsed cells are left alone. A shrinking cell is queued; a cell
// left with one candidate collapses to it. A cell that would be left with
// none is not modified and a *ContradictionError is returned.
func (g *Grid) Restrict(p Position, forbidden TileSet) error {
	if !g.InBounds(p) {
		return fmt.Errorf("%w: %s in %dx%d grid", ErrOutOfBounds, p, g.width, g.height)
	}
	c := g.at(p)
	if c.collapsed || len(forbidden) == 0 {
		return nil
	}

	next := c.candidates.Without(forbidden)
	switch {
	case len(next) == 0:
		return &ContradictionError{
			Pos:       p,
			Before:    c.candidates.Clone(),
			Forbidden: forbidden.Clone(),
		}
	case len(next) == len(c.candidates):
		return nil
	}

	c.candidates = next
	g.work.Push(p)
	if len(next) == 1 {
		return g.Collapse(p, next[0])
	}
	return nil
}

// Values returns the collapsed value of every cell, indexed [y][x].
// Uncollapsed cells are reported as -1.
func (g *Grid) Values() [][]int64 {
	rows := make([][]int64, g.height)
	for y := range rows {
		rows[y] = make([]int64, g.width)
		for x := range rows[y] {
			c := &g.cells[y*g.width+x]
			if c.collapsed {
				rows[y][x] = int64(c.value)
			} else {
				rows[y][x] = -1
			}
		}
	}
	return rows
}
