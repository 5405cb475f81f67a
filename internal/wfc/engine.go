package wfc

import (
	"math/rand"
)

// Engine drives a Grid one step at a time: drain the worklist through
// constraint propagation, then collapse one random cell.
//
// An Engine is not safe for concurrent use. Hosts call Step once per tick.
type Engine struct {
	grid  *Grid
	rng   *rand.Rand
	steps int
	err   error
}

// NewEngine creates an engine for g using rng for every random choice.
func NewEngine(g *Grid, rng *rand.Rand) *Engine {
	return &Engine{grid: g, rng: rng}
}

// Grid returns the grid the engine works on.
func (e *Engine) Grid() *Grid {
	return e.grid
}

// Err returns the error that halted the engine, if any.
func (e *Engine) Err() error {
	return e.err
}

// Steps returns the number of Step calls that did work.
func (e *Engine) Steps() int {
	return e.steps
}

// Complete reports whether every cell has collapsed.
func (e *Engine) Complete() bool {
	return e.grid.Complete()
}

// Seed force-collapses the cell at p to value.
func (e *Engine) Seed(p Position, value TileCode) error {
	if e.err != nil {
		return e.err
	}
	return e.grid.Collapse(p, value)
}

// SeedRandom collapses a uniformly random cell to a uniformly random
// code of the full domain.
func (e *Engine) SeedRandom() (Position, TileCode, error) {
	if e.err != nil {
		return Position{}, 0, e.err
	}
	if e.grid.Complete() {
		return Position{}, 0, ErrAlreadyCollapsed
	}
	p := e.grid.openAt(e.rng.Intn(e.grid.Remaining()))
	domain := e.grid.catalog.domain
	value := domain[e.rng.Intn(len(domain))]
	return p, value, e.grid.Collapse(p, value)
}

// Propagate pops positions until the worklist is empty, restricting each
// neighbour with the popped cell's forbidden set for that side.
// A contradiction halts the engine.
func (e *Engine) Propagate() error {
	if e.err != nil {
		return e.err
	}
	g := e.grid
	for {
		p, ok := g.work.Pop()
		if !ok {
			return nil
		}
		forbidden, err := g.forbidden(p)
		if err != nil {
			return e.halt(err)
		}
		for _, d := range Dirs {
			n := p.Step(d)
			if !g.InBounds(n) {
				continue
			}
			if err := g.Restrict(n, forbidden.Side(d)); err != nil {
				return e.halt(err)
			}
		}
	}
}

// Step propagates to a fixed point, then collapses one uncollapsed cell
// picked uniformly at random to one of its candidates, also picked
// uniformly at random. The new collapse is propagated by the next Step.
// Step is a no-op once the grid is complete.
func (e *Engine) Step() error {
	if err := e.Propagate(); err != nil {
		return err
	}
	g := e.grid
	if g.Complete() {
		return nil
	}

	p := g.openAt(e.rng.Intn(g.Remaining()))
	c := g.at(p)
	value := c.candidates[e.rng.Intn(len(c.candidates))]
	if err := g.Collapse(p, value); err != nil {
		return e.halt(err)
	}
	e.steps++
	return nil
}

// Drain is the render bridge: see Grid.DrainRenderable.
func (e *Engine) Drain() []Placement {
	return e.grid.DrainRenderable()
}

func (e *Engine) halt(err error) error {
	e.err = err
	return err
}
