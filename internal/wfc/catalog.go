package wfc

import (
	"fmt"
	"slices"
)

// Constraint lists, per side, the codes that may not sit next to a tile.
type Constraint struct {
	Top    TileSet
	Right  TileSet
	Bottom TileSet
	Left   TileSet
}

// Side returns the forbidden set for direction d.
func (c Constraint) Side(d Dir) TileSet {
	switch d {
	case DirTop:
		return c.Top
	case DirRight:
		return c.Right
	case DirBottom:
		return c.Bottom
	case DirLeft:
		return c.Left
	default:
		return nil
	}
}

// Intersect narrows every side to the codes forbidden by both constraints.
func (c Constraint) Intersect(other Constraint) Constraint {
	return Constraint{
		Top:    c.Top.Intersect(other.Top),
		Right:  c.Right.Intersect(other.Right),
		Bottom: c.Bottom.Intersect(other.Bottom),
		Left:   c.Left.Intersect(other.Left),
	}
}

// Equal reports whether both constraints forbid the same codes on every side.
func (c Constraint) Equal(other Constraint) bool {
	return c.Top.Equal(other.Top) && c.Right.Equal(other.Right) &&
		c.Bottom.Equal(other.Bottom) && c.Left.Equal(other.Left)
}

func (c Constraint) clone() Constraint {
	return Constraint{
		Top:    NewTileSet(c.Top...),
		Right:  NewTileSet(c.Right...),
		Bottom: NewTileSet(c.Bottom...),
		Left:   NewTileSet(c.Left...),
	}
}

// ModelOptions is the catalog entry for one tile code.
type ModelOptions struct {
	Forbidden Constraint
	Asset     string
}

// Catalog maps tile codes to their adjacency rules and asset reference.
// Its key set is the full domain every cell starts with.
// A Catalog is immutable once built.
type Catalog struct {
	models map[TileCode]ModelOptions
	domain TileSet
}

// NewCatalog copies models into a new catalog.
func NewCatalog(models map[TileCode]ModelOptions) (*Catalog, error) {
	if len(models) == 0 {
		return nil, ErrEmptyCatalog
	}

	c := &Catalog{
		models: make(map[TileCode]ModelOptions, len(models)),
		domain: make(TileSet, 0, len(models)),
	}
	for code, m := range models {
		c.models[code] = ModelOptions{
			Forbidden: m.Forbidden.clone(),
			Asset:     m.Asset,
		}
		c.domain = append(c.domain, code)
	}
	slices.Sort(c.domain)
	return c, nil
}

// Lookup returns a copy of the options for code.
func (c *Catalog) Lookup(code TileCode) (ModelOptions, error) {
	m, ok := c.models[code]
	if !ok {
		return ModelOptions{}, fmt.Errorf("%w: %d", ErrUnknownTileCode, code)
	}
	return ModelOptions{Forbidden: m.Forbidden.clone(), Asset: m.Asset}, nil
}

// Has reports whether code is part of the domain.
func (c *Catalog) Has(code TileCode) bool {
	_, ok := c.models[code]
	return ok
}

// Domain returns a fresh copy of all tile codes in ascending order.
func (c *Catalog) Domain() TileSet {
	return c.domain.Clone()
}

// Len returns the number of tile codes.
func (c *Catalog) Len() int {
	return len(c.domain)
}

// mustLookup is used where the code comes from the catalog itself.
// The returned sets are shared with the catalog and must not be modified.
func (c *Catalog) mustLookup(code TileCode) ModelOptions {
	m, ok := c.models[code]
	if !ok {
		panic(fmt.Errorf("%w: %d", ErrUnknownTileCode, code))
	}
	return m
}

// Issue kinds reported by Lint.
const (
	IssueAsymmetric  = "ASYMMETRIC"
	IssueUnknownCode = "UNKNOWN_CODE"
)

// Issue is a non-fatal finding about a catalog's rules.
type Issue struct {
	Kind    string
	Code    TileCode
	Dir     Dir
	Other   TileCode
	Message string
}

func (i Issue) String() string {
	return fmt.Sprintf("[%s] %s", i.Kind, i.Message)
}

// Lint reports rules that reference codes outside the domain and rules that
// are only declared from one side. Propagation only applies the emitting
// tile's rules, so a one-sided rule is enforced or not depending on which
// neighbour collapses first. Issues are ordered by code, then direction.
func (c *Catalog) Lint() []Issue {
	var issues []Issue
	for _, code := range c.domain {
		m := c.models[code]
		for _, d := range Dirs {
			for _, other := range m.Forbidden.Side(d) {
				om, ok := c.models[other]
				if !ok {
					issues = append(issues, Issue{
						Kind:    IssueUnknownCode,
						Code:    code,
						Dir:     d,
						Other:   other,
						Message: fmt.Sprintf("tile %d forbids unknown tile %d on its %s", code, other, d),
					})
					continue
				}
				if !om.Forbidden.Side(d.Opposite()).Contains(code) {
					issues = append(issues, Issue{
						Kind:  IssueAsymmetric,
						Code:  code,
						Dir:   d,
						Other: other,
						Message: fmt.Sprintf("tile %d forbids %d on its %s, but %d does not forbid %d on its %s",
							code, other, d, other, code, d.Opposite()),
					})
				}
			}
		}
	}
	return issues
}
