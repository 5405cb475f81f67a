package wfc

// Placement is one render bridge entry: a newly collapsed cell and the
// asset its tile refers to.
type Placement struct {
	Pos   Position
	Code  TileCode
	Asset string
}

// DrainRenderable returns every collapsed cell not yet reported, in
// row-major order, and marks them reported. A second call with no
// collapse in between returns an empty slice.
func (g *Grid) DrainRenderable() []Placement {
	var out []Placement
	for i := range g.cells {
		c := &g.cells[i]
		if !c.collapsed || c.reported {
			continue
		}
		m := g.catalog.mustLookup(c.value)
		out = append(out, Placement{Pos: c.Pos, Code: c.value, Asset: m.Asset})
		c.reported = true
	}
	return out
}
