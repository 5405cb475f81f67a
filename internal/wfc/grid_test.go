package wfc

import (
	"errors"
	"testing"
)

func TestNewGridInvalidSize(t *testing.T) {
	cat := gradientCatalog(t, 3)
	sizes := [][2]int{{0, 1}, {1, 0}, {-2, 4}, {3, -1}}
	for _, sz := range sizes {
		if _, err := NewGrid(sz[0], sz[1], cat); !errors.Is(err, ErrInvalidSize) {
			t.Errorf("NewGrid(%d, %d) error = %v, want ErrInvalidSize", sz[0], sz[1], err)
		}
	}
	if _, err := NewGrid(2, 2, nil); !errors.Is(err, ErrEmptyCatalog) {
		t.Errorf("NewGrid with nil catalog error = %v, want ErrEmptyCatalog", err)
	}
}

func TestNewGridInitialState(t *testing.T) {
	cat := gradientCatalog(t, 4)
	g := mustGrid(t, 3, 2, cat)

	if g.Width() != 3 || g.Height() != 2 {
		t.Errorf("expected 3x2 grid, got %dx%d", g.Width(), g.Height())
	}
	if g.Remaining() != 6 {
		t.Errorf("Remaining() = %d, want 6", g.Remaining())
	}
	if g.work.Len() != 0 {
		t.Errorf("worklist should start empty, has %d", g.work.Len())
	}

	for y := 0; y < 2; y++ {
		for x := 0; x < 3; x++ {
			c := mustCell(t, g, x, y)
			if c.Collapsed() || c.Reported() {
				t.Errorf("cell (%d,%d) should start uncollapsed and unreported", x, y)
			}
			if !c.Candidates().Equal(cat.Domain()) {
				t.Errorf("cell (%d,%d) candidates = %v, want full domain", x, y, c.Candidates())
			}
			if c.Pos != P(x, y) {
				t.Errorf("cell (%d,%d) has position %v", x, y, c.Pos)
			}
		}
	}
}

func TestGridCellOutOfBounds(t *testing.T) {
	g := mustGrid(t, 2, 2, gradientCatalog(t, 2))

	for _, p := range []Position{P(-1, 0), P(0, -1), P(2, 0), P(0, 2)} {
		if _, err := g.Cell(p.X, p.Y); !errors.Is(err, ErrOutOfBounds) {
			t.Errorf("Cell%v error = %v, want ErrOutOfBounds", p, err)
		}
	}
	if err := g.Collapse(P(5, 5), 0); !errors.Is(err, ErrOutOfBounds) {
		t.Errorf("Collapse out of bounds error = %v, want ErrOutOfBounds", err)
	}
}

func TestGridCollapse(t *testing.T) {
	g := mustGrid(t, 2, 2, gradientCatalog(t, 3))

	if err := g.Collapse(P(1, 0), 2); err != nil {
		t.Fatalf("Collapse() failed: %v", err)
	}

	c := mustCell(t, g, 1, 0)
	if v, ok := c.Value(); !ok || v != 2 {
		t.Errorf("Value() = %d, %v; want 2, true", v, ok)
	}
	if g.Remaining() != 3 {
		t.Errorf("Remaining() = %d, want 3", g.Remaining())
	}
	if !g.work.Pending(P(1, 0)) {
		t.Error("collapsed position should be pending in the worklist")
	}

	if err := g.Collapse(P(1, 0), 1); !errors.Is(err, ErrAlreadyCollapsed) {
		t.Errorf("second Collapse() error = %v, want ErrAlreadyCollapsed", err)
	}
	if err := g.Collapse(P(0, 0), 9); !errors.Is(err, ErrUnknownTileCode) {
		t.Errorf("Collapse() with unknown code error = %v, want ErrUnknownTileCode", err)
	}
	if g.Remaining() != 3 {
		t.Errorf("failed collapses changed Remaining() to %d", g.Remaining())
	}
}

func TestGridCollapseEveryCell(t *testing.T) {
	g := mustGrid(t, 3, 3, gradientCatalog(t, 2))

	// Collapse in an order that exercises swap-removal from the open set
	order := []Position{P(1, 1), P(2, 2), P(0, 0), P(2, 0), P(0, 2), P(1, 0), P(0, 1), P(2, 1), P(1, 2)}
	for i, p := range order {
		if err := g.Collapse(p, 0); err != nil {
			t.Fatalf("Collapse(%v) failed: %v", p, err)
		}
		if got, want := g.Remaining(), len(order)-i-1; got != want {
			t.Fatalf("after %d collapses Remaining() = %d, want %d", i+1, got, want)
		}
		for j := 0; j < g.Remaining(); j++ {
			if c := mustCell(t, g, g.openAt(j).X, g.openAt(j).Y); c.Collapsed() {
				t.Fatalf("open set contains collapsed cell %v", c.Pos)
			}
		}
	}
	if !g.Complete() {
		t.Error("grid should be complete")
	}
}

func TestGridForbiddenCollapsedIsVerbatim(t *testing.T) {
	rule := Constraint{
		Top:    NewTileSet(2),
		Right:  NewTileSet(1, 2),
		Bottom: TileSet{},
		Left:   NewTileSet(3),
	}
	cat := mustCatalog(t, map[TileCode]ModelOptions{
		1: {Asset: "a", Forbidden: rule},
		2: {Asset: "b"},
		3: {Asset: "c"},
	})
	g := mustGrid(t, 2, 2, cat)
	if err := g.Collapse(P(0, 0), 1); err != nil {
		t.Fatalf("Collapse() failed: %v", err)
	}

	got, err := g.Forbidden(P(0, 0))
	if err != nil {
		t.Fatalf("Forbidden() failed: %v", err)
	}
	if !got.Equal(rule) {
		t.Errorf("Forbidden() = %+v, want catalog rule %+v", got, rule)
	}
}

func TestGridForbiddenReturnsCopy(t *testing.T) {
	cat := mustCatalog(t, map[TileCode]ModelOptions{
		1: {Asset: "a", Forbidden: Constraint{Right: NewTileSet(2)}},
		2: {Asset: "b", Forbidden: Constraint{Right: NewTileSet(2)}},
	})
	g := mustGrid(t, 2, 1, cat)

	// Uncollapsed: the intersection of identical rules
	open, err := g.Forbidden(P(1, 0))
	if err != nil {
		t.Fatalf("Forbidden() failed: %v", err)
	}
	open.Right[0] = 7

	if err := g.Collapse(P(0, 0), 1); err != nil {
		t.Fatalf("Collapse() failed: %v", err)
	}
	got, err := g.Forbidden(P(0, 0))
	if err != nil {
		t.Fatalf("Forbidden() failed: %v", err)
	}
	got.Right[0] = 7

	for _, code := range []TileCode{1, 2} {
		m, _ := cat.Lookup(code)
		if !m.Forbidden.Right.Equal(NewTileSet(2)) {
			t.Errorf("tile %d right = %v, want {2}", code, m.Forbidden.Right)
		}
	}
}

func TestGridForbiddenIntersectsCandidates(t *testing.T) {
	cat := mustCatalog(t, map[TileCode]ModelOptions{
		1: {Asset: "a", Forbidden: Constraint{Top: NewTileSet(3, 4), Right: NewTileSet(4)}},
		2: {Asset: "b", Forbidden: Constraint{Top: NewTileSet(3), Left: NewTileSet(1)}},
		3: {Asset: "c", Forbidden: Constraint{Top: NewTileSet(3, 4)}},
		4: {Asset: "d"},
	})
	g := mustGrid(t, 2, 2, cat)

	// Full domain: tile 4 forbids nothing, so nothing is forbidden anywhere
	got, err := g.Forbidden(P(0, 0))
	if err != nil {
		t.Fatalf("Forbidden() failed: %v", err)
	}
	for _, d := range Dirs {
		if got.Side(d).Len() != 0 {
			t.Errorf("full-domain %s side = %v, want empty", d, got.Side(d))
		}
	}

	// Narrow (0,0) to {1,2,3} by forbidding 4
	if err := g.Restrict(P(0, 0), NewTileSet(4)); err != nil {
		t.Fatalf("Restrict() failed: %v", err)
	}
	got, err = g.Forbidden(P(0, 0))
	if err != nil {
		t.Fatalf("Forbidden() failed: %v", err)
	}
	if !got.Top.Equal(NewTileSet(3)) {
		t.Errorf("Top = %v, want {3}", got.Top)
	}
	if got.Right.Len() != 0 || got.Left.Len() != 0 || got.Bottom.Len() != 0 {
		t.Errorf("other sides should be empty, got %+v", got)
	}
}

func TestGridRestrict(t *testing.T) {
	g := mustGrid(t, 2, 1, gradientCatalog(t, 4))
	p := P(1, 0)

	// Forbidding nothing in the domain is a no-op
	if err := g.Restrict(p, NewTileSet(10)); err != nil {
		t.Fatalf("Restrict() failed: %v", err)
	}
	if g.work.Pending(p) {
		t.Error("unchanged cell should not be queued")
	}

	if err := g.Restrict(p, NewTileSet(0, 3)); err != nil {
		t.Fatalf("Restrict() failed: %v", err)
	}
	c := mustCell(t, g, 1, 0)
	if !c.Candidates().Equal(NewTileSet(1, 2)) {
		t.Errorf("candidates = %v, want {1,2}", c.Candidates())
	}
	if c.Collapsed() {
		t.Error("cell with two candidates should not collapse")
	}
	if !g.work.Pending(p) {
		t.Error("shrunk cell should be queued")
	}
}

func TestGridRestrictAutoCollapse(t *testing.T) {
	g := mustGrid(t, 2, 1, gradientCatalog(t, 3))
	p := P(0, 0)

	if err := g.Restrict(p, NewTileSet(0, 2)); err != nil {
		t.Fatalf("Restrict() failed: %v", err)
	}
	c := mustCell(t, g, 0, 0)
	if v, ok := c.Value(); !ok || v != 1 {
		t.Errorf("Value() = %d, %v; want 1, true", v, ok)
	}
	if g.Remaining() != 1 {
		t.Errorf("Remaining() = %d, want 1", g.Remaining())
	}

	// Collapsed cells ignore further restriction
	if err := g.Restrict(p, NewTileSet(0, 1, 2)); err != nil {
		t.Errorf("Restrict() on collapsed cell failed: %v", err)
	}
	if v, _ := mustCell(t, g, 0, 0).Value(); v != 1 {
		t.Errorf("collapsed value changed to %d", v)
	}
}

func TestGridRestrictContradiction(t *testing.T) {
	g := mustGrid(t, 1, 1, gradientCatalog(t, 3))

	if err := g.Restrict(P(0, 0), NewTileSet(0)); err != nil {
		t.Fatalf("Restrict() failed: %v", err)
	}
	err := g.Restrict(P(0, 0), NewTileSet(1, 2))
	if !errors.Is(err, ErrContradiction) {
		t.Fatalf("Restrict() error = %v, want ErrContradiction", err)
	}

	var ce *ContradictionError
	if !errors.As(err, &ce) {
		t.Fatalf("error %T is not a *ContradictionError", err)
	}
	if ce.Pos != P(0, 0) || !ce.Before.Equal(NewTileSet(1, 2)) {
		t.Errorf("ContradictionError = %+v, want pos (0,0) before {1,2}", ce)
	}

	// The failing restriction is not applied
	c := mustCell(t, g, 0, 0)
	if c.Collapsed() || c.Candidates().Len() != 2 {
		t.Errorf("cell state changed on contradiction: collapsed=%v candidates=%v", c.Collapsed(), c.Candidates())
	}
}

func TestGridValues(t *testing.T) {
	g := mustGrid(t, 2, 2, gradientCatalog(t, 3))
	if err := g.Collapse(P(1, 0), 2); err != nil {
		t.Fatalf("Collapse() failed: %v", err)
	}

	vals := g.Values()
	if vals[0][1] != 2 {
		t.Errorf("Values()[0][1] = %d, want 2", vals[0][1])
	}
	if vals[1][0] != -1 {
		t.Errorf("Values()[1][0] = %d, want -1 for uncollapsed", vals[1][0])
	}
}
