package wfc

import (
	"errors"
	"math/rand"
	"testing"
)

func newEngine(t *testing.T, w, h int, cat *Catalog, seed int64) *Engine {
	t.Helper()
	return NewEngine(mustGrid(t, w, h, cat), rand.New(rand.NewSource(seed)))
}

// runToEnd steps until the grid is complete or the step budget runs out.
func runToEnd(t *testing.T, e *Engine) {
	t.Helper()
	budget := e.Grid().Width()*e.Grid().Height() + 2
	for i := 0; i < budget && !e.Complete(); i++ {
		if err := e.Step(); err != nil {
			t.Fatalf("Step() #%d failed: %v", i, err)
		}
	}
	if !e.Complete() {
		t.Fatalf("grid not complete after %d steps, %d cells remain", budget, e.Grid().Remaining())
	}
}

// A single tile with no rules fills the grid, one cell per step.
func TestEngineUniformTile(t *testing.T) {
	cat := mustCatalog(t, map[TileCode]ModelOptions{5: {Asset: "five.png"}})
	e := newEngine(t, 2, 2, cat, 1)

	if err := e.Seed(P(0, 0), 5); err != nil {
		t.Fatalf("Seed() failed: %v", err)
	}

	seen := make(map[Position]int)
	for _, pl := range e.Drain() {
		seen[pl.Pos]++
	}
	for i := 0; i < 10; i++ {
		if err := e.Step(); err != nil {
			t.Fatalf("Step() failed: %v", err)
		}
		for _, pl := range e.Drain() {
			if pl.Code != 5 || pl.Asset != "five.png" {
				t.Errorf("placement %+v, want code 5 with five.png", pl)
			}
			seen[pl.Pos]++
		}
	}

	if !e.Complete() {
		t.Fatal("grid should be complete")
	}
	if len(seen) != 4 {
		t.Errorf("drained %d distinct cells, want 4", len(seen))
	}
	for p, n := range seen {
		if n != 1 {
			t.Errorf("cell %v drained %d times, want 1", p, n)
		}
		if v, _ := mustCell(t, e.Grid(), p.X, p.Y).Value(); v != 5 {
			t.Errorf("cell %v = %d, want 5", p, v)
		}
	}
	if e.Steps() != 3 {
		t.Errorf("Steps() = %d, want 3 random collapses after the seed", e.Steps())
	}
}

// Seeding the left cell rules out the right cell's only alternative.
func TestEngineRightNeighbourAutoCollapses(t *testing.T) {
	cat := mustCatalog(t, map[TileCode]ModelOptions{
		1: {Asset: "one", Forbidden: Constraint{Right: NewTileSet(2)}},
		2: {Asset: "two"},
	})
	e := newEngine(t, 2, 1, cat, 1)

	if err := e.Seed(P(0, 0), 1); err != nil {
		t.Fatalf("Seed() failed: %v", err)
	}
	if err := e.Propagate(); err != nil {
		t.Fatalf("Propagate() failed: %v", err)
	}

	r := mustCell(t, e.Grid(), 1, 0)
	if v, ok := r.Value(); !ok || v != 1 {
		t.Errorf("right cell Value() = %d, %v; want 1, true", v, ok)
	}
	if r.Candidates().Contains(2) {
		t.Errorf("right cell candidates %v still contain 2", r.Candidates())
	}
	if !e.Complete() {
		t.Error("both cells should be collapsed after propagation")
	}
}

// Two collapsed cells squeeze the middle cell from opposite sides.
func TestEngineContradiction(t *testing.T) {
	cat := mustCatalog(t, map[TileCode]ModelOptions{
		1: {Asset: "one", Forbidden: Constraint{Right: NewTileSet(1, 2)}},
		2: {Asset: "two"},
		3: {Asset: "three", Forbidden: Constraint{Left: NewTileSet(3)}},
	})
	e := newEngine(t, 3, 1, cat, 1)

	if err := e.Seed(P(0, 0), 1); err != nil {
		t.Fatalf("Seed() failed: %v", err)
	}
	if err := e.Seed(P(2, 0), 3); err != nil {
		t.Fatalf("Seed() failed: %v", err)
	}

	err := e.Step()
	if !errors.Is(err, ErrContradiction) {
		t.Fatalf("Step() error = %v, want ErrContradiction", err)
	}
	var ce *ContradictionError
	if !errors.As(err, &ce) {
		t.Fatalf("error %T is not a *ContradictionError", err)
	}
	if ce.Pos != P(1, 0) {
		t.Errorf("contradiction at %v, want (1,0)", ce.Pos)
	}

	mid := mustCell(t, e.Grid(), 1, 0)
	if mid.Collapsed() || mid.Candidates().Len() == 0 {
		t.Errorf("middle cell left in invalid state: collapsed=%v candidates=%v", mid.Collapsed(), mid.Candidates())
	}

	// The engine stays halted
	if e.Err() != err {
		t.Errorf("Err() = %v, want %v", e.Err(), err)
	}
	remaining := e.Grid().Remaining()
	if err2 := e.Step(); err2 != err {
		t.Errorf("Step() after halt = %v, want %v", err2, err)
	}
	if e.Grid().Remaining() != remaining {
		t.Error("Step() after halt changed the grid")
	}
	if err2 := e.Seed(P(1, 0), 2); err2 != err {
		t.Errorf("Seed() after halt = %v, want %v", err2, err)
	}
}

func TestEngineTerminatesWithGradientRules(t *testing.T) {
	cat := gradientCatalog(t, 6)
	for seed := int64(1); seed <= 20; seed++ {
		e := newEngine(t, 12, 9, cat, seed)
		if _, _, err := e.SeedRandom(); err != nil {
			t.Fatalf("seed %d: SeedRandom() failed: %v", seed, err)
		}
		runToEnd(t, e)
		if err := e.Propagate(); err != nil {
			t.Fatalf("seed %d: final Propagate() failed: %v", seed, err)
		}
		checkGradient(t, e.Grid())
	}
}

// checkGradient verifies neighbouring levels differ by at most one.
func checkGradient(t *testing.T, g *Grid) {
	t.Helper()
	vals := g.Values()
	for y := 0; y < g.Height(); y++ {
		for x := 0; x < g.Width(); x++ {
			v := vals[y][x]
			if x+1 < g.Width() && abs(v-vals[y][x+1]) > 1 {
				t.Errorf("(%d,%d)=%d next to (%d,%d)=%d", x, y, v, x+1, y, vals[y][x+1])
			}
			if y+1 < g.Height() && abs(v-vals[y+1][x]) > 1 {
				t.Errorf("(%d,%d)=%d next to (%d,%d)=%d", x, y, v, x, y+1, vals[y+1][x])
			}
		}
	}
}

func abs(v int64) int64 {
	if v < 0 {
		return -v
	}
	return v
}

func TestEngineCandidatesNeverGrow(t *testing.T) {
	cat := gradientCatalog(t, 5)
	e := newEngine(t, 8, 8, cat, 42)
	g := e.Grid()

	if _, _, err := e.SeedRandom(); err != nil {
		t.Fatalf("SeedRandom() failed: %v", err)
	}

	prev := make([]int, g.Width()*g.Height())
	for i := range prev {
		prev[i] = cat.Len()
	}
	collapsedAt := make(map[Position]TileCode)

	for step := 0; !e.Complete(); step++ {
		if err := e.Step(); err != nil {
			t.Fatalf("Step() #%d failed: %v", step, err)
		}
		for y := 0; y < g.Height(); y++ {
			for x := 0; x < g.Width(); x++ {
				c := mustCell(t, g, x, y)
				i := y*g.Width() + x
				if v, ok := c.Value(); ok {
					if !cat.Has(v) {
						t.Fatalf("cell %v collapsed to %d outside the catalog", c.Pos, v)
					}
					if old, seen := collapsedAt[c.Pos]; seen && old != v {
						t.Fatalf("cell %v changed value from %d to %d", c.Pos, old, v)
					}
					collapsedAt[c.Pos] = v
					continue
				}
				if c.Candidates().Len() > prev[i] {
					t.Fatalf("cell %v grew from %d to %d candidates", c.Pos, prev[i], c.Candidates().Len())
				}
				if c.Candidates().Len() == 0 {
					t.Fatalf("cell %v is uncollapsed with no candidates", c.Pos)
				}
				prev[i] = c.Candidates().Len()
			}
		}
	}
}

func TestEngineDeterministicReplay(t *testing.T) {
	cat := gradientCatalog(t, 7)
	run := func() [][]int64 {
		e := newEngine(t, 10, 10, cat, 2024)
		if _, _, err := e.SeedRandom(); err != nil {
			t.Fatalf("SeedRandom() failed: %v", err)
		}
		runToEnd(t, e)
		return e.Grid().Values()
	}

	a, b := run(), run()
	for y := range a {
		for x := range a[y] {
			if a[y][x] != b[y][x] {
				t.Fatalf("runs differ at (%d,%d): %d vs %d", x, y, a[y][x], b[y][x])
			}
		}
	}
}

func TestEngineStepOnCompleteGridIsNoop(t *testing.T) {
	cat := mustCatalog(t, map[TileCode]ModelOptions{0: {Asset: "x"}})
	e := newEngine(t, 1, 1, cat, 3)

	p, v, err := e.SeedRandom()
	if err != nil {
		t.Fatalf("SeedRandom() failed: %v", err)
	}
	if p != P(0, 0) || v != 0 {
		t.Errorf("SeedRandom() = %v, %d; want (0,0), 0", p, v)
	}
	if !e.Complete() {
		t.Fatal("1x1 grid should be complete after seeding")
	}
	for i := 0; i < 3; i++ {
		if err := e.Step(); err != nil {
			t.Fatalf("Step() failed: %v", err)
		}
	}
	if e.Steps() != 0 {
		t.Errorf("Steps() = %d, want 0", e.Steps())
	}
	if _, _, err := e.SeedRandom(); !errors.Is(err, ErrAlreadyCollapsed) {
		t.Errorf("SeedRandom() on full grid error = %v, want ErrAlreadyCollapsed", err)
	}
}
