package wfc

import (
	"fmt"
	"testing"
)

// gradientCatalog builds n levels where a tile forbids every tile more
// than one level away on all four sides. The rules are symmetric and can
// never drive a cell to empty.
func gradientCatalog(t *testing.T, n int) *Catalog {
	t.Helper()
	models := make(map[TileCode]ModelOptions, n)
	for a := 0; a < n; a++ {
		var far []TileCode
		for b := 0; b < n; b++ {
			if b < a-1 || b > a+1 {
				far = append(far, TileCode(b))
			}
		}
		set := NewTileSet(far...)
		models[TileCode(a)] = ModelOptions{
			Forbidden: Constraint{Top: set, Right: set, Bottom: set, Left: set},
			Asset:     fmt.Sprintf("level_%d.png", a),
		}
	}
	cat, err := NewCatalog(models)
	if err != nil {
		t.Fatalf("NewCatalog() failed: %v", err)
	}
	return cat
}

func mustCatalog(t *testing.T, models map[TileCode]ModelOptions) *Catalog {
	t.Helper()
	cat, err := NewCatalog(models)
	if err != nil {
		t.Fatalf("NewCatalog() failed: %v", err)
	}
	return cat
}

func mustGrid(t *testing.T, w, h int, cat *Catalog) *Grid {
	t.Helper()
	g, err := NewGrid(w, h, cat)
	if err != nil {
		t.Fatalf("NewGrid(%d, %d) failed: %v", w, h, err)
	}
	return g
}

func mustCell(t *testing.T, g *Grid, x, y int) Cell {
	t.Helper()
	c, err := g.Cell(x, y)
	if err != nil {
		t.Fatalf("Cell(%d, %d) failed: %v", x, y, err)
	}
	return c
}
