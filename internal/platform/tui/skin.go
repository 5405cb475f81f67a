package tui

import (
	"path"
	"strings"
	"unicode"

	"github.com/vovakirdan/tui-tilegen/internal/config"
	"github.com/vovakirdan/tui-tilegen/internal/core"
	"github.com/vovakirdan/tui-tilegen/internal/wfc"
)

// Painter turns asset references into screen cells using the skins of a
// tileset. Assets without a glyph are drawn with the first letter of their
// base name.
type Painter struct {
	tileset *config.Tileset
	cache   map[string]core.Cell
}

// NewPainter creates a painter for ts.
func NewPainter(ts *config.Tileset) *Painter {
	return &Painter{tileset: ts, cache: make(map[string]core.Cell)}
}

// Cell returns the screen cell of asset.
func (p *Painter) Cell(asset string) core.Cell {
	if c, ok := p.cache[asset]; ok {
		return c
	}

	skin := p.tileset.Skin(asset)
	c := core.Cell{Rune: fallbackGlyph(asset), Color: core.ColorDefault}
	for _, r := range skin.Glyph {
		c.Rune = r
		break
	}
	if color, ok := core.ParseColor(skin.Color); ok {
		c.Color = color
	}

	p.cache[asset] = c
	return c
}

// Paint draws a placement into the grid area of s, whose top-left cell is
// origin. Grid rows grow upward, screen rows grow downward.
func (p *Painter) Paint(s *core.Screen, origin core.Rect, pl wfc.Placement) {
	c := p.Cell(pl.Asset)
	sx, sy := screenPos(origin, pl.Pos)
	s.SetCell(sx, sy, c.Rune, c.Color)
}

// screenPos maps a grid position into the screen rectangle area.
func screenPos(area core.Rect, pos wfc.Position) (int, int) {
	return area.X + pos.X, area.Y + area.H - 1 - pos.Y
}

// fallbackGlyph picks the first letter or digit of the asset's base name.
func fallbackGlyph(asset string) rune {
	base := path.Base(strings.ReplaceAll(asset, "\\", "/"))
	base = strings.TrimSuffix(base, path.Ext(base))
	for _, r := range base {
		if unicode.IsLetter(r) || unicode.IsDigit(r) {
			return unicode.ToUpper(r)
		}
	}
	return '#'
}
