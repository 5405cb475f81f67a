// Package config provides YAML-based loading of tilesets and run
// configuration for tilegen.
package config

import (
	"errors"
	"fmt"
)

// ErrConfig marks every configuration failure. A run never starts after one.
var ErrConfig = errors.New("config error")

// ErrUnknownTileset is returned when a tileset name resolves to nothing.
var ErrUnknownTileset = errors.New("unknown tileset")

// Error describes a configuration failure and the file it came from.
// errors.Is(err, ErrConfig) holds for every *Error.
type Error struct {
	Path string // file or tileset name; empty for in-memory documents
	Err  error
}

func (e *Error) Error() string {
	if e.Path == "" {
		return fmt.Sprintf("config: %v", e.Err)
	}
	return fmt.Sprintf("config %s: %v", e.Path, e.Err)
}

// Unwrap returns the underlying cause.
func (e *Error) Unwrap() error {
	return e.Err
}

// Is makes errors.Is(err, ErrConfig) match.
func (e *Error) Is(target error) bool {
	return target == ErrConfig
}

// RunConfig contains the startup parameters of a generation run.
type RunConfig struct {
	Width    int       `yaml:"width"`
	Height   int       `yaml:"height"`
	TickRate int       `yaml:"tick_rate"` // steps per second; 0 = unthrottled (headless only)
	Seed     int64     `yaml:"seed"`      // 0 = time based
	Tileset  string    `yaml:"tileset"`
	SeedCell *SeedCell `yaml:"seed_cell,omitempty"` // nil = random seed cell
	MaxSteps int       `yaml:"max_steps"`           // 0 = width*height+1
}

// SeedCell pins the first collapse instead of picking it at random.
type SeedCell struct {
	X    int    `yaml:"x"`
	Y    int    `yaml:"y"`
	Code uint32 `yaml:"code"`
}

// Validate checks the run parameters.
func (c RunConfig) Validate() error {
	if c.Width <= 0 || c.Height <= 0 {
		return &Error{Err: fmt.Errorf("grid size must be positive, got %dx%d", c.Width, c.Height)}
	}
	if c.TickRate < 0 {
		return &Error{Err: fmt.Errorf("tick_rate must not be negative, got %d", c.TickRate)}
	}
	if c.MaxSteps < 0 {
		return &Error{Err: fmt.Errorf("max_steps must not be negative, got %d", c.MaxSteps)}
	}
	if c.Tileset == "" {
		return &Error{Err: errors.New("tileset name is empty")}
	}
	if s := c.SeedCell; s != nil {
		if s.X < 0 || s.X >= c.Width || s.Y < 0 || s.Y >= c.Height {
			return &Error{Err: fmt.Errorf("seed_cell (%d,%d) outside %dx%d grid", s.X, s.Y, c.Width, c.Height)}
		}
	}
	return nil
}

// StepLimit returns the effective maximum number of steps.
func (c RunConfig) StepLimit() int {
	if c.MaxSteps > 0 {
		return c.MaxSteps
	}
	return c.Width*c.Height + 1
}

// Resize returns c with the grid set to width x height. A seed cell that
// no longer fits is moved to the nearest cell inside the new grid; the
// seed cell of c itself is never modified.
func (c RunConfig) Resize(width, height int) RunConfig {
	c.Width, c.Height = width, height
	if s := c.SeedCell; s != nil && (s.X >= width || s.Y >= height) {
		moved := *s
		moved.X = min(moved.X, width-1)
		moved.Y = min(moved.Y, height-1)
		c.SeedCell = &moved
	}
	return c
}

// TilesetDoc is the document shape of a tileset file.
// A file may also be a bare tile map; see ParseTileset.
type TilesetDoc struct {
	Name        string             `yaml:"name"`
	Description string             `yaml:"description,omitempty"`
	Tiles       map[string]TileDoc `yaml:"tiles"`
}

// TileDoc is one tile entry. Keys of the tile map are tile codes.
type TileDoc struct {
	Code             *int64    `yaml:"code,omitempty"`
	AssetModel       string    `yaml:"asset_model"`
	BesideImpossible *SidesDoc `yaml:"beside_impossible,omitempty"`
	BesideImposible  *SidesDoc `yaml:"beside_imposible,omitempty"` // legacy spelling
	Glyph            string    `yaml:"glyph,omitempty"`            // terminal glyph, host only
	Color            string    `yaml:"color,omitempty"`            // terminal color, host only
}

// SidesDoc lists forbidden neighbour codes per side.
type SidesDoc struct {
	Top    []uint32 `yaml:"top"`
	Right  []uint32 `yaml:"right"`
	Bottom []uint32 `yaml:"bottom"`
	Left   []uint32 `yaml:"left"`
}

// Skin is the terminal presentation of an asset reference.
type Skin struct {
	Glyph string
	Color string
}
