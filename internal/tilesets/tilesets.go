// Package tilesets registers the built-in tilesets shipped with tilegen.
// Import it for its side effects.
package tilesets

import (
	_ "embed"

	"github.com/vovakirdan/tui-tilegen/internal/registry"
)

//go:embed data/terrain.yaml
var terrainYAML []byte

//go:embed data/pipes.yaml
var pipesYAML []byte

//go:embed data/checker.yaml
var checkerYAML []byte

// uniform.json uses the bare code->tile map layout of legacy asset files.
//
//go:embed data/uniform.json
var uniformJSON []byte

func init() {
	registry.Register("terrain", "Terrain", terrainYAML)
	registry.Register("pipes", "Pipes", pipesYAML)
	registry.Register("checker", "Checker", checkerYAML)
	registry.Register("uniform", "Uniform", uniformJSON)
}
