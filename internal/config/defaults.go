package config

import (
	_ "embed"
)

//go:embed defaults/tilegen.yaml
var defaultRunYAML []byte

// DefaultRunConfig returns the default run configuration.
func DefaultRunConfig() RunConfig {
	return RunConfig{
		Width:    50,
		Height:   50,
		TickRate: 60,
		Seed:     0,
		Tileset:  "terrain",
	}
}
