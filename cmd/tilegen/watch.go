package main

import (
	"fmt"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/vovakirdan/tui-tilegen/internal/config"
	"github.com/vovakirdan/tui-tilegen/internal/core"
	"github.com/vovakirdan/tui-tilegen/internal/platform/tui"
	"github.com/vovakirdan/tui-tilegen/internal/runner"
)

var watchGrid gridFlags

var watchCmd = &cobra.Command{
	Use:   "watch [tileset]",
	Short: "Watch a grid being generated",
	Long: `Animate a generation in the terminal, one step per tick.

The grid is shrunk to fit the terminal when needed.

Controls:
  P        - Pause / resume
  Space    - Single step while paused
  +/-      - Faster / slower
  R        - Restart with a new seed
  ?        - More help
  Q/Esc    - Quit

Examples:
  tilegen watch
  tilegen watch pipes --fps 120
  tilegen watch --file ./tilesets/coast.yaml --seed 99`,
	Args: cobra.MaximumNArgs(1),
	Run:  runWatch,
}

func init() {
	watchGrid.register(watchCmd)
}

func runWatch(cmd *cobra.Command, args []string) {
	var name string
	if len(args) > 0 {
		name = args[0]
	}
	cfg, err := loadRunConfig(cmd, name, &watchGrid)
	if err != nil {
		fail(err)
	}
	ts, err := loadTileset(&cfg, watchGrid.file)
	if err != nil {
		fail(err)
	}

	width, height := terminalSize()
	if err := watchTileset(cfg, ts, width, height); err != nil {
		fail(err)
	}
}

// watchTileset fits the grid to the screen and runs the watch screen.
func watchTileset(cfg config.RunConfig, ts *config.Tileset, width, height int) error {
	if err := cfg.Validate(); err != nil {
		return err
	}

	logger, closeLog, err := interactiveLogger()
	if err != nil {
		return err
	}
	defer closeLog()

	cfg, rt := fitToScreen(cfg, width, height, logger)
	session, err := runner.New(runner.Options{Run: cfg, Tileset: ts, Logger: logger})
	if err != nil {
		return err
	}
	return tui.RunWatch(session, rt)
}

// fitToScreen shrinks the grid of cfg so the watch screen fits a
// width x height terminal. A seed cell outside the smaller grid is moved
// inside it. Both changes are logged.
func fitToScreen(cfg config.RunConfig, width, height int, logger *log.Logger) (config.RunConfig, core.RuntimeConfig) {
	rt := core.RuntimeConfig{
		GridW:    cfg.Width,
		GridH:    cfg.Height,
		ScreenW:  width,
		ScreenH:  height,
		TickRate: cfg.TickRate,
		Seed:     cfg.Seed,
	}.FitGrid(tui.ChromeRows)
	if rt.GridW == cfg.Width && rt.GridH == cfg.Height {
		return cfg, rt
	}

	fitted := cfg.Resize(rt.GridW, rt.GridH)
	logger.Warn("grid shrunk to fit the terminal",
		"from", fmt.Sprintf("%dx%d", cfg.Width, cfg.Height),
		"to", fmt.Sprintf("%dx%d", rt.GridW, rt.GridH))
	if cfg.SeedCell != nil && *fitted.SeedCell != *cfg.SeedCell {
		logger.Warn("seed cell moved inside the grid",
			"from", fmt.Sprintf("(%d,%d)", cfg.SeedCell.X, cfg.SeedCell.Y),
			"to", fmt.Sprintf("(%d,%d)", fitted.SeedCell.X, fitted.SeedCell.Y))
	}
	return fitted, rt
}
