package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/tui-tilegen/internal/core"
	"github.com/vovakirdan/tui-tilegen/internal/platform/tui"
)

var menuCmd = &cobra.Command{
	Use:   "menu",
	Short: "Pick a tileset interactively",
	Long: `Start tilegen in interactive menu mode.

Use arrow keys or j/k to navigate, Enter to watch a tileset grow and I to
inspect its rules. After the watch screen closes, you return to the menu.

Controls:
  Up/Down/j/k  - Navigate menu
  Enter/Space  - Watch tileset
  I/Tab        - Inspect tileset
  Q            - Quit

Examples:
  tilegen menu
  tilegen menu --fps 30`,
	Run: runMenu,
}

func runMenu(cmd *cobra.Command, _ []string) {
	base, err := loadRunConfig(cmd, "", nil)
	if err != nil {
		fail(err)
	}

	width, height := terminalSize()
	rt := core.RuntimeConfig{
		GridW:    base.Width,
		GridH:    base.Height,
		ScreenW:  width,
		ScreenH:  height,
		TickRate: base.TickRate,
		Seed:     base.Seed,
	}

	// Menu loop
	for {
		result, err := tui.RunMenu(rt)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			break
		}

		// Update config with any size changes
		rt = result.Config
		if result.Quit {
			break
		}

		cfg := base
		cfg.Tileset = result.Item.ID
		ts, err := loadTileset(&cfg, result.Item.Path)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			continue
		}

		if result.Inspect {
			goBack, err := tui.RunInspect(ts, rt.ScreenW, rt.ScreenH)
			if err != nil {
				fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			}
			if goBack {
				continue // Back to menu
			}
			break // User quit from inspector
		}

		if err := watchTileset(cfg, ts, rt.ScreenW, rt.ScreenH); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		}

		// Loop back to menu
	}
}

