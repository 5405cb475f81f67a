package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/tui-tilegen/internal/config"
	"github.com/vovakirdan/tui-tilegen/internal/registry"
)

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List all available tilesets",
	Long: `Shows the built-in tilesets and the tileset files found in
~/.tilegen/tilesets and ./tilesets.`,
	Run: runList,
}

func runList(cmd *cobra.Command, args []string) {
	tilesets := registry.List()

	// Calculate column widths
	maxIDLen := 2 // "ID" header
	for _, t := range tilesets {
		if len(t.ID) > maxIDLen {
			maxIDLen = len(t.ID)
		}
	}

	fmt.Println("Built-in tilesets:")
	fmt.Println()
	fmt.Printf("  %-*s  %s\n", maxIDLen, "ID", "Title")
	fmt.Printf("  %-*s  %s\n", maxIDLen, "--", "-----")
	for _, t := range tilesets {
		fmt.Printf("  %-*s  %s\n", maxIDLen, t.ID, t.Title)
	}

	files, err := config.ListTilesetFiles()
	if err != nil {
		fail(err)
	}
	if len(files) > 0 {
		fmt.Println()
		fmt.Println("Tileset files:")
		fmt.Println()
		for _, f := range files {
			fmt.Printf("  %s\n", f)
		}
	}

	fmt.Println()
	fmt.Println("Run 'tilegen watch <id>' to watch a tileset grow.")
}
