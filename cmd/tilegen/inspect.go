package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/tui-tilegen/internal/config"
	"github.com/vovakirdan/tui-tilegen/internal/platform/tui"
)

var (
	inspectFile  string
	inspectPlain bool
)

var inspectCmd = &cobra.Command{
	Use:   "inspect [tileset]",
	Short: "Show the rules of a tileset",
	Long: `Browse a tileset's tiles and forbidden neighbours per side, followed
by lint findings such as one-sided rules.

Without a terminal, or with --plain, the table is printed instead.

Examples:
  tilegen inspect pipes
  tilegen inspect --file ./tilesets/coast.yaml --plain`,
	Args: cobra.MaximumNArgs(1),
	Run:  runInspect,
}

func init() {
	inspectCmd.Flags().StringVar(&inspectFile, "file", "", "Load the tileset from this file instead of by name")
	inspectCmd.Flags().BoolVar(&inspectPlain, "plain", false, "Print the table instead of opening the inspector")
}

func runInspect(cmd *cobra.Command, args []string) {
	var name string
	if len(args) > 0 {
		name = args[0]
	}
	cfg, err := loadRunConfig(cmd, name, nil)
	if err != nil {
		fail(err)
	}
	ts, err := loadTileset(&cfg, inspectFile)
	if err != nil {
		fail(err)
	}

	if inspectPlain || !isTerminal() {
		printCatalog(ts)
		return
	}

	width, height := terminalSize()
	if _, err := tui.RunInspect(ts, width, height); err != nil {
		fail(err)
	}
}

// printCatalog writes the catalog table and lint findings to stdout.
func printCatalog(ts *config.Tileset) {
	headers := []string{"Code", "Asset", "Glyph", "Top", "Right", "Bottom", "Left"}
	rows := tui.CatalogRows(ts)

	// Calculate column widths
	widths := make([]int, len(headers))
	for i, h := range headers {
		widths[i] = len(h)
	}
	for _, row := range rows {
		for i, cell := range row {
			if len(cell) > widths[i] {
				widths[i] = len(cell)
			}
		}
	}

	fmt.Printf("%s (%d tiles, %s)\n", ts.Name, ts.Catalog.Len(), ts.Source)
	if ts.Description != "" {
		fmt.Println(ts.Description)
	}
	fmt.Println()

	printRow := func(cells []string) {
		fmt.Print(" ")
		for i, cell := range cells {
			fmt.Printf(" %-*s", widths[i], cell)
		}
		fmt.Println()
	}
	printRow(headers)
	dashes := make([]string, len(headers))
	for i, h := range headers {
		dashes[i] = fmt.Sprintf("%.*s", len(h), "----------")
	}
	printRow(dashes)
	for _, row := range rows {
		printRow(row)
	}

	issues := ts.Catalog.Lint()
	fmt.Println()
	if len(issues) == 0 {
		fmt.Println("No lint findings.")
		return
	}
	fmt.Printf("%d lint finding(s):\n", len(issues))
	for _, issue := range issues {
		fmt.Printf("  %s\n", issue)
	}
}
