package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/tui-tilegen/internal/config"
)

var checkStrict bool

var checkCmd = &cobra.Command{
	Use:   "check <file>...",
	Short: "Validate tileset files",
	Long: `Parse each tileset file and report errors and lint findings.

Exits with status 1 if any file fails to load, or with --strict if any
file has lint findings.

Examples:
  tilegen check ./tilesets/coast.yaml
  tilegen check --strict ./tilesets/*.yaml`,
	Args: cobra.MinimumNArgs(1),
	Run:  runCheck,
}

func init() {
	checkCmd.Flags().BoolVar(&checkStrict, "strict", false, "Treat lint findings as errors")
}

func runCheck(cmd *cobra.Command, args []string) {
	failed := 0
	for _, path := range args {
		ts, err := config.LoadTilesetFile(path)
		if err != nil {
			fmt.Fprintf(os.Stderr, "FAIL %v\n", err)
			failed++
			continue
		}

		issues := ts.Catalog.Lint()
		status := "ok  "
		if len(issues) > 0 {
			status = "warn"
			if checkStrict {
				status = "FAIL"
				failed++
			}
		}
		fmt.Printf("%s %s: %d tiles, %d lint finding(s)\n", status, path, ts.Catalog.Len(), len(issues))
		for _, issue := range issues {
			fmt.Printf("       %s\n", issue)
		}
	}

	if failed > 0 {
		fail(errors.New(plural(failed, "file failed", "files failed")))
	}
}

func plural(n int, one, many string) string {
	if n == 1 {
		return fmt.Sprintf("%d %s", n, one)
	}
	return fmt.Sprintf("%d %s", n, many)
}
