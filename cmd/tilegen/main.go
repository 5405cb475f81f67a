// tilegen grows tile maps in the terminal by wave function collapse.
//
// Usage:
//
//	tilegen list                 - List available tilesets
//	tilegen run [tileset]        - Generate a grid headless and print it
//	tilegen watch [tileset]      - Watch a grid being generated
//	tilegen menu                 - Pick a tileset interactively
//	tilegen inspect [tileset]    - Show a tileset's rules
//	tilegen check <file>...      - Validate tileset files
//
// Global flags:
//
//	--fps <rate>         - Steps per second (default from config: 60)
//	--seed <value>       - RNG seed for reproducible runs
//	--config <path>      - Run config YAML (default: ~/.tilegen/config.yaml)
//	--log-level <level>  - debug, info, warn, error (default: info)
//	--log-file <path>    - Log destination for the interactive commands
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	// Import built-in tilesets to register them
	_ "github.com/vovakirdan/tui-tilegen/internal/tilesets"
)

var (
	// Global flags
	flagFPS      int
	flagSeed     int64
	flagConfig   string
	flagLogLevel string
	flagLogFile  string
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "tilegen",
	Short: "Grow tile maps in your terminal",
	Long: `tilegen fills a grid with tiles so that neighbouring tiles obey the
adjacency rules of a tileset. Each step propagates the rules and then
collapses one random cell, until the grid is full or stuck.

Available commands:
  list     - Show built-in and local tilesets
  run      - Generate headless and print the result
  watch    - Animate a generation in the terminal
  menu     - Interactive tileset picker
  inspect  - Browse a tileset's rules
  check    - Validate tileset files

Examples:
  tilegen list
  tilegen run terrain --width 40 --height 12 --seed 7
  tilegen watch pipes --fps 30
  tilegen check ./tilesets/coast.yaml`,
	SilenceUsage: true,
}

func init() {
	// Global persistent flags
	rootCmd.PersistentFlags().IntVar(&flagFPS, "fps", 60, "Tick rate (steps per second)")
	rootCmd.PersistentFlags().Int64Var(&flagSeed, "seed", 0, "RNG seed (0 = random based on time)")
	rootCmd.PersistentFlags().StringVar(&flagConfig, "config", "", "Path to run config YAML")
	rootCmd.PersistentFlags().StringVar(&flagLogLevel, "log-level", "info", "Log level: debug, info, warn, error")
	rootCmd.PersistentFlags().StringVar(&flagLogFile, "log-file", "", "Write logs of interactive commands to this file")

	// Add subcommands
	rootCmd.AddCommand(listCmd)
	rootCmd.AddCommand(runCmd)
	rootCmd.AddCommand(watchCmd)
	rootCmd.AddCommand(menuCmd)
	rootCmd.AddCommand(inspectCmd)
	rootCmd.AddCommand(checkCmd)
}
