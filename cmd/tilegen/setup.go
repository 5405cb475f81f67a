package main

import (
	"fmt"
	"io"
	"os"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/vovakirdan/tui-tilegen/internal/config"
	"github.com/vovakirdan/tui-tilegen/internal/core"
)

// gridFlags are the per-command flags shared by run and watch.
type gridFlags struct {
	file   string
	width  int
	height int
}

func (g *gridFlags) register(cmd *cobra.Command) {
	cmd.Flags().StringVar(&g.file, "file", "", "Load the tileset from this file instead of by name")
	cmd.Flags().IntVar(&g.width, "width", 0, "Grid width (default from config)")
	cmd.Flags().IntVar(&g.height, "height", 0, "Grid height (default from config)")
}

// loadRunConfig loads the run config and applies the flags the user set.
// tileset is the optional positional argument.
func loadRunConfig(cmd *cobra.Command, tileset string, g *gridFlags) (config.RunConfig, error) {
	cfg, err := config.LoadRun(flagConfig)
	if err != nil {
		return cfg, err
	}

	flags := cmd.Flags()
	if flags.Changed("fps") {
		cfg.TickRate = flagFPS
	}
	if flags.Changed("seed") {
		cfg.Seed = flagSeed
	}
	if tileset != "" {
		cfg.Tileset = tileset
	}
	if g != nil {
		if flags.Changed("width") {
			cfg.Width = g.width
		}
		if flags.Changed("height") {
			cfg.Height = g.height
		}
	}
	return cfg, nil
}

// loadTileset resolves the tileset of cfg, or the file when one is given.
// The run config is updated to name the tileset actually loaded.
func loadTileset(cfg *config.RunConfig, file string) (*config.Tileset, error) {
	ts, err := config.LoadTileset(cfg.Tileset, file)
	if err != nil {
		return nil, err
	}
	cfg.Tileset = ts.ID
	return ts, nil
}

// newLogger creates the command logger writing to w.
func newLogger(w io.Writer) (*log.Logger, error) {
	level, err := log.ParseLevel(flagLogLevel)
	if err != nil {
		return nil, fmt.Errorf("invalid --log-level: %w", err)
	}
	return log.NewWithOptions(w, log.Options{
		ReportTimestamp: true,
		Prefix:          "tilegen",
		Level:           level,
	}), nil
}

// interactiveLogger returns a logger for full-screen commands, which must
// not write to the terminal. Logs go to --log-file or nowhere.
// The returned close function is never nil.
func interactiveLogger() (*log.Logger, func(), error) {
	if flagLogFile == "" {
		logger, err := newLogger(io.Discard)
		return logger, func() {}, err
	}
	f, err := os.OpenFile(flagLogFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o600)
	if err != nil {
		return nil, func() {}, fmt.Errorf("opening log file: %w", err)
	}
	logger, err := newLogger(f)
	if err != nil {
		f.Close()
		return nil, func() {}, err
	}
	return logger, func() { f.Close() }, nil
}

// terminalSize returns the size of stdout, or the default screen size
// when it is not a terminal.
func terminalSize() (int, int) {
	def := core.DefaultConfig()
	width, height := def.ScreenW, def.ScreenH
	if w, h, err := term.GetSize(int(os.Stdout.Fd())); err == nil {
		width = w
		height = h
	}
	return width, height
}

// isTerminal reports whether stdout is a terminal.
func isTerminal() bool {
	return term.IsTerminal(int(os.Stdout.Fd()))
}

// fail prints err to stderr and exits with status 1.
func fail(err error) {
	fmt.Fprintf(os.Stderr, "Error: %v\n", err)
	os.Exit(1)
}
