package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strings"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/vovakirdan/tui-tilegen/internal/platform/tui"
	"github.com/vovakirdan/tui-tilegen/internal/runner"
	"github.com/vovakirdan/tui-tilegen/internal/wfc"
)

// Output formats of the run command.
const (
	formatGrid       = "grid"
	formatPlacements = "placements"
	formatYAML       = "yaml"
)

var (
	runGrid     gridFlags
	runFormat   string
	runMaxSteps int
)

var runCmd = &cobra.Command{
	Use:   "run [tileset]",
	Short: "Generate a grid without the interactive screen",
	Long: `Generate a grid headless and print the result to stdout.

The run is unthrottled unless --fps is given. It stops when every cell
has collapsed, on a contradiction, or after --max-steps steps; the last
two exit with status 1 after printing the partial grid.

Formats:
  grid        - One glyph per cell, top row first (colored on a terminal)
  placements  - One line per collapsed cell: x y code asset, in collapse order
  yaml        - Run summary and cell codes (-1 = uncollapsed)

Examples:
  tilegen run
  tilegen run pipes --width 30 --height 10 --seed 42
  tilegen run --file ./tilesets/coast.yaml --format yaml
  tilegen run checker --format placements --max-steps 20`,
	Args: cobra.MaximumNArgs(1),
	Run:  runRun,
}

func init() {
	runGrid.register(runCmd)
	runCmd.Flags().StringVar(&runFormat, "format", formatGrid, "Output format: grid, placements, yaml")
	runCmd.Flags().IntVar(&runMaxSteps, "max-steps", 0, "Stop after this many steps (0 = width*height+1)")
}

func runRun(cmd *cobra.Command, args []string) {
	switch runFormat {
	case formatGrid, formatPlacements, formatYAML:
	default:
		fail(fmt.Errorf("unknown format %q (want grid, placements or yaml)", runFormat))
	}

	var name string
	if len(args) > 0 {
		name = args[0]
	}
	cfg, err := loadRunConfig(cmd, name, &runGrid)
	if err != nil {
		fail(err)
	}
	if !cmd.Flags().Changed("fps") {
		cfg.TickRate = 0
	}
	if cmd.Flags().Changed("max-steps") {
		cfg.MaxSteps = runMaxSteps
	}

	ts, err := loadTileset(&cfg, runGrid.file)
	if err != nil {
		fail(err)
	}
	logger, err := newLogger(os.Stderr)
	if err != nil {
		fail(err)
	}

	session, err := runner.New(runner.Options{Run: cfg, Tileset: ts, Logger: logger})
	if err != nil {
		fail(err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	var sink runner.Sink
	if runFormat == formatPlacements {
		sink = placementPrinter(os.Stdout)
	}
	res, runErr := session.Run(ctx, sink)

	switch runFormat {
	case formatGrid:
		fmt.Println(renderGrid(session, isTerminal()))
	case formatYAML:
		if err := writeYAML(os.Stdout, session, res); err != nil {
			fail(err)
		}
	}

	if runErr != nil {
		if errors.Is(runErr, context.Canceled) {
			runErr = errors.New("interrupted")
		}
		fail(runErr)
	}
}

// placementPrinter writes each placement as "x y code asset".
func placementPrinter(w io.Writer) runner.Sink {
	return runner.SinkFunc(func(p wfc.Placement) {
		fmt.Fprintf(w, "%d %d %d %s\n", p.Pos.X, p.Pos.Y, p.Code, p.Asset)
	})
}

// renderGrid draws the session grid with the top row first.
// Uncollapsed cells are shown as '.'.
func renderGrid(s *runner.Session, color bool) string {
	ts := s.Tileset()
	painter := tui.NewPainter(ts)
	values := s.Snapshot()

	var b strings.Builder
	for y := len(values) - 1; y >= 0; y-- {
		for _, v := range values[y] {
			if v < 0 {
				b.WriteRune('.')
				continue
			}
			m, err := ts.Catalog.Lookup(wfc.TileCode(v))
			if err != nil {
				b.WriteRune('?')
				continue
			}
			cell := painter.Cell(m.Asset)
			if color {
				b.WriteString(tui.StyleFor(cell.Color).Render(string(cell.Rune)))
			} else {
				b.WriteRune(cell.Rune)
			}
		}
		if y > 0 {
			b.WriteRune('\n')
		}
	}
	return b.String()
}

// runDocument is the yaml output of a run.
type runDocument struct {
	Tileset   string    `yaml:"tileset"`
	Source    string    `yaml:"source"`
	Width     int       `yaml:"width"`
	Height    int       `yaml:"height"`
	Seed      int64     `yaml:"seed"`
	SeedCell  seedDoc   `yaml:"seed_cell"`
	Status    string    `yaml:"status"`
	Error     string    `yaml:"error,omitempty"`
	Steps     int       `yaml:"steps"`
	Collapsed int       `yaml:"collapsed"`
	Rows      []rowDoc  `yaml:"rows"`
	Legend    []tileDoc `yaml:"legend"`
}

type seedDoc struct {
	X    int    `yaml:"x"`
	Y    int    `yaml:"y"`
	Code uint32 `yaml:"code"`
}

type rowDoc struct {
	Y     int     `yaml:"y"`
	Cells []int64 `yaml:"cells,flow"`
}

type tileDoc struct {
	Code  uint32 `yaml:"code"`
	Asset string `yaml:"asset_model"`
}

// writeYAML writes the run summary and grid as a yaml document.
func writeYAML(w io.Writer, s *runner.Session, res runner.Result) error {
	ts := s.Tileset()
	pos, code := s.SeedCell()

	doc := runDocument{
		Tileset:   ts.ID,
		Source:    ts.Source,
		Width:     s.Width(),
		Height:    s.Height(),
		Seed:      res.Seed,
		SeedCell:  seedDoc{X: pos.X, Y: pos.Y, Code: uint32(code)},
		Status:    res.Status.String(),
		Steps:     res.Ticks,
		Collapsed: res.Collapsed,
	}
	if err := s.Err(); err != nil {
		doc.Error = err.Error()
	}

	values := s.Snapshot()
	for y := len(values) - 1; y >= 0; y-- {
		doc.Rows = append(doc.Rows, rowDoc{Y: y, Cells: values[y]})
	}
	for _, c := range ts.Catalog.Domain() {
		m, err := ts.Catalog.Lookup(c)
		if err != nil {
			continue
		}
		doc.Legend = append(doc.Legend, tileDoc{Code: uint32(c), Asset: m.Asset})
	}

	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(doc); err != nil {
		return fmt.Errorf("encoding result: %w", err)
	}
	return enc.Close()
}
