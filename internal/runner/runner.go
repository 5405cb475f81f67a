// Package runner wires a tileset and run configuration into a generation
// session that hosts tick at their own pace.
package runner

import (
	"context"
	"errors"
	"fmt"
	"io"
	"math/rand"
	"time"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/tui-tilegen/internal/config"
	"github.com/vovakirdan/tui-tilegen/internal/wfc"
)

// ErrStepLimit is returned when a run needs more ticks than its step limit.
var ErrStepLimit = errors.New("step limit exceeded")

// Status is the lifecycle state of a session.
type Status int

const (
	StatusRunning Status = iota
	StatusComplete
	StatusContradiction
	StatusStepLimit
)

func (s Status) String() string {
	switch s {
	case StatusRunning:
		return "running"
	case StatusComplete:
		return "complete"
	case StatusContradiction:
		return "contradiction"
	case StatusStepLimit:
		return "step limit"
	default:
		return "unknown"
	}
}

// Options configures a session.
type Options struct {
	Run     config.RunConfig
	Tileset *config.Tileset
	Logger  *log.Logger // nil discards log output
}

// Sink receives every placement of a run, in drain order.
type Sink interface {
	Place(p wfc.Placement)
}

// SinkFunc adapts a function to Sink.
type SinkFunc func(p wfc.Placement)

// Place calls f(p).
func (f SinkFunc) Place(p wfc.Placement) { f(p) }

// Result summarizes a finished run.
type Result struct {
	Seed      int64
	Ticks     int
	Collapsed int
	Total     int
	Status    Status
}

// Session owns one engine and its seed policy.
type Session struct {
	opts   Options
	logger *log.Logger

	engine *wfc.Engine
	seed   int64
	ticks  int
	status Status
	err    error

	seedPos  wfc.Position
	seedCode wfc.TileCode
}

// New validates opts, builds the grid and engine, and places the seed cell.
// A zero Run.Seed picks a time based seed.
func New(opts Options) (*Session, error) {
	if opts.Tileset == nil {
		return nil, errors.New("runner: no tileset")
	}
	if err := opts.Run.Validate(); err != nil {
		return nil, err
	}

	logger := opts.Logger
	if logger == nil {
		logger = log.New(io.Discard)
	}
	s := &Session{opts: opts, logger: logger}
	if err := s.Restart(opts.Run.Seed); err != nil {
		return nil, err
	}
	return s, nil
}

// Restart discards the current grid and starts over with seed.
// A zero seed picks a time based seed.
func (s *Session) Restart(seed int64) error {
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	run := s.opts.Run

	g, err := wfc.NewGrid(run.Width, run.Height, s.opts.Tileset.Catalog)
	if err != nil {
		return fmt.Errorf("runner: %w", err)
	}
	e := wfc.NewEngine(g, rand.New(rand.NewSource(seed)))

	var (
		pos  wfc.Position
		code wfc.TileCode
	)
	if sc := run.SeedCell; sc != nil {
		pos, code = wfc.P(sc.X, sc.Y), wfc.TileCode(sc.Code)
		err = e.Seed(pos, code)
	} else {
		pos, code, err = e.SeedRandom()
	}
	if err != nil {
		return fmt.Errorf("runner: seeding %s with %d: %w", pos, code, err)
	}

	s.engine = e
	s.seed = seed
	s.ticks = 0
	s.status = StatusRunning
	s.err = nil
	s.seedPos, s.seedCode = pos, code

	s.logger.Info("seeded",
		"tileset", s.opts.Tileset.ID,
		"size", fmt.Sprintf("%dx%d", run.Width, run.Height),
		"seed", seed,
		"cell", pos.String(),
		"code", code,
	)
	return nil
}

// Tick runs one engine step and returns the placements it produced.
// Once the session has stopped, Tick returns the stopping error again
// and no placements.
func (s *Session) Tick() ([]wfc.Placement, error) {
	if s.status != StatusRunning {
		return nil, s.err
	}
	if s.ticks >= s.opts.Run.StepLimit() {
		s.status = StatusStepLimit
		s.err = fmt.Errorf("%w: %d ticks", ErrStepLimit, s.ticks)
		s.logger.Warn("step limit reached", "ticks", s.ticks, "remaining", s.engine.Grid().Remaining())
		return nil, s.err
	}

	err := s.engine.Step()
	s.ticks++
	placements := s.engine.Drain()

	if err != nil {
		s.status = StatusContradiction
		s.err = err
		var ce *wfc.ContradictionError
		if errors.As(err, &ce) {
			s.logger.Error("contradiction",
				"cell", ce.Pos.String(),
				"candidates", ce.Before.String(),
				"forbidden", ce.Forbidden.String(),
				"ticks", s.ticks,
			)
		} else {
			s.logger.Error("step failed", "error", err)
		}
		return placements, err
	}

	if s.engine.Complete() {
		s.status = StatusComplete
		s.logger.Info("complete", "ticks", s.ticks, "cells", s.Total())
	}
	return placements, nil
}

// Run ticks the session until it stops or ctx is done.
// A tick rate of zero runs unthrottled.
func (s *Session) Run(ctx context.Context, sink Sink) (Result, error) {
	var tick <-chan time.Time
	if rate := s.opts.Run.TickRate; rate > 0 {
		ticker := time.NewTicker(time.Second / time.Duration(rate))
		defer ticker.Stop()
		tick = ticker.C
	}

	for s.status == StatusRunning {
		if tick != nil {
			select {
			case <-ctx.Done():
				return s.Result(), ctx.Err()
			case <-tick:
			}
		} else if err := ctx.Err(); err != nil {
			return s.Result(), err
		}

		placements, err := s.Tick()
		if sink != nil {
			for _, p := range placements {
				sink.Place(p)
			}
		}
		if err != nil {
			return s.Result(), err
		}
	}
	return s.Result(), s.err
}

// Result returns a summary of the session so far.
func (s *Session) Result() Result {
	return Result{
		Seed:      s.seed,
		Ticks:     s.ticks,
		Collapsed: s.Collapsed(),
		Total:     s.Total(),
		Status:    s.status,
	}
}

// Snapshot returns the cell values, indexed [y][x]; -1 marks an
// uncollapsed cell.
func (s *Session) Snapshot() [][]int64 {
	return s.engine.Grid().Values()
}

// Seed returns the RNG seed of the current run.
func (s *Session) Seed() int64 { return s.seed }

// SeedCell returns the first collapsed cell and its code.
func (s *Session) SeedCell() (wfc.Position, wfc.TileCode) { return s.seedPos, s.seedCode }

// Ticks returns the number of ticks run so far.
func (s *Session) Ticks() int { return s.ticks }

// Status returns the lifecycle state.
func (s *Session) Status() Status { return s.status }

// Err returns the error that stopped the session, if any.
func (s *Session) Err() error { return s.err }

// Total returns the number of cells.
func (s *Session) Total() int {
	g := s.engine.Grid()
	return g.Width() * g.Height()
}

// Collapsed returns the number of collapsed cells.
func (s *Session) Collapsed() int {
	return s.Total() - s.engine.Grid().Remaining()
}

// Tileset returns the tileset the session generates from.
func (s *Session) Tileset() *config.Tileset { return s.opts.Tileset }

// Width returns the grid width.
func (s *Session) Width() int { return s.opts.Run.Width }

// Height returns the grid height.
func (s *Session) Height() int { return s.opts.Run.Height }
