package core

// RuntimeConfig contains the parameters a terminal host starts a run with.
type RuntimeConfig struct {
	GridW    int   // Grid width in cells
	GridH    int   // Grid height in cells
	ScreenW  int   // Screen width in characters
	ScreenH  int   // Screen height in characters
	TickRate int   // Engine steps per second (default 60)
	Seed     int64 // RNG seed for deterministic replay
}

// DefaultConfig returns a RuntimeConfig with sensible defaults.
func DefaultConfig() RuntimeConfig {
	return RuntimeConfig{
		GridW:    50,
		GridH:    50,
		ScreenW:  80,
		ScreenH:  24,
		TickRate: 60,
		Seed:     0, // 0 means use current time in platform layer
	}
}

// FitGrid shrinks the grid so that it plus a one-cell border and
// chromeRows lines of status fit on the screen. Sizes never drop below 1.
func (c RuntimeConfig) FitGrid(chromeRows int) RuntimeConfig {
	if c.ScreenW > 0 {
		c.GridW = Clamp(c.GridW, 1, Max(1, c.ScreenW-2))
	}
	if c.ScreenH > 0 {
		c.GridH = Clamp(c.GridH, 1, Max(1, c.ScreenH-2-chromeRows))
	}
	return c
}
