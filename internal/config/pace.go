package config

import "time"

// Pace bounds for interactive tick rate changes.
const (
	MinTickRate = 1
	MaxTickRate = 480
)

// Pace tracks the tick rate of an interactive run and how it changes when
// the user speeds up or slows down the generation.
type Pace struct {
	rate int
}

// NewPace creates a pace starting at rate, clamped to [MinTickRate, MaxTickRate].
func NewPace(rate int) *Pace {
	return &Pace{rate: clampI(rate, MinTickRate, MaxTickRate)}
}

// Rate returns the current ticks per second.
func (p *Pace) Rate() int {
	return p.rate
}

// Faster doubles the tick rate.
func (p *Pace) Faster() int {
	p.rate = clampI(p.rate*2, MinTickRate, MaxTickRate)
	return p.rate
}

// Slower halves the tick rate.
func (p *Pace) Slower() int {
	p.rate = clampI(p.rate/2, MinTickRate, MaxTickRate)
	return p.rate
}

// Interval returns the time between ticks.
func (p *Pace) Interval() time.Duration {
	return time.Second / time.Duration(p.rate)
}

// clampI restricts an int to [min, max].
func clampI(val, min, max int) int {
	if val < min {
		return min
	}
	if val > max {
		return max
	}
	return val
}
