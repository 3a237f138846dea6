package sim

import "time"

// Clock produces the elapsed value handed to the classifier each frame.
type Clock interface {
	Elapsed(now time.Time) float64
}

// ElapsedClock reports seconds since the previous call. The first call
// reports zero.
type ElapsedClock struct {
	last time.Time
}

func (c *ElapsedClock) Elapsed(now time.Time) float64 {
	if c.last.IsZero() {
		c.last = now
		return 0
	}
	d := now.Sub(c.last).Seconds()
	c.last = now
	if d < 0 {
		return 0
	}
	return d
}

// EpochClock reports absolute Unix seconds on every call. Each frame then adds
// the full epoch time to the phase, which is what the tiny default speed
// scale was tuned against.
type EpochClock struct{}

func (EpochClock) Elapsed(now time.Time) float64 {
	return float64(now.UnixNano()) / 1e9
}

func NewClock(name string) Clock {
	if name == "epoch" {
		return EpochClock{}
	}
	return &ElapsedClock{}
}
