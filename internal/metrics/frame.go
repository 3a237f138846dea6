package metrics

import (
	"time"

	"github.com/san-kum/orbsim/internal/sim"
)

// Metric accumulates a scalar over the frames of a run.
type Metric interface {
	sim.Observer
	Name() string
	Value() float64
	Reset()
}

type VisibleFraction struct {
	total   int
	sum     float64
	samples int
}

// NewVisibleFraction reports the mean share of the total points that were
// visible per frame.
func NewVisibleFraction(total int) *VisibleFraction {
	return &VisibleFraction{total: total}
}

func (v *VisibleFraction) Name() string { return "visible_fraction" }

func (v *VisibleFraction) OnFrame(f sim.Frame) {
	if v.total <= 0 {
		return
	}
	v.sum += float64(f.Visible) / float64(v.total)
	v.samples++
}

func (v *VisibleFraction) Value() float64 {
	if v.samples == 0 {
		return 0
	}
	return v.sum / float64(v.samples)
}

func (v *VisibleFraction) Reset() {
	v.sum = 0
	v.samples = 0
}

// LobeBalance is the mean share of visible points in lobe A. A balanced
// dumbbell sits near one half.
type LobeBalance struct {
	sum     float64
	samples int
}

func NewLobeBalance() *LobeBalance { return &LobeBalance{} }

func (l *LobeBalance) Name() string { return "lobe_balance" }

func (l *LobeBalance) OnFrame(f sim.Frame) {
	if f.Visible == 0 {
		return
	}
	l.sum += float64(f.LobeA) / float64(f.Visible)
	l.samples++
}

func (l *LobeBalance) Value() float64 {
	if l.samples == 0 {
		return 0.5
	}
	return l.sum / float64(l.samples)
}

func (l *LobeBalance) Reset() {
	l.sum = 0
	l.samples = 0
}

type FrameTime struct {
	total   time.Duration
	samples int
}

func NewFrameTime() *FrameTime { return &FrameTime{} }

func (f *FrameTime) Name() string { return "frame_time_ms" }

func (f *FrameTime) OnFrame(fr sim.Frame) {
	f.total += fr.Duration
	f.samples++
}

func (f *FrameTime) Value() float64 {
	if f.samples == 0 {
		return 0
	}
	return float64(f.total.Microseconds()) / 1000 / float64(f.samples)
}

func (f *FrameTime) Reset() {
	f.total = 0
	f.samples = 0
}
