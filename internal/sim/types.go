package sim

import (
	"fmt"
	"time"
)

// Frame describes one completed classification step.
type Frame struct {
	Index     int
	Elapsed   float64
	Phase     float64
	Threshold float32
	Visible   int
	LobeA     int
	LobeB     int
	Duration  time.Duration
}

type Observer interface {
	OnFrame(f Frame)
}

// ObserverFunc adapts a plain function to Observer.
type ObserverFunc func(Frame)

func (fn ObserverFunc) OnFrame(f Frame) { fn(f) }

// ErrorObserver is notified of frames skipped after a classification error.
type ErrorObserver interface {
	OnError(index int, err error)
}

type RunConfig struct {
	Frames int
	Dt     float64
}

type Result struct {
	Phases        []float64
	VisibleCounts []int
	LobeACounts   []int
	Errors        []error
	FramesTaken   int
}

type FrameError struct {
	Index int
	Err   error
}

func (e FrameError) Error() string {
	return fmt.Sprintf("frame %d: %v", e.Index, e.Err)
}

func (e FrameError) Unwrap() error { return e.Err }
