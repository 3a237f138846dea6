package analysis

import (
	"github.com/san-kum/orbsim/internal/cloud"
	"github.com/san-kum/orbsim/internal/compute"
)

type SweepPoint struct {
	Threshold float32
	Visible   int
	LobeA     int
}

// ThresholdSweep classifies samples at a fixed phase once per threshold.
// Thresholds are clamped into the user range; results keep input order.
func ThresholdSweep(samples *cloud.Samples, phase float64, thresholds []float32, backend compute.Backend) ([]SweepPoint, error) {
	if samples == nil || samples.Len() == 0 {
		return nil, cloud.InvalidArgument("samples", "empty point cloud")
	}
	if backend == nil {
		backend = compute.AutoSelect(0)
	}

	out := cloud.NewVisualState(samples.Len())
	results := make([]SweepPoint, 0, len(thresholds))
	for _, t := range thresholds {
		p := cloud.DefaultParams()
		p.SetThreshold(t)
		state := cloud.FrameState{Phase: phase, Threshold: p.Threshold}

		backend.Classify(compute.Job{
			Samples: samples,
			Out:     out,
			Phase:   state.Phase,
			Cutoff:  state.Cutoff(),
			Formula: compute.FormulaInterference,
		})

		a, _ := out.LobeCounts()
		results = append(results, SweepPoint{
			Threshold: p.Threshold,
			Visible:   out.VisibleCount(),
			LobeA:     a,
		})
	}
	return results, nil
}

// LinearThresholds returns n evenly spaced thresholds over [lo, hi].
func LinearThresholds(lo, hi float32, n int) []float32 {
	if n <= 0 {
		return nil
	}
	if n == 1 {
		return []float32{lo}
	}
	step := (hi - lo) / float32(n-1)
	out := make([]float32, n)
	for i := range out {
		out[i] = lo + float32(i)*step
	}
	return out
}
