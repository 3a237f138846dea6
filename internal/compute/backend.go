package compute

import (
	"fmt"
	"runtime"

	"github.com/san-kum/orbsim/internal/cloud"
	"github.com/san-kum/orbsim/internal/orbital"
)

// Formula selects the quantity compared against the cutoff.
type Formula int

const (
	// FormulaInterference uses the cross term only. Proportions are ignored.
	FormulaInterference Formula = iota
	// FormulaMixed uses n·ψs² + m·ψp² + 2·n·m·ψs·ψp·cos(phase − φ).
	FormulaMixed
)

func (f Formula) String() string {
	switch f {
	case FormulaMixed:
		return "mixed"
	default:
		return "interference"
	}
}

// ParseFormula accepts "interference" (or "") and "mixed".
func ParseFormula(s string) (Formula, error) {
	switch s {
	case "", "interference":
		return FormulaInterference, nil
	case "mixed":
		return FormulaMixed, nil
	}
	return FormulaInterference, fmt.Errorf("unknown formula: %s", s)
}

// Job is one frame's worth of classification work.
type Job struct {
	Samples *cloud.Samples
	Out     *cloud.VisualState
	Phase   float64
	Cutoff  float64
	Formula Formula
	N, M    float64
}

type Backend interface {
	Name() string
	Classify(job Job)
}

// AutoSelect returns the parallel backend unless only one worker is available.
func AutoSelect(workers int) Backend {
	if workers <= 0 {
		workers = runtime.NumCPU()
	}
	if workers == 1 {
		return NewSerialBackend()
	}
	return NewCPUBackend(workers)
}

// classifyRange runs the kernel over [start, end).
func classifyRange(job Job, cos func(float64) float64, start, end int) {
	s := job.Samples
	for i := start; i < end; i++ {
		c := cos(job.Phase - float64(s.Azimuth[i]))
		var v float64
		if job.Formula == FormulaMixed {
			v = orbital.MixedDensity(job.N, job.M, float64(s.AmpSSq[i]), float64(s.AmpPSq[i]),
				float64(s.AmpS[i]), float64(s.AmpP[i]), c)
		} else {
			v = orbital.InterferenceCos(float64(s.AmpS[i]), float64(s.AmpP[i]), c)
		}
		classifyPoint(job.Out, i, v, job.Cutoff)
	}
}

// classifyPoint applies the strict cutoff to one value. Hidden points reset
// to LobeB.
func classifyPoint(out *cloud.VisualState, i int, v, cutoff float64) {
	switch {
	case v > cutoff:
		out.Visible[i] = true
		out.Lobe[i] = cloud.LobeA
	case -v > cutoff:
		out.Visible[i] = true
		out.Lobe[i] = cloud.LobeB
	default:
		out.Visible[i] = false
		out.Lobe[i] = cloud.LobeB
	}
}
