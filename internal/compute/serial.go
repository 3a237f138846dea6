package compute

import (
	"math"

	"github.com/san-kum/orbsim/internal/orbital"
)

// SerialBackend is the single-goroutine reference. It evaluates the
// interference term directly from the phase and azimuth.
type SerialBackend struct{}

func NewSerialBackend() *SerialBackend { return &SerialBackend{} }

func (b *SerialBackend) Name() string { return "serial" }

func (b *SerialBackend) Classify(job Job) {
	s := job.Samples
	for i := 0; i < s.Len(); i++ {
		azimuth := float64(s.Azimuth[i])
		var v float64
		if job.Formula == FormulaMixed {
			v = orbital.MixedDensity(job.N, job.M, float64(s.AmpSSq[i]), float64(s.AmpPSq[i]),
				float64(s.AmpS[i]), float64(s.AmpP[i]), math.Cos(job.Phase-azimuth))
		} else {
			v = orbital.Interference(float64(s.AmpS[i]), float64(s.AmpP[i]), job.Phase, azimuth)
		}
		classifyPoint(job.Out, i, v, job.Cutoff)
	}
}
