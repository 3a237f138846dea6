// Package sampler draws the point cloud and computes each point's static scalars.
package sampler

import (
	"math"
	"math/rand"
	"runtime"

	"github.com/san-kum/orbsim/internal/cloud"
	"github.com/san-kum/orbsim/internal/orbital"
)

const (
	DefaultCount     = 600000
	DefaultCubeWidth = 13.0

	minChunk = 4096
)

// Sampler fills the static arrays. The zero value uses every CPU.
type Sampler struct {
	Workers int
}

func New(workers int) *Sampler {
	return &Sampler{Workers: workers}
}

// Generate draws count points uniformly in the cube [-width/2, width/2]^3.
// The same seed always yields identical arrays regardless of worker count.
func Generate(count uint32, width float32, seed int64) (*cloud.Samples, error) {
	return (&Sampler{}).Generate(count, width, seed)
}

func (s *Sampler) Generate(count uint32, width float32, seed int64) (*cloud.Samples, error) {
	if count == 0 {
		return nil, cloud.InvalidArgument("count", "must be positive")
	}
	if !(width > 0) || math.IsInf(float64(width), 0) {
		return nil, cloud.InvalidArgument("width", "must be positive and finite, got %v", width)
	}

	n := int(count)
	out := cloud.NewSamples(n)

	// Positions are drawn sequentially so the stream order is fixed by the seed.
	rng := rand.New(rand.NewSource(seed))
	w := float64(width)
	for i := range out.Positions {
		out.Positions[i] = float32((rng.Float64() - 0.5) * w)
	}

	s.derive(out)
	return out, nil
}

// FromPositions builds samples for explicit points.
func FromPositions(points [][3]float32) (*cloud.Samples, error) {
	return (&Sampler{}).FromPositions(points)
}

func (s *Sampler) FromPositions(points [][3]float32) (*cloud.Samples, error) {
	if len(points) == 0 {
		return nil, cloud.InvalidArgument("points", "must not be empty")
	}
	out := cloud.NewSamples(len(points))
	for i, p := range points {
		copy(out.Positions[3*i:3*i+3], p[:])
	}
	s.derive(out)
	return out, nil
}

func (s *Sampler) derive(out *cloud.Samples) {
	workers := s.Workers
	if workers <= 0 {
		workers = runtime.NumCPU()
	}
	cloud.ParallelFor(out.Len(), minChunk, workers, func(start, end int) {
		for i := start; i < end; i++ {
			deriveOne(out, i)
		}
	})
}

func deriveOne(out *cloud.Samples, i int) {
	x, y, z := out.Position(i)
	r, polar, azimuth := orbital.Spherical(float64(x), float64(y), float64(z))

	out.Radius[i] = float32(r)
	out.Polar[i] = clampPolar(float32(polar))
	out.Azimuth[i] = foldAzimuth(float32(azimuth))

	ampS := float32(orbital.AmplitudeS(r))
	ampP := float32(orbital.AmplitudeP(r, polar))
	if ampP < 0 {
		ampP = 0
	}
	out.AmpS[i] = ampS
	out.AmpP[i] = ampP
	out.AmpSSq[i] = ampS * ampS
	out.AmpPSq[i] = ampP * ampP
}

// Pi32 is π rounded to float32; it is the largest representable angle in the arrays.
var Pi32 = float32(math.Pi)

func clampPolar(p float32) float32 {
	if p < 0 {
		return 0
	}
	if p > Pi32 {
		return Pi32
	}
	return p
}

// foldAzimuth keeps the float32 value inside (−π, π] after rounding.
func foldAzimuth(a float32) float32 {
	if a <= -Pi32 {
		return Pi32
	}
	if a > Pi32 {
		return Pi32
	}
	return a
}
