package analysis

import (
	"math"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"
)

type Summary struct {
	N      int
	Mean   float64
	StdDev float64
	Min    float64
	Max    float64
}

func Summarize(series []float64) Summary {
	if len(series) == 0 {
		return Summary{}
	}
	s := Summary{
		N:   len(series),
		Min: floats.Min(series),
		Max: floats.Max(series),
	}
	if len(series) == 1 {
		s.Mean = series[0]
		return s
	}
	s.Mean, s.StdDev = stat.MeanStdDev(series, nil)
	return s
}

// Overlap is the Jaccard similarity of the true entries of a and b. Two
// empty sets are identical. Slices of different length compare over the
// shorter prefix.
func Overlap(a, b []bool) float64 {
	n := len(a)
	if len(b) < n {
		n = len(b)
	}
	inter, union := 0, 0
	for i := 0; i < n; i++ {
		if a[i] && b[i] {
			inter++
		}
		if a[i] || b[i] {
			union++
		}
	}
	if union == 0 {
		return 1
	}
	return float64(inter) / float64(union)
}

// PhaseRate is the phase advance per second of elapsed time.
func PhaseRate(speed float32, scale float64) float64 {
	return float64(speed) * scale
}

// Period is the elapsed time after which the pattern repeats. A stationary
// pattern has an infinite period.
func Period(speed float32, scale float64) float64 {
	rate := PhaseRate(speed, scale)
	if rate <= 0 {
		return math.Inf(1)
	}
	return 2 * math.Pi / rate
}

func IntsToFloats(v []int) []float64 {
	out := make([]float64, len(v))
	for i, x := range v {
		out[i] = float64(x)
	}
	return out
}
