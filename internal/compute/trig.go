package compute

import "math"

// TrigTable provides precomputed cosine values with linear interpolation.
type TrigTable struct {
	cos []float64
	n   int
}

// DefaultTableSize gives ~0.0015 rad resolution.
const DefaultTableSize = 4096

func NewTrigTable(n int) *TrigTable {
	if n < 2 {
		n = 2
	}
	t := &TrigTable{cos: make([]float64, n), n: n}
	for i := 0; i < n; i++ {
		t.cos[i] = math.Cos(float64(i) * 2 * math.Pi / float64(n))
	}
	return t
}

// Cos returns approximate cos(x) for any finite x.
func (t *TrigTable) Cos(x float64) float64 {
	x = math.Mod(x, 2*math.Pi)
	if x < 0 {
		x += 2 * math.Pi
	}

	idx := x * float64(t.n) / (2 * math.Pi)
	i := int(idx)
	frac := idx - float64(i)

	i0 := i % t.n
	i1 := (i + 1) % t.n

	return t.cos[i0]*(1-frac) + t.cos[i1]*frac
}
