package cloud

import "math"

// Samples is the structure-of-arrays form of the sampled points.
type Samples struct {
	Positions []float32 // 3 per point, xyz interleaved
	Radius    []float32
	Polar     []float32
	Azimuth   []float32
	AmpS      []float32
	AmpP      []float32
	AmpSSq    []float32
	AmpPSq    []float32
}

// NewSamples allocates zeroed arrays for n points.
func NewSamples(n int) *Samples {
	return &Samples{
		Positions: make([]float32, 3*n),
		Radius:    make([]float32, n),
		Polar:     make([]float32, n),
		Azimuth:   make([]float32, n),
		AmpS:      make([]float32, n),
		AmpP:      make([]float32, n),
		AmpSSq:    make([]float32, n),
		AmpPSq:    make([]float32, n),
	}
}

func (s *Samples) Len() int {
	if s == nil {
		return 0
	}
	return len(s.Radius)
}

// Position returns the coordinates of point i.
func (s *Samples) Position(i int) (x, y, z float32) {
	return s.Positions[3*i], s.Positions[3*i+1], s.Positions[3*i+2]
}

// Lobe tells which side of the interference sign a visible point falls on.
type Lobe uint8

const (
	LobeB Lobe = iota
	LobeA
)

func (l Lobe) String() string {
	if l == LobeA {
		return "A"
	}
	return "B"
}

// Float is the attribute encoding used by render sinks (LobeA = 1).
func (l Lobe) Float() float32 {
	if l == LobeA {
		return 1
	}
	return 0
}

// VisualState holds the per-frame flags, one slot per sample.
type VisualState struct {
	Visible []bool
	Lobe    []Lobe
}

func NewVisualState(n int) *VisualState {
	return &VisualState{
		Visible: make([]bool, n),
		Lobe:    make([]Lobe, n),
	}
}

func (v *VisualState) Len() int {
	if v == nil {
		return 0
	}
	return len(v.Visible)
}

func (v *VisualState) VisibleCount() int {
	n := 0
	for _, vis := range v.Visible {
		if vis {
			n++
		}
	}
	return n
}

// LobeCounts counts visible points per lobe.
func (v *VisualState) LobeCounts() (a, b int) {
	for i, vis := range v.Visible {
		if !vis {
			continue
		}
		if v.Lobe[i] == LobeA {
			a++
		} else {
			b++
		}
	}
	return a, b
}

// Clone returns a deep copy.
func (v *VisualState) Clone() *VisualState {
	c := NewVisualState(v.Len())
	copy(c.Visible, v.Visible)
	copy(c.Lobe, v.Lobe)
	return c
}

// FrameState is the only state carried between frames.
type FrameState struct {
	Phase     float64
	Threshold float32
}

// Advance moves the phase forward by elapsed*speed*scale. The phase is never reset.
func (f *FrameState) Advance(elapsed float64, speed float32, scale float64) {
	d := elapsed * float64(speed) * scale
	if math.IsNaN(d) || math.IsInf(d, 0) {
		return
	}
	f.Phase += d
}

// Cutoff is the interference magnitude a point must exceed to be visible.
func (f *FrameState) Cutoff() float64 {
	return float64(f.Threshold) / ThresholdScale
}

// ThresholdScale maps the user threshold range onto typical interference magnitudes.
const ThresholdScale = 10.0
