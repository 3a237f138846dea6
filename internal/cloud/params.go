package cloud

import "math"

const (
	MinThreshold = 0.01
	MaxThreshold = 0.999
	MinSpeed     = 0.0
	MaxSpeed     = 1.0

	DefaultThreshold = 0.5
	DefaultSpeed     = 0.5
	DefaultN         = 0.5
)

// Params are the user-adjustable tunables.
//
// NProportion and MProportion are coupled (m = 1 - n). They only affect
// classification when the mixed formula is selected.
type Params struct {
	Threshold   float32 `yaml:"threshold"`
	Speed       float32 `yaml:"speed"`
	NProportion float32 `yaml:"n_proportion"`
	MProportion float32 `yaml:"m_proportion"`
}

func DefaultParams() Params {
	return Params{
		Threshold:   DefaultThreshold,
		Speed:       DefaultSpeed,
		NProportion: DefaultN,
		MProportion: 1 - DefaultN,
	}
}

// Clamp forces every tunable into its range. NaN falls back to the default.
func (p *Params) Clamp() {
	p.Threshold = clamp(p.Threshold, MinThreshold, MaxThreshold, DefaultThreshold)
	p.Speed = clamp(p.Speed, MinSpeed, MaxSpeed, DefaultSpeed)
	p.NProportion = clamp(p.NProportion, 0, 1, DefaultN)
	p.MProportion = clamp(p.MProportion, 0, 1, 1-DefaultN)
}

// SetNProportion sets n and derives m = 1 - n.
func (p *Params) SetNProportion(n float32) {
	p.NProportion = clamp(n, 0, 1, DefaultN)
	p.MProportion = 1 - p.NProportion
}

// SetMProportion sets m and derives n = 1 - m.
func (p *Params) SetMProportion(m float32) {
	p.MProportion = clamp(m, 0, 1, 1-DefaultN)
	p.NProportion = 1 - p.MProportion
}

func (p *Params) SetThreshold(t float32) {
	p.Threshold = clamp(t, MinThreshold, MaxThreshold, DefaultThreshold)
}

func (p *Params) SetSpeed(s float32) {
	p.Speed = clamp(s, MinSpeed, MaxSpeed, DefaultSpeed)
}

// SqrtProportions returns the amplitude weights sqrt(n) and sqrt(m).
func (p *Params) SqrtProportions() (float64, float64) {
	return math.Sqrt(float64(p.NProportion)), math.Sqrt(float64(p.MProportion))
}

func clamp(v, lo, hi, fallback float32) float32 {
	if v != v {
		return fallback
	}
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
