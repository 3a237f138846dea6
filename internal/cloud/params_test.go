package cloud

import (
	"math"
	"testing"
)

func TestParams_Clamp(t *testing.T) {
	tests := []struct {
		name string
		in   Params
		want Params
	}{
		{"in range", Params{0.5, 0.5, 0.3, 0.7}, Params{0.5, 0.5, 0.3, 0.7}},
		{"low", Params{0, -1, -0.5, -0.5}, Params{MinThreshold, 0, 0, 0}},
		{"high", Params{2, 3, 1.5, 1.5}, Params{MaxThreshold, 1, 1, 1}},
		{"nan", Params{float32(math.NaN()), float32(math.NaN()), 0.2, 0.8}, Params{DefaultThreshold, DefaultSpeed, 0.2, 0.8}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := tt.in
			p.Clamp()
			if p != tt.want {
				t.Errorf("Clamp() = %+v, want %+v", p, tt.want)
			}
		})
	}
}

func TestParams_ProportionCoupling(t *testing.T) {
	p := DefaultParams()

	p.SetNProportion(0.25)
	if p.MProportion != 0.75 {
		t.Errorf("expected m 0.75, got %f", p.MProportion)
	}

	p.SetMProportion(0.9)
	if math.Abs(float64(p.NProportion)-0.1) > 1e-6 {
		t.Errorf("expected n 0.1, got %f", p.NProportion)
	}

	p.SetNProportion(4)
	if p.NProportion != 1 || p.MProportion != 0 {
		t.Errorf("expected clamped n=1 m=0, got n=%f m=%f", p.NProportion, p.MProportion)
	}

	p.SetNProportion(0.5)
	sn, sm := p.SqrtProportions()
	if math.Abs(sn-1/math.Sqrt2) > 1e-6 || math.Abs(sm-1/math.Sqrt2) > 1e-6 {
		t.Errorf("expected sqrt proportions 1/sqrt2, got %f %f", sn, sm)
	}
}

func TestParams_Setters(t *testing.T) {
	p := DefaultParams()
	p.SetThreshold(5)
	if p.Threshold != MaxThreshold {
		t.Errorf("expected threshold clamp to %f, got %f", MaxThreshold, p.Threshold)
	}
	p.SetSpeed(-2)
	if p.Speed != 0 {
		t.Errorf("expected speed clamp to 0, got %f", p.Speed)
	}
}
