package orbital

import (
	"math"
	"testing"
)

func TestAmplitudeS(t *testing.T) {
	if got := AmplitudeS(0); got != 1 {
		t.Errorf("AmplitudeS(0) = %v, want 1", got)
	}
	prev := AmplitudeS(0)
	for r := 0.1; r < 12; r += 0.1 {
		cur := AmplitudeS(r)
		if cur <= 0 {
			t.Fatalf("AmplitudeS(%v) = %v, want > 0", r, cur)
		}
		if cur >= prev {
			t.Fatalf("AmplitudeS not decreasing at r=%v", r)
		}
		prev = cur
	}
}

func TestAmplitudeP(t *testing.T) {
	tests := []struct {
		name     string
		r, polar float64
		want     float64
	}{
		{"origin", 0, math.Pi / 2, 0},
		{"on axis", 2, 0, 0},
		{"equator r=1", 1, math.Pi / 2, 1.4 * math.Exp(-0.5)},
		{"equator r=2", 2, math.Pi / 2, 1.4 * 2 * math.Exp(-1)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := AmplitudeP(tt.r, tt.polar)
			if math.Abs(got-tt.want) > 1e-12 {
				t.Errorf("AmplitudeP(%v, %v) = %v, want %v", tt.r, tt.polar, got, tt.want)
			}
		})
	}
}

func TestSpherical(t *testing.T) {
	tests := []struct {
		name           string
		x, y, z        float64
		r, polar, azim float64
	}{
		{"origin", 0, 0, 0, 0, 0, 0},
		{"up", 0, 1, 0, 1, 0, 0},
		{"down", 0, -1, 0, 1, math.Pi, 0},
		{"+x", 1, 0, 0, 1, math.Pi / 2, math.Pi / 2},
		{"+z", 0, 0, 1, 1, math.Pi / 2, 0},
		{"-z", 0, 0, -1, 1, math.Pi / 2, math.Pi},
		{"-z negative zero x", math.Copysign(0, -1), 0, -1, 1, math.Pi / 2, math.Pi},
		{"-x", -2, 0, 0, 2, math.Pi / 2, -math.Pi / 2},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r, p, a := Spherical(tt.x, tt.y, tt.z)
			if math.Abs(r-tt.r) > 1e-12 || math.Abs(p-tt.polar) > 1e-12 || math.Abs(a-tt.azim) > 1e-12 {
				t.Errorf("Spherical(%v,%v,%v) = (%v,%v,%v), want (%v,%v,%v)",
					tt.x, tt.y, tt.z, r, p, a, tt.r, tt.polar, tt.azim)
			}
			if math.IsNaN(p) || math.IsNaN(a) {
				t.Errorf("NaN angle for (%v,%v,%v)", tt.x, tt.y, tt.z)
			}
		})
	}
}

func TestInterference(t *testing.T) {
	s, p := AmplitudeS(1), AmplitudeP(1, math.Pi/2)

	if got, want := Interference(s, p, 0, 0), 2*s*p; math.Abs(got-want) > 1e-12 {
		t.Errorf("in phase: got %v, want %v", got, want)
	}
	if got, want := Interference(s, p, math.Pi, 0), -2*s*p; math.Abs(got-want) > 1e-12 {
		t.Errorf("anti phase: got %v, want %v", got, want)
	}
	if got := Interference(s, p, math.Pi/2, 0); math.Abs(got) > 1e-12 {
		t.Errorf("quadrature: got %v, want 0", got)
	}
	if got := InterferenceCos(s, p, 1); math.Abs(got-2*s*p) > 1e-12 {
		t.Errorf("InterferenceCos: got %v", got)
	}
}

func TestMixedDensity(t *testing.T) {
	s, p := 0.5, 0.25
	got := MixedDensity(0.5, 0.5, s*s, p*p, s, p, 1)
	want := 0.5*s*s + 0.5*p*p + 0.25*2*s*p
	if math.Abs(got-want) > 1e-12 {
		t.Errorf("MixedDensity = %v, want %v", got, want)
	}
}
