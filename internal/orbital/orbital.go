package orbital

import "math"

// PWeight scales the p amplitude relative to the s amplitude.
const PWeight = 1.4

func AmplitudeS(r float64) float64 {
	return math.Exp(-r)
}

func AmplitudeP(r, polar float64) float64 {
	return PWeight * r * math.Exp(-r/2) * math.Sin(polar)
}

// Spherical converts a position to (r, polar, azimuth).
// polar is in [0, π]; azimuth is in (−π, π]. The origin maps to (0, 0, 0).
func Spherical(x, y, z float64) (r, polar, azimuth float64) {
	rho := math.Sqrt(x*x + z*z)
	r = math.Sqrt(rho*rho + y*y)
	if r == 0 {
		return 0, 0, 0
	}
	polar = math.Atan2(rho, y)
	if rho == 0 {
		azimuth = 0
	} else {
		azimuth = math.Atan2(x, z)
	}
	if azimuth <= -math.Pi {
		azimuth += 2 * math.Pi
	}
	return r, polar, azimuth
}

// Interference is the cross term of the superposition.
func Interference(ampS, ampP, phase, azimuth float64) float64 {
	return 2 * ampS * ampP * math.Cos(phase-azimuth)
}

// InterferenceCos is Interference with a caller-supplied cos(phase − azimuth).
func InterferenceCos(ampS, ampP, cos float64) float64 {
	return 2 * ampS * ampP * cos
}

// MixedDensity weights the squared amplitudes and the cross term by the
// proportions n and m.
func MixedDensity(n, m, ampSSq, ampPSq, ampS, ampP, cos float64) float64 {
	return n*ampSSq + m*ampPSq + n*m*2*ampS*ampP*cos
}
