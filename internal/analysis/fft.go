package analysis

import (
	"math/cmplx"

	"github.com/mjibson/go-dsp/fft"
	"gonum.org/v1/gonum/stat"
)

// PowerSpectrum returns the magnitude of bins 0..len(data)/2 of the real
// transform of data. Any length is accepted.
func PowerSpectrum(data []float64) []float64 {
	if len(data) == 0 {
		return nil
	}
	spectrum := fft.FFTReal(data)
	ps := make([]float64, len(data)/2+1)

	for i := range ps {
		ps[i] = cmplx.Abs(spectrum[i])
	}

	return ps
}

// DominantPeriod returns the period, in the units of dt, of the strongest
// non-constant component of series. It returns 0 when the series is flat or
// too short.
func DominantPeriod(series []float64, dt float64) float64 {
	if len(series) < 4 || dt <= 0 {
		return 0
	}

	mean := stat.Mean(series, nil)
	centered := make([]float64, len(series))
	for i, v := range series {
		centered[i] = v - mean
	}

	ps := PowerSpectrum(centered)
	best, bestK := 0.0, 0
	for k := 1; k < len(ps); k++ {
		if ps[k] > best {
			best, bestK = ps[k], k
		}
	}
	if bestK == 0 || best < 1e-9 {
		return 0
	}

	return float64(len(series)) * dt / float64(bestK)
}
