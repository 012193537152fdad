package analysis

import (
	"math/cmplx"

	"github.com/mjibson/go-dsp/fft"
)

// PowerSpectrum returns the magnitudes of the first half of the spectrum of
// data. Any length is accepted.
func PowerSpectrum(data []float64) []float64 {
	if len(data) == 0 {
		return []float64{}
	}

	spectrum := fft.FFTReal(data)
	ps := make([]float64, len(spectrum)/2)
	for i := range ps {
		ps[i] = cmplx.Abs(spectrum[i])
	}

	return ps
}

// DominantFrequency returns the strongest non-DC frequency of a series
// sampled at tickRate, in cycles per second. It returns 0 for series that
// are too short or constant.
func DominantFrequency(data []float64, tickRate float64) float64 {
	n := len(data)
	if n < 4 || tickRate <= 0 {
		return 0
	}

	mean := 0.0
	for _, v := range data {
		mean += v
	}
	mean /= float64(n)

	centered := make([]float64, n)
	for i, v := range data {
		centered[i] = v - mean
	}

	ps := PowerSpectrum(centered)
	best, bestMag := 0, 1e-9
	for k := 1; k < len(ps); k++ {
		if ps[k] > bestMag {
			best, bestMag = k, ps[k]
		}
	}

	return float64(best) * tickRate / float64(n)
}
