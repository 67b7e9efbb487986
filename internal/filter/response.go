package filter

import (
	"math"
	"math/cmplx"

	"gonum.org/v1/gonum/dsp/fourier"
)

// MagnitudeResponse evaluates the magnitude response of a FIR filter by
// zero-padding the coefficients to n points and taking the FFT. The result
// has n/2 + 1 bins covering DC through Nyquist at the filter's sample rate.
//
// This is a verification aid for filter design, not part of the per-sample
// hot path.
func MagnitudeResponse(coeffs []float64, n int) []float64 {
	if n < len(coeffs) {
		n = len(coeffs)
	}

	seq := make([]float64, n)
	copy(seq, coeffs)

	ft := fourier.NewFFT(n)
	spectrum := ft.Coefficients(nil, seq)

	mags := make([]float64, len(spectrum))
	for i, c := range spectrum {
		mags[i] = cmplx.Abs(c)
	}
	return mags
}

// MagnitudeDB converts linear magnitude to decibels.
func MagnitudeDB(magnitude float64) float64 {
	const (
		minMagnitude = 1e-10 // Avoid log(0)
		dbMultiplier = 20.0  // 20*log10 for magnitude
	)

	if magnitude < minMagnitude {
		magnitude = minMagnitude
	}
	return dbMultiplier * math.Log10(magnitude)
}
