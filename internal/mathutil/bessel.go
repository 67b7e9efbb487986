// Package mathutil provides the mathematical helpers used for filter design.
package mathutil

import (
	"math"
)

// BesselI0 computes the modified Bessel function of the first kind, order
// zero: I₀(x). It is used to evaluate the Kaiser window during filter
// design.
//
// The implementation sums the power series
//
//	I₀(x) = Σ ((x/2)ⁿ / n!)²
//
// until the running term drops below a relative tolerance of 1e-6, which
// bounds the truncation error at roughly -96 dB. The series converges for
// every argument produced by realistic filter designs (β up to ~15), so the
// loop terminates after a small, bounded number of iterations.
func BesselI0(x float64) float64 {
	sum := 1.0
	term := 1.0
	n := 1.0
	halfx := x / 2.0

	for {
		t := halfx / n
		term *= t * t
		sum += term
		n += 1.0

		if term < besselTolerance*sum {
			return sum
		}
	}
}

// KaiserBeta computes the Kaiser window β parameter from the desired
// stopband attenuation in decibels.
//
// The β parameter controls the trade-off between main lobe width and
// sidelobe level in the Kaiser window.
//
// Formula from Kaiser & Schafer:
//   - For att > 50 dB: β = 0.1102 * (att - 8.7)
//   - For 21 dB ≤ att ≤ 50 dB: β = 0.5842 * (att - 21)^0.4 + 0.07886 * (att - 21)
//   - For att < 21 dB: β = 0
func KaiserBeta(attenuation float64) float64 {
	if attenuation > kaiserAttHigh {
		return kaiserBetaHighCoeff1 * (attenuation - kaiserBetaHighOffset)
	} else if attenuation >= kaiserAttMedium {
		delta := attenuation - kaiserAttMedium
		return kaiserBetaMediumCoeff1*math.Pow(delta, kaiserBetaMediumPower) + kaiserBetaMediumCoeff2*delta
	}
	return 0.0
}

// FilterOrder estimates the FIR filter order required to reach the given
// stopband attenuation across the given transition bandwidth (in radians
// per sample).
//
// Based on the kaiserord formula from the MATLAB Signal Processing Toolbox:
//
//	N ≈ (att - 7.95) / (2.285 * Δω)
//
// The result is rounded to the nearest integer and forced even: the filter
// order equals the number of zero crossings of the sinc, which is symmetric
// with respect to x = 0.
func FilterOrder(attenuation, transitionBW float64) int {
	n := int((attenuation-kaiserOrderOffset)/(kaiserOrderSlope*transitionBW) + 0.5)
	n += n & 1
	return n
}
