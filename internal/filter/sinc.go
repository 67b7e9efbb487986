// Package filter provides windowed-sinc filter design for the resampler,
// together with the process-wide cache of precomputed coefficient tables.
package filter

import (
	"fmt"
	"math"

	"github.com/tphakala/go-sid-dsp/internal/mathutil"
)

// TableSpec fully determines one windowed-sinc coefficient table.
type TableSpec struct {
	// Length is the number of taps per phase row. Always odd: the sinc is
	// symmetric with respect to x = 0.
	Length int

	// PhaseRes is the number of fractional-delay rows in the table.
	PhaseRes int

	// CyclesPerSample is the ratio of input clock cycles to output samples.
	CyclesPerSample float64

	// Beta is the Kaiser window shape parameter.
	Beta float64

	// I0Beta is I₀(Beta), precomputed once per design.
	I0Beta float64
}

// Design derives the sinc table parameters for a resampler running at
// clockRate and producing samples at sampleRate, keeping the passband
// accurate up to highestAccurate.
//
// The stopband attenuation is fixed at the level achievable with 16-bit
// precision (~96 dB). The transition band spans from the requested accurate
// frequency through the output Nyquist frequency, so the filter transitions
// halfway at Nyquist. Filter order and Kaiser β follow the kaiserord
// formulas; the order is scaled by the clock ratio to preserve fidelity at
// high downsampling ratios and the resulting length is forced odd.
//
// maxLength is the capacity of the caller's sample history. Design fails
// when the derived filter would not fit: truncating it silently would
// produce audibly wrong output with no other symptom.
func Design(clockRate, sampleRate, highestAccurate float64, maxLength int) (TableSpec, error) {
	// 16 bits -> ~96 dB stopband attenuation.
	attenuation := -20.0 * math.Log10(1.0/float64(int(1)<<quantBits))

	// A fraction of the bandwidth is allocated to the transition band,
	// which we double because the filter transitions halfway at Nyquist.
	dw := (1.0 - 2.0*highestAccurate/sampleRate) * math.Pi * 2.0

	beta := mathutil.KaiserBeta(attenuation)
	cyclesPerSample := clockRate / sampleRate

	// The filter length is the scaled order + 1, forced odd.
	n := mathutil.FilterOrder(attenuation, dw)
	length := int(float64(n)*cyclesPerSample) + 1
	length |= 1

	if length >= maxLength {
		return TableSpec{}, fmt.Errorf("filter length %d exceeds history capacity %d", length, maxLength)
	}

	// Interpolation error between adjacent phase rows is bounded by
	// err < 1.234 / L², so the resolution keeping it within the
	// quantization budget is L = √(1.234 * 2^bits), scaled by the ratio.
	phaseRes := int(math.Ceil(math.Sqrt(interpErrorBound*float64(int(1)<<quantBits)) / cyclesPerSample))

	return TableSpec{
		Length:          length,
		PhaseRes:        phaseRes,
		CyclesPerSample: cyclesPerSample,
		Beta:            beta,
		I0Beta:          mathutil.BesselI0(beta),
	}, nil
}

// Build computes the windowed-sinc coefficient table for spec. Rows are
// indexed by fractional phase, columns by filter tap. The result is
// normalized to unity gain at DC.
//
// Building a table is expensive and happens only at configuration time;
// callers share finished tables through a Cache.
func Build(spec TableSpec) [][]float64 {
	scale := cutoffFreq / spec.CyclesPerSample / math.Pi
	halfLength := spec.Length / 2

	table := make([][]float64, spec.PhaseRes)
	for i := range table {
		row := make([]float64, spec.Length)
		phase := float64(i)/float64(spec.PhaseRes) + float64(halfLength)

		for j := range row {
			x := float64(j) - phase

			xt := x / float64(halfLength)
			kaiser := 0.0
			if math.Abs(xt) < 1.0 {
				kaiser = mathutil.BesselI0(spec.Beta*math.Sqrt(1.0-xt*xt)) / spec.I0Beta
			}

			wt := cutoffFreq * x / spec.CyclesPerSample
			sinc := 1.0
			if math.Abs(wt) >= sincZeroThreshold {
				sinc = math.Sin(wt) / wt
			}

			row[j] = scale * sinc * kaiser
		}

		table[i] = row
	}

	return table
}
