package filter

import "math"

// Filter design constants
const (
	// quantBits is the output sample precision the filter is designed for.
	// 16 bits corresponds to ~96 dB stopband attenuation.
	quantBits = 16

	// interpErrorBound is the constant in the phase interpolation error
	// bound err < 1.234 / L², used to derive the phase resolution from the
	// quantization error budget.
	interpErrorBound = 1.234

	// cutoffFreq is the cutoff in radians per output sample. The cutoff
	// sits midway through the transition band, in effect at Nyquist.
	cutoffFreq = math.Pi

	// sincZeroThreshold guards the sin(x)/x evaluation near the tap
	// center, where sinc(0) = 1 by convention.
	sincZeroThreshold = 1e-8
)
