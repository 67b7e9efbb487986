package mathutil

// Bessel series constants
const (
	// besselTolerance is the relative error at which the I₀ power series is
	// truncated. 1e-6 corresponds to ~96 dB, matching 16-bit quantization.
	besselTolerance = 1e-6
)

// Kaiser window formula constants
// From Kaiser & Schafer's empirical formulas
const (
	// Attenuation thresholds for β calculation
	kaiserAttHigh   = 50.0 // High attenuation threshold (dB)
	kaiserAttMedium = 21.0 // Medium attenuation threshold (dB)

	// Kaiser β formula coefficients
	kaiserBetaHighCoeff1 = 0.1102 // Coefficient for high attenuation
	kaiserBetaHighOffset = 8.7    // Offset for high attenuation

	kaiserBetaMediumCoeff1 = 0.5842  // Primary coefficient for medium attenuation
	kaiserBetaMediumPower  = 0.4     // Power for medium attenuation formula
	kaiserBetaMediumCoeff2 = 0.07886 // Secondary coefficient for medium attenuation
)

// Filter order estimation constants
const (
	// kaiserord formula: N ≈ (att - 7.95) / (2.285 * Δω)
	kaiserOrderOffset = 7.95  // Attenuation offset in kaiserord formula
	kaiserOrderSlope  = 2.285 // Transition bandwidth multiplier
)
