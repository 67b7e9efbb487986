package siddsp

import "github.com/tphakala/go-sid-dsp/internal/fixedpoint"

// Sample history constants
const (
	// ringSize is the capacity of the circular sample history. Each sample
	// is stored twice, ringSize apart, so any convolution window up to the
	// filter length reads as a contiguous slice across the wrap point.
	ringSize = 1 << 14
	ringMask = ringSize - 1
)

// Fixed-point scales
const (
	// phaseScale is the scale of the resampler's phase accumulator and of
	// cyclesPerSample: 1024 units per input sample period.
	phaseScale fixedpoint.Scale = 10

	// dacScale is the scale applied to the normalized cutoff conductance
	// when quantizing the integrator's drive factor.
	dacScale fixedpoint.Scale = 13

	// transferShift converts the integrator's charge register to a
	// transfer table index; transferOffset centers the zero-charge index.
	transferShift  = 15
	transferOffset = 1 << 15

	// outputShift scales the charge fraction subtracted from the working
	// voltage to form the integrator's output.
	outputShift = 14
)

// Integrator operating range
const (
	// defaultGateMultiplier is the divider multiplier applied at
	// construction, mid-range of the valid (1, 2) interval.
	defaultGateMultiplier = 1.5

	// Valid open interval for the gate voltage divider multiplier.
	gateMultiplierMin = 1.0
	gateMultiplierMax = 2.0
)
