// Package fixedpoint provides the binary fixed-point helpers shared by the
// resampler's phase accumulator and the integrator's calibration constants.
//
// Instead of spreading raw shift amounts through the hot-path code, each
// scale factor is carried by a named type so the intended precision and
// overflow boundaries are visible at every use site.
package fixedpoint

import (
	"fmt"
)

// Scale is a power-of-two fixed-point scale factor, 2^shift.
type Scale uint

// Unit returns the integer representation of 1.0 at this scale.
func (s Scale) Unit() int {
	return 1 << s
}

// Mask returns the bit mask selecting the fractional part at this scale.
func (s Scale) Mask() int {
	return 1<<s - 1
}

// FromFloat converts x to fixed point at this scale, truncating toward zero.
func (s Scale) FromFloat(x float64) int {
	return int(x * float64(int(1)<<s))
}

// uq16Max is the largest value representable as a UQ16 code.
const uq16Max = 1<<16 - 1

// UQ16 is an unsigned 16-bit fixed-point code. The voltage or current scale
// it encodes is fixed by the quantization that produced it.
type UQ16 uint16

// QuantizeUQ16 rounds x half-up to the nearest integer code and verifies
// the result fits in 16 bits. Values outside (-0.5, 65535.5) indicate a
// mis-calibrated configuration and are rejected rather than clamped.
func QuantizeUQ16(x float64) (UQ16, error) {
	if !(x > -0.5 && x < uq16Max+0.5) {
		return 0, fmt.Errorf("value %g outside unsigned 16-bit range", x)
	}
	return UQ16(x + 0.5), nil
}
