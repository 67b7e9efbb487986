package siddsp

import (
	"errors"
	"fmt"

	"github.com/tphakala/simd/f64"

	"github.com/tphakala/go-sid-dsp/internal/filter"
)

// Common errors returned by the package.
var (
	// ErrInvalidConfig indicates invalid construction or calibration
	// parameters.
	ErrInvalidConfig = errors.New("invalid configuration")
)

// SincResampler converts the chip's clock-rate sample stream to an
// arbitrary output rate using windowed-sinc FIR filtering.
//
// The resampler owns a circular sample history and a fixed-point phase
// accumulator counting 1024 units per input sample. Each input advances the
// accumulator by -1024; whenever it sits below 1024 an output sample is
// interpolated from the two nearest fractional-delay filter rows and the
// accumulator advances by the clock ratio. Over many calls the output/input
// ratio converges exactly to the configured rate ratio, which must be at
// or below 1:1: the converter emits at most one output per input cycle.
//
// Input, Output and Reset are allocation-free and run in bounded time. A
// SincResampler is a single-voice state machine; it must not be shared
// between goroutines without external serialization.
type SincResampler struct {
	sample      []float64
	sampleIndex int

	// cyclesPerSample and sampleOffset are fixed point at phaseScale.
	cyclesPerSample int
	sampleOffset    int

	outputValue float64

	// table is borrowed from the shared cache and never mutated.
	table    [][]float64
	firN     int
	phaseRes int
}

// NewSincResampler creates a resampler converting from clockRate to
// sampleRate, keeping the passband accurate up to highestAccurate (which
// must not exceed half the output rate).
//
// The output rate must not exceed the clock rate: the converter produces
// at most one output per input cycle, so only ratios from 1:1 downward
// keep the phase accumulator bounded.
//
// The filter is designed for ~96 dB stopband attenuation. Construction
// fails with a configuration error when the rates are not positive, the
// output rate exceeds the clock rate, the accurate frequency exceeds
// output Nyquist, or the derived filter would not fit the sample history.
func NewSincResampler(clockRate, sampleRate, highestAccurate float64) (*SincResampler, error) {
	if clockRate <= 0 || sampleRate <= 0 {
		return nil, fmt.Errorf("%w: rates must be positive", ErrInvalidConfig)
	}

	if sampleRate > clockRate {
		return nil, fmt.Errorf("%w: output rate %g exceeds clock rate %g", ErrInvalidConfig, sampleRate, clockRate)
	}

	if highestAccurate <= 0 || highestAccurate > sampleRate/2 {
		return nil, fmt.Errorf("%w: highest accurate frequency %g outside (0, %g]", ErrInvalidConfig, highestAccurate, sampleRate/2)
	}

	spec, err := filter.Design(clockRate, sampleRate, highestAccurate, ringSize)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidConfig, err)
	}

	return &SincResampler{
		sample:          make([]float64, 2*ringSize),
		cyclesPerSample: phaseScale.FromFloat(clockRate / sampleRate),
		table:           filter.Shared().Get(spec),
		firN:            spec.Length,
		phaseRes:        spec.PhaseRes,
	}, nil
}

// Input feeds one clock-rate sample into the resampler. It reports whether
// an output sample was produced; when true, the value is available from
// Output until the next production.
func (r *SincResampler) Input(sample float64) bool {
	ready := false

	r.sample[r.sampleIndex] = sample
	r.sample[r.sampleIndex+ringSize] = sample
	r.sampleIndex = (r.sampleIndex + 1) & ringMask

	if r.sampleOffset < phaseScale.Unit() {
		r.outputValue = r.fir(r.sampleOffset)
		ready = true
		r.sampleOffset += r.cyclesPerSample
	}

	r.sampleOffset -= phaseScale.Unit()

	return ready
}

// Output returns the most recently produced output sample.
func (r *SincResampler) Output() float64 {
	return r.outputValue
}

// Reset zeroes the sample history and the phase accumulator. The shared
// filter table and the configuration are untouched; subsequent output is
// indistinguishable from a freshly constructed instance.
func (r *SincResampler) Reset() {
	clear(r.sample)
	r.sampleOffset = 0
}

// fir interpolates one output sample for the given fractional phase in
// [0, 1024).
func (r *SincResampler) fir(subcycle int) float64 {
	// Find the first of the nearest filter rows below the phase.
	scaled := subcycle * r.phaseRes
	row := scaled >> phaseScale
	offset := scaled & phaseScale.Mask()

	// firN most recent samples, plus one extra in case the window shifts.
	// The double-stored history keeps the slice contiguous across the wrap.
	start := r.sampleIndex - r.firN + ringSize - 1

	v1 := f64.DotProductUnsafe(r.sample[start:start+r.firN], r.table[row])

	// Use the next row, wrapping to row zero against the previous sample.
	if row++; row == r.phaseRes {
		row = 0
		start++
	}

	v2 := f64.DotProductUnsafe(r.sample[start:start+r.firN], r.table[row])

	// Linear interpolation between adjacent rows approximates the exact
	// fractional-delay filter.
	return v1 + float64(offset)*(v2-v1)/float64(phaseScale.Unit())
}
