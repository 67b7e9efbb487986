package siddsp

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tphakala/go-sid-dsp/internal/testutil"
)

// testCalibration returns plausible 8580-style constants: ~4.77 V gate at
// the default divider setting, 16-bit codes spanning a 4.5 V range.
func testCalibration() Calibration {
	return Calibration{
		DCVoltage:        3.18,
		Threshold:        0.8,
		Transconductance: 0.002,
		MinVoltage:       0.5,
		VoltScale:        65535.0 / 4.5,
	}
}

// linearTransferTable models an ideal op-amp stage whose output code
// tracks the charge index, which gives the integrator stable negative
// feedback.
func linearTransferTable(t *testing.T) TransferTable {
	t.Helper()
	codes := make([]uint16, TransferTableSize)
	for i := range codes {
		codes[i] = uint16(i)
	}
	table, err := NewTransferTable(codes)
	require.NoError(t, err)
	return table
}

func newTestIntegrator(t *testing.T) *Integrator {
	t.Helper()
	in, err := NewIntegrator(linearTransferTable(t), testCalibration())
	require.NoError(t, err)
	require.NoError(t, in.SetFc(1.0))
	return in
}

func TestNewIntegrator_DefaultGateVoltage(t *testing.T) {
	in := newTestIntegrator(t)

	// (3.18*1.5 - 0.8 - 0.5) * 65535/4.5, rounded half-up.
	assert.EqualValues(t, 50535, in.nVgt)
	assert.Equal(t, IntegratorState{}, in.State())
}

func TestNewIntegrator_BadTable(t *testing.T) {
	_, err := NewIntegrator(TransferTable(make([]uint16, 100)), testCalibration())
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrInvalidConfig)
}

func TestNewIntegrator_CalibrationOverflow(t *testing.T) {
	cal := testCalibration()
	cal.VoltScale = 1e6 // default gate voltage no longer fits 16 bits

	_, err := NewIntegrator(linearTransferTable(t), cal)
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrInvalidConfig)
}

func TestSetFc(t *testing.T) {
	in := newTestIntegrator(t)

	require.NoError(t, in.SetFc(1.0))
	assert.EqualValues(t, 16, in.nDac) // 2^13 * 0.002, rounded

	testCases := []struct {
		name        string
		conductance float64
	}{
		{"negative", -1.0},
		{"overflow", 5000.0},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			err := in.SetFc(tc.conductance)
			require.Error(t, err)
			assert.ErrorIs(t, err, ErrInvalidConfig)
		})
	}
}

func TestSetV(t *testing.T) {
	in := newTestIntegrator(t)

	require.NoError(t, in.SetV(1.2))
	assert.EqualValues(t, 36641, in.nVgt)

	testCases := []struct {
		name       string
		multiplier float64
	}{
		{"too_small", 0.5},
		{"lower_bound", 1.0},
		{"upper_bound", 2.0},
		{"too_large", 2.5},
		{"quantization_overflow", 1.9},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			err := in.SetV(tc.multiplier)
			require.Error(t, err)
			assert.ErrorIs(t, err, ErrInvalidConfig)
		})
	}
}

func TestSolve_MonotonicSettling(t *testing.T) {
	in := newTestIntegrator(t)

	// Holding the input constant drives the working voltage monotonically
	// to its fixed point, where the two square-law terms balance at
	// vx = vi.
	const vi = 40000
	voltages := make([]float64, 0, 100000)
	for range 100000 {
		in.Solve(vi)
		voltages = append(voltages, float64(in.State().Vx))
	}

	testutil.AssertMonotonic(t, voltages)
	testutil.AssertInRange(t, voltages[len(voltages)-1], vi-4, vi+1)
}

func TestSolve_SaturationClampsDrainTerm(t *testing.T) {
	in := newTestIntegrator(t)

	// Settle at a mid-range operating point first.
	for range 100000 {
		in.Solve(40000)
	}

	// An input above the gate voltage saturates the FET: the drain term
	// clamps to zero and only the gate-source term charges the capacitor.
	before := in.State()
	out := in.Solve(60000)
	after := in.State()

	assert.Greater(t, after.Vc, before.Vc)
	assert.Greater(t, after.Vx, before.Vx)
	assert.Equal(t, after.Vx-after.Vc>>outputShift, out)
}

func TestSolve_ChargeFixedPoint(t *testing.T) {
	in := newTestIntegrator(t)

	// At the fixed point the charge register stops moving entirely.
	const vi = 40000
	for range 100000 {
		in.Solve(vi)
	}
	settled := in.State().Vc

	for range 1000 {
		in.Solve(vi)
	}

	assert.Equal(t, settled, in.State().Vc)
}

func TestSolve_SubthresholdPanics(t *testing.T) {
	// A transfer table that jumps above the gate voltage forces the
	// working voltage out of the modeled operating regime; the next cycle
	// must fail fast instead of producing a nonsensical voltage.
	codes := make([]uint16, TransferTableSize)
	for i := range codes {
		codes[i] = 60000
	}
	table, err := NewTransferTable(codes)
	require.NoError(t, err)

	in, err := NewIntegrator(table, testCalibration())
	require.NoError(t, err)
	require.NoError(t, in.SetFc(1.0))

	in.Solve(40000) // vx jumps to 60000, above nVgt

	assert.Panics(t, func() {
		in.Solve(40000)
	})
}
