package siddsp

import (
	"fmt"

	"github.com/tphakala/go-sid-dsp/internal/fixedpoint"
)

// Calibration holds the measured analog constants of one integrator stage.
// All values are in volts except Transconductance (normalized K*W/L) and
// VoltScale (16-bit codes per volt). Calibration is immutable once the
// integrator is constructed.
type Calibration struct {
	// DCVoltage is the DC operating voltage feeding the gate divider.
	DCVoltage float64

	// Threshold is the FET threshold voltage.
	Threshold float64

	// Transconductance is the normalized transconductance coefficient for
	// one clock cycle.
	Transconductance float64

	// MinVoltage is the lowest voltage representable by the 16-bit code
	// domain; threshold-adjusted voltages are translated by it so that
	// quantized values can be subtracted directly.
	MinVoltage float64

	// VoltScale converts voltages to 16-bit codes.
	VoltScale float64
}

// IntegratorState is the mutable per-voice simulation state: the working
// voltage at the op-amp input and the accumulated capacitor charge. Both
// advance once per emulated clock cycle.
type IntegratorState struct {
	// Vx is the working voltage code.
	Vx int32

	// Vc is the accumulated charge, fixed point at 2^-15 of a code.
	Vc int32
}

// Integrator models one nonlinear RC feedback stage of the chip's resonant
// filter:
//
//	                +---C---+
//	                |       |
//	  vi -----Rfc---o--[A>--o-- vo
//	                vx
//
// The op-amp is represented by a measured transfer table rather than a
// closed-form equation. Solve is allocation-free and runs in bounded time;
// an Integrator serves a single voice and must not be shared between
// goroutines.
type Integrator struct {
	cal   Calibration
	table TransferTable

	// Quantized drive factor and threshold-adjusted gate voltage.
	nDac fixedpoint.UQ16
	nVgt fixedpoint.UQ16

	state IntegratorState
}

// NewIntegrator creates an integrator over the shared transfer table with
// the given calibration. The gate voltage starts at the default divider
// multiplier; construction fails when it quantizes outside its 16-bit
// range.
func NewIntegrator(table TransferTable, cal Calibration) (*Integrator, error) {
	if len(table) != TransferTableSize {
		return nil, fmt.Errorf("%w: transfer table has %d entries, want %d", ErrInvalidConfig, len(table), TransferTableSize)
	}

	in := &Integrator{
		cal:   cal,
		table: table,
	}

	if err := in.SetV(defaultGateMultiplier); err != nil {
		return nil, err
	}

	return in, nil
}

// SetFc sets the filter cutoff from a normalized conductance, quantizing
// the drive-scaling factor. It fails with a configuration error when the
// quantized factor does not fit its 16-bit representation.
func (in *Integrator) SetFc(conductance float64) error {
	q, err := fixedpoint.QuantizeUQ16(float64(dacScale.Unit()) * in.cal.Transconductance * conductance)
	if err != nil {
		return fmt.Errorf("%w: cutoff conductance %g: %v", ErrInvalidConfig, conductance, err)
	}

	in.nDac = q
	return nil
}

// SetV sets the gate voltage from the switched-capacitor divider
// multiplier, which must lie in the open interval (1, 2). The
// threshold-adjusted gate voltage is translated by the minimum voltage and
// quantized; out-of-range results fail with a configuration error.
func (in *Integrator) SetV(multiplier float64) error {
	if multiplier <= gateMultiplierMin || multiplier >= gateMultiplierMax {
		return fmt.Errorf("%w: gate multiplier %g outside (%g, %g)", ErrInvalidConfig, multiplier, gateMultiplierMin, gateMultiplierMax)
	}

	vgt := in.cal.DCVoltage*multiplier - in.cal.Threshold

	// Vgt - x = (Vgt - t) - (x - t): translating by the minimum voltage
	// lets quantized codes be subtracted directly.
	q, err := fixedpoint.QuantizeUQ16(in.cal.VoltScale * (vgt - in.cal.MinVoltage))
	if err != nil {
		return fmt.Errorf("%w: gate multiplier %g: %v", ErrInvalidConfig, multiplier, err)
	}

	in.nVgt = q
	return nil
}

// State returns the current simulation state.
func (in *Integrator) State() IntegratorState {
	return in.state
}

// Solve advances the stage by one clock cycle given the input voltage code
// and returns the output voltage code.
//
// Two square-law drive terms are formed from the gate voltage against the
// working voltage and against the input (clamped at the triode/saturation
// boundary); their scaled difference is the incremental drive current
// accumulated into the charge register, and the new working voltage comes
// from the transfer table.
//
// Precondition: the working voltage must remain strictly below the gate
// voltage (non-subthreshold operation). A violation indicates a calibration
// or sequencing defect upstream and panics rather than producing a
// nonsensical voltage.
func (in *Integrator) Solve(vi int32) int32 {
	nVgt := int32(in.nVgt)
	if in.state.Vx >= nVgt {
		panic(fmt.Sprintf("siddsp: integrator in subthreshold mode: vx %d >= nVgt %d", in.state.Vx, nVgt))
	}

	vgst := uint32(nVgt - in.state.Vx)
	var vgdt uint32
	if vi < nVgt {
		// Triode mode; in saturation the drain term vanishes.
		vgdt = uint32(nVgt - vi)
	}

	vgst2 := vgst * vgst
	vgdt2 := vgdt * vgdt

	// Drive current scaled to the charge register's fixed point.
	nI := int32(in.nDac) * (int32(vgst2-vgdt2) >> transferShift)

	in.state.Vc += nI

	// vx = g(vc)
	in.state.Vx = int32(in.table.At(int(in.state.Vc>>transferShift) + transferOffset))

	return in.state.Vx - in.state.Vc>>outputShift
}
