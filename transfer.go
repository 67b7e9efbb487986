package siddsp

import "fmt"

// TransferTableSize is the number of entries in an op-amp transfer table:
// one 16-bit output code per 16-bit input code.
const TransferTableSize = 1 << 16

// TransferTable holds the measured op-amp transfer function of one filter
// stage, mapping a scaled charge code to the op-amp output voltage code.
// One table is shared read-only by every integrator of the same chip
// revision; its lifetime is managed by the configuration that built the
// chip model.
type TransferTable []uint16

// NewTransferTable validates that codes holds one entry per 16-bit input
// code and wraps it. The slice is aliased, not copied; it must not be
// mutated afterwards.
func NewTransferTable(codes []uint16) (TransferTable, error) {
	if len(codes) != TransferTableSize {
		return nil, fmt.Errorf("%w: transfer table has %d entries, want %d", ErrInvalidConfig, len(codes), TransferTableSize)
	}
	return TransferTable(codes), nil
}

// At returns the output code for index i. An out-of-range index means the
// charge register left the calibrated domain, which is a modeling defect
// upstream; At panics predictably instead of reading out of bounds.
func (t TransferTable) At(i int) uint16 {
	if uint(i) >= uint(len(t)) {
		panic(fmt.Sprintf("siddsp: transfer table index %d out of range [0, %d)", i, len(t)))
	}
	return t[i]
}
