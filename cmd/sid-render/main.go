// Command sid-render renders a test tone through the SID DSP signal path
// and writes the result to a WAV file.
//
// The tone is synthesized at the emulated chip clock rate, pushed through
// one nonlinear integrator stage (standing in for the chip's filter) and
// resampled to the requested output rate.
//
// Usage:
//
//	sid-render -out tone.wav
//	sid-render -out tone.wav -freq 880 -rate 44100 -dur 5
package main

import (
	"flag"
	"fmt"
	"log"
	"math"
	"os"

	"github.com/go-audio/audio"
	"github.com/go-audio/wav"

	siddsp "github.com/tphakala/go-sid-dsp"
)

const (
	// PAL C64 clock frequency in Hz.
	defaultClockRate = 985248.0

	// Output defaults
	defaultOutputRate = 48000
	defaultToneFreq   = 440.0
	defaultDuration   = 2.0
	defaultAccurate   = 20000.0

	// Voltage-code operating point for the integrator input. The tone
	// swings around the DC point, staying below the gate voltage.
	inputDCCode    = 40000
	inputAmplitude = 8000

	// The integrator output at equilibrium sits at 65536 - inputDCCode
	// for the linear demo transfer stage.
	outputDCCode = 25536

	// 16-bit PCM conversion
	codeToFloat = 32768.0
	maxInt16    = 32767.0

	// Cycles run before recording so the integrator's DC transient
	// settles out of the written audio.
	warmupCycles = 100000

	wavPCMFormat = 1
	bitDepth16   = 16
	monoChannels = 1
)

func main() {
	outPath := flag.String("out", "tone.wav", "output WAV file path")
	outRate := flag.Int("rate", defaultOutputRate, "output sample rate in Hz")
	toneFreq := flag.Float64("freq", defaultToneFreq, "tone frequency in Hz")
	duration := flag.Float64("dur", defaultDuration, "duration in seconds")
	clockRate := flag.Float64("clock", defaultClockRate, "emulated chip clock in Hz")
	flag.Parse()

	if err := run(*outPath, *outRate, *toneFreq, *duration, *clockRate); err != nil {
		log.Fatal(err)
	}
}

func run(outPath string, outRate int, toneFreq, duration, clockRate float64) error {
	accurate := defaultAccurate
	if limit := float64(outRate) / 2; accurate > limit {
		accurate = limit
	}

	resampler, err := siddsp.NewSincResampler(clockRate, float64(outRate), accurate)
	if err != nil {
		return fmt.Errorf("failed to create resampler: %w", err)
	}

	integrator, err := siddsp.NewIntegrator(demoTransferTable(), demoCalibration())
	if err != nil {
		return fmt.Errorf("failed to create integrator: %w", err)
	}
	if err := integrator.SetFc(1.0); err != nil {
		return fmt.Errorf("failed to set cutoff: %w", err)
	}

	// Let the integrator settle at the DC operating point.
	for range warmupCycles {
		integrator.Solve(inputDCCode)
	}

	totalCycles := int(duration * clockRate)
	samples := make([]int, 0, int(duration*float64(outRate))+1)

	omega := 2 * math.Pi * toneFreq / clockRate
	for cycle := range totalCycles {
		vi := int32(inputDCCode + inputAmplitude*math.Sin(omega*float64(cycle)))
		vo := integrator.Solve(vi)

		if resampler.Input((float64(vo) - outputDCCode) / codeToFloat) {
			s := resampler.Output()
			if s > 1.0 {
				s = 1.0
			} else if s < -1.0 {
				s = -1.0
			}
			samples = append(samples, int(s*maxInt16))
		}
	}

	if err := writeWAV(outPath, outRate, samples); err != nil {
		return err
	}

	log.Printf("wrote %d samples at %d Hz to %s", len(samples), outRate, outPath)
	return nil
}

// demoCalibration returns 8580-style constants for the demo stage.
func demoCalibration() siddsp.Calibration {
	return siddsp.Calibration{
		DCVoltage:        3.18,
		Threshold:        0.8,
		Transconductance: 0.002,
		MinVoltage:       0.5,
		VoltScale:        65535.0 / 4.5,
	}
}

// demoTransferTable builds a linear op-amp transfer stage. A real chip
// model derives this table from transistor measurements; the identity
// mapping keeps the demo self-contained while exercising the same path.
func demoTransferTable() siddsp.TransferTable {
	codes := make([]uint16, siddsp.TransferTableSize)
	for i := range codes {
		codes[i] = uint16(i)
	}
	table, err := siddsp.NewTransferTable(codes)
	if err != nil {
		panic(err)
	}
	return table
}

func writeWAV(path string, rate int, samples []int) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create output file: %w", err)
	}
	defer func() { _ = f.Close() }()

	enc := wav.NewEncoder(f, rate, bitDepth16, monoChannels, wavPCMFormat)

	buf := &audio.IntBuffer{
		Format: &audio.Format{
			NumChannels: monoChannels,
			SampleRate:  rate,
		},
		Data:           samples,
		SourceBitDepth: bitDepth16,
	}

	if err := enc.Write(buf); err != nil {
		_ = enc.Close()
		return fmt.Errorf("failed to write samples: %w", err)
	}

	if err := enc.Close(); err != nil {
		return fmt.Errorf("failed to finalize WAV: %w", err)
	}

	return nil
}
