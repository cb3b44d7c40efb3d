// moogfilter.go - 4-pole Moog ladder filter with saturation and 2x oversampling
//
// Ported from the "Improved Model" topology
// (https://github.com/ddiakopoulos/MoogLadders), same reference the
// original engine's moog.rs cites.

package moogfilter

import (
	"math"

	"github.com/greydoubt/dspcore/internal/fastmath"
	"github.com/greydoubt/dspcore/internal/ringbuf"
)

// SampleRate is the fixed rate this module assumes throughout.
const SampleRate = 44100

// FrameSize is the audio callback block size.
const FrameSize = 128

// VT is the thermal-voltage constant, in this model's own scaled units, used
// by the ladder's tanh saturation stages.
const VT = 0.312

// ParamIndex names the three per-sample control-rate inputs Apply expects,
// matching the original engine's fixed [cutoff, resonance, drive] ordering.
const (
	ParamCutoff = iota
	ParamResonance
	ParamDrive
	ParamCount
)

// Filter is one 4-pole Moog ladder instance. The zero value is a valid,
// silent filter.
type Filter struct {
	V  [4]float32
	dV [4]float32
	tV [4]float32

	lastSample float32
}

// Apply runs one sample through the ladder at 2x oversampling. params must
// hold ParamCount (3) values: cutoff (Hz, clamped to [1,22100]), resonance
// (clamped to [0,20]), and drive. baseFrequency is accepted for Effect
// interface symmetry but unused, matching the original.
func (f *Filter) Apply(params [ParamCount]float32, baseFrequency float32, sample float32) float32 {
	cutoffIn := params[ParamCutoff]
	resonance := clamp(0, 20, params[ParamResonance])
	drive := params[ParamDrive]
	cutoff := clamp(1, 22100, cutoffIn)

	var outSample float32
	for j := 0; j < 2; j++ {
		s := sample
		if j == 0 {
			s = ringbuf.Mix(0.5, f.lastSample, sample)
		}
		outSample += f.step(cutoff, resonance, drive, s)
	}
	f.lastSample = sample

	return outSample / 2
}

// ApplyAll runs a full frame through the ladder, with per-sample control
// values supplied as parallel arrays (one array per ParamIndex), matching
// the original's apply_all batched entry point.
func (f *Filter) ApplyAll(params [ParamCount][FrameSize]float32, baseFrequencies *[FrameSize]float32, samples *[FrameSize]float32) {
	lastSample := f.lastSample
	for i := 0; i < FrameSize; i++ {
		if i > 0 {
			lastSample = samples[i-1]
		}

		cutoff := clamp(1, 22100, params[ParamCutoff][i])
		resonance := clamp(0, 20, params[ParamResonance][i])
		drive := params[ParamDrive][i]

		var outSample float32
		for j := 0; j < 2; j++ {
			s := samples[i]
			if j == 0 {
				s = ringbuf.Mix(0.5, lastSample, samples[i])
			}
			outSample += f.step(cutoff, resonance, drive, s)
		}
		samples[i] = outSample / 2
	}
	f.lastSample = lastSample
}

// step advances the four ladder stages by one oversampled tick and returns
// the fourth stage's voltage.
func (f *Filter) step(cutoff, resonance, drive, sample float32) float32 {
	const oversampledRate = 2 * SampleRate

	x := (float32(math.Pi) * cutoff) / oversampledRate
	g := 4 * float32(math.Pi) * VT * cutoff * (1 - x) / (1 + x)

	dV0 := -g * (fastmath.Tanh((drive*sample+resonance*f.V[3])/(2*VT)) + f.tV[0])
	f.V[0] += (dV0 + f.dV[0]) / (2 * oversampledRate)
	f.dV[0] = dV0
	f.tV[0] = fastmath.Tanh(f.V[0] / (2 * VT))

	dV1 := g * (f.tV[0] - f.tV[1])
	f.V[1] += (dV1 + f.dV[1]) / (2 * oversampledRate)
	f.dV[1] = dV1
	f.tV[1] = fastmath.Tanh(f.V[1] / (2 * VT))

	dV2 := g * (f.tV[1] - f.tV[2])
	f.V[2] += (dV2 + f.dV[2]) / (2 * oversampledRate)
	f.dV[2] = dV2
	f.tV[2] = fastmath.Tanh(f.V[2] / (2 * VT))

	dV3 := g * (f.tV[2] - f.tV[3])
	f.V[3] += (dV3 + f.dV[3]) / (2 * oversampledRate)
	f.dV[3] = dV3
	f.tV[3] = fastmath.Tanh(f.V[3] / (2 * VT))

	return f.V[3]
}

func clamp(lo, hi, v float32) float32 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
