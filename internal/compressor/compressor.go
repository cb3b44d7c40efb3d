// compressor.go - single-band lookahead peak/RMS compressor

package compressor

import (
	"math"

	"github.com/greydoubt/dspcore/internal/ringbuf"
)

// SampleRate is the fixed rate this module assumes throughout.
const SampleRate = 44100

// FrameSize is the audio callback block size.
const FrameSize = 128

// LookaheadDetectWindow is the fixed analysis window used by level
// detection, independent of the caller-supplied lookahead length. This
// looks like it should track the caller's lookahead but doesn't in the
// original engine; preserved as-is rather than "fixed".
const LookaheadDetectWindow = 5800

// SensingMethod selects how a band's level is detected.
type SensingMethod int

const (
	Peak SensingMethod = iota
	RMS
)

// Compressor holds one band's running envelope-follower and telemetry
// state, all real, all initialized to zero.
type Compressor struct {
	BottomEnvelope        float32
	TopEnvelope           float32
	LastDetectedLevelLin  float32
	LastOutputLevelDB     float32
	LastAppliedGain       float32
}

// GainToDB converts a linear gain/amplitude value to decibels.
func GainToDB(linear float32) float32 {
	if linear <= 0 {
		return float32(math.Inf(-1))
	}
	return float32(20 * math.Log10(float64(linear)))
}

// DBToGain converts a decibel value back to a linear gain.
func DBToGain(db float32) float32 {
	return float32(math.Pow(10, float64(db)/20))
}

func computeAttackCoefficient(attackMs float32) float32 {
	attackSamples := attackMs * 0.001 * SampleRate
	return 1 - 1/attackSamples
}

func computeReleaseCoefficient(releaseMs float32) float32 {
	releaseSamples := releaseMs * 0.001 * SampleRate
	return 1 / releaseSamples
}

func detectLevelPeak(buf *ringbuf.Buffer, lookaheadSamples int, sampleIxInFrame int) float32 {
	var max float32
	for i := 0; i < lookaheadSamples; i++ {
		ix := -lookaheadSamples - FrameSize + sampleIxInFrame + i
		abs := buf.Get(ix)
		if abs < 0 {
			abs = -abs
		}
		if abs > max {
			max = abs
		}
	}
	return max
}

func detectLevelRMS(buf *ringbuf.Buffer, lookaheadSamples int, sampleIxInFrame int) float32 {
	var sum float32
	for i := 0; i < lookaheadSamples; i++ {
		ix := -lookaheadSamples - FrameSize + sampleIxInFrame + i
		s := buf.Get(ix)
		sum += s * s
	}
	avg := sum / float32(lookaheadSamples)
	return float32(math.Sqrt(float64(avg)))
}

// applyCompressionTopCurve, applyCompressionBottomCurve and
// ComputeMakeupGain implement the original engine's reserved, currently
// disabled makeup-gain computation. Only ComputeMakeupGain is exported, for
// a host/telemetry panel to preview what makeup gain would be applied if it
// were enabled; Apply never calls any of them.
func applyCompressionTopCurve(inputLinear, thresholdLinear, ratio float32) float32 {
	if inputLinear <= thresholdLinear {
		return inputLinear
	}
	return (1 / ratio) * inputLinear
}

func applyCompressionBottomCurve(inputLinear, thresholdLinear, ratio float32) float32 {
	if inputLinear > thresholdLinear {
		return inputLinear
	}
	return (1 / ratio) * inputLinear
}

// ComputeMakeupGain returns the reserved makeup-gain curve value for a top
// threshold/ratio pair, matching the original's (disabled)
// compute_makeup_gain.
func ComputeMakeupGain(thresholdLinear, ratio float32) float32 {
	fullRangeGain := applyCompressionTopCurve(1, thresholdLinear, ratio)
	fullRangeMakeupGain := 1 / fullRangeGain
	return float32(math.Pow(float64(fullRangeMakeupGain), 0.6))
}

// Apply reads lookahead_samples-delayed input from inputBuf, applies dual
// (top/bottom) envelope-followed gain, and accumulates (+=, not
// overwrites) into outputBuf. Returns the last sample's detected level in
// dB, for telemetry.
func (c *Compressor) Apply(
	inputBuf *ringbuf.Buffer,
	lookaheadSamples int,
	outputBuf *[FrameSize]float32,
	attackMs, releaseMs float32,
	bottomThresholdDB, topThresholdDB float32,
	bottomRatio, topRatio float32,
	knee float32,
	sensingMethod SensingMethod,
) float32 {
	bottomEnvelope := c.BottomEnvelope
	topEnvelope := c.TopEnvelope

	attackCoefficient := computeAttackCoefficient(attackMs)
	releaseCoefficient := computeReleaseCoefficient(releaseMs)

	const makeupGain = 1.0
	detectedLevelDB := c.LastOutputLevelDB
	detectedLevelLinear := c.LastDetectedLevelLin
	targetVolumeDB := detectedLevelDB
	gain := float32(1.0)

	for i := 0; i < FrameSize; i++ {
		input := inputBuf.Get(-lookaheadSamples - FrameSize + i)
		if input < 0.0001 {
			outputBuf[i] += input
			continue
		}

		switch sensingMethod {
		case Peak:
			detectedLevelLinear = detectLevelPeak(inputBuf, LookaheadDetectWindow, i)
		case RMS:
			detectedLevelLinear = detectLevelRMS(inputBuf, LookaheadDetectWindow, i)
		}
		detectedLevelDB = GainToDB(detectedLevelLinear)

		if detectedLevelDB > topEnvelope {
			topEnvelope = attackCoefficient*topEnvelope + (1-attackCoefficient)*detectedLevelDB
		} else {
			topEnvelope = releaseCoefficient*topEnvelope + (1-releaseCoefficient)*detectedLevelDB
		}
		if detectedLevelDB < bottomEnvelope {
			bottomEnvelope = attackCoefficient*bottomEnvelope + (1-attackCoefficient)*detectedLevelDB
		} else {
			bottomEnvelope = releaseCoefficient*bottomEnvelope + (1-releaseCoefficient)*detectedLevelDB
		}

		if detectedLevelDB < -60 {
			targetVolumeDB = detectedLevelDB
			outputBuf[i] += input
			continue
		}

		switch {
		case topEnvelope > topThresholdDB:
			targetVolumeDB = topThresholdDB + (topEnvelope-topThresholdDB)/topRatio
			gain = DBToGain(targetVolumeDB - detectedLevelDB)
		case bottomEnvelope < bottomThresholdDB:
			diffDB := bottomThresholdDB - bottomEnvelope
			targetVolumeDB = bottomThresholdDB - diffDB*bottomRatio
			gain = DBToGain(targetVolumeDB - detectedLevelDB)
		default:
			targetVolumeDB = topEnvelope
			gain = 1
		}

		outputBuf[i] += input * gain * makeupGain
	}

	c.BottomEnvelope = bottomEnvelope
	c.TopEnvelope = topEnvelope
	c.LastDetectedLevelLin = detectedLevelLinear
	c.LastOutputLevelDB = targetVolumeDB
	c.LastAppliedGain = gain

	return detectedLevelDB
}
