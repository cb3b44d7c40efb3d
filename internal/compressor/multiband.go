// multiband.go - 3-band compressor orchestration and SAB telemetry

package compressor

import (
	"github.com/greydoubt/dspcore/internal/dsp"
	"github.com/greydoubt/dspcore/internal/ringbuf"
)

// MaxLookaheadSamples bounds the caller-configurable per-band lookahead
// delay line (SAMPLE_RATE/20 in the original engine).
const MaxLookaheadSamples = 44100 / 20

// SABSize is the width of the shared telemetry array published every
// frame. Only the first 12 slots are populated; 12-15 are reserved and
// always zero.
const SABSize = 16

// Band indexes the fixed low/mid/high processing order.
const (
	BandLow = iota
	BandMid
	BandHigh
	bandCount
)

// BandParams is one band's per-band knob set. Ratio, knee, and lookahead
// length are shared across all three bands at the MultibandCompressor
// level, matching the original engine's process_compressor parameter list.
type BandParams struct {
	Gain              float32
	AttackMs          float32
	ReleaseMs         float32
	BottomThresholdDB float32
	TopThresholdDB    float32
}

// MultibandCompressor splits its input buffer into low/mid/high bands via
// a fixed Linkwitz-Riley-style splitter, runs one Compressor per band over
// a per-band lookahead ring, sums the results, and publishes telemetry
// into a flat shared array (SAB) for a host dashboard to poll. InputBuf
// and OutputBuf are the caller-facing buffers a host writes/reads every
// frame, mirroring the original's get_compressor_{input,output}_buf_ptr
// accessors.
type MultibandCompressor struct {
	inputBuf  [dsp.FrameSize]float32
	outputBuf [dsp.FrameSize]float32

	splitter *dsp.BandSplitter

	lookaheadRings [bandCount]*ringbuf.Buffer
	compressors    [bandCount]Compressor

	lowFrame, midFrame, highFrame [dsp.FrameSize]float32

	sab [SABSize]float32
}

// New builds a MultibandCompressor with lookahead rings sized to exactly
// MaxLookaheadSamples, matching the original engine's CircularBuffer<
// MAX_LOOKAHEAD_SAMPLES> allocation with no extra headroom — the
// (capacity-1) modulus in ringbuf.Get depends on this exact size to
// reproduce the original's wrapped reads bit-for-bit.
func New() *MultibandCompressor {
	mc := &MultibandCompressor{
		splitter: dsp.New(),
	}
	for i := range mc.lookaheadRings {
		mc.lookaheadRings[i] = ringbuf.New(MaxLookaheadSamples)
	}
	return mc
}

// InputBuf returns the buffer the host writes one 128-sample frame into
// before calling Apply.
func (mc *MultibandCompressor) InputBuf() *[dsp.FrameSize]float32 { return &mc.inputBuf }

// OutputBuf returns the buffer Apply fills with the processed frame.
func (mc *MultibandCompressor) OutputBuf() *[dsp.FrameSize]float32 { return &mc.outputBuf }

// SAB returns the telemetry array, updated at the end of every Apply call.
func (mc *MultibandCompressor) SAB() *[SABSize]float32 { return &mc.sab }

// Apply runs one 128-sample frame: pre-gain, band-split with per-band
// gain applied before the lookahead ring, three Compressor.Apply calls in
// fixed low/mid/high order, and post-gain. bottomRatio, topRatio, knee,
// and lookaheadSamples are shared across all three bands; sensing is
// hard-coded to RMS; SensingMethod remains a parameter of Compressor.Apply
// for future per-band routing.
func (mc *MultibandCompressor) Apply(
	preGain, postGain float32,
	bands [bandCount]BandParams,
	bottomRatio, topRatio, knee float32,
	lookaheadSamples int,
) {
	if preGain != 1 {
		for i := range mc.inputBuf {
			mc.inputBuf[i] *= preGain
		}
	}

	mc.splitter.ApplyFrame(&mc.inputBuf, &mc.lowFrame, &mc.midFrame, &mc.highFrame)

	bandFrames := [bandCount]*[dsp.FrameSize]float32{&mc.lowFrame, &mc.midFrame, &mc.highFrame}

	for i := range mc.outputBuf {
		mc.outputBuf[i] = 0
	}

	for band := 0; band < bandCount; band++ {
		frame := bandFrames[band]
		p := bands[band]
		ring := mc.lookaheadRings[band]
		for i := 0; i < dsp.FrameSize; i++ {
			v := frame[i]
			if p.Gain != 1 {
				v *= p.Gain
			}
			ring.Set(v)
		}

		levelDB := mc.compressors[band].Apply(
			ring,
			lookaheadSamples,
			&mc.outputBuf,
			p.AttackMs, p.ReleaseMs,
			p.BottomThresholdDB, p.TopThresholdDB,
			bottomRatio, topRatio,
			knee,
			RMS,
		)

		// SAB layout: [lo_detected, mid_detected, hi_detected, lo_env,
		// mid_env, hi_env, lo_out, mid_out, hi_out, lo_gain, mid_gain,
		// hi_gain] — grouped by metric, not by band.
		mc.sab[0+band] = levelDB
		mc.sab[3+band] = mc.compressors[band].BottomEnvelope
		mc.sab[6+band] = mc.compressors[band].LastOutputLevelDB
		mc.sab[9+band] = mc.compressors[band].LastAppliedGain
	}

	if postGain != 1 {
		for i := range mc.outputBuf {
			mc.outputBuf[i] *= postGain
		}
	}
}
