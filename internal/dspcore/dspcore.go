// dspcore.go - Go-native shape of the original C-ABI boundary
//
// The original engine exports a C-ABI as opaque-pointer functions for a
// foreign host to call across a process boundary. This module has no
// foreign caller: the host runtime and the DSP core run in the same Go
// process, so the boundary collapses to an ordinary exported type with
// methods. InitCompressor, InputBuf/OutputBuf/SAB, and Process mirror
// init_compressor/get_compressor_{input,output}_buf_ptr/get_sab_ptr/
// process_compressor one-for-one.

package dspcore

import "github.com/greydoubt/dspcore/internal/compressor"

// Fixed constants at the boundary.
const (
	SampleRate              = 44100
	FrameSize               = 128
	MaxLookaheadSamples     = 2205
	RenderedADSRSize        = 44100
	LowBandCutoff           = 88.3
	MidBandCutoff           = 2500.0
	BandSplitterFilterOrder = 16
)

// Core is the host-facing handle. It owns one MultibandCompressor and
// exposes the buffer-accessor and frame-processing surface.
type Core struct {
	mc *compressor.MultibandCompressor
}

// InitCompressor allocates a Core ready to process frames. Equivalent to
// the original's init_compressor().
func InitCompressor() *Core {
	return &Core{mc: compressor.New()}
}

// InputBuf returns the 128-float buffer the host writes one frame of
// samples into before calling Process. Equivalent to
// get_compressor_input_buf_ptr.
func (c *Core) InputBuf() *[FrameSize]float32 { return c.mc.InputBuf() }

// OutputBuf returns the 128-float buffer Process fills. Equivalent to
// get_compressor_output_buf_ptr.
func (c *Core) OutputBuf() *[FrameSize]float32 { return c.mc.OutputBuf() }

// SAB returns the 16-float telemetry array Process publishes into.
// Equivalent to get_sab_ptr.
func (c *Core) SAB() *[16]float32 { return c.mc.SAB() }

// BandGains holds the three per-band makeup gains applied during
// band-splitting, before each band's lookahead ring.
type BandGains struct {
	Low, Mid, High float32
}

// BandEnvelope holds one band's attack/release times and top/bottom
// threshold pair.
type BandEnvelope struct {
	AttackMs, ReleaseMs               float32
	BottomThresholdDB, TopThresholdDB float32
}

// Process runs one 128-sample frame through the multiband compressor,
// taking the exact parameter set the original assigns to
// process_compressor. Equivalent to process_compressor(*MC, ...).
func (c *Core) Process(
	preGain, postGain float32,
	gains BandGains,
	lowEnv, midEnv, highEnv BandEnvelope,
	bottomRatio, topRatio, knee float32,
	lookaheadSamples int,
) {
	bands := [3]compressor.BandParams{
		{
			Gain:              gains.Low,
			AttackMs:          lowEnv.AttackMs,
			ReleaseMs:         lowEnv.ReleaseMs,
			BottomThresholdDB: lowEnv.BottomThresholdDB,
			TopThresholdDB:    lowEnv.TopThresholdDB,
		},
		{
			Gain:              gains.Mid,
			AttackMs:          midEnv.AttackMs,
			ReleaseMs:         midEnv.ReleaseMs,
			BottomThresholdDB: midEnv.BottomThresholdDB,
			TopThresholdDB:    midEnv.TopThresholdDB,
		},
		{
			Gain:              gains.High,
			AttackMs:          highEnv.AttackMs,
			ReleaseMs:         highEnv.ReleaseMs,
			BottomThresholdDB: highEnv.BottomThresholdDB,
			TopThresholdDB:    highEnv.TopThresholdDB,
		},
	}

	c.mc.Apply(preGain, postGain, bands, bottomRatio, topRatio, knee, lookaheadSamples)
}
