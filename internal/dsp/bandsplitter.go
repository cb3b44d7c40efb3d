// bandsplitter.go - fixed 3-band Linkwitz-Riley-style splitter

package dsp

import "github.com/greydoubt/dspcore/internal/biquad"

// FrameSize is the fixed audio callback block size this module assumes
// throughout: 128 samples at 44.1kHz.
const FrameSize = 128

const (
	bandSplitterFilterOrder      = 16
	bandSplitterFilterChainLen   = bandSplitterFilterOrder / 2
	// LowBandCutoff is the low/mid crossover hinge frequency.
	LowBandCutoff float32 = 88.3
	// MidBandCutoff is the mid/high crossover hinge frequency.
	MidBandCutoff float32 = 2500.0
)

// BandSplitter turns one 128-sample input frame into three band-limited
// output frames: low (<=~88Hz), mid, and high (>=2.5kHz). Construction
// synthesizes an 8-stage Butterworth-style cascade per band (16 stages for
// the mid band, split 8 highpass + 8 lowpass). The splitter is
// phase-nonlinear; the system accepts this.
type BandSplitter struct {
	lowChain  [bandSplitterFilterChainLen]*biquad.Filter
	midChain  [bandSplitterFilterChainLen * 2]*biquad.Filter
	highChain [bandSplitterFilterChainLen]*biquad.Filter
}

// New builds a BandSplitter with coefficients computed at the fixed hinge
// frequencies: low band at 88.3Hz, mid band bounded by
// 95.8Hz (=88.3+7.5) and 2315.2Hz (=2500-184.8), high band at 2500Hz. The
// small offsets compensate cascade magnitude sag at the crossover so the
// summed band response stays flat within audible tolerance.
func New() *BandSplitter {
	qFactors := biquad.HigherOrderQFactors(bandSplitterFilterOrder)

	bs := &BandSplitter{}
	var midBottom, midTop [bandSplitterFilterChainLen]*biquad.Filter
	for i, q := range qFactors {
		bs.lowChain[i] = biquad.New(biquad.Lowpass, q, 0, LowBandCutoff, 0)
		midBottom[i] = biquad.New(biquad.Highpass, q, 0, LowBandCutoff+7.5, 0)
		midTop[i] = biquad.New(biquad.Lowpass, q, 0, MidBandCutoff-184.8, 0)
		bs.highChain[i] = biquad.New(biquad.Highpass, q, 0, MidBandCutoff, 0)
	}

	// Mid band is twice as long because it needs bottom (highpass) and top
	// (lowpass) stages.
	for i := 0; i < bandSplitterFilterChainLen; i++ {
		bs.midChain[i] = midBottom[i]
		bs.midChain[bandSplitterFilterChainLen+i] = midTop[i]
	}

	return bs
}

// ApplyFrame splits samples into the three band output buffers. Each band is
// processed independently: copy the input, then run every biquad in the
// band's chain serially over the 128 samples before moving to the next
// filter.
func (bs *BandSplitter) ApplyFrame(samples *[FrameSize]float32, lo, mid, hi *[FrameSize]float32) {
	applyChain(bs.lowChain[:], samples, lo)
	applyChain(bs.midChain[:], samples, mid)
	applyChain(bs.highChain[:], samples, hi)
}

func applyChain(chain []*biquad.Filter, in *[FrameSize]float32, out *[FrameSize]float32) {
	filtered := *in
	for _, f := range chain {
		for i := range filtered {
			filtered[i] = f.Apply(filtered[i])
		}
	}
	*out = filtered
}
