// bandsplitter_test.go

package dsp

import (
	"math"
	"testing"
)

func TestApplyFrameProducesFiniteOutput(t *testing.T) {
	bs := New()

	var in, lo, mid, hi [FrameSize]float32
	for i := range in {
		in[i] = float32(math.Sin(2 * math.Pi * float64(i) / 32))
	}

	for frame := 0; frame < 20; frame++ {
		bs.ApplyFrame(&in, &lo, &mid, &hi)
		for i := range in {
			if math.IsNaN(float64(lo[i])) || math.IsInf(float64(lo[i]), 0) {
				t.Fatalf("frame %d: lo[%d] = %v, not finite", frame, i, lo[i])
			}
			if math.IsNaN(float64(mid[i])) || math.IsInf(float64(mid[i]), 0) {
				t.Fatalf("frame %d: mid[%d] = %v, not finite", frame, i, mid[i])
			}
			if math.IsNaN(float64(hi[i])) || math.IsInf(float64(hi[i]), 0) {
				t.Fatalf("frame %d: hi[%d] = %v, not finite", frame, i, hi[i])
			}
		}
	}
}

func TestApplyFrameZeroInputStaysZero(t *testing.T) {
	bs := New()
	var in, lo, mid, hi [FrameSize]float32

	for frame := 0; frame < 5; frame++ {
		bs.ApplyFrame(&in, &lo, &mid, &hi)
		for i := range in {
			if lo[i] != 0 || mid[i] != 0 || hi[i] != 0 {
				t.Fatalf("frame %d sample %d: expected silence through, got lo=%v mid=%v hi=%v", frame, i, lo[i], mid[i], hi[i])
			}
		}
	}
}

func TestNewBuildsFullChains(t *testing.T) {
	bs := New()
	for i, f := range bs.lowChain {
		if f == nil {
			t.Fatalf("lowChain[%d] is nil", i)
		}
	}
	for i, f := range bs.midChain {
		if f == nil {
			t.Fatalf("midChain[%d] is nil", i)
		}
	}
	for i, f := range bs.highChain {
		if f == nil {
			t.Fatalf("highChain[%d] is nil", i)
		}
	}
}
