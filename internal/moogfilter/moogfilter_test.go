// moogfilter_test.go

package moogfilter

import (
	"math"
	"testing"
)

func TestApplySilenceStaysSilent(t *testing.T) {
	var f Filter
	params := [ParamCount]float32{1000, 2, 1}
	for i := 0; i < 100; i++ {
		if got := f.Apply(params, 0, 0); got != 0 {
			t.Fatalf("sample %d: Apply(...,0) = %v, want 0 on silence", i, got)
		}
	}
}

func TestApplyStaysFiniteAndBounded(t *testing.T) {
	var f Filter
	params := [ParamCount]float32{2000, 15, 4}
	for i := 0; i < 2000; i++ {
		sample := float32(math.Sin(2 * math.Pi * float64(i) / 20))
		out := f.Apply(params, 0, sample)
		if math.IsNaN(float64(out)) || math.IsInf(float64(out), 0) {
			t.Fatalf("sample %d: Apply diverged: %v", i, out)
		}
		if out < -10 || out > 10 {
			t.Fatalf("sample %d: Apply output unreasonably large: %v", i, out)
		}
	}
}

func TestApplyAllIsDeterministic(t *testing.T) {
	// ApplyAll's last_sample carry-through uses the frame buffer's
	// already-overwritten previous slot (matching the original engine's
	// apply_all literally), so it is not expected to match per-sample
	// Apply on an unmodified input array one-for-one; instead, check
	// ApplyAll itself is a pure, repeatable function of its inputs.
	const n = FrameSize
	var params [ParamCount][n]float32
	var samples [n]float32
	for i := 0; i < n; i++ {
		samples[i] = float32(math.Sin(2 * math.Pi * float64(i) / 13))
		params[ParamCutoff][i] = 1500
		params[ParamResonance][i] = 5
		params[ParamDrive][i] = 2
	}
	var baseFreqs [n]float32

	var a, b Filter
	sa, sb := samples, samples
	a.ApplyAll(params, &baseFreqs, &sa)
	b.ApplyAll(params, &baseFreqs, &sb)

	if sa != sb {
		t.Fatal("ApplyAll produced different output for identical fresh filters and inputs")
	}
}

func TestGetParamsNamesFixedOrdering(t *testing.T) {
	var f Filter
	names := f.GetParams()
	want := [ParamCount]string{"cutoff", "resonance", "drive"}
	if names != want {
		t.Errorf("GetParams() = %v, want %v", names, want)
	}
}
