// fastmath.go - approximate transcendental functions for the audio hot path
//
// Pow uses the classic IEEE-754 bit-manipulation trick (treat the exponent
// bits of a float as a scaled logarithm) and Tanh uses a rational Padé form,
// rather than libm's math.Pow/math.Tanh. Neither is available as a third-party
// dependency anywhere in this module's stack, and both are small enough
// (and hot-path-critical enough — called once per audio sample) that pulling
// in a dependency just for this would not simplify anything; see DESIGN.md.

package fastmath

import "math"

// Pow approximates x**exponent for x in [0,1], the range the ADSR
// exponential ramper operates in. It mirrors the original
// engine's "even_faster_pow" hot-path optimization: exact at x==0 and x==1,
// smoothly approximate in between, and much cheaper than math.Pow because
// it avoids a second logarithm.
func Pow(x, exponent float32) float32 {
	if x <= 0 {
		return 0
	}
	if x >= 1 {
		return 1
	}

	bits := math.Float32bits(x)
	logApprox := float32(bits) * (1.0 / float32(1<<23))
	scaled := (logApprox-127)*exponent + 127
	outBits := uint32(scaled * float32(1<<23))
	return math.Float32frombits(outBits)
}

// Tanh approximates math.Tanh via a rational Padé form, used by the Moog
// ladder's saturation stages where a per-sample, per-stage
// tanh call would otherwise dominate the hot path's cost.
func Tanh(x float32) float32 {
	if x > 4.97 {
		return 1
	}
	if x < -4.97 {
		return -1
	}
	x2 := x * x
	a := x * (135135 + x2*(17325+x2*(378+x2)))
	b := 135135 + x2*(62370+x2*(3150+x2*28))
	return a / b
}
