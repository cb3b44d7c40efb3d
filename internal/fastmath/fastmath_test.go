// fastmath_test.go

package fastmath

import "testing"

func TestPowBoundaries(t *testing.T) {
	if got := Pow(0, 2); got != 0 {
		t.Errorf("Pow(0,2) = %v, want 0", got)
	}
	if got := Pow(1, 2); got != 1 {
		t.Errorf("Pow(1,2) = %v, want 1", got)
	}
	if got := Pow(-1, 2); got != 0 {
		t.Errorf("Pow(-1,2) = %v, want 0 (clamped)", got)
	}
	if got := Pow(2, 2); got != 1 {
		t.Errorf("Pow(2,2) = %v, want 1 (clamped)", got)
	}
}

func TestPowApproximatesExponentCurve(t *testing.T) {
	// Not bit-exact to math.Pow — this is an approximation — but it
	// should be monotonically increasing for exponent==1 and stay in
	// [0,1] everywhere.
	prev := float32(0)
	for i := 1; i <= 10; i++ {
		x := float32(i) / 10
		v := Pow(x, 1)
		if v < 0 || v > 1 {
			t.Fatalf("Pow(%v,1) = %v, out of [0,1]", x, v)
		}
		if v < prev {
			t.Fatalf("Pow(%v,1) = %v, not monotonic (prev %v)", x, v, prev)
		}
		prev = v
	}
}

func TestTanhBoundaries(t *testing.T) {
	if got := Tanh(10); got != 1 {
		t.Errorf("Tanh(10) = %v, want 1", got)
	}
	if got := Tanh(-10); got != -1 {
		t.Errorf("Tanh(-10) = %v, want -1", got)
	}
	if got := Tanh(0); got != 0 {
		t.Errorf("Tanh(0) = %v, want 0", got)
	}
}

func TestTanhOddSymmetry(t *testing.T) {
	for _, x := range []float32{0.1, 0.5, 1, 2, 4} {
		pos := Tanh(x)
		neg := Tanh(-x)
		if diff := pos + neg; diff > 1e-5 || diff < -1e-5 {
			t.Errorf("Tanh(%v)+Tanh(-%v) = %v, want ~0", x, x, diff)
		}
	}
}
