// biquad.go - second-order IIR filter and higher-order cascade Q factors

package biquad

import "math"

// Nyquist is the Nyquist frequency for the fixed 44.1kHz sample rate this
// module assumes throughout.
const Nyquist = 44100.0 / 2.0

// Mode selects one of the seven Web Audio filter characteristics.
type Mode int

const (
	Lowpass Mode = iota
	Highpass
	Bandpass
	Notch
	Peak
	Lowshelf
	Highshelf
)

// Filter is a direct-form I second-order IIR filter (two samples of input
// history and two of output history). The zero value has all coefficients
// zero, so it outputs silence, and zeroed history; call SetCoefficients
// before use.
type Filter struct {
	B0, B1, B2 float32
	A1, A2     float32
	x          [2]float32
	y          [2]float32
}

// New builds a Filter with coefficients already computed for mode/q/detune/freq/gain.
func New(mode Mode, q, detuneCents, freqHz, gainDB float32) *Filter {
	f := &Filter{}
	f.SetCoefficients(mode, q, detuneCents, freqHz, gainDB)
	return f
}

// SetCoefficients (re)computes the five normalized coefficients for the
// given mode, Q (in dB for Lowpass/Highpass, per the higher-order cascade
// convention; linear for Bandpass/Notch/Peak; unused by the shelves), detune
// in cents, cutoff/center frequency in Hz, and gain in dB (shelf/peak only).
// History (x, y) is left untouched — coefficient changes do not reset
// state, which is musically desirable but a glitch source the caller must
// accept.
func (f *Filter) SetCoefficients(mode Mode, q, detuneCents, freqHz, gainDB float32) {
	computedFreq := freqHz * float32(math.Pow(2, float64(detuneCents)/1200.0))
	normalizedFreq := computedFreq / Nyquist
	w0 := float32(math.Pi) * normalizedFreq
	sinW0, cosW0 := float32(math.Sin(float64(w0))), float32(math.Cos(float64(w0)))

	A := float32(math.Pow(10, float64(gainDB)/40.0))
	aq := sinW0 / (2.0 * q)
	aqdb := sinW0 / (2.0 * float32(math.Pow(10, float64(q)/20.0)))
	const S = 1.0
	aS := (sinW0 / 2.0) * float32(math.Sqrt(float64((A+1/A)*(1/S-1)+2)))

	var b0, b1, b2, a0, a1, a2 float32

	switch mode {
	case Lowpass:
		b0 = (1 - cosW0) / 2
		b1 = 1 - cosW0
		b2 = (1 - cosW0) / 2
		a0 = 1 + aqdb
		a1 = -2 * cosW0
		a2 = 1 - aqdb
	case Highpass:
		b0 = (1 + cosW0) / 2
		b1 = -(1 + cosW0)
		b2 = (1 + cosW0) / 2
		a0 = 1 + aqdb
		a1 = -2 * cosW0
		a2 = 1 - aqdb
	case Bandpass:
		b0 = aq
		b1 = 0
		b2 = -aq
		a0 = 1 + aq
		a1 = -2 * cosW0
		a2 = 1 - aq
	case Notch:
		b0 = 1
		b1 = -2 * cosW0
		b2 = 1
		a0 = 1 + aq
		a1 = -2 * cosW0
		a2 = 1 - aq
	case Peak:
		b0 = 1 + aq*A
		b1 = -2 * cosW0
		b2 = 1 - aq*A
		a0 = 1 + aq/A
		a1 = -2 * cosW0
		a2 = 1 - aq/A
	case Lowshelf:
		sqrtA := float32(math.Sqrt(float64(A)))
		b0 = A * ((A + 1) - (A-1)*cosW0 + 2*aS*sqrtA)
		b1 = 2 * A * ((A - 1) - (A+1)*cosW0)
		b2 = A * ((A + 1) - (A-1)*cosW0 - 2*aS*sqrtA)
		a0 = (A + 1) + (A-1)*cosW0 + 2*aS*sqrtA
		a1 = -2 * ((A - 1) + (A+1)*cosW0)
		a2 = (A + 1) + (A-1)*cosW0 - 2*aS*sqrtA
	case Highshelf:
		sqrtA := float32(math.Sqrt(float64(A)))
		b0 = A * ((A + 1) + (A-1)*cosW0 + 2*aS*sqrtA)
		b1 = -2 * A * ((A - 1) + (A+1)*cosW0)
		b2 = A * ((A + 1) + (A-1)*cosW0 - 2*aS*sqrtA)
		a0 = (A + 1) - (A-1)*cosW0 + 2*aS*sqrtA
		a1 = 2 * ((A - 1) - (A+1)*cosW0)
		a2 = (A + 1) - (A-1)*cosW0 - 2*aS*sqrtA
	default:
		panic("biquad: unknown filter mode")
	}

	f.B0 = b0 / a0
	f.B1 = b1 / a0
	f.B2 = b2 / a0
	f.A1 = a1 / a0
	f.A2 = a2 / a0
}

// Apply runs one sample through the filter: direct-form I,
// branchless, allocation-free, real-time safe.
func (f *Filter) Apply(input float32) float32 {
	output := f.B0*input + f.B1*f.x[0] + f.B2*f.x[1] - f.A1*f.y[0] - f.A2*f.y[1]
	f.x = [2]float32{input, f.x[0]}
	f.y = [2]float32{output, f.y[0]}
	return output
}

// HigherOrderQFactors returns order/2 Q values (in dB) such that cascading
// a biquad chain with these Q values at each stage yields a
// Butterworth-style response of the given order. order must be even and
// positive; precondition violations panic.
//
// See https://www.earlevel.com/main/2016/09/29/cascading-filters/
func HigherOrderQFactors(order int) []float32 {
	if order <= 0 || order%2 != 0 {
		panic("biquad: order must be even and greater than 0")
	}

	n := order / 2
	out := make([]float32, n)
	for i := 0; i < n; i++ {
		angle := math.Pi/float64(order)/2.0 + (math.Pi/float64(order))*float64(i)
		out[i] = linearToDB(1.0 / (2.0 * math.Cos(angle)))
	}
	return out
}

func linearToDB(linear float64) float32 {
	return float32(20.0 * math.Log10(linear))
}
