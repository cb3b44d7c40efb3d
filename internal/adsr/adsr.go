// adsr.go - shared, precomputed piecewise envelope generator

package adsr

import (
	"github.com/greydoubt/dspcore/internal/fastmath"
)

const (
	// SampleRate is the fixed rate this module assumes throughout.
	SampleRate = 44100
	// RenderedSize is the length of the shared rendered envelope table —
	// one phase unit per sample across a full second.
	RenderedSize = SampleRate
	// FrameSize is the audio callback block size.
	FrameSize = 128
)

// Ramper is the interpolation rule between two Steps.
type Ramper interface {
	isRamper()
}

// Instant holds the previous step's value until the next step is reached.
type Instant struct{}

// Linear interpolates proportionally between steps.
type Linear struct{}

// Exponential interpolates using a fast approximate power curve.
type Exponential struct {
	Exponent float32
}

func (Instant) isRamper()     {}
func (Linear) isRamper()      {}
func (Exponential) isRamper() {}

// RamperFromCode maps the wire representation used by external
// interface convention (0=Instant, 1=Linear, 2=Exponential) to a Ramper.
// An unrecognized code is a programmer-misuse precondition violation and
// panics.
func RamperFromCode(code uint32, param float32) Ramper {
	switch code {
	case 0:
		return Instant{}
	case 1:
		return Linear{}
	case 2:
		return Exponential{Exponent: param}
	default:
		panic("adsr: invalid ramper code")
	}
}

// Step is one point in the envelope's piecewise definition.
type Step struct {
	X      float32 // phase in [0,1], monotonically nondecreasing across Steps
	Y      float32
	Ramper Ramper
}

var defaultFirstStep = Step{X: 0, Y: 0, Ramper: Instant{}}

// GateStatus is the ADSR's state-machine position.
type GateStatus int

const (
	// Gated: phase is advancing towards release_start_phase (or looping).
	Gated GateStatus = iota
	// GatedFrozen: reached release_start_phase with no loop point; output
	// is locked and rendering is skipped until Ungate.
	GatedFrozen
	// Releasing: phase is advancing from release_start_phase towards 1.
	Releasing
	// Done: reached phase 1 while releasing; output is frozen at the final
	// rendered value.
	Done
)

// RenderedTable is a shared, read-mostly envelope buffer. Multiple ADSR
// instances may hold the same handle (cheap copy); by convention exactly
// one instance — whichever called Render() most recently — is the writer,
// matching the single-threaded audio-callback discipline the rest of this
// module assumes. It replaces the original engine's Rc<[f32; N]>-aliased
// shared array with an explicit, group-owned value.
type RenderedTable struct {
	samples [RenderedSize]float32
}

// NewRenderedTable allocates a zeroed shared table.
func NewRenderedTable() *RenderedTable {
	return &RenderedTable{}
}

// ADSR is one envelope generator instance: its own phase/gate state, but a
// shared RenderedTable.
type ADSR struct {
	Phase              float32
	GateStat           GateStatus
	ReleaseStartPhase  float32
	steps              []Step
	loopPoint          *float32
	rendered           *RenderedTable
	curFrameOutput     [FrameSize]float32
	lenSamples         float32
	phaseDeltaPerSample float32

	// StorePhaseTo, if non-nil, receives the current phase after every
	// RenderFrame call, the write-only telemetry cell the UI polls to
	// animate envelopes.
	StorePhaseTo *float32
}

// New constructs an ADSR. Call Render once after construction (or after any
// subsequent SetSteps edit) before gating it.
func New(steps []Step, loopPoint *float32, lenSamples, releaseStartPhase float32, rendered *RenderedTable) *ADSR {
	return &ADSR{
		GateStat:            Done,
		ReleaseStartPhase:   releaseStartPhase,
		steps:               steps,
		loopPoint:           loopPoint,
		rendered:            rendered,
		lenSamples:          lenSamples,
		phaseDeltaPerSample: 1.0 / lenSamples,
	}
}

// Gate starts (or restarts) the envelope from phase 0.
func (a *ADSR) Gate() {
	a.Phase = 0
	a.GateStat = Gated
}

// Ungate jumps to the release point and begins releasing.
func (a *ADSR) Ungate() {
	a.Phase = a.ReleaseStartPhase
	a.GateStat = Releasing
}

// SetLenSamples updates how many audio samples one full phase traversal
// takes and recomputes the cached per-sample phase delta.
func (a *ADSR) SetLenSamples(lenSamples float32) {
	a.lenSamples = lenSamples
	a.phaseDeltaPerSample = 1.0 / lenSamples
}

// SetLoopPoint updates the loop point (nil disables looping). The shared
// table does not need to be re-rendered; the loop point only affects phase
// advancement.
func (a *ADSR) SetLoopPoint(loopPoint *float32) {
	a.loopPoint = loopPoint
}

// SetSteps replaces the step list. Render must be called again afterwards
// to repopulate the shared rendered table.
func (a *ADSR) SetSteps(steps []Step) {
	a.steps = steps
}

// CurFrameOutput returns the buffer RenderFrame most recently filled. Valid
// for exactly one frame — the caller must not read it again until after
// the next RenderFrame call.
func (a *ADSR) CurFrameOutput() *[FrameSize]float32 {
	return &a.curFrameOutput
}

// Render repopulates the shared RenderedSize-sample table from the current
// step list. Only needs to be called once for all ADSR instances that
// share this table, and must be called again after any step edit.
func (a *ADSR) Render() {
	buf := &a.rendered.samples

	var prevStep *Step
	nextIx := 0
	var nextStep *Step
	if len(a.steps) > 0 {
		nextStep = &a.steps[0]
	}

	for i := 0; i < RenderedSize; i++ {
		phase := float32(i) / float32(RenderedSize)

		for nextStep != nil && nextStep.X < phase {
			nextIx++
			prevStep = nextStep
			if nextIx < len(a.steps) {
				nextStep = &a.steps[nextIx]
			} else {
				nextStep = nil
			}
		}

		if nextStep == nil {
			if prevStep != nil {
				buf[i] = prevStep.Y
			} else {
				buf[i] = 0
			}
			continue
		}

		prev := prevStep
		if prev == nil {
			prev = &defaultFirstStep
		}
		buf[i] = computePos(prev, nextStep, phase)
	}
}

func computePos(prev, next *Step, phase float32) float32 {
	switch r := next.Ramper.(type) {
	case Instant:
		return prev.Y
	case Linear:
		yDiff := next.Y - prev.Y
		distance := next.X - prev.X
		pctComplete := (phase - prev.X) / distance
		return prev.Y + pctComplete*yDiff
	case Exponential:
		yDiff := next.Y - prev.Y
		distance := next.X - prev.X
		x := (phase - prev.X) / distance
		return prev.Y + fastmath.Pow(x, r.Exponent)*yDiff
	default:
		panic("adsr: unknown ramper type")
	}
}

// advancePhase advances phase by one sample's worth and evaluates the
// gate-crossing rewrap/clamp. Transitioning out
// of Gated into GatedFrozen (or Releasing into Done) is handled by
// RenderFrame, not here.
func (a *ADSR) advancePhase() {
	a.Phase += a.phaseDeltaPerSample
	if a.Phase > 1 {
		a.Phase = 1
	}

	if a.GateStat == Gated && a.Phase >= a.ReleaseStartPhase {
		if a.loopPoint != nil {
			loopStart := *a.loopPoint
			overflow := a.Phase - a.ReleaseStartPhase
			loopSize := a.ReleaseStartPhase - loopStart
			a.Phase = loopStart + truncf(overflow/loopSize)
		} else {
			a.Phase = a.ReleaseStartPhase
		}
	}
}

func truncf(v float32) float32 {
	if v < 0 {
		return -float32(int32(-v))
	}
	return float32(int32(v))
}

// getSample advances state by one sample and returns the interpolated
// envelope value for the resulting phase.
func (a *ADSR) getSample() float32 {
	a.advancePhase()

	readIx := a.Phase * float32(RenderedSize-2)
	return readInterpolated(&a.rendered.samples, readIx)
}

// readInterpolated linearly interpolates the rendered table at a
// non-negative fractional sample index.5's
// `read_interpolated(rendered, phase*(N-2))` call.
func readInterpolated(buf *[RenderedSize]float32, idx float32) float32 {
	baseIx := int(idx)
	frac := idx - float32(baseIx)
	nextIx := baseIx + 1
	if nextIx >= RenderedSize {
		nextIx = RenderedSize - 1
	}
	return buf[baseIx]*(1-frac) + buf[nextIx]*frac
}

func (a *ADSR) maybeStorePhase() {
	if a.StorePhaseTo != nil {
		*a.StorePhaseTo = a.Phase
	}
}

// RenderFrame populates CurFrameOutput with FrameSize samples for the
// current audio callback, first checking the frozen states (GatedFrozen
// and Done).
func (a *ADSR) RenderFrame() {
	switch a.GateStat {
	case Gated:
		if a.loopPoint == nil && a.Phase >= a.ReleaseStartPhase {
			frozen := a.getSample()
			for i := range a.curFrameOutput {
				a.curFrameOutput[i] = frozen
			}
			a.GateStat = GatedFrozen
			a.maybeStorePhase()
			return
		}
	case Releasing:
		if a.Phase >= 1 {
			last := a.rendered.samples[RenderedSize-1]
			for i := range a.curFrameOutput {
				a.curFrameOutput[i] = last
			}
			a.GateStat = Done
			a.maybeStorePhase()
			return
		}
	case GatedFrozen, Done:
		a.maybeStorePhase()
		return
	}

	for i := range a.curFrameOutput {
		a.curFrameOutput[i] = a.getSample()
	}
	a.maybeStorePhase()
}
