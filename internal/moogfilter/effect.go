// effect.go - the wavetable-effect capability interface the ladder implements

package moogfilter

// Effect is the capability interface a modulatable audio effect exposes to
// its host: per-sample and per-frame application, plus a way for the host
// to discover which of the effect's controls are modulation targets.
type Effect interface {
	Apply(params [ParamCount]float32, baseFrequency float32, sample float32) float32
	ApplyAll(params [ParamCount][FrameSize]float32, baseFrequencies *[FrameSize]float32, samples *[FrameSize]float32)
	GetParams() [ParamCount]string
}

// GetParams reports the fixed parameter ordering [cutoff, resonance,
// drive], letting a host map modulation sources onto ParamCutoff /
// ParamResonance / ParamDrive by name without hard-coding indices.
func (f *Filter) GetParams() [ParamCount]string {
	return [ParamCount]string{"cutoff", "resonance", "drive"}
}

var _ Effect = (*Filter)(nil)
