//go:build headless

// player_headless.go - no-op audio output for headless/CI builds

package audioio

// OtoPlayer is a no-op stand-in used when built with -tags headless, so
// the demo host and its tests run without a real audio device.
type OtoPlayer struct {
	started bool
	source  Source
}

func NewOtoPlayer(sampleRate int) (*OtoPlayer, error) {
	return &OtoPlayer{}, nil
}

func (op *OtoPlayer) SetupPlayer(src Source) {
	op.source = src
}

func (op *OtoPlayer) Start() { op.started = true }
func (op *OtoPlayer) Stop()  { op.started = false }
func (op *OtoPlayer) Close() { op.started = false }

func (op *OtoPlayer) IsStarted() bool { return op.started }

var _ Player = (*OtoPlayer)(nil)
