// telemetry.go - thin logging wrapper around the host's SAB polling loop

package telemetry

import "log"

// Logger is the minimal surface this package needs from the standard
// log.Logger, so callers can swap in a test double without pulling in the
// whole standard type.
type Logger interface {
	Printf(format string, v ...any)
}

// Reporter periodically formats a MultibandCompressor's SAB snapshot for
// a Logger. It does not own the SAB's backing array — the caller samples
// it and passes a copy in, avoiding any synchronization between the audio
// thread and whatever goroutine calls Report.
type Reporter struct {
	log   Logger
	every int
	n     int
}

// NewReporter builds a Reporter that logs one line every `every` calls to
// Report (0 or 1 logs every call).
func NewReporter(logger Logger, every int) *Reporter {
	if logger == nil {
		logger = log.Default()
	}
	if every < 1 {
		every = 1
	}
	return &Reporter{log: logger, every: every}
}

// Report logs the given SAB snapshot if this call lands on the reporting
// interval.
func (r *Reporter) Report(sab [16]float32) {
	r.n++
	if r.n%r.every != 0 {
		return
	}
	r.log.Printf("band levels(dB) lo=%.1f mid=%.1f hi=%.1f gain lo=%.2f mid=%.2f hi=%.2f",
		sab[0], sab[1], sab[2], sab[9], sab[10], sab[11])
}
