// dashboard.go - terminal SAB telemetry dashboard
//
// Grounded on the host's terminal_host.go raw-mode lifecycle: take over
// the terminal on Start, restore it unconditionally on Stop, drive
// everything from a single background goroutine guarded by a stop
// channel.

package dashboard

import (
	"fmt"
	"os"
	"sync"
	"time"

	"golang.org/x/term"
)

// Dashboard renders a MultibandCompressor's SAB telemetry to the
// terminal at a fixed refresh rate, in raw mode so it can redraw in
// place rather than scrolling.
type Dashboard struct {
	sampler func() [16]float32

	fd           int
	oldTermState *term.State
	rawModeSet   bool

	stopCh  chan struct{}
	done    chan struct{}
	stopped sync.Once

	interval time.Duration
}

// New builds a Dashboard that polls sampler at the given refresh
// interval. sampler must be cheap and non-blocking — it is expected to
// read a MultibandCompressor's SAB() snapshot.
func New(sampler func() [16]float32, interval time.Duration) *Dashboard {
	if interval <= 0 {
		interval = 100 * time.Millisecond
	}
	return &Dashboard{
		sampler:  sampler,
		stopCh:   make(chan struct{}),
		done:     make(chan struct{}),
		interval: interval,
	}
}

// Start puts stdout's terminal into raw mode (so redraws don't scroll)
// and begins rendering in a goroutine. If stdout isn't a terminal, it
// falls back to plain line-by-line printing.
func (d *Dashboard) Start() {
	d.fd = int(os.Stdout.Fd())

	if term.IsTerminal(d.fd) {
		oldState, err := term.MakeRaw(d.fd)
		if err == nil {
			d.oldTermState = oldState
			d.rawModeSet = true
		}
	}

	go func() {
		defer close(d.done)
		ticker := time.NewTicker(d.interval)
		defer ticker.Stop()

		for {
			select {
			case <-d.stopCh:
				return
			case <-ticker.C:
				d.render(d.sampler())
			}
		}
	}()
}

// Stop terminates the render goroutine and restores the terminal.
func (d *Dashboard) Stop() {
	d.stopped.Do(func() {
		close(d.stopCh)
	})
	<-d.done
	if d.rawModeSet {
		_ = term.Restore(d.fd, d.oldTermState)
		d.rawModeSet = false
	}
}

func (d *Dashboard) render(sab [16]float32) {
	line := fmt.Sprintf(
		"\rlow %6.1fdB  mid %6.1fdB  high %6.1fdB  | gain lo %4.2f mid %4.2f hi %4.2f",
		sab[0], sab[1], sab[2], sab[9], sab[10], sab[11],
	)
	if d.rawModeSet {
		fmt.Fprint(os.Stdout, line)
	} else {
		fmt.Fprintln(os.Stdout, line)
	}
}
