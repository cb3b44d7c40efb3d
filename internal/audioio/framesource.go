// framesource.go - adapts 128-sample frames to the Player's single-sample pull model

package audioio

import "sync"

// FrameSource buffers whole frames pushed by the host's processing loop
// and serves them one sample at a time to a Player's pull callback. It is
// the only synchronized type in this package: the processing loop and the
// backend's audio callback run on different goroutines (oto's Player.Read
// is called from oto's own internal goroutine), unlike the DSP core
// itself, which is single-threaded by construction.
type FrameSource struct {
	mu     sync.Mutex
	frames [][]float32
	cur    []float32
	curIx  int
}

// NewFrameSource creates an empty FrameSource.
func NewFrameSource() *FrameSource {
	return &FrameSource{}
}

// Push enqueues a copy of frame for later playback.
func (fs *FrameSource) Push(frame []float32) {
	cp := make([]float32, len(frame))
	copy(cp, frame)

	fs.mu.Lock()
	fs.frames = append(fs.frames, cp)
	fs.mu.Unlock()
}

// ReadSample implements Source. Underflow (no frame queued) returns
// silence rather than blocking, matching the original's behavior of never
// stalling the audio callback.
func (fs *FrameSource) ReadSample() float32 {
	fs.mu.Lock()
	defer fs.mu.Unlock()

	for fs.curIx >= len(fs.cur) {
		if len(fs.frames) == 0 {
			return 0
		}
		fs.cur = fs.frames[0]
		fs.frames = fs.frames[1:]
		fs.curIx = 0
	}

	s := fs.cur[fs.curIx]
	fs.curIx++
	return s
}

// QueuedFrames reports how many whole frames are buffered, for a host
// that wants to throttle how far ahead of playback it renders.
func (fs *FrameSource) QueuedFrames() int {
	fs.mu.Lock()
	defer fs.mu.Unlock()
	return len(fs.frames)
}

var _ Source = (*FrameSource)(nil)
