package hero

import (
	"sync"
	"time"
)

// Surface is an immediate-mode 2D drawing target sized to the viewport.
type Surface interface {
	// Resize reallocates the surface, discarding anything drawn so far.
	Resize(width, height int)
	FillRect(x, y, w, h float64, c Color)
	// FillRadialGradient fills the disc of the given radius with c at the
	// center fading linearly to fully transparent at the rim.
	FillRadialGradient(cx, cy, radius float64, c Color)
}

// FrameFunc receives the host's frame timestamp, measured from an arbitrary
// but fixed origin.
type FrameFunc func(ts time.Duration)

// Scheduler invokes a callback at the next display refresh opportunity.
// Each request fires at most once.
type Scheduler interface {
	RequestFrame(fn FrameFunc)
}

// ManualScheduler queues frame requests until Fire is called. Tests and the
// poster renderer use it to drive a loop deterministically.
type ManualScheduler struct {
	mu      sync.Mutex
	pending []FrameFunc
}

func (s *ManualScheduler) RequestFrame(fn FrameFunc) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.pending = append(s.pending, fn)
}

// Fire runs every callback requested before the call and returns how many
// ran. Requests made by those callbacks wait for the next Fire.
func (s *ManualScheduler) Fire(ts time.Duration) int {
	s.mu.Lock()
	queued := s.pending
	s.pending = nil
	s.mu.Unlock()

	for _, fn := range queued {
		fn(ts)
	}
	return len(queued)
}

// Pending reports how many callbacks are waiting.
func (s *ManualScheduler) Pending() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.pending)
}
