package hero

import (
	"errors"
	"log/slog"
	"math/rand/v2"
	"sync"
	"time"

	"github.com/jonboulle/clockwork"
)

var (
	ErrNoSurface   = errors.New("hero: no drawing surface")
	ErrNoScheduler = errors.New("hero: no frame scheduler")
)

// Stats counts loop activity since construction.
type Stats struct {
	Frames      uint64 // ticks that updated and drew
	Skipped     uint64 // ticks dropped by the visibility gate or frame cap
	Generations uint64 // blob collections created, including the first
}

// Loop owns the blob collection and every piece of state the animation
// needs. All mutation happens under mu so a tick is either fully applied
// or fully skipped, even when a debounced resize fires concurrently.
type Loop struct {
	cfg       Config
	surface   Surface
	scheduler Scheduler
	clock     clockwork.Clock
	rng       *rand.Rand
	logger    *slog.Logger

	mu          sync.Mutex
	started     bool
	width       float64
	height      float64
	blobs       []Blob
	visible     bool
	hasFrame    bool
	lastFrame   time.Duration
	resizeTimer clockwork.Timer
	resizeSeq   uint64
	stats       Stats
}

type Option func(*Loop)

func WithConfig(cfg Config) Option { return func(l *Loop) { l.cfg = cfg } }

func WithClock(clock clockwork.Clock) Option { return func(l *Loop) { l.clock = clock } }

// WithRand injects the random source used for blob generation. Seeded
// sources make regeneration reproducible.
func WithRand(rng *rand.Rand) Option { return func(l *Loop) { l.rng = rng } }

func WithLogger(logger *slog.Logger) Option { return func(l *Loop) { l.logger = logger } }

// NewLoop builds a loop drawing to surface and woken by scheduler. A nil
// surface yields ErrNoSurface; hosts treat that as "no background" and carry
// on.
func NewLoop(surface Surface, scheduler Scheduler, opts ...Option) (*Loop, error) {
	if surface == nil {
		return nil, ErrNoSurface
	}
	if scheduler == nil {
		return nil, ErrNoScheduler
	}
	l := &Loop{
		cfg:       DefaultConfig(),
		surface:   surface,
		scheduler: scheduler,
		clock:     clockwork.NewRealClock(),
		logger:    slog.Default(),
		visible:   true,
	}
	for _, opt := range opts {
		opt(l)
	}
	if l.rng == nil {
		l.rng = rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64()))
	}
	return l, nil
}

// Start sizes the surface, creates the first generation and arms the first
// frame. Calls after the first are ignored.
func (l *Loop) Start(width, height int) {
	l.mu.Lock()
	if l.started {
		l.mu.Unlock()
		return
	}
	l.started = true
	l.regenerate(width, height)
	l.mu.Unlock()

	l.logger.Debug("hero loop started", "width", width, "height", height, "fps", l.cfg.FPS)
	l.scheduler.RequestFrame(l.Tick)
}

// Resize records a viewport change. Bursts are coalesced: the surface and
// blobs are rebuilt once, ResizeDebounce after the last call.
func (l *Loop) Resize(width, height int) {
	l.mu.Lock()
	defer l.mu.Unlock()

	if l.resizeTimer != nil {
		l.resizeTimer.Stop()
	}
	l.resizeSeq++
	seq := l.resizeSeq
	l.resizeTimer = l.clock.AfterFunc(l.cfg.ResizeDebounce, func() {
		l.mu.Lock()
		defer l.mu.Unlock()
		// A newer Resize may have raced with this timer firing.
		if seq != l.resizeSeq {
			return
		}
		l.resizeTimer = nil
		l.regenerate(width, height)
		l.logger.Debug("hero viewport resized", "width", width, "height", height)
	})
}

// SetVisible gates future ticks. It never draws.
func (l *Loop) SetVisible(visible bool) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.visible = visible
}

// Visible reports the current value of the visibility gate.
func (l *Loop) Visible() bool {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.visible
}

// Tick is the frame callback. It updates and draws when the loop is visible
// and at least one frame time has passed since the last executed tick,
// and always re-arms the next frame.
func (l *Loop) Tick(ts time.Duration) {
	l.mu.Lock()
	if !l.started {
		l.mu.Unlock()
		return
	}
	l.step(ts)
	l.mu.Unlock()

	l.scheduler.RequestFrame(l.Tick)
}

func (l *Loop) step(ts time.Duration) {
	if !l.visible || (l.hasFrame && ts-l.lastFrame < l.cfg.FrameTime()) {
		l.stats.Skipped++
		return
	}

	for i := range l.blobs {
		l.blobs[i].advance(l.width, l.height, l.cfg.Margin)
	}
	l.draw()

	l.lastFrame = ts
	l.hasFrame = true
	l.stats.Frames++
}

func (l *Loop) draw() {
	l.surface.FillRect(0, 0, l.width, l.height, l.cfg.BaseColor)
	for _, b := range l.blobs {
		l.surface.FillRadialGradient(b.X, b.Y, b.Radius, b.Color)
	}
}

// regenerate must be called with mu held.
func (l *Loop) regenerate(width, height int) {
	l.width = float64(width)
	l.height = float64(height)
	l.surface.Resize(width, height)
	l.blobs = NewBlobs(l.rng, l.cfg, l.width, l.height)
	l.stats.Generations++
}

// Blobs returns a copy of the current generation.
func (l *Loop) Blobs() []Blob {
	l.mu.Lock()
	defer l.mu.Unlock()
	out := make([]Blob, len(l.blobs))
	copy(out, l.blobs)
	return out
}

// Viewport returns the dimensions the current generation was built for.
func (l *Loop) Viewport() (width, height float64) {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.width, l.height
}

func (l *Loop) Stats() Stats {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.stats
}
