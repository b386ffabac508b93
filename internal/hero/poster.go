package hero

import (
	"fmt"
	"io"
	"log/slog"
	"math/rand/v2"
	"time"
)

// RenderPoster runs a private loop for the given number of frames at the
// configured frame rate and returns the resulting image. The same seed
// always yields the same picture.
func RenderPoster(cfg Config, width, height int, seed uint64, frames int) (*Raster, error) {
	raster := NewRaster()
	sched := &ManualScheduler{}
	quiet := slog.New(slog.NewTextHandler(io.Discard, nil))

	loop, err := NewLoop(raster, sched,
		WithConfig(cfg),
		WithRand(rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))),
		WithLogger(quiet),
	)
	if err != nil {
		return nil, fmt.Errorf("poster loop: %w", err)
	}
	loop.Start(width, height)

	if frames < 1 {
		frames = 1
	}
	step := cfg.FrameTime()
	for i := 0; i < frames; i++ {
		sched.Fire(step * time.Duration(i))
	}
	return raster, nil
}
