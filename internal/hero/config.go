// Package hero drives the drifting-blob background behind the landing page.
// The engine is independent of the browser: it draws through a Surface,
// is woken by a Scheduler and receives viewport and visibility changes
// through explicit method calls, so the same loop runs in the wasm
// frontend and in the server's poster renderer.
package hero

import (
	"fmt"
	"time"
)

// Color is a straight (non premultiplied) RGBA color with a fractional alpha,
// mirroring CSS rgba() notation.
type Color struct {
	R, G, B uint8
	A       float64
}

// CSS renders the color as a CSS rgba() string.
func (c Color) CSS() string {
	return fmt.Sprintf("rgba(%d,%d,%d,%g)", c.R, c.G, c.B, c.A)
}

// Transparent returns the same hue with zero alpha.
func (c Color) Transparent() Color {
	c.A = 0
	return c
}

// BaseColor is the opaque cream the surface is cleared to every frame.
var BaseColor = Color{R: 0xfc, G: 0xf7, B: 0xf0, A: 1}

// Palette holds the blob colors.
var Palette = []Color{
	{R: 198, G: 161, B: 91, A: 0.35},
	{R: 196, G: 138, B: 60, A: 0.30},
	{R: 106, G: 74, B: 58, A: 0.25},
	{R: 235, G: 201, B: 156, A: 0.40},
	{R: 47, G: 75, B: 60, A: 0.20},
}

// Config tunes the loop. The zero value is not usable; start from
// DefaultConfig.
type Config struct {
	BlobCount      int           // blobs per generation
	FPS            int           // frame cap
	Speed          float64       // velocity components are drawn from [-Speed/2, Speed/2)
	Margin         float64       // distance past an edge before a blob wraps
	MinRadius      float64       // smallest blob radius
	RadiusSpread   float64       // radius is MinRadius + U[0,1)*RadiusSpread
	ResizeDebounce time.Duration // quiet period before a resize regenerates blobs
	// VisibilityThreshold is the fraction of the hero region that must be
	// on screen for the loop to keep animating. Consumed by the host's
	// visibility observer.
	VisibilityThreshold float64
	BaseColor           Color
	Palette             []Color
}

// DefaultConfig returns the production tuning.
func DefaultConfig() Config {
	return Config{
		BlobCount:           3,
		FPS:                 24,
		Speed:               0.08,
		Margin:              300,
		MinRadius:           200,
		RadiusSpread:        180,
		ResizeDebounce:      150 * time.Millisecond,
		VisibilityThreshold: 0.1,
		BaseColor:           BaseColor,
		Palette:             Palette,
	}
}

// FrameTime is the minimum spacing between executed ticks.
func (c Config) FrameTime() time.Duration {
	if c.FPS <= 0 {
		return 0
	}
	return time.Second / time.Duration(c.FPS)
}
