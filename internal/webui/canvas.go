//go:build js && wasm

package webui

import (
	"math"
	"syscall/js"

	"github.com/circa/reservations/internal/hero"
)

// CanvasSurface draws on an HTML canvas through an opaque 2D context.
type CanvasSurface struct {
	canvas js.Value
	ctx    js.Value
}

// NewCanvasSurface returns nil when the element yields no 2D context.
func NewCanvasSurface(canvas js.Value) *CanvasSurface {
	ctx := canvas.Call("getContext", "2d", map[string]any{"alpha": false})
	if ctx.IsNull() || ctx.IsUndefined() {
		return nil
	}
	return &CanvasSurface{canvas: canvas, ctx: ctx}
}

func (s *CanvasSurface) Resize(width, height int) {
	s.canvas.Set("width", width)
	s.canvas.Set("height", height)
}

func (s *CanvasSurface) FillRect(x, y, w, h float64, c hero.Color) {
	s.ctx.Set("fillStyle", c.CSS())
	s.ctx.Call("fillRect", x, y, w, h)
}

func (s *CanvasSurface) FillRadialGradient(cx, cy, radius float64, c hero.Color) {
	g := s.ctx.Call("createRadialGradient", cx, cy, 0, cx, cy, radius)
	g.Call("addColorStop", 0, c.CSS())
	g.Call("addColorStop", 1, c.Transparent().CSS())

	s.ctx.Set("fillStyle", g)
	s.ctx.Call("beginPath")
	s.ctx.Call("arc", cx, cy, radius, 0, 2*math.Pi)
	s.ctx.Call("fill")
}
