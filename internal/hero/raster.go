package hero

import (
	"image"
	"image/color"
	"image/png"
	"io"
	"math"

	"github.com/fogleman/gg"
)

// Raster is an opaque in-memory Surface backed by a gg drawing context. The
// server uses it to render poster frames for clients that cannot run the
// animation.
type Raster struct {
	img *image.RGBA
	dc  *gg.Context
}

func NewRaster() *Raster {
	r := &Raster{}
	r.Resize(0, 0)
	return r
}

func (r *Raster) Resize(width, height int) {
	width, height = max(width, 0), max(height, 0)
	r.img = image.NewRGBA(image.Rect(0, 0, width, height))
	r.dc = nil
	if width > 0 && height > 0 {
		r.dc = gg.NewContextForRGBA(r.img)
	}
}

func (r *Raster) FillRect(x, y, w, h float64, c Color) {
	if r.dc == nil || w <= 0 || h <= 0 {
		return
	}
	r.dc.SetColor(c.nrgba())
	r.dc.DrawRectangle(x, y, w, h)
	r.dc.Fill()
}

// FillRadialGradient paints a disc fading linearly from c at the center to
// fully transparent at radius.
func (r *Raster) FillRadialGradient(cx, cy, radius float64, c Color) {
	if r.dc == nil || radius <= 0 {
		return
	}
	grad := gg.NewRadialGradient(cx, cy, 0, cx, cy, radius)
	grad.AddColorStop(0, c.nrgba())
	grad.AddColorStop(1, c.Transparent().nrgba())

	r.dc.SetFillStyle(grad)
	r.dc.DrawCircle(cx, cy, radius)
	r.dc.Fill()
}

// Image exposes the backing image. It is replaced on every Resize.
func (r *Raster) Image() *image.RGBA { return r.img }

func (r *Raster) EncodePNG(w io.Writer) error {
	if r.dc == nil {
		return png.Encode(w, r.img)
	}
	return r.dc.EncodePNG(w)
}

func (c Color) nrgba() color.NRGBA {
	a := math.Round(math.Max(0, math.Min(1, c.A)) * 0xff)
	return color.NRGBA{R: c.R, G: c.G, B: c.B, A: uint8(a)}
}
