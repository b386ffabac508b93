package hero

import (
	"bytes"
	"image/color"
	"image/png"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRaster_FillRectIsOpaque(t *testing.T) {
	r := NewRaster()
	r.Resize(4, 3)
	r.FillRect(0, 0, 4, 3, BaseColor)

	for y := 0; y < 3; y++ {
		for x := 0; x < 4; x++ {
			assert.Equal(t, color.RGBA{R: 0xfc, G: 0xf7, B: 0xf0, A: 0xff}, r.Image().RGBAAt(x, y))
		}
	}
}

func TestRaster_GradientFadesToRim(t *testing.T) {
	r := NewRaster()
	r.Resize(101, 101)
	r.FillRect(0, 0, 101, 101, Color{A: 1})
	r.FillRadialGradient(50.5, 50.5, 40, Color{R: 200, A: 0.5})

	center := r.Image().RGBAAt(50, 50)
	assert.InDelta(t, 100, int(center.R), 2, "half alpha at the center")
	assert.Equal(t, uint8(0xff), center.A)

	mid := r.Image().RGBAAt(70, 50)
	assert.Less(t, mid.R, center.R)
	assert.Greater(t, mid.R, uint8(0))

	outside := r.Image().RGBAAt(95, 50)
	assert.Equal(t, uint8(0), outside.R)
}

func TestRaster_GradientClipsToBounds(t *testing.T) {
	r := NewRaster()
	r.Resize(10, 10)
	assert.NotPanics(t, func() {
		r.FillRadialGradient(-300, 1000, 380, Palette[0])
		r.FillRadialGradient(5, 5, 0, Palette[0])
	})
}

func TestRaster_ResizeClears(t *testing.T) {
	r := NewRaster()
	r.Resize(2, 2)
	r.FillRect(0, 0, 2, 2, BaseColor)
	r.Resize(3, 1)

	assert.Equal(t, 3, r.Image().Bounds().Dx())
	assert.Equal(t, color.RGBA{}, r.Image().RGBAAt(0, 0))
}

func TestRaster_EmptyIgnoresDrawing(t *testing.T) {
	r := NewRaster()
	assert.NotPanics(t, func() {
		r.FillRect(0, 0, 10, 10, BaseColor)
		r.FillRadialGradient(5, 5, 5, Palette[0])
	})
	assert.True(t, r.Image().Bounds().Empty())
}

func TestRenderPoster_Deterministic(t *testing.T) {
	a, err := RenderPoster(DefaultConfig(), 64, 48, 99, 3)
	require.NoError(t, err)
	b, err := RenderPoster(DefaultConfig(), 64, 48, 99, 3)
	require.NoError(t, err)
	assert.Equal(t, a.Image().Pix, b.Image().Pix)

	var buf bytes.Buffer
	require.NoError(t, a.EncodePNG(&buf))
	img, err := png.Decode(&buf)
	require.NoError(t, err)
	assert.Equal(t, 64, img.Bounds().Dx())
	assert.Equal(t, 48, img.Bounds().Dy())
}

func TestColor_CSS(t *testing.T) {
	assert.Equal(t, "rgba(198,161,91,0.35)", Palette[0].CSS())
	assert.Equal(t, "rgba(198,161,91,0)", Palette[0].Transparent().CSS())
}
