package hero

import "math/rand/v2"

// Blob is one soft-edged circle. Radius and Color never change after
// creation; position moves by velocity once per executed tick.
type Blob struct {
	X, Y   float64
	VX, VY float64
	Radius float64
	Color  Color
}

// NewBlobs creates a full generation of blobs scattered over a
// width x height viewport.
func NewBlobs(rng *rand.Rand, cfg Config, width, height float64) []Blob {
	blobs := make([]Blob, 0, cfg.BlobCount)
	for i := 0; i < cfg.BlobCount; i++ {
		b := Blob{
			X:      rng.Float64() * width,
			Y:      rng.Float64() * height,
			VX:     (rng.Float64() - 0.5) * cfg.Speed,
			VY:     (rng.Float64() - 0.5) * cfg.Speed,
			Radius: cfg.MinRadius + rng.Float64()*cfg.RadiusSpread,
		}
		if len(cfg.Palette) > 0 {
			b.Color = cfg.Palette[rng.IntN(len(cfg.Palette))]
		}
		blobs = append(blobs, b)
	}
	return blobs
}

// advance moves the blob one step and wraps it to the far side once it is
// more than margin outside the viewport.
func (b *Blob) advance(width, height, margin float64) {
	b.X += b.VX
	b.Y += b.VY

	if b.X < -margin {
		b.X = width + margin
	}
	if b.X > width+margin {
		b.X = -margin
	}
	if b.Y < -margin {
		b.Y = height + margin
	}
	if b.Y > height+margin {
		b.Y = -margin
	}
}
