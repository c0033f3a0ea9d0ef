package render

import (
	"image"
	"image/color"
	"math"

	"github.com/MeKo-Tech/iris/internal/composite"
	"github.com/aquilax/go-perlin"
)

// textureSwing is how far, in 8-bit steps, full-strength noise moves a component.
const textureSwing = 48

// Texture returns a size x size base of color c with a brushed diffuser look. Each
// pixel is shifted by seeded Perlin noise scaled by strength (clamped to [0,1]), so a
// seed always yields the same texture. A non-positive strength gives a flat fill.
func Texture(size int, c color.NRGBA, seed int64, strength float64) *image.NRGBA {
	if strength <= 0 {
		return composite.Fill(size, c)
	}
	if strength > 1 {
		strength = 1
	}

	p := perlin.NewPerlin(2.0, 2.0, 3, seed)
	scale := math.Max(1, float64(size)/4)

	img := image.NewNRGBA(image.Rect(0, 0, size, size))
	for y := 0; y < size; y++ {
		for x := 0; x < size; x++ {
			// Noise2D is roughly in [-1,1].
			shift := p.Noise2D(float64(x)/scale, float64(y)/scale) * strength * textureSwing
			img.SetNRGBA(x, y, color.NRGBA{
				R: shade(c.R, shift),
				G: shade(c.G, shift),
				B: shade(c.B, shift),
				A: c.A,
			})
		}
	}
	return img
}

func shade(v uint8, shift float64) uint8 {
	return uint8(math.Max(0, math.Min(255, math.Round(float64(v)+shift))))
}
