package render

import (
	"image"

	"github.com/disintegration/gift"
)

// Glow blurs the LED layer into a soft halo. strength scales the halo's alpha
// and is clamped to [0,1]. A non-positive sigma yields nil.
func Glow(leds *image.NRGBA, sigma float32, strength float64) *image.NRGBA {
	if sigma <= 0 || strength <= 0 {
		return nil
	}
	if strength > 1 {
		strength = 1
	}

	g := gift.New(gift.GaussianBlur(sigma))
	dst := image.NewNRGBA(g.Bounds(leds.Bounds()))
	g.Draw(dst, leds)

	for i := 3; i < len(dst.Pix); i += 4 {
		dst.Pix[i] = uint8(float64(dst.Pix[i]) * strength)
	}
	return dst
}
