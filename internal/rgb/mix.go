package rgb

import (
	"math"

	"github.com/MeKo-Tech/iris/internal/ratio"
	"github.com/lucasb-eyer/go-colorful"
)

// Interpolate moves from start towards end by factor. A factor of ratio.Zero yields
// start and ratio.Max yields exactly end, since the scale is divided by 255 rather
// than 256.
func Interpolate(start, end uint8, factor ratio.Ratio) uint8 {
	// We work with unsigned integers, so keep the delta positive and remember the
	// direction.
	rising := start < end
	var delta uint8
	if rising {
		delta = end - start
	} else {
		delta = start - end
	}

	// delta*bits <= 255*255 fits in a uint16, and dividing by 255 brings it back to
	// at most delta.
	scaled := uint8(uint16(delta) * uint16(factor.Bits()) / math.MaxUint8)

	if rising {
		return start + scaled
	}
	return start - scaled
}

// LinearMixRGB interpolates every component of c towards other independently.
func (c Color) LinearMixRGB(other Color, factor ratio.Ratio) Color {
	return Color{
		R: Interpolate(c.R, other.R, factor),
		G: Interpolate(c.G, other.G, factor),
		B: Interpolate(c.B, other.B, factor),
	}
}

// LinearMixHSL converts both colors to HSL, interpolates hue, saturation and
// lightness, and converts the result back.
//
// With wrapHue the hue travels across the 0°/360° seam instead of staying inside
// [0,360): yellow to pink passes through red rather than green, cyan and blue.
func (c Color) LinearMixHSL(other Color, factor ratio.Ratio, wrapHue bool) Color {
	switch factor {
	case ratio.Zero:
		return c
	case ratio.Max:
		return other
	}

	h1, s1, l1 := c.HSL()
	h2, s2, l2 := other.HSL()
	t := float64(factor.Bits()) / math.MaxUint8

	if wrapHue {
		switch {
		case h2 > h1:
			h2 -= 360
		case h2 < h1:
			h2 += 360
		}
	}

	h := math.Mod(lerp(h1, h2, t), 360)
	if h < 0 {
		h += 360
	}

	return fromColorful(colorful.Hsl(h, lerp(s1, s2, t), lerp(l1, l2, t)))
}

func lerp(a, b, t float64) float64 {
	return a + (b-a)*t
}
