// Package rgb implements the 8-bit RGB color used for every LED on the ring, along with
// HSL conversion, the mixing primitives used by cues, and the #rrggbb hex codec.
package rgb

import (
	"fmt"
	"image/color"
	"math"

	"github.com/lucasb-eyer/go-colorful"
)

// Color is an RGB triple. It is a plain value and safe to copy.
type Color struct {
	R uint8
	G uint8
	B uint8
}

// New returns the color with the given components.
func New(r, g, b uint8) Color {
	return Color{R: r, G: g, B: b}
}

// Black is the "off" color.
func Black() Color {
	return Color{}
}

// White has every component at full intensity.
func White() Color {
	return Color{R: 255, G: 255, B: 255}
}

// FromHSL converts a hue in degrees (0..360) and saturation/lightness in percent
// (0..100) to RGB, rounding each component to the nearest 8-bit value.
// Out-of-range saturation and lightness are clamped to 100.
func FromHSL(hue uint16, saturation, lightness uint8) Color {
	h := math.Mod(float64(hue), 360)
	s := math.Min(float64(saturation), 100) / 100
	l := math.Min(float64(lightness), 100) / 100
	return fromColorful(colorful.Hsl(h, s, l))
}

// HSL returns the hue in degrees [0,360) and saturation/lightness in [0,1].
func (c Color) HSL() (h, s, l float64) {
	return c.colorful().Hsl()
}

// NRGBA returns the opaque image/color equivalent.
func (c Color) NRGBA() color.NRGBA {
	return color.NRGBA{R: c.R, G: c.G, B: c.B, A: 255}
}

// RGBA implements color.Color.
func (c Color) RGBA() (r, g, b, a uint32) {
	return c.NRGBA().RGBA()
}

// Array returns the components in R, G, B order.
func (c Color) Array() [3]uint8 {
	return [3]uint8{c.R, c.G, c.B}
}

func (c Color) String() string {
	return fmt.Sprintf("rgb(%d,%d,%d)", c.R, c.G, c.B)
}

func (c Color) colorful() colorful.Color {
	return colorful.Color{
		R: float64(c.R) / 255,
		G: float64(c.G) / 255,
		B: float64(c.B) / 255,
	}
}

func fromColorful(c colorful.Color) Color {
	r, g, b := c.Clamped().RGB255()
	return Color{R: r, G: g, B: b}
}
