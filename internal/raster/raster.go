package raster

import (
	"image"
	"image/color"
	"math"

	"github.com/MeKo-Tech/iris/internal/cue"
	"github.com/MeKo-Tech/iris/internal/rgb"
	"golang.org/x/image/vector"
)

// circleSegments is the number of polygon edges used to approximate a circle.
const circleSegments = 64

// Renderer draws the LED ring of a switch onto a square canvas.
// Channel 0 sits at twelve o'clock and channels advance clockwise.
type Renderer struct {
	size       int
	ringRadius float64 // distance of LED centers from the canvas center
	ledRadius  float64
	rimWidth   float64
	rimColor   color.NRGBA
}

// NewRenderer creates a renderer for a size x size canvas.
func NewRenderer(size int) *Renderer {
	s := float64(size)
	return &Renderer{
		size:       size,
		ringRadius: s * 0.36,
		ledRadius:  s * 0.065,
		rimWidth:   math.Max(1, s*0.02),
		rimColor:   color.NRGBA{R: 48, G: 48, B: 52, A: 255},
	}
}

// Size returns the edge length of the canvas in pixels.
func (r *Renderer) Size() int {
	return r.size
}

// LEDRadius returns the radius of a single LED disc in pixels.
func (r *Renderer) LEDRadius() float64 {
	return r.ledRadius
}

// LEDCenter returns the pixel center of the given channel.
func (r *Renderer) LEDCenter(channel int) (float64, float64) {
	c := float64(r.size) / 2
	angle := 2 * math.Pi * float64(channel) / cue.Channels
	return c + r.ringRadius*math.Sin(angle), c - r.ringRadius*math.Cos(angle)
}

// RenderLEDs draws one opaque disc per channel in the frame's colors on a
// transparent canvas.
func (r *Renderer) RenderLEDs(frame [cue.Channels]rgb.Color) *image.NRGBA {
	dst := image.NewNRGBA(image.Rect(0, 0, r.size, r.size))
	for ch, col := range frame {
		x, y := r.LEDCenter(ch)
		r.fillCircle(dst, x, y, r.ledRadius, col.NRGBA())
	}
	return dst
}

// RenderRim draws the switch housing: an annulus that runs through the LEDs.
func (r *Renderer) RenderRim() *image.NRGBA {
	dst := image.NewNRGBA(image.Rect(0, 0, r.size, r.size))
	c := float64(r.size) / 2
	outer := r.ringRadius + r.ledRadius + r.rimWidth
	inner := r.ringRadius - r.ledRadius - r.rimWidth

	ras := vector.NewRasterizer(r.size, r.size)
	addCircle(ras, c, c, outer, false)
	// The inner path winds the other way and cancels the outer coverage.
	addCircle(ras, c, c, inner, true)
	ras.Draw(dst, dst.Bounds(), image.NewUniform(r.rimColor), image.Point{})
	return dst
}

func (r *Renderer) fillCircle(dst *image.NRGBA, cx, cy, radius float64, col color.NRGBA) {
	if radius <= 0 {
		return
	}
	ras := vector.NewRasterizer(r.size, r.size)
	addCircle(ras, cx, cy, radius, false)
	ras.Draw(dst, dst.Bounds(), image.NewUniform(col), image.Point{})
}

func addCircle(ras *vector.Rasterizer, cx, cy, radius float64, reverse bool) {
	for i := 0; i <= circleSegments; i++ {
		step := i
		if reverse {
			step = circleSegments - i
		}
		angle := 2 * math.Pi * float64(step) / circleSegments
		x := float32(cx + radius*math.Cos(angle))
		y := float32(cy + radius*math.Sin(angle))
		if i == 0 {
			ras.MoveTo(x, y)
		} else {
			ras.LineTo(x, y)
		}
	}
	ras.ClosePath()
}
