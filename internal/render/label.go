package render

import (
	"fmt"
	"image"
	"image/color"

	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/math/fixed"
)

const labelMargin = 4

// Label draws text in the bottom left corner of a transparent size x size canvas.
func Label(size int, fg color.Color, text string) *image.NRGBA {
	img := image.NewNRGBA(image.Rect(0, 0, size, size))

	face := basicfont.Face7x13
	metrics := face.Metrics()

	d := &font.Drawer{
		Dst:  img,
		Src:  &image.Uniform{fg},
		Face: face,
		Dot:  fixed.P(labelMargin, size-labelMargin-metrics.Descent.Ceil()),
	}
	d.DrawString(text)

	return img
}

// TimeLabel formats the animation time and its position within the cycle.
func TimeLabel(timeMS uint32, durationMS uint16) string {
	if durationMS == 0 {
		return fmt.Sprintf("t=%dms", timeMS)
	}
	return fmt.Sprintf("t=%dms (%d/%d)", timeMS, timeMS%uint32(durationMS), durationMS)
}
