package composite

import (
	"errors"
	"fmt"
	"image"
	"image/color"
	"math"
)

// Layer names one image in the preview stack.
type Layer string

const (
	LayerBackground Layer = "background"
	LayerRim        Layer = "rim"
	LayerGlow       Layer = "glow"
	LayerLEDs       Layer = "leds"
	LayerLabel      Layer = "label"
)

// DefaultOrder defines the bottom-to-top compositing order for preview layers.
var DefaultOrder = []Layer{
	LayerBackground,
	LayerRim,
	LayerGlow, // light spill sits under the discs
	LayerLEDs,
	LayerLabel,
}

// CompositeLayersOverBase stacks layers into a single frame over a pre-filled base.
func CompositeLayersOverBase(
	base image.Image,
	layers map[Layer]image.Image,
	order []Layer,
	size int,
) (*image.NRGBA, error) {
	if size <= 0 {
		return nil, errors.New("frame size must be positive")
	}

	expectedBounds := image.Rect(0, 0, size, size)
	dst := image.NewNRGBA(expectedBounds)

	if base != nil {
		if base.Bounds() != expectedBounds {
			return nil, fmt.Errorf("base bounds %v do not match expected %v", base.Bounds(), expectedBounds)
		}
		for y := expectedBounds.Min.Y; y < expectedBounds.Max.Y; y++ {
			for x := expectedBounds.Min.X; x < expectedBounds.Max.X; x++ {
				dst.Set(x, y, base.At(x, y))
			}
		}
	}

	if err := stack(dst, layers, order); err != nil {
		return nil, err
	}
	return dst, nil
}

// CompositeLayers stacks layers into a single frame using alpha blending.
// Layers are drawn in the provided order (or DefaultOrder when nil). Each layer must match size.
func CompositeLayers(
	layers map[Layer]image.Image,
	order []Layer,
	size int,
) (*image.NRGBA, error) {
	return CompositeLayersOverBase(nil, layers, order, size)
}

// Fill returns a size x size image of a single color, used as a base.
func Fill(size int, c color.NRGBA) *image.NRGBA {
	img := image.NewNRGBA(image.Rect(0, 0, size, size))
	for i := 0; i < len(img.Pix); i += 4 {
		img.Pix[i] = c.R
		img.Pix[i+1] = c.G
		img.Pix[i+2] = c.B
		img.Pix[i+3] = c.A
	}
	return img
}

func stack(dst *image.NRGBA, layers map[Layer]image.Image, order []Layer) error {
	if order == nil {
		order = DefaultOrder
	}

	for _, layer := range order {
		img := layers[layer]
		if img == nil {
			continue
		}

		if img.Bounds() != dst.Bounds() {
			return fmt.Errorf("layer %s bounds %v do not match expected %v", layer, img.Bounds(), dst.Bounds())
		}

		alphaOver(dst, img)
	}
	return nil
}

func alphaOver(dst *image.NRGBA, src image.Image) {
	bounds := dst.Bounds()

	for y := bounds.Min.Y; y < bounds.Max.Y; y++ {
		for x := bounds.Min.X; x < bounds.Max.X; x++ {
			s := color.NRGBAModel.Convert(src.At(x, y)).(color.NRGBA)
			if s.A == 0 {
				continue
			}

			d := dst.NRGBAAt(x, y)

			sa := float64(s.A) / 255.0
			da := float64(d.A) / 255.0

			outA := sa + da*(1.0-sa)
			if outA == 0 {
				dst.SetNRGBA(x, y, color.NRGBA{})
				continue
			}

			blend := func(srcVal, dstVal uint8) uint8 {
				srcPremult := float64(srcVal) * sa
				dstPremult := float64(dstVal) * da
				outPremult := srcPremult + dstPremult*(1.0-sa)
				return uint8(math.Round(outPremult / outA))
			}

			dst.SetNRGBA(x, y, color.NRGBA{
				R: blend(s.R, d.R),
				G: blend(s.G, d.G),
				B: blend(s.B, d.B),
				A: uint8(math.Round(outA * 255.0)),
			})
		}
	}
}
