package cue

import (
	"fmt"
	"math"

	"github.com/MeKo-Tech/iris/internal/ratio"
	"github.com/MeKo-Tech/iris/internal/rgb"
)

// Progress returns how far the animation has advanced for LED channel at timeMS, as a
// fraction of one cycle. It panics if channel >= Channels.
//
// The result is periodic in DurationMS. LEDs k steps apart are shifted by
// k*DurationMS/TimeDivisor.
func (c *Cue) Progress(timeMS uint32, channel uint8) ratio.Ratio {
	checkChannel(int(channel))

	if c.durationMS == 0 || c.timeDivisor == 0 {
		return ratio.Zero
	}

	// In non-reverse mode, lower channels need a higher progress.
	led := uint32(channel)
	if !c.reverse {
		led = Channels - 1 - led
	}

	duration := uint32(c.durationMS)
	divisor := uint32(c.timeDivisor)

	// Adding half the divisor before dividing rounds to nearest.
	// duration*led <= 0xFFFF*11, far below 2^32.
	offset := (duration*led + divisor/2) / divisor

	// Reduce both terms first so timeMS close to 2^32 cannot overflow.
	wrapped := (timeMS%duration + offset%duration) % duration

	// wrapped <= 0xFFFE, so (0xFFFE*0xFF + 0xFFFF/2) / 0xFFFF = 0xFF at most and the
	// result always fits into the 8-bit fraction.
	fraction := (wrapped*math.MaxUint8 + duration/2) / duration
	return ratio.FromBits(uint8(fraction))
}

// MixingFactor maps progress onto a triangular envelope: it rises from 0 to 1 while
// progress goes from 0 to the ramp ratio and falls back to 0 by the end of the cycle.
// Ratio cannot represent 1, so the peak is ratio.Max.
func (c *Cue) MixingFactor(progress ratio.Ratio) ratio.Ratio {
	r := c.rampRatio
	if progress <= r {
		// progress / rampRatio
		return ratio.SaturatingDiv(progress, r)
	}
	// 1 - (progress - rampRatio) / (1 - rampRatio). progress > r implies r < Max, so
	// the divisor is never zero; saturation absorbs rounding at the end of the cycle.
	return ratio.Max - ratio.SaturatingDiv(progress-r, ratio.Max-r)
}

// CurrentColor returns the color of LED channel at timeMS. It panics if
// channel >= Channels.
func (c *Cue) CurrentColor(timeMS uint32, channel uint8) rgb.Color {
	progress := c.Progress(timeMS, channel)

	switch rt := c.rampType.(type) {
	case nil, Jump:
		return c.colorJump(progress)
	case LinearRGB:
		return c.startColor.LinearMixRGB(c.endColor, c.MixingFactor(progress))
	case LinearHSL:
		return c.startColor.LinearMixHSL(c.endColor, c.MixingFactor(progress), rt.WrapHue)
	default:
		panic(fmt.Sprintf("cue: unhandled ramp type %T", rt))
	}
}

// Frame returns the colors of all LEDs at timeMS. Disabled LEDs are black.
func (c *Cue) Frame(timeMS uint32) [Channels]rgb.Color {
	var frame [Channels]rgb.Color
	for ch := range uint8(Channels) {
		if !c.channels[ch] {
			continue
		}
		frame[ch] = c.CurrentColor(timeMS, ch)
	}
	return frame
}

func (c *Cue) colorJump(progress ratio.Ratio) rgb.Color {
	if progress < c.rampRatio {
		return c.startColor
	}
	return c.endColor
}
