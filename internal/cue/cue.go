// Package cue describes a cyclic two-color animation on the 12-LED ring and computes
// the color of every LED at a given millisecond.
//
// All arithmetic on the hot path is integer-only. Evaluation never mutates a Cue, so
// distinct cues may be evaluated from several goroutines at once; callers that share
// one Cue between writers and readers must serialize access themselves.
package cue

import (
	"errors"
	"fmt"

	"github.com/MeKo-Tech/iris/internal/ratio"
	"github.com/MeKo-Tech/iris/internal/rgb"
)

// Channels is the number of RGB LEDs on the ring.
const Channels = 12

var (
	// ErrChannelOutOfRange is the panic value for channel indices >= Channels.
	ErrChannelOutOfRange = errors.New("cue: channel out of range")
	// ErrZeroDuration is the panic value for a zero duration.
	ErrZeroDuration = errors.New("cue: duration must be at least 1ms")
	// ErrZeroTimeDivisor is the panic value for a zero time divisor.
	ErrZeroTimeDivisor = errors.New("cue: time divisor must be at least 1")
	// ErrNilRampType is the panic value for a nil ramp type.
	ErrNilRampType = errors.New("cue: ramp type must not be nil")
)

// Cue transitions from a start color to an end color and back, once per duration.
// Every LED runs the same animation shifted in phase.
//
// Use one of the constructors. The zero value is inert: progress is always zero and
// every LED is black.
type Cue struct {
	// channels disables individual LEDs. Only Frame takes it into account.
	channels [Channels]bool
	reverse  bool
	// timeDivisor sets after how many LEDs the pattern repeats:
	// 12 is one full rotation, 6 two moving elements, 4 three, 1 all LEDs in sync.
	timeDivisor uint8
	// u16 is enough for 65 seconds and keeps every intermediate inside 32 bits.
	durationMS uint16
	rampType   RampType
	// rampRatio is the part of the cycle spent going from start to end.
	rampRatio  ratio.Ratio
	startColor rgb.Color
	endColor   rgb.Color
}

// Default returns a cue with every LED enabled, black on black. Change at least the
// colors to make it visible.
func Default() *Cue {
	c := &Cue{
		timeDivisor: Channels,
		durationMS:  1000,
		rampType:    Jump{},
		rampRatio:   ratio.FromFloat(0.5),
		startColor:  rgb.Black(),
		endColor:    rgb.Black(),
	}
	for i := range c.channels {
		c.channels[i] = true
	}
	return c
}

// Rainbow returns a clockwise rotating rainbow.
func Rainbow() *Cue {
	c := Default()
	c.durationMS = 3000
	c.rampType = LinearHSL{WrapHue: false}
	c.rampRatio = ratio.Max
	c.startColor = rgb.FromHSL(0, 100, 50)
	c.endColor = rgb.FromHSL(359, 100, 50)
	return c
}

// BlackWhiteJump returns a clockwise rotating half white, half black ring.
func BlackWhiteJump() *Cue {
	c := Default()
	c.durationMS = 3000
	c.startColor = rgb.White()
	c.endColor = rgb.Black()
	return c
}

// WhiteBreathing returns all LEDs slowly fading between black and white in sync.
func WhiteBreathing() *Cue {
	c := Default()
	c.durationMS = 3600
	c.rampType = LinearRGB{}
	c.rampRatio = ratio.FromFloat(0.4)
	c.timeDivisor = 1
	c.startColor = rgb.Black()
	c.endColor = rgb.White()
	return c
}

// Clone returns an independent copy of c.
func (c *Cue) Clone() *Cue {
	cp := *c
	return &cp
}

// Channel reports whether LED num is enabled.
func (c *Cue) Channel(num int) bool {
	checkChannel(num)
	return c.channels[num]
}

// SetChannel enables or disables LED num.
func (c *Cue) SetChannel(num int, enabled bool) {
	checkChannel(num)
	c.channels[num] = enabled
}

// Channels returns the enable mask.
func (c *Cue) Channels() [Channels]bool {
	return c.channels
}

func (c *Cue) Reverse() bool {
	return c.reverse
}

func (c *Cue) SetReverse(reverse bool) {
	c.reverse = reverse
}

func (c *Cue) TimeDivisor() uint8 {
	return c.timeDivisor
}

// SetTimeDivisor panics if divisor is zero.
func (c *Cue) SetTimeDivisor(divisor uint8) {
	if divisor == 0 {
		panic(ErrZeroTimeDivisor)
	}
	c.timeDivisor = divisor
}

func (c *Cue) DurationMS() uint16 {
	return c.durationMS
}

// SetDurationMS panics if duration is zero.
func (c *Cue) SetDurationMS(duration uint16) {
	if duration == 0 {
		panic(ErrZeroDuration)
	}
	c.durationMS = duration
}

func (c *Cue) RampType() RampType {
	return c.rampType
}

// SetRampType panics if rampType is nil.
func (c *Cue) SetRampType(rampType RampType) {
	if rampType == nil {
		panic(ErrNilRampType)
	}
	c.rampType = rampType
}

func (c *Cue) RampRatio() ratio.Ratio {
	return c.rampRatio
}

func (c *Cue) SetRampRatio(r ratio.Ratio) {
	c.rampRatio = r
}

func (c *Cue) StartColor() rgb.Color {
	return c.startColor
}

func (c *Cue) SetStartColor(color rgb.Color) {
	c.startColor = color
}

func (c *Cue) EndColor() rgb.Color {
	return c.endColor
}

func (c *Cue) SetEndColor(color rgb.Color) {
	c.endColor = color
}

func (c *Cue) String() string {
	return fmt.Sprintf("cue{%s %s->%s ratio=%.3f duration=%dms divisor=%d reverse=%t}",
		c.rampType, c.startColor.Hex(), c.endColor.Hex(), c.rampRatio.Float64(),
		c.durationMS, c.timeDivisor, c.reverse)
}

func checkChannel(num int) {
	if num < 0 || num >= Channels {
		panic(fmt.Errorf("%w: %d", ErrChannelOutOfRange, num))
	}
}

// PresetNames lists the names accepted by Preset, in display order.
var PresetNames = []string{"default", "rainbow", "black-white-jump", "white-breathing"}

// Preset returns a new cue built by the named constructor.
func Preset(name string) (*Cue, bool) {
	switch name {
	case "default":
		return Default(), true
	case "rainbow":
		return Rainbow(), true
	case "black-white-jump":
		return BlackWhiteJump(), true
	case "white-breathing":
		return WhiteBreathing(), true
	default:
		return nil, false
	}
}
