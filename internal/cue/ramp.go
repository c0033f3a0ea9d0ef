package cue

import (
	"errors"
	"fmt"
	"strings"
)

// ErrUnknownRampType is returned when a ramp type name cannot be parsed.
var ErrUnknownRampType = errors.New("unknown ramp type")

// RampType selects the algorithm used to transition between the start and end color.
// The set of implementations is closed: Jump, LinearRGB and LinearHSL.
type RampType interface {
	fmt.Stringer
	isRampType()
}

// Jump cuts hard from the start to the end color without interpolating.
type Jump struct{}

// LinearRGB interpolates R, G and B independently. Some color pairs pass through
// muddy intermediate colors.
type LinearRGB struct{}

// LinearHSL interpolates hue, saturation and lightness. Intermediate colors stay
// saturated but the hue may sweep through additional colors.
type LinearHSL struct {
	// WrapHue makes the hue cross the 0°/360° seam, e.g. yellow to pink via red
	// instead of via green, cyan and blue.
	WrapHue bool
}

func (Jump) isRampType()      {}
func (LinearRGB) isRampType() {}
func (LinearHSL) isRampType() {}

func (Jump) String() string      { return "jump" }
func (LinearRGB) String() string { return "linear-rgb" }

func (r LinearHSL) String() string {
	if r.WrapHue {
		return "linear-hsl-wrap"
	}
	return "linear-hsl"
}

// RampTypeNames lists every name accepted by ParseRampType.
var RampTypeNames = []string{"jump", "linear-rgb", "linear-hsl", "linear-hsl-wrap"}

// ParseRampType parses the names produced by RampType.String. Matching is
// case-insensitive.
func ParseRampType(name string) (RampType, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "jump":
		return Jump{}, nil
	case "linear-rgb":
		return LinearRGB{}, nil
	case "linear-hsl":
		return LinearHSL{}, nil
	case "linear-hsl-wrap":
		return LinearHSL{WrapHue: true}, nil
	default:
		return nil, fmt.Errorf("%w %q (expected one of %s)", ErrUnknownRampType, name, strings.Join(RampTypeNames, ", "))
	}
}
