// Package ratio provides an 8-bit fixed-point fraction in the range [0, 1).
//
// A Ratio stores its numerator over a denominator of 256, so the largest value it can
// hold is 255/256. Conversions from floating point saturate instead of wrapping.
package ratio

import "math"

// Ratio is a fixed-point number x with 0 <= x < 1, stored as x*256.
type Ratio uint8

const (
	// Zero is the smallest representable ratio.
	Zero Ratio = 0
	// Max is the largest representable ratio (255/256). It stands in for 1.
	Max Ratio = math.MaxUint8
)

// FromBits returns the ratio with the given raw numerator.
func FromBits(bits uint8) Ratio {
	return Ratio(bits)
}

// FromFloat converts v into the nearest Ratio, with ties going to the even
// numerator, saturating at Zero and Max. NaN maps to Zero.
func FromFloat(v float64) Ratio {
	if math.IsNaN(v) || v <= 0 {
		return Zero
	}
	scaled := math.RoundToEven(v * 256)
	if scaled >= float64(Max) {
		return Max
	}
	return Ratio(scaled)
}

// Bits returns the raw numerator.
func (r Ratio) Bits() uint8 {
	return uint8(r)
}

// Float64 returns the value as a float. The result is within 1/512 of the value
// the ratio was created from, unless that value saturated.
func (r Ratio) Float64() float64 {
	return float64(r) / 256
}

// SaturatingDiv returns a/b as a Ratio. Results that would reach or exceed 1 clamp to
// Max, including division by zero.
func SaturatingDiv(a, b Ratio) Ratio {
	if b == 0 {
		return Max
	}
	q := (uint16(a) << 8) / uint16(b)
	if q > uint16(Max) {
		return Max
	}
	return Ratio(q)
}
