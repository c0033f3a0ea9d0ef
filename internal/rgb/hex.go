package rgb

import (
	"encoding/hex"
	"errors"
	"fmt"
)

// ErrInvalidHex is returned by ParseHex for strings that are not of the form #rrggbb.
var ErrInvalidHex = errors.New("invalid hex color")

// Hex formats c as "#" followed by six lowercase hex digits in R, G, B order.
func (c Color) Hex() string {
	rgb := c.Array()
	return "#" + hex.EncodeToString(rgb[:])
}

// ParseHex parses a "#rrggbb" string. Hex digits may be upper or lower case.
func ParseHex(s string) (Color, error) {
	if len(s) != 7 {
		return Color{}, fmt.Errorf("%w %q: expected 7 characters, got %d", ErrInvalidHex, s, len(s))
	}
	if s[0] != '#' {
		return Color{}, fmt.Errorf("%w %q: missing leading '#'", ErrInvalidHex, s)
	}

	var rgb [3]byte
	if _, err := hex.Decode(rgb[:], []byte(s[1:])); err != nil {
		return Color{}, fmt.Errorf("%w %q: %v", ErrInvalidHex, s, err)
	}

	return Color{R: rgb[0], G: rgb[1], B: rgb[2]}, nil
}

// MustParseHex is like ParseHex but panics on malformed input. It is meant for
// constants in code and tests.
func MustParseHex(s string) Color {
	c, err := ParseHex(s)
	if err != nil {
		panic(err)
	}
	return c
}
