package iris

import (
	"github.com/MeKo-Tech/iris/internal/cue"
	"github.com/MeKo-Tech/iris/internal/ratio"
	"github.com/MeKo-Tech/iris/internal/rgb"
)

// Getters read the active cue. Without an active cue they report the values of
// cue.Default(). Setters write the active cue and panic with ErrNoActiveCue when
// there is none.

func (s *Session) Channel(num int) bool {
	var v bool
	s.read(func(c *cue.Cue) { v = c.Channel(num) })
	return v
}

func (s *Session) SetChannel(num int, enabled bool) {
	s.write(func(c *cue.Cue) { c.SetChannel(num, enabled) })
}

func (s *Session) Reverse() bool {
	var v bool
	s.read(func(c *cue.Cue) { v = c.Reverse() })
	return v
}

func (s *Session) SetReverse(reverse bool) {
	s.write(func(c *cue.Cue) { c.SetReverse(reverse) })
}

func (s *Session) TimeDivisor() uint8 {
	var v uint8
	s.read(func(c *cue.Cue) { v = c.TimeDivisor() })
	return v
}

// SetTimeDivisor panics with cue.ErrZeroTimeDivisor for zero.
func (s *Session) SetTimeDivisor(divisor uint8) {
	s.write(func(c *cue.Cue) { c.SetTimeDivisor(divisor) })
}

func (s *Session) DurationMS() uint16 {
	var v uint16
	s.read(func(c *cue.Cue) { v = c.DurationMS() })
	return v
}

// SetDurationMS panics with cue.ErrZeroDuration for zero.
func (s *Session) SetDurationMS(duration uint16) {
	s.write(func(c *cue.Cue) { c.SetDurationMS(duration) })
}

func (s *Session) RampType() cue.RampType {
	var v cue.RampType
	s.read(func(c *cue.Cue) { v = c.RampType() })
	return v
}

func (s *Session) SetRampType(rampType cue.RampType) {
	s.write(func(c *cue.Cue) { c.SetRampType(rampType) })
}

// RampRatio returns the ramp ratio as a float in [0,1).
func (s *Session) RampRatio() float64 {
	var v ratio.Ratio
	s.read(func(c *cue.Cue) { v = c.RampRatio() })
	return v.Float64()
}

// SetRampRatio saturates value into [0,1).
func (s *Session) SetRampRatio(value float64) {
	s.write(func(c *cue.Cue) { c.SetRampRatio(ratio.FromFloat(value)) })
}

func (s *Session) StartColor() rgb.Color {
	var v rgb.Color
	s.read(func(c *cue.Cue) { v = c.StartColor() })
	return v
}

func (s *Session) SetStartColor(color rgb.Color) {
	s.write(func(c *cue.Cue) { c.SetStartColor(color) })
}

func (s *Session) EndColor() rgb.Color {
	var v rgb.Color
	s.read(func(c *cue.Cue) { v = c.EndColor() })
	return v
}

func (s *Session) SetEndColor(color rgb.Color) {
	s.write(func(c *cue.Cue) { c.SetEndColor(color) })
}

func (s *Session) read(fn func(c *cue.Cue)) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.active == nil {
		fn(cue.Default())
		return
	}
	fn(s.active.cue)
}

func (s *Session) write(fn func(c *cue.Cue)) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.active == nil {
		panic(ErrNoActiveCue)
	}
	fn(s.active.cue)
}
