// Package show reads cue descriptors from configuration and loads them into a session.
//
// A descriptor starts from a preset and overrides individual fields:
//
//	cues:
//	  - name: sunrise
//	    preset: default
//	    ramp: linear-hsl-wrap
//	    ramp_ratio: 0.3
//	    duration_ms: 4000
//	    start_color: "#ffcc00"
//	    end_color: "#ff3399"
//	    disabled_channels: [0, 6]
package show

import (
	"errors"
	"fmt"
	"log/slog"
	"math"
	"strings"

	"github.com/MeKo-Tech/iris/internal/cue"
	"github.com/MeKo-Tech/iris/internal/iris"
	"github.com/MeKo-Tech/iris/internal/ratio"
	"github.com/MeKo-Tech/iris/internal/rgb"
	"github.com/spf13/viper"
)

// ErrInvalidCue is wrapped by every validation error returned from this package.
var ErrInvalidCue = errors.New("invalid cue")

// CueSpec is one entry of the "cues" list. Nil fields keep the preset's value.
type CueSpec struct {
	Name             string       `mapstructure:"name"`
	Preset           string       `mapstructure:"preset"`
	Reverse          *bool        `mapstructure:"reverse"`
	TimeDivisor      *int         `mapstructure:"time_divisor"`
	DurationMS       *int         `mapstructure:"duration_ms"`
	Ramp             cue.RampType `mapstructure:"ramp"`
	RampRatio        *float64     `mapstructure:"ramp_ratio"`
	StartColor       *rgb.Color   `mapstructure:"start_color"`
	EndColor         *rgb.Color   `mapstructure:"end_color"`
	DisabledChannels []int        `mapstructure:"disabled_channels"`
}

// Load decodes the list stored under key. A missing key yields an empty list.
func Load(v *viper.Viper, key string) ([]CueSpec, error) {
	var specs []CueSpec
	if !v.IsSet(key) {
		return specs, nil
	}
	if err := v.UnmarshalKey(key, &specs, viper.DecodeHook(DecodeHook())); err != nil {
		return nil, fmt.Errorf("failed to decode %q: %w", key, err)
	}
	return specs, nil
}

// Build validates the descriptor and returns the cue it describes.
func (s CueSpec) Build() (*cue.Cue, error) {
	preset := s.Preset
	if preset == "" {
		preset = "default"
	}
	c, ok := cue.Preset(preset)
	if !ok {
		return nil, fmt.Errorf("%w %q: unknown preset %q (expected one of %s)",
			ErrInvalidCue, s.Name, preset, strings.Join(cue.PresetNames, ", "))
	}

	if s.Reverse != nil {
		c.SetReverse(*s.Reverse)
	}
	if s.TimeDivisor != nil {
		if *s.TimeDivisor < 1 || *s.TimeDivisor > math.MaxUint8 {
			return nil, fmt.Errorf("%w %q: time_divisor %d out of range 1..%d", ErrInvalidCue, s.Name, *s.TimeDivisor, math.MaxUint8)
		}
		c.SetTimeDivisor(uint8(*s.TimeDivisor))
	}
	if s.DurationMS != nil {
		if *s.DurationMS < 1 || *s.DurationMS > math.MaxUint16 {
			return nil, fmt.Errorf("%w %q: duration_ms %d out of range 1..%d", ErrInvalidCue, s.Name, *s.DurationMS, math.MaxUint16)
		}
		c.SetDurationMS(uint16(*s.DurationMS))
	}
	if s.Ramp != nil {
		c.SetRampType(s.Ramp)
	}
	if s.RampRatio != nil {
		r := *s.RampRatio
		if math.IsNaN(r) || r < 0 || r > 1 {
			return nil, fmt.Errorf("%w %q: ramp_ratio %v out of range 0..1", ErrInvalidCue, s.Name, r)
		}
		c.SetRampRatio(ratio.FromFloat(r))
	}
	if s.StartColor != nil {
		c.SetStartColor(*s.StartColor)
	}
	if s.EndColor != nil {
		c.SetEndColor(*s.EndColor)
	}
	for _, ch := range s.DisabledChannels {
		if ch < 0 || ch >= cue.Channels {
			return nil, fmt.Errorf("%w %q: disabled channel %d out of range 0..%d", ErrInvalidCue, s.Name, ch, cue.Channels-1)
		}
		c.SetChannel(ch, false)
	}

	return c, nil
}

// Populate builds every descriptor and adds the cues to session in order. Nothing is
// added unless all descriptors are valid.
func Populate(session *iris.Session, specs []CueSpec, logger *slog.Logger) error {
	if logger == nil {
		logger = slog.Default()
	}

	seen := make(map[string]bool, len(specs))
	cues := make([]*cue.Cue, 0, len(specs))
	for i, spec := range specs {
		if spec.Name == "" {
			return fmt.Errorf("%w: entry %d has no name", ErrInvalidCue, i)
		}
		if seen[spec.Name] {
			return fmt.Errorf("%w: duplicate name %q", ErrInvalidCue, spec.Name)
		}
		seen[spec.Name] = true

		c, err := spec.Build()
		if err != nil {
			return err
		}
		cues = append(cues, c)
	}

	for i, c := range cues {
		session.AddNamedCue(specs[i].Name, c)
	}
	logger.Debug("Loaded cues from configuration", "count", len(cues))
	return nil
}
