package iris

import (
	"sync"
	"testing"

	"github.com/MeKo-Tech/iris/internal/cue"
	"github.com/MeKo-Tech/iris/internal/ratio"
	"github.com/MeKo-Tech/iris/internal/rgb"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSessionLifecycle(t *testing.T) {
	s := NewSession(nil)
	assert.Equal(t, 0, s.NumCues())
	_, ok := s.CurrentCueID()
	assert.False(t, ok)

	first := s.AddCue()
	second := s.AddNamedCue("rainbow", cue.Rainbow())
	assert.Equal(t, 0, first)
	assert.Equal(t, 1, second)
	assert.Equal(t, 2, s.NumCues())
	assert.Equal(t, []string{"", "rainbow"}, s.Names())

	s.LaunchCue(second)
	id, ok := s.CurrentCueID()
	require.True(t, ok)
	assert.Equal(t, second, id)

	// Deleting a cue before the active one shifts its id.
	s.DeleteCue(first)
	id, ok = s.CurrentCueID()
	require.True(t, ok)
	assert.Equal(t, 0, id)

	// Deleting the active cue clears the selection.
	s.DeleteCue(0)
	_, ok = s.CurrentCueID()
	assert.False(t, ok)
	assert.Equal(t, 0, s.NumCues())
}

func TestSessionDeleteReleasesEntry(t *testing.T) {
	s := NewSession(nil)
	s.AddNamedCue("a", cue.Default())
	s.AddNamedCue("b", cue.Rainbow())
	s.AddNamedCue("c", cue.WhiteBreathing())

	backing := s.cues[:cap(s.cues)]
	s.DeleteCue(0)

	assert.Equal(t, []string{"b", "c"}, s.Names())
	assert.Nil(t, backing[2], "the vacated slot does not keep the deleted cue alive")
}

func TestSessionLaunchByName(t *testing.T) {
	s := NewSession(nil)
	s.AddNamedCue("a", cue.Default())
	s.AddNamedCue("b", cue.BlackWhiteJump())

	require.NoError(t, s.LaunchByName("b"))
	id, _ := s.CurrentCueID()
	assert.Equal(t, 1, id)

	err := s.LaunchByName("missing")
	require.ErrorIs(t, err, ErrUnknownCue)
	id, _ = s.CurrentCueID()
	assert.Equal(t, 1, id, "failed launch keeps the previous selection")

	s.Stop()
	_, ok := s.CurrentCueID()
	assert.False(t, ok)
}

func TestSessionUnknownIDPanics(t *testing.T) {
	s := NewSession(nil)
	s.AddCue()

	assert.PanicsWithError(t, "iris: unknown cue id: 1 (have 1)", func() { s.LaunchCue(1) })
	assert.PanicsWithError(t, "iris: unknown cue id: -1 (have 1)", func() { s.DeleteCue(-1) })
}

func TestSessionCurrentColor(t *testing.T) {
	s := NewSession(nil)
	assert.Equal(t, rgb.Black(), s.CurrentColor(500, 3), "no active cue is off")
	assert.Equal(t, ratio.Zero, s.Progress(500, 3))

	c := cue.BlackWhiteJump()
	want := c.CurrentColor(500, 3)
	wantProgress := c.Progress(500, 3)

	assert.Equal(t, [cue.Channels]rgb.Color{}, s.Frame(500))

	s.LaunchCue(s.AddNamedCue("bw", c))
	assert.Equal(t, want, s.CurrentColor(500, 3))
	assert.Equal(t, c.Frame(500), s.Frame(500))
	assert.Equal(t, wantProgress, s.Progress(500, 3))
	assert.Equal(t, 12, s.NumChannels())
}

func TestSessionGettersWithoutActiveCueReturnDefaults(t *testing.T) {
	s := NewSession(nil)
	d := cue.Default()

	for ch := 0; ch < cue.Channels; ch++ {
		assert.True(t, s.Channel(ch))
	}
	assert.Equal(t, d.Reverse(), s.Reverse())
	assert.Equal(t, d.TimeDivisor(), s.TimeDivisor())
	assert.Equal(t, d.DurationMS(), s.DurationMS())
	assert.Equal(t, d.RampType(), s.RampType())
	assert.Equal(t, d.RampRatio().Float64(), s.RampRatio())
	assert.Equal(t, rgb.Black(), s.StartColor())
	assert.Equal(t, rgb.Black(), s.EndColor())
}

func TestSessionSettersWithoutActiveCuePanic(t *testing.T) {
	s := NewSession(nil)
	s.AddCue() // present but not launched

	setters := map[string]func(){
		"channel":      func() { s.SetChannel(0, false) },
		"reverse":      func() { s.SetReverse(true) },
		"time divisor": func() { s.SetTimeDivisor(3) },
		"duration":     func() { s.SetDurationMS(10) },
		"ramp type":    func() { s.SetRampType(cue.LinearRGB{}) },
		"ramp ratio":   func() { s.SetRampRatio(0.1) },
		"start color":  func() { s.SetStartColor(rgb.White()) },
		"end color":    func() { s.SetEndColor(rgb.White()) },
	}

	for name, set := range setters {
		t.Run(name, func(t *testing.T) {
			assert.PanicsWithValue(t, ErrNoActiveCue, set)
		})
	}

	// The session is still usable after a contract violation.
	assert.Equal(t, 1, s.NumCues())
}

func TestSessionSetters(t *testing.T) {
	s := NewSession(nil)
	s.LaunchCue(s.AddNamedCue("edit", cue.Default()))

	s.SetChannel(5, false)
	s.SetReverse(true)
	s.SetTimeDivisor(6)
	s.SetDurationMS(2400)
	s.SetRampType(cue.LinearHSL{WrapHue: true})
	s.SetRampRatio(0.25)
	s.SetStartColor(rgb.MustParseHex("#7f14ff"))
	s.SetEndColor(rgb.MustParseHex("#ff6426"))

	assert.False(t, s.Channel(5))
	assert.True(t, s.Reverse())
	assert.Equal(t, uint8(6), s.TimeDivisor())
	assert.Equal(t, uint16(2400), s.DurationMS())
	assert.Equal(t, cue.LinearHSL{WrapHue: true}, s.RampType())
	assert.Equal(t, 0.25, s.RampRatio())
	assert.Equal(t, "#7f14ff", s.StartColor().Hex())
	assert.Equal(t, "#ff6426", s.EndColor().Hex())

	assert.PanicsWithValue(t, cue.ErrZeroDuration, func() { s.SetDurationMS(0) })
	assert.PanicsWithValue(t, cue.ErrZeroTimeDivisor, func() { s.SetTimeDivisor(0) })
	assert.Equal(t, uint16(2400), s.DurationMS(), "session lock is released after a panic")

	assert.Equal(t, uint16(2400), s.Cue(0).DurationMS())
	assert.PanicsWithError(t, "iris: unknown cue id: 3 (have 1)", func() { s.Cue(3) })

	snap, ok := s.Snapshot()
	require.True(t, ok)
	snap.SetDurationMS(1)
	assert.Equal(t, uint16(2400), s.DurationMS(), "snapshots are copies")
}

func TestSessionConcurrentEditAndEvaluate(t *testing.T) {
	s := NewSession(nil)
	s.LaunchCue(s.AddNamedCue("live", cue.Rainbow()))

	var wg sync.WaitGroup
	for w := 0; w < 4; w++ {
		wg.Add(2)
		go func() {
			defer wg.Done()
			for i := 0; i < 500; i++ {
				s.SetDurationMS(uint16(1000 + i))
				s.SetRampRatio(float64(i%100) / 100)
			}
		}()
		go func() {
			defer wg.Done()
			for i := 0; i < 500; i++ {
				_ = s.CurrentColor(uint32(i*7), uint8(i%cue.Channels))
			}
		}()
	}
	wg.Wait()
}
