package scrub

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/MeKo-Tech/iris/internal/cue"
	"github.com/MeKo-Tech/iris/internal/iris"
	"github.com/gdamore/tcell/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newScreen(t *testing.T) tcell.SimulationScreen {
	t.Helper()
	screen := tcell.NewSimulationScreen("UTF-8")
	require.NoError(t, screen.Init())
	screen.SetSize(80, 25)
	t.Cleanup(screen.Fini)
	return screen
}

func rowText(screen tcell.SimulationScreen, y int) string {
	cells, w, _ := screen.GetContents()
	var b strings.Builder
	for x := 0; x < w; x++ {
		runes := cells[y*w+x].Runes
		if len(runes) == 0 {
			b.WriteRune(' ')
			continue
		}
		b.WriteRune(runes[0])
	}
	return strings.TrimRight(b.String(), " ")
}

func key(k tcell.Key) *tcell.EventKey {
	return tcell.NewEventKey(k, 0, tcell.ModNone)
}

func runeKey(r rune) *tcell.EventKey {
	return tcell.NewEventKey(tcell.KeyRune, r, tcell.ModNone)
}

func TestTimeAndStepKeys(t *testing.T) {
	v := New(newScreen(t), iris.NewSession(nil), nil)
	assert.Equal(t, uint32(10), v.Step())

	v.HandleKey(key(tcell.KeyRight))
	v.HandleKey(key(tcell.KeyRight))
	assert.Equal(t, uint32(20), v.TimeMS())

	v.HandleKey(key(tcell.KeyUp))
	assert.Equal(t, uint32(50), v.Step())
	v.HandleKey(key(tcell.KeyLeft))
	assert.Equal(t, uint32(0), v.TimeMS(), "time saturates at zero")

	for i := 0; i < 10; i++ {
		v.HandleKey(key(tcell.KeyUp))
	}
	assert.Equal(t, Steps[len(Steps)-1], v.Step())
	for i := 0; i < 10; i++ {
		v.HandleKey(key(tcell.KeyDown))
	}
	assert.Equal(t, Steps[0], v.Step())

	v.SetTimeMS(999)
	v.HandleKey(key(tcell.KeyHome))
	assert.Equal(t, uint32(0), v.TimeMS())
}

func TestQuitKeys(t *testing.T) {
	v := New(newScreen(t), iris.NewSession(nil), nil)

	assert.True(t, v.HandleKey(runeKey('q')))
	assert.True(t, v.HandleKey(key(tcell.KeyEscape)))
	assert.True(t, v.HandleKey(key(tcell.KeyCtrlC)))
	assert.False(t, v.HandleKey(runeKey('x')))
}

func TestReverseAndNextCue(t *testing.T) {
	session := iris.NewSession(nil)
	v := New(newScreen(t), session, nil)

	// Without cues neither key does anything.
	v.HandleKey(runeKey('r'))
	v.HandleKey(runeKey('n'))
	_, ok := session.CurrentCueID()
	assert.False(t, ok)

	session.AddNamedCue("a", cue.Default())
	session.AddNamedCue("b", cue.Rainbow())

	v.HandleKey(runeKey('n'))
	id, _ := session.CurrentCueID()
	assert.Equal(t, 0, id)

	v.HandleKey(runeKey('r'))
	assert.True(t, session.Reverse())

	v.HandleKey(runeKey('n'))
	v.HandleKey(runeKey('n'))
	id, _ = session.CurrentCueID()
	assert.Equal(t, 0, id, "cue selection wraps around")
}

func TestDraw(t *testing.T) {
	screen := newScreen(t)
	session := iris.NewSession(nil)
	session.LaunchCue(session.AddNamedCue("bw", cue.BlackWhiteJump()))

	v := New(screen, session, nil)
	v.SetTimeMS(1234)
	v.Draw()

	assert.Equal(t, `iris scrub  cue 1/1 "bw"`, rowText(screen, 0))
	assert.Contains(t, rowText(screen, 1), "t=1234ms")
	assert.Contains(t, rowText(screen, 1), "ramp=jump")

	frame := cue.BlackWhiteJump().Frame(1234)
	for ch, col := range frame {
		assert.Contains(t, rowText(screen, 6+ch), col.Hex(), "channel %d", ch)
	}
	assert.Contains(t, rowText(screen, 4), "   0    1    2")
}

func TestDrawWithoutCue(t *testing.T) {
	screen := newScreen(t)
	v := New(screen, iris.NewSession(nil), nil)
	v.Draw()

	assert.Equal(t, "iris scrub  no active cue", rowText(screen, 0))
	assert.Contains(t, rowText(screen, 6), "#000000")
}

func TestRunQuitsOnKey(t *testing.T) {
	screen := newScreen(t)
	v := New(screen, iris.NewSession(nil), nil)

	screen.InjectKey(tcell.KeyRight, 0, tcell.ModNone)
	screen.InjectKey(tcell.KeyRune, 'q', tcell.ModNone)

	require.NoError(t, v.Run(context.Background()))
	assert.Equal(t, uint32(10), v.TimeMS())
}

func TestRunStopsOnCancel(t *testing.T) {
	screen := newScreen(t)
	v := New(screen, iris.NewSession(nil), nil)

	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()

	err := v.Run(ctx)
	require.ErrorIs(t, err, context.DeadlineExceeded)
}
