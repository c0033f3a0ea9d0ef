// Package scrub is an interactive terminal viewer that steps a session through
// animation time by hand. There is no clock: time only moves on key presses.
package scrub

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/MeKo-Tech/iris/internal/cue"
	"github.com/MeKo-Tech/iris/internal/iris"
	"github.com/gdamore/tcell/v2"
)

// Steps are the time increments selectable with the up and down keys.
var Steps = []uint32{1, 10, 50, 100, 250, 1000}

const helpText = "←/→ time  ↑/↓ step  home reset  r reverse  n next cue  q quit"

// Viewer draws the LED ring of a session's active cue on a terminal screen.
type Viewer struct {
	screen  tcell.Screen
	session *iris.Session
	timeMS  uint32
	stepIdx int
	logger  *slog.Logger
}

// New creates a viewer. The screen must already be initialised.
func New(screen tcell.Screen, session *iris.Session, logger *slog.Logger) *Viewer {
	return &Viewer{
		screen:  screen,
		session: session,
		stepIdx: 1,
		logger:  logger,
	}
}

// TimeMS returns the current animation time.
func (v *Viewer) TimeMS() uint32 {
	return v.timeMS
}

// SetTimeMS moves to an absolute animation time.
func (v *Viewer) SetTimeMS(t uint32) {
	v.timeMS = t
}

// Step returns the current time increment.
func (v *Viewer) Step() uint32 {
	return Steps[v.stepIdx]
}

// Run draws and handles events until the user quits or ctx is cancelled.
func (v *Viewer) Run(ctx context.Context) error {
	stop := context.AfterFunc(ctx, func() {
		_ = v.screen.PostEvent(tcell.NewEventInterrupt(nil))
	})
	defer stop()

	for {
		v.Draw()

		switch ev := v.screen.PollEvent().(type) {
		case nil:
			return nil
		case *tcell.EventInterrupt:
			return ctx.Err()
		case *tcell.EventResize:
			v.screen.Sync()
		case *tcell.EventKey:
			if v.HandleKey(ev) {
				return nil
			}
		}
	}
}

// HandleKey applies a key press and reports whether the viewer should quit.
func (v *Viewer) HandleKey(ev *tcell.EventKey) bool {
	switch ev.Key() {
	case tcell.KeyEscape, tcell.KeyCtrlC:
		return true
	case tcell.KeyRight:
		v.timeMS += v.Step()
	case tcell.KeyLeft:
		if v.timeMS < v.Step() {
			v.timeMS = 0
		} else {
			v.timeMS -= v.Step()
		}
	case tcell.KeyUp:
		if v.stepIdx < len(Steps)-1 {
			v.stepIdx++
		}
	case tcell.KeyDown:
		if v.stepIdx > 0 {
			v.stepIdx--
		}
	case tcell.KeyHome:
		v.timeMS = 0
	case tcell.KeyRune:
		switch ev.Rune() {
		case 'q':
			return true
		case 'r':
			if _, ok := v.session.CurrentCueID(); ok {
				v.session.SetReverse(!v.session.Reverse())
			}
		case 'n':
			v.nextCue()
		}
	}
	return false
}

func (v *Viewer) nextCue() {
	n := v.session.NumCues()
	if n == 0 {
		return
	}
	next := 0
	if id, ok := v.session.CurrentCueID(); ok {
		next = (id + 1) % n
	}
	v.session.LaunchCue(next)
	v.log().Debug("Switched cue", "id", next)
}

// Draw renders the current state to the screen.
func (v *Viewer) Draw() {
	v.screen.Clear()
	plain := tcell.StyleDefault
	bold := plain.Bold(true)

	title := "no active cue"
	if id, ok := v.session.CurrentCueID(); ok {
		name := v.session.Names()[id]
		if name == "" {
			name = "unnamed"
		}
		title = fmt.Sprintf("cue %d/%d %q", id+1, v.session.NumCues(), name)
	}
	v.print(0, 0, bold, "iris scrub  "+title)
	v.print(0, 1, plain, fmt.Sprintf("t=%dms  step=%dms  reverse=%t  ramp=%s  duration=%dms",
		v.timeMS, v.Step(), v.session.Reverse(), v.session.RampType(), v.session.DurationMS()))

	frame := v.session.Frame(v.timeMS)
	for ch, col := range frame {
		x := 2 + ch*5
		swatch := plain.Background(tcell.NewRGBColor(int32(col.R), int32(col.G), int32(col.B)))
		v.print(x, 3, swatch, "    ")
		v.print(x, 4, plain, fmt.Sprintf("%4d", ch))
	}

	for ch, col := range frame {
		progress := v.session.Progress(v.timeMS, uint8(ch))
		v.print(2, 6+ch, plain, fmt.Sprintf("ch %2d  %s  progress %.3f", ch, col.Hex(), progress.Float64()))
	}

	v.print(0, 7+cue.Channels, plain.Dim(true), helpText)
	v.screen.Show()
}

func (v *Viewer) print(x, y int, style tcell.Style, text string) {
	for _, r := range text {
		v.screen.SetContent(x, y, r, nil, style)
		x++
	}
}

func (v *Viewer) log() *slog.Logger {
	if v.logger != nil {
		return v.logger
	}
	return slog.Default()
}
