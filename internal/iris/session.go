// Package iris owns a collection of cues and the one currently playing on the ring.
//
// A Session is the state shared by every entry point of a host (CLI, wasm binding).
// All methods take the session lock, so a field edit can never be observed halfway
// through by a concurrent CurrentColor call.
package iris

import (
	"errors"
	"fmt"
	"log/slog"
	"slices"
	"sync"

	"github.com/MeKo-Tech/iris/internal/cue"
	"github.com/MeKo-Tech/iris/internal/ratio"
	"github.com/MeKo-Tech/iris/internal/rgb"
)

var (
	// ErrNoActiveCue is the panic value when a setter is called with no cue launched.
	ErrNoActiveCue = errors.New("iris: no active cue")
	// ErrUnknownCue is wrapped into the panic value for out-of-range cue ids.
	ErrUnknownCue = errors.New("iris: unknown cue id")
)

type entry struct {
	name string
	cue  *cue.Cue
}

// Session holds cues and the active selection.
type Session struct {
	mu     sync.Mutex
	cues   []*entry
	active *entry
	logger *slog.Logger
}

// NewSession returns an empty session. logger may be nil.
func NewSession(logger *slog.Logger) *Session {
	return &Session{logger: logger}
}

// AddCue appends a white breathing cue and returns its id.
func (s *Session) AddCue() int {
	return s.AddNamedCue("", cue.WhiteBreathing())
}

// AddNamedCue appends c under name and returns its id. The session takes ownership
// of c; callers must not modify it afterwards.
func (s *Session) AddNamedCue(name string, c *cue.Cue) int {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.cues = append(s.cues, &entry{name: name, cue: c})
	id := len(s.cues) - 1
	s.log().Debug("Cue added", "id", id, "name", name, "cue", c.String())
	return id
}

// DeleteCue removes the cue with the given id. Deleting the active cue clears the
// active selection. Later ids shift down by one.
func (s *Session) DeleteCue(id int) {
	s.mu.Lock()
	defer s.mu.Unlock()

	e := s.entryLocked(id)
	if e == s.active {
		s.active = nil
	}
	s.cues = slices.Delete(s.cues, id, id+1)
	s.log().Debug("Cue deleted", "id", id, "name", e.name)
}

// LaunchCue makes the cue with the given id the active one.
func (s *Session) LaunchCue(id int) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.active = s.entryLocked(id)
	s.log().Debug("Cue launched", "id", id, "name", s.active.name)
}

// LaunchByName activates the first cue called name.
func (s *Session) LaunchByName(name string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for id, e := range s.cues {
		if e.name == name {
			s.active = e
			s.log().Debug("Cue launched", "id", id, "name", name)
			return nil
		}
	}
	return fmt.Errorf("%w: no cue named %q", ErrUnknownCue, name)
}

// Stop clears the active selection; the ring goes dark.
func (s *Session) Stop() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.active = nil
}

func (s *Session) NumCues() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.cues)
}

// Names returns the cue names in id order.
func (s *Session) Names() []string {
	s.mu.Lock()
	defer s.mu.Unlock()

	names := make([]string, len(s.cues))
	for i, e := range s.cues {
		names[i] = e.name
	}
	return names
}

// CurrentCueID returns the id of the active cue, if any.
func (s *Session) CurrentCueID() (int, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.active == nil {
		return 0, false
	}
	for id, e := range s.cues {
		if e == s.active {
			return id, true
		}
	}
	// The active entry is always part of cues; DeleteCue clears it otherwise.
	panic("iris: active cue missing from session")
}

// NumChannels returns the number of LEDs on the ring.
func (s *Session) NumChannels() int {
	return cue.Channels
}

// CurrentColor returns the color of LED channel at timeMS, or black when no cue is
// active.
func (s *Session) CurrentColor(timeMS uint32, channel uint8) rgb.Color {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.active == nil {
		return rgb.Black()
	}
	return s.active.cue.CurrentColor(timeMS, channel)
}

// Progress returns the active cue's progress for LED channel at timeMS, or zero when
// no cue is active.
func (s *Session) Progress(timeMS uint32, channel uint8) ratio.Ratio {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.active == nil {
		return ratio.Zero
	}
	return s.active.cue.Progress(timeMS, channel)
}

// Frame returns the color of every LED at timeMS with disabled channels off. All
// LEDs are black when no cue is active.
func (s *Session) Frame(timeMS uint32) [cue.Channels]rgb.Color {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.active == nil {
		return [cue.Channels]rgb.Color{}
	}
	return s.active.cue.Frame(timeMS)
}

// Snapshot returns a copy of the active cue that can be evaluated without holding
// the session lock, e.g. by a pool of render workers.
func (s *Session) Snapshot() (*cue.Cue, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.active == nil {
		return nil, false
	}
	return s.active.cue.Clone(), true
}

// Cue returns a copy of the cue with the given id.
func (s *Session) Cue(id int) *cue.Cue {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.entryLocked(id).cue.Clone()
}

func (s *Session) entryLocked(id int) *entry {
	if id < 0 || id >= len(s.cues) {
		panic(fmt.Errorf("%w: %d (have %d)", ErrUnknownCue, id, len(s.cues)))
	}
	return s.cues[id]
}

func (s *Session) log() *slog.Logger {
	if s.logger != nil {
		return s.logger
	}
	return slog.Default()
}
