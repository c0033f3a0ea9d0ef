package cmd

import (
	"bytes"
	"errors"
	"fmt"
	"log/slog"

	"github.com/MeKo-Tech/iris/assets"
	"github.com/MeKo-Tech/iris/internal/iris"
	"github.com/MeKo-Tech/iris/internal/show"
	"github.com/spf13/viper"
)

// loadSession builds a session from the configured cues. Without a "cues" list the
// built-in show is loaded.
func loadSession(v *viper.Viper, log *slog.Logger) (*iris.Session, error) {
	specs, err := show.Load(v, "cues")
	if err != nil {
		return nil, err
	}
	if len(specs) == 0 {
		if specs, err = defaultShow(); err != nil {
			return nil, err
		}
	}

	session := iris.NewSession(log)
	if err := show.Populate(session, specs, log); err != nil {
		return nil, err
	}
	return session, nil
}

func defaultShow() ([]show.CueSpec, error) {
	v := viper.New()
	v.SetConfigType("yaml")
	if err := v.ReadConfig(bytes.NewReader(assets.DefaultShow)); err != nil {
		return nil, fmt.Errorf("failed to read built-in show: %w", err)
	}
	return show.Load(v, "cues")
}

// launch activates the cue called name, or the first cue when name is empty.
func launch(session *iris.Session, name string) error {
	if name != "" {
		return session.LaunchByName(name)
	}
	if session.NumCues() == 0 {
		return errors.New("no cues configured")
	}
	session.LaunchCue(0)
	return nil
}

// activeSession loads the session and launches the cue selected with --cue.
func activeSession() (*iris.Session, error) {
	if logger == nil {
		initLogging()
	}

	session, err := loadSession(viper.GetViper(), logger)
	if err != nil {
		return nil, fmt.Errorf("failed to load cues: %w", err)
	}
	if err := launch(session, viper.GetString("cue")); err != nil {
		return nil, err
	}
	return session, nil
}
