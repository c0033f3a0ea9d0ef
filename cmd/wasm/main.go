//go:build js && wasm

// Command wasm exposes one iris session to JavaScript. Colors cross the boundary
// as "#rrggbb" strings. Failures are returned as {error: "..."} objects.
package main

import (
	"bytes"
	"errors"
	"fmt"
	"log/slog"
	"math"
	"os"
	"syscall/js"

	"github.com/MeKo-Tech/iris/assets"
	"github.com/MeKo-Tech/iris/internal/cue"
	"github.com/MeKo-Tech/iris/internal/iris"
	"github.com/MeKo-Tech/iris/internal/rgb"
	"github.com/MeKo-Tech/iris/internal/show"
	"github.com/spf13/viper"
)

var (
	logger  = slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelInfo}))
	session = iris.NewSession(logger)
)

type jsFunc func(args []js.Value) any

// export registers fn under name. Contract violations inside the engine panic;
// they are turned into error objects so the module keeps running.
func export(name string, fn jsFunc) {
	js.Global().Set(name, js.FuncOf(func(this js.Value, args []js.Value) (result any) {
		defer func() {
			if r := recover(); r != nil {
				result = errorObject(fmt.Errorf("%s: %v", name, r))
			}
		}()
		return fn(args)
	}))
}

func errorObject(err error) map[string]any {
	return map[string]any{"error": err.Error()}
}

func intArg(args []js.Value, i int, lo, hi int) (int, error) {
	if i >= len(args) || args[i].Type() != js.TypeNumber {
		return 0, fmt.Errorf("argument %d must be a number", i)
	}
	v := args[i].Int()
	if v < lo || v > hi {
		return 0, fmt.Errorf("argument %d out of range %d..%d: %d", i, lo, hi, v)
	}
	return v, nil
}

func stringArg(args []js.Value, i int) (string, error) {
	if i >= len(args) || args[i].Type() != js.TypeString {
		return "", fmt.Errorf("argument %d must be a string", i)
	}
	return args[i].String(), nil
}

func colorArg(args []js.Value, i int) (rgb.Color, error) {
	s, err := stringArg(args, i)
	if err != nil {
		return rgb.Color{}, err
	}
	return rgb.ParseHex(s)
}

func timeAndChannel(args []js.Value) (uint32, uint8, error) {
	t, err := intArg(args, 0, 0, math.MaxUint32)
	if err != nil {
		return 0, 0, err
	}
	ch, err := intArg(args, 1, 0, cue.Channels-1)
	if err != nil {
		return 0, 0, err
	}
	return uint32(t), uint8(ch), nil
}

// loadShow appends the cues of a YAML show document to the session.
func loadShow(doc []byte) error {
	v := viper.New()
	v.SetConfigType("yaml")
	if err := v.ReadConfig(bytes.NewReader(doc)); err != nil {
		return fmt.Errorf("failed to parse show: %w", err)
	}
	specs, err := show.Load(v, "cues")
	if err != nil {
		return err
	}
	return show.Populate(session, specs, logger)
}

func registerSession() {
	export("irisAddCue", func(args []js.Value) any {
		return session.AddCue()
	})
	export("irisDeleteCue", func(args []js.Value) any {
		id, err := intArg(args, 0, 0, math.MaxInt32)
		if err != nil {
			return errorObject(err)
		}
		session.DeleteCue(id)
		return nil
	})
	export("irisLaunchCue", func(args []js.Value) any {
		id, err := intArg(args, 0, 0, math.MaxInt32)
		if err != nil {
			return errorObject(err)
		}
		session.LaunchCue(id)
		return nil
	})
	export("irisLaunchCueByName", func(args []js.Value) any {
		name, err := stringArg(args, 0)
		if err != nil {
			return errorObject(err)
		}
		if err := session.LaunchByName(name); err != nil {
			return errorObject(err)
		}
		return nil
	})
	export("irisNumCues", func(args []js.Value) any {
		return session.NumCues()
	})
	export("irisCurrentCueId", func(args []js.Value) any {
		id, ok := session.CurrentCueID()
		if !ok {
			return js.Null()
		}
		return id
	})
	export("irisNumChannels", func(args []js.Value) any {
		return session.NumChannels()
	})
	export("irisCurrentColor", func(args []js.Value) any {
		t, ch, err := timeAndChannel(args)
		if err != nil {
			return errorObject(err)
		}
		return session.CurrentColor(t, ch).Hex()
	})
	export("irisProgress", func(args []js.Value) any {
		t, ch, err := timeAndChannel(args)
		if err != nil {
			return errorObject(err)
		}
		return session.Progress(t, ch).Float64()
	})
	export("irisFrame", func(args []js.Value) any {
		t, err := intArg(args, 0, 0, math.MaxUint32)
		if err != nil {
			return errorObject(err)
		}
		frame := session.Frame(uint32(t))
		out := make([]any, len(frame))
		for i, c := range frame {
			out[i] = c.Hex()
		}
		return out
	})
	export("irisLoadShow", func(args []js.Value) any {
		doc, err := stringArg(args, 0)
		if err != nil {
			return errorObject(err)
		}
		if err := loadShow([]byte(doc)); err != nil {
			return errorObject(err)
		}
		return session.NumCues()
	})
	export("irisLoadBuiltinShow", func(args []js.Value) any {
		if err := loadShow(assets.DefaultShow); err != nil {
			return errorObject(err)
		}
		return session.NumCues()
	})
}

func registerAccessors() {
	export("irisChannel", func(args []js.Value) any {
		ch, err := intArg(args, 0, 0, cue.Channels-1)
		if err != nil {
			return errorObject(err)
		}
		return session.Channel(ch)
	})
	export("irisSetChannel", func(args []js.Value) any {
		ch, err := intArg(args, 0, 0, cue.Channels-1)
		if err != nil {
			return errorObject(err)
		}
		if len(args) < 2 || args[1].Type() != js.TypeBoolean {
			return errorObject(errors.New("argument 1 must be a boolean"))
		}
		session.SetChannel(ch, args[1].Bool())
		return nil
	})
	export("irisReverse", func(args []js.Value) any {
		return session.Reverse()
	})
	export("irisSetReverse", func(args []js.Value) any {
		if len(args) < 1 || args[0].Type() != js.TypeBoolean {
			return errorObject(errors.New("argument 0 must be a boolean"))
		}
		session.SetReverse(args[0].Bool())
		return nil
	})
	export("irisTimeDivisor", func(args []js.Value) any {
		return int(session.TimeDivisor())
	})
	export("irisSetTimeDivisor", func(args []js.Value) any {
		d, err := intArg(args, 0, 1, math.MaxUint8)
		if err != nil {
			return errorObject(err)
		}
		session.SetTimeDivisor(uint8(d))
		return nil
	})
	export("irisDurationMs", func(args []js.Value) any {
		return int(session.DurationMS())
	})
	export("irisSetDurationMs", func(args []js.Value) any {
		d, err := intArg(args, 0, 1, math.MaxUint16)
		if err != nil {
			return errorObject(err)
		}
		session.SetDurationMS(uint16(d))
		return nil
	})
	export("irisRampType", func(args []js.Value) any {
		return session.RampType().String()
	})
	export("irisSetRampType", func(args []js.Value) any {
		name, err := stringArg(args, 0)
		if err != nil {
			return errorObject(err)
		}
		rt, err := cue.ParseRampType(name)
		if err != nil {
			return errorObject(err)
		}
		session.SetRampType(rt)
		return nil
	})
	export("irisRampRatio", func(args []js.Value) any {
		return session.RampRatio()
	})
	export("irisSetRampRatio", func(args []js.Value) any {
		if len(args) < 1 || args[0].Type() != js.TypeNumber {
			return errorObject(errors.New("argument 0 must be a number"))
		}
		session.SetRampRatio(args[0].Float())
		return nil
	})
	export("irisStartColor", func(args []js.Value) any {
		return session.StartColor().Hex()
	})
	export("irisSetStartColor", func(args []js.Value) any {
		c, err := colorArg(args, 0)
		if err != nil {
			return errorObject(err)
		}
		session.SetStartColor(c)
		return nil
	})
	export("irisEndColor", func(args []js.Value) any {
		return session.EndColor().Hex()
	})
	export("irisSetEndColor", func(args []js.Value) any {
		c, err := colorArg(args, 0)
		if err != nil {
			return errorObject(err)
		}
		session.SetEndColor(c)
		return nil
	})
}

func main() {
	registerSession()
	registerAccessors()

	logger.Info("iris WASM module loaded")
	select {}
}
