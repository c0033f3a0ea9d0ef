package show

import (
	"reflect"

	"github.com/MeKo-Tech/iris/internal/cue"
	"github.com/MeKo-Tech/iris/internal/rgb"
	"github.com/go-viper/mapstructure/v2"
)

var (
	colorType    = reflect.TypeOf(rgb.Color{})
	rampTypeType = reflect.TypeOf((*cue.RampType)(nil)).Elem()
)

// DecodeHook converts "#rrggbb" strings into rgb.Color and ramp names into
// cue.RampType while decoding configuration.
func DecodeHook() mapstructure.DecodeHookFunc {
	return mapstructure.ComposeDecodeHookFunc(
		stringToColorHookFunc(),
		stringToRampTypeHookFunc(),
	)
}

func stringToColorHookFunc() mapstructure.DecodeHookFuncType {
	return func(f reflect.Type, t reflect.Type, data any) (any, error) {
		if f.Kind() != reflect.String || t != colorType {
			return data, nil
		}
		return rgb.ParseHex(reflect.ValueOf(data).String())
	}
}

func stringToRampTypeHookFunc() mapstructure.DecodeHookFuncType {
	return func(f reflect.Type, t reflect.Type, data any) (any, error) {
		if f.Kind() != reflect.String || t != rampTypeType {
			return data, nil
		}
		return cue.ParseRampType(reflect.ValueOf(data).String())
	}
}
