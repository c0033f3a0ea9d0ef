package assets

import _ "embed"

// DefaultShow is the cue list used when no configuration provides one.
//
//go:embed cues.yaml
var DefaultShow []byte
