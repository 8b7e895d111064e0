package config

import (
	"path/filepath"
)

// Animation holds the resolved settings of one animation group.
type Animation struct {
	Regenerate bool
	Delay      int
	// Offset is the configured pivot shift, already doubled into
	// full-resolution units.
	Offset   [2]float64
	RecoverX bool
	RecoverY bool
}

// DefaultAnimation is used for groups without a config.json.
var DefaultAnimation = Animation{
	Regenerate: true,
	Delay:      1,
	RecoverX:   true,
	RecoverY:   true,
}

type animationFile struct {
	Regenerate *bool `json:"regenerate"`
	Delay      *int  `json:"delay"`
	Offset     struct {
		X *float64 `json:"x"`
		Y *float64 `json:"y"`
	} `json:"offset"`
	RecoverCroppedOffset struct {
		X *bool `json:"x"`
		Y *bool `json:"y"`
	} `json:"recover_cropped_offset"`
}

// AnimationConfigName is the settings file inside an animation directory.
const AnimationConfigName = "config.json"

// LoadAnimation reads <dir>/config.json. Offsets in the file are in sheet
// (half-resolution) pixels and are doubled here.
func LoadAnimation(dir string) (Animation, error) {
	var raw animationFile
	if _, err := readJSON(filepath.Join(dir, AnimationConfigName), &raw); err != nil {
		return Animation{}, err
	}

	a := DefaultAnimation
	if raw.Regenerate != nil {
		a.Regenerate = *raw.Regenerate
	}
	if raw.Delay != nil {
		a.Delay = *raw.Delay
	}
	if raw.Offset.X != nil {
		a.Offset[0] = *raw.Offset.X * 2
	}
	if raw.Offset.Y != nil {
		a.Offset[1] = *raw.Offset.Y * 2
	}
	if raw.RecoverCroppedOffset.X != nil {
		a.RecoverX = *raw.RecoverCroppedOffset.X
	}
	if raw.RecoverCroppedOffset.Y != nil {
		a.RecoverY = *raw.RecoverCroppedOffset.Y
	}
	return a, nil
}
