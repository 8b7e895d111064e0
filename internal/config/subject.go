package config

import (
	"encoding/json"
	"image/color"

	"sprite-rips-packer/internal/postprocess"

	"github.com/pkg/errors"
)

// Subject defaults.
const (
	DefaultResizePercent = 100
	DefaultBackground    = "#00FF00"
	DefaultThreshold     = 100
)

// Subject holds the resolved per-subject processing settings.
type Subject struct {
	ResizePercent float64
	// Background is nil when no background color is configured.
	Background *color.NRGBA
	// AutoBackground detects the background color per frame.
	AutoBackground   bool
	Threshold        float64
	RemoveBackground bool
	CropSprites      bool
	ReduceFileSize   bool
	// SheetWidth and SheetHeight force the sheet size when non-zero.
	SheetWidth  int
	SheetHeight int

	DespeckleRatio float64
	ExportWebP     bool
}

type subjectFile struct {
	ResizeToPercent  *float64        `json:"resize_to_percent"`
	BackgroundColor  json.RawMessage `json:"background_color"`
	ColorThreshold   *float64        `json:"color_threshold"`
	RemoveBackground *bool           `json:"remove_background"`
	CropSprites      *bool           `json:"crop_sprites"`
	ReduceFileSize   *bool           `json:"reduce_file_size"`
	Sheet            struct {
		Width  *int `json:"width"`
		Height *int `json:"height"`
	} `json:"sheet"`
	DespeckleRatio *float64 `json:"despeckle_ratio"`
	ExportWebP     *bool    `json:"export_webp"`
}

// LoadSubject reads a subject config.json. Missing fields, or a missing or
// empty file, take the documented defaults.
func LoadSubject(path string) (Subject, error) {
	var raw subjectFile
	if _, err := readJSON(path, &raw); err != nil {
		return Subject{}, err
	}
	s, err := raw.resolve()
	if err != nil {
		return Subject{}, errors.Wrapf(err, "config: %s", path)
	}
	return s, nil
}

func (f subjectFile) resolve() (Subject, error) {
	s := Subject{
		ResizePercent:    orFloat(f.ResizeToPercent, DefaultResizePercent),
		Threshold:        orFloat(f.ColorThreshold, DefaultThreshold),
		RemoveBackground: orBool(f.RemoveBackground, true),
		CropSprites:      orBool(f.CropSprites, true),
		ReduceFileSize:   orBool(f.ReduceFileSize, false),
		DespeckleRatio:   orFloat(f.DespeckleRatio, 0),
		ExportWebP:       orBool(f.ExportWebP, false),
	}
	if f.Sheet.Width != nil {
		s.SheetWidth = *f.Sheet.Width
	}
	if f.Sheet.Height != nil {
		s.SheetHeight = *f.Sheet.Height
	}

	if s.ResizePercent <= 0 {
		return Subject{}, errors.Wrapf(postprocess.ErrBadResize, "config: got %v", s.ResizePercent)
	}
	if s.Threshold < 0 {
		return Subject{}, errors.Errorf("color_threshold must not be negative, got %v", s.Threshold)
	}
	if s.SheetWidth < 0 || s.SheetHeight < 0 {
		return Subject{}, errors.Errorf("sheet size must not be negative, got %dx%d", s.SheetWidth, s.SheetHeight)
	}

	bg := f.BackgroundColor
	if bg == nil {
		bg = json.RawMessage(`"` + DefaultBackground + `"`)
	}
	if isAuto(bg) {
		s.AutoBackground = true
		return s, nil
	}
	c, err := ParseColor(bg)
	if err != nil {
		return Subject{}, err
	}
	s.Background = c
	return s, nil
}

func orFloat(v *float64, def float64) float64 {
	if v == nil {
		return def
	}
	return *v
}

func orBool(v *bool, def bool) bool {
	if v == nil {
		return def
	}
	return *v
}
