package config

import (
	"bytes"
	"encoding/json"
	"image/color"
	"strconv"
	"strings"

	"github.com/lucasb-eyer/go-colorful"
	"github.com/pkg/errors"
)

// ErrBadColor is returned for a color value that is neither a hex string
// nor a 3 or 4 element array.
var ErrBadColor = errors.New("config: unsupported color value")

// ParseColor decodes a JSON color: "#RRGGBB", "#RRGGBBAA" (the # is
// optional), [r,g,b] or [r,g,b,a]. Missing alpha means opaque. JSON null
// means no color and returns nil.
func ParseColor(raw json.RawMessage) (*color.NRGBA, error) {
	trimmed := bytes.TrimSpace(raw)
	if len(trimmed) == 0 || string(trimmed) == "null" {
		return nil, nil
	}

	var s string
	if err := json.Unmarshal(trimmed, &s); err == nil {
		c, err := parseHex(s)
		if err != nil {
			return nil, err
		}
		return &c, nil
	}

	var parts []float64
	if err := json.Unmarshal(trimmed, &parts); err == nil {
		switch len(parts) {
		case 3:
			return &color.NRGBA{R: channel(parts[0]), G: channel(parts[1]), B: channel(parts[2]), A: 255}, nil
		case 4:
			return &color.NRGBA{R: channel(parts[0]), G: channel(parts[1]), B: channel(parts[2]), A: channel(parts[3])}, nil
		}
	}

	return nil, errors.Wrapf(ErrBadColor, "%s", trimmed)
}

func parseHex(value string) (color.NRGBA, error) {
	hex := strings.TrimPrefix(strings.TrimSpace(value), "#")
	if len(hex) != 6 && len(hex) != 8 {
		return color.NRGBA{}, errors.Wrapf(ErrBadColor, "%q", value)
	}

	c, err := colorful.Hex("#" + hex[:6])
	if err != nil {
		return color.NRGBA{}, errors.Wrapf(ErrBadColor, "%q", value)
	}
	r, g, b := c.RGB255()

	a := uint64(255)
	if len(hex) == 8 {
		a, err = strconv.ParseUint(hex[6:], 16, 8)
		if err != nil {
			return color.NRGBA{}, errors.Wrapf(ErrBadColor, "%q", value)
		}
	}
	return color.NRGBA{R: r, G: g, B: b, A: uint8(a)}, nil
}

func channel(v float64) uint8 {
	switch {
	case v < 0:
		return 0
	case v > 255:
		return 255
	}
	return uint8(v)
}

func isAuto(raw json.RawMessage) bool {
	var s string
	if err := json.Unmarshal(raw, &s); err != nil {
		return false
	}
	return strings.EqualFold(strings.TrimSpace(s), "auto")
}
