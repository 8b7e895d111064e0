package sprite

import (
	"encoding/json"
	"image"
)

// Version is the format tag the engine expects in every sprite document.
const Version = "Neoarc's Sprite v2.0"

// Document is the .sprite metadata file.
type Document struct {
	Frames          []Frame     `json:"Frames"`
	NamedAnimations []Animation `json:"NamedAnimations"`
	SubPositions    string      `json:"SubPositions"`
	Version         string      `json:"Version"`
}

// Frame is one sheet rectangle with its pivot.
type Frame struct {
	Rect         string          `json:"Rect"`
	Offset       string          `json:"Offset"`
	SubPositions json.RawMessage `json:"SubPositions,omitempty"`
	WingStyle    json.RawMessage `json:"WingStyle,omitempty"`
}

// Animation names a run of frame indices.
type Animation struct {
	Name   string `json:"Name"`
	Frames string `json:"Frames"`
	Delay  int    `json:"Delay"`
}

// Carried holds the frame fields kept from a previous document when a
// group is not regenerated. Empty fields were absent.
type Carried struct {
	Offset       string
	SubPositions json.RawMessage
	WingStyle    json.RawMessage
}

// Record is one sprite flowing into layout and export.
type Record struct {
	Animation string
	Name      string
	Image     *image.NRGBA

	// OriginalSize is the frame size before trimming.
	OriginalSize image.Point
	// TrimOffset is the (left, top) pixel count removed by trimming.
	TrimOffset image.Point
	RecoverX   bool
	RecoverY   bool
	// AnimOffset is the group offset in doubled (full-resolution) units.
	AnimOffset [2]float64

	// Carried is set for frames reused from a previous run.
	Carried *Carried
}

// Size is the placed (trimmed and padded) sprite size.
func (r *Record) Size() image.Point {
	return r.Image.Bounds().Size()
}

// Group is an animation's slice of the global frame list.
type Group struct {
	Name   string
	Frames []int
	Delay  int
}
