package sprite

import (
	"bytes"
	"encoding/json"
	"os"
	"strconv"
	"strings"
)

// Previous is the lookup of reusable frame fields from the document a
// previous run wrote, keyed by animation name. Built once per run and only
// read afterwards. A nil *Previous behaves as an empty lookup.
type Previous struct {
	groups       map[string][]Carried
	subPositions string
}

type storedDocument struct {
	Frames          []storedFrame     `json:"Frames"`
	NamedAnimations []storedAnimation `json:"NamedAnimations"`
	SubPositions    json.RawMessage   `json:"SubPositions"`
}

type storedFrame struct {
	Offset       json.RawMessage `json:"Offset"`
	SubPositions json.RawMessage `json:"SubPositions"`
	WingStyle    json.RawMessage `json:"WingStyle"`
}

type storedAnimation struct {
	Name   string `json:"Name"`
	Frames string `json:"Frames"`
}

// LoadPrevious reads a sprite document written by an earlier run. A missing
// or unreadable document yields nil: callers then compute every offset fresh.
func LoadPrevious(path string) *Previous {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil
	}
	return ParsePrevious(data)
}

// ParsePrevious is LoadPrevious on in-memory JSON.
func ParsePrevious(data []byte) *Previous {
	var doc storedDocument
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil
	}

	prev := &Previous{groups: make(map[string][]Carried)}
	// A non-string SubPositions is dropped; the field is a passthrough string.
	_ = json.Unmarshal(doc.SubPositions, &prev.subPositions)

	for _, anim := range doc.NamedAnimations {
		var frames []Carried
		for _, field := range strings.Split(strings.TrimSpace(anim.Frames), ",") {
			i, err := strconv.Atoi(strings.TrimSpace(field))
			if err != nil || i < 0 || i >= len(doc.Frames) {
				continue
			}
			frames = append(frames, carriedFrom(doc.Frames[i]))
		}
		prev.groups[anim.Name] = frames
	}

	return prev
}

func carriedFrom(f storedFrame) Carried {
	var c Carried
	_ = json.Unmarshal(f.Offset, &c.Offset)
	if !falsy(f.SubPositions) {
		c.SubPositions = f.SubPositions
	}
	if !nullOrZero(f.WingStyle) {
		c.WingStyle = f.WingStyle
	}
	return c
}

// Group returns the carried frames recorded for an animation, in the order
// the previous document listed them.
func (p *Previous) Group(name string) ([]Carried, bool) {
	if p == nil {
		return nil, false
	}
	frames, ok := p.groups[name]
	return frames, ok
}

// SubPositions is the previous document's top-level SubPositions string.
func (p *Previous) SubPositions() string {
	if p == nil {
		return ""
	}
	return p.subPositions
}

func nullOrZero(raw json.RawMessage) bool {
	switch string(bytes.TrimSpace(raw)) {
	case "", "null", "0", "false":
		return true
	}
	return false
}

// falsy treats empty containers and strings like null.
func falsy(raw json.RawMessage) bool {
	if nullOrZero(raw) {
		return true
	}
	switch string(bytes.TrimSpace(raw)) {
	case `""`, "[]", "{}":
		return true
	}
	return false
}
