package sprite

import (
	"fmt"
	"image"
	"math"
	"strconv"
	"strings"
)

const epsilon = 1e-9

// RoundHalfUp is floor(v + 0.5).
func RoundHalfUp(v float64) int {
	return int(math.Floor(v + 0.5))
}

// RoundAwayFromZero rounds any fractional part outward, ignoring float noise
// below epsilon.
func RoundAwayFromZero(v float64) int {
	switch {
	case v > 0:
		return int(math.Ceil(v - epsilon))
	case v < 0:
		return int(math.Floor(v + epsilon))
	}
	return 0
}

// Export builds the sprite document for records placed at positions on a
// full-resolution canvas, scaled to the half-resolution canvas.
func Export(records []Record, positions []image.Point, full, half image.Point, groups []Group, subPositions string) Document {
	sx, sy := 1.0, 1.0
	if full.X != 0 {
		sx = float64(half.X) / float64(full.X)
	}
	if full.Y != 0 {
		sy = float64(half.Y) / float64(full.Y)
	}

	doc := Document{
		Frames:          make([]Frame, 0, len(records)),
		NamedAnimations: make([]Animation, 0, len(groups)),
		SubPositions:    subPositions,
		Version:         Version,
	}

	for i := range records {
		doc.Frames = append(doc.Frames, exportFrame(&records[i], positions[i], sx, sy))
	}

	for _, g := range groups {
		idx := make([]string, len(g.Frames))
		for i, f := range g.Frames {
			idx[i] = strconv.Itoa(f)
		}
		doc.NamedAnimations = append(doc.NamedAnimations, Animation{
			Name:   g.Name,
			Frames: strings.Join(idx, ","),
			Delay:  g.Delay,
		})
	}

	return doc
}

func exportFrame(r *Record, pos image.Point, sx, sy float64) Frame {
	size := r.Size()
	left := RoundHalfUp(float64(pos.X) * sx)
	top := RoundHalfUp(float64(pos.Y) * sy)
	right := RoundAwayFromZero(float64(pos.X+size.X) * sx)
	bottom := RoundAwayFromZero(float64(pos.Y+size.Y) * sy)

	f := Frame{Rect: fmt.Sprintf("%d %d %d %d", left, top, right, bottom)}

	if r.Carried != nil && r.Carried.Offset != "" {
		f.Offset = r.Carried.Offset
	} else {
		f.Offset = pivot(r, right-left, bottom-top, sx, sy)
	}

	if r.Carried != nil {
		f.SubPositions = r.Carried.SubPositions
		f.WingStyle = r.Carried.WingStyle
	}
	return f
}

// pivot anchors at the bottom center of the untrimmed frame, shifted back by
// the trimmed margin and by the group offset. Axes without trim recovery use
// twice the scaled rectangle span as the frame size instead.
func pivot(r *Record, spanX, spanY int, sx, sy float64) string {
	origW, origH := float64(r.OriginalSize.X), float64(r.OriginalSize.Y)
	trimX, trimY := float64(r.TrimOffset.X), float64(r.TrimOffset.Y)

	if !r.RecoverX {
		trimX = 0
		origW = float64(abs(spanX) * 2)
	}
	if !r.RecoverY {
		trimY = 0
		origH = float64(abs(spanY) * 2)
	}

	x := origW/2 - trimX + r.AnimOffset[0]
	y := origH - trimY + r.AnimOffset[1]
	return fmt.Sprintf("%d %d", RoundAwayFromZero(x*sx), RoundAwayFromZero(y*sy))
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}
