// Package layout packs sprite rectangles onto a sheet with a shelf heuristic.
//
// Sprites are placed in frame order, left to right, bottom-aligned within
// each shelf. All gaps are rounded up to even offsets so every position on a
// sheet of even-sized sprites stays even.
package layout

import (
	"image"
	"sort"

	"github.com/pkg/errors"
)

// Gap is the spacing between neighboring sprites and between shelves.
const Gap = 2

var (
	// ErrTooNarrow means a sprite is wider than the requested width limit.
	ErrTooNarrow = errors.New("layout: width limit is smaller than the widest sprite")
	// ErrNoCandidate means no automatic width satisfies the height limit.
	ErrNoCandidate = errors.New("layout: unable to find an automatic layout that satisfies the constraints")
	// ErrTooTall means a fixed-width layout exceeds the requested sheet height.
	ErrTooTall = errors.New("layout: sprites do not fit within the requested sheet height")
)

// Shelf is one packed row.
type Shelf struct {
	Y       int
	Width   int
	Height  int
	Indices []int
}

// Result is a packed layout: the packed extent and one position per sprite.
type Result struct {
	Width     int
	Height    int
	Positions []image.Point
	Shelves   []Shelf
}

// EnsureEven rounds v up to the next even value.
func EnsureEven(v int) int {
	return v + v%2
}

// ForWidth packs sizes into shelves no wider than limit.
func ForWidth(sizes []image.Point, gap, limit int) (Result, error) {
	if limit <= 0 {
		return Result{}, errors.Errorf("layout: width limit must be greater than zero, got %d", limit)
	}
	if len(sizes) == 0 {
		return Result{}, nil
	}
	if widest := maxWidth(sizes); limit < widest {
		return Result{}, errors.Wrapf(ErrTooNarrow, "limit %d, widest sprite %d", limit, widest)
	}

	var shelves []Shelf
	var cur Shelf
	for i, s := range sizes {
		projected := s.X
		if len(cur.Indices) > 0 {
			projected = EnsureEven(cur.Width+gap) + s.X
		}
		if len(cur.Indices) > 0 && projected > limit {
			shelves = append(shelves, cur)
			cur = Shelf{}
		}
		if len(cur.Indices) > 0 {
			cur.Width = EnsureEven(cur.Width + gap)
		}
		cur.Indices = append(cur.Indices, i)
		cur.Width += s.X
		cur.Height = max(cur.Height, s.Y)
	}
	shelves = append(shelves, cur)

	res := Result{
		Positions: make([]image.Point, len(sizes)),
		Shelves:   shelves,
	}
	y := 0
	for si := range shelves {
		sh := &res.Shelves[si]
		if si > 0 {
			y = EnsureEven(y + gap)
		}
		sh.Y = y

		x := 0
		for n, idx := range sh.Indices {
			res.Positions[idx] = image.Pt(x, y+sh.Height-sizes[idx].Y)
			x += sizes[idx].X
			if n < len(sh.Indices)-1 {
				x = EnsureEven(x + gap)
			}
		}

		y += sh.Height
		res.Width = max(res.Width, sh.Width)
	}
	res.Height = y

	return res, nil
}

// Auto tries a small set of width limits and keeps the layout that lands
// closest to maxHeight, then closest to square, then smallest in area.
// maxHeight <= 0 means unconstrained.
func Auto(sizes []image.Point, gap, maxHeight int) (Result, error) {
	if len(sizes) == 0 {
		return Result{}, nil
	}

	var best Result
	var bestScore [3]float64
	found := false

	for _, limit := range candidateWidths(sizes, gap) {
		res, err := ForWidth(sizes, gap, limit)
		if err != nil {
			continue
		}
		if maxHeight > 0 && res.Height > maxHeight {
			continue
		}

		score := [3]float64{
			0,
			float64(abs(res.Width - res.Height)),
			float64(res.Width) * float64(max(res.Height, 1)),
		}
		if maxHeight > 0 {
			score[0] = float64(abs(maxHeight - res.Height))
		}
		if !found || less(score, bestScore) {
			best, bestScore, found = res, score, true
		}
	}

	if !found {
		return Result{}, errors.Wrapf(ErrNoCandidate, "max height %d", maxHeight)
	}
	return best, nil
}

// candidateWidths lists the widest sprite, the single-row width, and the
// width of every frame-order prefix laid out in one row, ascending and
// without duplicates. Prefixes narrower than the widest sprite collapse onto
// the widest sprite, which is always a candidate.
func candidateWidths(sizes []image.Point, gap int) []int {
	widest := maxWidth(sizes)
	seen := map[int]bool{widest: true}

	prefix := 0
	for i, s := range sizes {
		prefix += s.X
		seen[max(widest, prefix+gap*i)] = true
	}
	seen[prefix+gap*(len(sizes)-1)] = true

	widths := make([]int, 0, len(seen))
	for w := range seen {
		widths = append(widths, w)
	}
	sort.Ints(widths)
	return widths
}

// Plan is the final sheet geometry: the packed layout plus the canvas it is
// drawn on, which may be larger when the sheet size is forced.
type Plan struct {
	Result
	CanvasWidth  int
	CanvasHeight int
}

// Select packs sizes honoring an optional forced sheet width and height
// (0 = not forced). Forced dimensions are rounded up to even.
func Select(sizes []image.Point, gap, width, height int) (Plan, error) {
	width, height = EnsureEven(width), EnsureEven(height)

	if len(sizes) == 0 {
		return Plan{CanvasWidth: width, CanvasHeight: height}, nil
	}

	var res Result
	var err error
	if width > 0 {
		res, err = ForWidth(sizes, gap, width)
		if err != nil {
			return Plan{}, err
		}
		if height > 0 && res.Height > height {
			return Plan{}, errors.Wrapf(ErrTooTall, "packed height %d, sheet height %d", res.Height, height)
		}
	} else {
		res, err = Auto(sizes, gap, height)
		if err != nil {
			return Plan{}, err
		}
	}

	plan := Plan{Result: res, CanvasWidth: res.Width, CanvasHeight: res.Height}
	if width > 0 {
		plan.CanvasWidth = width
	}
	if height > 0 {
		plan.CanvasHeight = height
	}
	return plan, nil
}

func maxWidth(sizes []image.Point) int {
	w := 0
	for _, s := range sizes {
		w = max(w, s.X)
	}
	return w
}

func less(a, b [3]float64) bool {
	for i := range a {
		if a[i] != b[i] {
			return a[i] < b[i]
		}
	}
	return false
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}
