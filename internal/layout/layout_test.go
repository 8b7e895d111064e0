package layout

import (
	"image"
	"testing"

	"github.com/pkg/errors"
)

func sizes(pts ...[2]int) []image.Point {
	out := make([]image.Point, len(pts))
	for i, p := range pts {
		out[i] = image.Pt(p[0], p[1])
	}
	return out
}

func TestForWidthSingle(t *testing.T) {
	res, err := ForWidth(sizes([2]int{10, 10}), Gap, 50)
	if err != nil {
		t.Fatal(err)
	}
	if res.Positions[0] != image.Pt(0, 0) {
		t.Errorf("position = %v, want (0,0)", res.Positions[0])
	}
	if res.Width != 10 || res.Height != 10 {
		t.Errorf("size = %dx%d, want 10x10", res.Width, res.Height)
	}
}

func TestForWidthWraps(t *testing.T) {
	res, err := ForWidth(sizes([2]int{10, 10}, [2]int{10, 10}, [2]int{10, 10}), Gap, 22)
	if err != nil {
		t.Fatal(err)
	}
	if len(res.Shelves) != 2 {
		t.Fatalf("shelves = %d, want 2", len(res.Shelves))
	}
	if got := res.Shelves[0].Indices; len(got) != 2 || got[0] != 0 || got[1] != 1 {
		t.Errorf("shelf 0 = %v, want [0 1]", got)
	}
	if got := res.Shelves[1].Indices; len(got) != 1 || got[0] != 2 {
		t.Errorf("shelf 1 = %v, want [2]", got)
	}
	want := []image.Point{{0, 0}, {12, 0}, {0, 12}}
	for i, p := range want {
		if res.Positions[i] != p {
			t.Errorf("position %d = %v, want %v", i, res.Positions[i], p)
		}
	}
	if res.Width != 22 || res.Height != 22 {
		t.Errorf("size = %dx%d, want 22x22", res.Width, res.Height)
	}
}

func TestForWidthBottomAligned(t *testing.T) {
	res, err := ForWidth(sizes([2]int{4, 10}, [2]int{4, 6}), Gap, 100)
	if err != nil {
		t.Fatal(err)
	}
	if res.Positions[1] != image.Pt(6, 4) {
		t.Errorf("short sprite position = %v, want (6,4)", res.Positions[1])
	}
}

func TestForWidthShelfInvariants(t *testing.T) {
	in := sizes([2]int{8, 4}, [2]int{6, 12}, [2]int{14, 2}, [2]int{4, 4}, [2]int{10, 8}, [2]int{2, 6})
	for limit := 14; limit <= 60; limit += 3 {
		res, err := ForWidth(in, Gap, limit)
		if err != nil {
			t.Fatalf("limit %d: %v", limit, err)
		}
		height := 0
		for i, sh := range res.Shelves {
			if sh.Width > limit {
				t.Errorf("limit %d: shelf %d width %d exceeds limit", limit, i, sh.Width)
			}
			if i > 0 {
				height = EnsureEven(height + Gap)
			}
			height += sh.Height
		}
		if res.Height != height {
			t.Errorf("limit %d: height = %d, want %d", limit, res.Height, height)
		}
		if res.Width%2 != 0 || res.Height%2 != 0 {
			t.Errorf("limit %d: size %dx%d not even", limit, res.Width, res.Height)
		}
	}
}

func TestForWidthTooNarrow(t *testing.T) {
	_, err := ForWidth(sizes([2]int{10, 10}, [2]int{30, 4}), Gap, 20)
	if !errors.Is(err, ErrTooNarrow) {
		t.Errorf("err = %v, want ErrTooNarrow", err)
	}
}

func TestAutoPrefersSquare(t *testing.T) {
	in := sizes([2]int{10, 10}, [2]int{10, 10}, [2]int{10, 10}, [2]int{10, 10})
	res, err := Auto(in, Gap, 0)
	if err != nil {
		t.Fatal(err)
	}
	if res.Width != 22 || res.Height != 22 {
		t.Errorf("size = %dx%d, want 22x22", res.Width, res.Height)
	}
}

func TestAutoMaxHeight(t *testing.T) {
	in := sizes([2]int{10, 10}, [2]int{10, 10}, [2]int{10, 10}, [2]int{10, 10})
	for _, maxH := range []int{10, 16, 22, 40, 100} {
		res, err := Auto(in, Gap, maxH)
		if err != nil {
			t.Fatalf("maxHeight %d: %v", maxH, err)
		}
		if res.Height > maxH {
			t.Errorf("maxHeight %d: height %d exceeds it", maxH, res.Height)
		}
	}

	if _, err := Auto(in, Gap, 8); !errors.Is(err, ErrNoCandidate) {
		t.Errorf("err = %v, want ErrNoCandidate", err)
	}
}

func TestSelectForced(t *testing.T) {
	in := sizes([2]int{10, 10}, [2]int{10, 10})
	plan, err := Select(in, Gap, 63, 0)
	if err != nil {
		t.Fatal(err)
	}
	if plan.CanvasWidth != 64 || plan.CanvasHeight != 10 {
		t.Errorf("canvas = %dx%d, want 64x10", plan.CanvasWidth, plan.CanvasHeight)
	}

	if _, err := Select(in, Gap, 10, 12); !errors.Is(err, ErrTooTall) {
		t.Errorf("err = %v, want ErrTooTall", err)
	}
}

func TestCandidateWidths(t *testing.T) {
	got := candidateWidths(sizes([2]int{4, 1}, [2]int{10, 1}, [2]int{6, 1}), Gap)
	want := []int{10, 16, 24}
	if len(got) != len(want) {
		t.Fatalf("candidateWidths = %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("candidateWidths = %v, want %v", got, want)
		}
	}
}
