package sheet

import (
	"image"

	"github.com/pkg/errors"
	"golang.org/x/image/draw"
)

var (
	// ErrDegenerateCanvas is returned for a canvas of width or height <= 1,
	// which is what an empty sprite set packs to.
	ErrDegenerateCanvas = errors.New("sheet: sprites don't exist")
	// ErrUnplaced means a sprite has no position inside the canvas.
	ErrUnplaced = errors.New("sheet: failed to generate positions for every sprite")
)

// Compose pastes every sprite at its position on a transparent canvas,
// alpha-over, in frame order.
func Compose(sprites []*image.NRGBA, positions []image.Point, width, height int) (*image.NRGBA, error) {
	if width <= 1 || height <= 1 {
		return nil, errors.Wrapf(ErrDegenerateCanvas, "canvas %dx%d", width, height)
	}
	if len(positions) != len(sprites) {
		return nil, errors.Wrapf(ErrUnplaced, "%d positions for %d sprites", len(positions), len(sprites))
	}

	canvas := image.NewNRGBA(image.Rect(0, 0, width, height))
	for i, sp := range sprites {
		r := sp.Bounds().Sub(sp.Bounds().Min).Add(positions[i])
		if !r.In(canvas.Bounds()) {
			return nil, errors.Wrapf(ErrUnplaced, "sprite %d at %v outside %v", i, r, canvas.Bounds())
		}
	}

	for i, sp := range sprites {
		r := sp.Bounds().Sub(sp.Bounds().Min).Add(positions[i])
		draw.Draw(canvas, r, sp, sp.Bounds().Min, draw.Over)
	}
	return canvas, nil
}

// HalfSize is the size of the half-resolution derivative of a w x h sheet.
func HalfSize(w, h int) image.Point {
	return image.Pt(max(1, (w+1)/2), max(1, (h+1)/2))
}

// Half downsamples img by two on each axis with nearest-neighbor sampling.
// Smoothing filters would blur pixel art, so none is applied.
func Half(img *image.NRGBA) *image.NRGBA {
	b := img.Bounds()
	size := HalfSize(b.Dx(), b.Dy())
	dst := image.NewNRGBA(image.Rect(0, 0, size.X, size.Y))
	draw.NearestNeighbor.Scale(dst, dst.Bounds(), img, b, draw.Src, nil)
	return dst
}
