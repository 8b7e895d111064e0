package postprocess

import (
	"image"
	"math"

	"github.com/pkg/errors"
	"golang.org/x/image/draw"
)

// ErrBadResize is returned for a non-positive resize percentage.
var ErrBadResize = errors.New("resize_to_percent must be greater than zero")

// Resize scales img uniformly by percent with nearest-neighbor sampling so
// pixel art keeps hard edges. Returns img itself when the scaled size rounds
// to the current size.
func Resize(img *image.NRGBA, percent float64) (*image.NRGBA, error) {
	scale := percent / 100.0
	if scale <= 0 {
		return nil, ErrBadResize
	}

	b := img.Bounds()
	newW := max(1, int(math.Round(float64(b.Dx())*scale)))
	newH := max(1, int(math.Round(float64(b.Dy())*scale)))
	if newW == b.Dx() && newH == b.Dy() {
		return img, nil
	}

	dst := image.NewNRGBA(image.Rect(0, 0, newW, newH))
	draw.NearestNeighbor.Scale(dst, dst.Bounds(), img, b, draw.Src, nil)
	return dst, nil
}

// PadEven grows odd dimensions by one transparent column/row on the
// right/bottom edge.
func PadEven(img *image.NRGBA) *image.NRGBA {
	b := img.Bounds()
	w, h := b.Dx(), b.Dy()
	newW, newH := w+w%2, h+h%2
	if newW == w && newH == h {
		return img
	}

	padded := image.NewNRGBA(image.Rect(0, 0, newW, newH))
	for y := 0; y < h; y++ {
		srcOff := y * img.Stride
		dstOff := y * padded.Stride
		copy(padded.Pix[dstOff:dstOff+w*4], img.Pix[srcOff:srcOff+w*4])
	}
	return padded
}
