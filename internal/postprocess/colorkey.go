package postprocess

import (
	"image"
	"image/color"

	"github.com/cenkalti/dominantcolor"
)

// RemoveColor erases every visible pixel whose RGB lies within threshold
// (Euclidean) of target. Erased pixels get alpha 0, or all four channels
// zeroed when fullErase is set. Pixels that are already fully transparent
// are never touched.
func RemoveColor(img *image.NRGBA, target color.NRGBA, threshold float64, fullErase bool) *image.NRGBA {
	b := img.Bounds()
	w, h := b.Dx(), b.Dy()
	thr2 := threshold * threshold
	tr, tg, tb := int(target.R), int(target.G), int(target.B)

	result := image.NewNRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		srcOff := y * img.Stride
		dstOff := y * result.Stride
		copy(result.Pix[dstOff:dstOff+w*4], img.Pix[srcOff:srcOff+w*4])
	}

	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			i := y*result.Stride + x*4
			if result.Pix[i+3] == 0 {
				continue
			}
			dr := int(result.Pix[i]) - tr
			dg := int(result.Pix[i+1]) - tg
			db := int(result.Pix[i+2]) - tb
			if float64(dr*dr+dg*dg+db*db) > thr2 {
				continue
			}
			if fullErase {
				result.Pix[i] = 0
				result.Pix[i+1] = 0
				result.Pix[i+2] = 0
			}
			result.Pix[i+3] = 0
		}
	}

	return result
}

// DetectBackground returns the dominant color of a frame as an opaque color.
// Used for rips whose backdrop color differs between captures.
func DetectBackground(img image.Image) color.NRGBA {
	c := dominantcolor.Find(img)
	return color.NRGBA{R: c.R, G: c.G, B: c.B, A: 255}
}
