package postprocess

import (
	"image"
	"image/color"
)

// Trim crops img to the bounding box of its foreground and returns the crop
// together with the (left, top) pixels removed.
//
// With a fully transparent trim color the foreground is every pixel with
// non-zero alpha. Otherwise a pixel is foreground when its RGBA distance to
// trimColor exceeds threshold. The box is widened to even coordinates so the
// cropped size is even whenever the source allows it. Images without
// foreground, or whose box covers the whole frame, come back unchanged.
func Trim(img *image.NRGBA, trimColor color.NRGBA, threshold float64) (*image.NRGBA, image.Point) {
	b := img.Bounds()
	w, h := b.Dx(), b.Dy()

	var box image.Rectangle
	var ok bool
	if trimColor.A == 0 {
		box, ok = alphaBounds(img)
	} else {
		box, ok = colorBounds(img, trimColor, threshold)
	}
	if !ok {
		return img, image.Point{}
	}

	box = alignEvenBox(box, w, h)
	if box.Min.X == 0 && box.Min.Y == 0 && box.Max.X == w && box.Max.Y == h {
		return img, image.Point{}
	}

	return crop(img, box), box.Min
}

// alphaBounds is the bounding box of all pixels with non-zero alpha.
func alphaBounds(img *image.NRGBA) (image.Rectangle, bool) {
	b := img.Bounds()
	w, h := b.Dx(), b.Dy()

	minX, minY := w, h
	maxX, maxY := -1, -1
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			if img.Pix[y*img.Stride+x*4+3] > 0 {
				if x < minX {
					minX = x
				}
				if x > maxX {
					maxX = x
				}
				if y < minY {
					minY = y
				}
				if y > maxY {
					maxY = y
				}
			}
		}
	}

	if maxX < 0 {
		return image.Rectangle{}, false
	}
	return image.Rect(minX, minY, maxX+1, maxY+1), true
}

// colorBounds spans the rows and columns holding at least one pixel farther
// than threshold from c in RGBA space.
func colorBounds(img *image.NRGBA, c color.NRGBA, threshold float64) (image.Rectangle, bool) {
	b := img.Bounds()
	w, h := b.Dx(), b.Dy()
	thr2 := threshold * threshold
	tr, tg, tb, ta := int(c.R), int(c.G), int(c.B), int(c.A)

	minX, minY := w, h
	maxX, maxY := -1, -1
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			i := y*img.Stride + x*4
			dr := int(img.Pix[i]) - tr
			dg := int(img.Pix[i+1]) - tg
			db := int(img.Pix[i+2]) - tb
			da := int(img.Pix[i+3]) - ta
			if float64(dr*dr+dg*dg+db*db+da*da) <= thr2 {
				continue
			}
			if x < minX {
				minX = x
			}
			if x > maxX {
				maxX = x
			}
			if y < minY {
				minY = y
			}
			if y > maxY {
				maxY = y
			}
		}
	}

	if maxX < 0 {
		return image.Rectangle{}, false
	}
	return image.Rect(minX, minY, maxX+1, maxY+1), true
}

// alignEvenBox pushes the box edges outward to even coordinates inside a
// w x h frame. If clamping leaves an odd span, the far edge grows when there
// is room, otherwise the near edge does.
func alignEvenBox(r image.Rectangle, w, h int) image.Rectangle {
	left := max(0, r.Min.X-r.Min.X%2)
	top := max(0, r.Min.Y-r.Min.Y%2)
	right := min(w, r.Max.X+r.Max.X%2)
	bottom := min(h, r.Max.Y+r.Max.Y%2)

	if (right-left)%2 == 1 {
		if right < w {
			right++
		} else if left > 0 {
			left--
		}
	}
	if (bottom-top)%2 == 1 {
		if bottom < h {
			bottom++
		} else if top > 0 {
			top--
		}
	}

	return image.Rect(left, top, right, bottom)
}

func crop(img *image.NRGBA, r image.Rectangle) *image.NRGBA {
	cropW, cropH := r.Dx(), r.Dy()
	cropped := image.NewNRGBA(image.Rect(0, 0, cropW, cropH))
	for y := 0; y < cropH; y++ {
		srcOff := (r.Min.Y+y)*img.Stride + r.Min.X*4
		dstOff := y * cropped.Stride
		copy(cropped.Pix[dstOff:dstOff+cropW*4], img.Pix[srcOff:srcOff+cropW*4])
	}
	return cropped
}
