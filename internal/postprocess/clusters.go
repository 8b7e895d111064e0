package postprocess

import "image"

// RemoveSmallClusters clears the leftover specks a color key tends to leave
// around a sprite: every 8-connected group of visible pixels smaller than
// minRatio of all visible pixels is made fully transparent.
func RemoveSmallClusters(img *image.NRGBA, minRatio float64) *image.NRGBA {
	b := img.Bounds()
	w, h := b.Dx(), b.Dy()

	visible := make([]bool, w*h)
	total := 0
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			if img.Pix[y*img.Stride+x*4+3] > 0 {
				visible[y*w+x] = true
				total++
			}
		}
	}
	if total == 0 || minRatio <= 0 {
		return img
	}

	labels := make([]int, w*h)
	for i := range labels {
		labels[i] = -1
	}
	var sizes []int

	dx := [8]int{-1, 0, 1, -1, 1, -1, 0, 1}
	dy := [8]int{-1, -1, -1, 0, 0, 1, 1, 1}
	queue := make([]int, 0, 256)

	for start := range visible {
		if !visible[start] || labels[start] >= 0 {
			continue
		}

		id := len(sizes)
		labels[start] = id
		queue = append(queue[:0], start)
		size := 0
		for len(queue) > 0 {
			cur := queue[0]
			queue = queue[1:]
			size++

			cx, cy := cur%w, cur/w
			for d := 0; d < 8; d++ {
				nx, ny := cx+dx[d], cy+dy[d]
				if nx < 0 || nx >= w || ny < 0 || ny >= h {
					continue
				}
				ni := ny*w + nx
				if visible[ni] && labels[ni] < 0 {
					labels[ni] = id
					queue = append(queue, ni)
				}
			}
		}
		sizes = append(sizes, size)
	}

	if len(sizes) <= 1 {
		return img
	}

	minSize := int(float64(total) * minRatio)
	result := image.NewNRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		copy(result.Pix[y*result.Stride:y*result.Stride+w*4], img.Pix[y*img.Stride:y*img.Stride+w*4])
	}

	for i, label := range labels {
		if label < 0 || sizes[label] >= minSize {
			continue
		}
		p := (i/w)*result.Stride + (i%w)*4
		result.Pix[p] = 0
		result.Pix[p+1] = 0
		result.Pix[p+2] = 0
		result.Pix[p+3] = 0
	}

	return result
}
