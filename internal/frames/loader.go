package frames

import (
	"image"
	"image/draw"
	"image/png"
	"os"
	"path/filepath"
	"strings"

	"github.com/HugoSmits86/nativewebp"
	"github.com/ftrvxmtrx/tga"
	"github.com/pkg/errors"
)

// Load decodes a PNG or TGA frame into a zero-origin NRGBA image. The
// decoder is picked by extension since TGA has no signature to sniff.
func Load(path string) (*image.NRGBA, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, errors.Wrapf(err, "frames: open %s", path)
	}
	defer f.Close()

	var img image.Image
	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".png":
		img, err = png.Decode(f)
	case ".tga":
		img, err = tga.Decode(f)
	default:
		return nil, errors.Errorf("frames: unsupported extension %s: %s", ext, path)
	}
	if err != nil {
		return nil, errors.Wrapf(err, "frames: decode %s", path)
	}
	return toNRGBA(img), nil
}

// toNRGBA converts any image to a zero-origin NRGBA image. Sources without
// an alpha channel come out fully opaque.
func toNRGBA(src image.Image) *image.NRGBA {
	b := src.Bounds()
	if n, ok := src.(*image.NRGBA); ok && b.Min == (image.Point{}) {
		return n
	}
	dst := image.NewNRGBA(image.Rect(0, 0, b.Dx(), b.Dy()))
	draw.Draw(dst, dst.Bounds(), src, b.Min, draw.Src)
	return dst
}

// SavePNG writes img as a PNG file at the given compression level.
func SavePNG(path string, img image.Image, level png.CompressionLevel) error {
	f, err := os.Create(path)
	if err != nil {
		return errors.Wrapf(err, "frames: create %s", path)
	}

	enc := png.Encoder{CompressionLevel: level}
	if err := enc.Encode(f, img); err != nil {
		f.Close()
		return errors.Wrapf(err, "frames: encode %s", path)
	}
	return errors.Wrapf(f.Close(), "frames: close %s", path)
}

// SaveWebP writes img as a lossless WebP file.
func SaveWebP(path string, img image.Image) error {
	f, err := os.Create(path)
	if err != nil {
		return errors.Wrapf(err, "frames: create %s", path)
	}

	if err := nativewebp.Encode(f, img, nil); err != nil {
		f.Close()
		return errors.Wrapf(err, "frames: webp encode %s", path)
	}
	return errors.Wrapf(f.Close(), "frames: close %s", path)
}
