package batch

import (
	"image"
	"image/color"
	"image/png"
	"os"
	"path/filepath"

	"sprite-rips-packer/internal/config"
	"sprite-rips-packer/internal/frames"
	"sprite-rips-packer/internal/postprocess"
	"sprite-rips-packer/internal/sprite"

	"github.com/pkg/errors"
)

// processed is one source frame after the fresh pipeline.
type processed struct {
	Image    *image.NRGBA
	Original image.Point
	Trim     image.Point
}

// processGroup runs every source frame of g through the pipeline and saves
// the results under the group's output directory.
func processGroup(cfg Config, g Group) ([]sprite.Record, error) {
	target := filepath.Join(cfg.OutputDir, g.Name)
	if err := os.MkdirAll(target, 0755); err != nil {
		return nil, errors.Wrapf(err, "batch: create %s", target)
	}

	records := make([]sprite.Record, 0, len(g.Sources))
	for _, src := range g.Sources {
		img, err := frames.Load(src)
		if err != nil {
			return nil, err
		}
		p, err := processFrame(cfg.Subject, img)
		if err != nil {
			return nil, errors.Wrapf(err, "batch: %s", src)
		}

		name := frames.Stem(src)
		if err := frames.SavePNG(filepath.Join(target, name+".png"), p.Image, png.NoCompression); err != nil {
			return nil, err
		}

		records = append(records, sprite.Record{
			Animation:    g.Name,
			Name:         name,
			Image:        p.Image,
			OriginalSize: p.Original,
			TrimOffset:   p.Trim,
			RecoverX:     g.Config.RecoverX,
			RecoverY:     g.Config.RecoverY,
			AnimOffset:   g.Config.Offset,
		})
		if cfg.Progress != nil {
			cfg.Progress(g.Name, name)
		}
	}
	return records, nil
}

// processFrame removes the background, resizes, trims and pads one frame.
func processFrame(s config.Subject, img *image.NRGBA) (processed, error) {
	bg := s.Background
	if s.AutoBackground {
		c := postprocess.DetectBackground(img)
		bg = &c
	}

	removing := bg != nil && s.RemoveBackground
	if removing {
		img = postprocess.RemoveColor(img, *bg, s.Threshold, s.ReduceFileSize)
		if s.DespeckleRatio > 0 {
			img = postprocess.RemoveSmallClusters(img, s.DespeckleRatio)
		}
	}

	if s.ResizePercent != 100 {
		var err error
		img, err = postprocess.Resize(img, s.ResizePercent)
		if err != nil {
			return processed{}, err
		}
	}
	p := processed{Original: img.Bounds().Size()}

	// Once the background is keyed out, trim against transparency.
	var trimColor color.NRGBA
	if !removing && bg != nil {
		trimColor = *bg
	}
	if s.CropSprites {
		img, p.Trim = postprocess.Trim(img, trimColor, s.Threshold)
	}

	p.Image = postprocess.PadEven(img)
	return p, nil
}

// reuseGroup loads the frames a previous run generated for g and pairs them
// with the metadata the previous document recorded. A missing output
// directory contributes no frames.
func reuseGroup(outputDir string, g Group, prev *sprite.Previous) ([]sprite.Record, error) {
	paths, err := frames.List(filepath.Join(outputDir, g.Name), frames.GeneratedExtensions)
	if err != nil {
		return nil, err
	}

	names := make([]string, len(paths))
	images := make([]*image.NRGBA, len(paths))
	for i, path := range paths {
		img, err := frames.Load(path)
		if err != nil {
			return nil, err
		}
		names[i] = frames.Stem(path)
		images[i] = img
	}

	carried, _ := prev.Group(g.Name)
	return reuseRecords(g, names, images, carried), nil
}

// reuseRecords pairs stored images with carried metadata by position.
// Images beyond the carried entries are treated as untrimmed frames and get
// fresh offsets from the group settings.
func reuseRecords(g Group, names []string, images []*image.NRGBA, carried []sprite.Carried) []sprite.Record {
	records := make([]sprite.Record, len(images))
	for i, img := range images {
		records[i] = sprite.Record{
			Animation:    g.Name,
			Name:         names[i],
			Image:        img,
			OriginalSize: img.Bounds().Size(),
			RecoverX:     g.Config.RecoverX,
			RecoverY:     g.Config.RecoverY,
			AnimOffset:   g.Config.Offset,
		}
		if i < len(carried) {
			c := carried[i]
			records[i].Carried = &c
		}
	}
	return records
}
