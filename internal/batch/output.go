package batch

import (
	"bytes"
	"encoding/json"
	"image"
	"image/png"
	"os"
	"path/filepath"

	"sprite-rips-packer/internal/frames"
	"sprite-rips-packer/internal/sprite"

	"github.com/pkg/errors"
)

type paths struct {
	sheet   string
	sheet2x string
	sprite  string
	webp    string
}

func outputPaths(outputDir, name string) paths {
	base := filepath.Join(outputDir, name)
	return paths{
		sheet:   base + ".png",
		sheet2x: base + "@2x.png",
		sprite:  base + ".sprite",
		webp:    base + ".webp",
	}
}

// cleanGroupDirs removes generated group directories except the preserved
// ones. Nothing happens when the output directory does not exist yet.
func cleanGroupDirs(outputDir string, preserved map[string]bool) error {
	entries, err := os.ReadDir(outputDir)
	if errors.Is(err, os.ErrNotExist) {
		return nil
	}
	if err != nil {
		return errors.Wrapf(err, "batch: read %s", outputDir)
	}

	for _, e := range entries {
		if !e.IsDir() || preserved[e.Name()] {
			continue
		}
		if err := os.RemoveAll(filepath.Join(outputDir, e.Name())); err != nil {
			return errors.Wrapf(err, "batch: remove %s", e.Name())
		}
	}
	return nil
}

// removeLooseFiles deletes the sheets and sprite document of the last run.
func removeLooseFiles(outputDir string) error {
	entries, err := os.ReadDir(outputDir)
	if errors.Is(err, os.ErrNotExist) {
		return nil
	}
	if err != nil {
		return errors.Wrapf(err, "batch: read %s", outputDir)
	}

	for _, e := range entries {
		if e.IsDir() {
			continue
		}
		err := os.Remove(filepath.Join(outputDir, e.Name()))
		if err != nil && !errors.Is(err, os.ErrNotExist) {
			return errors.Wrapf(err, "batch: remove %s", e.Name())
		}
	}
	return nil
}

func writeOutputs(cfg Config, out paths, full, half image.Image, doc sprite.Document) error {
	if err := os.MkdirAll(cfg.OutputDir, 0755); err != nil {
		return err
	}

	level := png.DefaultCompression
	if cfg.Subject.ReduceFileSize {
		level = png.BestCompression
	}
	if err := frames.SavePNG(out.sheet2x, full, level); err != nil {
		return err
	}
	if err := frames.SavePNG(out.sheet, half, png.DefaultCompression); err != nil {
		return err
	}
	if cfg.Subject.ExportWebP {
		if err := frames.SaveWebP(out.webp, half); err != nil {
			return err
		}
	}
	return WriteDocument(out.sprite, doc)
}

// WriteDocument writes the sprite document as 2-space indented JSON.
func WriteDocument(path string, doc sprite.Document) error {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "  ")
	if err := enc.Encode(doc); err != nil {
		return errors.Wrap(err, "batch: encode sprite document")
	}
	return os.WriteFile(path, buf.Bytes(), 0644)
}
