package batch

import (
	"image"
	"path/filepath"

	"sprite-rips-packer/internal/config"
	"sprite-rips-packer/internal/frames"
	"sprite-rips-packer/internal/layout"
	"sprite-rips-packer/internal/sheet"
	"sprite-rips-packer/internal/sprite"

	"github.com/pkg/errors"
)

// Config holds everything a run needs.
type Config struct {
	OutputDir string
	// Name is the base name of the sheet and sprite files.
	Name    string
	Subject config.Subject
	// Progress, when set, is called after each freshly processed frame.
	Progress func(group, frame string)
}

// Group is one animation directory with its settings and sorted source
// frames.
type Group struct {
	Name    string
	Dir     string
	Config  config.Animation
	Sources []string
}

// Result summarizes a completed run.
type Result struct {
	Frames      int
	Regenerated int
	Reused      int
	Groups      []sprite.Group
	Canvas      image.Point
	Half        image.Point
	SheetPath   string
	Sheet2x     string
	SpritePath  string
	WebPPath    string
}

// Plan lists the animation groups under inputDir in processing order.
func Plan(inputDir string) ([]Group, error) {
	dirs, err := frames.AnimationDirs(inputDir)
	if err != nil {
		return nil, err
	}

	groups := make([]Group, 0, len(dirs))
	for _, dir := range dirs {
		anim, err := config.LoadAnimation(dir)
		if err != nil {
			return nil, err
		}
		sources, err := frames.List(dir, frames.SourceExtensions)
		if err != nil {
			return nil, err
		}
		groups = append(groups, Group{
			Name:    filepath.Base(dir),
			Dir:     dir,
			Config:  anim,
			Sources: sources,
		})
	}
	return groups, nil
}

// Run builds the sheet and sprite document for the planned groups.
//
// Groups with regenerate set are reprocessed from their sources; the others
// reuse the frames a previous run left in the output directory together
// with the metadata recorded for them. Layout and composition always cover
// every frame.
func Run(cfg Config, groups []Group) (Result, error) {
	out := outputPaths(cfg.OutputDir, cfg.Name)

	preserved := make(map[string]bool)
	for _, g := range groups {
		if !g.Config.Regenerate {
			preserved[g.Name] = true
		}
	}

	var prev *sprite.Previous
	if len(preserved) > 0 {
		prev = sprite.LoadPrevious(out.sprite)
	}
	subPositions := prev.SubPositions()

	if err := cleanGroupDirs(cfg.OutputDir, preserved); err != nil {
		return Result{}, err
	}

	res := Result{
		SheetPath:  out.sheet,
		Sheet2x:    out.sheet2x,
		SpritePath: out.sprite,
	}

	var records []sprite.Record
	for _, g := range groups {
		var recs []sprite.Record
		var err error
		if g.Config.Regenerate {
			recs, err = processGroup(cfg, g)
			res.Regenerated++
		} else {
			recs, err = reuseGroup(cfg.OutputDir, g, prev)
			res.Reused++
		}
		if err != nil {
			return Result{}, err
		}

		indices := make([]int, len(recs))
		for i := range recs {
			indices[i] = len(records) + i
		}
		res.Groups = append(res.Groups, sprite.Group{Name: g.Name, Frames: indices, Delay: g.Config.Delay})
		records = append(records, recs...)
	}
	res.Frames = len(records)

	sizes := make([]image.Point, len(records))
	images := make([]*image.NRGBA, len(records))
	for i := range records {
		sizes[i] = records[i].Size()
		images[i] = records[i].Image
	}

	plan, err := layout.Select(sizes, layout.Gap, cfg.Subject.SheetWidth, cfg.Subject.SheetHeight)
	if err != nil {
		return Result{}, err
	}

	full, err := sheet.Compose(images, plan.Positions, plan.CanvasWidth, plan.CanvasHeight)
	if err != nil {
		return Result{}, err
	}
	half := sheet.Half(full)
	res.Canvas = full.Bounds().Size()
	res.Half = half.Bounds().Size()

	doc := sprite.Export(records, plan.Positions, res.Canvas, res.Half, res.Groups, subPositions)

	if err := removeLooseFiles(cfg.OutputDir); err != nil {
		return Result{}, err
	}
	if err := writeOutputs(cfg, out, full, half, doc); err != nil {
		return Result{}, errors.Wrap(err, "batch: write outputs")
	}
	if cfg.Subject.ExportWebP {
		res.WebPPath = out.webp
	}
	return res, nil
}
