package main

import (
	"flag"
	"fmt"
	"os"
	"time"

	"sprite-rips-packer/internal/batch"
	"sprite-rips-packer/internal/config"

	"github.com/schollz/progressbar/v3"
)

func main() {
	// CLI flags
	configFile := flag.String("config", "config.json", "Path to the root config.json")
	root := flag.String("root", "", "Directory holding the subject folders (default: working directory)")
	subject := flag.String("subject", "", "Subject to build (overrides config.json)")
	quiet := flag.Bool("quiet", false, "Disable the progress bar")

	flag.Parse()

	cfg, err := config.Load(*configFile)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading config: %v\n", err)
		os.Exit(1)
	}

	// CLI flags override config file
	if err := cfg.Resolve(config.Flags{Root: *root, Subject: *subject}); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	if _, err := os.Stat(cfg.InputDir()); err != nil {
		fmt.Fprintf(os.Stderr, "Error: input directory not found: %s\n", cfg.InputDir())
		os.Exit(1)
	}

	subj, err := config.LoadSubject(cfg.SubjectConfigPath())
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading subject config: %v\n", err)
		os.Exit(1)
	}

	groups, err := batch.Plan(cfg.InputDir())
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error reading animations: %v\n", err)
		os.Exit(1)
	}

	total := 0
	preserved := 0
	for _, g := range groups {
		if g.Config.Regenerate {
			total += len(g.Sources)
		} else {
			preserved++
		}
	}

	fmt.Printf("Sprite rips -> sprite sheet: %s\n", cfg.Subject)
	fmt.Printf("Animations: %d (%d preserved), frames to process: %d\n", len(groups), preserved, total)
	fmt.Printf("Output: %s\n", cfg.OutputDir())
	fmt.Println("------------------------------------------------------------")

	start := time.Now()

	batchCfg := batch.Config{
		OutputDir: cfg.OutputDir(),
		Name:      cfg.Subject,
		Subject:   subj,
	}
	if !*quiet && total > 0 {
		bar := progressbar.Default(int64(total))
		batchCfg.Progress = func(group, frame string) {
			bar.Describe(fmt.Sprintf("%s/%s", group, frame))
			bar.Add(1)
		}
	}

	res, err := batch.Run(batchCfg, groups)
	if err != nil {
		fmt.Fprintf(os.Stderr, "\nError: %v\n", err)
		os.Exit(1)
	}

	elapsed := time.Since(start)
	fmt.Println("------------------------------------------------------------")
	fmt.Printf("Done in %.1fs\n", elapsed.Seconds())
	fmt.Printf("Processed %d sprites into %s.\n", res.Frames, cfg.OutputDir())
	fmt.Printf("High-res sprite sheet: %s (%dx%d)\n", res.Sheet2x, res.Canvas.X, res.Canvas.Y)
	fmt.Printf("Half-res sprite sheet: %s (%dx%d)\n", res.SheetPath, res.Half.X, res.Half.Y)
	if res.WebPPath != "" {
		fmt.Printf("WebP preview: %s\n", res.WebPPath)
	}
	fmt.Printf("Offset metadata: %s\n", res.SpritePath)
}
