package frames

import (
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/pkg/errors"
)

// SourceExtensions are the frame formats accepted from a rip directory.
var SourceExtensions = []string{".png", ".tga"}

// GeneratedExtensions are the formats written back per frame.
var GeneratedExtensions = []string{".png"}

// AnimationDirs returns the subdirectories of inputDir sorted by name. A
// directory without subdirectories is its own single animation.
func AnimationDirs(inputDir string) ([]string, error) {
	entries, err := os.ReadDir(inputDir)
	if err != nil {
		return nil, errors.Wrapf(err, "frames: read %s", inputDir)
	}

	var dirs []string
	for _, e := range entries {
		if e.IsDir() {
			dirs = append(dirs, filepath.Join(inputDir, e.Name()))
		}
	}
	if len(dirs) == 0 {
		return []string{inputDir}, nil
	}
	sort.Strings(dirs)
	return dirs, nil
}

// List returns the files in dir whose extension (case-insensitive) is one
// of exts, sorted by name. A missing directory lists nothing.
func List(dir string, exts []string) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if errors.Is(err, os.ErrNotExist) {
		return nil, nil
	}
	if err != nil {
		return nil, errors.Wrapf(err, "frames: read %s", dir)
	}

	var paths []string
	for _, e := range entries {
		if e.IsDir() || !hasExt(e.Name(), exts) {
			continue
		}
		paths = append(paths, filepath.Join(dir, e.Name()))
	}
	sort.Strings(paths)
	return paths, nil
}

// Stem is the file name without directory and extension.
func Stem(path string) string {
	base := filepath.Base(path)
	return strings.TrimSuffix(base, filepath.Ext(base))
}

func hasExt(name string, exts []string) bool {
	ext := strings.ToLower(filepath.Ext(name))
	for _, e := range exts {
		if ext == e {
			return true
		}
	}
	return false
}
