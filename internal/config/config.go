package config

import (
	"encoding/json"
	"os"
	"path/filepath"

	"github.com/pkg/errors"
)

// Config is the root config.json: which subject to build and where the
// subject directories live.
type Config struct {
	Root    string `json:"root"`
	Subject string `json:"subject"`
}

// Flags holds CLI flag values that override config file settings.
type Flags struct {
	Root    string
	Subject string
}

// Load reads the root config file. A missing or empty file yields a zero
// Config.
func Load(path string) (Config, error) {
	var cfg Config
	ok, err := readJSON(path, &cfg)
	if err != nil || !ok {
		return Config{}, err
	}
	return cfg, nil
}

// Resolve applies CLI overrides and defaults the root to the working
// directory.
func (c *Config) Resolve(flags Flags) error {
	if flags.Root != "" {
		c.Root = flags.Root
	}
	if flags.Subject != "" {
		c.Subject = flags.Subject
	}

	if c.Root == "" {
		cwd, err := os.Getwd()
		if err != nil {
			return errors.Wrap(err, "config: working directory")
		}
		c.Root = cwd
	}
	if c.Subject == "" {
		return errors.New("config: the 'subject' field must be specified in config.json or with -subject")
	}
	return nil
}

// SubjectDir is <root>/<subject>.
func (c Config) SubjectDir() string { return filepath.Join(c.Root, c.Subject) }

// InputDir holds the raw rips, one subdirectory per animation.
func (c Config) InputDir() string { return filepath.Join(c.SubjectDir(), "raw") }

// OutputDir receives generated frames, sheets and the sprite document.
func (c Config) OutputDir() string { return filepath.Join(c.SubjectDir(), "generated") }

// SubjectConfigPath is the per-subject settings file.
func (c Config) SubjectConfigPath() string { return filepath.Join(c.SubjectDir(), "config.json") }

// readJSON decodes path into v. It reports false without error when the
// file is missing or empty.
func readJSON(path string, v any) (bool, error) {
	data, err := os.ReadFile(path)
	if errors.Is(err, os.ErrNotExist) {
		return false, nil
	}
	if err != nil {
		return false, errors.Wrapf(err, "config: read %s", path)
	}
	if len(data) == 0 {
		return false, nil
	}
	if err := json.Unmarshal(data, v); err != nil {
		return false, errors.Wrapf(err, "config: parse %s", path)
	}
	return true, nil
}
