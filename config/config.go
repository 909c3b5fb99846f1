// Package config reads the user configuration of nutcalc.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/adrg/xdg"
	"gopkg.in/yaml.v3"
)

type Config struct {
	// Verbose turns on logging to stderr.
	Verbose bool `yaml:"verbose"`
	// History is the file the REPL keeps its history in.
	History string `yaml:"history"`
	// Prelude lists modules loaded before any other input.
	Prelude []string `yaml:"prelude"`
}

// Path is where Load looks for the configuration file.
var Path = filepath.Join(xdg.ConfigHome, "nutcalc", "config.yaml")

func Default() Config {
	return Config{
		History: filepath.Join(xdg.DataHome, "nutcalc", ".nutcalc_history"),
	}
}

// Load reads the configuration file at Path. A missing file yields Default.
func Load() (Config, error) {
	return LoadFile(Path)
}

// LoadFile reads the configuration file at path over Default. A missing file
// is not an error. Relative prelude paths are taken relative to the directory
// of the file.
func LoadFile(path string) (Config, error) {
	cfg := Default()
	data, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		return cfg, nil
	}
	if err != nil {
		return cfg, err
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("%s: %w", path, err)
	}
	for i, p := range cfg.Prelude {
		if !filepath.IsAbs(p) {
			cfg.Prelude[i] = filepath.Join(filepath.Dir(path), p)
		}
	}
	return cfg, nil
}
