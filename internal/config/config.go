package config

import (
	"errors"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// FileConfig is the on-disk YAML configuration shape. Fields are pointers so
// an absent key is distinguishable from a zero value when merging with CLI
// flags (CLI > local > global).
type FileConfig struct {
	Types         *string  `yaml:"types"` // comma-separated category tags or "all"
	Include       *string  `yaml:"include"`
	Exclude       *string  `yaml:"exclude"`
	MaxBytes      *int64   `yaml:"max_bytes"`
	Jobs          *int     `yaml:"jobs"`
	MinConfidence *float64 `yaml:"min_confidence"`
	NoCache       *bool    `yaml:"no_cache"`
	Languages     *string  `yaml:"languages"` // comma-separated tesseract language codes
	Output        *string  `yaml:"output"`
	NoColor       *bool    `yaml:"no_color"`
}

// LoadFile reads a YAML config file from the provided path.
func LoadFile(path string) (FileConfig, error) {
	var cfg FileConfig
	b, err := os.ReadFile(path)
	if err != nil {
		return cfg, err
	}
	if err := yaml.Unmarshal(b, &cfg); err != nil {
		return cfg, err
	}
	return cfg, nil
}

// LoadLocal searches for a config file in the scanned root. It supports
// .sensiscan.yml/.yaml and sensiscan.yml/.yaml, dotfiles first.
func LoadLocal(root string) (FileConfig, error) {
	var cfg FileConfig
	for _, name := range []string{".sensiscan.yml", ".sensiscan.yaml", "sensiscan.yml", "sensiscan.yaml"} {
		p := filepath.Join(root, name)
		if _, err := os.Stat(p); err == nil {
			return LoadFile(p)
		}
	}
	return cfg, errors.New("no local config")
}

// LoadGlobal loads the global config file from XDG base directory or
// ~/.config.
func LoadGlobal() (FileConfig, error) {
	var cfg FileConfig
	base := os.Getenv("XDG_CONFIG_HOME")
	if base == "" {
		home, _ := os.UserHomeDir()
		if home != "" {
			base = filepath.Join(home, ".config")
		}
	}
	if base == "" {
		return cfg, errors.New("no config dir")
	}
	p := filepath.Join(base, "sensiscan", "config.yml")
	if _, err := os.Stat(p); err == nil {
		return LoadFile(p)
	}
	return cfg, errors.New("no global config")
}
