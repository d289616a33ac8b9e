// Package config provides configuration loading and structs for specprep.
package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/fieldspec/specprep/internal/models"
)

// Config holds all configuration for the tool. Every field has a usable
// default, so running without a config file is fully supported.
type Config struct {
	Debug   bool          `yaml:"debug"`
	Convert ConvertConfig `yaml:"convert"`
	Joins   JoinsConfig   `yaml:"joins"`
	Watch   WatchConfig   `yaml:"watch"`
}

// ConvertConfig holds batch conversion settings.
type ConvertConfig struct {
	// OutputDir is an explicit destination directory; empty keeps the sibling
	// "<input><output_dir_suffix>" convention.
	OutputDir       string `yaml:"output_dir"`
	OutputDirSuffix string `yaml:"output_dir_suffix"`
	Overwrite       bool   `yaml:"overwrite"`
	// CorrectTxtOffsets defaults to true when unset.
	CorrectTxtOffsets *bool  `yaml:"correct_txt_offsets"`
	Format            string `yaml:"format"`
	// Extensions filters which files watch mode reacts to.
	Extensions []string `yaml:"extensions"`
}

// CorrectTxtOffsetsOrDefault returns whether text spectra get offset
// correction; defaults to true when unset.
func (c *ConvertConfig) CorrectTxtOffsetsOrDefault() bool {
	if c.CorrectTxtOffsets != nil {
		return *c.CorrectTxtOffsets
	}
	return true
}

// JoinsConfig holds the detector transition boundaries for offset correction,
// each as a [left, right] pair.
type JoinsConfig struct {
	Join1 []float64 `yaml:"join1"`
	Join2 []float64 `yaml:"join2"`
}

// JoinSpec converts the configured boundaries into a models.JoinSpec.
func (c *JoinsConfig) JoinSpec() (models.JoinSpec, error) {
	j1, err := joinFromPair("join1", c.Join1)
	if err != nil {
		return models.JoinSpec{}, err
	}
	j2, err := joinFromPair("join2", c.Join2)
	if err != nil {
		return models.JoinSpec{}, err
	}
	return models.JoinSpec{Join1: j1, Join2: j2}, nil
}

func joinFromPair(name string, p []float64) (models.Join, error) {
	if len(p) != 2 {
		return models.Join{}, fmt.Errorf("%s needs exactly two values, got %d", name, len(p))
	}
	return models.Join{Left: p[0], Right: p[1]}, nil
}

// WatchConfig holds watch-mode settings.
type WatchConfig struct {
	DebounceMS int `yaml:"debounce_ms"`
}

// Load reads and parses the config file at path and applies defaults.
// Returns an error if the file cannot be read or parsed.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config: %w", err)
	}
	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}
	ApplyDefaults(&cfg)
	return &cfg, nil
}

// Default returns a config with every default applied, for running without a
// config file.
func Default() *Config {
	cfg := &Config{}
	ApplyDefaults(cfg)
	return cfg
}
