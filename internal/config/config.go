// Package config handles tmxtool configuration loading and management.
package config

import (
	"fmt"
	"runtime"
)

// Output formats.
const (
	FormatText = "text"
	FormatYAML = "yaml"
)

// Config holds all tmxtool settings.
type Config struct {
	Logging LoggingConfig `yaml:"logging"`
	Decode  DecodeConfig  `yaml:"decode"`
	Output  OutputConfig  `yaml:"output"`
}

// LoggingConfig holds logging settings.
type LoggingConfig struct {
	Level   string `yaml:"level"`
	LogFile string `yaml:"log_file"`
}

// DecodeConfig holds map loading settings.
type DecodeConfig struct {
	AllowZstd           bool `yaml:"allow_zstd"`
	Workers             int  `yaml:"workers"` // parallel map loads, 0 = NumCPU
	SkipMissingTilesets bool `yaml:"skip_missing_tilesets"`
}

// OutputConfig holds report settings.
type OutputConfig struct {
	Format    string `yaml:"format"`     // "text" or "yaml"
	ShowEmpty bool   `yaml:"show_empty"` // include empty cells in tile listings
}

// Default returns a Config with sensible default values.
func Default() *Config {
	return &Config{
		Logging: LoggingConfig{
			Level:   "warn",
			LogFile: "",
		},
		Decode: DecodeConfig{
			AllowZstd:           false,
			Workers:             runtime.NumCPU(),
			SkipMissingTilesets: false,
		},
		Output: OutputConfig{
			Format:    FormatText,
			ShowEmpty: false,
		},
	}
}

// Validate reports settings that cannot be used.
func (c *Config) Validate() error {
	switch c.Output.Format {
	case FormatText, FormatYAML:
	default:
		return fmt.Errorf("unknown output format %q", c.Output.Format)
	}
	if c.Decode.Workers < 0 {
		return fmt.Errorf("workers must not be negative, got %d", c.Decode.Workers)
	}
	return nil
}
