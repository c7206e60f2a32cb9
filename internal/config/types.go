package config

import (
	"path/filepath"

	"github.com/relaymark/relaymark/internal/utils"
)

type Config struct {
	// Ranges configures the published relay egress range table.
	Ranges *RangesConfig `toml:"ranges"`
	// Classify configures the bulk row classification pipeline.
	Classify *ClassifyConfig `toml:"classify,omitempty"`

	_absConfigFilePath string
}

type RangesConfig struct {
	// URL of the published egress range table (used by the download command).
	URL string `toml:"url" json:"url" validate:"omitempty,url"`
	// OutputDir is the directory for the downloaded range table.
	OutputDir string `toml:"output_dir" json:"output_dir" validate:"required"`
	// File is the range table file name inside OutputDir.
	File string `toml:"file" json:"file" validate:"required"`
}

type ClassifyConfig struct {
	// Workers is the number of parallel classification workers (default: 4).
	Workers int `toml:"workers" json:"workers" validate:"min=1"`
	// Column is the zero-based column holding the IP address in delimited input (default: 0).
	Column int `toml:"column" json:"column" validate:"min=0"`
	// Delimiter separates input columns (default: tab). Ignored when the input has a single column.
	Delimiter string `toml:"delimiter" json:"delimiter" validate:"required"`
	// Template is the output row template. Placeholders: {{row}}, {{ip}}, {{relay}} (default: "{{row}}\t{{relay}}").
	Template string `toml:"template" json:"template" validate:"required,row_template"`
}

// GetAbsRangesDir returns the ranges output directory resolved against the
// config file location.
func (c *Config) GetAbsRangesDir() string {
	return utils.GetAbsolutePath(c.Ranges.OutputDir, filepath.Dir(c._absConfigFilePath))
}

// GetAbsRangesFilePath returns the absolute path of the range table file.
func (c *Config) GetAbsRangesFilePath() string {
	return filepath.Join(c.GetAbsRangesDir(), c.Ranges.File)
}
