// Package config loads and validates the relaymark TOML configuration.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/pelletier/go-toml/v2"
	"github.com/relaymark/relaymark/internal/log"
)

const (
	DefaultRangesURL  = "https://mask-api.icloud.com/egress-ip-ranges.csv"
	DefaultRangesDir  = "./ranges.d"
	DefaultRangesFile = "egress-ip-ranges.csv"

	DefaultClassifyWorkers   = 4
	DefaultClassifyDelimiter = "\t"
	DefaultClassifyTemplate  = "{{row}}\t{{relay}}"
)

func LoadConfig(configPath string) (*Config, error) {
	configFile := filepath.Clean(configPath)

	if !filepath.IsAbs(configFile) {
		if path, err := filepath.Abs(configFile); err != nil {
			return nil, fmt.Errorf("failed to get absolute path: %v", err)
		} else {
			configFile = path
		}
	}

	if _, err := os.Stat(configFile); os.IsNotExist(err) {
		return nil, fmt.Errorf("configuration file not found: %s", configFile)
	}

	content, err := os.ReadFile(configFile)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %v", err)
	}

	var config Config
	if err := toml.Unmarshal(content, &config); err != nil {
		var derr *toml.DecodeError
		if errors.As(err, &derr) {
			log.Errorf(derr.String())
			row, col := derr.Position()
			log.Errorf("Error at line %d, column %d", row, col)
			return nil, fmt.Errorf("failed to parse config file")
		}
		return nil, fmt.Errorf("failed to parse config file: %v", err)
	}

	config._absConfigFilePath = configFile
	config.applyDefaults()

	log.Debugf("Configuration file path: %s", configFile)
	log.Debugf("Range table path: %s", config.GetAbsRangesFilePath())

	return &config, nil
}

// Default returns a configuration with all defaults applied, used when no
// config file is required (classify/check with an explicit -ranges flag).
func Default() *Config {
	cfg := &Config{}
	cfg.applyDefaults()
	return cfg
}

func (c *Config) applyDefaults() {
	if c.Ranges == nil {
		c.Ranges = &RangesConfig{}
	}
	if c.Ranges.URL == "" {
		c.Ranges.URL = DefaultRangesURL
	}
	if c.Ranges.OutputDir == "" {
		c.Ranges.OutputDir = DefaultRangesDir
	}
	if c.Ranges.File == "" {
		c.Ranges.File = DefaultRangesFile
	}

	if c.Classify == nil {
		c.Classify = &ClassifyConfig{}
	}
	if c.Classify.Workers == 0 {
		c.Classify.Workers = DefaultClassifyWorkers
	}
	if c.Classify.Delimiter == "" {
		c.Classify.Delimiter = DefaultClassifyDelimiter
	}
	if c.Classify.Template == "" {
		c.Classify.Template = DefaultClassifyTemplate
	}
}
