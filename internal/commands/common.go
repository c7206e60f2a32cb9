// Package commands implements the relaymark CLI subcommands.
package commands

import (
	"fmt"

	"github.com/relaymark/relaymark/internal/config"
)

type Runner interface {
	Init(args []string, globalArgs *AppContext) error
	Run() error
	Name() string
}

type AppContext struct {
	ConfigPath string
	Verbose    bool
}

// loadAndValidateConfigOrFail loads configuration from file and validates it.
func loadAndValidateConfigOrFail(configPath string) (*config.Config, error) {
	cfg, err := config.LoadConfig(configPath)
	if err != nil {
		return nil, fmt.Errorf("failed to load configuration: %v", err)
	}

	if err := cfg.ValidateConfig(); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %v", err)
	}

	return cfg, nil
}

// resolveConfig returns the loaded configuration, or an all-defaults one
// when an explicit range table path makes the config file unnecessary.
func resolveConfig(ctx *AppContext, rangesPath string) (*config.Config, error) {
	if rangesPath != "" {
		return config.Default(), nil
	}
	return loadAndValidateConfigOrFail(ctx.ConfigPath)
}
