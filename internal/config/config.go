// Copyright (c) 2025-2026 complex (complex@ft.hn)
// See LICENSE for licensing information

// Package config loads CLI defaults from KEYCONV_* environment variables.
package config

import (
	"fmt"
	"strings"

	"github.com/complex-gh/keyconv"
	"github.com/kelseyhightower/envconfig"
	"github.com/rs/zerolog"
)

// Prefix is the environment variable prefix.
const Prefix = "keyconv"

// Output formats.
const (
	OutputText = "text"
	OutputJSON = "json"
)

// Config contains the defaults a flag can override.
type Config struct {
	Chains   string `envconfig:"CHAINS" default:"xrpl,btc,flo"`
	Output   string `envconfig:"OUTPUT" default:"text"`
	LogLevel string `envconfig:"LOG_LEVEL" default:"warn"`
}

// Load reads the configuration from the environment and validates it.
func Load() (Config, error) {
	var c Config
	if err := envconfig.Process(Prefix, &c); err != nil {
		return Config{}, fmt.Errorf("failed to process config: %w", err)
	}
	if err := c.Validate(); err != nil {
		return Config{}, err
	}
	return c, nil
}

// Validate checks every field and normalises its case.
func (c *Config) Validate() error {
	c.Output = strings.ToLower(strings.TrimSpace(c.Output))
	if c.Output != OutputText && c.Output != OutputJSON {
		return fmt.Errorf("invalid KEYCONV_OUTPUT %q: use %s or %s", c.Output, OutputText, OutputJSON)
	}

	if _, err := c.Level(); err != nil {
		return err
	}
	if _, err := c.ChainList(); err != nil {
		return fmt.Errorf("invalid KEYCONV_CHAINS: %w", err)
	}
	return nil
}

// Level returns the parsed log level.
func (c Config) Level() (zerolog.Level, error) {
	lvl, err := zerolog.ParseLevel(strings.ToLower(strings.TrimSpace(c.LogLevel)))
	if err != nil {
		return zerolog.NoLevel, fmt.Errorf("invalid KEYCONV_LOG_LEVEL %q: %w", c.LogLevel, err)
	}
	return lvl, nil
}

// ChainList returns the parsed chain list.
func (c Config) ChainList() ([]keyconv.Chain, error) {
	//nolint:wrapcheck
	return keyconv.ParseChains(c.Chains)
}
