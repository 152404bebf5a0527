// HackHub - Learning Event Discovery and Recommendation
// Copyright 2026 HackHub Contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/hackhub/hackhub

package config

import (
	"fmt"
)

// Validate checks that required configuration is present and valid
func (c *Config) Validate() error {
	if err := c.validateDatabase(); err != nil {
		return err
	}

	if err := c.validateLogging(); err != nil {
		return err
	}

	if err := c.Recommend.Validate(); err != nil {
		return fmt.Errorf("recommend configuration invalid: %w", err)
	}

	return nil
}

// validateDatabase validates storage configuration
func (c *Config) validateDatabase() error {
	if c.Database.InMemory {
		return nil // No path needed for in-memory operation
	}
	if c.Database.Path == "" {
		return fmt.Errorf("BADGER_PATH is required when BADGER_IN_MEMORY=false")
	}
	return nil
}

// validLogLevels are the zerolog levels the logging package accepts.
var validLogLevels = map[string]bool{
	"trace": true,
	"debug": true,
	"info":  true,
	"warn":  true,
	"error": true,
}

// validateLogging validates logging configuration
func (c *Config) validateLogging() error {
	if !validLogLevels[c.Logging.Level] {
		return fmt.Errorf("LOG_LEVEL must be one of trace, debug, info, warn, error; got %q", c.Logging.Level)
	}
	if c.Logging.Format != "json" && c.Logging.Format != "console" {
		return fmt.Errorf("LOG_FORMAT must be json or console; got %q", c.Logging.Format)
	}
	return nil
}
