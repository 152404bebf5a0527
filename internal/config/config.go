// HackHub - Learning Event Discovery and Recommendation
// Copyright 2026 HackHub Contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/hackhub/hackhub

package config

import (
	"github.com/hackhub/hackhub/internal/recommend"
)

// Config holds all application configuration loaded from defaults, an optional
// YAML config file, and environment variables.
//
// Configuration Loading Order (Koanf v2):
//  1. Defaults: Built-in sensible defaults for all settings
//  2. Config File: Optional YAML config file (config.yaml) for persistent settings
//  3. Environment Variables: Override any setting via environment variables
//
// Thread Safety:
// Config is immutable after Load() and safe for concurrent read access from
// multiple goroutines.
type Config struct {
	Database  DatabaseConfig   `koanf:"database"`
	Logging   LoggingConfig    `koanf:"logging"`
	Recommend recommend.Config `koanf:"recommend"`
}

// DatabaseConfig holds BadgerDB storage settings.
//
// Environment Variables:
//   - BADGER_PATH: Database directory path (default: /data/hackhub)
//   - BADGER_IN_MEMORY: Run without persistence, for development (default: false)
type DatabaseConfig struct {
	// Path is the directory BadgerDB stores its value log and LSM tree in.
	// Created on first open if it does not exist.
	Path string `koanf:"path"`

	// InMemory runs the store entirely in memory. All data is lost on
	// shutdown; intended for development and testing only.
	InMemory bool `koanf:"in_memory"`
}

// LoggingConfig holds structured logging settings.
//
// Environment Variables:
//   - LOG_LEVEL: Minimum log level: trace, debug, info, warn, error (default: info)
//   - LOG_FORMAT: Output format: json or console (default: json)
//   - LOG_CALLER: Include file:line of the call site (default: false)
type LoggingConfig struct {
	Level  string `koanf:"level"`
	Format string `koanf:"format"`
	Caller bool   `koanf:"caller"`
}
