// HackHub - Learning Event Discovery and Recommendation
// Copyright 2026 HackHub Contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/hackhub/hackhub

package config

import (
	"fmt"
	"os"
	"strings"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/providers/structs"
	"github.com/knadh/koanf/v2"

	"github.com/hackhub/hackhub/internal/recommend"
)

// DefaultConfigPaths lists the paths where config files are searched in order of priority.
// The first file found will be used.
var DefaultConfigPaths = []string{
	"config.yaml",
	"config.yml",
	"/etc/hackhub/config.yaml",
	"/etc/hackhub/config.yml",
}

// ConfigPathEnvVar is the environment variable that can override the config file path.
const ConfigPathEnvVar = "CONFIG_PATH"

// defaultConfig returns a Config struct with all sensible default values.
// These defaults are applied first, then overridden by config file and env vars.
func defaultConfig() *Config {
	return &Config{
		Database: DatabaseConfig{
			Path:     "/data/hackhub",
			InMemory: false,
		},
		Logging: LoggingConfig{
			Level:  "info",
			Format: "json",
			Caller: false,
		},
		Recommend: *recommend.DefaultConfig(),
	}
}

// LoadWithKoanf loads configuration using Koanf v2 with layered sources:
//  1. Defaults: Built-in sensible defaults
//  2. Config File: Optional YAML config file (if exists)
//  3. Environment Variables: Override any setting
//
// This function is the preferred way to load configuration and provides:
//   - Type-safe configuration unmarshaling
//   - Clear precedence: ENV > File > Defaults
//   - Support for nested configuration via koanf struct tags
func LoadWithKoanf() (*Config, error) {
	k := koanf.New(".")

	// Layer 1: Load defaults from struct
	defaults := defaultConfig()
	if err := k.Load(structs.Provider(defaults, "koanf"), nil); err != nil {
		return nil, fmt.Errorf("failed to load defaults: %w", err)
	}

	// Layer 2: Load config file (optional)
	configPath := findConfigFile()
	if configPath != "" {
		if err := k.Load(file.Provider(configPath), yaml.Parser()); err != nil {
			return nil, fmt.Errorf("failed to load config file %s: %w", configPath, err)
		}
	}

	// Layer 3: Load environment variables (highest priority)
	// Transform environment variable names to koanf paths:
	// BADGER_PATH -> database.path
	// RECOMMEND_SVD_FACTORS -> recommend.svd.factors
	envProvider := env.Provider("", ".", envTransformFunc)
	if err := k.Load(envProvider, nil); err != nil {
		return nil, fmt.Errorf("failed to load environment variables: %w", err)
	}

	// Unmarshal into Config struct
	cfg := &Config{}
	if err := k.Unmarshal("", cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal configuration: %w", err)
	}

	// Validate the configuration
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}

	return cfg, nil
}

// findConfigFile searches for a config file in the default paths.
// Returns the path to the first file found, or empty string if none found.
func findConfigFile() string {
	// Check environment variable first
	if envPath := os.Getenv(ConfigPathEnvVar); envPath != "" {
		if _, err := os.Stat(envPath); err == nil {
			return envPath
		}
	}

	// Search default paths
	for _, path := range DefaultConfigPaths {
		if _, err := os.Stat(path); err == nil {
			return path
		}
	}

	return ""
}

// envTransformFunc transforms environment variable names to koanf config paths.
// Unmapped variables are dropped so unrelated environment entries never pollute
// the configuration.
//
// Examples:
//   - BADGER_PATH -> database.path
//   - LOG_LEVEL -> logging.level
//   - RECOMMEND_SVD_FACTORS -> recommend.svd.factors
func envTransformFunc(key string) string {
	key = strings.ToLower(key)

	envMappings := map[string]string{
		// Database mappings
		"badger_path":      "database.path",
		"badger_in_memory": "database.in_memory",

		// Logging mappings
		"log_level":  "logging.level",
		"log_format": "logging.format",
		"log_caller": "logging.caller",

		// Recommendation engine mappings
		"recommend_seed": "recommend.seed",
		// Latent-factor trainer settings
		"recommend_svd_factors":        "recommend.svd.factors",
		"recommend_svd_iterations":     "recommend.svd.iterations",
		"recommend_svd_learning_rate":  "recommend.svd.learning_rate",
		"recommend_svd_regularization": "recommend.svd.regularization",
		// Strategy arbitration settings
		"recommend_min_interactions_for_cf":  "recommend.strategy.min_interactions_for_cf",
		"recommend_content_ratio_hybrid":     "recommend.strategy.content_ratio_hybrid",
		"recommend_content_ratio_cold_start": "recommend.strategy.content_ratio_cold_start",
		// Training schedule settings
		"recommend_train_interval":   "recommend.training.interval",
		"recommend_min_interactions": "recommend.training.min_interactions",
		// Result size limits
		"recommend_default_limit": "recommend.limits.default_limit",
		"recommend_max_limit":     "recommend.limits.max_limit",
	}

	if mapped, ok := envMappings[key]; ok {
		return mapped
	}

	// For unmapped keys, return empty string to skip them
	return ""
}
