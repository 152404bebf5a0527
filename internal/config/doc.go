// HackHub - Learning Event Discovery and Recommendation
// Copyright 2026 HackHub Contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/hackhub/hackhub

/*
Package config provides centralized configuration management for HackHub.

This package handles loading, validation, and parsing of configuration for
all application components. It ensures consistent configuration across the
backend services and provides sensible defaults for optional settings.

# Configuration Sources

Configuration is layered with Koanf v2, later layers overriding earlier ones:

  - Built-in defaults (defaultConfig)
  - Optional YAML config file (config.yaml, or CONFIG_PATH)
  - Environment variables

# Configuration Structure

The package organizes configuration into logical groups:

  - DatabaseConfig: BadgerDB storage path and in-memory mode
  - LoggingConfig: Log level, format, and caller annotation
  - recommend.Config: Recommendation engine hyperparameters, strategy
    thresholds, training schedule, and result limits

# Environment Variables

Database (DatabaseConfig):
  - BADGER_PATH: Database directory (default: /data/hackhub)
  - BADGER_IN_MEMORY: Volatile in-memory mode (default: false)

Logging (LoggingConfig):
  - LOG_LEVEL: trace, debug, info, warn, error (default: info)
  - LOG_FORMAT: json or console (default: json)
  - LOG_CALLER: Include call sites (default: false)

Recommendation engine (recommend.Config):
  - RECOMMEND_SVD_FACTORS: Latent factor dimension (default: 20)
  - RECOMMEND_SVD_ITERATIONS: SGD passes per training run (default: 100)
  - RECOMMEND_SVD_LEARNING_RATE: SGD step size (default: 0.01)
  - RECOMMEND_SVD_REGULARIZATION: L2 penalty (default: 0.01)
  - RECOMMEND_MIN_INTERACTIONS_FOR_CF: Cold-start graduation threshold (default: 5)
  - RECOMMEND_CONTENT_RATIO_HYBRID: Content share in hybrid results (default: 0.7)
  - RECOMMEND_CONTENT_RATIO_COLD_START: Content share in cold-start results (default: 0.6)
  - RECOMMEND_TRAIN_INTERVAL: Time between training runs (default: 24h)
  - RECOMMEND_MIN_INTERACTIONS: Minimum events before training (default: 20)
  - RECOMMEND_DEFAULT_LIMIT / RECOMMEND_MAX_LIMIT: Result sizing (default: 10 / 100)
  - RECOMMEND_SEED: Random seed for model initialization (default: 42)

# Usage Example

	cfg, err := config.LoadWithKoanf()
	if err != nil {
	    log.Fatalf("Failed to load config: %v", err)
	}
	store, err := storage.Open(cfg.Database.Path, logger)

# Validation

LoadWithKoanf validates the assembled configuration and fails fast with a
descriptive error naming the offending variable, so misconfiguration is
caught at startup rather than at first use.

# Thread Safety

The Config struct is immutable after LoadWithKoanf() returns, making it safe
for concurrent access from multiple goroutines without synchronization.
*/
package config
