// HackHub - Learning Event Discovery and Recommendation
// Copyright 2026 HackHub Contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/hackhub/hackhub

package recommend

import (
	"fmt"
	"time"
)

// Config contains all configuration for the recommendation engine.
type Config struct {
	// SVD contains hyperparameters for the latent-factor trainer.
	SVD SVDConfig `json:"svd" koanf:"svd"`

	// Strategy contains strategy arbitration parameters.
	Strategy StrategyConfig `json:"strategy" koanf:"strategy"`

	// Training contains training schedule parameters.
	Training TrainingConfig `json:"training" koanf:"training"`

	// Limits contains operational limits.
	Limits LimitsConfig `json:"limits" koanf:"limits"`

	// Seed is the random seed for deterministic model initialization.
	// If zero, a fixed default seed is used.
	Seed int64 `json:"seed" koanf:"seed"`
}

// SVDConfig contains hyperparameters for the latent-factor trainer.
type SVDConfig struct {
	// Factors is the latent factor dimension.
	// Default: 20.
	Factors int `json:"factors" koanf:"factors"`

	// Iterations is the number of SGD passes over the training set.
	// Default: 100.
	Iterations int `json:"iterations" koanf:"iterations"`

	// LearningRate is the SGD step size.
	// Default: 0.01.
	LearningRate float64 `json:"learning_rate" koanf:"learning_rate"`

	// Regularization is the L2 regularization parameter.
	// Default: 0.01.
	Regularization float64 `json:"regularization" koanf:"regularization"`
}

// StrategyConfig contains strategy arbitration parameters.
type StrategyConfig struct {
	// MinInteractionsForCF is the interaction count at which a user
	// graduates from cold start to model-backed strategies.
	// Default: 5.
	MinInteractionsForCF int `json:"min_interactions_for_cf" koanf:"min_interactions_for_cf"`

	// ContentRatioHybrid is the fraction of the result filled from
	// content-based scoring under the hybrid strategy.
	// Default: 0.7.
	ContentRatioHybrid float64 `json:"content_ratio_hybrid" koanf:"content_ratio_hybrid"`

	// ContentRatioColdStart is the fraction of the result filled from
	// content-based scoring under the cold-start strategy.
	// Default: 0.6.
	ContentRatioColdStart float64 `json:"content_ratio_cold_start" koanf:"content_ratio_cold_start"`
}

// TrainingConfig contains training schedule parameters.
type TrainingConfig struct {
	// Interval is the time between scheduled training runs.
	// Default: 24h.
	Interval time.Duration `json:"interval" koanf:"interval"`

	// MinInteractions is the minimum number of interaction events
	// required before a training run is attempted.
	// Default: 20.
	MinInteractions int `json:"min_interactions" koanf:"min_interactions"`
}

// LimitsConfig contains operational limits.
type LimitsConfig struct {
	// DefaultLimit is the number of recommendations returned when the
	// caller does not specify one.
	// Default: 10.
	DefaultLimit int `json:"default_limit" koanf:"default_limit"`

	// MaxLimit is the maximum allowed result size.
	// Default: 100.
	MaxLimit int `json:"max_limit" koanf:"max_limit"`
}

// DefaultConfig returns a Config with production defaults.
func DefaultConfig() *Config {
	return &Config{
		SVD: SVDConfig{
			Factors:        DefaultFactors,
			Iterations:     DefaultIterations,
			LearningRate:   DefaultLearningRate,
			Regularization: DefaultRegularization,
		},
		Strategy: StrategyConfig{
			MinInteractionsForCF:  5,
			ContentRatioHybrid:    0.7,
			ContentRatioColdStart: 0.6,
		},
		Training: TrainingConfig{
			Interval:        24 * time.Hour,
			MinInteractions: 20,
		},
		Limits: LimitsConfig{
			DefaultLimit: 10,
			MaxLimit:     100,
		},
		Seed: defaultTrainSeed,
	}
}

// Validate checks the configuration for errors.
func (c *Config) Validate() error {
	if c.SVD.Factors < 1 {
		return fmt.Errorf("svd.factors must be positive, got %d", c.SVD.Factors)
	}
	if c.SVD.Iterations < 1 {
		return fmt.Errorf("svd.iterations must be positive, got %d", c.SVD.Iterations)
	}
	if c.SVD.LearningRate <= 0 {
		return fmt.Errorf("svd.learning_rate must be positive, got %f", c.SVD.LearningRate)
	}
	if c.SVD.Regularization < 0 {
		return fmt.Errorf("svd.regularization must be non-negative, got %f", c.SVD.Regularization)
	}

	if c.Strategy.MinInteractionsForCF < 1 {
		return fmt.Errorf("strategy.min_interactions_for_cf must be positive, got %d", c.Strategy.MinInteractionsForCF)
	}
	if c.Strategy.ContentRatioHybrid < 0 || c.Strategy.ContentRatioHybrid > 1 {
		return fmt.Errorf("strategy.content_ratio_hybrid must be in [0, 1], got %f", c.Strategy.ContentRatioHybrid)
	}
	if c.Strategy.ContentRatioColdStart < 0 || c.Strategy.ContentRatioColdStart > 1 {
		return fmt.Errorf("strategy.content_ratio_cold_start must be in [0, 1], got %f", c.Strategy.ContentRatioColdStart)
	}

	if c.Training.Interval <= 0 {
		return fmt.Errorf("training.interval must be positive, got %v", c.Training.Interval)
	}
	if c.Training.MinInteractions < 0 {
		return fmt.Errorf("training.min_interactions must be non-negative, got %d", c.Training.MinInteractions)
	}

	if c.Limits.DefaultLimit < 1 {
		return fmt.Errorf("limits.default_limit must be positive, got %d", c.Limits.DefaultLimit)
	}
	if c.Limits.MaxLimit < c.Limits.DefaultLimit {
		return fmt.Errorf("limits.max_limit must be >= limits.default_limit, got %d < %d", c.Limits.MaxLimit, c.Limits.DefaultLimit)
	}

	return nil
}

// Clone returns a deep copy of the configuration.
func (c *Config) Clone() *Config {
	// Direct field copy - all nested structs contain only value types
	return &Config{
		SVD:      c.SVD,
		Strategy: c.Strategy,
		Training: c.Training,
		Limits:   c.Limits,
		Seed:     c.Seed,
	}
}
