// HackHub - Learning Event Discovery and Recommendation
// Copyright 2026 HackHub Contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/hackhub/hackhub

package services

import (
	"context"
	"time"

	"github.com/rs/zerolog"

	"github.com/hackhub/hackhub/internal/recommend"
)

// trainTimeout bounds a single training run so a pathological dataset
// cannot wedge the service past its retraining schedule.
const trainTimeout = 30 * time.Minute

// ModelTrainer defines the slice of the recommendation engine the trainer
// service needs. Narrowing the dependency keeps the service testable
// without a full engine.
type ModelTrainer interface {
	// TrainModel rebuilds the latent-factor model from current
	// interaction data and publishes it atomically on success.
	TrainModel(ctx context.Context) recommend.TrainingResult
}

// TrainerService wraps the recommendation engine's training lifecycle for
// suture supervision. It trains once at startup, then retrains on a fixed
// interval. Training never blocks recommendation reads: the engine builds
// the new model off to the side and swaps it in atomically.
type TrainerService struct {
	trainer  ModelTrainer
	interval time.Duration
	logger   zerolog.Logger
	name     string
}

// NewTrainerService creates a new trainer service.
//
//nolint:gocritic // logger passed by value is acceptable for zerolog
func NewTrainerService(trainer ModelTrainer, cfg recommend.TrainingConfig, logger zerolog.Logger) *TrainerService {
	interval := cfg.Interval
	if interval <= 0 {
		interval = 24 * time.Hour
	}
	return &TrainerService{
		trainer:  trainer,
		interval: interval,
		logger:   logger.With().Str("service", "trainer").Logger(),
		name:     "trainer-service",
	}
}

// Serve implements the suture.Service interface.
// It manages the training loop for the recommendation engine.
func (s *TrainerService) Serve(ctx context.Context) error {
	s.logger.Info().
		Dur("train_interval", s.interval).
		Msg("trainer service starting")

	// Initial training run. The engine skips it when there is not yet
	// enough interaction data; the next tick will try again.
	s.train(ctx)

	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	s.logger.Info().Msg("trainer service running")

	for {
		select {
		case <-ctx.Done():
			s.logger.Info().Msg("trainer service shutting down")
			return ctx.Err()

		case <-ticker.C:
			s.logger.Debug().Msg("scheduled training triggered")
			s.train(ctx)
		}
	}
}

// train performs one training cycle with a bounded context.
func (s *TrainerService) train(ctx context.Context) {
	trainCtx, cancel := context.WithTimeout(ctx, trainTimeout)
	defer cancel()

	start := time.Now()
	result := s.trainer.TrainModel(trainCtx)

	if !result.Success {
		s.logger.Warn().
			Str("reason", result.Error).
			Dur("duration", time.Since(start)).
			Msg("training run did not publish a model")
		return
	}

	s.logger.Info().
		Str("algorithm", result.Algorithm).
		Float64("rmse", result.RMSE).
		Float64("mae", result.MAE).
		Int("users", result.NumUsers).
		Int64("training_time_ms", result.TrainingTimeMs).
		Msg("model training complete")
}

// String returns the service name for logging.
func (s *TrainerService) String() string {
	return s.name
}
