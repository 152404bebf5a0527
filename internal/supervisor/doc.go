// HackHub - Learning Event Discovery and Recommendation
// Copyright 2026 HackHub Contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/hackhub/hackhub

/*
Package supervisor provides process supervision for HackHub using suture v4.

This package implements a hierarchical supervisor tree that manages the lifecycle
of long-running services in the application. It provides Erlang/OTP-style
supervision with automatic restart, failure isolation, and graceful shutdown.

# Overview

The supervisor tree isolates background work in a dedicated layer:

	RootSupervisor ("hackhub")
	└── TrainingSupervisor ("training-layer")
	    └── TrainerService (periodic model retraining)

This hierarchy ensures that a trainer crash, or a restart storm during a run
of bad training data, never takes the root down: the last successfully
published recommendation model keeps serving readers while the trainer
backs off and recovers.

# Key Features

Automatic Restart:
  - Crashed services are automatically restarted
  - Exponential backoff prevents restart storms
  - Configurable failure thresholds and decay rates

Graceful Shutdown:
  - Context cancellation triggers orderly shutdown
  - Configurable shutdown timeout per service
  - UnstoppedServiceReport for debugging hangs

Structured Logging:
  - Supervision events (starts, stops, failures, restarts) logged via the
    sutureslog event hook
  - slog output bridged to zerolog through internal/logging

# Usage Example

Basic setup in main.go:

	tree, err := supervisor.NewSupervisorTree(logging.NewSlogLogger(), supervisor.DefaultTreeConfig())
	if err != nil {
	    logging.Fatal().Err(err).Msg("Failed to create supervisor tree")
	}

	tree.AddTrainingService(services.NewTrainerService(engine, cfg.Recommend.Training, logger))

	errCh := tree.ServeBackground(ctx)
	// ... wait for signal or supervisor exit
*/
package supervisor
