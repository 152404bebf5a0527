// HackHub - Learning Event Discovery and Recommendation
// Copyright 2026 HackHub Contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/hackhub/hackhub

// Package main is the entry point for the HackHub recommendation server.
//
// HackHub recommends catalog items (courses, certifications, hackathons) to
// users by fusing behavioral interaction data, a learned latent-factor model,
// and profile similarity. This binary wires the recommendation engine, its
// BadgerDB-backed store, and the supervised retraining lifecycle.
//
// # Application Architecture
//
// The server initializes components in the following order:
//
//  1. Configuration: Load settings from environment variables and config files (Koanf v2)
//  2. Logging: Initialize zerolog from the loaded configuration
//  3. Storage: Open the BadgerDB store (persistent or in-memory)
//  4. Engine: Construct the recommendation engine over the store
//  5. Supervisor: Start the suture tree with the trainer service
//
// # Configuration
//
// Configuration is loaded via Koanf v2 with layered sources (highest priority wins):
//   - Environment variables
//   - Config file (config.yaml, or CONFIG_PATH)
//   - Built-in defaults
//
// # Signal Handling
//
// The server handles graceful shutdown on SIGINT and SIGTERM:
//   - Cancels the supervisor context
//   - An in-flight training run is discarded; the published model is untouched
//   - Closes the store after the supervisor drains
//
// # Example Usage
//
// Development with an in-memory store:
//
//	export BADGER_IN_MEMORY=true
//	export LOG_FORMAT=console
//	./hackhub
//
// Production:
//
//	export BADGER_PATH=/data/hackhub
//	export RECOMMEND_TRAIN_INTERVAL=12h
//	./hackhub
package main

import (
	"context"
	"errors"
	"os"
	"os/signal"
	"runtime"
	"syscall"
	"time"

	"github.com/hackhub/hackhub/internal/config"
	"github.com/hackhub/hackhub/internal/logging"
	"github.com/hackhub/hackhub/internal/metrics"
	"github.com/hackhub/hackhub/internal/recommend"
	"github.com/hackhub/hackhub/internal/storage"
	"github.com/hackhub/hackhub/internal/supervisor"
	"github.com/hackhub/hackhub/internal/supervisor/services"
)

// version is stamped at build time via -ldflags "-X main.version=...".
var version = "dev"

func main() {
	// Load configuration first to get logging settings
	cfg, err := config.LoadWithKoanf()
	if err != nil {
		// Use default logger for config errors (config not yet available)
		logging.Fatal().Err(err).Msg("Failed to load configuration")
	}

	// Initialize zerolog with configuration
	logging.Init(logging.Config{
		Level:  cfg.Logging.Level,
		Format: cfg.Logging.Format,
		Caller: cfg.Logging.Caller,
	})

	logging.Info().
		Str("version", version).
		Str("db_path", cfg.Database.Path).
		Bool("in_memory", cfg.Database.InMemory).
		Dur("train_interval", cfg.Recommend.Training.Interval).
		Msg("Starting HackHub recommendation server")

	metrics.AppInfo.WithLabelValues(version, runtime.Version()).Set(1)

	// Open the store
	var store *storage.Store
	if cfg.Database.InMemory {
		store, err = storage.OpenInMemory(logging.WithComponent("storage"))
	} else {
		store, err = storage.Open(cfg.Database.Path, logging.WithComponent("storage"))
	}
	if err != nil {
		logging.Fatal().Err(err).Msg("Failed to open store")
	}
	defer func() {
		if err := store.Close(); err != nil {
			logging.Error().Err(err).Msg("Error closing store")
		}
	}()
	logging.Info().Msg("Store opened successfully")

	// Construct the recommendation engine over the store
	engine, err := recommend.NewEngine(&cfg.Recommend, logging.WithComponent("recommend"))
	if err != nil {
		logging.Fatal().Err(err).Msg("Failed to create recommendation engine")
	}
	engine.SetDataProvider(store)

	// Create context for graceful shutdown
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Refresh the uptime gauge while the server runs
	startTime := time.Now()
	go func() {
		ticker := time.NewTicker(15 * time.Second)
		defer ticker.Stop()
		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				metrics.AppUptime.Set(time.Since(startTime).Seconds())
			}
		}
	}()

	// Create structured logger for supervisor using our slog adapter.
	// This bridges zerolog to slog for sutureslog compatibility.
	slogLogger := logging.NewSlogLogger()

	// Create supervisor tree
	tree, err := supervisor.NewSupervisorTree(slogLogger, supervisor.DefaultTreeConfig())
	if err != nil {
		logging.Fatal().Err(err).Msg("Failed to create supervisor tree")
	}

	// The trainer retrains the model at startup and on the configured
	// interval; a crash is isolated to the training layer.
	trainer := services.NewTrainerService(engine, cfg.Recommend.Training, logging.WithComponent("trainer"))
	tree.AddTrainingService(trainer)

	// Setup signal handling
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		sig := <-sigCh
		logging.Info().Str("signal", sig.String()).Msg("Received shutdown signal")
		cancel()
	}()

	logging.Info().Msg("Starting supervisor tree...")
	errCh := tree.ServeBackground(ctx)

	// Wait for supervisor to finish (either from signal or error)
	select {
	case <-ctx.Done():
		logging.Info().Msg("Context canceled, waiting for supervisor to finish...")
	case err := <-errCh:
		if err != nil && !errors.Is(err, context.Canceled) {
			logging.Error().Err(err).Msg("Supervisor tree error")
		}
	}

	// Wait for the error channel to close (supervisor finished)
	for err := range errCh {
		if err != nil && !errors.Is(err, context.Canceled) {
			logging.Error().Err(err).Msg("Supervisor shutdown error")
		}
	}

	// Report any services that failed to stop within timeout
	unstopped, _ := tree.UnstoppedServiceReport()
	if len(unstopped) > 0 {
		logging.Warn().Int("count", len(unstopped)).Msg("Services failed to stop within timeout")
		for _, svc := range unstopped {
			logging.Warn().Str("service", svc.Name).Msg("Service failed to stop")
		}
	}

	logging.Info().Msg("Application stopped gracefully")
}
