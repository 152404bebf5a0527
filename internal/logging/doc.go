// HackHub - Learning Event Discovery and Recommendation
// Copyright 2026 HackHub Contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/hackhub/hackhub

// Package logging provides centralized zerolog-based structured logging for HackHub.
//
// This package implements a unified logging layer using zerolog, providing
// zero-allocation structured JSON logging for production and human-readable
// console output for development.
//
// # Overview
//
// The package provides:
//   - Zero-allocation structured logging via zerolog
//   - JSON output format for production (machine-parseable)
//   - Console output format for development (human-readable)
//   - Component-scoped child loggers
//   - slog adapter for suture v4 supervision event logging
//
// # Quick Start
//
//	import "github.com/hackhub/hackhub/internal/logging"
//
//	// Initialize at application startup
//	logging.Init(logging.Config{
//	    Level:  "info",
//	    Format: "json",
//	    Caller: false,
//	})
//
//	// Log messages with structured fields
//	logging.Info().Int64("user_id", uid).Msg("Recommendations served")
//	logging.Error().Err(err).Msg("Training failed")
//
//	// Component loggers
//	storeLogger := logging.WithComponent("storage")
//
// # Best Practices
//
// Always terminate log chains with .Msg() or .Send():
//
//	logging.Info().Str("key", "value").Msg("message")  // Correct
//	logging.Info().Str("key", "value")                 // WRONG - log not emitted
//
// Use structured fields instead of string formatting:
//
//	logging.Info().Int64("item", id).Int("count", n).Msg("scored")  // Correct
//	logging.Info().Msgf("scored %d items for %d", n, id)            // Avoid
package logging
