// HackHub - Learning Event Discovery and Recommendation
// Copyright 2026 HackHub Contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/hackhub/hackhub

/*
Package metrics provides Prometheus metrics collection for observability.

# Overview

The package instruments:
  - Recommendation requests (throughput and latency by strategy)
  - Model training lifecycle (runs by outcome, duration, RMSE)
  - Storage operations (BadgerDB durations and errors)
  - Interaction tracking (events by type, idempotent duplicates)

# Available Metrics

Recommendation Metrics:
  - recommend_requests_total: requests by strategy (counter)
    Labels: strategy (COLD_START, HYBRID, COLLABORATIVE)
  - recommend_request_duration_seconds: request latency (histogram)
  - recommend_similar_item_requests_total: similar-item lookups (counter)

Training Metrics:
  - model_training_runs_total: runs by outcome (counter)
    Labels: outcome (success, failure, skipped)
  - model_training_duration_seconds: run duration (histogram)
  - model_training_rmse: training-set RMSE of the published model (gauge)
  - model_last_trained_timestamp: Unix time of last publish (gauge)

Storage Metrics:
  - store_operation_duration_seconds: operation latency (histogram)
    Labels: operation
  - store_operation_errors_total: failed operations (counter)
    Labels: operation
  - interactions_tracked_total: recorded events (counter)
    Labels: type (view, like, bookmark, enroll, complete, rate)
  - interactions_deduplicated_total: idempotent duplicates skipped (counter)

# Usage Example

	start := time.Now()
	err := store.TrackInteraction(ctx, in)
	metrics.RecordStoreOp("track_interaction", time.Since(start), err)

# Thread Safety

All recording functions are safe for concurrent use; the Prometheus client
library handles synchronization internally.

# Cardinality Management

Label values are drawn from small fixed sets (strategies, interaction types,
operation names). User and item identifiers are never used as labels.
*/
package metrics
