// HackHub - Learning Event Discovery and Recommendation
// Copyright 2026 HackHub Contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/hackhub/hackhub

package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Prometheus instrumentation for:
// - Recommendation request throughput and latency by strategy
// - Model training lifecycle (runs, duration, quality)
// - Interaction tracking and storage operations (BadgerDB)

var (
	// Recommendation Metrics
	RecommendRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "recommend_requests_total",
			Help: "Total number of recommendation requests by strategy",
		},
		[]string{"strategy"}, // "COLD_START", "HYBRID", "COLLABORATIVE"
	)

	RecommendLatency = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "recommend_request_duration_seconds",
			Help:    "Recommendation request duration in seconds",
			Buckets: []float64{0.001, 0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5},
		},
	)

	SimilarItemRequestsTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "recommend_similar_item_requests_total",
			Help: "Total number of similar-item requests",
		},
	)

	// Training Metrics
	TrainingRunsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "model_training_runs_total",
			Help: "Total number of model training runs by outcome",
		},
		[]string{"outcome"}, // "success", "failure", "skipped"
	)

	TrainingDuration = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "model_training_duration_seconds",
			Help:    "Duration of model training runs in seconds",
			Buckets: []float64{0.1, 0.5, 1, 5, 10, 30, 60, 120, 300, 600},
		},
	)

	ModelRMSE = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "model_training_rmse",
			Help: "Training-set RMSE of the most recently published model",
		},
	)

	ModelLastTrained = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "model_last_trained_timestamp",
			Help: "Unix timestamp of the last successful training run",
		},
	)

	// Storage Metrics (BadgerDB)
	StoreOpDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "store_operation_duration_seconds",
			Help:    "Duration of storage operations in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"operation"}, // "track_interaction", "all_interactions", "trending", ...
	)

	StoreOpErrors = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "store_operation_errors_total",
			Help: "Total number of storage operation errors",
		},
		[]string{"operation"},
	)

	InteractionsTracked = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "interactions_tracked_total",
			Help: "Total number of interaction events recorded",
		},
		[]string{"type"}, // "view", "like", "bookmark", "enroll", "complete", "rate"
	)

	InteractionsDeduplicated = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "interactions_deduplicated_total",
			Help: "Total number of interaction events skipped as idempotent duplicates",
		},
	)

	// System Metrics
	AppInfo = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "app_info",
			Help: "Application version and build information",
		},
		[]string{"version", "go_version"},
	)

	AppUptime = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "app_uptime_seconds",
			Help: "Application uptime in seconds",
		},
	)
)

// RecordStoreOp records a storage operation metric.
func RecordStoreOp(operation string, duration time.Duration, err error) {
	StoreOpDuration.WithLabelValues(operation).Observe(duration.Seconds())
	if err != nil {
		StoreOpErrors.WithLabelValues(operation).Inc()
	}
}

// RecordInteraction records a tracked interaction event.
func RecordInteraction(interactionType string, deduplicated bool) {
	if deduplicated {
		InteractionsDeduplicated.Inc()
		return
	}
	InteractionsTracked.WithLabelValues(interactionType).Inc()
}

// RecordTrainingSuccess updates the training gauges after a published run.
func RecordTrainingSuccess(rmse float64) {
	ModelRMSE.Set(rmse)
	ModelLastTrained.Set(float64(time.Now().Unix()))
}
