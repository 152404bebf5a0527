// HackHub - Learning Event Discovery and Recommendation
// Copyright 2026 HackHub Contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/hackhub/hackhub

package recommend

import (
	"context"
	"fmt"
	"math/rand"
	"sync"
	"sync/atomic"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/hackhub/hackhub/internal/metrics"
)

// Note: apart from metrics, this package has no dependencies on other
// internal packages. The DataProvider interface allows integration with the
// storage package without creating circular imports.

// Engine produces recommendations by arbitrating between the latent-factor
// model, content-based scoring, and trending items. It is safe for
// concurrent use: the published model is an immutable snapshot behind an
// atomic pointer, and training runs are serialized by a non-blocking lock.
type Engine struct {
	config *Config
	logger zerolog.Logger

	// model holds the currently published latent-factor model. Nil until
	// the first successful training run.
	model atomic.Pointer[Model]

	// trainMu serializes training runs. TryLock keeps a second concurrent
	// TrainModel call from queueing behind an in-flight run.
	trainMu sync.Mutex

	provider DataProvider
}

// NewEngine creates a recommendation engine.
//
//nolint:gocritic // logger passed by value is acceptable for zerolog
func NewEngine(cfg *Config, logger zerolog.Logger) (*Engine, error) {
	if cfg == nil {
		cfg = DefaultConfig()
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	return &Engine{
		config: cfg,
		logger: logger.With().Str("component", "recommend").Logger(),
	}, nil
}

// SetDataProvider sets the data provider for training and prediction.
func (e *Engine) SetDataProvider(dp DataProvider) {
	e.provider = dp
}

// Model returns the currently published model, or nil before the first
// successful training run.
func (e *Engine) Model() *Model {
	return e.model.Load()
}

// GetRecommendations produces up to limit recommendations for a user.
// typeFilter restricts results to one catalog category when non-empty.
// The strategy is chosen from the user's interaction count and whether a
// trained model is published; a missing profile degrades the content
// contribution to empty rather than failing the request.
func (e *Engine) GetRecommendations(ctx context.Context, userID int64, limit int, typeFilter ItemType) (*Response, error) {
	start := time.Now()
	limit = e.clampLimit(limit)

	history, err := e.provider.UserInteractions(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("load user interactions: %w", err)
	}

	profile, err := e.provider.Profile(ctx, userID)
	if err != nil {
		// Content scoring is skipped without a profile; the trending and
		// model contributions still apply.
		e.logger.Debug().Int64("user_id", userID).Err(err).Msg("no profile, content scoring disabled")
		profile = nil
	}

	model := e.model.Load()
	trained := model != nil && model.Trained

	var (
		recs     []RecommendedItem
		strategy Strategy
	)
	switch {
	case len(history) >= e.config.Strategy.MinInteractionsForCF && trained:
		strategy = StrategyCollaborative
		recs, err = e.collaborative(ctx, userID, model, history, limit, typeFilter)
	case len(history) >= e.config.Strategy.MinInteractionsForCF:
		strategy = StrategyHybrid
		recs, err = e.hybrid(ctx, profile, limit, typeFilter)
	default:
		strategy = StrategyColdStart
		recs, err = e.coldStart(ctx, profile, limit, typeFilter)
	}
	if err != nil {
		return nil, fmt.Errorf("%s recommendations: %w", strategy, err)
	}

	metrics.RecommendRequestsTotal.WithLabelValues(string(strategy)).Inc()
	metrics.RecommendLatency.Observe(time.Since(start).Seconds())

	e.logger.Debug().
		Int64("user_id", userID).
		Str("strategy", string(strategy)).
		Int("count", len(recs)).
		Dur("elapsed", time.Since(start)).
		Msg("recommendations generated")

	return &Response{
		RequestID:       uuid.New().String(),
		UserID:          userID,
		Recommendations: recs,
		Strategy:        strategy,
		GeneratedAt:     time.Now().UTC(),
	}, nil
}

// collaborative ranks unseen items with the latent-factor model, asking for
// twice the requested size so the type filter has room to discard. When the
// filtered model output still falls short, user-based neighborhood CF fills
// the remainder.
func (e *Engine) collaborative(ctx context.Context, userID int64, model *Model, history []Interaction, limit int, typeFilter ItemType) ([]RecommendedItem, error) {
	catalog, err := e.catalogIndex(ctx)
	if err != nil {
		return nil, err
	}

	seen := make(map[int64]float64, len(history))
	for _, in := range history {
		seen[in.ItemID] = 1
	}

	recs := e.resolveAndFilter(model.Recommendations(userID, seen, 2*limit), catalog, typeFilter)
	if len(recs) > limit {
		recs = recs[:limit]
	}
	if len(recs) >= limit {
		return recs, nil
	}

	// Neighborhood fill for the tail.
	all, err := e.provider.AllInteractions(ctx)
	if err != nil {
		return nil, fmt.Errorf("load interactions for neighborhood fill: %w", err)
	}
	fill := e.resolveAndFilter(UserCFRecommend(userID, BuildMatrix(all), 2*limit), catalog, typeFilter)
	recs = appendDedup(recs, fill, limit)
	return recs, nil
}

// hybrid fills most of the result from content-based scoring and tops it up
// with trending items.
func (e *Engine) hybrid(ctx context.Context, profile *UserProfile, limit int, typeFilter ItemType) ([]RecommendedItem, error) {
	contentLimit := int(e.config.Strategy.ContentRatioHybrid * float64(limit))
	recs, err := e.contentPart(ctx, profile, contentLimit, typeFilter)
	if err != nil {
		return nil, err
	}
	return e.trendingFill(ctx, recs, limit, limit, typeFilter)
}

// coldStart blends content-based and trending items for users with little
// history. Trending is fetched oversampled so the type filter and dedup
// still leave enough to fill the quota.
func (e *Engine) coldStart(ctx context.Context, profile *UserProfile, limit int, typeFilter ItemType) ([]RecommendedItem, error) {
	contentLimit := int(e.config.Strategy.ContentRatioColdStart * float64(limit))
	recs, err := e.contentPart(ctx, profile, contentLimit, typeFilter)
	if err != nil {
		return nil, err
	}
	trendingLimit := limit - len(recs)
	return e.trendingFill(ctx, recs, 2*trendingLimit, limit, typeFilter)
}

// contentPart scores the catalog against the profile. A nil profile
// contributes nothing.
func (e *Engine) contentPart(ctx context.Context, profile *UserProfile, limit int, typeFilter ItemType) ([]RecommendedItem, error) {
	if profile == nil || limit <= 0 {
		return nil, nil
	}
	items, err := e.provider.AllItems(ctx)
	if err != nil {
		return nil, fmt.Errorf("load catalog: %w", err)
	}
	if typeFilter != "" {
		filtered := items[:0:0]
		for _, item := range items {
			if item.Type == typeFilter {
				filtered = append(filtered, item)
			}
		}
		items = filtered
	}
	return ContentRecommend(profile, items, limit), nil
}

// trendingFill tops up recs with trending items until total is reached,
// skipping duplicates and items outside the type filter.
func (e *Engine) trendingFill(ctx context.Context, recs []RecommendedItem, fetch, total int, typeFilter ItemType) ([]RecommendedItem, error) {
	if len(recs) >= total {
		return recs[:total], nil
	}
	if fetch <= 0 {
		fetch = total
	}
	trending, err := e.provider.TrendingItems(ctx, fetch)
	if err != nil {
		return nil, fmt.Errorf("load trending items: %w", err)
	}

	fill := make([]RecommendedItem, 0, len(trending))
	for _, item := range trending {
		if typeFilter != "" && item.Type != typeFilter {
			continue
		}
		fill = append(fill, RecommendedItem{Item: item, Reason: "Trending now"})
	}
	return appendDedup(recs, fill, total), nil
}

// GetSimilarItems returns items related to the given item. Item-item
// similarity is not modeled yet, so this is a trending fallback labeled as
// such in the reason string.
func (e *Engine) GetSimilarItems(ctx context.Context, itemID int64, limit int) ([]RecommendedItem, error) {
	limit = e.clampLimit(limit)
	metrics.SimilarItemRequestsTotal.Inc()

	if _, err := e.provider.Item(ctx, itemID); err != nil {
		return nil, fmt.Errorf("load item %d: %w", itemID, err)
	}

	trending, err := e.provider.TrendingItems(ctx, limit+1)
	if err != nil {
		return nil, fmt.Errorf("load trending items: %w", err)
	}

	recs := make([]RecommendedItem, 0, limit)
	for _, item := range trending {
		if item.ID == itemID {
			continue
		}
		recs = append(recs, RecommendedItem{
			Item:   item,
			Reason: "Similar-item ranking unavailable, showing trending",
		})
		if len(recs) == limit {
			break
		}
	}
	return recs, nil
}

// TrainModel runs one training pass over the full interaction history and
// publishes the resulting model on success. Only one run proceeds at a
// time; a concurrent call returns a failed result instead of blocking.
// Failure leaves the previously published model in service.
func (e *Engine) TrainModel(ctx context.Context) TrainingResult {
	if !e.trainMu.TryLock() {
		return TrainingResult{
			Algorithm: svdAlgorithmName,
			Success:   false,
			Error:     "training already in progress",
		}
	}
	defer e.trainMu.Unlock()

	interactions, err := e.provider.AllInteractions(ctx)
	if err != nil {
		metrics.TrainingRunsTotal.WithLabelValues("failure").Inc()
		return TrainingResult{
			Algorithm: svdAlgorithmName,
			Success:   false,
			Error:     fmt.Sprintf("load interactions: %v", err),
		}
	}
	if len(interactions) < e.config.Training.MinInteractions {
		e.logger.Info().
			Int("interactions", len(interactions)).
			Int("required", e.config.Training.MinInteractions).
			Msg("skipping training, not enough data")
		metrics.TrainingRunsTotal.WithLabelValues("skipped").Inc()
		return TrainingResult{
			Algorithm: svdAlgorithmName,
			Success:   false,
			Error:     fmt.Sprintf("need %d interactions, have %d", e.config.Training.MinInteractions, len(interactions)),
		}
	}

	seed := e.config.Seed
	if seed == 0 {
		seed = defaultTrainSeed
	}
	model, result := TrainSVD(BuildMatrix(interactions), SVDParams{
		Factors:        e.config.SVD.Factors,
		Iterations:     e.config.SVD.Iterations,
		LearningRate:   e.config.SVD.LearningRate,
		Regularization: e.config.SVD.Regularization,
		Rand:           rand.New(rand.NewSource(seed)), //nolint:gosec // deterministic init, not crypto
		Logger:         &e.logger,
	})

	if !result.Success {
		metrics.TrainingRunsTotal.WithLabelValues("failure").Inc()
		e.logger.Warn().Str("error", result.Error).Msg("training failed, keeping previous model")
		return result
	}

	// Shutdown mid-training discards the result instead of publishing a
	// model nothing will read.
	if ctx.Err() != nil {
		result.Success = false
		result.Error = ctx.Err().Error()
		metrics.TrainingRunsTotal.WithLabelValues("failure").Inc()
		return result
	}

	e.model.Store(model)
	metrics.TrainingRunsTotal.WithLabelValues("success").Inc()
	metrics.TrainingDuration.Observe(float64(result.TrainingTimeMs) / 1000.0)
	metrics.RecordTrainingSuccess(result.RMSE)

	e.logger.Info().
		Float64("rmse", result.RMSE).
		Int("users", result.NumUsers).
		Int64("duration_ms", result.TrainingTimeMs).
		Msg("model trained and published")
	return result
}

// GetDatasetStats computes statistics over the current interaction set.
func (e *Engine) GetDatasetStats(ctx context.Context) (DatasetStats, error) {
	interactions, err := e.provider.AllInteractions(ctx)
	if err != nil {
		return DatasetStats{}, fmt.Errorf("load interactions: %w", err)
	}
	return Stats(BuildMatrix(interactions)), nil
}

// catalogIndex loads the catalog into an id-keyed map.
func (e *Engine) catalogIndex(ctx context.Context) (map[int64]Item, error) {
	items, err := e.provider.AllItems(ctx)
	if err != nil {
		return nil, fmt.Errorf("load catalog: %w", err)
	}
	index := make(map[int64]Item, len(items))
	for _, item := range items {
		index[item.ID] = item
	}
	return index, nil
}

// resolveAndFilter replaces bare item IDs from the rankers with full
// catalog metadata, dropping items no longer in the catalog or outside the
// type filter.
func (e *Engine) resolveAndFilter(recs []RecommendedItem, catalog map[int64]Item, typeFilter ItemType) []RecommendedItem {
	out := recs[:0:0]
	for _, rec := range recs {
		item, ok := catalog[rec.Item.ID]
		if !ok {
			continue
		}
		if typeFilter != "" && item.Type != typeFilter {
			continue
		}
		rec.Item = item
		out = append(out, rec)
	}
	return out
}

// appendDedup appends fill entries not already present in recs by item ID,
// stopping at total.
func appendDedup(recs, fill []RecommendedItem, total int) []RecommendedItem {
	seen := make(map[int64]struct{}, len(recs))
	for _, rec := range recs {
		seen[rec.Item.ID] = struct{}{}
	}
	for _, rec := range fill {
		if len(recs) >= total {
			break
		}
		if _, dup := seen[rec.Item.ID]; dup {
			continue
		}
		seen[rec.Item.ID] = struct{}{}
		recs = append(recs, rec)
	}
	if len(recs) > total {
		recs = recs[:total]
	}
	return recs
}

func (e *Engine) clampLimit(limit int) int {
	if limit <= 0 {
		return e.config.Limits.DefaultLimit
	}
	if limit > e.config.Limits.MaxLimit {
		return e.config.Limits.MaxLimit
	}
	return limit
}
