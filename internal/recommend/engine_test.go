// HackHub - Learning Event Discovery and Recommendation
// Copyright 2026 HackHub Contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/hackhub/hackhub

package recommend

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/rs/zerolog"
)

var errNotFound = errors.New("not found")

// mockDataProvider implements DataProvider for testing.
type mockDataProvider struct {
	interactions    []Interaction
	items           []Item
	profiles        map[int64]*UserProfile
	trending        []Item
	interactionsErr error
	itemsErr        error
	trendingErr     error
}

func (m *mockDataProvider) AllInteractions(ctx context.Context) ([]Interaction, error) {
	if m.interactionsErr != nil {
		return nil, m.interactionsErr
	}
	return m.interactions, nil
}

func (m *mockDataProvider) UserInteractions(ctx context.Context, userID int64) ([]Interaction, error) {
	if m.interactionsErr != nil {
		return nil, m.interactionsErr
	}
	var out []Interaction
	for _, in := range m.interactions {
		if in.UserID == userID {
			out = append(out, in)
		}
	}
	return out, nil
}

func (m *mockDataProvider) Profile(ctx context.Context, userID int64) (*UserProfile, error) {
	if p, ok := m.profiles[userID]; ok {
		return p, nil
	}
	return nil, errNotFound
}

func (m *mockDataProvider) AllItems(ctx context.Context) ([]Item, error) {
	if m.itemsErr != nil {
		return nil, m.itemsErr
	}
	return m.items, nil
}

func (m *mockDataProvider) Item(ctx context.Context, itemID int64) (*Item, error) {
	for i := range m.items {
		if m.items[i].ID == itemID {
			return &m.items[i], nil
		}
	}
	return nil, errNotFound
}

func (m *mockDataProvider) TrendingItems(ctx context.Context, limit int) ([]Item, error) {
	if m.trendingErr != nil {
		return nil, m.trendingErr
	}
	if len(m.trending) > limit {
		return m.trending[:limit], nil
	}
	return m.trending, nil
}

func newTestEngine(t *testing.T, dp DataProvider) *Engine {
	t.Helper()
	engine, err := NewEngine(DefaultConfig(), zerolog.Nop())
	if err != nil {
		t.Fatalf("NewEngine failed: %v", err)
	}
	engine.SetDataProvider(dp)
	return engine
}

// denseProvider builds a dataset large enough to pass the training
// threshold: four users with six completions each over six courses.
func denseProvider() *mockDataProvider {
	base := time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC)
	var interactions []Interaction
	var items []Item
	for i := int64(10); i < 16; i++ {
		items = append(items, Item{ID: i, Title: fmt.Sprintf("Course %d", i), Type: ItemTypeCourse})
	}
	for user := int64(1); user <= 4; user++ {
		for i := int64(10); i < 16; i++ {
			interactions = append(interactions, Interaction{
				UserID:    user,
				ItemID:    i,
				Type:      InteractionComplete,
				Timestamp: base.Add(time.Duration(user*10+i) * time.Minute),
			})
		}
	}
	return &mockDataProvider{
		interactions: interactions,
		items:        items,
		trending:     items,
		profiles:     map[int64]*UserProfile{},
	}
}

func TestEngine_GetRecommendations_ColdStart(t *testing.T) {
	dp := &mockDataProvider{
		interactions: []Interaction{
			{UserID: 1, ItemID: 10, Type: InteractionView},
		},
		items: []Item{
			{ID: 10, Title: "Go Fundamentals", Type: ItemTypeCourse, Level: "Beginner"},
			{ID: 11, Title: "Cloud Hackathon", Type: ItemTypeHackathon},
			{ID: 12, Title: "Data Engineering", Type: ItemTypeCourse},
		},
		trending: []Item{
			{ID: 11, Title: "Cloud Hackathon", Type: ItemTypeHackathon},
			{ID: 12, Title: "Data Engineering", Type: ItemTypeCourse},
		},
		profiles: map[int64]*UserProfile{
			1: {UserID: 1, SkillLevel: SkillBeginner},
		},
	}
	engine := newTestEngine(t, dp)

	resp, err := engine.GetRecommendations(context.Background(), 1, 5, "")
	if err != nil {
		t.Fatalf("GetRecommendations failed: %v", err)
	}

	if resp.Strategy != StrategyColdStart {
		t.Errorf("strategy = %s, want COLD_START", resp.Strategy)
	}
	if resp.UserID != 1 {
		t.Errorf("UserID = %d, want 1", resp.UserID)
	}
	if resp.RequestID == "" {
		t.Error("RequestID empty")
	}
	if len(resp.Recommendations) == 0 {
		t.Fatal("expected recommendations")
	}

	seen := make(map[int64]bool)
	for _, rec := range resp.Recommendations {
		if seen[rec.Item.ID] {
			t.Errorf("duplicate item %d in response", rec.Item.ID)
		}
		seen[rec.Item.ID] = true
		if rec.Reason == "" {
			t.Errorf("item %d has no reason", rec.Item.ID)
		}
	}
}

func TestEngine_GetRecommendations_MissingProfile(t *testing.T) {
	// No profile: content contributes nothing, trending carries the result.
	dp := &mockDataProvider{
		trending: []Item{{ID: 11, Title: "Trend", Type: ItemTypeCourse}},
		profiles: map[int64]*UserProfile{},
	}
	engine := newTestEngine(t, dp)

	resp, err := engine.GetRecommendations(context.Background(), 7, 5, "")
	if err != nil {
		t.Fatalf("missing profile should not fail the request: %v", err)
	}
	if resp.Strategy != StrategyColdStart {
		t.Errorf("strategy = %s, want COLD_START", resp.Strategy)
	}
	if len(resp.Recommendations) != 1 || resp.Recommendations[0].Item.ID != 11 {
		t.Errorf("expected the trending item, got %+v", resp.Recommendations)
	}
}

func TestEngine_GetRecommendations_Hybrid(t *testing.T) {
	dp := denseProvider()
	dp.profiles[1] = &UserProfile{UserID: 1, Interests: []string{"course"}}
	engine := newTestEngine(t, dp)

	// No model trained yet: an active user lands in the hybrid branch.
	resp, err := engine.GetRecommendations(context.Background(), 1, 4, "")
	if err != nil {
		t.Fatalf("GetRecommendations failed: %v", err)
	}
	if resp.Strategy != StrategyHybrid {
		t.Errorf("strategy = %s, want HYBRID", resp.Strategy)
	}
	if len(resp.Recommendations) == 0 {
		t.Fatal("expected recommendations")
	}
}

func TestEngine_GetRecommendations_Collaborative(t *testing.T) {
	dp := denseProvider()
	engine := newTestEngine(t, dp)

	result := engine.TrainModel(context.Background())
	if !result.Success {
		t.Fatalf("training failed: %s", result.Error)
	}

	resp, err := engine.GetRecommendations(context.Background(), 1, 3, "")
	if err != nil {
		t.Fatalf("GetRecommendations failed: %v", err)
	}
	if resp.Strategy != StrategyCollaborative {
		t.Errorf("strategy = %s, want COLLABORATIVE", resp.Strategy)
	}
}

func TestEngine_GetRecommendations_TypeFilter(t *testing.T) {
	dp := &mockDataProvider{
		items: []Item{
			{ID: 10, Title: "Cloud Course", Type: ItemTypeCourse},
			{ID: 11, Title: "Cloud Hackathon", Type: ItemTypeHackathon},
		},
		trending: []Item{
			{ID: 10, Title: "Cloud Course", Type: ItemTypeCourse},
			{ID: 11, Title: "Cloud Hackathon", Type: ItemTypeHackathon},
		},
		profiles: map[int64]*UserProfile{
			1: {UserID: 1, Interests: []string{"cloud"}},
		},
	}
	engine := newTestEngine(t, dp)

	resp, err := engine.GetRecommendations(context.Background(), 1, 5, ItemTypeHackathon)
	if err != nil {
		t.Fatalf("GetRecommendations failed: %v", err)
	}
	for _, rec := range resp.Recommendations {
		if rec.Item.Type != ItemTypeHackathon {
			t.Errorf("item %d has type %s, want HACKATHON", rec.Item.ID, rec.Item.Type)
		}
	}
	if len(resp.Recommendations) == 0 {
		t.Fatal("expected the hackathon to pass the filter")
	}
}

func TestEngine_GetRecommendations_LimitClamping(t *testing.T) {
	dp := &mockDataProvider{profiles: map[int64]*UserProfile{}}
	engine := newTestEngine(t, dp)

	// Zero and negative limits fall back to the default; the call itself
	// must succeed even with an empty catalog.
	for _, limit := range []int{0, -3, 1000} {
		if _, err := engine.GetRecommendations(context.Background(), 1, limit, ""); err != nil {
			t.Errorf("limit %d: unexpected error %v", limit, err)
		}
	}
}

func TestEngine_TrainModel(t *testing.T) {
	t.Run("skips below minimum interactions", func(t *testing.T) {
		dp := &mockDataProvider{
			interactions: []Interaction{{UserID: 1, ItemID: 10, Type: InteractionLike}},
		}
		engine := newTestEngine(t, dp)

		result := engine.TrainModel(context.Background())
		if result.Success {
			t.Error("expected skip below threshold")
		}
		if engine.Model() != nil {
			t.Error("no model should be published after a skipped run")
		}
	})

	t.Run("trains and publishes", func(t *testing.T) {
		engine := newTestEngine(t, denseProvider())

		result := engine.TrainModel(context.Background())
		if !result.Success {
			t.Fatalf("training failed: %s", result.Error)
		}
		model := engine.Model()
		if model == nil || !model.Trained {
			t.Fatal("expected a published trained model")
		}
		if result.NumUsers != 4 {
			t.Errorf("NumUsers = %d, want 4", result.NumUsers)
		}
	})

	t.Run("concurrent run is refused", func(t *testing.T) {
		engine := newTestEngine(t, denseProvider())

		engine.trainMu.Lock()
		defer engine.trainMu.Unlock()

		result := engine.TrainModel(context.Background())
		if result.Success {
			t.Error("expected refusal while another run holds the lock")
		}
		if result.Error == "" {
			t.Error("expected an error description")
		}
	})

	t.Run("provider failure keeps previous model", func(t *testing.T) {
		dp := denseProvider()
		engine := newTestEngine(t, dp)
		if result := engine.TrainModel(context.Background()); !result.Success {
			t.Fatalf("seed training failed: %s", result.Error)
		}
		published := engine.Model()

		dp.interactionsErr = errors.New("store offline")
		if result := engine.TrainModel(context.Background()); result.Success {
			t.Error("expected failure when the provider errors")
		}
		if engine.Model() != published {
			t.Error("failed run must not replace the published model")
		}
	})

	t.Run("cancelled context discards the result", func(t *testing.T) {
		engine := newTestEngine(t, denseProvider())
		ctx, cancel := context.WithCancel(context.Background())
		cancel()

		result := engine.TrainModel(ctx)
		if result.Success {
			t.Error("expected failure for cancelled context")
		}
		if engine.Model() != nil {
			t.Error("cancelled run must not publish a model")
		}
	})
}

func TestEngine_GetSimilarItems(t *testing.T) {
	dp := &mockDataProvider{
		items: []Item{
			{ID: 10, Title: "Course A", Type: ItemTypeCourse},
			{ID: 11, Title: "Course B", Type: ItemTypeCourse},
			{ID: 12, Title: "Course C", Type: ItemTypeCourse},
		},
		trending: []Item{
			{ID: 10, Title: "Course A", Type: ItemTypeCourse},
			{ID: 11, Title: "Course B", Type: ItemTypeCourse},
			{ID: 12, Title: "Course C", Type: ItemTypeCourse},
		},
	}
	engine := newTestEngine(t, dp)

	t.Run("excludes the anchor item", func(t *testing.T) {
		recs, err := engine.GetSimilarItems(context.Background(), 10, 5)
		if err != nil {
			t.Fatalf("GetSimilarItems failed: %v", err)
		}
		for _, rec := range recs {
			if rec.Item.ID == 10 {
				t.Error("anchor item included in its own similar list")
			}
			if rec.Reason == "" {
				t.Error("fallback must be labeled in the reason")
			}
		}
		if len(recs) != 2 {
			t.Errorf("expected 2 items, got %d", len(recs))
		}
	})

	t.Run("unknown item errors", func(t *testing.T) {
		if _, err := engine.GetSimilarItems(context.Background(), 999, 5); err == nil {
			t.Error("expected error for unknown item")
		}
	})
}

func TestEngine_GetDatasetStats(t *testing.T) {
	engine := newTestEngine(t, denseProvider())

	stats, err := engine.GetDatasetStats(context.Background())
	if err != nil {
		t.Fatalf("GetDatasetStats failed: %v", err)
	}
	if stats.UniqueUsers != 4 || stats.UniqueItems != 6 {
		t.Errorf("users/items = %d/%d, want 4/6", stats.UniqueUsers, stats.UniqueItems)
	}
	if stats.TotalInteractions != 24 {
		t.Errorf("TotalInteractions = %d, want 24", stats.TotalInteractions)
	}
}

func TestNewEngine_InvalidConfig(t *testing.T) {
	cfg := DefaultConfig()
	cfg.SVD.Factors = -1
	if _, err := NewEngine(cfg, zerolog.Nop()); err == nil {
		t.Error("expected error for invalid config")
	}
}
