// HackHub - Learning Event Discovery and Recommendation
// Copyright 2026 HackHub Contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/hackhub/hackhub

package recommend

import (
	"context"
	"time"
)

// InteractionType classifies user-item interactions.
type InteractionType int

const (
	// InteractionView indicates the user opened the item detail page.
	InteractionView InteractionType = iota
	// InteractionLike indicates the user liked the item.
	InteractionLike
	// InteractionBookmark indicates the user bookmarked the item.
	InteractionBookmark
	// InteractionEnroll indicates the user enrolled in the item.
	InteractionEnroll
	// InteractionComplete indicates the user completed the item.
	InteractionComplete
	// InteractionRate indicates the user rated the item explicitly.
	InteractionRate
)

// String returns a human-readable name for the interaction type.
func (t InteractionType) String() string {
	switch t {
	case InteractionView:
		return "view"
	case InteractionLike:
		return "like"
	case InteractionBookmark:
		return "bookmark"
	case InteractionEnroll:
		return "enroll"
	case InteractionComplete:
		return "complete"
	case InteractionRate:
		return "rate"
	default:
		return "unknown"
	}
}

// Repeatable reports whether multiple records of this type may exist for
// the same (user, item) pair. Bookmarks and enrollments are idempotent,
// and a re-rate replaces the existing record in place.
func (t InteractionType) Repeatable() bool {
	switch t {
	case InteractionBookmark, InteractionEnroll, InteractionRate:
		return false
	default:
		return true
	}
}

// Interaction represents a single user-item interaction event.
type Interaction struct {
	// UserID is the internal user identifier.
	UserID int64 `json:"user_id"`

	// ItemID is the catalog item identifier.
	ItemID int64 `json:"item_id"`

	// Type classifies the interaction.
	Type InteractionType `json:"type"`

	// Rating is the explicit rating in [1, 5]. Only set for rate events.
	Rating float64 `json:"rating,omitempty"`

	// ViewDurationSeconds is how long the user spent on the detail page.
	// Only meaningful for view events.
	ViewDurationSeconds int `json:"view_duration_seconds,omitempty"`

	// Timestamp is when the interaction occurred.
	Timestamp time.Time `json:"timestamp"`
}

// ItemType is the catalog category of an item.
type ItemType string

const (
	// ItemTypeHackathon is a competitive hackathon event.
	ItemTypeHackathon ItemType = "HACKATHON"
	// ItemTypeCertification is a provider certification exam.
	ItemTypeCertification ItemType = "CERTIFICATION"
	// ItemTypeCourse is a learning course or workshop.
	ItemTypeCourse ItemType = "COURSE"
)

// Item represents a catalog item (hackathon, certification, or course).
// Items are produced by the ingestion subsystem and consumed read-only here.
type Item struct {
	// ID is the unique catalog identifier.
	ID int64 `json:"id"`

	// Title is the item title.
	Title string `json:"title"`

	// Description is the long-form description.
	Description string `json:"description,omitempty"`

	// Type is the catalog category.
	Type ItemType `json:"type"`

	// Provider is the organization offering the item (e.g. "Oracle").
	Provider string `json:"provider,omitempty"`

	// Category is the technology area (e.g. "Cloud Infrastructure").
	Category string `json:"category,omitempty"`

	// Level is the difficulty label (e.g. "Associate", "Professional").
	Level string `json:"level,omitempty"`

	// ExamCode is the provider exam code for certifications.
	ExamCode string `json:"exam_code,omitempty"`

	// EventDate is when the event takes place, if dated.
	EventDate time.Time `json:"event_date,omitzero"`

	// Location is the venue or "Online".
	Location string `json:"location,omitempty"`

	// Price is the listed price in USD. Zero means free.
	Price float64 `json:"price,omitempty"`

	// SourceURL points at the original listing.
	SourceURL string `json:"source_url,omitempty"`
}

// SkillLevel is a user's self-reported proficiency.
type SkillLevel string

const (
	// SkillBeginner matches introductory material.
	SkillBeginner SkillLevel = "BEGINNER"
	// SkillIntermediate matches associate-level material.
	SkillIntermediate SkillLevel = "INTERMEDIATE"
	// SkillAdvanced matches expert-level material.
	SkillAdvanced SkillLevel = "ADVANCED"
)

// UserProfile holds the static preference attributes used for
// content-based scoring.
type UserProfile struct {
	// UserID is the owning user.
	UserID int64 `json:"user_id"`

	// SkillLevel is the self-reported proficiency.
	SkillLevel SkillLevel `json:"skill_level,omitempty"`

	// PreferredProviders is the set of providers the user favors.
	PreferredProviders []string `json:"preferred_providers,omitempty"`

	// Interests is the set of free-form interest terms.
	Interests []string `json:"interests,omitempty"`

	// PreferredItemTypes is the set of item type names the user favors.
	// Entries may be singular or plural ("hackathon" / "hackathons").
	PreferredItemTypes []string `json:"preferred_item_types,omitempty"`
}

// AffinityMatrix is the sparse user -> item -> affinity structure derived
// from the interaction history. Values are in [1, 5] after mapping; at most
// one affinity exists per (user, item) pair.
type AffinityMatrix map[int64]map[int64]float64

// Strategy identifies which arbitration branch produced a response.
type Strategy string

const (
	// StrategyColdStart blends content-based and trending items for users
	// with too few interactions to support model inference.
	StrategyColdStart Strategy = "COLD_START"
	// StrategyHybrid blends content-based and trending items for active
	// users while no trained model is available.
	StrategyHybrid Strategy = "HYBRID"
	// StrategyCollaborative ranks items with the latent-factor model.
	StrategyCollaborative Strategy = "COLLABORATIVE"
)

// RecommendedItem is a single scored recommendation.
type RecommendedItem struct {
	// Item is the recommended catalog item.
	Item Item `json:"item"`

	// Score is the strategy-specific score. Zero when the producing
	// strategy ranks without exposing a score.
	Score float64 `json:"score"`

	// Reason is a human-readable explanation for the recommendation.
	Reason string `json:"reason"`
}

// Response represents a recommendation response.
type Response struct {
	// RequestID is a unique identifier for tracing.
	RequestID string `json:"request_id"`

	// UserID is the user the recommendations are for.
	UserID int64 `json:"user_id"`

	// Recommendations is the ordered result list.
	Recommendations []RecommendedItem `json:"recommendations"`

	// Strategy records which arbitration branch was used.
	Strategy Strategy `json:"strategy"`

	// GeneratedAt is when the response was produced.
	GeneratedAt time.Time `json:"generated_at"`
}

// TrainingResult summarizes one training run of the latent-factor model.
type TrainingResult struct {
	// Algorithm is the model identifier.
	Algorithm string `json:"algorithm"`

	// RMSE is the root-mean-square error over the training set after the
	// final iteration. Training error, not a generalization estimate.
	RMSE float64 `json:"rmse"`

	// MAE is approximated as 0.8 * RMSE, not measured directly.
	MAE float64 `json:"mae"`

	// TrainingTimeMs is the wall-clock training duration in milliseconds.
	TrainingTimeMs int64 `json:"training_time_ms"`

	// NumUsers is the number of users in the training matrix.
	NumUsers int `json:"num_users"`

	// Success is false when the affinity matrix was empty or training was
	// refused; the previously published model stays in service.
	Success bool `json:"success"`

	// Error describes why training did not run, when Success is false.
	Error string `json:"error,omitempty"`
}

// DatasetStats describes the interaction dataset.
type DatasetStats struct {
	// TotalInteractions is the number of distinct (user, item) affinities.
	TotalInteractions int `json:"total_interactions"`

	// UniqueUsers is the number of distinct users.
	UniqueUsers int `json:"unique_users"`

	// UniqueItems is the number of distinct items.
	UniqueItems int `json:"unique_items"`

	// AvgPerUser is TotalInteractions / UniqueUsers.
	AvgPerUser float64 `json:"avg_per_user"`

	// AvgPerItem is TotalInteractions / UniqueItems.
	AvgPerItem float64 `json:"avg_per_item"`

	// Sparsity is 1 - TotalInteractions/(UniqueUsers*UniqueItems).
	// Zero when either dimension is empty.
	Sparsity float64 `json:"sparsity"`
}

// DataProvider supplies interaction, catalog, and profile data to the
// engine. Implemented by the storage layer; defined here so the engine
// does not depend on a concrete store.
type DataProvider interface {
	// AllInteractions returns every recorded interaction event.
	AllInteractions(ctx context.Context) ([]Interaction, error)

	// UserInteractions returns a user's interaction history.
	UserInteractions(ctx context.Context, userID int64) ([]Interaction, error)

	// Profile returns a user's profile. A missing profile is reported
	// with storage.ErrNotFound semantics, not a nil-nil pair.
	Profile(ctx context.Context, userID int64) (*UserProfile, error)

	// AllItems returns the full catalog.
	AllItems(ctx context.Context) ([]Item, error)

	// Item returns a single catalog item.
	Item(ctx context.Context, itemID int64) (*Item, error)

	// TrendingItems returns up to limit items ranked by recent popularity.
	TrendingItems(ctx context.Context, limit int) ([]Item, error)
}
