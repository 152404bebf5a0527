// HackHub - Learning Event Discovery and Recommendation
// Copyright 2026 HackHub Contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/hackhub/hackhub

package storage

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strconv"
	"time"

	"github.com/dgraph-io/badger/v4"
	"github.com/goccy/go-json"
	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/hackhub/hackhub/internal/metrics"
	"github.com/hackhub/hackhub/internal/recommend"
)

// Key prefixes for BadgerDB storage
const (
	interactionKeyPrefix = "interaction:"
	itemKeyPrefix        = "item:"
	profileKeyPrefix     = "profile:"
)

// trendingWindow is how far back interactions count toward trending scores.
const trendingWindow = 30 * 24 * time.Hour

// Trending score weights per interaction type. Explicit ratings dominate;
// passive signals contribute progressively less.
const (
	trendingViewWeight     = 0.1
	trendingLikeWeight     = 0.2
	trendingBookmarkWeight = 0.3
	trendingEnrollWeight   = 0.5
	trendingRatingWeight   = 2.0
)

var (
	// ErrItemNotFound is returned when a catalog item does not exist.
	ErrItemNotFound = errors.New("item not found")

	// ErrProfileNotFound is returned when a user has no profile.
	ErrProfileNotFound = errors.New("profile not found")

	// ErrInvalidRating is returned for rate events outside [1, 5].
	ErrInvalidRating = errors.New("rating must be between 1 and 5")
)

// Store is a BadgerDB-backed implementation of recommend.DataProvider plus
// the write paths for interactions, items, and profiles.
type Store struct {
	db     *badger.DB
	logger zerolog.Logger
}

// Open opens (or creates) a store at the given path.
//
//nolint:gocritic // logger passed by value is acceptable for zerolog
func Open(path string, logger zerolog.Logger) (*Store, error) {
	opts := badger.DefaultOptions(path).WithLogger(nil)
	db, err := badger.Open(opts)
	if err != nil {
		return nil, fmt.Errorf("open badger at %s: %w", path, err)
	}
	return &Store{db: db, logger: logger.With().Str("component", "storage").Logger()}, nil
}

// OpenInMemory opens an ephemeral store. Used in tests.
//
//nolint:gocritic // logger passed by value is acceptable for zerolog
func OpenInMemory(logger zerolog.Logger) (*Store, error) {
	opts := badger.DefaultOptions("").WithInMemory(true).WithLogger(nil)
	db, err := badger.Open(opts)
	if err != nil {
		return nil, fmt.Errorf("open in-memory badger: %w", err)
	}
	return &Store{db: db, logger: logger.With().Str("component", "storage").Logger()}, nil
}

// Close closes the underlying database.
func (s *Store) Close() error {
	return s.db.Close()
}

func interactionKey(in recommend.Interaction) []byte {
	key := interactionKeyPrefix +
		strconv.FormatInt(in.UserID, 10) + ":" +
		strconv.FormatInt(in.ItemID, 10) + ":" +
		in.Type.String()
	if in.Type.Repeatable() {
		key += ":" + uuid.New().String()
	}
	return []byte(key)
}

func itemKey(id int64) []byte {
	return []byte(itemKeyPrefix + strconv.FormatInt(id, 10))
}

func profileKey(userID int64) []byte {
	return []byte(profileKeyPrefix + strconv.FormatInt(userID, 10))
}

// TrackInteraction records an interaction event. Bookmarks and enrollments
// are idempotent per (user, item): a duplicate is skipped without error.
// A rate event replaces any previous rating for the pair. All other types
// append a new record.
func (s *Store) TrackInteraction(ctx context.Context, in recommend.Interaction) error {
	start := time.Now()
	err := s.trackInteraction(in)
	metrics.RecordStoreOp("track_interaction", time.Since(start), err)
	return err
}

func (s *Store) trackInteraction(in recommend.Interaction) error {
	if in.Type == recommend.InteractionRate && (in.Rating < 1 || in.Rating > 5) {
		return fmt.Errorf("%w: got %.1f", ErrInvalidRating, in.Rating)
	}
	if in.Timestamp.IsZero() {
		in.Timestamp = time.Now().UTC()
	}

	key := interactionKey(in)
	data, err := json.Marshal(in)
	if err != nil {
		return fmt.Errorf("marshal interaction: %w", err)
	}

	deduplicated := false
	err = s.db.Update(func(txn *badger.Txn) error {
		// Bookmark and enroll are write-once per pair; rate overwrites.
		if !in.Type.Repeatable() && in.Type != recommend.InteractionRate {
			if _, err := txn.Get(key); err == nil {
				deduplicated = true
				return nil
			} else if !errors.Is(err, badger.ErrKeyNotFound) {
				return fmt.Errorf("check existing interaction: %w", err)
			}
		}
		return txn.Set(key, data)
	})
	if err != nil {
		return fmt.Errorf("store interaction: %w", err)
	}

	metrics.RecordInteraction(in.Type.String(), deduplicated)
	if deduplicated {
		s.logger.Debug().
			Int64("user_id", in.UserID).
			Int64("item_id", in.ItemID).
			Str("type", in.Type.String()).
			Msg("duplicate interaction skipped")
	}
	return nil
}

// AllInteractions returns every recorded interaction event.
func (s *Store) AllInteractions(ctx context.Context) ([]recommend.Interaction, error) {
	start := time.Now()
	out, err := s.scanInteractions(interactionKeyPrefix)
	metrics.RecordStoreOp("all_interactions", time.Since(start), err)
	return out, err
}

// UserInteractions returns a user's interaction history.
func (s *Store) UserInteractions(ctx context.Context, userID int64) ([]recommend.Interaction, error) {
	start := time.Now()
	prefix := interactionKeyPrefix + strconv.FormatInt(userID, 10) + ":"
	out, err := s.scanInteractions(prefix)
	metrics.RecordStoreOp("user_interactions", time.Since(start), err)
	return out, err
}

func (s *Store) scanInteractions(prefix string) ([]recommend.Interaction, error) {
	var interactions []recommend.Interaction
	err := s.db.View(func(txn *badger.Txn) error {
		opts := badger.DefaultIteratorOptions
		opts.PrefetchValues = true
		it := txn.NewIterator(opts)
		defer it.Close()

		p := []byte(prefix)
		for it.Seek(p); it.ValidForPrefix(p); it.Next() {
			var in recommend.Interaction
			err := it.Item().Value(func(val []byte) error {
				return json.Unmarshal(val, &in)
			})
			if err != nil {
				return fmt.Errorf("unmarshal interaction %s: %w", it.Item().Key(), err)
			}
			interactions = append(interactions, in)
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("scan interactions: %w", err)
	}
	return interactions, nil
}

// PutItem upserts a catalog item.
func (s *Store) PutItem(ctx context.Context, item recommend.Item) error {
	start := time.Now()
	data, err := json.Marshal(item)
	if err != nil {
		return fmt.Errorf("marshal item: %w", err)
	}
	err = s.db.Update(func(txn *badger.Txn) error {
		return txn.Set(itemKey(item.ID), data)
	})
	metrics.RecordStoreOp("put_item", time.Since(start), err)
	if err != nil {
		return fmt.Errorf("store item %d: %w", item.ID, err)
	}
	return nil
}

// Item returns a single catalog item, or ErrItemNotFound.
func (s *Store) Item(ctx context.Context, itemID int64) (*recommend.Item, error) {
	start := time.Now()
	var item recommend.Item
	err := s.db.View(func(txn *badger.Txn) error {
		entry, err := txn.Get(itemKey(itemID))
		if errors.Is(err, badger.ErrKeyNotFound) {
			return ErrItemNotFound
		}
		if err != nil {
			return fmt.Errorf("get item: %w", err)
		}
		return entry.Value(func(val []byte) error {
			return json.Unmarshal(val, &item)
		})
	})
	metrics.RecordStoreOp("get_item", time.Since(start), err)
	if err != nil {
		return nil, err
	}
	return &item, nil
}

// AllItems returns the full catalog ordered by key.
func (s *Store) AllItems(ctx context.Context) ([]recommend.Item, error) {
	start := time.Now()
	var items []recommend.Item
	err := s.db.View(func(txn *badger.Txn) error {
		opts := badger.DefaultIteratorOptions
		opts.PrefetchValues = true
		it := txn.NewIterator(opts)
		defer it.Close()

		prefix := []byte(itemKeyPrefix)
		for it.Seek(prefix); it.ValidForPrefix(prefix); it.Next() {
			var item recommend.Item
			err := it.Item().Value(func(val []byte) error {
				return json.Unmarshal(val, &item)
			})
			if err != nil {
				return fmt.Errorf("unmarshal item %s: %w", it.Item().Key(), err)
			}
			items = append(items, item)
		}
		return nil
	})
	metrics.RecordStoreOp("all_items", time.Since(start), err)
	if err != nil {
		return nil, fmt.Errorf("scan items: %w", err)
	}
	return items, nil
}

// PutProfile upserts a user profile.
func (s *Store) PutProfile(ctx context.Context, profile recommend.UserProfile) error {
	start := time.Now()
	data, err := json.Marshal(profile)
	if err != nil {
		return fmt.Errorf("marshal profile: %w", err)
	}
	err = s.db.Update(func(txn *badger.Txn) error {
		return txn.Set(profileKey(profile.UserID), data)
	})
	metrics.RecordStoreOp("put_profile", time.Since(start), err)
	if err != nil {
		return fmt.Errorf("store profile %d: %w", profile.UserID, err)
	}
	return nil
}

// Profile returns a user's profile, or ErrProfileNotFound.
func (s *Store) Profile(ctx context.Context, userID int64) (*recommend.UserProfile, error) {
	start := time.Now()
	var profile recommend.UserProfile
	err := s.db.View(func(txn *badger.Txn) error {
		entry, err := txn.Get(profileKey(userID))
		if errors.Is(err, badger.ErrKeyNotFound) {
			return ErrProfileNotFound
		}
		if err != nil {
			return fmt.Errorf("get profile: %w", err)
		}
		return entry.Value(func(val []byte) error {
			return json.Unmarshal(val, &profile)
		})
	})
	metrics.RecordStoreOp("get_profile", time.Since(start), err)
	if err != nil {
		return nil, err
	}
	return &profile, nil
}

// trendingAccumulator aggregates recent interaction signals per item.
type trendingAccumulator struct {
	score       float64
	ratingSum   float64
	ratingCount int
}

// TrendingItems returns up to limit items ranked by a weighted count of
// interactions inside the trending window plus twice the average explicit
// rating. Items no longer in the catalog are skipped. Ties break on item ID
// for deterministic output.
func (s *Store) TrendingItems(ctx context.Context, limit int) ([]recommend.Item, error) {
	start := time.Now()
	items, err := s.trendingItems(ctx, limit)
	metrics.RecordStoreOp("trending", time.Since(start), err)
	return items, err
}

func (s *Store) trendingItems(ctx context.Context, limit int) ([]recommend.Item, error) {
	if limit <= 0 {
		return nil, nil
	}

	interactions, err := s.scanInteractions(interactionKeyPrefix)
	if err != nil {
		return nil, err
	}

	cutoff := time.Now().Add(-trendingWindow)
	acc := make(map[int64]*trendingAccumulator)
	for _, in := range interactions {
		if in.Timestamp.Before(cutoff) {
			continue
		}
		a := acc[in.ItemID]
		if a == nil {
			a = &trendingAccumulator{}
			acc[in.ItemID] = a
		}
		switch in.Type {
		case recommend.InteractionView:
			a.score += trendingViewWeight
		case recommend.InteractionLike:
			a.score += trendingLikeWeight
		case recommend.InteractionBookmark:
			a.score += trendingBookmarkWeight
		case recommend.InteractionEnroll:
			a.score += trendingEnrollWeight
		case recommend.InteractionRate:
			a.ratingSum += in.Rating
			a.ratingCount++
		}
	}

	itemIDs := make([]int64, 0, len(acc))
	scores := make(map[int64]float64, len(acc))
	for itemID, a := range acc {
		score := a.score
		if a.ratingCount > 0 {
			score += trendingRatingWeight * (a.ratingSum / float64(a.ratingCount))
		}
		itemIDs = append(itemIDs, itemID)
		scores[itemID] = score
	}
	sort.Slice(itemIDs, func(i, j int) bool {
		if scores[itemIDs[i]] != scores[itemIDs[j]] {
			return scores[itemIDs[i]] > scores[itemIDs[j]]
		}
		return itemIDs[i] < itemIDs[j]
	})

	var trending []recommend.Item
	for _, itemID := range itemIDs {
		item, err := s.Item(ctx, itemID)
		if errors.Is(err, ErrItemNotFound) {
			continue
		}
		if err != nil {
			return nil, err
		}
		trending = append(trending, *item)
		if len(trending) == limit {
			break
		}
	}
	return trending, nil
}
