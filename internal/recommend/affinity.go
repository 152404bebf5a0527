// HackHub - Learning Event Discovery and Recommendation
// Copyright 2026 HackHub Contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/hackhub/hackhub

package recommend

import (
	"bufio"
	"fmt"
	"math/rand"
	"os"
	"sort"
)

// longViewThresholdSeconds is the view duration above which a view counts
// as strong engagement rather than a casual page open.
const longViewThresholdSeconds = 60

// Affinity maps an interaction to its implicit rating on the 1-5 scale.
// The mapping is total: every interaction type yields a value, and a rate
// event with no rating yields 0 so it never outranks implicit signals.
func Affinity(in Interaction) float64 {
	switch in.Type {
	case InteractionView:
		if in.ViewDurationSeconds > longViewThresholdSeconds {
			return 2.0
		}
		return 1.0
	case InteractionLike:
		return 3.0
	case InteractionBookmark:
		return 3.5
	case InteractionEnroll:
		return 4.5
	case InteractionComplete:
		return 5.0
	case InteractionRate:
		return in.Rating
	default:
		return 0.0
	}
}

// BuildMatrix folds interactions into a sparse user-item affinity matrix.
// When the same (user, item) pair appears more than once the most recent
// interaction wins: input is sorted by timestamp ascending before applying,
// so the result does not depend on the caller's ordering.
func BuildMatrix(interactions []Interaction) AffinityMatrix {
	sorted := make([]Interaction, len(interactions))
	copy(sorted, interactions)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].Timestamp.Before(sorted[j].Timestamp)
	})

	matrix := make(AffinityMatrix)
	for _, in := range sorted {
		row, ok := matrix[in.UserID]
		if !ok {
			row = make(map[int64]float64)
			matrix[in.UserID] = row
		}
		row[in.ItemID] = Affinity(in)
	}
	return matrix
}

// RatingRecord is one flat (user, item, affinity, timestamp) tuple in the
// text export format consumed by offline evaluation tooling.
type RatingRecord struct {
	UserID   int64
	ItemID   int64
	Affinity float64
	Epoch    int64
}

// ExportFlat converts interactions to flat rating records, preserving the
// input order. Duplicates are not collapsed; offline tooling applies its
// own aggregation.
func ExportFlat(interactions []Interaction) []RatingRecord {
	records := make([]RatingRecord, 0, len(interactions))
	for _, in := range interactions {
		records = append(records, RatingRecord{
			UserID:   in.UserID,
			ItemID:   in.ItemID,
			Affinity: Affinity(in),
			Epoch:    in.Timestamp.Unix(),
		})
	}
	return records
}

// WriteRatings writes rating records to path, one space-separated line per
// record: "userID itemID affinity epoch" with the affinity at one decimal.
func WriteRatings(path string, records []RatingRecord) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create ratings file: %w", err)
	}
	defer f.Close()

	w := bufio.NewWriter(f)
	for _, r := range records {
		if _, err := fmt.Fprintf(w, "%d %d %.1f %d\n", r.UserID, r.ItemID, r.Affinity, r.Epoch); err != nil {
			return fmt.Errorf("write rating record: %w", err)
		}
	}
	if err := w.Flush(); err != nil {
		return fmt.Errorf("flush ratings file: %w", err)
	}
	return nil
}

// SplitTrainTest shuffles records with the given source and splits them
// into train and test sets. The train set holds floor(ratio*n) records.
// The input slice is not modified.
func SplitTrainTest(records []RatingRecord, ratio float64, rng *rand.Rand) (train, test []RatingRecord) {
	shuffled := make([]RatingRecord, len(records))
	copy(shuffled, records)
	rng.Shuffle(len(shuffled), func(i, j int) {
		shuffled[i], shuffled[j] = shuffled[j], shuffled[i]
	})

	cut := int(ratio * float64(len(shuffled)))
	return shuffled[:cut], shuffled[cut:]
}

// Stats computes dataset statistics over an affinity matrix.
func Stats(matrix AffinityMatrix) DatasetStats {
	var stats DatasetStats
	items := make(map[int64]struct{})
	for _, row := range matrix {
		stats.TotalInteractions += len(row)
		for itemID := range row {
			items[itemID] = struct{}{}
		}
	}
	stats.UniqueUsers = len(matrix)
	stats.UniqueItems = len(items)

	if stats.UniqueUsers > 0 {
		stats.AvgPerUser = float64(stats.TotalInteractions) / float64(stats.UniqueUsers)
	}
	if stats.UniqueItems > 0 {
		stats.AvgPerItem = float64(stats.TotalInteractions) / float64(stats.UniqueItems)
	}
	if stats.UniqueUsers > 0 && stats.UniqueItems > 0 {
		cells := float64(stats.UniqueUsers) * float64(stats.UniqueItems)
		stats.Sparsity = 1.0 - float64(stats.TotalInteractions)/cells
	}
	return stats
}
