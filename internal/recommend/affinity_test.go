// HackHub - Learning Event Discovery and Recommendation
// Copyright 2026 HackHub Contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/hackhub/hackhub

package recommend

import (
	"math"
	"math/rand"
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestAffinity(t *testing.T) {
	tests := []struct {
		name     string
		in       Interaction
		expected float64
	}{
		{"short view", Interaction{Type: InteractionView, ViewDurationSeconds: 10}, 1.0},
		{"view at threshold stays casual", Interaction{Type: InteractionView, ViewDurationSeconds: 60}, 1.0},
		{"long view", Interaction{Type: InteractionView, ViewDurationSeconds: 61}, 2.0},
		{"view without duration", Interaction{Type: InteractionView}, 1.0},
		{"like", Interaction{Type: InteractionLike}, 3.0},
		{"bookmark", Interaction{Type: InteractionBookmark}, 3.5},
		{"enroll", Interaction{Type: InteractionEnroll}, 4.5},
		{"complete", Interaction{Type: InteractionComplete}, 5.0},
		{"rate uses explicit rating", Interaction{Type: InteractionRate, Rating: 4.0}, 4.0},
		{"rate without rating", Interaction{Type: InteractionRate}, 0.0},
		{"unknown type", Interaction{Type: InteractionType(99)}, 0.0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Affinity(tt.in); got != tt.expected {
				t.Errorf("Affinity(%v) = %f, want %f", tt.in.Type, got, tt.expected)
			}
		})
	}
}

func TestBuildMatrix(t *testing.T) {
	base := time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC)

	t.Run("one affinity per pair, latest wins", func(t *testing.T) {
		// Deliberately out of chronological order: the later rate event
		// must win regardless of slice position.
		interactions := []Interaction{
			{UserID: 1, ItemID: 10, Type: InteractionRate, Rating: 2.0, Timestamp: base.Add(2 * time.Hour)},
			{UserID: 1, ItemID: 10, Type: InteractionComplete, Timestamp: base},
			{UserID: 1, ItemID: 11, Type: InteractionLike, Timestamp: base},
			{UserID: 2, ItemID: 10, Type: InteractionEnroll, Timestamp: base},
		}

		matrix := BuildMatrix(interactions)

		if len(matrix) != 2 {
			t.Fatalf("expected 2 users, got %d", len(matrix))
		}
		if got := matrix[1][10]; got != 2.0 {
			t.Errorf("user 1 item 10 = %f, want 2.0 (latest interaction)", got)
		}
		if got := matrix[1][11]; got != 3.0 {
			t.Errorf("user 1 item 11 = %f, want 3.0", got)
		}
		if got := matrix[2][10]; got != 4.5 {
			t.Errorf("user 2 item 10 = %f, want 4.5", got)
		}
	})

	t.Run("input slice is not reordered", func(t *testing.T) {
		interactions := []Interaction{
			{UserID: 1, ItemID: 10, Type: InteractionLike, Timestamp: base.Add(time.Hour)},
			{UserID: 1, ItemID: 10, Type: InteractionView, Timestamp: base},
		}
		BuildMatrix(interactions)
		if interactions[0].Type != InteractionLike {
			t.Error("BuildMatrix mutated its input")
		}
	})

	t.Run("empty input", func(t *testing.T) {
		if matrix := BuildMatrix(nil); len(matrix) != 0 {
			t.Errorf("expected empty matrix, got %d users", len(matrix))
		}
	})
}

func TestExportFlat(t *testing.T) {
	base := time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC)
	interactions := []Interaction{
		{UserID: 1, ItemID: 10, Type: InteractionComplete, Timestamp: base},
		{UserID: 1, ItemID: 10, Type: InteractionView, Timestamp: base.Add(time.Minute)},
	}

	records := ExportFlat(interactions)

	if len(records) != 2 {
		t.Fatalf("expected 2 records (duplicates preserved), got %d", len(records))
	}
	if records[0].Affinity != 5.0 || records[1].Affinity != 1.0 {
		t.Errorf("affinities = %f, %f, want 5.0, 1.0", records[0].Affinity, records[1].Affinity)
	}
	if records[0].Epoch != base.Unix() {
		t.Errorf("epoch = %d, want %d", records[0].Epoch, base.Unix())
	}
}

func TestWriteRatings(t *testing.T) {
	path := filepath.Join(t.TempDir(), "ratings.txt")
	records := []RatingRecord{
		{UserID: 1, ItemID: 10, Affinity: 4.5, Epoch: 1700000000},
		{UserID: 2, ItemID: 11, Affinity: 3.0, Epoch: 1700000060},
	}

	if err := WriteRatings(path, records); err != nil {
		t.Fatalf("WriteRatings failed: %v", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read back: %v", err)
	}
	expected := "1 10 4.5 1700000000\n2 11 3.0 1700000060\n"
	if string(data) != expected {
		t.Errorf("file contents = %q, want %q", string(data), expected)
	}
}

func TestSplitTrainTest(t *testing.T) {
	records := make([]RatingRecord, 10)
	for i := range records {
		records[i] = RatingRecord{UserID: int64(i), ItemID: int64(i), Affinity: 3.0}
	}

	rng := rand.New(rand.NewSource(1))
	train, test := SplitTrainTest(records, 0.8, rng)

	if len(train) != 8 || len(test) != 2 {
		t.Fatalf("split sizes = %d/%d, want 8/2", len(train), len(test))
	}

	// Every record lands in exactly one partition.
	seen := make(map[int64]int)
	for _, r := range append(append([]RatingRecord{}, train...), test...) {
		seen[r.UserID]++
	}
	for id, n := range seen {
		if n != 1 {
			t.Errorf("record %d appears %d times", id, n)
		}
	}

	// Same seed reproduces the same split.
	train2, _ := SplitTrainTest(records, 0.8, rand.New(rand.NewSource(1)))
	for i := range train {
		if train[i].UserID != train2[i].UserID {
			t.Fatal("same seed produced a different split")
		}
	}
}

func TestStats(t *testing.T) {
	t.Run("empty matrix", func(t *testing.T) {
		stats := Stats(AffinityMatrix{})
		if stats.TotalInteractions != 0 || stats.Sparsity != 0 || stats.AvgPerUser != 0 {
			t.Errorf("empty matrix stats = %+v, want zeros", stats)
		}
	})

	t.Run("populated matrix", func(t *testing.T) {
		matrix := AffinityMatrix{
			1: {10: 5.0, 11: 3.0},
			2: {10: 4.5},
		}
		stats := Stats(matrix)

		if stats.TotalInteractions != 3 {
			t.Errorf("TotalInteractions = %d, want 3", stats.TotalInteractions)
		}
		if stats.UniqueUsers != 2 || stats.UniqueItems != 2 {
			t.Errorf("users/items = %d/%d, want 2/2", stats.UniqueUsers, stats.UniqueItems)
		}
		if stats.AvgPerUser != 1.5 {
			t.Errorf("AvgPerUser = %f, want 1.5", stats.AvgPerUser)
		}
		if stats.AvgPerItem != 1.5 {
			t.Errorf("AvgPerItem = %f, want 1.5", stats.AvgPerItem)
		}
		// 1 - 3/(2*2) = 0.25
		if math.Abs(stats.Sparsity-0.25) > 1e-9 {
			t.Errorf("Sparsity = %f, want 0.25", stats.Sparsity)
		}
	})
}
