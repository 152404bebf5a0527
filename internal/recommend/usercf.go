// HackHub - Learning Event Discovery and Recommendation
// Copyright 2026 HackHub Contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/hackhub/hackhub

package recommend

import (
	"math"
	"sort"
)

// DefaultNeighborhoodSize is the number of similar users considered when
// predicting ratings for a target user.
const DefaultNeighborhoodSize = 20

// Neighbor is a user together with their similarity to the target user.
type Neighbor struct {
	UserID     int64
	Similarity float64
}

// FindSimilarUsers returns the k users most similar to the target by
// cosine similarity. Similarity is computed over the items both users
// rated; users sharing no items with the target, or with a zero norm over
// the shared items, are excluded. The result is sorted by descending
// similarity with ties broken by first-seen order over a sorted user list,
// so results are deterministic.
func FindSimilarUsers(userID int64, matrix AffinityMatrix, k int) []Neighbor {
	target, ok := matrix[userID]
	if !ok || len(target) == 0 || k <= 0 {
		return nil
	}

	others := make([]int64, 0, len(matrix))
	for otherID := range matrix {
		if otherID != userID {
			others = append(others, otherID)
		}
	}
	sort.Slice(others, func(i, j int) bool { return others[i] < others[j] })

	neighbors := make([]Neighbor, 0, len(others))
	for _, otherID := range others {
		sim := cosineShared(target, matrix[otherID])
		if sim > 0 {
			neighbors = append(neighbors, Neighbor{UserID: otherID, Similarity: sim})
		}
	}

	sort.SliceStable(neighbors, func(i, j int) bool {
		return neighbors[i].Similarity > neighbors[j].Similarity
	})
	if len(neighbors) > k {
		neighbors = neighbors[:k]
	}
	return neighbors
}

// cosineShared computes cosine similarity restricted to the items present
// in both rating vectors. Returns 0 when the intersection is empty or
// either restricted norm is zero.
func cosineShared(a, b map[int64]float64) float64 {
	var dot, normA, normB float64
	for itemID, ra := range a {
		rb, ok := b[itemID]
		if !ok {
			continue
		}
		dot += ra * rb
		normA += ra * ra
		normB += rb * rb
	}
	if normA == 0 || normB == 0 {
		return 0.0
	}
	return dot / (math.Sqrt(normA) * math.Sqrt(normB))
}

// PredictRatings estimates ratings for every item a neighbor rated but the
// target has not, as the similarity-weighted mean of neighbor ratings:
// sum(sim*rating) / sum(sim) per item.
func PredictRatings(userID int64, neighbors []Neighbor, matrix AffinityMatrix) map[int64]float64 {
	seen := matrix[userID]

	weighted := make(map[int64]float64)
	simSums := make(map[int64]float64)
	for _, n := range neighbors {
		for itemID, rating := range matrix[n.UserID] {
			if _, rated := seen[itemID]; rated {
				continue
			}
			weighted[itemID] += n.Similarity * rating
			simSums[itemID] += n.Similarity
		}
	}

	predictions := make(map[int64]float64, len(weighted))
	for itemID, sum := range weighted {
		if simSums[itemID] > 0 {
			predictions[itemID] = sum / simSums[itemID]
		}
	}
	return predictions
}

// UserCFRecommend produces the top-n item IDs for a user via user-based
// neighborhood collaborative filtering. A user absent from the matrix
// yields an empty result rather than an error.
func UserCFRecommend(userID int64, matrix AffinityMatrix, topN int) []RecommendedItem {
	neighbors := FindSimilarUsers(userID, matrix, DefaultNeighborhoodSize)
	if len(neighbors) == 0 {
		return nil
	}

	predictions := PredictRatings(userID, neighbors, matrix)
	if len(predictions) == 0 {
		return nil
	}

	itemIDs := make([]int64, 0, len(predictions))
	for itemID := range predictions {
		itemIDs = append(itemIDs, itemID)
	}
	sort.Slice(itemIDs, func(i, j int) bool {
		if predictions[itemIDs[i]] != predictions[itemIDs[j]] {
			return predictions[itemIDs[i]] > predictions[itemIDs[j]]
		}
		return itemIDs[i] < itemIDs[j]
	})
	if topN > 0 && len(itemIDs) > topN {
		itemIDs = itemIDs[:topN]
	}

	recs := make([]RecommendedItem, 0, len(itemIDs))
	for _, itemID := range itemIDs {
		recs = append(recs, RecommendedItem{
			Item:   Item{ID: itemID},
			Score:  predictions[itemID],
			Reason: "Users with similar activity engaged with this",
		})
	}
	return recs
}
