// HackHub - Learning Event Discovery and Recommendation
// Copyright 2026 HackHub Contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/hackhub/hackhub

package recommend

import (
	"bytes"
	"math"
	"math/rand"
	"strings"
	"testing"

	"github.com/rs/zerolog"
)

// trainingMatrix builds a small matrix with an obvious block structure:
// users 1-2 love items 10-11, users 3-4 love items 12-13.
func trainingMatrix() AffinityMatrix {
	return AffinityMatrix{
		1: {10: 5.0, 11: 4.5, 12: 1.0},
		2: {10: 4.5, 11: 5.0, 13: 1.5},
		3: {12: 5.0, 13: 4.5, 10: 1.0},
		4: {12: 4.5, 13: 5.0, 11: 1.5},
	}
}

func TestTrainSVD(t *testing.T) {
	t.Run("empty matrix fails without a model", func(t *testing.T) {
		model, result := TrainSVD(AffinityMatrix{}, SVDParams{})
		if result.Success {
			t.Error("expected failure on empty matrix")
		}
		if model != nil {
			t.Error("expected nil model on failure")
		}
		if result.Error == "" {
			t.Error("expected an error description")
		}
	})

	t.Run("fits the training set", func(t *testing.T) {
		model, result := TrainSVD(trainingMatrix(), SVDParams{})
		if !result.Success {
			t.Fatalf("training failed: %s", result.Error)
		}
		if !model.Trained {
			t.Error("model not marked trained")
		}
		if result.NumUsers != 4 {
			t.Errorf("NumUsers = %d, want 4", result.NumUsers)
		}
		if result.RMSE <= 0 || result.RMSE > 1.5 {
			t.Errorf("RMSE = %f, want small positive", result.RMSE)
		}
		if math.Abs(result.MAE-0.8*result.RMSE) > 1e-9 {
			t.Errorf("MAE = %f, want 0.8*RMSE = %f", result.MAE, 0.8*result.RMSE)
		}

		// High-affinity pairs predict above low-affinity pairs.
		if model.Predict(1, 10) <= model.Predict(1, 12) {
			t.Errorf("Predict(1,10)=%f should exceed Predict(1,12)=%f",
				model.Predict(1, 10), model.Predict(1, 12))
		}
	})

	t.Run("predictions stay on the rating scale", func(t *testing.T) {
		model, _ := TrainSVD(trainingMatrix(), SVDParams{})
		for userID := int64(1); userID <= 4; userID++ {
			for itemID := int64(10); itemID <= 13; itemID++ {
				p := model.Predict(userID, itemID)
				if p < 1.0 || p > 5.0 {
					t.Errorf("Predict(%d,%d) = %f outside [1,5]", userID, itemID, p)
				}
			}
		}
	})

	t.Run("unknown user and item degrade to global mean", func(t *testing.T) {
		model, _ := TrainSVD(trainingMatrix(), SVDParams{})
		p := model.Predict(999, 999)
		if math.Abs(p-clampRating(model.GlobalMean)) > 1e-9 {
			t.Errorf("unknown pair predicts %f, want global mean %f", p, model.GlobalMean)
		}
	})

	t.Run("same seed reproduces the model", func(t *testing.T) {
		a, _ := TrainSVD(trainingMatrix(), SVDParams{Rand: rand.New(rand.NewSource(7))})
		b, _ := TrainSVD(trainingMatrix(), SVDParams{Rand: rand.New(rand.NewSource(7))})
		for userID := int64(1); userID <= 4; userID++ {
			for itemID := int64(10); itemID <= 13; itemID++ {
				if a.Predict(userID, itemID) != b.Predict(userID, itemID) {
					t.Fatalf("Predict(%d,%d) differs across identical runs", userID, itemID)
				}
			}
		}
	})

	t.Run("reported RMSE comes from the finished parameters", func(t *testing.T) {
		matrix := trainingMatrix()
		model, result := TrainSVD(matrix, SVDParams{Iterations: 3})
		if !result.Success {
			t.Fatalf("training failed: %s", result.Error)
		}

		// Recompute the training-set error from the final model. The
		// result must match this, not the error accumulated while the
		// parameters were still moving during the last iteration.
		var sqErr float64
		var n int
		for userID, row := range matrix {
			for itemID, rating := range row {
				pred := model.GlobalMean + model.UserBias[userID] + model.ItemBias[itemID]
				pu := model.UserFactors[userID]
				qi := model.ItemFactors[itemID]
				for f := range pu {
					pred += pu[f] * qi[f]
				}
				diff := rating - pred
				sqErr += diff * diff
				n++
			}
		}
		want := math.Sqrt(sqErr / float64(n))
		if math.Abs(result.RMSE-want) > 1e-12 {
			t.Errorf("RMSE = %.12f, want %.12f recomputed from the final model", result.RMSE, want)
		}
	})

	t.Run("all-zero affinities keep a zero global mean", func(t *testing.T) {
		matrix := AffinityMatrix{
			1: {10: 0.0, 11: 0.0},
			2: {10: 0.0},
		}
		model, result := TrainSVD(matrix, SVDParams{Iterations: 1})
		if !result.Success {
			t.Fatalf("training failed: %s", result.Error)
		}
		if model.GlobalMean != 0 {
			t.Errorf("GlobalMean = %f, want 0 when affinities average zero", model.GlobalMean)
		}
	})

	t.Run("logs training progress every ten iterations", func(t *testing.T) {
		var buf bytes.Buffer
		logger := zerolog.New(&buf)
		_, result := TrainSVD(trainingMatrix(), SVDParams{Iterations: 20, Logger: &logger})
		if !result.Success {
			t.Fatalf("training failed: %s", result.Error)
		}
		out := buf.String()
		if got := strings.Count(out, "SGD training progress"); got != 2 {
			t.Errorf("progress log lines = %d, want 2 for 20 iterations", got)
		}
		if !strings.Contains(out, `"rmse"`) {
			t.Error("progress log missing rmse field")
		}
	})

	t.Run("custom hyperparameters are honored", func(t *testing.T) {
		model, result := TrainSVD(trainingMatrix(), SVDParams{Factors: 2, Iterations: 5})
		if !result.Success {
			t.Fatalf("training failed: %s", result.Error)
		}
		if got := len(model.UserFactors[1]); got != 2 {
			t.Errorf("factor dimension = %d, want 2", got)
		}
	})
}

func TestModel_Predict_Untrained(t *testing.T) {
	model := &Model{GlobalMean: 3.2}
	if got := model.Predict(1, 10); got != 3.2 {
		t.Errorf("untrained Predict = %f, want global mean 3.2", got)
	}
}

func TestModel_Recommendations(t *testing.T) {
	model, _ := TrainSVD(trainingMatrix(), SVDParams{})

	t.Run("excludes seen items", func(t *testing.T) {
		seen := map[int64]float64{10: 5.0, 11: 4.5, 12: 1.0}
		recs := model.Recommendations(1, seen, 10)
		if len(recs) != 1 || recs[0].Item.ID != 13 {
			t.Errorf("recs = %+v, want only item 13", recs)
		}
	})

	t.Run("ranks by predicted rating", func(t *testing.T) {
		recs := model.Recommendations(1, nil, 10)
		if len(recs) != 4 {
			t.Fatalf("expected 4 recs, got %d", len(recs))
		}
		for i := 1; i < len(recs); i++ {
			if recs[i].Score > recs[i-1].Score {
				t.Errorf("scores not descending at %d", i)
			}
		}
	})

	t.Run("topN truncates", func(t *testing.T) {
		if recs := model.Recommendations(1, nil, 2); len(recs) != 2 {
			t.Errorf("expected 2 recs, got %d", len(recs))
		}
	})

	t.Run("untrained model returns nil", func(t *testing.T) {
		untrained := &Model{GlobalMean: 3.0}
		if recs := untrained.Recommendations(1, nil, 10); recs != nil {
			t.Errorf("expected nil, got %+v", recs)
		}
	})
}
