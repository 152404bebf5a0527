// HackHub - Learning Event Discovery and Recommendation
// Copyright 2026 HackHub Contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/hackhub/hackhub

// Package recommend implements a hybrid recommendation engine for learning
// events, certifications, and hackathons.
//
// # Architecture
//
// The engine combines three signal sources and arbitrates between them per
// request:
//
//   - Latent-Factor Model: biased matrix factorization trained by SGD over
//     implicit affinities derived from interaction events
//   - Neighborhood CF: user-based collaborative filtering with cosine
//     similarity over shared items
//   - Content-Based Scoring: rule-based profile/item matching on skill
//     level, providers, interests, and item types
//
// # Strategy Arbitration
//
// The strategy is keyed on the user's interaction count and whether a
// trained model is published:
//
//   - COLLABORATIVE: enough history and a trained model; rank with the
//     latent-factor model, neighborhood CF fills any shortfall
//   - HYBRID: enough history but no model yet; content-based with a
//     trending top-up
//   - COLD_START: too little history; content-based blended with trending
//
// # Design Principles
//
//   - Deterministic: same inputs produce identical models (seeded RNG,
//     fixed training order)
//   - Non-blocking: the published model is an immutable snapshot behind an
//     atomic pointer, so requests never wait on training
//   - Degradable: a missing profile or an untrained model narrows the
//     result sources instead of failing the request
//
// # Usage
//
//	engine, err := recommend.NewEngine(recommend.DefaultConfig(), logger)
//	engine.SetDataProvider(store)
//
//	result := engine.TrainModel(ctx)
//	resp, err := engine.GetRecommendations(ctx, userID, 10, "")
//
// # Thread Safety
//
// The engine is safe for concurrent use. Training runs are serialized by a
// non-blocking lock; a concurrent TrainModel call returns a failed result
// instead of queueing.
package recommend
