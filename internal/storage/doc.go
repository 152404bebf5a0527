// HackHub - Learning Event Discovery and Recommendation
// Copyright 2026 HackHub Contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/hackhub/hackhub

// Package storage provides a BadgerDB-backed store for interactions,
// catalog items, and user profiles.
//
// # Key Layout
//
//   - interaction:<user>:<item>:<type>        idempotent types (bookmark,
//     enroll, rate): one record per (user, item, type)
//   - interaction:<user>:<item>:<type>:<id>   repeatable types (view, like,
//     complete): one record per event
//   - item:<id>                               catalog item
//   - profile:<user>                          user profile
//
// Values are JSON-encoded. Prefix scans serve the per-user and global
// interaction listings the recommendation engine consumes.
//
// # Tracking Semantics
//
// TrackInteraction enforces the original interaction rules: bookmarks and
// enrollments are idempotent per (user, item) and silently deduplicated;
// a re-rate replaces the previous rating in place; all other types append.
//
// # Trending
//
// TrendingItems ranks items by a weighted count of recent interactions
// (views 0.1, likes 0.2, bookmarks 0.3, enrollments 0.5) plus twice the
// average explicit rating.
package storage
