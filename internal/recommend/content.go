// HackHub - Learning Event Discovery and Recommendation
// Copyright 2026 HackHub Contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/hackhub/hackhub

package recommend

import (
	"sort"
	"strings"
)

// skillKeywords maps each skill level to the difficulty-label keywords it
// matches. Matching is a case-insensitive substring test against the item's
// level field.
var skillKeywords = map[SkillLevel][]string{
	SkillBeginner:     {"beginner", "fundamental", "intro", "basic"},
	SkillIntermediate: {"intermediate", "associate", "standard"},
	SkillAdvanced:     {"advanced", "expert", "professional", "architect"},
}

// Scoring weights for the additive content model. Providers outweigh single
// interests; a skill-level match outweighs both since mismatched difficulty
// is the most common complaint in learning catalogs.
const (
	skillMatchWeight    = 3.0
	providerMatchWeight = 2.0
	interestMatchWeight = 1.0
	typeMatchWeight     = 2.5
	certBonusWeight     = 0.5
)

// ContentScore computes the profile-item relevance score. The score is a
// non-negative sum of independent rule contributions; zero means no
// overlap between the profile and the item.
func ContentScore(profile *UserProfile, item Item) float64 {
	if profile == nil {
		return 0.0
	}

	score := 0.0
	level := strings.ToLower(item.Level)
	title := strings.ToLower(item.Title)
	description := strings.ToLower(item.Description)

	if keywords, ok := skillKeywords[profile.SkillLevel]; ok && level != "" {
		for _, kw := range keywords {
			if strings.Contains(level, kw) {
				score += skillMatchWeight
				break
			}
		}
	}

	for _, provider := range profile.PreferredProviders {
		if provider != "" && strings.EqualFold(provider, item.Provider) {
			score += providerMatchWeight
			break
		}
	}

	for _, interest := range profile.Interests {
		needle := strings.ToLower(strings.TrimSpace(interest))
		if needle == "" {
			continue
		}
		if strings.Contains(title, needle) || strings.Contains(description, needle) {
			score += interestMatchWeight
		}
	}

	itemType := normalizeTypeName(string(item.Type))
	for _, preferred := range profile.PreferredItemTypes {
		if normalizeTypeName(preferred) == itemType {
			score += typeMatchWeight
			break
		}
	}

	if item.Type == ItemTypeCertification {
		score += certBonusWeight
	}

	return score
}

// normalizeTypeName lowercases a type name and strips a trailing plural so
// "Hackathons" and "HACKATHON" compare equal.
func normalizeTypeName(name string) string {
	name = strings.ToLower(strings.TrimSpace(name))
	return strings.TrimSuffix(name, "s")
}

// ContentRecommend scores the catalog against a profile and returns the top
// limit items with a positive score, ordered by descending score. Ties keep
// catalog order. A nil profile yields an empty result; the caller treats
// the absence of a profile as a degraded mode, not an error.
func ContentRecommend(profile *UserProfile, items []Item, limit int) []RecommendedItem {
	if profile == nil || limit <= 0 {
		return nil
	}

	scored := make([]RecommendedItem, 0, len(items))
	for _, item := range items {
		score := ContentScore(profile, item)
		if score <= 0 {
			continue
		}
		scored = append(scored, RecommendedItem{
			Item:   item,
			Score:  score,
			Reason: "Matches your profile preferences",
		})
	}

	sort.SliceStable(scored, func(i, j int) bool {
		return scored[i].Score > scored[j].Score
	})

	if len(scored) > limit {
		scored = scored[:limit]
	}
	return scored
}
