// Taleweaver - Personalized Story Recommendation Engine
// Copyright 2026 Taleweaver contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/taleweaver/recommend

package scoring

import (
	"math"
	"strings"
	"time"

	"github.com/taleweaver/recommend/internal/recommend"
)

// AffinityScorer computes the personalized affinity between a user and an
// item as a weighted linear combination of match factors:
//
//	score = w_genre * genreMatch + w_author * authorMatch +
//	        w_tag * tagMatch + w_difficulty * difficultyMatch +
//	        w_rating * rating/5 + w_popularity * popularity/maxPopularity +
//	        w_freshness * freshness
//
// Weights are normalized at construction. The genre factor blends
// favorite-genre membership 70/30 with the tag-overlap ratio, so an item in
// an unfamiliar genre can still partially match through its tags.
type AffinityScorer struct {
	weights recommend.ScoringWeights
}

// PoolStats holds pool-relative normalization data, computed once per
// request and shared across items.
type PoolStats struct {
	// MaxPopularity is the highest lifetime popularity in the pool.
	MaxPopularity int

	// MaxVelocity is the highest windowed engagement velocity in the pool.
	MaxVelocity float64
}

// ComputePoolStats derives normalization data from the candidate pool.
// An empty pool yields zero stats; factor computations guard against that.
func ComputePoolStats(items []recommend.Item, recent map[string]int, windowDays int) PoolStats {
	var stats PoolStats
	if windowDays < 1 {
		windowDays = 1
	}
	for i := range items {
		if items[i].Popularity > stats.MaxPopularity {
			stats.MaxPopularity = items[i].Popularity
		}
		v := float64(recent[items[i].ID]) / float64(windowDays)
		if v > stats.MaxVelocity {
			stats.MaxVelocity = v
		}
	}
	return stats
}

// NewAffinityScorer creates an affinity scorer with normalized weights.
func NewAffinityScorer(weights recommend.ScoringWeights) *AffinityScorer {
	return &AffinityScorer{weights: weights.Normalize()}
}

// Score computes the final affinity score in [0, 100] for one item,
// including the behavior multipliers (completed x0.3, abandoned x0.1,
// bookmarked-and-not-completed x1.2).
func (s *AffinityScorer) Score(profile *recommend.UserProfile, behavior *recommend.UserBehavior, item *recommend.Item, stats PoolStats, now time.Time) (float64, recommend.MatchFactors) {
	base, factors := s.BaseScore(profile, behavior, item, stats, now)
	return recommend.ApplyBehaviorAdjustments(base, item.ID, behavior), factors
}

// BaseScore computes the affinity score in [0, 100] before the behavior
// multipliers are applied. The composer blends base scores with trend and
// novelty and applies the multipliers to the blended result, so the
// completion penalty bounds the whole personalized score.
func (s *AffinityScorer) BaseScore(profile *recommend.UserProfile, behavior *recommend.UserBehavior, item *recommend.Item, stats PoolStats, now time.Time) (float64, recommend.MatchFactors) {
	tagMatch := tagMatchRatio(profile.TopTags, item.Tags)

	factors := recommend.MatchFactors{
		GenreMatch:      genreFactor(profile.FavoriteGenres, item.Genre, tagMatch),
		DifficultyMatch: difficultyFactor(profile.PreferredDifficulty, item.Difficulty),
		PopularityBoost: popularityFactor(item.Popularity, stats.MaxPopularity),
		DiversityScore:  diversityFactor(behavior.GenreExploration, item.Genre),
		Freshness:       freshnessFactor(item.PublishedAt, now),
	}

	authorMatch := 0.0
	if _, ok := profile.FavoriteAuthors[item.Author]; ok {
		authorMatch = 1.0
	}

	rating := item.AverageRating / 5.0
	if rating < 0 {
		rating = 0
	}
	if rating > 1 {
		rating = 1
	}

	w := s.weights
	score := w.Genre*factors.GenreMatch +
		w.Author*authorMatch +
		w.Tag*tagMatch +
		w.Difficulty*factors.DifficultyMatch +
		w.Rating*rating +
		w.Popularity*factors.PopularityBoost +
		w.Freshness*factors.Freshness

	return recommend.ClampScore(score * 100), factors
}

// genreFactor blends favorite-genre membership 70/30 with tag overlap.
// Non-favorite genres keep a 0.3 base so strong tag overlap still registers.
func genreFactor(favorites []string, genre string, tagMatch float64) float64 {
	base := 0.3
	for _, g := range favorites {
		if strings.EqualFold(g, genre) {
			base = 1.0
			break
		}
	}
	return 0.7*base + 0.3*tagMatch
}

// tagMatchRatio returns the fraction of the user's top tags present on the
// item. An empty tag profile yields 0.
func tagMatchRatio(topTags map[string]struct{}, itemTags []string) float64 {
	if len(topTags) == 0 || len(itemTags) == 0 {
		return 0
	}

	itemSet := make(map[string]struct{}, len(itemTags))
	for _, t := range itemTags {
		itemSet[strings.ToLower(t)] = struct{}{}
	}

	matched := 0
	for t := range topTags {
		if _, ok := itemSet[strings.ToLower(t)]; ok {
			matched++
		}
	}
	return float64(matched) / float64(len(topTags))
}

// difficultyFactor decays 0.4 per level of distance, floored at 0.
func difficultyFactor(user, item recommend.Difficulty) float64 {
	d := math.Abs(float64(user.Level() - item.Level()))
	f := 1.0 - 0.4*d
	if f < 0 {
		return 0
	}
	return f
}

// popularityFactor is pool-relative popularity; an empty or all-zero pool
// yields 0.
func popularityFactor(popularity, maxPopularity int) float64 {
	if maxPopularity <= 0 {
		return 0
	}
	return float64(popularity) / float64(maxPopularity)
}

// diversityFactor measures how much the item would expand the user's
// explored genre space: 1 for a never-read genre, decaying with prior
// exposure.
func diversityFactor(exploration map[string]int, genre string) float64 {
	return 1.0 / (1.0 + float64(exploration[genre]))
}

// freshnessFactor steps down with publication age: 1.0 within 7 days,
// 0.7 within 30, 0.4 within 90, 0.2 beyond.
func freshnessFactor(publishedAt, now time.Time) float64 {
	if publishedAt.IsZero() || publishedAt.After(now) {
		return 0.2
	}
	age := now.Sub(publishedAt)
	switch {
	case age <= 7*24*time.Hour:
		return 1.0
	case age <= 30*24*time.Hour:
		return 0.7
	case age <= 90*24*time.Hour:
		return 0.4
	default:
		return 0.2
	}
}
