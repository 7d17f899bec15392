// Taleweaver - Personalized Story Recommendation Engine
// Copyright 2026 Taleweaver contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/taleweaver/recommend

package recommend

import (
	"fmt"
)

// ConfigError describes an invalid configuration field. Configuration is
// never silently clamped; out-of-domain values are rejected before any
// scoring begins.
type ConfigError struct {
	// Field is the offending configuration field in dotted form.
	Field string

	// Reason describes why the value was rejected.
	Reason string
}

// Error implements the error interface.
func (e *ConfigError) Error() string {
	return fmt.Sprintf("invalid config: %s: %s", e.Field, e.Reason)
}

// Config contains all configuration for the recommendation engine.
type Config struct {
	// MaxRecommendations is the maximum number of results per category.
	MaxRecommendations int `json:"max_recommendations" koanf:"max_recommendations"`

	// DiversityFactor scales the diversity reranking penalty (0-1).
	// Zero disables reranking.
	DiversityFactor float64 `json:"diversity_factor" koanf:"diversity_factor"`

	// NoveltyFactor is the novelty weight in the personalized blend (0-1).
	NoveltyFactor float64 `json:"novelty_factor" koanf:"novelty_factor"`

	// TrendingWeight is the trend weight in the personalized blend (0-1).
	TrendingWeight float64 `json:"trending_weight" koanf:"trending_weight"`

	// PersonalWeight is the affinity weight in the personalized blend (0-1).
	PersonalWeight float64 `json:"personal_weight" koanf:"personal_weight"`

	// IncludeCategories restricts which categories are computed.
	// Empty means all categories.
	IncludeCategories []Category `json:"include_categories,omitempty" koanf:"include_categories"`

	// Scoring configures the affinity factor weights.
	Scoring ScoringWeights `json:"scoring" koanf:"scoring"`

	// Trending configures the trend estimator.
	Trending TrendingConfig `json:"trending" koanf:"trending"`

	// Novelty configures the novel/discovery category.
	Novelty NoveltyConfig `json:"novelty" koanf:"novelty"`

	// Reranking configures the diversity reranker penalty units.
	Reranking RerankingConfig `json:"reranking" koanf:"reranking"`

	// Community configures the peer-based discovery category.
	Community CommunityConfig `json:"community" koanf:"community"`
}

// ScoringWeights defines the relative contribution of each affinity factor.
// Weights are normalized at runtime, so they don't need to sum to 1.0,
// but every weight must be non-negative.
type ScoringWeights struct {
	// Genre is the weight for the genre-match factor.
	Genre float64 `json:"genre" koanf:"genre"`

	// Author is the weight for the author-match factor.
	Author float64 `json:"author" koanf:"author"`

	// Tag is the weight for the tag-match factor.
	Tag float64 `json:"tag" koanf:"tag"`

	// Difficulty is the weight for difficulty proximity.
	Difficulty float64 `json:"difficulty" koanf:"difficulty"`

	// Rating is the weight for the average rating.
	Rating float64 `json:"rating" koanf:"rating"`

	// Popularity is the weight for pool-relative popularity.
	Popularity float64 `json:"popularity" koanf:"popularity"`

	// Freshness is the weight for publication recency.
	Freshness float64 `json:"freshness" koanf:"freshness"`
}

// Sum returns the total of all weights.
func (w ScoringWeights) Sum() float64 {
	return w.Genre + w.Author + w.Tag + w.Difficulty +
		w.Rating + w.Popularity + w.Freshness
}

// Normalize returns a copy with weights scaled to sum to 1.0.
// All-zero weights yield the defaults.
func (w ScoringWeights) Normalize() ScoringWeights {
	sum := w.Sum()
	if sum == 0 {
		return DefaultConfig().Scoring
	}
	return ScoringWeights{
		Genre:      w.Genre / sum,
		Author:     w.Author / sum,
		Tag:        w.Tag / sum,
		Difficulty: w.Difficulty / sum,
		Rating:     w.Rating / sum,
		Popularity: w.Popularity / sum,
		Freshness:  w.Freshness / sum,
	}
}

// TrendingConfig contains parameters for the trend estimator.
type TrendingConfig struct {
	// WindowDays is the trailing engagement window length in days.
	// Default: 7.
	WindowDays int `json:"window_days" koanf:"window_days"`
}

// NoveltyConfig contains parameters for the novel/discovery category.
type NoveltyConfig struct {
	// Threshold is the minimum novelty score to qualify (0-1).
	// Default: 0.7.
	Threshold float64 `json:"threshold" koanf:"threshold"`

	// MinRating is the minimum average rating to qualify (0-5).
	// Default: 4.0.
	MinRating float64 `json:"min_rating" koanf:"min_rating"`
}

// RerankingConfig contains the diversity penalty units on the 0-100 score
// scale. The author unit is weighted higher than the genre unit so repeat
// authors are suppressed faster than repeat genres.
type RerankingConfig struct {
	// GenrePenaltyUnit is the score reduction per same-genre repeat.
	// Default: 5.0.
	GenrePenaltyUnit float64 `json:"genre_penalty_unit" koanf:"genre_penalty_unit"`

	// AuthorPenaltyUnit is the score reduction per same-author repeat.
	// Default: 7.5 (1.5x the genre unit).
	AuthorPenaltyUnit float64 `json:"author_penalty_unit" koanf:"author_penalty_unit"`
}

// CommunityConfig contains parameters for peer-based discovery.
type CommunityConfig struct {
	// MaxPeers is the number of most-similar peers to consider.
	// Default: 10.
	MaxPeers int `json:"max_peers" koanf:"max_peers"`
}

// DefaultConfig returns a Config with the documented defaults.
func DefaultConfig() *Config {
	return &Config{
		MaxRecommendations: 10,
		DiversityFactor:    0.5,
		NoveltyFactor:      0.2,
		TrendingWeight:     0.2,
		PersonalWeight:     0.6,
		Scoring: ScoringWeights{
			Genre:      0.25,
			Author:     0.15,
			Tag:        0.15,
			Difficulty: 0.10,
			Rating:     0.15,
			Popularity: 0.10,
			Freshness:  0.10,
		},
		Trending: TrendingConfig{
			WindowDays: 7,
		},
		Novelty: NoveltyConfig{
			Threshold: 0.7,
			MinRating: 4.0,
		},
		Reranking: RerankingConfig{
			GenrePenaltyUnit:  5.0,
			AuthorPenaltyUnit: 7.5,
		},
		Community: CommunityConfig{
			MaxPeers: 10,
		},
	}
}

// Validate checks the configuration for errors. It returns a *ConfigError
// describing the first out-of-domain field found.
//
//nolint:gocyclo // validation needs to check many fields
func (c *Config) Validate() error {
	if c.MaxRecommendations < 1 {
		return &ConfigError{Field: "max_recommendations", Reason: fmt.Sprintf("must be positive, got %d", c.MaxRecommendations)}
	}
	if c.DiversityFactor < 0 || c.DiversityFactor > 1 {
		return &ConfigError{Field: "diversity_factor", Reason: fmt.Sprintf("must be in [0, 1], got %g", c.DiversityFactor)}
	}
	if c.NoveltyFactor < 0 || c.NoveltyFactor > 1 {
		return &ConfigError{Field: "novelty_factor", Reason: fmt.Sprintf("must be in [0, 1], got %g", c.NoveltyFactor)}
	}
	if c.TrendingWeight < 0 || c.TrendingWeight > 1 {
		return &ConfigError{Field: "trending_weight", Reason: fmt.Sprintf("must be in [0, 1], got %g", c.TrendingWeight)}
	}
	if c.PersonalWeight < 0 || c.PersonalWeight > 1 {
		return &ConfigError{Field: "personal_weight", Reason: fmt.Sprintf("must be in [0, 1], got %g", c.PersonalWeight)}
	}
	if c.PersonalWeight+c.TrendingWeight+c.NoveltyFactor == 0 {
		return &ConfigError{Field: "personal_weight", Reason: "blend weights must not all be zero"}
	}

	for _, wf := range []struct {
		name  string
		value float64
	}{
		{"scoring.genre", c.Scoring.Genre},
		{"scoring.author", c.Scoring.Author},
		{"scoring.tag", c.Scoring.Tag},
		{"scoring.difficulty", c.Scoring.Difficulty},
		{"scoring.rating", c.Scoring.Rating},
		{"scoring.popularity", c.Scoring.Popularity},
		{"scoring.freshness", c.Scoring.Freshness},
	} {
		if wf.value < 0 {
			return &ConfigError{Field: wf.name, Reason: fmt.Sprintf("must be non-negative, got %g", wf.value)}
		}
	}
	if c.Scoring.Sum() == 0 {
		return &ConfigError{Field: "scoring", Reason: "weights must not all be zero"}
	}

	if c.Trending.WindowDays < 1 {
		return &ConfigError{Field: "trending.window_days", Reason: fmt.Sprintf("must be positive, got %d", c.Trending.WindowDays)}
	}
	if c.Novelty.Threshold < 0 || c.Novelty.Threshold > 1 {
		return &ConfigError{Field: "novelty.threshold", Reason: fmt.Sprintf("must be in [0, 1], got %g", c.Novelty.Threshold)}
	}
	if c.Novelty.MinRating < 0 || c.Novelty.MinRating > 5 {
		return &ConfigError{Field: "novelty.min_rating", Reason: fmt.Sprintf("must be in [0, 5], got %g", c.Novelty.MinRating)}
	}
	if c.Reranking.GenrePenaltyUnit < 0 {
		return &ConfigError{Field: "reranking.genre_penalty_unit", Reason: fmt.Sprintf("must be non-negative, got %g", c.Reranking.GenrePenaltyUnit)}
	}
	if c.Reranking.AuthorPenaltyUnit < 0 {
		return &ConfigError{Field: "reranking.author_penalty_unit", Reason: fmt.Sprintf("must be non-negative, got %g", c.Reranking.AuthorPenaltyUnit)}
	}
	if c.Community.MaxPeers < 1 {
		return &ConfigError{Field: "community.max_peers", Reason: fmt.Sprintf("must be positive, got %d", c.Community.MaxPeers)}
	}

	for _, cat := range c.IncludeCategories {
		if cat < CategoryPersonalized || cat > CategoryContinue {
			return &ConfigError{Field: "include_categories", Reason: fmt.Sprintf("unknown category %d", cat)}
		}
	}

	return nil
}

// Clone returns a deep copy of the configuration.
func (c *Config) Clone() *Config {
	out := *c
	if c.IncludeCategories != nil {
		out.IncludeCategories = make([]Category, len(c.IncludeCategories))
		copy(out.IncludeCategories, c.IncludeCategories)
	}
	return &out
}
