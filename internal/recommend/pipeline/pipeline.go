// Taleweaver - Personalized Story Recommendation Engine
// Copyright 2026 Taleweaver contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/taleweaver/recommend

// Package pipeline implements the concrete recommendation category
// pipelines and wires them into the engine.
//
// Each pipeline implements the recommend.Pipeline interface and owns one
// category end to end: scoring, ranking, truncation, reasons, and
// confidence. NewDefaultEngine registers the full set with the documented
// default scorers.
package pipeline

import (
	"github.com/rs/zerolog"

	"github.com/taleweaver/recommend/internal/recommend"
	"github.com/taleweaver/recommend/internal/recommend/profile"
	"github.com/taleweaver/recommend/internal/recommend/reranking"
	"github.com/taleweaver/recommend/internal/recommend/scoring"
	"github.com/taleweaver/recommend/internal/recommend/similarity"
)

// NewDefaultEngine creates an engine with every category pipeline
// registered and profile derivation installed. A nil config uses the
// defaults; an invalid config is rejected with a *recommend.ConfigError.
//
//nolint:gocritic // hugeParam: logger passed by value for zerolog chaining
func NewDefaultEngine(config *recommend.Config, logger zerolog.Logger) (*recommend.Engine, error) {
	engine, err := recommend.NewEngine(config, logger)
	if err != nil {
		return nil, err
	}

	cfg := engine.Config()
	affinity := scoring.NewAffinityScorer(cfg.Scoring)
	trend := scoring.NewTrendScorer(cfg.Trending.WindowDays)
	novelty := scoring.NewNoveltyScorer()
	sim := similarity.NewEngine()
	diversity := reranking.NewDiversity(
		cfg.DiversityFactor,
		cfg.Reranking.GenrePenaltyUnit,
		cfg.Reranking.AuthorPenaltyUnit,
	)

	engine.SetProfileBuilder(profile.NewAggregator())
	engine.RegisterPipeline(NewPersonalized(cfg, affinity, trend, novelty, diversity))
	engine.RegisterPipeline(NewTrending(cfg, trend))
	engine.RegisterPipeline(NewSimilar(cfg, sim))
	engine.RegisterPipeline(NewNovel(cfg, novelty))
	engine.RegisterPipeline(NewCommunity(cfg, sim))
	engine.RegisterPipeline(NewContinue(cfg))

	return engine, nil
}
