// Taleweaver - Personalized Story Recommendation Engine
// Copyright 2026 Taleweaver contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/taleweaver/recommend

package pipeline

import (
	"context"

	"github.com/taleweaver/recommend/internal/recommend"
	"github.com/taleweaver/recommend/internal/recommend/scoring"
)

// Trending ranks the candidate pool by engagement velocity, independent of
// the requesting user. Two users see the same trending list for the same
// pool and window.
type Trending struct {
	max   int
	trend *scoring.TrendScorer
}

// NewTrending creates the trending pipeline.
func NewTrending(cfg *recommend.Config, trend *scoring.TrendScorer) *Trending {
	return &Trending{max: cfg.MaxRecommendations, trend: trend}
}

// Category identifies the pipeline.
func (p *Trending) Category() recommend.Category {
	return recommend.CategoryTrending
}

// Run computes the trending recommendation list.
func (p *Trending) Run(ctx context.Context, req *recommend.Request) ([]recommend.Result, error) {
	if len(req.Candidates) == 0 {
		return nil, nil
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	stats := scoring.ComputePoolStats(req.Candidates, req.RecentEngagement, p.trend.WindowDays())

	scored := make([]recommend.ScoredItem, 0, len(req.Candidates))
	for i := range req.Candidates {
		item := &req.Candidates[i]
		scored = append(scored, recommend.ScoredItem{
			Item:  *item,
			Score: p.trend.Score(item, req.RecentEngagement[item.ID], stats.MaxVelocity),
		})
	}

	ranked := recommend.TopK(scored, p.max)

	dataPoints := req.Behavior.DataPoints()
	results := make([]recommend.Result, 0, len(ranked))
	for i := range ranked {
		item := &ranked[i].Item

		reasons := recommend.BuildReasons(recommend.ReasonInputs{
			Profile:         &req.Profile,
			Item:            item,
			TrendScore:      ranked[i].Score,
			PopularityBoost: poolPopularity(item, stats),
		})

		results = append(results, recommend.Result{
			ItemID:     item.ID,
			Score:      ranked[i].Score,
			Reasons:    reasons,
			Confidence: recommend.Confidence(dataPoints, ranked[i].Score),
			Category:   recommend.CategoryTrending,
		})
	}
	return results, nil
}

// poolPopularity is pool-relative popularity for reason selection.
func poolPopularity(item *recommend.Item, stats scoring.PoolStats) float64 {
	if stats.MaxPopularity <= 0 {
		return 0
	}
	return float64(item.Popularity) / float64(stats.MaxPopularity)
}
