// Taleweaver - Personalized Story Recommendation Engine
// Copyright 2026 Taleweaver contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/taleweaver/recommend

package pipeline

import (
	"context"

	"github.com/taleweaver/recommend/internal/recommend"
	"github.com/taleweaver/recommend/internal/recommend/reranking"
	"github.com/taleweaver/recommend/internal/recommend/scoring"
)

// workingSetMultiplier sizes the pre-rerank selection relative to the
// output limit, so diversity reranking can promote items from below the
// raw top-K cutoff.
const workingSetMultiplier = 3

// Personalized blends per-user affinity with trend and novelty per the
// configured weights, applies the behavior multipliers to the blended
// score, and diversity-reranks the result:
//
//	blended = (personal*affinity + trending*trend + novelty*noveltyScore) /
//	          (personal + trending + novelty)
//
// Applying the multipliers after blending keeps the completed-item penalty
// a bound on the whole personalized score, not just the affinity term.
type Personalized struct {
	max              int
	personalWeight   float64
	trendingWeight   float64
	noveltyWeight    float64
	noveltyThreshold float64

	affinity  *scoring.AffinityScorer
	trend     *scoring.TrendScorer
	novelty   *scoring.NoveltyScorer
	diversity *reranking.Diversity
}

// NewPersonalized creates the personalized pipeline.
func NewPersonalized(cfg *recommend.Config, affinity *scoring.AffinityScorer, trend *scoring.TrendScorer, novelty *scoring.NoveltyScorer, diversity *reranking.Diversity) *Personalized {
	return &Personalized{
		max:              cfg.MaxRecommendations,
		personalWeight:   cfg.PersonalWeight,
		trendingWeight:   cfg.TrendingWeight,
		noveltyWeight:    cfg.NoveltyFactor,
		noveltyThreshold: cfg.Novelty.Threshold,
		affinity:         affinity,
		trend:            trend,
		novelty:          novelty,
		diversity:        diversity,
	}
}

// Category identifies the pipeline.
func (p *Personalized) Category() recommend.Category {
	return recommend.CategoryPersonalized
}

// Run computes the personalized recommendation list.
func (p *Personalized) Run(ctx context.Context, req *recommend.Request) ([]recommend.Result, error) {
	if len(req.Candidates) == 0 {
		return nil, nil
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	exposure := scoring.BuildExposure(&req.Behavior, req.Events)
	stats := scoring.ComputePoolStats(req.Candidates, req.RecentEngagement, p.trend.WindowDays())
	total := p.personalWeight + p.trendingWeight + p.noveltyWeight

	scored := make([]recommend.ScoredItem, 0, len(req.Candidates))
	for i := range req.Candidates {
		item := &req.Candidates[i]

		base, factors := p.affinity.BaseScore(&req.Profile, &req.Behavior, item, stats, req.Now)
		trendScore := p.trend.Score(item, req.RecentEngagement[item.ID], stats.MaxVelocity)
		noveltyScore := p.novelty.Score(item, exposure) * 100

		blended := (p.personalWeight*base +
			p.trendingWeight*trendScore +
			p.noveltyWeight*noveltyScore) / total
		adjusted := recommend.ApplyBehaviorAdjustments(blended, item.ID, &req.Behavior)

		f := factors
		scored = append(scored, recommend.ScoredItem{Item: *item, Score: adjusted, Factors: &f})
	}

	working := recommend.TopK(scored, p.max*workingSetMultiplier)
	ranked := p.diversity.Rerank(working, p.max)

	dataPoints := req.Behavior.DataPoints()
	results := make([]recommend.Result, 0, len(ranked))
	for i := range ranked {
		item := &ranked[i].Item
		score := recommend.ClampScore(ranked[i].Score)

		reasons := recommend.BuildReasons(recommend.ReasonInputs{
			Profile:          &req.Profile,
			Item:             item,
			TrendScore:       p.trend.Score(item, req.RecentEngagement[item.ID], stats.MaxVelocity),
			Novelty:          p.novelty.Score(item, exposure),
			NoveltyThreshold: p.noveltyThreshold,
			PopularityBoost:  factorsPopularity(ranked[i].Factors),
		})

		results = append(results, recommend.Result{
			ItemID:     item.ID,
			Score:      score,
			Reasons:    reasons,
			Confidence: recommend.Confidence(dataPoints, score),
			Category:   recommend.CategoryPersonalized,
			Factors:    ranked[i].Factors,
		})
	}
	return results, nil
}

// factorsPopularity extracts the popularity factor, tolerating a nil
// breakdown.
func factorsPopularity(f *recommend.MatchFactors) float64 {
	if f == nil {
		return 0
	}
	return f.PopularityBoost
}
