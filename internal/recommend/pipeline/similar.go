// Taleweaver - Personalized Story Recommendation Engine
// Copyright 2026 Taleweaver contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/taleweaver/recommend

package pipeline

import (
	"context"

	"github.com/taleweaver/recommend/internal/recommend"
	"github.com/taleweaver/recommend/internal/recommend/similarity"
)

// Similar ranks the candidate pool by item-item similarity to the request's
// seed item. An empty or unknown seed yields an empty list, never an error.
type Similar struct {
	max int
	sim *similarity.Engine
}

// NewSimilar creates the similar pipeline.
func NewSimilar(cfg *recommend.Config, sim *similarity.Engine) *Similar {
	return &Similar{max: cfg.MaxRecommendations, sim: sim}
}

// Category identifies the pipeline.
func (p *Similar) Category() recommend.Category {
	return recommend.CategorySimilar
}

// Run computes the more-like-this recommendation list.
func (p *Similar) Run(ctx context.Context, req *recommend.Request) ([]recommend.Result, error) {
	if len(req.Candidates) == 0 || req.SeedItemID == "" {
		return nil, nil
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	byID := make(map[string]*recommend.Item, len(req.Candidates))
	for i := range req.Candidates {
		byID[req.Candidates[i].ID] = &req.Candidates[i]
	}

	seed, ok := byID[req.SeedItemID]
	if !ok {
		return nil, nil
	}

	matches := p.sim.TopKItems(seed, req.Candidates, p.max)

	dataPoints := req.Behavior.DataPoints()
	results := make([]recommend.Result, 0, len(matches))
	for _, m := range matches {
		item := byID[m.ID]
		score := recommend.ClampScore(m.Score * 100)

		reasons := recommend.BuildReasons(recommend.ReasonInputs{
			Profile:    &req.Profile,
			Item:       item,
			SeedTitle:  seed.Title,
			Similarity: m.Score,
		})

		results = append(results, recommend.Result{
			ItemID:     item.ID,
			Score:      score,
			Reasons:    reasons,
			Confidence: recommend.Confidence(dataPoints, score),
			Category:   recommend.CategorySimilar,
		})
	}
	return results, nil
}
