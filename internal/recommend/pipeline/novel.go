// Taleweaver - Personalized Story Recommendation Engine
// Copyright 2026 Taleweaver contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/taleweaver/recommend

package pipeline

import (
	"context"
	"sort"
	"strings"

	"github.com/taleweaver/recommend/internal/recommend"
	"github.com/taleweaver/recommend/internal/recommend/scoring"
)

// Novel surfaces highly-rated items outside the user's explored space:
// candidates whose novelty score clears the configured threshold and whose
// average rating clears the configured minimum. The list is ordered by
// least-explored genre first, then rating descending, then item ID, so the
// least familiar corner of the catalog surfaces first.
type Novel struct {
	max       int
	threshold float64
	minRating float64
	novelty   *scoring.NoveltyScorer
}

// NewNovel creates the novel/discovery pipeline.
func NewNovel(cfg *recommend.Config, novelty *scoring.NoveltyScorer) *Novel {
	return &Novel{
		max:       cfg.MaxRecommendations,
		threshold: cfg.Novelty.Threshold,
		minRating: cfg.Novelty.MinRating,
		novelty:   novelty,
	}
}

// Category identifies the pipeline.
func (p *Novel) Category() recommend.Category {
	return recommend.CategoryNovel
}

// Run computes the discovery recommendation list.
func (p *Novel) Run(ctx context.Context, req *recommend.Request) ([]recommend.Result, error) {
	if len(req.Candidates) == 0 {
		return nil, nil
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	exposure := scoring.BuildExposure(&req.Behavior, req.Events)

	type candidate struct {
		item          *recommend.Item
		noveltyScore  float64
		genreExposure int
	}

	qualified := make([]candidate, 0, len(req.Candidates))
	for i := range req.Candidates {
		item := &req.Candidates[i]
		if item.AverageRating < p.minRating {
			continue
		}
		noveltyScore := p.novelty.Score(item, exposure)
		if noveltyScore < p.threshold {
			continue
		}
		qualified = append(qualified, candidate{
			item:          item,
			noveltyScore:  noveltyScore,
			genreExposure: exposure.Genres[strings.ToLower(item.Genre)],
		})
	}

	sort.Slice(qualified, func(i, j int) bool {
		if qualified[i].genreExposure != qualified[j].genreExposure {
			return qualified[i].genreExposure < qualified[j].genreExposure
		}
		if qualified[i].item.AverageRating != qualified[j].item.AverageRating {
			return qualified[i].item.AverageRating > qualified[j].item.AverageRating
		}
		return qualified[i].item.ID < qualified[j].item.ID
	})

	if len(qualified) > p.max {
		qualified = qualified[:p.max]
	}

	dataPoints := req.Behavior.DataPoints()
	results := make([]recommend.Result, 0, len(qualified))
	for _, c := range qualified {
		score := recommend.ClampScore(c.noveltyScore * 100)

		reasons := recommend.BuildReasons(recommend.ReasonInputs{
			Profile:          &req.Profile,
			Item:             c.item,
			Novelty:          c.noveltyScore,
			NoveltyThreshold: p.threshold,
		})

		results = append(results, recommend.Result{
			ItemID:     c.item.ID,
			Score:      score,
			Reasons:    reasons,
			Confidence: recommend.Confidence(dataPoints, score),
			Category:   recommend.CategoryNovel,
		})
	}
	return results, nil
}
