// Taleweaver - Personalized Story Recommendation Engine
// Copyright 2026 Taleweaver contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/taleweaver/recommend

package pipeline

import (
	"context"
	"sort"

	"github.com/taleweaver/recommend/internal/recommend"
)

// Continue surfaces in-progress items: candidates whose externally-supplied
// progress is strictly between 0 and 100 percent and which the user has not
// completed, ordered by progress descending so the nearest-to-finished
// story comes first. The progress percentage doubles as the score.
type Continue struct {
	max int
}

// NewContinue creates the continue-in-progress pipeline.
func NewContinue(cfg *recommend.Config) *Continue {
	return &Continue{max: cfg.MaxRecommendations}
}

// Category identifies the pipeline.
func (p *Continue) Category() recommend.Category {
	return recommend.CategoryContinue
}

// Run computes the continue-in-progress recommendation list.
func (p *Continue) Run(ctx context.Context, req *recommend.Request) ([]recommend.Result, error) {
	if len(req.Candidates) == 0 || len(req.Progress) == 0 {
		return nil, nil
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	type entry struct {
		item     *recommend.Item
		progress float64
	}

	inProgress := make([]entry, 0, len(req.Progress))
	for i := range req.Candidates {
		item := &req.Candidates[i]
		progress, ok := req.Progress[item.ID]
		if !ok || progress <= 0 || progress >= 100 {
			continue
		}
		if _, done := req.Behavior.CompletedItems[item.ID]; done {
			continue
		}
		inProgress = append(inProgress, entry{item: item, progress: progress})
	}

	sort.Slice(inProgress, func(i, j int) bool {
		if inProgress[i].progress != inProgress[j].progress {
			return inProgress[i].progress > inProgress[j].progress
		}
		return inProgress[i].item.ID < inProgress[j].item.ID
	})

	if len(inProgress) > p.max {
		inProgress = inProgress[:p.max]
	}

	dataPoints := req.Behavior.DataPoints()
	results := make([]recommend.Result, 0, len(inProgress))
	for _, e := range inProgress {
		score := recommend.ClampScore(e.progress)

		reasons := recommend.BuildReasons(recommend.ReasonInputs{
			Profile: &req.Profile,
			Item:    e.item,
		})

		results = append(results, recommend.Result{
			ItemID:     e.item.ID,
			Score:      score,
			Reasons:    reasons,
			Confidence: recommend.Confidence(dataPoints, score),
			Category:   recommend.CategoryContinue,
		})
	}
	return results, nil
}
