// Taleweaver - Personalized Story Recommendation Engine
// Copyright 2026 Taleweaver contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/taleweaver/recommend

package scoring

import (
	"github.com/taleweaver/recommend/internal/recommend"
)

// TrendScorer computes a time-windowed popularity-velocity score per item,
// independent of any single user:
//
//	trend = 0.6 * velocity/maxVelocity + 0.4 * recent/max(popularity, 1)
//
// The ratio term favors genuinely accelerating items over merely large
// lifetime-popular ones: at equal velocity, a small item whose recent
// engagement is most of its lifetime total outranks a catalog staple.
type TrendScorer struct {
	windowDays int
}

// NewTrendScorer creates a trend scorer over the given trailing window.
// Non-positive windows fall back to 7 days.
func NewTrendScorer(windowDays int) *TrendScorer {
	if windowDays < 1 {
		windowDays = 7
	}
	return &TrendScorer{windowDays: windowDays}
}

// WindowDays returns the trailing window length.
func (t *TrendScorer) WindowDays() int {
	return t.windowDays
}

// Score computes the trend score in [0, 100] for one item. recent is the
// engagement count within the trailing window; maxVelocity is the pool
// maximum from ComputePoolStats.
func (t *TrendScorer) Score(item *recommend.Item, recent int, maxVelocity float64) float64 {
	if recent < 0 {
		recent = 0
	}

	velocity := float64(recent) / float64(t.windowDays)
	normVelocity := 0.0
	if maxVelocity > 0 {
		normVelocity = velocity / maxVelocity
	}

	// A brand-new breakout item has nothing to dilute its ratio.
	ratio := 1.0
	if item.Popularity > 0 {
		ratio = float64(recent) / float64(item.Popularity)
		if ratio > 1 {
			ratio = 1
		}
	} else if recent == 0 {
		ratio = 0
	}

	return recommend.ClampScore((0.6*normVelocity + 0.4*ratio) * 100)
}
