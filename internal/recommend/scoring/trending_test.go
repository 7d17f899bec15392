// Taleweaver - Personalized Story Recommendation Engine
// Copyright 2026 Taleweaver contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/taleweaver/recommend

package scoring

import (
	"testing"

	"github.com/taleweaver/recommend/internal/recommend"
)

func TestTrendScorerFavorsAcceleration(t *testing.T) {
	scorer := NewTrendScorer(7)

	// A catalog staple with modest recent engagement versus a small item
	// whose recent engagement is most of its lifetime total.
	staple := recommend.Item{ID: "staple", Popularity: 1000}
	breakout := recommend.Item{ID: "breakout", Popularity: 20}

	recent := map[string]int{"staple": 10, "breakout": 18}
	stats := ComputePoolStats([]recommend.Item{staple, breakout}, recent, scorer.WindowDays())

	stapleScore := scorer.Score(&staple, recent["staple"], stats.MaxVelocity)
	breakoutScore := scorer.Score(&breakout, recent["breakout"], stats.MaxVelocity)

	if breakoutScore <= stapleScore {
		t.Errorf("breakout score %g <= staple score %g, want breakout ranked higher",
			breakoutScore, stapleScore)
	}
}

func TestTrendScorerEdgeCases(t *testing.T) {
	scorer := NewTrendScorer(7)

	tests := []struct {
		name        string
		item        recommend.Item
		recent      int
		maxVelocity float64
		want        float64
	}{
		{
			name: "no popularity no engagement scores zero",
			item: recommend.Item{ID: "dead"},
			want: 0,
		},
		{
			name:        "brand new breakout scores full",
			item:        recommend.Item{ID: "new", Popularity: 0},
			recent:      7,
			maxVelocity: 1,
			want:        100,
		},
		{
			name:        "negative recent treated as zero",
			item:        recommend.Item{ID: "neg", Popularity: 10},
			recent:      -3,
			maxVelocity: 1,
			want:        0,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := scorer.Score(&tt.item, tt.recent, tt.maxVelocity)
			if got != tt.want {
				t.Errorf("Score() = %g, want %g", got, tt.want)
			}
		})
	}
}

func TestTrendScorerRatioCapped(t *testing.T) {
	scorer := NewTrendScorer(7)

	// Recent engagement exceeding lifetime popularity must not push the
	// ratio term past 1.
	item := recommend.Item{ID: "spike", Popularity: 5}
	got := scorer.Score(&item, 50, 50.0/7.0)
	if got > 100 {
		t.Errorf("Score() = %g, want <= 100", got)
	}
	if got != 100 {
		t.Errorf("Score() = %g, want 100 for pool-max velocity and capped ratio", got)
	}
}

func TestNewTrendScorerWindowFallback(t *testing.T) {
	if got := NewTrendScorer(0).WindowDays(); got != 7 {
		t.Errorf("WindowDays() = %d, want 7", got)
	}
	if got := NewTrendScorer(30).WindowDays(); got != 30 {
		t.Errorf("WindowDays() = %d, want 30", got)
	}
}
