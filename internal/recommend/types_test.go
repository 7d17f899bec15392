// Taleweaver - Personalized Story Recommendation Engine
// Copyright 2026 Taleweaver contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/taleweaver/recommend

package recommend

import (
	"math"
	"testing"
)

func TestApplyBehaviorAdjustments(t *testing.T) {
	tests := []struct {
		name     string
		behavior UserBehavior
		score    float64
		want     float64
	}{
		{
			name:     "no history leaves score unchanged",
			behavior: UserBehavior{},
			score:    80,
			want:     80,
		},
		{
			name: "completed applies 0.3 multiplier",
			behavior: UserBehavior{
				CompletedItems: map[string]struct{}{"x": {}},
			},
			score: 80,
			want:  24,
		},
		{
			name: "abandoned applies 0.1 multiplier",
			behavior: UserBehavior{
				AbandonedItems: map[string]struct{}{"x": {}},
			},
			score: 80,
			want:  8,
		},
		{
			name: "bookmarked boosts 1.2",
			behavior: UserBehavior{
				BookmarkedItems: map[string]struct{}{"x": {}},
			},
			score: 50,
			want:  60,
		},
		{
			name: "bookmarked but completed gets no boost",
			behavior: UserBehavior{
				CompletedItems:  map[string]struct{}{"x": {}},
				BookmarkedItems: map[string]struct{}{"x": {}},
			},
			score: 80,
			want:  24,
		},
		{
			name: "boost clamps at 100",
			behavior: UserBehavior{
				BookmarkedItems: map[string]struct{}{"x": {}},
			},
			score: 95,
			want:  100,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ApplyBehaviorAdjustments(tt.score, "x", &tt.behavior)
			if math.Abs(got-tt.want) > 1e-9 {
				t.Errorf("ApplyBehaviorAdjustments(%g) = %g, want %g", tt.score, got, tt.want)
			}
		})
	}
}

func TestClampScore(t *testing.T) {
	if got := ClampScore(-5); got != 0 {
		t.Errorf("ClampScore(-5) = %g, want 0", got)
	}
	if got := ClampScore(150); got != 100 {
		t.Errorf("ClampScore(150) = %g, want 100", got)
	}
	if got := ClampScore(42.5); got != 42.5 {
		t.Errorf("ClampScore(42.5) = %g, want 42.5", got)
	}
}

func TestUserBehaviorDataPoints(t *testing.T) {
	b := UserBehavior{
		CompletedItems:  map[string]struct{}{"a": {}, "b": {}},
		AbandonedItems:  map[string]struct{}{"c": {}},
		BookmarkedItems: map[string]struct{}{"d": {}},
		LikedItems:      map[string]struct{}{"e": {}, "f": {}},
		ChoicePatterns:  map[string]int{"brave": 3, "cautious": 1},
	}
	if got := b.DataPoints(); got != 10 {
		t.Errorf("DataPoints() = %d, want 10", got)
	}

	var empty UserBehavior
	if got := empty.DataPoints(); got != 0 {
		t.Errorf("empty DataPoints() = %d, want 0", got)
	}
}

func TestUserProfileIsZero(t *testing.T) {
	var p UserProfile
	if !p.IsZero() {
		t.Error("zero profile should report IsZero")
	}

	p.FavoriteGenres = []string{"fantasy"}
	if p.IsZero() {
		t.Error("profile with favorite genres should not report IsZero")
	}
}

func TestCategoryString(t *testing.T) {
	want := map[Category]string{
		CategoryPersonalized: "personalized",
		CategoryTrending:     "trending",
		CategorySimilar:      "similar",
		CategoryNovel:        "novel",
		CategoryCommunity:    "community",
		CategoryContinue:     "continue",
		Category(99):         "unknown",
	}
	for cat, name := range want {
		if got := cat.String(); got != name {
			t.Errorf("Category(%d).String() = %q, want %q", cat, got, name)
		}
	}
}
