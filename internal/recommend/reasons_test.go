// Taleweaver - Personalized Story Recommendation Engine
// Copyright 2026 Taleweaver contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/taleweaver/recommend

package recommend

import (
	"math"
	"reflect"
	"testing"
)

func TestBuildReasons(t *testing.T) {
	profile := UserProfile{
		FavoriteGenres:  []string{"fantasy"},
		FavoriteAuthors: map[string]struct{}{"N. Okorafor": {}},
	}

	tests := []struct {
		name string
		in   ReasonInputs
		want []string
	}{
		{
			name: "genre then author, capped at two",
			in: ReasonInputs{
				Profile: &profile,
				Item: &Item{
					Genre:         "Fantasy",
					Author:        "N. Okorafor",
					AverageRating: 4.9,
				},
				TrendScore: 95,
			},
			want: []string{
				"Matches your favorite genre: fantasy",
				"By N. Okorafor, an author you enjoy",
			},
		},
		{
			name: "high rating then trending",
			in: ReasonInputs{
				Profile:    &profile,
				Item:       &Item{Genre: "romance", Author: "someone", AverageRating: 4.7},
				TrendScore: 80,
			},
			want: []string{
				"Highly rated (4.7/5)",
				"Trending with readers right now",
			},
		},
		{
			name: "seed similarity names the seed",
			in: ReasonInputs{
				Profile:    &profile,
				Item:       &Item{Genre: "scifi", Author: "x", AverageRating: 3.0},
				SeedTitle:  "The Long Way Down",
				Similarity: 0.8,
			},
			want: []string{`Similar to "The Long Way Down"`},
		},
		{
			name: "peer similarity uses peer wording",
			in: ReasonInputs{
				Profile:    &profile,
				Item:       &Item{Genre: "scifi", Author: "x", AverageRating: 3.0},
				Similarity: 0.5,
				FromPeers:  true,
			},
			want: []string{"Enjoyed by readers with similar tastes"},
		},
		{
			name: "novelty above threshold",
			in: ReasonInputs{
				Profile:          &profile,
				Item:             &Item{Genre: "horror", Author: "y", AverageRating: 3.5},
				Novelty:          0.9,
				NoveltyThreshold: 0.7,
			},
			want: []string{"Something new outside your usual reads"},
		},
		{
			name: "popularity as last resort",
			in: ReasonInputs{
				Profile:         &profile,
				Item:            &Item{Genre: "horror", Author: "y", AverageRating: 3.5},
				PopularityBoost: 0.6,
			},
			want: []string{"Popular with the community"},
		},
		{
			name: "no applicable signals yields no reasons",
			in: ReasonInputs{
				Profile: &profile,
				Item:    &Item{Genre: "horror", Author: "y", AverageRating: 3.5},
			},
			want: []string{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := BuildReasons(tt.in)
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("BuildReasons() = %q, want %q", got, tt.want)
			}
			if len(got) > 2 {
				t.Errorf("BuildReasons() returned %d reasons, max is 2", len(got))
			}
		})
	}
}

func TestConfidence(t *testing.T) {
	tests := []struct {
		name       string
		dataPoints int
		score      float64
		want       float64
	}{
		{"no data no score", 0, 0, 0},
		{"half data half score", 10, 50, 0.5},
		{"full data full score", 20, 100, 1.0},
		{"data term saturates at 20", 200, 100, 1.0},
		{"new user strong score tops out", 0, 100, 0.4},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Confidence(tt.dataPoints, tt.score)
			if math.Abs(got-tt.want) > 1e-9 {
				t.Errorf("Confidence(%d, %g) = %g, want %g", tt.dataPoints, tt.score, got, tt.want)
			}
		})
	}
}
