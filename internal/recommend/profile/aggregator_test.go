// Taleweaver - Personalized Story Recommendation Engine
// Copyright 2026 Taleweaver contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/taleweaver/recommend

package profile

import (
	"math"
	"reflect"
	"testing"
	"time"

	"github.com/taleweaver/recommend/internal/recommend"
)

func TestBuildEmptyBehaviorUsesDefaults(t *testing.T) {
	p := NewAggregator().Build(&recommend.UserBehavior{}, nil)

	if len(p.FavoriteGenres) != 0 {
		t.Errorf("FavoriteGenres = %v, want empty", p.FavoriteGenres)
	}
	if p.ReadingSpeed != 200 {
		t.Errorf("ReadingSpeed = %g, want default 200", p.ReadingSpeed)
	}
	if p.PreferredLength != recommend.LengthShort {
		t.Errorf("PreferredLength = %v, want short for zero session duration", p.PreferredLength)
	}
	if p.PreferredDifficulty != recommend.DifficultyMedium {
		t.Errorf("PreferredDifficulty = %v, want medium default", p.PreferredDifficulty)
	}
	for _, h := range []int{19, 20, 21, 22} {
		if _, ok := p.ActiveHours[h]; !ok {
			t.Errorf("default ActiveHours missing hour %d", h)
		}
	}
}

func TestFavoriteGenresOrdering(t *testing.T) {
	behavior := recommend.UserBehavior{
		GenreExploration: map[string]int{
			"fantasy": 9,
			"mystery": 4,
			"romance": 4,
			"horror":  1,
		},
	}

	p := NewAggregator().Build(&behavior, nil)

	// Top 3 by count; the mystery/romance tie breaks lexicographically
	// with no event recency to consult.
	want := []string{"fantasy", "mystery", "romance"}
	if !reflect.DeepEqual(p.FavoriteGenres, want) {
		t.Errorf("FavoriteGenres = %v, want %v", p.FavoriteGenres, want)
	}
}

func TestFavoriteGenresRecencyTieBreak(t *testing.T) {
	older := time.Date(2026, 7, 1, 10, 0, 0, 0, time.UTC)
	newer := time.Date(2026, 8, 1, 10, 0, 0, 0, time.UTC)
	events := []recommend.Event{
		{ItemID: "1", Genre: "mystery", Timestamp: older},
		{ItemID: "2", Genre: "romance", Timestamp: newer},
	}

	p := NewAggregator().Build(&recommend.UserBehavior{}, events)

	if len(p.FavoriteGenres) != 2 || p.FavoriteGenres[0] != "romance" {
		t.Errorf("FavoriteGenres = %v, want romance first on recency tie-break", p.FavoriteGenres)
	}
}

func TestFavoriteAuthorsAndTopTags(t *testing.T) {
	events := []recommend.Event{
		{ItemID: "1", Author: "A", Tags: []string{"dragons", "Magic"}},
		{ItemID: "2", Author: "A", Tags: []string{"dragons"}},
		{ItemID: "3", Author: "B"},
		{ItemID: "4", Author: "C"},
		{ItemID: "5", Author: "D"},
		{ItemID: "6", Author: "E"},
		{ItemID: "7", Author: "F"},
	}

	p := NewAggregator().Build(&recommend.UserBehavior{}, events)

	if len(p.FavoriteAuthors) != 5 {
		t.Fatalf("FavoriteAuthors size = %d, want capped at 5", len(p.FavoriteAuthors))
	}
	if _, ok := p.FavoriteAuthors["A"]; !ok {
		t.Error("most-read author A missing from favorites")
	}
	if _, ok := p.FavoriteAuthors["F"]; ok {
		t.Error("lexicographically last tied author F should be cut by the cap")
	}
	if _, ok := p.TopTags["dragons"]; !ok {
		t.Error("TopTags missing dragons")
	}
	if _, ok := p.TopTags["magic"]; !ok {
		t.Error("TopTags missing lowercased magic")
	}
}

func TestReadingSpeed(t *testing.T) {
	behavior := recommend.UserBehavior{TotalEngagementTime: 100}
	events := []recommend.Event{
		{ItemID: "1", Length: 15000, Completed: true},
		{ItemID: "2", Length: 10000, Completed: true},
		{ItemID: "3", Length: 99999, Completed: false},
	}

	p := NewAggregator().Build(&behavior, events)
	if math.Abs(p.ReadingSpeed-250) > 1e-9 {
		t.Errorf("ReadingSpeed = %g, want 250 (completed words / engagement minutes)", p.ReadingSpeed)
	}
}

func TestPreferredLength(t *testing.T) {
	tests := []struct {
		minutes float64
		want    recommend.Length
	}{
		{10, recommend.LengthShort},
		{45, recommend.LengthMedium},
		{90, recommend.LengthLong},
	}
	for _, tt := range tests {
		p := NewAggregator().Build(&recommend.UserBehavior{AverageSessionDuration: tt.minutes}, nil)
		if p.PreferredLength != tt.want {
			t.Errorf("PreferredLength for %g min = %v, want %v", tt.minutes, p.PreferredLength, tt.want)
		}
	}
}

func TestPreferredDifficultyMajority(t *testing.T) {
	completed := func(d recommend.Difficulty) recommend.Event {
		return recommend.Event{ItemID: "x", Difficulty: d, Completed: true}
	}

	// Under three completions the medium default holds.
	p := NewAggregator().Build(&recommend.UserBehavior{}, []recommend.Event{
		completed(recommend.DifficultyHard),
		completed(recommend.DifficultyHard),
	})
	if p.PreferredDifficulty != recommend.DifficultyMedium {
		t.Errorf("PreferredDifficulty = %v, want medium below completion minimum", p.PreferredDifficulty)
	}

	p = NewAggregator().Build(&recommend.UserBehavior{}, []recommend.Event{
		completed(recommend.DifficultyHard),
		completed(recommend.DifficultyHard),
		completed(recommend.DifficultyEasy),
	})
	if p.PreferredDifficulty != recommend.DifficultyHard {
		t.Errorf("PreferredDifficulty = %v, want hard majority", p.PreferredDifficulty)
	}
}

func TestActiveHoursFromEvents(t *testing.T) {
	at := func(hour int) recommend.Event {
		return recommend.Event{
			ItemID:    "x",
			Timestamp: time.Date(2026, 8, 1, hour, 0, 0, 0, time.UTC),
		}
	}

	p := NewAggregator().Build(&recommend.UserBehavior{}, []recommend.Event{
		at(7), at(7), at(23),
	})

	if _, ok := p.ActiveHours[7]; !ok {
		t.Error("ActiveHours missing max-count hour 7")
	}
	if _, ok := p.ActiveHours[23]; ok {
		t.Error("ActiveHours includes non-max hour 23")
	}
}
