// Taleweaver - Personalized Story Recommendation Engine
// Copyright 2026 Taleweaver contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/taleweaver/recommend

// Package profile derives normalized user preference profiles from raw
// interaction behavior.
//
// Aggregation never fails: absent data always yields a fully-populated
// profile using documented defaults, so downstream scorers never see a
// missing preference field.
package profile

import (
	"sort"
	"strings"
	"time"

	"github.com/taleweaver/recommend/internal/recommend"
)

const (
	// defaultReadingSpeed is the assumed words-per-minute with no data.
	defaultReadingSpeed = 200.0

	// maxFavoriteGenres caps the ordered favorite-genre list.
	maxFavoriteGenres = 3

	// maxFavoriteAuthors caps the favorite-author set.
	maxFavoriteAuthors = 5

	// maxTopTags caps the top-tag set.
	maxTopTags = 5

	// minCompletionsForDifficulty is how many completed interactions are
	// needed before the difficulty majority overrides the medium default.
	minCompletionsForDifficulty = 3
)

// defaultActiveHours is the evening bucket used when no timestamps exist.
var defaultActiveHours = []int{19, 20, 21, 22}

// Aggregator derives a UserProfile from UserBehavior and the optional raw
// interaction log. It is stateless and safe for concurrent use.
type Aggregator struct{}

// NewAggregator creates a profile aggregator.
func NewAggregator() *Aggregator {
	return &Aggregator{}
}

// Build derives a fully-populated profile. Missing behavior fields fall
// back to documented defaults; Build never fails.
func (a *Aggregator) Build(behavior *recommend.UserBehavior, events []recommend.Event) recommend.UserProfile {
	return recommend.UserProfile{
		FavoriteGenres:      favoriteGenres(behavior.GenreExploration, events),
		FavoriteAuthors:     topCounted(authorCounts(events), maxFavoriteAuthors),
		TopTags:             topCounted(tagCounts(events), maxTopTags),
		ReadingSpeed:        readingSpeed(behavior, events),
		PreferredLength:     preferredLength(behavior.AverageSessionDuration),
		PreferredDifficulty: preferredDifficulty(events),
		ActiveHours:         activeHours(events),
	}
}

// favoriteGenres returns the top genres by exploration count, descending.
// Ties are broken by the most recent interaction with the genre, then
// lexicographically, so the ordering is deterministic.
func favoriteGenres(exploration map[string]int, events []recommend.Event) []string {
	counts := make(map[string]int, len(exploration))
	for genre, c := range exploration {
		counts[strings.ToLower(genre)] += c
	}

	lastSeen := make(map[string]time.Time)
	for i := range events {
		genre := strings.ToLower(events[i].Genre)
		if genre == "" {
			continue
		}
		if _, ok := counts[genre]; !ok {
			counts[genre] = 0
		}
		counts[genre]++
		if events[i].Timestamp.After(lastSeen[genre]) {
			lastSeen[genre] = events[i].Timestamp
		}
	}

	genres := make([]string, 0, len(counts))
	for genre := range counts {
		genres = append(genres, genre)
	}

	sort.Slice(genres, func(i, j int) bool {
		gi, gj := genres[i], genres[j]
		if counts[gi] != counts[gj] {
			return counts[gi] > counts[gj]
		}
		if !lastSeen[gi].Equal(lastSeen[gj]) {
			return lastSeen[gi].After(lastSeen[gj])
		}
		return gi < gj
	})

	if len(genres) > maxFavoriteGenres {
		genres = genres[:maxFavoriteGenres]
	}
	return genres
}

// authorCounts counts interactions per author from the event log.
func authorCounts(events []recommend.Event) map[string]int {
	counts := make(map[string]int)
	for i := range events {
		if events[i].Author != "" {
			counts[events[i].Author]++
		}
	}
	return counts
}

// tagCounts counts interactions per tag from the event log.
func tagCounts(events []recommend.Event) map[string]int {
	counts := make(map[string]int)
	for i := range events {
		for _, tag := range events[i].Tags {
			counts[strings.ToLower(tag)]++
		}
	}
	return counts
}

// topCounted selects the n highest-counted keys as a set, ties broken
// lexicographically.
func topCounted(counts map[string]int, n int) map[string]struct{} {
	keys := make([]string, 0, len(counts))
	for k := range counts {
		keys = append(keys, k)
	}
	sort.Slice(keys, func(i, j int) bool {
		if counts[keys[i]] != counts[keys[j]] {
			return counts[keys[i]] > counts[keys[j]]
		}
		return keys[i] < keys[j]
	})

	if len(keys) > n {
		keys = keys[:n]
	}

	set := make(map[string]struct{}, len(keys))
	for _, k := range keys {
		set[k] = struct{}{}
	}
	return set
}

// readingSpeed estimates words per minute as total completed words over
// total engagement time, defaulting to 200 wpm without usable data.
func readingSpeed(behavior *recommend.UserBehavior, events []recommend.Event) float64 {
	if behavior.TotalEngagementTime <= 0 {
		return defaultReadingSpeed
	}

	var words int
	for i := range events {
		if events[i].Completed {
			words += events[i].Length
		}
	}
	if words == 0 {
		return defaultReadingSpeed
	}

	return float64(words) / behavior.TotalEngagementTime
}

// preferredLength maps average session duration onto a length class:
// under 30 minutes short, under 60 medium, otherwise long.
func preferredLength(averageSessionMinutes float64) recommend.Length {
	switch {
	case averageSessionMinutes < 30:
		return recommend.LengthShort
	case averageSessionMinutes < 60:
		return recommend.LengthMedium
	default:
		return recommend.LengthLong
	}
}

// preferredDifficulty returns the majority difficulty across completed
// interactions once enough completions exist, otherwise medium.
func preferredDifficulty(events []recommend.Event) recommend.Difficulty {
	counts := make(map[recommend.Difficulty]int)
	completions := 0
	for i := range events {
		if events[i].Completed {
			counts[events[i].Difficulty]++
			completions++
		}
	}
	if completions < minCompletionsForDifficulty {
		return recommend.DifficultyMedium
	}

	best := recommend.DifficultyMedium
	bestCount := -1
	for _, d := range []recommend.Difficulty{recommend.DifficultyEasy, recommend.DifficultyMedium, recommend.DifficultyHard} {
		if counts[d] > bestCount {
			best = d
			bestCount = counts[d]
		}
	}
	return best
}

// activeHours returns every hour of day whose interaction count equals the
// maximum, or the default evening bucket when no timestamps exist.
func activeHours(events []recommend.Event) map[int]struct{} {
	counts := make(map[int]int)
	for i := range events {
		if !events[i].Timestamp.IsZero() {
			counts[events[i].Timestamp.Hour()]++
		}
	}

	hours := make(map[int]struct{})
	if len(counts) == 0 {
		for _, h := range defaultActiveHours {
			hours[h] = struct{}{}
		}
		return hours
	}

	max := 0
	for _, c := range counts {
		if c > max {
			max = c
		}
	}
	for h, c := range counts {
		if c == max {
			hours[h] = struct{}{}
		}
	}
	return hours
}
