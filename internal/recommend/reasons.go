// Taleweaver - Personalized Story Recommendation Engine
// Copyright 2026 Taleweaver contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/taleweaver/recommend

package recommend

import (
	"fmt"
	"strings"
)

// maxReasons caps the reason list per recommendation.
const maxReasons = 2

// highRatingThreshold marks an item as "highly rated" for reason text.
const highRatingThreshold = 4.5

// trendingReasonThreshold is the trend score (0-100) above which the
// trending reason fires.
const trendingReasonThreshold = 70.0

// ReasonInputs carries the signals the reason builder inspects. Zero-valued
// signals simply never fire their reason.
type ReasonInputs struct {
	// Profile is the effective user profile.
	Profile *UserProfile

	// Item is the recommended item.
	Item *Item

	// TrendScore is the item's trend score (0-100).
	TrendScore float64

	// SeedTitle names the seed item when similarity drove the
	// recommendation. Empty otherwise.
	SeedTitle string

	// Similarity is the similarity to the seed or peer group (0-1).
	Similarity float64

	// FromPeers marks the similarity as peer-based rather than item-based.
	FromPeers bool

	// Novelty is the item's novelty score (0-1).
	Novelty float64

	// NoveltyThreshold is the configured novelty cutoff.
	NoveltyThreshold float64

	// PopularityBoost is the pool-relative popularity (0-1).
	PopularityBoost float64
}

// BuildReasons produces at most two short human-readable justifications in
// fixed priority order: favorite genre, favorite author, high rating,
// trending, similarity, novelty, popularity. The fixed order keeps reason
// output deterministic for identical inputs.
func BuildReasons(in ReasonInputs) []string {
	reasons := make([]string, 0, maxReasons)

	add := func(r string) bool {
		reasons = append(reasons, r)
		return len(reasons) >= maxReasons
	}

	if genre, ok := favoriteGenre(in.Profile, in.Item.Genre); ok {
		if add(fmt.Sprintf("Matches your favorite genre: %s", genre)) {
			return reasons
		}
	}
	if _, ok := in.Profile.FavoriteAuthors[in.Item.Author]; ok && in.Item.Author != "" {
		if add(fmt.Sprintf("By %s, an author you enjoy", in.Item.Author)) {
			return reasons
		}
	}
	if in.Item.AverageRating >= highRatingThreshold {
		if add(fmt.Sprintf("Highly rated (%.1f/5)", in.Item.AverageRating)) {
			return reasons
		}
	}
	if in.TrendScore >= trendingReasonThreshold {
		if add("Trending with readers right now") {
			return reasons
		}
	}
	if in.Similarity > 0 {
		reason := "Similar to stories you've read"
		switch {
		case in.SeedTitle != "":
			reason = fmt.Sprintf("Similar to %q", in.SeedTitle)
		case in.FromPeers:
			reason = "Enjoyed by readers with similar tastes"
		}
		if add(reason) {
			return reasons
		}
	}
	if in.NoveltyThreshold > 0 && in.Novelty >= in.NoveltyThreshold {
		if add("Something new outside your usual reads") {
			return reasons
		}
	}
	if in.PopularityBoost > 0 {
		add("Popular with the community")
	}

	return reasons
}

// favoriteGenre reports whether the genre is in the user's favorites,
// returning the profile's spelling of it.
func favoriteGenre(profile *UserProfile, genre string) (string, bool) {
	if genre == "" {
		return "", false
	}
	for _, g := range profile.FavoriteGenres {
		if strings.EqualFold(g, genre) {
			return g, true
		}
	}
	return "", false
}

// Confidence expresses how much behavioral data backs a score:
//
//	0.6 * min(dataPoints/20, 1) + 0.4 * score/100
//
// A brand-new user tops out at 0.4 regardless of how strong the score is.
func Confidence(dataPoints int, score float64) float64 {
	dataTerm := float64(dataPoints) / 20.0
	if dataTerm > 1 {
		dataTerm = 1
	}
	return 0.6*dataTerm + 0.4*ClampScore(score)/100.0
}
