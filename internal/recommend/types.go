// Taleweaver - Personalized Story Recommendation Engine
// Copyright 2026 Taleweaver contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/taleweaver/recommend

package recommend

import (
	"time"
)

// Length classifies story length relative to a reader's habits.
type Length int

const (
	// LengthShort fits sessions under 30 minutes.
	LengthShort Length = iota
	// LengthMedium fits sessions between 30 and 60 minutes.
	LengthMedium
	// LengthLong fits sessions over an hour.
	LengthLong
)

// String returns a human-readable name for the length class.
func (l Length) String() string {
	switch l {
	case LengthShort:
		return "short"
	case LengthMedium:
		return "medium"
	case LengthLong:
		return "long"
	default:
		return "unknown"
	}
}

// Difficulty classifies reading difficulty.
type Difficulty int

const (
	// DifficultyEasy is accessible prose with simple branching.
	DifficultyEasy Difficulty = iota
	// DifficultyMedium is the default difficulty.
	DifficultyMedium
	// DifficultyHard is dense prose or deep branching.
	DifficultyHard
)

// String returns a human-readable name for the difficulty.
func (d Difficulty) String() string {
	switch d {
	case DifficultyEasy:
		return "easy"
	case DifficultyMedium:
		return "medium"
	case DifficultyHard:
		return "hard"
	default:
		return "unknown"
	}
}

// Level returns the ordinal difficulty level used for distance computations.
func (d Difficulty) Level() int {
	return int(d)
}

// Category identifies a recommendation pipeline.
type Category int

const (
	// CategoryPersonalized blends affinity, trend and novelty per user.
	CategoryPersonalized Category = iota
	// CategoryTrending ranks by engagement velocity, independent of the user.
	CategoryTrending
	// CategorySimilar ranks by similarity to a seed item.
	CategorySimilar
	// CategoryNovel surfaces highly-rated items outside the user's explored space.
	CategoryNovel
	// CategoryCommunity surfaces items read by similar users.
	CategoryCommunity
	// CategoryContinue surfaces in-progress items.
	CategoryContinue
)

// String returns a human-readable category name.
func (c Category) String() string {
	switch c {
	case CategoryPersonalized:
		return "personalized"
	case CategoryTrending:
		return "trending"
	case CategorySimilar:
		return "similar"
	case CategoryNovel:
		return "novel"
	case CategoryCommunity:
		return "community"
	case CategoryContinue:
		return "continue"
	default:
		return "unknown"
	}
}

// AllCategories lists every category in canonical order.
func AllCategories() []Category {
	return []Category{
		CategoryPersonalized,
		CategoryTrending,
		CategorySimilar,
		CategoryNovel,
		CategoryCommunity,
		CategoryContinue,
	}
}

// Item is a candidate content item with the metadata the engine scores on.
type Item struct {
	// ID is the unique content identifier.
	ID string `json:"id"`

	// Title is the content title.
	Title string `json:"title,omitempty"`

	// Genre is the primary genre.
	Genre string `json:"genre"`

	// Author is the author name.
	Author string `json:"author"`

	// Tags is a slice of descriptive tags.
	Tags []string `json:"tags,omitempty"`

	// Difficulty is the reading difficulty.
	Difficulty Difficulty `json:"difficulty"`

	// AverageRating is the mean reader rating (0-5).
	AverageRating float64 `json:"average_rating"`

	// TotalRatings is the number of ratings received.
	TotalRatings int `json:"total_ratings"`

	// Popularity is the lifetime engagement count.
	Popularity int `json:"popularity"`

	// Length is the word count.
	Length int `json:"length"`

	// PublishedAt is the publication timestamp.
	PublishedAt time.Time `json:"published_at"`

	// CompletionRate is the percentage of readers who finish (0-100).
	CompletionRate float64 `json:"completion_rate"`
}

// UserBehavior is the raw interaction history for one user.
// All sets and maps are read-only inputs; the engine never mutates them.
type UserBehavior struct {
	// CompletedItems is the set of finished item IDs.
	CompletedItems map[string]struct{} `json:"completed_items,omitempty"`

	// AbandonedItems is the set of abandoned item IDs.
	AbandonedItems map[string]struct{} `json:"abandoned_items,omitempty"`

	// BookmarkedItems is the set of bookmarked item IDs.
	BookmarkedItems map[string]struct{} `json:"bookmarked_items,omitempty"`

	// LikedItems is the set of liked item IDs.
	LikedItems map[string]struct{} `json:"liked_items,omitempty"`

	// GenreExploration counts interactions per genre.
	GenreExploration map[string]int `json:"genre_exploration,omitempty"`

	// AverageSessionDuration is the mean session length in minutes.
	AverageSessionDuration float64 `json:"average_session_duration"`

	// TotalEngagementTime is the lifetime engagement in minutes.
	TotalEngagementTime float64 `json:"total_engagement_time"`

	// ChoicePatterns counts branch choices per pattern.
	ChoicePatterns map[string]int `json:"choice_patterns,omitempty"`
}

// DataPoints returns the number of behavioral data points backing this
// history. Used for recommendation confidence.
func (b *UserBehavior) DataPoints() int {
	n := len(b.CompletedItems) + len(b.AbandonedItems) +
		len(b.BookmarkedItems) + len(b.LikedItems)
	for _, c := range b.ChoicePatterns {
		n += c
	}
	return n
}

// UserProfile is the normalized preference profile derived from behavior.
// Profiles are derived, never hand-edited; see the profile package.
type UserProfile struct {
	// FavoriteGenres is ordered most-preferred first.
	FavoriteGenres []string `json:"favorite_genres"`

	// FavoriteAuthors is the set of preferred author names.
	FavoriteAuthors map[string]struct{} `json:"favorite_authors,omitempty"`

	// TopTags is the set of most-engaged tags.
	TopTags map[string]struct{} `json:"top_tags,omitempty"`

	// ReadingSpeed is the estimated reading speed in words per minute.
	ReadingSpeed float64 `json:"reading_speed"`

	// PreferredLength is the preferred story length class.
	PreferredLength Length `json:"preferred_length"`

	// PreferredDifficulty is the preferred reading difficulty.
	PreferredDifficulty Difficulty `json:"preferred_difficulty"`

	// ActiveHours is the set of hours of day (0-23) the user reads in.
	ActiveHours map[int]struct{} `json:"active_hours,omitempty"`
}

// IsZero reports whether the profile carries no derived signal.
// The engine derives a profile from behavior when a zero profile is supplied.
func (p *UserProfile) IsZero() bool {
	return len(p.FavoriteGenres) == 0 &&
		len(p.FavoriteAuthors) == 0 &&
		len(p.TopTags) == 0 &&
		p.ReadingSpeed == 0
}

// Event is one entry of the raw interaction log. The log is optional input;
// it refines profile aggregation and novelty exposure.
type Event struct {
	// ItemID is the item interacted with.
	ItemID string `json:"item_id"`

	// Genre is the item's genre at interaction time.
	Genre string `json:"genre,omitempty"`

	// Author is the item's author.
	Author string `json:"author,omitempty"`

	// Tags are the item's tags.
	Tags []string `json:"tags,omitempty"`

	// Difficulty is the item's difficulty.
	Difficulty Difficulty `json:"difficulty"`

	// Length is the item's word count.
	Length int `json:"length"`

	// Completed indicates the item was finished in this interaction.
	Completed bool `json:"completed"`

	// Timestamp is when the interaction occurred.
	Timestamp time.Time `json:"timestamp"`
}

// MatchFactors is the per-factor breakdown of a personalized score.
// Every factor is in [0, 1].
type MatchFactors struct {
	// GenreMatch blends favorite-genre membership with tag overlap.
	GenreMatch float64 `json:"genre_match"`

	// DifficultyMatch measures difficulty-level proximity.
	DifficultyMatch float64 `json:"difficulty_match"`

	// PopularityBoost is pool-relative popularity.
	PopularityBoost float64 `json:"popularity_boost"`

	// DiversityScore measures how much the item expands explored genres.
	DiversityScore float64 `json:"diversity_score"`

	// Freshness decays with publication age.
	Freshness float64 `json:"freshness"`
}

// ScoredItem pairs an item with its pipeline score.
// Scores are on the 0-100 scale throughout the composer.
type ScoredItem struct {
	// Item is the content item.
	Item Item `json:"item"`

	// Score is the pipeline score (0-100).
	Score float64 `json:"score"`

	// Factors is the affinity breakdown, set by the personalized pipeline.
	Factors *MatchFactors `json:"factors,omitempty"`
}

// Result is a single recommendation entry.
type Result struct {
	// ItemID is the recommended item.
	ItemID string `json:"item_id"`

	// Score is the final score, clamped to [0, 100].
	Score float64 `json:"score"`

	// Reasons holds at most two short human-readable justifications,
	// ordered by the fixed reason priority.
	Reasons []string `json:"reasons"`

	// Confidence expresses how much behavioral data backs the score (0-1).
	Confidence float64 `json:"confidence"`

	// Category is the pipeline that produced this entry.
	Category Category `json:"category"`

	// Factors is the affinity breakdown when produced by the
	// personalized pipeline.
	Factors *MatchFactors `json:"factors,omitempty"`
}

// PeerProfile is a compact view of another user, used for the community
// category. Supplied by the caller; the engine holds no user registry.
type PeerProfile struct {
	// UserID identifies the peer.
	UserID string `json:"user_id"`

	// Genres is the set of genres the peer has explored.
	Genres map[string]struct{} `json:"genres,omitempty"`

	// History is the set of item IDs the peer has completed or liked.
	History map[string]struct{} `json:"history,omitempty"`

	// AverageRating is the peer's mean rating given (0-5).
	AverageRating float64 `json:"average_rating"`
}

// Request carries every input for one recommendation computation.
// The engine reads all fields and mutates none; identical requests produce
// identical responses.
type Request struct {
	// Profile is the user's preference profile. When zero, the engine
	// derives one from Behavior and Events.
	Profile UserProfile `json:"profile"`

	// Behavior is the user's interaction history.
	Behavior UserBehavior `json:"behavior"`

	// Events is the optional raw interaction log.
	Events []Event `json:"events,omitempty"`

	// Candidates is the candidate item pool.
	Candidates []Item `json:"candidates"`

	// RecentEngagement maps item ID to engagement count within the
	// trailing trend window. Supplied by the caller.
	RecentEngagement map[string]int `json:"recent_engagement,omitempty"`

	// Progress maps item ID to completion percentage for the continue
	// category.
	Progress map[string]float64 `json:"progress,omitempty"`

	// SeedItemID seeds the similar category. Must refer to an item in
	// Candidates; an unknown seed yields an empty similar list.
	SeedItemID string `json:"seed_item_id,omitempty"`

	// Peers supplies other users for the community category.
	Peers []PeerProfile `json:"peers,omitempty"`

	// AverageRating is the requesting user's mean rating given (0-5).
	AverageRating float64 `json:"average_rating,omitempty"`

	// Categories restricts which pipelines run. Empty means the
	// configured set.
	Categories []Category `json:"categories,omitempty"`

	// Now is the reference time for freshness. Zero means wall clock.
	Now time.Time `json:"now,omitempty"`

	// RequestID is a unique identifier for tracing.
	RequestID string `json:"request_id,omitempty"`
}

// CategoryResult is the ordered result list for one category.
type CategoryResult struct {
	// Category is the pipeline that produced the list.
	Category Category `json:"category"`

	// Items is the ordered recommendation list. Empty when no item
	// qualifies; never nil in a successful response.
	Items []Result `json:"items"`
}

// Response is the full recommendation response.
type Response struct {
	// Categories holds one entry per requested category, in request order.
	Categories []CategoryResult `json:"categories"`

	// Metadata contains timing and diagnostic information.
	Metadata ResponseMetadata `json:"metadata"`
}

// ResponseMetadata contains timing and diagnostic information.
type ResponseMetadata struct {
	// RequestID is the unique request identifier.
	RequestID string `json:"request_id"`

	// TotalCandidates is the candidate pool size considered.
	TotalCandidates int `json:"total_candidates"`

	// LatencyMS is the total computation latency in milliseconds.
	LatencyMS int64 `json:"latency_ms"`

	// Timestamp is when the response was generated.
	Timestamp time.Time `json:"timestamp"`
}

// ClampScore clamps a score to the [0, 100] output range.
func ClampScore(s float64) float64 {
	if s < 0 {
		return 0
	}
	if s > 100 {
		return 100
	}
	return s
}

// ApplyBehaviorAdjustments applies the history multipliers to a score:
// completed x0.3, abandoned x0.1, bookmarked-and-not-completed x1.2,
// in that order, then clamps to [0, 100].
func ApplyBehaviorAdjustments(score float64, itemID string, behavior *UserBehavior) float64 {
	if _, ok := behavior.CompletedItems[itemID]; ok {
		score *= 0.3
	}
	if _, ok := behavior.AbandonedItems[itemID]; ok {
		score *= 0.1
	}
	if _, ok := behavior.BookmarkedItems[itemID]; ok {
		if _, completed := behavior.CompletedItems[itemID]; !completed {
			score *= 1.2
		}
	}
	return ClampScore(score)
}
