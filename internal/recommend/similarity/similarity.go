// Taleweaver - Personalized Story Recommendation Engine
// Copyright 2026 Taleweaver contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/taleweaver/recommend

// Package similarity implements item-item and user-user similarity for
// "more like this" recommendations and peer-based discovery.
//
// Both measures return values in [0, 1]. Callers select top-K by descending
// similarity with ties broken by ascending ID, so results are deterministic.
package similarity

import (
	"math"
	"sort"
	"strings"

	"github.com/taleweaver/recommend/internal/recommend"
)

// ItemWeights defines the factor weights for item-item similarity.
type ItemWeights struct {
	// Genre is the weight for exact genre match.
	Genre float64

	// Tag is the weight for tag overlap.
	Tag float64

	// Difficulty is the weight for difficulty proximity.
	Difficulty float64

	// Rating is the weight for rating proximity.
	Rating float64
}

// UserWeights defines the factor weights for user-user similarity.
type UserWeights struct {
	// Genre is the weight for genre-set overlap.
	Genre float64

	// History is the weight for reading-history overlap.
	History float64

	// Rating is the weight for average-rating proximity.
	Rating float64
}

// UserVector is the compact representation of a user for similarity
// computations.
type UserVector struct {
	// Genres is the set of genres the user has explored.
	Genres map[string]struct{}

	// History is the set of item IDs the user has completed or liked.
	History map[string]struct{}

	// AverageRating is the user's mean rating given (0-5).
	AverageRating float64
}

// Match pairs an ID with a similarity score.
type Match struct {
	// ID identifies the matched item or user.
	ID string

	// Score is the similarity in [0, 1].
	Score float64
}

// Engine computes item-item and user-user similarity with configurable
// weights. The zero value is not usable; construct with NewEngine.
type Engine struct {
	items ItemWeights
	users UserWeights
}

// NewEngine creates a similarity engine with the documented default weights:
// items 0.4 genre / 0.3 tags / 0.15 difficulty / 0.15 rating,
// users 0.4 genres / 0.4 history / 0.2 rating.
func NewEngine() *Engine {
	return &Engine{
		items: ItemWeights{Genre: 0.4, Tag: 0.3, Difficulty: 0.15, Rating: 0.15},
		users: UserWeights{Genre: 0.4, History: 0.4, Rating: 0.2},
	}
}

// ItemSimilarity computes the similarity between two items in [0, 1].
func (e *Engine) ItemSimilarity(a, b *recommend.Item) float64 {
	genreMatch := 0.0
	if a.Genre != "" && strings.EqualFold(a.Genre, b.Genre) {
		genreMatch = 1.0
	}

	tagOverlap := overlapOverMax(toSet(a.Tags), toSet(b.Tags))

	diffDistance := math.Abs(float64(a.Difficulty.Level() - b.Difficulty.Level()))
	difficultyMatch := 1.0 - 0.4*diffDistance
	if difficultyMatch < 0 {
		difficultyMatch = 0
	}

	ratingMatch := 1.0 - math.Abs(a.AverageRating-b.AverageRating)/5.0

	return e.items.Genre*genreMatch +
		e.items.Tag*tagOverlap +
		e.items.Difficulty*difficultyMatch +
		e.items.Rating*ratingMatch
}

// UserSimilarity computes the similarity between two users in [0, 1].
func (e *Engine) UserSimilarity(a, b *UserVector) float64 {
	genreOverlap := overlapOverMax(a.Genres, b.Genres)
	historyOverlap := overlapOverMax(a.History, b.History)
	ratingMatch := 1.0 - math.Abs(a.AverageRating-b.AverageRating)/5.0

	return e.users.Genre*genreOverlap +
		e.users.History*historyOverlap +
		e.users.Rating*ratingMatch
}

// TopKItems returns the k items most similar to the seed, descending by
// similarity with ties broken by ascending item ID. The seed itself is
// excluded.
func (e *Engine) TopKItems(seed *recommend.Item, pool []recommend.Item, k int) []Match {
	if k <= 0 || len(pool) == 0 {
		return nil
	}

	matches := make([]Match, 0, len(pool))
	for i := range pool {
		if pool[i].ID == seed.ID {
			continue
		}
		matches = append(matches, Match{
			ID:    pool[i].ID,
			Score: e.ItemSimilarity(seed, &pool[i]),
		})
	}

	sortMatches(matches)
	if len(matches) > k {
		matches = matches[:k]
	}
	return matches
}

// TopKUsers returns the k peers most similar to the user, descending by
// similarity with ties broken by ascending user ID.
func (e *Engine) TopKUsers(user *UserVector, peers []recommend.PeerProfile, k int) []Match {
	if k <= 0 || len(peers) == 0 {
		return nil
	}

	matches := make([]Match, 0, len(peers))
	for i := range peers {
		peer := UserVector{
			Genres:        peers[i].Genres,
			History:       peers[i].History,
			AverageRating: peers[i].AverageRating,
		}
		matches = append(matches, Match{
			ID:    peers[i].UserID,
			Score: e.UserSimilarity(user, &peer),
		})
	}

	sortMatches(matches)
	if len(matches) > k {
		matches = matches[:k]
	}
	return matches
}

// sortMatches orders by score descending, then ID ascending.
func sortMatches(matches []Match) {
	sort.Slice(matches, func(i, j int) bool {
		if matches[i].Score != matches[j].Score {
			return matches[i].Score > matches[j].Score
		}
		return matches[i].ID < matches[j].ID
	})
}

// overlapOverMax is intersection size over the larger set size.
// Two empty sets have no overlap signal and score 0.
func overlapOverMax(a, b map[string]struct{}) float64 {
	if len(a) == 0 || len(b) == 0 {
		return 0
	}

	small, large := a, b
	if len(small) > len(large) {
		small, large = large, small
	}

	intersection := 0
	for v := range small {
		if _, ok := large[v]; ok {
			intersection++
		}
	}

	max := len(a)
	if len(b) > max {
		max = len(b)
	}
	return float64(intersection) / float64(max)
}

// toSet lowercases a slice into a set.
func toSet(values []string) map[string]struct{} {
	set := make(map[string]struct{}, len(values))
	for _, v := range values {
		set[strings.ToLower(v)] = struct{}{}
	}
	return set
}
