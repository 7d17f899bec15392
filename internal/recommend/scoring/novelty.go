// Taleweaver - Personalized Story Recommendation Engine
// Copyright 2026 Taleweaver contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/taleweaver/recommend

package scoring

import (
	"strings"

	"github.com/taleweaver/recommend/internal/recommend"
)

// Exposure counts the user's prior interactions per facet. Built once per
// request from behavior and the optional event log.
type Exposure struct {
	// Genres counts interactions per genre.
	Genres map[string]int

	// Authors counts interactions per author.
	Authors map[string]int

	// Tags counts interactions per tag.
	Tags map[string]int
}

// BuildExposure derives facet exposure from behavior and events. Genre
// counts come from the behavior's genre exploration map merged with the
// event log; author and tag counts come from the event log alone.
func BuildExposure(behavior *recommend.UserBehavior, events []recommend.Event) Exposure {
	exp := Exposure{
		Genres:  make(map[string]int, len(behavior.GenreExploration)),
		Authors: make(map[string]int),
		Tags:    make(map[string]int),
	}

	for genre, count := range behavior.GenreExploration {
		exp.Genres[strings.ToLower(genre)] += count
	}

	for i := range events {
		ev := &events[i]
		if ev.Genre != "" {
			exp.Genres[strings.ToLower(ev.Genre)]++
		}
		if ev.Author != "" {
			exp.Authors[strings.ToLower(ev.Author)]++
		}
		for _, tag := range ev.Tags {
			exp.Tags[strings.ToLower(tag)]++
		}
	}

	return exp
}

// NoveltyScorer rewards items that expand the user's explored
// genre/author/tag space:
//
//	novelty = 0.4 * genreNovelty + 0.3 * authorNovelty + 0.3 * tagNovelty
//
// Each term is 1 - exposure(facet)/maxExposure within that facet kind, so
// under-explored facets score near 1 and heavily-explored ones near 0.
// A user with no exposure at all scores 1 everywhere.
type NoveltyScorer struct{}

// NewNoveltyScorer creates a novelty scorer.
func NewNoveltyScorer() *NoveltyScorer {
	return &NoveltyScorer{}
}

// Score computes the novelty score in [0, 1] for one item.
func (n *NoveltyScorer) Score(item *recommend.Item, exp Exposure) float64 {
	genreNovelty := facetNovelty(exp.Genres, strings.ToLower(item.Genre))
	authorNovelty := facetNovelty(exp.Authors, strings.ToLower(item.Author))
	tagNovelty := tagsNovelty(exp.Tags, item.Tags)

	return 0.4*genreNovelty + 0.3*authorNovelty + 0.3*tagNovelty
}

// facetNovelty is 1 - exposure/maxExposure for one facet value.
func facetNovelty(exposure map[string]int, value string) float64 {
	max := maxExposure(exposure)
	if max == 0 {
		return 1
	}
	return 1 - float64(exposure[value])/float64(max)
}

// tagsNovelty averages the per-tag novelty over the item's tags.
// Untagged items score 1 on the tag term.
func tagsNovelty(exposure map[string]int, tags []string) float64 {
	if len(tags) == 0 {
		return 1
	}
	max := maxExposure(exposure)
	if max == 0 {
		return 1
	}

	var total float64
	for _, tag := range tags {
		total += 1 - float64(exposure[strings.ToLower(tag)])/float64(max)
	}
	return total / float64(len(tags))
}

// maxExposure returns the highest count in a facet map.
func maxExposure(exposure map[string]int) int {
	max := 0
	for _, c := range exposure {
		if c > max {
			max = c
		}
	}
	return max
}
