// Taleweaver - Personalized Story Recommendation Engine
// Copyright 2026 Taleweaver contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/taleweaver/recommend

// Package reranking implements post-processing of scored recommendation
// lists to bound repetition of the same genre or author.
package reranking

import (
	"sort"
	"strings"

	"github.com/taleweaver/recommend/internal/recommend"
)

// maxRerankSize limits slice allocations to prevent excessive memory usage.
const maxRerankSize = 10000

// Diversity applies a running-count penalty to a score-sorted list:
// walking the list in score order, each candidate's score is reduced by
//
//	factor * genreUnit * (same-genre items seen so far) +
//	factor * authorUnit * (same-author items seen so far)
//
// and the list is re-sorted by adjusted score. The author unit is higher
// than the genre unit, so stacking one author decays faster than stacking
// one genre. There is no hard cutoff — willingness to repeat decreases
// monotonically instead. Ties are broken by ascending item ID.
type Diversity struct {
	factor     float64
	genreUnit  float64
	authorUnit float64
}

// NewDiversity creates a diversity reranker. A factor of 0 disables
// reranking entirely. Non-positive penalty units fall back to the defaults
// (5.0 per genre repeat, 7.5 per author repeat, on the 0-100 score scale).
func NewDiversity(factor, genreUnit, authorUnit float64) *Diversity {
	if factor < 0 {
		factor = 0
	}
	if factor > 1 {
		factor = 1
	}
	if genreUnit <= 0 {
		genreUnit = 5.0
	}
	if authorUnit <= 0 {
		authorUnit = 1.5 * genreUnit
	}
	return &Diversity{factor: factor, genreUnit: genreUnit, authorUnit: authorUnit}
}

// Name returns the reranker identifier.
func (d *Diversity) Name() string {
	return "diversity"
}

// Rerank returns up to k items with diversity-adjusted ordering. The input
// must already be sorted by score descending. The input slice is not
// modified.
func (d *Diversity) Rerank(items []recommend.ScoredItem, k int) []recommend.ScoredItem {
	if len(items) == 0 || k <= 0 {
		return nil
	}
	if k > maxRerankSize {
		k = maxRerankSize
	}

	if d.factor == 0 {
		out := make([]recommend.ScoredItem, len(items))
		copy(out, items)
		if len(out) > k {
			out = out[:k]
		}
		return out
	}

	genreSeen := make(map[string]int)
	authorSeen := make(map[string]int)

	adjusted := make([]recommend.ScoredItem, len(items))
	for i := range items {
		adjusted[i] = items[i]

		genre := strings.ToLower(items[i].Item.Genre)
		author := strings.ToLower(items[i].Item.Author)

		penalty := d.factor * (d.genreUnit*float64(genreSeen[genre]) +
			d.authorUnit*float64(authorSeen[author]))
		adjusted[i].Score = items[i].Score - penalty

		genreSeen[genre]++
		authorSeen[author]++
	}

	sort.Slice(adjusted, func(i, j int) bool {
		if adjusted[i].Score != adjusted[j].Score {
			return adjusted[i].Score > adjusted[j].Score
		}
		return adjusted[i].Item.ID < adjusted[j].Item.ID
	})

	if len(adjusted) > k {
		adjusted = adjusted[:k]
	}
	return adjusted
}
