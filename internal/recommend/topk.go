// Taleweaver - Personalized Story Recommendation Engine
// Copyright 2026 Taleweaver contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/taleweaver/recommend

package recommend

import (
	"container/heap"
	"sort"
)

// TopK selects the k highest-scoring items from the pool using a bounded
// min-heap, so memory stays O(k) regardless of pool size. The result is
// ordered by score descending with ties broken by ascending item ID. The
// input slice is not modified.
func TopK(items []ScoredItem, k int) []ScoredItem {
	if k <= 0 || len(items) == 0 {
		return nil
	}

	h := &scoredMinHeap{}
	h.entries = make([]ScoredItem, 0, k)
	for i := range items {
		if h.Len() < k {
			heap.Push(h, items[i])
			continue
		}
		if worseThan(h.entries[0], items[i]) {
			h.entries[0] = items[i]
			heap.Fix(h, 0)
		}
	}

	out := h.entries
	sort.Slice(out, func(i, j int) bool {
		if out[i].Score != out[j].Score {
			return out[i].Score > out[j].Score
		}
		return out[i].Item.ID < out[j].Item.ID
	})
	return out
}

// worseThan reports whether a ranks strictly below b under the output
// ordering (score descending, item ID ascending).
func worseThan(a, b ScoredItem) bool {
	if a.Score != b.Score {
		return a.Score < b.Score
	}
	return a.Item.ID > b.Item.ID
}

// scoredMinHeap keeps the current worst entry at the root so it can be
// evicted in O(log k) when a better candidate arrives.
type scoredMinHeap struct {
	entries []ScoredItem
}

func (h *scoredMinHeap) Len() int { return len(h.entries) }

func (h *scoredMinHeap) Less(i, j int) bool {
	return worseThan(h.entries[i], h.entries[j])
}

func (h *scoredMinHeap) Swap(i, j int) {
	h.entries[i], h.entries[j] = h.entries[j], h.entries[i]
}

func (h *scoredMinHeap) Push(x any) {
	h.entries = append(h.entries, x.(ScoredItem))
}

func (h *scoredMinHeap) Pop() any {
	old := h.entries
	n := len(old)
	item := old[n-1]
	h.entries = old[:n-1]
	return item
}
