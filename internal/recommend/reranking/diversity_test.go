// Taleweaver - Personalized Story Recommendation Engine
// Copyright 2026 Taleweaver contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/taleweaver/recommend

package reranking

import (
	"fmt"
	"reflect"
	"testing"

	"github.com/taleweaver/recommend/internal/recommend"
)

func item(id, genre, author string, score float64) recommend.ScoredItem {
	return recommend.ScoredItem{
		Item:  recommend.Item{ID: id, Genre: genre, Author: author},
		Score: score,
	}
}

func TestRerankBreaksUpAuthorStacks(t *testing.T) {
	// Ten identically-scored items from one author, plus a slightly
	// weaker item from another author. Without reranking the other
	// author never surfaces; with it, the stack decays fast enough that
	// the second position goes to the other author.
	items := make([]recommend.ScoredItem, 0, 11)
	for i := 0; i < 10; i++ {
		items = append(items, item(fmt.Sprintf("same-%02d", i), "fantasy", "A. Prolific", 90))
	}
	items = append(items, item("zz-other", "scifi", "B. Fresh", 80))

	d := NewDiversity(1.0, 5.0, 7.5)
	got := d.Rerank(items, 5)

	if len(got) != 5 {
		t.Fatalf("Rerank() returned %d items, want 5", len(got))
	}

	authors := map[string]bool{}
	for _, it := range got {
		authors[it.Item.Author] = true
	}
	if len(authors) < 2 {
		t.Errorf("top-5 holds a single author, want at least 2: %v", authors)
	}
	if got[1].Item.ID != "zz-other" {
		t.Errorf("second position = %q, want zz-other promoted past the stack", got[1].Item.ID)
	}
}

func TestRerankFactorZeroPassthrough(t *testing.T) {
	items := []recommend.ScoredItem{
		item("a", "fantasy", "x", 90),
		item("b", "fantasy", "x", 85),
		item("c", "fantasy", "x", 80),
	}

	d := NewDiversity(0, 5.0, 7.5)
	got := d.Rerank(items, 2)

	want := items[:2]
	if !reflect.DeepEqual(got, want) {
		t.Errorf("factor-0 Rerank() = %v, want input truncated unchanged", got)
	}
}

func TestRerankDeterministicTies(t *testing.T) {
	items := []recommend.ScoredItem{
		item("b", "g1", "x", 50),
		item("a", "g2", "y", 50),
	}

	d := NewDiversity(0.5, 5.0, 7.5)
	first := d.Rerank(items, 2)
	second := d.Rerank(items, 2)

	if !reflect.DeepEqual(first, second) {
		t.Fatal("Rerank() not deterministic for identical input")
	}
	if first[0].Item.ID != "a" {
		t.Errorf("tied items ordered %q first, want a", first[0].Item.ID)
	}
}

func TestRerankDoesNotModifyInput(t *testing.T) {
	items := []recommend.ScoredItem{
		item("a", "fantasy", "x", 90),
		item("b", "fantasy", "x", 85),
	}
	before := make([]recommend.ScoredItem, len(items))
	copy(before, items)

	NewDiversity(1.0, 5.0, 7.5).Rerank(items, 2)

	if !reflect.DeepEqual(items, before) {
		t.Error("Rerank() modified its input slice")
	}
}

func TestRerankEmptyAndZeroK(t *testing.T) {
	d := NewDiversity(0.5, 5.0, 7.5)
	if got := d.Rerank(nil, 5); got != nil {
		t.Errorf("Rerank(nil) = %v, want nil", got)
	}
	if got := d.Rerank([]recommend.ScoredItem{item("a", "g", "x", 1)}, 0); got != nil {
		t.Errorf("Rerank(k=0) = %v, want nil", got)
	}
}

func TestNewDiversityDefaults(t *testing.T) {
	d := NewDiversity(2.0, 0, 0)
	if d.factor != 1.0 {
		t.Errorf("factor clamped to %g, want 1.0", d.factor)
	}
	if d.genreUnit != 5.0 {
		t.Errorf("genreUnit = %g, want default 5.0", d.genreUnit)
	}
	if d.authorUnit != 7.5 {
		t.Errorf("authorUnit = %g, want 1.5x genre unit", d.authorUnit)
	}
}
