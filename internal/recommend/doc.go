// Taleweaver - Personalized Story Recommendation Engine
// Copyright 2026 Taleweaver contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/taleweaver/recommend

// Package recommend implements the personalized story recommendation
// engine: a stateless composer that turns a user's behavior, a candidate
// pool, and a configuration into ranked, explained recommendation lists.
//
// # Architecture
//
// The engine composes independent category pipelines:
//
//   - personalized: affinity blended with trend and novelty, then
//     diversity-reranked
//   - trending: engagement-velocity ranking, independent of the user
//   - similar: item-item similarity to a seed item
//   - novel: highly-rated items outside the user's explored space
//   - community: items read by the most similar peers
//   - continue: in-progress items by completion percentage
//
// Pipelines run concurrently per request and are assembled in request
// order. Concrete scorers live in the scoring, similarity, and reranking
// subpackages; profile derivation lives in the profile subpackage.
// Registration happens from the outside (see the pipeline package), so
// this package has no internal dependencies.
//
// # Determinism
//
// The engine holds no mutable state between requests. Every ranking uses
// total ordering (score descending, item ID ascending), so identical
// requests produce identical responses. All scores are clamped to [0, 100]
// and every factor to [0, 1].
//
// # Degraded input
//
// Empty candidate pools, empty behavior, and zero profiles are valid
// inputs that yield empty lists or neutral scores, never errors. Invalid
// configuration is rejected up front with a *ConfigError; it is never
// silently clamped.
package recommend
