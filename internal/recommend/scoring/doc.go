// Taleweaver - Personalized Story Recommendation Engine
// Copyright 2026 Taleweaver contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/taleweaver/recommend

// Package scoring implements the per-item scorers of the recommendation
// engine: personalized affinity, engagement-velocity trending, and
// exploration-rewarding novelty.
//
// All scorers are pure functions over immutable inputs. They hold no state
// across calls and never mutate profile or behavior data, so a single scorer
// instance is safe for concurrent use.
//
// # Score scales
//
//   - Affinity and trend scores are on the 0-100 output scale.
//   - Novelty scores and the per-factor breakdown are in [0, 1].
//
// Degenerate inputs (empty pools, zero maxima) yield neutral scores rather
// than errors or NaN.
package scoring
