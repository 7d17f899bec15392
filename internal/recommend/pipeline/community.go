// Taleweaver - Personalized Story Recommendation Engine
// Copyright 2026 Taleweaver contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/taleweaver/recommend

package pipeline

import (
	"context"
	"strings"

	"github.com/taleweaver/recommend/internal/recommend"
	"github.com/taleweaver/recommend/internal/recommend/similarity"
)

// Community surfaces items read by the user's most similar peers. The
// configured number of top peers vote for the candidates in their history,
// each vote weighted by peer similarity; votes are normalized against the
// pool maximum to the 0-100 score scale. Items the user already completed
// or abandoned are excluded.
type Community struct {
	max      int
	maxPeers int
	sim      *similarity.Engine
}

// NewCommunity creates the peer-based discovery pipeline.
func NewCommunity(cfg *recommend.Config, sim *similarity.Engine) *Community {
	return &Community{
		max:      cfg.MaxRecommendations,
		maxPeers: cfg.Community.MaxPeers,
		sim:      sim,
	}
}

// Category identifies the pipeline.
func (p *Community) Category() recommend.Category {
	return recommend.CategoryCommunity
}

// Run computes the community recommendation list.
func (p *Community) Run(ctx context.Context, req *recommend.Request) ([]recommend.Result, error) {
	if len(req.Candidates) == 0 || len(req.Peers) == 0 {
		return nil, nil
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	user := userVector(req)
	peers := p.sim.TopKUsers(&user, req.Peers, p.maxPeers)
	if len(peers) == 0 {
		return nil, nil
	}

	historyByPeer := make(map[string]map[string]struct{}, len(req.Peers))
	for i := range req.Peers {
		historyByPeer[req.Peers[i].UserID] = req.Peers[i].History
	}

	votes := make(map[string]float64)
	maxVote := 0.0
	for _, peer := range peers {
		for itemID := range historyByPeer[peer.ID] {
			votes[itemID] += peer.Score
			if votes[itemID] > maxVote {
				maxVote = votes[itemID]
			}
		}
	}
	if maxVote == 0 {
		return nil, nil
	}

	scored := make([]recommend.ScoredItem, 0, len(req.Candidates))
	for i := range req.Candidates {
		item := &req.Candidates[i]
		vote, ok := votes[item.ID]
		if !ok || vote == 0 {
			continue
		}
		if _, done := req.Behavior.CompletedItems[item.ID]; done {
			continue
		}
		if _, dropped := req.Behavior.AbandonedItems[item.ID]; dropped {
			continue
		}
		scored = append(scored, recommend.ScoredItem{
			Item:  *item,
			Score: recommend.ClampScore(vote / maxVote * 100),
		})
	}

	ranked := recommend.TopK(scored, p.max)

	dataPoints := req.Behavior.DataPoints()
	results := make([]recommend.Result, 0, len(ranked))
	for i := range ranked {
		item := &ranked[i].Item

		reasons := recommend.BuildReasons(recommend.ReasonInputs{
			Profile:    &req.Profile,
			Item:       item,
			Similarity: ranked[i].Score / 100,
			FromPeers:  true,
		})

		results = append(results, recommend.Result{
			ItemID:     item.ID,
			Score:      ranked[i].Score,
			Reasons:    reasons,
			Confidence: recommend.Confidence(dataPoints, ranked[i].Score),
			Category:   recommend.CategoryCommunity,
		})
	}
	return results, nil
}

// userVector builds the requesting user's similarity vector: explored
// genres, completed-or-liked history, and mean rating given.
func userVector(req *recommend.Request) similarity.UserVector {
	genres := make(map[string]struct{}, len(req.Behavior.GenreExploration))
	for genre := range req.Behavior.GenreExploration {
		genres[strings.ToLower(genre)] = struct{}{}
	}

	history := make(map[string]struct{}, len(req.Behavior.CompletedItems)+len(req.Behavior.LikedItems))
	for id := range req.Behavior.CompletedItems {
		history[id] = struct{}{}
	}
	for id := range req.Behavior.LikedItems {
		history[id] = struct{}{}
	}

	return similarity.UserVector{
		Genres:        genres,
		History:       history,
		AverageRating: req.AverageRating,
	}
}
