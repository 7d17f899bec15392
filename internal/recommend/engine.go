// Taleweaver - Personalized Story Recommendation Engine
// Copyright 2026 Taleweaver contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/taleweaver/recommend

package recommend

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

// Note: This package has no dependencies on other internal packages to
// maintain clean separation. Pipelines are registered from the outside, so
// the concrete scorers can live in subpackages without circular imports.

// Pipeline computes one recommendation category from a request. Pipelines
// must be stateless with respect to requests: identical requests produce
// identical ranked lists.
type Pipeline interface {
	// Category identifies the pipeline.
	Category() Category

	// Run computes the ranked, truncated result list. An empty list is a
	// valid outcome and not an error.
	Run(ctx context.Context, req *Request) ([]Result, error)
}

// ProfileBuilder derives a preference profile from raw behavior. Used when
// a request carries a zero profile.
type ProfileBuilder interface {
	Build(behavior *UserBehavior, events []Event) UserProfile
}

// Engine composes registered category pipelines into full recommendation
// responses. It is safe for concurrent use; all per-request state lives on
// the stack of Recommend.
type Engine struct {
	config *Config
	logger zerolog.Logger

	mu        sync.RWMutex
	pipelines map[Category]Pipeline
	profiles  ProfileBuilder
}

// NewEngine creates a recommendation engine. A nil config uses the
// defaults; an invalid config is rejected with a *ConfigError.
//
//nolint:gocritic // hugeParam: logger passed by value for zerolog chaining
func NewEngine(config *Config, logger zerolog.Logger) (*Engine, error) {
	if config == nil {
		config = DefaultConfig()
	}
	if err := config.Validate(); err != nil {
		return nil, err
	}

	return &Engine{
		config:    config.Clone(),
		logger:    logger.With().Str("component", "recommend").Logger(),
		pipelines: make(map[Category]Pipeline),
	}, nil
}

// Config returns a copy of the engine configuration.
func (e *Engine) Config() *Config {
	return e.config.Clone()
}

// RegisterPipeline adds a category pipeline, replacing any pipeline already
// registered for the same category.
func (e *Engine) RegisterPipeline(p Pipeline) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.pipelines[p.Category()] = p
	e.logger.Debug().Str("category", p.Category().String()).Msg("pipeline registered")
}

// SetProfileBuilder installs the profile derivation used for requests that
// carry a zero profile.
func (e *Engine) SetProfileBuilder(b ProfileBuilder) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.profiles = b
}

// Recommend computes every requested category concurrently and assembles
// the response in request order. Empty candidate pools yield empty lists,
// never errors; a pipeline failure degrades that category to an empty list
// rather than failing the request.
func (e *Engine) Recommend(ctx context.Context, req *Request) (*Response, error) {
	if req == nil {
		return nil, errors.New("recommend: nil request")
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	start := time.Now()

	requestID := req.RequestID
	if requestID == "" {
		requestID = uuid.NewString()
	}

	effective := e.effectiveRequest(req, requestID)
	categories := e.requestedCategories(req)

	e.mu.RLock()
	pipelines := make([]Pipeline, len(categories))
	for i, cat := range categories {
		pipelines[i] = e.pipelines[cat]
	}
	e.mu.RUnlock()

	// Fan out one goroutine per category into an indexed slice, so
	// assembly order never depends on goroutine scheduling.
	results := make([]CategoryResult, len(categories))
	var wg sync.WaitGroup
	for i := range categories {
		wg.Add(1)
		go func(idx int, cat Category, p Pipeline) {
			defer wg.Done()
			results[idx] = e.runPipeline(ctx, cat, p, effective)
		}(i, categories[i], pipelines[i])
	}
	wg.Wait()

	if err := ctx.Err(); err != nil {
		return nil, err
	}

	resp := &Response{
		Categories: results,
		Metadata: ResponseMetadata{
			RequestID:       requestID,
			TotalCandidates: len(req.Candidates),
			LatencyMS:       time.Since(start).Milliseconds(),
			Timestamp:       time.Now().UTC(),
		},
	}

	e.logger.Debug().
		Str("request_id", requestID).
		Int("candidates", len(req.Candidates)).
		Int("categories", len(categories)).
		Int64("latency_ms", resp.Metadata.LatencyMS).
		Msg("recommendations computed")

	return resp, nil
}

// runPipeline executes one category pipeline, converting panics and errors
// into an empty list for that category.
func (e *Engine) runPipeline(ctx context.Context, cat Category, p Pipeline, req *Request) (out CategoryResult) {
	out = CategoryResult{Category: cat, Items: []Result{}}

	defer func() {
		if r := recover(); r != nil {
			e.logger.Error().
				Str("category", cat.String()).
				Interface("panic", r).
				Msg("pipeline panicked")
			out.Items = []Result{}
		}
	}()

	if p == nil {
		e.logger.Warn().Str("category", cat.String()).Msg("no pipeline registered")
		return out
	}

	items, err := p.Run(ctx, req)
	if err != nil {
		e.logger.Warn().
			Err(err).
			Str("category", cat.String()).
			Msg("pipeline failed")
		return out
	}
	if items == nil {
		items = []Result{}
	}
	out.Items = items
	return out
}

// effectiveRequest returns a shallow copy with the profile derived from
// behavior when absent and the reference time defaulted to the wall clock.
func (e *Engine) effectiveRequest(req *Request, requestID string) *Request {
	out := *req
	out.RequestID = requestID

	if out.Now.IsZero() {
		out.Now = time.Now().UTC()
	}

	if out.Profile.IsZero() {
		e.mu.RLock()
		builder := e.profiles
		e.mu.RUnlock()
		if builder != nil {
			out.Profile = builder.Build(&out.Behavior, out.Events)
		}
	}

	return &out
}

// requestedCategories resolves which categories to compute: the request's
// explicit list, else the configured include list, else all categories.
func (e *Engine) requestedCategories(req *Request) []Category {
	if len(req.Categories) > 0 {
		return req.Categories
	}
	if len(e.config.IncludeCategories) > 0 {
		return e.config.IncludeCategories
	}
	return AllCategories()
}
