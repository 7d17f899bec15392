// Taleweaver - Personalized Story Recommendation Engine
// Copyright 2026 Taleweaver contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/taleweaver/recommend

package api

import (
	"errors"
	"net/http"
	"time"

	json "github.com/goccy/go-json"
	"github.com/rs/zerolog"

	"github.com/taleweaver/recommend/internal/logging"
	"github.com/taleweaver/recommend/internal/metrics"
	"github.com/taleweaver/recommend/internal/recommend"
	"github.com/taleweaver/recommend/internal/recommend/pipeline"
)

// maxRequestBody bounds recommendation request payloads (8 MiB).
const maxRequestBody = 8 << 20

// Handler implements the service's HTTP endpoints.
type Handler struct {
	engine *recommend.Engine
	logger zerolog.Logger
}

// NewHandler creates the endpoint handler.
//
//nolint:gocritic // hugeParam: logger passed by value for zerolog chaining
func NewHandler(engine *recommend.Engine, logger zerolog.Logger) *Handler {
	return &Handler{
		engine: engine,
		logger: logger.With().Str("component", "api").Logger(),
	}
}

// RecommendationRequest is the POST /api/v1/recommendations payload: the
// engine request plus an optional per-request config override.
type RecommendationRequest struct {
	recommend.Request

	// Config overrides the engine configuration for this request only.
	// Invalid overrides are rejected with 400, never clamped.
	Config *recommend.Config `json:"config,omitempty"`
}

// errorResponse is the JSON error envelope.
type errorResponse struct {
	Error string `json:"error"`
	Field string `json:"field,omitempty"`
}

// Health responds 200 when the service is up.
func (h *Handler) Health(w http.ResponseWriter, r *http.Request) {
	h.writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// Config returns the engine's active configuration.
func (h *Handler) Config(w http.ResponseWriter, r *http.Request) {
	h.writeJSON(w, http.StatusOK, h.engine.Config())
}

// Recommendations computes recommendations for the posted request.
func (h *Handler) Recommendations(w http.ResponseWriter, r *http.Request) {
	start := time.Now()

	var req RecommendationRequest
	decoder := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxRequestBody))
	if err := decoder.Decode(&req); err != nil {
		h.writeError(w, http.StatusBadRequest, &errorResponse{Error: "invalid request body: " + err.Error()})
		return
	}

	engine := h.engine
	if req.Config != nil {
		override, err := pipeline.NewDefaultEngine(req.Config, logging.Logger())
		if err != nil {
			var cfgErr *recommend.ConfigError
			if errors.As(err, &cfgErr) {
				h.writeError(w, http.StatusBadRequest, &errorResponse{Error: cfgErr.Reason, Field: cfgErr.Field})
				return
			}
			h.writeError(w, http.StatusBadRequest, &errorResponse{Error: err.Error()})
			return
		}
		engine = override
	}

	resp, err := engine.Recommend(r.Context(), &req.Request)
	metrics.ObserveRecommendation(start, len(req.Candidates), err)
	if err != nil {
		h.logger.Error().Err(err).Msg("recommendation failed")
		h.writeError(w, http.StatusInternalServerError, &errorResponse{Error: "recommendation failed"})
		return
	}

	for _, cat := range resp.Categories {
		metrics.RecommendResults.
			WithLabelValues(cat.Category.String()).
			Add(float64(len(cat.Items)))
	}
	metrics.ObserveHTTPRequest(r.Method, "/api/v1/recommendations", http.StatusOK, start)

	h.writeJSON(w, http.StatusOK, resp)
}

// writeJSON serializes a response body with the correct content type.
func (h *Handler) writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(body); err != nil {
		h.logger.Error().Err(err).Msg("failed to encode response")
	}
}

// writeError serializes an error envelope.
func (h *Handler) writeError(w http.ResponseWriter, status int, body *errorResponse) {
	h.writeJSON(w, status, body)
}
