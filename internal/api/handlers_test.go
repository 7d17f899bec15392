// Taleweaver - Personalized Story Recommendation Engine
// Copyright 2026 Taleweaver contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/taleweaver/recommend

package api

import (
	"bytes"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	json "github.com/goccy/go-json"
	"github.com/rs/zerolog"

	"github.com/taleweaver/recommend/internal/config"
	"github.com/taleweaver/recommend/internal/recommend"
	"github.com/taleweaver/recommend/internal/recommend/pipeline"
)

func testServer(t *testing.T) http.Handler {
	t.Helper()

	engine, err := pipeline.NewDefaultEngine(nil, zerolog.Nop())
	if err != nil {
		t.Fatalf("NewDefaultEngine() error: %v", err)
	}

	cfg := &config.Config{
		Server: config.ServerConfig{
			Host:            "127.0.0.1",
			Port:            0,
			CORSOrigins:     []string{"*"},
			RateLimitReqs:   0, // disabled for tests
			RateLimitWindow: time.Minute,
		},
		Engine: *recommend.DefaultConfig(),
	}

	return NewRouter(engine, cfg, zerolog.Nop()).Setup()
}

func TestHealthEndpoint(t *testing.T) {
	srv := testServer(t)

	rec := httptest.NewRecorder()
	srv.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/v1/health", nil))

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}

	var body map[string]string
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if body["status"] != "ok" {
		t.Errorf("status field = %q, want ok", body["status"])
	}
}

func TestConfigEndpoint(t *testing.T) {
	srv := testServer(t)

	rec := httptest.NewRecorder()
	srv.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/v1/config", nil))

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}

	var cfg recommend.Config
	if err := json.Unmarshal(rec.Body.Bytes(), &cfg); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if cfg.MaxRecommendations != recommend.DefaultConfig().MaxRecommendations {
		t.Errorf("MaxRecommendations = %d, want default", cfg.MaxRecommendations)
	}
}

func TestRecommendationsEndpoint(t *testing.T) {
	srv := testServer(t)

	payload := RecommendationRequest{
		Request: recommend.Request{
			RequestID: "api-test",
			Profile: recommend.UserProfile{
				FavoriteGenres: []string{"fantasy"},
				ReadingSpeed:   200,
			},
			Candidates: []recommend.Item{
				{ID: "s1", Genre: "fantasy", Author: "A", AverageRating: 4.5,
					Popularity: 10, PublishedAt: time.Now().AddDate(0, 0, -3)},
				{ID: "s2", Genre: "romance", Author: "B", AverageRating: 4.0,
					Popularity: 5, PublishedAt: time.Now().AddDate(0, 0, -40)},
			},
			Categories: []recommend.Category{recommend.CategoryPersonalized},
		},
	}
	body, err := json.Marshal(payload)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}

	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/v1/recommendations", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	srv.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200 (body: %s)", rec.Code, rec.Body.String())
	}

	var resp recommend.Response
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if resp.Metadata.RequestID != "api-test" {
		t.Errorf("RequestID = %q, want api-test", resp.Metadata.RequestID)
	}
	if len(resp.Categories) != 1 {
		t.Fatalf("categories = %d, want 1", len(resp.Categories))
	}
	if len(resp.Categories[0].Items) == 0 {
		t.Error("personalized list empty for non-empty pool")
	}
}

func TestRecommendationsInvalidConfigOverride(t *testing.T) {
	srv := testServer(t)

	override := recommend.DefaultConfig()
	override.MaxRecommendations = -1
	payload := RecommendationRequest{Config: override}

	body, err := json.Marshal(payload)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}

	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/v1/recommendations", bytes.NewReader(body))
	srv.ServeHTTP(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", rec.Code)
	}

	var errBody errorResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &errBody); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if errBody.Field != "max_recommendations" {
		t.Errorf("error field = %q, want max_recommendations", errBody.Field)
	}
}

func TestRecommendationsMalformedBody(t *testing.T) {
	srv := testServer(t)

	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/v1/recommendations", bytes.NewReader([]byte("{not json")))
	srv.ServeHTTP(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", rec.Code)
	}
}

func TestMetricsEndpoint(t *testing.T) {
	srv := testServer(t)

	rec := httptest.NewRecorder()
	srv.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}
}
