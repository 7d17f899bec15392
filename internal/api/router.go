// Taleweaver - Personalized Story Recommendation Engine
// Copyright 2026 Taleweaver contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/taleweaver/recommend

// Package api provides the HTTP surface of the recommendation service
// using the Chi router: a recommendation endpoint, config and health
// introspection, and Prometheus metrics.
package api

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/go-chi/httprate"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog"

	"github.com/taleweaver/recommend/internal/config"
	"github.com/taleweaver/recommend/internal/recommend"
)

// Router builds the service's HTTP handler tree.
type Router struct {
	handler *Handler
	server  config.ServerConfig
}

// NewRouter creates a router serving the given engine.
//
//nolint:gocritic // hugeParam: logger passed by value for zerolog chaining
func NewRouter(engine *recommend.Engine, cfg *config.Config, logger zerolog.Logger) *Router {
	return &Router{
		handler: NewHandler(engine, logger),
		server:  cfg.Server,
	}
}

// Setup configures all HTTP routes.
func (router *Router) Setup() http.Handler {
	r := chi.NewRouter()

	r.Use(chimiddleware.RequestID)
	r.Use(chimiddleware.RealIP)
	r.Use(chimiddleware.Recoverer)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   router.server.CORSOrigins,
		AllowedMethods:   []string{http.MethodGet, http.MethodPost, http.MethodOptions},
		AllowedHeaders:   []string{"Accept", "Content-Type", "X-Request-ID"},
		MaxAge:           300,
		AllowCredentials: false,
	}))

	r.Route("/api/v1", func(r chi.Router) {
		if router.server.RateLimitReqs > 0 {
			window := router.server.RateLimitWindow
			if window <= 0 {
				window = time.Minute
			}
			r.Use(httprate.LimitByIP(router.server.RateLimitReqs, window))
		}

		r.Get("/health", router.handler.Health)
		r.Get("/config", router.handler.Config)
		r.Post("/recommendations", router.handler.Recommendations)
	})

	r.Handle("/metrics", promhttp.Handler())

	return r
}
