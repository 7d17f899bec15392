// Taleweaver - Personalized Story Recommendation Engine
// Copyright 2026 Taleweaver contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/taleweaver/recommend

// Package metrics provides Prometheus instrumentation for the
// recommendation service: request throughput, computation latency,
// per-category output volume, and candidate pool sizes.
package metrics

import (
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// RecommendRequests counts recommendation computations by outcome.
	RecommendRequests = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "recommend_requests_total",
			Help: "Total number of recommendation requests",
		},
		[]string{"status"},
	)

	// RecommendDuration tracks end-to-end computation latency.
	RecommendDuration = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "recommend_duration_seconds",
			Help:    "Duration of recommendation computations in seconds",
			Buckets: prometheus.DefBuckets,
		},
	)

	// RecommendResults counts recommendations produced per category.
	RecommendResults = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "recommend_results_total",
			Help: "Total number of recommendations produced per category",
		},
		[]string{"category"},
	)

	// RecommendCandidates observes candidate pool sizes per request.
	RecommendCandidates = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "recommend_candidate_pool_size",
			Help:    "Candidate pool size per recommendation request",
			Buckets: prometheus.ExponentialBuckets(1, 4, 8), // 1 to ~16k
		},
	)

	// HTTPRequestDuration tracks API endpoint latency.
	HTTPRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "http_request_duration_seconds",
			Help:    "Duration of HTTP requests in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "path", "status"},
	)
)

// ObserveRecommendation records one completed recommendation computation.
func ObserveRecommendation(start time.Time, candidates int, err error) {
	status := "ok"
	if err != nil {
		status = "error"
	}
	RecommendRequests.WithLabelValues(status).Inc()
	RecommendDuration.Observe(time.Since(start).Seconds())
	if err == nil {
		RecommendCandidates.Observe(float64(candidates))
	}
}

// ObserveHTTPRequest records one completed HTTP request.
func ObserveHTTPRequest(method, path string, status int, start time.Time) {
	HTTPRequestDuration.
		WithLabelValues(method, path, strconv.Itoa(status)).
		Observe(time.Since(start).Seconds())
}
