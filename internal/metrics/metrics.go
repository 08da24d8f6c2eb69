// CineMatch - Similar Movie Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cinematch

package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// Recommendation Metrics
	RecommendRequests = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "recommend_requests_total",
			Help: "Total number of recommendation requests by outcome",
		},
		[]string{"outcome"}, // "success", "empty", "not_found", "dataset_unavailable", "error"
	)

	RecommendDuration = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "recommend_duration_seconds",
			Help:    "End-to-end recommendation latency including poster lookups",
			Buckets: []float64{.005, .01, .05, .1, .25, .5, 1, 2.5, 6, 10},
		},
	)

	DatasetItems = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "dataset_items",
			Help: "Number of movies in the loaded dataset",
		},
	)

	// Poster Enrichment Metrics
	PosterFetches = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "poster_fetch_total",
			Help: "Total number of TMDB poster fetches by result",
		},
		[]string{"result"}, // "success", "timeout", "http_status", "no_poster", "decode", "transport", "circuit_open", "rate_limited"
	)

	PosterFetchDuration = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "poster_fetch_duration_seconds",
			Help:    "Duration of TMDB poster fetches in seconds",
			Buckets: []float64{.01, .05, .1, .25, .5, 1, 2, 4, 6, 10},
		},
	)

	PosterCache = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "poster_cache_total",
			Help: "Poster cache lookups by result",
		},
		[]string{"result"}, // "hit", "miss"
	)

	// Circuit Breaker Metrics
	CircuitBreakerState = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "circuit_breaker_state",
			Help: "Circuit breaker state (0=closed, 1=half-open, 2=open)",
		},
		[]string{"name"},
	)

	CircuitBreakerTransitions = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "circuit_breaker_state_transitions_total",
			Help: "Total number of circuit breaker state transitions",
		},
		[]string{"name", "from_state", "to_state"},
	)

	// API Metrics
	APIRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "api_requests_total",
			Help: "Total number of API requests",
		},
		[]string{"method", "endpoint", "status_code"},
	)

	APIRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "api_request_duration_seconds",
			Help:    "Duration of API requests in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "endpoint"},
	)

	APIActiveRequests = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "api_active_requests",
			Help: "Number of API requests currently being processed",
		},
	)
)

// RecordRecommendation records the outcome and latency of one request.
func RecordRecommendation(outcome string, duration time.Duration) {
	RecommendRequests.WithLabelValues(outcome).Inc()
	RecommendDuration.Observe(duration.Seconds())
}

// RecordPosterFetch records one outbound TMDB fetch.
func RecordPosterFetch(result string, duration time.Duration) {
	PosterFetches.WithLabelValues(result).Inc()
	PosterFetchDuration.Observe(duration.Seconds())
}

// RecordPosterCache records a poster cache lookup.
func RecordPosterCache(hit bool) {
	if hit {
		PosterCache.WithLabelValues("hit").Inc()
	} else {
		PosterCache.WithLabelValues("miss").Inc()
	}
}

// RecordAPIRequest records an API request metric
func RecordAPIRequest(method, endpoint, statusCode string, duration time.Duration) {
	APIRequestsTotal.WithLabelValues(method, endpoint, statusCode).Inc()
	APIRequestDuration.WithLabelValues(method, endpoint).Observe(duration.Seconds())
}

// TrackActiveRequest tracks active API requests
func TrackActiveRequest(inc bool) {
	if inc {
		APIActiveRequests.Inc()
	} else {
		APIActiveRequests.Dec()
	}
}

// SetDatasetItems publishes the loaded item count.
func SetDatasetItems(n int) {
	DatasetItems.Set(float64(n))
}
