// CineMatch - Similar Movie Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cinematch

/*
Package metrics provides Prometheus metrics collection and export for observability.

Collectors are registered with the default registry through promauto and
exposed at /metrics in Prometheus text format:

	curl http://localhost:8501/metrics

# Available Metrics

Recommendation Metrics:
  - recommend_requests_total: Requests by outcome (counter)
    Labels: outcome (success, empty, not_found, dataset_unavailable, error)
  - recommend_duration_seconds: End-to-end latency (histogram)
  - dataset_items: Movies in the loaded dataset (gauge)

Poster Metrics:
  - poster_fetch_total: Outbound TMDB fetches (counter)
    Labels: result (success, timeout, http_status, no_poster, decode,
    transport, circuit_open, rate_limited)
  - poster_fetch_duration_seconds: Fetch latency (histogram)
  - poster_cache_total: Cache lookups (counter)
    Labels: result (hit, miss)

Circuit Breaker Metrics:
  - circuit_breaker_state: 0=closed, 1=half-open, 2=open (gauge)
    Labels: name
  - circuit_breaker_state_transitions_total (counter)
    Labels: name, from_state, to_state

API Metrics:
  - api_requests_total (counter)
    Labels: method, endpoint, status_code
  - api_request_duration_seconds (histogram)
    Labels: method, endpoint
  - api_active_requests (gauge)

# Usage

	start := time.Now()
	result := engine.GetRecommendations(ctx, title)
	metrics.RecordRecommendation("success", time.Since(start))

Label values are bounded sets; never use a movie title or id as a label.
*/
package metrics
