// CineMatch - Similar Movie Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cinematch

package metrics

import (
	"strings"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	io_prometheus_client "github.com/prometheus/client_model/go"
)

// getCounterValue extracts the value from a Prometheus counter
func getCounterValue(counter prometheus.Counter) float64 {
	var m io_prometheus_client.Metric
	if err := counter.Write(&m); err != nil {
		return 0
	}
	return m.GetCounter().GetValue()
}

// getHistogramCount extracts the sample count from a histogram
func getHistogramCount(h prometheus.Histogram) uint64 {
	var m io_prometheus_client.Metric
	if err := h.Write(&m); err != nil {
		return 0
	}
	return m.GetHistogram().GetSampleCount()
}

func TestRecordRecommendation(t *testing.T) {
	tests := []struct {
		name    string
		outcome string
	}{
		{"success", "success"},
		{"not found", "not_found"},
		{"error", "error"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			before := getCounterValue(RecommendRequests.WithLabelValues(tt.outcome))
			beforeCount := getHistogramCount(RecommendDuration)

			RecordRecommendation(tt.outcome, 25*time.Millisecond)

			if got := getCounterValue(RecommendRequests.WithLabelValues(tt.outcome)); got != before+1 {
				t.Errorf("recommend_requests_total{outcome=%q} = %f, want %f", tt.outcome, got, before+1)
			}
			if got := getHistogramCount(RecommendDuration); got != beforeCount+1 {
				t.Errorf("recommend_duration_seconds count = %d, want %d", got, beforeCount+1)
			}
		})
	}
}

func TestRecordPosterFetch(t *testing.T) {
	before := testutil.ToFloat64(PosterFetches.WithLabelValues("timeout"))
	RecordPosterFetch("timeout", 6*time.Second)
	if got := testutil.ToFloat64(PosterFetches.WithLabelValues("timeout")); got != before+1 {
		t.Errorf("poster_fetch_total{result=timeout} = %f, want %f", got, before+1)
	}
}

func TestRecordPosterCache(t *testing.T) {
	hits := testutil.ToFloat64(PosterCache.WithLabelValues("hit"))
	misses := testutil.ToFloat64(PosterCache.WithLabelValues("miss"))

	RecordPosterCache(true)
	RecordPosterCache(true)
	RecordPosterCache(false)

	if got := testutil.ToFloat64(PosterCache.WithLabelValues("hit")); got != hits+2 {
		t.Errorf("hits = %f, want %f", got, hits+2)
	}
	if got := testutil.ToFloat64(PosterCache.WithLabelValues("miss")); got != misses+1 {
		t.Errorf("misses = %f, want %f", got, misses+1)
	}
}

func TestRecordAPIRequest(t *testing.T) {
	before := testutil.ToFloat64(APIRequestsTotal.WithLabelValues("GET", "/api/v1/recommendations", "200"))
	RecordAPIRequest("GET", "/api/v1/recommendations", "200", 10*time.Millisecond)
	if got := testutil.ToFloat64(APIRequestsTotal.WithLabelValues("GET", "/api/v1/recommendations", "200")); got != before+1 {
		t.Errorf("api_requests_total = %f, want %f", got, before+1)
	}
}

func TestTrackActiveRequest(t *testing.T) {
	before := testutil.ToFloat64(APIActiveRequests)
	TrackActiveRequest(true)
	if got := testutil.ToFloat64(APIActiveRequests); got != before+1 {
		t.Errorf("active = %f, want %f", got, before+1)
	}
	TrackActiveRequest(false)
	if got := testutil.ToFloat64(APIActiveRequests); got != before {
		t.Errorf("active = %f, want %f", got, before)
	}
}

func TestSetDatasetItems(t *testing.T) {
	SetDatasetItems(4803)
	if got := testutil.ToFloat64(DatasetItems); got != 4803 {
		t.Errorf("dataset_items = %f, want 4803", got)
	}
}

func TestMetricNamesRegistered(t *testing.T) {
	// Touch every vector so it reports at least one series.
	RecommendRequests.WithLabelValues("success")
	PosterFetches.WithLabelValues("success")
	PosterCache.WithLabelValues("hit")
	CircuitBreakerState.WithLabelValues("tmdb-api").Set(0)
	CircuitBreakerTransitions.WithLabelValues("tmdb-api", "closed", "open")
	APIRequestsTotal.WithLabelValues("GET", "/metrics", "200")
	APIRequestDuration.WithLabelValues("GET", "/metrics")

	families, err := prometheus.DefaultGatherer.Gather()
	if err != nil {
		t.Fatalf("Gather() error = %v", err)
	}
	names := make(map[string]bool, len(families))
	for _, f := range families {
		names[f.GetName()] = true
	}

	for _, want := range []string{
		"recommend_requests_total",
		"recommend_duration_seconds",
		"dataset_items",
		"poster_fetch_total",
		"poster_fetch_duration_seconds",
		"poster_cache_total",
		"circuit_breaker_state",
		"circuit_breaker_state_transitions_total",
		"api_requests_total",
		"api_request_duration_seconds",
		"api_active_requests",
	} {
		if !names[want] {
			t.Errorf("metric %q not registered (have %s)", want, strings.Join(keys(names), ", "))
		}
	}
}

func keys(m map[string]bool) []string {
	out := make([]string, 0, len(m))
	for k := range m {
		out = append(out, k)
	}
	return out
}
