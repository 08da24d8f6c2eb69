// CineMatch - Similar Movie Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cinematch

package enrich

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync/atomic"
	"testing"
	"time"
)

func newTestClient(t *testing.T, server *httptest.Server, modify func(*ClientConfig)) *Client {
	t.Helper()
	cfg := ClientConfig{
		APIKey:       "test-key",
		BaseURL:      server.URL + "/3/movie/",
		ImageBaseURL: DefaultImageBaseURL,
		Timeout:      2 * time.Second,
	}
	if modify != nil {
		modify(&cfg)
	}
	client, err := NewClient(cfg)
	if err != nil {
		t.Fatalf("NewClient() error = %v", err)
	}
	return client
}

func TestNewClientRequiresAPIKey(t *testing.T) {
	for _, key := range []string{"", "   "} {
		if _, err := NewClient(ClientConfig{APIKey: key}); !errors.Is(err, ErrMissingAPIKey) {
			t.Errorf("NewClient(%q) error = %v, want ErrMissingAPIKey", key, err)
		}
	}
}

func TestFetchPosterSuccess(t *testing.T) {
	var gotPath, gotKey, gotLang string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		gotKey = r.URL.Query().Get("api_key")
		gotLang = r.URL.Query().Get("language")
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"id":19995,"title":"Avatar","poster_path":"/kyeqWdyUXW608qlYkRqosgbbJyK.jpg"}`))
	}))
	defer server.Close()

	client := newTestClient(t, server, nil)
	result := client.FetchPoster(context.Background(), 19995)

	if !result.OK() {
		t.Fatalf("FetchPoster() failed: reason=%s err=%v", result.Reason, result.Err)
	}
	if result.URL != "https://image.tmdb.org/t/p/w500/kyeqWdyUXW608qlYkRqosgbbJyK.jpg" {
		t.Errorf("URL = %q", result.URL)
	}
	if gotPath != "/3/movie/19995" {
		t.Errorf("path = %q, want /3/movie/19995", gotPath)
	}
	if gotKey != "test-key" {
		t.Errorf("api_key = %q", gotKey)
	}
	if gotLang != "en-US" {
		t.Errorf("language = %q", gotLang)
	}
}

func TestFetchPosterFailures(t *testing.T) {
	tests := []struct {
		name    string
		handler http.HandlerFunc
		timeout time.Duration
		want    FailureReason
	}{
		{
			name: "missing poster_path",
			handler: func(w http.ResponseWriter, r *http.Request) {
				_, _ = w.Write([]byte(`{"id":1,"title":"Obscure"}`))
			},
			want: ReasonNoPoster,
		},
		{
			name: "null poster_path",
			handler: func(w http.ResponseWriter, r *http.Request) {
				_, _ = w.Write([]byte(`{"poster_path":null}`))
			},
			want: ReasonNoPoster,
		},
		{
			name: "empty poster_path",
			handler: func(w http.ResponseWriter, r *http.Request) {
				_, _ = w.Write([]byte(`{"poster_path":""}`))
			},
			want: ReasonNoPoster,
		},
		{
			name: "not found",
			handler: func(w http.ResponseWriter, r *http.Request) {
				http.Error(w, `{"status_message":"The resource you requested could not be found."}`, http.StatusNotFound)
			},
			want: ReasonHTTPStatus,
		},
		{
			name: "server error",
			handler: func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(http.StatusInternalServerError)
			},
			want: ReasonHTTPStatus,
		},
		{
			name: "malformed json",
			handler: func(w http.ResponseWriter, r *http.Request) {
				_, _ = w.Write([]byte(`{"poster_path":`))
			},
			want: ReasonDecode,
		},
		{
			name: "timeout",
			handler: func(w http.ResponseWriter, r *http.Request) {
				select {
				case <-r.Context().Done():
				case <-time.After(2 * time.Second):
				}
			},
			timeout: 50 * time.Millisecond,
			want:    ReasonTimeout,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			server := httptest.NewServer(tt.handler)
			defer server.Close()

			client := newTestClient(t, server, func(cfg *ClientConfig) {
				if tt.timeout > 0 {
					cfg.Timeout = tt.timeout
				}
			})

			result := client.FetchPoster(context.Background(), 42)
			if result.OK() {
				t.Fatalf("expected failure, got URL %q", result.URL)
			}
			if result.Reason != tt.want {
				t.Errorf("Reason = %q, want %q (err=%v)", result.Reason, tt.want, result.Err)
			}
			if result.Err == nil {
				t.Error("expected a cause")
			}
			if result.URL != "" {
				t.Errorf("URL = %q, want empty on failure", result.URL)
			}
		})
	}
}

func TestFetchPosterTransportErrorRedactsKey(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	url := server.URL
	server.Close()

	client, err := NewClient(ClientConfig{APIKey: "secret-key-123", BaseURL: url, Timeout: time.Second})
	if err != nil {
		t.Fatal(err)
	}

	result := client.FetchPoster(context.Background(), 7)
	if result.Reason != ReasonTransport {
		t.Fatalf("Reason = %q, want transport (err=%v)", result.Reason, result.Err)
	}
	if strings.Contains(result.Err.Error(), "secret-key-123") {
		t.Errorf("API key leaked in error: %v", result.Err)
	}
}

func TestFetchPosterCircuitOpens(t *testing.T) {
	var hits atomic.Int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		hits.Add(1)
		w.WriteHeader(http.StatusBadGateway)
	}))
	defer server.Close()

	client := newTestClient(t, server, nil)

	for i := 0; i < 10; i++ {
		if r := client.FetchPoster(context.Background(), i); r.Reason != ReasonHTTPStatus {
			t.Fatalf("request %d: Reason = %q, want http_status", i, r.Reason)
		}
	}

	result := client.FetchPoster(context.Background(), 99)
	if result.Reason != ReasonCircuitOpen {
		t.Fatalf("Reason = %q, want circuit_open", result.Reason)
	}
	if hits.Load() != 10 {
		t.Errorf("upstream hits = %d, want 10", hits.Load())
	}
	if client.BreakerState() != "open" {
		t.Errorf("BreakerState() = %q, want open", client.BreakerState())
	}
}

func TestFetchPosterNotFoundDoesNotTripBreaker(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	}))
	defer server.Close()

	client := newTestClient(t, server, nil)
	for i := 0; i < 15; i++ {
		client.FetchPoster(context.Background(), i)
	}
	if client.BreakerState() != "closed" {
		t.Errorf("BreakerState() = %q, want closed", client.BreakerState())
	}
}

func TestFetchPosterRateLimited(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"poster_path":"/p.jpg"}`))
	}))
	defer server.Close()

	// One token per ten seconds; the second call cannot get a token
	// within its timeout.
	client := newTestClient(t, server, func(cfg *ClientConfig) {
		cfg.RateLimit = 0.1
		cfg.Timeout = 100 * time.Millisecond
	})

	if r := client.FetchPoster(context.Background(), 1); !r.OK() {
		t.Fatalf("first fetch failed: %s %v", r.Reason, r.Err)
	}
	if r := client.FetchPoster(context.Background(), 2); r.Reason != ReasonRateLimited {
		t.Errorf("Reason = %q, want rate_limited", r.Reason)
	}
}

func TestJoinURL(t *testing.T) {
	tests := []struct {
		base, path, want string
	}{
		{"https://image.tmdb.org/t/p/w500/", "/a.jpg", "https://image.tmdb.org/t/p/w500/a.jpg"},
		{"https://image.tmdb.org/t/p/w500", "/a.jpg", "https://image.tmdb.org/t/p/w500/a.jpg"},
		{"https://image.tmdb.org/t/p/w500/", "a.jpg", "https://image.tmdb.org/t/p/w500/a.jpg"},
	}
	for _, tt := range tests {
		if got := joinURL(tt.base, tt.path); got != tt.want {
			t.Errorf("joinURL(%q, %q) = %q, want %q", tt.base, tt.path, got, tt.want)
		}
	}
}
