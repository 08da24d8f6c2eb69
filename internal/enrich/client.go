// CineMatch - Similar Movie Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cinematch

package enrich

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/goccy/go-json"
	gobreaker "github.com/sony/gobreaker/v2"
	"golang.org/x/time/rate"

	"github.com/tomtom215/cinematch/internal/logging"
	"github.com/tomtom215/cinematch/internal/metrics"
)

// Defaults for the TMDB movie endpoint.
const (
	DefaultBaseURL        = "https://api.themoviedb.org/3/movie/"
	DefaultImageBaseURL   = "https://image.tmdb.org/t/p/w500/"
	DefaultPlaceholderURL = "https://via.placeholder.com/500x750/100e1a/c084fc?text=No+Image"
	DefaultTimeout        = 6 * time.Second
	DefaultRateLimit      = 40.0

	breakerName = "tmdb-api"
)

// ErrMissingAPIKey is returned when a client is built without a TMDB key.
var ErrMissingAPIKey = errors.New("TMDB API key is required")

// FailureReason classifies a failed poster fetch.
type FailureReason string

const (
	ReasonNone        FailureReason = ""
	ReasonTimeout     FailureReason = "timeout"
	ReasonHTTPStatus  FailureReason = "http_status"
	ReasonNoPoster    FailureReason = "no_poster"
	ReasonDecode      FailureReason = "decode"
	ReasonTransport   FailureReason = "transport"
	ReasonCircuitOpen FailureReason = "circuit_open"
	ReasonRateLimited FailureReason = "rate_limited"
)

// Result is the outcome of one poster fetch: a URL on success, or a
// reason and cause on failure.
type Result struct {
	URL    string
	Reason FailureReason
	Err    error
}

// OK reports whether the fetch produced a poster URL.
func (r Result) OK() bool {
	return r.Reason == ReasonNone
}

// fetchError carries a failure reason through the circuit breaker.
type fetchError struct {
	reason FailureReason
	status int
	err    error
}

func (e *fetchError) Error() string {
	if e.status != 0 {
		return fmt.Sprintf("tmdb returned status %d: %v", e.status, e.err)
	}
	return fmt.Sprintf("%s: %v", e.reason, e.err)
}

func (e *fetchError) Unwrap() error { return e.err }

// ClientConfig configures the TMDB client.
type ClientConfig struct {
	APIKey       string
	BaseURL      string
	ImageBaseURL string

	// Timeout bounds each request, including any rate-limit wait.
	Timeout time.Duration

	// RateLimit is the outbound request rate in requests per second.
	// Zero disables pacing.
	RateLimit float64

	// HTTPClient overrides the transport (tests).
	HTTPClient *http.Client
}

// DefaultClientConfig returns a config with TMDB defaults and no API key.
func DefaultClientConfig() ClientConfig {
	return ClientConfig{
		BaseURL:      DefaultBaseURL,
		ImageBaseURL: DefaultImageBaseURL,
		Timeout:      DefaultTimeout,
		RateLimit:    DefaultRateLimit,
	}
}

// Client fetches poster paths from TMDB behind a circuit breaker and an
// outbound rate limiter.
type Client struct {
	cfg        ClientConfig
	httpClient *http.Client
	limiter    *rate.Limiter
	cb         *gobreaker.CircuitBreaker[string]
}

// NewClient creates a TMDB client.
func NewClient(cfg ClientConfig) (*Client, error) {
	if strings.TrimSpace(cfg.APIKey) == "" {
		return nil, ErrMissingAPIKey
	}
	if cfg.BaseURL == "" {
		cfg.BaseURL = DefaultBaseURL
	}
	if cfg.ImageBaseURL == "" {
		cfg.ImageBaseURL = DefaultImageBaseURL
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = DefaultTimeout
	}

	httpClient := cfg.HTTPClient
	if httpClient == nil {
		httpClient = &http.Client{Timeout: cfg.Timeout}
	}

	limiter := rate.NewLimiter(rate.Inf, 0)
	if cfg.RateLimit > 0 {
		burst := int(cfg.RateLimit)
		if burst < 1 {
			burst = 1
		}
		limiter = rate.NewLimiter(rate.Limit(cfg.RateLimit), burst)
	}

	return &Client{
		cfg:        cfg,
		httpClient: httpClient,
		limiter:    limiter,
		cb:         newBreaker(breakerName),
	}, nil
}

// newBreaker builds the TMDB circuit breaker:
//   - Max 3 concurrent requests in half-open state
//   - 1 minute measurement window
//   - 30 second timeout before attempting recovery
//   - Opens after 60% failure rate with minimum 10 requests
func newBreaker(name string) *gobreaker.CircuitBreaker[string] {
	metrics.CircuitBreakerState.WithLabelValues(name).Set(0)

	return gobreaker.NewCircuitBreaker[string](gobreaker.Settings{
		Name:        name,
		MaxRequests: 3,
		Interval:    time.Minute,
		Timeout:     30 * time.Second,

		ReadyToTrip: func(counts gobreaker.Counts) bool {
			if counts.Requests < 10 {
				return false
			}
			failureRatio := float64(counts.TotalFailures) / float64(counts.Requests)
			shouldTrip := failureRatio >= 0.6
			if shouldTrip {
				logging.Warn().
					Str("breaker", name).
					Uint32("failures", counts.TotalFailures).
					Float64("failure_rate", failureRatio*100).
					Msg("[CIRCUIT BREAKER] Opening circuit")
			}
			return shouldTrip
		},

		OnStateChange: func(name string, from, to gobreaker.State) {
			fromStr := stateToString(from)
			toStr := stateToString(to)
			logging.Info().Str("breaker", name).Str("from", fromStr).Str("to", toStr).Msg("[CIRCUIT BREAKER] State transition")

			metrics.CircuitBreakerState.WithLabelValues(name).Set(stateToFloat(to))
			metrics.CircuitBreakerTransitions.WithLabelValues(name, fromStr, toStr).Inc()
		},

		// A movie without a poster or an unknown id is a healthy upstream.
		IsSuccessful: func(err error) bool {
			if err == nil {
				return true
			}
			var fe *fetchError
			if errors.As(err, &fe) {
				switch fe.reason {
				case ReasonNoPoster, ReasonDecode:
					return true
				case ReasonHTTPStatus:
					return fe.status >= 400 && fe.status < 500 && fe.status != http.StatusTooManyRequests
				}
			}
			return false
		},
	})
}

// FetchPoster resolves the poster URL for a TMDB movie id. It never
// panics; every failure is reported through Result.
func (c *Client) FetchPoster(ctx context.Context, movieID int) Result {
	start := time.Now()

	ctx, cancel := context.WithTimeout(ctx, c.cfg.Timeout)
	defer cancel()

	result := c.fetch(ctx, movieID)

	label := string(result.Reason)
	if result.OK() {
		label = "success"
	}
	metrics.RecordPosterFetch(label, time.Since(start))

	return result
}

func (c *Client) fetch(ctx context.Context, movieID int) Result {
	if err := c.limiter.Wait(ctx); err != nil {
		if ctx.Err() != nil && errors.Is(ctx.Err(), context.DeadlineExceeded) {
			return Result{Reason: ReasonTimeout, Err: err}
		}
		return Result{Reason: ReasonRateLimited, Err: err}
	}

	posterPath, err := c.cb.Execute(func() (string, error) {
		return c.requestPosterPath(ctx, movieID)
	})
	if err != nil {
		return Result{Reason: classify(err), Err: err}
	}

	return Result{URL: joinURL(c.cfg.ImageBaseURL, posterPath)}
}

// tmdbMovie is the subset of the TMDB movie response we read.
type tmdbMovie struct {
	PosterPath *string `json:"poster_path"`
}

// requestPosterPath performs GET {base}/{id}?api_key=...&language=en-US.
func (c *Client) requestPosterPath(ctx context.Context, movieID int) (string, error) {
	endpoint := strings.TrimSuffix(c.cfg.BaseURL, "/") + "/" + strconv.Itoa(movieID)

	params := url.Values{}
	params.Set("api_key", c.cfg.APIKey)
	params.Set("language", "en-US")

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint+"?"+params.Encode(), http.NoBody)
	if err != nil {
		return "", &fetchError{reason: ReasonTransport, err: err}
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		if isTimeout(err) {
			return "", &fetchError{reason: ReasonTimeout, err: err}
		}
		return "", &fetchError{reason: ReasonTransport, err: redact(err, c.cfg.APIKey)}
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return "", &fetchError{
			reason: ReasonHTTPStatus,
			status: resp.StatusCode,
			err:    errors.New(strings.TrimSpace(string(body))),
		}
	}

	var movie tmdbMovie
	if err := json.NewDecoder(resp.Body).Decode(&movie); err != nil {
		if isTimeout(err) {
			return "", &fetchError{reason: ReasonTimeout, err: err}
		}
		return "", &fetchError{reason: ReasonDecode, err: err}
	}

	if movie.PosterPath == nil || *movie.PosterPath == "" {
		return "", &fetchError{reason: ReasonNoPoster, err: errors.New("response has no poster_path")}
	}

	return *movie.PosterPath, nil
}

// classify maps an error from the breaker to a FailureReason.
func classify(err error) FailureReason {
	if errors.Is(err, gobreaker.ErrOpenState) || errors.Is(err, gobreaker.ErrTooManyRequests) {
		return ReasonCircuitOpen
	}
	var fe *fetchError
	if errors.As(err, &fe) {
		return fe.reason
	}
	if isTimeout(err) {
		return ReasonTimeout
	}
	return ReasonTransport
}

func isTimeout(err error) bool {
	if errors.Is(err, context.DeadlineExceeded) {
		return true
	}
	var ne net.Error
	return errors.As(err, &ne) && ne.Timeout()
}

// redact strips the API key from transport errors, which embed the URL.
func redact(err error, key string) error {
	if key == "" || !strings.Contains(err.Error(), key) {
		return err
	}
	return errors.New(strings.ReplaceAll(err.Error(), key, "REDACTED"))
}

// joinURL concatenates base and path with exactly one slash between them.
func joinURL(base, path string) string {
	return strings.TrimSuffix(base, "/") + "/" + strings.TrimPrefix(path, "/")
}

func stateToString(s gobreaker.State) string {
	switch s {
	case gobreaker.StateClosed:
		return "closed"
	case gobreaker.StateHalfOpen:
		return "half-open"
	case gobreaker.StateOpen:
		return "open"
	default:
		return "unknown"
	}
}

func stateToFloat(s gobreaker.State) float64 {
	switch s {
	case gobreaker.StateClosed:
		return 0
	case gobreaker.StateHalfOpen:
		return 1
	case gobreaker.StateOpen:
		return 2
	default:
		return -1
	}
}

// BreakerState returns the current circuit breaker state name.
func (c *Client) BreakerState() string {
	return stateToString(c.cb.State())
}
