// CineMatch - Similar Movie Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cinematch

package enrich

import (
	"context"
	"strconv"
	"time"

	"github.com/rs/zerolog"
	"golang.org/x/sync/singleflight"

	"github.com/tomtom215/cinematch/internal/cache"
	"github.com/tomtom215/cinematch/internal/metrics"
)

// Fetcher performs a single uncached poster lookup. *Client implements it.
type Fetcher interface {
	FetchPoster(ctx context.Context, movieID int) Result
}

// ResolverConfig configures poster resolution.
type ResolverConfig struct {
	// PlaceholderURL is returned whenever no poster can be resolved.
	PlaceholderURL string

	// TTL is how long resolved posters stay cached. Default: 24h.
	TTL time.Duration
}

// Resolver turns a movie id into a displayable poster URL. It consults the
// cache first, collapses concurrent lookups for the same id, and falls back
// to the placeholder on any failure.
type Resolver struct {
	fetcher     Fetcher
	cache       cache.Cacher
	placeholder string
	ttl         time.Duration
	logger      zerolog.Logger
	group       singleflight.Group
}

// noPoster is cached for movies TMDB has no poster for.
const noPoster = ""

// NewResolver creates a poster resolver.
//
//nolint:gocritic // logger passed by value is acceptable for zerolog
func NewResolver(fetcher Fetcher, c cache.Cacher, cfg ResolverConfig, logger zerolog.Logger) *Resolver {
	if cfg.PlaceholderURL == "" {
		cfg.PlaceholderURL = DefaultPlaceholderURL
	}
	if cfg.TTL <= 0 {
		cfg.TTL = 24 * time.Hour
	}
	return &Resolver{
		fetcher:     fetcher,
		cache:       c,
		placeholder: cfg.PlaceholderURL,
		ttl:         cfg.TTL,
		logger:      logger.With().Str("component", "enrich").Logger(),
	}
}

// Placeholder returns the fallback poster URL.
func (r *Resolver) Placeholder() string {
	return r.placeholder
}

// PosterURL returns the poster URL for movieID, or the placeholder. It never
// fails and never panics.
func (r *Resolver) PosterURL(ctx context.Context, movieID int) (posterURL string) {
	defer func() {
		if p := recover(); p != nil {
			r.logger.Error().Int("movie_id", movieID).Interface("panic", p).Msg("Poster lookup panicked")
			posterURL = r.placeholder
		}
	}()

	key := cacheKey(movieID)

	if v, ok := r.cache.Get(key); ok {
		if s, isString := v.(string); isString {
			metrics.RecordPosterCache(true)
			return r.display(s)
		}
	}
	metrics.RecordPosterCache(false)

	v, _, _ := r.group.Do(key, func() (interface{}, error) {
		return r.resolve(ctx, movieID, key), nil
	})
	return r.display(v.(string))
}

// resolve fetches from TMDB, caches cacheable outcomes and logs failures.
// It returns the URL to cache, noPoster, or the placeholder.
func (r *Resolver) resolve(ctx context.Context, movieID int, key string) string {
	result := r.fetcher.FetchPoster(ctx, movieID)

	if result.OK() {
		r.cache.SetWithTTL(key, result.URL, r.ttl)
		r.logger.Debug().Int("movie_id", movieID).Msg("Successfully fetched poster")
		return result.URL
	}

	log := r.logger.With().
		Int("movie_id", movieID).
		Str("reason", string(result.Reason)).
		Logger()

	switch result.Reason {
	case ReasonNoPoster:
		r.cache.SetWithTTL(key, noPoster, r.ttl)
		log.Debug().Msg("Using placeholder image")
		return noPoster
	case ReasonTimeout:
		log.Warn().Err(result.Err).Msg("Timeout fetching poster")
	case ReasonHTTPStatus:
		log.Warn().Err(result.Err).Msg("HTTP error fetching poster")
	default:
		log.Warn().Err(result.Err).Msg("Unable to fetch movie details from TMDB API. Using placeholder image.")
	}
	return r.placeholder
}

// display maps the cached no-poster marker to the current placeholder.
func (r *Resolver) display(url string) string {
	if url == noPoster {
		return r.placeholder
	}
	return url
}

func cacheKey(movieID int) string {
	return "poster:" + strconv.Itoa(movieID)
}
