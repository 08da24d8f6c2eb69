// CineMatch - Similar Movie Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cinematch

package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/tomtom215/cinematch/internal/api"
	"github.com/tomtom215/cinematch/internal/cache"
	"github.com/tomtom215/cinematch/internal/catalog"
	"github.com/tomtom215/cinematch/internal/config"
	"github.com/tomtom215/cinematch/internal/enrich"
	"github.com/tomtom215/cinematch/internal/logging"
	"github.com/tomtom215/cinematch/internal/recommend"
)

// app holds the wired components that outlive startup.
type app struct {
	posterCache cache.Cacher
	store       *catalog.Store
	engine      *recommend.Engine
	router      http.Handler
}

// initApp wires the poster cache, TMDB client, dataset and engine. The
// dataset is loaded eagerly so a bad artifact fails startup instead of the
// first request.
func initApp(ctx context.Context, cfg *config.Config) (_ *app, err error) {
	posterCache, err := cache.NewCacher(cache.Config{
		Type: cache.Type(cfg.PosterCache.Backend),
		TTL:  cfg.PosterCache.TTL,
		Path: cfg.PosterCache.Path,
	})
	if err != nil {
		return nil, fmt.Errorf("create poster cache: %w", err)
	}
	defer func() {
		if err != nil {
			_ = posterCache.Close()
		}
	}()

	client, err := enrich.NewClient(enrich.ClientConfig{
		APIKey:       cfg.TMDB.APIKey,
		BaseURL:      cfg.TMDB.BaseURL,
		ImageBaseURL: cfg.TMDB.ImageBaseURL,
		Timeout:      cfg.TMDB.Timeout,
		RateLimit:    cfg.TMDB.RateLimit,
	})
	if err != nil {
		return nil, fmt.Errorf("create TMDB client: %w", err)
	}

	resolver := enrich.NewResolver(client, posterCache, enrich.ResolverConfig{
		PlaceholderURL: cfg.TMDB.PlaceholderURL,
		TTL:            cfg.PosterCache.TTL,
	}, logging.WithComponent("enrich"))

	store := catalog.NewStore(catalog.Paths{
		Movies:     cfg.Data.MoviesPath,
		Similarity: cfg.Data.SimilarityPath,
	})
	ds, err := store.Dataset(ctx)
	if err != nil {
		return nil, err
	}
	logging.Info().Int("movies", ds.Len()).Msg("Dataset loaded")

	strategy, err := recommend.ParseExcludeStrategy(cfg.Recommend.ExcludeStrategy)
	if err != nil {
		return nil, err
	}
	engine, err := recommend.NewEngine(&recommend.Config{
		Count:                cfg.Recommend.Count,
		MaxConcurrentFetches: cfg.Recommend.MaxConcurrentFetches,
		ExcludeStrategy:      strategy,
	}, store, resolver, logging.WithComponent("recommend"))
	if err != nil {
		return nil, fmt.Errorf("create recommendation engine: %w", err)
	}

	mwCfg := api.DefaultChiMiddlewareConfig()
	mwCfg.CORSAllowedOrigins = cfg.Security.CORSOrigins
	mwCfg.RateLimitRequests = cfg.Security.RateLimitReqs
	mwCfg.RateLimitWindow = cfg.Security.RateLimitWindow
	mwCfg.RateLimitDisabled = cfg.Security.RateLimitDisabled

	handler := api.NewHandler(store, engine, api.DefaultRequestTimeout)

	return &app{
		posterCache: posterCache,
		store:       store,
		engine:      engine,
		router:      api.NewRouter(handler, api.NewChiMiddleware(mwCfg)),
	}, nil
}

// Close releases the poster cache.
func (a *app) Close() error {
	return a.posterCache.Close()
}

// startupMessage returns the operator-facing text for a startup failure.
func startupMessage(err error) string {
	var loadErr *catalog.LoadError
	if errors.As(err, &loadErr) {
		return loadErr.UserMessage()
	}
	return "Failed to initialize CineMatch"
}

// newHTTPServer builds the API server. WriteTimeout must exceed
// api.DefaultRequestTimeout so slow poster lookups still get a response.
func newHTTPServer(cfg *config.Config, handler http.Handler) *http.Server {
	return &http.Server{
		Addr:              cfg.Server.Addr(),
		Handler:           handler,
		ReadHeaderTimeout: 10 * time.Second,
		ReadTimeout:       cfg.Server.Timeout,
		WriteTimeout:      cfg.Server.Timeout,
		IdleTimeout:       60 * time.Second,
	}
}
