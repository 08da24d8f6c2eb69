// CineMatch - Similar Movie Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cinematch

package recommend

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"

	"github.com/tomtom215/cinematch/internal/catalog"
	"github.com/tomtom215/cinematch/internal/logging"
	"github.com/tomtom215/cinematch/internal/metrics"
)

// Request outcomes reported to metrics.
const (
	outcomeSuccess            = "success"
	outcomeEmpty              = "empty"
	outcomeNotFound           = "not_found"
	outcomeDatasetUnavailable = "dataset_unavailable"
	outcomeError              = "error"
)

// DatasetProvider supplies the shared dataset. *catalog.Store implements it.
type DatasetProvider interface {
	Dataset(ctx context.Context) (*catalog.Dataset, error)
}

// PosterResolver returns a displayable poster URL for a movie id.
// Implementations must always return a URL and never panic.
// *enrich.Resolver implements it.
type PosterResolver interface {
	PosterURL(ctx context.Context, movieID int) string
}

// Engine turns a selected title into display-ready recommendations.
// It is safe for concurrent use.
type Engine struct {
	config   *Config
	logger   zerolog.Logger
	dataset  DatasetProvider
	resolver PosterResolver
}

// NewEngine creates a new recommendation engine.
//
//nolint:gocritic // logger passed by value is acceptable for zerolog
func NewEngine(cfg *Config, dataset DatasetProvider, resolver PosterResolver, logger zerolog.Logger) (*Engine, error) {
	if cfg == nil {
		cfg = DefaultConfig()
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}
	if dataset == nil {
		return nil, errors.New("dataset provider is required")
	}
	if resolver == nil {
		return nil, errors.New("poster resolver is required")
	}

	return &Engine{
		config:   cfg,
		logger:   logger.With().Str("component", "recommend").Logger(),
		dataset:  dataset,
		resolver: resolver,
	}, nil
}

// GetRecommendations ranks movies similar to title and resolves their
// posters. It never returns an error: every failure path yields empty
// lists and a Notice.
func (e *Engine) GetRecommendations(ctx context.Context, title string) (result Result) {
	start := time.Now()
	logger := e.requestLogger(ctx, title)
	outcome := outcomeSuccess

	defer func() {
		if r := recover(); r != nil {
			logger.Error().
				Interface("panic", r).
				Msg("Error generating recommendations")
			result = emptyResult(&Notice{Level: NoticeError, Message: MsgGenericError})
			outcome = outcomeError
		}
		metrics.RecordRecommendation(outcome, time.Since(start))
	}()

	logger.Info().Msg("Finding recommendations")

	ds, err := e.dataset.Dataset(ctx)
	if err != nil {
		outcome = outcomeDatasetUnavailable
		logger.Error().Err(err).Msg("Dataset unavailable")
		return emptyResult(&Notice{Level: NoticeError, Message: datasetMessage(err)})
	}

	ranked, err := Rank(title, ds, e.config.Count, e.config.ExcludeStrategy)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			outcome = outcomeNotFound
			logger.Warn().Msg("Movie not found in dataset")
			return emptyResult(&Notice{Level: NoticeWarning, Message: NotFoundMessage(title)})
		}
		outcome = outcomeError
		logger.Error().Err(err).Msg("Error generating recommendations")
		return emptyResult(&Notice{Level: NoticeError, Message: MsgGenericError})
	}

	posters, err := e.resolvePosters(ctx, ranked)
	if err != nil {
		outcome = outcomeError
		logger.Error().Err(err).Msg("Error generating recommendations")
		return emptyResult(&Notice{Level: NoticeError, Message: MsgGenericError})
	}

	titles := make([]string, len(ranked))
	for i, r := range ranked {
		titles[i] = r.Item.Title
	}

	if len(titles) == 0 {
		outcome = outcomeEmpty
		logger.Warn().Msg("No recommendations generated")
	}

	logger.Info().
		Int("count", len(titles)).
		Dur("duration", time.Since(start)).
		Msg("Generated recommendations")

	return Result{Titles: titles, Posters: posters}
}

// resolvePosters looks up posters concurrently, bounded by
// MaxConcurrentFetches. posters[i] always belongs to ranked[i]. A panicking
// resolver is reported as an error rather than crashing the process.
func (e *Engine) resolvePosters(ctx context.Context, ranked []Ranked) ([]string, error) {
	posters := make([]string, len(ranked))

	var g errgroup.Group
	g.SetLimit(e.config.MaxConcurrentFetches)

	for i, r := range ranked {
		g.Go(func() (err error) {
			defer func() {
				if p := recover(); p != nil {
					err = fmt.Errorf("poster resolver panic for movie %d: %v", r.Item.ID, p)
				}
			}()
			posters[i] = e.resolver.PosterURL(ctx, r.Item.ID)
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}
	return posters, nil
}

func (e *Engine) requestLogger(ctx context.Context, title string) zerolog.Logger {
	logCtx := e.logger.With().Str("title", title)
	if id := logging.RequestIDFromContext(ctx); id != "" {
		logCtx = logCtx.Str("request_id", id)
	}
	if id := logging.CorrelationIDFromContext(ctx); id != "" {
		logCtx = logCtx.Str("correlation_id", id)
	}
	return logCtx.Logger()
}

// datasetMessage picks the user-facing message for a dataset failure.
func datasetMessage(err error) string {
	var loadErr *catalog.LoadError
	if errors.As(err, &loadErr) {
		return loadErr.UserMessage()
	}
	return MsgDatasetUnavailable
}
