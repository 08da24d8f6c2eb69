// CineMatch - Similar Movie Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cinematch

package services

import (
	"context"
	"time"

	"github.com/rs/zerolog"

	"github.com/tomtom215/cinematch/internal/cache"
)

// PosterCache is the part of the poster cache the maintenance loop reads.
// Every cache.Cacher satisfies it.
type PosterCache interface {
	GetStats() cache.Stats
	HitRate() float64
}

// GarbageCollector is implemented by caches with on-disk storage to reclaim.
// *cache.BadgerCache implements it.
type GarbageCollector interface {
	// CollectGarbage runs one reclaim pass and reports whether it freed space.
	CollectGarbage(discardRatio float64) (bool, error)
}

// CacheMaintenanceConfig holds configuration for CacheMaintenanceService.
type CacheMaintenanceConfig struct {
	// Interval between maintenance passes. Default: 10m
	Interval time.Duration

	// DiscardRatio is the Badger value log GC threshold. Default: 0.5
	DiscardRatio float64

	// MaxGCRounds bounds the GC passes per tick. Default: 10
	MaxGCRounds int
}

// CacheMaintenanceService periodically reports poster cache statistics and,
// for Badger-backed caches, reclaims value log space.
type CacheMaintenanceService struct {
	cache  PosterCache
	config CacheMaintenanceConfig
	logger zerolog.Logger
	name   string
}

// NewCacheMaintenanceService creates the maintenance service for c.
//
//nolint:gocritic // logger passed by value is acceptable for zerolog
func NewCacheMaintenanceService(c PosterCache, cfg CacheMaintenanceConfig, logger zerolog.Logger) *CacheMaintenanceService {
	if cfg.Interval <= 0 {
		cfg.Interval = 10 * time.Minute
	}
	if cfg.DiscardRatio <= 0 || cfg.DiscardRatio >= 1 {
		cfg.DiscardRatio = 0.5
	}
	if cfg.MaxGCRounds <= 0 {
		cfg.MaxGCRounds = 10
	}
	return &CacheMaintenanceService{
		cache:  c,
		config: cfg,
		logger: logger.With().Str("service", "cache-maintenance").Logger(),
		name:   "cache-maintenance",
	}
}

// Serve implements suture.Service.
func (s *CacheMaintenanceService) Serve(ctx context.Context) error {
	_, gc := s.cache.(GarbageCollector)
	s.logger.Info().
		Dur("interval", s.config.Interval).
		Bool("value_log_gc", gc).
		Msg("cache maintenance starting")

	ticker := time.NewTicker(s.config.Interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			s.logger.Info().Msg("cache maintenance shutting down")
			return ctx.Err()

		case <-ticker.C:
			s.runOnce(ctx)
		}
	}
}

// runOnce logs cache statistics and runs GC rounds until one frees nothing.
func (s *CacheMaintenanceService) runOnce(ctx context.Context) {
	stats := s.cache.GetStats()
	s.logger.Info().
		Int64("hits", stats.Hits).
		Int64("misses", stats.Misses).
		Int64("keys", stats.TotalKeys).
		Float64("hit_rate", s.cache.HitRate()).
		Msg("poster cache stats")

	gc, ok := s.cache.(GarbageCollector)
	if !ok {
		return
	}

	rounds := 0
	for rounds < s.config.MaxGCRounds && ctx.Err() == nil {
		freed, err := gc.CollectGarbage(s.config.DiscardRatio)
		if err != nil {
			s.logger.Warn().Err(err).Msg("poster cache GC failed")
			return
		}
		if !freed {
			break
		}
		rounds++
	}
	if rounds > 0 {
		s.logger.Debug().Int("rounds", rounds).Msg("poster cache GC reclaimed space")
	}
}

// String identifies the service in supervisor logs.
func (s *CacheMaintenanceService) String() string {
	return s.name
}
