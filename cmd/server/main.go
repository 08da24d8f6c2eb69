// CineMatch - Similar Movie Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cinematch

package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/tomtom215/cinematch/internal/config"
	"github.com/tomtom215/cinematch/internal/logging"
	"github.com/tomtom215/cinematch/internal/supervisor"
	"github.com/tomtom215/cinematch/internal/supervisor/services"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		var cfgErr *config.ConfigError
		if errors.As(err, &cfgErr) {
			fmt.Fprintln(os.Stderr, cfgErr.UserMessage())
		}
		logging.Fatal().Err(err).Msg("Failed to load configuration")
	}

	logCfg := logging.DefaultConfig()
	logCfg.Level = cfg.Logging.Level
	logCfg.Format = cfg.Logging.Format
	logCfg.Caller = cfg.Logging.Caller
	logging.Init(logCfg)

	logging.Info().
		Str("movies_path", cfg.Data.MoviesPath).
		Str("similarity_path", cfg.Data.SimilarityPath).
		Str("poster_cache", cfg.PosterCache.Backend).
		Int("recommend_count", cfg.Recommend.Count).
		Msg("Starting CineMatch")

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	app, err := initApp(ctx, cfg)
	if err != nil {
		logging.Fatal().Err(err).Msg(startupMessage(err))
	}
	defer func() {
		if err := app.Close(); err != nil {
			logging.Error().Err(err).Msg("Error closing poster cache")
		}
	}()

	tree, err := supervisor.NewSupervisorTree(logging.NewSlogLogger("supervisor"), supervisor.DefaultTreeConfig())
	if err != nil {
		logging.Fatal().Err(err).Msg("Failed to create supervisor tree")
	}

	tree.AddCacheService(services.NewCacheMaintenanceService(
		app.posterCache,
		services.CacheMaintenanceConfig{},
		logging.WithComponent("cache"),
	))
	tree.AddAPIService(services.NewHTTPServerService(
		newHTTPServer(cfg, app.router),
		cfg.Server.Timeout,
		logging.WithComponent("http"),
	))

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		sig := <-sigCh
		logging.Info().Str("signal", sig.String()).Msg("Received shutdown signal")
		cancel()
	}()

	logging.Info().Str("addr", cfg.Server.Addr()).Msg("Starting supervisor tree")
	errCh := tree.ServeBackground(ctx)

	var treeErr error
	select {
	case <-ctx.Done():
		logging.Info().Msg("Context canceled, waiting for supervisor to finish")
		treeErr = <-errCh
	case treeErr = <-errCh:
	}
	if treeErr != nil && !errors.Is(treeErr, context.Canceled) {
		logging.Error().Err(treeErr).Msg("Supervisor tree error")
	}

	unstopped, _ := tree.UnstoppedServiceReport()
	for _, svc := range unstopped {
		logging.Warn().Str("service", svc.Name).Msg("Service failed to stop")
	}

	logging.Info().Msg("CineMatch stopped gracefully")
}
