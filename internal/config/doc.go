// CineMatch - Similar Movie Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cinematch

/*
Package config provides centralized configuration management for CineMatch.

Configuration is layered with Koanf v2: built-in defaults, then an optional
YAML file, then environment variables. The file is taken from CONFIG_PATH or
the first of DefaultConfigPaths that exists.

# Environment Variables

	TMDB_API_KEY                      tmdb.api_key (required)
	TMDB_BASE_URL                     tmdb.base_url
	TMDB_IMAGE_BASE_URL               tmdb.image_base_url
	TMDB_PLACEHOLDER_URL              tmdb.placeholder_url
	TMDB_TIMEOUT                      tmdb.timeout (6s)
	TMDB_RATE_LIMIT                   tmdb.rate_limit (40)
	MOVIE_LIST_FILE                   data.movies_path (movie_list.csv)
	SIMILARITY_FILE                   data.similarity_path (similarity.zip)
	NUM_RECOMMENDATIONS               recommend.count (5)
	RECOMMEND_MAX_CONCURRENT_FETCHES  recommend.max_concurrent_fetches (5)
	RECOMMEND_EXCLUDE_STRATEGY        recommend.exclude_strategy (positional)
	CACHE_TTL                         poster_cache.ttl (24h)
	POSTER_CACHE_BACKEND              poster_cache.backend (memory)
	POSTER_CACHE_PATH                 poster_cache.path (/data/posters)
	HTTP_HOST, HTTP_PORT, HTTP_TIMEOUT server.* (0.0.0.0, 8501, 30s)
	CORS_ORIGINS                      security.cors_origins (comma-separated, *)
	RATE_LIMIT_REQUESTS               security.rate_limit_reqs (60)
	RATE_LIMIT_WINDOW                 security.rate_limit_window (1m)
	DISABLE_RATE_LIMIT                security.rate_limit_disabled (false)
	LOG_LEVEL, LOG_FORMAT, LOG_CALLER logging.* (info, json, false)

# Errors

Validation failures are returned as *ConfigError naming the offending key.
A missing TMDB key wraps ErrMissingAPIKey:

	cfg, err := config.Load()
	if errors.Is(err, config.ErrMissingAPIKey) {
	    // refuse to start
	}
*/
package config
