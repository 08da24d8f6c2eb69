// CineMatch - Similar Movie Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cinematch

package config

import (
	"fmt"
	"time"
)

// Config holds all application configuration loaded from defaults, an
// optional YAML file and environment variables.
//
// Configuration Loading Order (Koanf v2):
//  1. Defaults: Built-in sensible defaults for all optional settings
//  2. Config File: Optional YAML config file (config.yaml) for persistent settings
//  3. Environment Variables: Override any setting via environment variables
//
// Configuration Categories:
//
//  1. Data:
//     - TMDB: Poster lookup API credentials and endpoints
//     - Data: Movie list and similarity matrix artifact paths
//
//  2. Engine:
//     - Recommend: Result count, fetch fan-out, self-exclusion strategy
//     - PosterCache: Poster URL cache backend and TTL
//
//  3. Serving:
//     - Server: HTTP listen address and timeouts
//     - Security: CORS origins and per-IP rate limiting
//
//  4. Observability:
//     - Logging: Log levels and output formats
//
// Example:
//
//	cfg, err := config.Load()
//	if err != nil {
//	    var cfgErr *config.ConfigError
//	    if errors.As(err, &cfgErr) {
//	        fmt.Fprintln(os.Stderr, cfgErr.UserMessage())
//	    }
//	    os.Exit(1)
//	}
//
// Config is immutable after Load() and safe for concurrent read access.
type Config struct {
	TMDB        TMDBConfig        `koanf:"tmdb"`
	Data        DataConfig        `koanf:"data"`
	Recommend   RecommendConfig   `koanf:"recommend"`
	PosterCache PosterCacheConfig `koanf:"poster_cache"`
	Server      ServerConfig      `koanf:"server"`
	Security    SecurityConfig    `koanf:"security"`
	Logging     LoggingConfig     `koanf:"logging"`
}

// TMDBConfig holds The Movie Database API settings.
//
// Environment Variables:
//   - TMDB_API_KEY: API key (required)
//   - TMDB_BASE_URL: Movie endpoint base (default: https://api.themoviedb.org/3/movie/)
//   - TMDB_IMAGE_BASE_URL: Poster image base (default: https://image.tmdb.org/t/p/w500/)
//   - TMDB_PLACEHOLDER_URL: Image shown when no poster is available
//   - TMDB_TIMEOUT: Per-request timeout (default: 6s)
//   - TMDB_RATE_LIMIT: Outbound requests per second, 0 disables (default: 40)
type TMDBConfig struct {
	APIKey         string        `koanf:"api_key"`
	BaseURL        string        `koanf:"base_url"`
	ImageBaseURL   string        `koanf:"image_base_url"`
	PlaceholderURL string        `koanf:"placeholder_url"`
	Timeout        time.Duration `koanf:"timeout"`
	RateLimit      float64       `koanf:"rate_limit"`
}

// DataConfig locates the two startup artifacts.
//
// The movie list is CSV (.csv) or JSON (.json). The similarity matrix is a
// raw matrix (.bin) or a compressed container (.zip, .zst, .lz4).
type DataConfig struct {
	MoviesPath     string `koanf:"movies_path"`
	SimilarityPath string `koanf:"similarity_path"`
}

// RecommendConfig holds recommendation engine settings.
type RecommendConfig struct {
	// Count is the number of recommendations returned. Default: 5
	Count int `koanf:"count"`

	// MaxConcurrentFetches bounds parallel poster lookups per request. Default: 5
	MaxConcurrentFetches int `koanf:"max_concurrent_fetches"`

	// ExcludeStrategy is "positional" (drop the top-ranked entry) or
	// "selected" (drop the selected movie wherever it ranks).
	ExcludeStrategy string `koanf:"exclude_strategy"`
}

// PosterCacheConfig holds poster URL cache settings.
type PosterCacheConfig struct {
	// Backend is "memory" or "badger". Default: memory
	Backend string `koanf:"backend"`

	// TTL is how long poster lookups stay cached. Default: 24h
	TTL time.Duration `koanf:"ttl"`

	// Path is the Badger directory. Only used by the badger backend.
	Path string `koanf:"path"`
}

// ServerConfig holds HTTP server settings.
type ServerConfig struct {
	Port    int           `koanf:"port"`
	Host    string        `koanf:"host"`
	Timeout time.Duration `koanf:"timeout"`
}

// Addr returns the listen address in host:port form.
func (s ServerConfig) Addr() string {
	return fmt.Sprintf("%s:%d", s.Host, s.Port)
}

// SecurityConfig holds HTTP-facing protection settings.
type SecurityConfig struct {
	CORSOrigins       []string      `koanf:"cors_origins"`
	RateLimitReqs     int           `koanf:"rate_limit_reqs"`
	RateLimitWindow   time.Duration `koanf:"rate_limit_window"`
	RateLimitDisabled bool          `koanf:"rate_limit_disabled"`
}

// LoggingConfig holds logging configuration.
//
// Environment Variables:
//   - LOG_LEVEL: Minimum log level (trace, debug, info, warn, error). Default: info
//   - LOG_FORMAT: Output format (json, console). Default: json
//   - LOG_CALLER: Include caller information (true, false). Default: false
type LoggingConfig struct {
	// Level is the minimum log level: trace, debug, info, warn, error.
	// Default: info
	Level string `koanf:"level"`

	// Format is the output format: json or console.
	// JSON is recommended for production (structured, machine-parseable).
	// Console is human-readable for development.
	// Default: json
	Format string `koanf:"format"`

	// Caller includes caller file and line number in logs.
	// Default: false
	Caller bool `koanf:"caller"`
}

// Load reads, layers and validates the configuration.
//
// See LoadWithKoanf() for the underlying implementation.
func Load() (*Config, error) {
	return LoadWithKoanf()
}
