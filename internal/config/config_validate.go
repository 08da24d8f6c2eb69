// CineMatch - Similar Movie Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cinematch

package config

import (
	"strings"
	"time"
)

// Validate checks that required configuration is present and valid.
// Every failure is a *ConfigError.
func (c *Config) Validate() error {
	if err := c.validateTMDB(); err != nil {
		return err
	}

	if err := c.validateData(); err != nil {
		return err
	}

	if err := c.validateRecommend(); err != nil {
		return err
	}

	if err := c.validatePosterCache(); err != nil {
		return err
	}

	if err := c.validateServer(); err != nil {
		return err
	}

	if err := c.validateSecurity(); err != nil {
		return err
	}

	return c.validateLogging()
}

// validateTMDB validates TMDB credentials and endpoints
func (c *Config) validateTMDB() error {
	c.TMDB.APIKey = strings.TrimSpace(c.TMDB.APIKey)
	if c.TMDB.APIKey == "" {
		return &ConfigError{Key: "TMDB_API_KEY", Err: ErrMissingAPIKey}
	}
	if containsPlaceholder(c.TMDB.APIKey) {
		return configErr("TMDB_API_KEY", "contains a placeholder value; set a real TMDB API key")
	}

	urls := []struct {
		key, value string
	}{
		{"TMDB_BASE_URL", c.TMDB.BaseURL},
		{"TMDB_IMAGE_BASE_URL", c.TMDB.ImageBaseURL},
		{"TMDB_PLACEHOLDER_URL", c.TMDB.PlaceholderURL},
	}
	for _, u := range urls {
		if err := validateHTTPURL(u.value, u.key); err != nil {
			return &ConfigError{Key: u.key, Err: err}
		}
	}

	if c.TMDB.Timeout <= 0 {
		return configErr("TMDB_TIMEOUT", "must be positive, got %v", c.TMDB.Timeout)
	}
	if c.TMDB.RateLimit < 0 {
		return configErr("TMDB_RATE_LIMIT", "must be zero or positive, got %v", c.TMDB.RateLimit)
	}
	return nil
}

// validateData validates artifact paths
func (c *Config) validateData() error {
	if strings.TrimSpace(c.Data.MoviesPath) == "" {
		return configErr("MOVIE_LIST_FILE", "is required")
	}
	if strings.TrimSpace(c.Data.SimilarityPath) == "" {
		return configErr("SIMILARITY_FILE", "is required")
	}
	return nil
}

// Recommendation bounds
const (
	maxRecommendations   = 100
	maxConcurrentFetches = 64
)

// validExcludeStrategies defines the allowed self-exclusion strategies
var validExcludeStrategies = map[string]bool{
	"positional": true,
	"selected":   true,
}

// validateRecommend validates recommendation engine settings
func (c *Config) validateRecommend() error {
	if c.Recommend.Count < 1 || c.Recommend.Count > maxRecommendations {
		return configErr("NUM_RECOMMENDATIONS", "must be between 1 and %d", maxRecommendations)
	}
	if c.Recommend.MaxConcurrentFetches < 1 || c.Recommend.MaxConcurrentFetches > maxConcurrentFetches {
		return configErr("RECOMMEND_MAX_CONCURRENT_FETCHES", "must be between 1 and %d", maxConcurrentFetches)
	}
	if !validExcludeStrategies[c.Recommend.ExcludeStrategy] {
		return configErr("RECOMMEND_EXCLUDE_STRATEGY", "must be one of: positional, selected")
	}
	return nil
}

// validCacheBackends defines the allowed poster cache backends
var validCacheBackends = map[string]bool{
	"memory": true,
	"badger": true,
}

// validatePosterCache validates poster cache settings
func (c *Config) validatePosterCache() error {
	if !validCacheBackends[c.PosterCache.Backend] {
		return configErr("POSTER_CACHE_BACKEND", "must be one of: memory, badger")
	}
	if c.PosterCache.TTL <= 0 {
		return configErr("CACHE_TTL", "must be positive, got %v", c.PosterCache.TTL)
	}
	if c.PosterCache.Backend == "badger" && strings.TrimSpace(c.PosterCache.Path) == "" {
		return configErr("POSTER_CACHE_PATH", "is required when POSTER_CACHE_BACKEND=badger")
	}
	return nil
}

// validateServer validates server configuration
func (c *Config) validateServer() error {
	if c.Server.Port < 1 || c.Server.Port > 65535 {
		return configErr("HTTP_PORT", "must be between 1 and 65535")
	}
	if c.Server.Timeout <= 0 {
		return configErr("HTTP_TIMEOUT", "must be positive, got %v", c.Server.Timeout)
	}
	return nil
}

// Rate limit constants
const (
	minRateLimitRequests = 1           // Minimum 1 request allowed
	maxRateLimitRequests = 100000      // Maximum 100K requests per window
	minRateLimitWindow   = time.Second // Minimum 1 second window
	maxRateLimitWindow   = time.Hour   // Maximum 1 hour window
)

// validateSecurity validates CORS and rate limiting bounds
func (c *Config) validateSecurity() error {
	if len(c.Security.CORSOrigins) == 0 {
		return configErr("CORS_ORIGINS", "must list at least one origin (use * to allow all)")
	}

	if c.Security.RateLimitDisabled {
		return nil
	}
	if c.Security.RateLimitReqs < minRateLimitRequests || c.Security.RateLimitReqs > maxRateLimitRequests {
		return configErr("RATE_LIMIT_REQUESTS", "must be between %d and %d", minRateLimitRequests, maxRateLimitRequests)
	}
	if c.Security.RateLimitWindow < minRateLimitWindow || c.Security.RateLimitWindow > maxRateLimitWindow {
		return configErr("RATE_LIMIT_WINDOW", "must be between %v and %v", minRateLimitWindow, maxRateLimitWindow)
	}
	return nil
}

// validLogLevels defines the allowed log levels
var validLogLevels = map[string]bool{
	"trace": true,
	"debug": true,
	"info":  true,
	"warn":  true,
	"error": true,
}

// validLogFormats defines the allowed log formats
var validLogFormats = map[string]bool{
	"json":    true,
	"console": true,
}

// validateLogging validates logging configuration
func (c *Config) validateLogging() error {
	if !validLogLevels[c.Logging.Level] {
		return configErr("LOG_LEVEL", "must be one of: trace, debug, info, warn, error")
	}
	if c.Logging.Format != "" && !validLogFormats[c.Logging.Format] {
		return configErr("LOG_FORMAT", "must be one of: json, console")
	}
	return nil
}

// placeholderPatterns defines common placeholder patterns that indicate
// the user forgot to set a real value.
var placeholderPatterns = []string{
	"REPLACE",
	"CHANGEME",
	"CHANGE_ME",
	"YOUR_API_KEY",
	"YOUR_KEY",
	"PLACEHOLDER",
}

// containsPlaceholder checks if a value contains common placeholder patterns
func containsPlaceholder(value string) bool {
	upperValue := strings.ToUpper(value)
	for _, pattern := range placeholderPatterns {
		if strings.Contains(upperValue, pattern) {
			return true
		}
	}
	return false
}
