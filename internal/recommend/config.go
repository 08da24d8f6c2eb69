// CineMatch - Similar Movie Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cinematch

package recommend

import (
	"fmt"
)

// Config contains configuration for the recommendation engine.
type Config struct {
	// Count is the number of recommendations per request.
	// Default: 5.
	Count int `json:"count"`

	// MaxConcurrentFetches bounds parallel poster lookups per request.
	// Default: 5.
	MaxConcurrentFetches int `json:"max_concurrent_fetches"`

	// ExcludeStrategy controls self-exclusion.
	// Default: positional.
	ExcludeStrategy ExcludeStrategy `json:"exclude_strategy"`
}

// DefaultConfig returns a Config with production defaults.
func DefaultConfig() *Config {
	return &Config{
		Count:                DefaultCount,
		MaxConcurrentFetches: 5,
		ExcludeStrategy:      ExcludePositional,
	}
}

// Validate checks the configuration for errors.
func (c *Config) Validate() error {
	if c.Count < 1 {
		return fmt.Errorf("count must be positive, got %d", c.Count)
	}
	if c.MaxConcurrentFetches < 1 {
		return fmt.Errorf("max_concurrent_fetches must be positive, got %d", c.MaxConcurrentFetches)
	}
	if _, err := ParseExcludeStrategy(string(c.ExcludeStrategy)); err != nil {
		return err
	}
	return nil
}
