// CineMatch - Similar Movie Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cinematch

package config

import (
	"errors"
	"fmt"
)

// ErrMissingAPIKey is returned when TMDB_API_KEY is not set.
var ErrMissingAPIKey = errors.New("TMDB API key is required")

// ConfigError reports a configuration value that prevents startup.
//
//nolint:revive // ConfigError reads better than Error at call sites
type ConfigError struct {
	// Key is the environment variable (or config key) at fault.
	Key string
	Err error
}

func (e *ConfigError) Error() string {
	return fmt.Sprintf("invalid configuration %s: %v", e.Key, e.Err)
}

func (e *ConfigError) Unwrap() error {
	return e.Err
}

// UserMessage returns the operator-facing explanation of the failure.
func (e *ConfigError) UserMessage() string {
	if errors.Is(e.Err, ErrMissingAPIKey) {
		return "TMDB_API_KEY not found. Set it in the environment or config file and restart the server."
	}
	return e.Error()
}

func configErr(key string, format string, args ...interface{}) error {
	return &ConfigError{Key: key, Err: fmt.Errorf(format, args...)}
}
