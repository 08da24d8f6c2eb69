// CineMatch - Similar Movie Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cinematch

// Package cache provides expiring key-value caches used for poster URL lookups.
//
// Two implementations share the Cacher interface:
//   - Cache: in-memory map with per-entry expiry checked on read
//   - BadgerCache: BadgerDB-backed store whose entries carry a native TTL,
//     so resolved posters survive a server restart
//
// Usage:
//
//	c, err := cache.NewCacher(cache.Config{Type: cache.TypeMemory, TTL: 24 * time.Hour})
//	if err != nil {
//	    return err
//	}
//	defer c.Close()
//
//	c.Set("poster:19995", url)
//	if v, ok := c.Get("poster:19995"); ok {
//	    // use v.(string)
//	}
package cache

import (
	"fmt"
	"time"
)

// Cacher defines the interface for cache implementations.
type Cacher interface {
	// Get retrieves a value from the cache.
	// Returns the value and true if found and not expired.
	Get(key string) (interface{}, bool)

	// Set stores a value in the cache with the default TTL.
	Set(key string, value interface{})

	// SetWithTTL stores a value with a custom TTL.
	SetWithTTL(key string, value interface{}, ttl time.Duration)

	// Delete removes a value from the cache.
	Delete(key string)

	// Clear removes all entries from the cache.
	Clear()

	// GetStats returns cache statistics.
	GetStats() Stats

	// HitRate returns the cache hit rate as a percentage.
	HitRate() float64

	// Close releases background goroutines and storage handles.
	Close() error
}

// Type represents the cache backend to create.
type Type string

const (
	// TypeMemory is the in-memory TTL cache (default).
	TypeMemory Type = "memory"

	// TypeBadger is the persistent BadgerDB cache.
	TypeBadger Type = "badger"
)

// Config holds configuration for creating a cache.
type Config struct {
	// Type selects the backend (memory or badger).
	Type Type

	// TTL is the default time-to-live for cache entries.
	TTL time.Duration

	// Path is the BadgerDB directory (badger only).
	// An empty path opens an in-memory Badger instance.
	Path string
}

// NewCacher creates a cache for the configured backend.
func NewCacher(cfg Config) (Cacher, error) {
	if cfg.TTL <= 0 {
		cfg.TTL = 24 * time.Hour
	}

	switch cfg.Type {
	case TypeMemory, "":
		return New(cfg.TTL), nil
	case TypeBadger:
		return OpenBadger(cfg.Path, cfg.TTL)
	default:
		return nil, fmt.Errorf("unknown cache type %q", cfg.Type)
	}
}

// Verify interface implementations at compile time
var (
	_ Cacher = (*Cache)(nil)
	_ Cacher = (*BadgerCache)(nil)
)
