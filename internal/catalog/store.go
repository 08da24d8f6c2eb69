// CineMatch - Similar Movie Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cinematch

package catalog

import (
	"context"
	"sync"
	"sync/atomic"
)

// Store lazily loads the dataset once per process and shares it.
// The first caller's context governs the load; the result, success or
// failure, is cached for every later caller.
type Store struct {
	paths Paths
	load  func(context.Context, Paths) (*Dataset, error)

	once   sync.Once
	ds     *Dataset
	err    error
	loaded atomic.Bool
}

// NewStore creates a store that loads from paths on first use.
func NewStore(paths Paths) *Store {
	return &Store{paths: paths, load: Load}
}

// NewStaticStore creates a store that serves an already built dataset.
func NewStaticStore(ds *Dataset) *Store {
	s := &Store{}
	s.once.Do(func() {
		s.ds = ds
		s.loaded.Store(true)
	})
	return s
}

// Dataset returns the shared dataset, loading it on first call.
func (s *Store) Dataset(ctx context.Context) (*Dataset, error) {
	s.once.Do(func() {
		s.ds, s.err = s.load(ctx, s.paths)
		s.loaded.Store(s.err == nil)
	})
	return s.ds, s.err
}

// Loaded reports whether a dataset has been loaded successfully.
func (s *Store) Loaded() bool {
	return s.loaded.Load()
}

// Paths returns the artifact locations this store reads.
func (s *Store) Paths() Paths {
	return s.paths
}
