// CineMatch - Similar Movie Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cinematch

package cache

import (
	"errors"
	"fmt"
	"sync/atomic"
	"time"

	"github.com/dgraph-io/badger/v4"
	"github.com/goccy/go-json"
)

// BadgerCache implements Cacher on top of BadgerDB.
//
// Values round-trip through JSON, so a string stays a string while numbers
// come back as float64. Expiry is delegated to Badger entry TTLs.
type BadgerCache struct {
	db  *badger.DB
	ttl time.Duration

	hits      atomic.Int64
	misses    atomic.Int64
	evictions atomic.Int64
}

// OpenBadger opens (or creates) a Badger cache at path.
// An empty path opens an in-memory instance.
func OpenBadger(path string, ttl time.Duration) (*BadgerCache, error) {
	opts := badger.DefaultOptions(path).WithLogger(nil)
	if path == "" {
		opts = opts.WithInMemory(true)
	}

	db, err := badger.Open(opts)
	if err != nil {
		return nil, fmt.Errorf("open badger cache: %w", err)
	}

	return &BadgerCache{db: db, ttl: ttl}, nil
}

// Get retrieves and decodes a value.
func (b *BadgerCache) Get(key string) (interface{}, bool) {
	var value interface{}

	err := b.db.View(func(txn *badger.Txn) error {
		item, err := txn.Get([]byte(key))
		if err != nil {
			return err
		}
		return item.Value(func(val []byte) error {
			return json.Unmarshal(val, &value)
		})
	})
	if err != nil {
		b.misses.Add(1)
		return nil, false
	}

	b.hits.Add(1)
	return value, true
}

// Set stores a value with the default TTL.
func (b *BadgerCache) Set(key string, value interface{}) {
	b.SetWithTTL(key, value, b.ttl)
}

// SetWithTTL stores a value with a custom TTL. Encoding or write failures
// are dropped; a cache write is never required for correctness.
func (b *BadgerCache) SetWithTTL(key string, value interface{}, ttl time.Duration) {
	data, err := json.Marshal(value)
	if err != nil {
		return
	}

	_ = b.db.Update(func(txn *badger.Txn) error {
		return txn.SetEntry(badger.NewEntry([]byte(key), data).WithTTL(ttl))
	})
}

// Delete removes a value.
func (b *BadgerCache) Delete(key string) {
	err := b.db.Update(func(txn *badger.Txn) error {
		return txn.Delete([]byte(key))
	})
	if err == nil {
		b.evictions.Add(1)
	}
}

// Clear drops every entry.
func (b *BadgerCache) Clear() {
	_ = b.db.DropAll()
}

// GetStats returns hit, miss and eviction counters plus the live key count.
func (b *BadgerCache) GetStats() Stats {
	var keys int64
	_ = b.db.View(func(txn *badger.Txn) error {
		opts := badger.DefaultIteratorOptions
		opts.PrefetchValues = false
		it := txn.NewIterator(opts)
		defer it.Close()
		for it.Rewind(); it.Valid(); it.Next() {
			keys++
		}
		return nil
	})

	return Stats{
		Hits:      b.hits.Load(),
		Misses:    b.misses.Load(),
		Evictions: b.evictions.Load(),
		TotalKeys: keys,
	}
}

// HitRate returns the cache hit rate as a percentage.
func (b *BadgerCache) HitRate() float64 {
	return hitRate(Stats{Hits: b.hits.Load(), Misses: b.misses.Load()})
}

// Close closes the underlying database.
func (b *BadgerCache) Close() error {
	if err := b.db.Close(); err != nil && !errors.Is(err, badger.ErrDBClosed) {
		return fmt.Errorf("close badger cache: %w", err)
	}
	return nil
}

// CollectGarbage runs one value log GC pass and reports whether it rewrote
// a log file. In-memory instances have no value log and report false.
func (b *BadgerCache) CollectGarbage(discardRatio float64) (bool, error) {
	err := b.db.RunValueLogGC(discardRatio)
	switch {
	case err == nil:
		return true, nil
	case errors.Is(err, badger.ErrNoRewrite), errors.Is(err, badger.ErrGCInMemoryMode), errors.Is(err, badger.ErrRejected):
		return false, nil
	default:
		return false, fmt.Errorf("badger value log gc: %w", err)
	}
}
