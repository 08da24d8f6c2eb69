// CineMatch - Similar Movie Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cinematch

/*
Package services provides suture.Service wrappers for CineMatch components.

Each wrapper translates a component's lifecycle into suture's context-aware
Serve pattern and implements fmt.Stringer so supervisor logs name it.

HTTPServerService runs *http.Server. ListenAndServe blocks in a goroutine;
on context cancellation Shutdown drains in-flight requests within the
configured timeout. A listener failure is returned as an error so the
api-layer supervisor restarts the server.

CacheMaintenanceService ticks at a fixed interval, logs poster cache hit
and miss counts, and for caches implementing GarbageCollector
(*cache.BadgerCache) runs value log GC until a pass reclaims nothing.

Return conventions:
  - ctx.Err() after a requested shutdown
  - a wrapped error on failure, which triggers a restart
*/
package services
