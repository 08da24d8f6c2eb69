// CineMatch - Similar Movie Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cinematch

/*
Package main is the entry point for the CineMatch server.

CineMatch recommends movies similar to a selected title. Similarity comes
from a precomputed item-by-item matrix; poster images come from The Movie
Database (TMDB).

# Application Architecture

	RootSupervisor ("cinematch")
	├── CacheSupervisor ("cache-layer")
	│   └── Cache maintenance (stats, Badger value log GC)
	└── APISupervisor ("api-layer")
	    └── HTTP Server

Startup order:

 1. Configuration: Koanf v2 (defaults, config.yaml, environment)
 2. Logging: zerolog with JSON or console output
 3. Poster cache: in-memory TTL cache or BadgerDB
 4. TMDB client and poster resolver
 5. Dataset: movie list and similarity matrix, loaded eagerly
 6. Recommendation engine
 7. Supervisor tree and HTTP server

A missing TMDB_API_KEY or a missing or corrupt data file stops startup with
an actionable message. Both are fatal because no request could succeed.

# Configuration

	export TMDB_API_KEY=your-tmdb-key
	export MOVIE_LIST_FILE=/data/movie_list.csv
	export SIMILARITY_FILE=/data/similarity.zip
	./cinematch

See internal/config for the full variable list.

# Signal Handling

SIGINT and SIGTERM cancel the root context. The HTTP server drains in-flight
requests, the supervisor tree stops, and the poster cache is closed.
*/
package main
