// CineMatch - Similar Movie Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cinematch

/*
Package middleware provides HTTP middleware components for the API server.

Key Components:

  - Compression: Gzip compression (klauspost/compress) for clients that send
    Accept-Encoding: gzip
  - PrometheusMetrics: request count, latency and in-flight instrumentation,
    labelled by chi route pattern

Both are chi-compatible (func(http.Handler) http.Handler):

	r := chi.NewRouter()
	r.Use(middleware.PrometheusMetrics)
	r.Use(middleware.Compression)
*/
package middleware
