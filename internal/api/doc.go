// CineMatch - Similar Movie Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cinematch

/*
Package api provides the CineMatch HTTP API using the Chi router.

# Endpoints

	GET /api/v1/health/live          liveness probe, always 200
	GET /api/v1/health/ready         200 once the dataset is loaded, else 503
	GET /api/v1/movies               sorted list of selectable titles
	GET /api/v1/recommendations      ?title=<exact title>
	GET /metrics                     Prometheus metrics

# Response Format

Every JSON response uses the APIResponse envelope:

	{
	  "status": "success",
	  "data": {
	    "selected": "Avatar",
	    "recommendations": [
	      {"title": "Titan A.E.", "poster_url": "https://image.tmdb.org/t/p/w500/..."}
	    ]
	  },
	  "metadata": {"timestamp": "...", "query_time_ms": 42, "request_id": "..."}
	}

An unknown title still returns 200, with an empty recommendations list and a
notice:

	"notice": {"level": "warning", "message": "'Foo' not found in the dataset. Please try another movie."}

A missing or blank title returns 400 with error code VALIDATION_ERROR.

# Middleware

Applied globally, in order: request ID and logging context, RealIP, panic
recovery, CORS (go-chi/cors), Prometheus metrics. API routes add per-IP rate
limiting (go-chi/httprate), security headers and gzip compression.
*/
package api
