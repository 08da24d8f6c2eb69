// CineMatch - Similar Movie Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cinematch

/*
Package enrich resolves movie poster URLs from The Movie Database (TMDB).

Two layers split the work:

  - Client performs one HTTP lookup and returns an explicit Result: a URL on
    success, or a FailureReason (timeout, HTTP status, missing poster,
    decode, transport, open circuit, rate limited) with its cause.
  - Resolver is the display-facing contract. PosterURL never fails: it
    serves cached URLs, collapses concurrent lookups for the same movie, and
    substitutes a placeholder image whenever the Client reports a failure.

# Request

	GET {base_url}/{movie_id}?api_key={key}&language=en-US

The poster URL is {image_base_url}{poster_path}. Each request is bounded by
Timeout (default 6s), which also bounds any wait on the outbound rate
limiter.

# Caching

Successful lookups and "no poster" answers are cached for the configured
TTL (default 24h). Timeouts, HTTP errors and transport failures are not
cached, so the next request retries TMDB.

# Circuit Breaker

TMDB calls run through a sony/gobreaker circuit breaker named "tmdb-api".
It opens after a 60% failure rate over at least 10 requests and probes again
after 30 seconds. Missing posters and 4xx answers (other than 429) count as
healthy responses.

# Usage

	client, err := enrich.NewClient(enrich.ClientConfig{APIKey: key})
	if err != nil {
	    return err // enrich.ErrMissingAPIKey
	}
	resolver := enrich.NewResolver(client, posterCache, enrich.ResolverConfig{
	    PlaceholderURL: enrich.DefaultPlaceholderURL,
	    TTL:            24 * time.Hour,
	}, logger)

	url := resolver.PosterURL(ctx, 19995)
*/
package enrich
