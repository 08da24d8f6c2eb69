// CineMatch - Similar Movie Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cinematch

package api

import "net/http"

// RecommendationRequest holds validated query parameters for
// GET /api/v1/recommendations. Titles in the TMDB 5000 dataset are well
// under 100 characters, so 500 only rejects abuse.
type RecommendationRequest struct {
	Title string `query:"title" validate:"required,notblank,max=500"`
}

// parseRecommendationRequest reads the request from query parameters.
// The title is passed through unmodified since lookups are exact.
func parseRecommendationRequest(r *http.Request) RecommendationRequest {
	return RecommendationRequest{
		Title: r.URL.Query().Get("title"),
	}
}
