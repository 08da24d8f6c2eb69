// CineMatch - Similar Movie Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cinematch

package api

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/tomtom215/cinematch/internal/catalog"
	"github.com/tomtom215/cinematch/internal/logging"
	"github.com/tomtom215/cinematch/internal/recommend"
)

// Movies handles GET /api/v1/movies
// Returns every title in the dataset, sorted, for the movie selector.
func (h *Handler) Movies(w http.ResponseWriter, r *http.Request) {
	start := time.Now()

	titles, err := h.sortedTitles(r.Context())
	if err != nil {
		respondError(w, r, http.StatusServiceUnavailable, ErrCodeServiceUnavailable, datasetMessage(err), err)
		return
	}

	w.Header().Set("Cache-Control", "public, max-age=300")
	respondJSON(w, http.StatusOK, &APIResponse{
		Status: "success",
		Data: MoviesResponse{
			Titles: titles,
			Count:  len(titles),
		},
		Metadata: Metadata{
			Timestamp:   time.Now(),
			QueryTimeMS: time.Since(start).Milliseconds(),
			RequestID:   logging.RequestIDFromContext(r.Context()),
		},
	})
}

// Recommendations handles GET /api/v1/recommendations?title=<title>
//
// An unknown title or an unavailable dataset is not an HTTP error: the
// response is 200 with an empty list and a notice for the user. Only a
// missing or blank title is rejected with 400 VALIDATION_ERROR.
func (h *Handler) Recommendations(w http.ResponseWriter, r *http.Request) {
	start := time.Now()

	req := parseRecommendationRequest(r)
	if apiErr := validateRequest(&req); apiErr != nil {
		respondErrorWithDetails(w, r, http.StatusBadRequest, apiErr, nil)
		return
	}

	log := logging.Ctx(r.Context())
	log.Info().Str("title", sanitizeLogValue(req.Title)).Msg("User requested recommendations")

	ctx, cancel := context.WithTimeout(r.Context(), h.requestTimeout)
	defer cancel()

	result := h.recommender.GetRecommendations(ctx, req.Title)
	if len(result.Titles) == 0 {
		log.Warn().Str("title", sanitizeLogValue(req.Title)).Msg("No recommendations generated")
	}

	w.Header().Set("Cache-Control", "no-store")
	respondJSON(w, http.StatusOK, &APIResponse{
		Status: "success",
		Data: RecommendationsResponse{
			Selected:        req.Title,
			Recommendations: result.Recommendations(),
			Notice:          result.Notice,
		},
		Metadata: Metadata{
			Timestamp:   time.Now(),
			QueryTimeMS: time.Since(start).Milliseconds(),
			RequestID:   logging.RequestIDFromContext(r.Context()),
		},
	})
}

// datasetMessage picks the user-facing text for a dataset failure.
func datasetMessage(err error) string {
	var loadErr *catalog.LoadError
	if errors.As(err, &loadErr) {
		return loadErr.UserMessage()
	}
	return recommend.MsgDatasetUnavailable
}
