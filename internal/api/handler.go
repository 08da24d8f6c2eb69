// CineMatch - Similar Movie Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cinematch

package api

import (
	"context"
	"sync"
	"time"

	"github.com/tomtom215/cinematch/internal/catalog"
	"github.com/tomtom215/cinematch/internal/recommend"
)

// DefaultRequestTimeout bounds one recommendation request, poster lookups
// included.
const DefaultRequestTimeout = 20 * time.Second

// Catalog is the dataset view the handlers need. *catalog.Store implements it.
type Catalog interface {
	Dataset(ctx context.Context) (*catalog.Dataset, error)
	Loaded() bool
}

// Recommender produces display-ready recommendations. *recommend.Engine
// implements it.
type Recommender interface {
	GetRecommendations(ctx context.Context, title string) recommend.Result
}

// Handler serves the CineMatch HTTP API.
type Handler struct {
	catalog        Catalog
	recommender    Recommender
	startTime      time.Time
	requestTimeout time.Duration

	titlesMu sync.Mutex
	titles   []string
}

// NewHandler creates a Handler. A non-positive timeout uses DefaultRequestTimeout.
func NewHandler(c Catalog, rec Recommender, requestTimeout time.Duration) *Handler {
	if requestTimeout <= 0 {
		requestTimeout = DefaultRequestTimeout
	}
	return &Handler{
		catalog:        c,
		recommender:    rec,
		startTime:      time.Now(),
		requestTimeout: requestTimeout,
	}
}

// sortedTitles returns the cached sorted title list, building it on first use.
// The dataset is immutable once loaded, so the list never goes stale.
func (h *Handler) sortedTitles(ctx context.Context) ([]string, error) {
	h.titlesMu.Lock()
	defer h.titlesMu.Unlock()

	if h.titles != nil {
		return h.titles, nil
	}

	ds, err := h.catalog.Dataset(ctx)
	if err != nil {
		return nil, err
	}
	h.titles = ds.Titles()
	return h.titles, nil
}
