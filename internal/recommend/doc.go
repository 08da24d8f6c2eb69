// CineMatch - Similar Movie Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cinematch

// Package recommend ranks movies by precomputed similarity and assembles
// display-ready recommendation results.
//
// # Ranking
//
// Rank is a pure function over a Source (normally *catalog.Dataset):
//
//	ranked, err := recommend.Rank("Avatar", ds, 5, recommend.ExcludePositional)
//	if errors.Is(err, recommend.ErrNotFound) {
//	    // unknown title
//	}
//
// Titles are matched exactly and the first matching row wins when titles
// repeat. Scores are sorted in descending order with ties kept in row order,
// so identical inputs always produce identical output.
//
// Self-exclusion has two strategies. ExcludePositional (default) drops the
// top-ranked entry, which is the selected movie whenever its diagonal score
// is the row maximum. ExcludeSelected removes the selected row explicitly and
// differs from the default only when that assumption does not hold.
//
// # Orchestration
//
// Engine combines the ranker with a PosterResolver:
//
//	engine, err := recommend.NewEngine(cfg, store, resolver, logger)
//	result := engine.GetRecommendations(ctx, "Avatar")
//	for _, rec := range result.Recommendations() {
//	    fmt.Println(rec.Title, rec.PosterURL)
//	}
//	if result.Notice != nil {
//	    // show result.Notice.Message to the user
//	}
//
// GetRecommendations never returns an error and never panics. Unknown
// titles, dataset load failures and unexpected errors all yield empty
// lists plus a Notice. Poster lookups run concurrently, bounded by
// Config.MaxConcurrentFetches, and results keep rank order.
//
// # Thread Safety
//
// Engine is safe for concurrent use. The dataset is read-only after load and
// is shared without locking.
package recommend
