// CineMatch - Similar Movie Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cinematch

package recommend

import (
	"errors"
	"fmt"
	"sort"

	"github.com/tomtom215/cinematch/internal/catalog"
)

// DefaultCount is the number of recommendations returned when n <= 0.
const DefaultCount = 5

var (
	// ErrNotFound indicates the selected title is not in the dataset.
	ErrNotFound = errors.New("title not found in dataset")

	// ErrMalformedRow indicates a similarity row does not cover every item.
	ErrMalformedRow = errors.New("similarity row length does not match item count")
)

// Source is the read-only view of the dataset the ranker needs.
// *catalog.Dataset implements it.
type Source interface {
	Len() int
	Item(i int) catalog.Item
	IndexOf(title string) (int, bool)
	Row(i int) []float32
}

// Rank returns up to n items most similar to title, best first.
//
// The similarity row of the first item titled exactly title is sorted by
// descending score with ties kept in row order. The selected movie is then
// excluded according to strategy. Rank performs no I/O and is
// deterministic for identical inputs.
func Rank(title string, src Source, n int, strategy ExcludeStrategy) ([]Ranked, error) {
	if n <= 0 {
		n = DefaultCount
	}

	selected, ok := src.IndexOf(title)
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrNotFound, title)
	}

	row := src.Row(selected)
	if len(row) != src.Len() {
		return nil, fmt.Errorf("%w: row %d has %d scores, dataset has %d items",
			ErrMalformedRow, selected, len(row), src.Len())
	}

	order := make([]int, len(row))
	for i := range order {
		order[i] = i
	}
	sort.SliceStable(order, func(a, b int) bool {
		return row[order[a]] > row[order[b]]
	})

	switch strategy {
	case ExcludeSelected:
		kept := order[:0]
		for _, idx := range order {
			if idx != selected {
				kept = append(kept, idx)
			}
		}
		order = kept
	default:
		if len(order) > 0 {
			order = order[1:]
		}
	}

	if len(order) > n {
		order = order[:n]
	}

	ranked := make([]Ranked, len(order))
	for i, idx := range order {
		ranked[i] = Ranked{Item: src.Item(idx), Score: row[idx]}
	}
	return ranked, nil
}
