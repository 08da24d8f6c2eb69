// CineMatch - Similar Movie Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cinematch

package catalog

import (
	"fmt"
	"sort"
)

// Item is one row of the movie table.
type Item struct {
	// ID is the TMDB movie id.
	ID int `json:"movie_id"`

	// Title is the display title. Titles are not unique.
	Title string `json:"title"`

	// Index is the row position in the similarity matrix.
	Index int `json:"-"`
}

// SimilarityMatrix is a square row-major float32 matrix.
type SimilarityMatrix struct {
	n      int
	values []float32
}

// NewSimilarityMatrix wraps values as an n×n matrix.
func NewSimilarityMatrix(n int, values []float32) (*SimilarityMatrix, error) {
	if n < 0 {
		return nil, fmt.Errorf("negative dimension %d", n)
	}
	if len(values) != n*n {
		return nil, fmt.Errorf("expected %d values for %dx%d matrix, got %d", n*n, n, n, len(values))
	}
	return &SimilarityMatrix{n: n, values: values}, nil
}

// Dim returns the matrix dimension.
func (m *SimilarityMatrix) Dim() int {
	return m.n
}

// Row returns row i. The returned slice aliases the matrix and must not be modified.
func (m *SimilarityMatrix) Row(i int) []float32 {
	return m.values[i*m.n : (i+1)*m.n : (i+1)*m.n]
}

// At returns the score between items i and j.
func (m *SimilarityMatrix) At(i, j int) float32 {
	return m.values[i*m.n+j]
}

// Dataset is the immutable item table plus its similarity matrix.
// It is safe for concurrent reads.
type Dataset struct {
	items   []Item
	matrix  *SimilarityMatrix
	byTitle map[string]int
}

// NewDataset builds a dataset from items and a matrix. Item indexes are
// reassigned to their slice position.
func NewDataset(items []Item, matrix *SimilarityMatrix) (*Dataset, error) {
	if matrix == nil {
		return nil, fmt.Errorf("%w: nil matrix", ErrDimensionMismatch)
	}
	if matrix.Dim() != len(items) {
		return nil, fmt.Errorf("%w: matrix is %dx%d, item table has %d rows",
			ErrDimensionMismatch, matrix.Dim(), matrix.Dim(), len(items))
	}

	ds := &Dataset{
		items:   make([]Item, len(items)),
		matrix:  matrix,
		byTitle: make(map[string]int, len(items)),
	}
	for i, item := range items {
		item.Index = i
		ds.items[i] = item
		if _, seen := ds.byTitle[item.Title]; !seen {
			ds.byTitle[item.Title] = i
		}
	}

	return ds, nil
}

// Len returns the number of items.
func (d *Dataset) Len() int {
	return len(d.items)
}

// Item returns the item at row i.
func (d *Dataset) Item(i int) Item {
	return d.items[i]
}

// IndexOf returns the row of the first item whose title equals title exactly.
func (d *Dataset) IndexOf(title string) (int, bool) {
	i, ok := d.byTitle[title]
	return i, ok
}

// Row returns the similarity row for item i.
func (d *Dataset) Row(i int) []float32 {
	return d.matrix.Row(i)
}

// Matrix returns the underlying similarity matrix.
func (d *Dataset) Matrix() *SimilarityMatrix {
	return d.matrix
}

// Titles returns all titles sorted, duplicates included.
func (d *Dataset) Titles() []string {
	titles := make([]string, len(d.items))
	for i, item := range d.items {
		titles[i] = item.Title
	}
	sort.Strings(titles)
	return titles
}
