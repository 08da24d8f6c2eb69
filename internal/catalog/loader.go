// CineMatch - Similar Movie Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cinematch

package catalog

import (
	"bufio"
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/goccy/go-json"

	"github.com/tomtom215/cinematch/internal/logging"
	"github.com/tomtom215/cinematch/internal/metrics"
)

// Paths locates the two startup artifacts.
type Paths struct {
	// Movies is the item table (.csv or .json).
	Movies string

	// Similarity is the similarity matrix (.bin, .zip, .zst or .lz4).
	Similarity string
}

// Load reads and validates both artifacts. On any failure no dataset is
// returned; artifact failures are a *LoadError, while a cancelled ctx
// surfaces as the context error.
func Load(ctx context.Context, paths Paths) (*Dataset, error) {
	start := time.Now()

	for _, p := range []string{paths.Movies, paths.Similarity} {
		if _, err := os.Stat(p); err != nil {
			return nil, missing(p, err)
		}
	}

	items, err := readItems(paths.Movies)
	if err != nil {
		return nil, corrupt(paths.Movies, err)
	}

	matrix, err := readMatrix(ctx, paths.Similarity, len(items))
	if err != nil {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return nil, fmt.Errorf("load similarity matrix: %w", ctxErr)
		}
		var dimErr *dimensionError
		if errors.As(err, &dimErr) {
			return nil, &LoadError{Kind: ErrDimensionMismatch, Path: paths.Similarity, Err: err}
		}
		return nil, corrupt(paths.Similarity, err)
	}

	ds, err := NewDataset(items, matrix)
	if err != nil {
		return nil, &LoadError{Kind: ErrDimensionMismatch, Path: paths.Similarity, Err: err}
	}

	metrics.SetDatasetItems(ds.Len())
	logging.Info().
		Int("items", ds.Len()).
		Str("movies", paths.Movies).
		Str("similarity", paths.Similarity).
		Dur("duration", time.Since(start)).
		Msg("Dataset loaded")

	return ds, nil
}

// readItems decodes the item table selected by extension.
func readItems(path string) ([]Item, error) {
	f, err := os.Open(path) //nolint:gosec // operator-configured data path
	if err != nil {
		return nil, err
	}
	defer f.Close()

	r := bufio.NewReader(f)

	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".csv":
		return readItemsCSV(r)
	case ".json":
		return readItemsJSON(r)
	default:
		return nil, fmt.Errorf("unsupported item table format %q", ext)
	}
}

func readItemsCSV(r io.Reader) ([]Item, error) {
	cr := csv.NewReader(r)
	cr.ReuseRecord = true

	header, err := cr.Read()
	if err != nil {
		return nil, fmt.Errorf("read header: %w", err)
	}

	idCol, titleCol := -1, -1
	for i, name := range header {
		switch strings.TrimSpace(strings.TrimPrefix(name, "\ufeff")) {
		case "movie_id":
			idCol = i
		case "title":
			titleCol = i
		}
	}
	if idCol < 0 || titleCol < 0 {
		return nil, errors.New("header must contain movie_id and title columns")
	}

	var items []Item
	for line := 2; ; line++ {
		record, err := cr.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("line %d: %w", line, err)
		}

		id, err := strconv.Atoi(strings.TrimSpace(record[idCol]))
		if err != nil {
			return nil, fmt.Errorf("line %d: invalid movie_id %q", line, record[idCol])
		}
		items = append(items, Item{ID: id, Title: record[titleCol], Index: len(items)})
	}

	return items, nil
}

func readItemsJSON(r io.Reader) ([]Item, error) {
	var items []Item
	if err := json.NewDecoder(r).Decode(&items); err != nil {
		return nil, fmt.Errorf("decode: %w", err)
	}
	for i := range items {
		items[i].Index = i
	}
	return items, nil
}
