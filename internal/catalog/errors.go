// CineMatch - Similar Movie Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cinematch

package catalog

import (
	"errors"
	"fmt"
)

// Sentinel errors for artifact loading.
var (
	// ErrMissingArtifact indicates a startup artifact does not exist.
	ErrMissingArtifact = errors.New("missing data file")

	// ErrCorruptArtifact indicates an artifact could not be decompressed or decoded.
	ErrCorruptArtifact = errors.New("corrupt data file")

	// ErrDimensionMismatch indicates the matrix size differs from the item count.
	ErrDimensionMismatch = errors.New("similarity matrix dimension does not match item count")
)

// LoadError describes a failed artifact load.
type LoadError struct {
	Kind error
	Path string
	Err  error
}

// Error implements the error interface.
func (e *LoadError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%v: %s: %v", e.Kind, e.Path, e.Err)
	}
	return fmt.Sprintf("%v: %s", e.Kind, e.Path)
}

// Unwrap returns both the kind and the cause so errors.Is matches either.
func (e *LoadError) Unwrap() []error {
	if e.Err == nil {
		return []error{e.Kind}
	}
	return []error{e.Kind, e.Err}
}

// UserMessage returns the operator-facing message for the failure.
func (e *LoadError) UserMessage() string {
	switch {
	case errors.Is(e.Kind, ErrMissingArtifact):
		return fmt.Sprintf("Missing data file: `%s`. Please ensure the data files are present and restart the server.", e.Path)
	case errors.Is(e.Kind, ErrDimensionMismatch):
		return fmt.Sprintf("Failed to load data file: `%s`. The similarity matrix does not match the movie list.", e.Path)
	default:
		return fmt.Sprintf("Failed to load data file: `%s`. The file may be corrupted or invalid.", e.Path)
	}
}

func missing(path string, err error) *LoadError {
	return &LoadError{Kind: ErrMissingArtifact, Path: path, Err: err}
}

func corrupt(path string, err error) *LoadError {
	return &LoadError{Kind: ErrCorruptArtifact, Path: path, Err: err}
}
