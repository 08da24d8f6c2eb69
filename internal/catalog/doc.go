// CineMatch - Similar Movie Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cinematch

/*
Package catalog loads the movie item table and the precomputed similarity
matrix that drive recommendations.

# Artifacts

Two files are read once at startup:

  - Item table: CSV with a header containing movie_id and title columns, or a
    JSON array of {"movie_id": int, "title": string} objects.
  - Similarity matrix: a binary square float32 matrix, optionally compressed.

The matrix format is:

	offset  size     field
	0       4        magic "CMSM"
	4       2        version (uint16, little-endian, currently 1)
	6       4        n (uint32, little-endian)
	10      4*n*n    scores (float32, little-endian, row-major)

The file extension selects the container:

	.bin   raw matrix
	.zip   zip archive holding exactly one .bin entry
	.zst   zstd stream
	.lz4   LZ4 frame

Cell (i, j) is the similarity between item i and item j; higher is more
similar. Row i corresponds to the i-th item of the table, so the matrix
dimension must equal the item count.

# Errors

Every failure is a *LoadError whose Kind is one of ErrMissingArtifact,
ErrCorruptArtifact or ErrDimensionMismatch. Use errors.Is to classify:

	ds, err := catalog.Load(ctx, paths)
	if errors.Is(err, catalog.ErrMissingArtifact) {
	    // tell the operator which file to provide
	}

# Store

Store wraps Load in a process-wide lazy singleton. The first call to
Dataset performs the load; every later call returns the same dataset (or the
same error) without touching the filesystem again.
*/
package catalog
