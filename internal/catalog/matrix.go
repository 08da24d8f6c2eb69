// CineMatch - Similar Movie Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cinematch

package catalog

import (
	"bufio"
	"context"
	"encoding/binary"
	"errors"
	"fmt"
	"io"
	"math"
	"os"
	"path/filepath"
	"strings"

	"github.com/klauspost/compress/zip"
	"github.com/klauspost/compress/zstd"
	"github.com/pierrec/lz4/v4"
)

const (
	matrixMagic   = "CMSM"
	matrixVersion = uint16(1)

	// headerSize is magic + version + n.
	headerSize = 4 + 2 + 4
)

// Container extensions for the similarity matrix.
const (
	ExtRaw  = ".bin"
	ExtZip  = ".zip"
	ExtZstd = ".zst"
	ExtLZ4  = ".lz4"
)

// dimensionError reports a matrix whose size differs from the item table.
type dimensionError struct {
	got, want int
}

func (e *dimensionError) Error() string {
	return fmt.Sprintf("matrix is %dx%d, item table has %d rows", e.got, e.got, e.want)
}

// decodeMatrix reads a matrix whose dimension must equal want. The
// dimension is checked before the score payload is allocated.
func decodeMatrix(ctx context.Context, r io.Reader, want int) (*SimilarityMatrix, error) {
	var header [headerSize]byte
	if _, err := io.ReadFull(r, header[:]); err != nil {
		return nil, fmt.Errorf("read header: %w", err)
	}
	if string(header[0:4]) != matrixMagic {
		return nil, fmt.Errorf("bad magic %q", header[0:4])
	}
	if v := binary.LittleEndian.Uint16(header[4:6]); v != matrixVersion {
		return nil, fmt.Errorf("unsupported version %d", v)
	}

	n := int(binary.LittleEndian.Uint32(header[6:10]))
	if n != want {
		return nil, &dimensionError{got: n, want: want}
	}

	values := make([]float32, n*n)
	rowBytes := make([]byte, 4*n)
	for i := 0; i < n; i++ {
		if i%1024 == 0 {
			if err := ctx.Err(); err != nil {
				return nil, err
			}
		}
		if _, err := io.ReadFull(r, rowBytes); err != nil {
			return nil, fmt.Errorf("read row %d: %w", i, err)
		}
		row := values[i*n : (i+1)*n]
		for j := range row {
			f := math.Float32frombits(binary.LittleEndian.Uint32(rowBytes[4*j:]))
			if math.IsNaN(float64(f)) {
				return nil, fmt.Errorf("NaN score at (%d, %d)", i, j)
			}
			row[j] = f
		}
	}

	var trailing [1]byte
	if k, _ := r.Read(trailing[:]); k > 0 {
		return nil, fmt.Errorf("trailing data after %d rows", n)
	}

	return &SimilarityMatrix{n: n, values: values}, nil
}

// readMatrix opens path, unwraps its container and decodes the matrix.
func readMatrix(ctx context.Context, path string, want int) (*SimilarityMatrix, error) {
	ext := strings.ToLower(filepath.Ext(path))

	if ext == ExtZip {
		return readZipMatrix(ctx, path, want)
	}

	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	var r io.Reader = bufio.NewReaderSize(f, 1<<20)

	switch ext {
	case ExtRaw:
	case ExtZstd:
		dec, err := zstd.NewReader(r)
		if err != nil {
			return nil, fmt.Errorf("zstd: %w", err)
		}
		defer dec.Close()
		r = dec
	case ExtLZ4:
		r = lz4.NewReader(r)
	default:
		return nil, fmt.Errorf("unsupported matrix container %q", ext)
	}

	return decodeMatrix(ctx, r, want)
}

func readZipMatrix(ctx context.Context, path string, want int) (*SimilarityMatrix, error) {
	zr, err := zip.OpenReader(path)
	if err != nil {
		return nil, fmt.Errorf("open zip: %w", err)
	}
	defer zr.Close()

	var entry *zip.File
	for _, f := range zr.File {
		if f.FileInfo().IsDir() {
			continue
		}
		if entry != nil {
			return nil, errors.New("zip holds more than one file")
		}
		entry = f
	}
	if entry == nil {
		return nil, errors.New("zip is empty")
	}
	if !strings.EqualFold(filepath.Ext(entry.Name), ExtRaw) {
		return nil, fmt.Errorf("zip entry %q is not a %s matrix", entry.Name, ExtRaw)
	}

	rc, err := entry.Open()
	if err != nil {
		return nil, fmt.Errorf("open zip entry: %w", err)
	}
	defer rc.Close()

	return decodeMatrix(ctx, bufio.NewReaderSize(rc, 1<<20), want)
}

// EncodeMatrix writes m to w in the raw binary format.
func EncodeMatrix(w io.Writer, m *SimilarityMatrix) error {
	bw := bufio.NewWriter(w)

	var header [headerSize]byte
	copy(header[0:4], matrixMagic)
	binary.LittleEndian.PutUint16(header[4:6], matrixVersion)
	binary.LittleEndian.PutUint32(header[6:10], uint32(m.n)) //nolint:gosec // n is bounded by item count
	if _, err := bw.Write(header[:]); err != nil {
		return err
	}

	var buf [4]byte
	for _, v := range m.values {
		binary.LittleEndian.PutUint32(buf[:], math.Float32bits(v))
		if _, err := bw.Write(buf[:]); err != nil {
			return err
		}
	}

	return bw.Flush()
}

// WriteMatrixFile writes m to path using the container implied by the
// extension. A .zip archive stores the matrix as similarity.bin.
func WriteMatrixFile(path string, m *SimilarityMatrix) (err error) {
	f, err := os.Create(path) //nolint:gosec // operator-supplied output path
	if err != nil {
		return err
	}
	defer func() {
		if cerr := f.Close(); err == nil {
			err = cerr
		}
	}()

	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ExtRaw:
		return EncodeMatrix(f, m)
	case ExtZip:
		zw := zip.NewWriter(f)
		w, err := zw.Create("similarity" + ExtRaw)
		if err != nil {
			return err
		}
		if err := EncodeMatrix(w, m); err != nil {
			return err
		}
		return zw.Close()
	case ExtZstd:
		enc, err := zstd.NewWriter(f, zstd.WithEncoderLevel(zstd.SpeedDefault))
		if err != nil {
			return err
		}
		if err := EncodeMatrix(enc, m); err != nil {
			return errors.Join(err, enc.Close())
		}
		return enc.Close()
	case ExtLZ4:
		zw := lz4.NewWriter(f)
		if err := EncodeMatrix(zw, m); err != nil {
			return errors.Join(err, zw.Close())
		}
		return zw.Close()
	default:
		return fmt.Errorf("unsupported matrix container %q", ext)
	}
}
