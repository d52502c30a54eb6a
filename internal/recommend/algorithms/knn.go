// Studypath - Prerequisite-Aware Course Recommendation
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/studypath

package algorithms

import (
	"context"
	"errors"
	"fmt"
	"math"
	"runtime"
	"sort"

	"golang.org/x/sync/errgroup"
)

// Index errors.
var (
	ErrEmptyIndex        = errors.New("similarity index has no rows")
	ErrDimensionMismatch = errors.New("vector dimension mismatch")
)

// DefaultNeighbors is the neighbor count used when k is not positive.
const DefaultNeighbors = 5

// KNNConfig contains configuration for building an Index.
type KNNConfig struct {
	// K is the default number of neighbors returned by Query.
	K int

	// NumWorkers is the number of parallel workers used to scale rows.
	NumWorkers int
}

// DefaultKNNConfig returns default KNN configuration.
func DefaultKNNConfig() KNNConfig {
	return KNNConfig{
		K:          DefaultNeighbors,
		NumWorkers: runtime.GOMAXPROCS(0),
	}
}

// Neighbor is one query result: the row position in insertion order and its
// Euclidean distance from the query in scaled space.
type Neighbor struct {
	Row      int
	Distance float64
}

// Index is an immutable exact nearest-neighbor index over standardized rows.
// It is safe for concurrent queries.
type Index struct {
	config KNNConfig
	scaler *StandardScaler
	rows   [][]float64
}

// BuildIndex fits a StandardScaler to matrix and stores the scaled rows.
// The matrix is not retained.
func BuildIndex(ctx context.Context, matrix [][]float64, cfg KNNConfig) (*Index, error) {
	if cfg.K <= 0 {
		cfg.K = DefaultNeighbors
	}
	if cfg.NumWorkers <= 0 {
		cfg.NumWorkers = runtime.GOMAXPROCS(0)
	}

	scaler, err := NewStandardScaler(matrix)
	if err != nil {
		return nil, err
	}

	rows := make([][]float64, len(matrix))
	chunkSize := (len(matrix) + cfg.NumWorkers - 1) / cfg.NumWorkers

	g, gctx := errgroup.WithContext(ctx)
	for start := 0; start < len(matrix); start += chunkSize {
		end := start + chunkSize
		if end > len(matrix) {
			end = len(matrix)
		}
		lo, hi := start, end
		g.Go(func() error {
			for i := lo; i < hi; i++ {
				if err := gctx.Err(); err != nil {
					return err
				}
				row := make([]float64, scaler.Dim())
				scaler.transformInto(row, matrix[i])
				rows[i] = row
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, fmt.Errorf("scale rows: %w", err)
	}

	return &Index{config: cfg, scaler: scaler, rows: rows}, nil
}

// Len returns the number of indexed rows.
func (idx *Index) Len() int {
	return len(idx.rows)
}

// Dim returns the expected query width.
func (idx *Index) Dim() int {
	return idx.scaler.Dim()
}

// K returns the configured default neighbor count.
func (idx *Index) K() int {
	return idx.config.K
}

// Query returns up to k nearest rows to vector, nearest first. Equal
// distances keep insertion order. k <= 0 uses the configured default.
func (idx *Index) Query(vector []float64, k int) ([]Neighbor, error) {
	if len(idx.rows) == 0 {
		return nil, ErrEmptyIndex
	}
	q, err := idx.scaler.Transform(vector)
	if err != nil {
		return nil, err
	}
	if k <= 0 {
		k = idx.config.K
	}
	if k > len(idx.rows) {
		k = len(idx.rows)
	}

	all := make([]Neighbor, len(idx.rows))
	for i, row := range idx.rows {
		all[i] = Neighbor{Row: i, Distance: euclidean(q, row)}
	}
	sort.SliceStable(all, func(a, b int) bool {
		return all[a].Distance < all[b].Distance
	})
	return all[:k], nil
}

func euclidean(a, b []float64) float64 {
	var sum float64
	for i := range a {
		d := a[i] - b[i]
		sum += d * d
	}
	return math.Sqrt(sum)
}
