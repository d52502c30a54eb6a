// Studypath - Prerequisite-Aware Course Recommendation
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/studypath

package algorithms

import (
	"fmt"
	"math"
)

// StandardScaler centers each dimension on its mean and divides by its
// population standard deviation. Dimensions with zero variance keep a scale
// of 1 so they pass through centered but unscaled.
type StandardScaler struct {
	mean  []float64
	scale []float64
}

// NewStandardScaler fits a scaler to the rows of matrix. All rows must share
// the same width.
func NewStandardScaler(matrix [][]float64) (*StandardScaler, error) {
	if len(matrix) == 0 {
		return nil, ErrEmptyIndex
	}
	dim := len(matrix[0])
	if dim == 0 {
		return nil, fmt.Errorf("%w: zero-width rows", ErrDimensionMismatch)
	}

	mean := make([]float64, dim)
	for i, row := range matrix {
		if len(row) != dim {
			return nil, fmt.Errorf("%w: row %d has width %d, want %d", ErrDimensionMismatch, i, len(row), dim)
		}
		for j, v := range row {
			mean[j] += v
		}
	}
	n := float64(len(matrix))
	for j := range mean {
		mean[j] /= n
	}

	scale := make([]float64, dim)
	for _, row := range matrix {
		for j, v := range row {
			d := v - mean[j]
			scale[j] += d * d
		}
	}
	for j := range scale {
		std := math.Sqrt(scale[j] / n)
		if std == 0 || math.IsNaN(std) {
			std = 1
		}
		scale[j] = std
	}

	return &StandardScaler{mean: mean, scale: scale}, nil
}

// Dim returns the fitted width.
func (s *StandardScaler) Dim() int {
	return len(s.mean)
}

// Transform returns a scaled copy of vector.
func (s *StandardScaler) Transform(vector []float64) ([]float64, error) {
	if len(vector) != len(s.mean) {
		return nil, fmt.Errorf("%w: got %d, want %d", ErrDimensionMismatch, len(vector), len(s.mean))
	}
	out := make([]float64, len(vector))
	s.transformInto(out, vector)
	return out, nil
}

func (s *StandardScaler) transformInto(dst, src []float64) {
	for j, v := range src {
		dst[j] = (v - s.mean[j]) / s.scale[j]
	}
}

// Mean returns a copy of the fitted per-dimension means.
func (s *StandardScaler) Mean() []float64 {
	out := make([]float64, len(s.mean))
	copy(out, s.mean)
	return out
}

// Scale returns a copy of the fitted per-dimension scales.
func (s *StandardScaler) Scale() []float64 {
	out := make([]float64, len(s.scale))
	copy(out, s.scale)
	return out
}
