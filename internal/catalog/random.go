// Studypath - Prerequisite-Aware Course Recommendation
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/studypath

package catalog

import "math/rand"

// Source is the random source used for catalog generation and training.
// *rand.Rand satisfies it. Sources are not safe for concurrent use.
type Source interface {
	Intn(n int) int
	Float64() float64
	NormFloat64() float64
	Shuffle(n int, swap func(i, j int))
}

// NewSource returns a deterministic source for the given seed.
func NewSource(seed int64) Source {
	return rand.New(rand.NewSource(seed)) //nolint:gosec // reproducible synthetic data, not security sensitive
}
