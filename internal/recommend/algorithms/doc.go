// Studypath - Prerequisite-Aware Course Recommendation
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/studypath

// Package algorithms implements the numeric building blocks of the
// recommendation model.
//
// # Components
//
//   - StandardScaler: per-dimension mean/std standardization fitted once.
//   - Index: exact k-nearest-neighbor search by Euclidean distance over
//     standardized rows.
//
// # Usage Example
//
//	idx, err := algorithms.BuildIndex(ctx, matrix, algorithms.KNNConfig{K: 5})
//	if err != nil {
//	    return err
//	}
//	neighbors, err := idx.Query(vector, 0) // 0 selects the configured K
//
// # Thread Safety
//
// Index and StandardScaler are immutable after construction and safe for
// concurrent use. BuildIndex scales rows in parallel; each worker writes
// only its own slice of rows.
package algorithms
