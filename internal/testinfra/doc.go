// Studypath - Prerequisite-Aware Course Recommendation
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/studypath

// Package testinfra provides shared test infrastructure for the storage backends.
//
// # Repository Suite
//
// RunRepositorySuite exercises the store.Repository contract against any
// backend, so the in-memory, DuckDB and Badger implementations are held to
// the same behavior:
//
//	func TestRepository(t *testing.T) {
//	    testinfra.RunRepositorySuite(t, func(t *testing.T) store.Repository {
//	        repo, err := kvstore.Open(kvstore.Config{InMemory: true})
//	        if err != nil {
//	            t.Fatal(err)
//	        }
//	        return repo
//	    })
//	}
//
// Each subtest opens a fresh repository and closes it on cleanup.
//
// # Fixtures
//
// Catalog and Corpus return small deterministic fixtures built from the
// production generators.
package testinfra
