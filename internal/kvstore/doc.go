// Studypath - Prerequisite-Aware Course Recommendation
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/studypath

// Package kvstore provides a BadgerDB-backed store.Repository.
//
// Records are JSON encoded with goccy/go-json under these keys:
//
//	meta:schema_version   decimal store.SchemaVersion
//	catalog               memberships and prerequisite edges
//	example:%08d          one training_examples row, keyed by position
//	student:<id>          one student record with enrollments
//
// Badger iterates keys in byte order, so zero-padded example keys load in
// insertion order and student keys load ordered by ID.
//
// Set Config.InMemory for tests and ephemeral servers.
package kvstore
