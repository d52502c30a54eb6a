// Studypath - Prerequisite-Aware Course Recommendation
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/studypath

// Package database provides the DuckDB-backed store.Repository.
//
// DuckDB is an embedded analytical database. The recommender only needs a
// handful of flat relations, but keeping them in DuckDB lets operators
// inspect the generated corpus with plain SQL:
//
//	SELECT major, avg(gpa), count(*) FROM training_examples GROUP BY major;
//
// # Schema
//
// The schema is created on open and versioned through the schema_version
// table. Opening a file written with a different store.SchemaVersion fails
// with store.ErrSchemaVersion rather than migrating in place.
//
//	schema_version     version
//	catalog_courses    major, major_position, course_type, course_code, position
//	prerequisites      course_code, prerequisite_code
//	training_examples  position, student_id, major, semester, gpa, completed_count,
//	                   completed_courses, next_courses
//	students           id, username, email, major, gpa, created_at
//	enrollments        student_id, position, course_code, term, grade, status
//
// Every Save method replaces the affected rows inside a single transaction.
//
// # Connection Management
//
// The pool is sized to the CPU count. Close runs a CHECKPOINT so the WAL
// is folded into the database file before the process exits.
//
// # Testing
//
// Tests open ":memory:" databases and serialize through a semaphore to
// bound DuckDB memory use when packages run in parallel.
package database
