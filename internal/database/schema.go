// Studypath - Prerequisite-Aware Course Recommendation
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/studypath

package database

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/tomtom215/studypath/internal/logging"
	"github.com/tomtom215/studypath/internal/store"
)

// schemaContext bounds schema creation on slow disks.
func schemaContext() (context.Context, context.CancelFunc) {
	return context.WithTimeout(context.Background(), 60*time.Second)
}

var schemaStatements = []string{
	`CREATE TABLE IF NOT EXISTS schema_version (
		version INTEGER NOT NULL
	)`,
	`CREATE TABLE IF NOT EXISTS catalog_courses (
		major TEXT NOT NULL,
		major_position INTEGER NOT NULL,
		course_type TEXT NOT NULL,
		course_code TEXT NOT NULL,
		position INTEGER NOT NULL,
		PRIMARY KEY (major, course_code)
	)`,
	`CREATE TABLE IF NOT EXISTS prerequisites (
		course_code TEXT NOT NULL,
		prerequisite_code TEXT NOT NULL,
		PRIMARY KEY (course_code, prerequisite_code)
	)`,
	`CREATE TABLE IF NOT EXISTS training_examples (
		position INTEGER PRIMARY KEY,
		student_id TEXT NOT NULL,
		major TEXT NOT NULL,
		semester INTEGER NOT NULL,
		gpa DOUBLE NOT NULL,
		completed_count INTEGER NOT NULL,
		completed_courses TEXT NOT NULL,
		next_courses TEXT NOT NULL
	)`,
	`CREATE TABLE IF NOT EXISTS students (
		id TEXT PRIMARY KEY,
		username TEXT NOT NULL,
		email TEXT NOT NULL DEFAULT '',
		major TEXT NOT NULL,
		gpa DOUBLE NOT NULL DEFAULT 0,
		created_at TIMESTAMP NOT NULL
	)`,
	`CREATE TABLE IF NOT EXISTS enrollments (
		student_id TEXT NOT NULL,
		position INTEGER NOT NULL,
		course_code TEXT NOT NULL,
		term TEXT NOT NULL,
		grade TEXT NOT NULL DEFAULT '',
		status TEXT NOT NULL,
		PRIMARY KEY (student_id, position)
	)`,
	`CREATE INDEX IF NOT EXISTS idx_enrollments_course ON enrollments(course_code)`,
}

// initialize creates the schema and verifies the stored schema version.
func (db *DB) initialize() error {
	ctx, cancel := schemaContext()
	defer cancel()

	for _, stmt := range schemaStatements {
		if _, err := db.conn.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("create schema: %w", err)
		}
	}
	return db.checkSchemaVersion(ctx)
}

func (db *DB) checkSchemaVersion(ctx context.Context) error {
	var version int
	err := db.conn.QueryRowContext(ctx, "SELECT version FROM schema_version LIMIT 1").Scan(&version)
	switch {
	case errors.Is(err, sql.ErrNoRows):
		if _, err := db.conn.ExecContext(ctx, "INSERT INTO schema_version (version) VALUES (?)", store.SchemaVersion); err != nil {
			return fmt.Errorf("record schema version: %w", err)
		}
		logging.Info().Int("version", store.SchemaVersion).Msg("Initialized database schema")
		return nil
	case err != nil:
		return fmt.Errorf("read schema version: %w", err)
	case version != store.SchemaVersion:
		return fmt.Errorf("%w: database has %d, expected %d", store.ErrSchemaVersion, version, store.SchemaVersion)
	}
	return nil
}
