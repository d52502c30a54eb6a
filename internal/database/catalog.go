// Studypath - Prerequisite-Aware Course Recommendation
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/studypath

package database

import (
	"context"
	"fmt"

	"github.com/tomtom215/studypath/internal/catalog"
	"github.com/tomtom215/studypath/internal/store"
)

// SaveCatalog replaces the catalog_courses and prerequisites relations.
func (db *DB) SaveCatalog(ctx context.Context, cat *catalog.Catalog) (err error) {
	if err := db.checkOpen(); err != nil {
		return err
	}

	tx, err := db.conn.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() {
		if err != nil {
			rollback(tx, err)
		}
	}()

	if _, err = tx.ExecContext(ctx, "DELETE FROM catalog_courses"); err != nil {
		return fmt.Errorf("clear catalog_courses: %w", err)
	}
	if _, err = tx.ExecContext(ctx, "DELETE FROM prerequisites"); err != nil {
		return fmt.Errorf("clear prerequisites: %w", err)
	}

	stmt, err := tx.PrepareContext(ctx,
		"INSERT INTO catalog_courses (major, major_position, course_type, course_code, position) VALUES (?, ?, ?, ?, ?)")
	if err != nil {
		return fmt.Errorf("prepare catalog insert: %w", err)
	}
	defer closeWithLog(stmt, "catalog statement")

	majorPos := make(map[string]int)
	for i, major := range cat.Majors() {
		majorPos[major] = i
	}
	for _, m := range cat.Memberships() {
		if _, err = stmt.ExecContext(ctx, m.Major, majorPos[m.Major], m.Type.String(), m.Code, m.Position); err != nil {
			return fmt.Errorf("insert course %s/%s: %w", m.Major, m.Code, err)
		}
	}

	edgeStmt, err := tx.PrepareContext(ctx,
		"INSERT INTO prerequisites (course_code, prerequisite_code) VALUES (?, ?)")
	if err != nil {
		return fmt.Errorf("prepare prerequisite insert: %w", err)
	}
	defer closeWithLog(edgeStmt, "prerequisite statement")

	for _, e := range cat.Edges() {
		if _, err = edgeStmt.ExecContext(ctx, e.Course, e.Prerequisite); err != nil {
			return fmt.Errorf("insert prerequisite %s->%s: %w", e.Prerequisite, e.Course, err)
		}
	}

	if err = tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit catalog: %w", err)
	}
	return nil
}

// LoadCatalog rebuilds the catalog from its relations.
func (db *DB) LoadCatalog(ctx context.Context) (*catalog.Catalog, error) {
	if err := db.checkOpen(); err != nil {
		return nil, err
	}

	memberships, err := db.loadMemberships(ctx)
	if err != nil {
		return nil, err
	}
	if len(memberships) == 0 {
		return nil, fmt.Errorf("catalog: %w", store.ErrNotFound)
	}
	edges, err := db.loadEdges(ctx)
	if err != nil {
		return nil, err
	}
	return catalog.FromRelations(memberships, edges)
}

func (db *DB) loadMemberships(ctx context.Context) ([]catalog.Membership, error) {
	rows, err := db.conn.QueryContext(ctx,
		"SELECT major, course_type, course_code, position FROM catalog_courses ORDER BY major_position, course_type, position")
	if err != nil {
		return nil, fmt.Errorf("query catalog_courses: %w", err)
	}
	defer closeWithLog(rows, "catalog rows")

	var out []catalog.Membership
	for rows.Next() {
		var m catalog.Membership
		var courseType string
		if err := rows.Scan(&m.Major, &courseType, &m.Code, &m.Position); err != nil {
			return nil, fmt.Errorf("scan catalog_courses: %w", err)
		}
		if m.Type, err = catalog.ParseCourseType(courseType); err != nil {
			return nil, fmt.Errorf("course %s: %w", m.Code, err)
		}
		out = append(out, m)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate catalog_courses: %w", err)
	}
	return out, nil
}

func (db *DB) loadEdges(ctx context.Context) ([]catalog.Edge, error) {
	rows, err := db.conn.QueryContext(ctx,
		"SELECT course_code, prerequisite_code FROM prerequisites ORDER BY course_code, prerequisite_code")
	if err != nil {
		return nil, fmt.Errorf("query prerequisites: %w", err)
	}
	defer closeWithLog(rows, "prerequisite rows")

	var out []catalog.Edge
	for rows.Next() {
		var e catalog.Edge
		if err := rows.Scan(&e.Course, &e.Prerequisite); err != nil {
			return nil, fmt.Errorf("scan prerequisites: %w", err)
		}
		out = append(out, e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate prerequisites: %w", err)
	}
	return out, nil
}
