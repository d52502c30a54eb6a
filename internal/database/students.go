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

	"github.com/tomtom215/studypath/internal/store"
)

// SaveStudent inserts or replaces a student and its enrollments.
//
//nolint:gocritic // hugeParam
func (db *DB) SaveStudent(ctx context.Context, s store.StudentRecord) (err error) {
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

	if _, err = tx.ExecContext(ctx, "DELETE FROM enrollments WHERE student_id = ?", s.ID); err != nil {
		return fmt.Errorf("clear enrollments for %s: %w", s.ID, err)
	}
	if _, err = tx.ExecContext(ctx, `INSERT OR REPLACE INTO students (id, username, email, major, gpa, created_at)
		VALUES (?, ?, ?, ?, ?, ?)`,
		s.ID, s.Username, s.Email, s.Major, s.GPA, s.CreatedAt.UTC()); err != nil {
		return fmt.Errorf("upsert student %s: %w", s.ID, err)
	}

	for i, e := range s.Enrollments {
		if _, err = tx.ExecContext(ctx, `INSERT INTO enrollments (student_id, position, course_code, term, grade, status)
			VALUES (?, ?, ?, ?, ?, ?)`,
			s.ID, i, e.CourseCode, e.Term, e.Grade, e.Status); err != nil {
			return fmt.Errorf("insert enrollment %s/%s: %w", s.ID, e.CourseCode, err)
		}
	}

	if err = tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit student: %w", err)
	}
	return nil
}

// LoadStudent returns a student with enrollments in their recorded order.
func (db *DB) LoadStudent(ctx context.Context, id string) (store.StudentRecord, error) {
	if err := db.checkOpen(); err != nil {
		return store.StudentRecord{}, err
	}

	var s store.StudentRecord
	err := db.conn.QueryRowContext(ctx,
		"SELECT id, username, email, major, gpa, created_at FROM students WHERE id = ?", id).
		Scan(&s.ID, &s.Username, &s.Email, &s.Major, &s.GPA, &s.CreatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return store.StudentRecord{}, fmt.Errorf("%w: %s", store.ErrStudentNotFound, id)
	}
	if err != nil {
		return store.StudentRecord{}, fmt.Errorf("query student %s: %w", id, err)
	}

	enrollments, err := db.loadEnrollments(ctx, id)
	if err != nil {
		return store.StudentRecord{}, err
	}
	s.Enrollments = enrollments[id]
	return s, nil
}

// ListStudents returns all students ordered by ID.
func (db *DB) ListStudents(ctx context.Context) ([]store.StudentRecord, error) {
	if err := db.checkOpen(); err != nil {
		return nil, err
	}

	rows, err := db.conn.QueryContext(ctx,
		"SELECT id, username, email, major, gpa, created_at FROM students ORDER BY id")
	if err != nil {
		return nil, fmt.Errorf("query students: %w", err)
	}
	defer closeWithLog(rows, "student rows")

	var out []store.StudentRecord
	for rows.Next() {
		var s store.StudentRecord
		if err := rows.Scan(&s.ID, &s.Username, &s.Email, &s.Major, &s.GPA, &s.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan students: %w", err)
		}
		out = append(out, s)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate students: %w", err)
	}

	enrollments, err := db.loadEnrollments(ctx, "")
	if err != nil {
		return nil, err
	}
	for i := range out {
		out[i].Enrollments = enrollments[out[i].ID]
	}
	return out, nil
}

// loadEnrollments groups enrollments by student. An empty id loads all students.
func (db *DB) loadEnrollments(ctx context.Context, id string) (map[string][]store.Enrollment, error) {
	query := "SELECT student_id, course_code, term, grade, status FROM enrollments"
	var args []any
	if id != "" {
		query += " WHERE student_id = ?"
		args = append(args, id)
	}
	query += " ORDER BY student_id, position"

	rows, err := db.conn.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query enrollments: %w", err)
	}
	defer closeWithLog(rows, "enrollment rows")

	out := make(map[string][]store.Enrollment)
	for rows.Next() {
		var studentID string
		var e store.Enrollment
		if err := rows.Scan(&studentID, &e.CourseCode, &e.Term, &e.Grade, &e.Status); err != nil {
			return nil, fmt.Errorf("scan enrollments: %w", err)
		}
		out[studentID] = append(out[studentID], e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate enrollments: %w", err)
	}
	return out, nil
}
