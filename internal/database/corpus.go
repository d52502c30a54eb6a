// Studypath - Prerequisite-Aware Course Recommendation
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/studypath

package database

import (
	"context"
	"fmt"

	"github.com/tomtom215/studypath/internal/recommend"
	"github.com/tomtom215/studypath/internal/store"
)

// SaveCorpus replaces the training_examples relation.
func (db *DB) SaveCorpus(ctx context.Context, examples []recommend.TrainingExample) (err error) {
	if err := db.checkOpen(); err != nil {
		return err
	}
	if err := ctx.Err(); err != nil {
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

	if _, err = tx.ExecContext(ctx, "DELETE FROM training_examples"); err != nil {
		return fmt.Errorf("clear training_examples: %w", err)
	}

	stmt, err := tx.PrepareContext(ctx, `INSERT INTO training_examples
		(position, student_id, major, semester, gpa, completed_count, completed_courses, next_courses)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)`)
	if err != nil {
		return fmt.Errorf("prepare example insert: %w", err)
	}
	defer closeWithLog(stmt, "example statement")

	for i := range examples {
		if err = ctx.Err(); err != nil {
			return err
		}
		r := store.ToRow(examples[i])
		if _, err = stmt.ExecContext(ctx, i, r.StudentID, r.Major, r.Semester, r.GPA,
			r.CompletedCount, r.CompletedCourses, r.NextCourses); err != nil {
			return fmt.Errorf("insert example %s: %w", r.StudentID, err)
		}
	}

	if err = tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit corpus: %w", err)
	}
	return nil
}

// LoadCorpus returns the stored examples in insertion order.
func (db *DB) LoadCorpus(ctx context.Context) ([]recommend.TrainingExample, error) {
	if err := db.checkOpen(); err != nil {
		return nil, err
	}

	rows, err := db.conn.QueryContext(ctx, `SELECT student_id, major, semester, gpa, completed_count,
		completed_courses, next_courses FROM training_examples ORDER BY position`)
	if err != nil {
		return nil, fmt.Errorf("query training_examples: %w", err)
	}
	defer closeWithLog(rows, "example rows")

	out := make([]recommend.TrainingExample, 0)
	for rows.Next() {
		var r store.ExampleRow
		if err := rows.Scan(&r.StudentID, &r.Major, &r.Semester, &r.GPA, &r.CompletedCount,
			&r.CompletedCourses, &r.NextCourses); err != nil {
			return nil, fmt.Errorf("scan training_examples: %w", err)
		}
		out = append(out, store.FromRow(r))
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate training_examples: %w", err)
	}
	return out, nil
}

// CorpusSummary is a per-major aggregate over the stored corpus.
type CorpusSummary struct {
	Major        string  `json:"major"`
	Students     int     `json:"students"`
	AvgGPA       float64 `json:"avg_gpa"`
	AvgCompleted float64 `json:"avg_completed"`
	MaxSemester  int     `json:"max_semester"`
}

// SummarizeCorpus aggregates the stored corpus by major.
func (db *DB) SummarizeCorpus(ctx context.Context) ([]CorpusSummary, error) {
	if err := db.checkOpen(); err != nil {
		return nil, err
	}

	rows, err := db.conn.QueryContext(ctx, `SELECT major, count(*), avg(gpa), avg(completed_count), max(semester)
		FROM training_examples GROUP BY major ORDER BY major`)
	if err != nil {
		return nil, fmt.Errorf("summarize training_examples: %w", err)
	}
	defer closeWithLog(rows, "summary rows")

	var out []CorpusSummary
	for rows.Next() {
		var s CorpusSummary
		if err := rows.Scan(&s.Major, &s.Students, &s.AvgGPA, &s.AvgCompleted, &s.MaxSemester); err != nil {
			return nil, fmt.Errorf("scan summary: %w", err)
		}
		out = append(out, s)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate summary: %w", err)
	}
	return out, nil
}
