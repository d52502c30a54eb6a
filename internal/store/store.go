// Studypath - Prerequisite-Aware Course Recommendation
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/studypath

// Package store defines the persistence contract shared by the storage
// backends and provides an in-memory implementation.
//
// Three flat relations hold the model inputs:
//
//	training_examples  student_id, major, semester, gpa, completed_count, completed_courses, next_courses
//	catalog_courses    major, course_type, course_code, position
//	prerequisites      course_code, prerequisite_code
//
// plus the student records served by the HTTP API. Every backend records
// SchemaVersion and refuses to open data written with a different version.
package store

import (
	"context"
	"errors"
	"strings"

	"github.com/tomtom215/studypath/internal/catalog"
	"github.com/tomtom215/studypath/internal/recommend"
)

// SchemaVersion is the version of the persisted layout.
const SchemaVersion = 1

// Storage errors.
var (
	ErrNotFound        = errors.New("not found")
	ErrStudentNotFound = errors.New("student not found")
	ErrSchemaVersion   = errors.New("unsupported schema version")
	ErrClosed          = errors.New("store is closed")
)

// Repository is the persistence interface used by the server and CLI.
type Repository interface {
	recommend.CorpusStore

	// SaveCatalog replaces the stored catalog relations.
	SaveCatalog(ctx context.Context, cat *catalog.Catalog) error

	// LoadCatalog rebuilds the catalog. Returns ErrNotFound if none is stored.
	LoadCatalog(ctx context.Context) (*catalog.Catalog, error)

	// SaveStudent inserts or replaces a student record.
	SaveStudent(ctx context.Context, s StudentRecord) error

	// LoadStudent returns a student record or ErrStudentNotFound.
	LoadStudent(ctx context.Context, id string) (StudentRecord, error)

	// ListStudents returns all student records ordered by ID.
	ListStudents(ctx context.Context) ([]StudentRecord, error)

	// Close releases the backend.
	Close() error
}

// Pinger is implemented by repositories that can report their health.
type Pinger interface {
	Ping(ctx context.Context) error
}

// Maintainer is implemented by repositories that need periodic upkeep,
// such as value log garbage collection or WAL checkpoints.
type Maintainer interface {
	Maintain(ctx context.Context) error
}

// JoinCodes encodes a code list for a single text column.
func JoinCodes(codes []string) string {
	return strings.Join(codes, ",")
}

// SplitCodes decodes a JoinCodes column. The empty string decodes to an empty list.
func SplitCodes(s string) []string {
	if s == "" {
		return []string{}
	}
	parts := strings.Split(s, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}

// ExampleRow is the flat training_examples row for one example.
type ExampleRow struct {
	StudentID        string  `json:"student_id"`
	Major            string  `json:"major"`
	Semester         int     `json:"semester"`
	GPA              float64 `json:"gpa"`
	CompletedCount   int     `json:"completed_count"`
	CompletedCourses string  `json:"completed_courses"`
	NextCourses      string  `json:"next_courses"`
}

// ToRow flattens an example.
//
//nolint:gocritic // hugeParam
func ToRow(ex recommend.TrainingExample) ExampleRow {
	return ExampleRow{
		StudentID:        ex.StudentID,
		Major:            ex.Profile.Major,
		Semester:         ex.Profile.Semester,
		GPA:              ex.Profile.GPA,
		CompletedCount:   len(ex.Profile.CompletedCourses),
		CompletedCourses: JoinCodes(ex.Profile.CompletedCourses),
		NextCourses:      JoinCodes(ex.NextCourses),
	}
}

// FromRow rebuilds an example. Grades are not persisted.
//
//nolint:gocritic // hugeParam
func FromRow(r ExampleRow) recommend.TrainingExample {
	return recommend.TrainingExample{
		StudentID: r.StudentID,
		Profile: recommend.StudentProfile{
			Major:            r.Major,
			Semester:         r.Semester,
			GPA:              r.GPA,
			CompletedCourses: SplitCodes(r.CompletedCourses),
		},
		NextCourses: SplitCodes(r.NextCourses),
	}
}
