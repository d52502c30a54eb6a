// Studypath - Prerequisite-Aware Course Recommendation
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/studypath

package store

import (
	"context"
	"fmt"
	"sync"

	"github.com/tomtom215/studypath/internal/catalog"
	"github.com/tomtom215/studypath/internal/recommend"
)

// Memory is a Repository held in process memory. It stores the same flat
// relations as the persistent backends so round-trips behave identically.
type Memory struct {
	mu          sync.RWMutex
	closed      bool
	memberships []catalog.Membership
	edges       []catalog.Edge
	examples    []ExampleRow
	students    map[string]StudentRecord
}

// NewMemory returns an empty in-memory repository.
func NewMemory() *Memory {
	return &Memory{students: make(map[string]StudentRecord)}
}

// SaveCatalog replaces the stored catalog.
func (m *Memory) SaveCatalog(_ context.Context, cat *catalog.Catalog) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.closed {
		return ErrClosed
	}
	m.memberships = cat.Memberships()
	m.edges = cat.Edges()
	return nil
}

// LoadCatalog rebuilds the stored catalog.
func (m *Memory) LoadCatalog(_ context.Context) (*catalog.Catalog, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if m.closed {
		return nil, ErrClosed
	}
	if len(m.memberships) == 0 {
		return nil, fmt.Errorf("catalog: %w", ErrNotFound)
	}
	return catalog.FromRelations(m.memberships, m.edges)
}

// SaveCorpus replaces the stored training corpus. A canceled save keeps
// the previous corpus.
func (m *Memory) SaveCorpus(ctx context.Context, examples []recommend.TrainingExample) error {
	rows := make([]ExampleRow, len(examples))
	for i, ex := range examples {
		if err := ctx.Err(); err != nil {
			return err
		}
		rows[i] = ToRow(ex)
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	if m.closed {
		return ErrClosed
	}
	m.examples = rows
	return nil
}

// LoadCorpus returns the stored corpus in insertion order.
func (m *Memory) LoadCorpus(_ context.Context) ([]recommend.TrainingExample, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if m.closed {
		return nil, ErrClosed
	}
	out := make([]recommend.TrainingExample, len(m.examples))
	for i, r := range m.examples {
		out[i] = FromRow(r)
	}
	return out, nil
}

// SaveStudent inserts or replaces a student.
//
//nolint:gocritic // hugeParam
func (m *Memory) SaveStudent(_ context.Context, s StudentRecord) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.closed {
		return ErrClosed
	}
	s.Enrollments = append([]Enrollment(nil), s.Enrollments...)
	m.students[s.ID] = s
	return nil
}

// LoadStudent returns a student by ID.
func (m *Memory) LoadStudent(_ context.Context, id string) (StudentRecord, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if m.closed {
		return StudentRecord{}, ErrClosed
	}
	s, ok := m.students[id]
	if !ok {
		return StudentRecord{}, fmt.Errorf("%w: %s", ErrStudentNotFound, id)
	}
	s.Enrollments = append([]Enrollment(nil), s.Enrollments...)
	return s, nil
}

// ListStudents returns all students ordered by ID.
func (m *Memory) ListStudents(_ context.Context) ([]StudentRecord, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if m.closed {
		return nil, ErrClosed
	}
	out := make([]StudentRecord, 0, len(m.students))
	for _, s := range m.students {
		out = append(out, s)
	}
	sortStudents(out)
	return out, nil
}

// Ping reports whether the repository is open.
func (m *Memory) Ping(_ context.Context) error {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if m.closed {
		return ErrClosed
	}
	return nil
}

// Close marks the repository closed.
func (m *Memory) Close() error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.closed = true
	return nil
}

var _ Repository = (*Memory)(nil)
