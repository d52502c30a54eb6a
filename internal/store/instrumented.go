// Studypath - Prerequisite-Aware Course Recommendation
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/studypath

package store

import (
	"context"
	"errors"
	"time"

	"github.com/tomtom215/studypath/internal/catalog"
	"github.com/tomtom215/studypath/internal/metrics"
	"github.com/tomtom215/studypath/internal/recommend"
)

// Instrumented wraps a Repository and records the duration and failures of
// every call under the given backend label.
type Instrumented struct {
	next    Repository
	backend string
}

// NewInstrumented wraps next.
func NewInstrumented(next Repository, backend string) *Instrumented {
	return &Instrumented{next: next, backend: backend}
}

func (r *Instrumented) observe(op string, start time.Time, err error) {
	metrics.RecordStoreOperation(r.backend, op, time.Since(start), err)
}

// SaveCatalog implements Repository.
func (r *Instrumented) SaveCatalog(ctx context.Context, cat *catalog.Catalog) error {
	start := time.Now()
	err := r.next.SaveCatalog(ctx, cat)
	r.observe("save_catalog", start, err)
	return err
}

// LoadCatalog implements Repository.
func (r *Instrumented) LoadCatalog(ctx context.Context) (*catalog.Catalog, error) {
	start := time.Now()
	cat, err := r.next.LoadCatalog(ctx)
	r.observe("load_catalog", start, err)
	return cat, err
}

// SaveCorpus implements Repository.
func (r *Instrumented) SaveCorpus(ctx context.Context, examples []recommend.TrainingExample) error {
	start := time.Now()
	err := r.next.SaveCorpus(ctx, examples)
	r.observe("save_corpus", start, err)
	return err
}

// LoadCorpus implements Repository.
func (r *Instrumented) LoadCorpus(ctx context.Context) ([]recommend.TrainingExample, error) {
	start := time.Now()
	examples, err := r.next.LoadCorpus(ctx)
	r.observe("load_corpus", start, err)
	return examples, err
}

// SaveStudent implements Repository.
//
//nolint:gocritic // hugeParam
func (r *Instrumented) SaveStudent(ctx context.Context, s StudentRecord) error {
	start := time.Now()
	err := r.next.SaveStudent(ctx, s)
	r.observe("save_student", start, err)
	return err
}

// LoadStudent implements Repository. A missing student is not a failure.
func (r *Instrumented) LoadStudent(ctx context.Context, id string) (StudentRecord, error) {
	start := time.Now()
	s, err := r.next.LoadStudent(ctx, id)
	recorded := err
	if errors.Is(err, ErrStudentNotFound) {
		recorded = nil
	}
	r.observe("load_student", start, recorded)
	return s, err
}

// ListStudents implements Repository.
func (r *Instrumented) ListStudents(ctx context.Context) ([]StudentRecord, error) {
	start := time.Now()
	out, err := r.next.ListStudents(ctx)
	r.observe("list_students", start, err)
	return out, err
}

// Ping delegates to the wrapped repository when it implements Pinger.
func (r *Instrumented) Ping(ctx context.Context) error {
	if p, ok := r.next.(Pinger); ok {
		return p.Ping(ctx)
	}
	return nil
}

// Maintain delegates to the wrapped repository when it implements Maintainer.
func (r *Instrumented) Maintain(ctx context.Context) error {
	m, ok := r.next.(Maintainer)
	if !ok {
		return nil
	}
	start := time.Now()
	err := m.Maintain(ctx)
	r.observe("maintain", start, err)
	return err
}

// Close implements Repository.
func (r *Instrumented) Close() error {
	return r.next.Close()
}

// Unwrap returns the wrapped repository.
func (r *Instrumented) Unwrap() Repository {
	return r.next
}

var _ Repository = (*Instrumented)(nil)
