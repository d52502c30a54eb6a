// Studypath - Prerequisite-Aware Course Recommendation
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/studypath

package testinfra

import (
	"context"
	"errors"
	"reflect"
	"testing"

	"github.com/tomtom215/studypath/internal/catalog"
	"github.com/tomtom215/studypath/internal/recommend"
	"github.com/tomtom215/studypath/internal/store"
)

// OpenFunc opens a fresh, empty repository for one subtest.
type OpenFunc func(t *testing.T) store.Repository

// Catalog returns the default generated catalog for seed 42.
func Catalog(t *testing.T) *catalog.Catalog {
	t.Helper()
	cat, err := catalog.Generate(catalog.DefaultMajors, 3, catalog.NewSource(42))
	if err != nil {
		t.Fatalf("catalog.Generate() error = %v", err)
	}
	return cat
}

// Corpus returns n generated examples with grades stripped, since grades
// are not persisted.
func Corpus(t *testing.T, cat *catalog.Catalog, n int) []recommend.TrainingExample {
	t.Helper()
	examples, err := recommend.Generate(context.Background(), cat, n, catalog.NewSource(7))
	if err != nil {
		t.Fatalf("recommend.Generate() error = %v", err)
	}
	for i := range examples {
		examples[i].Profile.Grades = nil
	}
	return examples
}

// RunRepositorySuite runs the repository contract tests against open.
func RunRepositorySuite(t *testing.T, open OpenFunc) {
	t.Helper()

	fresh := func(t *testing.T) store.Repository {
		t.Helper()
		repo := open(t)
		t.Cleanup(func() {
			if err := repo.Close(); err != nil {
				t.Errorf("Close() error = %v", err)
			}
		})
		return repo
	}

	t.Run("catalog not found", func(t *testing.T) {
		repo := fresh(t)
		if _, err := repo.LoadCatalog(context.Background()); !errors.Is(err, store.ErrNotFound) {
			t.Errorf("LoadCatalog() error = %v, want ErrNotFound", err)
		}
	})

	t.Run("catalog round trip", func(t *testing.T) {
		repo := fresh(t)
		ctx := context.Background()
		cat := Catalog(t)

		if err := repo.SaveCatalog(ctx, cat); err != nil {
			t.Fatalf("SaveCatalog() error = %v", err)
		}
		got, err := repo.LoadCatalog(ctx)
		if err != nil {
			t.Fatalf("LoadCatalog() error = %v", err)
		}
		if !reflect.DeepEqual(got.Memberships(), cat.Memberships()) {
			t.Error("memberships differ after round trip")
		}
		if !reflect.DeepEqual(got.Edges(), cat.Edges()) {
			t.Error("edges differ after round trip")
		}
	})

	t.Run("catalog replace", func(t *testing.T) {
		repo := fresh(t)
		ctx := context.Background()

		if err := repo.SaveCatalog(ctx, Catalog(t)); err != nil {
			t.Fatal(err)
		}
		small, err := catalog.Generate([]string{"ART"}, 0, catalog.NewSource(1))
		if err != nil {
			t.Fatal(err)
		}
		if err := repo.SaveCatalog(ctx, small); err != nil {
			t.Fatal(err)
		}
		got, err := repo.LoadCatalog(ctx)
		if err != nil {
			t.Fatal(err)
		}
		if !reflect.DeepEqual(got.Majors(), []string{"ART"}) {
			t.Errorf("Majors() = %v, want [ART]", got.Majors())
		}
	})

	t.Run("empty corpus", func(t *testing.T) {
		repo := fresh(t)
		got, err := repo.LoadCorpus(context.Background())
		if err != nil {
			t.Fatalf("LoadCorpus() error = %v", err)
		}
		if len(got) != 0 {
			t.Errorf("LoadCorpus() returned %d examples, want 0", len(got))
		}
	})

	t.Run("corpus round trip", func(t *testing.T) {
		repo := fresh(t)
		ctx := context.Background()
		want := Corpus(t, Catalog(t), 40)

		if err := repo.SaveCorpus(ctx, want); err != nil {
			t.Fatalf("SaveCorpus() error = %v", err)
		}
		got, err := repo.LoadCorpus(ctx)
		if err != nil {
			t.Fatalf("LoadCorpus() error = %v", err)
		}
		if len(got) != len(want) {
			t.Fatalf("LoadCorpus() returned %d examples, want %d", len(got), len(want))
		}
		for i := range want {
			if !reflect.DeepEqual(got[i], want[i]) {
				t.Errorf("example %d = %+v, want %+v", i, got[i], want[i])
			}
		}

		if err := repo.SaveCorpus(ctx, want[:5]); err != nil {
			t.Fatal(err)
		}
		got, err = repo.LoadCorpus(ctx)
		if err != nil {
			t.Fatal(err)
		}
		if len(got) != 5 {
			t.Errorf("after replace LoadCorpus() returned %d examples, want 5", len(got))
		}
	})

	t.Run("failed corpus save keeps previous corpus", func(t *testing.T) {
		repo := fresh(t)
		want := Corpus(t, Catalog(t), 5)

		if err := repo.SaveCorpus(context.Background(), want); err != nil {
			t.Fatalf("SaveCorpus() error = %v", err)
		}

		ctx, cancel := context.WithCancel(context.Background())
		cancel()
		if err := repo.SaveCorpus(ctx, Corpus(t, Catalog(t), 20)); !errors.Is(err, context.Canceled) {
			t.Errorf("SaveCorpus() with canceled context error = %v, want context.Canceled", err)
		}

		got, err := repo.LoadCorpus(context.Background())
		if err != nil {
			t.Fatalf("LoadCorpus() error = %v", err)
		}
		if !reflect.DeepEqual(got, want) {
			t.Errorf("LoadCorpus() after failed save returned %d examples, want the previous %d", len(got), len(want))
		}
	})

	t.Run("students", func(t *testing.T) {
		repo := fresh(t)
		ctx := context.Background()

		if _, err := repo.LoadStudent(ctx, "1"); !errors.Is(err, store.ErrStudentNotFound) {
			t.Errorf("LoadStudent() error = %v, want ErrStudentNotFound", err)
		}

		seed := store.SeedStudents()
		for i := len(seed) - 1; i >= 0; i-- {
			if err := repo.SaveStudent(ctx, seed[i]); err != nil {
				t.Fatalf("SaveStudent(%s) error = %v", seed[i].ID, err)
			}
		}

		got, err := repo.LoadStudent(ctx, "1")
		if err != nil {
			t.Fatalf("LoadStudent() error = %v", err)
		}
		if got.Username != "alice" || got.Major != "CS" || len(got.Enrollments) != 4 {
			t.Errorf("LoadStudent(1) = %+v", got)
		}
		if !got.CreatedAt.Equal(seed[0].CreatedAt) {
			t.Errorf("CreatedAt = %v, want %v", got.CreatedAt, seed[0].CreatedAt)
		}
		if !reflect.DeepEqual(got.Enrollments, seed[0].Enrollments) {
			t.Errorf("Enrollments = %+v, want %+v", got.Enrollments, seed[0].Enrollments)
		}

		updated := seed[0]
		updated.GPA = 3.9
		updated.Enrollments = updated.Enrollments[:1]
		if err := repo.SaveStudent(ctx, updated); err != nil {
			t.Fatal(err)
		}
		got, err = repo.LoadStudent(ctx, "1")
		if err != nil {
			t.Fatal(err)
		}
		if got.GPA != 3.9 || len(got.Enrollments) != 1 {
			t.Errorf("after update LoadStudent(1) = %+v", got)
		}

		all, err := repo.ListStudents(ctx)
		if err != nil {
			t.Fatal(err)
		}
		ids := make([]string, len(all))
		for i, s := range all {
			ids[i] = s.ID
		}
		if !reflect.DeepEqual(ids, []string{"1", "2", "3"}) {
			t.Errorf("ListStudents() ids = %v, want [1 2 3]", ids)
		}
	})
}
