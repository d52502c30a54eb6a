// Studypath - Prerequisite-Aware Course Recommendation
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/studypath

package bootstrap

import (
	"context"
	"path/filepath"
	"reflect"
	"testing"

	"github.com/rs/zerolog"

	"github.com/tomtom215/studypath/internal/catalog"
	"github.com/tomtom215/studypath/internal/config"
	"github.com/tomtom215/studypath/internal/store"
)

func TestOpenRepository(t *testing.T) {
	dir := t.TempDir()
	tests := []struct {
		name    string
		cfg     config.StorageConfig
		wantErr bool
	}{
		{name: "memory", cfg: config.StorageConfig{Backend: config.BackendMemory}},
		{name: "duckdb", cfg: config.StorageConfig{Backend: config.BackendDuckDB, Path: filepath.Join(dir, "db", "studypath.duckdb"), MaxMemory: "256MB", Threads: 1}},
		{name: "badger", cfg: config.StorageConfig{Backend: config.BackendBadger, Path: filepath.Join(dir, "badger")}},
		{name: "unknown", cfg: config.StorageConfig{Backend: "sqlite"}, wantErr: true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo, err := OpenRepository(&tt.cfg)
			if (err != nil) != tt.wantErr {
				t.Fatalf("OpenRepository() error = %v, wantErr %v", err, tt.wantErr)
			}
			if err != nil {
				return
			}
			defer func() {
				if err := repo.Close(); err != nil {
					t.Errorf("Close() error = %v", err)
				}
			}()
			if err := repo.Ping(context.Background()); err != nil {
				t.Errorf("Ping() error = %v", err)
			}
		})
	}
}

func TestLoadCatalog_GeneratesOnce(t *testing.T) {
	ctx := context.Background()
	repo := store.NewMemory()
	cfg := config.Default().Recommend

	first, err := LoadCatalog(ctx, repo, &cfg, zerolog.Nop())
	if err != nil {
		t.Fatalf("LoadCatalog() error = %v", err)
	}
	if !reflect.DeepEqual(first.Majors(), catalog.DefaultMajors) {
		t.Errorf("Majors() = %v, want %v", first.Majors(), catalog.DefaultMajors)
	}

	students, err := repo.ListStudents(ctx)
	if err != nil {
		t.Fatal(err)
	}
	if len(students) != len(store.SeedStudents()) {
		t.Errorf("seeded %d students, want %d", len(students), len(store.SeedStudents()))
	}

	// A different seed must not replace the stored catalog.
	cfg.Seed = 7
	cfg.Majors = []string{"ART"}
	second, err := LoadCatalog(ctx, repo, &cfg, zerolog.Nop())
	if err != nil {
		t.Fatalf("second LoadCatalog() error = %v", err)
	}
	if !reflect.DeepEqual(second.Edges(), first.Edges()) {
		t.Error("stored catalog was regenerated")
	}
}

func TestLoadCatalog_InvalidMajors(t *testing.T) {
	cfg := config.Default().Recommend
	cfg.Majors = nil
	if _, err := LoadCatalog(context.Background(), store.NewMemory(), &cfg, zerolog.Nop()); err == nil {
		t.Error("LoadCatalog() with no majors succeeded")
	}
}

func TestSeedStudents_SkipsPopulated(t *testing.T) {
	ctx := context.Background()
	repo := store.NewMemory()
	if err := repo.SaveStudent(ctx, store.SeedStudents()[1]); err != nil {
		t.Fatal(err)
	}
	n, err := SeedStudents(ctx, repo)
	if err != nil {
		t.Fatalf("SeedStudents() error = %v", err)
	}
	if n != 0 {
		t.Errorf("SeedStudents() = %d, want 0", n)
	}
}
