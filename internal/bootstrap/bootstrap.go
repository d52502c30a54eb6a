// Studypath - Prerequisite-Aware Course Recommendation
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/studypath

package bootstrap

import (
	"context"
	"errors"
	"fmt"

	"github.com/rs/zerolog"

	"github.com/tomtom215/studypath/internal/catalog"
	"github.com/tomtom215/studypath/internal/config"
	"github.com/tomtom215/studypath/internal/database"
	"github.com/tomtom215/studypath/internal/kvstore"
	"github.com/tomtom215/studypath/internal/store"
)

// OpenRepository opens the configured backend and wraps it with storage
// metrics.
func OpenRepository(cfg *config.StorageConfig) (*store.Instrumented, error) {
	var (
		repo store.Repository
		err  error
	)
	switch cfg.Backend {
	case config.BackendMemory:
		repo = store.NewMemory()
	case config.BackendDuckDB:
		repo, err = database.New(cfg)
	case config.BackendBadger:
		repo, err = kvstore.Open(kvstore.Config{Path: cfg.Path, Compression: true})
	default:
		return nil, fmt.Errorf("unknown storage backend %q", cfg.Backend)
	}
	if err != nil {
		return nil, fmt.Errorf("open %s repository: %w", cfg.Backend, err)
	}
	return store.NewInstrumented(repo, cfg.Backend), nil
}

// LoadCatalog returns the stored catalog. An empty repository gets a
// catalog generated from cfg, plus the demonstration students when it has
// none.
//
//nolint:gocritic // logger passed by value is acceptable for zerolog
func LoadCatalog(ctx context.Context, repo store.Repository, cfg *config.RecommendConfig, logger zerolog.Logger) (*catalog.Catalog, error) {
	cat, err := repo.LoadCatalog(ctx)
	switch {
	case err == nil:
		logger.Info().Int("courses", cat.Size()).Strs("majors", cat.Majors()).Msg("catalog loaded")
		return cat, nil
	case !errors.Is(err, store.ErrNotFound):
		return nil, fmt.Errorf("load catalog: %w", err)
	}

	cat, err = GenerateCatalog(ctx, repo, cfg)
	if err != nil {
		return nil, err
	}
	logger.Info().Int("courses", cat.Size()).Strs("majors", cat.Majors()).Msg("catalog generated")

	seeded, err := SeedStudents(ctx, repo)
	if err != nil {
		return nil, err
	}
	if seeded > 0 {
		logger.Info().Int("students", seeded).Msg("demonstration students saved")
	}
	return cat, nil
}

// GenerateCatalog builds a catalog from cfg and replaces the stored one.
func GenerateCatalog(ctx context.Context, repo store.Repository, cfg *config.RecommendConfig) (*catalog.Catalog, error) {
	cat, err := catalog.Generate(cfg.Majors, cfg.RelatedPerMajor, catalog.NewSource(cfg.Seed))
	if err != nil {
		return nil, fmt.Errorf("generate catalog: %w", err)
	}
	if err := repo.SaveCatalog(ctx, cat); err != nil {
		return nil, fmt.Errorf("save catalog: %w", err)
	}
	return cat, nil
}

// SeedStudents saves store.SeedStudents when the repository has no
// students, and returns how many were saved.
func SeedStudents(ctx context.Context, repo store.Repository) (int, error) {
	existing, err := repo.ListStudents(ctx)
	if err != nil {
		return 0, fmt.Errorf("list students: %w", err)
	}
	if len(existing) > 0 {
		return 0, nil
	}

	seed := store.SeedStudents()
	for i := range seed {
		if err := repo.SaveStudent(ctx, seed[i]); err != nil {
			return i, fmt.Errorf("save student %s: %w", seed[i].ID, err)
		}
	}
	return len(seed), nil
}
