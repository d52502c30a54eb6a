// Studypath - Prerequisite-Aware Course Recommendation
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/studypath

package recommend

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/rs/zerolog"

	"github.com/tomtom215/studypath/internal/catalog"
)

func testConfig() *Config {
	cfg := DefaultConfig()
	cfg.PopulationSize = 300
	return cfg
}

func testCatalog(t *testing.T, cfg *Config) *catalog.Catalog {
	t.Helper()
	cat, err := catalog.Generate(cfg.Majors, cfg.RelatedPerMajor, catalog.NewSource(cfg.Seed))
	if err != nil {
		t.Fatalf("catalog.Generate() error = %v", err)
	}
	return cat
}

func testModel(t *testing.T) *Model {
	t.Helper()
	cfg := testConfig()
	cat := testCatalog(t, cfg)
	examples, err := Generate(context.Background(), cat, cfg.PopulationSize, catalog.NewSource(cfg.Seed))
	if err != nil {
		t.Fatalf("Generate() error = %v", err)
	}
	m, err := NewModel(context.Background(), cfg, cat, examples, 1, zerolog.Nop())
	if err != nil {
		t.Fatalf("NewModel() error = %v", err)
	}
	return m
}

// chainCatalog is a single-major catalog X101 -> X102 -> X201 with no electives.
func chainCatalog(t *testing.T) *catalog.Catalog {
	t.Helper()
	cat, err := catalog.New([]catalog.MajorCourses{
		{Major: "X", Core: []string{"X101", "X102", "X201"}},
	}, nil)
	if err != nil {
		t.Fatalf("catalog.New() error = %v", err)
	}
	return cat
}

func chainConfig() *Config {
	cfg := DefaultConfig()
	cfg.Majors = []string{"X"}
	cfg.DefaultMajor = "X"
	cfg.Neighbors = 2
	return cfg
}

// memoryCorpus is a CorpusStore held in memory.
type memoryCorpus struct {
	mu       sync.Mutex
	examples []TrainingExample
	saves    int
	saveErr  error
	// failAfter makes SaveCorpus fail once it has succeeded this many times.
	failAfter int
}

func (m *memoryCorpus) SaveCorpus(_ context.Context, examples []TrainingExample) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.saveErr != nil && m.saves >= m.failAfter {
		return m.saveErr
	}
	m.examples = append([]TrainingExample(nil), examples...)
	m.saves++
	return nil
}

func (m *memoryCorpus) LoadCorpus(_ context.Context) ([]TrainingExample, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]TrainingExample(nil), m.examples...), nil
}

var errDiskFull = errors.New("disk full")
