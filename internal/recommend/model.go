// Studypath - Prerequisite-Aware Course Recommendation
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/studypath

package recommend

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"github.com/tomtom215/studypath/internal/catalog"
	"github.com/tomtom215/studypath/internal/recommend/algorithms"
)

// Model is a trained, immutable recommendation model. It is safe for
// concurrent use and performs no I/O.
type Model struct {
	config    *Config
	logger    zerolog.Logger
	catalog   *catalog.Catalog
	encoder   *Encoder
	examples  []TrainingExample
	index     *algorithms.Index
	version   int64
	seed      int64
	trainedAt time.Time
}

// NewModel encodes examples and builds the similarity index over them.
//
//nolint:gocritic // logger passed by value is acceptable for zerolog
func NewModel(ctx context.Context, cfg *Config, cat *catalog.Catalog, examples []TrainingExample, version int64, logger zerolog.Logger) (*Model, error) {
	if cfg == nil {
		cfg = DefaultConfig()
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}
	if len(examples) == 0 {
		return nil, ErrEmptyCorpus
	}
	if !cat.HasMajor(cfg.DefaultMajor) {
		return nil, fmt.Errorf("%w: %s", ErrUnknownDefault, cfg.DefaultMajor)
	}

	enc := NewEncoder(cat)
	matrix, err := enc.EncodeAll(ctx, examples)
	if err != nil {
		return nil, err
	}

	idx, err := algorithms.BuildIndex(ctx, matrix, algorithms.KNNConfig{
		K:          cfg.Neighbors,
		NumWorkers: cfg.Training.NumWorkers,
	})
	if err != nil {
		return nil, fmt.Errorf("build index: %w", err)
	}

	return &Model{
		config:    cfg,
		logger:    logger.With().Str("component", "recommend").Int64("model_version", version).Logger(),
		catalog:   cat,
		encoder:   enc,
		examples:  examples,
		index:     idx,
		version:   version,
		trainedAt: time.Now(),
	}, nil
}

// Catalog returns the catalog the model was trained on.
func (m *Model) Catalog() *catalog.Catalog {
	return m.catalog
}

// Examples returns the training corpus. Callers must not modify it.
func (m *Model) Examples() []TrainingExample {
	return m.examples
}

// Encoder returns the feature encoder.
func (m *Model) Encoder() *Encoder {
	return m.encoder
}

// Version returns the model version.
func (m *Model) Version() int64 {
	return m.version
}

// TrainedAt returns when the model was built.
func (m *Model) TrainedAt() time.Time {
	return m.trainedAt
}

// Recommend returns up to limit course codes for the profile.
//
//nolint:gocritic // hugeParam
func (m *Model) Recommend(profile StudentProfile, limit int) []string {
	res := m.Explain(profile, limit)
	return res.Codes()
}

// Details returns the course record for a code.
func (m *Model) Details(code string) (catalog.CourseDetail, error) {
	return m.catalog.Details(code)
}
