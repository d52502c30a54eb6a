// Studypath - Prerequisite-Aware Course Recommendation
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/studypath

package recommend

import (
	"context"
	"fmt"
	"sync"
	"sync/atomic"
	"time"

	"github.com/rs/zerolog"

	"github.com/tomtom215/studypath/internal/catalog"
	"github.com/tomtom215/studypath/internal/metrics"
)

// Handle owns the current Model and replaces it wholesale on rebuild.
// Readers never block: Current loads the model through an atomic pointer.
type Handle struct {
	config  *Config
	logger  zerolog.Logger
	catalog *catalog.Catalog
	store   CorpusStore

	current atomic.Pointer[Model]

	// trainMu serializes rebuilds; it is only ever acquired with TryLock.
	trainMu    sync.Mutex
	training   atomic.Bool
	generation int64

	statusMu       sync.RWMutex
	lastError      string
	lastDurationMS int64
}

// NewHandle trains the initial model. When cfg.Training.ReuseCorpus is set
// and store holds a corpus it is used as-is; otherwise a population is
// generated from cfg.Seed and saved to store. store may be nil.
//
//nolint:gocritic // logger passed by value is acceptable for zerolog
func NewHandle(ctx context.Context, cfg *Config, cat *catalog.Catalog, store CorpusStore, logger zerolog.Logger) (*Handle, error) {
	if cfg == nil {
		cfg = DefaultConfig()
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}
	if cat == nil {
		return nil, fmt.Errorf("%w: nil catalog", catalog.ErrInvalidCatalog)
	}

	h := &Handle{
		config:  cfg,
		logger:  logger.With().Str("component", "recommend").Logger(),
		catalog: cat,
		store:   store,
	}

	start := time.Now()
	model, err := h.initialModel(ctx)
	if err != nil {
		return nil, err
	}
	h.current.Store(model)
	h.setStatus(time.Since(start), nil)
	metrics.SetModel(model.version, len(model.examples))

	h.logger.Info().
		Int64("version", model.version).
		Int("examples", len(model.examples)).
		Int("courses", cat.Size()).
		Dur("duration", time.Since(start)).
		Msg("recommendation model ready")

	return h, nil
}

func (h *Handle) initialModel(ctx context.Context) (*Model, error) {
	if h.config.Training.ReuseCorpus && h.store != nil {
		examples, err := h.store.LoadCorpus(ctx)
		if err != nil {
			return nil, fmt.Errorf("load corpus: %w", err)
		}
		if len(examples) > 0 {
			h.logger.Info().Int("examples", len(examples)).Msg("reusing stored training corpus")
			return NewModel(ctx, h.config, h.catalog, examples, 1, h.logger)
		}
	}
	return h.train(ctx, 1)
}

// train generates the population for the current generation, builds a model
// and saves the corpus.
func (h *Handle) train(ctx context.Context, version int64) (*Model, error) {
	seed := h.config.Seed + h.generation
	examples, err := Generate(ctx, h.catalog, h.config.PopulationSize, catalog.NewSource(seed))
	if err != nil {
		return nil, err
	}

	model, err := NewModel(ctx, h.config, h.catalog, examples, version, h.logger)
	if err != nil {
		return nil, err
	}
	model.seed = seed

	if h.store != nil {
		if err := h.store.SaveCorpus(ctx, examples); err != nil {
			return nil, fmt.Errorf("save corpus: %w", err)
		}
	}
	return model, nil
}

// Rebuild trains a new model on a freshly generated population and swaps it
// in. It returns ErrTrainingInProgress if another rebuild is running. On
// failure the previous model keeps serving.
func (h *Handle) Rebuild(ctx context.Context) (Status, error) {
	if !h.trainMu.TryLock() {
		metrics.RecordTrainingSkipped()
		return h.Status(), ErrTrainingInProgress
	}
	defer h.trainMu.Unlock()

	h.training.Store(true)
	defer h.training.Store(false)

	trainCtx, cancel := context.WithTimeout(ctx, h.config.Training.Timeout)
	defer cancel()

	start := time.Now()
	h.logger.Info().Msg("starting model rebuild")

	h.generation++
	model, err := h.train(trainCtx, h.Current().version+1)
	if err != nil {
		h.generation--
		h.setStatus(time.Since(start), err)
		metrics.RecordTraining(time.Since(start), err)
		h.logger.Error().Err(err).Msg("model rebuild failed, keeping previous model")
		return h.Status(), fmt.Errorf("rebuild: %w", err)
	}

	h.current.Store(model)
	h.setStatus(time.Since(start), nil)
	metrics.RecordTraining(time.Since(start), nil)
	metrics.SetModel(model.version, len(model.examples))

	h.logger.Info().
		Int64("version", model.version).
		Int64("seed", model.seed).
		Int("examples", len(model.examples)).
		Dur("duration", time.Since(start)).
		Msg("model rebuild complete")

	return h.Status(), nil
}

// Current returns the model currently serving requests.
func (h *Handle) Current() *Model {
	return h.current.Load()
}

// Catalog returns the catalog.
func (h *Handle) Catalog() *catalog.Catalog {
	return h.catalog
}

// Config returns the model configuration.
func (h *Handle) Config() *Config {
	return h.config
}

// Recommend delegates to the current model.
//
//nolint:gocritic // hugeParam
func (h *Handle) Recommend(profile StudentProfile, limit int) []string {
	return h.Current().Recommend(profile, limit)
}

// Explain delegates to the current model.
//
//nolint:gocritic // hugeParam
func (h *Handle) Explain(profile StudentProfile, limit int) Result {
	return h.Current().Explain(profile, limit)
}

// Details returns the course record for a code.
func (h *Handle) Details(code string) (catalog.CourseDetail, error) {
	return h.catalog.Details(code)
}

// IsTraining reports whether a rebuild is running.
func (h *Handle) IsTraining() bool {
	return h.training.Load()
}

// Status returns the current model and training state.
func (h *Handle) Status() Status {
	m := h.Current()

	h.statusMu.RLock()
	defer h.statusMu.RUnlock()

	return Status{
		ModelVersion:           m.version,
		TrainedAt:              m.trainedAt,
		ExampleCount:           len(m.examples),
		CourseCount:            h.catalog.Size(),
		Majors:                 h.catalog.Majors(),
		Seed:                   m.seed,
		IsTraining:             h.training.Load(),
		LastTrainingDurationMS: h.lastDurationMS,
		LastError:              h.lastError,
	}
}

func (h *Handle) setStatus(d time.Duration, err error) {
	h.statusMu.Lock()
	defer h.statusMu.Unlock()

	h.lastDurationMS = d.Milliseconds()
	h.lastError = ""
	if err != nil {
		h.lastError = err.Error()
	}
}
