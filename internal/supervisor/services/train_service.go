// Studypath - Prerequisite-Aware Course Recommendation
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/studypath

package services

import (
	"context"
	"errors"
	"time"

	"github.com/rs/zerolog"

	"github.com/tomtom215/studypath/internal/recommend"
)

// Rebuilder rebuilds the serving model. Satisfied by *recommend.Handle.
type Rebuilder interface {
	Rebuild(ctx context.Context) (recommend.Status, error)
}

// TrainServiceConfig holds configuration for the training service.
type TrainServiceConfig struct {
	// Interval between scheduled rebuilds. Zero or negative disables them;
	// the service then idles until shutdown.
	Interval time.Duration
}

// TrainService rebuilds the model on a fixed interval. A failed rebuild is
// logged and retried at the next tick; the previous model keeps serving.
type TrainService struct {
	model  Rebuilder
	config TrainServiceConfig
	logger zerolog.Logger
	name   string
}

// NewTrainService creates a new training service.
//
//nolint:gocritic // logger passed by value is acceptable for zerolog
func NewTrainService(model Rebuilder, cfg TrainServiceConfig, logger zerolog.Logger) *TrainService {
	return &TrainService{
		model:  model,
		config: cfg,
		logger: logger.With().Str("service", "train").Logger(),
		name:   "train-service",
	}
}

// Serve implements suture.Service.
func (s *TrainService) Serve(ctx context.Context) error {
	if s.config.Interval <= 0 {
		s.logger.Info().Msg("scheduled rebuilds disabled")
		<-ctx.Done()
		return ctx.Err()
	}

	s.logger.Info().Dur("interval", s.config.Interval).Msg("training service starting")

	ticker := time.NewTicker(s.config.Interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			s.logger.Info().Msg("training service shutting down")
			return ctx.Err()

		case <-ticker.C:
			s.rebuild(ctx)
		}
	}
}

func (s *TrainService) rebuild(ctx context.Context) {
	status, err := s.model.Rebuild(ctx)
	switch {
	case errors.Is(err, recommend.ErrTrainingInProgress):
		s.logger.Debug().Msg("scheduled rebuild skipped, another rebuild is running")
	case err != nil:
		s.logger.Warn().Err(err).Msg("scheduled rebuild failed")
	default:
		s.logger.Info().
			Int64("version", status.ModelVersion).
			Int("examples", status.ExampleCount).
			Msg("scheduled rebuild complete")
	}
}

// String returns the service name for logging.
func (s *TrainService) String() string {
	return s.name
}
