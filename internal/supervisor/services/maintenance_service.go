// Studypath - Prerequisite-Aware Course Recommendation
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/studypath

package services

import (
	"context"
	"time"

	"github.com/rs/zerolog"
)

// Maintainer performs one round of storage upkeep. Satisfied by the Badger
// and DuckDB repositories.
type Maintainer interface {
	Maintain(ctx context.Context) error
}

// DefaultMaintenanceInterval is used when no interval is given.
const DefaultMaintenanceInterval = 10 * time.Minute

// MaintenanceService runs storage upkeep periodically in the data layer.
type MaintenanceService struct {
	store    Maintainer
	interval time.Duration
	logger   zerolog.Logger
	name     string
}

// NewMaintenanceService creates a maintenance service for store.
//
//nolint:gocritic // logger passed by value is acceptable for zerolog
func NewMaintenanceService(store Maintainer, interval time.Duration, logger zerolog.Logger) *MaintenanceService {
	if interval <= 0 {
		interval = DefaultMaintenanceInterval
	}
	return &MaintenanceService{
		store:    store,
		interval: interval,
		logger:   logger.With().Str("service", "maintenance").Logger(),
		name:     "storage-maintenance",
	}
}

// Serve implements suture.Service. Maintenance errors are logged, not
// returned: a failed pass is retried at the next tick.
func (s *MaintenanceService) Serve(ctx context.Context) error {
	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
			start := time.Now()
			if err := s.store.Maintain(ctx); err != nil {
				s.logger.Warn().Err(err).Msg("storage maintenance failed")
				continue
			}
			s.logger.Debug().Dur("duration", time.Since(start)).Msg("storage maintenance complete")
		}
	}
}

// String returns the service name for logging.
func (s *MaintenanceService) String() string {
	return s.name
}
