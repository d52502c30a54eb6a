// Studypath - Prerequisite-Aware Course Recommendation
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/studypath

package api

import (
	"time"

	"golang.org/x/time/rate"

	"github.com/tomtom215/studypath/internal/cache"
	"github.com/tomtom215/studypath/internal/models"
	"github.com/tomtom215/studypath/internal/recommend"
	"github.com/tomtom215/studypath/internal/store"
)

// HandlerConfig carries the settings the handlers need beyond their
// dependencies.
type HandlerConfig struct {
	// Version is reported by the health endpoint.
	Version string

	// Backend names the storage backend for health and metrics.
	Backend string

	// RetrainMinInterval spaces on-demand rebuilds. Zero disables throttling.
	RetrainMinInterval time.Duration

	// RequestTimeout bounds repository calls made while serving a request.
	RequestTimeout time.Duration

	// ResultCacheSize caps memoized recommendation responses. Zero uses
	// cache.DefaultCapacity; negative disables the cache.
	ResultCacheSize int

	// ResultCacheTTL bounds how long a memoized response is served.
	ResultCacheTTL time.Duration
}

// Handler contains dependencies for API handlers.
//
// Handler methods are split across files:
//   - handlers.go: Handler struct and constructor (this file)
//   - handlers_helpers.go: response and request helpers
//   - handlers_health.go: health endpoint
//   - handlers_catalog.go: majors and course details
//   - handlers_recommend.go: recommendations, students, status and retrain
type Handler struct {
	model          *recommend.Handle
	repo           store.Repository
	config         HandlerConfig
	retrainLimiter *rate.Limiter
	results        *cache.LRU[models.RecommendationResponse]
	startTime      time.Time
}

// NewHandler creates a handler serving model and reading students from repo.
//
//nolint:gocritic // hugeParam
func NewHandler(model *recommend.Handle, repo store.Repository, cfg HandlerConfig) *Handler {
	if cfg.Version == "" {
		cfg.Version = "dev"
	}
	if cfg.RequestTimeout <= 0 {
		cfg.RequestTimeout = 10 * time.Second
	}

	limit := rate.Inf
	if cfg.RetrainMinInterval > 0 {
		limit = rate.Every(cfg.RetrainMinInterval)
	}

	h := &Handler{
		model:          model,
		repo:           repo,
		config:         cfg,
		retrainLimiter: rate.NewLimiter(limit, 1),
		startTime:      time.Now(),
	}
	if cfg.ResultCacheSize >= 0 {
		h.results = cache.NewLRU[models.RecommendationResponse](cfg.ResultCacheSize, cfg.ResultCacheTTL)
	}
	return h
}
