// Studypath - Prerequisite-Aware Course Recommendation
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/studypath

package api

import (
	"context"
	"net/http"
	"time"

	"github.com/tomtom215/studypath/internal/models"
	"github.com/tomtom215/studypath/internal/store"
)

// healthPingTimeout bounds the storage probe.
const healthPingTimeout = 2 * time.Second

// Health handles GET /api/v1/health. The service is "degraded" when the
// repository does not answer a ping; the model keeps serving from memory.
func (h *Handler) Health(w http.ResponseWriter, r *http.Request) {
	start := time.Now()

	status := "healthy"
	if p, ok := h.repo.(store.Pinger); ok {
		ctx, cancel := context.WithTimeout(r.Context(), healthPingTimeout)
		defer cancel()
		if err := p.Ping(ctx); err != nil {
			status = "degraded"
		}
	}

	version := h.model.Status().ModelVersion
	respondSuccess(w, r, http.StatusOK, models.HealthResponse{
		Status:       status,
		Version:      h.config.Version,
		Storage:      h.config.Backend,
		ModelVersion: version,
		Uptime:       time.Since(h.startTime).Round(time.Second).String(),
	}, start, version)
}
