// Studypath - Prerequisite-Aware Course Recommendation
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/studypath

/*
Package middleware provides HTTP middleware components for the API server.

Key Components:

  - Request ID: UUID-based request tracking, honoring an upstream X-Request-ID
  - Prometheus Metrics: request count, latency and in-flight instrumentation
    labeled by chi route pattern
  - Access Log: one structured zerolog line per request

All middleware uses the http.HandlerFunc form and is adapted to chi's
func(http.Handler) http.Handler by the api package:

	r.Use(chiMiddleware(middleware.RequestID))
	r.Use(chiMiddleware(middleware.AccessLog))
	r.Route("/api/v1", func(r chi.Router) {
	    r.Use(chiMiddleware(middleware.PrometheusMetrics))
	})

Route patterns rather than raw paths are used as the endpoint label, so
/api/v1/courses/CS101 and /api/v1/courses/MATH201 share one series.
*/
package middleware
