// Studypath - Prerequisite-Aware Course Recommendation
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/studypath

/*
Package api provides the HTTP REST API layer for the recommendation service.

Key Components:

  - Router: chi route configuration and middleware stack
  - Handler: request handlers backed by a recommend.Handle and a store.Repository
  - Response formatting: the models.APIResponse envelope with metadata
  - Rate limiting: go-chi/httprate per client IP, plus a token bucket
    (golang.org/x/time/rate) spacing on-demand rebuilds
  - CORS: go-chi/cors
  - Result cache: internal/cache LRU of recommendation responses, keyed by
    model version and the normalized request

Endpoints:

	GET  /api/v1/health                           service and storage health
	GET  /api/v1/majors                           majors with course counts
	GET  /api/v1/majors/{major}/courses           a major's courses with details
	GET  /api/v1/courses/{code}                   course details (404 when unknown)
	POST /api/v1/recommendations                  recommend for a profile in the body
	GET  /api/v1/recommendations/status           model version and training state
	POST /api/v1/recommendations/retrain          rebuild the model now
	GET  /api/v1/students/{id}                    stored student with enrollments
	GET  /api/v1/students/{id}/recommendations    recommend for a stored student
	GET  /metrics                                 Prometheus metrics

Usage Example:

	handler := api.NewHandler(model, repo, api.HandlerConfig{
	    Version:            version,
	    Backend:            cfg.Storage.Backend,
	    RetrainMinInterval: cfg.Recommend.RetrainMinInterval,
	})
	router := api.NewRouter(handler, api.NewChiMiddlewareFromServer(&cfg.Server))
	srv := &http.Server{Addr: ":8080", Handler: router.Setup()}

Error Handling:

Errors use the envelope with status "error" and a machine-readable code:

	{
	  "status": "error",
	  "error": {"code": "NOT_FOUND", "message": "Course not found"}
	}
*/
package api
