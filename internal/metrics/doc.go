// Studypath - Prerequisite-Aware Course Recommendation
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/studypath

/*
Package metrics provides Prometheus metrics for the recommendation service.

Metrics are registered with promauto on the default registry and exposed at
/metrics:

	curl http://localhost:8080/metrics

# Available Metrics

API:
  - api_requests_total{method,endpoint,status_code}
  - api_request_duration_seconds{method,endpoint}
  - api_active_requests
  - api_rate_limit_hits_total{endpoint}

Recommendations:
  - recommendations_total{stage}: courses served, by policy stage
  - recommendation_requests_total{outcome}: full, padded or cold_start
  - recommendation_major_substitutions_total
  - recommendation_cache_lookups_total{result}: hit or miss

Training:
  - model_training_duration_seconds
  - model_training_runs_total{result}: success, failure or skipped
  - model_version
  - model_corpus_size

Storage:
  - store_operation_duration_seconds{backend,operation}
  - store_operation_errors_total{backend,operation}
*/
package metrics
