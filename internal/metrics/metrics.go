// Studypath - Prerequisite-Aware Course Recommendation
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/studypath

package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// API Endpoint Metrics
	APIRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "api_requests_total",
			Help: "Total number of API requests",
		},
		[]string{"method", "endpoint", "status_code"},
	)

	APIRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "api_request_duration_seconds",
			Help:    "API request duration in seconds",
			Buckets: []float64{0.001, 0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5},
		},
		[]string{"method", "endpoint"},
	)

	APIActiveRequests = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "api_active_requests",
			Help: "Current number of active API requests",
		},
	)

	APIRateLimitHits = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "api_rate_limit_hits_total",
			Help: "Total number of rate limit rejections",
		},
		[]string{"endpoint"},
	)

	// Recommendation Metrics
	RecommendationsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "recommendations_total",
			Help: "Total number of recommended courses by policy stage",
		},
		[]string{"stage"},
	)

	RecommendationRequests = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "recommendation_requests_total",
			Help: "Total number of recommendation requests by outcome",
		},
		[]string{"outcome"},
	)

	MajorSubstitutions = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "recommendation_major_substitutions_total",
			Help: "Requests whose major was unknown and replaced by the default major",
		},
	)

	RecommendationCacheLookups = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "recommendation_cache_lookups_total",
			Help: "Recommendation result cache lookups by result (hit, miss)",
		},
		[]string{"result"},
	)

	// Training Metrics
	TrainingDuration = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "model_training_duration_seconds",
			Help:    "Duration of model rebuilds in seconds",
			Buckets: []float64{0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10, 30, 60},
		},
	)

	TrainingRuns = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "model_training_runs_total",
			Help: "Total number of model rebuilds by result",
		},
		[]string{"result"},
	)

	ModelVersion = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "model_version",
			Help: "Version of the model currently serving",
		},
	)

	CorpusSize = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "model_corpus_size",
			Help: "Number of training examples behind the serving model",
		},
	)

	// Storage Metrics
	StoreOperationDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "store_operation_duration_seconds",
			Help:    "Duration of repository operations in seconds",
			Buckets: []float64{0.0005, 0.001, 0.005, 0.01, 0.05, 0.1, 0.5, 1, 5},
		},
		[]string{"backend", "operation"},
	)

	StoreOperationErrors = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "store_operation_errors_total",
			Help: "Total number of failed repository operations",
		},
		[]string{"backend", "operation"},
	)
)

// Recommendation outcomes.
const (
	OutcomeFull      = "full"
	OutcomePadded    = "padded"
	OutcomeColdStart = "cold_start"
)

// Training results.
const (
	TrainingSuccess = "success"
	TrainingFailure = "failure"
	TrainingSkipped = "skipped"
)

// RecordAPIRequest records an API request metric
func RecordAPIRequest(method, endpoint, statusCode string, duration time.Duration) {
	APIRequestsTotal.WithLabelValues(method, endpoint, statusCode).Inc()
	APIRequestDuration.WithLabelValues(method, endpoint).Observe(duration.Seconds())
}

// TrackActiveRequest tracks active API requests
func TrackActiveRequest(inc bool) {
	if inc {
		APIActiveRequests.Inc()
	} else {
		APIActiveRequests.Dec()
	}
}

// RecordRateLimitHit records a request rejected by rate limiting.
func RecordRateLimitHit(endpoint string) {
	APIRateLimitHits.WithLabelValues(endpoint).Inc()
}

// RecordRecommendation records one served recommendation list. stages holds
// the stage of each returned course.
func RecordRecommendation(stages []string, substituted bool) {
	padded, coldStart := false, false
	for _, s := range stages {
		RecommendationsTotal.WithLabelValues(s).Inc()
		switch s {
		case "fallback":
			padded = true
		case "cold_start":
			coldStart = true
		}
	}

	switch {
	case coldStart:
		RecommendationRequests.WithLabelValues(OutcomeColdStart).Inc()
	case padded:
		RecommendationRequests.WithLabelValues(OutcomePadded).Inc()
	default:
		RecommendationRequests.WithLabelValues(OutcomeFull).Inc()
	}
	if substituted {
		MajorSubstitutions.Inc()
	}
}

// RecordCacheLookup records a recommendation cache hit or miss.
func RecordCacheLookup(hit bool) {
	if hit {
		RecommendationCacheLookups.WithLabelValues("hit").Inc()
		return
	}
	RecommendationCacheLookups.WithLabelValues("miss").Inc()
}

// RecordTraining records a finished rebuild.
func RecordTraining(duration time.Duration, err error) {
	TrainingDuration.Observe(duration.Seconds())
	if err != nil {
		TrainingRuns.WithLabelValues(TrainingFailure).Inc()
		return
	}
	TrainingRuns.WithLabelValues(TrainingSuccess).Inc()
}

// RecordTrainingSkipped records a rebuild refused because one was running.
func RecordTrainingSkipped() {
	TrainingRuns.WithLabelValues(TrainingSkipped).Inc()
}

// SetModel publishes the serving model's version and corpus size.
func SetModel(version int64, corpusSize int) {
	ModelVersion.Set(float64(version))
	CorpusSize.Set(float64(corpusSize))
}

// RecordStoreOperation records a repository call.
func RecordStoreOperation(backend, operation string, duration time.Duration, err error) {
	StoreOperationDuration.WithLabelValues(backend, operation).Observe(duration.Seconds())
	if err != nil {
		StoreOperationErrors.WithLabelValues(backend, operation).Inc()
	}
}
