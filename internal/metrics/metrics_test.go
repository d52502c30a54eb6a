// Studypath - Prerequisite-Aware Course Recommendation
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/studypath

package metrics

import (
	"errors"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	io_prometheus_client "github.com/prometheus/client_model/go"
)

// getCounterValue extracts the value from a Prometheus counter
func getCounterValue(t *testing.T, counter prometheus.Counter) float64 {
	t.Helper()
	var m io_prometheus_client.Metric
	if err := counter.Write(&m); err != nil {
		t.Fatalf("write counter: %v", err)
	}
	return m.GetCounter().GetValue()
}

// getGaugeValue extracts the value from a Prometheus gauge
func getGaugeValue(t *testing.T, gauge prometheus.Gauge) float64 {
	t.Helper()
	var m io_prometheus_client.Metric
	if err := gauge.Write(&m); err != nil {
		t.Fatalf("write gauge: %v", err)
	}
	return m.GetGauge().GetValue()
}

// getHistogramCount extracts the sample count from a histogram
func getHistogramCount(t *testing.T, h prometheus.Observer) uint64 {
	t.Helper()
	metric, ok := h.(prometheus.Metric)
	if !ok {
		t.Fatal("observer is not a metric")
	}
	var m io_prometheus_client.Metric
	if err := metric.Write(&m); err != nil {
		t.Fatalf("write histogram: %v", err)
	}
	return m.GetHistogram().GetSampleCount()
}

func TestRecordAPIRequest(t *testing.T) {
	counter := APIRequestsTotal.WithLabelValues("GET", "/api/v1/majors", "200")
	hist := APIRequestDuration.WithLabelValues("GET", "/api/v1/majors")
	before := getCounterValue(t, counter)
	beforeCount := getHistogramCount(t, hist)

	RecordAPIRequest("GET", "/api/v1/majors", "200", 3*time.Millisecond)

	if got := getCounterValue(t, counter); got != before+1 {
		t.Errorf("api_requests_total = %v, want %v", got, before+1)
	}
	if got := getHistogramCount(t, hist); got != beforeCount+1 {
		t.Errorf("api_request_duration_seconds count = %d, want %d", got, beforeCount+1)
	}
}

func TestTrackActiveRequest(t *testing.T) {
	before := getGaugeValue(t, APIActiveRequests)
	TrackActiveRequest(true)
	if got := getGaugeValue(t, APIActiveRequests); got != before+1 {
		t.Errorf("after inc = %v, want %v", got, before+1)
	}
	TrackActiveRequest(false)
	if got := getGaugeValue(t, APIActiveRequests); got != before {
		t.Errorf("after dec = %v, want %v", got, before)
	}
}

func TestRecordRecommendation(t *testing.T) {
	tests := []struct {
		name        string
		stages      []string
		substituted bool
		outcome     string
	}{
		{"cold start", []string{"cold_start", "cold_start"}, false, OutcomeColdStart},
		{"neighbor and rule", []string{"neighbor", "rule"}, false, OutcomeFull},
		{"padded", []string{"rule", "fallback"}, true, OutcomePadded},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			outcome := RecommendationRequests.WithLabelValues(tt.outcome)
			first := RecommendationsTotal.WithLabelValues(tt.stages[0])
			beforeOutcome := getCounterValue(t, outcome)
			beforeFirst := getCounterValue(t, first)
			beforeSubs := getCounterValue(t, MajorSubstitutions)

			RecordRecommendation(tt.stages, tt.substituted)

			if got := getCounterValue(t, outcome); got != beforeOutcome+1 {
				t.Errorf("outcome %s = %v, want %v", tt.outcome, got, beforeOutcome+1)
			}
			wantFirst := beforeFirst
			for _, s := range tt.stages {
				if s == tt.stages[0] {
					wantFirst++
				}
			}
			if got := getCounterValue(t, first); got != wantFirst {
				t.Errorf("stage %s = %v, want %v", tt.stages[0], got, wantFirst)
			}
			wantSubs := beforeSubs
			if tt.substituted {
				wantSubs++
			}
			if got := getCounterValue(t, MajorSubstitutions); got != wantSubs {
				t.Errorf("substitutions = %v, want %v", got, wantSubs)
			}
		})
	}
}

func TestRecordCacheLookup(t *testing.T) {
	hits := RecommendationCacheLookups.WithLabelValues("hit")
	misses := RecommendationCacheLookups.WithLabelValues("miss")
	beforeHits, beforeMisses := getCounterValue(t, hits), getCounterValue(t, misses)

	RecordCacheLookup(true)
	RecordCacheLookup(false)
	RecordCacheLookup(false)

	if got := getCounterValue(t, hits) - beforeHits; got != 1 {
		t.Errorf("hits delta = %v, want 1", got)
	}
	if got := getCounterValue(t, misses) - beforeMisses; got != 2 {
		t.Errorf("misses delta = %v, want 2", got)
	}
}

func TestRecordTraining(t *testing.T) {
	success := TrainingRuns.WithLabelValues(TrainingSuccess)
	failure := TrainingRuns.WithLabelValues(TrainingFailure)
	skipped := TrainingRuns.WithLabelValues(TrainingSkipped)
	beforeS, beforeF, beforeK := getCounterValue(t, success), getCounterValue(t, failure), getCounterValue(t, skipped)
	beforeCount := getHistogramCount(t, TrainingDuration)

	RecordTraining(200*time.Millisecond, nil)
	RecordTraining(time.Second, errors.New("empty corpus"))
	RecordTrainingSkipped()

	if got := getCounterValue(t, success); got != beforeS+1 {
		t.Errorf("success = %v, want %v", got, beforeS+1)
	}
	if got := getCounterValue(t, failure); got != beforeF+1 {
		t.Errorf("failure = %v, want %v", got, beforeF+1)
	}
	if got := getCounterValue(t, skipped); got != beforeK+1 {
		t.Errorf("skipped = %v, want %v", got, beforeK+1)
	}
	if got := getHistogramCount(t, TrainingDuration); got != beforeCount+2 {
		t.Errorf("duration samples = %d, want %d", got, beforeCount+2)
	}
}

func TestSetModel(t *testing.T) {
	SetModel(7, 1000)
	if got := getGaugeValue(t, ModelVersion); got != 7 {
		t.Errorf("model_version = %v, want 7", got)
	}
	if got := getGaugeValue(t, CorpusSize); got != 1000 {
		t.Errorf("model_corpus_size = %v, want 1000", got)
	}
}

func TestRecordStoreOperation(t *testing.T) {
	errs := StoreOperationErrors.WithLabelValues("duckdb", "load_corpus")
	before := getCounterValue(t, errs)

	RecordStoreOperation("duckdb", "load_corpus", time.Millisecond, nil)
	if got := getCounterValue(t, errs); got != before {
		t.Errorf("errors after success = %v, want %v", got, before)
	}
	RecordStoreOperation("duckdb", "load_corpus", time.Millisecond, errors.New("io"))
	if got := getCounterValue(t, errs); got != before+1 {
		t.Errorf("errors after failure = %v, want %v", got, before+1)
	}
}
