// Studypath - Prerequisite-Aware Course Recommendation
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/studypath

package api

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/tomtom215/studypath/internal/catalog"
	"github.com/tomtom215/studypath/internal/logging"
	"github.com/tomtom215/studypath/internal/metrics"
	"github.com/tomtom215/studypath/internal/models"
	"github.com/tomtom215/studypath/internal/recommend"
	"github.com/tomtom215/studypath/internal/store"
)

// Recommend handles POST /api/v1/recommendations.
//
// Request body:
//
//	{"major": "CS", "semester": 3, "gpa": 3.4, "completed_courses": ["CS101", "CS102"], "limit": 5}
//
// A zero limit uses the configured default; larger limits are capped.
func (h *Handler) Recommend(w http.ResponseWriter, r *http.Request) {
	start := time.Now()

	var req models.RecommendationRequest
	if err := decodeJSONBody(w, r, &req); err != nil {
		respondError(w, http.StatusBadRequest, "INVALID_REQUEST", "Invalid request body: "+err.Error(), nil)
		return
	}
	if apiErr := validateRequest(&req); apiErr != nil {
		respondAPIError(w, http.StatusBadRequest, apiErr)
		return
	}

	resp := h.recommend(req.Profile(), req.Limit)
	respondSuccess(w, r, http.StatusOK, resp, start, resp.ModelVersion)
}

// StudentRecommendations handles GET /api/v1/students/{id}/recommendations.
// Only completed enrollments count toward the student's history.
func (h *Handler) StudentRecommendations(w http.ResponseWriter, r *http.Request) {
	start := time.Now()

	limit, ok := getIntParam(r, "limit", 0)
	if !ok || limit < 0 {
		respondError(w, http.StatusBadRequest, "VALIDATION_ERROR", "limit must be a non-negative integer", nil)
		return
	}

	student, found := h.loadStudent(w, r)
	if !found {
		return
	}

	resp := h.recommend(student.Profile(), limit)
	resp.StudentID = student.ID
	respondSuccess(w, r, http.StatusOK, resp, start, resp.ModelVersion)
}

// Student handles GET /api/v1/students/{id}.
func (h *Handler) Student(w http.ResponseWriter, r *http.Request) {
	start := time.Now()

	student, found := h.loadStudent(w, r)
	if !found {
		return
	}
	if student.Enrollments == nil {
		student.Enrollments = []store.Enrollment{}
	}

	respondSuccess(w, r, http.StatusOK, student, start, 0)
}

// ModelStatus handles GET /api/v1/recommendations/status.
func (h *Handler) ModelStatus(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	status := h.model.Status()
	respondSuccess(w, r, http.StatusOK, models.NewModelStatusResponse(status), start, status.ModelVersion)
}

// Retrain handles POST /api/v1/recommendations/retrain. The rebuild runs
// synchronously and is not canceled if the client disconnects.
func (h *Handler) Retrain(w http.ResponseWriter, r *http.Request) {
	start := time.Now()

	if h.model.IsTraining() {
		metrics.RecordTrainingSkipped()
		respondError(w, http.StatusConflict, "TRAINING_IN_PROGRESS", "Training is already in progress", nil)
		return
	}
	if !h.retrainLimiter.Allow() {
		w.Header().Set("Retry-After", retryAfter(h.config.RetrainMinInterval))
		respondError(w, http.StatusTooManyRequests, "RATE_LIMIT_EXCEEDED", "Retrain requested too soon", nil)
		return
	}

	logging.Ctx(r.Context()).Info().Msg("on-demand model rebuild requested")

	status, err := h.model.Rebuild(context.WithoutCancel(r.Context()))
	if err != nil {
		if errors.Is(err, recommend.ErrTrainingInProgress) {
			respondError(w, http.StatusConflict, "TRAINING_IN_PROGRESS", "Training is already in progress", nil)
			return
		}
		respondError(w, http.StatusInternalServerError, "TRAINING_FAILED", "Model rebuild failed; the previous model is still serving", err)
		return
	}

	respondSuccess(w, r, http.StatusOK, models.NewModelStatusResponse(status), start, status.ModelVersion)
}

// recommend serves from the result cache when the current model already
// answered the same profile and limit.
//
//nolint:gocritic // hugeParam
func (h *Handler) recommend(profile recommend.StudentProfile, limit int) models.RecommendationResponse {
	if h.results != nil {
		if resp, ok := h.results.Get(resultKey(h.model.Current().Version(), profile, limit)); ok {
			metrics.RecordCacheLookup(true)
			metrics.RecordRecommendation(stagesOf(resp.Recommendations), resp.MajorSubstituted)
			return resp
		}
		metrics.RecordCacheLookup(false)
	}

	res := h.model.Explain(profile, limit)
	resp := models.NewRecommendationResponse(res, h.model.Details)
	metrics.RecordRecommendation(stagesOf(resp.Recommendations), res.MajorSubstituted)

	if h.results != nil {
		h.results.Add(resultKey(res.ModelVersion, profile, limit), resp)
	}
	return resp
}

func stagesOf(recs []models.RecommendedCourse) []string {
	stages := make([]string, len(recs))
	for i, rec := range recs {
		stages[i] = string(rec.Stage)
	}
	return stages
}

// resultKey identifies a recommendation request for one model version.
// Completed courses are a set and grades a map, so both are sorted.
//
//nolint:gocritic // hugeParam
func resultKey(version int64, profile recommend.StudentProfile, limit int) string {
	completed := make([]string, 0, len(profile.CompletedCourses))
	for _, c := range profile.CompletedCourses {
		completed = append(completed, catalog.NormalizeCode(c))
	}
	sort.Strings(completed)

	graded := make([]string, 0, len(profile.Grades))
	for code := range profile.Grades {
		graded = append(graded, code)
	}
	sort.Strings(graded)

	var b strings.Builder
	fmt.Fprintf(&b, "v%d|%s|%d|%g|%d|", version, profile.Major, profile.Semester, profile.GPA, limit)
	b.WriteString(strings.Join(completed, ","))
	for _, code := range graded {
		fmt.Fprintf(&b, "|%s=%g", code, profile.Grades[code])
	}
	return b.String()
}

// loadStudent loads the student named by the id URL parameter, writing the
// error response itself when it returns false.
func (h *Handler) loadStudent(w http.ResponseWriter, r *http.Request) (store.StudentRecord, bool) {
	id := chi.URLParam(r, "id")
	if id == "" || len(id) > 64 {
		respondError(w, http.StatusBadRequest, "INVALID_STUDENT_ID", "Invalid student ID", nil)
		return store.StudentRecord{}, false
	}

	ctx, cancel := context.WithTimeout(r.Context(), h.config.RequestTimeout)
	defer cancel()

	student, err := h.repo.LoadStudent(ctx, id)
	if err != nil {
		if errors.Is(err, store.ErrStudentNotFound) {
			respondError(w, http.StatusNotFound, "NOT_FOUND", "Student not found", nil)
			return store.StudentRecord{}, false
		}
		respondError(w, http.StatusInternalServerError, "INTERNAL_ERROR", "Failed to load student", err)
		return store.StudentRecord{}, false
	}
	return student, true
}

func retryAfter(d time.Duration) string {
	secs := int(d.Round(time.Second) / time.Second)
	if secs < 1 {
		secs = 1
	}
	return strconv.Itoa(secs)
}
