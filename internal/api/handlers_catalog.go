// Studypath - Prerequisite-Aware Course Recommendation
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/studypath

package api

import (
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/tomtom215/studypath/internal/catalog"
	"github.com/tomtom215/studypath/internal/models"
)

// Majors handles GET /api/v1/majors.
func (h *Handler) Majors(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	cat := h.model.Catalog()

	majors := make([]models.MajorSummary, 0, len(cat.Majors()))
	for _, code := range cat.Majors() {
		mc, _ := cat.Major(code)
		majors = append(majors, models.MajorSummary{
			Code:      code,
			Core:      len(mc.Core),
			Electives: len(mc.Electives),
			Related:   len(mc.Related),
		})
	}

	respondSuccess(w, r, http.StatusOK, majors, start, 0)
}

// MajorCourses handles GET /api/v1/majors/{major}/courses.
func (h *Handler) MajorCourses(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	major := strings.ToUpper(strings.TrimSpace(chi.URLParam(r, "major")))

	mc, ok := h.model.Catalog().Major(major)
	if !ok {
		respondError(w, http.StatusNotFound, "NOT_FOUND", "Major not found", nil)
		return
	}

	respondSuccess(w, r, http.StatusOK, models.MajorCoursesResponse{
		Major:     mc.Major,
		Core:      h.detailsOf(mc.Core),
		Electives: h.detailsOf(mc.Electives),
		Related:   h.detailsOf(mc.Related),
	}, start, 0)
}

// Course handles GET /api/v1/courses/{code}.
func (h *Handler) Course(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	code := chi.URLParam(r, "code")

	detail, err := h.model.Details(code)
	if err != nil {
		if errors.Is(err, catalog.ErrCourseNotFound) {
			respondError(w, http.StatusNotFound, "NOT_FOUND", "Course not found", nil)
			return
		}
		respondError(w, http.StatusInternalServerError, "INTERNAL_ERROR", "Failed to load course", err)
		return
	}

	respondSuccess(w, r, http.StatusOK, detail, start, 0)
}

// detailsOf resolves details for codes, keeping a bare record for any code
// the catalog cannot describe.
func (h *Handler) detailsOf(codes []string) []catalog.CourseDetail {
	out := make([]catalog.CourseDetail, 0, len(codes))
	for _, code := range codes {
		d, err := h.model.Details(code)
		if err != nil {
			d = catalog.CourseDetail{Code: code, Prerequisites: []string{}}
		}
		out = append(out, d)
	}
	return out
}
