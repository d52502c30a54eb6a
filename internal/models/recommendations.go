// Studypath - Prerequisite-Aware Course Recommendation
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/studypath

package models

import (
	"time"

	"github.com/tomtom215/studypath/internal/catalog"
	"github.com/tomtom215/studypath/internal/recommend"
)

// RecommendationRequest is the body of POST /api/v1/recommendations.
type RecommendationRequest struct {
	Major            string             `json:"major" validate:"required,major_code"`
	Semester         int                `json:"semester" validate:"gte=0,lte=16"`
	GPA              float64            `json:"gpa" validate:"gte=0,lte=4"`
	CompletedCourses []string           `json:"completed_courses" validate:"max=200,dive,course_code"`
	Grades           map[string]float64 `json:"grades,omitempty" validate:"max=200,dive,gte=0,lte=100"`
	Limit            int                `json:"limit" validate:"gte=0,lte=100"`
}

// Profile converts the request into a recommendation profile.
func (r *RecommendationRequest) Profile() recommend.StudentProfile {
	return recommend.StudentProfile{
		Major:            r.Major,
		Semester:         r.Semester,
		GPA:              r.GPA,
		CompletedCourses: r.CompletedCourses,
		Grades:           r.Grades,
	}
}

// RecommendedCourse is one recommendation with the stage that produced it.
type RecommendedCourse struct {
	Code   string                `json:"code"`
	Stage  recommend.Stage       `json:"stage"`
	Detail *catalog.CourseDetail `json:"detail,omitempty"`
}

// RecommendationResponse is the data of a recommendation response.
type RecommendationResponse struct {
	StudentID        string              `json:"student_id,omitempty"`
	Major            string              `json:"major"`
	LookupMajor      string              `json:"lookup_major"`
	MajorSubstituted bool                `json:"major_substituted"`
	Limit            int                 `json:"limit"`
	Courses          []string            `json:"courses"`
	Recommendations  []RecommendedCourse `json:"recommendations"`
	ModelVersion     int64               `json:"model_version"`
}

// NewRecommendationResponse builds the response body from a model result.
// lookup resolves details; codes it cannot resolve are listed without one.
//
//nolint:gocritic // hugeParam
func NewRecommendationResponse(res recommend.Result, lookup func(string) (catalog.CourseDetail, error)) RecommendationResponse {
	out := RecommendationResponse{
		Major:            res.Major,
		LookupMajor:      res.LookupMajor,
		MajorSubstituted: res.MajorSubstituted,
		Limit:            res.Limit,
		Courses:          res.Codes(),
		Recommendations:  make([]RecommendedCourse, 0, len(res.Recommendations)),
		ModelVersion:     res.ModelVersion,
	}
	for _, rec := range res.Recommendations {
		item := RecommendedCourse{Code: rec.Code, Stage: rec.Stage}
		if lookup != nil {
			if d, err := lookup(rec.Code); err == nil {
				item.Detail = &d
			}
		}
		out.Recommendations = append(out.Recommendations, item)
	}
	return out
}

// MajorSummary lists a major and its course counts.
type MajorSummary struct {
	Code      string `json:"code"`
	Core      int    `json:"core"`
	Electives int    `json:"electives"`
	Related   int    `json:"related"`
}

// MajorCoursesResponse is the data of GET /api/v1/majors/{major}/courses.
type MajorCoursesResponse struct {
	Major     string                 `json:"major"`
	Core      []catalog.CourseDetail `json:"core"`
	Electives []catalog.CourseDetail `json:"electives"`
	Related   []catalog.CourseDetail `json:"related"`
}

// ModelStatusResponse is the data of GET /api/v1/recommendations/status.
type ModelStatusResponse struct {
	ModelVersion           int64      `json:"model_version"`
	TrainedAt              *time.Time `json:"trained_at,omitempty"`
	ExampleCount           int        `json:"example_count"`
	CourseCount            int        `json:"course_count"`
	Majors                 []string   `json:"majors"`
	Seed                   int64      `json:"seed"`
	IsTraining             bool       `json:"is_training"`
	LastTrainingDurationMS int64      `json:"last_training_duration_ms"`
	LastError              string     `json:"last_error,omitempty"`
}

// NewModelStatusResponse converts a handle status.
//
//nolint:gocritic // hugeParam
func NewModelStatusResponse(s recommend.Status) ModelStatusResponse {
	out := ModelStatusResponse{
		ModelVersion:           s.ModelVersion,
		ExampleCount:           s.ExampleCount,
		CourseCount:            s.CourseCount,
		Majors:                 s.Majors,
		Seed:                   s.Seed,
		IsTraining:             s.IsTraining,
		LastTrainingDurationMS: s.LastTrainingDurationMS,
		LastError:              s.LastError,
	}
	if !s.TrainedAt.IsZero() {
		t := s.TrainedAt
		out.TrainedAt = &t
	}
	return out
}

// HealthResponse is the data of GET /api/v1/health.
type HealthResponse struct {
	Status       string `json:"status"`
	Version      string `json:"version"`
	Storage      string `json:"storage"`
	ModelVersion int64  `json:"model_version"`
	Uptime       string `json:"uptime"`
}
