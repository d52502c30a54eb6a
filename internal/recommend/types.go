// Studypath - Prerequisite-Aware Course Recommendation
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/studypath

package recommend

import (
	"context"
	"errors"
	"time"

	"github.com/tomtom215/studypath/internal/catalog"
)

// Errors returned by model construction and rebuilds.
var (
	ErrEmptyCorpus        = errors.New("training corpus is empty")
	ErrTrainingInProgress = errors.New("training already in progress")
	ErrUnknownDefault     = errors.New("default major is not in the catalog")
)

// GenericFallback is appended when neither neighbors nor the rule scan fill
// the requested number of courses.
var GenericFallback = []string{"GEN101", "GEN102", "GEN201"}

// StudentProfile describes a student's academic progress.
type StudentProfile struct {
	// Major is the student's declared major code.
	Major string `json:"major"`

	// Semester is the current semester, starting at 1.
	Semester int `json:"semester"`

	// GPA is the grade point average on a 4.0 scale.
	GPA float64 `json:"gpa"`

	// CompletedCourses has set semantics; order records completion order.
	CompletedCourses []string `json:"completed_courses"`

	// Grades maps completed course codes to a numeric score (60-100).
	Grades map[string]float64 `json:"grades,omitempty"`
}

// completedSet returns the normalized completed codes as a set.
//
//nolint:gocritic // hugeParam
func (p StudentProfile) completedSet() map[string]struct{} {
	out := make(map[string]struct{}, len(p.CompletedCourses))
	for _, c := range p.CompletedCourses {
		code := catalog.NormalizeCode(c)
		if code != "" {
			out[code] = struct{}{}
		}
	}
	return out
}

// TrainingExample is one synthetic student and the courses it should take next.
type TrainingExample struct {
	StudentID   string         `json:"student_id"`
	Profile     StudentProfile `json:"profile"`
	NextCourses []string       `json:"next_courses"`
}

// Stage names the policy step that produced a recommendation.
type Stage string

const (
	// StageColdStart recommends core courses to students with no history.
	StageColdStart Stage = "cold_start"
	// StageNeighbor recommends courses taken next by similar students.
	StageNeighbor Stage = "neighbor"
	// StageRule recommends courses from the eligibility scan.
	StageRule Stage = "rule"
	// StageFallback pads with generic courses.
	StageFallback Stage = "fallback"
)

// Stages lists every stage in policy order.
var Stages = []Stage{StageColdStart, StageNeighbor, StageRule, StageFallback}

// Recommendation is a single recommended course.
type Recommendation struct {
	Code  string `json:"code"`
	Stage Stage  `json:"stage"`
}

// Result is a recommendation list plus how it was produced.
type Result struct {
	// Major is the major as given by the caller.
	Major string `json:"major"`

	// LookupMajor is the major used for catalog lookups.
	LookupMajor string `json:"lookup_major"`

	// MajorSubstituted is true when Major was unknown and LookupMajor is the default.
	MajorSubstituted bool `json:"major_substituted"`

	// Limit is the effective limit after defaulting and clamping.
	Limit int `json:"limit"`

	// Recommendations in rank order.
	Recommendations []Recommendation `json:"recommendations"`

	// ModelVersion identifies the model that produced the result.
	ModelVersion int64 `json:"model_version"`
}

// Codes returns the recommended course codes in order.
func (r *Result) Codes() []string {
	out := make([]string, len(r.Recommendations))
	for i, rec := range r.Recommendations {
		out[i] = rec.Code
	}
	return out
}

// Status represents the current model and training state.
type Status struct {
	// ModelVersion is the current model version, starting at 1.
	ModelVersion int64 `json:"model_version"`

	// TrainedAt is when the current model was built.
	TrainedAt time.Time `json:"trained_at"`

	// ExampleCount is the size of the training corpus.
	ExampleCount int `json:"example_count"`

	// CourseCount is the number of known courses.
	CourseCount int `json:"course_count"`

	// Majors lists the catalog majors.
	Majors []string `json:"majors"`

	// Seed is the seed of the current corpus, or zero for a loaded corpus.
	Seed int64 `json:"seed"`

	// IsTraining indicates whether a rebuild is in progress.
	IsTraining bool `json:"is_training"`

	// LastTrainingDurationMS is how long the last rebuild took.
	LastTrainingDurationMS int64 `json:"last_training_duration_ms"`

	// LastError contains the last rebuild error, if any.
	LastError string `json:"last_error,omitempty"`
}

// CorpusStore persists training corpora. Implemented by the storage backends.
type CorpusStore interface {
	// SaveCorpus replaces the stored corpus.
	SaveCorpus(ctx context.Context, examples []TrainingExample) error

	// LoadCorpus returns the stored corpus, or an empty slice if none is stored.
	LoadCorpus(ctx context.Context) ([]TrainingExample, error)
}
