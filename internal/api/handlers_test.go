// Studypath - Prerequisite-Aware Course Recommendation
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/studypath

package api

import (
	"net/http"
	"strings"
	"testing"
	"time"

	"github.com/tomtom215/studypath/internal/catalog"
	"github.com/tomtom215/studypath/internal/models"
	"github.com/tomtom215/studypath/internal/recommend"
	"github.com/tomtom215/studypath/internal/store"
)

func TestHealth(t *testing.T) {
	t.Parallel()
	srv := newTestServer(t)

	rec, env := srv.do(t, http.MethodGet, "/api/v1/health", "")
	wantStatus(t, rec, http.StatusOK)

	var health models.HealthResponse
	decodeData(t, env, &health)
	if health.Status != "healthy" || health.Storage != "memory" || health.Version != "test" {
		t.Errorf("health = %+v", health)
	}
	if health.ModelVersion != 1 {
		t.Errorf("ModelVersion = %d, want 1", health.ModelVersion)
	}
	if rec.Header().Get("X-Request-ID") == "" || env.Metadata.RequestID != rec.Header().Get("X-Request-ID") {
		t.Errorf("request id header %q, metadata %q", rec.Header().Get("X-Request-ID"), env.Metadata.RequestID)
	}
}

func TestHealth_DegradedWhenStorageClosed(t *testing.T) {
	t.Parallel()
	srv := newTestServer(t)
	if err := srv.repo.Close(); err != nil {
		t.Fatal(err)
	}

	rec, env := srv.do(t, http.MethodGet, "/api/v1/health", "")
	wantStatus(t, rec, http.StatusOK)

	var health models.HealthResponse
	decodeData(t, env, &health)
	if health.Status != "degraded" {
		t.Errorf("Status = %q, want degraded", health.Status)
	}
}

func TestMajors(t *testing.T) {
	t.Parallel()
	srv := newTestServer(t)

	rec, env := srv.do(t, http.MethodGet, "/api/v1/majors", "")
	wantStatus(t, rec, http.StatusOK)

	var majors []models.MajorSummary
	decodeData(t, env, &majors)
	if len(majors) != len(catalog.DefaultMajors) {
		t.Fatalf("got %d majors, want %d", len(majors), len(catalog.DefaultMajors))
	}
	for i, m := range majors {
		if m.Code != catalog.DefaultMajors[i] {
			t.Errorf("majors[%d] = %s, want %s", i, m.Code, catalog.DefaultMajors[i])
		}
		if m.Core == 0 {
			t.Errorf("major %s has no core courses", m.Code)
		}
	}
}

func TestMajorCourses(t *testing.T) {
	t.Parallel()
	srv := newTestServer(t)

	tests := []struct {
		name   string
		major  string
		status int
	}{
		{name: "known", major: "CS", status: http.StatusOK},
		{name: "lowercase", major: "math", status: http.StatusOK},
		{name: "unknown", major: "ZZZ", status: http.StatusNotFound},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec, env := srv.do(t, http.MethodGet, "/api/v1/majors/"+tt.major+"/courses", "")
			wantStatus(t, rec, tt.status)
			if tt.status != http.StatusOK {
				wantErrorCode(t, env, "NOT_FOUND")
				return
			}

			var resp models.MajorCoursesResponse
			decodeData(t, env, &resp)
			want := srv.model.Catalog().Core(strings.ToUpper(tt.major))
			if len(resp.Core) != len(want) {
				t.Fatalf("got %d core courses, want %d", len(resp.Core), len(want))
			}
			for i, d := range resp.Core {
				if d.Code != want[i] || d.Type != "core" {
					t.Errorf("core[%d] = %s (%s), want %s (core)", i, d.Code, d.Type, want[i])
				}
			}
		})
	}
}

func TestCourse(t *testing.T) {
	t.Parallel()
	srv := newTestServer(t)

	rec, env := srv.do(t, http.MethodGet, "/api/v1/courses/cs101", "")
	wantStatus(t, rec, http.StatusOK)

	var d catalog.CourseDetail
	decodeData(t, env, &d)
	if d.Code != "CS101" || d.Name != "Introduction to Programming" || d.Synthesized {
		t.Errorf("detail = %+v", d)
	}

	rec, env = srv.do(t, http.MethodGet, "/api/v1/courses/XX999", "")
	wantStatus(t, rec, http.StatusNotFound)
	wantErrorCode(t, env, "NOT_FOUND")
}

func TestRecommend_ColdStart(t *testing.T) {
	t.Parallel()
	srv := newTestServer(t)

	rec, env := srv.do(t, http.MethodPost, "/api/v1/recommendations",
		`{"major":"CS","semester":1,"gpa":3.0,"completed_courses":[],"limit":3}`)
	wantStatus(t, rec, http.StatusOK)

	var resp models.RecommendationResponse
	decodeData(t, env, &resp)

	core := srv.model.Catalog().Core("CS")
	if len(resp.Courses) != 3 {
		t.Fatalf("Courses = %v, want 3", resp.Courses)
	}
	for i, r := range resp.Recommendations {
		if r.Stage != recommend.StageColdStart {
			t.Errorf("recommendations[%d].Stage = %s, want cold_start", i, r.Stage)
		}
		if r.Code != core[i] {
			t.Errorf("recommendations[%d] = %s, want %s", i, r.Code, core[i])
		}
		if r.Detail == nil || r.Detail.Code != r.Code {
			t.Errorf("recommendations[%d] missing detail", i)
		}
	}
	if env.Metadata.ModelVersion != 1 {
		t.Errorf("metadata model_version = %d, want 1", env.Metadata.ModelVersion)
	}
}

func TestRecommend_WithHistory(t *testing.T) {
	t.Parallel()
	srv := newTestServer(t)

	rec, env := srv.do(t, http.MethodPost, "/api/v1/recommendations",
		`{"major":"CS","semester":2,"gpa":3.2,"completed_courses":["CS101","MATH101"]}`)
	wantStatus(t, rec, http.StatusOK)

	var resp models.RecommendationResponse
	decodeData(t, env, &resp)
	if resp.Limit != 5 || len(resp.Courses) != 5 {
		t.Fatalf("Limit = %d, Courses = %v, want 5 courses", resp.Limit, resp.Courses)
	}
	seen := make(map[string]bool)
	for _, code := range resp.Courses {
		if code == "CS101" || code == "MATH101" {
			t.Errorf("recommended completed course %s", code)
		}
		if seen[code] {
			t.Errorf("duplicate recommendation %s", code)
		}
		seen[code] = true
	}
}

func TestRecommend_ResultCache(t *testing.T) {
	t.Parallel()
	srv := newTestServer(t)

	body := `{"major":"CS","semester":2,"gpa":3.2,"completed_courses":["CS101","MATH101"],"limit":4}`
	reordered := `{"major":"CS","semester":2,"gpa":3.2,"completed_courses":["MATH101","cs101"],"limit":4}`

	_, first := srv.do(t, http.MethodPost, "/api/v1/recommendations", body)
	_, second := srv.do(t, http.MethodPost, "/api/v1/recommendations", reordered)

	var a, b models.RecommendationResponse
	decodeData(t, first, &a)
	decodeData(t, second, &b)
	if strings.Join(a.Courses, ",") != strings.Join(b.Courses, ",") {
		t.Errorf("cached courses %v differ from %v", b.Courses, a.Courses)
	}
	if hits, misses, _ := srv.api.results.Stats(); hits != 1 || misses != 1 {
		t.Errorf("cache hits, misses = %d, %d, want 1, 1", hits, misses)
	}

	// A rebuild changes the model version and so the key.
	rec, _ := srv.do(t, http.MethodPost, "/api/v1/recommendations/retrain", "")
	wantStatus(t, rec, http.StatusOK)
	_, third := srv.do(t, http.MethodPost, "/api/v1/recommendations", body)

	var c models.RecommendationResponse
	decodeData(t, third, &c)
	if c.ModelVersion != 2 {
		t.Errorf("ModelVersion after rebuild = %d, want 2", c.ModelVersion)
	}
	if _, misses, _ := srv.api.results.Stats(); misses != 2 {
		t.Errorf("cache misses after rebuild = %d, want 2", misses)
	}
}

func TestRecommend_ResultCacheDisabled(t *testing.T) {
	t.Parallel()
	srv := newTestServer(t, func(h *HandlerConfig, _ *ChiMiddlewareConfig) {
		h.ResultCacheSize = -1
	})

	rec, _ := srv.do(t, http.MethodPost, "/api/v1/recommendations", `{"major":"CS","completed_courses":["CS101"]}`)
	wantStatus(t, rec, http.StatusOK)
	if srv.api.results != nil {
		t.Error("result cache created with a negative size")
	}
}

func TestResultKey(t *testing.T) {
	base := recommend.StudentProfile{
		Major: "CS", Semester: 2, GPA: 3.2,
		CompletedCourses: []string{"CS101", "MATH101"},
		Grades:           map[string]float64{"CS101": 90, "MATH101": 85},
	}
	same := base
	same.CompletedCourses = []string{"math101", "CS101"}

	tests := []struct {
		name   string
		mutate func(p *recommend.StudentProfile)
	}{
		{"gpa", func(p *recommend.StudentProfile) { p.GPA = 3.3 }},
		{"semester", func(p *recommend.StudentProfile) { p.Semester = 3 }},
		{"major", func(p *recommend.StudentProfile) { p.Major = "MATH" }},
		{"grade", func(p *recommend.StudentProfile) { p.Grades = map[string]float64{"CS101": 70, "MATH101": 85} }},
		{"history", func(p *recommend.StudentProfile) { p.CompletedCourses = []string{"CS101"} }},
	}

	key := resultKey(1, base, 5)
	if got := resultKey(1, same, 5); got != key {
		t.Errorf("reordered history key = %q, want %q", got, key)
	}
	if resultKey(2, base, 5) == key || resultKey(1, base, 3) == key {
		t.Error("version or limit did not change the key")
	}
	for _, tt := range tests {
		p := base
		tt.mutate(&p)
		if resultKey(1, p, 5) == key {
			t.Errorf("changing %s did not change the key", tt.name)
		}
	}
}

func TestRecommend_UnknownMajorSubstituted(t *testing.T) {
	t.Parallel()
	srv := newTestServer(t)

	rec, env := srv.do(t, http.MethodPost, "/api/v1/recommendations",
		`{"major":"ART","semester":1,"gpa":2.5,"completed_courses":[]}`)
	wantStatus(t, rec, http.StatusOK)

	var resp models.RecommendationResponse
	decodeData(t, env, &resp)
	if !resp.MajorSubstituted || resp.LookupMajor != "CS" || resp.Major != "ART" {
		t.Errorf("response = %+v, want ART substituted by CS", resp)
	}
}

func TestRecommend_BadRequests(t *testing.T) {
	t.Parallel()
	srv := newTestServer(t)

	tests := []struct {
		name string
		body string
		code string
	}{
		{name: "empty body", body: "", code: "INVALID_REQUEST"},
		{name: "malformed", body: `{"major":`, code: "INVALID_REQUEST"},
		{name: "unknown field", body: `{"major":"CS","nickname":"x"}`, code: "INVALID_REQUEST"},
		{name: "missing major", body: `{"semester":1}`, code: "VALIDATION_ERROR"},
		{name: "gpa out of range", body: `{"major":"CS","gpa":5.1}`, code: "VALIDATION_ERROR"},
		{name: "bad course code", body: `{"major":"CS","completed_courses":["not a code"]}`, code: "VALIDATION_ERROR"},
		{name: "limit too large", body: `{"major":"CS","limit":1000}`, code: "VALIDATION_ERROR"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec, env := srv.do(t, http.MethodPost, "/api/v1/recommendations", tt.body)
			wantStatus(t, rec, http.StatusBadRequest)
			wantErrorCode(t, env, tt.code)
		})
	}
}

func TestStudent(t *testing.T) {
	t.Parallel()
	srv := newTestServer(t)

	rec, env := srv.do(t, http.MethodGet, "/api/v1/students/1", "")
	wantStatus(t, rec, http.StatusOK)

	var s store.StudentRecord
	decodeData(t, env, &s)
	if s.Username != "alice" || len(s.Enrollments) != 4 {
		t.Errorf("student = %+v", s)
	}

	rec, env = srv.do(t, http.MethodGet, "/api/v1/students/404", "")
	wantStatus(t, rec, http.StatusNotFound)
	wantErrorCode(t, env, "NOT_FOUND")
}

func TestStudentRecommendations(t *testing.T) {
	t.Parallel()
	srv := newTestServer(t)

	rec, env := srv.do(t, http.MethodGet, "/api/v1/students/1/recommendations?limit=4", "")
	wantStatus(t, rec, http.StatusOK)

	var resp models.RecommendationResponse
	decodeData(t, env, &resp)
	if resp.StudentID != "1" || resp.Major != "CS" {
		t.Errorf("response = %+v", resp)
	}
	if len(resp.Courses) != 4 {
		t.Fatalf("Courses = %v, want 4", resp.Courses)
	}
	for _, code := range resp.Courses {
		switch code {
		case "CS101", "CS102", "MATH101":
			t.Errorf("recommended completed course %s", code)
		}
	}

	rec, env = srv.do(t, http.MethodGet, "/api/v1/students/1/recommendations?limit=abc", "")
	wantStatus(t, rec, http.StatusBadRequest)
	wantErrorCode(t, env, "VALIDATION_ERROR")

	rec, _ = srv.do(t, http.MethodGet, "/api/v1/students/nobody/recommendations", "")
	wantStatus(t, rec, http.StatusNotFound)
}

func TestModelStatus(t *testing.T) {
	t.Parallel()
	srv := newTestServer(t)

	rec, env := srv.do(t, http.MethodGet, "/api/v1/recommendations/status", "")
	wantStatus(t, rec, http.StatusOK)

	var status models.ModelStatusResponse
	decodeData(t, env, &status)
	if status.ModelVersion != 1 || status.ExampleCount != 200 || status.TrainedAt == nil {
		t.Errorf("status = %+v", status)
	}
	if status.IsTraining {
		t.Error("IsTraining = true on an idle model")
	}
}

func TestRetrain(t *testing.T) {
	t.Parallel()
	srv := newTestServer(t)

	for want := int64(2); want <= 3; want++ {
		rec, env := srv.do(t, http.MethodPost, "/api/v1/recommendations/retrain", "")
		wantStatus(t, rec, http.StatusOK)

		var status models.ModelStatusResponse
		decodeData(t, env, &status)
		if status.ModelVersion != want {
			t.Errorf("ModelVersion = %d, want %d", status.ModelVersion, want)
		}
	}
	if got := srv.model.Status().ModelVersion; got != 3 {
		t.Errorf("serving version = %d, want 3", got)
	}
}

func TestRetrain_Throttled(t *testing.T) {
	t.Parallel()
	srv := newTestServer(t, func(h *HandlerConfig, _ *ChiMiddlewareConfig) {
		h.RetrainMinInterval = time.Hour
	})

	rec, _ := srv.do(t, http.MethodPost, "/api/v1/recommendations/retrain", "")
	wantStatus(t, rec, http.StatusOK)

	rec, env := srv.do(t, http.MethodPost, "/api/v1/recommendations/retrain", "")
	wantStatus(t, rec, http.StatusTooManyRequests)
	wantErrorCode(t, env, "RATE_LIMIT_EXCEEDED")
	if rec.Header().Get("Retry-After") != "3600" {
		t.Errorf("Retry-After = %q, want 3600", rec.Header().Get("Retry-After"))
	}
}
