// Studypath - Prerequisite-Aware Course Recommendation
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/studypath

package recommend

import (
	"context"
	"errors"
	"reflect"
	"testing"

	"github.com/rs/zerolog"
)

func TestModel_ColdStart(t *testing.T) {
	m := testModel(t)

	res := m.Explain(StudentProfile{Major: "CS", Semester: 1, GPA: 3.0}, 5)
	want := []string{"CS101", "CS102", "CS201", "CS202", "CS301"}
	if got := res.Codes(); !reflect.DeepEqual(got, want) {
		t.Fatalf("cold start = %v, want %v", got, want)
	}
	for _, r := range res.Recommendations {
		if r.Stage != StageColdStart {
			t.Errorf("%s stage = %s, want %s", r.Code, r.Stage, StageColdStart)
		}
	}

	if got := m.Recommend(StudentProfile{Major: "MATH"}, 2); !reflect.DeepEqual(got, []string{"MATH101", "MATH102"}) {
		t.Errorf("cold start limit 2 = %v", got)
	}
}

func TestModel_UnknownMajor(t *testing.T) {
	m := testModel(t)

	tests := []struct {
		name      string
		completed []string
	}{
		{"no history", nil},
		{"with history", []string{"CS101"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res := m.Explain(StudentProfile{Major: "ZZZ", Semester: 2, GPA: 3.1, CompletedCourses: tt.completed}, 5)
			if len(res.Recommendations) == 0 {
				t.Fatal("Explain(ZZZ) returned no courses")
			}
			if !res.MajorSubstituted || res.LookupMajor != "CS" {
				t.Errorf("MajorSubstituted=%v LookupMajor=%s, want true, CS", res.MajorSubstituted, res.LookupMajor)
			}
			if res.Major != "ZZZ" {
				t.Errorf("Major = %s, want caller-visible ZZZ", res.Major)
			}
		})
	}
}

func TestModel_Invariants(t *testing.T) {
	m := testModel(t)
	graph := m.Catalog().Graph()

	profiles := []StudentProfile{
		{Major: "CS", Semester: 3, GPA: 3.5, CompletedCourses: []string{"CS101", "CS102", "MATH101"}},
		{Major: "eng", Semester: 6, GPA: 2.4, CompletedCourses: []string{"ENG101", "ENG102", "ENG201", "ENG210"}},
		{Major: "BIO", Semester: 1, GPA: 0, CompletedCourses: []string{"BIO101", "BIO101", "UNKNOWN1"}},
		{Major: "PHYS", Semester: -3, GPA: 9, CompletedCourses: []string{"PHYS101"}},
	}
	for _, ex := range m.Examples()[:50] {
		profiles = append(profiles, ex.Profile)
	}

	for _, limit := range []int{-1, 0, 1, 3, 5, 12, 500} {
		for _, p := range profiles {
			res := m.Explain(p, limit)
			completed := p.completedSet()

			if len(res.Recommendations) > res.Limit {
				t.Errorf("%v limit %d: got %d courses", p.CompletedCourses, res.Limit, len(res.Recommendations))
			}
			if res.Limit > m.config.Limits.MaxLimit {
				t.Errorf("limit %d not clamped to %d", res.Limit, m.config.Limits.MaxLimit)
			}

			seen := make(map[string]struct{})
			for _, r := range res.Recommendations {
				if _, done := completed[r.Code]; done {
					t.Errorf("%v: recommended completed course %s", p.CompletedCourses, r.Code)
				}
				if _, dup := seen[r.Code]; dup {
					t.Errorf("%v: duplicate %s", p.CompletedCourses, r.Code)
				}
				seen[r.Code] = struct{}{}

				if r.Stage == StageNeighbor || r.Stage == StageRule {
					if !graph.Satisfied(r.Code, completed) {
						t.Errorf("%v: %s (%s) has unmet prerequisites", p.CompletedCourses, r.Code, r.Stage)
					}
				}
			}
		}
	}
}

func TestModel_Idempotent(t *testing.T) {
	m := testModel(t)
	p := StudentProfile{Major: "MATH", Semester: 4, GPA: 3.2, CompletedCourses: []string{"MATH101", "MATH102", "CS101"}}

	first := m.Explain(p, 5)
	for i := 0; i < 5; i++ {
		if again := m.Explain(p, 5); !reflect.DeepEqual(first, again) {
			t.Fatalf("Explain() not deterministic: %v vs %v", first, again)
		}
	}
}

func TestModel_DefaultLimit(t *testing.T) {
	m := testModel(t)
	p := StudentProfile{Major: "CS", Semester: 2, GPA: 3.0, CompletedCourses: []string{"CS101"}}

	if got := m.Recommend(p, 0); len(got) != m.config.Limits.DefaultLimit {
		t.Errorf("Recommend(limit=0) returned %d, want %d", len(got), m.config.Limits.DefaultLimit)
	}
	if res := m.Explain(p, 10000); res.Limit != m.config.Limits.MaxLimit {
		t.Errorf("Explain(limit=10000).Limit = %d, want %d", res.Limit, m.config.Limits.MaxLimit)
	}
}

func TestModel_NeighborRevalidation(t *testing.T) {
	cat := chainCatalog(t)
	examples := []TrainingExample{
		// X201 needs X102; ZZ999 is not in the catalog.
		{StudentID: "S0001", Profile: StudentProfile{Major: "X", Semester: 2, GPA: 3, CompletedCourses: []string{"X101"}}, NextCourses: []string{"X201", "ZZ999"}},
		{StudentID: "S0002", Profile: StudentProfile{Major: "X", Semester: 2, GPA: 3, CompletedCourses: []string{"X101"}}, NextCourses: []string{"X101"}},
	}
	m, err := NewModel(context.Background(), chainConfig(), cat, examples, 1, zerolog.Nop())
	if err != nil {
		t.Fatal(err)
	}

	res := m.Explain(StudentProfile{Major: "X", Semester: 2, GPA: 3, CompletedCourses: []string{"X101"}}, 5)
	want := []Recommendation{
		{Code: "X102", Stage: StageRule},
		{Code: "GEN101", Stage: StageFallback},
		{Code: "GEN102", Stage: StageFallback},
		{Code: "GEN201", Stage: StageFallback},
	}
	if !reflect.DeepEqual(res.Recommendations, want) {
		t.Errorf("Explain() = %v, want %v", res.Recommendations, want)
	}
}

func TestModel_NeighborStage(t *testing.T) {
	cat := chainCatalog(t)
	examples := []TrainingExample{
		{StudentID: "S0001", Profile: StudentProfile{Major: "X", Semester: 3, GPA: 3, CompletedCourses: []string{"X101", "X102"}}, NextCourses: []string{"X201"}},
		{StudentID: "S0002", Profile: StudentProfile{Major: "X", Semester: 1, GPA: 2, CompletedCourses: []string{"X101"}}, NextCourses: []string{"X102"}},
	}
	m, err := NewModel(context.Background(), chainConfig(), cat, examples, 1, zerolog.Nop())
	if err != nil {
		t.Fatal(err)
	}

	res := m.Explain(StudentProfile{Major: "X", Semester: 3, GPA: 3, CompletedCourses: []string{"X101", "X102"}}, 1)
	want := []Recommendation{{Code: "X201", Stage: StageNeighbor}}
	if !reflect.DeepEqual(res.Recommendations, want) {
		t.Errorf("Explain() = %v, want %v", res.Recommendations, want)
	}
}

func TestModel_GenericFallback(t *testing.T) {
	cat := chainCatalog(t)
	examples := []TrainingExample{
		{StudentID: "S0001", Profile: StudentProfile{Major: "X", Semester: 4, GPA: 3, CompletedCourses: []string{"X101", "X102", "X201"}}},
	}
	m, err := NewModel(context.Background(), chainConfig(), cat, examples, 1, zerolog.Nop())
	if err != nil {
		t.Fatal(err)
	}

	got := m.Recommend(StudentProfile{Major: "X", Semester: 4, GPA: 3, CompletedCourses: []string{"X101", "X102", "X201", "GEN102"}}, 5)
	if want := []string{"GEN101", "GEN201"}; !reflect.DeepEqual(got, want) {
		t.Errorf("Recommend() = %v, want %v", got, want)
	}
}

func TestNewModel_Errors(t *testing.T) {
	cat := chainCatalog(t)

	if _, err := NewModel(context.Background(), chainConfig(), cat, nil, 1, zerolog.Nop()); !errors.Is(err, ErrEmptyCorpus) {
		t.Errorf("NewModel(nil examples) error = %v, want ErrEmptyCorpus", err)
	}

	cfg := chainConfig()
	cfg.Majors = []string{"X", "CS"}
	cfg.DefaultMajor = "CS"
	examples := []TrainingExample{{StudentID: "S0001", Profile: StudentProfile{Major: "X"}}}
	if _, err := NewModel(context.Background(), cfg, cat, examples, 1, zerolog.Nop()); err == nil {
		t.Error("NewModel() with default major outside catalog expected error")
	}
}
