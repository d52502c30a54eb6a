// Studypath - Prerequisite-Aware Course Recommendation
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/studypath

package recommend

import (
	"context"
	"math"
	"reflect"
	"testing"
)

func TestEncoder_Layout(t *testing.T) {
	enc := NewEncoder(chainCatalog(t))

	wantNames := []string{
		"major:X", "major:other",
		"semester", "gpa", "completed_fraction",
		"course:X101", "course:X102", "course:X201",
	}
	if got := enc.FeatureNames(); !reflect.DeepEqual(got, wantNames) {
		t.Fatalf("FeatureNames() = %v, want %v", got, wantNames)
	}
	if enc.Width() != len(wantNames) {
		t.Errorf("Width() = %d, want %d", enc.Width(), len(wantNames))
	}
}

func TestEncoder_Encode(t *testing.T) {
	enc := NewEncoder(chainCatalog(t))

	tests := []struct {
		name    string
		profile StudentProfile
		want    []float64
	}{
		{
			name:    "known major",
			profile: StudentProfile{Major: "X", Semester: 4, GPA: 3.0, CompletedCourses: []string{"X101"}},
			want:    []float64{1, 0, 0.5, 0.75, 1.0 / 3.0, 1, 0, 0},
		},
		{
			name:    "unknown major uses other slot",
			profile: StudentProfile{Major: "ZZZ", Semester: 8, GPA: 4.0},
			want:    []float64{0, 1, 1, 1, 0, 0, 0, 0},
		},
		{
			name:    "lowercase codes and duplicates",
			profile: StudentProfile{Major: "x", Semester: 2, GPA: 2.0, CompletedCourses: []string{"x101", "X101 ", "X102"}},
			want:    []float64{1, 0, 0.25, 0.5, 2.0 / 3.0, 1, 1, 0},
		},
		{
			name:    "unknown completed code counted without flag",
			profile: StudentProfile{Major: "X", Semester: 2, GPA: 2.0, CompletedCourses: []string{"X101", "HIST999"}},
			want:    []float64{1, 0, 0.25, 0.5, 2.0 / 3.0, 1, 0, 0},
		},
		{
			name:    "non-finite gpa encodes as zero",
			profile: StudentProfile{Major: "X", Semester: 1, GPA: math.NaN()},
			want:    []float64{1, 0, 0.125, 0, 0, 0, 0, 0},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := enc.Encode(tt.profile)
			if len(got) != len(tt.want) {
				t.Fatalf("len(Encode()) = %d, want %d", len(got), len(tt.want))
			}
			for i := range got {
				if math.Abs(got[i]-tt.want[i]) > 1e-12 {
					t.Errorf("Encode()[%d] = %v, want %v", i, got[i], tt.want[i])
				}
			}
		})
	}
}

func TestEncoder_EncodeAll(t *testing.T) {
	enc := NewEncoder(chainCatalog(t))
	examples := []TrainingExample{
		{StudentID: "S0001", Profile: StudentProfile{Major: "X", Semester: 1, GPA: 3}},
		{StudentID: "S0002", Profile: StudentProfile{Major: "X", Semester: 2, GPA: 3, CompletedCourses: []string{"X101"}}},
	}

	rows, err := enc.EncodeAll(context.Background(), examples)
	if err != nil {
		t.Fatal(err)
	}
	for i, ex := range examples {
		if !reflect.DeepEqual(rows[i], enc.Encode(ex.Profile)) {
			t.Errorf("row %d differs from Encode()", i)
		}
	}

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if _, err := enc.EncodeAll(ctx, examples); err == nil {
		t.Error("EncodeAll() with cancelled context expected error")
	}
}
