// Studypath - Prerequisite-Aware Course Recommendation
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/studypath

package recommend

import (
	"context"
	"errors"
	"fmt"
	"math"
	"reflect"
	"testing"

	"github.com/tomtom215/studypath/internal/catalog"
)

func TestGenerate_Population(t *testing.T) {
	cfg := testConfig()
	cat := testCatalog(t, cfg)

	examples, err := Generate(context.Background(), cat, 500, catalog.NewSource(1))
	if err != nil {
		t.Fatalf("Generate() error = %v", err)
	}
	if len(examples) != 500 {
		t.Fatalf("len(examples) = %d, want 500", len(examples))
	}

	graph := cat.Graph()
	for i, ex := range examples {
		p := ex.Profile

		if want := fmt.Sprintf("S%04d", i+1); ex.StudentID != want {
			t.Errorf("examples[%d].StudentID = %s, want %s", i, ex.StudentID, want)
		}
		if !cat.HasMajor(p.Major) {
			t.Errorf("%s: unknown major %s", ex.StudentID, p.Major)
		}
		if p.Semester < 1 || p.Semester > MaxSemester {
			t.Errorf("%s: semester %d out of range", ex.StudentID, p.Semester)
		}
		if p.GPA < MinGPA || p.GPA > MaxGPA {
			t.Errorf("%s: gpa %v out of range", ex.StudentID, p.GPA)
		}
		if p.GPA != math.Round(p.GPA*100)/100 {
			t.Errorf("%s: gpa %v not rounded to two decimals", ex.StudentID, p.GPA)
		}

		target := int(math.Floor(1.5 * float64(p.Semester)))
		if n := len(cat.CoursesOf(p.Major)); target > n {
			target = n
		}
		if len(p.CompletedCourses) > target {
			t.Errorf("%s: completed %d courses, target %d", ex.StudentID, len(p.CompletedCourses), target)
		}

		done := make(map[string]struct{})
		for _, code := range p.CompletedCourses {
			if !graph.Satisfied(code, done) {
				t.Errorf("%s: completed %s before its prerequisites", ex.StudentID, code)
			}
			if _, dup := done[code]; dup {
				t.Errorf("%s: completed %s twice", ex.StudentID, code)
			}
			done[code] = struct{}{}

			g, ok := p.Grades[code]
			if !ok {
				t.Errorf("%s: no grade for %s", ex.StudentID, code)
			}
			if g < MinGrade || g > MaxGrade {
				t.Errorf("%s: grade %v for %s out of range", ex.StudentID, g, code)
			}
		}

		if len(ex.NextCourses) == 0 || len(ex.NextCourses) > 3 {
			t.Errorf("%s: %d next courses, want 1-3", ex.StudentID, len(ex.NextCourses))
		}
		for _, code := range ex.NextCourses {
			if _, ok := done[code]; ok {
				t.Errorf("%s: next course %s already completed", ex.StudentID, code)
			}
			if !graph.Satisfied(code, done) {
				t.Errorf("%s: next course %s not eligible", ex.StudentID, code)
			}
		}
	}
}

func TestGenerate_Reproducible(t *testing.T) {
	cfg := testConfig()
	cat := testCatalog(t, cfg)

	a, err := Generate(context.Background(), cat, 50, catalog.NewSource(9))
	if err != nil {
		t.Fatal(err)
	}
	b, err := Generate(context.Background(), cat, 50, catalog.NewSource(9))
	if err != nil {
		t.Fatal(err)
	}
	if !reflect.DeepEqual(a, b) {
		t.Error("same seed produced different populations")
	}

	c, err := Generate(context.Background(), cat, 50, catalog.NewSource(10))
	if err != nil {
		t.Fatal(err)
	}
	if reflect.DeepEqual(a, c) {
		t.Error("different seeds produced identical populations")
	}
}

func TestGenerate_DefaultSize(t *testing.T) {
	cat := chainCatalog(t)
	examples, err := Generate(context.Background(), cat, 0, catalog.NewSource(1))
	if err != nil {
		t.Fatal(err)
	}
	if len(examples) != DefaultPopulationSize {
		t.Errorf("len(examples) = %d, want %d", len(examples), DefaultPopulationSize)
	}
}

func TestGenerate_Cancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := Generate(ctx, chainCatalog(t), 10, catalog.NewSource(1))
	if !errors.Is(err, context.Canceled) {
		t.Errorf("Generate() error = %v, want context.Canceled", err)
	}
}
