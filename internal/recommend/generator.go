// Studypath - Prerequisite-Aware Course Recommendation
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/studypath

package recommend

import (
	"context"
	"fmt"
	"math"

	"github.com/tomtom215/studypath/internal/catalog"
)

// Population parameters.
const (
	DefaultPopulationSize = 1000
	MaxSemester           = 8
	MinGPA                = 2.0
	MaxGPA                = 4.0
	MinGrade              = 60.0
	MaxGrade              = 100.0
	gradeNoise            = 5.0
	labelSize             = 3
)

// Generate produces size synthetic students whose histories respect the
// prerequisite graph. Each example is labeled with the first courses of the
// eligibility scan over its own history. The result depends only on cat,
// size and the state of rng.
func Generate(ctx context.Context, cat *catalog.Catalog, size int, rng catalog.Source) ([]TrainingExample, error) {
	if size <= 0 {
		size = DefaultPopulationSize
	}
	majors := cat.Majors()
	if len(majors) == 0 {
		return nil, fmt.Errorf("%w: catalog has no majors", catalog.ErrInvalidCatalog)
	}

	examples := make([]TrainingExample, 0, size)
	for i := 0; i < size; i++ {
		if err := ctx.Err(); err != nil {
			return nil, fmt.Errorf("generate population: %w", err)
		}
		examples = append(examples, generateStudent(cat, majors, i, rng))
	}
	return examples, nil
}

func generateStudent(cat *catalog.Catalog, majors []string, i int, rng catalog.Source) TrainingExample {
	major := majors[rng.Intn(len(majors))]
	semester := 1 + rng.Intn(MaxSemester)
	gpa := round(MinGPA+rng.Float64()*(MaxGPA-MinGPA), 2)

	courses := cat.CoursesOf(major)
	target := int(math.Floor(1.5 * float64(semester)))
	if target > len(courses) {
		target = len(courses)
	}

	graph := cat.Graph()
	done := make(map[string]struct{}, target)
	completed := make([]string, 0, target)
	grades := make(map[string]float64, target)
	mean := clamp(MinGrade+10*gpa, MinGrade, MaxGrade)

	for len(completed) < target {
		available := make([]string, 0, len(courses))
		for _, code := range courses {
			if _, ok := done[code]; ok {
				continue
			}
			if graph.Satisfied(code, done) {
				available = append(available, code)
			}
		}
		if len(available) == 0 {
			break
		}

		pick := available[rng.Intn(len(available))]
		done[pick] = struct{}{}
		completed = append(completed, pick)
		grades[pick] = round(clamp(mean+rng.NormFloat64()*gradeNoise, MinGrade, MaxGrade), 1)
	}

	next := cat.Eligible(major, done)
	if len(next) > labelSize {
		next = next[:labelSize]
	}
	if len(completed) == 0 {
		next = nil
		if core := cat.Core(major); len(core) > 0 {
			next = core[:1]
		}
	}

	return TrainingExample{
		StudentID: fmt.Sprintf("S%04d", i+1),
		Profile: StudentProfile{
			Major:            major,
			Semester:         semester,
			GPA:              gpa,
			CompletedCourses: completed,
			Grades:           grades,
		},
		NextCourses: next,
	}
}

func clamp(v, lo, hi float64) float64 {
	return math.Max(lo, math.Min(hi, v))
}

func round(v float64, places int) float64 {
	p := math.Pow(10, float64(places))
	return math.Round(v*p) / p
}
