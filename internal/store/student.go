// Studypath - Prerequisite-Aware Course Recommendation
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/studypath

package store

import (
	"sort"
	"strings"
	"time"

	"github.com/tomtom215/studypath/internal/catalog"
	"github.com/tomtom215/studypath/internal/recommend"
)

// Enrollment statuses.
const (
	StatusPlanned    = "planned"
	StatusInProgress = "in-progress"
	StatusCompleted  = "completed"
)

// StudentRecord is a persisted student with enrollment history.
type StudentRecord struct {
	ID          string       `json:"id" validate:"required,max=64"`
	Username    string       `json:"username" validate:"required,max=50"`
	Email       string       `json:"email" validate:"omitempty,email,max=100"`
	Major       string       `json:"major" validate:"required,max=16"`
	GPA         float64      `json:"gpa" validate:"gte=0,lte=4"`
	CreatedAt   time.Time    `json:"created_at"`
	Enrollments []Enrollment `json:"enrollments" validate:"dive"`
}

// Enrollment is one course taken or planned by a student.
type Enrollment struct {
	CourseCode string `json:"course_code" validate:"required,max=16"`
	Term       string `json:"term" validate:"required,max=20"`
	Grade      string `json:"grade,omitempty" validate:"omitempty,max=2"`
	Status     string `json:"status" validate:"oneof=planned in-progress completed"`
}

var gradeScores = map[string]float64{
	"A+": 98, "A": 95, "A-": 91,
	"B+": 88, "B": 85, "B-": 81,
	"C+": 78, "C": 75, "C-": 71,
	"D+": 68, "D": 65, "D-": 61,
	"F": 50,
}

// GradeScore converts a letter grade to a numeric score.
func GradeScore(letter string) (float64, bool) {
	s, ok := gradeScores[strings.ToUpper(strings.TrimSpace(letter))]
	return s, ok
}

// Semester returns the number of distinct enrollment terms, at least 1.
//
//nolint:gocritic // hugeParam
func (s StudentRecord) Semester() int {
	terms := make(map[string]struct{}, len(s.Enrollments))
	for _, e := range s.Enrollments {
		terms[e.Term] = struct{}{}
	}
	if len(terms) == 0 {
		return 1
	}
	return len(terms)
}

// Profile converts the record into the recommendation input. Only completed
// enrollments count toward history.
//
//nolint:gocritic // hugeParam
func (s StudentRecord) Profile() recommend.StudentProfile {
	p := recommend.StudentProfile{
		Major:    s.Major,
		Semester: s.Semester(),
		GPA:      s.GPA,
		Grades:   make(map[string]float64),
	}
	for _, e := range s.Enrollments {
		if e.Status != StatusCompleted {
			continue
		}
		code := catalog.NormalizeCode(e.CourseCode)
		p.CompletedCourses = append(p.CompletedCourses, code)
		if score, ok := GradeScore(e.Grade); ok {
			p.Grades[code] = score
		}
	}
	return p
}

// SeedStudents returns the demonstration students.
func SeedStudents() []StudentRecord {
	created := time.Date(2023, time.September, 1, 0, 0, 0, 0, time.UTC)
	return []StudentRecord{
		{
			ID: "1", Username: "alice", Email: "alice@example.com", Major: "CS", GPA: 3.8, CreatedAt: created,
			Enrollments: []Enrollment{
				{CourseCode: "CS101", Term: "Fall 2022", Grade: "A", Status: StatusCompleted},
				{CourseCode: "CS102", Term: "Spring 2023", Grade: "B+", Status: StatusCompleted},
				{CourseCode: "MATH101", Term: "Fall 2022", Grade: "A-", Status: StatusCompleted},
				{CourseCode: "CS201", Term: "Fall 2023", Status: StatusInProgress},
			},
		},
		{
			ID: "2", Username: "bob", Email: "bob@example.com", Major: "MATH", GPA: 3.5, CreatedAt: created,
			Enrollments: []Enrollment{
				{CourseCode: "MATH101", Term: "Fall 2022", Grade: "A", Status: StatusCompleted},
				{CourseCode: "MATH102", Term: "Spring 2023", Grade: "A-", Status: StatusCompleted},
				{CourseCode: "MATH201", Term: "Fall 2023", Status: StatusInProgress},
			},
		},
		{
			ID: "3", Username: "charlie", Email: "charlie@example.com", Major: "ENG", GPA: 3.9, CreatedAt: created,
			Enrollments: []Enrollment{
				{CourseCode: "ENG101", Term: "Fall 2022", Grade: "A", Status: StatusCompleted},
				{CourseCode: "ENG102", Term: "Spring 2023", Grade: "A", Status: StatusCompleted},
				{CourseCode: "ENG201", Term: "Fall 2023", Status: StatusInProgress},
			},
		},
	}
}

func sortStudents(s []StudentRecord) {
	sort.Slice(s, func(i, j int) bool { return s[i].ID < s[j].ID })
}
