// Studypath - Prerequisite-Aware Course Recommendation
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/studypath

package catalog

import (
	"fmt"
	"strings"
)

// CourseDetail is the descriptive record for a single course.
type CourseDetail struct {
	Code          string   `json:"code"`
	Name          string   `json:"name"`
	Description   string   `json:"description"`
	Credits       int      `json:"credits"`
	Major         string   `json:"major"`
	Type          string   `json:"type"`
	Level         int      `json:"level"`
	Difficulty    float64  `json:"difficulty_level,omitempty"`
	StudyHours    int      `json:"avg_study_hours,omitempty"`
	Prerequisites []string `json:"prerequisites"`
	Synthesized   bool     `json:"synthesized"`
}

type courseRecord struct {
	name        string
	description string
	credits     int
	difficulty  float64
	studyHours  int
}

// records holds the hand-maintained course table. Codes outside it are
// synthesized from the catalog structure.
var records = map[string]courseRecord{
	"CS101":   {"Introduction to Programming", "Basic programming concepts using Python", 3, 2.5, 6},
	"CS201":   {"Data Structures", "Fundamental data structures and algorithms", 4, 3.5, 8},
	"CS301":   {"Database Systems", "Database design and SQL", 3, 3.0, 7},
	"MATH101": {"Calculus I", "Limits, derivatives, and integrals", 4, 3.0, 8},
	"MATH201": {"Linear Algebra", "Vector spaces, matrices, and linear transformations", 3, 3.5, 7},
	"ENG101":  {"Composition", "Academic writing and rhetoric", 3, 2.0, 5},
	"ENG201":  {"Technical Writing", "Writing for technical and professional contexts", 3, 2.5, 5},
}

var subjectNames = map[string]string{
	"CS":   "Computer Science",
	"MATH": "Mathematics",
	"ENG":  "English",
	"PHYS": "Physics",
	"BIO":  "Biology",
	"CHEM": "Chemistry",
	"STAT": "Statistics",
	"LIT":  "Literature",
	"ECON": "Economics",
	"HIST": "History",
	"PSY":  "Psychology",
}

var romans = []string{"I", "II", "III", "IV", "V", "VI", "VII", "VIII", "IX", "X"}

// Details returns the descriptive record for a course code. Codes that are
// not part of any major return ErrCourseNotFound.
func (c *Catalog) Details(code string) (CourseDetail, error) {
	code = normalizeCode(code)
	major, ok := c.MajorOf(code)
	if !ok {
		return CourseDetail{}, fmt.Errorf("%w: %s", ErrCourseNotFound, code)
	}

	ct, _ := c.TypeOf(major, code)
	d := CourseDetail{
		Code:          code,
		Major:         major,
		Type:          ct.String(),
		Level:         Level(code),
		Prerequisites: c.PrerequisitesOf(code),
	}

	if rec, ok := records[code]; ok {
		d.Name = rec.name
		d.Description = rec.description
		d.Credits = rec.credits
		d.Difficulty = rec.difficulty
		d.StudyHours = rec.studyHours
		return d, nil
	}

	d.Name = synthesizeName(code, d.Level)
	d.Credits = 3
	if ct == CourseCore {
		d.Credits = 4
	}
	d.Description = synthesizeDescription(d.Name, ct, d.Prerequisites)
	d.Synthesized = true
	return d, nil
}

func subjectName(code string) string {
	subj := SubjectOf(code)
	if name, ok := subjectNames[subj]; ok {
		return name
	}
	return subj
}

func synthesizeName(code string, level int) string {
	var prefix string
	switch {
	case level <= 1:
		prefix = "Introduction to"
	case level == 2:
		prefix = "Topics in"
	default:
		prefix = "Advanced"
	}

	seq := CourseNumber(code) % 100
	if seq >= 10 {
		seq /= 10
	}
	name := prefix + " " + subjectName(code)
	if seq >= 1 && seq <= len(romans) {
		name += " " + romans[seq-1]
	}
	return name
}

func synthesizeDescription(name string, ct CourseType, prereqs []string) string {
	var b strings.Builder
	b.WriteString(name)
	switch ct {
	case CourseCore:
		b.WriteString(" is a required course in the major sequence.")
	case CourseElective:
		b.WriteString(" is an elective that deepens the major.")
	default:
		b.WriteString(" complements the major with a related discipline.")
	}
	if len(prereqs) > 0 {
		b.WriteString(" Requires ")
		b.WriteString(strings.Join(prereqs, ", "))
		b.WriteString(".")
	}
	return b.String()
}
