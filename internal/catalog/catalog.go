// Studypath - Prerequisite-Aware Course Recommendation
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/studypath

package catalog

import (
	"errors"
	"fmt"
	"sort"
	"strconv"
	"strings"
)

// Validation errors. All construction failures wrap ErrInvalidCatalog.
var (
	ErrInvalidCatalog      = errors.New("invalid catalog")
	ErrDuplicateCourse     = errors.New("duplicate course code")
	ErrSelfLoop            = errors.New("course lists itself as prerequisite")
	ErrCycle               = errors.New("prerequisite cycle")
	ErrUnknownPrerequisite = errors.New("prerequisite references unknown course")
	ErrCourseNotFound      = errors.New("course not found")
)

// CourseType classifies a course within a major.
type CourseType int

const (
	// CourseCore is a required, sequentially chained course.
	CourseCore CourseType = iota
	// CourseElective is an optional course gated on early core courses.
	CourseElective
	// CourseRelated is a course borrowed from another major.
	CourseRelated
)

// String returns the relation name for the course type.
func (t CourseType) String() string {
	switch t {
	case CourseCore:
		return "core"
	case CourseElective:
		return "elective"
	case CourseRelated:
		return "related"
	default:
		return "unknown"
	}
}

// ParseCourseType converts a relation name back to a CourseType.
func ParseCourseType(s string) (CourseType, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "core":
		return CourseCore, nil
	case "elective", "electives":
		return CourseElective, nil
	case "related":
		return CourseRelated, nil
	default:
		return 0, fmt.Errorf("unknown course type %q", s)
	}
}

// MajorCourses holds the ordered course sequences of one major.
type MajorCourses struct {
	Major     string   `json:"major"`
	Core      []string `json:"core"`
	Electives []string `json:"electives"`
	Related   []string `json:"related"`
}

// All returns core, electives and related courses in that order.
func (m MajorCourses) All() []string {
	out := make([]string, 0, len(m.Core)+len(m.Electives)+len(m.Related))
	out = append(out, m.Core...)
	out = append(out, m.Electives...)
	out = append(out, m.Related...)
	return out
}

// Membership is one row of the catalog membership relation.
type Membership struct {
	Major    string     `json:"major"`
	Type     CourseType `json:"type"`
	Code     string     `json:"code"`
	Position int        `json:"position"`
}

// Edge is one row of the prerequisite relation: Course requires Prerequisite.
type Edge struct {
	Course       string `json:"course"`
	Prerequisite string `json:"prerequisite"`
}

// Catalog is the validated, read-only course taxonomy plus its prerequisite graph.
type Catalog struct {
	majors  []string
	courses map[string]MajorCourses

	// types maps major -> code -> type within that major
	types map[string]map[string]CourseType

	// owner maps a code to the first major listing it as core or elective.
	owner map[string]string

	graph *Graph
}

// New builds a catalog from per-major course lists and prerequisite edges.
// The sequential core chain is implied and added automatically.
func New(majors []MajorCourses, edges []Edge) (*Catalog, error) {
	c := &Catalog{
		majors:  make([]string, 0, len(majors)),
		courses: make(map[string]MajorCourses, len(majors)),
		types:   make(map[string]map[string]CourseType, len(majors)),
		owner:   make(map[string]string),
	}

	for _, mc := range majors {
		if err := c.addMajor(mc); err != nil {
			return nil, err
		}
	}

	known := make(map[string]struct{})
	for _, m := range c.majors {
		for _, code := range c.courses[m].All() {
			known[code] = struct{}{}
		}
	}

	all := make([]Edge, 0, len(edges)+len(c.majors)*4)
	for _, m := range c.majors {
		core := c.courses[m].Core
		for i := 1; i < len(core); i++ {
			all = append(all, Edge{Course: core[i], Prerequisite: core[i-1]})
		}
	}
	all = append(all, edges...)

	g, err := newGraph(known, all)
	if err != nil {
		return nil, err
	}
	c.graph = g

	return c, nil
}

// addMajor validates and registers a single major.
//
//nolint:gocritic // hugeParam
func (c *Catalog) addMajor(mc MajorCourses) error {
	major := normalizeCode(mc.Major)
	if major == "" {
		return fmt.Errorf("%w: empty major code", ErrInvalidCatalog)
	}
	if _, dup := c.courses[major]; dup {
		return fmt.Errorf("%w: major %s listed twice", ErrInvalidCatalog, major)
	}

	clean := MajorCourses{
		Major:     major,
		Core:      normalizeCodes(mc.Core),
		Electives: normalizeCodes(mc.Electives),
		Related:   normalizeCodes(mc.Related),
	}

	types := make(map[string]CourseType, len(clean.Core)+len(clean.Electives)+len(clean.Related))
	register := func(codes []string, t CourseType) error {
		for _, code := range codes {
			if code == "" {
				return fmt.Errorf("%w: empty course code in major %s", ErrInvalidCatalog, major)
			}
			if _, dup := types[code]; dup {
				return fmt.Errorf("%w: %w: %s in major %s", ErrInvalidCatalog, ErrDuplicateCourse, code, major)
			}
			types[code] = t
			if t != CourseRelated {
				if _, owned := c.owner[code]; !owned {
					c.owner[code] = major
				}
			}
		}
		return nil
	}

	if err := register(clean.Core, CourseCore); err != nil {
		return err
	}
	if err := register(clean.Electives, CourseElective); err != nil {
		return err
	}
	if err := register(clean.Related, CourseRelated); err != nil {
		return err
	}

	c.majors = append(c.majors, major)
	c.courses[major] = clean
	c.types[major] = types
	return nil
}

// FromRelations rebuilds a catalog from the flat membership and edge relations.
func FromRelations(memberships []Membership, edges []Edge) (*Catalog, error) {
	rows := make([]Membership, len(memberships))
	copy(rows, memberships)
	sort.SliceStable(rows, func(i, j int) bool {
		if rows[i].Type != rows[j].Type {
			return rows[i].Type < rows[j].Type
		}
		return rows[i].Position < rows[j].Position
	})

	order := make([]string, 0)
	byMajor := make(map[string]*MajorCourses)
	for _, m := range memberships {
		major := normalizeCode(m.Major)
		if _, ok := byMajor[major]; !ok {
			byMajor[major] = &MajorCourses{Major: major}
			order = append(order, major)
		}
	}

	for _, r := range rows {
		mc := byMajor[normalizeCode(r.Major)]
		switch r.Type {
		case CourseCore:
			mc.Core = append(mc.Core, r.Code)
		case CourseElective:
			mc.Electives = append(mc.Electives, r.Code)
		case CourseRelated:
			mc.Related = append(mc.Related, r.Code)
		default:
			return nil, fmt.Errorf("%w: course %s has unknown type %d", ErrInvalidCatalog, r.Code, r.Type)
		}
	}

	majors := make([]MajorCourses, 0, len(order))
	for _, m := range order {
		majors = append(majors, *byMajor[m])
	}
	return New(majors, edges)
}

// Majors returns the major codes in catalog order.
func (c *Catalog) Majors() []string {
	out := make([]string, len(c.majors))
	copy(out, c.majors)
	return out
}

// HasMajor reports whether the major exists in the catalog.
func (c *Catalog) HasMajor(major string) bool {
	_, ok := c.courses[normalizeCode(major)]
	return ok
}

// Major returns a copy of the course lists for a major.
func (c *Catalog) Major(major string) (MajorCourses, bool) {
	mc, ok := c.courses[normalizeCode(major)]
	if !ok {
		return MajorCourses{}, false
	}
	return MajorCourses{
		Major:     mc.Major,
		Core:      cloneStrings(mc.Core),
		Electives: cloneStrings(mc.Electives),
		Related:   cloneStrings(mc.Related),
	}, true
}

// CoursesOf returns the ordered course set of a major: core, electives, related.
// Unknown majors return nil.
func (c *Catalog) CoursesOf(major string) []string {
	mc, ok := c.courses[normalizeCode(major)]
	if !ok {
		return nil
	}
	return mc.All()
}

// Core returns the core sequence of a major.
func (c *Catalog) Core(major string) []string {
	return cloneStrings(c.courses[normalizeCode(major)].Core)
}

// TypeOf returns the type of a course within a major.
func (c *Catalog) TypeOf(major, code string) (CourseType, bool) {
	t, ok := c.types[normalizeCode(major)][normalizeCode(code)]
	return t, ok
}

// Known reports whether the code belongs to any major's course set.
func (c *Catalog) Known(code string) bool {
	return c.graph.Has(normalizeCode(code))
}

// MajorOf returns the major that owns the course as core or elective.
// Courses that only appear as related courses fall back to the first major
// listing them.
func (c *Catalog) MajorOf(code string) (string, bool) {
	code = normalizeCode(code)
	if m, ok := c.owner[code]; ok {
		return m, true
	}
	for _, m := range c.majors {
		if _, ok := c.types[m][code]; ok {
			return m, true
		}
	}
	return "", false
}

// Graph returns the prerequisite graph.
func (c *Catalog) Graph() *Graph {
	return c.graph
}

// PrerequisitesOf returns the direct prerequisites of a course, sorted.
func (c *Catalog) PrerequisitesOf(code string) []string {
	return c.graph.PrerequisitesOf(normalizeCode(code))
}

// TopologicalOrder returns every known course so that prerequisites precede
// the courses that require them.
func (c *Catalog) TopologicalOrder() []string {
	return c.graph.TopologicalOrder()
}

// Size returns the number of distinct known courses.
func (c *Catalog) Size() int {
	return c.graph.Len()
}

// Codes returns every known course code, sorted.
func (c *Catalog) Codes() []string {
	return c.graph.Nodes()
}

// Eligible runs the eligibility scan for a major: every course of the major
// that is not completed and whose prerequisites are all completed. The result
// is ordered by ascending level, then core before electives before related,
// then by code.
func (c *Catalog) Eligible(major string, completed map[string]struct{}) []string {
	major = normalizeCode(major)
	mc, ok := c.courses[major]
	if !ok {
		return nil
	}

	out := make([]string, 0, len(mc.Core)+len(mc.Electives)+len(mc.Related))
	for _, code := range mc.All() {
		if _, done := completed[code]; done {
			continue
		}
		if c.graph.Satisfied(code, completed) {
			out = append(out, code)
		}
	}

	types := c.types[major]
	sort.SliceStable(out, func(i, j int) bool {
		li, lj := Level(out[i]), Level(out[j])
		if li != lj {
			return li < lj
		}
		ti, tj := types[out[i]], types[out[j]]
		if ti != tj {
			return ti < tj
		}
		return out[i] < out[j]
	})
	return out
}

// Memberships flattens the catalog into the membership relation.
func (c *Catalog) Memberships() []Membership {
	rows := make([]Membership, 0, c.graph.Len())
	for _, m := range c.majors {
		mc := c.courses[m]
		for i, code := range mc.Core {
			rows = append(rows, Membership{Major: m, Type: CourseCore, Code: code, Position: i})
		}
		for i, code := range mc.Electives {
			rows = append(rows, Membership{Major: m, Type: CourseElective, Code: code, Position: i})
		}
		for i, code := range mc.Related {
			rows = append(rows, Membership{Major: m, Type: CourseRelated, Code: code, Position: i})
		}
	}
	return rows
}

// Edges flattens the prerequisite graph into the edge relation, sorted.
func (c *Catalog) Edges() []Edge {
	return c.graph.Edges()
}

// Level returns the numeric level of a course code: the trailing number
// divided by 100 (CS101 -> 1, MATH340 -> 3). Codes without a number are level 0.
func Level(code string) int {
	return CourseNumber(code) / 100
}

// CourseNumber returns the trailing number of a course code, or 0.
func CourseNumber(code string) int {
	i := len(code)
	for i > 0 && code[i-1] >= '0' && code[i-1] <= '9' {
		i--
	}
	if i == len(code) {
		return 0
	}
	n, err := strconv.Atoi(code[i:])
	if err != nil {
		return 0
	}
	return n
}

// SubjectOf returns the alphabetic prefix of a course code.
func SubjectOf(code string) string {
	i := 0
	for i < len(code) && (code[i] < '0' || code[i] > '9') {
		i++
	}
	return code[:i]
}

// NormalizeCode upper-cases and trims a course or major code.
func NormalizeCode(code string) string {
	return normalizeCode(code)
}

func normalizeCode(code string) string {
	return strings.ToUpper(strings.TrimSpace(code))
}

func normalizeCodes(codes []string) []string {
	out := make([]string, len(codes))
	for i, c := range codes {
		out[i] = normalizeCode(c)
	}
	return out
}

func cloneStrings(s []string) []string {
	if s == nil {
		return nil
	}
	out := make([]string, len(s))
	copy(out, s)
	return out
}
