// Studypath - Prerequisite-Aware Course Recommendation
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/studypath

package recommend

import (
	"github.com/tomtom215/studypath/internal/catalog"
)

// picker accumulates recommendations without duplicates or completed courses.
type picker struct {
	limit     int
	completed map[string]struct{}
	queued    map[string]struct{}
	out       []Recommendation
}

func newPicker(limit int, completed map[string]struct{}) *picker {
	return &picker{
		limit:     limit,
		completed: completed,
		queued:    make(map[string]struct{}, limit),
		out:       make([]Recommendation, 0, limit),
	}
}

func (p *picker) full() bool {
	return len(p.out) >= p.limit
}

// add queues code unless it is completed, already queued or the list is full.
func (p *picker) add(code string, stage Stage) bool {
	if p.full() {
		return false
	}
	if _, done := p.completed[code]; done {
		return false
	}
	if _, dup := p.queued[code]; dup {
		return false
	}
	p.queued[code] = struct{}{}
	p.out = append(p.out, Recommendation{Code: code, Stage: stage})
	return true
}

// Explain runs the recommendation policy and reports which stage produced
// each course. It never fails: unknown majors fall back to the default major
// and an empty pipeline ends in the generic fallback.
//
//nolint:gocritic // hugeParam
func (m *Model) Explain(profile StudentProfile, limit int) Result {
	limit = m.effectiveLimit(limit)
	lookup, substituted := m.lookupMajor(profile.Major)

	res := Result{
		Major:            profile.Major,
		LookupMajor:      lookup,
		MajorSubstituted: substituted,
		Limit:            limit,
		ModelVersion:     m.version,
	}
	if substituted {
		m.logger.Debug().
			Str("major", profile.Major).
			Str("lookup_major", lookup).
			Msg("unknown major, using default")
	}

	completed := profile.completedSet()
	p := newPicker(limit, completed)

	if len(completed) == 0 {
		for _, code := range m.catalog.Core(lookup) {
			p.add(code, StageColdStart)
		}
		res.Recommendations = p.out
		return res
	}

	m.neighborStage(profile, p)
	m.ruleStage(lookup, p)
	for _, code := range GenericFallback {
		p.add(code, StageFallback)
	}

	res.Recommendations = p.out
	return res
}

// neighborStage takes the labels of the nearest training students, keeping
// only courses the query student can take now.
//
//nolint:gocritic // hugeParam
func (m *Model) neighborStage(profile StudentProfile, p *picker) {
	if p.full() {
		return
	}
	neighbors, err := m.index.Query(m.encoder.Encode(profile), m.config.Neighbors)
	if err != nil {
		m.logger.Warn().Err(err).Msg("neighbor query failed, skipping stage")
		return
	}

	graph := m.catalog.Graph()
	for _, n := range neighbors {
		for _, code := range m.examples[n.Row].NextCourses {
			code = catalog.NormalizeCode(code)
			if !graph.Has(code) || !graph.Satisfied(code, p.completed) {
				continue
			}
			p.add(code, StageNeighbor)
			if p.full() {
				return
			}
		}
	}
}

// ruleStage appends the eligibility scan of the lookup major.
func (m *Model) ruleStage(major string, p *picker) {
	if p.full() {
		return
	}
	for _, code := range m.catalog.Eligible(major, p.completed) {
		p.add(code, StageRule)
		if p.full() {
			return
		}
	}
}

func (m *Model) effectiveLimit(limit int) int {
	if limit <= 0 {
		limit = m.config.Limits.DefaultLimit
	}
	if m.config.Limits.MaxLimit > 0 && limit > m.config.Limits.MaxLimit {
		limit = m.config.Limits.MaxLimit
	}
	return limit
}

// lookupMajor returns the catalog major to use and whether it was substituted.
func (m *Model) lookupMajor(major string) (string, bool) {
	code := catalog.NormalizeCode(major)
	if m.catalog.HasMajor(code) {
		return code, false
	}
	return catalog.NormalizeCode(m.config.DefaultMajor), true
}
