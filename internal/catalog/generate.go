// Studypath - Prerequisite-Aware Course Recommendation
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/studypath

package catalog

import "fmt"

var (
	coreNumbers     = []int{101, 102, 201, 202, 301}
	electiveNumbers = []int{210, 220, 230, 240, 310, 320, 330, 340}
)

// DefaultMajors is the major list used when none is configured.
var DefaultMajors = []string{"CS", "MATH", "ENG", "PHYS", "BIO"}

// Generate builds the standard catalog for the given majors. Each major gets
// five chained core courses, eight electives (the first half gated on the
// first core course, the rest on the second) and up to relatedPerMajor
// introductory courses of other majors picked through rng.
func Generate(majors []string, relatedPerMajor int, rng Source) (*Catalog, error) {
	if len(majors) == 0 {
		return nil, fmt.Errorf("%w: no majors", ErrInvalidCatalog)
	}
	if relatedPerMajor < 0 {
		relatedPerMajor = 0
	}

	codes := normalizeCodes(majors)
	lists := make([]MajorCourses, 0, len(codes))
	edges := make([]Edge, 0, len(codes)*len(electiveNumbers))

	for i, m := range codes {
		mc := MajorCourses{Major: m}
		for _, n := range coreNumbers {
			mc.Core = append(mc.Core, fmt.Sprintf("%s%d", m, n))
		}
		half := len(electiveNumbers) / 2
		for j, n := range electiveNumbers {
			code := fmt.Sprintf("%s%d", m, n)
			mc.Electives = append(mc.Electives, code)
			gate := mc.Core[0]
			if j >= half {
				gate = mc.Core[1]
			}
			edges = append(edges, Edge{Course: code, Prerequisite: gate})
		}

		others := make([]string, 0, len(codes)-1)
		for j, o := range codes {
			if j != i {
				others = append(others, fmt.Sprintf("%s%d", o, coreNumbers[0]))
			}
		}
		if rng != nil {
			rng.Shuffle(len(others), func(a, b int) { others[a], others[b] = others[b], others[a] })
		}
		n := relatedPerMajor
		if n > len(others) {
			n = len(others)
		}
		mc.Related = others[:n]

		lists = append(lists, mc)
	}

	return New(lists, edges)
}
