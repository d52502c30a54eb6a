// Studypath - Prerequisite-Aware Course Recommendation
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/studypath

// Package catalog models the per-major course taxonomy and the prerequisite
// graph that the recommendation engine reasons about.
//
// # Structure
//
// Each major owns three ordered course sequences:
//
//   - Core: required courses chained sequentially (Core[i] requires Core[i-1])
//   - Electives: optional courses gated on the first two core courses
//   - Related: introductory courses borrowed from other majors, no prerequisites
//
// The prerequisite relation is a directed acyclic graph keyed by course code.
// Construction rejects self-loops, cycles and references to unknown courses,
// so a *Catalog that exists is always valid.
//
// # Thread Safety
//
// A Catalog is read-only after construction and safe for concurrent use
// without locking.
//
// # Course Details
//
// Details returns presentation metadata for a course. Courses with an
// authoritative record return it as-is; other catalog courses get a
// synthesized record flagged with Synthesized=true. Codes that belong to no
// major return ErrCourseNotFound.
package catalog
