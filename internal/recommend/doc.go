// Studypath - Prerequisite-Aware Course Recommendation
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/studypath

// Package recommend implements the prerequisite-aware course recommendation model.
//
// # Architecture
//
// Training runs once per model and produces an immutable Model:
//
//   - Generate builds a synthetic population whose histories respect the
//     prerequisite graph, labeled with the courses each student can take next.
//   - Encoder maps profiles to fixed-width feature vectors.
//   - algorithms.BuildIndex standardizes the vectors and indexes them for
//     k-nearest-neighbor queries.
//
// # Policy
//
// Model.Explain answers a request in stages, stopping once the limit is met:
//
//   - cold_start: students with no history get the first core courses.
//   - neighbor: next courses of the k most similar training students,
//     revalidated against the requesting student's own history.
//   - rule: the eligibility scan of the major.
//   - fallback: GenericFallback.
//
// Unknown majors are served from the configured default major. The output
// never contains duplicates or completed courses.
//
// # Usage
//
//	cfg := recommend.DefaultConfig()
//	cat, _ := catalog.Generate(cfg.Majors, cfg.RelatedPerMajor, catalog.NewSource(cfg.Seed))
//	h, err := recommend.NewHandle(ctx, cfg, cat, store, logger)
//	if err != nil {
//	    return err
//	}
//	courses := h.Recommend(recommend.StudentProfile{
//	    Major:            "CS",
//	    Semester:         3,
//	    GPA:              3.4,
//	    CompletedCourses: []string{"CS101", "CS102"},
//	}, 5)
//
// # Thread Safety
//
// Models are immutable. Handle swaps models through an atomic pointer, so
// requests never wait on training. Rebuilds are serialized; a second
// concurrent Rebuild returns ErrTrainingInProgress.
package recommend
