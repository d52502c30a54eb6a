// Studypath - Prerequisite-Aware Course Recommendation
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/studypath

// Package bootstrap wires configuration to storage and the recommendation
// model. Both the server and studypathctl start through it:
//
//	repo, err := bootstrap.OpenRepository(&cfg.Storage)
//	cat, err := bootstrap.LoadCatalog(ctx, repo, &cfg.Recommend, logger)
//	model, err := recommend.NewHandle(ctx, cfg.Recommend.Model(), cat, repo, logger)
//
// A repository without a catalog is initialized from the configured seed
// and majors, and the demonstration students are saved alongside it.
package bootstrap
