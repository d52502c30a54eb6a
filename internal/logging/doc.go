// Studypath - Prerequisite-Aware Course Recommendation
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/studypath

// Package logging provides centralized zerolog-based structured logging for Studypath.
//
// # Quick Start
//
//	logging.Init(logging.Config{
//	    Level:  "info",
//	    Format: "json",
//	})
//
//	logging.Info().Str("backend", "duckdb").Msg("Repository opened")
//	logging.Err(err).Msg("Rebuild failed")
//
// Components take a zerolog.Logger and derive their own child:
//
//	logger := logging.WithComponent("recommend")
//	handle, err := recommend.NewHandle(ctx, cfg, cat, repo, logger)
//
// # Request Context
//
// The API middleware stores a request ID in the request context. Ctx adds
// it to every line logged for that request:
//
//	logging.Ctx(r.Context()).Warn().Str("major", major).Msg("Unknown major")
//
// # slog Adapter
//
// SlogHandler routes log/slog records into zerolog. The supervisor tree uses
// it so sutureslog events share the application's format and level:
//
//	handler := &sutureslog.Handler{Logger: logging.NewSlogLogger()}
//
// # Best Practices
//
// Always terminate log chains with .Msg() or .Send():
//
//	logging.Info().Str("key", "value").Msg("message")  // Correct
//	logging.Info().Str("key", "value")                 // WRONG - log not emitted
package logging
