// Studypath - Prerequisite-Aware Course Recommendation
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/studypath

/*
Package services provides Suture service wrappers for the server's
long-running components.

  - HTTPServerService: runs an *http.Server and shuts it down gracefully
  - TrainService: rebuilds the recommendation model on a fixed interval
  - MaintenanceService: periodic storage upkeep (Badger value log GC,
    DuckDB checkpoints)

Every service implements suture.Service (Serve(ctx) error) and
fmt.Stringer, returns ctx.Err() on shutdown, and returns a non-nil error
only for failures suture should restart it for.
*/
package services
