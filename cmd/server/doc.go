// Studypath - Prerequisite-Aware Course Recommendation
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/studypath

/*
Package main is the entry point for the Studypath server.

Studypath recommends the next courses for a student from a generated course
catalog with prerequisites. A k-nearest-neighbor index over a synthetic
student population supplies suggestions, and every suggestion is checked
against the prerequisite graph before it is returned.

# Application Architecture

The server runs under a Suture v4 supervisor tree:

	RootSupervisor ("studypath")
	├── DataSupervisor ("data-layer")
	│   └── Storage maintenance (DuckDB checkpoint, Badger value log GC)
	├── TrainingSupervisor ("training-layer")
	│   └── Train service (scheduled model rebuilds)
	└── APISupervisor ("api-layer")
	    └── HTTP Server

Startup order:

 1. Configuration: Koanf v2 with defaults, config.yaml and environment variables
 2. Logging: zerolog, JSON or console
 3. Storage: memory, DuckDB or BadgerDB, wrapped with storage metrics
 4. Catalog: loaded from storage, or generated and saved on first start
 5. Model: trained before the server accepts requests; failure exits
 6. Supervisor tree: services above, until SIGINT or SIGTERM

# Configuration

Common environment variables:

	HTTP_PORT=8080
	LOG_LEVEL=info
	LOG_FORMAT=json
	STORAGE_BACKEND=duckdb          # memory, duckdb or badger
	STORAGE_PATH=/data/studypath.duckdb
	RECOMMEND_SEED=42
	RECOMMEND_MAJORS=CS,MATH,ENG,PHYS,BIO
	RECOMMEND_TRAIN_INTERVAL=24h    # 0 disables scheduled rebuilds

# Example Usage

	STORAGE_BACKEND=memory LOG_FORMAT=console ./studypath

	curl -s -X POST localhost:8080/api/v1/recommendations \
	  -d '{"major":"CS","semester":2,"gpa":3.4,"completed_courses":["CS101"]}'

# Signal Handling

SIGINT and SIGTERM cancel the root context. The HTTP server drains
in-flight requests for up to 10s, then the repository is closed.
*/
package main
