// Studypath - Prerequisite-Aware Course Recommendation
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/studypath

/*
Package config provides centralized configuration management for Studypath.

# Configuration Sources

Configuration is loaded with koanf in three layers, each overriding the last:

 1. Struct defaults (defaultConfig)
 2. An optional YAML file: $CONFIG_PATH, then config.yaml / config.yml,
    then /etc/studypath/config.yaml
 3. Environment variables

Only mapped environment variables are read, so unrelated variables in the
process environment never leak into the configuration.

# Environment Variables

HTTP Server:
  - HTTP_HOST: Bind address (default: 0.0.0.0)
  - HTTP_PORT: Listen port (default: 8080)
  - HTTP_TIMEOUT: Request timeout (default: 30s)
  - CORS_ORIGINS: Comma-separated allowed origins (default: *)
  - RATE_LIMIT_REQUESTS: Requests per window per client (default: 100)
  - RATE_LIMIT_WINDOW: Rate limit window (default: 1m)
  - RATE_LIMIT_DISABLED: Disable request rate limiting (default: false)

Logging:
  - LOG_LEVEL: trace, debug, info, warn, error (default: info)
  - LOG_FORMAT: json or console (default: json)
  - LOG_CALLER: Include caller file:line (default: false)

Recommendation model:
  - RECOMMEND_SEED: Seed for catalog and population generation (default: 42)
  - RECOMMEND_MAJORS: Comma-separated majors (default: CS,MATH,ENG,PHYS,BIO)
  - RECOMMEND_RELATED_PER_MAJOR: Related courses per major (default: 3)
  - RECOMMEND_POPULATION_SIZE: Synthetic students per training run (default: 1000)
  - RECOMMEND_NEIGHBORS: k for the similarity index (default: 5)
  - RECOMMEND_DEFAULT_MAJOR: Fallback major for unknown majors (default: CS)
  - RECOMMEND_DEFAULT_LIMIT / RECOMMEND_MAX_LIMIT: Result sizes (default: 5 / 20)
  - RECOMMEND_TRAIN_INTERVAL: Scheduled rebuild period, 0 disables (default: 24h)
  - RECOMMEND_RETRAIN_MIN_INTERVAL: Spacing of on-demand rebuilds (default: 1m)
  - RECOMMEND_TRAIN_TIMEOUT: Bound on one rebuild (default: 2m)
  - RECOMMEND_REUSE_CORPUS: Train on the stored corpus at startup (default: true)
  - RECOMMEND_RESULT_CACHE_SIZE: Memoized API responses, negative disables (default: 1024)
  - RECOMMEND_RESULT_CACHE_TTL: Lifetime of a memoized response (default: 10m)

Storage:
  - STORAGE_BACKEND: memory, duckdb or badger (default: duckdb)
  - STORAGE_PATH: Database file or directory (default: /data/studypath.duckdb)
  - DUCKDB_MAX_MEMORY: DuckDB memory limit (default: 1GB)
  - DUCKDB_THREADS: DuckDB threads, 0 uses NumCPU (default: 0)

# Usage

	cfg, err := config.LoadWithKoanf()
	if err != nil {
	    logging.Fatal().Err(err).Msg("Failed to load configuration")
	}
	handle, err := recommend.NewHandle(ctx, cfg.Recommend.Model(), cat, repo, logger)

Validate is run by LoadWithKoanf; call it again after modifying a Config by hand.
*/
package config
