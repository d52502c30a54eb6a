// Studypath - Prerequisite-Aware Course Recommendation
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/studypath

package config

import (
	"time"

	"github.com/tomtom215/studypath/internal/recommend"
)

// Storage backends.
const (
	BackendMemory = "memory"
	BackendDuckDB = "duckdb"
	BackendBadger = "badger"
)

// Config holds all application configuration.
type Config struct {
	Server    ServerConfig    `koanf:"server"`
	Logging   LoggingConfig   `koanf:"logging"`
	Recommend RecommendConfig `koanf:"recommend"`
	Storage   StorageConfig   `koanf:"storage"`
}

// ServerConfig holds HTTP server settings
type ServerConfig struct {
	Host              string        `koanf:"host"`
	Port              int           `koanf:"port"`
	Timeout           time.Duration `koanf:"timeout"`
	CORSOrigins       []string      `koanf:"cors_origins"`
	RateLimitReqs     int           `koanf:"rate_limit_reqs"`
	RateLimitWindow   time.Duration `koanf:"rate_limit_window"`
	RateLimitDisabled bool          `koanf:"rate_limit_disabled"`
}

// LoggingConfig holds logging configuration.
type LoggingConfig struct {
	// Level is the minimum log level: trace, debug, info, warn, error.
	// Default: info
	Level string `koanf:"level"`

	// Format is the output format: json or console.
	// Default: json
	Format string `koanf:"format"`

	// Caller includes caller file and line number in logs.
	// Default: false
	Caller bool `koanf:"caller"`
}

// RecommendConfig holds recommendation model settings.
type RecommendConfig struct {
	Seed               int64         `koanf:"seed"`
	Majors             []string      `koanf:"majors"`
	RelatedPerMajor    int           `koanf:"related_per_major"`
	PopulationSize     int           `koanf:"population_size"`
	Neighbors          int           `koanf:"neighbors"`
	DefaultMajor       string        `koanf:"default_major"`
	DefaultLimit       int           `koanf:"default_limit"`
	MaxLimit           int           `koanf:"max_limit"`
	TrainInterval      time.Duration `koanf:"train_interval"`
	RetrainMinInterval time.Duration `koanf:"retrain_min_interval"`
	TrainTimeout       time.Duration `koanf:"train_timeout"`
	NumWorkers         int           `koanf:"num_workers"`
	ReuseCorpus        bool          `koanf:"reuse_corpus"`
	ResultCacheSize    int           `koanf:"result_cache_size"` // negative disables the API result cache
	ResultCacheTTL     time.Duration `koanf:"result_cache_ttl"`
}

// StorageConfig selects and tunes the persistence backend.
type StorageConfig struct {
	Backend   string `koanf:"backend"`
	Path      string `koanf:"path"`
	MaxMemory string `koanf:"duckdb_max_memory"`
	Threads   int    `koanf:"duckdb_threads"` // Number of DuckDB threads (0 = use NumCPU)
}

// Model converts the section into the model configuration.
//
//nolint:gocritic // hugeParam
func (r RecommendConfig) Model() *recommend.Config {
	cfg := recommend.DefaultConfig()
	cfg.Seed = r.Seed
	cfg.Majors = append([]string(nil), r.Majors...)
	cfg.RelatedPerMajor = r.RelatedPerMajor
	cfg.PopulationSize = r.PopulationSize
	cfg.Neighbors = r.Neighbors
	cfg.DefaultMajor = r.DefaultMajor
	cfg.Limits.DefaultLimit = r.DefaultLimit
	cfg.Limits.MaxLimit = r.MaxLimit
	cfg.Training.Interval = r.TrainInterval
	cfg.Training.MinInterval = r.RetrainMinInterval
	cfg.Training.Timeout = r.TrainTimeout
	cfg.Training.NumWorkers = r.NumWorkers
	cfg.Training.ReuseCorpus = r.ReuseCorpus
	return cfg
}
