// Studypath - Prerequisite-Aware Course Recommendation
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/studypath

package config

import (
	"os"
	"path/filepath"
	"reflect"
	"testing"
	"time"
)

// TestLoadWithKoanf_Defaults verifies loading with no file and no env vars
func TestLoadWithKoanf_Defaults(t *testing.T) {
	t.Setenv(ConfigPathEnvVar, "")
	t.Chdir(t.TempDir())

	cfg, err := LoadWithKoanf()
	if err != nil {
		t.Fatalf("LoadWithKoanf() error = %v", err)
	}
	want := defaultConfig()
	if cfg.Server.Port != want.Server.Port || cfg.Server.Timeout != want.Server.Timeout {
		t.Errorf("Server = %+v, want %+v", cfg.Server, want.Server)
	}
	if !reflect.DeepEqual(cfg.Recommend.Majors, want.Recommend.Majors) {
		t.Errorf("Recommend.Majors = %v, want %v", cfg.Recommend.Majors, want.Recommend.Majors)
	}
	if cfg.Recommend.TrainInterval != 24*time.Hour {
		t.Errorf("Recommend.TrainInterval = %v, want 24h", cfg.Recommend.TrainInterval)
	}
	if cfg.Storage != want.Storage {
		t.Errorf("Storage = %+v, want %+v", cfg.Storage, want.Storage)
	}
}

// TestLoadWithKoanf_EnvOverrides verifies the environment layer
func TestLoadWithKoanf_EnvOverrides(t *testing.T) {
	t.Setenv(ConfigPathEnvVar, "")
	t.Chdir(t.TempDir())
	t.Setenv("HTTP_PORT", "9090")
	t.Setenv("LOG_LEVEL", "debug")
	t.Setenv("RECOMMEND_MAJORS", "CS, MATH ,ENG")
	t.Setenv("RECOMMEND_SEED", "7")
	t.Setenv("RECOMMEND_TRAIN_INTERVAL", "6h")
	t.Setenv("RECOMMEND_REUSE_CORPUS", "false")
	t.Setenv("RECOMMEND_RESULT_CACHE_SIZE", "-1")
	t.Setenv("STORAGE_BACKEND", "badger")
	t.Setenv("STORAGE_PATH", "/tmp/studypath")
	t.Setenv("UNRELATED_SETTING", "ignored")

	cfg, err := LoadWithKoanf()
	if err != nil {
		t.Fatalf("LoadWithKoanf() error = %v", err)
	}

	if cfg.Server.Port != 9090 {
		t.Errorf("Server.Port = %d, want 9090", cfg.Server.Port)
	}
	if cfg.Logging.Level != "debug" {
		t.Errorf("Logging.Level = %q, want debug", cfg.Logging.Level)
	}
	if want := []string{"CS", "MATH", "ENG"}; !reflect.DeepEqual(cfg.Recommend.Majors, want) {
		t.Errorf("Recommend.Majors = %v, want %v", cfg.Recommend.Majors, want)
	}
	if cfg.Recommend.Seed != 7 {
		t.Errorf("Recommend.Seed = %d, want 7", cfg.Recommend.Seed)
	}
	if cfg.Recommend.TrainInterval != 6*time.Hour {
		t.Errorf("Recommend.TrainInterval = %v, want 6h", cfg.Recommend.TrainInterval)
	}
	if cfg.Recommend.ReuseCorpus {
		t.Error("Recommend.ReuseCorpus = true, want false")
	}
	if cfg.Recommend.ResultCacheSize != -1 {
		t.Errorf("Recommend.ResultCacheSize = %d, want -1", cfg.Recommend.ResultCacheSize)
	}
	if cfg.Storage.Backend != BackendBadger || cfg.Storage.Path != "/tmp/studypath" {
		t.Errorf("Storage = %+v, want badger at /tmp/studypath", cfg.Storage)
	}
}

// TestLoadFile verifies the YAML layer and that env vars still win
func TestLoadFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	yaml := `
server:
  port: 9000
  cors_origins:
    - https://example.edu
recommend:
  majors: [CS, MATH]
  default_major: MATH
  population_size: 250
  train_interval: 0s
storage:
  backend: memory
`
	if err := os.WriteFile(path, []byte(yaml), 0o600); err != nil {
		t.Fatal(err)
	}
	t.Setenv("HTTP_PORT", "9100")

	cfg, err := LoadFile(path)
	if err != nil {
		t.Fatalf("LoadFile() error = %v", err)
	}
	if cfg.Server.Port != 9100 {
		t.Errorf("Server.Port = %d, want env override 9100", cfg.Server.Port)
	}
	if want := []string{"https://example.edu"}; !reflect.DeepEqual(cfg.Server.CORSOrigins, want) {
		t.Errorf("Server.CORSOrigins = %v, want %v", cfg.Server.CORSOrigins, want)
	}
	if cfg.Recommend.DefaultMajor != "MATH" || cfg.Recommend.PopulationSize != 250 {
		t.Errorf("Recommend = %+v", cfg.Recommend)
	}
	if cfg.Recommend.TrainInterval != 0 {
		t.Errorf("Recommend.TrainInterval = %v, want 0", cfg.Recommend.TrainInterval)
	}
	if cfg.Storage.Backend != BackendMemory {
		t.Errorf("Storage.Backend = %q, want memory", cfg.Storage.Backend)
	}
}

func TestLoadFile_Invalid(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte("storage:\n  backend: floppy\n"), 0o600); err != nil {
		t.Fatal(err)
	}
	if _, err := LoadFile(path); err == nil {
		t.Error("LoadFile() with unknown backend succeeded")
	}
	if _, err := LoadFile(filepath.Join(t.TempDir(), "missing.yaml")); err == nil {
		t.Error("LoadFile() with missing file succeeded")
	}
}

func TestEnvTransformFunc(t *testing.T) {
	tests := []struct {
		key  string
		want string
	}{
		{"HTTP_PORT", "server.port"},
		{"DUCKDB_PATH", "storage.path"},
		{"RECOMMEND_NEIGHBORS", "recommend.neighbors"},
		{"PATH", ""},
		{"HOME", ""},
	}
	for _, tt := range tests {
		if got := envTransformFunc(tt.key); got != tt.want {
			t.Errorf("envTransformFunc(%q) = %q, want %q", tt.key, got, tt.want)
		}
	}
}
