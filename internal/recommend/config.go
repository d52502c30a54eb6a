// Studypath - Prerequisite-Aware Course Recommendation
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/studypath

package recommend

import (
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/tomtom215/studypath/internal/catalog"
)

// Config contains all configuration for the recommendation model.
type Config struct {
	// Seed drives catalog generation and the synthetic population.
	// Rebuild number n trains on a population generated with Seed+n.
	Seed int64 `json:"seed"`

	// Majors lists the generated majors in catalog order.
	Majors []string `json:"majors"`

	// RelatedPerMajor is how many other majors' introductory courses
	// each major lists as related.
	RelatedPerMajor int `json:"related_per_major"`

	// PopulationSize is the number of synthetic students per training run.
	// Default: 1000.
	PopulationSize int `json:"population_size"`

	// Neighbors is k for the similarity index.
	// Default: 5.
	Neighbors int `json:"neighbors"`

	// DefaultMajor is used for catalog lookups when a student's major is unknown.
	// Default: CS.
	DefaultMajor string `json:"default_major"`

	// Training contains training parameters.
	Training TrainingConfig `json:"training"`

	// Limits contains request limits.
	Limits LimitsConfig `json:"limits"`
}

// TrainingConfig contains training parameters.
type TrainingConfig struct {
	// Interval is the period of scheduled rebuilds. Zero disables them.
	// Default: 24h.
	Interval time.Duration `json:"interval"`

	// MinInterval is the minimum spacing of on-demand rebuilds.
	// Default: 1m.
	MinInterval time.Duration `json:"min_interval"`

	// Timeout bounds a single rebuild.
	// Default: 2m.
	Timeout time.Duration `json:"timeout"`

	// NumWorkers is the parallelism used to scale the feature matrix.
	// Zero uses GOMAXPROCS.
	NumWorkers int `json:"num_workers"`

	// ReuseCorpus loads the stored training corpus at startup instead of
	// generating a fresh one when a store holds one.
	ReuseCorpus bool `json:"reuse_corpus"`
}

// LimitsConfig contains request limits.
type LimitsConfig struct {
	// DefaultLimit applies when a request asks for zero or fewer courses.
	// Default: 5.
	DefaultLimit int `json:"default_limit"`

	// MaxLimit caps the number of courses per request.
	// Default: 20.
	MaxLimit int `json:"max_limit"`
}

// DefaultConfig returns a Config with sensible production defaults.
func DefaultConfig() *Config {
	return &Config{
		Seed:            42,
		Majors:          append([]string(nil), catalog.DefaultMajors...),
		RelatedPerMajor: 3,
		PopulationSize:  DefaultPopulationSize,
		Neighbors:       5,
		DefaultMajor:    "CS",
		Training: TrainingConfig{
			Interval:    24 * time.Hour,
			MinInterval: time.Minute,
			Timeout:     2 * time.Minute,
		},
		Limits: LimitsConfig{
			DefaultLimit: 5,
			MaxLimit:     20,
		},
	}
}

// Validate checks the configuration for errors.
//
//nolint:gocyclo // validation needs to check many fields
func (c *Config) Validate() error {
	if len(c.Majors) == 0 {
		return fmt.Errorf("majors must not be empty")
	}
	seen := make(map[string]struct{}, len(c.Majors))
	for _, m := range c.Majors {
		code := catalog.NormalizeCode(m)
		if code == "" {
			return fmt.Errorf("majors must not contain empty codes")
		}
		if _, dup := seen[code]; dup {
			return fmt.Errorf("majors contains %s twice", code)
		}
		seen[code] = struct{}{}
	}
	if _, ok := seen[catalog.NormalizeCode(c.DefaultMajor)]; !ok {
		return fmt.Errorf("default_major %q must be one of majors [%s]", c.DefaultMajor, strings.Join(c.Majors, ", "))
	}

	if c.RelatedPerMajor < 0 {
		return fmt.Errorf("related_per_major must be non-negative, got %d", c.RelatedPerMajor)
	}
	if c.PopulationSize < 1 {
		return fmt.Errorf("population_size must be positive, got %d", c.PopulationSize)
	}
	if c.Neighbors < 1 {
		return fmt.Errorf("neighbors must be positive, got %d", c.Neighbors)
	}

	if c.Training.Interval < 0 {
		return fmt.Errorf("training.interval must be non-negative, got %v", c.Training.Interval)
	}
	if c.Training.MinInterval < 0 {
		return fmt.Errorf("training.min_interval must be non-negative, got %v", c.Training.MinInterval)
	}
	if c.Training.Timeout <= 0 {
		return fmt.Errorf("training.timeout must be positive, got %v", c.Training.Timeout)
	}
	if c.Training.NumWorkers < 0 {
		return fmt.Errorf("training.num_workers must be non-negative, got %d", c.Training.NumWorkers)
	}

	if c.Limits.DefaultLimit < 1 {
		return fmt.Errorf("limits.default_limit must be positive, got %d", c.Limits.DefaultLimit)
	}
	if c.Limits.MaxLimit < c.Limits.DefaultLimit {
		return fmt.Errorf("limits.max_limit must be >= limits.default_limit, got %d < %d", c.Limits.MaxLimit, c.Limits.DefaultLimit)
	}

	return nil
}

// Clone returns a deep copy of the configuration.
func (c *Config) Clone() *Config {
	out := *c
	out.Majors = append([]string(nil), c.Majors...)
	return &out
}

// MarshalJSON implements custom JSON marshaling for duration fields.
func (c *Config) MarshalJSON() ([]byte, error) {
	type Alias Config
	return json.Marshal(&struct {
		*Alias
		Training struct {
			Interval    string `json:"interval"`
			MinInterval string `json:"min_interval"`
			Timeout     string `json:"timeout"`
			NumWorkers  int    `json:"num_workers"`
			ReuseCorpus bool   `json:"reuse_corpus"`
		} `json:"training"`
	}{
		Alias: (*Alias)(c),
		Training: struct {
			Interval    string `json:"interval"`
			MinInterval string `json:"min_interval"`
			Timeout     string `json:"timeout"`
			NumWorkers  int    `json:"num_workers"`
			ReuseCorpus bool   `json:"reuse_corpus"`
		}{
			Interval:    c.Training.Interval.String(),
			MinInterval: c.Training.MinInterval.String(),
			Timeout:     c.Training.Timeout.String(),
			NumWorkers:  c.Training.NumWorkers,
			ReuseCorpus: c.Training.ReuseCorpus,
		},
	})
}
