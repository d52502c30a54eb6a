// Studypath - Prerequisite-Aware Course Recommendation
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/studypath

// Command studypathctl manages a Studypath repository from the shell:
// generating the catalog and training corpus, checking what is stored, and
// running one-off recommendations without the HTTP server.
//
// It reads the same configuration as the server (config.yaml and
// environment variables); --backend and --path override the storage section.
package main

import (
	"fmt"
	"io"
	"os"

	"github.com/goccy/go-json"
	"github.com/spf13/cobra"

	"github.com/tomtom215/studypath/internal/bootstrap"
	"github.com/tomtom215/studypath/internal/config"
	"github.com/tomtom215/studypath/internal/logging"
	"github.com/tomtom215/studypath/internal/store"
)

// rootOptions holds the persistent flags shared by every subcommand.
type rootOptions struct {
	configPath string
	backend    string
	path       string
	logLevel   string
}

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	opts := &rootOptions{}

	root := &cobra.Command{
		Use:           "studypathctl",
		Short:         "Manage the Studypath course catalog, corpus and model",
		SilenceUsage: true,
	}

	flags := root.PersistentFlags()
	flags.StringVar(&opts.configPath, "config", "", "config file (default: CONFIG_PATH or ./config.yaml)")
	flags.StringVar(&opts.backend, "backend", "", "storage backend override: memory, duckdb or badger")
	flags.StringVar(&opts.path, "path", "", "storage path override")
	flags.StringVar(&opts.logLevel, "log-level", "warn", "log level: trace, debug, info, warn, error")

	root.AddCommand(
		newGenerateCmd(opts),
		newRecommendCmd(opts),
		newCourseCmd(opts),
		newValidateCmd(opts),
	)
	return root
}

// load reads configuration, applies flag overrides and initializes logging
// to the command's stderr.
func (o *rootOptions) load(cmd *cobra.Command) (*config.Config, error) {
	var (
		cfg *config.Config
		err error
	)
	if o.configPath != "" {
		cfg, err = config.LoadFile(o.configPath)
	} else {
		cfg, err = config.LoadWithKoanf()
	}
	if err != nil {
		return nil, err
	}

	if o.backend != "" {
		cfg.Storage.Backend = o.backend
	}
	if o.path != "" {
		cfg.Storage.Path = o.path
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	logging.Init(logging.Config{
		Level:  o.logLevel,
		Format: "console",
		Output: cmd.ErrOrStderr(),
	})
	return cfg, nil
}

// open loads configuration and opens the repository. The caller closes it.
func (o *rootOptions) open(cmd *cobra.Command) (*config.Config, *store.Instrumented, error) {
	cfg, err := o.load(cmd)
	if err != nil {
		return nil, nil, err
	}
	repo, err := bootstrap.OpenRepository(&cfg.Storage)
	if err != nil {
		return nil, nil, err
	}
	return cfg, repo, nil
}

func closeRepo(repo store.Repository) {
	if err := repo.Close(); err != nil {
		logging.Err(err).Msg("Error closing repository")
	}
}

func printJSON(w io.Writer, v interface{}) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("encode output: %w", err)
	}
	_, err = fmt.Fprintln(w, string(data))
	return err
}
