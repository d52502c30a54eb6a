// Studypath - Prerequisite-Aware Course Recommendation
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/studypath

package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/tomtom215/studypath/internal/api"
	"github.com/tomtom215/studypath/internal/bootstrap"
	"github.com/tomtom215/studypath/internal/config"
	"github.com/tomtom215/studypath/internal/logging"
	"github.com/tomtom215/studypath/internal/recommend"
	"github.com/tomtom215/studypath/internal/store"
	"github.com/tomtom215/studypath/internal/supervisor"
	"github.com/tomtom215/studypath/internal/supervisor/services"
)

// version is set at build time with -ldflags "-X main.version=...".
var version = "dev"

func main() {
	if err := run(); err != nil {
		logging.Err(err).Msg("Studypath exited with error")
		os.Exit(1)
	}
}

func run() error {
	// Load configuration first to get logging settings
	cfg, err := config.LoadWithKoanf()
	if err != nil {
		return fmt.Errorf("load configuration: %w", err)
	}

	logging.Init(logging.Config{
		Level:  cfg.Logging.Level,
		Format: cfg.Logging.Format,
		Caller: cfg.Logging.Caller,
	})

	logging.Info().
		Str("version", version).
		Str("backend", cfg.Storage.Backend).
		Int64("seed", cfg.Recommend.Seed).
		Strs("majors", cfg.Recommend.Majors).
		Msg("Starting Studypath with supervisor tree")

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	repo, err := bootstrap.OpenRepository(&cfg.Storage)
	if err != nil {
		return err
	}
	defer func() {
		if err := repo.Close(); err != nil {
			logging.Err(err).Msg("Error closing repository")
		}
	}()

	cat, err := bootstrap.LoadCatalog(ctx, repo, &cfg.Recommend, logging.WithComponent("bootstrap"))
	if err != nil {
		return err
	}

	// The first model must train before the API starts serving.
	model, err := recommend.NewHandle(ctx, cfg.Recommend.Model(), cat, repo, logging.Logger())
	if err != nil {
		return fmt.Errorf("initialize recommendation model: %w", err)
	}

	// Bridges zerolog to slog for sutureslog
	tree, err := supervisor.NewSupervisorTree(logging.NewSlogLogger(), supervisor.TreeConfig{
		FailureThreshold: 5,
		FailureBackoff:   15 * time.Second,
		ShutdownTimeout:  10 * time.Second,
	})
	if err != nil {
		return fmt.Errorf("create supervisor tree: %w", err)
	}

	if _, ok := repo.Unwrap().(store.Maintainer); ok {
		tree.AddDataService(services.NewMaintenanceService(repo, services.DefaultMaintenanceInterval, logging.Logger()))
		logging.Info().Str("backend", cfg.Storage.Backend).Msg("Storage maintenance service added")
	}

	tree.AddTrainingService(services.NewTrainService(model, services.TrainServiceConfig{
		Interval: cfg.Recommend.TrainInterval,
	}, logging.Logger()))

	handler := api.NewHandler(model, repo, api.HandlerConfig{
		Version:            version,
		Backend:            cfg.Storage.Backend,
		RetrainMinInterval: cfg.Recommend.RetrainMinInterval,
		RequestTimeout:     cfg.Server.Timeout,
		ResultCacheSize:    cfg.Recommend.ResultCacheSize,
		ResultCacheTTL:     cfg.Recommend.ResultCacheTTL,
	})
	router := api.NewRouter(handler, api.NewChiMiddlewareFromServer(&cfg.Server))

	server := &http.Server{
		Addr:              fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port),
		Handler:           router.Setup(),
		ReadHeaderTimeout: 10 * time.Second,
		ReadTimeout:       cfg.Server.Timeout,
		// Retrain responds after a full rebuild.
		WriteTimeout: cfg.Server.Timeout + cfg.Recommend.TrainTimeout,
		IdleTimeout:  60 * time.Second,
	}
	tree.AddAPIService(services.NewHTTPServerService(server, 10*time.Second))
	logging.Info().Str("addr", server.Addr).Msg("HTTP server service added")

	logging.Info().Msg("Starting supervisor tree...")
	errCh := tree.ServeBackground(ctx)

	select {
	case <-ctx.Done():
		logging.Info().Msg("Shutdown signal received, waiting for supervisor to finish...")
		err = <-errCh
	case err = <-errCh:
	}
	if err != nil && !errors.Is(err, context.Canceled) {
		logging.Err(err).Msg("Supervisor tree error")
	}

	unstopped, _ := tree.UnstoppedServiceReport()
	for _, svc := range unstopped {
		logging.Warn().Str("service", svc.Name).Msg("Service failed to stop within timeout")
	}

	logging.Info().Msg("Application stopped gracefully")
	return nil
}
