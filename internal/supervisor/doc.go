// Studypath - Prerequisite-Aware Course Recommendation
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/studypath

/*
Package supervisor provides Suture-based process supervision for the server.

The tree has three layers under one root:

	studypath (root)
	├── data-layer       storage maintenance (value log GC, checkpoints)
	├── training-layer   scheduled model rebuilds
	└── api-layer        HTTP server

Each layer is its own suture.Supervisor, so a service that keeps failing
backs off within its layer without restarting the others. Supervisor
events are written through sutureslog into the zerolog-backed slog handler
from the logging package.

Usage:

	tree, err := supervisor.NewSupervisorTree(logging.NewSlogLogger(), supervisor.DefaultTreeConfig())
	if err != nil {
	    return err
	}
	tree.AddTrainingService(services.NewTrainService(model, cfg, logger))
	tree.AddAPIService(services.NewHTTPServerService(srv, 10*time.Second))

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	if err := tree.Serve(ctx); err != nil && !errors.Is(err, context.Canceled) {
	    return err
	}
*/
package supervisor
