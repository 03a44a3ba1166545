// Wayfarer - Travel Place Listings and Personalized Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/wayfarer

/*
Package supervisor runs the server's long-lived services under a suture/v4
supervisor tree.

	wayfarer (root)
	├── data-layer
	│   ├── artifact-warmup   preloads embedding artifacts once
	│   └── data-reload       re-imports CSV tables on an interval
	└── api-layer
	    └── http-server

Suture events are logged through sutureslog, which takes a *slog.Logger.
Pass logging.NewSlogLogger() so supervisor events reach zerolog.

Usage:

	tree, err := supervisor.NewSupervisorTree(logging.NewSlogLogger(), supervisor.DefaultTreeConfig())
	if err != nil {
	    return err
	}
	tree.AddDataService(services.NewWarmupService(store, kinds, timeout, logger))
	tree.AddAPIService(services.NewHTTPServerService(server, cfg.Server.ShutdownTimeout))

	errCh := tree.ServeBackground(ctx)
	<-ctx.Done()
	<-errCh

See the services subpackage for the service implementations.
*/
package supervisor
