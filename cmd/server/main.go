// Wayfarer - Travel Place Listings and Personalized Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/wayfarer

package main

import (
	"context"
	"errors"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/tomtom215/wayfarer/internal/api"
	"github.com/tomtom215/wayfarer/internal/authz"
	"github.com/tomtom215/wayfarer/internal/config"
	"github.com/tomtom215/wayfarer/internal/database"
	"github.com/tomtom215/wayfarer/internal/logging"
	"github.com/tomtom215/wayfarer/internal/metrics"
	"github.com/tomtom215/wayfarer/internal/recommend"
	"github.com/tomtom215/wayfarer/internal/recommend/storage"
	"github.com/tomtom215/wayfarer/internal/supervisor"
	"github.com/tomtom215/wayfarer/internal/supervisor/services"
)

// version is set at build time with -ldflags "-X main.version=...".
var version = "dev"

//nolint:gocyclo // sequential startup
func main() {
	cfg, err := config.Load()
	if err != nil {
		logging.Fatal().Err(err).Msg("Failed to load configuration")
	}

	logging.Init(logging.Config{
		Level:     cfg.Logging.Level,
		Format:    cfg.Logging.Format,
		Caller:    cfg.Logging.Caller,
		Timestamp: true,
	})

	logging.Info().Str("version", version).Msg("Starting Wayfarer")
	logging.Info().
		Str("data_dir", cfg.Data.Dir).
		Str("artifact_store", cfg.Artifacts.Store).
		Str("default_kind", cfg.Recommend.DefaultKind).
		Str("cold_start", cfg.Recommend.ColdStart).
		Msg("Configuration loaded")

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	db, err := database.New(ctx, &cfg.Database, cfg.Data, logging.WithComponent("database"))
	if err != nil {
		logging.Fatal().Err(err).Msg("Failed to initialize database")
	}
	defer func() {
		if err := db.Close(); err != nil {
			logging.Error().Err(err).Msg("Error closing database")
		}
	}()
	logging.Info().Interface("tables", db.TableRows()).Msg("Database initialized")

	interactions, err := database.NewInteractions(db, cfg.Recommend.UserKeyField, cfg.Recommend.ItemKeyField)
	if err != nil {
		logging.Fatal().Err(err).Msg("Failed to configure interaction table")
	}

	source, closer, err := storage.OpenConfigured(cfg.Artifacts)
	if err != nil {
		logging.Fatal().Err(err).Msg("Failed to open artifact source")
	}
	defer func() {
		if err := closer.Close(); err != nil {
			logging.Error().Err(err).Msg("Error closing artifact store")
		}
	}()

	store := recommend.NewStore(source, logging.WithComponent("artifacts"),
		recommend.WithLoadHook(func(kind recommend.ModelKind, d time.Duration, err error) {
			metrics.RecordArtifactLoad(kind.String(), d, err)
		}),
		recommend.WithCacheHook(metrics.RecordArtifactCache),
		recommend.WithLoadTimeout(cfg.Recommend.LoadTimeout),
	)
	recommender := recommend.NewRecommender(store, interactions, logging.WithComponent("recommend"),
		recommend.WithColdStartPolicy(cfg.Recommend.ColdStartPolicy()),
	)

	enforcer, err := authz.NewEnforcer(&authz.EnforcerConfig{PolicyPath: cfg.Security.AuthzPolicyPath})
	if err != nil {
		logging.Fatal().Err(err).Msg("Failed to initialize authorization")
	}
	if enforcer.FromFile() {
		logging.Info().Str("path", cfg.Security.AuthzPolicyPath).Msg("Authorization policy loaded from file")
	}

	handler := api.NewHandler(db, recommender, store, cfg, version)
	chiMw := api.NewChiMiddleware(api.NewChiMiddlewareConfig(cfg.Security))
	router := api.NewRouter(handler, chiMw, enforcer)

	server := &http.Server{
		Addr:              cfg.Server.Addr(),
		Handler:           router.SetupChi(),
		ReadHeaderTimeout: 10 * time.Second,
		ReadTimeout:       cfg.Server.Timeout,
		WriteTimeout:      cfg.Server.Timeout,
		IdleTimeout:       60 * time.Second,
	}

	tree, err := supervisor.NewSupervisorTree(logging.NewSlogLogger(), supervisor.TreeConfig{
		ShutdownTimeout: cfg.Server.ShutdownTimeout,
	})
	if err != nil {
		logging.Fatal().Err(err).Msg("Failed to create supervisor tree")
	}

	tree.AddDataService(services.NewWarmupService(store, cfg.Recommend.PreloadKinds(),
		cfg.Recommend.PreloadTimeout, logging.WithComponent("supervisor")))
	if cfg.Data.ReloadInterval > 0 {
		tree.AddDataService(services.NewReloadService(db, cfg.Data.ReloadInterval, logging.WithComponent("supervisor")))
		logging.Info().Dur("interval", cfg.Data.ReloadInterval).Msg("Periodic data reload enabled")
	}
	tree.AddAPIService(services.NewHTTPServerService(server, cfg.Server.ShutdownTimeout))
	logging.Info().Str("addr", server.Addr).Msg("HTTP server service added")

	errCh := tree.ServeBackground(ctx)

	var treeErr error
	select {
	case <-ctx.Done():
		logging.Info().Msg("Shutdown signal received, waiting for supervisor to finish")
		treeErr = <-errCh
	case treeErr = <-errCh:
	}
	if treeErr != nil && !errors.Is(treeErr, context.Canceled) {
		logging.Error().Err(treeErr).Msg("Supervisor tree error")
	}

	if unstopped, _ := tree.UnstoppedServiceReport(); len(unstopped) > 0 { //nolint:errcheck // best-effort report
		for _, svc := range unstopped {
			logging.Warn().Str("service", svc.Name).Msg("Service failed to stop")
		}
	}

	logging.Info().Msg("Wayfarer stopped")
}
