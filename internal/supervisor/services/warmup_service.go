// Wayfarer - Travel Place Listings and Personalized Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/wayfarer

package services

import (
	"context"
	"time"

	"github.com/rs/zerolog"
	"github.com/thejerf/suture/v4"

	"github.com/tomtom215/wayfarer/internal/recommend"
)

// Preloader loads artifacts ahead of the first request.
// *recommend.Store implements it.
type Preloader interface {
	Preload(ctx context.Context, kinds ...recommend.ModelKind) error
}

// WarmupService loads the configured artifact kinds once at startup.
//
// Failures are logged and never crash the tree: a kind that failed to
// preload is loaded again on its first request.
type WarmupService struct {
	store   Preloader
	kinds   []recommend.ModelKind
	timeout time.Duration
	logger  zerolog.Logger
}

// NewWarmupService creates a warmup service. A non-positive timeout means 30s.
//
//nolint:gocritic // logger passed by value is acceptable for zerolog
func NewWarmupService(store Preloader, kinds []recommend.ModelKind, timeout time.Duration, logger zerolog.Logger) *WarmupService {
	if timeout <= 0 {
		timeout = 30 * time.Second
	}
	return &WarmupService{
		store:   store,
		kinds:   kinds,
		timeout: timeout,
		logger:  logger.With().Str("service", "artifact-warmup").Logger(),
	}
}

// Serve implements suture.Service. It returns suture.ErrDoNotRestart once
// the preload attempt is finished, whatever its outcome.
func (s *WarmupService) Serve(ctx context.Context) error {
	if len(s.kinds) == 0 {
		s.logger.Debug().Msg("no artifact kinds to preload")
		return suture.ErrDoNotRestart
	}

	loadCtx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	start := time.Now()
	if err := s.store.Preload(loadCtx, s.kinds...); err != nil {
		if ctx.Err() != nil {
			return ctx.Err()
		}
		s.logger.Warn().Err(err).Dur("duration", time.Since(start)).
			Msg("artifact preload incomplete; missing kinds load on first request")
		return suture.ErrDoNotRestart
	}

	s.logger.Info().Int("kinds", len(s.kinds)).Dur("duration", time.Since(start)).Msg("artifacts preloaded")
	return suture.ErrDoNotRestart
}

// String implements fmt.Stringer.
func (s *WarmupService) String() string {
	return "artifact-warmup"
}
