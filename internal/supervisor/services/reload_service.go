// Wayfarer - Travel Place Listings and Personalized Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/wayfarer

package services

import (
	"context"
	"time"

	"github.com/rs/zerolog"
)

// Reloader re-imports the data tables. *database.DB implements it.
type Reloader interface {
	Reload(ctx context.Context) error
}

// ReloadService re-imports the CSV tables on a fixed interval so edits to
// the files reach the API without a restart.
type ReloadService struct {
	db       Reloader
	interval time.Duration
	timeout  time.Duration
	logger   zerolog.Logger
}

// NewReloadService creates a reload service. A non-positive interval means 1h.
//
//nolint:gocritic // logger passed by value is acceptable for zerolog
func NewReloadService(db Reloader, interval time.Duration, logger zerolog.Logger) *ReloadService {
	if interval <= 0 {
		interval = time.Hour
	}
	return &ReloadService{
		db:       db,
		interval: interval,
		timeout:  5 * time.Minute,
		logger:   logger.With().Str("service", "data-reload").Logger(),
	}
}

// Serve implements suture.Service. A failed reload keeps the previous data
// and is retried on the next tick.
func (s *ReloadService) Serve(ctx context.Context) error {
	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	s.logger.Info().Dur("interval", s.interval).Msg("data reload service running")

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()

		case <-ticker.C:
			s.reload(ctx)
		}
	}
}

func (s *ReloadService) reload(ctx context.Context) {
	reloadCtx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	start := time.Now()
	if err := s.db.Reload(reloadCtx); err != nil {
		s.logger.Warn().Err(err).Msg("scheduled reload failed; keeping previous data")
		return
	}
	s.logger.Debug().Dur("duration", time.Since(start)).Msg("scheduled reload complete")
}

// String implements fmt.Stringer.
func (s *ReloadService) String() string {
	return "data-reload"
}
