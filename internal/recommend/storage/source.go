// Wayfarer - Travel Place Listings and Personalized Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/wayfarer

package storage

import (
	"fmt"
	"io"

	"github.com/tomtom215/wayfarer/internal/config"
	"github.com/tomtom215/wayfarer/internal/recommend"
)

type nopCloser struct{}

func (nopCloser) Close() error { return nil }

// OpenConfigured builds the artifact source selected by cfg.Store.
// The closer releases the backing store and must be called on shutdown.
func OpenConfigured(cfg config.ArtifactsConfig) (recommend.ArtifactSource, io.Closer, error) {
	switch cfg.Store {
	case config.ArtifactStoreBadger:
		db, err := OpenBadger(cfg.BadgerPath)
		if err != nil {
			return nil, nil, err
		}
		return NewBadgerSource(db), db, nil
	case config.ArtifactStoreFile, "":
		return NewFileSource(cfg.Paths()), nopCloser{}, nil
	default:
		return nil, nil, fmt.Errorf("unknown artifact store %q", cfg.Store)
	}
}
