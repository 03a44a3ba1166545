// Wayfarer - Travel Place Listings and Personalized Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/wayfarer

package api

import (
	"context"
	"time"

	"github.com/tomtom215/wayfarer/internal/config"
	"github.com/tomtom215/wayfarer/internal/models"
	"github.com/tomtom215/wayfarer/internal/recommend"
)

// DataStore is the read side of the CSV tables plus reload.
// *database.DB implements it.
type DataStore interface {
	Ping(ctx context.Context) error
	TableRows() map[string]int
	Reload(ctx context.Context) error

	ListUsers(ctx context.Context) ([]models.User, error)
	UserByName(ctx context.Context, name string) (models.User, error)
	UserByID(ctx context.Context, id string) (models.User, error)
	UserPlaces(ctx context.Context, userID string) ([]models.UserPlace, error)

	ListPlaces(ctx context.Context) ([]models.Place, error)
	PlaceByID(ctx context.Context, id string) (models.Place, error)
	SearchPlaces(ctx context.Context, q string) ([]models.Place, error)
	VisitedPlaces(ctx context.Context, userID string) ([]models.Place, error)
	PlacesByKeys(ctx context.Context, field string, keys []string) ([]models.Place, error)

	Comments(ctx context.Context, filter models.CommentFilter) ([]models.Comment, error)
	Ratings(ctx context.Context) (map[string]models.Rating, error)
}

// Recommender ranks places for a user. *recommend.Recommender implements it.
type Recommender interface {
	Recommend(ctx context.Context, userKey string, kind recommend.ModelKind, k int) (*recommend.Result, error)
}

// ArtifactCache exposes the loaded embedding artifacts.
// *recommend.Store implements it.
type ArtifactCache interface {
	Load(ctx context.Context, kind recommend.ModelKind) (*recommend.Artifact, error)
	Loaded(kind recommend.ModelKind) bool
	Invalidate(kind recommend.ModelKind)
}

// Handler contains dependencies for API handlers.
//
// Handler methods are split across files by resource:
//   - handlers_health.go: liveness and readiness
//   - handlers_auth.go: login, bearer auth, profile
//   - handlers_users.go: users and visits
//   - handlers_places.go: places, comments, ratings, summary
//   - handlers_recommend.go: recommendations
//   - handlers_admin.go: reload and artifact invalidation
type Handler struct {
	db          DataStore
	recommender Recommender
	artifacts   ArtifactCache
	config      *config.Config
	version     string
	startTime   time.Time
}

// NewHandler creates a new API handler.
func NewHandler(db DataStore, recommender Recommender, artifacts ArtifactCache, cfg *config.Config, version string) *Handler {
	return &Handler{
		db:          db,
		recommender: recommender,
		artifacts:   artifacts,
		config:      cfg,
		version:     version,
		startTime:   time.Now(),
	}
}
