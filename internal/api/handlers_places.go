// Wayfarer - Travel Place Listings and Personalized Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/wayfarer

package api

import (
	"errors"
	"io/fs"
	"net/http"
	"os"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/tomtom215/wayfarer/internal/database"
	"github.com/tomtom215/wayfarer/internal/models"
)

// Places handles GET /api/v1/places.
func (h *Handler) Places(w http.ResponseWriter, r *http.Request) {
	start := time.Now()

	places, err := h.db.ListPlaces(r.Context())
	if err != nil {
		respondError(w, http.StatusInternalServerError, models.ErrCodeDatabase, "Failed to list places", err)
		return
	}
	respondSuccess(w, places, start, len(places))
}

// SearchPlaces handles POST /api/v1/places/search.
func (h *Handler) SearchPlaces(w http.ResponseWriter, r *http.Request) {
	start := time.Now()

	var req models.SearchRequest
	if err := decodeJSONBody(r, &req); err != nil {
		respondError(w, http.StatusBadRequest, models.ErrCodeValidation, "Invalid request body", err)
		return
	}
	if apiErr := validateRequest(&req); apiErr != nil {
		respondValidation(w, apiErr)
		return
	}

	places, err := h.db.SearchPlaces(r.Context(), req.Query)
	if err != nil {
		respondError(w, http.StatusInternalServerError, models.ErrCodeDatabase, "Failed to search places", err)
		return
	}
	respondSuccess(w, places, start, len(places))
}

// lookupPlace resolves the {id} URL parameter, writing the error response
// itself when the place cannot be returned.
func (h *Handler) lookupPlace(w http.ResponseWriter, r *http.Request) (models.Place, bool) {
	place, err := h.db.PlaceByID(r.Context(), chi.URLParam(r, "id"))
	if errors.Is(err, database.ErrNotFound) {
		respondError(w, http.StatusNotFound, models.ErrCodeNotFound, "Place not found", nil)
		return models.Place{}, false
	}
	if err != nil {
		respondError(w, http.StatusInternalServerError, models.ErrCodeDatabase, "Failed to load place", err)
		return models.Place{}, false
	}
	return place, true
}

// PlaceInfo handles GET /api/v1/places/{id}/info.
func (h *Handler) PlaceInfo(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	if place, ok := h.lookupPlace(w, r); ok {
		respondSuccess(w, place, start, -1)
	}
}

// PlaceContent handles GET /api/v1/places/{id}/content.
func (h *Handler) PlaceContent(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	if place, ok := h.lookupPlace(w, r); ok {
		respondSuccess(w, models.PlaceContent{Content: place.Content}, start, -1)
	}
}

// PlaceComments handles GET /api/v1/places/{id}/comments.
// Comment ids carry the "c" prefix on this endpoint.
func (h *Handler) PlaceComments(w http.ResponseWriter, r *http.Request) {
	start := time.Now()

	comments, err := h.db.Comments(r.Context(), models.CommentFilter{PlaceID: chi.URLParam(r, "id")})
	if err != nil {
		respondError(w, http.StatusInternalServerError, models.ErrCodeDatabase, "Failed to load comments", err)
		return
	}
	for i := range comments {
		comments[i] = comments[i].WithPrefixedID()
	}
	respondSuccess(w, comments, start, len(comments))
}

// Comments handles GET /api/v1/comments?username=&place_id=.
func (h *Handler) Comments(w http.ResponseWriter, r *http.Request) {
	start := time.Now()

	filter := models.CommentFilter{
		Username: r.URL.Query().Get("username"),
		PlaceID:  r.URL.Query().Get("place_id"),
	}
	if apiErr := validateRequest(&filter); apiErr != nil {
		respondValidation(w, apiErr)
		return
	}

	comments, err := h.db.Comments(r.Context(), filter)
	if err != nil {
		respondError(w, http.StatusInternalServerError, models.ErrCodeDatabase, "Failed to load comments", err)
		return
	}
	respondSuccess(w, comments, start, len(comments))
}

// Ratings handles GET /api/v1/ratings.
func (h *Handler) Ratings(w http.ResponseWriter, r *http.Request) {
	start := time.Now()

	ratings, err := h.db.Ratings(r.Context())
	if err != nil {
		respondError(w, http.StatusInternalServerError, models.ErrCodeDatabase, "Failed to compute ratings", err)
		return
	}
	respondSuccess(w, ratings, start, len(ratings))
}

// Summary handles GET /api/v1/summary.
func (h *Handler) Summary(w http.ResponseWriter, r *http.Request) {
	start := time.Now()

	data, err := os.ReadFile(h.config.Data.SummaryPath)
	if errors.Is(err, fs.ErrNotExist) {
		respondError(w, http.StatusNotFound, models.ErrCodeNotFound, "Summary not found", nil)
		return
	}
	if err != nil {
		respondError(w, http.StatusInternalServerError, models.ErrCodeInternal, "Failed to read summary", err)
		return
	}
	respondSuccess(w, models.Summary{Content: string(data)}, start, -1)
}
