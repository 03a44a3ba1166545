// Wayfarer - Travel Place Listings and Personalized Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/wayfarer

package api

import (
	"net/http"
	"strings"
	"time"

	"github.com/tomtom215/wayfarer/internal/models"
)

// Users handles GET /api/v1/users (admin only).
func (h *Handler) Users(w http.ResponseWriter, r *http.Request) {
	start := time.Now()

	users, err := h.db.ListUsers(r.Context())
	if err != nil {
		respondError(w, http.StatusInternalServerError, models.ErrCodeDatabase, "Failed to list users", err)
		return
	}
	respondSuccess(w, users, start, len(users))
}

// UserPlace handles GET /api/v1/user_place?user_id=.
func (h *Handler) UserPlace(w http.ResponseWriter, r *http.Request) {
	start := time.Now()

	userID := strings.TrimSpace(r.URL.Query().Get("user_id"))
	if userID == "" {
		respondError(w, http.StatusBadRequest, models.ErrCodeValidation, "user_id is required", nil)
		return
	}

	visits, err := h.db.UserPlaces(r.Context(), userID)
	if err != nil {
		respondError(w, http.StatusInternalServerError, models.ErrCodeDatabase, "Failed to load visits", err)
		return
	}
	respondSuccess(w, visits, start, len(visits))
}

// VisitedPlaces handles GET /api/v1/user/visited-places for the signed-in user.
func (h *Handler) VisitedPlaces(w http.ResponseWriter, r *http.Request) {
	start := time.Now()

	user, ok := userFromContext(r.Context())
	if !ok {
		respondError(w, http.StatusUnauthorized, models.ErrCodeAuthentication, "Authentication required", nil)
		return
	}

	places, err := h.db.VisitedPlaces(r.Context(), user.UserID)
	if err != nil {
		respondError(w, http.StatusInternalServerError, models.ErrCodeDatabase, "Failed to load visited places", err)
		return
	}
	respondSuccess(w, places, start, len(places))
}
