// Wayfarer - Travel Place Listings and Personalized Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/wayfarer

package api

import (
	"context"
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/tomtom215/wayfarer/internal/database"
	"github.com/tomtom215/wayfarer/internal/logging"
	"github.com/tomtom215/wayfarer/internal/models"
)

type contextKey int

const userContextKey contextKey = iota

// contextWithUser stores the authenticated user.
func contextWithUser(ctx context.Context, user models.User) context.Context {
	ctx = logging.ContextWithUser(ctx, user.UserName)
	return context.WithValue(ctx, userContextKey, user)
}

// userFromContext returns the authenticated user, if any.
func userFromContext(ctx context.Context) (models.User, bool) {
	user, ok := ctx.Value(userContextKey).(models.User)
	return user, ok
}

// roleFromRequest implements authz.RoleFunc.
func roleFromRequest(r *http.Request) (string, bool) {
	user, ok := userFromContext(r.Context())
	if !ok || !models.IsValidRole(user.Role) {
		return "", false
	}
	return user.Role, true
}

// bearerToken extracts the token from "Authorization: Bearer <token>".
func bearerToken(r *http.Request) string {
	header := r.Header.Get("Authorization")
	scheme, token, found := strings.Cut(header, " ")
	if !found || !strings.EqualFold(scheme, "Bearer") {
		return ""
	}
	return strings.TrimSpace(token)
}

// Authenticate resolves the bearer token to a user. The token is the
// user name returned by Login.
func (h *Handler) Authenticate(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		token := bearerToken(r)
		if token == "" {
			respondError(w, http.StatusUnauthorized, models.ErrCodeAuthentication, "Authentication required", nil)
			return
		}

		user, err := h.db.UserByName(r.Context(), token)
		if errors.Is(err, database.ErrNotFound) {
			respondError(w, http.StatusUnauthorized, models.ErrCodeAuthentication, "Invalid username", nil)
			return
		}
		if err != nil {
			respondError(w, http.StatusInternalServerError, models.ErrCodeDatabase, "Failed to resolve user", err)
			return
		}

		next(w, r.WithContext(contextWithUser(r.Context(), user)))
	}
}

// Login handles POST /api/v1/login.
func (h *Handler) Login(w http.ResponseWriter, r *http.Request) {
	start := time.Now()

	var req models.LoginRequest
	if err := decodeJSONBody(r, &req); err != nil {
		respondError(w, http.StatusBadRequest, models.ErrCodeValidation, "Invalid request body", err)
		return
	}
	if apiErr := validateRequest(&req); apiErr != nil {
		respondValidation(w, apiErr)
		return
	}

	user, err := h.db.UserByName(r.Context(), strings.TrimSpace(req.Username))
	if errors.Is(err, database.ErrNotFound) {
		respondError(w, http.StatusUnauthorized, models.ErrCodeAuthentication, "Invalid username", nil)
		return
	}
	if err != nil {
		respondError(w, http.StatusInternalServerError, models.ErrCodeDatabase, "Failed to look up user", err)
		return
	}

	logging.Ctx(r.Context()).Info().Str("user", sanitizeLogValue(user.UserName)).Msg("User logged in")

	respondSuccess(w, models.LoginResponse{User: user, Token: user.UserName}, start, -1)
}

// Profile handles GET /api/v1/user/profile.
func (h *Handler) Profile(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	user, ok := userFromContext(r.Context())
	if !ok {
		respondError(w, http.StatusUnauthorized, models.ErrCodeAuthentication, "Authentication required", nil)
		return
	}
	respondSuccess(w, user, start, -1)
}
