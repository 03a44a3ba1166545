// Wayfarer - Travel Place Listings and Personalized Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/wayfarer

package authz

import (
	"net/http"

	"github.com/tomtom215/wayfarer/internal/logging"
)

// RoleFunc returns the role of the authenticated caller, or false when the
// request carries no authenticated user.
type RoleFunc func(r *http.Request) (role string, ok bool)

// ErrorResponder writes an error response in the caller's format.
type ErrorResponder func(w http.ResponseWriter, status int, code, message string)

// Middleware enforces the policy on every request it wraps.
type Middleware struct {
	enforcer *Enforcer
	roleOf   RoleFunc
	respond  ErrorResponder
}

// NewMiddleware creates authorization middleware.
// A nil respond falls back to http.Error.
func NewMiddleware(enforcer *Enforcer, roleOf RoleFunc, respond ErrorResponder) *Middleware {
	if respond == nil {
		respond = func(w http.ResponseWriter, status int, _, message string) {
			http.Error(w, message, status)
		}
	}
	return &Middleware{enforcer: enforcer, roleOf: roleOf, respond: respond}
}

// Authorize checks the caller's role against the request path and method.
// It must run after authentication.
func (m *Middleware) Authorize(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		role, ok := m.roleOf(r)
		if !ok {
			m.respond(w, http.StatusUnauthorized, "AUTHENTICATION_ERROR", "Authentication required")
			return
		}

		allowed, err := m.enforcer.Authorize(role, r.URL.Path, r.Method)
		if err != nil {
			logging.Ctx(r.Context()).Error().Err(err).Str("role", role).Msg("Authorization error")
			m.respond(w, http.StatusInternalServerError, "INTERNAL_ERROR", "Authorization failed")
			return
		}
		if !allowed {
			logging.Ctx(r.Context()).Warn().
				Str("role", role).
				Str("path", r.URL.Path).
				Str("method", r.Method).
				Msg("Access denied")
			m.respond(w, http.StatusForbidden, "AUTHORIZATION_ERROR", "Insufficient permissions")
			return
		}

		next.ServeHTTP(w, r)
	})
}
