// Wayfarer - Travel Place Listings and Personalized Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/wayfarer

package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/tomtom215/wayfarer/internal/authz"
	"github.com/tomtom215/wayfarer/internal/middleware"
)

// compressionLevel is the gzip level for chi's Compress middleware.
const compressionLevel = 5

// Router wires handlers and middleware into a chi router.
type Router struct {
	handler       *Handler
	chiMiddleware *ChiMiddleware
	enforcer      *authz.Enforcer
}

// NewRouter creates a router.
func NewRouter(handler *Handler, chiMw *ChiMiddleware, enforcer *authz.Enforcer) *Router {
	if chiMw == nil {
		chiMw = NewChiMiddleware(nil)
	}
	return &Router{
		handler:       handler,
		chiMiddleware: chiMw,
		enforcer:      enforcer,
	}
}

// chiMiddleware adapts http.HandlerFunc middleware to Chi's func(http.Handler) http.Handler.
func chiMiddleware(mw func(http.HandlerFunc) http.HandlerFunc) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return mw(next.ServeHTTP)
	}
}

// SetupChi configures all HTTP routes.
func (router *Router) SetupChi() http.Handler {
	r := chi.NewRouter()
	h := router.handler

	// Global middleware, applied in order
	r.Use(chiMiddleware(middleware.RequestID))
	r.Use(chimiddleware.RealIP)
	r.Use(chimiddleware.Recoverer)
	r.Use(router.chiMiddleware.CORS()) // must be global to answer OPTIONS preflight
	r.Use(chimiddleware.Compress(compressionLevel, "application/json"))

	r.Handle("/metrics", promhttp.Handler())

	authorize := authz.NewMiddleware(router.enforcer, roleFromRequest, writeError).Authorize

	r.Route("/api/v1", func(r chi.Router) {
		r.Use(APISecurityHeaders())
		r.Use(chiMiddleware(middleware.PrometheusMetrics))

		// Health probes are not rate limited
		r.Get("/health/live", h.HealthLive)
		r.Get("/health/ready", h.HealthReady)

		r.Group(func(r chi.Router) {
			r.Use(router.chiMiddleware.RateLimit())

			r.Post("/login", h.Login)

			r.Get("/places", h.Places)
			r.Post("/places/search", h.SearchPlaces)
			r.Route("/places/{id}", func(r chi.Router) {
				r.Get("/info", h.PlaceInfo)
				r.Get("/content", h.PlaceContent)
				r.Get("/comments", h.PlaceComments)
			})
			r.Get("/comments", h.Comments)
			r.Get("/ratings", h.Ratings)
			r.Get("/summary", h.Summary)
			r.Get("/user_place", h.UserPlace)
			r.Get("/recommendations", h.Recommendations)

			// Signed-in routes: bearer auth, then the RBAC policy
			r.Group(func(r chi.Router) {
				r.Use(chiMiddleware(h.Authenticate))
				r.Use(authorize)

				r.Get("/user/profile", h.Profile)
				r.Get("/user/visited-places", h.VisitedPlaces)
				r.Post("/ai/recommend", h.AIRecommend)
				r.Get("/users", h.Users)

				r.Post("/admin/reload", h.AdminReload)
				r.Post("/admin/artifacts/{kind}/invalidate", h.AdminInvalidateArtifact)
			})
		})
	})

	return r
}
