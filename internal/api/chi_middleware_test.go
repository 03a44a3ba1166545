// Wayfarer - Travel Place Listings and Personalized Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/wayfarer

package api

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus/testutil"

	"github.com/tomtom215/wayfarer/internal/config"
	"github.com/tomtom215/wayfarer/internal/metrics"
)

func okHandler(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusOK)
}

// Not parallel: reads the global rate limit counter.
func TestRateLimit(t *testing.T) {
	mw := NewChiMiddleware(NewChiMiddlewareConfig(config.SecurityConfig{
		CORSOrigins:     []string{"*"},
		RateLimitReqs:   1,
		RateLimitWindow: time.Minute,
	}))

	r := chi.NewRouter()
	r.Use(mw.RateLimit())
	r.Get("/limited-probe", okHandler)

	hits := metrics.APIRateLimitHits.WithLabelValues("/limited-probe")
	before := testutil.ToFloat64(hits)

	first := httptest.NewRecorder()
	r.ServeHTTP(first, httptest.NewRequest(http.MethodGet, "/limited-probe", nil))
	assertStatus(t, first, http.StatusOK)

	second := httptest.NewRecorder()
	r.ServeHTTP(second, httptest.NewRequest(http.MethodGet, "/limited-probe", nil))
	assertStatus(t, second, http.StatusTooManyRequests)
	assertErrorCode(t, second, "RATE_LIMITED")

	if got := testutil.ToFloat64(hits) - before; got != 1 {
		t.Errorf("rate limit hits delta = %v, want 1", got)
	}
}

func TestRateLimit_Disabled(t *testing.T) {
	t.Parallel()
	mw := NewChiMiddleware(NewChiMiddlewareConfig(config.SecurityConfig{
		RateLimitReqs:     1,
		RateLimitWindow:   time.Minute,
		RateLimitDisabled: true,
	}))
	handler := mw.RateLimit()(http.HandlerFunc(okHandler))

	for i := 0; i < 3; i++ {
		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))
		assertStatus(t, rec, http.StatusOK)
	}
}

func TestCORSPreflight(t *testing.T) {
	t.Parallel()
	s := setupTestServer(t)

	req := httptest.NewRequest(http.MethodOptions, "/api/v1/places", nil)
	req.Header.Set("Origin", "http://localhost:5000")
	req.Header.Set("Access-Control-Request-Method", http.MethodGet)
	rec := httptest.NewRecorder()
	s.handler.ServeHTTP(rec, req)

	if got := rec.Header().Get("Access-Control-Allow-Origin"); got != "*" {
		t.Errorf("Access-Control-Allow-Origin = %q, want *", got)
	}
}

func TestAPISecurityHeaders(t *testing.T) {
	t.Parallel()
	handler := APISecurityHeaders()(http.HandlerFunc(okHandler))

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))
	if rec.Header().Get("X-Frame-Options") != "DENY" {
		t.Error("X-Frame-Options missing")
	}
	if rec.Header().Get("Strict-Transport-Security") != "" {
		t.Error("HSTS set on plain HTTP")
	}

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("X-Forwarded-Proto", "https")
	rec = httptest.NewRecorder()
	handler.ServeHTTP(rec, req)
	if rec.Header().Get("Strict-Transport-Security") == "" {
		t.Error("HSTS missing behind TLS proxy")
	}
}

func TestRouter_RequestIDAndMetricsEndpoint(t *testing.T) {
	t.Parallel()
	s := setupTestServer(t)

	rec := s.do(t, http.MethodGet, "/api/v1/health/live", "", "")
	if rec.Header().Get("X-Request-ID") == "" {
		t.Error("X-Request-ID header missing")
	}

	rec = s.do(t, http.MethodGet, "/metrics", "", "")
	assertStatus(t, rec, http.StatusOK)
}

func TestRouter_UnknownRoute(t *testing.T) {
	t.Parallel()
	s := setupTestServer(t)

	rec := s.do(t, http.MethodGet, "/api/v1/nowhere", "", "")
	assertStatus(t, rec, http.StatusNotFound)
}
