// Wayfarer - Travel Place Listings and Personalized Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/wayfarer

/*
Package middleware provides HTTP middleware shared by the API router.

  - RequestID: assigns or propagates X-Request-ID and seeds the logging
    context with request and correlation ids.
  - PrometheusMetrics: request count, latency and in-flight gauge, labeled
    by chi route pattern.

Both are written as func(http.HandlerFunc) http.HandlerFunc and adapted to
chi's r.Use by the api package.
*/
package middleware
