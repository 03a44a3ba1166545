// Wayfarer - Travel Place Listings and Personalized Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/wayfarer

/*
Package api provides the HTTP layer for Wayfarer.

Routes are served by a chi router under /api/v1. Every response uses the
models.APIResponse envelope:

	{"status": "success", "data": ..., "metadata": {"timestamp": ...}}
	{"status": "error", "error": {"code": "NOT_FOUND", "message": "..."}, ...}

# Middleware

Applied to every route, in order: request ID with logging context, real IP,
panic recovery, CORS (go-chi/cors), gzip compression. The /api/v1 group adds
security headers, Prometheus request metrics and httprate rate limiting.

Signed-in routes use username-as-token bearer auth:

	Authorization: Bearer <user_name>

followed by the Casbin policy check from internal/authz.

# Endpoints

Public:

	GET  /api/v1/health/live
	GET  /api/v1/health/ready
	POST /api/v1/login
	GET  /api/v1/places
	POST /api/v1/places/search
	GET  /api/v1/places/{id}/info
	GET  /api/v1/places/{id}/content
	GET  /api/v1/places/{id}/comments
	GET  /api/v1/comments
	GET  /api/v1/ratings
	GET  /api/v1/summary
	GET  /api/v1/user_place
	GET  /api/v1/recommendations

Signed in:

	GET  /api/v1/user/profile
	GET  /api/v1/user/visited-places
	POST /api/v1/ai/recommend
	GET  /api/v1/users                              (admin)
	POST /api/v1/admin/reload                       (admin)
	POST /api/v1/admin/artifacts/{kind}/invalidate  (admin)

# Errors

Recommendation errors map to status codes as follows: an unknown model kind
is 400 UNKNOWN_MODEL_KIND, a missing or invalid artifact is 503
MODEL_UNAVAILABLE, anything else is 500. Request validation failures are 400
VALIDATION_ERROR and missing records are 404 NOT_FOUND.
*/
package api
