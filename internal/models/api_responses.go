// Wayfarer - Travel Place Listings and Personalized Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/wayfarer

package models

import (
	"time"
)

// APIResponse is the envelope every JSON endpoint returns.
//
// Status is "success" with Data populated, or "error" with Error populated:
//
//	{
//	  "status": "success",
//	  "data": [{"place_id": "12", "place_name": "Hoan Kiem Lake"}],
//	  "metadata": {"timestamp": "2026-03-02T08:00:00Z", "query_time_ms": 4}
//	}
type APIResponse struct {
	Status   string      `json:"status"`
	Data     interface{} `json:"data"`
	Metadata Metadata    `json:"metadata"`
	Error    *APIError   `json:"error,omitempty"`
}

// Metadata describes how a response was produced.
type Metadata struct {
	Timestamp   time.Time `json:"timestamp"`
	QueryTimeMS int64     `json:"query_time_ms,omitempty"`
	Count       *int      `json:"count,omitempty"`
}

// Error codes carried in APIError.Code.
const (
	ErrCodeValidation       = "VALIDATION_ERROR"     // malformed or out-of-range input
	ErrCodeUnknownModelKind = "UNKNOWN_MODEL_KIND"   // kind other than NFM or LGN
	ErrCodeModelUnavailable = "MODEL_UNAVAILABLE"    // embedding artifact missing or invalid
	ErrCodeAuthentication   = "AUTHENTICATION_ERROR" // missing or unknown bearer token
	ErrCodeAuthorization    = "AUTHORIZATION_ERROR"  // role lacks access to the route
	ErrCodeNotFound         = "NOT_FOUND"            // user, place or file does not exist
	ErrCodeDatabase         = "DATABASE_ERROR"       // query failure
	ErrCodeInternal         = "INTERNAL_ERROR"
)

// APIError is the error body of a failed request.
type APIError struct {
	Code    string                 `json:"code"`
	Message string                 `json:"message"`
	Details map[string]interface{} `json:"details,omitempty"`
}

// HealthStatus is the body of the readiness probe.
type HealthStatus struct {
	Status     string            `json:"status"`
	Version    string            `json:"version"`
	DatabaseOK bool              `json:"database_ok"`
	Artifacts  map[string]bool   `json:"artifacts"`
	TableRows  map[string]int    `json:"table_rows,omitempty"`
	Uptime     float64           `json:"uptime_seconds"`
	Errors     map[string]string `json:"errors,omitempty"`
}
