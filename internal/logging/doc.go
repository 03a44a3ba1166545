// Wayfarer - Travel Place Listings and Personalized Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/wayfarer

// Package logging provides centralized zerolog-based structured logging for Wayfarer.
//
// # Quick Start
//
//	logging.Init(logging.Config{Level: "info", Format: "json", Timestamp: true})
//
//	logging.Info().Str("addr", addr).Msg("HTTP server listening")
//	logging.Err(err).Msg("CSV import failed")
//
// Request-scoped logging picks up the request id, correlation id, and
// authenticated user stored on the context by the HTTP middleware:
//
//	logging.Ctx(r.Context()).Info().Str("kind", "LGN").Msg("recommendation served")
//
// Components that take an injected logger receive one built with
// WithComponent, which adds a "component" field.
//
// # slog Bridge
//
// SlogHandler adapts zerolog to log/slog for libraries that only speak slog,
// such as the suture supervisor hooks.
//
// # Configuration
//
//   - LOG_LEVEL: trace, debug, info, warn, error (default: info)
//   - LOG_FORMAT: json, console (default: json)
//   - LOG_CALLER: include caller file:line (default: false)
//
// Always terminate event chains with Msg or Send; an unterminated chain
// writes nothing.
package logging
