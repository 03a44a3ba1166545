// Wayfarer - Travel Place Listings and Personalized Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/wayfarer

// Package services provides suture.Service wrappers for the server's
// long-lived components: the HTTP server, artifact warmup and periodic
// data reload.
package services
