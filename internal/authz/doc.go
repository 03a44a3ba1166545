// Wayfarer - Travel Place Listings and Personalized Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/wayfarer

// Package authz enforces role-based access to the signed-in API routes
// using Casbin.
//
// Request flow:
//
//	Request -> Bearer auth (internal/api) -> Authorize (this package) -> Handler
//
// Two roles exist. "user" may read its own profile and visited places and
// request recommendations; "admin" inherits those rights and may also list
// users and use the /api/v1/admin routes.
//
// The built-in policy can be replaced with a Casbin CSV policy file:
//
//	enforcer, err := authz.NewEnforcer(&authz.EnforcerConfig{
//	    PolicyPath: "/etc/wayfarer/policy.csv",
//	})
//
// HTTP methods map to actions: GET, HEAD and OPTIONS are read; POST, PUT
// and PATCH are write; DELETE is delete.
package authz
