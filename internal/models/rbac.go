// Wayfarer - Travel Place Listings and Personalized Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/wayfarer

package models

// Roles known to the authorization policy.
const (
	// RoleUser is every authenticated traveler.
	RoleUser = "user"

	// RoleAdmin is the first row of the user table. It inherits RoleUser.
	RoleAdmin = "admin"
)

// ValidRoles lists every role in policy order.
var ValidRoles = []string{RoleUser, RoleAdmin}

// IsValidRole checks if a role name is valid.
func IsValidRole(role string) bool {
	for _, r := range ValidRoles {
		if r == role {
			return true
		}
	}
	return false
}
