// Wayfarer - Travel Place Listings and Personalized Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/wayfarer

package authz

// rbacModel matches a role against path patterns (keyMatch2 syntax, so
// /places/:id and /admin/* both work). A policy action of * matches any action.
const rbacModel = `
[request_definition]
r = sub, obj, act

[policy_definition]
p = sub, obj, act

[role_definition]
g = _, _

[policy_effect]
e = some(where (p.eft == allow))

[matchers]
m = g(r.sub, p.sub) && keyMatch2(r.obj, p.obj) && (p.act == "*" || r.act == p.act)
`

// defaultPolicy covers the routes that require a signed-in user.
// Public routes never reach the enforcer.
const defaultPolicy = `
# Travelers
p, user, /api/v1/user/profile, read
p, user, /api/v1/user/visited-places, read
p, user, /api/v1/ai/recommend, write

# Administrators
p, admin, /api/v1/users, read
p, admin, /api/v1/admin/*, *

# admin inherits user
g, admin, user
`
