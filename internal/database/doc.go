// Wayfarer - Travel Place Listings and Personalized Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/wayfarer

/*
Package database loads the Wayfarer CSV tables into DuckDB and answers the
read queries the API and the recommender need.

# Tables

Each CSV is imported with read_csv_auto(all_varchar=true) into a typed table
that also records the 1-based row position (ord):

	users(ord, user_id, user_name, full_name, avatar_url)       <- user.csv
	places(ord, place_id, place_name, address, thumb_url,
	       description, content)                                <- place.csv
	user_place(ord, user_id, place_id)                          <- user_place.csv
	comments(ord, id, username, place_id, content, date,
	         rating INTEGER)                                    <- comment.csv

Empty cells become empty strings. rating uses TRY_CAST, so a non-numeric
cell is NULL. Header names are trimmed before matching. A missing file
produces an empty table and a warning; a missing required column fails the
import.

Reload re-imports every table inside one transaction, so a failed import
leaves the previous data in place.

# Roles

The first row of user.csv is the administrator; every other user has the
user role.

# Recommender integration

Interactions adapts user_place to recommend.InteractionSource and
recommend.PopularitySource in the artifact's key space, selected by the
recommend.user_key_field and recommend.item_key_field settings.

All queries record their timing through internal/metrics.
*/
package database
