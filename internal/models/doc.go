// Wayfarer - Travel Place Listings and Personalized Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/wayfarer

/*
Package models defines the records and request/response shapes shared by the
database and api packages.

Table records:
  - User (user.csv, with a derived Role)
  - Place (place.csv)
  - UserPlace (user_place.csv)
  - Comment (comment.csv)

Aggregates and responses:
  - Rating: per-place average and count
  - RecommendationResponse: ranked places from the recommender
  - APIResponse, APIError, Metadata: the JSON envelope

Request structs carry validate tags checked by internal/validation.
*/
package models
