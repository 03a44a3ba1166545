// Wayfarer - Travel Place Listings and Personalized Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/wayfarer

package models

// LoginRequest is the body of POST /api/v1/login.
type LoginRequest struct {
	Username string `json:"username" validate:"required,notblank,max=100"`
}

// LoginResponse carries the user and the bearer token, which is the username.
type LoginResponse struct {
	User  User   `json:"user"`
	Token string `json:"token"`
}

// SearchRequest is the body of POST /api/v1/places/search.
type SearchRequest struct {
	Query string `json:"query" validate:"max=200"`
}

// AIRecommendRequest is the optional body of POST /api/v1/ai/recommend.
// An empty kind or absent k selects the configured default.
type AIRecommendRequest struct {
	Kind string `json:"kind" validate:"omitempty,modelkind"`
	K    *int   `json:"k" validate:"omitempty,gte=0,lte=1000"`
}

// RecommendationsQuery holds the query string of GET /api/v1/recommendations.
type RecommendationsQuery struct {
	UserID string `json:"user_id" validate:"required,notblank"`
	Kind   string `json:"kind" validate:"omitempty,modelkind"`
	K      int    `json:"k" validate:"gte=0,lte=1000"`
	Query  string `json:"query" validate:"max=200"`
}

// CommentFilter selects comments by author and place. Empty fields match all.
type CommentFilter struct {
	Username string `json:"username" validate:"max=100"`
	PlaceID  string `json:"place_id" validate:"max=64"`
}
