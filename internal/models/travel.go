// Wayfarer - Travel Place Listings and Personalized Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/wayfarer

package models

import (
	"strings"
)

// User is a row of user.csv plus its derived role.
type User struct {
	UserID    string `json:"user_id"`
	UserName  string `json:"user_name"`
	FullName  string `json:"full_name"`
	AvatarURL string `json:"avatar_url"`
	Role      string `json:"role,omitempty"`
}

// IsAdmin reports whether the user holds the admin role.
func (u *User) IsAdmin() bool {
	return u.Role == RoleAdmin
}

// Place is a row of place.csv. Missing cells are empty strings.
type Place struct {
	PlaceID     string `json:"place_id"`
	PlaceName   string `json:"place_name"`
	Address     string `json:"address"`
	ThumbURL    string `json:"thumb_url"`
	Description string `json:"description"`
	Content     string `json:"content"`
}

// ContentContains reports whether the place content contains q, ignoring case.
// An empty q matches every place.
func (p *Place) ContentContains(q string) bool {
	if q == "" {
		return true
	}
	return strings.Contains(strings.ToLower(p.Content), strings.ToLower(q))
}

// PlaceContent is the body of the per-place content endpoint.
type PlaceContent struct {
	Content string `json:"content"`
}

// UserPlace is one visit in user_place.csv.
type UserPlace struct {
	UserID  string `json:"user_id"`
	PlaceID string `json:"place_id"`
}

// Comment is a row of comment.csv. Rating is nil when the cell is empty or
// not an integer.
type Comment struct {
	ID       string `json:"id"`
	Username string `json:"username"`
	PlaceID  string `json:"place_id"`
	Content  string `json:"content"`
	Date     string `json:"date"`
	Rating   *int   `json:"rating"`
}

// CommentIDPrefix marks comment ids on the per-place comments endpoint.
const CommentIDPrefix = "c"

// WithPrefixedID returns a copy whose ID carries CommentIDPrefix.
func (c Comment) WithPrefixedID() Comment {
	if !strings.HasPrefix(c.ID, CommentIDPrefix) {
		c.ID = CommentIDPrefix + c.ID
	}
	return c
}

// Rating aggregates comment ratings for one place. Avg is formatted with
// one decimal.
type Rating struct {
	Avg   string `json:"avg"`
	Count int    `json:"count"`
}

// Summary is the body of the summary endpoint.
type Summary struct {
	Content string `json:"content"`
}

// RecommendedPlace is a place joined with its recommendation score.
type RecommendedPlace struct {
	Place
	Rank  int     `json:"rank"`
	Score float64 `json:"score"`
}

// RecommendationResponse is the body of both recommendation endpoints.
type RecommendationResponse struct {
	Kind      string             `json:"kind"`
	UserKey   string             `json:"user_key"`
	Strategy  string             `json:"strategy"`
	ColdStart bool               `json:"cold_start"`
	Places    []RecommendedPlace `json:"places"`
}
