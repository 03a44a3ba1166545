// Wayfarer - Travel Place Listings and Personalized Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/wayfarer

package database

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/tomtom215/wayfarer/internal/models"
)

// Comments returns comments matching filter in file order.
func (db *DB) Comments(ctx context.Context, filter models.CommentFilter) (comments []models.Comment, err error) {
	start := time.Now()
	defer func() { observe("SELECT", TableComments, start, err) }()

	ctx, cancel := withTimeout(ctx)
	defer cancel()

	rows, err := db.conn.QueryContext(ctx, `
		SELECT id, username, place_id, content, date, rating
		FROM comments
		WHERE (? = '' OR username = ?)
		  AND (? = '' OR place_id = ?)
		ORDER BY ord`,
		filter.Username, filter.Username, filter.PlaceID, filter.PlaceID)
	if err != nil {
		return nil, fmt.Errorf("query comments: %w", err)
	}
	defer closeWithLog(rows, &db.logger, "rows")

	comments = []models.Comment{}
	for rows.Next() {
		var (
			c      models.Comment
			rating sql.NullInt32
		)
		if err := rows.Scan(&c.ID, &c.Username, &c.PlaceID, &c.Content, &c.Date, &rating); err != nil {
			return nil, fmt.Errorf("scan comment: %w", err)
		}
		if rating.Valid {
			r := int(rating.Int32)
			c.Rating = &r
		}
		comments = append(comments, c)
	}
	return comments, rows.Err()
}

// Ratings averages comment ratings per place. Comments without a valid
// integer rating are ignored, and places with no rated comments are absent.
func (db *DB) Ratings(ctx context.Context) (ratings map[string]models.Rating, err error) {
	start := time.Now()
	defer func() { observe("AGGREGATE", TableComments, start, err) }()

	ctx, cancel := withTimeout(ctx)
	defer cancel()

	rows, err := db.conn.QueryContext(ctx, `
		SELECT place_id, AVG(rating)::DOUBLE AS avg_rating, COUNT(rating) AS n
		FROM comments
		WHERE rating IS NOT NULL
		GROUP BY place_id`)
	if err != nil {
		return nil, fmt.Errorf("query ratings: %w", err)
	}
	defer closeWithLog(rows, &db.logger, "rows")

	ratings = make(map[string]models.Rating)
	for rows.Next() {
		var (
			placeID string
			avg     float64
			count   int64
		)
		if err := rows.Scan(&placeID, &avg, &count); err != nil {
			return nil, fmt.Errorf("scan rating: %w", err)
		}
		ratings[placeID] = models.Rating{
			Avg:   fmt.Sprintf("%.1f", avg),
			Count: int(count),
		}
	}
	return ratings, rows.Err()
}
