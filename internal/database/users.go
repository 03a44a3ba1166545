// Wayfarer - Travel Place Listings and Personalized Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/wayfarer

package database

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/tomtom215/wayfarer/internal/models"
)

const userColumns = "user_id, user_name, full_name, avatar_url, ord"

// roleForOrd assigns admin to the first row of user.csv.
func roleForOrd(ord int64) string {
	if ord == 1 {
		return models.RoleAdmin
	}
	return models.RoleUser
}

func scanUser(scanner interface{ Scan(...interface{}) error }) (models.User, error) {
	var (
		u   models.User
		ord int64
	)
	if err := scanner.Scan(&u.UserID, &u.UserName, &u.FullName, &u.AvatarURL, &ord); err != nil {
		return models.User{}, err
	}
	u.Role = roleForOrd(ord)
	return u, nil
}

// ListUsers returns every user in file order.
func (db *DB) ListUsers(ctx context.Context) (users []models.User, err error) {
	start := time.Now()
	defer func() { observe("SELECT", TableUsers, start, err) }()

	ctx, cancel := withTimeout(ctx)
	defer cancel()

	rows, err := db.conn.QueryContext(ctx, "SELECT "+userColumns+" FROM users ORDER BY ord")
	if err != nil {
		return nil, fmt.Errorf("query users: %w", err)
	}
	defer closeWithLog(rows, &db.logger, "rows")

	users = []models.User{}
	for rows.Next() {
		u, err := scanUser(rows)
		if err != nil {
			return nil, fmt.Errorf("scan user: %w", err)
		}
		users = append(users, u)
	}
	return users, rows.Err()
}

// UserByName returns the first user with the given user_name.
func (db *DB) UserByName(ctx context.Context, name string) (models.User, error) {
	return db.userBy(ctx, "user_name", name)
}

// UserByID returns the first user with the given user_id.
func (db *DB) UserByID(ctx context.Context, id string) (models.User, error) {
	return db.userBy(ctx, "user_id", id)
}

func (db *DB) userBy(ctx context.Context, field, value string) (u models.User, err error) {
	start := time.Now()
	defer func() { observeLookup(TableUsers, start, err) }()

	ctx, cancel := withTimeout(ctx)
	defer cancel()

	query := fmt.Sprintf("SELECT %s FROM users WHERE %s = ? ORDER BY ord LIMIT 1", userColumns, quoteIdent(field))
	u, err = scanUser(db.conn.QueryRowContext(ctx, query, value))
	if errors.Is(err, sql.ErrNoRows) {
		return models.User{}, fmt.Errorf("user %s=%q: %w", field, value, ErrNotFound)
	}
	if err != nil {
		return models.User{}, fmt.Errorf("query user: %w", err)
	}
	return u, nil
}

// UserPlaces returns the user_place rows for userID in file order.
func (db *DB) UserPlaces(ctx context.Context, userID string) (visits []models.UserPlace, err error) {
	start := time.Now()
	defer func() { observe("SELECT", TableUserPlace, start, err) }()

	ctx, cancel := withTimeout(ctx)
	defer cancel()

	rows, err := db.conn.QueryContext(ctx,
		"SELECT user_id, place_id FROM user_place WHERE user_id = ? ORDER BY ord", userID)
	if err != nil {
		return nil, fmt.Errorf("query user places: %w", err)
	}
	defer closeWithLog(rows, &db.logger, "rows")

	visits = []models.UserPlace{}
	for rows.Next() {
		var v models.UserPlace
		if err := rows.Scan(&v.UserID, &v.PlaceID); err != nil {
			return nil, fmt.Errorf("scan user place: %w", err)
		}
		visits = append(visits, v)
	}
	return visits, rows.Err()
}
