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
	"strings"
	"time"

	"github.com/tomtom215/wayfarer/internal/models"
)

const placeColumns = "place_id, place_name, address, thumb_url, description, content"

// Place key fields accepted by PlacesByKeys.
const (
	PlaceKeyName = "place_name"
	PlaceKeyID   = "place_id"
)

func scanPlace(scanner interface{ Scan(...interface{}) error }) (models.Place, error) {
	var p models.Place
	err := scanner.Scan(&p.PlaceID, &p.PlaceName, &p.Address, &p.ThumbURL, &p.Description, &p.Content)
	return p, err
}

func (db *DB) queryPlaces(ctx context.Context, query string, args ...interface{}) (places []models.Place, err error) {
	start := time.Now()
	defer func() { observe("SELECT", TablePlaces, start, err) }()

	ctx, cancel := withTimeout(ctx)
	defer cancel()

	rows, err := db.conn.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query places: %w", err)
	}
	defer closeWithLog(rows, &db.logger, "rows")

	places = []models.Place{}
	for rows.Next() {
		p, err := scanPlace(rows)
		if err != nil {
			return nil, fmt.Errorf("scan place: %w", err)
		}
		places = append(places, p)
	}
	return places, rows.Err()
}

// ListPlaces returns every place in file order.
func (db *DB) ListPlaces(ctx context.Context) ([]models.Place, error) {
	return db.queryPlaces(ctx, "SELECT "+placeColumns+" FROM places ORDER BY ord")
}

// PlaceByID returns the first place with the given id.
func (db *DB) PlaceByID(ctx context.Context, id string) (p models.Place, err error) {
	start := time.Now()
	defer func() { observeLookup(TablePlaces, start, err) }()

	ctx, cancel := withTimeout(ctx)
	defer cancel()

	row := db.conn.QueryRowContext(ctx,
		"SELECT "+placeColumns+" FROM places WHERE place_id = ? ORDER BY ord LIMIT 1", id)
	p, err = scanPlace(row)
	if errors.Is(err, sql.ErrNoRows) {
		return models.Place{}, fmt.Errorf("place %q: %w", id, ErrNotFound)
	}
	if err != nil {
		return models.Place{}, fmt.Errorf("query place: %w", err)
	}
	return p, nil
}

// SearchPlaces matches q case-insensitively as a substring of the place
// name or address. An empty q returns every place.
func (db *DB) SearchPlaces(ctx context.Context, q string) ([]models.Place, error) {
	q = strings.ToLower(strings.TrimSpace(q))
	if q == "" {
		return db.ListPlaces(ctx)
	}
	return db.queryPlaces(ctx,
		"SELECT "+placeColumns+` FROM places
		WHERE contains(lower(place_name), ?) OR contains(lower(address), ?)
		ORDER BY ord`, q, q)
}

// VisitedPlaces returns the places userID has visited, in place file order.
func (db *DB) VisitedPlaces(ctx context.Context, userID string) ([]models.Place, error) {
	return db.queryPlaces(ctx,
		"SELECT "+placeColumns+` FROM places
		WHERE place_id IN (SELECT place_id FROM user_place WHERE user_id = ?)
		ORDER BY ord`, userID)
}

// PlacesByKeys returns the places whose field matches keys, in the order of
// keys. Keys without a place are skipped. When several places share a key
// the first in file order is used.
func (db *DB) PlacesByKeys(ctx context.Context, field string, keys []string) ([]models.Place, error) {
	if field != PlaceKeyName && field != PlaceKeyID {
		return nil, fmt.Errorf("%w: %q", ErrInvalidKeyField, field)
	}
	if len(keys) == 0 {
		return []models.Place{}, nil
	}

	placeholders := strings.TrimSuffix(strings.Repeat("?, ", len(keys)), ", ")
	args := make([]interface{}, len(keys))
	for i, k := range keys {
		args[i] = k
	}

	found, err := db.queryPlaces(ctx,
		fmt.Sprintf("SELECT %s FROM places WHERE %s IN (%s) ORDER BY ord", placeColumns, quoteIdent(field), placeholders),
		args...)
	if err != nil {
		return nil, err
	}

	byKey := make(map[string]models.Place, len(found))
	for _, p := range found {
		key := p.PlaceName
		if field == PlaceKeyID {
			key = p.PlaceID
		}
		if _, seen := byKey[key]; !seen {
			byKey[key] = p
		}
	}

	places := make([]models.Place, 0, len(keys))
	for _, k := range keys {
		if p, ok := byKey[k]; ok {
			places = append(places, p)
		}
	}
	return places, nil
}
