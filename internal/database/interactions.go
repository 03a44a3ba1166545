// Wayfarer - Travel Place Listings and Personalized Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/wayfarer

package database

import (
	"context"
	"fmt"
	"time"
)

// Interactions exposes user_place in the key spaces of the embedding
// artifacts. It implements recommend.InteractionSource and
// recommend.PopularitySource.
type Interactions struct {
	db        *DB
	userField string
	itemField string
}

// NewInteractions binds the user_place table to artifact key fields.
// userField is user_name or user_id; itemField is place_name or place_id.
func NewInteractions(db *DB, userField, itemField string) (*Interactions, error) {
	if userField != "user_name" && userField != "user_id" {
		return nil, fmt.Errorf("%w: user key %q", ErrInvalidKeyField, userField)
	}
	if itemField != PlaceKeyName && itemField != PlaceKeyID {
		return nil, fmt.Errorf("%w: item key %q", ErrInvalidKeyField, itemField)
	}
	return &Interactions{db: db, userField: userField, itemField: itemField}, nil
}

// UserField returns the user column artifact keys are drawn from.
func (i *Interactions) UserField() string { return i.userField }

// ItemField returns the place column artifact keys are drawn from.
func (i *Interactions) ItemField() string { return i.itemField }

// fromClause joins only the tables the key fields need. Visits to ids
// missing from users or places are dropped when a join is required.
func (i *Interactions) fromClause() string {
	from := "user_place up"
	if i.userField != "user_id" {
		from += " JOIN users u ON u.user_id = up.user_id"
	}
	if i.itemField != PlaceKeyID {
		from += " JOIN places p ON p.place_id = up.place_id"
	}
	return from
}

func (i *Interactions) itemExpr() string {
	if i.itemField == PlaceKeyID {
		return "up.place_id"
	}
	return "p." + quoteIdent(i.itemField)
}

func (i *Interactions) userExpr() string {
	if i.userField == "user_id" {
		return "up.user_id"
	}
	return "u." + quoteIdent(i.userField)
}

// VisitedItems returns the item keys userKey has visited. An unknown user
// has no visits.
func (i *Interactions) VisitedItems(ctx context.Context, userKey string) (keys []string, err error) {
	start := time.Now()
	defer func() { observe("SELECT", TableUserPlace, start, err) }()

	ctx, cancel := withTimeout(ctx)
	defer cancel()

	query := fmt.Sprintf("SELECT DISTINCT %s FROM %s WHERE %s = ?",
		i.itemExpr(), i.fromClause(), i.userExpr())

	rows, err := i.db.conn.QueryContext(ctx, query, userKey)
	if err != nil {
		return nil, fmt.Errorf("query visited items: %w", err)
	}
	defer closeWithLog(rows, &i.db.logger, "rows")

	keys = []string{}
	for rows.Next() {
		var key string
		if err := rows.Scan(&key); err != nil {
			return nil, fmt.Errorf("scan visited item: %w", err)
		}
		keys = append(keys, key)
	}
	return keys, rows.Err()
}

// ItemPopularity counts visits per item key.
func (i *Interactions) ItemPopularity(ctx context.Context) (counts map[string]int, err error) {
	start := time.Now()
	defer func() { observe("AGGREGATE", TableUserPlace, start, err) }()

	ctx, cancel := withTimeout(ctx)
	defer cancel()

	query := fmt.Sprintf("SELECT %s AS item_key, COUNT(*) AS n FROM %s GROUP BY item_key",
		i.itemExpr(), i.fromClause())

	rows, err := i.db.conn.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("query item popularity: %w", err)
	}
	defer closeWithLog(rows, &i.db.logger, "rows")

	counts = make(map[string]int)
	for rows.Next() {
		var (
			key string
			n   int64
		)
		if err := rows.Scan(&key, &n); err != nil {
			return nil, fmt.Errorf("scan item popularity: %w", err)
		}
		counts[key] = int(n)
	}
	return counts, rows.Err()
}
