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
	"os"
	"strings"
	"time"

	"github.com/tomtom215/wayfarer/internal/metrics"
)

// Table names.
const (
	TableUsers     = "users"
	TablePlaces    = "places"
	TableUserPlace = "user_place"
	TableComments  = "comments"
)

// column describes one table column and how it is read from CSV.
type column struct {
	name     string
	required bool
	integer  bool
}

// tableSpec maps a CSV file onto a typed table. Every table has an ord
// column holding the 1-based row position in the file.
type tableSpec struct {
	name    string
	columns []column
}

var tableSpecs = []tableSpec{
	{
		name: TableUsers,
		columns: []column{
			{name: "user_id", required: true},
			{name: "user_name", required: true},
			{name: "full_name"},
			{name: "avatar_url"},
		},
	},
	{
		name: TablePlaces,
		columns: []column{
			{name: "place_id", required: true},
			{name: "place_name", required: true},
			{name: "address"},
			{name: "thumb_url"},
			{name: "description"},
			{name: "content"},
		},
	},
	{
		name: TableUserPlace,
		columns: []column{
			{name: "user_id", required: true},
			{name: "place_id", required: true},
		},
	},
	{
		name: TableComments,
		columns: []column{
			{name: "id", required: true},
			{name: "username", required: true},
			{name: "place_id", required: true},
			{name: "content"},
			{name: "date"},
			{name: "rating", integer: true},
		},
	},
}

func (db *DB) csvPath(table string) string {
	var name string
	switch table {
	case TableUsers:
		name = db.data.UsersFile
	case TablePlaces:
		name = db.data.PlacesFile
	case TableUserPlace:
		name = db.data.UserPlaceFile
	case TableComments:
		name = db.data.CommentsFile
	}
	return db.data.Path(name)
}

func (t tableSpec) createSQL() string {
	defs := []string{"ord BIGINT NOT NULL"}
	for _, c := range t.columns {
		if c.integer {
			defs = append(defs, quoteIdent(c.name)+" INTEGER")
		} else {
			defs = append(defs, quoteIdent(c.name)+" VARCHAR NOT NULL DEFAULT ''")
		}
	}
	return fmt.Sprintf("CREATE OR REPLACE TABLE %s (%s)", t.name, strings.Join(defs, ", "))
}

// insertSQL builds the import statement for a CSV whose header is present.
// Header names are matched after trimming whitespace. Missing optional
// columns load as empty strings (or NULL for integers).
func (t tableSpec) insertSQL(path string, header []string) (string, error) {
	actual := make(map[string]string, len(header))
	for _, h := range header {
		actual[strings.TrimSpace(strings.TrimPrefix(h, "\ufeff"))] = h
	}

	selects := []string{"row_number() OVER () AS ord"}
	for _, c := range t.columns {
		src, ok := actual[c.name]
		switch {
		case !ok && c.required:
			return "", fmt.Errorf("%s: missing required column %q", path, c.name)
		case !ok && c.integer:
			selects = append(selects, "CAST(NULL AS INTEGER)")
		case !ok:
			selects = append(selects, "''")
		case c.integer:
			selects = append(selects, fmt.Sprintf("TRY_CAST(TRIM(%s) AS INTEGER)", quoteIdent(src)))
		default:
			selects = append(selects, fmt.Sprintf("COALESCE(%s, '')", quoteIdent(src)))
		}
	}

	return fmt.Sprintf("INSERT INTO %s SELECT %s FROM %s",
		t.name, strings.Join(selects, ", "), readCSV(path)), nil
}

func readCSV(path string) string {
	return fmt.Sprintf("read_csv_auto(%s, header=true, all_varchar=true)", quoteLiteral(path))
}

func (db *DB) createEmptyTables(ctx context.Context) error {
	for _, t := range tableSpecs {
		if _, err := db.conn.ExecContext(ctx, t.createSQL()); err != nil {
			return fmt.Errorf("create %s: %w", t.name, err)
		}
	}
	return nil
}

// Reload re-imports every CSV table in one transaction. On failure the
// previous contents stay in place. A missing CSV file yields an empty table.
func (db *DB) Reload(ctx context.Context) error {
	db.reloadMu.Lock()
	defer db.reloadMu.Unlock()

	start := time.Now()
	tx, err := db.conn.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin import: %w", err)
	}
	defer func() {
		if tx != nil {
			_ = tx.Rollback() //nolint:errcheck // rollback after a failed import
		}
	}()

	counts := make(map[string]int, len(tableSpecs))
	for _, t := range tableSpecs {
		tableStart := time.Now()
		n, err := db.importTable(ctx, tx, t)
		observe("IMPORT", t.name, tableStart, err)
		if err != nil {
			return err
		}
		counts[t.name] = n
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit import: %w", err)
	}
	tx = nil

	db.statsMu.Lock()
	db.tableRows = counts
	db.lastImport = time.Now()
	db.statsMu.Unlock()

	for name, n := range counts {
		metrics.RecordTableRows(name, n)
	}

	db.logger.Info().
		Int(TableUsers, counts[TableUsers]).
		Int(TablePlaces, counts[TablePlaces]).
		Int(TableUserPlace, counts[TableUserPlace]).
		Int(TableComments, counts[TableComments]).
		Dur("duration", time.Since(start)).
		Msg("CSV tables imported")

	return nil
}

func (db *DB) importTable(ctx context.Context, tx *sql.Tx, t tableSpec) (int, error) {
	if _, err := tx.ExecContext(ctx, t.createSQL()); err != nil {
		return 0, fmt.Errorf("create %s: %w", t.name, err)
	}

	path := db.csvPath(t.name)
	if _, err := os.Stat(path); err != nil {
		if errors.Is(err, os.ErrNotExist) {
			db.logger.Warn().Str("table", t.name).Str("path", path).Msg("CSV file not found, table left empty")
			return 0, nil
		}
		return 0, fmt.Errorf("stat %s: %w", path, err)
	}

	header, err := csvHeader(ctx, tx, path)
	if err != nil {
		return 0, err
	}
	insert, err := t.insertSQL(path, header)
	if err != nil {
		return 0, err
	}

	res, err := tx.ExecContext(ctx, insert)
	if err != nil {
		return 0, fmt.Errorf("import %s from %s: %w", t.name, path, err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("count %s rows: %w", t.name, err)
	}
	return int(n), nil
}

// csvHeader returns the column names DuckDB detects for path.
func csvHeader(ctx context.Context, tx *sql.Tx, path string) ([]string, error) {
	rows, err := tx.QueryContext(ctx, "SELECT * FROM "+readCSV(path)+" LIMIT 0")
	if err != nil {
		return nil, fmt.Errorf("read header of %s: %w", path, err)
	}
	defer rows.Close()

	cols, err := rows.Columns()
	if err != nil {
		return nil, fmt.Errorf("read header of %s: %w", path, err)
	}
	return cols, rows.Err()
}

func quoteIdent(s string) string {
	return `"` + strings.ReplaceAll(s, `"`, `""`) + `"`
}

func quoteLiteral(s string) string {
	return "'" + strings.ReplaceAll(s, "'", "''") + "'"
}
