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
	"path/filepath"
	"runtime"
	"sync"
	"time"

	_ "github.com/duckdb/duckdb-go/v2"
	"github.com/rs/zerolog"

	"github.com/tomtom215/wayfarer/internal/config"
	"github.com/tomtom215/wayfarer/internal/metrics"
)

// memoryPath opens a private in-memory DuckDB database.
const memoryPath = ":memory:"

// defaultQueryTimeout bounds every read query.
const defaultQueryTimeout = 10 * time.Second

// DB wraps the DuckDB connection holding the imported CSV tables.
type DB struct {
	conn   *sql.DB
	cfg    *config.DatabaseConfig
	data   config.DataConfig
	logger zerolog.Logger

	// reloadMu serializes imports. Readers rely on DuckDB MVCC instead.
	reloadMu sync.Mutex

	statsMu    sync.RWMutex
	tableRows  map[string]int
	lastImport time.Time
}

// New opens DuckDB and imports every CSV table from data.
//
//nolint:gocritic // logger passed by value is acceptable for zerolog
func New(ctx context.Context, cfg *config.DatabaseConfig, data config.DataConfig, logger zerolog.Logger) (*DB, error) {
	db, err := Open(cfg, logger)
	if err != nil {
		return nil, err
	}
	db.data = data

	if err := db.Reload(ctx); err != nil {
		closeQuietly(db.conn)
		return nil, fmt.Errorf("failed to import tables: %w", err)
	}
	return db, nil
}

// Open opens DuckDB and creates empty tables without importing any CSV.
//
//nolint:gocritic // logger passed by value is acceptable for zerolog
func Open(cfg *config.DatabaseConfig, logger zerolog.Logger) (*DB, error) {
	path := cfg.Path
	if path == "" {
		path = memoryPath
	}

	if path != memoryPath {
		if dir := filepath.Dir(path); dir != "" && dir != "." {
			if err := os.MkdirAll(dir, 0o750); err != nil {
				return nil, fmt.Errorf("failed to create database directory %s: %w", dir, err)
			}
		}
	}

	threads := cfg.Threads
	if threads <= 0 {
		threads = runtime.NumCPU()
	}
	maxMemory := cfg.MaxMemory
	if maxMemory == "" {
		maxMemory = "1GB"
	}

	connStr := fmt.Sprintf("%s?threads=%d&max_memory=%s&autoinstall_known_extensions=false&autoload_known_extensions=false",
		path, threads, maxMemory)

	conn, err := sql.Open("duckdb", connStr)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}
	configureConnectionPool(conn)

	db := &DB{
		conn:      conn,
		cfg:       cfg,
		logger:    logger.With().Str("component", "database").Logger(),
		tableRows: make(map[string]int),
	}

	if err := db.createEmptyTables(context.Background()); err != nil {
		closeQuietly(conn)
		return nil, fmt.Errorf("failed to create tables: %w", err)
	}
	return db, nil
}

func configureConnectionPool(conn *sql.DB) {
	conn.SetMaxOpenConns(runtime.NumCPU())
	conn.SetMaxIdleConns(2)
	conn.SetConnMaxLifetime(time.Hour)
	conn.SetConnMaxIdleTime(5 * time.Minute)
}

// Ping verifies the connection is alive.
func (db *DB) Ping(ctx context.Context) error {
	return db.conn.PingContext(ctx)
}

// Close closes the database connection.
func (db *DB) Close() error {
	return db.conn.Close()
}

// Conn returns the underlying connection.
func (db *DB) Conn() *sql.DB {
	return db.conn
}

// TableRows returns the row count of each table at the last import.
func (db *DB) TableRows() map[string]int {
	db.statsMu.RLock()
	defer db.statsMu.RUnlock()

	out := make(map[string]int, len(db.tableRows))
	for k, v := range db.tableRows {
		out[k] = v
	}
	return out
}

// LastImport returns when the tables were last imported.
func (db *DB) LastImport() time.Time {
	db.statsMu.RLock()
	defer db.statsMu.RUnlock()
	return db.lastImport
}

// observe records the duration and outcome of one query.
func observe(operation, table string, start time.Time, err error) {
	metrics.RecordDBQuery(operation, table, time.Since(start), err)
}

// observeLookup records a single-row lookup. A miss is not a query error.
func observeLookup(table string, start time.Time, err error) {
	if errors.Is(err, ErrNotFound) {
		err = nil
	}
	observe("SELECT", table, start, err)
}

// withTimeout applies defaultQueryTimeout unless ctx already has a deadline.
func withTimeout(ctx context.Context) (context.Context, context.CancelFunc) {
	if _, ok := ctx.Deadline(); ok {
		return context.WithCancel(ctx)
	}
	return context.WithTimeout(ctx, defaultQueryTimeout)
}
