// Wayfarer - Travel Place Listings and Personalized Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/wayfarer

/*
Package config provides centralized configuration management for Wayfarer.

# Configuration Sources

Configuration is layered with Koanf v2, later layers overriding earlier ones:

 1. Built-in defaults (defaultConfig)
 2. An optional YAML file: $CONFIG_PATH, else config.yaml / config.yml in the
    working directory, else /etc/wayfarer/config.yaml
 3. Environment variables, through an explicit mapping table

Unmapped environment variables are ignored.

# Environment Variables

Server:
  - HTTP_HOST: Bind address (default: 0.0.0.0)
  - HTTP_PORT: Listen port (default: 8000)
  - HTTP_TIMEOUT: Read/write timeout (default: 30s)
  - SHUTDOWN_TIMEOUT: Graceful shutdown budget (default: 10s)

Database and data files:
  - DUCKDB_PATH: DuckDB file, empty for in-memory (default: empty)
  - DUCKDB_MAX_MEMORY, DUCKDB_THREADS: DuckDB tuning
  - DATA_DIR: Directory holding user.csv, place.csv, user_place.csv, comment.csv
  - SUMMARY_PATH: Text file served by /api/v1/summary
  - DATA_RELOAD_INTERVAL: periodic CSV re-import, 0 disables (default: 0)

Recommendations:
  - RECOMMEND_DEFAULT_KIND: NFM or LGN (default: NFM)
  - RECOMMEND_DEFAULT_K, RECOMMEND_MAX_K: result sizes (default: 5, 100)
  - RECOMMEND_COLD_START: popularity or empty (default: popularity)
  - RECOMMEND_USER_KEY_FIELD: user_name or user_id (default: user_name)
  - RECOMMEND_ITEM_KEY_FIELD: place_name or place_id (default: place_name)
  - RECOMMEND_PRELOAD: comma-separated kinds loaded at startup

Artifacts:
  - ARTIFACT_STORE: file or badger (default: file)
  - ARTIFACT_NFM_PATH, ARTIFACT_LGN_PATH: artifact files for the file store
  - ARTIFACT_BADGER_PATH: BadgerDB directory for the badger store

Security:
  - CORS_ORIGINS: comma-separated origins (default: *)
  - RATE_LIMIT_REQUESTS, RATE_LIMIT_WINDOW, DISABLE_RATE_LIMIT
  - AUTHZ_POLICY_PATH: Casbin CSV policy file (default: built-in policy)

Logging:
  - LOG_LEVEL: trace, debug, info, warn, error (default: info)
  - LOG_FORMAT: json, console (default: json)
  - LOG_CALLER: include file:line (default: false)

# Thread Safety

Config is immutable after Load() and safe for concurrent reads.
*/
package config
