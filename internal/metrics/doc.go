// Wayfarer - Travel Place Listings and Personalized Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/wayfarer

/*
Package metrics provides Prometheus collectors for the Wayfarer server.

All collectors are registered with the default registry through promauto and
exposed on /metrics by the API router.

# Available Metrics

HTTP:
  - api_requests_total{method,endpoint,status_code}
  - api_request_duration_seconds{method,endpoint}
  - api_active_requests
  - api_rate_limit_hits_total{endpoint}

DuckDB:
  - duckdb_query_duration_seconds{operation,table}
  - duckdb_query_errors_total{operation,table}
  - duckdb_table_rows{table}

Recommendations:
  - recommend_requests_total{kind,strategy,outcome}
  - recommend_duration_seconds{kind}
  - recommend_result_size{kind}
  - artifact_loads_total{kind,result}
  - artifact_load_duration_seconds{kind}
  - artifact_cache_hits_total, artifact_cache_misses_total

Endpoint labels are chi route patterns (for example /api/v1/places/{id}/info)
so that label cardinality stays bounded.
*/
package metrics
