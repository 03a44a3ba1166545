// Wayfarer - Travel Place Listings and Personalized Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/wayfarer

package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// Database Metrics
	DBQueryDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "duckdb_query_duration_seconds",
			Help:    "Duration of DuckDB queries in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"operation", "table"},
	)

	DBQueryErrors = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "duckdb_query_errors_total",
			Help: "Total number of DuckDB query errors",
		},
		[]string{"operation", "table"},
	)

	DBTableRows = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "duckdb_table_rows",
			Help: "Rows imported into each table at the last CSV load",
		},
		[]string{"table"},
	)

	// API Endpoint Metrics
	APIRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "api_requests_total",
			Help: "Total number of API requests",
		},
		[]string{"method", "endpoint", "status_code"},
	)

	APIRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "api_request_duration_seconds",
			Help:    "API request duration in seconds",
			Buckets: []float64{0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5},
		},
		[]string{"method", "endpoint"},
	)

	APIActiveRequests = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "api_active_requests",
			Help: "Current number of active API requests",
		},
	)

	APIRateLimitHits = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "api_rate_limit_hits_total",
			Help: "Total number of rate limit rejections",
		},
		[]string{"endpoint"},
	)

	// Recommendation Metrics
	RecommendRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "recommend_requests_total",
			Help: "Recommendation requests by model kind, strategy and outcome",
		},
		[]string{"kind", "strategy", "outcome"},
	)

	RecommendDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "recommend_duration_seconds",
			Help:    "Time to rank places for one request",
			Buckets: []float64{0.0005, 0.001, 0.0025, 0.005, 0.01, 0.025, 0.05, 0.1, 0.25},
		},
		[]string{"kind"},
	)

	RecommendResultSize = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "recommend_result_size",
			Help:    "Number of places returned per recommendation",
			Buckets: []float64{0, 1, 2, 5, 10, 20, 50, 100},
		},
		[]string{"kind"},
	)

	// Artifact Metrics
	ArtifactLoadsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "artifact_loads_total",
			Help: "Embedding artifact reads from the backing source",
		},
		[]string{"kind", "result"},
	)

	ArtifactLoadDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "artifact_load_duration_seconds",
			Help:    "Time to read and validate one embedding artifact",
			Buckets: prometheus.ExponentialBuckets(0.01, 2, 10),
		},
		[]string{"kind"},
	)

	ArtifactCacheHits = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "artifact_cache_hits_total",
			Help: "Artifact lookups served from memory",
		},
	)

	ArtifactCacheMisses = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "artifact_cache_misses_total",
			Help: "Artifact lookups that went to the source",
		},
	)
)

// RecordDBQuery records one DuckDB query.
func RecordDBQuery(operation, table string, duration time.Duration, err error) {
	DBQueryDuration.WithLabelValues(operation, table).Observe(duration.Seconds())
	if err != nil {
		DBQueryErrors.WithLabelValues(operation, table).Inc()
	}
}

// RecordTableRows records the row count of an imported table.
func RecordTableRows(table string, rows int) {
	DBTableRows.WithLabelValues(table).Set(float64(rows))
}

// RecordAPIRequest records one completed HTTP request.
func RecordAPIRequest(method, endpoint, statusCode string, duration time.Duration) {
	APIRequestsTotal.WithLabelValues(method, endpoint, statusCode).Inc()
	APIRequestDuration.WithLabelValues(method, endpoint).Observe(duration.Seconds())
}

// TrackActiveRequest increments or decrements the in-flight request gauge.
func TrackActiveRequest(inc bool) {
	if inc {
		APIActiveRequests.Inc()
	} else {
		APIActiveRequests.Dec()
	}
}

// RecordRateLimitHit counts a request rejected by the rate limiter.
func RecordRateLimitHit(endpoint string) {
	APIRateLimitHits.WithLabelValues(endpoint).Inc()
}

// Recommendation outcomes
const (
	OutcomeOK          = "ok"
	OutcomeClientError = "client_error"
	OutcomeUnavailable = "unavailable"
	OutcomeError       = "error"
)

// RecordRecommendation records one recommendation request.
// strategy is empty when the request failed before a strategy was chosen.
func RecordRecommendation(kind, strategy, outcome string, results int, duration time.Duration) {
	if strategy == "" {
		strategy = "none"
	}
	RecommendRequestsTotal.WithLabelValues(kind, strategy, outcome).Inc()
	if outcome == OutcomeOK {
		RecommendDuration.WithLabelValues(kind).Observe(duration.Seconds())
		RecommendResultSize.WithLabelValues(kind).Observe(float64(results))
	}
}

// RecordArtifactLoad records one read of an artifact from its source.
func RecordArtifactLoad(kind string, duration time.Duration, err error) {
	result := "success"
	if err != nil {
		result = "failure"
	}
	ArtifactLoadsTotal.WithLabelValues(kind, result).Inc()
	ArtifactLoadDuration.WithLabelValues(kind).Observe(duration.Seconds())
}

// RecordArtifactCache records an artifact lookup against the in-memory cache.
func RecordArtifactCache(hit bool) {
	if hit {
		ArtifactCacheHits.Inc()
	} else {
		ArtifactCacheMisses.Inc()
	}
}
