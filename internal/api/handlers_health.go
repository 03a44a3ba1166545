// Wayfarer - Travel Place Listings and Personalized Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/wayfarer

package api

import (
	"context"
	"net/http"
	"time"

	"github.com/tomtom215/wayfarer/internal/models"
	"github.com/tomtom215/wayfarer/internal/recommend"
)

// readinessTimeout bounds the dependency checks of one readiness probe.
const readinessTimeout = 5 * time.Second

// HealthLive handles liveness probe requests.
// Returns 200 OK while the process is alive, regardless of dependencies.
func (h *Handler) HealthLive(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, &models.APIResponse{
		Status: "success",
		Data: map[string]interface{}{
			"alive":  true,
			"uptime": time.Since(h.startTime).Seconds(),
		},
		Metadata: models.Metadata{
			Timestamp: time.Now(),
		},
	})
}

// HealthReady handles readiness probe requests.
// Ready means the database answers and at least one artifact is loaded
// or loads now.
func (h *Handler) HealthReady(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), readinessTimeout)
	defer cancel()

	health := models.HealthStatus{
		Status:    "ready",
		Version:   h.version,
		Artifacts: make(map[string]bool),
		Uptime:    time.Since(h.startTime).Seconds(),
		Errors:    make(map[string]string),
	}

	if err := h.db.Ping(ctx); err != nil {
		health.Errors["database"] = err.Error()
	} else {
		health.DatabaseOK = true
		health.TableRows = h.db.TableRows()
	}

	anyArtifact := false
	for _, kind := range recommend.AllKinds() {
		ok := h.artifacts.Loaded(kind)
		if !ok {
			if _, err := h.artifacts.Load(ctx, kind); err != nil {
				health.Errors[kind.String()] = err.Error()
			} else {
				ok = true
			}
		}
		health.Artifacts[kind.String()] = ok
		anyArtifact = anyArtifact || ok
	}

	status := http.StatusOK
	apiStatus := "success"
	if !health.DatabaseOK || !anyArtifact {
		health.Status = "not_ready"
		status = http.StatusServiceUnavailable
		apiStatus = "error"
	}
	if len(health.Errors) == 0 {
		health.Errors = nil
	}

	respondJSON(w, status, &models.APIResponse{
		Status: apiStatus,
		Data:   health,
		Metadata: models.Metadata{
			Timestamp: time.Now(),
		},
	})
}
