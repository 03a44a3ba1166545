// Wayfarer - Travel Place Listings and Personalized Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/wayfarer

package api

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/tomtom215/wayfarer/internal/logging"
	"github.com/tomtom215/wayfarer/internal/models"
	"github.com/tomtom215/wayfarer/internal/recommend"
)

// AdminReload handles POST /api/v1/admin/reload.
// The CSV tables are re-imported atomically; on failure the previous data stays.
func (h *Handler) AdminReload(w http.ResponseWriter, r *http.Request) {
	start := time.Now()

	if err := h.db.Reload(r.Context()); err != nil {
		respondError(w, http.StatusInternalServerError, models.ErrCodeDatabase, "Failed to reload data", err)
		return
	}

	logging.Ctx(r.Context()).Info().Dur("duration", time.Since(start)).Msg("Data reloaded by admin")
	respondSuccess(w, map[string]interface{}{
		"table_rows": h.db.TableRows(),
	}, start, -1)
}

// AdminInvalidateArtifact handles POST /api/v1/admin/artifacts/{kind}/invalidate.
// The next request for kind rereads the artifact from its source.
func (h *Handler) AdminInvalidateArtifact(w http.ResponseWriter, r *http.Request) {
	start := time.Now()

	kind, err := recommend.ParseModelKind(chi.URLParam(r, "kind"))
	if err != nil {
		respondError(w, http.StatusBadRequest, models.ErrCodeUnknownModelKind, "kind must be one of: NFM, LGN", nil)
		return
	}

	wasLoaded := h.artifacts.Loaded(kind)
	h.artifacts.Invalidate(kind)

	logging.Ctx(r.Context()).Info().Str("kind", kind.String()).Bool("was_loaded", wasLoaded).Msg("Artifact invalidated")
	respondSuccess(w, map[string]interface{}{
		"kind":       kind.String(),
		"was_loaded": wasLoaded,
	}, start, -1)
}
