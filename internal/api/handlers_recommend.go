// Wayfarer - Travel Place Listings and Personalized Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/wayfarer

package api

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/tomtom215/wayfarer/internal/database"
	"github.com/tomtom215/wayfarer/internal/logging"
	"github.com/tomtom215/wayfarer/internal/metrics"
	"github.com/tomtom215/wayfarer/internal/models"
	"github.com/tomtom215/wayfarer/internal/recommend"
)

// recommendTimeout bounds a single recommendation including the place join.
const recommendTimeout = 10 * time.Second

// AIRecommend handles POST /api/v1/ai/recommend for the signed-in user.
// The body is optional: {"kind": "NFM", "k": 5}.
func (h *Handler) AIRecommend(w http.ResponseWriter, r *http.Request) {
	user, ok := userFromContext(r.Context())
	if !ok {
		respondError(w, http.StatusUnauthorized, models.ErrCodeAuthentication, "Authentication required", nil)
		return
	}

	var req models.AIRecommendRequest
	if err := decodeJSONBody(r, &req); err != nil {
		respondError(w, http.StatusBadRequest, models.ErrCodeValidation, "Invalid request body", err)
		return
	}
	kind, ok := h.resolveKind(w, req.Kind)
	if !ok {
		return
	}
	if apiErr := validateRequest(&req); apiErr != nil {
		respondValidation(w, apiErr)
		return
	}

	k := h.config.Recommend.DefaultK
	if req.K != nil {
		k = *req.K
	}

	h.serveRecommendation(w, r, user, kind, k, "")
}

// Recommendations handles GET /api/v1/recommendations?user_id=&kind=&k=&query=.
// query keeps only places whose content contains it, case-insensitively.
func (h *Handler) Recommendations(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()

	k, ok := getIntParam(r, "k", h.config.Recommend.DefaultK)
	if !ok {
		respondError(w, http.StatusBadRequest, models.ErrCodeValidation, "k must be an integer", nil)
		return
	}

	req := models.RecommendationsQuery{
		UserID: q.Get("user_id"),
		Kind:   q.Get("kind"),
		K:      k,
		Query:  q.Get("query"),
	}
	kind, ok := h.resolveKind(w, req.Kind)
	if !ok {
		return
	}
	if apiErr := validateRequest(&req); apiErr != nil {
		respondValidation(w, apiErr)
		return
	}

	user, err := h.db.UserByID(r.Context(), strings.TrimSpace(req.UserID))
	if errors.Is(err, database.ErrNotFound) {
		respondError(w, http.StatusNotFound, models.ErrCodeNotFound, "User not found", nil)
		return
	}
	if err != nil {
		respondError(w, http.StatusInternalServerError, models.ErrCodeDatabase, "Failed to look up user", err)
		return
	}

	h.serveRecommendation(w, r, user, kind, req.K, req.Query)
}

// resolveKind parses an optional kind parameter, falling back to the
// configured default. Unknown kinds get a 400 UNKNOWN_MODEL_KIND.
func (h *Handler) resolveKind(w http.ResponseWriter, param string) (recommend.ModelKind, bool) {
	if strings.TrimSpace(param) == "" {
		return h.config.Recommend.DefaultModelKind(), true
	}
	kind, err := recommend.ParseModelKind(param)
	if err != nil {
		metrics.RecordRecommendation("unknown", "", metrics.OutcomeClientError, 0, 0)
		respondError(w, http.StatusBadRequest, models.ErrCodeUnknownModelKind, "kind must be one of: NFM, LGN", nil)
		return "", false
	}
	return kind, true
}

// serveRecommendation runs the recommender for user and joins the ranked
// keys back to place records.
func (h *Handler) serveRecommendation(w http.ResponseWriter, r *http.Request, user models.User, kind recommend.ModelKind, k int, query string) {
	start := time.Now()

	if maxK := h.config.Recommend.MaxK; maxK > 0 && k > maxK {
		respondError(w, http.StatusBadRequest, models.ErrCodeValidation, fmt.Sprintf("k must be at most %d", maxK), nil)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), recommendTimeout)
	defer cancel()

	userKey := h.userKey(user)
	result, err := h.recommender.Recommend(ctx, userKey, kind, k)
	if err != nil {
		outcome := respondRecommendError(w, err)
		metrics.RecordRecommendation(kind.String(), "", outcome, 0, time.Since(start))
		return
	}

	places, err := h.joinPlaces(ctx, result, query)
	if err != nil {
		metrics.RecordRecommendation(kind.String(), result.Strategy, metrics.OutcomeError, 0, time.Since(start))
		respondError(w, http.StatusInternalServerError, models.ErrCodeDatabase, "Failed to load recommended places", err)
		return
	}

	metrics.RecordRecommendation(kind.String(), result.Strategy, metrics.OutcomeOK, len(places), time.Since(start))
	logging.Ctx(r.Context()).Debug().
		Str("kind", kind.String()).
		Str("user_key", sanitizeLogValue(userKey)).
		Str("strategy", result.Strategy).
		Int("k", k).
		Int("returned", len(places)).
		Msg("Recommendations served")

	respondSuccess(w, models.RecommendationResponse{
		Kind:      kind.String(),
		UserKey:   userKey,
		Strategy:  result.Strategy,
		ColdStart: result.ColdStart,
		Places:    places,
	}, start, len(places))
}

// userKey returns the user's key in the artifact key space.
func (h *Handler) userKey(user models.User) string {
	if h.config.Recommend.UserKeyField == "user_id" {
		return user.UserID
	}
	return user.UserName
}

// joinPlaces resolves ranked item keys to places, preserving rank.
// Keys with no place row are dropped, as are rows the store returns for
// keys outside the result.
func (h *Handler) joinPlaces(ctx context.Context, result *recommend.Result, query string) ([]models.RecommendedPlace, error) {
	field := h.config.Recommend.ItemKeyField
	places, err := h.db.PlacesByKeys(ctx, field, result.Keys())
	if err != nil {
		return nil, err
	}

	rank := make(map[string]int, len(result.Items))
	for i, item := range result.Items {
		if _, seen := rank[item.ItemKey]; !seen {
			rank[item.ItemKey] = i
		}
	}

	out := make([]models.RecommendedPlace, 0, len(places))
	for _, p := range places {
		if !p.ContentContains(query) {
			continue
		}
		key := p.PlaceName
		if field == database.PlaceKeyID {
			key = p.PlaceID
		}
		i, ok := rank[key]
		if !ok {
			continue
		}
		out = append(out, models.RecommendedPlace{
			Place: p,
			Rank:  i + 1,
			Score: result.Items[i].Score,
		})
	}
	return out, nil
}

// respondRecommendError maps recommender errors to HTTP responses and
// returns the metrics outcome.
func respondRecommendError(w http.ResponseWriter, err error) string {
	switch {
	case recommend.IsClientError(err):
		respondError(w, http.StatusBadRequest, models.ErrCodeUnknownModelKind, "Unknown model kind", nil)
		return metrics.OutcomeClientError
	case recommend.IsUnavailable(err):
		respondError(w, http.StatusServiceUnavailable, models.ErrCodeModelUnavailable, "Recommendation model unavailable", err)
		return metrics.OutcomeUnavailable
	case errors.Is(err, context.DeadlineExceeded):
		respondError(w, http.StatusGatewayTimeout, models.ErrCodeInternal, "Recommendation timed out", err)
		return metrics.OutcomeError
	default:
		respondError(w, http.StatusInternalServerError, models.ErrCodeInternal, "Failed to generate recommendations", err)
		return metrics.OutcomeError
	}
}
