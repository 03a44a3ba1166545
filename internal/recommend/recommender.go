// Wayfarer - Travel Place Listings and Personalized Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/wayfarer

package recommend

import (
	"context"
	"fmt"
	"strings"

	"github.com/rs/zerolog"
)

// InteractionSource exposes the read-only user-place interaction table.
// Keys are in the same key spaces as the artifacts.
type InteractionSource interface {
	// VisitedItems returns the item keys userKey has interacted with.
	// Keys unknown to an artifact are tolerated and ignored.
	VisitedItems(ctx context.Context, userKey string) ([]string, error)
}

// PopularitySource is implemented by interaction sources that can count
// visits per item. It backs the popularity cold-start policy.
type PopularitySource interface {
	ItemPopularity(ctx context.Context) (map[string]int, error)
}

// ColdStartPolicy decides what a user missing from the artifact receives.
type ColdStartPolicy int

const (
	// ColdStartPopularity ranks unvisited items by visit count.
	ColdStartPopularity ColdStartPolicy = iota

	// ColdStartEmpty returns no recommendations.
	ColdStartEmpty
)

// String implements fmt.Stringer.
func (p ColdStartPolicy) String() string {
	switch p {
	case ColdStartPopularity:
		return "popularity"
	case ColdStartEmpty:
		return "empty"
	default:
		return "unknown"
	}
}

// ParseColdStartPolicy converts a config value to a policy.
func ParseColdStartPolicy(s string) (ColdStartPolicy, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "popularity":
		return ColdStartPopularity, nil
	case "empty":
		return ColdStartEmpty, nil
	default:
		return 0, fmt.Errorf("unknown cold start policy %q (supported: popularity, empty)", s)
	}
}

// Strategies reported in Result.Strategy.
const (
	StrategyEmbedding  = "embedding"
	StrategyPopularity = "popularity"
	StrategyEmpty      = "empty"
)

// Recommendation is one ranked item.
type Recommendation struct {
	ItemKey string  `json:"item_key"`
	Score   float64 `json:"score"`
}

// Result is the ranked output of a single request.
type Result struct {
	Kind      ModelKind        `json:"kind"`
	UserKey   string           `json:"user_key"`
	Items     []Recommendation `json:"items"`
	ColdStart bool             `json:"cold_start"`
	Strategy  string           `json:"strategy"`
}

// Keys returns the recommended item keys in rank order.
func (r *Result) Keys() []string {
	keys := make([]string, len(r.Items))
	for i, item := range r.Items {
		keys[i] = item.ItemKey
	}
	return keys
}

// Option configures a Recommender.
type Option func(*Recommender)

// WithColdStartPolicy sets the policy for users missing from the artifact.
func WithColdStartPolicy(p ColdStartPolicy) Option {
	return func(r *Recommender) {
		r.coldStart = p
	}
}

// Recommender is the entry point for ranking places for a user.
// It holds no per-request state and is safe for concurrent use.
type Recommender struct {
	store        *Store
	interactions InteractionSource
	coldStart    ColdStartPolicy
	logger       zerolog.Logger
}

// NewRecommender wires a store and an interaction table together.
//
//nolint:gocritic // logger passed by value is acceptable for zerolog
func NewRecommender(store *Store, interactions InteractionSource, logger zerolog.Logger, opts ...Option) *Recommender {
	r := &Recommender{
		store:        store,
		interactions: interactions,
		coldStart:    ColdStartPopularity,
		logger:       logger.With().Str("component", "recommend").Logger(),
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// ColdStartPolicy returns the configured cold-start policy.
func (r *Recommender) ColdStartPolicy() ColdStartPolicy {
	return r.coldStart
}

// Recommend returns up to k unvisited items for userKey, best first.
//
// Only structural problems are errors: an unsupported kind, a missing or
// invalid artifact, or a failing interaction table. An unknown user gets the
// cold-start policy, and a user who has visited everything gets an empty
// result.
func (r *Recommender) Recommend(ctx context.Context, userKey string, kind ModelKind, k int) (*Result, error) {
	artifact, err := r.store.Load(ctx, kind)
	if err != nil {
		return nil, err
	}

	userIdx, known := artifact.ResolveUser(userKey)
	result := &Result{
		Kind:      kind,
		UserKey:   userKey,
		Items:     []Recommendation{},
		ColdStart: !known,
		Strategy:  StrategyEmbedding,
	}
	if !known {
		result.Strategy = r.coldStartStrategy()
	}
	if k <= 0 {
		return result, nil
	}

	visitedKeys, err := r.interactions.VisitedItems(ctx, userKey)
	if err != nil {
		return nil, &Error{Op: "visited items", Kind: kind, Err: err}
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	eligible := EligibleItems(artifact.ItemIndexes(), artifact.ResolveItems(visitedKeys))

	var ranked []ScoredItem
	switch {
	case known:
		ranked = TopK(scoreIndexes(artifact, artifact.UserVector(userIdx), eligible), k)
	case result.Strategy == StrategyPopularity:
		ranked, err = r.rankByPopularity(ctx, artifact, eligible, k)
		if err != nil {
			return nil, &Error{Op: "popularity", Kind: kind, Err: err}
		}
	}

	for _, item := range ranked {
		result.Items = append(result.Items, Recommendation{
			ItemKey: artifact.ItemKey(item.Index),
			Score:   item.Score,
		})
	}

	r.logger.Debug().
		Str("user_key", userKey).
		Str("kind", kind.String()).
		Str("strategy", result.Strategy).
		Int("visited", len(visitedKeys)).
		Int("eligible", len(eligible)).
		Int("returned", len(result.Items)).
		Msg("recommendation complete")

	return result, nil
}

// coldStartStrategy resolves the configured policy against the source's abilities.
func (r *Recommender) coldStartStrategy() string {
	if r.coldStart != ColdStartPopularity {
		return StrategyEmpty
	}
	if _, ok := r.interactions.(PopularitySource); !ok {
		return StrategyEmpty
	}
	return StrategyPopularity
}

// rankByPopularity scores eligible items by visit count.
// Items without visits keep a zero score and therefore rank last.
func (r *Recommender) rankByPopularity(ctx context.Context, a *Artifact, eligible []int, k int) ([]ScoredItem, error) {
	pop, ok := r.interactions.(PopularitySource)
	if !ok {
		return nil, nil
	}

	counts, err := pop.ItemPopularity(ctx)
	if err != nil {
		return nil, err
	}

	scored := make([]ScoredItem, len(eligible))
	for i, idx := range eligible {
		scored[i] = ScoredItem{Index: idx, Score: float64(counts[a.ItemKey(idx)])}
	}
	return TopK(scored, k), nil
}
