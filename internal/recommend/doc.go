// Wayfarer - Travel Place Listings and Personalized Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/wayfarer

// Package recommend ranks places for a user from precomputed embeddings.
//
// # Architecture
//
// Recommendations are produced by a short, deterministic pipeline:
//
//   - Store: loads the embedding artifact for a model kind and caches it
//   - Visited filter: removes places the user already went to
//   - Scorer: dot product between the user vector and each item vector
//   - Top-K selector: bounded heap with a fixed tie-break
//   - Recommender: the facade tying the steps together
//
// Artifacts are trained offline and are immutable once loaded. The package
// never writes them, never learns from requests and never stores results.
//
// # Model Kinds
//
// Two kinds exist: NFM and LGN. LGN is the canonical spelling of the graph
// model; the historical "LGC" spelling is rejected rather than aliased so
// that a typo cannot silently select a different artifact.
//
// # Ranking Rules
//
// Scores are raw inner products with no normalization, so vector magnitude
// matters. When two scores are equal the item with the lower index wins.
// NaN scores rank below every other score, including -Inf.
//
// # Cold Start
//
// A user key missing from the artifact is never mapped to another user.
// With ColdStartPopularity (the default) the user receives the most visited
// places they have not been to; with ColdStartEmpty they receive nothing.
//
// # Usage
//
//	store := recommend.NewStore(source, logger)
//	rec := recommend.NewRecommender(store, interactions, logger)
//
//	result, err := rec.Recommend(ctx, "alice", recommend.KindNFM, 5)
//	if err != nil {
//	    return err
//	}
//	keys := result.Keys()
//
// # Thread Safety
//
// Store and Recommender are safe for concurrent use. Concurrent first loads
// of one kind are collapsed into a single deserialization.
package recommend
