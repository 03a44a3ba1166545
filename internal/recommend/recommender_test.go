// Wayfarer - Travel Place Listings and Personalized Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/wayfarer

package recommend

import (
	"context"
	"errors"
	"fmt"
	"math/rand/v2"
	"testing"

	"github.com/rs/zerolog"
)

func newScenarioRecommender(t *testing.T, interactions InteractionSource, opts ...Option) *Recommender {
	t.Helper()
	src := &fakeSource{artifacts: map[ModelKind]*Artifact{
		KindNFM: scenarioArtifact(t),
		KindLGN: scenarioArtifact(t),
	}}
	return NewRecommender(NewStore(src, zerolog.Nop()), interactions, zerolog.Nop(), opts...)
}

func TestRecommend_Scenarios(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		visited []string
		k       int
		want    []string
	}{
		{name: "nothing visited", k: 2, want: []string{"A", "C"}},
		{name: "best item visited", visited: []string{"A"}, k: 2, want: []string{"C", "B"}},
		{name: "k exceeds candidates", visited: []string{"A"}, k: 10, want: []string{"C", "B"}},
		{name: "everything visited", visited: []string{"A", "B", "C"}, k: 3, want: []string{}},
		{name: "unknown visited keys ignored", visited: []string{"Z", "A"}, k: 1, want: []string{"C"}},
		{name: "zero k", k: 0, want: []string{}},
		{name: "negative k", k: -1, want: []string{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			interactions := &fakeInteractions{visited: map[string][]string{"U": tt.visited}}
			rec := newScenarioRecommender(t, interactions)

			for _, kind := range AllKinds() {
				got, err := rec.Recommend(context.Background(), "U", kind, tt.k)
				if err != nil {
					t.Fatalf("Recommend(%s) error = %v", kind, err)
				}
				if !equalStrings(got.Keys(), tt.want) {
					t.Errorf("Recommend(%s) = %v, want %v", kind, got.Keys(), tt.want)
				}
				if got.ColdStart || got.Strategy != StrategyEmbedding {
					t.Errorf("Recommend(%s) strategy = %s cold=%v, want embedding", kind, got.Strategy, got.ColdStart)
				}
				if got.Items == nil {
					t.Errorf("Recommend(%s) Items is nil, want empty slice", kind)
				}
			}
		})
	}
}

func TestRecommend_Scores(t *testing.T) {
	t.Parallel()

	rec := newScenarioRecommender(t, &fakeInteractions{})

	got, err := rec.Recommend(context.Background(), "U", KindNFM, 3)
	if err != nil {
		t.Fatalf("Recommend() error = %v", err)
	}
	want := []Recommendation{{"A", 1}, {"C", 0.5}, {"B", 0}}
	for i := range want {
		if got.Items[i] != want[i] {
			t.Errorf("Items[%d] = %+v, want %+v", i, got.Items[i], want[i])
		}
	}
}

func TestRecommend_ZeroKSkipsInteractions(t *testing.T) {
	t.Parallel()

	interactions := &fakeInteractions{err: errors.New("should not be called")}
	rec := newScenarioRecommender(t, interactions)

	got, err := rec.Recommend(context.Background(), "U", KindNFM, 0)
	if err != nil {
		t.Fatalf("Recommend() error = %v", err)
	}
	if len(got.Items) != 0 || interactions.calls != 0 {
		t.Errorf("k=0 returned %d items after %d interaction calls", len(got.Items), interactions.calls)
	}

	// The kind is still validated when k is zero.
	if _, err := rec.Recommend(context.Background(), "U", ModelKind("LGC"), 0); !errors.Is(err, ErrUnknownModelKind) {
		t.Errorf("Recommend(LGC, k=0) error = %v, want ErrUnknownModelKind", err)
	}
}

func TestRecommend_StructuralErrors(t *testing.T) {
	t.Parallel()

	interactionErr := errors.New("table unavailable")

	tests := []struct {
		name         string
		source       *fakeSource
		interactions *fakeInteractions
		kind         ModelKind
		wantErr      error
	}{
		{
			name:         "unknown kind",
			source:       &fakeSource{},
			interactions: &fakeInteractions{},
			kind:         "LGC",
			wantErr:      ErrUnknownModelKind,
		},
		{
			name:         "missing artifact",
			source:       &fakeSource{artifacts: map[ModelKind]*Artifact{}},
			interactions: &fakeInteractions{},
			kind:         KindLGN,
			wantErr:      ErrArtifactNotFound,
		},
		{
			name:         "interaction table failure",
			source:       &fakeSource{artifacts: map[ModelKind]*Artifact{KindNFM: scenarioArtifact(t)}},
			interactions: &fakeInteractions{err: interactionErr},
			kind:         KindNFM,
			wantErr:      interactionErr,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			rec := NewRecommender(NewStore(tt.source, zerolog.Nop()), tt.interactions, zerolog.Nop())
			got, err := rec.Recommend(context.Background(), "U", tt.kind, 3)
			if !errors.Is(err, tt.wantErr) {
				t.Fatalf("Recommend() error = %v, want %v", err, tt.wantErr)
			}
			if got != nil {
				t.Errorf("Recommend() returned partial result %+v", got)
			}
		})
	}
}

func TestRecommend_CanceledContext(t *testing.T) {
	t.Parallel()

	rec := newScenarioRecommender(t, &fakeInteractions{})
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	if _, err := rec.Recommend(ctx, "U", KindNFM, 2); !errors.Is(err, context.Canceled) {
		t.Errorf("Recommend() error = %v, want context.Canceled", err)
	}
}

func TestRecommend_ColdStartPopularity(t *testing.T) {
	t.Parallel()

	interactions := &fakePopularInteractions{
		fakeInteractions: fakeInteractions{visited: map[string][]string{"stranger": {"B"}}},
		counts:           map[string]int{"B": 9, "C": 4, "A": 1, "elsewhere": 50},
	}
	rec := newScenarioRecommender(t, interactions)

	got, err := rec.Recommend(context.Background(), "stranger", KindNFM, 5)
	if err != nil {
		t.Fatalf("Recommend() error = %v", err)
	}
	if !got.ColdStart || got.Strategy != StrategyPopularity {
		t.Errorf("strategy = %s cold=%v, want popularity cold start", got.Strategy, got.ColdStart)
	}
	if want := []string{"C", "A"}; !equalStrings(got.Keys(), want) {
		t.Errorf("Recommend() = %v, want %v", got.Keys(), want)
	}
}

func TestRecommend_ColdStartPopularityFailure(t *testing.T) {
	t.Parallel()

	popErr := errors.New("count failed")
	interactions := &fakePopularInteractions{popErr: popErr}
	rec := newScenarioRecommender(t, interactions)

	_, err := rec.Recommend(context.Background(), "stranger", KindNFM, 2)
	if !errors.Is(err, popErr) {
		t.Fatalf("Recommend() error = %v, want %v", err, popErr)
	}
}

func TestRecommend_ColdStartEmpty(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name         string
		interactions InteractionSource
		opts         []Option
	}{
		{
			name:         "policy empty",
			interactions: &fakePopularInteractions{counts: map[string]int{"A": 3}},
			opts:         []Option{WithColdStartPolicy(ColdStartEmpty)},
		},
		{
			name:         "source cannot count",
			interactions: &fakeInteractions{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			rec := newScenarioRecommender(t, tt.interactions, tt.opts...)
			got, err := rec.Recommend(context.Background(), "stranger", KindLGN, 3)
			if err != nil {
				t.Fatalf("Recommend() error = %v", err)
			}
			if !got.ColdStart || got.Strategy != StrategyEmpty || len(got.Items) != 0 {
				t.Errorf("Recommend() = %+v, want empty cold start", got)
			}
		})
	}
}

// TestRecommend_UnknownUserNotAliased guards against treating a missing user
// as whichever user sits at index zero.
func TestRecommend_UnknownUserNotAliased(t *testing.T) {
	t.Parallel()

	a := mustArtifact(t,
		map[string]int{"first": 0},
		map[string]int{"liked": 0, "popular": 1},
		[][]float64{{1, 0}},
		[][]float64{{1, 0}, {0, 1}},
	)
	src := &fakeSource{artifacts: map[ModelKind]*Artifact{KindNFM: a}}
	interactions := &fakePopularInteractions{counts: map[string]int{"popular": 5}}
	rec := NewRecommender(NewStore(src, zerolog.Nop()), interactions, zerolog.Nop())

	got, err := rec.Recommend(context.Background(), "ghost", KindNFM, 1)
	if err != nil {
		t.Fatalf("Recommend() error = %v", err)
	}
	if want := []string{"popular"}; !equalStrings(got.Keys(), want) {
		t.Errorf("Recommend(ghost) = %v, want %v", got.Keys(), want)
	}
}

// TestRecommend_Properties checks the ranking invariants on random artifacts.
func TestRecommend_Properties(t *testing.T) {
	t.Parallel()

	rng := rand.New(rand.NewPCG(1, 2))

	for round := 0; round < 20; round++ {
		nUsers, nItems, dim := 1+rng.IntN(5), 1+rng.IntN(40), 1+rng.IntN(8)

		users := make(map[string]int, nUsers)
		userVecs := make([][]float64, nUsers)
		for i := range userVecs {
			users[fmt.Sprintf("u%d", i)] = i
			userVecs[i] = randomVector(rng, dim)
		}
		items := make(map[string]int, nItems)
		itemVecs := make([][]float64, nItems)
		visited := map[string][]string{}
		for i := range itemVecs {
			key := fmt.Sprintf("p%d", i)
			items[key] = i
			itemVecs[i] = randomVector(rng, dim)
			if rng.IntN(3) == 0 {
				visited["u0"] = append(visited["u0"], key)
			}
		}

		a := mustArtifact(t, users, items, userVecs, itemVecs)
		src := &fakeSource{artifacts: map[ModelKind]*Artifact{KindNFM: a}}
		rec := NewRecommender(NewStore(src, zerolog.Nop()), &fakeInteractions{visited: visited}, zerolog.Nop())

		k := rng.IntN(nItems + 3)
		first, err := rec.Recommend(context.Background(), "u0", KindNFM, k)
		if err != nil {
			t.Fatalf("round %d: Recommend() error = %v", round, err)
		}
		second, err := rec.Recommend(context.Background(), "u0", KindNFM, k)
		if err != nil {
			t.Fatalf("round %d: Recommend() error = %v", round, err)
		}
		if !equalStrings(first.Keys(), second.Keys()) {
			t.Fatalf("round %d: results differ between identical calls", round)
		}

		if len(first.Items) > k {
			t.Errorf("round %d: got %d items for k=%d", round, len(first.Items), k)
		}
		if want := min(k, nItems-len(visited["u0"])); len(first.Items) != want {
			t.Errorf("round %d: got %d items, want %d", round, len(first.Items), want)
		}

		seen := map[string]bool{}
		for _, v := range visited["u0"] {
			seen[v] = true
		}
		for i, item := range first.Items {
			if seen[item.ItemKey] {
				t.Errorf("round %d: %s is duplicated or already visited", round, item.ItemKey)
			}
			seen[item.ItemKey] = true
			if i > 0 && item.Score > first.Items[i-1].Score {
				t.Errorf("round %d: scores increase at position %d", round, i)
			}
		}
	}
}

func randomVector(rng *rand.Rand, dim int) []float64 {
	v := make([]float64, dim)
	for i := range v {
		v[i] = rng.NormFloat64()
	}
	return v
}
