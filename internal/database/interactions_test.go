// Wayfarer - Travel Place Listings and Personalized Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/wayfarer

package database

import (
	"context"
	"errors"
	"slices"
	"testing"

	"github.com/rs/zerolog"

	"github.com/tomtom215/wayfarer/internal/recommend"
)

// staticSource serves one artifact for every kind.
type staticSource struct {
	artifact *recommend.Artifact
}

func (s staticSource) Open(ctx context.Context, kind recommend.ModelKind) (*recommend.Artifact, error) {
	return s.artifact, nil
}

func zerologNop() zerolog.Logger {
	return zerolog.Nop()
}

var (
	_ recommend.InteractionSource = (*Interactions)(nil)
	_ recommend.PopularitySource  = (*Interactions)(nil)
)

func TestNewInteractionsRejectsFields(t *testing.T) {
	t.Parallel()

	tests := []struct{ user, item string }{
		{"full_name", "place_name"},
		{"user_name", "address"},
		{"", ""},
	}
	for _, tt := range tests {
		if _, err := NewInteractions(nil, tt.user, tt.item); !errors.Is(err, ErrInvalidKeyField) {
			t.Errorf("NewInteractions(%q, %q) error = %v, want ErrInvalidKeyField", tt.user, tt.item, err)
		}
	}
}

func TestVisitedItems(t *testing.T) {
	t.Parallel()

	db := setupTestDB(t)
	ctx := context.Background()

	tests := []struct {
		name      string
		userField string
		itemField string
		userKey   string
		want      []string
	}{
		{name: "names", userField: "user_name", itemField: PlaceKeyName, userKey: "linh", want: []string{"Hoan Kiem Lake", "West Lake"}},
		{name: "ids", userField: "user_id", itemField: PlaceKeyID, userKey: "2", want: []string{"1", "2"}},
		{name: "user name to place id", userField: "user_name", itemField: PlaceKeyID, userKey: "an", want: []string{"1"}},
		{name: "orphan visit by id", userField: "user_id", itemField: PlaceKeyName, userKey: "9", want: []string{"Long Bien Bridge"}},
		{name: "unknown user", userField: "user_name", itemField: PlaceKeyName, userKey: "ghost", want: []string{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			src, err := NewInteractions(db, tt.userField, tt.itemField)
			if err != nil {
				t.Fatal(err)
			}
			got, err := src.VisitedItems(ctx, tt.userKey)
			if err != nil {
				t.Fatalf("VisitedItems() error = %v", err)
			}
			slices.Sort(got)
			if !slices.Equal(got, tt.want) {
				t.Errorf("VisitedItems(%q) = %v, want %v", tt.userKey, got, tt.want)
			}
		})
	}
}

func TestItemPopularity(t *testing.T) {
	t.Parallel()

	db := setupTestDB(t)

	byName, err := NewInteractions(db, "user_name", PlaceKeyName)
	if err != nil {
		t.Fatal(err)
	}
	counts, err := byName.ItemPopularity(context.Background())
	if err != nil {
		t.Fatalf("ItemPopularity() error = %v", err)
	}
	// user 9 is not in user.csv, so the join drops the visit to place 4.
	want := map[string]int{"Hoan Kiem Lake": 3, "West Lake": 1, "Temple of Literature": 1}
	if len(counts) != len(want) {
		t.Errorf("ItemPopularity() = %v, want %v", counts, want)
	}
	for k, v := range want {
		if counts[k] != v {
			t.Errorf("counts[%q] = %d, want %d", k, counts[k], v)
		}
	}

	byID, err := NewInteractions(db, "user_id", PlaceKeyID)
	if err != nil {
		t.Fatal(err)
	}
	counts, err = byID.ItemPopularity(context.Background())
	if err != nil {
		t.Fatalf("ItemPopularity() error = %v", err)
	}
	if counts["4"] != 1 || counts["1"] != 3 {
		t.Errorf("ItemPopularity() by id = %v", counts)
	}
}

func TestInteractionsFeedRecommender(t *testing.T) {
	t.Parallel()

	db := setupTestDB(t)
	src, err := NewInteractions(db, "user_name", PlaceKeyName)
	if err != nil {
		t.Fatal(err)
	}

	artifact, err := recommend.NewArtifact(
		map[string]int{"linh": 0},
		map[string]int{"Hoan Kiem Lake": 0, "Temple of Literature": 1, "West Lake": 2, "Long Bien Bridge": 3},
		[][]float64{{1, 0}},
		[][]float64{{0.9, 0}, {0.5, 0.5}, {0.8, 0}, {0.1, 1}},
	)
	if err != nil {
		t.Fatal(err)
	}

	store := recommend.NewStore(staticSource{artifact}, zerologNop())
	rec := recommend.NewRecommender(store, src, zerologNop())

	res, err := rec.Recommend(context.Background(), "linh", recommend.KindNFM, 5)
	if err != nil {
		t.Fatalf("Recommend() error = %v", err)
	}
	if got := res.Keys(); !slices.Equal(got, []string{"Temple of Literature", "Long Bien Bridge"}) {
		t.Errorf("Recommend(linh) = %v", got)
	}

	cold, err := rec.Recommend(context.Background(), "minh", recommend.KindNFM, 2)
	if err != nil {
		t.Fatalf("Recommend(minh) error = %v", err)
	}
	// minh visited Hoan Kiem Lake and the Temple; the artifact does not know minh.
	if !cold.ColdStart || cold.Strategy != recommend.StrategyPopularity {
		t.Errorf("cold start = %v/%s", cold.ColdStart, cold.Strategy)
	}
	if got := cold.Keys(); !slices.Equal(got, []string{"West Lake", "Long Bien Bridge"}) {
		t.Errorf("Recommend(minh) = %v, want [West Lake Long Bien Bridge]", got)
	}
}
