// Wayfarer - Travel Place Listings and Personalized Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/wayfarer

package recommend

import (
	"math"
	"testing"
)

func TestDot(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		a, b []float64
		want float64
	}{
		{"orthogonal", []float64{1, 0}, []float64{0, 1}, 0},
		{"parallel", []float64{1, 0}, []float64{1, 0}, 1},
		{"mixed", []float64{1, 2, 3}, []float64{4, -5, 6}, 12},
		{"empty", nil, nil, 0},
	}

	for _, tt := range tests {
		if got := Dot(tt.a, tt.b); got != tt.want {
			t.Errorf("%s: Dot() = %v, want %v", tt.name, got, tt.want)
		}
	}
}

func TestScore_NoNormalization(t *testing.T) {
	t.Parallel()

	user := []float64{1, 1}
	scores := Score(user, [][]float64{{1, 1}, {10, 10}})

	if scores[0] != 2 || scores[1] != 20 {
		t.Errorf("Score() = %v, want [2 20]", scores)
	}
}

func TestScore_PropagatesNaN(t *testing.T) {
	t.Parallel()

	scores := Score([]float64{1, 0}, [][]float64{{math.NaN(), 0}, {1, 0}})

	if !math.IsNaN(scores[0]) {
		t.Errorf("Score()[0] = %v, want NaN", scores[0])
	}
	if scores[1] != 1 {
		t.Errorf("Score()[1] = %v, want 1", scores[1])
	}
}

func TestScoreIndexes(t *testing.T) {
	t.Parallel()

	a := scenarioArtifact(t)
	got := scoreIndexes(a, a.UserVector(0), []int{2, 1})

	want := []ScoredItem{{Index: 2, Score: 0.5}, {Index: 1, Score: 0}}
	if len(got) != len(want) {
		t.Fatalf("scoreIndexes() len = %d, want %d", len(got), len(want))
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("scoreIndexes()[%d] = %+v, want %+v", i, got[i], want[i])
		}
	}
}
