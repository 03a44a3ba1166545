// Wayfarer - Travel Place Listings and Personalized Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/wayfarer

package recommend

import (
	"context"
	"fmt"
	"sync"
	"sync/atomic"
	"testing"
)

// fakeSource implements ArtifactSource from an in-memory map.
type fakeSource struct {
	artifacts map[ModelKind]*Artifact
	err       error
	gate      chan struct{}
	opens     atomic.Int32
}

func (f *fakeSource) Open(ctx context.Context, kind ModelKind) (*Artifact, error) {
	f.opens.Add(1)
	if f.gate != nil {
		<-f.gate
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if f.err != nil {
		return nil, f.err
	}
	a, ok := f.artifacts[kind]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrArtifactNotFound, kind)
	}
	return a, nil
}

// fakeInteractions implements InteractionSource.
type fakeInteractions struct {
	mu      sync.Mutex
	visited map[string][]string
	err     error
	calls   int
}

func (f *fakeInteractions) VisitedItems(ctx context.Context, userKey string) ([]string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls++
	if f.err != nil {
		return nil, f.err
	}
	return f.visited[userKey], nil
}

// fakePopularInteractions adds PopularitySource to fakeInteractions.
type fakePopularInteractions struct {
	fakeInteractions
	counts map[string]int
	popErr error
}

func (f *fakePopularInteractions) ItemPopularity(ctx context.Context) (map[string]int, error) {
	if f.popErr != nil {
		return nil, f.popErr
	}
	return f.counts, nil
}

// scenarioArtifact is the two-dimensional U/A/B/C fixture.
func scenarioArtifact(t *testing.T) *Artifact {
	t.Helper()
	a, err := NewArtifact(
		map[string]int{"U": 0},
		map[string]int{"A": 0, "B": 1, "C": 2},
		[][]float64{{1, 0}},
		[][]float64{{1, 0}, {0, 1}, {0.5, 0.5}},
	)
	if err != nil {
		t.Fatalf("NewArtifact() error = %v", err)
	}
	return a
}

func mustArtifact(t *testing.T, users, items map[string]int, userVecs, itemVecs [][]float64) *Artifact {
	t.Helper()
	a, err := NewArtifact(users, items, userVecs, itemVecs)
	if err != nil {
		t.Fatalf("NewArtifact() error = %v", err)
	}
	return a
}

func equalStrings(a, b []string) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}
