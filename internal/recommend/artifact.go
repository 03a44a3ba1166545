// Wayfarer - Travel Place Listings and Personalized Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/wayfarer

package recommend

import (
	"context"
	"fmt"
)

// ArtifactSource produces decoded artifacts for a model kind.
// Implementations return ErrArtifactNotFound when nothing is stored for kind.
type ArtifactSource interface {
	Open(ctx context.Context, kind ModelKind) (*Artifact, error)
}

// Artifact is an immutable embedding space for users and items.
//
// Indexes are dense: users occupy 0..UserCount()-1 and items occupy
// 0..ItemCount()-1. Every vector has Dim() components.
type Artifact struct {
	userIndex   map[string]int
	itemIndex   map[string]int
	userVectors [][]float64
	itemVectors [][]float64

	// itemKeys is the inverse of itemIndex.
	itemKeys []string
	dim      int
}

// NewArtifact validates and assembles an artifact.
//
// The artifact takes ownership of the vector slices; callers must not modify
// them afterwards. Any invariant violation is reported as ErrInvalidArtifact.
func NewArtifact(userIndex, itemIndex map[string]int, userVectors, itemVectors [][]float64) (*Artifact, error) {
	if err := checkDenseIndex("user", userIndex, len(userVectors)); err != nil {
		return nil, err
	}
	if err := checkDenseIndex("item", itemIndex, len(itemVectors)); err != nil {
		return nil, err
	}

	dim, err := commonDim(userVectors, itemVectors)
	if err != nil {
		return nil, err
	}

	a := &Artifact{
		userIndex:   make(map[string]int, len(userIndex)),
		itemIndex:   make(map[string]int, len(itemIndex)),
		userVectors: userVectors,
		itemVectors: itemVectors,
		itemKeys:    make([]string, len(itemVectors)),
		dim:         dim,
	}
	for key, idx := range userIndex {
		a.userIndex[key] = idx
	}
	for key, idx := range itemIndex {
		a.itemIndex[key] = idx
		a.itemKeys[idx] = key
	}

	return a, nil
}

// checkDenseIndex verifies that index maps its keys one-to-one onto 0..n-1.
func checkDenseIndex(name string, index map[string]int, n int) error {
	if len(index) != n {
		return fmt.Errorf("%w: %d %s keys for %d %s vectors", ErrInvalidArtifact, len(index), name, n, name)
	}

	seen := make([]bool, n)
	for key, idx := range index {
		if idx < 0 || idx >= n {
			return fmt.Errorf("%w: %s %q has index %d outside [0,%d)", ErrInvalidArtifact, name, key, idx, n)
		}
		if seen[idx] {
			return fmt.Errorf("%w: %s index %d is assigned to more than one key", ErrInvalidArtifact, name, idx)
		}
		seen[idx] = true
	}
	return nil
}

// commonDim returns the shared dimensionality of all vectors.
func commonDim(groups ...[][]float64) (int, error) {
	dim := -1
	for _, vectors := range groups {
		for i, v := range vectors {
			if dim < 0 {
				dim = len(v)
				if dim == 0 {
					return 0, fmt.Errorf("%w: zero-dimensional vectors", ErrInvalidArtifact)
				}
				continue
			}
			if len(v) != dim {
				return 0, fmt.Errorf("%w: vector %d has %d components, want %d", ErrInvalidArtifact, i, len(v), dim)
			}
		}
	}
	if dim < 0 {
		return 0, nil
	}
	return dim, nil
}

// Dim returns the embedding dimensionality, or 0 for an empty artifact.
func (a *Artifact) Dim() int {
	return a.dim
}

// UserCount returns the number of users in the artifact.
func (a *Artifact) UserCount() int {
	return len(a.userVectors)
}

// ItemCount returns the number of items in the artifact.
func (a *Artifact) ItemCount() int {
	return len(a.itemVectors)
}

// ResolveUser looks up the index of userKey.
// The index is meaningless when ok is false.
func (a *Artifact) ResolveUser(userKey string) (idx int, ok bool) {
	idx, ok = a.userIndex[userKey]
	return idx, ok
}

// ResolveItems maps item keys to indexes, dropping keys the artifact lacks.
func (a *Artifact) ResolveItems(keys []string) map[int]struct{} {
	out := make(map[int]struct{}, len(keys))
	for _, key := range keys {
		if idx, ok := a.itemIndex[key]; ok {
			out[idx] = struct{}{}
		}
	}
	return out
}

// ItemIndexes returns every item index in ascending order.
func (a *Artifact) ItemIndexes() []int {
	out := make([]int, len(a.itemVectors))
	for i := range out {
		out[i] = i
	}
	return out
}

// ItemKey returns the key stored at item index idx.
func (a *Artifact) ItemKey(idx int) string {
	return a.itemKeys[idx]
}

// UserVector returns the embedding of user idx. The slice must not be modified.
func (a *Artifact) UserVector(idx int) []float64 {
	return a.userVectors[idx]
}

// ItemVector returns the embedding of item idx. The slice must not be modified.
func (a *Artifact) ItemVector(idx int) []float64 {
	return a.itemVectors[idx]
}

// UserIndex returns a copy of the user key to index mapping.
func (a *Artifact) UserIndex() map[string]int {
	return copyIndex(a.userIndex)
}

// ItemIndex returns a copy of the item key to index mapping.
func (a *Artifact) ItemIndex() map[string]int {
	return copyIndex(a.itemIndex)
}

// UserVectors returns the user embeddings in index order. Read-only.
func (a *Artifact) UserVectors() [][]float64 {
	return a.userVectors
}

// ItemVectors returns the item embeddings in index order. Read-only.
func (a *Artifact) ItemVectors() [][]float64 {
	return a.itemVectors
}

func copyIndex(src map[string]int) map[string]int {
	dst := make(map[string]int, len(src))
	for k, v := range src {
		dst[k] = v
	}
	return dst
}
