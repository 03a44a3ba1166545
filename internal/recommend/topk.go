// Wayfarer - Travel Place Listings and Personalized Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/wayfarer

package recommend

import (
	"container/heap"
	"math"
	"sort"
)

// ScoredItem pairs an item index with its score.
type ScoredItem struct {
	Index int
	Score float64
}

// ranksAbove reports whether a is ranked strictly before b.
//
// Higher scores come first. NaN ranks below everything else. Equal scores
// (and two NaNs) fall back to the lower index.
func ranksAbove(a, b ScoredItem) bool {
	aNaN, bNaN := math.IsNaN(a.Score), math.IsNaN(b.Score)
	switch {
	case aNaN && bNaN:
		return a.Index < b.Index
	case aNaN:
		return false
	case bNaN:
		return true
	case a.Score != b.Score:
		return a.Score > b.Score
	default:
		return a.Index < b.Index
	}
}

// worstFirst is a heap whose root is the lowest-ranked item kept so far.
type worstFirst []ScoredItem

func (h worstFirst) Len() int           { return len(h) }
func (h worstFirst) Less(i, j int) bool { return ranksAbove(h[j], h[i]) }
func (h worstFirst) Swap(i, j int)      { h[i], h[j] = h[j], h[i] }

func (h *worstFirst) Push(x any) {
	*h = append(*h, x.(ScoredItem))
}

func (h *worstFirst) Pop() any {
	old := *h
	n := len(old)
	item := old[n-1]
	*h = old[:n-1]
	return item
}

// TopK returns the k best items, best first. The input is not modified.
// k <= 0 returns an empty slice.
func TopK(items []ScoredItem, k int) []ScoredItem {
	if k <= 0 || len(items) == 0 {
		return []ScoredItem{}
	}
	if k > len(items) {
		k = len(items)
	}

	h := make(worstFirst, 0, k)
	for _, item := range items {
		if h.Len() < k {
			heap.Push(&h, item)
			continue
		}
		if ranksAbove(item, h[0]) {
			h[0] = item
			heap.Fix(&h, 0)
		}
	}

	out := []ScoredItem(h)
	sort.Slice(out, func(i, j int) bool {
		return ranksAbove(out[i], out[j])
	})
	return out
}
