// Wayfarer - Travel Place Listings and Personalized Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/wayfarer

package recommend

// Dot returns the inner product of a and b.
// Both vectors must have the same length; artifacts guarantee this.
func Dot(a, b []float64) float64 {
	var sum float64
	for i := range a {
		sum += a[i] * b[i]
	}
	return sum
}

// Score returns Dot(user, item) for each item, in input order.
//
// No normalization is applied, so longer item vectors score higher. NaN and
// Inf values propagate from the arithmetic unchanged; ranking handles them.
func Score(user []float64, items [][]float64) []float64 {
	scores := make([]float64, len(items))
	for i, item := range items {
		scores[i] = Dot(user, item)
	}
	return scores
}

// scoreIndexes scores the given item indexes of a against the user vector.
func scoreIndexes(a *Artifact, user []float64, indexes []int) []ScoredItem {
	vectors := make([][]float64, len(indexes))
	for i, idx := range indexes {
		vectors[i] = a.ItemVector(idx)
	}

	scores := Score(user, vectors)
	scored := make([]ScoredItem, len(indexes))
	for i, idx := range indexes {
		scored[i] = ScoredItem{Index: idx, Score: scores[i]}
	}
	return scored
}
