// Wayfarer - Travel Place Listings and Personalized Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/wayfarer

package recommend

// EligibleItems returns the members of all that are not in visited,
// keeping the order of all. The result is empty when everything was visited.
func EligibleItems(all []int, visited map[int]struct{}) []int {
	eligible := make([]int, 0, len(all))
	for _, idx := range all {
		if _, seen := visited[idx]; seen {
			continue
		}
		eligible = append(eligible, idx)
	}
	return eligible
}
