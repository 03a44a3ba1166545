// Wayfarer - Travel Place Listings and Personalized Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/wayfarer

package recommend

import (
	"fmt"
	"strings"
)

// ModelKind selects which embedding artifact backs a recommendation.
type ModelKind string

const (
	// KindNFM is the neural factorization machine embedding.
	KindNFM ModelKind = "NFM"

	// KindLGN is the LightGCN graph embedding.
	KindLGN ModelKind = "LGN"
)

// AllKinds returns every supported kind in a stable order.
func AllKinds() []ModelKind {
	return []ModelKind{KindNFM, KindLGN}
}

// ParseModelKind converts user input to a ModelKind.
// Matching ignores case and surrounding whitespace.
func ParseModelKind(s string) (ModelKind, error) {
	switch ModelKind(strings.ToUpper(strings.TrimSpace(s))) {
	case KindNFM:
		return KindNFM, nil
	case KindLGN:
		return KindLGN, nil
	default:
		return "", fmt.Errorf("%w: %q (supported: NFM, LGN)", ErrUnknownModelKind, s)
	}
}

// Valid reports whether k is one of the supported kinds.
func (k ModelKind) Valid() bool {
	switch k {
	case KindNFM, KindLGN:
		return true
	default:
		return false
	}
}

// String implements fmt.Stringer.
func (k ModelKind) String() string {
	return string(k)
}
