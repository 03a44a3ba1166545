// Wayfarer - Travel Place Listings and Personalized Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/wayfarer

package recommend

import (
	"errors"
	"fmt"
)

// Structural failures. These abort a request with no partial result.
// An unknown user or an empty candidate set is not an error.
var (
	// ErrArtifactNotFound means the backing blob for a kind is missing.
	ErrArtifactNotFound = errors.New("embedding artifact not found")

	// ErrUnknownModelKind means the requested kind is not NFM or LGN.
	ErrUnknownModelKind = errors.New("unknown model kind")

	// ErrInvalidArtifact means an artifact decoded but breaks its invariants.
	ErrInvalidArtifact = errors.New("invalid embedding artifact")
)

// Error carries the failed operation and kind alongside the cause.
type Error struct {
	Op   string
	Kind ModelKind
	Err  error
}

func (e *Error) Error() string {
	if e.Kind == "" {
		return fmt.Sprintf("recommend: %s: %v", e.Op, e.Err)
	}
	return fmt.Sprintf("recommend: %s %s: %v", e.Op, e.Kind, e.Err)
}

func (e *Error) Unwrap() error {
	return e.Err
}

// IsClientError reports whether err was caused by bad caller input.
func IsClientError(err error) bool {
	return errors.Is(err, ErrUnknownModelKind)
}

// IsUnavailable reports whether err means the model cannot serve right now.
func IsUnavailable(err error) bool {
	return errors.Is(err, ErrArtifactNotFound) || errors.Is(err, ErrInvalidArtifact)
}
