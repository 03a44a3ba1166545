// Wayfarer - Travel Place Listings and Personalized Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/wayfarer

package storage

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"

	"github.com/tomtom215/wayfarer/internal/recommend"
)

// FileSource reads one artifact file per model kind.
type FileSource struct {
	paths map[recommend.ModelKind]string
}

// NewFileSource creates a source from a kind to path mapping.
// Kinds without a path report recommend.ErrArtifactNotFound.
func NewFileSource(paths map[recommend.ModelKind]string) *FileSource {
	copied := make(map[recommend.ModelKind]string, len(paths))
	for kind, path := range paths {
		if path != "" {
			copied[kind] = path
		}
	}
	return &FileSource{paths: copied}
}

// Open implements recommend.ArtifactSource.
func (s *FileSource) Open(ctx context.Context, kind recommend.ModelKind) (*recommend.Artifact, error) {
	path, ok := s.paths[kind]
	if !ok {
		return nil, fmt.Errorf("%w: no path configured for %s", recommend.ErrArtifactNotFound, kind)
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	a, _, err := ReadFile(path)
	return a, err
}

// Path returns the configured path for kind.
func (s *FileSource) Path(kind recommend.ModelKind) (string, bool) {
	path, ok := s.paths[kind]
	return path, ok
}

// ReadFile decodes the artifact at path, inferring the format from its extension.
func ReadFile(path string) (*recommend.Artifact, *Metadata, error) {
	format, err := FormatFromPath(path)
	if err != nil {
		return nil, nil, err
	}

	f, err := os.Open(path) //nolint:gosec // path comes from operator configuration
	if errors.Is(err, fs.ErrNotExist) {
		return nil, nil, fmt.Errorf("%w: %s", recommend.ErrArtifactNotFound, path)
	}
	if err != nil {
		return nil, nil, fmt.Errorf("open artifact: %w", err)
	}
	defer func() { _ = f.Close() }() //nolint:errcheck // error on close after read is not actionable

	return Decode(format, f)
}

// WriteFile encodes a to path in the format implied by its extension.
func WriteFile(path string, a *recommend.Artifact) error {
	format, err := FormatFromPath(path)
	if err != nil {
		return err
	}

	f, err := os.Create(path) //nolint:gosec // path comes from operator input
	if err != nil {
		return fmt.Errorf("create artifact file: %w", err)
	}
	if err := Encode(format, f, a); err != nil {
		_ = f.Close() //nolint:errcheck // the encode error is more useful
		return err
	}
	return f.Close()
}
