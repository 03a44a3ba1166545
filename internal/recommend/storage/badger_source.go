// Wayfarer - Travel Place Listings and Personalized Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/wayfarer

package storage

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"sort"
	"time"

	"github.com/dgraph-io/badger/v4"
	"github.com/goccy/go-json"

	"github.com/tomtom215/wayfarer/internal/recommend"
)

// Key prefixes for BadgerDB storage
const (
	artifactKeyPrefix     = "artifact:"
	artifactMetaKeyPrefix = "artifact_meta:"
)

// BadgerSource keeps encoded artifacts in BadgerDB.
// The blob is stored as-is; its format is recorded in the metadata entry.
type BadgerSource struct {
	db *badger.DB
}

// NewBadgerSource wraps an open database. The caller owns db.
func NewBadgerSource(db *badger.DB) *BadgerSource {
	return &BadgerSource{db: db}
}

// OpenBadger opens (or creates) a BadgerDB directory for artifact storage.
func OpenBadger(path string) (*badger.DB, error) {
	opts := badger.DefaultOptions(path)
	opts.Logger = nil

	db, err := badger.Open(opts)
	if err != nil {
		return nil, fmt.Errorf("open badger db for artifacts: %w", err)
	}
	return db, nil
}

// Put validates blob as an artifact in format and stores it under kind,
// replacing any previous artifact for that kind.
func (s *BadgerSource) Put(ctx context.Context, kind recommend.ModelKind, format Format, blob []byte) (*Metadata, error) {
	if !kind.Valid() {
		return nil, fmt.Errorf("%w: %q", recommend.ErrUnknownModelKind, kind)
	}

	_, meta, err := Decode(format, bytes.NewReader(blob))
	if err != nil {
		return nil, err
	}
	meta.Kind = kind
	meta.SizeBytes = int64(len(blob))
	meta.SavedAt = time.Now().UTC()

	metaData, err := json.Marshal(meta)
	if err != nil {
		return nil, fmt.Errorf("marshal metadata: %w", err)
	}

	err = s.db.Update(func(txn *badger.Txn) error {
		if err := txn.Set(artifactKey(kind), blob); err != nil {
			return fmt.Errorf("set artifact: %w", err)
		}
		if err := txn.Set(artifactMetaKey(kind), metaData); err != nil {
			return fmt.Errorf("set artifact metadata: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return meta, nil
}

// PutArtifact encodes a in format and stores it under kind.
func (s *BadgerSource) PutArtifact(ctx context.Context, kind recommend.ModelKind, format Format, a *recommend.Artifact) (*Metadata, error) {
	var buf bytes.Buffer
	if err := Encode(format, &buf, a); err != nil {
		return nil, err
	}
	return s.Put(ctx, kind, format, buf.Bytes())
}

// Open implements recommend.ArtifactSource.
func (s *BadgerSource) Open(ctx context.Context, kind recommend.ModelKind) (*recommend.Artifact, error) {
	var (
		meta Metadata
		blob []byte
	)

	err := s.db.View(func(txn *badger.Txn) error {
		item, err := txn.Get(artifactMetaKey(kind))
		if errors.Is(err, badger.ErrKeyNotFound) {
			return fmt.Errorf("%w: no stored artifact for %s", recommend.ErrArtifactNotFound, kind)
		}
		if err != nil {
			return fmt.Errorf("get artifact metadata: %w", err)
		}
		if err := item.Value(func(val []byte) error {
			return json.Unmarshal(val, &meta)
		}); err != nil {
			return fmt.Errorf("%w: metadata: %v", recommend.ErrInvalidArtifact, err)
		}

		item, err = txn.Get(artifactKey(kind))
		if errors.Is(err, badger.ErrKeyNotFound) {
			return fmt.Errorf("%w: metadata without blob for %s", recommend.ErrArtifactNotFound, kind)
		}
		if err != nil {
			return fmt.Errorf("get artifact: %w", err)
		}
		blob, err = item.ValueCopy(nil)
		return err
	})
	if err != nil {
		return nil, err
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	a, _, err := Decode(meta.Format, bytes.NewReader(blob))
	return a, err
}

// Delete removes the artifact stored for kind. Missing kinds are not an error.
func (s *BadgerSource) Delete(ctx context.Context, kind recommend.ModelKind) error {
	return s.db.Update(func(txn *badger.Txn) error {
		for _, key := range [][]byte{artifactKey(kind), artifactMetaKey(kind)} {
			if err := txn.Delete(key); err != nil && !errors.Is(err, badger.ErrKeyNotFound) {
				return fmt.Errorf("delete %s: %w", key, err)
			}
		}
		return nil
	})
}

// List returns metadata for every stored artifact, ordered by kind.
func (s *BadgerSource) List(ctx context.Context) ([]Metadata, error) {
	var out []Metadata

	err := s.db.View(func(txn *badger.Txn) error {
		opts := badger.DefaultIteratorOptions
		opts.PrefetchValues = true
		it := txn.NewIterator(opts)
		defer it.Close()

		prefix := []byte(artifactMetaKeyPrefix)
		for it.Seek(prefix); it.ValidForPrefix(prefix); it.Next() {
			var meta Metadata
			err := it.Item().Value(func(val []byte) error {
				return json.Unmarshal(val, &meta)
			})
			if err != nil {
				return fmt.Errorf("decode metadata %s: %w", it.Item().Key(), err)
			}
			out = append(out, meta)
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("list artifacts: %w", err)
	}

	sort.Slice(out, func(i, j int) bool { return out[i].Kind < out[j].Kind })
	return out, nil
}

func artifactKey(kind recommend.ModelKind) []byte {
	return []byte(artifactKeyPrefix + string(kind))
}

func artifactMetaKey(kind recommend.ModelKind) []byte {
	return []byte(artifactMetaKeyPrefix + string(kind))
}
