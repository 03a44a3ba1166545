// Wayfarer - Travel Place Listings and Personalized Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/wayfarer

// Package storage persists embedding artifacts and exposes them as
// recommend.ArtifactSource implementations.
//
// # Formats
//
// An artifact is the four-part document produced by offline training:
//
//	user_id_map  map[string]int   user key -> dense row index
//	item_id_map  map[string]int   item key -> dense row index
//	user_emb     [][]float64      one row per user
//	item_emb     [][]float64      one row per item
//
// Three encodings are supported, selected by file extension:
//
//	.gob.gz           gzip-compressed gob with a SHA-256 checksum envelope
//	.json             plain JSON, convenient for hand-built fixtures
//	.msgpack, .mpk    MessagePack, compact and language neutral
//
// Decoding always goes through recommend.NewArtifact, so a blob that decodes
// but violates the dense-index or shared-dimension rules is rejected with
// recommend.ErrInvalidArtifact.
//
// # Sources
//
// FileSource maps each model kind to a path on disk. BadgerSource keeps
// artifacts as blobs in an embedded BadgerDB, keyed by kind, alongside a JSON
// metadata record; blobs are imported with Put (see the wayfarerctl CLI).
//
// Neither source caches. Caching and single-flight loading belong to
// recommend.Store.
package storage
