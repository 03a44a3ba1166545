// Wayfarer - Travel Place Listings and Personalized Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/wayfarer

package storage

import (
	"bytes"
	"compress/gzip"
	"crypto/sha256"
	"encoding/gob"
	"encoding/hex"
	"fmt"
	"io"
	"time"

	"github.com/goccy/go-json"
	"github.com/vmihailenco/msgpack/v5"

	"github.com/tomtom215/wayfarer/internal/recommend"
)

// ArtifactDocument is the wire shape shared by every format.
type ArtifactDocument struct {
	UserIDMap map[string]int `json:"user_id_map" msgpack:"user_id_map"`
	ItemIDMap map[string]int `json:"item_id_map" msgpack:"item_id_map"`
	UserEmb   [][]float64    `json:"user_emb" msgpack:"user_emb"`
	ItemEmb   [][]float64    `json:"item_emb" msgpack:"item_emb"`
}

// Metadata describes a stored artifact.
type Metadata struct {
	Kind      recommend.ModelKind `json:"kind,omitempty"`
	Format    Format              `json:"format"`
	Users     int                 `json:"users"`
	Items     int                 `json:"items"`
	Dim       int                 `json:"dim"`
	Checksum  string              `json:"checksum"`
	SizeBytes int64               `json:"size_bytes"`
	SavedAt   time.Time           `json:"saved_at,omitempty"`
}

// storedFile is the gob envelope. CompressedData holds the gzip-compressed
// gob encoding of an ArtifactDocument; Metadata.Checksum covers the
// uncompressed bytes.
type storedFile struct {
	Metadata       Metadata
	CompressedData []byte
}

// DocumentFromArtifact copies an artifact into its wire shape.
func DocumentFromArtifact(a *recommend.Artifact) ArtifactDocument {
	return ArtifactDocument{
		UserIDMap: a.UserIndex(),
		ItemIDMap: a.ItemIndex(),
		UserEmb:   a.UserVectors(),
		ItemEmb:   a.ItemVectors(),
	}
}

// Artifact validates the document and builds a recommend.Artifact from it.
// Absent maps read as empty, so vectors without keys fail the density check.
func (d *ArtifactDocument) Artifact() (*recommend.Artifact, error) {
	return recommend.NewArtifact(d.UserIDMap, d.ItemIDMap, d.UserEmb, d.ItemEmb)
}

// Decode reads one artifact in the given format.
// Malformed input of any kind is reported as recommend.ErrInvalidArtifact.
func Decode(format Format, r io.Reader) (*recommend.Artifact, *Metadata, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, nil, fmt.Errorf("read artifact: %w", err)
	}

	var (
		doc  ArtifactDocument
		meta Metadata
	)
	switch format {
	case FormatGob:
		meta, err = decodeGob(data, &doc)
	case FormatJSON:
		err = json.Unmarshal(data, &doc)
		meta = Metadata{Checksum: checksum(data), SizeBytes: int64(len(data))}
	case FormatMsgpack:
		err = msgpack.Unmarshal(data, &doc)
		meta = Metadata{Checksum: checksum(data), SizeBytes: int64(len(data))}
	default:
		return nil, nil, fmt.Errorf("unsupported artifact format %q", format)
	}
	if err != nil {
		return nil, nil, fmt.Errorf("%w: decode %s: %v", recommend.ErrInvalidArtifact, format, err)
	}

	a, err := doc.Artifact()
	if err != nil {
		return nil, nil, err
	}

	meta.Format = format
	meta.Users = a.UserCount()
	meta.Items = a.ItemCount()
	meta.Dim = a.Dim()
	return a, &meta, nil
}

func decodeGob(data []byte, doc *ArtifactDocument) (Metadata, error) {
	var sf storedFile
	if err := gob.NewDecoder(bytes.NewReader(data)).Decode(&sf); err != nil {
		return Metadata{}, fmt.Errorf("read envelope: %w", err)
	}

	gzr, err := gzip.NewReader(bytes.NewReader(sf.CompressedData))
	if err != nil {
		return Metadata{}, fmt.Errorf("decompress: %w", err)
	}
	defer func() { _ = gzr.Close() }() //nolint:errcheck // error on gzip close after read is not actionable

	raw, err := io.ReadAll(gzr)
	if err != nil {
		return Metadata{}, fmt.Errorf("read decompressed data: %w", err)
	}

	if sum := checksum(raw); sum != sf.Metadata.Checksum {
		return Metadata{}, fmt.Errorf("checksum mismatch: expected %s, got %s", sf.Metadata.Checksum, sum)
	}

	if err := gob.NewDecoder(bytes.NewReader(raw)).Decode(doc); err != nil {
		return Metadata{}, fmt.Errorf("decode document: %w", err)
	}
	return sf.Metadata, nil
}

// Encode writes a in the given format.
func Encode(format Format, w io.Writer, a *recommend.Artifact) error {
	doc := DocumentFromArtifact(a)

	var (
		data []byte
		err  error
	)
	switch format {
	case FormatGob:
		data, err = encodeGob(&doc, a)
	case FormatJSON:
		data, err = json.Marshal(doc)
	case FormatMsgpack:
		data, err = msgpack.Marshal(doc)
	default:
		return fmt.Errorf("unsupported artifact format %q", format)
	}
	if err != nil {
		return fmt.Errorf("encode %s: %w", format, err)
	}

	if _, err := w.Write(data); err != nil {
		return fmt.Errorf("write artifact: %w", err)
	}
	return nil
}

func encodeGob(doc *ArtifactDocument, a *recommend.Artifact) ([]byte, error) {
	var raw bytes.Buffer
	if err := gob.NewEncoder(&raw).Encode(doc); err != nil {
		return nil, fmt.Errorf("encode document: %w", err)
	}

	var compressed bytes.Buffer
	gzw := gzip.NewWriter(&compressed)
	if _, err := gzw.Write(raw.Bytes()); err != nil {
		return nil, fmt.Errorf("compress: %w", err)
	}
	if err := gzw.Close(); err != nil {
		return nil, fmt.Errorf("finalize compression: %w", err)
	}

	sf := storedFile{
		Metadata: Metadata{
			Format:    FormatGob,
			Users:     a.UserCount(),
			Items:     a.ItemCount(),
			Dim:       a.Dim(),
			Checksum:  checksum(raw.Bytes()),
			SizeBytes: int64(compressed.Len()),
			SavedAt:   time.Now().UTC(),
		},
		CompressedData: compressed.Bytes(),
	}

	var out bytes.Buffer
	if err := gob.NewEncoder(&out).Encode(sf); err != nil {
		return nil, fmt.Errorf("write envelope: %w", err)
	}
	return out.Bytes(), nil
}

func checksum(data []byte) string {
	hash := sha256.Sum256(data)
	return hex.EncodeToString(hash[:])
}
