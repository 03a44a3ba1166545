// Wayfarer - Travel Place Listings and Personalized Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/wayfarer

package storage

import (
	"bytes"
	"encoding/gob"
	"errors"
	"strings"
	"testing"

	"github.com/tomtom215/wayfarer/internal/recommend"
)

func testArtifact(t *testing.T) *recommend.Artifact {
	t.Helper()
	a, err := recommend.NewArtifact(
		map[string]int{"alice": 0, "bob": 1},
		map[string]int{"Hoan Kiem Lake": 0, "Temple of Literature": 1, "Old Quarter": 2},
		[][]float64{{1, 0}, {0.2, 0.8}},
		[][]float64{{1, 0}, {0, 1}, {0.5, 0.5}},
	)
	if err != nil {
		t.Fatalf("NewArtifact() error = %v", err)
	}
	return a
}

func TestFormatFromPath(t *testing.T) {
	t.Parallel()

	tests := []struct {
		path    string
		want    Format
		wantErr bool
	}{
		{path: "/data/nfm.gob.gz", want: FormatGob},
		{path: "LGN.JSON", want: FormatJSON},
		{path: "model.msgpack", want: FormatMsgpack},
		{path: "model.mpk", want: FormatMsgpack},
		{path: "model.gob", wantErr: true},
		{path: "model.pkl", wantErr: true},
	}

	for _, tt := range tests {
		got, err := FormatFromPath(tt.path)
		if (err != nil) != tt.wantErr {
			t.Errorf("FormatFromPath(%q) error = %v, wantErr %v", tt.path, err, tt.wantErr)
			continue
		}
		if got != tt.want {
			t.Errorf("FormatFromPath(%q) = %q, want %q", tt.path, got, tt.want)
		}
	}
}

func TestEncodeDecode(t *testing.T) {
	t.Parallel()

	for _, format := range []Format{FormatGob, FormatJSON, FormatMsgpack} {
		t.Run(string(format), func(t *testing.T) {
			t.Parallel()

			original := testArtifact(t)

			var buf bytes.Buffer
			if err := Encode(format, &buf, original); err != nil {
				t.Fatalf("Encode() error = %v", err)
			}

			decoded, meta, err := Decode(format, &buf)
			if err != nil {
				t.Fatalf("Decode() error = %v", err)
			}

			if meta.Format != format || meta.Users != 2 || meta.Items != 3 || meta.Dim != 2 {
				t.Errorf("metadata = %+v", meta)
			}
			if meta.Checksum == "" {
				t.Error("Checksum should not be empty")
			}

			for key := range original.ItemIndex() {
				wantIdx := original.ItemIndex()[key]
				if got := decoded.ItemIndex()[key]; got != wantIdx {
					t.Errorf("item %q index = %d, want %d", key, got, wantIdx)
				}
				if !equalVectors(decoded.ItemVector(wantIdx), original.ItemVector(wantIdx)) {
					t.Errorf("item %q vector differs", key)
				}
			}
			idx, ok := decoded.ResolveUser("bob")
			if !ok || !equalVectors(decoded.UserVector(idx), []float64{0.2, 0.8}) {
				t.Errorf("user bob did not survive encoding")
			}
		})
	}
}

func TestDecode_OriginalKeyNames(t *testing.T) {
	t.Parallel()

	doc := `{
		"user_id_map": {"alice": 0},
		"item_id_map": {"A": 0, "B": 1},
		"user_emb": [[1, 0]],
		"item_emb": [[1, 0], [0, 1]]
	}`

	a, _, err := Decode(FormatJSON, strings.NewReader(doc))
	if err != nil {
		t.Fatalf("Decode() error = %v", err)
	}
	if a.ItemCount() != 2 || a.Dim() != 2 {
		t.Errorf("decoded %d items of dim %d, want 2 of dim 2", a.ItemCount(), a.Dim())
	}
}

func TestDecode_Invalid(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		format Format
		input  string
	}{
		{
			name:   "malformed json",
			format: FormatJSON,
			input:  `{"user_id_map": `,
		},
		{
			name:   "sparse item index",
			format: FormatJSON,
			input:  `{"user_id_map":{"u":0},"item_id_map":{"A":0,"B":2},"user_emb":[[1]],"item_emb":[[1],[2]]}`,
		},
		{
			name:   "dimension mismatch",
			format: FormatJSON,
			input:  `{"user_id_map":{"u":0},"item_id_map":{"A":0},"user_emb":[[1,0]],"item_emb":[[1]]}`,
		},
		{
			name:   "vectors without keys",
			format: FormatJSON,
			input:  `{"user_emb":[[1]],"item_emb":[[1]]}`,
		},
		{
			name:   "garbage msgpack",
			format: FormatMsgpack,
			input:  "\xc1\xc1\xc1",
		},
		{
			name:   "garbage gob",
			format: FormatGob,
			input:  "not a gob stream",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			_, _, err := Decode(tt.format, strings.NewReader(tt.input))
			if !errors.Is(err, recommend.ErrInvalidArtifact) {
				t.Errorf("Decode() error = %v, want ErrInvalidArtifact", err)
			}
		})
	}
}

func TestDecode_ChecksumMismatch(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	if err := Encode(FormatGob, &buf, testArtifact(t)); err != nil {
		t.Fatalf("Encode() error = %v", err)
	}

	var sf storedFile
	if err := gob.NewDecoder(&buf).Decode(&sf); err != nil {
		t.Fatalf("decode envelope: %v", err)
	}
	sf.Metadata.Checksum = strings.Repeat("0", 64)

	var tampered bytes.Buffer
	if err := gob.NewEncoder(&tampered).Encode(sf); err != nil {
		t.Fatalf("encode envelope: %v", err)
	}

	_, _, err := Decode(FormatGob, &tampered)
	if !errors.Is(err, recommend.ErrInvalidArtifact) || !strings.Contains(err.Error(), "checksum mismatch") {
		t.Errorf("Decode() error = %v, want checksum mismatch", err)
	}
}

func TestDecode_UnknownFormat(t *testing.T) {
	t.Parallel()

	if _, _, err := Decode(Format("pickle"), strings.NewReader("")); err == nil {
		t.Error("Decode() with unknown format should fail")
	}
}

func equalVectors(a, b []float64) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}
