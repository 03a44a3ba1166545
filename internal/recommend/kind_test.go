// Wayfarer - Travel Place Listings and Personalized Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/wayfarer

package recommend

import (
	"errors"
	"testing"
)

func TestParseModelKind(t *testing.T) {
	t.Parallel()

	tests := []struct {
		input   string
		want    ModelKind
		wantErr bool
	}{
		{input: "NFM", want: KindNFM},
		{input: "nfm", want: KindNFM},
		{input: "LGN", want: KindLGN},
		{input: " lgn ", want: KindLGN},
		{input: "LGC", wantErr: true},
		{input: "", wantErr: true},
		{input: "BPR", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			t.Parallel()

			got, err := ParseModelKind(tt.input)
			if tt.wantErr {
				if !errors.Is(err, ErrUnknownModelKind) {
					t.Fatalf("ParseModelKind(%q) error = %v, want ErrUnknownModelKind", tt.input, err)
				}
				return
			}
			if err != nil {
				t.Fatalf("ParseModelKind(%q) unexpected error: %v", tt.input, err)
			}
			if got != tt.want {
				t.Errorf("ParseModelKind(%q) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}

func TestModelKindValid(t *testing.T) {
	t.Parallel()

	for _, k := range AllKinds() {
		if !k.Valid() {
			t.Errorf("%s.Valid() = false, want true", k)
		}
	}
	for _, k := range []ModelKind{"", "LGC", "nfm"} {
		if k.Valid() {
			t.Errorf("%q.Valid() = true, want false", k)
		}
	}
}

func TestParseColdStartPolicy(t *testing.T) {
	t.Parallel()

	tests := []struct {
		input   string
		want    ColdStartPolicy
		wantErr bool
	}{
		{input: "", want: ColdStartPopularity},
		{input: "popularity", want: ColdStartPopularity},
		{input: "EMPTY", want: ColdStartEmpty},
		{input: "random", wantErr: true},
	}

	for _, tt := range tests {
		got, err := ParseColdStartPolicy(tt.input)
		if (err != nil) != tt.wantErr {
			t.Errorf("ParseColdStartPolicy(%q) error = %v, wantErr %v", tt.input, err, tt.wantErr)
			continue
		}
		if !tt.wantErr && got != tt.want {
			t.Errorf("ParseColdStartPolicy(%q) = %v, want %v", tt.input, got, tt.want)
		}
	}
}
