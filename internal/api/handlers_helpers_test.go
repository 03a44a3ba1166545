// Wayfarer - Travel Place Listings and Personalized Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/wayfarer

package api

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/tomtom215/wayfarer/internal/models"
)

func TestSanitizeLogValue(t *testing.T) {
	t.Parallel()

	tests := []struct {
		input string
		want  string
	}{
		{"plain", "plain"},
		{"line\nbreak", `line\x0abreak`},
		{"tab\there", `tab\x09here`},
		{"del\x7f", `del\x7f`},
		{"Hà Nội", "Hà Nội"},
	}
	for _, tt := range tests {
		if got := sanitizeLogValue(tt.input); got != tt.want {
			t.Errorf("sanitizeLogValue(%q) = %q, want %q", tt.input, got, tt.want)
		}
	}
}

func TestGenerateETag(t *testing.T) {
	t.Parallel()

	a := generateETag([]byte(`{"a":1}`))
	b := generateETag([]byte(`{"a":1}`))
	c := generateETag([]byte(`{"a":2}`))

	if a != b {
		t.Errorf("ETag not deterministic: %s != %s", a, b)
	}
	if a == c {
		t.Error("different bodies share an ETag")
	}
	if !strings.HasPrefix(a, `"`) || !strings.HasSuffix(a, `"`) {
		t.Errorf("ETag %s is not quoted", a)
	}
}

func TestRespondError(t *testing.T) {
	t.Parallel()

	rec := httptest.NewRecorder()
	respondError(rec, http.StatusNotFound, models.ErrCodeNotFound, "Place not found", errors.New("lookup\nfailed"))

	assertStatus(t, rec, http.StatusNotFound)
	if ct := rec.Header().Get("Content-Type"); ct != "application/json" {
		t.Errorf("Content-Type = %q", ct)
	}
	env := decodeEnvelope(t, rec, nil)
	if env.Status != "error" || env.Error == nil || env.Error.Message != "Place not found" {
		t.Errorf("envelope = %+v", env)
	}
}

func TestRespondSuccess_Count(t *testing.T) {
	t.Parallel()

	rec := httptest.NewRecorder()
	respondSuccess(rec, []string{"a", "b"}, time.Now(), 2)
	env := decodeEnvelope(t, rec, nil)
	if env.Metadata.Count == nil || *env.Metadata.Count != 2 {
		t.Errorf("count = %v, want 2", env.Metadata.Count)
	}

	rec = httptest.NewRecorder()
	respondSuccess(rec, map[string]string{"k": "v"}, time.Now(), -1)
	env = decodeEnvelope(t, rec, nil)
	if env.Metadata.Count != nil {
		t.Errorf("count = %v, want nil", *env.Metadata.Count)
	}
}

func TestGetIntParam(t *testing.T) {
	t.Parallel()

	tests := []struct {
		query  string
		want   int
		wantOK bool
	}{
		{"", 5, true},
		{"?k=3", 3, true},
		{"?k=0", 0, true},
		{"?k=-2", -2, true},
		{"?k=abc", 5, false},
		{"?k=2.5", 5, false},
	}
	for _, tt := range tests {
		req := httptest.NewRequest(http.MethodGet, "/"+tt.query, nil)
		got, ok := getIntParam(req, "k", 5)
		if got != tt.want || ok != tt.wantOK {
			t.Errorf("getIntParam(%q) = (%d, %v), want (%d, %v)", tt.query, got, ok, tt.want, tt.wantOK)
		}
	}
}

func TestDecodeJSONBody(t *testing.T) {
	t.Parallel()

	var req models.SearchRequest
	r := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(`{"query":"lake"}`))
	if err := decodeJSONBody(r, &req); err != nil || req.Query != "lake" {
		t.Errorf("decodeJSONBody() = %v, query %q", err, req.Query)
	}

	req = models.SearchRequest{}
	r = httptest.NewRequest(http.MethodPost, "/", nil)
	if err := decodeJSONBody(r, &req); err != nil {
		t.Errorf("decodeJSONBody(empty) error = %v", err)
	}

	r = httptest.NewRequest(http.MethodPost, "/", strings.NewReader(`[1,2`))
	if err := decodeJSONBody(r, &req); err == nil {
		t.Error("decodeJSONBody(malformed) error = nil")
	}
}
