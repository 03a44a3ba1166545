// Wayfarer - Travel Place Listings and Personalized Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/wayfarer

package logging

import (
	"context"
	"strings"
	"testing"
)

func TestGenerateIDs(t *testing.T) {
	t.Parallel()

	if id := GenerateRequestID(); len(id) != 36 {
		t.Errorf("GenerateRequestID() = %q, want a UUID", id)
	}
	if id := GenerateCorrelationID(); len(id) != 8 {
		t.Errorf("GenerateCorrelationID() = %q, want 8 characters", id)
	}
	if GenerateRequestID() == GenerateRequestID() {
		t.Error("GenerateRequestID() returned duplicates")
	}
}

func TestContextValues(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	if RequestIDFromContext(ctx) != "" || CorrelationIDFromContext(ctx) != "" || UserFromContext(ctx) != "" {
		t.Fatal("empty context should carry no values")
	}

	ctx = ContextWithRequestID(ctx, "req-1")
	ctx = ContextWithCorrelationID(ctx, "corr-1")
	ctx = ContextWithUser(ctx, "alice")

	if got := RequestIDFromContext(ctx); got != "req-1" {
		t.Errorf("RequestIDFromContext() = %q", got)
	}
	if got := CorrelationIDFromContext(ctx); got != "corr-1" {
		t.Errorf("CorrelationIDFromContext() = %q", got)
	}
	if got := UserFromContext(ctx); got != "alice" {
		t.Errorf("UserFromContext() = %q", got)
	}
}

func TestCtx(t *testing.T) {
	buf := captureGlobal(t, "info")

	ctx := ContextWithRequestID(context.Background(), "req-42")
	ctx = ContextWithUser(ctx, "bob")
	Ctx(ctx).Info().Msg("handled")

	output := buf.String()
	for _, want := range []string{`"request_id":"req-42"`, `"user":"bob"`} {
		if !strings.Contains(output, want) {
			t.Errorf("output missing %s: %s", want, output)
		}
	}
	if strings.Contains(output, "correlation_id") {
		t.Errorf("absent correlation id was logged: %s", output)
	}
}

func TestWithComponent(t *testing.T) {
	buf := captureGlobal(t, "info")

	logger := WithComponent("database")
	logger.Info().Msg("tables imported")

	if !strings.Contains(buf.String(), `"component":"database"`) {
		t.Errorf("component field missing: %s", buf.String())
	}
}
