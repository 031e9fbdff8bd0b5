package services_test

import (
	"context"
	"testing"

	"pitchside/internal/services"
)

func TestContextHelpers(t *testing.T) {
	ctx := context.Background()
	ctx = services.WithLanguage(ctx, "es")
	ctx = services.WithSource(ctx, "match.mp4")
	ctx = services.WithRequestID(ctx, "req-123")

	if code, ok := services.LanguageFromContext(ctx); !ok || code != "es" {
		t.Fatalf("unexpected language: %v %v", code, ok)
	}
	if source, ok := services.SourceFromContext(ctx); !ok || source != "match.mp4" {
		t.Fatalf("unexpected source: %v %v", source, ok)
	}
	if rid, ok := services.RequestIDFromContext(ctx); !ok || rid != "req-123" {
		t.Fatalf("unexpected request id: %v %v", rid, ok)
	}
}

func TestBlankValuesPreserveContext(t *testing.T) {
	ctx := context.Background()
	ctx = services.WithLanguage(ctx, "")
	ctx = services.WithRequestID(ctx, "")
	if _, ok := services.LanguageFromContext(ctx); ok {
		t.Fatal("expected no language value")
	}
	if _, ok := services.RequestIDFromContext(ctx); ok {
		t.Fatal("expected no request id value")
	}
}
