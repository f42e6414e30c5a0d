package observability_test

import (
	"context"
	"testing"

	"github.com/airsenselabs/assistant/internal/observability"
)

func TestLoggerFromContextWithoutSessionID(t *testing.T) {
	got := observability.LoggerFromContext(context.Background())
	if got != observability.Logger() {
		t.Fatalf("expected the base logger when no session id is set")
	}
}

func TestLoggerFromContextAttachesSessionID(t *testing.T) {
	ctx := observability.WithSessionID(context.Background(), "sess-123")

	got := observability.LoggerFromContext(ctx)
	if got == observability.Logger() {
		t.Fatalf("expected a logger carrying the session id, got the base logger")
	}
}

func TestLoggerFromContextIgnoresEmptySessionID(t *testing.T) {
	ctx := observability.WithSessionID(context.Background(), "")

	got := observability.LoggerFromContext(ctx)
	if got != observability.Logger() {
		t.Fatalf("empty session id must fall back to the base logger")
	}
}
