package ctxutil

import (
	"context"
	"testing"
)

func TestRequestID_RoundTrip(t *testing.T) {
	ctx := WithRequestID(context.Background(), "req-123")
	if got := RequestIDFromCtx(ctx); got != "req-123" {
		t.Errorf("expected req-123, got %q", got)
	}
}

func TestRequestID_Absent(t *testing.T) {
	if got := RequestIDFromCtx(context.Background()); got != "" {
		t.Errorf("expected empty request ID, got %q", got)
	}
}

func TestRequestID_WrongType(t *testing.T) {
	ctx := context.WithValue(context.Background(), ctxKey("request_id"), 42)
	if got := RequestIDFromCtx(ctx); got != "" {
		t.Errorf("expected empty request ID for non-string value, got %q", got)
	}
}
