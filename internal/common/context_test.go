package common

import (
	"context"
	"testing"
)

func TestRequestIDRoundTrip(t *testing.T) {
	ctx := WithRequestID(context.Background(), "rid-123")
	if got := RequestIDFromContext(ctx); got != "rid-123" {
		t.Errorf("expected rid-123, got %q", got)
	}
	if got := RequestIDFromContext(context.Background()); got != "" {
		t.Errorf("bare context should yield empty request id, got %q", got)
	}
}

func TestUserIDRoundTrip(t *testing.T) {
	ctx := WithUserID(context.Background(), "u-1")
	if got := UserIDFromContext(ctx); got != "u-1" {
		t.Errorf("expected u-1, got %q", got)
	}
	if got := UserIDFromContext(context.Background()); got != "" {
		t.Errorf("bare context should yield empty user id, got %q", got)
	}
}
