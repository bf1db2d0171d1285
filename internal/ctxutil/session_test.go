package ctxutil

import (
	"context"
	"testing"
)

func TestSessionFromContext(t *testing.T) {
	if got := SessionFromContext(context.Background()); got != "" {
		t.Errorf("expected empty session, got %q", got)
	}

	ctx := WithSessionID(context.Background(), "sess-1")
	if got := SessionFromContext(ctx); got != "sess-1" {
		t.Errorf("expected sess-1, got %q", got)
	}
}
