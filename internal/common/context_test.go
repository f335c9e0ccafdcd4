package common

import (
	"context"
	"testing"
	"time"
)

func TestContextIDs(t *testing.T) {
	ctx := context.Background()
	if got := RequestIDFromContext(ctx); got != "" {
		t.Errorf("RequestIDFromContext(empty) = %q", got)
	}
	if got := DocumentIDFromContext(ctx); got != "" {
		t.Errorf("DocumentIDFromContext(empty) = %q", got)
	}

	ctx = WithRequestID(ctx, "req-1")
	ctx = WithDocumentID(ctx, "doc-1")
	if got := RequestIDFromContext(ctx); got != "req-1" {
		t.Errorf("RequestIDFromContext = %q, want req-1", got)
	}
	if got := DocumentIDFromContext(ctx); got != "doc-1" {
		t.Errorf("DocumentIDFromContext = %q, want doc-1", got)
	}
}

func TestWithTimeout(t *testing.T) {
	ctx, cancel := WithTimeout(context.Background(), time.Minute)
	defer cancel()
	deadline, ok := ctx.Deadline()
	if !ok {
		t.Fatal("no deadline set")
	}
	if time.Until(deadline) > time.Minute {
		t.Errorf("deadline too far: %v", deadline)
	}
}
