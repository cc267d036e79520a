package testutil

import (
	"context"
	"testing"
	"time"
)

func TestContextHonorsTimeout(t *testing.T) {
	ctx := Context(t, 50*time.Millisecond)
	deadline, ok := ctx.Deadline()
	if !ok {
		t.Fatalf("expected a deadline")
	}
	if remaining := time.Until(deadline); remaining > 50*time.Millisecond {
		t.Fatalf("deadline too far out: %s", remaining)
	}
	select {
	case <-ctx.Done():
	case <-time.After(time.Second):
		t.Fatalf("expected context to expire")
	}
	if ctx.Err() != context.DeadlineExceeded {
		t.Fatalf("expected deadline exceeded, got %v", ctx.Err())
	}
}

func TestContextDefaultTimeout(t *testing.T) {
	var ctx context.Context
	t.Run("inner", func(t *testing.T) {
		ctx = Context(t, 0)
		deadline, ok := ctx.Deadline()
		if !ok || time.Until(deadline) > DefaultTimeout {
			t.Fatalf("expected default deadline, got %v %v", deadline, ok)
		}
		if ctx.Err() != nil {
			t.Fatalf("expected live context, got %v", ctx.Err())
		}
	})
	if ctx.Err() != context.Canceled {
		t.Fatalf("expected cleanup to cancel the context, got %v", ctx.Err())
	}
}
