// Package testutil holds helpers shared by package tests: a deterministic
// clock and test-scoped contexts.
package testutil

import (
	"context"
	"testing"
	"time"
)

// DefaultTimeout bounds a test context when no timeout is given.
const DefaultTimeout = 5 * time.Second

// Context returns a context canceled when the test ends, after timeout, or a
// second before the test binary's own deadline, whichever comes first.
func Context(t *testing.T, timeout time.Duration) context.Context {
	t.Helper()
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	deadline := time.Now().Add(timeout)
	if testDeadline, ok := t.Deadline(); ok {
		if cutoff := testDeadline.Add(-time.Second); cutoff.After(time.Now()) && cutoff.Before(deadline) {
			deadline = cutoff
		}
	}
	ctx, cancel := context.WithDeadline(context.Background(), deadline)
	t.Cleanup(cancel)
	return ctx
}
