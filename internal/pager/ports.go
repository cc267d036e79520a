package pager

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"sync"
	"time"

	"engage/internal/quiz"
)

// Entry is one logged section of a submission.
type Entry struct {
	AttemptID string         `json:"attempt_id"`
	QuizID    string         `json:"quiz_id"`
	Section   string         `json:"section"`
	Payload   map[string]any `json:"payload"`
	At        time.Time      `json:"at"`
}

// Logger persists or records submitted sections. A returned error aborts the
// submission and keeps the pager on its current page.
type Logger interface {
	Log(ctx context.Context, entry Entry) error
}

// LoggerFunc adapts a function to the Logger interface.
type LoggerFunc func(ctx context.Context, entry Entry) error

// Log calls f(ctx, entry).
func (f LoggerFunc) Log(ctx context.Context, entry Entry) error {
	return f(ctx, entry)
}

// Completion receives the projected answers once a submission succeeds. The
// host uses it to navigate away from the quiz.
type Completion func(result quiz.Answers)

// Observer is notified after every state change with a fresh snapshot.
// Notifications may arrive from timer goroutines.
type Observer interface {
	OnChange(snapshot Snapshot)
}

// ObserverFunc adapts a function to the Observer interface.
type ObserverFunc func(snapshot Snapshot)

// OnChange calls f(snapshot).
func (f ObserverFunc) OnChange(snapshot Snapshot) {
	f(snapshot)
}

type diagnosticLogger struct {
	mu sync.Mutex
	w  io.Writer
}

// Diagnostic returns a Logger that writes "[quiz log]" lines to w and never fails.
func Diagnostic(w io.Writer) Logger {
	if w == nil {
		w = io.Discard
	}
	return &diagnosticLogger{w: w}
}

func (d *diagnosticLogger) Log(_ context.Context, entry Entry) error {
	payload, err := json.Marshal(entry.Payload)
	if err != nil {
		payload = []byte(fmt.Sprintf("%v", entry.Payload))
	}
	d.mu.Lock()
	defer d.mu.Unlock()
	fmt.Fprintf(d.w, "[quiz log] %s %s\n", entry.Section, payload)
	return nil
}

var defaultLogger = Diagnostic(os.Stderr)

// DefaultLogger returns the process-wide fallback used when no Logger is given.
func DefaultLogger() Logger {
	return defaultLogger
}
