package cli

import (
	"io"
	"sync"
)

// lockedWriter serializes writes to an underlying writer.
type lockedWriter struct {
	mu sync.Mutex
	w  io.Writer
}

// Write writes to the underlying writer with a mutex guard.
func (l *lockedWriter) Write(p []byte) (int, error) {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.w.Write(p)
}

// lockWriter shares stderr between the diagnostic sink, which may write from
// the UI's submit goroutine, and the command's own messages.
func lockWriter(w io.Writer) io.Writer {
	if w == nil {
		return nil
	}
	if _, ok := w.(*lockedWriter); ok {
		return w
	}
	return &lockedWriter{w: w}
}

func unwrapWriter(w io.Writer) io.Writer {
	if locked, ok := w.(*lockedWriter); ok {
		return locked.w
	}
	return w
}
