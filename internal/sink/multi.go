package sink

import (
	"context"

	"engage/internal/pager"
)

type multi []pager.Logger

// Multi fans an entry out to each logger in order. The first error stops the
// fan-out and is returned.
func Multi(loggers ...pager.Logger) pager.Logger {
	out := make(multi, 0, len(loggers))
	for _, logger := range loggers {
		if logger != nil {
			out = append(out, logger)
		}
	}
	return out
}

func (m multi) Log(ctx context.Context, entry pager.Entry) error {
	for _, logger := range m {
		if err := logger.Log(ctx, entry); err != nil {
			return err
		}
	}
	return nil
}
