package cli

import (
	"context"
	"io"

	"engage/internal/config"
	"engage/internal/pager"
	"engage/internal/sink"
)

// buildLogger assembles the configured sinks in a fixed order: diagnostics,
// then the JSON-lines logbook, then DuckDB, then SQLite. The returned closer
// releases every opened database.
func buildLogger(ctx context.Context, cfg config.Config, stderr io.Writer) (pager.Logger, func(), error) {
	var (
		loggers []pager.Logger
		closers []func() error
	)
	closer := func() {
		for i := len(closers) - 1; i >= 0; i-- {
			_ = closers[i]()
		}
	}
	if cfg.Log.DiagnosticsEnabled() {
		loggers = append(loggers, pager.Diagnostic(stderr))
	}
	if cfg.Log.File != "" {
		logbook, err := sink.NewLogbook(cfg.Log.File)
		if err != nil {
			return nil, closer, err
		}
		loggers = append(loggers, logbook)
	}
	if cfg.Log.DuckDB != "" {
		db, err := sink.OpenDuckDB(ctx, cfg.Log.DuckDB)
		if err != nil {
			return nil, closer, err
		}
		loggers = append(loggers, db)
		closers = append(closers, db.Close)
	}
	if cfg.Log.SQLite != "" {
		db, err := sink.OpenSQLite(ctx, cfg.Log.SQLite)
		if err != nil {
			closer()
			return nil, func() {}, err
		}
		loggers = append(loggers, db)
		closers = append(closers, db.Close)
	}
	return sink.Multi(loggers...), closer, nil
}
