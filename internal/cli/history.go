package cli

import (
	"context"
	"flag"
	"fmt"
	"io"
	"os"
	"strings"
	"text/tabwriter"

	"engage/internal/sink"
)

// runHistory builds the handler for the history command.
func runHistory(cmd *Command) func(args []string, stdout, stderr io.Writer) int {
	return func(args []string, stdout, stderr io.Writer) int {
		if wantsHelp(args) {
			printCommandUsage(cmd, stdout)
			return ExitOK
		}
		fs := flag.NewFlagSet(cmd.Name, flag.ContinueOnError)
		fs.SetOutput(stderr)
		configPath := fs.String("config", "", "Path to config file (default: search for .engage/config.yml)")
		dbPath := fs.String("duckdb", "", "DuckDB file to read (default: log.duckdb from config)")
		sqlitePath := fs.String("sqlite", "", "SQLite file to read instead of DuckDB")
		quizID := fs.String("quiz", "", "Only show sections of this quiz")
		if code, ok := parseFlags(cmd, fs, args, stdout, stderr); !ok {
			return code
		}
		if fs.NArg() > 0 {
			fmt.Fprintf(stderr, "unexpected arguments: %s\n", strings.Join(fs.Args(), " "))
			printCommandUsage(cmd, stderr)
			return ExitUsage
		}

		src := historySource{kind: "duckdb", path: strings.TrimSpace(*dbPath)}
		if other := strings.TrimSpace(*sqlitePath); other != "" {
			if src.path != "" {
				fmt.Fprintln(stderr, "Pass at most one of --duckdb and --sqlite.")
				return ExitUsage
			}
			src = historySource{kind: "sqlite", path: other}
		}
		if src.path == "" {
			cfg, _, err := loadConfig(*configPath)
			if err != nil {
				fmt.Fprintf(stderr, "Failed to load config: %v\n", err)
				return ExitError
			}
			src.path = cfg.Log.DuckDB
			if src.path == "" && cfg.Log.SQLite != "" {
				src = historySource{kind: "sqlite", path: cfg.Log.SQLite}
			}
		}
		if src.path == "" {
			fmt.Fprintln(stderr, "No database log configured; pass --duckdb or --sqlite, or set log.duckdb.")
			return ExitUsage
		}

		if _, err := os.Stat(src.path); err != nil {
			fmt.Fprintf(stderr, "Failed to open %s: %v\n", src.path, err)
			return ExitError
		}

		ctx := context.Background()
		db, err := src.open(ctx)
		if err != nil {
			fmt.Fprintf(stderr, "Failed to open %s: %v\n", src.path, err)
			return ExitError
		}
		defer db.Close()

		entries, err := db.Entries(ctx, strings.TrimSpace(*quizID))
		if err != nil {
			fmt.Fprintf(stderr, "Failed to read history: %v\n", err)
			return ExitError
		}
		if len(entries) == 0 {
			fmt.Fprintln(stdout, "No sections recorded.")
			return ExitOK
		}

		tw := tabwriter.NewWriter(stdout, 0, 4, 2, ' ', 0)
		fmt.Fprintln(tw, "RECORDED\tQUIZ\tSECTION\tATTEMPT\tPAYLOAD")
		for _, entry := range entries {
			payload, err := sink.CanonicalJSON(entry.Payload)
			if err != nil {
				fmt.Fprintf(stderr, "Failed to encode payload: %v\n", err)
				return ExitError
			}
			fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%s\n",
				entry.At.UTC().Format("2006-01-02 15:04:05"), entry.QuizID, entry.Section, entry.AttemptID, payload)
		}
		if err := tw.Flush(); err != nil {
			fmt.Fprintf(stderr, "Failed to write history: %v\n", err)
			return ExitError
		}
		return ExitOK
	}
}

type entryReader interface {
	Entries(ctx context.Context, quizID string) ([]sink.StoredEntry, error)
	Close() error
}

type historySource struct {
	kind string
	path string
}

func (src historySource) open(ctx context.Context) (entryReader, error) {
	if src.kind == "sqlite" {
		return sink.OpenSQLite(ctx, src.path)
	}
	return sink.OpenDuckDB(ctx, src.path)
}
