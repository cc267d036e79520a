package cli

import (
	"context"
	"encoding/json"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"strings"

	"engage/internal/quiz"
	"engage/internal/ui/plain"
	"engage/internal/ui/swiper"
)

var (
	runSwiper = swiper.Run
	runPlain  = plain.Run
)

// takeInput allows tests to override stdin for the quiz hosts.
var takeInput io.Reader = os.Stdin

// runTake builds the handler for the take command.
func runTake(cmd *Command) func(args []string, stdout, stderr io.Writer) int {
	return func(args []string, stdout, stderr io.Writer) int {
		if wantsHelp(args) {
			printCommandUsage(cmd, stdout)
			return ExitOK
		}
		fs := flag.NewFlagSet(cmd.Name, flag.ContinueOnError)
		fs.SetOutput(stderr)
		configPath := fs.String("config", "", "Path to config file (default: search for .engage/config.yml)")
		uiMode := fs.String("ui", "", "UI mode: auto|live|plain (default: ui.mode from config)")
		verbose := fs.Bool("verbose", false, "Report each logged section on stderr")
		noColor := fs.Bool("no-color", false, "Disable colors")
		attemptID := fs.String("attempt", "", "Attempt id recorded with each section (default: random)")
		if code, ok := parseFlags(cmd, fs, args, stdout, stderr); !ok {
			return code
		}
		if fs.NArg() != 1 {
			fmt.Fprintln(stderr, "expected exactly one quiz id")
			printCommandUsage(cmd, stderr)
			return ExitUsage
		}

		cfg, _, err := loadConfig(*configPath)
		if err != nil {
			fmt.Fprintf(stderr, "Failed to load config: %v\n", err)
			return ExitError
		}
		cat, err := buildCatalog(cfg)
		if err != nil {
			fmt.Fprintf(stderr, "Failed to load quizzes: %v\n", err)
			return ExitError
		}
		entry, ok := cat.Lookup(fs.Arg(0))
		if !ok {
			fmt.Fprintf(stderr, "Unknown quiz %q (available: %s)\n", fs.Arg(0), strings.Join(cat.IDs(), ", "))
			return ExitError
		}

		decision, err := resolveUIMode(*uiMode, cfg.UI.Mode, *verbose, stdout)
		if err != nil {
			fmt.Fprintf(stderr, "Invalid UI mode: %v\n", err)
			return ExitUsage
		}
		if decision.warning != "" {
			fmt.Fprintln(stderr, decision.warning)
		}

		colorless := *noColor || cfg.UI.NoColor
		stderr = lockWriter(stderr)
		ctx := context.Background()
		logger, closeLogger, err := buildLogger(ctx, cfg, stderr)
		if err != nil {
			fmt.Fprintf(stderr, "Failed to open answer log: %v\n", err)
			return ExitError
		}
		defer closeLogger()
		if *verbose {
			logger = verboseLogger{next: logger, writer: stderr, noColor: colorless}
		}
		logVerbose(*verbose, stderr, colorless, styleQuiz, "quiz %s source=%s pages=%d fields=%d",
			entry.Quiz.ID, entry.Source, len(entry.Quiz.Pages), entry.Quiz.FieldCount())

		var result quiz.Answers
		if decision.useLive {
			result, err = runSwiper(ctx, entry.Quiz, takeInput, stdout, swiper.Options{
				Duration:  cfg.UI.Transition(),
				Width:     cfg.UI.Width,
				Height:    cfg.UI.Height,
				Logger:    logger,
				AttemptID: *attemptID,
				NoColor:   colorless,
			})
		} else {
			result, err = runPlain(ctx, entry.Quiz, takeInput, stdout, plain.Options{
				Duration:  cfg.UI.Transition(),
				Logger:    logger,
				AttemptID: *attemptID,
			})
		}
		if errors.Is(err, swiper.ErrCanceled) || errors.Is(err, plain.ErrCanceled) {
			fmt.Fprintln(stderr, "Quiz cancelled.")
			return ExitError
		}
		if err != nil {
			fmt.Fprintf(stderr, "Quiz failed: %v\n", err)
			return ExitError
		}
		logVerbose(*verbose, stderr, colorless, styleQuiz, "completed %s result=%s", entry.Quiz.ID, formatAnswerCounts(result))

		if result == nil {
			result = quiz.Answers{}
		}
		data, err := json.MarshalIndent(result, "", "  ")
		if err != nil {
			fmt.Fprintf(stderr, "Failed to encode result: %v\n", err)
			return ExitError
		}
		fmt.Fprintln(stdout, string(data))
		return ExitOK
	}
}
