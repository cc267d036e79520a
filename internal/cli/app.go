package cli

import (
	"context"
	"flag"
	"fmt"
	"io"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"engage/internal/ui/home"
	"engage/internal/ui/swiper"
)

// runHomeProgram drives the home screen to completion.
var runHomeProgram = func(ctx context.Context, model home.Model, in io.Reader, out io.Writer) (home.Model, error) {
	program := tea.NewProgram(model,
		tea.WithContext(ctx),
		tea.WithInput(in),
		tea.WithOutput(out),
		tea.WithAltScreen(),
	)
	final, err := program.Run()
	if err != nil {
		return home.Model{}, fmt.Errorf("run home ui: %w", err)
	}
	finished, ok := final.(home.Model)
	if !ok {
		return home.Model{}, fmt.Errorf("run home ui: unexpected model %T", final)
	}
	return finished, nil
}

// runApp builds the handler for the app command.
func runApp(cmd *Command) func(args []string, stdout, stderr io.Writer) int {
	return func(args []string, stdout, stderr io.Writer) int {
		if wantsHelp(args) {
			printCommandUsage(cmd, stdout)
			return ExitOK
		}
		fs := flag.NewFlagSet(cmd.Name, flag.ContinueOnError)
		fs.SetOutput(stderr)
		configPath := fs.String("config", "", "Path to config file (default: search for .engage/config.yml)")
		noColor := fs.Bool("no-color", false, "Disable colors")
		if code, ok := parseFlags(cmd, fs, args, stdout, stderr); !ok {
			return code
		}
		if fs.NArg() > 0 {
			fmt.Fprintf(stderr, "unexpected arguments: %s\n", strings.Join(fs.Args(), " "))
			printCommandUsage(cmd, stderr)
			return ExitUsage
		}
		if !isTerminal(stdout) {
			fmt.Fprintln(stderr, "The home screen needs a terminal; use \"engage take <quiz-id>\" for plain prompts.")
			return ExitError
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

		stderr = lockWriter(stderr)
		ctx := context.Background()
		logger, closeLogger, err := buildLogger(ctx, cfg, stderr)
		if err != nil {
			fmt.Fprintf(stderr, "Failed to open answer log: %v\n", err)
			return ExitError
		}
		defer closeLogger()

		model, err := home.New(home.Options{
			Catalog: cat,
			Swiper: swiper.Options{
				Context:  ctx,
				Duration: cfg.UI.Transition(),
				Width:    cfg.UI.Width,
				Height:   cfg.UI.Height,
				Logger:   logger,
			},
			NoColor: *noColor || cfg.UI.NoColor,
		})
		if err != nil {
			fmt.Fprintf(stderr, "Failed to build home screen: %v\n", err)
			return ExitError
		}
		finished, err := runHomeProgram(ctx, model, takeInput, stdout)
		if err != nil {
			fmt.Fprintf(stderr, "App failed: %v\n", err)
			return ExitError
		}

		results := finished.Results()
		ids := make([]string, 0, len(results))
		for _, id := range cat.IDs() {
			if _, ok := results[id]; ok {
				ids = append(ids, id)
			}
		}
		if len(ids) == 0 {
			fmt.Fprintln(stdout, "No quizzes completed.")
			return ExitOK
		}
		fmt.Fprintf(stdout, "Completed: %s\n", strings.Join(ids, ", "))
		fmt.Fprintf(stdout, "Additional information: %.0f%% complete\n", finished.Completion()*100)
		return ExitOK
	}
}
