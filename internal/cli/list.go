package cli

import (
	"flag"
	"fmt"
	"io"
	"strings"
	"text/tabwriter"
)

// runList builds the handler for the list command.
func runList(cmd *Command) func(args []string, stdout, stderr io.Writer) int {
	return func(args []string, stdout, stderr io.Writer) int {
		if wantsHelp(args) {
			printCommandUsage(cmd, stdout)
			return ExitOK
		}
		fs := flag.NewFlagSet(cmd.Name, flag.ContinueOnError)
		fs.SetOutput(stderr)
		configPath := fs.String("config", "", "Path to config file (default: search for .engage/config.yml)")
		if code, ok := parseFlags(cmd, fs, args, stdout, stderr); !ok {
			return code
		}
		if fs.NArg() > 0 {
			fmt.Fprintf(stderr, "unexpected arguments: %s\n", strings.Join(fs.Args(), " "))
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

		tw := tabwriter.NewWriter(stdout, 0, 4, 2, ' ', 0)
		fmt.Fprintln(tw, "ID\tTITLE\tPAGES\tSOURCE")
		for _, entry := range cat.List() {
			fmt.Fprintf(tw, "%s\t%s\t%d\t%s\n", entry.Quiz.ID, entry.Quiz.Title, len(entry.Quiz.Pages), entry.Source)
		}
		if err := tw.Flush(); err != nil {
			fmt.Fprintf(stderr, "Failed to write list: %v\n", err)
			return ExitError
		}
		return ExitOK
	}
}
