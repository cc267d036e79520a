package cli

import (
	"flag"
	"fmt"
	"io"
	"strings"

	"engage/internal/catalog"
	"engage/internal/quiz"
)

// stringList collects a repeatable string flag.
type stringList []string

func (s *stringList) String() string {
	return strings.Join(*s, ",")
}

func (s *stringList) Set(value string) error {
	*s = append(*s, value)
	return nil
}

// runValidate builds the handler for the validate command.
func runValidate(cmd *Command) func(args []string, stdout, stderr io.Writer) int {
	return func(args []string, stdout, stderr io.Writer) int {
		if wantsHelp(args) {
			printCommandUsage(cmd, stdout)
			return ExitOK
		}

		flags := flag.NewFlagSet(cmd.Name, flag.ContinueOnError)
		flags.SetOutput(stderr)
		configPath := flags.String("config", "", "Path to config file (default: search for .engage/config.yml)")
		var quizPaths stringList
		flags.Var(&quizPaths, "quiz", "Quiz file to validate (repeatable; default: built-ins and configured dirs)")
		if code, ok := parseFlags(cmd, flags, args, stdout, stderr); !ok {
			return code
		}
		if flags.NArg() > 0 {
			fmt.Fprintf(stderr, "unexpected arguments: %s\n", strings.Join(flags.Args(), " "))
			printCommandUsage(cmd, stderr)
			return ExitUsage
		}

		paths := []string(quizPaths)
		checkBuiltins := len(paths) == 0
		if checkBuiltins {
			cfg, _, err := loadConfig(*configPath)
			if err != nil {
				fmt.Fprintf(stderr, "Validation failed:\n%v\n", err)
				return ExitError
			}
			for _, dir := range cfg.Quizzes.Dirs {
				files, err := catalog.Files(dir)
				if err != nil {
					fmt.Fprintf(stderr, "Validation failed:\n%v\n", err)
					return ExitError
				}
				paths = append(paths, files...)
			}
		}

		failed := 0
		checked := 0
		if checkBuiltins {
			cat, err := catalog.Builtin()
			if err != nil {
				fmt.Fprintf(stderr, "Validation failed:\n%s: %v\n", catalog.BuiltinSource, err)
				return ExitError
			}
			checked += len(cat.IDs())
		}
		for _, path := range paths {
			checked++
			if _, err := quiz.LoadQuiz(path); err != nil {
				if failed == 0 {
					fmt.Fprintln(stderr, "Validation failed:")
				}
				failed++
				fmt.Fprintf(stderr, "%s: %v\n", path, err)
			}
		}
		if failed > 0 {
			return ExitError
		}

		fmt.Fprintf(stdout, "Quizzes OK (%d checked)\n", checked)
		return ExitOK
	}
}
