package cli

import (
	"fmt"
	"io"
	"os"
	"strings"

	"golang.org/x/term"

	"engage/internal/config"
)

// uiModeDecision captures whether to use the live UI.
type uiModeDecision struct {
	useLive bool
	warning string
}

// isTerminal reports whether a writer is a TTY.
var isTerminal = defaultIsTerminal

// resolveUIMode picks the terminal host. The --ui flag wins over ui.mode
// from the config, and verbose output always uses the plain host.
func resolveUIMode(flagMode, configMode string, verbose bool, stdout io.Writer) (uiModeDecision, error) {
	mode := strings.TrimSpace(flagMode)
	if mode == "" {
		mode = configMode
	}
	normalized := strings.ToLower(strings.TrimSpace(mode))
	if normalized == "" {
		normalized = config.UIModeAuto
	}
	switch normalized {
	case config.UIModeAuto, config.UIModeLive, config.UIModePlain:
	default:
		return uiModeDecision{}, fmt.Errorf("invalid ui mode %q (expected auto|live|plain)", mode)
	}
	if verbose {
		decision := uiModeDecision{useLive: false}
		if normalized == config.UIModeLive {
			decision.warning = "Verbose output requested; using the plain prompts instead of the live UI."
		}
		return decision, nil
	}
	switch normalized {
	case config.UIModeLive:
		if isTerminal(stdout) {
			return uiModeDecision{useLive: true}, nil
		}
		return uiModeDecision{
			useLive: false,
			warning: "Live UI requested but stdout is not a TTY; falling back to plain prompts.",
		}, nil
	case config.UIModePlain:
		return uiModeDecision{useLive: false}, nil
	default:
		return uiModeDecision{useLive: isTerminal(stdout)}, nil
	}
}

// defaultIsTerminal inspects stdout for TTY support.
func defaultIsTerminal(stdout io.Writer) bool {
	if stdout == nil {
		return false
	}
	if file, ok := stdout.(*os.File); ok {
		return term.IsTerminal(int(file.Fd()))
	}
	if fder, ok := stdout.(interface{ Fd() uintptr }); ok {
		return term.IsTerminal(int(fder.Fd()))
	}
	return false
}
