package swiper

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"

	tea "github.com/charmbracelet/bubbletea"

	"engage/internal/quiz"
)

// ErrCanceled indicates the user left the quiz without submitting.
var ErrCanceled = errors.New("quiz canceled")

// Run drives q in its own Bubble Tea program until the user submits or leaves.
func Run(ctx context.Context, q quiz.Quiz, stdin io.Reader, stdout io.Writer, opts Options) (quiz.Answers, error) {
	if stdin == nil {
		stdin = os.Stdin
	}
	if stdout == nil {
		stdout = os.Stdout
	}
	opts.Context = ctx
	opts.Standalone = true
	model, err := New(q, opts)
	if err != nil {
		return nil, err
	}
	program := tea.NewProgram(model,
		tea.WithContext(ctx),
		tea.WithInput(stdin),
		tea.WithOutput(stdout),
		tea.WithAltScreen(),
	)
	final, err := program.Run()
	if err != nil {
		return nil, fmt.Errorf("run quiz ui: %w", err)
	}
	finished, ok := final.(Model)
	if !ok {
		return nil, fmt.Errorf("run quiz ui: unexpected model %T", final)
	}
	if result, done := finished.Done(); done {
		return result, nil
	}
	return nil, ErrCanceled
}
