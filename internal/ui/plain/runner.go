package plain

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strings"
	"time"

	"engage/internal/clock"
	"engage/internal/pager"
	"engage/internal/quiz"
)

// ErrCanceled indicates the user quit or input ended before submission.
var ErrCanceled = errors.New("quiz canceled")

// Commands accepted at any prompt.
const (
	commandBack = "/back"
	commandSkip = "/skip"
	commandQuit = "/quit"
)

// Options configures a plain run.
type Options struct {
	Duration  time.Duration
	Clock     clock.Clock
	Logger    pager.Logger
	AttemptID string
}

type action int

const (
	actionNext action = iota
	actionBack
	actionSkip
)

type runner struct {
	pager   *pager.Pager
	reader  *bufio.Reader
	out     io.Writer
	changes chan struct{}
}

// Run walks q one prompt at a time and returns the completion result.
func Run(ctx context.Context, q quiz.Quiz, in io.Reader, out io.Writer, opts Options) (quiz.Answers, error) {
	changes := make(chan struct{}, 1)
	var result quiz.Answers
	p, err := pager.New(q, pager.Options{
		Duration:  opts.Duration,
		Clock:     opts.Clock,
		Logger:    opts.Logger,
		AttemptID: opts.AttemptID,
		OnDone:    func(r quiz.Answers) { result = r },
		Observer: pager.ObserverFunc(func(pager.Snapshot) {
			select {
			case changes <- struct{}{}:
			default:
			}
		}),
	})
	if err != nil {
		return nil, err
	}
	r := &runner{pager: p, reader: bufio.NewReader(in), out: out, changes: changes}

	fmt.Fprintf(out, "%s\n", q.Title)
	fmt.Fprintf(out, "Type %s, %s or %s at any prompt.\n", commandBack, commandSkip, commandQuit)
	for {
		snap := p.Snapshot()
		next, err := r.askPage(snap)
		if err != nil {
			return nil, err
		}
		switch next {
		case actionBack:
			if !p.GoPrev() {
				fmt.Fprintln(out, "Already on the first page.")
				continue
			}
		case actionSkip:
			if !p.Skip() {
				fmt.Fprintln(out, "This page can't be skipped.")
				continue
			}
		default:
			if snap.IsLast() {
				done, err := r.submit(ctx)
				if err != nil {
					return nil, err
				}
				if done {
					return result, nil
				}
				continue
			}
			if !p.GoNext() {
				continue
			}
		}
		if err := r.waitIdle(ctx); err != nil {
			return nil, err
		}
	}
}

// askPage prompts for every field, then re-prompts unsatisfied fields until
// the page is valid or a command is entered.
func (r *runner) askPage(snap pager.Snapshot) (action, error) {
	fmt.Fprintf(r.out, "\n== %s (%d/%d) ==\n", snap.Page.Title, snap.Index+1, snap.Total)
	fields := snap.Page.Fields
	for {
		for _, field := range fields {
			next, handled, err := r.askField(field)
			if err != nil {
				return actionNext, err
			}
			if handled {
				return next, nil
			}
		}
		hints := quiz.PageHints(snap.Page, r.pager.Snapshot().Answers)
		if len(hints) == 0 {
			return actionNext, nil
		}
		fields = fields[:0:0]
		for _, hint := range hints {
			fmt.Fprintf(r.out, "! %s\n", hint.Message)
			if field, ok := r.pager.Quiz().Field(hint.FieldID); ok {
				fields = append(fields, field)
			}
		}
	}
}

// askField reads one answer. handled reports that a navigation command was
// entered instead.
func (r *runner) askField(field quiz.Field) (action, bool, error) {
	for {
		current := r.pager.Snapshot().Answers[field.ID]
		r.describe(field, current)
		line, err := promptLine(r.reader, r.out, promptLabel(field))
		if err == io.EOF {
			return actionNext, false, fmt.Errorf("input ended before submission: %w", ErrCanceled)
		}
		if err != nil {
			return actionNext, false, err
		}
		switch strings.TrimSpace(strings.ToLower(line)) {
		case commandBack:
			return actionBack, true, nil
		case commandSkip:
			return actionSkip, true, nil
		case commandQuit:
			return actionNext, false, ErrCanceled
		}

		value, ok, err := parseAnswer(field, line)
		if err != nil {
			fmt.Fprintf(r.out, "! %v\n", err)
			continue
		}
		if !ok {
			return actionNext, false, nil
		}
		if err := r.pager.ChangeAnswer(field.ID, value); err != nil {
			fmt.Fprintf(r.out, "! %v\n", err)
			continue
		}
		stored := r.pager.Snapshot().Answers[field.ID]
		if field.Kind == quiz.KindMulti && stored.Len() < value.Len() {
			fmt.Fprintf(r.out, "Kept %s\n", strings.Join(stored.List(), ", "))
		}
		return actionNext, false, nil
	}
}

// parseAnswer converts a reply into a value. An empty reply keeps the
// current answer and reports ok=false.
func parseAnswer(field quiz.Field, line string) (quiz.Value, bool, error) {
	trimmed := strings.TrimSpace(line)
	if trimmed == "" {
		return quiz.Value{}, false, nil
	}
	switch field.Kind {
	case quiz.KindSingle:
		selected, err := parseSelection(trimmed, field.Options)
		if err != nil {
			return quiz.Value{}, false, err
		}
		if len(selected) != 1 {
			return quiz.Value{}, false, fmt.Errorf("choose one option")
		}
		return quiz.Text(selected[0]), true, nil
	case quiz.KindMulti:
		selected, err := parseSelection(trimmed, field.Options)
		if err != nil {
			return quiz.Value{}, false, err
		}
		return quiz.Choices(selected...), true, nil
	default:
		return quiz.Text(line), true, nil
	}
}

func (r *runner) describe(field quiz.Field, current quiz.Value) {
	fmt.Fprintln(r.out, field.Label)
	if field.Helper != "" {
		fmt.Fprintf(r.out, "  %s\n", field.Helper)
	}
	for i, option := range field.Options {
		mark := " "
		if current.Contains(option) {
			mark = "*"
		}
		fmt.Fprintf(r.out, " %s%2d) %s\n", mark, i+1, option)
	}
}

func promptLabel(field quiz.Field) string {
	var parts []string
	switch field.Kind {
	case quiz.KindSingle:
		parts = append(parts, fmt.Sprintf("choose one [1-%d]", len(field.Options)))
	case quiz.KindMulti:
		switch {
		case field.RequiredCount > 0:
			parts = append(parts, fmt.Sprintf("choose exactly %d, comma separated", field.RequiredCount))
		case field.Max > 0:
			parts = append(parts, fmt.Sprintf("choose up to %d, comma separated", field.Max))
		default:
			parts = append(parts, "choose any, comma separated")
		}
	default:
		if field.Placeholder != "" {
			parts = append(parts, field.Placeholder)
		}
		if field.MaxLength > 0 {
			parts = append(parts, fmt.Sprintf("max %d chars", field.MaxLength))
		}
	}
	if !field.Required && field.RequiredCount == 0 && field.MinSelect == 0 {
		parts = append(parts, "optional")
	}
	return "> " + strings.Join(parts, ", ")
}

// submit tries to save the answers, offering a retry when the logger fails.
func (r *runner) submit(ctx context.Context) (bool, error) {
	err := r.pager.Submit(ctx)
	if err == nil {
		fmt.Fprintln(r.out, "Thanks! Your answers were saved.")
		return true, nil
	}
	var submitErr *pager.SubmitError
	if !errors.As(err, &submitErr) {
		return false, err
	}
	fmt.Fprintf(r.out, "Couldn't save your answers: %v\n", submitErr)
	retry, promptErr := PromptYesNo(r.reader, r.out, "Try again?", true)
	if promptErr != nil {
		return false, promptErr
	}
	if !retry {
		return false, err
	}
	return r.submit(ctx)
}

// waitIdle blocks until the pager finishes its transition.
func (r *runner) waitIdle(ctx context.Context) error {
	for {
		if r.pager.Snapshot().Phase == pager.PhaseIdle {
			return nil
		}
		select {
		case <-r.changes:
		case <-ctx.Done():
			return ctx.Err()
		}
	}
}
