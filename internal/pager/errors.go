package pager

import (
	"errors"
	"fmt"
)

var (
	// ErrNoCompletion indicates a pager built without a completion callback.
	ErrNoCompletion = errors.New("pager: completion callback is required")
	// ErrNegativeDuration indicates a negative transition duration.
	ErrNegativeDuration = errors.New("pager: transition duration must not be negative")
	// ErrUnknownField indicates an answer for a field the quiz does not define.
	ErrUnknownField = errors.New("unknown field")
	// ErrBusy indicates a transition or submission is in flight.
	ErrBusy = errors.New("transition or submission in progress")
	// ErrNotLastPage indicates a submit attempt before the final page.
	ErrNotLastPage = errors.New("submit is only available on the last page")
	// ErrPageInvalid indicates the final page does not satisfy its constraints.
	ErrPageInvalid = errors.New("page constraints are not met")
	// ErrCompleted indicates the quiz was already submitted.
	ErrCompleted = errors.New("quiz already submitted")
)

// SubmitError reports a logging failure for one section.
type SubmitError struct {
	Section string
	Err     error
}

func (e *SubmitError) Error() string {
	return fmt.Sprintf("save %s: %v", e.Section, e.Err)
}

func (e *SubmitError) Unwrap() error {
	return e.Err
}
