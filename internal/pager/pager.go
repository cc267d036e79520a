package pager

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"

	"engage/internal/clock"
	"engage/internal/quiz"
)

// Phase is the transition state of the pager.
type Phase string

const (
	PhaseIdle     Phase = "idle"
	PhaseExiting  Phase = "exiting"
	PhaseEntering Phase = "entering"
)

// Direction is the direction of the current or last transition.
type Direction string

const (
	Forward  Direction = "forward"
	Backward Direction = "backward"
)

// DefaultDuration is the length of each transition phase.
const DefaultDuration = 320 * time.Millisecond

// Options configures a Pager.
type Options struct {
	// Duration of each of the exiting and entering phases. Zero uses DefaultDuration.
	Duration time.Duration
	// Width and Height are host sizing hints passed through to snapshots.
	Width  int
	Height int
	// Clock schedules transitions. Defaults to the real clock.
	Clock clock.Clock
	// Logger receives submitted sections. Defaults to DefaultLogger.
	Logger Logger
	// OnDone is required and receives the projected answers after a successful submit.
	OnDone Completion
	// Observer is notified after each state change.
	Observer Observer
	// AttemptID identifies this pass through the quiz. Defaults to a random UUID.
	AttemptID string
}

// Pager walks a quiz page by page, collecting and validating answers.
type Pager struct {
	quiz      quiz.Quiz
	duration  time.Duration
	width     int
	height    int
	clock     clock.Clock
	logger    Logger
	onDone    Completion
	observer  Observer
	attemptID string

	mu         sync.Mutex
	index      int
	target     int
	phase      Phase
	direction  Direction
	answers    quiz.Answers
	submitting bool
	completed  bool
	lastErr    error
}

// New validates q and builds a pager positioned on its first page.
func New(q quiz.Quiz, opts Options) (*Pager, error) {
	if err := quiz.Validate(q); err != nil {
		return nil, err
	}
	if opts.OnDone == nil {
		return nil, ErrNoCompletion
	}
	if opts.Duration < 0 {
		return nil, ErrNegativeDuration
	}
	duration := opts.Duration
	if duration == 0 {
		duration = DefaultDuration
	}
	clk := opts.Clock
	if clk == nil {
		clk = clock.Real()
	}
	logger := opts.Logger
	if logger == nil {
		logger = DefaultLogger()
	}
	attemptID := opts.AttemptID
	if attemptID == "" {
		attemptID = uuid.NewString()
	}
	return &Pager{
		quiz:      q,
		duration:  duration,
		width:     opts.Width,
		height:    opts.Height,
		clock:     clk,
		logger:    logger,
		onDone:    opts.OnDone,
		observer:  opts.Observer,
		attemptID: attemptID,
		phase:     PhaseIdle,
		direction: Forward,
		answers:   quiz.Answers{},
	}, nil
}

// Quiz returns the quiz definition.
func (p *Pager) Quiz() quiz.Quiz {
	return p.quiz
}

// AttemptID returns the identifier attached to logged entries.
func (p *Pager) AttemptID() string {
	return p.attemptID
}

// ChangeAnswer normalizes and stores value for fieldID. It never navigates.
// Answers are frozen while a submission is in flight (ErrBusy) and after it
// succeeds (ErrCompleted).
func (p *Pager) ChangeAnswer(fieldID string, value quiz.Value) error {
	return p.update(fieldID, func(quiz.Field, quiz.Value) quiz.Value { return value })
}

// Toggle flips option on a multi field, or selects it on a single field.
func (p *Pager) Toggle(fieldID, option string) error {
	return p.update(fieldID, func(field quiz.Field, current quiz.Value) quiz.Value {
		return quiz.Toggle(field, current, option)
	})
}

func (p *Pager) update(fieldID string, next func(quiz.Field, quiz.Value) quiz.Value) error {
	field, ok := p.quiz.Field(fieldID)
	if !ok {
		return fmt.Errorf("%w %q", ErrUnknownField, fieldID)
	}
	p.mu.Lock()
	switch {
	case p.completed:
		p.mu.Unlock()
		return ErrCompleted
	case p.submitting:
		p.mu.Unlock()
		return ErrBusy
	}
	normalized, err := quiz.NormalizeValue(field, next(field, p.answers[fieldID]))
	if err != nil {
		p.mu.Unlock()
		return err
	}
	p.answers[fieldID] = normalized
	snapshot := p.snapshotLocked()
	p.mu.Unlock()
	p.notify(snapshot)
	return nil
}

// IsPageValid reports whether the current page satisfies its constraints.
func (p *Pager) IsPageValid() bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	return quiz.IsPageValid(p.quiz.Pages[p.index], p.answers)
}

// GoNext starts a forward transition. It is rejected while a transition or
// submission is in flight, on the last page, and when the page is invalid.
func (p *Pager) GoNext() bool {
	return p.advance(false)
}

// Skip starts a forward transition without validation when the current page
// is skippable.
func (p *Pager) Skip() bool {
	return p.advance(true)
}

func (p *Pager) advance(skip bool) bool {
	p.mu.Lock()
	page := p.quiz.Pages[p.index]
	allowed := p.navigableLocked() && p.index < len(p.quiz.Pages)-1
	if allowed && skip {
		allowed = page.Skippable
	} else if allowed {
		allowed = quiz.IsPageValid(page, p.answers)
	}
	if !allowed {
		p.mu.Unlock()
		return false
	}
	p.beginLocked(Forward, p.index+1)
	snapshot := p.snapshotLocked()
	p.mu.Unlock()
	p.notify(snapshot)
	return true
}

// GoPrev starts a backward transition. It is rejected while a transition or
// submission is in flight and on the first page.
func (p *Pager) GoPrev() bool {
	p.mu.Lock()
	if !p.navigableLocked() || p.index == 0 {
		p.mu.Unlock()
		return false
	}
	p.beginLocked(Backward, p.index-1)
	snapshot := p.snapshotLocked()
	p.mu.Unlock()
	p.notify(snapshot)
	return true
}

func (p *Pager) navigableLocked() bool {
	return p.phase == PhaseIdle && !p.submitting && !p.completed
}

// beginLocked enters the exiting phase and schedules the index change.
func (p *Pager) beginLocked(direction Direction, next int) {
	total := len(p.quiz.Pages)
	p.direction = direction
	p.target = (next + total) % total
	p.phase = PhaseExiting
	p.clock.AfterFunc(p.duration, p.enter)
}

func (p *Pager) enter() {
	p.mu.Lock()
	p.index = p.target
	p.phase = PhaseEntering
	p.clock.AfterFunc(p.duration, p.settle)
	snapshot := p.snapshotLocked()
	p.mu.Unlock()
	p.notify(snapshot)
}

func (p *Pager) settle() {
	p.mu.Lock()
	p.phase = PhaseIdle
	snapshot := p.snapshotLocked()
	p.mu.Unlock()
	p.notify(snapshot)
}

// Submit re-validates the final page, logs each configured section in order,
// and invokes the completion callback. A logging failure is returned as a
// *SubmitError and leaves the pager on the final page so the user can retry.
func (p *Pager) Submit(ctx context.Context) error {
	p.mu.Lock()
	switch {
	case p.completed:
		p.mu.Unlock()
		return ErrCompleted
	case p.phase != PhaseIdle || p.submitting:
		p.mu.Unlock()
		return ErrBusy
	case p.index != len(p.quiz.Pages)-1:
		p.mu.Unlock()
		return ErrNotLastPage
	case !quiz.IsPageValid(p.quiz.Pages[p.index], p.answers):
		p.mu.Unlock()
		return ErrPageInvalid
	}
	p.submitting = true
	p.lastErr = nil
	answers := p.answers.Clone()
	snapshot := p.snapshotLocked()
	p.mu.Unlock()
	p.notify(snapshot)

	err := p.logSections(ctx, answers)

	p.mu.Lock()
	p.submitting = false
	p.lastErr = err
	p.completed = err == nil
	snapshot = p.snapshotLocked()
	p.mu.Unlock()
	p.notify(snapshot)

	if err != nil {
		return err
	}
	p.onDone(quiz.ResultFor(p.quiz, answers))
	return nil
}

func (p *Pager) logSections(ctx context.Context, answers quiz.Answers) error {
	for _, section := range quiz.Sections(p.quiz, answers) {
		entry := Entry{
			AttemptID: p.attemptID,
			QuizID:    p.quiz.ID,
			Section:   section.Key,
			Payload:   section.Payload,
			At:        p.clock.Now(),
		}
		if err := p.logger.Log(ctx, entry); err != nil {
			return &SubmitError{Section: section.Key, Err: err}
		}
	}
	return nil
}

func (p *Pager) notify(snapshot Snapshot) {
	if p.observer != nil {
		p.observer.OnChange(snapshot)
	}
}
