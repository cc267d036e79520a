package pager

import (
	"time"

	"engage/internal/quiz"
)

// Snapshot is a read-only view of the pager for renderers.
type Snapshot struct {
	QuizID     string
	Title      string
	AttemptID  string
	Index      int
	Total      int
	Page       quiz.Page
	Phase      Phase
	Direction  Direction
	Answers    quiz.Answers
	Valid      bool
	Hints      []quiz.Hint
	Progress   float64
	Submitting bool
	Completed  bool
	Err        error
	Width      int
	Height     int
	Duration   time.Duration
}

// Snapshot returns the current state.
func (p *Pager) Snapshot() Snapshot {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.snapshotLocked()
}

func (p *Pager) snapshotLocked() Snapshot {
	page := p.quiz.Pages[p.index]
	return Snapshot{
		QuizID:     p.quiz.ID,
		Title:      p.quiz.Title,
		AttemptID:  p.attemptID,
		Index:      p.index,
		Total:      len(p.quiz.Pages),
		Page:       page,
		Phase:      p.phase,
		Direction:  p.direction,
		Answers:    p.answers.Clone(),
		Valid:      quiz.IsPageValid(page, p.answers),
		Hints:      quiz.PageHints(page, p.answers),
		Progress:   quiz.Progress(p.index, len(p.quiz.Pages)),
		Submitting: p.submitting,
		Completed:  p.completed,
		Err:        p.lastErr,
		Width:      p.width,
		Height:     p.height,
		Duration:   p.duration,
	}
}

// IsFirst reports whether the first page is showing.
func (s Snapshot) IsFirst() bool {
	return s.Index == 0
}

// IsLast reports whether the final page is showing.
func (s Snapshot) IsLast() bool {
	return s.Index == s.Total-1
}

// Idle reports whether no transition or submission is in flight.
func (s Snapshot) Idle() bool {
	return s.Phase == PhaseIdle && !s.Submitting && !s.Completed
}

// CanGoNext mirrors the checks GoNext applies.
func (s Snapshot) CanGoNext() bool {
	return s.Idle() && !s.IsLast() && s.Valid
}

// CanSkip mirrors the checks Skip applies.
func (s Snapshot) CanSkip() bool {
	return s.Idle() && !s.IsLast() && s.Page.Skippable
}

// CanGoPrev mirrors the checks GoPrev applies.
func (s Snapshot) CanGoPrev() bool {
	return s.Idle() && !s.IsFirst()
}

// CanSubmit mirrors the checks Submit applies.
func (s Snapshot) CanSubmit() bool {
	return s.Idle() && s.IsLast() && s.Valid
}
