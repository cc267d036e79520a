package swiper

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/progress"
	"github.com/charmbracelet/bubbles/textarea"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"engage/internal/clock"
	"engage/internal/pager"
	"engage/internal/quiz"
)

// Options configures a swiper model.
type Options struct {
	Context   context.Context
	Duration  time.Duration
	Width     int
	Height    int
	Clock     clock.Clock
	Logger    pager.Logger
	AttemptID string
	NoColor   bool
	// Standalone quits the program on completion or cancellation instead of
	// emitting DoneMsg or CancelMsg to a parent model.
	Standalone bool
}

// DoneMsg reports a successful submission.
type DoneMsg struct {
	QuizID string
	Result quiz.Answers
}

// CancelMsg reports that the user left the quiz without submitting.
type CancelMsg struct {
	QuizID string
}

// ChangedMsg signals that the pager state moved.
type ChangedMsg struct {
	Snapshot pager.Snapshot
}

type submittedMsg struct {
	err    error
	result quiz.Answers
}

type resultBox struct {
	mu     sync.Mutex
	result quiz.Answers
}

func (b *resultBox) set(result quiz.Answers) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.result = result
}

func (b *resultBox) get() quiz.Answers {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.result
}

// row is one focusable line of a page: a choice option or a text field.
type row struct {
	field  quiz.Field
	option string
}

// Model hosts one pager in a Bubble Tea program.
type Model struct {
	ctx        context.Context
	pager      *pager.Pager
	bridge     *Bridge
	box        *resultBox
	snap       pager.Snapshot
	rows       []row
	focus      int
	texts      map[string]textinput.Model
	areas      map[string]textarea.Model
	help       help.Model
	progress   progress.Model
	styles     styles
	noticeText string
	pressed    bool
	submitting bool
	standalone bool

	done     bool
	canceled bool
	result   quiz.Answers
}

// New builds a pager for q and the model that drives it.
func New(q quiz.Quiz, opts Options) (Model, error) {
	ctx := opts.Context
	if ctx == nil {
		ctx = context.Background()
	}
	bridge := NewBridge(64)
	box := &resultBox{}
	p, err := pager.New(q, pager.Options{
		Duration:  opts.Duration,
		Width:     opts.Width,
		Height:    opts.Height,
		Clock:     opts.Clock,
		Logger:    opts.Logger,
		OnDone:    box.set,
		Observer:  bridge,
		AttemptID: opts.AttemptID,
	})
	if err != nil {
		return Model{}, err
	}

	m := Model{
		ctx:        ctx,
		pager:      p,
		bridge:     bridge,
		box:        box,
		texts:      map[string]textinput.Model{},
		areas:      map[string]textarea.Model{},
		help:       help.New(),
		progress:   newProgress(opts.NoColor),
		styles:     newStyles(opts.NoColor),
		standalone: opts.Standalone,
	}
	width := cardColumns(opts.Width)
	for _, page := range q.Pages {
		for _, field := range page.Fields {
			switch field.Kind {
			case quiz.KindText:
				input := textinput.New()
				input.Placeholder = field.Placeholder
				input.CharLimit = field.MaxLength
				input.Width = width - 6
				input.Prompt = "> "
				m.texts[field.ID] = input
			case quiz.KindTextarea:
				area := textarea.New()
				area.Placeholder = field.Placeholder
				area.CharLimit = field.MaxLength
				area.ShowLineNumbers = false
				area.SetWidth(width - 4)
				rows := field.Rows
				if rows <= 0 {
					rows = 4
				}
				area.SetHeight(rows)
				m.areas[field.ID] = area
			}
		}
	}
	m.snap = p.Snapshot()
	m.rows = rowsFor(m.snap.Page)
	m = m.focusRow()
	return m, nil
}

// Pager exposes the underlying state machine.
func (m Model) Pager() *pager.Pager {
	return m.pager
}

// Done reports whether the quiz was submitted, with its result.
func (m Model) Done() (quiz.Answers, bool) {
	return m.result, m.done
}

// Canceled reports whether the user left without submitting.
func (m Model) Canceled() bool {
	return m.canceled
}

// Notice returns the blocking notification, if any.
func (m Model) Notice() string {
	return m.noticeText
}

// Init waits for the first pager notification.
func (m Model) Init() tea.Cmd {
	return tea.Batch(waitForChange(m.bridge.Events()), textinput.Blink)
}

// Update handles keys, pager notifications, and submission results.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch typed := msg.(type) {
	case tea.WindowSizeMsg:
		m.help.Width = typed.Width
		return m, nil
	case ChangedMsg:
		m = m.refresh()
		return m, waitForChange(m.bridge.Events())
	case submittedMsg:
		return m.handleSubmitted(typed)
	case tea.KeyMsg:
		return m.handleKey(typed)
	}
	return m.updateInput(msg)
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	keys := m.keys()
	if m.noticeText != "" {
		if key.Matches(msg, keys.Dismiss) {
			m.noticeText = ""
		}
		return m, nil
	}
	if m.done {
		return m, nil
	}
	switch {
	case key.Matches(msg, keys.Quit):
		m.canceled = true
		m.bridge.Close()
		return m, m.finish(CancelMsg{QuizID: m.snap.QuizID})
	case key.Matches(msg, keys.Submit):
		return m.submit()
	case key.Matches(msg, keys.Next):
		if m.snap.IsLast() {
			return m.submit()
		}
		if !m.pager.GoNext() {
			m.pressed = true
		}
		return m.refresh(), nil
	case key.Matches(msg, keys.Prev):
		m.pager.GoPrev()
		return m.refresh(), nil
	case key.Matches(msg, keys.Skip):
		m.pager.Skip()
		return m.refresh(), nil
	case key.Matches(msg, keys.Up):
		if m.focus > 0 {
			m.focus--
		}
		return m.focusRow(), nil
	case key.Matches(msg, keys.Down):
		if m.focus < len(m.rows)-1 {
			m.focus++
		}
		return m.focusRow(), nil
	case key.Matches(msg, keys.Toggle):
		if current, ok := m.current(); ok && current.field.Kind.IsChoice() {
			_ = m.pager.Toggle(current.field.ID, current.option)
			return m.refresh(), nil
		}
	}
	return m.updateInput(msg)
}

// updateInput forwards msg to the focused text field and stores its value.
func (m Model) updateInput(msg tea.Msg) (tea.Model, tea.Cmd) {
	current, ok := m.current()
	if !ok || !current.field.Kind.IsText() || !m.snap.Idle() {
		return m, nil
	}
	var (
		cmd   tea.Cmd
		value string
	)
	if input, ok := m.texts[current.field.ID]; ok {
		input, cmd = input.Update(msg)
		m.texts[current.field.ID] = input
		value = input.Value()
	} else if area, ok := m.areas[current.field.ID]; ok {
		area, cmd = area.Update(msg)
		m.areas[current.field.ID] = area
		value = area.Value()
	}
	if m.snap.Answers[current.field.ID].String() != value {
		_ = m.pager.ChangeAnswer(current.field.ID, quiz.Text(value))
		m = m.refresh()
	}
	return m, cmd
}

func (m Model) submit() (tea.Model, tea.Cmd) {
	if m.submitting {
		return m, nil
	}
	snap := m.pager.Snapshot()
	if !snap.CanSubmit() {
		m.pressed = true
		return m.refresh(), nil
	}
	m.submitting = true
	return m, submitCmd(m.ctx, m.pager, m.box)
}

func (m Model) handleSubmitted(msg submittedMsg) (tea.Model, tea.Cmd) {
	m.submitting = false
	m = m.refresh()
	var submitErr *pager.SubmitError
	switch {
	case msg.err == nil:
		m.done = true
		m.result = msg.result
		m.bridge.Close()
		return m, m.finish(DoneMsg{QuizID: m.snap.QuizID, Result: msg.result})
	case errors.As(msg.err, &submitErr):
		m.noticeText = "Couldn't save your answers. Please try again.\n" + submitErr.Error()
	case errors.Is(msg.err, pager.ErrPageInvalid):
		m.pressed = true
	case errors.Is(msg.err, pager.ErrBusy):
	default:
		m.noticeText = msg.err.Error()
	}
	return m, nil
}

func (m Model) finish(msg tea.Msg) tea.Cmd {
	if m.standalone {
		return tea.Quit
	}
	return func() tea.Msg { return msg }
}

// refresh re-reads the pager and resets focus when the page changed.
func (m Model) refresh() Model {
	snap := m.pager.Snapshot()
	pageChanged := snap.Index != m.snap.Index
	m.snap = snap
	if pageChanged {
		m.rows = rowsFor(snap.Page)
		m.focus = 0
		m.pressed = false
		return m.focusRow()
	}
	return m
}

func (m Model) current() (row, bool) {
	if m.focus < 0 || m.focus >= len(m.rows) {
		return row{}, false
	}
	return m.rows[m.focus], true
}

func (m Model) keys() keyMap {
	current, ok := m.current()
	if ok && current.field.Kind.IsText() {
		return textKeys(current.field.Kind == quiz.KindTextarea)
	}
	return choiceKeys()
}

// focusRow moves keyboard focus to the text field under the cursor.
func (m Model) focusRow() Model {
	current, _ := m.current()
	for id, input := range m.texts {
		if id == current.field.ID {
			input.Focus()
		} else {
			input.Blur()
		}
		m.texts[id] = input
	}
	for id, area := range m.areas {
		if id == current.field.ID {
			area.Focus()
		} else {
			area.Blur()
		}
		m.areas[id] = area
	}
	return m
}

func rowsFor(page quiz.Page) []row {
	var rows []row
	for _, field := range page.Fields {
		if field.Kind.IsText() {
			rows = append(rows, row{field: field})
			continue
		}
		for _, option := range field.Options {
			rows = append(rows, row{field: field, option: option})
		}
	}
	return rows
}

// waitForChange blocks until the pager publishes a change.
func waitForChange(events <-chan pager.Snapshot) tea.Cmd {
	return func() tea.Msg {
		if events == nil {
			return nil
		}
		snapshot, ok := <-events
		if !ok {
			return nil
		}
		return ChangedMsg{Snapshot: snapshot}
	}
}

func submitCmd(ctx context.Context, p *pager.Pager, box *resultBox) tea.Cmd {
	return func() tea.Msg {
		err := p.Submit(ctx)
		if err != nil {
			return submittedMsg{err: err}
		}
		return submittedMsg{result: box.get()}
	}
}
