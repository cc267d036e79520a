package home

import (
	"fmt"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/list"
	"github.com/charmbracelet/bubbles/progress"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"engage/internal/catalog"
	"engage/internal/quiz"
	"engage/internal/ui/swiper"
)

// view selects which screen is rendered.
type view int

const (
	viewHome view = iota
	viewAdditional
	viewQuiz
)

func (v view) String() string {
	switch v {
	case viewHome:
		return "home"
	case viewAdditional:
		return "additional"
	case viewQuiz:
		return "quiz"
	}
	return fmt.Sprintf("view(%d)", int(v))
}

// Options configures the home screen.
type Options struct {
	Catalog *catalog.Catalog
	// Swiper is the template used for each quiz launched from the menus.
	Swiper  swiper.Options
	NoColor bool
}

// Model routes between the home menu, the Additional information submenu,
// and a running quiz.
type Model struct {
	catalog  *catalog.Catalog
	opts     swiper.Options
	view     view
	back     view
	home     list.Model
	extra    list.Model
	quiz     swiper.Model
	active   string
	results  map[string]quiz.Answers
	progress progress.Model
	titles   map[string]string
	errText  string
	noColor  bool
	enter    key.Binding
	escape   key.Binding
	quit     key.Binding
}

// New builds the home screen over the quizzes in opts.Catalog.
func New(opts Options) (Model, error) {
	if opts.Catalog == nil {
		return Model{}, fmt.Errorf("home: catalog is required")
	}
	titles := map[string]string{}
	for _, id := range append([]string{lifestyleQuiz}, additionalQuizzes...) {
		q, ok := opts.Catalog.Get(id)
		if !ok {
			return Model{}, fmt.Errorf("home: quiz %q not found", id)
		}
		titles[id] = q.Title
	}
	swiperOpts := opts.Swiper
	swiperOpts.Standalone = false
	swiperOpts.NoColor = opts.NoColor

	m := Model{
		catalog: opts.Catalog,
		opts:    swiperOpts,
		view:    viewHome,
		results: map[string]quiz.Answers{},
		titles:  titles,
		noColor: opts.NoColor,
		enter:   key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "choose")),
		escape:  key.NewBinding(key.WithKeys("esc", "backspace"), key.WithHelp("esc", "back")),
		quit:    key.NewBinding(key.WithKeys("q", "ctrl+c"), key.WithHelp("q", "quit")),
	}
	m.home = newList("Welcome", homeItems())
	m.extra = newList("Additional Information", additionalItems(nil, titles))
	if opts.NoColor {
		m.progress = progress.New(progress.WithFillCharacters('#', '.'), progress.WithSolidFill("7"))
	} else {
		m.progress = progress.New(progress.WithDefaultGradient())
	}
	return m, nil
}

func newList(title string, items []list.Item) list.Model {
	l := list.New(items, list.NewDefaultDelegate(), 48, 16)
	l.Title = title
	l.SetShowStatusBar(false)
	l.SetFilteringEnabled(false)
	l.DisableQuitKeybindings()
	return l
}

// Results returns the answers handed back by completed quizzes.
func (m Model) Results() map[string]quiz.Answers {
	return m.results
}

// Completion returns the fraction of Additional information sections done.
func (m Model) Completion() float64 {
	done := 0
	for _, id := range additionalQuizzes {
		if _, ok := m.results[id]; ok {
			done++
		}
	}
	return float64(done) / float64(len(additionalQuizzes))
}

// Init implements tea.Model.
func (m Model) Init() tea.Cmd {
	return nil
}

// Update routes messages to the active screen.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch typed := msg.(type) {
	case tea.WindowSizeMsg:
		m.home.SetSize(typed.Width, typed.Height-4)
		m.extra.SetSize(typed.Width, typed.Height-6)
		m.progress.Width = min(typed.Width-4, 48)
	case swiper.DoneMsg:
		if typed.Result == nil {
			typed.Result = quiz.Answers{}
		}
		m.results[typed.QuizID] = typed.Result
		m.extra.SetItems(additionalItems(m.completed(), m.titles))
		m.view = m.back
		return m, nil
	case swiper.CancelMsg:
		m.view = m.back
		return m, nil
	}

	switch m.view {
	case viewQuiz:
		next, cmd := m.quiz.Update(msg)
		m.quiz = next.(swiper.Model)
		return m, cmd
	default:
		return m.updateMenu(msg)
	}
}

// updateMenu handles the menu of the active view. menu points into the copy
// that is returned, so list updates survive.
func (m Model) updateMenu(msg tea.Msg) (tea.Model, tea.Cmd) {
	menu := &m.home
	if m.view == viewAdditional {
		menu = &m.extra
	}
	if keyMsg, ok := msg.(tea.KeyMsg); ok {
		switch {
		case key.Matches(keyMsg, m.quit):
			return m, tea.Quit
		case key.Matches(keyMsg, m.escape) && m.view == viewAdditional:
			m.view = viewHome
			return m, nil
		case key.Matches(keyMsg, m.enter):
			selected, ok := menu.SelectedItem().(item)
			if !ok {
				return m, nil
			}
			return m.choose(selected.id)
		}
	}
	if _, ok := msg.(swiper.ChangedMsg); ok {
		return m, nil
	}
	updated, cmd := menu.Update(msg)
	*menu = updated
	return m, cmd
}

func (m Model) choose(id string) (tea.Model, tea.Cmd) {
	switch id {
	case actionQuit:
		return m, tea.Quit
	case actionAdditional:
		m.view = viewAdditional
		return m, nil
	case actionBack:
		m.view = viewHome
		return m, nil
	}
	q, ok := m.catalog.Get(id)
	if !ok {
		m.errText = fmt.Sprintf("quiz %q not found", id)
		return m, nil
	}
	model, err := swiper.New(q, m.opts)
	if err != nil {
		m.errText = err.Error()
		return m, nil
	}
	m.errText = ""
	m.back = m.view
	m.view = viewQuiz
	m.active = id
	m.quiz = model
	return m, model.Init()
}

func (m Model) completed() map[string]bool {
	out := make(map[string]bool, len(m.results))
	for id := range m.results {
		out[id] = true
	}
	return out
}

// View renders the active screen.
func (m Model) View() string {
	var body string
	switch m.view {
	case viewQuiz:
		return m.quiz.View()
	case viewAdditional:
		done := 0
		for _, id := range additionalQuizzes {
			if _, ok := m.results[id]; ok {
				done++
			}
		}
		caption := fmt.Sprintf("%d of %d sections complete", done, len(additionalQuizzes))
		body = lipgloss.JoinVertical(lipgloss.Left, m.extra.View(), m.progress.ViewAs(m.Completion()), caption)
	default:
		body = m.home.View()
	}
	if m.errText != "" {
		style := lipgloss.NewStyle()
		if !m.noColor {
			style = style.Foreground(lipgloss.Color("196"))
		}
		body = lipgloss.JoinVertical(lipgloss.Left, body, style.Render(m.errText))
	}
	return body
}
