package swiper

import (
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/charmbracelet/bubbles/progress"
	"github.com/charmbracelet/lipgloss"

	"engage/internal/pager"
	"engage/internal/quiz"
)

// slideOffset is the column shift applied while a page slides out or in.
const slideOffset = 4

type styles struct {
	title    lipgloss.Style
	faint    lipgloss.Style
	focused  lipgloss.Style
	selected lipgloss.Style
	warn     lipgloss.Style
	card     lipgloss.Style
	notice   lipgloss.Style
	action   lipgloss.Style
}

func newStyles(noColor bool) styles {
	s := styles{
		title:    lipgloss.NewStyle().Bold(true),
		faint:    lipgloss.NewStyle().Faint(true),
		focused:  lipgloss.NewStyle().Bold(true),
		selected: lipgloss.NewStyle(),
		warn:     lipgloss.NewStyle(),
		card:     lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).Padding(0, 1),
		notice:   lipgloss.NewStyle().Border(lipgloss.DoubleBorder()).Padding(1, 2),
		action:   lipgloss.NewStyle(),
	}
	if noColor {
		return s
	}
	s.title = s.title.Foreground(lipgloss.Color("33"))
	s.focused = s.focused.Foreground(lipgloss.Color("39"))
	s.selected = s.selected.Foreground(lipgloss.Color("42"))
	s.warn = s.warn.Foreground(lipgloss.Color("220"))
	s.card = s.card.BorderForeground(lipgloss.Color("240"))
	s.notice = s.notice.BorderForeground(lipgloss.Color("196"))
	s.action = s.action.Foreground(lipgloss.Color("252"))
	return s
}

func newProgress(noColor bool) progress.Model {
	if noColor {
		return progress.New(progress.WithFillCharacters('#', '.'), progress.WithSolidFill("7"))
	}
	return progress.New(progress.WithDefaultGradient())
}

// cardColumns converts the pixel width hint into terminal columns.
func cardColumns(width int) int {
	if width <= 0 {
		width = 360
	}
	cols := width / 8
	if cols < 30 {
		cols = 30
	}
	return cols
}

// cardRows converts the pixel height hint into terminal rows.
func cardRows(height int) int {
	if height <= 0 {
		height = 560
	}
	rows := height / 16
	if rows < 12 {
		rows = 12
	}
	return rows
}

// View renders the current page, its hints, and the action bar.
func (m Model) View() string {
	if m.noticeText != "" {
		return m.styles.notice.Render(m.noticeText + "\n\n" + m.styles.faint.Render("press enter to dismiss"))
	}
	snap := m.snap
	width := cardColumns(snap.Width)
	m.progress.Width = width

	header := m.styles.title.Render(snap.Title) + m.styles.faint.Render(fmt.Sprintf("  page %d/%d", snap.Index+1, snap.Total))
	bar := m.progress.ViewAs(snap.Progress / 100)

	card := m.styles.card.Width(width).MaxHeight(cardRows(snap.Height)).Render(m.renderPage())
	card = lipgloss.NewStyle().MarginLeft(slideMargin(snap)).Render(card)
	if snap.Phase != pager.PhaseIdle {
		card = m.styles.faint.Render(card)
	}

	parts := []string{header, bar, card}
	if hints := m.renderHints(); hints != "" {
		parts = append(parts, hints)
	}
	parts = append(parts, m.renderActions(), m.help.View(m.keys()))
	return lipgloss.JoinVertical(lipgloss.Left, parts...)
}

// slideMargin returns the left margin for the card. A forward move slides the
// old page left and brings the new one in from the right.
func slideMargin(snap pager.Snapshot) int {
	switch {
	case snap.Phase == pager.PhaseExiting && snap.Direction == pager.Forward,
		snap.Phase == pager.PhaseEntering && snap.Direction == pager.Backward:
		return 0
	case snap.Phase == pager.PhaseExiting && snap.Direction == pager.Backward,
		snap.Phase == pager.PhaseEntering && snap.Direction == pager.Forward:
		return slideOffset * 2
	default:
		return slideOffset
	}
}

func (m Model) renderPage() string {
	snap := m.snap
	lines := []string{m.styles.title.Render(snap.Page.Title), ""}
	index := 0
	for _, field := range snap.Page.Fields {
		lines = append(lines, m.styles.action.Render(field.Label)+m.styles.faint.Render(constraintLabel(field)))
		value := snap.Answers[field.ID]
		if field.Kind.IsText() {
			focused := index == m.focus
			lines = append(lines, m.renderText(field, value, focused))
			index++
		} else {
			for _, option := range field.Options {
				lines = append(lines, m.renderOption(field, option, value, index == m.focus))
				index++
			}
		}
		lines = append(lines, "")
	}
	return strings.Join(lines, "\n")
}

func (m Model) renderOption(field quiz.Field, option string, value quiz.Value, focused bool) string {
	cursor := "  "
	if focused {
		cursor = "› "
	}
	var mark string
	chosen := value.Contains(option)
	switch {
	case field.Kind == quiz.KindMulti && chosen:
		mark = "[x] "
	case field.Kind == quiz.KindMulti:
		mark = "[ ] "
	case chosen:
		mark = "(•) "
	default:
		mark = "( ) "
	}
	line := cursor + mark + option
	switch {
	case focused:
		return m.styles.focused.Render(line)
	case chosen:
		return m.styles.selected.Render(line)
	}
	return line
}

func (m Model) renderText(field quiz.Field, value quiz.Value, focused bool) string {
	var view string
	if input, ok := m.texts[field.ID]; ok {
		view = input.View()
	} else if area, ok := m.areas[field.ID]; ok {
		view = area.View()
	}
	if field.MaxLength > 0 {
		view += "\n" + m.styles.faint.Render(fmt.Sprintf("%d/%d", utf8.RuneCountInString(value.String()), field.MaxLength))
	}
	if field.Helper != "" {
		view += "\n" + m.styles.faint.Render(field.Helper)
	}
	if focused {
		return m.styles.focused.Render("›") + " " + view
	}
	return "  " + view
}

// constraintLabel summarizes a field's selection rule.
func constraintLabel(field quiz.Field) string {
	switch {
	case field.RequiredCount > 0:
		return fmt.Sprintf("  (pick %d)", field.RequiredCount)
	case field.Kind == quiz.KindMulti && field.Max > 0:
		return fmt.Sprintf("  (up to %d)", field.Max)
	case field.Required:
		return "  *"
	}
	return ""
}

func (m Model) renderHints() string {
	if m.snap.Valid || len(m.snap.Hints) == 0 {
		return ""
	}
	style := m.styles.faint
	if m.pressed {
		style = m.styles.warn
	}
	lines := make([]string, 0, len(m.snap.Hints))
	for _, hint := range m.snap.Hints {
		label := hint.FieldID
		if field, ok := m.pager.Quiz().Field(hint.FieldID); ok && field.Label != "" {
			label = field.Label
		}
		lines = append(lines, style.Render("• "+label+": "+hint.Message))
	}
	return strings.Join(lines, "\n")
}

// renderActions draws the navigation affordances, dimming disabled ones.
func (m Model) renderActions() string {
	snap := m.snap
	actions := []struct {
		label   string
		enabled bool
		show    bool
	}{
		{"← Back", snap.CanGoPrev(), !snap.IsFirst()},
		{"Skip", snap.CanSkip(), snap.Page.Skippable && !snap.IsLast()},
		{"Next →", snap.CanGoNext(), !snap.IsLast()},
		{m.submitLabel(), snap.CanSubmit() && !m.submitting, snap.IsLast()},
	}
	parts := make([]string, 0, len(actions))
	for _, action := range actions {
		if !action.show {
			continue
		}
		text := "[ " + action.label + " ]"
		if action.enabled {
			parts = append(parts, m.styles.action.Render(text))
		} else {
			parts = append(parts, m.styles.faint.Render(text))
		}
	}
	return strings.Join(parts, " ")
}

func (m Model) submitLabel() string {
	if m.submitting || m.snap.Submitting {
		return "Saving…"
	}
	return "Submit"
}
