package home

import "github.com/charmbracelet/bubbles/list"

// Menu actions that do not open a quiz.
const (
	actionAdditional = "additional"
	actionBack       = "back"
	actionQuit       = "quit"
)

// lifestyleQuiz is opened from the home menu; the rest live under Additional information.
const lifestyleQuiz = "lifestyle"

// additionalQuizzes are the sections tracked by the Additional information progress bar.
var additionalQuizzes = []string{"personality", "interests", "location"}

type item struct {
	id    string
	title string
	desc  string
}

func (i item) Title() string       { return i.title }
func (i item) Description() string { return i.desc }
func (i item) FilterValue() string { return i.title }

func homeItems() []list.Item {
	return []list.Item{
		item{id: lifestyleQuiz, title: "Lifestyle", desc: "Let us learn more about your week"},
		item{id: actionAdditional, title: "Additional information", desc: "Personality, interests and location"},
		item{id: actionQuit, title: "Quit", desc: "Leave engage"},
	}
}

func additionalItems(results map[string]bool, titles map[string]string) []list.Item {
	items := make([]list.Item, 0, len(additionalQuizzes)+1)
	for _, id := range additionalQuizzes {
		desc := "Not started"
		if results[id] {
			desc = "✓ Completed"
		}
		title := titles[id]
		if title == "" {
			title = id
		}
		items = append(items, item{id: id, title: title, desc: desc})
	}
	items = append(items, item{id: actionBack, title: "← Back to Home", desc: ""})
	return items
}
