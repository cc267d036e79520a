package swiper

import "github.com/charmbracelet/bubbles/key"

// keyMap lists the bindings active for the focused row. Text rows drop the
// printable shortcuts so they can be typed.
type keyMap struct {
	Prev    key.Binding
	Next    key.Binding
	Skip    key.Binding
	Submit  key.Binding
	Up      key.Binding
	Down    key.Binding
	Toggle  key.Binding
	Quit    key.Binding
	Dismiss key.Binding
}

func choiceKeys() keyMap {
	return keyMap{
		Prev:    key.NewBinding(key.WithKeys("left", "h", "pgup", "ctrl+p"), key.WithHelp("←/h", "back")),
		Next:    key.NewBinding(key.WithKeys("right", "l", "pgdown", "ctrl+n"), key.WithHelp("→/l", "next")),
		Skip:    key.NewBinding(key.WithKeys("tab"), key.WithHelp("tab", "skip")),
		Submit:  key.NewBinding(key.WithKeys("ctrl+s"), key.WithHelp("ctrl+s", "submit")),
		Up:      key.NewBinding(key.WithKeys("up", "k", "shift+tab"), key.WithHelp("↑/k", "up")),
		Down:    key.NewBinding(key.WithKeys("down", "j"), key.WithHelp("↓/j", "down")),
		Toggle:  key.NewBinding(key.WithKeys(" ", "enter", "x"), key.WithHelp("space", "select")),
		Quit:    key.NewBinding(key.WithKeys("esc", "ctrl+c", "q"), key.WithHelp("esc", "leave")),
		Dismiss: key.NewBinding(key.WithKeys("enter", "esc", " "), key.WithHelp("enter", "dismiss")),
	}
}

func textKeys(multiline bool) keyMap {
	keys := choiceKeys()
	keys.Prev = key.NewBinding(key.WithKeys("pgup", "ctrl+p"), key.WithHelp("pgup", "back"))
	next := []string{"pgdown", "ctrl+n"}
	if !multiline {
		next = append(next, "enter")
	}
	keys.Next = key.NewBinding(key.WithKeys(next...), key.WithHelp("pgdn", "next"))
	keys.Up = key.NewBinding(key.WithKeys("up", "shift+tab"), key.WithHelp("↑", "up"))
	keys.Down = key.NewBinding(key.WithKeys("down"), key.WithHelp("↓", "down"))
	keys.Toggle.SetEnabled(false)
	keys.Quit = key.NewBinding(key.WithKeys("esc", "ctrl+c"), key.WithHelp("esc", "leave"))
	return keys
}

// ShortHelp implements help.KeyMap.
func (k keyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Prev, k.Next, k.Skip, k.Toggle, k.Quit}
}

// FullHelp implements help.KeyMap.
func (k keyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Prev, k.Next, k.Skip, k.Submit},
		{k.Up, k.Down, k.Toggle, k.Quit},
	}
}
