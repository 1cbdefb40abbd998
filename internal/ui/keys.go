package ui

import (
	"strings"

	"github.com/charmbracelet/bubbles/key"
)

type keyMap struct {
	Prev      key.Binding
	Next      key.Binding
	Up        key.Binding
	Down      key.Binding
	PageUp    key.Binding
	PageDown  key.Binding
	Home      key.Binding
	End       key.Binding
	Focus     key.Binding
	FocusBack key.Binding
	Activate  key.Binding
	Reload    key.Binding
	Preview   key.Binding
	Back      key.Binding
	Quit      key.Binding
	Status    []key.Binding
}

func newKeyMap(popupKey string) keyMap {
	k := keyMap{
		Prev:      key.NewBinding(key.WithKeys("left"), key.WithHelp("←", "prev cluster")),
		Next:      key.NewBinding(key.WithKeys("right"), key.WithHelp("→", "next cluster")),
		Up:        key.NewBinding(key.WithKeys("up"), key.WithHelp("↑", "up")),
		Down:      key.NewBinding(key.WithKeys("down"), key.WithHelp("↓", "down")),
		PageUp:    key.NewBinding(key.WithKeys("pgup"), key.WithHelp("pgup", "page up")),
		PageDown:  key.NewBinding(key.WithKeys("pgdown"), key.WithHelp("pgdn", "page down")),
		Home:      key.NewBinding(key.WithKeys("home"), key.WithHelp("home", "first")),
		End:       key.NewBinding(key.WithKeys("end"), key.WithHelp("end", "last")),
		Focus:     key.NewBinding(key.WithKeys("tab"), key.WithHelp("tab", "pane")),
		FocusBack: key.NewBinding(key.WithKeys("shift+tab"), key.WithHelp("shift+tab", "prev pane")),
		Activate:  key.NewBinding(key.WithKeys("enter", " "), key.WithHelp("enter", "toggle/select")),
		Reload:    key.NewBinding(key.WithKeys("ctrl+r"), key.WithHelp("ctrl+r", "reload")),
		Preview:   key.NewBinding(key.WithKeys(popupKey), key.WithHelp(popupKey, "preview")),
		Back:      key.NewBinding(key.WithKeys("esc"), key.WithHelp("esc", "clear/quit")),
		Quit:      key.NewBinding(key.WithKeys("ctrl+c"), key.WithHelp("ctrl+c", "save & quit")),
	}
	for _, name := range []string{"f1", "f2", "f3", "f4"} {
		k.Status = append(k.Status, key.NewBinding(key.WithKeys(name), key.WithHelp(name, "status")))
	}
	return k
}

// statusIndex returns the button index bound to the key, or -1.
func (k keyMap) statusIndex(msg string) int {
	for i, binding := range k.Status {
		for _, name := range binding.Keys() {
			if name == msg {
				return i
			}
		}
	}
	return -1
}

func (k keyMap) footer() string {
	bindings := []key.Binding{k.Prev, k.Next, k.Focus, k.Activate, k.Preview, k.Quit}
	parts := make([]string, 0, len(bindings)+1)
	for _, b := range bindings {
		h := b.Help()
		parts = append(parts, h.Key+" "+h.Desc)
	}
	parts = append(parts, "f1-f4 status")
	return strings.Join(parts, "  ")
}
