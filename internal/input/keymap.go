package input

import (
	"github.com/charmbracelet/bubbles/key"
)

// KeyMap is the set of bindings shared by the navigators
type KeyMap struct {
	Up        key.Binding
	Down      key.Binding
	Left      key.Binding
	Right     key.Binding
	First     key.Binding
	Last      key.Binding
	GroupPrev key.Binding
	GroupNext key.Binding
	Activate  key.Binding
	Back      key.Binding
	Help      key.Binding
	Quit      key.Binding
}

// DefaultKeyMap returns the default bindings
func DefaultKeyMap() KeyMap {
	return KeyMap{
		Up: key.NewBinding(
			key.WithKeys("up"),
			key.WithHelp("up", "previous item"),
		),
		Down: key.NewBinding(
			key.WithKeys("down"),
			key.WithHelp("down", "next item"),
		),
		Left: key.NewBinding(
			key.WithKeys("left"),
			key.WithHelp("left", "previous column or go back"),
		),
		Right: key.NewBinding(
			key.WithKeys("right"),
			key.WithHelp("right", "next column or open"),
		),
		First: key.NewBinding(
			key.WithKeys("home"),
			key.WithHelp("home", "first item"),
		),
		Last: key.NewBinding(
			key.WithKeys("end"),
			key.WithHelp("end", "last item"),
		),
		GroupPrev: key.NewBinding(
			key.WithKeys("ctrl+up"),
			key.WithHelp("ctrl+up", "previous group"),
		),
		GroupNext: key.NewBinding(
			key.WithKeys("ctrl+down"),
			key.WithHelp("ctrl+down", "next group"),
		),
		Activate: key.NewBinding(
			key.WithKeys("enter"),
			key.WithHelp("enter", "activate"),
		),
		Back: key.NewBinding(
			key.WithKeys("esc"),
			key.WithHelp("esc", "go back"),
		),
		Help: key.NewBinding(
			key.WithKeys("?", "f1"),
			key.WithHelp("?", "help"),
		),
		Quit: key.NewBinding(
			key.WithKeys("ctrl+c"),
			key.WithHelp("ctrl+c", "quit"),
		),
	}
}

// Matches reports whether k triggers any of the enabled bindings
func Matches(k Key, bindings ...key.Binding) bool {
	name := k.String()
	if name == "" {
		return false
	}
	for _, b := range bindings {
		if !b.Enabled() {
			continue
		}
		for _, bk := range b.Keys() {
			if bk == name {
				return true
			}
		}
	}
	return false
}

// WithDescription returns a copy of b whose help text says desc
func WithDescription(b key.Binding, desc string) key.Binding {
	b.SetHelp(b.Help().Key, desc)
	return b
}

// Entries turns bindings into help entries, skipping disabled ones and
// bindings without help text
func Entries(bindings ...key.Binding) []HelpEntry {
	out := make([]HelpEntry, 0, len(bindings))
	for _, b := range bindings {
		if !b.Enabled() || b.Help().Key == "" {
			continue
		}
		out = append(out, HelpEntry{Key: b.Help().Key, Description: b.Help().Desc})
	}
	return out
}

// Bindings turns help entries back into display-only bindings, for
// rendering with bubbles/help
func Bindings(entries []HelpEntry) []key.Binding {
	out := make([]key.Binding, 0, len(entries))
	for _, e := range entries {
		out = append(out, key.NewBinding(key.WithKeys(e.Key), key.WithHelp(e.Key, e.Description)))
	}
	return out
}

// TypeAheadEntry describes type-ahead search for help surfaces
func TypeAheadEntry() HelpEntry {
	return HelpEntry{Key: "letters", Description: "type-ahead search"}
}
