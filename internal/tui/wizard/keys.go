package wizard

import "charm.land/bubbles/v2/key"

// KeyMap holds the bindings the panel reacts to.
type KeyMap struct {
	Up      key.Binding
	Down    key.Binding
	Toggle  key.Binding
	Confirm key.Binding
	Next    key.Binding
	Back    key.Binding
	Copy    key.Binding
}

// DefaultKeyMap returns the standard bindings.
func DefaultKeyMap() KeyMap {
	return KeyMap{
		Up: key.NewBinding(
			key.WithKeys("up", "k"),
			key.WithHelp("↑↓", "naviguer"),
		),
		Down: key.NewBinding(
			key.WithKeys("down", "j"),
			key.WithHelp("↑↓", "naviguer"),
		),
		Toggle: key.NewBinding(
			key.WithKeys("space", " "),
			key.WithHelp("espace", "cocher"),
		),
		Confirm: key.NewBinding(
			key.WithKeys("enter"),
			key.WithHelp("entrée", "valider"),
		),
		Next: key.NewBinding(
			key.WithKeys("right", "tab"),
			key.WithHelp("→", "suivant"),
		),
		Back: key.NewBinding(
			key.WithKeys("left", "shift+tab"),
			key.WithHelp("←", "précédent"),
		),
		Copy: key.NewBinding(
			key.WithKeys("c"),
			key.WithHelp("c", "copier"),
		),
	}
}

func hint(b key.Binding) (string, string) {
	h := b.Help()
	return h.Key, h.Desc
}
