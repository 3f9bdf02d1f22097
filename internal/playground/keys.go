package playground

import "github.com/charmbracelet/bubbles/key"

// KeyBindings defines the keyboard shortcuts for the playground.
type KeyBindings struct {
	Quit   key.Binding
	Cancel key.Binding
	Submit key.Binding

	// History navigation
	Up   key.Binding
	Down key.Binding

	// Transcript scrolling
	PageUp   key.Binding
	PageDown key.Binding
}

// DefaultKeyBindings returns the default key bindings.
// Plain letters stay free for typing commands, so quit is ctrl+c only.
func DefaultKeyBindings() KeyBindings {
	return KeyBindings{
		Quit: key.NewBinding(
			key.WithKeys("ctrl+c"),
			key.WithHelp("ctrl+c", "quit"),
		),
		Cancel: key.NewBinding(
			key.WithKeys("esc"),
			key.WithHelp("esc", "clear"),
		),
		Submit: key.NewBinding(
			key.WithKeys("enter"),
			key.WithHelp("enter", "run"),
		),

		Up: key.NewBinding(
			key.WithKeys("up"),
			key.WithHelp("up", "history"),
		),
		Down: key.NewBinding(
			key.WithKeys("down"),
			key.WithHelp("down", "history"),
		),

		PageUp: key.NewBinding(
			key.WithKeys("pgup"),
			key.WithHelp("pgup", "page up"),
		),
		PageDown: key.NewBinding(
			key.WithKeys("pgdown"),
			key.WithHelp("pgdn", "page down"),
		),
	}
}
