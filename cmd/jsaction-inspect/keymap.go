package main

import "github.com/charmbracelet/bubbles/key"

// keymap documents jsaction-inspect's key bindings, rendered in the footer.
type keymap struct {
	Quit key.Binding
}

var keys = keymap{
	Quit: key.NewBinding(
		key.WithKeys("q", "esc", "ctrl+c"),
		key.WithHelp("q", "quit"),
	),
}
