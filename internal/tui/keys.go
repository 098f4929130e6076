package tui

import (
	"github.com/charmbracelet/bubbles/key"
)

// KeyMap defines the key bindings for the chat window.
type KeyMap struct {
	// Composing
	Send key.Binding

	// Transcript
	PageUp    key.Binding
	PageDown  key.Binding
	Clear     key.Binding
	CopyYAML  key.Binding
	CopyJSON  key.Binding
	CopyPlain key.Binding

	// Confirmation prompt
	Confirm key.Binding
	Cancel  key.Binding

	// Global
	ToggleTheme key.Binding
	Help        key.Binding
	Quit        key.Binding
}

// ShortHelp returns a short help message.
func (k KeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Send, k.ToggleTheme, k.Help, k.Quit}
}

// FullHelp returns a full help message.
func (k KeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Send, k.ToggleTheme},
		{k.PageUp, k.PageDown, k.Clear},
		{k.CopyYAML, k.CopyJSON, k.CopyPlain},
		{k.Help, k.Quit},
	}
}

// DefaultKeyMap returns the default key bindings. Printable keys are left
// to the input field, so every action uses a modifier or function key.
func DefaultKeyMap() KeyMap {
	return KeyMap{
		Send: key.NewBinding(
			key.WithKeys("enter"),
			key.WithHelp("enter", "send"),
		),
		PageUp: key.NewBinding(
			key.WithKeys("pgup"),
			key.WithHelp("pgup", "scroll up"),
		),
		PageDown: key.NewBinding(
			key.WithKeys("pgdown"),
			key.WithHelp("pgdn", "scroll down"),
		),
		Clear: key.NewBinding(
			key.WithKeys("ctrl+l"),
			key.WithHelp("ctrl+l", "clear chat"),
		),
		CopyYAML: key.NewBinding(
			key.WithKeys("ctrl+y"),
			key.WithHelp("ctrl+y", "copy as YAML"),
		),
		CopyJSON: key.NewBinding(
			key.WithKeys("alt+y"),
			key.WithHelp("alt+y", "copy as JSON"),
		),
		CopyPlain: key.NewBinding(
			key.WithKeys("alt+p"),
			key.WithHelp("alt+p", "copy as text"),
		),
		Confirm: key.NewBinding(
			key.WithKeys("y", "Y"),
			key.WithHelp("y", "yes"),
		),
		Cancel: key.NewBinding(
			key.WithKeys("n", "N", "esc"),
			key.WithHelp("n", "no"),
		),
		ToggleTheme: key.NewBinding(
			key.WithKeys("ctrl+t"),
			key.WithHelp("ctrl+t", "light/dark"),
		),
		Help: key.NewBinding(
			key.WithKeys("f1"),
			key.WithHelp("f1", "help"),
		),
		Quit: key.NewBinding(
			key.WithKeys("ctrl+c", "esc"),
			key.WithHelp("esc", "quit"),
		),
	}
}
