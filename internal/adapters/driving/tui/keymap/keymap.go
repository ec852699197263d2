// Package keymap defines keybindings for the TUI.
package keymap

import (
	"github.com/charmbracelet/bubbles/key"
)

// KeyMap defines all keybindings for the TUI.
//
// Selector bindings avoid plain letters so every printable key reaches the
// search box.
type KeyMap struct {
	// Quit exits the application from the menu.
	Quit key.Binding

	// ForceQuit exits from anywhere.
	ForceQuit key.Binding

	// Back returns to the previous view.
	Back key.Binding

	// MenuUp navigates up in the kind menu.
	MenuUp key.Binding

	// MenuDown navigates down in the kind menu.
	MenuDown key.Binding

	// Up moves the selector highlight up.
	Up key.Binding

	// Down moves the selector highlight down.
	Down key.Binding

	// Select confirms a selection.
	Select key.Binding

	// Close dismisses the selector.
	Close key.Binding

	// NextPage requests the next page.
	NextPage key.Binding

	// PrevPage requests the previous page.
	PrevPage key.Binding

	// Retry re-issues the last fetch after an error.
	Retry key.Binding

	// Clear forgets the remembered selection for a kind.
	Clear key.Binding
}

// DefaultKeyMap returns the default keybindings.
func DefaultKeyMap() *KeyMap {
	return &KeyMap{
		Quit: key.NewBinding(
			key.WithKeys("q", "ctrl+c"),
			key.WithHelp("q", "quit"),
		),
		ForceQuit: key.NewBinding(
			key.WithKeys("ctrl+c"),
			key.WithHelp("ctrl+c", "quit"),
		),
		Back: key.NewBinding(
			key.WithKeys("esc"),
			key.WithHelp("esc", "back"),
		),
		MenuUp: key.NewBinding(
			key.WithKeys("up", "k"),
			key.WithHelp("↑/k", "up"),
		),
		MenuDown: key.NewBinding(
			key.WithKeys("down", "j"),
			key.WithHelp("↓/j", "down"),
		),
		Up: key.NewBinding(
			key.WithKeys("up", "ctrl+k"),
			key.WithHelp("↑", "up"),
		),
		Down: key.NewBinding(
			key.WithKeys("down", "ctrl+j"),
			key.WithHelp("↓", "down"),
		),
		Select: key.NewBinding(
			key.WithKeys("enter"),
			key.WithHelp("enter", "select"),
		),
		Close: key.NewBinding(
			key.WithKeys("esc"),
			key.WithHelp("esc", "close"),
		),
		NextPage: key.NewBinding(
			key.WithKeys("pgdown", "ctrl+f"),
			key.WithHelp("pgdn", "next page"),
		),
		PrevPage: key.NewBinding(
			key.WithKeys("pgup", "ctrl+b"),
			key.WithHelp("pgup", "prev page"),
		),
		Retry: key.NewBinding(
			key.WithKeys("ctrl+r"),
			key.WithHelp("ctrl+r", "retry"),
		),
		Clear: key.NewBinding(
			key.WithKeys("x"),
			key.WithHelp("x", "forget"),
		),
	}
}

// MenuHelp returns keybindings for the kind menu.
func (k *KeyMap) MenuHelp() []key.Binding {
	return []key.Binding{k.MenuUp, k.Select, k.Clear, k.Quit}
}

// SelectorHelp returns keybindings shown while a selector is open.
func (k *KeyMap) SelectorHelp() []key.Binding {
	return []key.Binding{k.Up, k.Select, k.PrevPage, k.NextPage, k.Close}
}

// FullHelp returns the full list of keybindings for the help view.
func (k *KeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Up, k.Down, k.Select, k.Close},
		{k.NextPage, k.PrevPage, k.Retry},
		{k.MenuUp, k.MenuDown, k.Back, k.Quit},
	}
}

// Matches checks if a key string matches a binding.
func Matches(keyStr string, binding key.Binding) bool {
	for _, k := range binding.Keys() {
		if k == keyStr {
			return true
		}
	}
	return false
}
