package keymap

import (
	"github.com/charmbracelet/bubbles/v2/key"
	"github.com/vlscroll/vl/internal/vlist"
)

// KeyMap contains the application key bindings
type KeyMap struct {
	Up           key.Binding
	Down         key.Binding
	HalfPageUp   key.Binding
	HalfPageDown key.Binding
	PageUp       key.Binding
	PageDown     key.Binding
	Top          key.Binding
	Bottom       key.Binding
	Copy         key.Binding
	Selection    key.Binding
	Wrap         key.Binding
	Quit         key.Binding
}

func DefaultKeyMap() KeyMap {
	listKeyMap := vlist.DefaultKeyMap()
	return KeyMap{
		Up:           listKeyMap.Up,
		Down:         listKeyMap.Down,
		HalfPageUp:   listKeyMap.HalfPageUp,
		HalfPageDown: listKeyMap.HalfPageDown,
		PageUp:       listKeyMap.PageUp,
		PageDown:     listKeyMap.PageDown,
		Top:          listKeyMap.Top,
		Bottom:       listKeyMap.Bottom,
		Copy: key.NewBinding(
			key.WithKeys("c", "ctrl+y"),
			key.WithHelp("c", "copy selected record"),
		),
		Selection: key.NewBinding(
			key.WithKeys("s"),
			key.WithHelp("s", "toggle selection"),
		),
		Wrap: key.NewBinding(
			key.WithKeys("w"),
			key.WithHelp("w", "toggle wrap"),
		),
		Quit: key.NewBinding(
			key.WithKeys("q", "ctrl+c"),
			key.WithHelp("q", "quit"),
		),
	}
}

// ListKeyMap returns the subset of bindings the list component handles
func (k KeyMap) ListKeyMap() vlist.KeyMap {
	return vlist.KeyMap{
		Up:           k.Up,
		Down:         k.Down,
		HalfPageUp:   k.HalfPageUp,
		HalfPageDown: k.HalfPageDown,
		PageUp:       k.PageUp,
		PageDown:     k.PageDown,
		Top:          k.Top,
		Bottom:       k.Bottom,
	}
}
