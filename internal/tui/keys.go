package tui

import (
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/viewport"

	"github.com/lox/blackjack/internal/move"
)

type keyMap struct {
	Deal      key.Binding
	Hit       key.Binding
	Stand     key.Binding
	Double    key.Binding
	Split     key.Binding
	Surrender key.Binding
	Insure    key.Binding
	Decline   key.Binding
	BetUp     key.Binding
	BetDown   key.Binding
	Hint      key.Binding
	Quit      key.Binding
}

func defaultKeyMap() keyMap {
	return keyMap{
		Deal:      key.NewBinding(key.WithKeys("enter", " "), key.WithHelp("enter", "deal")),
		Hit:       key.NewBinding(key.WithKeys("h"), key.WithHelp("h", "hit")),
		Stand:     key.NewBinding(key.WithKeys("s"), key.WithHelp("s", "stand")),
		Double:    key.NewBinding(key.WithKeys("d"), key.WithHelp("d", "double")),
		Split:     key.NewBinding(key.WithKeys("p"), key.WithHelp("p", "split")),
		Surrender: key.NewBinding(key.WithKeys("r"), key.WithHelp("r", "surrender")),
		Insure:    key.NewBinding(key.WithKeys("i", "y"), key.WithHelp("i", "insure")),
		Decline:   key.NewBinding(key.WithKeys("n"), key.WithHelp("n", "decline")),
		BetUp:     key.NewBinding(key.WithKeys("+", "="), key.WithHelp("+/-", "bet")),
		BetDown:   key.NewBinding(key.WithKeys("-")),
		Hint:      key.NewBinding(key.WithKeys("?"), key.WithHelp("?", "hint")),
		Quit:      key.NewBinding(key.WithKeys("q", "ctrl+c", "esc"), key.WithHelp("q", "quit")),
	}
}

// moveFor maps a key press to the move it plays.
func (k keyMap) moveFor(msg string) (move.Move, bool) {
	bindings := []struct {
		b key.Binding
		m move.Move
	}{
		{k.Deal, move.Deal},
		{k.Hit, move.Hit},
		{k.Stand, move.Stand},
		{k.Double, move.Double},
		{k.Split, move.Split},
		{k.Surrender, move.Surrender},
		{k.Insure, move.Insure},
		{k.Decline, move.DeclineInsurance},
	}
	for _, kb := range bindings {
		for _, k := range kb.b.Keys() {
			if k == msg {
				return kb.m, true
			}
		}
	}
	return move.Invalid, false
}

// ShortHelp implements help.KeyMap.
func (k keyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Deal, k.Hit, k.Stand, k.Double, k.Split, k.Surrender, k.Hint, k.Quit}
}

// FullHelp implements help.KeyMap.
func (k keyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Deal, k.BetUp},
		{k.Hit, k.Stand, k.Double, k.Split, k.Surrender},
		{k.Insure, k.Decline},
		{k.Hint, k.Quit},
	}
}

// logKeys scrolls the log without claiming any move key.
func logKeys() viewport.KeyMap {
	return viewport.KeyMap{
		PageDown: key.NewBinding(key.WithKeys("pgdown")),
		PageUp:   key.NewBinding(key.WithKeys("pgup")),
		Up:       key.NewBinding(key.WithKeys("up")),
		Down:     key.NewBinding(key.WithKeys("down")),
	}
}
