// Package strategy implements basic strategy: the count-independent best
// move for a hand against a dealer upcard under a given set of table rules.
package strategy

import (
	"github.com/lox/blackjack/internal/config"
	"github.com/lox/blackjack/internal/deck"
	"github.com/lox/blackjack/internal/hand"
	"github.com/lox/blackjack/internal/move"
)

// LegalityFor reports which conditional moves the hand may take right now.
func LegalityFor(r config.Rules, h *hand.Hand, handsInPlay int) Legality {
	return Legality{
		Double:           h.AllowDouble(r),
		Split:            h.AllowSplit(r, handsInPlay),
		Surrender:        h.AllowSurrender(r),
		DoubleAfterSplit: r.DoubleAfterSplit,
	}
}

// Classify returns the chart section and lookup key for a hand. A pair is
// only looked up as a pair while splitting is legal.
func Classify(h *hand.Hand, legal Legality) (Category, int) {
	switch {
	case legal.Split && h.IsPair():
		return Pair, h.PairValue()
	case h.IsSoft():
		return Soft, h.CardTotal()
	default:
		return Hard, h.CardTotal()
	}
}

// Suggest returns the basic-strategy move for the hand.
func Suggest(r config.Rules, h *hand.Hand, upcard deck.Card, handsInPlay int) move.Move {
	legal := LegalityFor(r, h, handsInPlay)
	cat, key := Classify(h, legal)
	return ChartFor(r.Decks, r.HitSoft17).Lookup(cat, key, upcard.Value()).Resolve(legal)
}

// SuggestInsurance is basic strategy's answer to insurance: always decline.
func SuggestInsurance() move.Move {
	return move.DeclineInsurance
}
