// Package deviation layers count-based strategy changes over basic strategy.
// An entry overrides the chart only when the true count satisfies its
// threshold and its move is legal for the hand at that moment.
package deviation

import (
	"fmt"

	"github.com/lox/blackjack/internal/config"
	"github.com/lox/blackjack/internal/deck"
	"github.com/lox/blackjack/internal/hand"
	"github.com/lox/blackjack/internal/move"
	"github.com/lox/blackjack/internal/strategy"
)

// Comparator is how a true count is tested against a threshold value.
type Comparator int

const (
	AtLeast Comparator = iota // tc >= v
	AtMost                    // tc <= v
	Above                     // tc > v
	Below                     // tc < v
)

func (c Comparator) String() string {
	switch c {
	case AtLeast:
		return ">="
	case AtMost:
		return "<="
	case Above:
		return ">"
	case Below:
		return "<"
	}
	return "?"
}

// Threshold is a comparator and its boundary.
type Threshold struct {
	Comparator Comparator
	Value      float64
}

// Satisfied reports whether the true count meets the threshold.
func (t Threshold) Satisfied(tc float64) bool {
	switch t.Comparator {
	case AtLeast:
		return tc >= t.Value
	case AtMost:
		return tc <= t.Value
	case Above:
		return tc > t.Value
	case Below:
		return tc < t.Value
	}
	return false
}

// Upward reports whether the deviation fires as the count rises.
func (t Threshold) Upward() bool {
	return t.Comparator == AtLeast || t.Comparator == Above
}

// Inclusive reports whether the boundary itself satisfies the threshold.
func (t Threshold) Inclusive() bool {
	return t.Comparator == AtLeast || t.Comparator == AtMost
}

func (t Threshold) String() string {
	return fmt.Sprintf("tc %s %+g", t.Comparator, t.Value)
}

// Entry is one deviation: play Move with PlayerTotal against DealerCard
// (ace = 11) when the threshold holds.
type Entry struct {
	PlayerTotal       int
	DealerCard        int
	Move              move.Move
	Threshold         Threshold
	PairOnly          bool
	RequiresSurrender bool
}

func (e Entry) String() string {
	name := fmt.Sprintf("%d", e.PlayerTotal)
	if e.PlayerTotal == InsuranceTotal {
		name = "insurance"
	} else if e.PairOnly {
		name = fmt.Sprintf("%d,%d", e.PlayerTotal/2, e.PlayerTotal/2)
	}
	return fmt.Sprintf("%s vs %d: %s at %s", name, e.DealerCard, e.Move, e.Threshold)
}

// Entries returns every entry a player tier may use. With advanced set the
// Fab 4 surrenders come first.
func Entries(advanced bool) []Entry {
	out := make([]Entry, 0, len(Illustrious18)+len(Fab4))
	if advanced {
		out = append(out, Fab4...)
	}
	return append(out, Illustrious18...)
}

// Suggest returns the deviation move for the hand, or false when no entry
// fires and basic strategy applies. Soft hands never deviate. A splittable
// pair is tried against the pair entries first and, unless the chart splits
// it, then played as its hard total.
func Suggest(r config.Rules, h *hand.Hand, upcard deck.Card, trueCount float64, handsInPlay int, advanced bool) (move.Move, bool) {
	legal := strategy.LegalityFor(r, h, handsInPlay)
	cat, _ := strategy.Classify(h, legal)
	if cat == strategy.Soft {
		return move.Invalid, false
	}

	hard := key{total: h.CardTotal(), dealer: upcard.Value()}
	keys := []key{hard}
	if cat == strategy.Pair {
		pair := hard
		pair.pair = true
		keys = []key{pair}
		if strategy.Suggest(r, h, upcard, handsInPlay) != move.Split {
			keys = append(keys, hard)
		}
	}

	for _, k := range keys {
		if advanced && legal.Surrender && !k.pair {
			if e, ok := fab4Index[k]; ok && fires(e, legal, trueCount) {
				return e.Move, true
			}
		}
		if e, ok := i18Index[k]; ok && fires(e, legal, trueCount) {
			return e.Move, true
		}
	}
	return move.Invalid, false
}

func fires(e Entry, legal strategy.Legality, tc float64) bool {
	if !e.Threshold.Satisfied(tc) {
		return false
	}
	if e.RequiresSurrender && !legal.Surrender {
		return false
	}
	switch e.Move {
	case move.Double:
		return legal.Double
	case move.Split:
		return legal.Split
	case move.Surrender:
		return legal.Surrender
	}
	return true
}

// SuggestInsurance takes insurance once the count makes it profitable.
func SuggestInsurance(trueCount float64) move.Move {
	e := i18Index[key{total: InsuranceTotal, dealer: 11}]
	if e.Threshold.Satisfied(trueCount) {
		return move.Insure
	}
	return move.DeclineInsurance
}
