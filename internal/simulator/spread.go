package simulator

import (
	"math"

	"github.com/lox/blackjack/internal/config"
)

// BetSpread chooses the bet for a round from the true count.
type BetSpread interface {
	Bet(trueCount float64, rules config.Rules) float64
}

// FlatBet bets the same amount every round.
type FlatBet struct {
	Amount float64
}

func (f FlatBet) Bet(_ float64, rules config.Rules) float64 {
	return clampBet(f.Amount, rules)
}

// DoublingSpread bets one Unit below a true count of 2, then doubles the bet
// for each whole point from 2 up, capped at the table maximum.
type DoublingSpread struct {
	Unit float64
}

func (d DoublingSpread) Bet(trueCount float64, rules config.Rules) float64 {
	if trueCount < 2 {
		return clampBet(d.Unit, rules)
	}
	steps := math.Floor(trueCount) - 1
	return clampBet(d.Unit*math.Exp2(steps), rules)
}

func clampBet(amount float64, rules config.Rules) float64 {
	return max(rules.MinBet, min(rules.MaxBet, amount))
}

// ParseSpread maps a spread name to a BetSpread betting unit.
func ParseSpread(name string, unit float64) (BetSpread, bool) {
	switch name {
	case "flat", "":
		return FlatBet{Amount: unit}, true
	case "doubling":
		return DoublingSpread{Unit: unit}, true
	}
	return nil, false
}
