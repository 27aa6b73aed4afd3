package game

import (
	"fmt"

	"github.com/lox/blackjack/internal/deviation"
	"github.com/lox/blackjack/internal/hand"
	"github.com/lox/blackjack/internal/move"
	"github.com/lox/blackjack/internal/player"
	"github.com/lox/blackjack/internal/strategy"
)

// Advise returns the advisor's move for the current waiting state.
func (g *Game) Advise() move.Move {
	switch g.state {
	case Start, WaitingForNewGameInput:
		return move.Deal
	case WaitingForInsuranceInput:
		return g.adviseInsurance(g.advisor)
	case WaitingForPlayInput:
		if h := g.FocusedHand(); h != nil {
			return g.adviseHand(g.advisor, g.human, h)
		}
	}
	return move.Invalid
}

// Advisor returns the strategy tier grading the human seat
func (g *Game) Advisor() player.Kind { return g.advisor }

// adviseHand layers the deviations a tier knows over basic strategy.
func (g *Game) adviseHand(kind player.Kind, p *player.Player, h *hand.Hand) move.Move {
	if kind == player.User {
		kind = g.advisor
	}
	up, _ := g.dealer.Upcard()
	n := p.HandCount()
	if kind.Counts() {
		advanced := kind == player.BasicStrategyWithDeviations
		if m, ok := deviation.Suggest(g.rules, h, up, g.shoe.TrueCount(), n, advanced); ok {
			return m
		}
	}
	return strategy.Suggest(g.rules, h, up, n)
}

func (g *Game) adviseInsurance(kind player.Kind) move.Move {
	if kind == player.User {
		kind = g.advisor
	}
	if kind.Counts() {
		return deviation.SuggestInsurance(g.shoe.TrueCount())
	}
	return strategy.SuggestInsurance()
}

// grade compares the human seat's move with the advisor and records it.
func (g *Game) grade(m, advice move.Move, playerHand string) {
	correct := m == advice
	g.setState(func(s *Session) {
		s.MovesTotal++
		s.LifetimeMoves++
		if correct {
			s.MovesCorrect++
			s.LifetimeCorrect++
			s.PlayCorrection = ""
		} else {
			s.PlayCorrection = fmt.Sprintf("%s vs %s: %s, not %s",
				playerHand, g.dealer.Cards().Serialize(false), advice, m)
		}
	})
	if !correct {
		g.logger.Debug("Misplay", "move", m, "advice", advice, "hand", playerHand)
	}
	if !g.events {
		return
	}
	g.publish(CreateRecordEvent{
		Name: MoveRecordName,
		Record: MoveRecord{
			Timestamp:  g.now(),
			GameID:     g.session.GameID,
			DealerHand: g.dealer.Cards().Serialize(false),
			PlayerHand: playerHand,
			Move:       m.String(),
			Correction: g.session.PlayCorrection,
			TrueCount:  g.shoe.TrueCount(),
		},
		timestamp: g.now(),
	})
}
