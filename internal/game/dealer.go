package game

import (
	"github.com/lox/blackjack/internal/hand"
	"github.com/lox/blackjack/internal/player"
)

// DealerStands is the total the dealer stands on.
const DealerStands = 17

// playDealer reveals the hole card, draws to the house rule and settles
// every open hand against the dealer's total.
func (g *Game) playDealer() error {
	g.revealHole()
	if g.allSettled() {
		return nil
	}

	dh := g.dealer.Cards()
	for g.dealerHits(dh) {
		if err := g.draw(dh, true); err != nil {
			return err
		}
	}
	g.logger.Debug("Dealer done", "game", g.session.GameID, "cards", dh.Serialize(true), "total", dh.CardTotal())

	bust := dh.IsBusted()
	dt := dh.CardTotal()
	for _, p := range g.players {
		for _, h := range p.Hands() {
			if h.Settled {
				continue
			}
			pt := h.CardTotal()
			switch {
			case bust:
				g.settle(p, h, player.PlayerWin, player.DealerBust, 2*h.Bet)
			case pt > dt:
				g.settle(p, h, player.PlayerWin, player.Compared, 2*h.Bet)
			case pt < dt:
				g.settle(p, h, player.DealerWin, player.Compared, 0)
			default:
				g.settle(p, h, player.Push, player.Compared, h.Bet)
			}
		}
	}
	return nil
}

// dealerHits draws below 17, and on soft 17 when the table hits soft 17.
func (g *Game) dealerHits(dh *hand.Hand) bool {
	t := dh.CardTotal()
	if t < DealerStands {
		return true
	}
	return t == DealerStands && dh.IsSoft() && g.rules.HitSoft17
}

func (g *Game) allSettled() bool {
	for _, p := range g.players {
		for _, h := range p.Hands() {
			if !h.Settled {
				return false
			}
		}
	}
	return true
}
