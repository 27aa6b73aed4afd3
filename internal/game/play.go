package game

import (
	"errors"
	"fmt"

	"github.com/lox/blackjack/internal/hand"
	"github.com/lox/blackjack/internal/move"
	"github.com/lox/blackjack/internal/player"
)

// legal reports whether m may be played on h right now. Legality is checked
// at the moment of play since earlier moves change it.
func (g *Game) legal(p *player.Player, h *hand.Hand, m move.Move) bool {
	if h == nil || h.Finished {
		return false
	}
	switch m {
	case move.Hit:
		return h.CardTotal() < hand.Bust && !h.SplitAces
	case move.Stand:
		return true
	case move.Double:
		return h.AllowDouble(g.rules)
	case move.Split:
		return h.AllowSplit(g.rules, p.HandCount())
	case move.Surrender:
		return h.AllowSurrender(g.rules)
	}
	return false
}

// LegalMoves returns the inputs the table accepts in its current state.
func (g *Game) LegalMoves() []move.Move {
	switch g.state {
	case Start, WaitingForNewGameInput:
		return []move.Move{move.Deal}
	case WaitingForInsuranceInput:
		return []move.Move{move.Insure, move.DeclineInsurance}
	case WaitingForPlayInput:
		var out []move.Move
		h := g.FocusedHand()
		for m := move.Hit; m <= move.Surrender; m++ {
			if g.legal(g.human, h, m) {
				out = append(out, m)
			}
		}
		return out
	}
	return nil
}

// playHuman applies a move to the focused human hand and grades it.
func (g *Game) playHuman(m move.Move) (bool, error) {
	idx := g.session.FocusedHand
	h := g.human.Hand(idx)
	if !g.legal(g.human, h, m) {
		g.logger.Debug("Ignoring move", "move", m, "hand", h)
		return false, nil
	}
	advice := g.adviseHand(g.advisor, g.human, h)
	before := h.Serialize(false)

	applied, err := g.apply(g.human, idx, m)
	if err != nil || !applied {
		return false, err
	}
	g.grade(m, advice, before)
	return true, nil
}

// playSeat plays every hand of an automated seat to completion.
func (g *Game) playSeat(p *player.Player) error {
	g.settleNaturals(p)
	for i := 0; i < p.HandCount(); i++ {
		for !p.Hand(i).Finished {
			m := g.adviseHand(p.Kind, p, p.Hand(i))
			applied, err := g.apply(p, i, m)
			if errors.Is(err, player.ErrInsufficientBalance) {
				// a seat that cannot cover a double or split hits instead
				applied, err = g.apply(p, i, move.Hit)
			}
			if err != nil {
				return err
			}
			if !applied {
				if _, err := g.apply(p, i, move.Stand); err != nil {
					return err
				}
			}
		}
	}
	return nil
}

// apply plays m on the idx-th hand of p. It reports false without side
// effects when the move is not currently legal.
func (g *Game) apply(p *player.Player, idx int, m move.Move) (bool, error) {
	h := p.Hand(idx)
	if !g.legal(p, h, m) {
		return false, nil
	}

	switch m {
	case move.Hit:
		h.Acted = true
		if err := g.draw(h, true); err != nil {
			return true, err
		}
		g.afterDraw(p, h)

	case move.Stand:
		h.Acted = true
		h.Finished = true

	case move.Double:
		if err := p.UseChips(h.Bet); err != nil {
			return false, fmt.Errorf("doubling: %w", err)
		}
		h.Bet *= 2
		h.Doubled = true
		h.Acted = true
		if err := g.draw(h, true); err != nil {
			return true, err
		}
		h.Finished = true
		g.afterDraw(p, h)

	case move.Split:
		if err := g.split(p, idx); err != nil {
			return false, err
		}

	case move.Surrender:
		h.Acted = true
		h.Surrendered = true
		g.settle(p, h, player.DealerWin, player.Surrender, h.Bet/2)
	}
	return true, nil
}

// afterDraw settles a bust immediately and finishes a hand on 21.
func (g *Game) afterDraw(p *player.Player, h *hand.Hand) {
	switch {
	case h.IsBusted():
		g.settle(p, h, player.DealerWin, player.Bust, 0)
	case h.CardTotal() == hand.Bust:
		h.Finished = true
	}
}

// split detaches the second card into a new hand placed after the original
// and deals one card to each. Split aces take one card each and are done
// unless they can be split again.
func (g *Game) split(p *player.Player, idx int) error {
	h := p.Hand(idx)
	if err := p.UseChips(h.Bet); err != nil {
		return fmt.Errorf("splitting: %w", err)
	}
	nh, err := p.InsertHand(idx, h.Bet)
	if err != nil {
		p.Credit(h.Bet)
		p.Wagered -= h.Bet
		return err
	}
	c, _ := h.RemoveCard()
	nh.TakeCard(c, false)

	aces := c.IsAce()
	for _, sh := range []*hand.Hand{h, nh} {
		sh.FromSplit = true
		sh.SplitAces = aces
	}
	for _, sh := range []*hand.Hand{h, nh} {
		if err := g.draw(sh, true); err != nil {
			return err
		}
	}
	for _, sh := range []*hand.Hand{h, nh} {
		switch {
		case sh.CardTotal() == hand.Bust:
			sh.Finished = true
		case aces && !sh.AllowSplit(g.rules, p.HandCount()):
			sh.Finished = true
		}
	}
	return nil
}
