package game

import (
	"fmt"

	"github.com/lox/blackjack/internal/hand"
	"github.com/lox/blackjack/internal/move"
	"github.com/lox/blackjack/internal/player"
)

// dealRound takes the bets and deals two cards to every hand and the
// dealer, then peeks for a dealer blackjack.
func (g *Game) dealRound() error {
	stake := g.bet * float64(g.rules.Spots)
	if err := g.human.UseChips(stake); err != nil {
		return fmt.Errorf("placing bet: %w", err)
	}

	g.setState(func(s *Session) {
		s.GameID = g.ids.Generate()
		s.FocusedHand = 0
		s.MovesTotal = 0
		s.MovesCorrect = 0
		s.PlayCorrection = ""
	})
	g.insuranceAsked = false

	var order []*hand.Hand
	for _, p := range g.players {
		spots, bet := 1, g.cfg.Bet
		if p == g.human {
			spots, bet = g.rules.Spots, g.bet
		} else if err := p.UseChips(bet); err != nil {
			g.logger.Debug("Seat sitting out", "seat", p.Name, "balance", p.Balance)
			continue
		}
		for range spots {
			h, err := p.NewHand(bet)
			if err != nil {
				return err
			}
			order = append(order, h)
		}
	}

	dh := g.dealer.Cards()
	for round := range 2 {
		for _, h := range order {
			if err := g.draw(h, true); err != nil {
				return err
			}
		}
		if err := g.draw(dh, round == 0); err != nil {
			return err
		}
	}
	g.logger.Debug("Dealt round", "game", g.session.GameID, "hands", len(order),
		"dealer", dh.Serialize(false), "rc", g.shoe.RunningCount())

	up, _ := g.dealer.Upcard()
	switch {
	case up.IsAce():
		if !g.rules.AutoDeclineInsurance && g.human.IsUser() && g.human.HandCount() > 0 {
			g.insuranceAsked = true
			g.setStep(WaitingForInsuranceInput)
			return nil
		}
		return g.resolveInsurance(move.DeclineInsurance)
	case up.IsTen() && dh.IsBlackjack():
		g.dealerBlackjack()
		return nil
	}
	g.setStep(PlayHandsRight)
	return nil
}

// resolveInsurance takes the human seat's decision, lets the other seats
// decide, then checks the hole card.
func (g *Game) resolveInsurance(m move.Move) error {
	if m == move.Insure {
		hands := g.human.Hands()
		cost := 0.0
		for _, h := range hands {
			cost += h.Bet / 2
		}
		if err := g.human.UseChips(cost); err != nil {
			return fmt.Errorf("insuring: %w", err)
		}
		for _, h := range hands {
			h.Insurance = h.Bet / 2
		}
	}
	if g.insuranceAsked {
		g.grade(m, g.adviseInsurance(g.advisor), g.human.Hand(0).Serialize(false))
	}

	for _, p := range g.players {
		if (p == g.human && p.IsUser()) || g.adviseInsurance(p.Kind) != move.Insure {
			continue
		}
		for _, h := range p.Hands() {
			if err := p.UseChips(h.Bet / 2); err != nil {
				continue
			}
			h.Insurance = h.Bet / 2
		}
	}

	if g.dealer.Cards().IsBlackjack() {
		g.dealerBlackjack()
		return nil
	}
	g.setStep(PlayHandsRight)
	return nil
}

// dealerBlackjack reveals the hole card and settles every hand: naturals
// push, insured hands are paid 2:1 on the insurance and lose the bet.
func (g *Game) dealerBlackjack() {
	g.revealHole()
	g.logger.Debug("Dealer blackjack", "game", g.session.GameID)
	for _, p := range g.players {
		for _, h := range p.Hands() {
			if h.Settled {
				continue
			}
			insurance := h.Insurance * 3
			switch {
			case h.IsBlackjack():
				g.settle(p, h, player.Push, player.DealerBlackjack, h.Bet+insurance)
			case h.Insurance > 0:
				g.settle(p, h, player.Push, player.Insured, insurance)
			default:
				g.settle(p, h, player.DealerWin, player.DealerBlackjack, 0)
			}
		}
	}
	g.finishRound()
}

// settleNaturals pays every unsettled blackjack of the seat.
func (g *Game) settleNaturals(p *player.Player) {
	for _, h := range p.Hands() {
		if !h.Settled && h.IsBlackjack() {
			g.settle(p, h, player.PlayerWin, player.Blackjack, h.Bet+h.Bet*g.rules.BlackjackPayout)
		}
	}
}

// settle finishes the hand and returns payout to the player.
func (g *Game) settle(p *player.Player, h *hand.Hand, o player.Outcome, r player.Reason, payout float64) {
	h.Finished = true
	h.Settled = true
	p.Credit(payout)
	res := player.Result{Outcome: o, Reason: r, Payout: payout}
	p.SetResult(h.ID, res)
	g.publish(HandWinnerEvent{
		GameID:    g.session.GameID,
		PlayerID:  p.ID,
		HandID:    h.ID,
		Result:    res,
		timestamp: g.now(),
	})
}

// finishRound records the human seat's hands and waits for the next deal.
func (g *Game) finishRound() {
	if g.events {
		dealer := g.dealer.Cards().Serialize(true)
		for _, h := range g.human.Hands() {
			res, _ := g.human.Result(h.ID)
			g.publish(CreateRecordEvent{
				Name: HandRecordName,
				Record: HandRecord{
					Timestamp:  g.now(),
					GameID:     g.session.GameID,
					DealerHand: dealer,
					PlayerHand: h.Serialize(true),
					Winner:     res.String(),
					Bet:        h.Bet,
					Payout:     res.Payout,
				},
				timestamp: g.now(),
			})
		}
	}
	g.setState(func(s *Session) { s.Rounds++ })
	g.setStep(WaitingForNewGameInput)
}

// removeCards returns every hand to its pool and reshuffles when due.
func (g *Game) removeCards() {
	n := g.dealer.Clear()
	for _, p := range g.players {
		n += p.Clear()
	}
	g.shoe.Discard(n)
	if g.forceReset || g.shoe.NeedsReset() {
		g.reshuffle()
	}
	g.publish(ResetStateEvent{timestamp: g.now()})
	g.setStep(Start)
}

func (g *Game) reshuffle() {
	forced := g.forceReset
	g.shoe.Shuffle(g.layout())
	g.forceReset = false
	g.logger.Debug("Shuffled", "decks", g.rules.Decks, "forced", forced)
	g.publish(ShuffleEvent{Decks: g.rules.Decks, Forced: forced, timestamp: g.now()})
}

// abandon ends a round the shoe could not finish: every unsettled hand is
// pushed with its insurance returned.
func (g *Game) abandon() {
	g.logger.Warn("Shoe exhausted mid-round, pushing open hands", "game", g.session.GameID)
	for _, p := range g.players {
		for _, h := range p.Hands() {
			if !h.Settled {
				g.settle(p, h, player.Push, player.Exhausted, h.Bet+h.Insurance)
			}
		}
	}
	g.forceReset = true
	g.finishRound()
}

// draw deals the next card into h.
func (g *Game) draw(h *hand.Hand, faceUp bool) error {
	c, err := g.shoe.Draw(faceUp)
	if err != nil {
		return err
	}
	h.TakeCard(c, false)
	g.handChanged(h)
	return nil
}

func (g *Game) revealHole() {
	if hole, ok := g.dealer.HoleCard(); ok {
		g.shoe.Reveal(hole)
		g.handChanged(g.dealer.Cards())
	}
}

func (g *Game) handChanged(h *hand.Hand) {
	if !g.events {
		return
	}
	g.publish(StateChangeEvent{
		Entity: EntityHand,
		ID:     h.ID,
		Attributes: map[string]any{
			"owner": h.Owner,
			"cards": h.Serialize(false),
			"total": h.VisibleTotal(),
			"bet":   h.Bet,
		},
		timestamp: g.now(),
	})
}
