package game

// Session is the bookkeeping of one table session. Everything but Rounds
// and the lifetime counters is reset when a hand is dealt.
type Session struct {
	GameID         string
	FocusedHand    int
	MovesTotal     int
	MovesCorrect   int
	PlayCorrection string
	Rounds         int

	LifetimeMoves   int
	LifetimeCorrect int
}

// Accuracy is the share of this hand's graded moves that matched the advisor.
func (s Session) Accuracy() float64 {
	return ratio(s.MovesCorrect, s.MovesTotal)
}

// LifetimeAccuracy is Accuracy over every hand played at the table.
func (s Session) LifetimeAccuracy() float64 {
	return ratio(s.LifetimeCorrect, s.LifetimeMoves)
}

func ratio(n, d int) float64 {
	if d == 0 {
		return 0
	}
	return float64(n) / float64(d)
}

// setState applies patch to the session and notifies observers.
func (g *Game) setState(patch func(*Session)) {
	patch(&g.session)
	if !g.events {
		return
	}
	s := g.session
	g.publish(StateChangeEvent{
		Entity: EntityGame,
		Attributes: map[string]any{
			"step":            g.state.String(),
			"gameId":          s.GameID,
			"focusedHand":     s.FocusedHand,
			"movesTotal":      s.MovesTotal,
			"movesCorrect":    s.MovesCorrect,
			"lifetimeMoves":   s.LifetimeMoves,
			"lifetimeCorrect": s.LifetimeCorrect,
			"playCorrection":  s.PlayCorrection,
			"runningCount":    g.shoe.RunningCount(),
			"trueCount":       g.shoe.TrueCount(),
		},
		timestamp: g.now(),
	})
}
