package game

import (
	"io"
	"testing"

	"github.com/charmbracelet/log"
	"github.com/coder/quartz"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lox/blackjack/internal/config"
	"github.com/lox/blackjack/internal/deck"
	"github.com/lox/blackjack/internal/move"
	"github.com/lox/blackjack/internal/player"
	"github.com/lox/blackjack/internal/randutil"
	"github.com/lox/blackjack/internal/shoe"
)

// newStackedGame deals cards in the given order. With one seat the order is
// player, dealer up, player, dealer hole, then draws.
func newStackedGame(t *testing.T, cfg config.Config, cards string, opts ...Option) *Game {
	t.Helper()
	rng := randutil.New(42)
	s := shoe.NewFromCards(cfg.Rules, rng, deck.MustParseCards(cards))
	logger := log.NewWithOptions(io.Discard, log.Options{Level: log.ErrorLevel})
	base := []Option{WithRand(rng), WithShoe(s), WithLogger(logger), WithClock(quartz.NewMock(t))}
	g, err := New(cfg, append(base, opts...)...)
	require.NoError(t, err)
	return g
}

func onlyResult(t *testing.T, p *player.Player) player.Result {
	t.Helper()
	require.Equal(t, 1, p.HandCount())
	r, ok := p.Result(p.Hand(0).ID)
	require.True(t, ok, "hand should be settled")
	return r
}

func TestNaturalBlackjackPaysThreeToTwo(t *testing.T) {
	cfg := config.Default()
	g := newStackedGame(t, cfg, "A 5 J 9")

	require.NoError(t, g.Step(move.Deal))
	assert.Equal(t, WaitingForNewGameInput, g.State())
	assert.Equal(t, cfg.StartingBalance+15, g.Human().Balance)

	r := onlyResult(t, g.Human())
	assert.Equal(t, player.PlayerWin, r.Outcome)
	assert.Equal(t, player.Blackjack, r.Reason)
	assert.Equal(t, 25.0, r.Payout)

	hole, ok := g.Dealer().HoleCard()
	assert.False(t, ok, "hole card is revealed at the end of the round: %v", hole)
}

func TestSixToFivePayout(t *testing.T) {
	cfg := config.Default()
	cfg.Rules.BlackjackPayout = 1.2
	g := newStackedGame(t, cfg, "A 5 J 9")

	require.NoError(t, g.Step(move.Deal))
	assert.Equal(t, cfg.StartingBalance+12, g.Human().Balance)
}

func TestSurrender(t *testing.T) {
	t.Run("first decision", func(t *testing.T) {
		cfg := config.Default()
		g := newStackedGame(t, cfg, "6 J Q J")

		require.NoError(t, g.Step(move.Deal))
		require.Equal(t, WaitingForPlayInput, g.State())
		assert.Equal(t, move.Surrender, g.Advise())

		require.NoError(t, g.Step(move.Surrender))
		assert.Equal(t, WaitingForNewGameInput, g.State())
		assert.Equal(t, cfg.StartingBalance-5, g.Human().Balance)

		r := onlyResult(t, g.Human())
		assert.Equal(t, player.DealerWin, r.Outcome)
		assert.Equal(t, player.Surrender, r.Reason)

		s := g.Session()
		assert.Equal(t, 1, s.MovesTotal)
		assert.Equal(t, 1, s.MovesCorrect)
		assert.Empty(t, s.PlayCorrection)
	})

	t.Run("rejected after a hit", func(t *testing.T) {
		cfg := config.Default()
		g := newStackedGame(t, cfg, "6 J Q J 2")

		require.NoError(t, g.Step(move.Deal))
		require.NoError(t, g.Step(move.Hit))
		require.Equal(t, WaitingForPlayInput, g.State())

		require.NoError(t, g.Step(move.Surrender))
		assert.Equal(t, WaitingForPlayInput, g.State())
		assert.False(t, g.Human().Hand(0).Surrendered)
		assert.Equal(t, 3, g.Human().Hand(0).Len())
	})

	t.Run("disabled by rule", func(t *testing.T) {
		cfg := config.Default()
		cfg.Rules.LateSurrender = false
		g := newStackedGame(t, cfg, "6 J Q J")

		require.NoError(t, g.Step(move.Deal))
		assert.Equal(t, move.Hit, g.Advise())
		require.NoError(t, g.Step(move.Surrender))
		assert.Equal(t, WaitingForPlayInput, g.State())
	})
}

func TestInvalidInputIsNoOp(t *testing.T) {
	cfg := config.Default()
	g := newStackedGame(t, cfg, "6 J Q J 2")

	for _, m := range []move.Move{move.Invalid, move.Hit, move.Stand, move.Insure} {
		require.NoError(t, g.Step(m))
		assert.Equal(t, Start, g.State(), "only a deal starts the first round, not %s", m)
	}

	require.NoError(t, g.Step(move.Deal))
	require.Equal(t, WaitingForPlayInput, g.State())
	before := g.Session()

	for _, m := range []move.Move{move.Invalid, move.Insure, move.DeclineInsurance, move.Deal, move.Split} {
		require.NoError(t, g.Step(m))
		assert.Equal(t, WaitingForPlayInput, g.State(), "input %s", m)
	}
	assert.Equal(t, before, g.Session(), "ignored input is not graded")
	assert.Equal(t, 2, g.Human().Hand(0).Len())
}

func TestMisplayIsGraded(t *testing.T) {
	cfg := config.Default()
	g := newStackedGame(t, cfg, "T 7 8 K 5 2")

	require.NoError(t, g.Step(move.Deal))
	require.Equal(t, move.Stand, g.Advise())
	require.NoError(t, g.Step(move.Hit))

	s := g.Session()
	assert.Equal(t, 1, s.MovesTotal)
	assert.Equal(t, 0, s.MovesCorrect)
	assert.Equal(t, "T 8 vs 7 ?: stand, not hit", s.PlayCorrection)
	assert.InDelta(t, 0.0, s.Accuracy(), 1e-9)
}

func TestSessionResetsEachHand(t *testing.T) {
	cfg := config.Default()
	g := newStackedGame(t, cfg, "T 7 8 K 5 2")

	require.NoError(t, g.Step(move.Deal))
	require.NoError(t, g.Step(move.Hit))
	require.Equal(t, WaitingForNewGameInput, g.State())
	first := g.Session()
	require.NotEmpty(t, first.PlayCorrection)

	require.NoError(t, g.Step(move.Deal))
	s := g.Session()
	assert.NotEqual(t, first.GameID, s.GameID)
	assert.Zero(t, s.MovesTotal)
	assert.Zero(t, s.MovesCorrect)
	assert.Empty(t, s.PlayCorrection)
	assert.Equal(t, 1, s.LifetimeMoves)
	assert.Equal(t, 0, s.LifetimeCorrect)
}

func TestInsurance(t *testing.T) {
	t.Run("auto decline never waits for insurance", func(t *testing.T) {
		cfg := config.Default()
		cfg.Rules.AutoDeclineInsurance = true
		g := newStackedGame(t, cfg, "9 A 7 5 T 5")

		var steps []string
		g.Bus().Subscribe(SubscriberFunc(func(e GameEvent) {
			if sc, ok := e.(StateChangeEvent); ok && sc.Entity == EntityGame {
				steps = append(steps, sc.Attributes["step"].(string))
			}
		}))

		require.NoError(t, g.Step(move.Deal))
		assert.Equal(t, WaitingForPlayInput, g.State())
		require.NoError(t, g.Step(move.Stand))
		assert.Equal(t, WaitingForNewGameInput, g.State())

		assert.NotEmpty(t, steps)
		assert.NotContains(t, steps, WaitingForInsuranceInput.String())
	})

	t.Run("insured against dealer blackjack", func(t *testing.T) {
		cfg := config.Default()
		g := newStackedGame(t, cfg, "9 A 7 K")

		require.NoError(t, g.Step(move.Deal))
		require.Equal(t, WaitingForInsuranceInput, g.State())
		assert.Equal(t, move.DeclineInsurance, g.Advise())

		require.NoError(t, g.Step(move.Hit), "play input is ignored while insurance is open")
		assert.Equal(t, WaitingForInsuranceInput, g.State())

		require.NoError(t, g.Step(move.Insure))
		assert.Equal(t, WaitingForNewGameInput, g.State())
		assert.Equal(t, cfg.StartingBalance, g.Human().Balance, "insurance pays 2:1 and covers the lost bet")

		r := onlyResult(t, g.Human())
		assert.Equal(t, player.Push, r.Outcome)
		assert.Equal(t, player.Insured, r.Reason)
		assert.Equal(t, 1, g.Session().MovesTotal)
		assert.Equal(t, 0, g.Session().MovesCorrect)
	})

	t.Run("declined against dealer blackjack", func(t *testing.T) {
		cfg := config.Default()
		g := newStackedGame(t, cfg, "9 A 7 K")

		require.NoError(t, g.Step(move.Deal))
		require.NoError(t, g.Step(move.DeclineInsurance))
		assert.Equal(t, cfg.StartingBalance-10, g.Human().Balance)
		r := onlyResult(t, g.Human())
		assert.Equal(t, player.DealerBlackjack, r.Reason)
	})

	t.Run("insurance lost when dealer has no blackjack", func(t *testing.T) {
		cfg := config.Default()
		g := newStackedGame(t, cfg, "T A 9 7")

		require.NoError(t, g.Step(move.Deal))
		require.NoError(t, g.Step(move.Insure))
		require.Equal(t, WaitingForPlayInput, g.State())
		require.NoError(t, g.Step(move.Stand))

		// 19 against a soft 18
		assert.Equal(t, cfg.StartingBalance-5+10, g.Human().Balance)
	})
}

func TestDealerPeek(t *testing.T) {
	cfg := config.Default()
	g := newStackedGame(t, cfg, "9 K 7 A")

	require.NoError(t, g.Step(move.Deal))
	assert.Equal(t, WaitingForNewGameInput, g.State())
	assert.Equal(t, cfg.StartingBalance-10, g.Human().Balance)

	r := onlyResult(t, g.Human())
	assert.Equal(t, player.DealerWin, r.Outcome)
	assert.Equal(t, player.DealerBlackjack, r.Reason)
	// 9 and 7 count zero, the ten and the revealed ace count -1 each
	assert.Equal(t, -2, g.Shoe().RunningCount())
}

func TestHoleCardCountedOnReveal(t *testing.T) {
	cfg := config.Default()
	g := newStackedGame(t, cfg, "T 7 8 5 3 3")

	require.NoError(t, g.Step(move.Deal))
	// T, 7 and 8 are up; the hole 5 is not yet counted
	assert.Equal(t, -1, g.Shoe().RunningCount())

	require.NoError(t, g.Step(move.Stand))
	// the revealed 5 and both drawn 3s are counted
	assert.Equal(t, 2, g.Shoe().RunningCount())
	r := onlyResult(t, g.Human())
	assert.Equal(t, player.Push, r.Outcome)
}

func TestDouble(t *testing.T) {
	cfg := config.Default()
	g := newStackedGame(t, cfg, "6 5 5 K T 9")

	require.NoError(t, g.Step(move.Deal))
	require.Equal(t, move.Double, g.Advise())
	require.NoError(t, g.Step(move.Double))

	assert.Equal(t, WaitingForNewGameInput, g.State())
	h := g.Human().Hand(0)
	assert.True(t, h.Doubled)
	assert.Equal(t, 20.0, h.Bet)
	assert.Equal(t, cfg.StartingBalance+20, g.Human().Balance)
	assert.Equal(t, player.DealerBust, onlyResult(t, g.Human()).Reason)
}

func TestDoubleInsufficientBalance(t *testing.T) {
	cfg := config.Default()
	cfg.StartingBalance = 15
	g := newStackedGame(t, cfg, "5 5 6 K T 9")

	require.NoError(t, g.Step(move.Deal))
	err := g.Step(move.Double)
	require.ErrorIs(t, err, player.ErrInsufficientBalance)
	assert.Equal(t, WaitingForPlayInput, g.State())
	assert.Equal(t, 5.0, g.Human().Balance)
	assert.False(t, g.Human().Hand(0).Doubled)
}

func TestDealInsufficientBalance(t *testing.T) {
	cfg := config.Default()
	cfg.StartingBalance = 5
	g := newStackedGame(t, cfg, "5 5 6 K")

	err := g.Step(move.Deal)
	require.ErrorIs(t, err, player.ErrInsufficientBalance)
	assert.Equal(t, Start, g.State())
	assert.Equal(t, 0, g.Human().HandCount())
}

func TestSplit(t *testing.T) {
	cfg := config.Default()
	g := newStackedGame(t, cfg, "8 6 8 K 3 T 9")

	require.NoError(t, g.Step(move.Deal))
	require.Equal(t, move.Split, g.Advise())
	require.NoError(t, g.Step(move.Split))

	require.Equal(t, WaitingForPlayInput, g.State())
	require.Equal(t, 2, g.Human().HandCount())
	first, second := g.Human().Hand(0), g.Human().Hand(1)
	assert.Equal(t, "8 3", first.Serialize(false))
	assert.Equal(t, "8 T", second.Serialize(false))
	assert.True(t, first.FromSplit)
	assert.True(t, second.FromSplit)
	assert.Equal(t, first, g.FocusedHand())

	require.NoError(t, g.Step(move.Stand))
	assert.Equal(t, 1, g.Session().FocusedHand)
	require.NoError(t, g.Step(move.Stand))

	assert.Equal(t, WaitingForNewGameInput, g.State())
	assert.Equal(t, cfg.StartingBalance+20, g.Human().Balance)
	assert.Equal(t, 20.0, g.Human().Wagered)
}

func TestSplitAcesTakeOneCard(t *testing.T) {
	cfg := config.Default()
	g := newStackedGame(t, cfg, "A 6 A K T 5 9")

	require.NoError(t, g.Step(move.Deal))
	require.NoError(t, g.Step(move.Split))

	assert.Equal(t, WaitingForNewGameInput, g.State(), "both split aces finish after one card")
	first, second := g.Human().Hand(0), g.Human().Hand(1)
	assert.Equal(t, 21, first.CardTotal())
	assert.False(t, first.IsBlackjack(), "split hands are never naturals")
	assert.Equal(t, 16, second.CardTotal())

	r1, _ := g.Human().Result(first.ID)
	r2, _ := g.Human().Result(second.ID)
	assert.Equal(t, player.PlayerWin, r1.Outcome)
	assert.Equal(t, 20.0, r1.Payout, "a split 21 pays even money")
	assert.Equal(t, player.PlayerWin, r2.Outcome)
}

func TestDealerSoft17(t *testing.T) {
	tests := []struct {
		name      string
		hitSoft17 bool
		outcome   player.Outcome
	}{
		{"hits soft 17", true, player.DealerWin},
		{"stands on soft 17", false, player.PlayerWin},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := config.Default()
			cfg.Rules.HitSoft17 = tt.hitSoft17
			g := newStackedGame(t, cfg, "T 6 8 A 2")

			require.NoError(t, g.Step(move.Deal))
			require.NoError(t, g.Step(move.Stand))
			assert.Equal(t, tt.outcome, onlyResult(t, g.Human()).Outcome)
		})
	}
}

func TestDealerSkipsDrawWhenAllHandsSettled(t *testing.T) {
	cfg := config.Default()
	g := newStackedGame(t, cfg, "T 6 6 5 K 2")

	require.NoError(t, g.Step(move.Deal))
	require.NoError(t, g.Step(move.Hit))

	assert.Equal(t, WaitingForNewGameInput, g.State())
	assert.Equal(t, player.Bust, onlyResult(t, g.Human()).Reason)
	assert.Equal(t, 2, g.Dealer().Cards().Len())
	assert.Equal(t, 1, g.Shoe().Remaining())
}

func TestShoeExhaustion(t *testing.T) {
	cfg := config.Default()
	g := newStackedGame(t, cfg, "8 6 8 K")

	var shuffles []ShuffleEvent
	g.Bus().Subscribe(SubscriberFunc(func(e GameEvent) {
		if se, ok := e.(ShuffleEvent); ok {
			assert.Equal(t, 0, g.Shoe().RunningCount(), "count resets on reshuffle")
			shuffles = append(shuffles, se)
		}
	}))

	require.NoError(t, g.Step(move.Deal))
	require.NoError(t, g.Step(move.Hit))

	assert.Equal(t, WaitingForNewGameInput, g.State())
	r := onlyResult(t, g.Human())
	assert.Equal(t, player.Push, r.Outcome)
	assert.Equal(t, player.Exhausted, r.Reason)
	assert.Equal(t, cfg.StartingBalance, g.Human().Balance)

	require.NoError(t, g.Step(move.Deal))
	require.Len(t, shuffles, 1)
	assert.True(t, shuffles[0].Forced)
	assert.Greater(t, g.Shoe().Remaining(), 300)
	assert.Equal(t, 1, g.Human().HandCount())
}

func TestAutomatedSeats(t *testing.T) {
	cfg := config.Default()
	cfg.Rules.Seats = 3
	cfg.Rules.SeatPosition = 1
	// right seat T,6; you 9,9; left seat 5,8; dealer 7 with K in the hole
	g := newStackedGame(t, cfg, "T 9 5 7 6 9 8 K 2 4")

	require.NoError(t, g.Step(move.Deal))
	require.Equal(t, WaitingForPlayInput, g.State())

	players := g.Players()
	right, left := players[0], players[2]
	assert.Equal(t, "T 6 2", right.Hand(0).Serialize(false), "right seat plays before you")
	assert.Equal(t, 2, left.Hand(0).Len(), "left seat waits for you")
	assert.Equal(t, move.Stand, g.Advise())

	require.NoError(t, g.Step(move.Stand))
	assert.Equal(t, "5 8 4", left.Hand(0).Serialize(false))

	assert.Equal(t, player.PlayerWin, onlyResult(t, right).Outcome)
	assert.Equal(t, player.PlayerWin, onlyResult(t, g.Human()).Outcome)
	assert.Equal(t, player.Push, onlyResult(t, left).Outcome)
}

func TestAdvisorTiers(t *testing.T) {
	// the right seat's 2,3 and your 6 push the count positive before you act
	cards := "2 6 T 3 T 9 7 7 2 2 2 2"
	layout := func(advisor string) config.Config {
		cfg := config.Default()
		cfg.Rules.Seats = 2
		cfg.Rules.SeatPosition = 1
		cfg.Advisor = advisor
		return cfg
	}

	basic := newStackedGame(t, layout("basic"), cards)
	require.NoError(t, basic.Step(move.Deal))
	require.Equal(t, WaitingForPlayInput, basic.State())
	require.Positive(t, basic.Shoe().TrueCount())
	assert.Equal(t, move.Surrender, basic.Advise(), "16 against a ten surrenders")

	counter := newStackedGame(t, layout("i18"), cards)
	require.NoError(t, counter.Step(move.Deal))
	assert.Equal(t, move.Stand, counter.Advise(), "16 against a ten stands at a true count of 0 or more")
}

func TestEventsAndRecords(t *testing.T) {
	cfg := config.Default()
	g := newStackedGame(t, cfg, "6 J Q J")

	var types []EventType
	var records []CreateRecordEvent
	var winners []HandWinnerEvent
	g.Bus().Subscribe(SubscriberFunc(func(e GameEvent) {
		types = append(types, e.EventType())
		switch ev := e.(type) {
		case CreateRecordEvent:
			records = append(records, ev)
		case HandWinnerEvent:
			winners = append(winners, ev)
		}
	}))

	require.NoError(t, g.Step(move.Deal))
	require.NoError(t, g.Step(move.Surrender))

	require.Len(t, records, 2)
	mr, ok := records[0].Record.(MoveRecord)
	require.True(t, ok)
	assert.Equal(t, MoveRecordName, records[0].Name)
	assert.Equal(t, "surrender", mr.Move)
	assert.Equal(t, "6 Q", mr.PlayerHand)
	assert.Equal(t, "J ?", mr.DealerHand)
	assert.Equal(t, g.Session().GameID, mr.GameID)

	hr, ok := records[1].Record.(HandRecord)
	require.True(t, ok)
	assert.Equal(t, "J J", hr.DealerHand)
	assert.Equal(t, "dealer (surrender)", hr.Winner)

	require.Len(t, winners, 1)
	assert.Equal(t, g.Human().ID, winners[0].PlayerID)
	assert.Contains(t, types, EventTypeStateChange)

	require.NoError(t, g.Step(move.Deal))
	assert.Contains(t, types, EventTypeResetState)
}

func TestEventsDisabled(t *testing.T) {
	cfg := config.Default()
	g := newStackedGame(t, cfg, "6 J Q J", WithEventsDisabled())

	called := 0
	g.Bus().Subscribe(SubscriberFunc(func(GameEvent) { called++ }))
	require.NoError(t, g.Step(move.Deal))
	require.NoError(t, g.Step(move.Surrender))
	assert.Zero(t, called)
	assert.Equal(t, cfg.StartingBalance-5, g.Human().Balance)
}

func TestNewValidatesConfig(t *testing.T) {
	cfg := config.Default()
	cfg.Rules.SeatPosition = 3
	_, err := New(cfg, WithRand(randutil.New(1)))
	require.ErrorIs(t, err, config.ErrInvalidConfig)

	cfg = config.Default()
	cfg.Advisor = "user"
	_, err = New(cfg, WithRand(randutil.New(1)))
	require.ErrorIs(t, err, config.ErrInvalidConfig)

	cfg = config.Default()
	cfg.Rules.Seats = 2
	cfg.Strategies = map[int]string{1: "card-shark"}
	_, err = New(cfg, WithRand(randutil.New(1)))
	require.ErrorIs(t, err, config.ErrInvalidConfig)
}

func TestSetBet(t *testing.T) {
	cfg := config.Default()
	g := newStackedGame(t, cfg, "6 J Q J 2")

	require.ErrorIs(t, g.SetBet(1), ErrInvalidBet)
	require.NoError(t, g.SetBet(50))
	require.NoError(t, g.Step(move.Deal))
	assert.Equal(t, 50.0, g.Human().Hand(0).Bet)
	require.ErrorIs(t, g.SetBet(20), ErrRoundInProgress)
}

func TestLegalMoves(t *testing.T) {
	cfg := config.Default()
	g := newStackedGame(t, cfg, "6 J Q J 2")

	assert.Equal(t, []move.Move{move.Deal}, g.LegalMoves())
	require.NoError(t, g.Step(move.Deal))
	assert.Equal(t, []move.Move{move.Hit, move.Stand, move.Double, move.Surrender}, g.LegalMoves())

	require.NoError(t, g.Step(move.Hit))
	assert.Equal(t, []move.Move{move.Hit, move.Stand}, g.LegalMoves())
}

func TestManyRoundsConserveChips(t *testing.T) {
	cfg := config.Default()
	cfg.Rules.Seats = 3
	cfg.Rules.SeatPosition = 1
	cfg.Rules.Spots = 2
	cfg.Strategies = map[int]string{0: "i18", 2: "deviations"}
	g, err := New(cfg, WithRand(randutil.New(7)), WithEventsDisabled())
	require.NoError(t, err)

	for range 500 {
		require.NoError(t, g.Step(g.Advise()))
		for g.State() != WaitingForNewGameInput {
			require.NoError(t, g.Step(g.Advise()))
		}
		for _, p := range g.Players() {
			assert.GreaterOrEqual(t, p.Balance, 0.0)
			for _, h := range p.Hands() {
				assert.True(t, h.Settled, "every hand is settled when the round ends")
			}
		}
		assert.LessOrEqual(t, g.Shoe().Remaining()+g.Shoe().Discards(), g.Shoe().Capacity())
	}
	assert.Equal(t, 500, g.Session().Rounds)
	assert.Equal(t, g.Session().LifetimeMoves, g.Session().LifetimeCorrect)
}
