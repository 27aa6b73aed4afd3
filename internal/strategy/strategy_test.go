package strategy

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/lox/blackjack/internal/config"
	"github.com/lox/blackjack/internal/deck"
	"github.com/lox/blackjack/internal/hand"
	"github.com/lox/blackjack/internal/move"
)

func handOf(cards string) *hand.Hand {
	h := hand.New(1, 0)
	for _, c := range deck.MustParseCards(cards) {
		h.TakeCard(c, false)
	}
	return h
}

func upcard(r deck.Rank) deck.Card {
	return deck.NewCard(deck.Hearts, r)
}

func TestSuggestMultiDeckH17(t *testing.T) {
	rules := config.DefaultRules()

	tests := []struct {
		name   string
		cards  string
		upcard deck.Rank
		want   move.Move
	}{
		{"hard 16 vs ten surrenders", "T 6", deck.King, move.Surrender},
		{"hard 16 vs 7 hits", "T 6", deck.Seven, move.Hit},
		{"hard 12 vs 4 stands", "T 2", deck.Four, move.Stand},
		{"hard 11 vs ace doubles under H17", "6 5", deck.Ace, move.Double},
		{"soft 18 vs 9 hits", "A 7", deck.Nine, move.Hit},
		{"soft 18 vs 2 doubles under H17", "A 7", deck.Two, move.Double},
		{"pair of eights vs ace surrenders under H17", "8 8", deck.Ace, move.Surrender},
		{"pair of aces splits", "A A", deck.Six, move.Split},
		{"tens stand", "K Q", deck.Six, move.Stand},
		{"pair of fives doubles as ten", "5 5", deck.Six, move.Double},
		{"hard 17 vs ace surrenders under H17", "T 7", deck.Ace, move.Surrender},
		{"hard 20 stands", "T Q", deck.Ace, move.Stand},
		{"hard 5 hits", "2 3", deck.Six, move.Hit},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Suggest(rules, handOf(tt.cards), upcard(tt.upcard), 1))
		})
	}
}

func TestSuggestS17Patches(t *testing.T) {
	rules := config.DefaultRules()
	rules.HitSoft17 = false

	assert.Equal(t, move.Hit, Suggest(rules, handOf("6 5"), upcard(deck.Ace), 1))
	assert.Equal(t, move.Stand, Suggest(rules, handOf("T 7"), upcard(deck.Ace), 1))
	assert.Equal(t, move.Stand, Suggest(rules, handOf("A 7"), upcard(deck.Two), 1))
	assert.Equal(t, move.Split, Suggest(rules, handOf("8 8"), upcard(deck.Ace), 1))
}

func TestConditionalCodesCollapse(t *testing.T) {
	rules := config.DefaultRules()

	t.Run("double else hit after first decision", func(t *testing.T) {
		h := handOf("2 3 6")
		assert.Equal(t, move.Hit, Suggest(rules, h, upcard(deck.Six), 1))
	})

	t.Run("double else stand after first decision", func(t *testing.T) {
		h := handOf("A 2 5")
		assert.Equal(t, move.Stand, Suggest(rules, h, upcard(deck.Four), 1))
	})

	t.Run("split else hit without DAS", func(t *testing.T) {
		noDAS := rules
		noDAS.DoubleAfterSplit = false
		assert.Equal(t, move.Hit, Suggest(noDAS, handOf("2 2"), upcard(deck.Two), 1))
		assert.Equal(t, move.Split, Suggest(rules, handOf("2 2"), upcard(deck.Two), 1))
	})

	t.Run("surrender else hit without late surrender", func(t *testing.T) {
		noLS := rules
		noLS.LateSurrender = false
		assert.Equal(t, move.Hit, Suggest(noLS, handOf("T 6"), upcard(deck.Ten), 1))
	})

	t.Run("surrender else stand", func(t *testing.T) {
		noLS := rules
		noLS.LateSurrender = false
		assert.Equal(t, move.Stand, Suggest(noLS, handOf("T 7"), upcard(deck.Ace), 1))
	})

	t.Run("surrender else split", func(t *testing.T) {
		noLS := rules
		noLS.LateSurrender = false
		assert.Equal(t, move.Split, Suggest(noLS, handOf("8 8"), upcard(deck.Ace), 1))
	})

	t.Run("pair plays as total when split is illegal", func(t *testing.T) {
		assert.Equal(t, move.Surrender, Suggest(rules, handOf("8 8"), upcard(deck.Ten), rules.MaxHands))
	})
}

func TestResolveTable(t *testing.T) {
	all := Legality{Double: true, Split: true, Surrender: true, DoubleAfterSplit: true}
	none := Legality{}

	tests := []struct {
		code      Code
		withAll   move.Move
		withNone  move.Move
	}{
		{H, move.Hit, move.Hit},
		{S, move.Stand, move.Stand},
		{P, move.Split, move.Hit},
		{Dh, move.Double, move.Hit},
		{Ds, move.Double, move.Stand},
		{Ph, move.Split, move.Hit},
		{Pd, move.Split, move.Hit},
		{Rh, move.Surrender, move.Hit},
		{Rs, move.Surrender, move.Stand},
		{Rp, move.Surrender, move.Hit},
	}
	for _, tt := range tests {
		t.Run(tt.code.String(), func(t *testing.T) {
			assert.Equal(t, tt.withAll, tt.code.Resolve(all))
			assert.Equal(t, tt.withNone, tt.code.Resolve(none))
		})
	}

	assert.Equal(t, move.Double, Pd.Resolve(Legality{Double: true, Split: true}))
}

func TestChartForFallsBackToMultiDeck(t *testing.T) {
	assert.Same(t, ChartFor(6, true), ChartFor(4, true))
	assert.Same(t, ChartFor(8, false), ChartFor(5, false))
	assert.NotSame(t, ChartFor(1, true), ChartFor(6, true))
	assert.Equal(t, "2 decks, S17", ChartFor(2, false).Name)
}

func TestLookupClamps(t *testing.T) {
	c := ChartFor(6, true)
	assert.Equal(t, H, c.Lookup(Hard, 4, 6), "totals below the chart hit")
	assert.Equal(t, S, c.Lookup(Hard, 21, 11), "totals above the chart stand")
	assert.Equal(t, S, c.Lookup(Soft, 21, 10))
}

func TestSingleDeckDifferences(t *testing.T) {
	rules := config.DefaultRules()
	rules.Decks = 1
	assert.Equal(t, move.Double, Suggest(rules, handOf("5 3"), upcard(deck.Six), 1))
	rules.Decks = 6
	assert.Equal(t, move.Hit, Suggest(rules, handOf("5 3"), upcard(deck.Six), 1))
}

func TestInsuranceAlwaysDeclined(t *testing.T) {
	assert.Equal(t, move.DeclineInsurance, SuggestInsurance())
}

func TestUncommonHands(t *testing.T) {
	assert.NotEmpty(t, UncommonHands(6))
	assert.NotEmpty(t, UncommonHands(2))
	assert.Nil(t, UncommonHands(1), "no curated table for single deck")
	assert.Nil(t, UncommonHands(4))

	for _, s := range UncommonHands(6) {
		assert.GreaterOrEqual(t, s.Upcard, 2)
		assert.LessOrEqual(t, s.Upcard, 11)
	}
}
