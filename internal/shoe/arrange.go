package shoe

import (
	"math"

	"github.com/lox/blackjack/internal/deck"
	"github.com/lox/blackjack/internal/deviation"
	"github.com/lox/blackjack/internal/strategy"
)

// Layout describes where the training seat sits in the opening deal. Hands
// is the number of player hands dealt this round and HandsBefore the number
// dealt ahead of the first training hand.
type Layout struct {
	HandsBefore int
	Hands       int
}

func (l Layout) normalized() Layout {
	if l.Hands < 1 {
		l.Hands = 1
	}
	if l.HandsBefore < 0 || l.HandsBefore >= l.Hands {
		l.HandsBefore = 0
	}
	return l
}

// FirstCard is the draw position of the training hand's first card.
func (l Layout) FirstCard() int { return l.normalized().HandsBefore }

// SecondCard is the draw position of the training hand's second card.
func (l Layout) SecondCard() int {
	n := l.normalized()
	return n.Hands + 1 + n.HandsBefore
}

// Upcard is the draw position of the dealer's upcard.
func (l Layout) Upcard() int { return l.normalized().Hands }

// HoleCard is the draw position of the dealer's hole card.
func (l Layout) HoleCard() int { return 2*l.normalized().Hands + 1 }

// Drill describes the arranged opening of a training shuffle.
type Drill struct {
	Player    [2]deck.Rank
	Upcard    deck.Rank
	Scenario  *strategy.Scenario
	Deviation *deviation.Entry
	// TargetCount is the running count the shoe is set to reach once the
	// arranged cards are revealed.
	TargetCount int
	// Misses is set when the count was pushed to the side of the threshold
	// where the deviation does not apply.
	Misses bool
}

func (s *Shoe) rank(value int) deck.Rank {
	ranks := deck.RanksForValue(value)
	return ranks[s.rng.IntN(len(ranks))]
}

// neutral picks a rank with no Hi-Lo weight.
func (s *Shoe) neutral() deck.Rank {
	return deck.Seven + deck.Rank(s.rng.IntN(3))
}

func (s *Shoe) arrange(layout Layout, p1, p2, up deck.Rank) {
	fixed := make(map[int]bool, 3)
	s.place(layout.Upcard(), up, fixed)
	s.place(layout.FirstCard(), p1, fixed)
	s.place(layout.SecondCard(), p2, fixed)
}

// arrangePair deals the training hand two cards of the same rank.
func (s *Shoe) arrangePair(layout Layout) {
	r := deck.Rank(s.rng.IntN(int(deck.Ace)-int(deck.Two)+1) + int(deck.Two))
	fixed := make(map[int]bool, 2)
	s.place(layout.FirstCard(), r, fixed)
	s.place(layout.SecondCard(), r, fixed)
	s.drill = &Drill{Player: [2]deck.Rank{r, r}}
	s.logger.Debug("Arranged pair", "rank", r)
}

// arrangeUncommon deals one of the curated rare scenarios for the deck
// count. Deck counts without a curated table are dealt normally.
func (s *Shoe) arrangeUncommon(layout Layout) {
	scenarios := strategy.UncommonHands(s.decks)
	if len(scenarios) == 0 {
		s.logger.Warn("No uncommon hands for deck count", "decks", s.decks)
		return
	}
	sc := scenarios[s.rng.IntN(len(scenarios))]
	p1, p2 := s.handFor(sc.Category, sc.Total)
	up := s.rank(sc.Upcard)
	s.arrange(layout, p1, p2, up)
	s.drill = &Drill{Player: [2]deck.Rank{p1, p2}, Upcard: up, Scenario: &sc}
	s.logger.Debug("Arranged uncommon hand", "category", sc.Category, "total", sc.Total, "upcard", sc.Upcard)
}

// handFor picks two ranks forming the category and total. Hard totals avoid
// pairs where another split exists.
func (s *Shoe) handFor(cat strategy.Category, total int) (deck.Rank, deck.Rank) {
	switch cat {
	case strategy.Pair:
		r := s.rank(total)
		return r, r
	case strategy.Soft:
		return deck.Ace, s.rank(total - 11)
	}
	var firsts []int
	for v := max(2, total-10); v <= min(10, total-2); v++ {
		if v != total-v {
			firsts = append(firsts, v)
		}
	}
	if len(firsts) == 0 {
		r := s.rank(total / 2)
		return r, r
	}
	v := firsts[s.rng.IntN(len(firsts))]
	return s.rank(v), s.rank(total - v)
}

// arrangeDeviation deals the opening of a deviation and sets the running
// count so the true count after the reveal lands on the boundary, or half
// the time a full deck's worth on the wrong side of it.
func (s *Shoe) arrangeDeviation(layout Layout) {
	entries := deviation.Entries(s.rules.LateSurrender)
	e := entries[s.rng.IntN(len(entries))]

	up := s.rank(e.DealerCard)
	var p1, p2 deck.Rank
	switch {
	case e.PlayerTotal == deviation.InsuranceTotal:
		// any hand faces the insurance question; neutral cards keep the
		// count where it was set
		p1, p2 = s.neutral(), s.neutral()
	case e.PairOnly:
		p1, p2 = s.handFor(strategy.Pair, e.PlayerTotal/2)
	default:
		p1, p2 = s.handFor(strategy.Hard, e.PlayerTotal)
	}
	s.arrange(layout, p1, p2, up)

	const revealed = 3
	forced := up.HiLo() + p1.HiLo() + p2.HiLo()
	dr := float64(len(s.cards)-revealed) / float64(deck.CardsPerDeck)
	target := targetCount(e.Threshold, dr)
	miss := s.rng.IntN(2) == 0
	if miss {
		shift := int(math.Ceil(dr))
		if e.Threshold.Upward() {
			target -= shift
		} else {
			target += shift
		}
	}
	s.runningCount = target - forced

	s.drill = &Drill{
		Player:      [2]deck.Rank{p1, p2},
		Upcard:      up,
		Deviation:   &e,
		TargetCount: target,
		Misses:      miss,
	}
	s.logger.Debug("Arranged deviation", "entry", e.String(), "target", target, "misses", miss)
}

// targetCount is the running count closest to the threshold boundary that
// still satisfies it with dr decks remaining.
func targetCount(t deviation.Threshold, dr float64) int {
	x := t.Value * dr
	switch t.Comparator {
	case deviation.AtLeast:
		return int(math.Ceil(x))
	case deviation.Above:
		return int(math.Floor(x)) + 1
	case deviation.AtMost:
		return int(math.Floor(x))
	default:
		return int(math.Ceil(x)) - 1
	}
}
