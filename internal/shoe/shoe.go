// Package shoe implements the multi-deck shoe: drawing, Hi-Lo counting,
// reshuffle policy and the arranged shuffles used for training drills.
package shoe

import (
	"errors"
	"io"
	"math/rand/v2"

	"github.com/charmbracelet/log"

	"github.com/lox/blackjack/internal/config"
	"github.com/lox/blackjack/internal/deck"
)

// ErrShoeEmpty is returned when a card is drawn from an exhausted shoe.
var ErrShoeEmpty = errors.New("shoe is empty")

// ReshuffleThreshold is the remaining fraction of the shoe below which the
// shoe is reshuffled before the next round.
const ReshuffleThreshold = 0.35

// Shoe is a stack of cards drawn from the top (the end of the slice).
type Shoe struct {
	cards        []deck.Card
	decks        int
	maxCards     int
	discards     int
	runningCount int

	rules  config.Rules
	mode   config.TrainingMode
	rng    *rand.Rand
	logger *log.Logger

	drill *Drill
}

// New creates a shuffled shoe for the table rules. The rng is required so
// every shuffle is reproducible from its seed.
func New(rules config.Rules, mode config.TrainingMode, rng *rand.Rand, logger *log.Logger) *Shoe {
	if rng == nil {
		panic("rng is required for shoe creation")
	}
	if logger == nil {
		logger = log.New(io.Discard)
	}
	if mode == "" {
		mode = config.ModeDefault
	}
	s := &Shoe{
		decks:    rules.Decks,
		maxCards: rules.Decks * deck.CardsPerDeck,
		rules:    rules,
		mode:     mode,
		rng:      rng,
		logger:   logger,
	}
	s.Shuffle(Layout{Hands: 1})
	return s
}

// NewFromCards creates a shoe holding exactly the given cards; the first
// card is drawn first. Nothing is shuffled, so it suits exhaustion tests.
func NewFromCards(rules config.Rules, rng *rand.Rand, cards []deck.Card) *Shoe {
	s := New(rules, config.ModeDefault, rng, nil)
	s.cards = s.cards[:0]
	for i := len(cards) - 1; i >= 0; i-- {
		c := cards[i]
		c.ID = i
		c.FaceUp = false
		s.cards = append(s.cards, c)
	}
	return s
}

// Draw pops the top card and sets its face. Only face-up cards are counted.
func (s *Shoe) Draw(faceUp bool) (deck.Card, error) {
	n := len(s.cards)
	if n == 0 {
		return deck.Card{}, ErrShoeEmpty
	}
	c := s.cards[n-1]
	s.cards = s.cards[:n-1]
	c.FaceUp = faceUp
	if faceUp {
		s.runningCount += c.HiLo()
	}
	return c, nil
}

// Flip turns a card over and moves the running count with it: revealing adds
// the card's weight, hiding it again takes the weight back out.
func (s *Shoe) Flip(c *deck.Card) {
	c.FaceUp = !c.FaceUp
	if c.FaceUp {
		s.runningCount += c.HiLo()
	} else {
		s.runningCount -= c.HiLo()
	}
}

// Reveal flips a face-down card face up; face-up cards are left alone.
func (s *Shoe) Reveal(c *deck.Card) {
	if !c.FaceUp {
		s.Flip(c)
	}
}

// Discard records n cards leaving play into the discard tray.
func (s *Shoe) Discard(n int) {
	s.discards += n
}

// Remaining returns the number of undealt cards
func (s *Shoe) Remaining() int {
	return len(s.cards)
}

// Discards returns the number of cards in the discard tray
func (s *Shoe) Discards() int {
	return s.discards
}

// Capacity returns decks×52
func (s *Shoe) Capacity() int {
	return s.maxCards
}

// Decks returns the number of decks the shoe was built from
func (s *Shoe) Decks() int {
	return s.decks
}

// Mode returns the training mode applied on shuffle
func (s *Shoe) Mode() config.TrainingMode {
	return s.mode
}

// RunningCount returns the Hi-Lo running count since the last shuffle.
func (s *Shoe) RunningCount() int {
	return s.runningCount
}

// DecksRemaining is the undealt fraction of the shoe in decks.
func (s *Shoe) DecksRemaining() float64 {
	return float64(len(s.cards)) / float64(s.maxCards) * float64(s.decks)
}

// TrueCount is the running count per remaining deck. An empty shoe has a
// true count of zero.
func (s *Shoe) TrueCount() float64 {
	dr := s.DecksRemaining()
	if dr == 0 {
		return 0
	}
	return float64(s.runningCount) / dr
}

// Penetration is the fraction of the shoe already dealt.
func (s *Shoe) Penetration() float64 {
	return 1 - float64(len(s.cards))/float64(s.maxCards)
}

// NeedsReset reports whether the shoe must be reshuffled before the next
// round: always in a training mode, otherwise once the remaining fraction
// drops under the penetration threshold.
func (s *Shoe) NeedsReset() bool {
	if s.mode != config.ModeDefault {
		return true
	}
	return float64(len(s.cards))/float64(s.maxCards) < ReshuffleThreshold
}

// Drill returns the arranged scenario of the last shuffle, if any.
func (s *Shoe) Drill() *Drill {
	return s.drill
}

// Shuffle replaces the shoe with a freshly shuffled set of decks and resets
// the count, then arranges the top of the shoe for the training mode.
func (s *Shoe) Shuffle(layout Layout) {
	s.cards = deck.NewCards(s.decks)
	s.rng.Shuffle(len(s.cards), func(i, j int) {
		s.cards[i], s.cards[j] = s.cards[j], s.cards[i]
	})
	s.discards = 0
	s.runningCount = 0
	s.drill = nil

	switch s.mode {
	case config.ModePairs:
		s.arrangePair(layout)
	case config.ModeUncommon:
		s.arrangeUncommon(layout)
	case config.ModeDeviations:
		s.arrangeDeviation(layout)
	}
}

// Stack moves cards of the given ranks to the top of the shoe, in draw
// order, without changing the multiset of cards in the shoe.
func (s *Shoe) Stack(ranks ...deck.Rank) {
	fixed := make(map[int]bool, len(ranks))
	for pos, r := range ranks {
		s.place(pos, r, fixed)
	}
}

// place swaps a card of the rank into draw position pos, skipping positions
// already fixed by the arrangement.
func (s *Shoe) place(pos int, rank deck.Rank, fixed map[int]bool) bool {
	n := len(s.cards)
	if pos >= n {
		return false
	}
	target := n - 1 - pos
	if s.cards[target].Rank == rank {
		fixed[pos] = true
		return true
	}
	for k := 0; k < n; k++ {
		if k == pos || fixed[k] {
			continue
		}
		idx := n - 1 - k
		if s.cards[idx].Rank == rank {
			s.cards[idx], s.cards[target] = s.cards[target], s.cards[idx]
			fixed[pos] = true
			return true
		}
	}
	return false
}
