// Package hand models one blackjack hand: the cards held by a single player
// position, its running totals and the rule-dependent move eligibility.
package hand

import (
	"strings"

	"github.com/lox/blackjack/internal/config"
	"github.com/lox/blackjack/internal/deck"
)

// Bust is the total above which a hand is busted.
const Bust = 21

// Hand is an ordered sequence of cards belonging to one player position.
// Totals are maintained incrementally as cards are added and removed.
type Hand struct {
	ID    int
	Owner int
	Bet   float64

	cards     []deck.Card
	highAdds  []int
	highTotal int
	lowTotal  int
	aces      int

	// FromSplit marks both halves of a split; neither can be a natural.
	FromSplit bool
	// SplitAces marks a hand started from a split pair of aces.
	SplitAces bool

	Acted       bool
	Doubled     bool
	Surrendered bool
	Insurance   float64
	Finished    bool
	Settled     bool
}

// New creates an empty hand.
func New(id, owner int) *Hand {
	return &Hand{ID: id, Owner: owner, cards: make([]deck.Card, 0, 8), highAdds: make([]int, 0, 8)}
}

// Reset clears the hand for reuse from a pool, keeping its identity.
func (h *Hand) Reset() {
	id, owner := h.ID, h.Owner
	cards, adds := h.cards[:0], h.highAdds[:0]
	*h = Hand{ID: id, Owner: owner, cards: cards, highAdds: adds}
}

// TakeCard adds a card at the end, or at the front when prepend is set.
// An ace raises the high total by 11 if that keeps it at or under 21,
// otherwise by 1; the low total always counts aces as 1.
func (h *Hand) TakeCard(c deck.Card, prepend bool) {
	add := c.Value()
	low := add
	if c.IsAce() {
		h.aces++
		low = 1
		if h.highTotal+11 > Bust {
			add = 1
		}
	}
	h.highTotal += add
	h.lowTotal += low

	if prepend {
		h.cards = append([]deck.Card{c}, h.cards...)
		h.highAdds = append([]int{add}, h.highAdds...)
		return
	}
	h.cards = append(h.cards, c)
	h.highAdds = append(h.highAdds, add)
}

// RemoveCard pops the last card and reverses exactly what adding it did.
// It is used to detach the second card of a pair when splitting.
func (h *Hand) RemoveCard() (deck.Card, bool) {
	n := len(h.cards)
	if n == 0 {
		return deck.Card{}, false
	}
	c := h.cards[n-1]
	add := h.highAdds[n-1]
	h.cards = h.cards[:n-1]
	h.highAdds = h.highAdds[:n-1]

	h.highTotal -= add
	if c.IsAce() {
		h.aces--
		h.lowTotal--
	} else {
		h.lowTotal -= c.Value()
	}
	return c, true
}

// Cards returns the cards in the hand. The slice must not be modified.
func (h *Hand) Cards() []deck.Card {
	return h.cards
}

// Card returns a pointer to the i-th card so its face can be flipped.
func (h *Hand) Card(i int) *deck.Card {
	return &h.cards[i]
}

// Len returns the number of cards
func (h *Hand) Len() int {
	return len(h.cards)
}

// HighTotal returns the total with one ace counted as 11 where it fit.
func (h *Hand) HighTotal() int { return h.highTotal }

// LowTotal returns the total with every ace counted as 1.
func (h *Hand) LowTotal() int { return h.lowTotal }

// Aces returns the number of aces held.
func (h *Hand) Aces() int { return h.aces }

// CardTotal is the best total: the high total unless it busts.
func (h *Hand) CardTotal() int {
	if h.highTotal <= Bust {
		return h.highTotal
	}
	return h.lowTotal
}

// VisibleTotal totals only face-up cards, as an observer would see them.
func (h *Hand) VisibleTotal() int {
	v := New(h.ID, h.Owner)
	for _, c := range h.cards {
		if c.FaceUp {
			v.TakeCard(c, false)
		}
	}
	return v.CardTotal()
}

// IsBlackjack reports an untouched two-card 21 that did not come from a split.
func (h *Hand) IsBlackjack() bool {
	return len(h.cards) == 2 && h.highTotal == Bust && !h.FromSplit
}

// IsBusted reports a total over 21.
func (h *Hand) IsBusted() bool {
	return h.CardTotal() > Bust
}

// IsSoft reports an ace still counted as 11.
func (h *Hand) IsSoft() bool {
	return h.aces > 0 && h.lowTotal <= 11
}

// IsPair reports two cards of equal blackjack value.
func (h *Hand) IsPair() bool {
	return len(h.cards) == 2 && h.cards[0].Value() == h.cards[1].Value()
}

// PairValue returns the value of one card of a pair, aces as 11.
func (h *Hand) PairValue() int {
	if !h.IsPair() {
		return 0
	}
	return h.cards[0].Value()
}

// FirstDecision reports whether no move has been taken on the hand yet.
func (h *Hand) FirstDecision() bool {
	return len(h.cards) == 2 && !h.Acted
}

// AllowSplit reports whether the hand may be split right now: a pair, fewer
// than the table's maximum hands in play, and not a split-ace hand unless
// resplitting aces is allowed.
func (h *Hand) AllowSplit(r config.Rules, handsInPlay int) bool {
	if h.Finished || !h.FirstDecision() || !h.IsPair() {
		return false
	}
	if handsInPlay >= r.MaxHands {
		return false
	}
	if h.SplitAces && !r.ResplitAces {
		return false
	}
	return true
}

// AllowDouble reports whether the hand may double down right now.
func (h *Hand) AllowDouble(r config.Rules) bool {
	if h.Finished || !h.FirstDecision() || h.SplitAces {
		return false
	}
	if h.FromSplit && !r.DoubleAfterSplit {
		return false
	}
	return true
}

// AllowSurrender reports whether late surrender is available right now.
func (h *Hand) AllowSurrender(r config.Rules) bool {
	return r.LateSurrender && !h.Finished && h.FirstDecision() && !h.FromSplit
}

// Serialize renders the ranks in the hand, masking face-down cards as "?"
// unless showHidden is set.
func (h *Hand) Serialize(showHidden bool) string {
	labels := make([]string, len(h.cards))
	for i, c := range h.cards {
		labels[i] = c.Label(showHidden)
	}
	return strings.Join(labels, " ")
}

// String renders the hand with suits, hidden cards masked.
func (h *Hand) String() string {
	parts := make([]string, len(h.cards))
	for i, c := range h.cards {
		if c.FaceUp {
			parts[i] = c.String()
		} else {
			parts[i] = "??"
		}
	}
	return strings.Join(parts, " ")
}
