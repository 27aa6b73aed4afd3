package deck

import (
	"fmt"
	"strings"
)

// Suit represents a card suit
type Suit int

const (
	Spades Suit = iota
	Hearts
	Diamonds
	Clubs
)

// String returns the string representation of a suit
func (s Suit) String() string {
	switch s {
	case Spades:
		return "♠"
	case Hearts:
		return "♥"
	case Diamonds:
		return "♦"
	case Clubs:
		return "♣"
	default:
		return "?"
	}
}

// IsRed returns true if the suit is red (Hearts or Diamonds)
func (s Suit) IsRed() bool {
	return s == Hearts || s == Diamonds
}

// Rank represents a card rank
type Rank int

const (
	Two Rank = iota + 2
	Three
	Four
	Five
	Six
	Seven
	Eight
	Nine
	Ten
	Jack
	Queen
	King
	Ace
)

// String returns the string representation of a rank
func (r Rank) String() string {
	switch r {
	case Ten:
		return "T"
	case Jack:
		return "J"
	case Queen:
		return "Q"
	case King:
		return "K"
	case Ace:
		return "A"
	}
	if r >= Two && r <= Nine {
		return string(rune('0' + int(r)))
	}
	return "?"
}

// Value returns the blackjack point value of the rank. Aces count 11 here;
// hands re-value them to 1 when 11 would bust.
func (r Rank) Value() int {
	switch {
	case r == Ace:
		return 11
	case r >= Ten:
		return 10
	default:
		return int(r)
	}
}

// HiLo returns the Hi-Lo counting weight of the rank.
func (r Rank) HiLo() int {
	switch {
	case r >= Ten:
		return -1
	case r >= Seven:
		return 0
	default:
		return 1
	}
}

// RanksForValue returns every rank worth the given blackjack value.
func RanksForValue(value int) []Rank {
	switch {
	case value == 11 || value == 1:
		return []Rank{Ace}
	case value == 10:
		return []Rank{Ten, Jack, Queen, King}
	case value >= 2 && value <= 9:
		return []Rank{Rank(value)}
	default:
		return nil
	}
}

// Card is a playing card dealt from a shoe. Identity never changes once the
// card is built; only FaceUp flips while it moves between shoe and hands.
type Card struct {
	ID     int
	Suit   Suit
	Rank   Rank
	FaceUp bool
}

// NewCard creates a new face-up card
func NewCard(suit Suit, rank Rank) Card {
	return Card{Suit: suit, Rank: rank, FaceUp: true}
}

// String returns the string representation of a card (e.g., "A♠")
func (c Card) String() string {
	return fmt.Sprintf("%s%s", c.Rank, c.Suit)
}

// Label returns the rank, or "?" while the card is face down and hidden
// cards are not being revealed.
func (c Card) Label(showHidden bool) string {
	if !c.FaceUp && !showHidden {
		return "?"
	}
	return c.Rank.String()
}

// Value returns the blackjack value of the card
func (c Card) Value() int {
	return c.Rank.Value()
}

// HiLo returns the Hi-Lo weight of the card
func (c Card) HiLo() int {
	return c.Rank.HiLo()
}

// IsAce returns true if the card is an Ace
func (c Card) IsAce() bool {
	return c.Rank == Ace
}

// IsTen returns true for any ten-valued card
func (c Card) IsTen() bool {
	return c.Rank >= Ten && c.Rank <= King
}

// ParseRank parses a single rank character such as 'A', 'T' or '7'.
func ParseRank(ch byte) (Rank, error) {
	switch ch {
	case 'A', 'a':
		return Ace, nil
	case 'K', 'k':
		return King, nil
	case 'Q', 'q':
		return Queen, nil
	case 'J', 'j':
		return Jack, nil
	case 'T', 't':
		return Ten, nil
	}
	if ch >= '2' && ch <= '9' {
		return Rank(ch - '0'), nil
	}
	return 0, fmt.Errorf("invalid rank %q", ch)
}

func parseSuit(ch byte) (Suit, bool) {
	switch ch {
	case 's':
		return Spades, true
	case 'h':
		return Hearts, true
	case 'd':
		return Diamonds, true
	case 'c':
		return Clubs, true
	}
	return 0, false
}

// ParseCards parses a card list such as "AsJh" or "A J 6 Q". A rank without
// a suit defaults to spades. Spaces and commas separate cards.
func ParseCards(s string) ([]Card, error) {
	s = strings.NewReplacer(",", " ", "10", "T").Replace(s)
	var cards []Card
	for i := 0; i < len(s); i++ {
		if s[i] == ' ' {
			continue
		}
		rank, err := ParseRank(s[i])
		if err != nil {
			return nil, err
		}
		suit := Spades
		if i+1 < len(s) {
			if parsed, ok := parseSuit(s[i+1]); ok {
				suit = parsed
				i++
			}
		}
		cards = append(cards, NewCard(suit, rank))
	}
	return cards, nil
}

// MustParseCards is ParseCards for fixtures; it panics on bad input.
func MustParseCards(s string) []Card {
	cards, err := ParseCards(s)
	if err != nil {
		panic(err)
	}
	return cards
}
