// Package player holds the seated players and the dealer: bankrolls, the
// pooled hands each one plays and the outcome of every settled hand.
package player

import (
	"errors"
	"fmt"

	"github.com/lox/blackjack/internal/deck"
	"github.com/lox/blackjack/internal/hand"
)

// ErrInsufficientBalance is returned when a wager exceeds the balance.
var ErrInsufficientBalance = errors.New("insufficient balance")

// ErrNoHandSlots is returned when every pooled hand is already in play.
var ErrNoHandSlots = errors.New("no free hand slots")

// Kind selects who makes a seat's decisions.
type Kind int

const (
	User Kind = iota
	BasicStrategy
	BasicStrategyI18
	BasicStrategyWithDeviations
	Dealer
)

var kindNames = map[Kind]string{
	User:                        "user",
	BasicStrategy:               "basic",
	BasicStrategyI18:            "i18",
	BasicStrategyWithDeviations: "deviations",
	Dealer:                      "dealer",
}

func (k Kind) String() string {
	if name, ok := kindNames[k]; ok {
		return name
	}
	return fmt.Sprintf("Kind(%d)", int(k))
}

// ParseKind maps a strategy name from configuration to a Kind.
func ParseKind(s string) (Kind, error) {
	switch s {
	case "user", "human":
		return User, nil
	case "basic", "":
		return BasicStrategy, nil
	case "i18", "illustrious18":
		return BasicStrategyI18, nil
	case "deviations", "advanced", "fab4":
		return BasicStrategyWithDeviations, nil
	}
	return User, fmt.Errorf("unknown strategy %q", s)
}

// Counts reports whether the kind plays count-based deviations.
func (k Kind) Counts() bool {
	return k == BasicStrategyI18 || k == BasicStrategyWithDeviations
}

// Player is one seat at the table.
type Player struct {
	ID      int
	Name    string
	Kind    Kind
	Balance float64
	// Wagered is the total of every chip committed, including doubles,
	// splits and insurance.
	Wagered float64

	pool    []*hand.Hand
	active  int
	results map[int]Result
}

// New creates a player with a fixed pool of hands.
func New(id int, name string, kind Kind, balance float64, capacity int) *Player {
	p := &Player{
		ID:      id,
		Name:    name,
		Kind:    kind,
		Balance: balance,
		pool:    make([]*hand.Hand, capacity),
		results: make(map[int]Result, capacity),
	}
	for i := range p.pool {
		p.pool[i] = hand.New(id*100+i, id)
	}
	return p
}

// IsUser reports whether the seat is controlled by a person.
func (p *Player) IsUser() bool {
	return p.Kind == User
}

// NewHand takes the next hand from the pool.
func (p *Player) NewHand(bet float64) (*hand.Hand, error) {
	if p.active == len(p.pool) {
		return nil, ErrNoHandSlots
	}
	h := p.pool[p.active]
	h.Reset()
	h.Bet = bet
	p.active++
	return h, nil
}

// InsertHand takes a hand from the pool and places it directly after the
// hand at index after, keeping split hands next to their origin.
func (p *Player) InsertHand(after int, bet float64) (*hand.Hand, error) {
	h, err := p.NewHand(bet)
	if err != nil {
		return nil, err
	}
	at := after + 1
	copy(p.pool[at+1:p.active], p.pool[at:p.active-1])
	p.pool[at] = h
	return h, nil
}

// Hands returns the hands in play.
func (p *Player) Hands() []*hand.Hand {
	return p.pool[:p.active]
}

// Hand returns the i-th hand in play, or nil.
func (p *Player) Hand(i int) *hand.Hand {
	if i < 0 || i >= p.active {
		return nil
	}
	return p.pool[i]
}

// HandCount returns the number of hands in play
func (p *Player) HandCount() int {
	return p.active
}

// Capacity returns the size of the hand pool
func (p *Player) Capacity() int {
	return len(p.pool)
}

// Clear returns every hand to the pool and forgets outcomes. It returns the
// number of cards that were held.
func (p *Player) Clear() int {
	n := 0
	for _, h := range p.pool[:p.active] {
		n += h.Len()
		h.Reset()
	}
	p.active = 0
	clear(p.results)
	return n
}

// UseChips moves amount from the balance into play. It fails rather than
// letting the balance go negative.
func (p *Player) UseChips(amount float64) error {
	if amount < 0 {
		return fmt.Errorf("wager must not be negative, got %g", amount)
	}
	if amount > p.Balance {
		return fmt.Errorf("%s wagering %g with balance %g: %w", p.Name, amount, p.Balance, ErrInsufficientBalance)
	}
	p.Balance -= amount
	p.Wagered += amount
	return nil
}

// Credit returns chips to the balance.
func (p *Player) Credit(amount float64) {
	p.Balance += amount
}

// SetResult records the outcome of a settled hand.
func (p *Player) SetResult(handID int, r Result) {
	p.results[handID] = r
}

// Result returns the outcome of a settled hand.
func (p *Player) Result(handID int) (Result, bool) {
	r, ok := p.results[handID]
	return r, ok
}

// Finished reports whether every hand in play is finished.
func (p *Player) Finished() bool {
	for _, h := range p.Hands() {
		if !h.Finished {
			return false
		}
	}
	return true
}

// DealerPlayer is the house seat.
type DealerPlayer struct {
	*Player
}

// NewDealer creates the dealer with a single hand.
func NewDealer() *DealerPlayer {
	return &DealerPlayer{Player: New(0, "Dealer", Dealer, 0, 1)}
}

// Cards returns the dealer's hand, creating it if needed.
func (d *DealerPlayer) Cards() *hand.Hand {
	if d.active == 0 {
		h, _ := d.NewHand(0)
		return h
	}
	return d.pool[0]
}

// Upcard returns the first face-up card.
func (d *DealerPlayer) Upcard() (deck.Card, bool) {
	return d.find(true)
}

// HoleCard returns the first face-down card.
func (d *DealerPlayer) HoleCard() (*deck.Card, bool) {
	h := d.Cards()
	for i := range h.Len() {
		if c := h.Card(i); !c.FaceUp {
			return c, true
		}
	}
	return nil, false
}

func (d *DealerPlayer) find(faceUp bool) (deck.Card, bool) {
	for _, c := range d.Cards().Cards() {
		if c.FaceUp == faceUp {
			return c, true
		}
	}
	return deck.Card{}, false
}
