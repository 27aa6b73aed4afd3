package deck

// CardsPerDeck is the size of one standard deck
const CardsPerDeck = 52

// NewCards builds decks×52 face-down cards in suit/rank order. IDs are unique
// within the returned slice so a card can be followed across hands.
func NewCards(decks int) []Card {
	cards := make([]Card, 0, decks*CardsPerDeck)
	id := 0
	for range decks {
		for suit := Spades; suit <= Clubs; suit++ {
			for rank := Two; rank <= Ace; rank++ {
				cards = append(cards, Card{ID: id, Suit: suit, Rank: rank})
				id++
			}
		}
	}
	return cards
}
