package strategy

// Scenario is a starting situation worth drilling: a hand category, the
// player's total (pair card value for pairs) and the dealer upcard value.
type Scenario struct {
	Category Category
	Total    int
	Upcard   int
}

// Rare but strategically important hands. Only deck counts with a curated
// table have scenarios; other deck counts get none.
var uncommonHands = map[int][]Scenario{
	2: {
		{Hard, 9, 2},
		{Hard, 11, 11},
		{Hard, 12, 3},
		{Hard, 16, 9},
		{Soft, 17, 2},
		{Soft, 18, 2},
		{Soft, 18, 9},
		{Soft, 19, 6},
		{Pair, 2, 2},
		{Pair, 4, 5},
		{Pair, 6, 7},
		{Pair, 7, 8},
		{Pair, 9, 7},
		{Pair, 9, 11},
	},
	6: {
		{Hard, 9, 2},
		{Hard, 10, 9},
		{Hard, 11, 11},
		{Hard, 12, 3},
		{Hard, 15, 10},
		{Hard, 16, 9},
		{Hard, 17, 11},
		{Soft, 13, 4},
		{Soft, 17, 2},
		{Soft, 18, 2},
		{Soft, 18, 9},
		{Soft, 19, 6},
		{Pair, 2, 3},
		{Pair, 4, 5},
		{Pair, 6, 2},
		{Pair, 8, 11},
		{Pair, 9, 7},
		{Pair, 9, 11},
	},
	8: {
		{Hard, 9, 2},
		{Hard, 10, 9},
		{Hard, 11, 11},
		{Hard, 12, 3},
		{Hard, 15, 10},
		{Hard, 16, 9},
		{Hard, 17, 11},
		{Soft, 13, 4},
		{Soft, 17, 2},
		{Soft, 18, 2},
		{Soft, 18, 9},
		{Soft, 19, 6},
		{Pair, 2, 3},
		{Pair, 4, 5},
		{Pair, 6, 2},
		{Pair, 8, 11},
		{Pair, 9, 7},
		{Pair, 9, 11},
	},
}

// UncommonHands returns the curated scenarios for a deck count, or nil when
// none exist for it.
func UncommonHands(decks int) []Scenario {
	return uncommonHands[decks]
}
