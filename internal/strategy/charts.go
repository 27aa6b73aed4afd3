package strategy

// Upcard columns:          2   3   4   5   6   7   8   9   T   A

var multiDeckH17 = Chart{
	Name: "4-8 decks, H17",
	Hard: [...]row{
		/* 7  */ {H, H, H, H, H, H, H, H, H, H},
		/* 8  */ {H, H, H, H, H, H, H, H, H, H},
		/* 9  */ {H, Dh, Dh, Dh, Dh, H, H, H, H, H},
		/* 10 */ {Dh, Dh, Dh, Dh, Dh, Dh, Dh, Dh, H, H},
		/* 11 */ {Dh, Dh, Dh, Dh, Dh, Dh, Dh, Dh, Dh, Dh},
		/* 12 */ {H, H, S, S, S, H, H, H, H, H},
		/* 13 */ {S, S, S, S, S, H, H, H, H, H},
		/* 14 */ {S, S, S, S, S, H, H, H, H, H},
		/* 15 */ {S, S, S, S, S, H, H, H, Rh, Rh},
		/* 16 */ {S, S, S, S, S, H, H, Rh, Rh, Rh},
		/* 17 */ {S, S, S, S, S, S, S, S, S, Rs},
		/* 18 */ {S, S, S, S, S, S, S, S, S, S},
	},
	Soft: [...]row{
		/* 12 */ {H, H, H, H, H, H, H, H, H, H},
		/* 13 */ {H, H, H, Dh, Dh, H, H, H, H, H},
		/* 14 */ {H, H, H, Dh, Dh, H, H, H, H, H},
		/* 15 */ {H, H, Dh, Dh, Dh, H, H, H, H, H},
		/* 16 */ {H, H, Dh, Dh, Dh, H, H, H, H, H},
		/* 17 */ {H, Dh, Dh, Dh, Dh, H, H, H, H, H},
		/* 18 */ {Ds, Ds, Ds, Ds, Ds, S, S, H, H, H},
		/* 19 */ {S, S, S, S, Ds, S, S, S, S, S},
		/* 20 */ {S, S, S, S, S, S, S, S, S, S},
	},
	Pair: [...]row{
		/* 2  */ {Ph, Ph, P, P, P, P, H, H, H, H},
		/* 3  */ {Ph, Ph, P, P, P, P, H, H, H, H},
		/* 4  */ {H, H, H, Ph, Ph, H, H, H, H, H},
		/* 5  */ {Dh, Dh, Dh, Dh, Dh, Dh, Dh, Dh, H, H},
		/* 6  */ {Ph, P, P, P, P, H, H, H, H, H},
		/* 7  */ {P, P, P, P, P, P, H, H, H, H},
		/* 8  */ {P, P, P, P, P, P, P, P, P, Rp},
		/* 9  */ {P, P, P, P, P, S, P, P, S, S},
		/* 10 */ {S, S, S, S, S, S, S, S, S, S},
		/* A  */ {P, P, P, P, P, P, P, P, P, P},
	},
}

var doubleDeckH17 = Chart{
	Name: "2 decks, H17",
	Hard: [...]row{
		/* 7  */ {H, H, H, H, H, H, H, H, H, H},
		/* 8  */ {H, H, H, H, H, H, H, H, H, H},
		/* 9  */ {Dh, Dh, Dh, Dh, Dh, H, H, H, H, H},
		/* 10 */ {Dh, Dh, Dh, Dh, Dh, Dh, Dh, Dh, H, H},
		/* 11 */ {Dh, Dh, Dh, Dh, Dh, Dh, Dh, Dh, Dh, Dh},
		/* 12 */ {H, H, S, S, S, H, H, H, H, H},
		/* 13 */ {S, S, S, S, S, H, H, H, H, H},
		/* 14 */ {S, S, S, S, S, H, H, H, H, H},
		/* 15 */ {S, S, S, S, S, H, H, H, Rh, Rh},
		/* 16 */ {S, S, S, S, S, H, H, Rh, Rh, Rh},
		/* 17 */ {S, S, S, S, S, S, S, S, S, Rs},
		/* 18 */ {S, S, S, S, S, S, S, S, S, S},
	},
	Soft: [...]row{
		/* 12 */ {H, H, H, H, H, H, H, H, H, H},
		/* 13 */ {H, H, H, Dh, Dh, H, H, H, H, H},
		/* 14 */ {H, H, H, Dh, Dh, H, H, H, H, H},
		/* 15 */ {H, H, Dh, Dh, Dh, H, H, H, H, H},
		/* 16 */ {H, H, Dh, Dh, Dh, H, H, H, H, H},
		/* 17 */ {H, Dh, Dh, Dh, Dh, H, H, H, H, H},
		/* 18 */ {Ds, Ds, Ds, Ds, Ds, S, S, H, H, H},
		/* 19 */ {S, S, S, S, Ds, S, S, S, S, S},
		/* 20 */ {S, S, S, S, S, S, S, S, S, S},
	},
	Pair: [...]row{
		/* 2  */ {Ph, P, P, P, P, P, H, H, H, H},
		/* 3  */ {Ph, Ph, P, P, P, P, H, H, H, H},
		/* 4  */ {H, H, H, Ph, Ph, H, H, H, H, H},
		/* 5  */ {Dh, Dh, Dh, Dh, Dh, Dh, Dh, Dh, H, H},
		/* 6  */ {P, P, P, P, P, Ph, H, H, H, H},
		/* 7  */ {P, P, P, P, P, P, Ph, H, H, H},
		/* 8  */ {P, P, P, P, P, P, P, P, P, Rp},
		/* 9  */ {P, P, P, P, P, S, P, P, S, S},
		/* 10 */ {S, S, S, S, S, S, S, S, S, S},
		/* A  */ {P, P, P, P, P, P, P, P, P, P},
	},
}

var singleDeckH17 = Chart{
	Name: "1 deck, H17",
	Hard: [...]row{
		/* 7  */ {H, H, H, H, H, H, H, H, H, H},
		/* 8  */ {H, H, H, Dh, Dh, H, H, H, H, H},
		/* 9  */ {Dh, Dh, Dh, Dh, Dh, H, H, H, H, H},
		/* 10 */ {Dh, Dh, Dh, Dh, Dh, Dh, Dh, Dh, H, H},
		/* 11 */ {Dh, Dh, Dh, Dh, Dh, Dh, Dh, Dh, Dh, Dh},
		/* 12 */ {H, H, S, S, S, H, H, H, H, H},
		/* 13 */ {S, S, S, S, S, H, H, H, H, H},
		/* 14 */ {S, S, S, S, S, H, H, H, H, H},
		/* 15 */ {S, S, S, S, S, H, H, H, H, Rh},
		/* 16 */ {S, S, S, S, S, H, H, H, Rh, Rh},
		/* 17 */ {S, S, S, S, S, S, S, S, S, Rs},
		/* 18 */ {S, S, S, S, S, S, S, S, S, S},
	},
	Soft: [...]row{
		/* 12 */ {H, H, H, H, H, H, H, H, H, H},
		/* 13 */ {H, H, Dh, Dh, Dh, H, H, H, H, H},
		/* 14 */ {H, H, Dh, Dh, Dh, H, H, H, H, H},
		/* 15 */ {H, H, Dh, Dh, Dh, H, H, H, H, H},
		/* 16 */ {H, H, Dh, Dh, Dh, H, H, H, H, H},
		/* 17 */ {Dh, Dh, Dh, Dh, Dh, H, H, H, H, H},
		/* 18 */ {S, Ds, Ds, Ds, Ds, S, S, H, H, H},
		/* 19 */ {S, S, S, S, Ds, S, S, S, S, S},
		/* 20 */ {S, S, S, S, S, S, S, S, S, S},
	},
	Pair: [...]row{
		/* 2  */ {Ph, P, P, P, P, P, H, H, H, H},
		/* 3  */ {Ph, Ph, P, P, P, P, Ph, H, H, H},
		/* 4  */ {H, H, Ph, Pd, Pd, H, H, H, H, H},
		/* 5  */ {Dh, Dh, Dh, Dh, Dh, Dh, Dh, Dh, H, H},
		/* 6  */ {P, P, P, P, P, Ph, H, H, H, H},
		/* 7  */ {P, P, P, P, P, P, Ph, H, Rs, H},
		/* 8  */ {P, P, P, P, P, P, P, P, P, P},
		/* 9  */ {P, P, P, P, P, S, P, P, S, S},
		/* 10 */ {S, S, S, S, S, S, S, S, S, S},
		/* A  */ {P, P, P, P, P, P, P, P, P, P},
	},
}

// Dealer standing on soft 17 changes a handful of cells from the H17 charts.
var (
	multiDeckS17 = multiDeckH17.patched("4-8 decks, S17",
		cell{Hard, 11, 11, H},
		cell{Hard, 15, 11, H},
		cell{Hard, 17, 11, S},
		cell{Soft, 18, 2, S},
		cell{Soft, 19, 6, S},
		cell{Pair, 8, 11, P},
	)
	doubleDeckS17 = doubleDeckH17.patched("2 decks, S17",
		cell{Hard, 15, 11, H},
		cell{Hard, 17, 11, S},
		cell{Soft, 18, 2, S},
		cell{Soft, 19, 6, S},
		cell{Pair, 8, 11, P},
	)
	singleDeckS17 = singleDeckH17.patched("1 deck, S17",
		cell{Hard, 15, 11, H},
		cell{Hard, 17, 11, S},
		cell{Soft, 18, 11, S},
	)
)

// ChartFor selects the chart for a deck count and soft-17 rule. Deck counts
// without an exact chart (3 through 8) use the generic multi-deck chart,
// which is the standard approximation for shoe games.
func ChartFor(decks int, hitSoft17 bool) *Chart {
	switch decks {
	case 1:
		if hitSoft17 {
			return &singleDeckH17
		}
		return singleDeckS17
	case 2:
		if hitSoft17 {
			return &doubleDeckH17
		}
		return doubleDeckS17
	default:
		if hitSoft17 {
			return &multiDeckH17
		}
		return multiDeckS17
	}
}
