package deviation

import "github.com/lox/blackjack/internal/move"

// InsuranceTotal is the player-total key used for the insurance decision.
const InsuranceTotal = 0

// Illustrious18 are the eighteen count-based departures from basic strategy
// worth the most to a Hi-Lo player.
var Illustrious18 = []Entry{
	{PlayerTotal: InsuranceTotal, DealerCard: 11, Move: move.Insure, Threshold: Threshold{AtLeast, 3}},
	{PlayerTotal: 16, DealerCard: 10, Move: move.Stand, Threshold: Threshold{AtLeast, 0}},
	{PlayerTotal: 15, DealerCard: 10, Move: move.Stand, Threshold: Threshold{AtLeast, 4}},
	{PlayerTotal: 20, DealerCard: 5, Move: move.Split, Threshold: Threshold{AtLeast, 5}, PairOnly: true},
	{PlayerTotal: 20, DealerCard: 6, Move: move.Split, Threshold: Threshold{AtLeast, 4}, PairOnly: true},
	{PlayerTotal: 10, DealerCard: 10, Move: move.Double, Threshold: Threshold{AtLeast, 4}},
	{PlayerTotal: 12, DealerCard: 3, Move: move.Stand, Threshold: Threshold{AtLeast, 2}},
	{PlayerTotal: 12, DealerCard: 2, Move: move.Stand, Threshold: Threshold{AtLeast, 3}},
	{PlayerTotal: 11, DealerCard: 11, Move: move.Double, Threshold: Threshold{AtLeast, 1}},
	{PlayerTotal: 9, DealerCard: 2, Move: move.Double, Threshold: Threshold{AtLeast, 1}},
	{PlayerTotal: 10, DealerCard: 11, Move: move.Double, Threshold: Threshold{AtLeast, 4}},
	{PlayerTotal: 9, DealerCard: 7, Move: move.Double, Threshold: Threshold{AtLeast, 3}},
	{PlayerTotal: 16, DealerCard: 9, Move: move.Stand, Threshold: Threshold{AtLeast, 5}},
	{PlayerTotal: 13, DealerCard: 2, Move: move.Hit, Threshold: Threshold{Below, -1}},
	{PlayerTotal: 12, DealerCard: 4, Move: move.Hit, Threshold: Threshold{Below, 0}},
	{PlayerTotal: 12, DealerCard: 5, Move: move.Hit, Threshold: Threshold{Below, -2}},
	{PlayerTotal: 12, DealerCard: 6, Move: move.Hit, Threshold: Threshold{Below, -1}},
	{PlayerTotal: 13, DealerCard: 3, Move: move.Hit, Threshold: Threshold{Below, -2}},
}

// Fab4 are the four late-surrender departures.
var Fab4 = []Entry{
	{PlayerTotal: 14, DealerCard: 10, Move: move.Surrender, Threshold: Threshold{AtLeast, 3}, RequiresSurrender: true},
	{PlayerTotal: 15, DealerCard: 10, Move: move.Surrender, Threshold: Threshold{AtLeast, 0}, RequiresSurrender: true},
	{PlayerTotal: 15, DealerCard: 9, Move: move.Surrender, Threshold: Threshold{AtLeast, 2}, RequiresSurrender: true},
	{PlayerTotal: 15, DealerCard: 11, Move: move.Surrender, Threshold: Threshold{AtLeast, 1}, RequiresSurrender: true},
}

type key struct {
	total  int
	dealer int
	pair   bool
}

func index(entries []Entry) map[key]Entry {
	m := make(map[key]Entry, len(entries))
	for _, e := range entries {
		m[key{e.PlayerTotal, e.DealerCard, e.PairOnly}] = e
	}
	return m
}

var (
	i18Index  = index(Illustrious18)
	fab4Index = index(Fab4)
)
