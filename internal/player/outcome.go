package player

// Outcome is who won a settled hand.
type Outcome int

const (
	Push Outcome = iota
	PlayerWin
	DealerWin
)

func (o Outcome) String() string {
	switch o {
	case PlayerWin:
		return "player"
	case DealerWin:
		return "dealer"
	default:
		return "push"
	}
}

// Reason explains an outcome.
type Reason int

const (
	Compared Reason = iota
	Blackjack
	DealerBlackjack
	Bust
	DealerBust
	Surrender
	Insured
	Exhausted
)

var reasonNames = [...]string{
	Compared:        "compared",
	Blackjack:       "blackjack",
	DealerBlackjack: "dealer blackjack",
	Bust:            "bust",
	DealerBust:      "dealer bust",
	Surrender:       "surrender",
	Insured:         "insured",
	Exhausted:       "shoe exhausted",
}

func (r Reason) String() string {
	if int(r) < len(reasonNames) {
		return reasonNames[r]
	}
	return "unknown"
}

// Result is the outcome of one hand and the amount returned to the player.
type Result struct {
	Outcome Outcome
	Reason  Reason
	Payout  float64
}

func (r Result) String() string {
	if r.Reason == Compared {
		return r.Outcome.String()
	}
	return r.Outcome.String() + " (" + r.Reason.String() + ")"
}
