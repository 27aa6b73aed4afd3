// Package config holds the table rules and session settings consumed by the
// game and simulator. Every field is named with an explicit default; file and
// environment layers override individual fields, never whole sections.
package config

import (
	"errors"
	"fmt"
)

// ErrInvalidConfig is wrapped by every validation failure.
var ErrInvalidConfig = errors.New("invalid config")

// TrainingMode selects how the shoe arranges cards after a shuffle.
type TrainingMode string

const (
	ModeDefault    TrainingMode = "default"
	ModePairs      TrainingMode = "pairs"
	ModeUncommon   TrainingMode = "uncommon"
	ModeDeviations TrainingMode = "deviations"
)

// ParseTrainingMode validates a mode name.
func ParseTrainingMode(s string) (TrainingMode, error) {
	switch m := TrainingMode(s); m {
	case ModeDefault, ModePairs, ModeUncommon, ModeDeviations:
		return m, nil
	case "":
		return ModeDefault, nil
	}
	return "", fmt.Errorf("%w: unknown training mode %q", ErrInvalidConfig, s)
}

// Rules are the table rules.
type Rules struct {
	Decks                int     `env:"DECKS"`
	HitSoft17            bool    `env:"HIT_SOFT_17"`
	DoubleAfterSplit     bool    `env:"DOUBLE_AFTER_SPLIT"`
	LateSurrender        bool    `env:"LATE_SURRENDER"`
	ResplitAces          bool    `env:"RESPLIT_ACES"`
	BlackjackPayout      float64 `env:"BLACKJACK_PAYOUT"`
	MinBet               float64 `env:"MIN_BET"`
	MaxBet               float64 `env:"MAX_BET"`
	MaxHands             int     `env:"MAX_HANDS"`
	Seats                int     `env:"SEATS"`
	SeatPosition         int     `env:"SEAT_POSITION"`
	Spots                int     `env:"SPOTS"`
	AutoDeclineInsurance bool    `env:"AUTO_DECLINE_INSURANCE"`
}

// Config is everything a Game needs beyond its random source.
type Config struct {
	Rules           Rules
	Mode            TrainingMode `env:"MODE"`
	StartingBalance float64      `env:"STARTING_BALANCE"`
	Bet             float64      `env:"BET"`
	// Advisor is the strategy tier used to grade the human seat's moves.
	Advisor string `env:"ADVISOR"`
	// Strategies overrides the strategy of individual seats by index.
	Strategies map[int]string
}

// DefaultRules returns a six-deck H17 shoe game with DAS and late surrender.
func DefaultRules() Rules {
	return Rules{
		Decks:                6,
		HitSoft17:            true,
		DoubleAfterSplit:     true,
		LateSurrender:        true,
		ResplitAces:          false,
		BlackjackPayout:      1.5,
		MinBet:               10,
		MaxBet:               1000,
		MaxHands:             4,
		Seats:                1,
		SeatPosition:         0,
		Spots:                1,
		AutoDeclineInsurance: false,
	}
}

// Default returns the default configuration.
func Default() Config {
	return Config{
		Rules:           DefaultRules(),
		Mode:            ModeDefault,
		StartingBalance: 10000,
		Bet:             10,
		Advisor:         "basic",
		Strategies:      map[int]string{},
	}
}

// Validate checks the configuration rules. It is called when a game is
// constructed so violations never surface mid-hand.
func (c Config) Validate() error {
	r := c.Rules
	var errs []error
	check := func(ok bool, format string, args ...any) {
		if !ok {
			errs = append(errs, fmt.Errorf(format, args...))
		}
	}

	check(r.Decks >= 1 && r.Decks <= 8, "decks must be between 1 and 8, got %d", r.Decks)
	check(r.BlackjackPayout == 1.5 || r.BlackjackPayout == 1.2,
		"blackjack payout must be 1.5 (3:2) or 1.2 (6:5), got %g", r.BlackjackPayout)
	check(r.MinBet > 0, "min bet must be positive, got %g", r.MinBet)
	check(r.MaxBet >= r.MinBet, "max bet %g below min bet %g", r.MaxBet, r.MinBet)
	check(r.MaxHands >= 1 && r.MaxHands <= 8, "max hands must be between 1 and 8, got %d", r.MaxHands)
	check(r.Seats >= 1 && r.Seats <= 7, "seats must be between 1 and 7, got %d", r.Seats)
	check(r.SeatPosition >= 0 && r.SeatPosition < r.Seats,
		"seat position %d out of range for %d seats", r.SeatPosition, r.Seats)
	check(r.Spots >= 1 && r.Spots <= r.MaxHands, "spots must be between 1 and max hands, got %d", r.Spots)
	check(c.StartingBalance >= 0, "starting balance must not be negative, got %g", c.StartingBalance)
	check(c.Bet >= r.MinBet && c.Bet <= r.MaxBet, "bet %g outside table limits [%g, %g]", c.Bet, r.MinBet, r.MaxBet)

	if _, err := ParseTrainingMode(string(c.Mode)); err != nil {
		errs = append(errs, err)
	}
	for seat := range c.Strategies {
		check(seat >= 0 && seat < r.Seats, "strategy override for seat %d out of range", seat)
	}

	if len(errs) > 0 {
		return fmt.Errorf("%w: %w", ErrInvalidConfig, errors.Join(errs...))
	}
	return nil
}

// Clone returns a copy that shares no maps with c.
func (c Config) Clone() Config {
	out := c
	out.Strategies = make(map[int]string, len(c.Strategies))
	for k, v := range c.Strategies {
		out.Strategies[k] = v
	}
	return out
}
