package main

import (
	"fmt"
	"time"

	"github.com/lox/blackjack/internal/config"
)

// TableFlags override the loaded configuration when set.
type TableFlags struct {
	Config  string   `short:"c" type:"path" help:"HCL config file" env:"BLACKJACK_CONFIG"`
	Decks   *int     `help:"Number of decks in the shoe"`
	H17     *bool    `name:"h17" help:"Dealer hits soft 17 (--h17=false to stand)"`
	Seats   *int     `help:"Seats at the table"`
	Seat    *int     `help:"Position of your seat, counted from the dealer's left"`
	Spots   *int     `help:"Hands you play per round"`
	Mode    *string  `help:"Training mode: default, pairs, uncommon, deviations"`
	Advisor *string  `help:"Advisor tier: basic, i18, deviations"`
	Bet     *float64 `help:"Bet per hand"`
	Seed    *int64   `help:"Deterministic RNG seed"`
}

// load layers the flags over defaults, the config file and the environment.
func (f TableFlags) load() (config.Config, error) {
	cfg, err := config.Load(f.Config)
	if err != nil {
		return config.Config{}, err
	}
	setIf(&cfg.Rules.Decks, f.Decks)
	setIf(&cfg.Rules.HitSoft17, f.H17)
	setIf(&cfg.Rules.Seats, f.Seats)
	setIf(&cfg.Rules.SeatPosition, f.Seat)
	setIf(&cfg.Rules.Spots, f.Spots)
	setIf(&cfg.Advisor, f.Advisor)
	setIf(&cfg.Bet, f.Bet)
	if f.Mode != nil {
		mode, err := config.ParseTrainingMode(*f.Mode)
		if err != nil {
			return config.Config{}, err
		}
		cfg.Mode = mode
	}
	if err := cfg.Validate(); err != nil {
		return config.Config{}, fmt.Errorf("flags: %w", err)
	}
	return cfg, nil
}

func (f TableFlags) seed() int64 {
	if f.Seed != nil {
		return *f.Seed
	}
	return time.Now().UnixNano()
}

func setIf[T any](dst *T, v *T) {
	if v != nil {
		*dst = *v
	}
}
