package config

import (
	"fmt"
	"os"
	"strconv"

	"github.com/caarlos0/env/v11"
	"github.com/hashicorp/hcl/v2/gohcl"
	"github.com/hashicorp/hcl/v2/hclparse"
)

// EnvPrefix prefixes every environment override, e.g. BLACKJACK_DECKS.
const EnvPrefix = "BLACKJACK_"

// fileConfig mirrors Config with optional fields so an absent attribute
// leaves the default untouched.
type fileConfig struct {
	Table    *tableBlock    `hcl:"table,block"`
	Training *trainingBlock `hcl:"training,block"`
	Seats    []seatBlock    `hcl:"seat,block"`
}

type tableBlock struct {
	Decks                *int     `hcl:"decks,optional"`
	HitSoft17            *bool    `hcl:"hit_soft_17,optional"`
	DoubleAfterSplit     *bool    `hcl:"double_after_split,optional"`
	LateSurrender        *bool    `hcl:"late_surrender,optional"`
	ResplitAces          *bool    `hcl:"resplit_aces,optional"`
	BlackjackPayout      *float64 `hcl:"blackjack_payout,optional"`
	MinBet               *float64 `hcl:"min_bet,optional"`
	MaxBet               *float64 `hcl:"max_bet,optional"`
	MaxHands             *int     `hcl:"max_hands,optional"`
	Seats                *int     `hcl:"seats,optional"`
	SeatPosition         *int     `hcl:"seat_position,optional"`
	Spots                *int     `hcl:"spots,optional"`
	AutoDeclineInsurance *bool    `hcl:"auto_decline_insurance,optional"`
}

type trainingBlock struct {
	Mode            *string  `hcl:"mode,optional"`
	Advisor         *string  `hcl:"advisor,optional"`
	StartingBalance *float64 `hcl:"starting_balance,optional"`
	Bet             *float64 `hcl:"bet,optional"`
}

type seatBlock struct {
	Index    string `hcl:"index,label"`
	Strategy string `hcl:"strategy"`
}

// Load builds a Config from defaults, then the HCL file at path (if it
// exists), then BLACKJACK_* environment variables. The result is validated.
func Load(path string) (Config, error) {
	cfg := Default()
	if path != "" {
		if err := cfg.mergeFile(path); err != nil {
			return Config{}, err
		}
	}
	if err := cfg.mergeEnv(); err != nil {
		return Config{}, err
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func (c *Config) mergeFile(path string) error {
	if _, err := os.Stat(path); os.IsNotExist(err) {
		return fmt.Errorf("config file %s: %w", path, err)
	}

	parser := hclparse.NewParser()
	file, diags := parser.ParseHCLFile(path)
	if diags.HasErrors() {
		return fmt.Errorf("failed to parse HCL file: %s", diags.Error())
	}

	var fc fileConfig
	diags = gohcl.DecodeBody(file.Body, nil, &fc)
	if diags.HasErrors() {
		return fmt.Errorf("failed to decode HCL: %s", diags.Error())
	}
	return c.apply(fc)
}

func (c *Config) apply(fc fileConfig) error {
	if t := fc.Table; t != nil {
		r := &c.Rules
		setInt(&r.Decks, t.Decks)
		setBool(&r.HitSoft17, t.HitSoft17)
		setBool(&r.DoubleAfterSplit, t.DoubleAfterSplit)
		setBool(&r.LateSurrender, t.LateSurrender)
		setBool(&r.ResplitAces, t.ResplitAces)
		setFloat(&r.BlackjackPayout, t.BlackjackPayout)
		setFloat(&r.MinBet, t.MinBet)
		setFloat(&r.MaxBet, t.MaxBet)
		setInt(&r.MaxHands, t.MaxHands)
		setInt(&r.Seats, t.Seats)
		setInt(&r.SeatPosition, t.SeatPosition)
		setInt(&r.Spots, t.Spots)
		setBool(&r.AutoDeclineInsurance, t.AutoDeclineInsurance)
	}

	if tr := fc.Training; tr != nil {
		if tr.Mode != nil {
			mode, err := ParseTrainingMode(*tr.Mode)
			if err != nil {
				return err
			}
			c.Mode = mode
		}
		if tr.Advisor != nil {
			c.Advisor = *tr.Advisor
		}
		setFloat(&c.StartingBalance, tr.StartingBalance)
		setFloat(&c.Bet, tr.Bet)
	}

	for _, seat := range fc.Seats {
		idx, err := strconv.Atoi(seat.Index)
		if err != nil {
			return fmt.Errorf("%w: seat label %q is not an index", ErrInvalidConfig, seat.Index)
		}
		if c.Strategies == nil {
			c.Strategies = map[int]string{}
		}
		c.Strategies[idx] = seat.Strategy
	}
	return nil
}

func (c *Config) mergeEnv() error {
	if err := env.ParseWithOptions(c, env.Options{Prefix: EnvPrefix}); err != nil {
		return fmt.Errorf("parse env: %w", err)
	}
	return nil
}

func setInt(dst *int, v *int) {
	if v != nil {
		*dst = *v
	}
}

func setBool(dst *bool, v *bool) {
	if v != nil {
		*dst = *v
	}
}

func setFloat(dst *float64, v *float64) {
	if v != nil {
		*dst = *v
	}
}
