package main

import (
	"fmt"
	"os"

	"github.com/lox/blackjack/cmd/blackjack/shared"
	"github.com/lox/blackjack/internal/simulator"
)

// SimulateCmd runs the Monte-Carlo simulator
type SimulateCmd struct {
	TableFlags `embed:""`

	Hands        int     `default:"1000000" help:"Number of rounds to simulate"`
	Workers      int     `default:"0" help:"Parallel workers (0 for one per CPU, at most 8)"`
	Spread       string  `default:"flat" enum:"flat,doubling" help:"Bet spread: flat, doubling"`
	Unit         float64 `default:"0" help:"Betting unit (0 for the table minimum)"`
	Bankroll     float64 `default:"0" help:"Bankroll for the risk of ruin estimate (0 for the starting balance)"`
	HandsPerHour float64 `default:"100" help:"Rounds per hour for the hourly EV"`
	Report       string  `type:"path" help:"Write a JSON report to this file"`
	Debug        bool    `help:"Enable debug logging"`
	JSON         bool    `name:"json-logs" help:"Log as JSON"`
}

func (c *SimulateCmd) Run() error {
	logger := shared.SetupLogger(c.Debug)
	if c.JSON {
		logger = shared.SetupStructuredLogger(c.Debug)
	}

	cfg, err := c.load()
	if err != nil {
		return err
	}
	unit := c.Unit
	if unit <= 0 {
		unit = cfg.Rules.MinBet
	}
	spread, ok := simulator.ParseSpread(c.Spread, unit)
	if !ok {
		return fmt.Errorf("unknown bet spread %q", c.Spread)
	}

	sim := simulator.New(simulator.Config{
		Hands:        c.Hands,
		Workers:      c.Workers,
		Seed:         c.seed(),
		Game:         cfg,
		Bets:         spread,
		HandsPerHour: c.HandsPerHour,
		Bankroll:     c.Bankroll,
		Logger:       logger,
	})

	ctx := shared.SetupSignalHandlerWithLogger(logger)
	stats, err := sim.Run(ctx)
	if err != nil {
		return err
	}

	report := sim.NewReport(stats)
	simulator.PrintSummary(os.Stdout, report)
	if c.Report != "" {
		if err := simulator.WriteReport(c.Report, report); err != nil {
			return err
		}
		logger.Info("Wrote report", "path", c.Report)
	}
	return nil
}
