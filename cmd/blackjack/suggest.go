package main

import (
	"fmt"

	"github.com/lox/blackjack/internal/config"
	"github.com/lox/blackjack/internal/deck"
	"github.com/lox/blackjack/internal/deviation"
	"github.com/lox/blackjack/internal/hand"
	"github.com/lox/blackjack/internal/player"
	"github.com/lox/blackjack/internal/strategy"
)

// SuggestCmd looks up the advised move for one hand
type SuggestCmd struct {
	TableFlags `embed:""`

	Hand      string  `arg:"" help:"Your cards, e.g. T6 or 'A 7'"`
	Upcard    string  `arg:"" help:"Dealer upcard, e.g. 5"`
	TrueCount float64 `name:"tc" default:"0" help:"True count for counting advisors"`
	Insurance bool    `help:"Ask whether to take insurance instead"`
}

func (c *SuggestCmd) Run() error {
	cfg, err := c.load()
	if err != nil {
		return err
	}
	line, err := c.advise(cfg)
	if err != nil {
		return err
	}
	fmt.Println(line)
	return nil
}

func (c *SuggestCmd) advise(cfg config.Config) (string, error) {
	kind, err := player.ParseKind(cfg.Advisor)
	if err != nil {
		return "", err
	}

	if c.Insurance {
		advice := strategy.SuggestInsurance()
		if kind.Counts() {
			advice = deviation.SuggestInsurance(c.TrueCount)
		}
		return advice.String(), nil
	}

	cards, err := deck.ParseCards(c.Hand)
	if err != nil {
		return "", fmt.Errorf("hand: %w", err)
	}
	if len(cards) < 2 {
		return "", fmt.Errorf("hand needs at least two cards, got %d", len(cards))
	}
	up, err := deck.ParseCards(c.Upcard)
	if err != nil || len(up) != 1 {
		return "", fmt.Errorf("upcard must be a single card, got %q", c.Upcard)
	}

	h := hand.New(0, 0)
	for _, card := range cards {
		h.TakeCard(card, false)
	}

	source := "basic strategy"
	advice := strategy.Suggest(cfg.Rules, h, up[0], 1)
	if kind.Counts() {
		if m, ok := deviation.Suggest(cfg.Rules, h, up[0], c.TrueCount, 1, kind == player.BasicStrategyWithDeviations); ok {
			advice, source = m, fmt.Sprintf("deviation at TC %+.1f", c.TrueCount)
		}
	}
	return fmt.Sprintf("%s vs %s: %s (%s)", h.Serialize(true), up[0].Rank, advice, source), nil
}
