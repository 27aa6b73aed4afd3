package game

import (
	"errors"
	"fmt"
	"io"
	"math/rand/v2"
	"time"

	"github.com/charmbracelet/log"
	"github.com/coder/quartz"

	"github.com/lox/blackjack/internal/config"
	"github.com/lox/blackjack/internal/gameid"
	"github.com/lox/blackjack/internal/hand"
	"github.com/lox/blackjack/internal/move"
	"github.com/lox/blackjack/internal/player"
	"github.com/lox/blackjack/internal/randutil"
	"github.com/lox/blackjack/internal/shoe"
)

// ErrInvalidBet is returned when a bet falls outside the table limits.
var ErrInvalidBet = errors.New("invalid bet")

// ErrRoundInProgress is returned when the bet is changed mid-round.
var ErrRoundInProgress = errors.New("round in progress")

// Game is one table: a shoe, a dealer and the seats around it.
type Game struct {
	cfg    config.Config
	rules  config.Rules
	rng    *rand.Rand
	logger *log.Logger
	clock  quartz.Clock
	bus    EventBus
	events bool
	ids    *gameid.Generator

	shoe    *shoe.Shoe
	dealer  *player.DealerPlayer
	players []*player.Player
	human   *player.Player
	advisor player.Kind

	state   State
	session Session
	bet     float64

	// forceReset is set when the shoe ran out mid-round.
	forceReset bool
	// insuranceAsked records whether the human seat was offered insurance
	// this round.
	insuranceAsked bool
}

// New validates the configuration and seats the table. Configuration
// errors fail here so they never surface mid-hand.
func New(cfg config.Config, opts ...Option) (*Game, error) {
	if cfg.Mode == "" {
		cfg.Mode = config.ModeDefault
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	gc := &gameConfig{eventsEnabled: true}
	for _, opt := range opts {
		opt(gc)
	}
	if gc.rng == nil {
		gc.rng = randutil.New(time.Now().UnixNano())
	}
	if gc.logger == nil {
		gc.logger = log.New(io.Discard)
	}
	if gc.clock == nil {
		gc.clock = quartz.NewReal()
	}
	if gc.bus == nil {
		gc.bus = NewEventBus()
	}

	advisor, err := player.ParseKind(cfg.Advisor)
	if err != nil {
		return nil, fmt.Errorf("%w: advisor: %w", config.ErrInvalidConfig, err)
	}
	if advisor == player.User {
		return nil, fmt.Errorf("%w: advisor must be a strategy", config.ErrInvalidConfig)
	}

	g := &Game{
		cfg:     cfg.Clone(),
		rules:   cfg.Rules,
		rng:     gc.rng,
		logger:  gc.logger.WithPrefix("game"),
		clock:   gc.clock,
		bus:     gc.bus,
		events:  gc.eventsEnabled,
		ids:     gameid.NewGenerator(randutil.Reader{R: gc.rng}),
		dealer:  player.NewDealer(),
		advisor: advisor,
		bet:     cfg.Bet,
		state:   Start,
	}

	for seat := range cfg.Rules.Seats {
		kind := player.User
		name := "You"
		if seat != cfg.Rules.SeatPosition {
			kind = player.BasicStrategy
			name = fmt.Sprintf("Seat %d", seat+1)
		}
		if s, ok := cfg.Strategies[seat]; ok {
			if kind, err = player.ParseKind(s); err != nil {
				return nil, fmt.Errorf("%w: seat %d: %w", config.ErrInvalidConfig, seat, err)
			}
		}
		p := player.New(seat+1, name, kind, cfg.StartingBalance, cfg.Rules.MaxHands)
		g.players = append(g.players, p)
	}
	g.human = g.players[cfg.Rules.SeatPosition]

	if gc.shoe != nil {
		g.shoe = gc.shoe
	} else {
		g.shoe = shoe.New(g.rules, cfg.Mode, g.rng, g.logger)
		g.shoe.Shuffle(g.layout())
	}

	g.logger.Debug("Table ready",
		"decks", g.rules.Decks,
		"seats", g.rules.Seats,
		"position", g.rules.SeatPosition,
		"mode", cfg.Mode,
		"advisor", advisor)
	return g, nil
}

// State returns the current state
func (g *Game) State() State { return g.state }

// Session returns a copy of the session bookkeeping
func (g *Game) Session() Session { return g.session }

// Human returns the human seat
func (g *Game) Human() *player.Player { return g.human }

// Dealer returns the dealer
func (g *Game) Dealer() *player.DealerPlayer { return g.dealer }

// Players returns every seat in seat order
func (g *Game) Players() []*player.Player { return g.players }

// Shoe returns the shoe in play
func (g *Game) Shoe() *shoe.Shoe { return g.shoe }

// Rules returns the table rules
func (g *Game) Rules() config.Rules { return g.rules }

// Bus returns the event bus
func (g *Game) Bus() EventBus { return g.bus }

// Bet returns the human seat's bet per spot
func (g *Game) Bet() float64 { return g.bet }

// FocusedHand returns the human hand awaiting input, or nil.
func (g *Game) FocusedHand() *hand.Hand {
	if g.state != WaitingForPlayInput {
		return nil
	}
	return g.human.Hand(g.session.FocusedHand)
}

// SetBet changes the human seat's bet per spot for the next round.
func (g *Game) SetBet(amount float64) error {
	if g.state != Start && g.state != WaitingForNewGameInput {
		return ErrRoundInProgress
	}
	if amount < g.rules.MinBet || amount > g.rules.MaxBet {
		return fmt.Errorf("%w: %g outside table limits [%g, %g]", ErrInvalidBet, amount, g.rules.MinBet, g.rules.MaxBet)
	}
	g.bet = amount
	return nil
}

// layout places the human seat's first hand among the hands dealt.
func (g *Game) layout() shoe.Layout {
	return shoe.Layout{
		HandsBefore: g.rules.SeatPosition,
		Hands:       g.rules.Seats - 1 + g.rules.Spots,
	}
}

// Step applies one input and then advances through every automatic state.
// Malformed or currently illegal input leaves the state unchanged and
// returns nil. An error means the input was a wager the seat cannot cover.
func (g *Game) Step(m move.Move) error {
	err := g.step(m)
	if errors.Is(err, shoe.ErrShoeEmpty) {
		g.abandon()
		return nil
	}
	return err
}

func (g *Game) step(m move.Move) error {
	switch g.state {
	case Start, WaitingForNewGameInput:
		if m != move.Deal {
			return nil
		}
		if g.state == WaitingForNewGameInput {
			g.removeCards()
		}
		if err := g.dealRound(); err != nil {
			return err
		}
	case WaitingForInsuranceInput:
		if !m.IsInsurance() {
			return nil
		}
		if err := g.resolveInsurance(m); err != nil {
			return err
		}
	case WaitingForPlayInput:
		if !m.IsPlay() {
			return nil
		}
		applied, err := g.playHuman(m)
		if err != nil || !applied {
			return err
		}
	default:
		return nil
	}
	return g.advance()
}

// advance runs automatic states until one needs input.
func (g *Game) advance() error {
	for {
		switch g.state {
		case PlayHandsRight:
			for _, p := range g.seatsRight() {
				if err := g.playSeat(p); err != nil {
					return err
				}
			}
			g.setStep(WaitingForPlayInput)
		case WaitingForPlayInput:
			if !g.human.IsUser() {
				if err := g.playSeat(g.human); err != nil {
					return err
				}
			}
			g.settleNaturals(g.human)
			idx := g.nextHumanHand(0)
			if idx < 0 {
				g.setStep(PlayHandsLeft)
				continue
			}
			g.setState(func(s *Session) { s.FocusedHand = idx })
			return nil
		case PlayHandsLeft:
			for _, p := range g.seatsLeft() {
				if err := g.playSeat(p); err != nil {
					return err
				}
			}
			if err := g.playDealer(); err != nil {
				return err
			}
			g.finishRound()
			return nil
		default:
			return nil
		}
	}
}

func (g *Game) seatsRight() []*player.Player {
	return g.players[:g.rules.SeatPosition]
}

func (g *Game) seatsLeft() []*player.Player {
	return g.players[g.rules.SeatPosition+1:]
}

// nextHumanHand returns the first unfinished human hand at or after from.
func (g *Game) nextHumanHand(from int) int {
	for i := from; i < g.human.HandCount(); i++ {
		if !g.human.Hand(i).Finished {
			return i
		}
	}
	return -1
}

func (g *Game) setStep(s State) {
	if g.state == s {
		return
	}
	g.logger.Debug("State change", "from", g.state, "to", s)
	g.state = s
	g.setState(func(*Session) {})
}

func (g *Game) now() time.Time {
	return g.clock.Now()
}

func (g *Game) publish(e GameEvent) {
	if g.events {
		g.bus.Publish(e)
	}
}
