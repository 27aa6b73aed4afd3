// Package simulator plays large batches of automated blackjack rounds across
// independent workers and aggregates the results.
package simulator

import (
	"context"
	"errors"
	"fmt"
	"io"
	"runtime"
	"time"

	"github.com/charmbracelet/log"
	"github.com/coder/quartz"
	"golang.org/x/sync/errgroup"

	"github.com/lox/blackjack/internal/config"
	"github.com/lox/blackjack/internal/game"
	"github.com/lox/blackjack/internal/move"
	"github.com/lox/blackjack/internal/player"
	"github.com/lox/blackjack/internal/randutil"
	"github.com/lox/blackjack/internal/statistics"
)

// ErrStalled is returned when a round stops making progress.
var ErrStalled = errors.New("round stalled")

// DefaultHandsPerHour is a typical full-table pace.
const DefaultHandsPerHour = 100

// workingBalance funds the simulated seat so a losing streak never ends a
// run early; ruin is estimated from Config.Bankroll instead.
const workingBalance = 1e12

// maxStepsPerRound bounds the inputs one round can take.
const maxStepsPerRound = 64

// progressEvery is how often workers log their progress, in rounds.
const progressEvery = 25_000

// Config holds configuration for running simulations
type Config struct {
	Hands   int
	Workers int // 0 uses the CPU count, capped at 8
	Seed    int64
	Game    config.Config
	Bets    BetSpread // nil bets the table minimum flat
	// HandsPerHour scales EV to an hourly rate
	HandsPerHour float64
	// Bankroll is the bankroll used for the risk-of-ruin estimate; zero uses
	// the game's starting balance
	Bankroll float64
	Logger   *log.Logger
	Clock    quartz.Clock
}

// Simulator runs blackjack simulations
type Simulator struct {
	config  Config
	elapsed time.Duration
}

// New creates a new simulator with the given configuration
func New(cfg Config) *Simulator {
	if cfg.Logger == nil {
		cfg.Logger = log.New(io.Discard)
	}
	if cfg.Clock == nil {
		cfg.Clock = quartz.NewReal()
	}
	if cfg.Workers <= 0 {
		cfg.Workers = min(runtime.NumCPU(), 8)
	}
	if cfg.HandsPerHour <= 0 {
		cfg.HandsPerHour = DefaultHandsPerHour
	}
	if cfg.Bankroll <= 0 {
		cfg.Bankroll = cfg.Game.StartingBalance
	}
	if cfg.Bets == nil {
		cfg.Bets = FlatBet{Amount: cfg.Game.Rules.MinBet}
	}
	return &Simulator{config: cfg}
}

// Config returns the effective configuration
func (s *Simulator) Config() Config { return s.config }

// Elapsed returns the wall time of the last run
func (s *Simulator) Elapsed() time.Duration { return s.elapsed }

// Run partitions the hands across workers, each with its own game, shoe
// and random stream, and merges their statistics once all have finished.
func (s *Simulator) Run(ctx context.Context) (*statistics.Statistics, error) {
	cfg := s.config
	if cfg.Hands <= 0 {
		return nil, fmt.Errorf("hands must be positive, got %d", cfg.Hands)
	}
	workers := min(cfg.Workers, cfg.Hands)
	perWorker := cfg.Hands / workers
	remainder := cfg.Hands % workers

	start := cfg.Clock.Now()
	cfg.Logger.Info("Starting simulation", "hands", cfg.Hands, "workers", workers, "seed", cfg.Seed)

	results := make([]*statistics.Statistics, workers)
	g, ctx := errgroup.WithContext(ctx)
	for w := range workers {
		hands := perWorker
		if w < remainder {
			hands++
		}
		seed := randutil.Stream(cfg.Seed, w)
		g.Go(func() error {
			stats, err := s.runWorker(ctx, w, hands, seed)
			if err != nil {
				return fmt.Errorf("worker %d: %w", w, err)
			}
			results[w] = stats
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	stats := &statistics.Statistics{}
	for _, r := range results {
		stats.Merge(r)
	}
	if err := stats.Validate(); err != nil {
		return nil, fmt.Errorf("statistics validation failed: %w", err)
	}

	s.elapsed = cfg.Clock.Since(start)
	cfg.Logger.Info("Simulation complete",
		"hands", stats.Hands,
		"edge", fmt.Sprintf("%.3f%%", stats.HouseEdge()*100),
		"elapsed", s.elapsed)
	return stats, nil
}

func (s *Simulator) runWorker(ctx context.Context, id, hands int, seed int64) (*statistics.Statistics, error) {
	cfg := s.config.Game.Clone()
	cfg.StartingBalance = workingBalance
	cfg.Mode = config.ModeDefault
	logger := s.config.Logger.With("worker", id)

	g, err := game.New(cfg,
		game.WithRand(randutil.New(seed)),
		game.WithLogger(logger),
		game.WithClock(s.config.Clock),
		game.WithEventsDisabled(),
	)
	if err != nil {
		return nil, err
	}

	stats := &statistics.Statistics{}
	start := s.config.Clock.Now()
	for i := range hands {
		if i%1000 == 0 {
			if err := ctx.Err(); err != nil {
				return nil, err
			}
		}
		if i > 0 && i%progressEvery == 0 {
			elapsed := s.config.Clock.Since(start)
			logger.Debug("Progress", "hands", i, "of", hands, "rate", fmt.Sprintf("%.0f/s", float64(i)/elapsed.Seconds()))
		}
		r, err := s.playRound(g)
		if err != nil {
			return nil, fmt.Errorf("round %d: %w", i, err)
		}
		stats.Add(r)
	}
	logger.Debug("Worker done", "hands", hands, "net", stats.Net)
	return stats, nil
}

// playRound bets by the spread, plays one round on the advisor's moves and
// samples the seat's bankroll.
func (s *Simulator) playRound(g *game.Game) (statistics.HandResult, error) {
	human := g.Human()
	tc := g.Shoe().TrueCount()
	if g.Shoe().NeedsReset() {
		tc = 0
	}
	if err := g.SetBet(s.config.Bets.Bet(tc, g.Rules())); err != nil {
		return statistics.HandResult{}, err
	}

	balance, wagered := human.Balance, human.Wagered
	if err := g.Step(move.Deal); err != nil {
		return statistics.HandResult{}, err
	}
	for step := 0; g.State() != game.WaitingForNewGameInput; step++ {
		if step == maxStepsPerRound {
			return statistics.HandResult{}, fmt.Errorf("%w in %s", ErrStalled, g.State())
		}
		if err := g.Step(g.Advise()); err != nil {
			return statistics.HandResult{}, err
		}
	}

	net := human.Balance - balance
	r := statistics.HandResult{
		Net:       net,
		Wagered:   human.Wagered - wagered,
		Bankroll:  s.config.Bankroll + human.Balance - workingBalance,
		TrueCount: tc,
		Won:       net > 0,
		Lost:      net < 0,
		Split:     human.HandCount() > g.Rules().Spots,
	}
	for _, h := range human.Hands() {
		res, _ := human.Result(h.ID)
		r.Blackjack = r.Blackjack || res.Reason == player.Blackjack
		r.Doubled = r.Doubled || h.Doubled
		r.Surrender = r.Surrender || h.Surrendered
		r.Insured = r.Insured || h.Insurance > 0
	}
	return r, nil
}

// RunSimulation is a convenience function for running a simulation with basic parameters
func RunSimulation(ctx context.Context, hands int, seed int64, cfg config.Config, logger *log.Logger) (*statistics.Statistics, error) {
	return New(Config{Hands: hands, Seed: seed, Game: cfg, Logger: logger}).Run(ctx)
}
