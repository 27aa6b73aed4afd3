package game

import (
	"math/rand/v2"

	"github.com/charmbracelet/log"
	"github.com/coder/quartz"

	"github.com/lox/blackjack/internal/shoe"
)

// Option configures a Game during creation.
type Option func(*gameConfig)

type gameConfig struct {
	rng           *rand.Rand
	logger        *log.Logger
	clock         quartz.Clock
	bus           EventBus
	eventsEnabled bool
	shoe          *shoe.Shoe
}

// WithRand sets the random source for shuffles and game ids.
func WithRand(rng *rand.Rand) Option {
	return func(c *gameConfig) {
		c.rng = rng
	}
}

// WithLogger sets the logger
func WithLogger(logger *log.Logger) Option {
	return func(c *gameConfig) {
		c.logger = logger
	}
}

// WithClock sets the clock used for record timestamps.
func WithClock(clock quartz.Clock) Option {
	return func(c *gameConfig) {
		c.clock = clock
	}
}

// WithEventBus publishes events on an existing bus.
func WithEventBus(bus EventBus) Option {
	return func(c *gameConfig) {
		c.bus = bus
	}
}

// WithEventsDisabled turns off every observer notification.
func WithEventsDisabled() Option {
	return func(c *gameConfig) {
		c.eventsEnabled = false
	}
}

// WithShoe plays from a prepared shoe instead of a freshly shuffled one.
// The shoe is not reshuffled before the first round.
func WithShoe(s *shoe.Shoe) Option {
	return func(c *gameConfig) {
		c.shoe = s
	}
}
