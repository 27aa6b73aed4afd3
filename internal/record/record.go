// Package record persists the move and hand records a table publishes.
package record

import (
	"context"
	"fmt"
	"io"
	"sync/atomic"
	"time"

	"github.com/charmbracelet/log"

	"github.com/lox/blackjack/internal/game"
)

// Store saves records. Implementations must be safe for use by one table.
type Store interface {
	SaveMove(ctx context.Context, r game.MoveRecord) error
	SaveHand(ctx context.Context, r game.HandRecord) error
	Close() error
}

// saveTimeout bounds a single write from the event bus.
const saveTimeout = 3 * time.Second

// Sink subscribes to a table's bus and writes every CreateRecordEvent to a
// Store. The bus is synchronous, so write failures are logged and counted
// rather than returned.
type Sink struct {
	store  Store
	logger *log.Logger
	saved  atomic.Int64
	failed atomic.Int64
}

// NewSink creates a sink writing to store
func NewSink(store Store, logger *log.Logger) *Sink {
	if logger == nil {
		logger = log.New(io.Discard)
	}
	return &Sink{store: store, logger: logger.WithPrefix("record")}
}

// Attach subscribes the sink to bus.
func (s *Sink) Attach(bus game.EventBus) {
	bus.Subscribe(s)
}

// OnEvent implements game.EventSubscriber.
func (s *Sink) OnEvent(event game.GameEvent) {
	e, ok := event.(game.CreateRecordEvent)
	if !ok {
		return
	}
	ctx, cancel := context.WithTimeout(context.Background(), saveTimeout)
	defer cancel()

	if err := s.save(ctx, e); err != nil {
		s.failed.Add(1)
		s.logger.Error("Failed to save record", "name", e.Name, "error", err)
		return
	}
	s.saved.Add(1)
}

func (s *Sink) save(ctx context.Context, e game.CreateRecordEvent) error {
	switch r := e.Record.(type) {
	case game.MoveRecord:
		return s.store.SaveMove(ctx, r)
	case game.HandRecord:
		return s.store.SaveHand(ctx, r)
	default:
		return fmt.Errorf("unknown record %q of type %T", e.Name, e.Record)
	}
}

// Saved returns how many records were written
func (s *Sink) Saved() int64 { return s.saved.Load() }

// Failed returns how many records could not be written
func (s *Sink) Failed() int64 { return s.failed.Load() }
