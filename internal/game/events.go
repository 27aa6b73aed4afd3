package game

import (
	"time"

	"github.com/lox/blackjack/internal/player"
)

// EventType represents a game event type with type safety
type EventType string

// EventType constants for the events a table publishes
const (
	EventTypeStateChange  EventType = "state_change"
	EventTypeHandWinner   EventType = "hand_winner"
	EventTypeShuffle      EventType = "shuffle"
	EventTypeCreateRecord EventType = "create_record"
	EventTypeResetState   EventType = "reset_state"
)

// String returns the string representation of the event type
func (et EventType) String() string {
	return string(et)
}

// GameEvent represents anything that happens at the table
type GameEvent interface {
	EventType() EventType
	Timestamp() time.Time
}

// Entity names the kind of object whose state changed.
type Entity string

const (
	EntityGame   Entity = "game"
	EntityHand   Entity = "hand"
	EntityPlayer Entity = "player"
	EntityShoe   Entity = "shoe"
)

// StateChangeEvent is published after an entity changes
type StateChangeEvent struct {
	Entity     Entity
	ID         int
	Attributes map[string]any
	timestamp  time.Time
}

func (e StateChangeEvent) EventType() EventType { return EventTypeStateChange }
func (e StateChangeEvent) Timestamp() time.Time { return e.timestamp }

// HandWinnerEvent is published when a hand is settled
type HandWinnerEvent struct {
	GameID    string
	PlayerID  int
	HandID    int
	Result    player.Result
	timestamp time.Time
}

func (e HandWinnerEvent) EventType() EventType { return EventTypeHandWinner }
func (e HandWinnerEvent) Timestamp() time.Time { return e.timestamp }

// ShuffleEvent is published after the shoe is reshuffled
type ShuffleEvent struct {
	Decks     int
	Forced    bool // the previous shoe ran out mid-round
	timestamp time.Time
}

func (e ShuffleEvent) EventType() EventType { return EventTypeShuffle }
func (e ShuffleEvent) Timestamp() time.Time { return e.timestamp }

// CreateRecordEvent carries a record for persistence
type CreateRecordEvent struct {
	Name      string // MoveRecordName or HandRecordName
	Record    any
	timestamp time.Time
}

func (e CreateRecordEvent) EventType() EventType { return EventTypeCreateRecord }
func (e CreateRecordEvent) Timestamp() time.Time { return e.timestamp }

// ResetStateEvent is published when the table is cleared for the next round
type ResetStateEvent struct {
	timestamp time.Time
}

func (e ResetStateEvent) EventType() EventType { return EventTypeResetState }
func (e ResetStateEvent) Timestamp() time.Time { return e.timestamp }

// EventSubscriber can subscribe to game events
type EventSubscriber interface {
	OnEvent(event GameEvent)
}

// SubscriberFunc adapts a function to EventSubscriber.
type SubscriberFunc func(GameEvent)

// OnEvent calls f(event).
func (f SubscriberFunc) OnEvent(event GameEvent) { f(event) }

// EventBus manages event publishing and subscription
type EventBus interface {
	Subscribe(subscriber EventSubscriber)
	Unsubscribe(subscriber EventSubscriber)
	Publish(event GameEvent)
}

// SimpleEventBus is a basic in-memory event bus implementation
type SimpleEventBus struct {
	subscribers []EventSubscriber
}

// NewEventBus creates a new event bus
func NewEventBus() EventBus {
	return &SimpleEventBus{
		subscribers: make([]EventSubscriber, 0),
	}
}

// Subscribe adds a subscriber to receive events
func (bus *SimpleEventBus) Subscribe(subscriber EventSubscriber) {
	bus.subscribers = append(bus.subscribers, subscriber)
}

// Unsubscribe removes a subscriber. Function subscribers cannot be
// compared and are only removed by Unsubscribe on a pointer wrapper.
func (bus *SimpleEventBus) Unsubscribe(subscriber EventSubscriber) {
	for i, sub := range bus.subscribers {
		if sameSubscriber(sub, subscriber) {
			bus.subscribers = append(bus.subscribers[:i], bus.subscribers[i+1:]...)
			break
		}
	}
}

// Publish delivers the event to every subscriber in subscription order.
// A panicking subscriber is not recovered.
func (bus *SimpleEventBus) Publish(event GameEvent) {
	for _, subscriber := range bus.subscribers {
		subscriber.OnEvent(event)
	}
}

func sameSubscriber(a, b EventSubscriber) bool {
	if _, ok := a.(SubscriberFunc); ok {
		return false
	}
	if _, ok := b.(SubscriberFunc); ok {
		return false
	}
	return a == b
}
