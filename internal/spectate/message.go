// Package spectate streams a table's events to remote viewers over
// WebSockets.
package spectate

import (
	"encoding/json"
	"time"

	"github.com/lox/blackjack/internal/game"
)

// Message represents the base WebSocket message structure
type Message struct {
	Type      game.EventType  `json:"type"`
	Data      json.RawMessage `json:"data,omitempty"`
	Timestamp time.Time       `json:"timestamp"`
}

type StateChangeData struct {
	Entity     game.Entity    `json:"entity"`
	ID         int            `json:"id"`
	Attributes map[string]any `json:"attributes"`
}

type HandWinnerData struct {
	GameID   string  `json:"gameId"`
	PlayerID int     `json:"playerId"`
	HandID   int     `json:"handId"`
	Outcome  string  `json:"outcome"`
	Reason   string  `json:"reason"`
	Payout   float64 `json:"payout"`
}

type ShuffleData struct {
	Decks  int  `json:"decks"`
	Forced bool `json:"forced"`
}

type RecordData struct {
	Name   string `json:"name"`
	Record any    `json:"record"`
}

// Encode converts a table event into its wire message.
func Encode(e game.GameEvent) (*Message, error) {
	var data any
	switch e := e.(type) {
	case game.StateChangeEvent:
		data = StateChangeData{Entity: e.Entity, ID: e.ID, Attributes: e.Attributes}
	case game.HandWinnerEvent:
		data = HandWinnerData{
			GameID:   e.GameID,
			PlayerID: e.PlayerID,
			HandID:   e.HandID,
			Outcome:  e.Result.Outcome.String(),
			Reason:   e.Result.Reason.String(),
			Payout:   e.Result.Payout,
		}
	case game.ShuffleEvent:
		data = ShuffleData{Decks: e.Decks, Forced: e.Forced}
	case game.CreateRecordEvent:
		data = RecordData{Name: e.Name, Record: e.Record}
	}

	msg := &Message{Type: e.EventType(), Timestamp: e.Timestamp()}
	if data != nil {
		raw, err := json.Marshal(data)
		if err != nil {
			return nil, err
		}
		msg.Data = raw
	}
	return msg, nil
}
