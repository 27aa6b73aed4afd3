package game

import "time"

// Record names used in CreateRecordEvent.
const (
	MoveRecordName = "move"
	HandRecordName = "hand"
)

// MoveRecord is one decision by the human seat.
type MoveRecord struct {
	Timestamp  time.Time `json:"timestamp"`
	GameID     string    `json:"game_id"`
	DealerHand string    `json:"dealer_hand"`
	PlayerHand string    `json:"player_hand"`
	Move       string    `json:"move"`
	Correction string    `json:"correction,omitempty"`
	TrueCount  float64   `json:"true_count"`
}

// HandRecord is the result of one settled hand of the human seat.
type HandRecord struct {
	Timestamp  time.Time `json:"timestamp"`
	GameID     string    `json:"game_id"`
	DealerHand string    `json:"dealer_hand"`
	PlayerHand string    `json:"player_hand"`
	Winner     string    `json:"winner"`
	Bet        float64   `json:"bet"`
	Payout     float64   `json:"payout"`
}
