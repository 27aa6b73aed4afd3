// Package move defines the discrete inputs a blackjack seat can give.
package move

import "strings"

// Move is a primitive player input. Strategy charts resolve their
// conditional codes into one of these before anything else sees them.
type Move int

const (
	Invalid Move = iota
	Hit
	Stand
	Double
	Split
	Surrender
	Insure
	DeclineInsurance
	Deal
)

var names = map[Move]string{
	Invalid:          "invalid",
	Hit:              "hit",
	Stand:            "stand",
	Double:           "double",
	Split:            "split",
	Surrender:        "surrender",
	Insure:           "insure",
	DeclineInsurance: "decline",
	Deal:             "deal",
}

var tokens = map[string]Move{
	"h":         Hit,
	"hit":       Hit,
	"s":         Stand,
	"stand":     Stand,
	"d":         Double,
	"double":    Double,
	"p":         Split,
	"split":     Split,
	"r":         Surrender,
	"surrender": Surrender,
	"i":         Insure,
	"y":         Insure,
	"insure":    Insure,
	"ask":       Insure,
	"n":         DeclineInsurance,
	"decline":   DeclineInsurance,
	"no":        DeclineInsurance,
	"deal":      Deal,
	"enter":     Deal,
}

// String returns the lower-case name of the move
func (m Move) String() string {
	if name, ok := names[m]; ok {
		return name
	}
	return "invalid"
}

// IsPlay reports whether the move acts on a hand during play.
func (m Move) IsPlay() bool {
	return m >= Hit && m <= Surrender
}

// IsInsurance reports whether the move answers the insurance question.
func (m Move) IsInsurance() bool {
	return m == Insure || m == DeclineInsurance
}

// Parse maps a raw key or word to a move. Malformed tokens return
// (Invalid, false).
func Parse(token string) (Move, bool) {
	if token == " " {
		return Deal, true
	}
	m, ok := tokens[strings.ToLower(strings.TrimSpace(token))]
	if !ok {
		return Invalid, false
	}
	return m, true
}
