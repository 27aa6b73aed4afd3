package strategy

import "github.com/lox/blackjack/internal/move"

// Code is a cell in a strategy chart. Plain codes name a primitive move;
// conditional codes carry the fallback used when the preferred move is not
// legal at the moment of lookup.
type Code uint8

const (
	H  Code = iota + 1 // hit
	S                  // stand
	P                  // split
	Dh                 // double, else hit
	Ds                 // double, else stand
	Ph                 // split if double after split is allowed, else hit
	Pd                 // split if double after split is allowed, else double (else hit)
	Rh                 // surrender, else hit
	Rs                 // surrender, else stand
	Rp                 // surrender, else split
)

var codeNames = map[Code]string{
	H: "H", S: "S", P: "P", Dh: "Dh", Ds: "Ds",
	Ph: "Ph", Pd: "Pd", Rh: "Rh", Rs: "Rs", Rp: "Rp",
}

func (c Code) String() string {
	if name, ok := codeNames[c]; ok {
		return name
	}
	return "?"
}

// Legality is what the table currently permits for the hand being looked up.
type Legality struct {
	Double           bool
	Split            bool
	Surrender        bool
	DoubleAfterSplit bool
}

// Resolve collapses the code into exactly one primitive move.
func (c Code) Resolve(l Legality) move.Move {
	switch c {
	case H:
		return move.Hit
	case S:
		return move.Stand
	case P:
		if l.Split {
			return move.Split
		}
		return move.Hit
	case Dh:
		if l.Double {
			return move.Double
		}
		return move.Hit
	case Ds:
		if l.Double {
			return move.Double
		}
		return move.Stand
	case Ph:
		if l.Split && l.DoubleAfterSplit {
			return move.Split
		}
		return move.Hit
	case Pd:
		if l.Split && l.DoubleAfterSplit {
			return move.Split
		}
		return Dh.Resolve(l)
	case Rh:
		if l.Surrender {
			return move.Surrender
		}
		return move.Hit
	case Rs:
		if l.Surrender {
			return move.Surrender
		}
		return move.Stand
	case Rp:
		if l.Surrender {
			return move.Surrender
		}
		return P.Resolve(l)
	}
	return move.Stand
}
