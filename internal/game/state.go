package game

// State is a step of the round state machine.
type State int

const (
	Start State = iota
	WaitingForInsuranceInput
	PlayHandsRight
	WaitingForPlayInput
	PlayHandsLeft
	WaitingForNewGameInput
)

var stateNames = [...]string{
	Start:                    "Start",
	WaitingForInsuranceInput: "WaitingForInsuranceInput",
	PlayHandsRight:           "PlayHandsRight",
	WaitingForPlayInput:      "WaitingForPlayInput",
	PlayHandsLeft:            "PlayHandsLeft",
	WaitingForNewGameInput:   "WaitingForNewGameInput",
}

func (s State) String() string {
	if int(s) < len(stateNames) {
		return stateNames[s]
	}
	return "Unknown"
}

// Waiting reports whether the state returns control to the caller.
func (s State) Waiting() bool {
	switch s {
	case Start, WaitingForInsuranceInput, WaitingForPlayInput, WaitingForNewGameInput:
		return true
	}
	return false
}
