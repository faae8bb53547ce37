package domain

// Blank is the reserved symbol for an unwritten tape cell.
// It is implicitly part of every alphabet and may not be declared by users.
const Blank Symbol = '\\'

const (
	// StateHalted is the terminal state. No rule lookup ever happens for it.
	StateHalted StateID = 0

	// StateInitial is the state every machine starts in.
	StateInitial StateID = 1
)
