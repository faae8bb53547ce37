package domain

// StateID identifies a machine state.
type StateID uint

// Halted reports whether s is the terminal state.
func (s StateID) Halted() bool {
	return s == StateHalted
}

// Snapshot is a read-only copy of a machine's run state.
type Snapshot struct {
	Cycle uint64   `json:"cycle"`
	State StateID  `json:"state"`
	Head  int      `json:"head"`
	Tape  []Symbol `json:"-"`
}

// TapeString returns the tape contents as a plain string.
func (s Snapshot) TapeString() string {
	return JoinSymbols(s.Tape)
}
