package domain

import (
	"context"
	"time"
)

// EventBase contains common fields for all events.
type EventBase struct {
	Timestamp time.Time `json:"timestamp"`
	RunID     string    `json:"run_id"`
}

// StepEvent describes one successful transition.
type StepEvent struct {
	EventBase
	Cycle     uint64  `json:"cycle"`
	Read      Symbol  `json:"read"`
	Written   Symbol  `json:"written"`
	FromState StateID `json:"from_state"`
	ToState   StateID `json:"to_state"`
	FromHead  int     `json:"from_head"`
	ToHead    int     `json:"to_head"`
}

// RunEvent describes how a run ended.
type RunEvent struct {
	EventBase
	Machine string  `json:"machine,omitempty"`
	Outcome string  `json:"outcome"`
	Cycles  uint64  `json:"cycles"`
	State   StateID `json:"state"`
	Err     error   `json:"-"`
}

// LifecycleHooks defines callbacks for run observability.
// Nil callbacks are skipped.
type LifecycleHooks struct {
	OnStep   func(context.Context, *StepEvent)
	OnFinish func(context.Context, *RunEvent)
}
